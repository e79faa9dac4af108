package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/webbangiay/internal/config"
	"github.com/webbangiay/internal/constants"
	"github.com/webbangiay/internal/models"
	"github.com/webbangiay/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db failed: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := models.MigrateDB(db); err != nil {
		t.Fatalf("migrate models failed: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.Timezone = "Asia/Ho_Chi_Minh"
	cfg.Upload.BaseURL = "http://localhost:8080/uploads/"
	cfg.DefaultUser.Password = "123456"
	cfg.Statistics.BestSellerLimit = 5
	cfg.Statistics.MaxRangeDays = 366
	return cfg
}

func createTestCustomer(t *testing.T, db *gorm.DB, email string) *models.Customer {
	t.Helper()
	customer := &models.Customer{
		FullName:     "Nguyễn Văn A",
		Email:        email,
		PasswordHash: "x",
		IsActive:     true,
	}
	if err := db.Create(customer).Error; err != nil {
		t.Fatalf("create customer failed: %v", err)
	}
	return customer
}

type testCatalog struct {
	Category    *models.Category
	SubCategory *models.SubCategory
	Brand       *models.Brand
	Product     *models.Product
	Color       *models.ProductColor
	Size        *models.ProductSize
}

func createTestCatalog(t *testing.T, db *gorm.DB, name string) testCatalog {
	t.Helper()
	category := &models.Category{CategoryName: "Giày " + name, IsActive: true}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	subCategory := &models.SubCategory{
		SubCategoryName: "Sneaker " + name,
		Gender:          constants.GenderMale,
		CategoryID:      category.ID,
		IsActive:        true,
	}
	if err := db.Create(subCategory).Error; err != nil {
		t.Fatalf("create sub category failed: %v", err)
	}
	brand := &models.Brand{BrandName: "Brand " + name, IsActive: true}
	if err := db.Create(brand).Error; err != nil {
		t.Fatalf("create brand failed: %v", err)
	}
	product := &models.Product{
		ProductName:   name,
		OriginalPrice: models.NewMoneyFromInt(350000),
		UnitPrice:     models.NewMoneyFromInt(300000),
		BrandID:       brand.ID,
		SubCategoryID: subCategory.ID,
		IsActive:      true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	color := &models.ProductColor{ColorName: "Đen", ProductID: product.ID, IsActive: true}
	if err := db.Create(color).Error; err != nil {
		t.Fatalf("create color failed: %v", err)
	}
	size := &models.ProductSize{SizeValue: 41, StockQuantity: 20, ProductColorID: color.ID, IsActive: true}
	if err := db.Create(size).Error; err != nil {
		t.Fatalf("create size failed: %v", err)
	}
	return testCatalog{
		Category:    category,
		SubCategory: subCategory,
		Brand:       brand,
		Product:     product,
		Color:       color,
		Size:        size,
	}
}

func createTestOrder(t *testing.T, db *gorm.DB, id string, customerID uint, total int64) *models.Order {
	t.Helper()
	cid := customerID
	order := &models.Order{
		ID:            id,
		CustomerID:    &cid,
		TotalPrice:    models.NewMoneyFromInt(total),
		PaymentMethod: constants.PaymentMethodCashOnDelivery,
		OrderStatus:   constants.OrderStatusProcessing,
	}
	if err := repository.NewOrderRepository(db).Create(order, nil); err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order
}
