package repository

import (
	"fmt"
	"strings"
	"testing"

	"github.com/webbangiay/internal/constants"
	"github.com/webbangiay/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupRepositoryTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.MigrateDB(db); err != nil {
		t.Fatalf("migrate models failed: %v", err)
	}
	return db
}

type catalogFixture struct {
	Category    *models.Category
	SubCategory *models.SubCategory
	Brand       *models.Brand
	Product     *models.Product
	Color       *models.ProductColor
	Size        *models.ProductSize
}

func createCatalogFixture(t *testing.T, db *gorm.DB, productName, gender string) catalogFixture {
	t.Helper()
	category := &models.Category{CategoryName: "Giày " + productName, IsActive: true}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	subCategory := &models.SubCategory{SubCategoryName: "Sneaker " + productName, Gender: gender, CategoryID: category.ID, IsActive: true}
	if err := db.Create(subCategory).Error; err != nil {
		t.Fatalf("create sub category failed: %v", err)
	}
	brand := &models.Brand{BrandName: "Brand " + productName, IsActive: true}
	if err := db.Create(brand).Error; err != nil {
		t.Fatalf("create brand failed: %v", err)
	}
	product := &models.Product{
		ProductName:   productName,
		OriginalPrice: models.NewMoneyFromInt(1200000),
		UnitPrice:     models.NewMoneyFromInt(1000000),
		BrandID:       brand.ID,
		SubCategoryID: subCategory.ID,
		IsActive:      true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	color := &models.ProductColor{ColorName: "Trắng", ProductID: product.ID, IsActive: true}
	if err := db.Create(color).Error; err != nil {
		t.Fatalf("create color failed: %v", err)
	}
	size := &models.ProductSize{SizeValue: 42, StockQuantity: 10, ProductColorID: color.ID, IsActive: true}
	if err := db.Create(size).Error; err != nil {
		t.Fatalf("create size failed: %v", err)
	}
	return catalogFixture{
		Category:    category,
		SubCategory: subCategory,
		Brand:       brand,
		Product:     product,
		Color:       color,
		Size:        size,
	}
}

func createOrderFixture(t *testing.T, db *gorm.DB, id string, customerID *uint, items []models.OrderItem) *models.Order {
	t.Helper()
	total := models.NewMoneyFromInt(0)
	for _, item := range items {
		total = models.NewMoneyFromDecimal(total.Add(item.UnitPrice.Mul(models.NewMoneyFromInt(int64(item.Quantity)).Decimal)))
	}
	order := &models.Order{
		ID:            id,
		CustomerID:    customerID,
		TotalPrice:    total,
		PaymentMethod: constants.PaymentMethodCashOnDelivery,
		OrderStatus:   constants.OrderStatusProcessing,
	}
	if err := NewOrderRepository(db).Create(order, items); err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order
}
