package main

import (
	"fmt"
	"time"

	"github.com/webbangiay/internal/config"
	"github.com/webbangiay/internal/constants"
	"github.com/webbangiay/internal/logger"
	"github.com/webbangiay/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type seedColor struct {
	Name  string
	Sizes []int
}

type seedProduct struct {
	Name          string
	Brand         string
	SubCategory   string
	Gender        string
	OriginalPrice int64
	UnitPrice     int64
	Colors        []seedColor
}

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, cfg.Database.LogSQL, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	err := models.DB.Transaction(func(tx *gorm.DB) error {
		if err := seedAdminUsers(tx, cfg); err != nil {
			return fmt.Errorf("admin users: %w", err)
		}
		if err := seedCatalog(tx); err != nil {
			return fmt.Errorf("catalog: %w", err)
		}
		if err := seedBanners(tx); err != nil {
			return fmt.Errorf("banners: %w", err)
		}
		if err := seedVouchers(tx); err != nil {
			return fmt.Errorf("vouchers: %w", err)
		}
		return seedCustomer(tx)
	})
	if err != nil {
		stdLog.Fatalf("Seed failed: %v", err)
	}
	logger.Infow("seed_completed")
}

func hash(password string) string {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return string(hashed)
}

func seedAdminUsers(tx *gorm.DB, cfg *config.Config) error {
	adminPassword := cfg.DefaultUser.AdminPassword
	if adminPassword == "" {
		adminPassword = "admin123"
	}
	adminEmail := cfg.DefaultUser.AdminEmail
	if adminEmail == "" {
		adminEmail = "admin@webbangiay.vn"
	}
	users := []models.AdminUser{
		{FullName: "Quản trị viên", Email: adminEmail, PasswordHash: hash(adminPassword), Role: constants.RoleAdmin},
		{FullName: "Nhân viên bán hàng", Email: "nhanvien@webbangiay.vn", PasswordHash: hash("123456"), Role: constants.RoleEmployee},
	}
	for _, user := range users {
		user.ID = uuid.NewString()
		user.IsActive = true
		if err := tx.Where("email = ?", user.Email).FirstOrCreate(&user).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedCatalog(tx *gorm.DB) error {
	brands := map[string]*models.Brand{}
	for _, name := range []string{"Nike", "Adidas", "Converse", "Vans", "Biti's"} {
		brand := models.Brand{BrandName: name, ImageURL: "brand/" + uuid.NewString() + ".png", IsActive: true}
		if err := tx.Where("brand_name = ?", name).FirstOrCreate(&brand).Error; err != nil {
			return err
		}
		brands[name] = &brand
	}

	subCategories := map[string]*models.SubCategory{}
	tree := map[string][]string{
		"Giày thể thao":   {"Giày chạy bộ", "Giày bóng rổ"},
		"Giày thời trang": {"Sneaker", "Giày lười"},
	}
	for categoryName, subs := range tree {
		category := models.Category{CategoryName: categoryName, IsActive: true}
		if err := tx.Where("category_name = ?", categoryName).FirstOrCreate(&category).Error; err != nil {
			return err
		}
		for _, subName := range subs {
			for _, gender := range []string{constants.GenderMale, constants.GenderFemale} {
				sub := models.SubCategory{SubCategoryName: subName, Gender: gender, CategoryID: category.ID, IsActive: true}
				if err := tx.Where("sub_category_name = ? AND gender = ? AND category_id = ?", subName, gender, category.ID).
					FirstOrCreate(&sub).Error; err != nil {
					return err
				}
				subCategories[subName+"|"+gender] = &sub
			}
		}
	}

	products := []seedProduct{
		{
			Name: "Nike Air Zoom Pegasus 40", Brand: "Nike", SubCategory: "Giày chạy bộ", Gender: constants.GenderMale,
			OriginalPrice: 3519000, UnitPrice: 2990000,
			Colors: []seedColor{
				{Name: "Đen trắng", Sizes: []int{39, 40, 41, 42, 43}},
				{Name: "Xanh navy", Sizes: []int{40, 41, 42}},
			},
		},
		{
			Name: "Adidas Ultraboost Light", Brand: "Adidas", SubCategory: "Giày chạy bộ", Gender: constants.GenderFemale,
			OriginalPrice: 5000000, UnitPrice: 4200000,
			Colors: []seedColor{
				{Name: "Trắng", Sizes: []int{36, 37, 38, 39}},
			},
		},
		{
			Name: "Converse Chuck 70 High", Brand: "Converse", SubCategory: "Sneaker", Gender: constants.GenderMale,
			OriginalPrice: 2000000, UnitPrice: 1800000,
			Colors: []seedColor{
				{Name: "Đen", Sizes: []int{38, 39, 40, 41, 42, 43, 44}},
				{Name: "Kem", Sizes: []int{38, 39, 40}},
			},
		},
		{
			Name: "Vans Old Skool", Brand: "Vans", SubCategory: "Sneaker", Gender: constants.GenderFemale,
			OriginalPrice: 1850000, UnitPrice: 1650000,
			Colors: []seedColor{
				{Name: "Đen trắng", Sizes: []int{35, 36, 37, 38}},
			},
		},
		{
			Name: "Biti's Hunter Street", Brand: "Biti's", SubCategory: "Giày lười", Gender: constants.GenderMale,
			OriginalPrice: 990000, UnitPrice: 799000,
			Colors: []seedColor{
				{Name: "Xám", Sizes: []int{39, 40, 41, 42}},
			},
		},
	}

	for _, item := range products {
		sub := subCategories[item.SubCategory+"|"+item.Gender]
		brand := brands[item.Brand]
		if sub == nil || brand == nil {
			return fmt.Errorf("missing brand or subcategory for %s", item.Name)
		}
		product := models.Product{
			ProductName:   item.Name,
			OriginalPrice: models.NewMoneyFromInt(item.OriginalPrice),
			UnitPrice:     models.NewMoneyFromInt(item.UnitPrice),
			BrandID:       brand.ID,
			SubCategoryID: sub.ID,
			IsActive:      true,
		}
		if err := tx.Where("product_name = ?", item.Name).FirstOrCreate(&product).Error; err != nil {
			return err
		}
		for _, color := range item.Colors {
			productColor := models.ProductColor{
				ColorName: color.Name,
				ImageURL:  "product/" + uuid.NewString() + ".jpg",
				ProductID: product.ID,
				IsActive:  true,
			}
			if err := tx.Where("product_id = ? AND color_name = ?", product.ID, color.Name).FirstOrCreate(&productColor).Error; err != nil {
				return err
			}
			for _, sizeValue := range color.Sizes {
				size := models.ProductSize{
					SizeValue:      sizeValue,
					StockQuantity:  20,
					ProductColorID: productColor.ID,
					IsActive:       true,
				}
				if err := tx.Where("product_color_id = ? AND size_value = ?", productColor.ID, sizeValue).FirstOrCreate(&size).Error; err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func seedBanners(tx *gorm.DB) error {
	banners := []models.Banner{
		{Title: "Bộ sưu tập chạy bộ mùa hè", ImageURL: "banner/summer-running.jpg", Link: "/products?sub_category=running"},
		{Title: "Sneaker giảm đến 30%", ImageURL: "banner/sneaker-sale.jpg", Link: "/products?order_by=price_asc"},
	}
	for _, banner := range banners {
		banner.IsActive = true
		if err := tx.Where("title = ?", banner.Title).FirstOrCreate(&banner).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedVouchers(tx *gorm.DB) error {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 3, -1)
	vouchers := []models.Voucher{
		{
			Code:          "CHAOBANMOI",
			Name:          "Chào bạn mới",
			Description:   "Giảm 10% cho đơn hàng đầu tiên, tối đa 200.000đ",
			DiscountType:  constants.DiscountTypePercentage,
			DiscountValue: models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
			MaxDiscount:   models.NewMoneyFromInt(200000),
			ConditionType: constants.ConditionFirstOrder,
			UsageLimit:    500,
		},
		{
			Code:           "DONLON1TR",
			Name:           "Đơn lớn",
			Description:    "Giảm 100.000đ cho đơn từ 1.000.000đ",
			DiscountType:   constants.DiscountTypeFixed,
			DiscountValue:  models.NewMoneyFromInt(100000),
			MinOrderValue:  models.NewMoneyFromInt(1000000),
			ConditionType:  constants.ConditionOrderValue,
			ConditionValue: models.NewMoneyFromInt(1000000),
		},
		{
			Code:           "NGAYVANG15",
			Name:           "Ngày vàng",
			Description:    "Giảm 15% vào ngày 15 hằng tháng",
			DiscountType:   constants.DiscountTypePercentage,
			DiscountValue:  models.NewMoneyFromDecimal(decimal.NewFromInt(15)),
			MaxDiscount:    models.NewMoneyFromInt(300000),
			ConditionType:  constants.ConditionSpecificDate,
			ConditionValue: models.NewMoneyFromInt(15),
		},
	}
	for _, voucher := range vouchers {
		voucher.StartDate = start
		voucher.EndDate = end
		voucher.IsActive = true
		if err := tx.Where("code = ?", voucher.Code).FirstOrCreate(&voucher).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedCustomer(tx *gorm.DB) error {
	customer := models.Customer{
		FullName:     "Nguyễn Văn A",
		Email:        "khachhang@example.com",
		PasswordHash: hash("123456"),
		Phone:        "0901234567",
		Address:      "12 Lê Lợi",
		City:         "Hồ Chí Minh",
		IsActive:     true,
	}
	return tx.Where("email = ?", customer.Email).FirstOrCreate(&customer).Error
}
