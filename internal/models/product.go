package models

import "time"

// Product 商品
type Product struct {
	ID            uint      `gorm:"primarykey" json:"id"`                                        // 主键
	ProductName   string    `gorm:"type:varchar(200);not null;index" json:"product_name"`        // 商品名称
	OriginalPrice Money     `gorm:"type:decimal(20,2);not null;default:0" json:"original_price"` // 原价
	UnitPrice     Money     `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`     // 售价
	BrandID       uint      `gorm:"index;not null" json:"brand_id"`                              // 品牌
	SubCategoryID uint      `gorm:"index;not null" json:"sub_category_id"`                       // 子分类
	IsActive      bool      `gorm:"not null;index" json:"is_active"`                             // 是否上架
	CreatedAt     time.Time `gorm:"index" json:"created_at"`                                     // 创建时间
	UpdatedAt     time.Time `json:"updated_at"`                                                  // 更新时间

	Brand       *Brand         `gorm:"foreignKey:BrandID" json:"brand,omitempty"`              // 品牌
	SubCategory *SubCategory   `gorm:"foreignKey:SubCategoryID" json:"sub_category,omitempty"` // 子分类
	Colors      []ProductColor `gorm:"foreignKey:ProductID" json:"colors,omitempty"`           // 颜色款
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
