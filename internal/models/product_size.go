package models

import "time"

// ProductSize 颜色款下的尺码库存
type ProductSize struct {
	ID             uint      `gorm:"primarykey" json:"id"`                     // 主键
	SizeValue      int       `gorm:"not null" json:"size_value"`               // 尺码
	StockQuantity  int       `gorm:"not null;default:0" json:"stock_quantity"` // 库存
	ProductColorID uint      `gorm:"index;not null" json:"product_color_id"`   // 所属颜色款
	IsActive       bool      `gorm:"not null;index" json:"is_active"`          // 是否启用
	CreatedAt      time.Time `gorm:"index" json:"created_at"`                  // 创建时间
	UpdatedAt      time.Time `json:"updated_at"`                               // 更新时间

	ProductColor *ProductColor `gorm:"foreignKey:ProductColorID" json:"product_color,omitempty"` // 所属颜色款
}

// TableName 指定表名
func (ProductSize) TableName() string {
	return "product_sizes"
}
