package models

import "time"

// ProductColor 商品颜色款
type ProductColor struct {
	ID        uint      `gorm:"primarykey" json:"id"`                        // 主键
	ColorName string    `gorm:"type:varchar(50);not null" json:"color_name"` // 颜色名称
	ImageURL  string    `gorm:"type:varchar(500)" json:"image_url"`          // 主图
	ProductID uint      `gorm:"index;not null" json:"product_id"`            // 所属商品
	IsActive  bool      `gorm:"not null;index" json:"is_active"`             // 是否启用
	CreatedAt time.Time `gorm:"index" json:"created_at"`                     // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                                  // 更新时间

	Product *Product            `gorm:"foreignKey:ProductID" json:"product,omitempty"`     // 所属商品
	Sizes   []ProductSize       `gorm:"foreignKey:ProductColorID" json:"sizes,omitempty"`  // 尺码
	Images  []ProductColorImage `gorm:"foreignKey:ProductColorID" json:"images,omitempty"` // 附图
}

// TableName 指定表名
func (ProductColor) TableName() string {
	return "product_colors"
}
