package models

import "time"

// ProductColorImage 颜色款附图
type ProductColorImage struct {
	ID             uint      `gorm:"primarykey" json:"id"`                        // 主键
	ProductColorID uint      `gorm:"index;not null" json:"product_color_id"`      // 所属颜色款
	ImageURL       string    `gorm:"type:varchar(500);not null" json:"image_url"` // 图片相对路径
	CreatedAt      time.Time `gorm:"index" json:"created_at"`                     // 创建时间
}

// TableName 指定表名
func (ProductColorImage) TableName() string {
	return "product_color_images"
}
