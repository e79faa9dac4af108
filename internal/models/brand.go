package models

import "time"

// Brand 品牌
type Brand struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                     // 主键
	BrandName string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"brand_name"` // 品牌名称
	ImageURL  string    `gorm:"type:varchar(500)" json:"image_url"`                       // 品牌图片
	IsActive  bool      `gorm:"not null;index" json:"is_active"`                          // 是否启用
	CreatedAt time.Time `gorm:"index" json:"created_at"`                                  // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                                               // 更新时间
}

// TableName 指定表名
func (Brand) TableName() string {
	return "brands"
}
