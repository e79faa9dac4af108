package models

import "time"

// Banner 首页轮播图
type Banner struct {
	ID        uint      `gorm:"primarykey" json:"id"`                        // 主键
	Title     string    `gorm:"type:varchar(200);not null" json:"title"`     // 标题
	ImageURL  string    `gorm:"type:varchar(500);not null" json:"image_url"` // 图片相对路径
	Link      string    `gorm:"type:varchar(1000)" json:"link"`              // 跳转链接
	IsActive  bool      `gorm:"not null;index" json:"is_active"`             // 是否启用
	CreatedAt time.Time `gorm:"index" json:"created_at"`                     // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                                  // 更新时间
}

// TableName 指定表名
func (Banner) TableName() string {
	return "banners"
}
