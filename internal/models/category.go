package models

import "time"

// Category 一级分类
type Category struct {
	ID           uint      `gorm:"primarykey" json:"id"`                                       // 主键
	CategoryName string    `gorm:"type:varchar(50);not null;uniqueIndex" json:"category_name"` // 分类名称
	IsActive     bool      `gorm:"not null;index" json:"is_active"`                            // 是否启用
	CreatedAt    time.Time `gorm:"index" json:"created_at"`                                    // 创建时间
	UpdatedAt    time.Time `json:"updated_at"`                                                 // 更新时间

	SubCategories []SubCategory `gorm:"foreignKey:CategoryID" json:"sub_categories,omitempty"` // 子分类
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}
