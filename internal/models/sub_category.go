package models

import "time"

// SubCategory 子分类（区分性别）
type SubCategory struct {
	ID              uint      `gorm:"primarykey" json:"id"`                               // 主键
	SubCategoryName string    `gorm:"type:varchar(50);not null" json:"sub_category_name"` // 子分类名称
	Gender          string    `gorm:"type:varchar(10);not null;index" json:"gender"`      // 适用性别 MALE/FEMALE
	CategoryID      uint      `gorm:"index;not null" json:"category_id"`                  // 所属分类
	IsActive        bool      `gorm:"not null;index" json:"is_active"`                    // 是否启用
	CreatedAt       time.Time `gorm:"index" json:"created_at"`                            // 创建时间
	UpdatedAt       time.Time `json:"updated_at"`                                         // 更新时间

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 所属分类
}

// TableName 指定表名
func (SubCategory) TableName() string {
	return "sub_categories"
}
