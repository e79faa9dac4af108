package models

import "time"

// Guest 游客下单时留下的联系信息
type Guest struct {
	ID        uint      `gorm:"primarykey" json:"id"`                        // 主键
	FullName  string    `gorm:"type:varchar(100);not null" json:"full_name"` // 姓名
	Email     string    `gorm:"type:varchar(256);index" json:"email"`        // 邮箱
	Phone     string    `gorm:"type:varchar(20)" json:"phone"`               // 电话
	Address   string    `gorm:"type:varchar(255)" json:"address"`            // 地址
	Address2  string    `gorm:"type:varchar(255)" json:"address2"`           // 备用地址
	City      string    `gorm:"type:varchar(100)" json:"city"`               // 城市
	CreatedAt time.Time `gorm:"index" json:"created_at"`                     // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                                  // 更新时间
}

// TableName 指定表名
func (Guest) TableName() string {
	return "guests"
}
