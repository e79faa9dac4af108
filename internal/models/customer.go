package models

import "time"

// Customer 注册客户
type Customer struct {
	ID                 uint       `gorm:"primarykey" json:"id"`                                // 主键
	FullName           string     `gorm:"type:varchar(100);not null" json:"full_name"`         // 姓名
	Email              string     `gorm:"type:varchar(256);not null;uniqueIndex" json:"email"` // 邮箱
	PasswordHash       string     `gorm:"not null" json:"-"`                                   // 密码哈希
	Phone              string     `gorm:"type:varchar(20)" json:"phone"`                       // 电话
	Address            string     `gorm:"type:varchar(255)" json:"address"`                    // 地址
	Address2           string     `gorm:"type:varchar(255)" json:"address2"`                   // 备用地址
	City               string     `gorm:"type:varchar(100)" json:"city"`                       // 城市
	EmailConfirmed     bool       `gorm:"not null;default:false" json:"email_confirmed"`       // 邮箱是否确认
	IsActive           bool       `gorm:"not null;index" json:"is_active"`                     // 是否启用
	TokenVersion       uint64     `gorm:"not null;default:0" json:"-"`                         // Token 版本
	TokenInvalidBefore *time.Time `json:"-"`                                                   // 该时间点前签发的 Token 失效
	LastLoginAt        *time.Time `json:"last_login_at"`                                       // 最后登录时间
	CreatedAt          time.Time  `gorm:"index" json:"created_at"`                             // 创建时间
	UpdatedAt          time.Time  `json:"updated_at"`                                          // 更新时间
}

// TableName 指定表名
func (Customer) TableName() string {
	return "customers"
}
