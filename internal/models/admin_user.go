package models

import "time"

// AdminUser 后台用户（管理员/员工）
type AdminUser struct {
	ID                 string     `gorm:"primarykey;type:varchar(36)" json:"id"`               // 主键（UUID）
	FullName           string     `gorm:"type:varchar(50);not null" json:"full_name"`          // 姓名
	Email              string     `gorm:"type:varchar(256);not null;uniqueIndex" json:"email"` // 登录邮箱
	PasswordHash       string     `gorm:"not null" json:"-"`                                   // 密码哈希（不返回给前端）
	Role               string     `gorm:"type:varchar(20);not null;index" json:"role"`         // 角色 ADMIN/EMPLOYEE
	AvatarURL          string     `gorm:"type:varchar(500)" json:"avatar_url"`                 // 头像
	IsActive           bool       `gorm:"not null;index" json:"is_active"`                     // 是否启用
	TokenVersion       uint64     `gorm:"not null;default:0" json:"-"`                         // Token 版本（用于全量失效）
	TokenInvalidBefore *time.Time `gorm:"index" json:"-"`                                      // 该时间点前签发的 Token 失效
	LastLoginAt        *time.Time `json:"last_login_at"`                                       // 最后登录时间
	CreatedAt          time.Time  `gorm:"index" json:"created_at"`                             // 创建时间
	UpdatedAt          time.Time  `json:"updated_at"`                                          // 更新时间
}

// TableName 指定表名
func (AdminUser) TableName() string {
	return "admin_users"
}
