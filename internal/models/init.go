package models

import (
	"strings"

	"github.com/webbangiay/internal/constants"
	"github.com/webbangiay/internal/logger"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultAdminEmail    = "admin@webbangiay.vn"
	defaultAdminPassword = "admin123"
)

// InitDefaultAdmin 初始化默认管理员账号
func InitDefaultAdmin(email, password string) error {
	var count int64
	if err := DB.Model(&AdminUser{}).Where("role = ?", constants.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		email = defaultAdminEmail
	}
	if password == "" {
		password = defaultAdminPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := AdminUser{
		ID:           uuid.NewString(),
		Email:        email,
		FullName:     "Administrator",
		PasswordHash: string(hash),
		Role:         constants.RoleAdmin,
		IsActive:     true,
	}
	if err := DB.Create(&admin).Error; err != nil {
		return err
	}

	if password == defaultAdminPassword {
		logger.Warnw("default_admin_created_with_default_password", "email", email)
		logger.Warnw("default_admin_password_change_required", "email", email)
	} else {
		logger.Infow("default_admin_created", "email", email)
	}
	return nil
}
