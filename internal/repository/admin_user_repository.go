package repository

import (
	"errors"
	"strings"

	"github.com/webbangiay/internal/models"

	"gorm.io/gorm"
)

// AdminUserRepository 后台用户数据访问接口
type AdminUserRepository interface {
	GetByEmail(email string) (*models.AdminUser, error)
	GetByID(id string) (*models.AdminUser, error)
	List(filter AdminUserListFilter) ([]models.AdminUser, int64, error)
	CountByRole(role string) (int64, error)
	Create(user *models.AdminUser) error
	Update(user *models.AdminUser) error
	Delete(id string) error
}

// GormAdminUserRepository GORM 实现
type GormAdminUserRepository struct {
	db *gorm.DB
}

// NewAdminUserRepository 创建后台用户仓库
func NewAdminUserRepository(db *gorm.DB) *GormAdminUserRepository {
	return &GormAdminUserRepository{db: db}
}

// GetByEmail 根据邮箱获取后台用户
func (r *GormAdminUserRepository) GetByEmail(email string) (*models.AdminUser, error) {
	var user models.AdminUser
	if err := r.db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetByID 根据 ID 获取后台用户
func (r *GormAdminUserRepository) GetByID(id string) (*models.AdminUser, error) {
	var user models.AdminUser
	if err := r.db.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// List 后台用户列表
func (r *GormAdminUserRepository) List(filter AdminUserListFilter) ([]models.AdminUser, int64, error) {
	var users []models.AdminUser
	query := r.db.Model(&models.AdminUser{})
	if role := strings.ToUpper(strings.TrimSpace(filter.Role)); role != "" {
		query = query.Where("role = ?", role)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	query = applyKeyword(query, filter.Search, "full_name", "email")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// CountByRole 按角色统计启用中的后台用户
func (r *GormAdminUserRepository) CountByRole(role string) (int64, error) {
	var total int64
	err := r.db.Model(&models.AdminUser{}).
		Where("role = ? AND is_active = ?", role, true).
		Count(&total).Error
	return total, err
}

// Create 创建后台用户
func (r *GormAdminUserRepository) Create(user *models.AdminUser) error {
	return r.db.Create(user).Error
}

// Update 更新后台用户
func (r *GormAdminUserRepository) Update(user *models.AdminUser) error {
	return r.db.Save(user).Error
}

// Delete 删除后台用户
func (r *GormAdminUserRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&models.AdminUser{}).Error
}
