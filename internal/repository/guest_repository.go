package repository

import (
	"errors"

	"github.com/webbangiay/internal/models"

	"gorm.io/gorm"
)

// GuestRepository 游客数据访问接口
type GuestRepository interface {
	GetByID(id uint) (*models.Guest, error)
	List(filter GuestListFilter) ([]models.Guest, int64, error)
	Create(guest *models.Guest) error
	Update(guest *models.Guest) error
	Delete(id uint) error
	CountOrders(id uint) (int64, error)
	WithTx(tx *gorm.DB) *GormGuestRepository
}

// GormGuestRepository GORM 实现
type GormGuestRepository struct {
	db *gorm.DB
}

// NewGuestRepository 创建游客仓库
func NewGuestRepository(db *gorm.DB) *GormGuestRepository {
	return &GormGuestRepository{db: db}
}

// WithTx 绑定事务
func (r *GormGuestRepository) WithTx(tx *gorm.DB) *GormGuestRepository {
	if tx == nil {
		return r
	}
	return &GormGuestRepository{db: tx}
}

// GetByID 根据 ID 获取游客
func (r *GormGuestRepository) GetByID(id uint) (*models.Guest, error) {
	var guest models.Guest
	if err := r.db.First(&guest, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &guest, nil
}

// List 游客列表
func (r *GormGuestRepository) List(filter GuestListFilter) ([]models.Guest, int64, error) {
	var guests []models.Guest
	query := applyKeyword(r.db.Model(&models.Guest{}), filter.Search, "full_name", "email", "phone")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("id DESC").Find(&guests).Error; err != nil {
		return nil, 0, err
	}
	return guests, total, nil
}

// Create 创建游客
func (r *GormGuestRepository) Create(guest *models.Guest) error {
	return r.db.Create(guest).Error
}

// Update 更新游客
func (r *GormGuestRepository) Update(guest *models.Guest) error {
	return r.db.Save(guest).Error
}

// Delete 删除游客
func (r *GormGuestRepository) Delete(id uint) error {
	return r.db.Delete(&models.Guest{}, id).Error
}

// CountOrders 统计游客订单数
func (r *GormGuestRepository) CountOrders(id uint) (int64, error) {
	var total int64
	err := r.db.Model(&models.Order{}).Where("guest_id = ?", id).Count(&total).Error
	return total, err
}
