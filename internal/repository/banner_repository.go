package repository

import (
	"errors"

	"github.com/webbangiay/internal/models"

	"gorm.io/gorm"
)

// BannerRepository Banner 数据访问接口
type BannerRepository interface {
	List(filter BannerListFilter) ([]models.Banner, int64, error)
	GetByID(id uint) (*models.Banner, error)
	Create(banner *models.Banner) error
	Update(banner *models.Banner) error
	Delete(id uint) error
	UpdateStatus(id uint, active bool) error
	Count() (int64, error)
}

// GormBannerRepository GORM 实现
type GormBannerRepository struct {
	db *gorm.DB
}

// NewBannerRepository 创建 Banner 仓库
func NewBannerRepository(db *gorm.DB) *GormBannerRepository {
	return &GormBannerRepository{db: db}
}

// List Banner 列表
func (r *GormBannerRepository) List(filter BannerListFilter) ([]models.Banner, int64, error) {
	var banners []models.Banner
	query := r.db.Model(&models.Banner{})

	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	query = applyKeyword(query, filter.Search, "title", "link")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("created_at DESC, id DESC").Find(&banners).Error; err != nil {
		return nil, 0, err
	}
	return banners, total, nil
}

// GetByID 根据 ID 获取 Banner
func (r *GormBannerRepository) GetByID(id uint) (*models.Banner, error) {
	var banner models.Banner
	if err := r.db.First(&banner, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &banner, nil
}

// Create 创建 Banner
func (r *GormBannerRepository) Create(banner *models.Banner) error {
	return r.db.Create(banner).Error
}

// Update 更新 Banner
func (r *GormBannerRepository) Update(banner *models.Banner) error {
	return r.db.Save(banner).Error
}

// Delete 删除 Banner
func (r *GormBannerRepository) Delete(id uint) error {
	return r.db.Delete(&models.Banner{}, id).Error
}

// UpdateStatus 更新启用状态
func (r *GormBannerRepository) UpdateStatus(id uint, active bool) error {
	return r.db.Model(&models.Banner{}).Where("id = ?", id).Update("is_active", active).Error
}

// Count Banner 总数
func (r *GormBannerRepository) Count() (int64, error) {
	var total int64
	err := r.db.Model(&models.Banner{}).Count(&total).Error
	return total, err
}
