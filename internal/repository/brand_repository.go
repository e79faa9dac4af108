package repository

import (
	"errors"

	"github.com/webbangiay/internal/models"

	"gorm.io/gorm"
)

// BrandRepository 品牌数据访问接口
type BrandRepository interface {
	List(filter BrandListFilter) ([]models.Brand, int64, error)
	GetByID(id uint) (*models.Brand, error)
	GetByName(name string) (*models.Brand, error)
	Create(brand *models.Brand) error
	Update(brand *models.Brand) error
	Delete(id uint) error
	UpdateStatus(id uint, active bool) error
	Count() (int64, error)
	WithTx(tx *gorm.DB) *GormBrandRepository
}

// GormBrandRepository GORM 实现
type GormBrandRepository struct {
	db *gorm.DB
}

// NewBrandRepository 创建品牌仓库
func NewBrandRepository(db *gorm.DB) *GormBrandRepository {
	return &GormBrandRepository{db: db}
}

// WithTx 绑定事务
func (r *GormBrandRepository) WithTx(tx *gorm.DB) *GormBrandRepository {
	if tx == nil {
		return r
	}
	return &GormBrandRepository{db: tx}
}

// List 品牌列表
func (r *GormBrandRepository) List(filter BrandListFilter) ([]models.Brand, int64, error) {
	var brands []models.Brand
	query := r.db.Model(&models.Brand{})
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	query = applyKeyword(query, filter.Search, "brand_name")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("id desc").Find(&brands).Error; err != nil {
		return nil, 0, err
	}
	return brands, total, nil
}

// GetByID 根据 ID 获取品牌
func (r *GormBrandRepository) GetByID(id uint) (*models.Brand, error) {
	var brand models.Brand
	if err := r.db.First(&brand, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &brand, nil
}

// GetByName 根据名称获取品牌
func (r *GormBrandRepository) GetByName(name string) (*models.Brand, error) {
	var brand models.Brand
	if err := r.db.Where("brand_name = ?", name).First(&brand).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &brand, nil
}

// Create 创建品牌
func (r *GormBrandRepository) Create(brand *models.Brand) error {
	return r.db.Create(brand).Error
}

// Update 更新品牌
func (r *GormBrandRepository) Update(brand *models.Brand) error {
	return r.db.Save(brand).Error
}

// Delete 删除品牌
func (r *GormBrandRepository) Delete(id uint) error {
	return r.db.Delete(&models.Brand{}, id).Error
}

// UpdateStatus 更新启用状态
func (r *GormBrandRepository) UpdateStatus(id uint, active bool) error {
	return r.db.Model(&models.Brand{}).Where("id = ?", id).Update("is_active", active).Error
}

// Count 品牌总数
func (r *GormBrandRepository) Count() (int64, error) {
	var total int64
	err := r.db.Model(&models.Brand{}).Count(&total).Error
	return total, err
}
