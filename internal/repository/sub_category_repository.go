package repository

import (
	"errors"
	"strings"

	"github.com/webbangiay/internal/models"

	"gorm.io/gorm"
)

// SubCategoryRepository 子分类数据访问接口
type SubCategoryRepository interface {
	List(filter SubCategoryListFilter) ([]models.SubCategory, int64, error)
	GetByID(id uint) (*models.SubCategory, error)
	Create(subCategory *models.SubCategory) error
	Update(subCategory *models.SubCategory) error
	Delete(id uint) error
	UpdateStatus(id uint, active bool) error
	CountByCategory(categoryID uint, onlyActive bool) (int64, error)
	WithTx(tx *gorm.DB) *GormSubCategoryRepository
}

// GormSubCategoryRepository GORM 实现
type GormSubCategoryRepository struct {
	db *gorm.DB
}

// NewSubCategoryRepository 创建子分类仓库
func NewSubCategoryRepository(db *gorm.DB) *GormSubCategoryRepository {
	return &GormSubCategoryRepository{db: db}
}

// WithTx 绑定事务
func (r *GormSubCategoryRepository) WithTx(tx *gorm.DB) *GormSubCategoryRepository {
	if tx == nil {
		return r
	}
	return &GormSubCategoryRepository{db: tx}
}

// List 子分类列表（带所属分类）
func (r *GormSubCategoryRepository) List(filter SubCategoryListFilter) ([]models.SubCategory, int64, error) {
	var subCategories []models.SubCategory
	query := r.db.Model(&models.SubCategory{})
	if filter.CategoryID > 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if gender := strings.ToUpper(strings.TrimSpace(filter.Gender)); gender != "" {
		query = query.Where("gender = ?", gender)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	query = applyKeyword(query, filter.Search, "sub_category_name")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Preload("Category").Order("id asc").Find(&subCategories).Error; err != nil {
		return nil, 0, err
	}
	return subCategories, total, nil
}

// GetByID 根据 ID 获取子分类（带所属分类）
func (r *GormSubCategoryRepository) GetByID(id uint) (*models.SubCategory, error) {
	var subCategory models.SubCategory
	if err := r.db.Preload("Category").First(&subCategory, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &subCategory, nil
}

// Create 创建子分类
func (r *GormSubCategoryRepository) Create(subCategory *models.SubCategory) error {
	return r.db.Omit("Category").Create(subCategory).Error
}

// Update 更新子分类
func (r *GormSubCategoryRepository) Update(subCategory *models.SubCategory) error {
	return r.db.Omit("Category").Save(subCategory).Error
}

// Delete 删除子分类
func (r *GormSubCategoryRepository) Delete(id uint) error {
	return r.db.Delete(&models.SubCategory{}, id).Error
}

// UpdateStatus 更新启用状态
func (r *GormSubCategoryRepository) UpdateStatus(id uint, active bool) error {
	return r.db.Model(&models.SubCategory{}).Where("id = ?", id).Update("is_active", active).Error
}

// CountByCategory 统计分类下的子分类数量
func (r *GormSubCategoryRepository) CountByCategory(categoryID uint, onlyActive bool) (int64, error) {
	var total int64
	query := r.db.Model(&models.SubCategory{}).Where("category_id = ?", categoryID)
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}
	err := query.Count(&total).Error
	return total, err
}
