package repository

import (
	"errors"

	"github.com/webbangiay/internal/models"

	"gorm.io/gorm"
)

// ProductColorRepository 颜色款数据访问接口
type ProductColorRepository interface {
	List() ([]models.ProductColor, error)
	ListByProduct(productID uint, onlyActive bool) ([]models.ProductColor, error)
	GetByID(id uint) (*models.ProductColor, error)
	Create(color *models.ProductColor) error
	Update(color *models.ProductColor) error
	Delete(id uint) error
	DeleteByProduct(productID uint) error
	UpdateStatus(id uint, active bool) error
	WithTx(tx *gorm.DB) *GormProductColorRepository
}

// GormProductColorRepository GORM 实现
type GormProductColorRepository struct {
	db *gorm.DB
}

// NewProductColorRepository 创建颜色款仓库
func NewProductColorRepository(db *gorm.DB) *GormProductColorRepository {
	return &GormProductColorRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductColorRepository) WithTx(tx *gorm.DB) *GormProductColorRepository {
	if tx == nil {
		return r
	}
	return &GormProductColorRepository{db: tx}
}

// List 全部颜色款
func (r *GormProductColorRepository) List() ([]models.ProductColor, error) {
	var colors []models.ProductColor
	if err := r.db.Order("id ASC").Find(&colors).Error; err != nil {
		return nil, err
	}
	return colors, nil
}

// ListByProduct 商品下的颜色款
func (r *GormProductColorRepository) ListByProduct(productID uint, onlyActive bool) ([]models.ProductColor, error) {
	var colors []models.ProductColor
	query := r.db.Where("product_id = ?", productID)
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Order("id ASC").Find(&colors).Error; err != nil {
		return nil, err
	}
	return colors, nil
}

// GetByID 根据 ID 获取颜色款（带所属商品）
func (r *GormProductColorRepository) GetByID(id uint) (*models.ProductColor, error) {
	var color models.ProductColor
	if err := r.db.Preload("Product").First(&color, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &color, nil
}

// Create 创建颜色款
func (r *GormProductColorRepository) Create(color *models.ProductColor) error {
	return r.db.Omit("Product", "Sizes", "Images").Create(color).Error
}

// Update 更新颜色款
func (r *GormProductColorRepository) Update(color *models.ProductColor) error {
	return r.db.Omit("Product", "Sizes", "Images").Save(color).Error
}

// Delete 删除颜色款
func (r *GormProductColorRepository) Delete(id uint) error {
	return r.db.Delete(&models.ProductColor{}, id).Error
}

// DeleteByProduct 删除商品下全部颜色款
func (r *GormProductColorRepository) DeleteByProduct(productID uint) error {
	return r.db.Where("product_id = ?", productID).Delete(&models.ProductColor{}).Error
}

// UpdateStatus 更新启用状态
func (r *GormProductColorRepository) UpdateStatus(id uint, active bool) error {
	return r.db.Model(&models.ProductColor{}).Where("id = ?", id).Update("is_active", active).Error
}
