package repository

import (
	"errors"

	"github.com/webbangiay/internal/models"

	"gorm.io/gorm"
)

// ProductColorImageRepository 颜色款附图数据访问接口
type ProductColorImageRepository interface {
	List() ([]models.ProductColorImage, error)
	ListByColorIDs(colorIDs []uint) ([]models.ProductColorImage, error)
	GetByID(id uint) (*models.ProductColorImage, error)
	Create(image *models.ProductColorImage) error
	Update(image *models.ProductColorImage) error
	Delete(id uint) error
	DeleteByColorIDs(colorIDs []uint) error
	WithTx(tx *gorm.DB) *GormProductColorImageRepository
}

// GormProductColorImageRepository GORM 实现
type GormProductColorImageRepository struct {
	db *gorm.DB
}

// NewProductColorImageRepository 创建附图仓库
func NewProductColorImageRepository(db *gorm.DB) *GormProductColorImageRepository {
	return &GormProductColorImageRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductColorImageRepository) WithTx(tx *gorm.DB) *GormProductColorImageRepository {
	if tx == nil {
		return r
	}
	return &GormProductColorImageRepository{db: tx}
}

// List 全部附图
func (r *GormProductColorImageRepository) List() ([]models.ProductColorImage, error) {
	var images []models.ProductColorImage
	if err := r.db.Order("id ASC").Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

// ListByColorIDs 颜色款下的附图
func (r *GormProductColorImageRepository) ListByColorIDs(colorIDs []uint) ([]models.ProductColorImage, error) {
	if len(colorIDs) == 0 {
		return []models.ProductColorImage{}, nil
	}
	var images []models.ProductColorImage
	if err := r.db.Where("product_color_id IN ?", colorIDs).Order("id ASC").Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

// GetByID 根据 ID 获取附图
func (r *GormProductColorImageRepository) GetByID(id uint) (*models.ProductColorImage, error) {
	var image models.ProductColorImage
	if err := r.db.First(&image, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &image, nil
}

// Create 创建附图
func (r *GormProductColorImageRepository) Create(image *models.ProductColorImage) error {
	return r.db.Create(image).Error
}

// Update 更新附图
func (r *GormProductColorImageRepository) Update(image *models.ProductColorImage) error {
	return r.db.Save(image).Error
}

// Delete 删除附图
func (r *GormProductColorImageRepository) Delete(id uint) error {
	return r.db.Delete(&models.ProductColorImage{}, id).Error
}

// DeleteByColorIDs 删除颜色款下的全部附图
func (r *GormProductColorImageRepository) DeleteByColorIDs(colorIDs []uint) error {
	if len(colorIDs) == 0 {
		return nil
	}
	return r.db.Where("product_color_id IN ?", colorIDs).Delete(&models.ProductColorImage{}).Error
}
