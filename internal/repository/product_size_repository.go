package repository

import (
	"errors"

	"github.com/webbangiay/internal/models"

	"gorm.io/gorm"
)

// ProductSizeRepository 尺码数据访问接口
type ProductSizeRepository interface {
	List() ([]models.ProductSize, error)
	ListByColor(colorID uint, onlyActive bool) ([]models.ProductSize, error)
	ListByIDs(ids []uint) ([]models.ProductSize, error)
	GetByID(id uint) (*models.ProductSize, error)
	Create(size *models.ProductSize) error
	Update(size *models.ProductSize) error
	Delete(id uint) error
	DeleteByColorIDs(colorIDs []uint) error
	UpdateStatus(id uint, active bool) error
	DeactivateByColor(colorID uint) (int64, error)
	CountOrderedByColorIDs(colorIDs []uint) (int64, error)
	CountOrdered(sizeID uint) (int64, error)
	WithTx(tx *gorm.DB) *GormProductSizeRepository
}

// GormProductSizeRepository GORM 实现
type GormProductSizeRepository struct {
	db *gorm.DB
}

// NewProductSizeRepository 创建尺码仓库
func NewProductSizeRepository(db *gorm.DB) *GormProductSizeRepository {
	return &GormProductSizeRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductSizeRepository) WithTx(tx *gorm.DB) *GormProductSizeRepository {
	if tx == nil {
		return r
	}
	return &GormProductSizeRepository{db: tx}
}

// List 全部尺码
func (r *GormProductSizeRepository) List() ([]models.ProductSize, error) {
	var sizes []models.ProductSize
	if err := r.db.Order("product_color_id ASC, size_value ASC").Find(&sizes).Error; err != nil {
		return nil, err
	}
	return sizes, nil
}

// ListByColor 颜色款下的尺码
func (r *GormProductSizeRepository) ListByColor(colorID uint, onlyActive bool) ([]models.ProductSize, error) {
	var sizes []models.ProductSize
	query := r.db.Where("product_color_id = ?", colorID)
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Order("size_value ASC").Find(&sizes).Error; err != nil {
		return nil, err
	}
	return sizes, nil
}

// ListByIDs 批量获取尺码（带颜色款与商品）
func (r *GormProductSizeRepository) ListByIDs(ids []uint) ([]models.ProductSize, error) {
	if len(ids) == 0 {
		return []models.ProductSize{}, nil
	}
	var sizes []models.ProductSize
	if err := r.db.Preload("ProductColor.Product").Where("id IN ?", ids).Find(&sizes).Error; err != nil {
		return nil, err
	}
	return sizes, nil
}

// GetByID 根据 ID 获取尺码（带颜色款）
func (r *GormProductSizeRepository) GetByID(id uint) (*models.ProductSize, error) {
	var size models.ProductSize
	if err := r.db.Preload("ProductColor").First(&size, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &size, nil
}

// Create 创建尺码
func (r *GormProductSizeRepository) Create(size *models.ProductSize) error {
	return r.db.Omit("ProductColor").Create(size).Error
}

// Update 更新尺码
func (r *GormProductSizeRepository) Update(size *models.ProductSize) error {
	return r.db.Omit("ProductColor").Save(size).Error
}

// Delete 删除尺码
func (r *GormProductSizeRepository) Delete(id uint) error {
	return r.db.Delete(&models.ProductSize{}, id).Error
}

// DeleteByColorIDs 删除颜色款下的全部尺码
func (r *GormProductSizeRepository) DeleteByColorIDs(colorIDs []uint) error {
	if len(colorIDs) == 0 {
		return nil
	}
	return r.db.Where("product_color_id IN ?", colorIDs).Delete(&models.ProductSize{}).Error
}

// UpdateStatus 更新启用状态
func (r *GormProductSizeRepository) UpdateStatus(id uint, active bool) error {
	return r.db.Model(&models.ProductSize{}).Where("id = ?", id).Update("is_active", active).Error
}

// DeactivateByColor 停用颜色款下的全部尺码
func (r *GormProductSizeRepository) DeactivateByColor(colorID uint) (int64, error) {
	result := r.db.Model(&models.ProductSize{}).
		Where("product_color_id = ? AND is_active = ?", colorID, true).
		Update("is_active", false)
	return result.RowsAffected, result.Error
}

// CountOrderedByColorIDs 统计颜色款尺码被订单引用的次数
func (r *GormProductSizeRepository) CountOrderedByColorIDs(colorIDs []uint) (int64, error) {
	if len(colorIDs) == 0 {
		return 0, nil
	}
	var total int64
	err := r.db.Model(&models.OrderItem{}).
		Joins("JOIN product_sizes ps ON ps.id = order_items.product_size_id").
		Where("ps.product_color_id IN ?", colorIDs).
		Count(&total).Error
	return total, err
}

// CountOrdered 统计尺码被订单引用的次数
func (r *GormProductSizeRepository) CountOrdered(sizeID uint) (int64, error) {
	var total int64
	err := r.db.Model(&models.OrderItem{}).Where("product_size_id = ?", sizeID).Count(&total).Error
	return total, err
}
