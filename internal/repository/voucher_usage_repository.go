package repository

import (
	"github.com/webbangiay/internal/models"

	"gorm.io/gorm"
)

// VoucherUsageRepository 优惠券使用记录数据访问接口
type VoucherUsageRepository interface {
	Create(usage *models.VoucherUsage) error
	ExistsByVoucherAndCustomer(voucherID, customerID uint) (bool, error)
	List(filter VoucherUsageListFilter) ([]models.VoucherUsage, int64, error)
	ListByOrder(orderID string) ([]models.VoucherUsage, error)
	DeleteByOrder(orderID string) error
	WithTx(tx *gorm.DB) *GormVoucherUsageRepository
}

// GormVoucherUsageRepository GORM 实现
type GormVoucherUsageRepository struct {
	db *gorm.DB
}

// NewVoucherUsageRepository 创建优惠券使用记录仓库
func NewVoucherUsageRepository(db *gorm.DB) *GormVoucherUsageRepository {
	return &GormVoucherUsageRepository{db: db}
}

// WithTx 绑定事务
func (r *GormVoucherUsageRepository) WithTx(tx *gorm.DB) *GormVoucherUsageRepository {
	if tx == nil {
		return r
	}
	return &GormVoucherUsageRepository{db: tx}
}

// Create 创建使用记录
func (r *GormVoucherUsageRepository) Create(usage *models.VoucherUsage) error {
	return r.db.Omit("Voucher").Create(usage).Error
}

// ExistsByVoucherAndCustomer 客户是否已使用过该优惠券
func (r *GormVoucherUsageRepository) ExistsByVoucherAndCustomer(voucherID, customerID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.VoucherUsage{}).
		Where("voucher_id = ? AND customer_id = ?", voucherID, customerID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List 使用记录列表（带优惠券）
func (r *GormVoucherUsageRepository) List(filter VoucherUsageListFilter) ([]models.VoucherUsage, int64, error) {
	var usages []models.VoucherUsage
	query := r.db.Model(&models.VoucherUsage{})
	if filter.VoucherID > 0 {
		query = query.Where("voucher_id = ?", filter.VoucherID)
	}
	if filter.CustomerID > 0 {
		query = query.Where("customer_id = ?", filter.CustomerID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Preload("Voucher").Order("used_at desc, id desc").Find(&usages).Error; err != nil {
		return nil, 0, err
	}
	return usages, total, nil
}

// ListByOrder 订单关联的使用记录
func (r *GormVoucherUsageRepository) ListByOrder(orderID string) ([]models.VoucherUsage, error) {
	var usages []models.VoucherUsage
	if err := r.db.Where("order_id = ?", orderID).Find(&usages).Error; err != nil {
		return nil, err
	}
	return usages, nil
}

// DeleteByOrder 删除订单关联的使用记录
func (r *GormVoucherUsageRepository) DeleteByOrder(orderID string) error {
	return r.db.Where("order_id = ?", orderID).Delete(&models.VoucherUsage{}).Error
}
