package repository

import (
	"errors"
	"strings"

	"github.com/webbangiay/internal/models"

	"gorm.io/gorm"
)

// VoucherRepository 优惠券数据访问接口
type VoucherRepository interface {
	GetByID(id uint) (*models.Voucher, error)
	GetByCode(code string) (*models.Voucher, error)
	ListActive() ([]models.Voucher, error)
	List(filter VoucherListFilter) ([]models.Voucher, int64, error)
	Create(voucher *models.Voucher) error
	Update(voucher *models.Voucher) error
	Delete(id uint) error
	UpdateStatus(id uint, active bool) error
	IncrementUsedCountWithLimit(id uint) (bool, error)
	DecrementUsedCount(id uint) error
	WithTx(tx *gorm.DB) *GormVoucherRepository
}

// GormVoucherRepository GORM 实现
type GormVoucherRepository struct {
	db *gorm.DB
}

// NewVoucherRepository 创建优惠券仓库
func NewVoucherRepository(db *gorm.DB) *GormVoucherRepository {
	return &GormVoucherRepository{db: db}
}

// WithTx 绑定事务
func (r *GormVoucherRepository) WithTx(tx *gorm.DB) *GormVoucherRepository {
	if tx == nil {
		return r
	}
	return &GormVoucherRepository{db: tx}
}

// GetByID 根据ID获取优惠券
func (r *GormVoucherRepository) GetByID(id uint) (*models.Voucher, error) {
	var voucher models.Voucher
	if err := r.db.First(&voucher, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &voucher, nil
}

// GetByCode 根据优惠码获取优惠券
func (r *GormVoucherRepository) GetByCode(code string) (*models.Voucher, error) {
	var voucher models.Voucher
	if err := r.db.Where("code = ?", strings.TrimSpace(code)).First(&voucher).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &voucher, nil
}

// ListActive 全部启用中的优惠券（按 ID 倒序）
func (r *GormVoucherRepository) ListActive() ([]models.Voucher, error) {
	var vouchers []models.Voucher
	if err := r.db.Where("is_active = ?", true).Order("id desc").Find(&vouchers).Error; err != nil {
		return nil, err
	}
	return vouchers, nil
}

// List 获取优惠券列表
func (r *GormVoucherRepository) List(filter VoucherListFilter) ([]models.Voucher, int64, error) {
	var vouchers []models.Voucher
	query := r.db.Model(&models.Voucher{})
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	query = applyKeyword(query, filter.Search, "code", "name")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("id desc").Find(&vouchers).Error; err != nil {
		return nil, 0, err
	}
	return vouchers, total, nil
}

// Create 创建优惠券
func (r *GormVoucherRepository) Create(voucher *models.Voucher) error {
	return r.db.Create(voucher).Error
}

// Update 更新优惠券
// used_count 只由 IncrementUsedCountWithLimit 维护，这里不写入
func (r *GormVoucherRepository) Update(voucher *models.Voucher) error {
	return r.db.Model(voucher).
		Select(voucherEditableColumns).
		Updates(voucher).Error
}

var voucherEditableColumns = []string{
	"code",
	"name",
	"description",
	"discount_type",
	"discount_value",
	"max_discount",
	"min_order_value",
	"condition_type",
	"condition_value",
	"start_date",
	"end_date",
	"usage_limit",
	"is_active",
	"updated_at",
}

// Delete 删除优惠券
func (r *GormVoucherRepository) Delete(id uint) error {
	return r.db.Delete(&models.Voucher{}, id).Error
}

// UpdateStatus 更新启用状态
func (r *GormVoucherRepository) UpdateStatus(id uint, active bool) error {
	return r.db.Model(&models.Voucher{}).Where("id = ?", id).Update("is_active", active).Error
}

// IncrementUsedCountWithLimit 在未达上限时原子增加使用次数，返回是否成功
func (r *GormVoucherRepository) IncrementUsedCountWithLimit(id uint) (bool, error) {
	result := r.db.Model(&models.Voucher{}).
		Where("id = ?", id).
		Where("(usage_limit = 0 OR used_count < usage_limit)").
		UpdateColumn("used_count", gorm.Expr("used_count + ?", 1))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// DecrementUsedCount 减少优惠券使用次数
func (r *GormVoucherRepository) DecrementUsedCount(id uint) error {
	return r.db.Model(&models.Voucher{}).
		Where("id = ?", id).
		Where("used_count >= ?", 1).
		UpdateColumn("used_count", gorm.Expr("used_count - ?", 1)).Error
}
