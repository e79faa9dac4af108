package repository

import (
	"errors"
	"time"

	"github.com/webbangiay/internal/constants"
	"github.com/webbangiay/internal/models"

	"gorm.io/gorm"
)

// OrderRepository 订单数据访问接口
type OrderRepository interface {
	Create(order *models.Order, items []models.OrderItem) error
	GetByID(id string) (*models.Order, error)
	ExistsByID(id string) (bool, error)
	List(filter OrderListFilter) ([]models.Order, int64, error)
	ListItems(orderID string) ([]models.OrderItem, error)
	UpdateFields(id string, updates map[string]interface{}) error
	MarkPaid(id string, paidAt time.Time) (bool, error)
	UpdatePaymentMethod(id, method string) error
	Delete(id string) error
	CountByCustomer(customerID uint) (int64, error)
	SumTotalByCustomer(customerID uint) (models.Money, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) *GormOrderRepository
}

// GormOrderRepository GORM 实现
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓库
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx 绑定事务
func (r *GormOrderRepository) WithTx(tx *gorm.DB) *GormOrderRepository {
	if tx == nil {
		return r
	}
	return &GormOrderRepository{db: tx}
}

// Transaction 执行事务
func (r *GormOrderRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// Create 创建订单与订单项（订单行先写入）
func (r *GormOrderRepository) Create(order *models.Order, items []models.OrderItem) error {
	if err := r.db.Omit("Customer", "Guest", "Items").Create(order).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].OrderID = order.ID
	}
	if len(items) > 0 {
		if err := r.db.Omit("ProductSize").Create(&items).Error; err != nil {
			return err
		}
	}
	order.Items = items
	return nil
}

// GetByID 根据订单编号获取订单（带客户、游客、订单项）
func (r *GormOrderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Customer").Preload("Guest").Preload("Items").
		Where("id = ?", id).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// ExistsByID 订单编号是否已存在
func (r *GormOrderRepository) ExistsByID(id string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Order{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List 订单列表
func (r *GormOrderRepository) List(filter OrderListFilter) ([]models.Order, int64, error) {
	var orders []models.Order
	query := r.db.Model(&models.Order{})
	if filter.CustomerID > 0 {
		query = query.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.Status != "" {
		query = query.Where("order_status = ?", filter.Status)
	}
	if filter.IsPaid != nil {
		query = query.Where("is_paid = ?", *filter.IsPaid)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", filter.CreatedFrom.UTC())
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", filter.CreatedTo.UTC())
	}
	query = applyKeyword(query, filter.Keyword, "id", "order_note")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Preload("Customer").Preload("Guest").Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// ListItems 订单项（带尺码、颜色款、商品）
func (r *GormOrderRepository) ListItems(orderID string) ([]models.OrderItem, error) {
	var items []models.OrderItem
	err := r.db.Preload("ProductSize.ProductColor.Product").
		Where("order_id = ?", orderID).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateFields 按字段更新订单
func (r *GormOrderRepository) UpdateFields(id string, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&models.Order{}).Where("id = ?", id).Updates(updates).Error
}

// MarkPaid 标记订单已支付，已确认的订单不重复更新
func (r *GormOrderRepository) MarkPaid(id string, paidAt time.Time) (bool, error) {
	result := r.db.Model(&models.Order{}).
		Where("id = ?", id).
		Where("(is_paid = ? OR order_status <> ?)", false, constants.OrderStatusPaymentConfirmed).
		Updates(map[string]interface{}{
			"order_status": constants.OrderStatusPaymentConfirmed,
			"is_paid":      true,
			"paid_at":      paidAt.UTC(),
			"updated_at":   paidAt.UTC(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// UpdatePaymentMethod 更新支付方式
func (r *GormOrderRepository) UpdatePaymentMethod(id, method string) error {
	return r.db.Model(&models.Order{}).Where("id = ?", id).Updates(map[string]interface{}{
		"payment_method": method,
		"updated_at":     models.UTCNow(),
	}).Error
}

// Delete 删除订单及订单项
func (r *GormOrderRepository) Delete(id string) error {
	if err := r.db.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
		return err
	}
	return r.db.Where("id = ?", id).Delete(&models.Order{}).Error
}

// CountByCustomer 客户历史订单数
func (r *GormOrderRepository) CountByCustomer(customerID uint) (int64, error) {
	var total int64
	err := r.db.Model(&models.Order{}).Where("customer_id = ?", customerID).Count(&total).Error
	return total, err
}

// SumTotalByCustomer 客户历史订单总额
func (r *GormOrderRepository) SumTotalByCustomer(customerID uint) (models.Money, error) {
	var total models.Money
	err := r.db.Model(&models.Order{}).
		Where("customer_id = ?", customerID).
		Select("COALESCE(SUM(total_price), 0)").
		Row().
		Scan(&total)
	return total, err
}
