package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/webbangiay/internal/config"
	"github.com/webbangiay/internal/constants"
	"github.com/webbangiay/internal/logger"
	"github.com/webbangiay/internal/metrics"
	"github.com/webbangiay/internal/models"
	"github.com/webbangiay/internal/queue"
	"github.com/webbangiay/internal/repository"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const maxOrderIDSuffix = 99

// OrderService 订单服务
type OrderService struct {
	orderRepo    repository.OrderRepository
	guestRepo    repository.GuestRepository
	customerRepo repository.CustomerRepository
	sizeRepo     repository.ProductSizeRepository
	voucherRepo  repository.VoucherRepository
	usageRepo    repository.VoucherUsageRepository
	queueClient  *queue.Client
	loc          *time.Location
	now          func() time.Time
}

// NewOrderService 创建订单服务
func NewOrderService(
	cfg *config.Config,
	orderRepo repository.OrderRepository,
	guestRepo repository.GuestRepository,
	customerRepo repository.CustomerRepository,
	sizeRepo repository.ProductSizeRepository,
	voucherRepo repository.VoucherRepository,
	usageRepo repository.VoucherUsageRepository,
	queueClient *queue.Client,
) *OrderService {
	timezone := ""
	if cfg != nil {
		timezone = cfg.Server.Timezone
	}
	return &OrderService{
		orderRepo:    orderRepo,
		guestRepo:    guestRepo,
		customerRepo: customerRepo,
		sizeRepo:     sizeRepo,
		voucherRepo:  voucherRepo,
		usageRepo:    usageRepo,
		queueClient:  queueClient,
		loc:          resolveLocation(timezone),
		now:          time.Now,
	}
}

// GuestInput 游客联系信息
type GuestInput struct {
	FullName string
	Email    string
	Phone    string
	Address  string
	Address2 string
	City     string
}

// Validate 校验游客信息
func (g GuestInput) Validate() error {
	return validation.ValidateStruct(&g,
		validation.Field(&g.FullName, validation.Required, validation.Length(1, 100)),
		validation.Field(&g.Email, is.EmailFormat, validation.Length(0, 256)),
		validation.Field(&g.Phone, validation.Required, validation.Length(6, 20)),
		validation.Field(&g.Address, validation.Length(0, 255)),
		validation.Field(&g.Address2, validation.Length(0, 255)),
		validation.Field(&g.City, validation.Length(0, 100)),
	)
}

// CreateOrderItemInput 下单商品项
type CreateOrderItemInput struct {
	ProductSizeID uint
	Quantity      int
	Price         models.Money
}

// CreateOrderInput 创建订单输入（CustomerID 为 0 时按游客下单）
type CreateOrderInput struct {
	CustomerID uint
	Guest      *GuestInput
	Note       string
	IsPaid     bool
	Items      []CreateOrderItemInput
}

// UpdateOrderInput 后台更新订单输入
type UpdateOrderInput struct {
	Note   *string
	IsPaid bool
}

// OrderItemView 订单项展示
type OrderItemView struct {
	ID            uint         `json:"id"`
	ProductSizeID uint         `json:"product_size_id"`
	ProductID     uint         `json:"product_id"`
	ProductName   string       `json:"product_name"`
	ColorName     string       `json:"color_name"`
	ImageURL      string       `json:"image_url"`
	SizeValue     int          `json:"size_value"`
	Quantity      int          `json:"quantity"`
	UnitPrice     models.Money `json:"unit_price"`
}

// CreateOrder 创建订单：游客信息、订单行、订单项在同一事务内写入
func (s *OrderService) CreateOrder(input CreateOrderInput) (*models.Order, error) {
	if len(input.Items) == 0 {
		return nil, ErrOrderItemsEmpty
	}
	for _, item := range input.Items {
		if item.ProductSizeID == 0 || item.Quantity <= 0 || item.Price.Decimal.LessThan(decimal.Zero) {
			return nil, ErrOrderItemInvalid
		}
	}
	if input.CustomerID == 0 {
		if input.Guest == nil {
			return nil, ErrGuestInfoRequired
		}
		guest := normalizeGuestInput(*input.Guest)
		if err := guest.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		input.Guest = &guest
	}

	var created *models.Order
	err := s.orderRepo.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		sizeRepo := s.sizeRepo.WithTx(tx)

		order := &models.Order{
			IsPaid:        input.IsPaid,
			PaymentMethod: constants.PaymentMethodCashOnDelivery,
			OrderStatus:   constants.OrderStatusProcessing,
			OrderNote:     strings.TrimSpace(input.Note),
		}
		if input.CustomerID != 0 {
			customer, err := s.customerRepo.WithTx(tx).GetByID(input.CustomerID)
			if err != nil {
				return err
			}
			if customer == nil {
				return ErrCustomerNotFound
			}
			cid := customer.ID
			order.CustomerID = &cid
		} else {
			guest := &models.Guest{
				FullName: input.Guest.FullName,
				Email:    input.Guest.Email,
				Phone:    input.Guest.Phone,
				Address:  input.Guest.Address,
				Address2: input.Guest.Address2,
				City:     input.Guest.City,
			}
			if err := s.guestRepo.WithTx(tx).Create(guest); err != nil {
				return err
			}
			gid := guest.ID
			order.GuestID = &gid
		}

		items, total, err := buildOrderItems(sizeRepo, input.Items)
		if err != nil {
			return err
		}
		order.TotalPrice = total

		orderID, err := s.nextOrderID(orderRepo)
		if err != nil {
			return err
		}
		order.ID = orderID
		if input.IsPaid {
			paidAt := s.now()
			order.PaidAt = &paidAt
		}
		if err := orderRepo.Create(order, items); err != nil {
			return err
		}
		created = order
		return nil
	})
	metrics.RecordOrderOperation("create", err == nil)
	if err != nil {
		logger.Warnw("order_create_failed",
			"customer_id", input.CustomerID,
			"items", len(input.Items),
			"error", err,
		)
		return nil, err
	}
	logger.Infow("order_created",
		"order_id", created.ID,
		"customer_id", input.CustomerID,
		"guest_id", created.GuestID,
		"total_price", created.TotalPrice.String(),
	)
	s.enqueueStatisticsRefresh("order_created")
	return created, nil
}

func normalizeGuestInput(in GuestInput) GuestInput {
	return GuestInput{
		FullName: strings.TrimSpace(in.FullName),
		Email:    strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:    strings.TrimSpace(in.Phone),
		Address:  strings.TrimSpace(in.Address),
		Address2: strings.TrimSpace(in.Address2),
		City:     strings.TrimSpace(in.City),
	}
}

func buildOrderItems(sizeRepo repository.ProductSizeRepository, inputs []CreateOrderItemInput) ([]models.OrderItem, models.Money, error) {
	ids := make([]uint, 0, len(inputs))
	for _, item := range inputs {
		ids = append(ids, item.ProductSizeID)
	}
	sizes, err := sizeRepo.ListByIDs(ids)
	if err != nil {
		return nil, models.Money{}, err
	}
	known := make(map[uint]struct{}, len(sizes))
	for _, size := range sizes {
		known[size.ID] = struct{}{}
	}

	total := decimal.Zero
	items := make([]models.OrderItem, 0, len(inputs))
	for _, item := range inputs {
		if _, ok := known[item.ProductSizeID]; !ok {
			return nil, models.Money{}, fmt.Errorf("%w: product size %d", ErrOrderItemInvalid, item.ProductSizeID)
		}
		total = total.Add(item.Price.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity))))
		items = append(items, models.OrderItem{
			ProductSizeID: item.ProductSizeID,
			Quantity:      item.Quantity,
			UnitPrice:     item.Price,
		})
	}
	return items, models.NewMoneyFromDecimal(total), nil
}

// nextOrderID 生成 ddMMyyyyHHmmss 订单编号，同一秒内冲突时追加 -01..-99
func (s *OrderService) nextOrderID(orderRepo repository.OrderRepository) (string, error) {
	base := s.now().In(s.loc).Format(constants.OrderIDLayout)
	exists, err := orderRepo.ExistsByID(base)
	if err != nil {
		return "", err
	}
	if !exists {
		return base, nil
	}
	for i := 1; i <= maxOrderIDSuffix; i++ {
		candidate := fmt.Sprintf("%s-%02d", base, i)
		exists, err := orderRepo.ExistsByID(candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", ErrOrderIDExhausted
}

// GetOrder 获取订单
func (s *OrderService) GetOrder(id string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// PayableAmount 应付金额：订单总额减去已使用优惠券的优惠金额，不低于 0
func (s *OrderService) PayableAmount(order *models.Order) (models.Money, models.Money, error) {
	if order == nil {
		return models.Money{}, models.Money{}, ErrOrderNotFound
	}
	usages, err := s.usageRepo.ListByOrder(order.ID)
	if err != nil {
		return models.Money{}, models.Money{}, err
	}
	discount := decimal.Zero
	for _, usage := range usages {
		discount = discount.Add(usage.DiscountAmount.Decimal)
	}
	payable := order.TotalPrice.Decimal.Sub(discount)
	if payable.IsNegative() {
		payable = decimal.Zero
	}
	return models.NewMoneyFromDecimal(payable), models.NewMoneyFromDecimal(discount), nil
}

// GetCustomerOrder 获取客户自己的订单
func (s *OrderService) GetCustomerOrder(customerID uint, id string) (*models.Order, error) {
	order, err := s.GetOrder(id)
	if err != nil {
		return nil, err
	}
	if order.CustomerID == nil || *order.CustomerID != customerID {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListOrders 后台订单列表
func (s *OrderService) ListOrders(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.List(filter)
}

// ListCustomerOrders 客户订单历史
func (s *OrderService) ListCustomerOrders(customerID uint, page, pageSize int) ([]models.Order, int64, error) {
	if customerID == 0 {
		return nil, 0, ErrCustomerNotFound
	}
	return s.orderRepo.List(repository.OrderListFilter{
		Page:       page,
		PageSize:   pageSize,
		CustomerID: customerID,
	})
}

// GetOrderItems 订单项明细
func (s *OrderService) GetOrderItems(id string) ([]OrderItemView, error) {
	if _, err := s.GetOrder(id); err != nil {
		return nil, err
	}
	items, err := s.orderRepo.ListItems(id)
	if err != nil {
		return nil, err
	}
	views := make([]OrderItemView, 0, len(items))
	for _, item := range items {
		view := OrderItemView{
			ID:            item.ID,
			ProductSizeID: item.ProductSizeID,
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice,
		}
		if size := item.ProductSize; size != nil {
			view.SizeValue = size.SizeValue
			if color := size.ProductColor; color != nil {
				view.ColorName = color.ColorName
				view.ImageURL = color.ImageURL
				if product := color.Product; product != nil {
					view.ProductID = product.ID
					view.ProductName = product.ProductName
				}
			}
		}
		views = append(views, view)
	}
	return views, nil
}

// UpdateOrder 只更新备注与支付标记
func (s *OrderService) UpdateOrder(id string, input UpdateOrderInput) (*models.Order, error) {
	order, err := s.GetOrder(id)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{
		"is_paid":    input.IsPaid,
		"updated_at": s.now(),
	}
	if input.Note != nil {
		updates["order_note"] = strings.TrimSpace(*input.Note)
	}
	if err := s.orderRepo.UpdateFields(order.ID, updates); err != nil {
		return nil, err
	}
	return s.GetOrder(order.ID)
}

// DeleteOrder 删除订单、订单项以及对应的优惠券使用记录
func (s *OrderService) DeleteOrder(id string) error {
	order, err := s.GetOrder(id)
	if err != nil {
		return err
	}
	err = s.orderRepo.Transaction(func(tx *gorm.DB) error {
		usageRepo := s.usageRepo.WithTx(tx)
		voucherRepo := s.voucherRepo.WithTx(tx)
		usages, err := usageRepo.ListByOrder(order.ID)
		if err != nil {
			return err
		}
		for _, usage := range usages {
			if err := voucherRepo.DecrementUsedCount(usage.VoucherID); err != nil {
				return err
			}
		}
		if err := usageRepo.DeleteByOrder(order.ID); err != nil {
			return err
		}
		return s.orderRepo.WithTx(tx).Delete(order.ID)
	})
	metrics.RecordOrderOperation("delete", err == nil)
	if err != nil {
		logger.Warnw("order_delete_failed", "order_id", order.ID, "error", err)
		return err
	}
	logger.Infow("order_deleted", "order_id", order.ID)
	s.enqueueStatisticsRefresh("order_deleted")
	return nil
}

// PaidOrder 确认订单已支付（重复确认不改变已记录的支付时间）
func (s *OrderService) PaidOrder(id string) (*models.Order, error) {
	order, err := s.GetOrder(id)
	if err != nil {
		return nil, err
	}
	updated, err := s.orderRepo.MarkPaid(order.ID, s.now())
	if err != nil {
		return nil, err
	}
	if updated {
		metrics.RecordOrderOperation("paid", true)
		logger.Infow("order_paid", "order_id", order.ID, "total_price", order.TotalPrice.String())
		if s.queueClient != nil {
			if err := s.queueClient.EnqueueOrderPaid(queue.OrderPaidPayload{OrderID: order.ID}); err != nil {
				logger.Warnw("order_paid_enqueue_failed", "order_id", order.ID, "error", err)
			}
		}
	}
	return s.GetOrder(order.ID)
}

// SetPaymentMethod 更新订单支付方式
func (s *OrderService) SetPaymentMethod(id, method string) error {
	return s.orderRepo.UpdatePaymentMethod(id, method)
}

func (s *OrderService) enqueueStatisticsRefresh(reason string) {
	if s.queueClient == nil {
		return
	}
	if err := s.queueClient.EnqueueStatisticsRefresh(queue.StatisticsRefreshPayload{Reason: reason}, 10*time.Second); err != nil {
		logger.Warnw("statistics_refresh_enqueue_failed", "reason", reason, "error", err)
	}
}
