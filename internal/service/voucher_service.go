package service

import (
	"errors"
	"time"

	"github.com/webbangiay/internal/config"
	"github.com/webbangiay/internal/constants"
	"github.com/webbangiay/internal/i18n"
	"github.com/webbangiay/internal/logger"
	"github.com/webbangiay/internal/metrics"
	"github.com/webbangiay/internal/models"
	"github.com/webbangiay/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// VoucherService 优惠券资格判断、校验、折扣计算与核销
type VoucherService struct {
	voucherRepo  repository.VoucherRepository
	usageRepo    repository.VoucherUsageRepository
	orderRepo    repository.OrderRepository
	customerRepo repository.CustomerRepository
	loc          *time.Location
	now          func() time.Time
}

// NewVoucherService 创建优惠券服务
func NewVoucherService(
	cfg *config.Config,
	voucherRepo repository.VoucherRepository,
	usageRepo repository.VoucherUsageRepository,
	orderRepo repository.OrderRepository,
	customerRepo repository.CustomerRepository,
) *VoucherService {
	timezone := ""
	if cfg != nil {
		timezone = cfg.Server.Timezone
	}
	return &VoucherService{
		voucherRepo:  voucherRepo,
		usageRepo:    usageRepo,
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		loc:          resolveLocation(timezone),
		now:          time.Now,
	}
}

// VoucherValidation 优惠券校验结果
type VoucherValidation struct {
	Valid          bool            `json:"valid"`
	Message        string          `json:"message"`
	DiscountAmount *models.Money   `json:"discount_amount"`
	Voucher        *models.Voucher `json:"voucher,omitempty"`

	MessageKey  string        `json:"-"`
	MessageArgs []interface{} `json:"-"`
}

// Localize 按语言重新生成提示文案
func (v *VoucherValidation) Localize(locale string) string {
	if v == nil || v.MessageKey == "" {
		return ""
	}
	return i18n.Sprintf(locale, v.MessageKey, v.MessageArgs...)
}

// VoucherRejectedError 核销时校验未通过
type VoucherRejectedError struct {
	Validation *VoucherValidation
}

func (e *VoucherRejectedError) Error() string {
	if e == nil || e.Validation == nil {
		return ErrVoucherInvalid.Error()
	}
	return e.Validation.Message
}

func (e *VoucherRejectedError) Is(target error) bool {
	if target == ErrVoucherInvalid {
		return true
	}
	return target == ErrVoucherUsageLimit && e != nil && e.Validation != nil &&
		e.Validation.MessageKey == "voucher.usage_limit"
}

// voucherRepos 一次校验使用的仓库集合（可绑定事务）
type voucherRepos struct {
	voucher  repository.VoucherRepository
	usage    repository.VoucherUsageRepository
	order    repository.OrderRepository
	customer repository.CustomerRepository
}

func (s *VoucherService) repos() voucherRepos {
	return voucherRepos{voucher: s.voucherRepo, usage: s.usageRepo, order: s.orderRepo, customer: s.customerRepo}
}

func (s *VoucherService) reposWithTx(tx *gorm.DB) voucherRepos {
	return voucherRepos{
		voucher:  s.voucherRepo.WithTx(tx),
		usage:    s.usageRepo.WithTx(tx),
		order:    s.orderRepo.WithTx(tx),
		customer: s.customerRepo.WithTx(tx),
	}
}

// customerPurchaseContext 条件判断所需的客户购买情况
type customerPurchaseContext struct {
	hasOrders      bool
	totalPurchased decimal.Decimal
}

func rejectVoucher(voucher *models.Voucher, key string, args ...interface{}) *VoucherValidation {
	return &VoucherValidation{
		Valid:       false,
		Message:     i18n.Sprintf(i18n.DefaultLocale, key, args...),
		Voucher:     voucher,
		MessageKey:  key,
		MessageArgs: args,
	}
}

// ListAvailableForCustomer 列出客户当前可用的优惠券（按 ID 倒序）
func (s *VoucherService) ListAvailableForCustomer(customerID uint, orderValue models.Money) ([]models.Voucher, error) {
	purchase, err := s.loadPurchaseContext(s.repos(), customerID)
	if err != nil {
		return nil, err
	}
	vouchers, err := s.voucherRepo.ListActive()
	if err != nil {
		return nil, err
	}

	today := dateOnly(s.now(), s.loc)
	available := make([]models.Voucher, 0, len(vouchers))
	for _, voucher := range vouchers {
		if !s.withinDateRange(&voucher, today) {
			continue
		}
		if usageExhausted(&voucher) {
			continue
		}
		if belowMinOrderValue(&voucher, orderValue) {
			continue
		}
		if !conditionSatisfied(&voucher, purchase, orderValue, today) {
			continue
		}
		available = append(available, voucher)
	}
	return available, nil
}

// Validate 校验优惠码并计算折扣
func (s *VoucherService) Validate(code string, customerID uint, orderValue models.Money) (*VoucherValidation, error) {
	result, err := s.validateWith(s.repos(), code, customerID, orderValue)
	if err != nil {
		metrics.RecordVoucherOperation("validate", "error")
		return nil, err
	}
	metrics.RecordVoucherOperation("validate", result.MessageKey)
	return result, nil
}

func (s *VoucherService) validateWith(
	repos voucherRepos,
	code string,
	customerID uint,
	orderValue models.Money,
) (*VoucherValidation, error) {
	voucher, err := repos.voucher.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if voucher == nil || !voucher.IsActive {
		return rejectVoucher(nil, "voucher.not_found"), nil
	}
	purchase, err := s.loadPurchaseContext(repos, customerID)
	if err != nil {
		return nil, err
	}

	today := dateOnly(s.now(), s.loc)
	if !s.withinDateRange(voucher, today) {
		return rejectVoucher(voucher, "voucher.expired"), nil
	}
	if usageExhausted(voucher) {
		return rejectVoucher(voucher, "voucher.usage_limit"), nil
	}
	if belowMinOrderValue(voucher, orderValue) {
		return rejectVoucher(voucher, "voucher.min_order_value", voucher.MinOrderValue.VNDString()), nil
	}

	used, err := repos.usage.ExistsByVoucherAndCustomer(voucher.ID, customerID)
	if err != nil {
		return nil, err
	}
	if used {
		return rejectVoucher(voucher, "voucher.already_used"), nil
	}

	if !conditionSatisfied(voucher, purchase, orderValue, today) {
		key, args := conditionFailureMessage(voucher)
		return rejectVoucher(voucher, key, args...), nil
	}

	discount := CalculateVoucherDiscount(voucher, orderValue)
	return &VoucherValidation{
		Valid:          true,
		Message:        i18n.T(i18n.DefaultLocale, "voucher.valid"),
		DiscountAmount: &discount,
		Voucher:        voucher,
		MessageKey:     "voucher.valid",
	}, nil
}

// Apply 在订单上核销优惠券（单事务：重新校验、原子累加使用次数、写入使用记录）
func (s *VoucherService) Apply(code string, customerID uint, orderID string) (*models.VoucherUsage, error) {
	var usage *models.VoucherUsage
	err := s.orderRepo.Transaction(func(tx *gorm.DB) error {
		repos := s.reposWithTx(tx)

		order, err := repos.order.GetByID(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return ErrOrderNotFound
		}
		if order.CustomerID == nil {
			return ErrVoucherCustomerOnly
		}
		if *order.CustomerID != customerID {
			return ErrOrderNotFound
		}

		validation, err := s.validateWith(repos, code, customerID, order.TotalPrice)
		if err != nil {
			return err
		}
		if !validation.Valid {
			return &VoucherRejectedError{Validation: validation}
		}

		ok, err := repos.voucher.IncrementUsedCountWithLimit(validation.Voucher.ID)
		if err != nil {
			return err
		}
		if !ok {
			return &VoucherRejectedError{Validation: rejectVoucher(validation.Voucher, "voucher.usage_limit")}
		}

		record := &models.VoucherUsage{
			VoucherID:      validation.Voucher.ID,
			CustomerID:     customerID,
			OrderID:        order.ID,
			DiscountAmount: *validation.DiscountAmount,
			UsedAt:         s.now(),
		}
		if err := repos.usage.Create(record); err != nil {
			return err
		}
		usage = record
		return nil
	})
	if err != nil {
		var rejected *VoucherRejectedError
		if errors.As(err, &rejected) && rejected.Validation != nil {
			metrics.RecordVoucherOperation("apply", rejected.Validation.MessageKey)
		} else {
			metrics.RecordVoucherOperation("apply", "error")
			logger.Errorw("voucher_apply_failed",
				"code", code,
				"customer_id", customerID,
				"order_id", orderID,
				"error", err,
			)
		}
		return nil, err
	}
	metrics.RecordVoucherOperation("apply", "voucher.valid")
	logger.Infow("voucher_applied",
		"code", code,
		"customer_id", customerID,
		"order_id", orderID,
		"discount_amount", usage.DiscountAmount.String(),
	)
	return usage, nil
}

// CalculateVoucherDiscount 计算折扣：百分比受最大优惠限制，固定金额不超过订单金额，结果不为负
func CalculateVoucherDiscount(voucher *models.Voucher, orderValue models.Money) models.Money {
	if voucher == nil {
		return models.Money{}
	}
	var discount decimal.Decimal
	switch voucher.DiscountType {
	case constants.DiscountTypePercentage:
		discount = orderValue.Decimal.Mul(voucher.DiscountValue.Decimal).Div(decimal.NewFromInt(100))
		if voucher.MaxDiscount.Decimal.GreaterThan(decimal.Zero) && discount.GreaterThan(voucher.MaxDiscount.Decimal) {
			discount = voucher.MaxDiscount.Decimal
		}
	case constants.DiscountTypeFixed:
		discount = voucher.DiscountValue.Decimal
		if discount.GreaterThan(orderValue.Decimal) {
			discount = orderValue.Decimal
		}
	}
	if discount.LessThan(decimal.Zero) {
		discount = decimal.Zero
	}
	return models.NewMoneyFromDecimal(discount)
}

// IsVoucherValid 启用、在有效期内且未达使用上限
func (s *VoucherService) IsVoucherValid(voucher *models.Voucher) bool {
	if voucher == nil || !voucher.IsActive {
		return false
	}
	return s.withinDateRange(voucher, dateOnly(s.now(), s.loc)) && !usageExhausted(voucher)
}

func (s *VoucherService) loadPurchaseContext(repos voucherRepos, customerID uint) (customerPurchaseContext, error) {
	var purchase customerPurchaseContext
	customer, err := repos.customer.GetByID(customerID)
	if err != nil {
		return purchase, err
	}
	if customer == nil {
		return purchase, ErrCustomerNotFound
	}
	count, err := repos.order.CountByCustomer(customerID)
	if err != nil {
		return purchase, err
	}
	total, err := repos.order.SumTotalByCustomer(customerID)
	if err != nil {
		return purchase, err
	}
	purchase.hasOrders = count > 0
	purchase.totalPurchased = total.Decimal
	return purchase, nil
}

func (s *VoucherService) withinDateRange(voucher *models.Voucher, today time.Time) bool {
	start := dateOnly(voucher.StartDate, s.loc)
	end := dateOnly(voucher.EndDate, s.loc)
	return !today.Before(start) && !today.After(end)
}

func usageExhausted(voucher *models.Voucher) bool {
	return voucher.UsageLimit > 0 && voucher.UsedCount >= voucher.UsageLimit
}

func belowMinOrderValue(voucher *models.Voucher, orderValue models.Money) bool {
	return voucher.MinOrderValue.Decimal.GreaterThan(decimal.Zero) &&
		orderValue.Decimal.LessThan(voucher.MinOrderValue.Decimal)
}

func conditionSatisfied(voucher *models.Voucher, purchase customerPurchaseContext, orderValue models.Money, today time.Time) bool {
	switch voucher.ConditionType {
	case constants.ConditionAllCustomers:
		return true
	case constants.ConditionFirstOrder:
		return !purchase.hasOrders
	case constants.ConditionTotalPurchased:
		return purchase.totalPurchased.GreaterThanOrEqual(voucher.ConditionValue.Decimal)
	case constants.ConditionOrderValue:
		return orderValue.Decimal.GreaterThanOrEqual(voucher.ConditionValue.Decimal)
	case constants.ConditionSpecificDate:
		return matchesSpecificDate(voucher.ConditionValue.Decimal, today)
	default:
		return false
	}
}

// matchesSpecificDate 条件值 0 不限制；小于 100 视为每月几号；否则按 yyyyMMdd 解析
func matchesSpecificDate(value decimal.Decimal, today time.Time) bool {
	raw := value.IntPart()
	if raw <= 0 {
		return true
	}
	if raw < 100 {
		return int64(today.Day()) == raw
	}
	year := int(raw / 10000)
	month := time.Month((raw / 100) % 100)
	day := int(raw % 100)
	y, m, d := today.Date()
	return y == year && m == month && d == day
}

func conditionFailureMessage(voucher *models.Voucher) (string, []interface{}) {
	switch voucher.ConditionType {
	case constants.ConditionFirstOrder:
		return "voucher.condition_first_order", nil
	case constants.ConditionTotalPurchased:
		return "voucher.condition_total_purchased", []interface{}{voucher.ConditionValue.VNDString()}
	case constants.ConditionOrderValue:
		return "voucher.condition_order_value", []interface{}{voucher.ConditionValue.VNDString()}
	case constants.ConditionSpecificDate:
		return "voucher.condition_specific_date", nil
	default:
		return "voucher.condition_not_met", nil
	}
}
