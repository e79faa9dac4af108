package service

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/webbangiay/internal/config"
	"github.com/webbangiay/internal/constants"
	"github.com/webbangiay/internal/logger"
	"github.com/webbangiay/internal/metrics"
	"github.com/webbangiay/internal/models"
	"github.com/webbangiay/internal/payment/vnpay"

	"github.com/shopspring/decimal"
)

// PaymentService VNPay 支付服务
type PaymentService struct {
	cfg      config.VNPayConfig
	orderSvc *OrderService
	now      func() time.Time
}

// NewPaymentService 创建支付服务
func NewPaymentService(cfg *config.Config, orderSvc *OrderService) *PaymentService {
	svc := &PaymentService{orderSvc: orderSvc, now: time.Now}
	if cfg != nil {
		svc.cfg = cfg.VNPay
	}
	return svc
}

// VNPayReturnResult 支付返回处理结果
type VNPayReturnResult struct {
	Success      bool          `json:"success"`
	OrderID      string        `json:"order_id"`
	ResponseCode string        `json:"response_code"`
	Message      string        `json:"message"`
	Order        *models.Order `json:"order,omitempty"`

	MessageKey string `json:"-"`
}

func (s *PaymentService) gatewayConfig() *vnpay.Config {
	return &vnpay.Config{
		TmnCode:       s.cfg.TmnCode,
		HashSecret:    s.cfg.HashSecret,
		PayURL:        s.cfg.PayURL,
		ReturnURL:     s.cfg.ReturnURL,
		Version:       s.cfg.Version,
		Locale:        s.cfg.Locale,
		ExpireMinutes: s.cfg.ExpireMinutes,
	}
}

// VNPayPayment 已生成的支付链接及本次应付金额
type VNPayPayment struct {
	OrderID    string       `json:"order_id"`
	PaymentURL string       `json:"payment_url"`
	Amount     models.Money `json:"amount"`
	Discount   models.Money `json:"discount"`
}

// CreateVNPayPaymentURL 生成 VNPay 支付链接
// 应付金额 = 订单总额 - 优惠券优惠；amount 为 0 时直接使用应付金额，否则必须与之相等
func (s *PaymentService) CreateVNPayPaymentURL(orderID string, amount models.Money, clientIP string) (*VNPayPayment, error) {
	gatewayCfg := s.gatewayConfig()
	if err := vnpay.ValidateConfig(gatewayCfg); err != nil {
		logger.Errorw("vnpay_config_invalid", "error", err)
		return nil, ErrPaymentConfigMissing
	}
	order, err := s.orderSvc.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if order.IsPaid && order.OrderStatus == constants.OrderStatusPaymentConfirmed {
		return nil, ErrOrderAlreadyPaid
	}
	payable, discount, err := s.orderSvc.PayableAmount(order)
	if err != nil {
		return nil, err
	}
	if amount.Decimal.GreaterThan(decimal.Zero) && !amount.Decimal.Equal(payable.Decimal) {
		logger.Warnw("vnpay_amount_mismatch",
			"order_id", order.ID,
			"requested", amount.StringFixed(0),
			"payable", payable.StringFixed(0),
		)
		return nil, ErrPaymentAmount
	}

	payURL, err := vnpay.BuildPaymentURL(gatewayCfg, vnpay.PaymentInput{
		TxnRef:    order.ID,
		Amount:    payable.Decimal,
		OrderInfo: "Thanh toan don hang: " + order.ID,
		ClientIP:  clientIP,
		CreatedAt: s.now().In(s.orderSvc.loc),
	})
	if err != nil {
		if errors.Is(err, vnpay.ErrAmountInvalid) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return nil, err
	}
	if err := s.orderSvc.SetPaymentMethod(order.ID, constants.PaymentMethodVNPay); err != nil {
		return nil, err
	}
	logger.Infow("vnpay_payment_url_created",
		"order_id", order.ID,
		"amount", payable.StringFixed(0),
		"discount", discount.StringFixed(0),
		"client_ip", clientIP,
	)
	return &VNPayPayment{
		OrderID:    order.ID,
		PaymentURL: payURL,
		Amount:     payable,
		Discount:   discount,
	}, nil
}

// HandleVNPayReturn 处理 VNPay 同步返回：验签后按响应码确认订单
func (s *PaymentService) HandleVNPayReturn(query url.Values) (*VNPayReturnResult, error) {
	params, parsed := vnpay.ParseReturn(query)
	metrics.RecordPaymentReturn(parsed.ResponseCode)
	if parsed.TxnRef == "" {
		return nil, fmt.Errorf("%w: vnp_TxnRef is required", ErrInvalidInput)
	}

	if s.cfg.VerifySignature {
		if err := vnpay.VerifySignature(params, s.cfg.HashSecret); err != nil {
			logger.Warnw("vnpay_return_signature_invalid",
				"order_id", parsed.TxnRef,
				"response_code", parsed.ResponseCode,
				"error", err,
			)
			return nil, ErrPaymentSignature
		}
	}

	result := &VNPayReturnResult{
		OrderID:      parsed.TxnRef,
		ResponseCode: parsed.ResponseCode,
	}
	if !parsed.Success() {
		result.Message = vnpay.ResponseMessage(parsed.ResponseCode)
		result.MessageKey = "payment.failed"
		logger.Infow("vnpay_return_not_success",
			"order_id", parsed.TxnRef,
			"response_code", parsed.ResponseCode,
		)
		return result, nil
	}

	order, err := s.orderSvc.PaidOrder(strings.TrimSpace(parsed.TxnRef))
	if err != nil {
		return nil, err
	}
	result.Success = true
	result.Order = order
	result.Message = fmt.Sprintf("Thanh toán thành công! Đơn hàng #%s đã được cập nhật.", order.ID)
	result.MessageKey = "payment.success"
	return result, nil
}
