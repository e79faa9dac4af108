package public

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/webbangiay/internal/http/response"
	"github.com/webbangiay/internal/i18n"
	"github.com/webbangiay/internal/models"

	"github.com/gin-gonic/gin"
)

// CreateVNPayPaymentRequest 发起 VNPay 支付请求
type CreateVNPayPaymentRequest struct {
	OrderID string `json:"order_id" binding:"required"`
}

// CreateVNPayPayment 生成 VNPay 支付链接，金额为订单总额扣除优惠券优惠
func (h *Handler) CreateVNPayPayment(c *gin.Context) {
	var req CreateVNPayPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	orderID := strings.TrimSpace(req.OrderID)
	var (
		order *models.Order
		err   error
	)
	if customerID := optionalCustomerID(c); customerID != 0 {
		order, err = h.OrderService.GetCustomerOrder(customerID, orderID)
	} else {
		order, err = h.OrderService.GetOrder(orderID)
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if order.IsPaid {
		respondError(c, response.CodeConflict, "error.order_already_paid", nil)
		return
	}
	payment, err := h.PaymentService.CreateVNPayPaymentURL(order.ID, models.Money{}, c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	requestLog(c).Infow("vnpay_payment_created", "order_id", order.ID, "amount", payment.Amount.StringFixed(0))
	response.Success(c, payment)
}

// VNPayReturn VNPay 同步返回；配置了前端地址时重定向并透传结果
func (h *Handler) VNPayReturn(c *gin.Context) {
	result, err := h.PaymentService.HandleVNPayReturn(c.Request.URL.Query())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	locale := i18n.ResolveLocale(c)
	if result.MessageKey != "" && result.Message == "" {
		result.Message = i18n.T(locale, result.MessageKey)
	}

	if redirect := strings.TrimSpace(h.Config.VNPay.FrontendRedirect); redirect != "" {
		if target, ok := buildFrontendRedirect(redirect, result.OrderID, result.ResponseCode, result.Success); ok {
			c.Redirect(http.StatusFound, target)
			return
		}
		requestLog(c).Warnw("vnpay_frontend_redirect_invalid", "redirect", redirect)
	}
	response.Success(c, result)
}

func buildFrontendRedirect(base, orderID, responseCode string, success bool) (string, bool) {
	target, err := url.Parse(base)
	if err != nil || target.Scheme == "" || target.Host == "" {
		return "", false
	}
	query := target.Query()
	query.Set("order_id", orderID)
	query.Set("response_code", responseCode)
	if success {
		query.Set("status", "success")
	} else {
		query.Set("status", "failed")
	}
	target.RawQuery = query.Encode()
	return target.String(), true
}
