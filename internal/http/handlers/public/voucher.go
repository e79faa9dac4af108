package public

import (
	handlershared "github.com/webbangiay/internal/http/handlers/shared"
	"github.com/webbangiay/internal/http/response"
	"github.com/webbangiay/internal/i18n"
	"github.com/webbangiay/internal/models"
	"github.com/webbangiay/internal/repository"

	"github.com/gin-gonic/gin"
)

// VoucherValidateRequest 校验优惠码请求
type VoucherValidateRequest struct {
	Code       string       `json:"code" binding:"required"`
	OrderValue models.Money `json:"order_value"`
}

// VoucherApplyRequest 核销优惠码请求
type VoucherApplyRequest struct {
	Code    string `json:"code" binding:"required"`
	OrderID string `json:"order_id" binding:"required"`
}

// GetAvailableVouchers 当前客户可用的优惠券
func (h *Handler) GetAvailableVouchers(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	orderValue, ok := handlershared.MoneyQuery(c, "order_value")
	if !ok {
		return
	}
	vouchers, err := h.VoucherService.ListAvailableForCustomer(customerID, orderValue)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, vouchers)
}

// ValidateVoucher 校验优惠码，未通过时 valid=false 并附带原因
func (h *Handler) ValidateVoucher(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	var req VoucherValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	result, err := h.VoucherService.Validate(req.Code, customerID, req.OrderValue)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	result.Message = result.Localize(i18n.ResolveLocale(c))
	response.Success(c, result)
}

// ApplyVoucher 对自己的订单核销优惠码
func (h *Handler) ApplyVoucher(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	var req VoucherApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if _, err := h.OrderService.GetCustomerOrder(customerID, req.OrderID); err != nil {
		respondServiceError(c, err)
		return
	}
	usage, err := h.VoucherService.Apply(req.Code, customerID, req.OrderID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	requestLog(c).Infow("voucher_applied", "customer_id", customerID, "order_id", req.OrderID, "voucher_id", usage.VoucherID)
	response.Success(c, usage)
}

// GetMyVoucherHistory 当前客户的优惠券使用记录
func (h *Handler) GetMyVoucherHistory(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.PageQuery(c)
	usages, total, err := h.VoucherAdminService.UsageHistory(repository.VoucherUsageListFilter{
		Page:       page,
		PageSize:   pageSize,
		CustomerID: customerID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, usages, handlershared.BuildPagination(page, pageSize, total))
}
