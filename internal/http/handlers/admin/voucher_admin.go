package admin

import (
	handlershared "github.com/webbangiay/internal/http/handlers/shared"
	"github.com/webbangiay/internal/http/response"
	"github.com/webbangiay/internal/i18n"
	"github.com/webbangiay/internal/models"
	"github.com/webbangiay/internal/repository"
	"github.com/webbangiay/internal/service"

	"github.com/gin-gonic/gin"
)

// VoucherRequest 优惠券创建/更新请求，日期格式 yyyy-MM-dd
type VoucherRequest struct {
	Code           string       `json:"code" binding:"required"`
	Name           string       `json:"name" binding:"required"`
	Description    string       `json:"description"`
	DiscountType   string       `json:"discount_type" binding:"required"`
	DiscountValue  models.Money `json:"discount_value"`
	MaxDiscount    models.Money `json:"max_discount"`
	MinOrderValue  models.Money `json:"min_order_value"`
	ConditionType  string       `json:"condition_type" binding:"required"`
	ConditionValue models.Money `json:"condition_value"`
	StartDate      string       `json:"start_date" binding:"required"`
	EndDate        string       `json:"end_date" binding:"required"`
	UsageLimit     int          `json:"usage_limit"`
	IsActive       *bool        `json:"is_active"`
}

func (r VoucherRequest) toInput() service.VoucherInput {
	return service.VoucherInput{
		Code:           r.Code,
		Name:           r.Name,
		Description:    r.Description,
		DiscountType:   r.DiscountType,
		DiscountValue:  r.DiscountValue,
		MaxDiscount:    r.MaxDiscount,
		MinOrderValue:  r.MinOrderValue,
		ConditionType:  r.ConditionType,
		ConditionValue: r.ConditionValue,
		StartDate:      r.StartDate,
		EndDate:        r.EndDate,
		UsageLimit:     r.UsageLimit,
		IsActive:       r.IsActive,
	}
}

// VoucherValidateRequest 后台代客户校验优惠码
type VoucherValidateRequest struct {
	Code       string       `json:"code" binding:"required"`
	CustomerID uint         `json:"customer_id"`
	OrderValue models.Money `json:"order_value"`
}

// VoucherApplyRequest 后台代客户核销优惠码
type VoucherApplyRequest struct {
	Code       string `json:"code" binding:"required"`
	CustomerID uint   `json:"customer_id" binding:"required"`
	OrderID    string `json:"order_id" binding:"required"`
}

// ListVouchers 优惠券列表
func (h *Handler) ListVouchers(c *gin.Context) {
	page, pageSize := pageQuery(c)
	isActive, ok := handlershared.OptionalBoolQuery(c, "is_active")
	if !ok {
		return
	}
	vouchers, total, err := h.VoucherAdminService.List(repository.VoucherListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   c.Query("search"),
		IsActive: isActive,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondPage(c, vouchers, page, pageSize, total)
}

// GetVoucher 优惠券详情
func (h *Handler) GetVoucher(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	voucher, err := h.VoucherAdminService.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, voucher)
}

// CreateVoucher 创建优惠券
func (h *Handler) CreateVoucher(c *gin.Context) {
	var req VoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	voucher, err := h.VoucherAdminService.Create(req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, voucher)
}

// UpdateVoucher 更新优惠券
func (h *Handler) UpdateVoucher(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req VoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	voucher, err := h.VoucherAdminService.Update(id, req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, voucher)
}

// DeleteVoucher 删除优惠券
func (h *Handler) DeleteVoucher(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.VoucherAdminService.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, nil)
}

// ToggleVoucherStatus 切换优惠券状态
func (h *Handler) ToggleVoucherStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	voucher, err := h.VoucherAdminService.ToggleStatus(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, service.StatusToggleResult{ID: voucher.ID, IsActive: voucher.IsActive})
}

// GetVoucherUsageHistory 某张优惠券的使用记录
func (h *Handler) GetVoucherUsageHistory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	page, pageSize := pageQuery(c)
	usages, total, err := h.VoucherAdminService.UsageHistory(repository.VoucherUsageListFilter{
		Page:      page,
		PageSize:  pageSize,
		VoucherID: id,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondPage(c, usages, page, pageSize, total)
}

// GetCustomerVoucherHistory 某位客户的优惠券使用记录
func (h *Handler) GetCustomerVoucherHistory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	page, pageSize := pageQuery(c)
	usages, total, err := h.VoucherAdminService.UsageHistory(repository.VoucherUsageListFilter{
		Page:       page,
		PageSize:   pageSize,
		CustomerID: id,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondPage(c, usages, page, pageSize, total)
}

// GetAvailableVouchersForCustomer 客户当前可用的优惠券
func (h *Handler) GetAvailableVouchersForCustomer(c *gin.Context) {
	customerID, ok := handlershared.OptionalUintQuery(c, "customer_id")
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

// ValidateVoucher 校验优惠码
func (h *Handler) ValidateVoucher(c *gin.Context) {
	var req VoucherValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	result, err := h.VoucherService.Validate(req.Code, req.CustomerID, req.OrderValue)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	result.Message = result.Localize(i18n.ResolveLocale(c))
	response.Success(c, result)
}

// ApplyVoucher 核销优惠码
func (h *Handler) ApplyVoucher(c *gin.Context) {
	var req VoucherApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	usage, err := h.VoucherService.Apply(req.Code, req.CustomerID, req.OrderID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, usage)
}
