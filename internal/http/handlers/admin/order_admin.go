package admin

import (
	"strings"
	"time"

	handlershared "github.com/webbangiay/internal/http/handlers/shared"
	"github.com/webbangiay/internal/http/response"
	"github.com/webbangiay/internal/repository"
	"github.com/webbangiay/internal/service"

	"github.com/gin-gonic/gin"
)

const orderDateLayout = "2006-01-02"

// UpdateOrderRequest 后台更新订单请求
type UpdateOrderRequest struct {
	OrderNote *string `json:"order_note"`
	IsPaid    bool    `json:"is_paid"`
}

// GetAdminOrders 后台订单列表
func (h *Handler) GetAdminOrders(c *gin.Context) {
	page, pageSize := pageQuery(c)
	isPaid, ok := handlershared.OptionalBoolQuery(c, "is_paid")
	if !ok {
		return
	}
	filter := repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   strings.ToUpper(strings.TrimSpace(c.Query("status"))),
		IsPaid:   isPaid,
		Keyword:  c.Query("keyword"),
	}
	loc := service.BusinessLocation(h.Config)
	if raw := strings.TrimSpace(c.Query("created_from")); raw != "" {
		from, err := time.ParseInLocation(orderDateLayout, raw, loc)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
		filter.CreatedFrom = &from
	}
	if raw := strings.TrimSpace(c.Query("created_to")); raw != "" {
		to, err := time.ParseInLocation(orderDateLayout, raw, loc)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
		end := to.AddDate(0, 0, 1)
		filter.CreatedTo = &end
	}

	orders, total, err := h.OrderService.ListOrders(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondPage(c, orders, page, pageSize, total)
}

// GetAdminOrder 订单详情
func (h *Handler) GetAdminOrder(c *gin.Context) {
	order, err := h.OrderService.GetOrder(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, order)
}

// GetAdminOrderItems 订单项明细
func (h *Handler) GetAdminOrderItems(c *gin.Context) {
	items, err := h.OrderService.GetOrderItems(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, items)
}

// UpdateAdminOrder 更新订单备注与支付标记
func (h *Handler) UpdateAdminOrder(c *gin.Context) {
	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	order, err := h.OrderService.UpdateOrder(c.Param("id"), service.UpdateOrderInput{
		Note:   req.OrderNote,
		IsPaid: req.IsPaid,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, order)
}

// DeleteAdminOrder 删除订单
func (h *Handler) DeleteAdminOrder(c *gin.Context) {
	id := c.Param("id")
	if err := h.OrderService.DeleteOrder(id); err != nil {
		respondServiceError(c, err)
		return
	}
	requestLog(c).Infow("admin_order_delete", "operator_admin_id", c.GetString("admin_id"), "order_id", id)
	response.Success(c, nil)
}
