package public

import (
	"strings"

	handlershared "github.com/webbangiay/internal/http/handlers/shared"
	"github.com/webbangiay/internal/http/response"
	"github.com/webbangiay/internal/models"
	"github.com/webbangiay/internal/service"

	"github.com/gin-gonic/gin"
)

// OrderItemRequest 订单项请求
type OrderItemRequest struct {
	ProductSizeID uint         `json:"product_size_id" binding:"required"`
	Quantity      int          `json:"quantity" binding:"required"`
	Price         models.Money `json:"price"`
}

// GuestRequest 游客收货信息
type GuestRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Address2 string `json:"address2"`
	City     string `json:"city"`
}

// CreateOrderRequest 创建订单请求，未登录时必须携带 guest
type CreateOrderRequest struct {
	Items []OrderItemRequest `json:"items" binding:"required"`
	Guest *GuestRequest      `json:"guest"`
	Note  string             `json:"order_note"`
}

func (req CreateOrderRequest) toInput(customerID uint) service.CreateOrderInput {
	input := service.CreateOrderInput{
		CustomerID: customerID,
		Note:       strings.TrimSpace(req.Note),
		Items:      make([]service.CreateOrderItemInput, 0, len(req.Items)),
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, service.CreateOrderItemInput{
			ProductSizeID: item.ProductSizeID,
			Quantity:      item.Quantity,
			Price:         item.Price,
		})
	}
	if customerID == 0 && req.Guest != nil {
		input.Guest = &service.GuestInput{
			FullName: req.Guest.FullName,
			Email:    req.Guest.Email,
			Phone:    req.Guest.Phone,
			Address:  req.Guest.Address,
			Address2: req.Guest.Address2,
			City:     req.Guest.City,
		}
	}
	return input
}

// CreateOrder 下单（登录客户或游客）
func (h *Handler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	customerID := optionalCustomerID(c)
	order, err := h.OrderService.CreateOrder(req.toInput(customerID))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	requestLog(c).Infow("order_created",
		"order_id", order.ID,
		"customer_id", customerID,
		"items", len(req.Items),
	)
	response.Success(c, order)
}

// loadVisibleOrder 登录客户只能查看自己的订单
func (h *Handler) loadVisibleOrder(c *gin.Context) (*models.Order, bool) {
	id := strings.TrimSpace(c.Param("id"))
	var (
		order *models.Order
		err   error
	)
	if customerID := optionalCustomerID(c); customerID != 0 {
		order, err = h.OrderService.GetCustomerOrder(customerID, id)
	} else {
		order, err = h.OrderService.GetOrder(id)
	}
	if err != nil {
		respondServiceError(c, err)
		return nil, false
	}
	return order, true
}

// GetOrder 订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	order, ok := h.loadVisibleOrder(c)
	if !ok {
		return
	}
	response.Success(c, order)
}

// GetOrderItems 订单项列表
func (h *Handler) GetOrderItems(c *gin.Context) {
	order, ok := h.loadVisibleOrder(c)
	if !ok {
		return
	}
	items, err := h.OrderService.GetOrderItems(order.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, items)
}

// GetMyOrders 当前客户的订单历史
func (h *Handler) GetMyOrders(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.PageQuery(c)
	orders, total, err := h.OrderService.ListCustomerOrders(customerID, page, pageSize)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, orders, handlershared.BuildPagination(page, pageSize, total))
}
