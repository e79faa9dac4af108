package admin

import (
	handlershared "github.com/webbangiay/internal/http/handlers/shared"
	"github.com/webbangiay/internal/http/response"
	"github.com/webbangiay/internal/repository"
	"github.com/webbangiay/internal/service"

	"github.com/gin-gonic/gin"
)

// CustomerRequest 客户创建/更新请求，更新时密码为空则不修改
type CustomerRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Address2 string `json:"address2"`
	City     string `json:"city"`
	IsActive *bool  `json:"is_active"`
}

func (r CustomerRequest) toInput() service.CustomerInput {
	return service.CustomerInput{
		FullName: r.FullName,
		Email:    r.Email,
		Password: r.Password,
		Phone:    r.Phone,
		Address:  r.Address,
		Address2: r.Address2,
		City:     r.City,
		IsActive: r.IsActive,
	}
}

// ListCustomers 客户列表
func (h *Handler) ListCustomers(c *gin.Context) {
	page, pageSize := pageQuery(c)
	isActive, ok := handlershared.OptionalBoolQuery(c, "is_active")
	if !ok {
		return
	}
	customers, total, err := h.CustomerService.List(repository.CustomerListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   c.Query("search"),
		IsActive: isActive,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondPage(c, customers, page, pageSize, total)
}

// GetCustomer 客户详情
func (h *Handler) GetCustomer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	customer, err := h.CustomerService.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, customer)
}

// CreateCustomer 创建客户
func (h *Handler) CreateCustomer(c *gin.Context) {
	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	customer, err := h.CustomerService.Create(req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, customer)
}

// UpdateCustomer 更新客户
func (h *Handler) UpdateCustomer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	customer, err := h.CustomerService.Update(id, req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, customer)
}

// DeleteCustomer 删除客户，已有订单的客户不可删除
func (h *Handler) DeleteCustomer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.CustomerService.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, nil)
}

// ToggleCustomerStatus 切换客户状态
func (h *Handler) ToggleCustomerStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	result, err := h.CustomerService.ToggleStatus(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, result)
}

// ====================  游客  ====================

// GuestRequest 游客请求
type GuestRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email"`
	Phone    string `json:"phone" binding:"required"`
	Address  string `json:"address"`
	Address2 string `json:"address2"`
	City     string `json:"city"`
}

func (r GuestRequest) toInput() service.GuestInput {
	return service.GuestInput{
		FullName: r.FullName,
		Email:    r.Email,
		Phone:    r.Phone,
		Address:  r.Address,
		Address2: r.Address2,
		City:     r.City,
	}
}

// ListGuests 游客列表
func (h *Handler) ListGuests(c *gin.Context) {
	page, pageSize := pageQuery(c)
	guests, total, err := h.GuestService.List(repository.GuestListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   c.Query("search"),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondPage(c, guests, page, pageSize, total)
}

// GetGuest 游客详情
func (h *Handler) GetGuest(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	guest, err := h.GuestService.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, guest)
}

// CreateGuest 创建游客
func (h *Handler) CreateGuest(c *gin.Context) {
	var req GuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	guest, err := h.GuestService.Create(req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, guest)
}

// UpdateGuest 更新游客
func (h *Handler) UpdateGuest(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req GuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	guest, err := h.GuestService.Update(id, req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, guest)
}

// DeleteGuest 删除游客
func (h *Handler) DeleteGuest(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.GuestService.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, nil)
}
