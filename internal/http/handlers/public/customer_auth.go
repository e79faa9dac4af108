package public

import (
	"time"

	handlershared "github.com/webbangiay/internal/http/handlers/shared"
	"github.com/webbangiay/internal/http/response"
	"github.com/webbangiay/internal/service"

	"github.com/gin-gonic/gin"
)

// CustomerRegisterRequest 客户注册请求
type CustomerRegisterRequest struct {
	FullName       string                              `json:"full_name" binding:"required"`
	Email          string                              `json:"email" binding:"required"`
	Password       string                              `json:"password" binding:"required"`
	Phone          string                              `json:"phone"`
	Address        string                              `json:"address"`
	Address2       string                              `json:"address2"`
	City           string                              `json:"city"`
	CaptchaPayload handlershared.CaptchaPayloadRequest `json:"captcha_payload"`
}

// CustomerLoginRequest 客户登录请求
type CustomerLoginRequest struct {
	Email          string                              `json:"email" binding:"required"`
	Password       string                              `json:"password" binding:"required"`
	CaptchaPayload handlershared.CaptchaPayloadRequest `json:"captcha_payload"`
}

// CustomerProfileRequest 修改资料请求
type CustomerProfileRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Address2 string `json:"address2"`
	City     string `json:"city"`
}

// CustomerPasswordRequest 修改密码请求
type CustomerPasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

func authPayload(token string, expiresAt time.Time, user interface{}) gin.H {
	return gin.H{
		"token":      token,
		"expires_at": expiresAt.Format(time.RFC3339),
		"user":       user,
	}
}

// CustomerRegister 客户注册
func (h *Handler) CustomerRegister(c *gin.Context) {
	var req CustomerRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	customer, token, expiresAt, err := h.CustomerAuthService.Register(service.RegisterInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Address:  req.Address,
		Address2: req.Address2,
		City:     req.City,
		Captcha:  req.CaptchaPayload.ToServicePayload(),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	requestLog(c).Infow("customer_registered", "customer_id", customer.ID)
	response.Success(c, authPayload(token, expiresAt, customer))
}

// CustomerLogin 客户登录
func (h *Handler) CustomerLogin(c *gin.Context) {
	var req CustomerLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	customer, token, expiresAt, err := h.CustomerAuthService.Login(req.Email, req.Password, req.CaptchaPayload.ToServicePayload())
	if err != nil {
		requestLog(c).Infow("customer_login_rejected", "email", req.Email, "client_ip", c.ClientIP(), "error", err)
		respondServiceError(c, err)
		return
	}
	response.Success(c, authPayload(token, expiresAt, customer))
}

// GetMe 当前客户信息
func (h *Handler) GetMe(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	customer, err := h.CustomerAuthService.Me(customerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, customer)
}

// UpdateMe 修改当前客户资料
func (h *Handler) UpdateMe(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	var req CustomerProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	customer, err := h.CustomerAuthService.UpdateProfile(customerID, service.ProfileInput{
		FullName: req.FullName,
		Phone:    req.Phone,
		Address:  req.Address,
		Address2: req.Address2,
		City:     req.City,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, customer)
}

// ChangeMyPassword 修改当前客户密码，成功后旧 token 失效
func (h *Handler) ChangeMyPassword(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	var req CustomerPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.CustomerAuthService.ChangePassword(customerID, req.OldPassword, req.NewPassword); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, nil)
}
