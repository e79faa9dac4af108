package admin

import (
	"time"

	"github.com/webbangiay/internal/http/response"

	"github.com/gin-gonic/gin"
)

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token     string      `json:"token"`
	User      interface{} `json:"user"`
	ExpiresAt string      `json:"expires_at"`
}

// AdminLogin 后台登录
func (h *Handler) AdminLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	admin, token, expiresAt, err := h.AuthService.Login(req.Email, req.Password)
	if err != nil {
		requestLog(c).Infow("admin_login_rejected", "email", req.Email, "client_ip", c.ClientIP(), "error", err)
		respondServiceError(c, err)
		return
	}
	admin.AvatarURL = h.UploadService.ResolveURL(admin.AvatarURL)
	response.Success(c, LoginResponse{
		Token:     token,
		User:      admin,
		ExpiresAt: expiresAt.Format(time.RFC3339),
	})
}

// GetAdminProfile 当前登录用户信息
func (h *Handler) GetAdminProfile(c *gin.Context) {
	id, ok := getAdminID(c)
	if !ok {
		return
	}
	admin, err := h.AdminUserService.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, admin)
}

// UpdateProfileRequest 修改个人资料请求
type UpdateProfileRequest struct {
	FullName string `json:"full_name" binding:"required"`
}

// UpdateAdminProfile 修改当前用户姓名
func (h *Handler) UpdateAdminProfile(c *gin.Context) {
	id, ok := getAdminID(c)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	admin, err := h.AdminUserService.UpdateProfile(id, req.FullName)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, admin)
}

// UpdatePasswordRequest 修改密码请求
type UpdatePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// UpdateAdminPassword 修改当前用户密码，成功后旧 token 失效
func (h *Handler) UpdateAdminPassword(c *gin.Context) {
	id, ok := getAdminID(c)
	if !ok {
		return
	}

	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.AuthService.ChangePassword(id, req.OldPassword, req.NewPassword); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, nil)
}

// UploadAdminAvatar 上传当前用户头像
func (h *Handler) UploadAdminAvatar(c *gin.Context) {
	id, ok := getAdminID(c)
	if !ok {
		return
	}
	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.file_missing", nil)
		return
	}
	admin, err := h.AdminUserService.UploadAvatar(id, file)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, admin)
}
