package admin

import (
	"strings"

	handlershared "github.com/webbangiay/internal/http/handlers/shared"
	"github.com/webbangiay/internal/http/response"
	"github.com/webbangiay/internal/repository"
	"github.com/webbangiay/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminUserRequest 后台用户创建/更新请求
type AdminUserRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password"`
	Role     string `json:"role" binding:"required"`
	IsActive *bool  `json:"is_active"`
}

func (r AdminUserRequest) toInput() service.AdminUserInput {
	return service.AdminUserInput{
		FullName: r.FullName,
		Email:    r.Email,
		Password: r.Password,
		Role:     r.Role,
		IsActive: r.IsActive,
	}
}

// ListAdminUsers 后台用户列表
func (h *Handler) ListAdminUsers(c *gin.Context) {
	page, pageSize := pageQuery(c)
	isActive, ok := handlershared.OptionalBoolQuery(c, "is_active")
	if !ok {
		return
	}
	users, total, err := h.AdminUserService.List(repository.AdminUserListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   c.Query("search"),
		Role:     strings.ToUpper(strings.TrimSpace(c.Query("role"))),
		IsActive: isActive,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondPage(c, users, page, pageSize, total)
}

// GetAdminUser 后台用户详情
func (h *Handler) GetAdminUser(c *gin.Context) {
	user, err := h.AdminUserService.Get(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, user)
}

// CreateAdminUser 创建后台用户
func (h *Handler) CreateAdminUser(c *gin.Context) {
	var req AdminUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	user, err := h.AdminUserService.Create(req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	requestLog(c).Infow("admin_user_create", "operator_admin_id", c.GetString("admin_id"), "admin_id", user.ID)
	response.Success(c, user)
}

// UpdateAdminUser 更新后台用户
func (h *Handler) UpdateAdminUser(c *gin.Context) {
	var req AdminUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	user, err := h.AdminUserService.Update(c.Param("id"), req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, user)
}

// DeleteAdminUser 删除后台用户
func (h *Handler) DeleteAdminUser(c *gin.Context) {
	actorID, ok := getAdminID(c)
	if !ok {
		return
	}
	if err := h.AdminUserService.Delete(c.Param("id"), actorID); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, nil)
}
