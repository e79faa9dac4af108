package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/webbangiay/internal/models"
)

const authStateCacheTTL = 10 * time.Minute

// CustomerAuthState 客户鉴权快照
// token_invalid_before 为 Unix 秒时间戳，0 表示未设置
type CustomerAuthState struct {
	CustomerID         uint   `json:"customer_id"`
	IsActive           bool   `json:"is_active"`
	TokenVersion       uint64 `json:"token_version"`
	TokenInvalidBefore int64  `json:"token_invalid_before"`
	UpdatedAt          int64  `json:"updated_at"`
}

// AdminAuthState 后台用户鉴权快照
type AdminAuthState struct {
	AdminID            string `json:"admin_id"`
	Email              string `json:"email"`
	Role               string `json:"role"`
	IsActive           bool   `json:"is_active"`
	TokenVersion       uint64 `json:"token_version"`
	TokenInvalidBefore int64  `json:"token_invalid_before"`
	UpdatedAt          int64  `json:"updated_at"`
}

func customerAuthStateKey(customerID uint) string {
	return fmt.Sprintf("auth:customer:%d", customerID)
}

func adminAuthStateKey(adminID string) string {
	return "auth:admin:" + strings.TrimSpace(adminID)
}

// BuildCustomerAuthState 从客户模型构建鉴权快照
func BuildCustomerAuthState(customer *models.Customer) *CustomerAuthState {
	if customer == nil {
		return nil
	}
	state := &CustomerAuthState{
		CustomerID:   customer.ID,
		IsActive:     customer.IsActive,
		TokenVersion: customer.TokenVersion,
		UpdatedAt:    time.Now().Unix(),
	}
	if customer.TokenInvalidBefore != nil {
		state.TokenInvalidBefore = customer.TokenInvalidBefore.Unix()
	}
	return state
}

// BuildAdminAuthState 从后台用户模型构建鉴权快照
func BuildAdminAuthState(admin *models.AdminUser) *AdminAuthState {
	if admin == nil {
		return nil
	}
	state := &AdminAuthState{
		AdminID:      admin.ID,
		Email:        admin.Email,
		Role:         admin.Role,
		IsActive:     admin.IsActive,
		TokenVersion: admin.TokenVersion,
		UpdatedAt:    time.Now().Unix(),
	}
	if admin.TokenInvalidBefore != nil {
		state.TokenInvalidBefore = admin.TokenInvalidBefore.Unix()
	}
	return state
}

// GetCustomerAuthState 获取客户鉴权快照
func GetCustomerAuthState(ctx context.Context, customerID uint) (*CustomerAuthState, bool, error) {
	if customerID == 0 {
		return nil, false, nil
	}
	var state CustomerAuthState
	hit, err := GetJSON(ctx, customerAuthStateKey(customerID), &state)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &state, true, nil
}

// SetCustomerAuthState 写入客户鉴权快照
func SetCustomerAuthState(ctx context.Context, state *CustomerAuthState) error {
	if state == nil || state.CustomerID == 0 {
		return nil
	}
	return SetJSON(ctx, customerAuthStateKey(state.CustomerID), state, authStateCacheTTL)
}

// DelCustomerAuthState 删除客户鉴权快照
func DelCustomerAuthState(ctx context.Context, customerID uint) error {
	if customerID == 0 {
		return nil
	}
	return Del(ctx, customerAuthStateKey(customerID))
}

// GetAdminAuthState 获取后台用户鉴权快照
func GetAdminAuthState(ctx context.Context, adminID string) (*AdminAuthState, bool, error) {
	if strings.TrimSpace(adminID) == "" {
		return nil, false, nil
	}
	var state AdminAuthState
	hit, err := GetJSON(ctx, adminAuthStateKey(adminID), &state)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &state, true, nil
}

// SetAdminAuthState 写入后台用户鉴权快照
func SetAdminAuthState(ctx context.Context, state *AdminAuthState) error {
	if state == nil || strings.TrimSpace(state.AdminID) == "" {
		return nil
	}
	return SetJSON(ctx, adminAuthStateKey(state.AdminID), state, authStateCacheTTL)
}

// DelAdminAuthState 删除后台用户鉴权快照
func DelAdminAuthState(ctx context.Context, adminID string) error {
	if strings.TrimSpace(adminID) == "" {
		return nil
	}
	return Del(ctx, adminAuthStateKey(adminID))
}
