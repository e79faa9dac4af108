package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/webbangiay/internal/cache"
	"github.com/webbangiay/internal/config"
	"github.com/webbangiay/internal/logger"
	"github.com/webbangiay/internal/models"
	"github.com/webbangiay/internal/repository"

	"github.com/golang-jwt/jwt/v5"
)

// AuthService 后台认证服务
type AuthService struct {
	cfg       *config.Config
	adminRepo repository.AdminUserRepository
}

// NewAuthService 创建认证服务实例
func NewAuthService(cfg *config.Config, adminRepo repository.AdminUserRepository) *AuthService {
	return &AuthService{
		cfg:       cfg,
		adminRepo: adminRepo,
	}
}

// ValidatePassword 校验密码是否符合策略
func (s *AuthService) ValidatePassword(password string) error {
	if s == nil || s.cfg == nil {
		return nil
	}
	return validatePassword(s.cfg.Security.PasswordPolicy, password)
}

// JWTClaims 后台 JWT 声明
type JWTClaims struct {
	AdminID      string `json:"admin_id"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

// GenerateJWT 生成 JWT Token
func (s *AuthService) GenerateJWT(admin *models.AdminUser) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(time.Duration(resolveJWTExpireHours(s.cfg.JWT)) * time.Hour)

	claims := JWTClaims{
		AdminID:      admin.ID,
		Email:        admin.Email,
		Role:         admin.Role,
		TokenVersion: admin.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   admin.ID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseJWT 解析 JWT Token
func (s *AuthService) ParseJWT(tokenString string) (*JWTClaims, error) {
	return ParseAdminJWT(s.cfg.JWT.SecretKey, tokenString)
}

// ParseAdminJWT 使用指定密钥解析后台 Token
func ParseAdminJWT(secret, tokenString string) (*JWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid && claims.AdminID != "" {
		return claims, nil
	}
	return nil, ErrTokenInvalid
}

// Login 后台用户登录
func (s *AuthService) Login(email, password string) (*models.AdminUser, string, time.Time, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	admin, err := s.adminRepo.GetByEmail(email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if admin == nil || !passwordMatches(admin.PasswordHash, password) {
		logger.Warnw("admin_login_failed", "email", email)
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if !admin.IsActive {
		return nil, "", time.Time{}, ErrAccountDisabled
	}

	token, expiresAt, err := s.GenerateJWT(admin)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	now := time.Now()
	admin.LastLoginAt = &now
	if err := s.adminRepo.Update(admin); err != nil {
		return nil, "", time.Time{}, err
	}
	_ = cache.SetAdminAuthState(context.Background(), cache.BuildAdminAuthState(admin))
	logger.Infow("admin_login", "admin_id", admin.ID, "role", admin.Role)
	return admin, token, expiresAt, nil
}

// GetAdminByID 查询后台用户
func (s *AuthService) GetAdminByID(id string) (*models.AdminUser, error) {
	admin, err := s.adminRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, ErrAdminUserNotFound
	}
	return admin, nil
}

// ChangePassword 修改后台用户密码，旧 Token 全部失效
func (s *AuthService) ChangePassword(adminID, oldPassword, newPassword string) error {
	admin, err := s.GetAdminByID(adminID)
	if err != nil {
		return err
	}
	if !passwordMatches(admin.PasswordHash, oldPassword) {
		return ErrInvalidPassword
	}
	if err := s.ValidatePassword(newPassword); err != nil {
		return err
	}

	hashed, err := hashPassword(newPassword)
	if err != nil {
		return err
	}
	now := time.Now()
	admin.PasswordHash = hashed
	admin.TokenVersion++
	admin.TokenInvalidBefore = &now
	if err := s.adminRepo.Update(admin); err != nil {
		return err
	}
	_ = cache.SetAdminAuthState(context.Background(), cache.BuildAdminAuthState(admin))
	logger.Infow("admin_password_changed", "admin_id", admin.ID)
	return nil
}

// ResolveAdminAuthState 读取后台用户鉴权状态，缓存未命中时回源数据库
func (s *AuthService) ResolveAdminAuthState(ctx context.Context, adminID string) (*cache.AdminAuthState, error) {
	if cached, hit, err := cache.GetAdminAuthState(ctx, adminID); err == nil && hit && cached != nil {
		return cached, nil
	}
	admin, err := s.adminRepo.GetByID(adminID)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, ErrTokenInvalid
	}
	state := cache.BuildAdminAuthState(admin)
	_ = cache.SetAdminAuthState(ctx, state)
	return state, nil
}

// CheckTokenState 校验 Token 与当前账号状态是否一致
func CheckTokenState(tokenVersion uint64, issuedAt *jwt.NumericDate, stateVersion uint64, invalidBeforeUnix int64, active bool) error {
	if !active {
		return ErrAccountDisabled
	}
	if tokenVersion != stateVersion {
		return ErrTokenRevoked
	}
	if invalidBeforeUnix > 0 && (issuedAt == nil || issuedAt.Time.Unix() < invalidBeforeUnix) {
		return ErrTokenRevoked
	}
	return nil
}

func resolveJWTExpireHours(cfg config.JWTConfig) int {
	if cfg.ExpireHours <= 0 {
		return 24
	}
	return cfg.ExpireHours
}

// IsTokenError 判断是否为 Token 相关错误
func IsTokenError(err error) bool {
	return errors.Is(err, ErrTokenInvalid) || errors.Is(err, ErrTokenRevoked) || errors.Is(err, ErrAccountDisabled)
}
