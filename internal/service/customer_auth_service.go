package service

import (
	"context"
	"strings"
	"time"

	"github.com/webbangiay/internal/cache"
	"github.com/webbangiay/internal/config"
	"github.com/webbangiay/internal/logger"
	"github.com/webbangiay/internal/models"
	"github.com/webbangiay/internal/repository"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/golang-jwt/jwt/v5"
)

// CustomerRole 客户 Token 中的角色
const CustomerRole = "CUSTOMER"

// CustomerAuthService 客户认证服务
type CustomerAuthService struct {
	cfg     *config.Config
	repo    repository.CustomerRepository
	captcha *CaptchaService
}

// NewCustomerAuthService 创建客户认证服务
func NewCustomerAuthService(cfg *config.Config, repo repository.CustomerRepository, captcha *CaptchaService) *CustomerAuthService {
	return &CustomerAuthService{cfg: cfg, repo: repo, captcha: captcha}
}

// CustomerJWTClaims 客户 JWT 声明
type CustomerJWTClaims struct {
	CustomerID   uint   `json:"customer_id"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

// RegisterInput 客户注册输入
type RegisterInput struct {
	FullName string
	Email    string
	Password string
	Phone    string
	Address  string
	Address2 string
	City     string
	Captcha  CaptchaVerifyPayload
}

// Validate 校验注册输入
func (in RegisterInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.FullName, validation.Required, validation.Length(1, 100)),
		validation.Field(&in.Email, validation.Required, is.EmailFormat, validation.Length(1, 256)),
		validation.Field(&in.Password, validation.Required, validation.Length(6, 72)),
		validation.Field(&in.Phone, validation.Length(0, 20)),
		validation.Field(&in.Address, validation.Length(0, 255)),
		validation.Field(&in.Address2, validation.Length(0, 255)),
		validation.Field(&in.City, validation.Length(0, 100)),
	)
}

// ProfileInput 客户资料更新输入
type ProfileInput struct {
	FullName string
	Phone    string
	Address  string
	Address2 string
	City     string
}

// Validate 校验资料输入
func (in ProfileInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.FullName, validation.Required, validation.Length(1, 100)),
		validation.Field(&in.Phone, validation.Length(0, 20)),
		validation.Field(&in.Address, validation.Length(0, 255)),
		validation.Field(&in.Address2, validation.Length(0, 255)),
		validation.Field(&in.City, validation.Length(0, 100)),
	)
}

// GenerateCustomerJWT 生成客户 JWT
func (s *CustomerAuthService) GenerateCustomerJWT(customer *models.Customer) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(time.Duration(resolveJWTExpireHours(s.cfg.CustomerJWT)) * time.Hour)
	claims := CustomerJWTClaims{
		CustomerID:   customer.ID,
		Email:        customer.Email,
		Role:         CustomerRole,
		TokenVersion: customer.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.CustomerJWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseCustomerJWT 解析客户 JWT
func (s *CustomerAuthService) ParseCustomerJWT(tokenString string) (*CustomerJWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, &CustomerJWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.CustomerJWT.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*CustomerJWTClaims)
	if !ok || !token.Valid || claims.CustomerID == 0 || claims.Role != CustomerRole {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// Register 客户注册，成功后直接签发 Token
func (s *CustomerAuthService) Register(input RegisterInput) (*models.Customer, string, time.Time, error) {
	if err := s.captcha.Verify(input.Captcha); err != nil {
		return nil, "", time.Time{}, err
	}
	input.FullName = strings.TrimSpace(input.FullName)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Phone = strings.TrimSpace(input.Phone)
	input.Address = strings.TrimSpace(input.Address)
	input.Address2 = strings.TrimSpace(input.Address2)
	input.City = strings.TrimSpace(input.City)
	if err := input.Validate(); err != nil {
		return nil, "", time.Time{}, invalidInput(err)
	}

	existing, err := s.repo.GetByEmail(input.Email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if existing != nil {
		return nil, "", time.Time{}, ErrEmailExists
	}

	hashed, err := hashPassword(input.Password)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	now := time.Now()
	customer := &models.Customer{
		FullName:     input.FullName,
		Email:        input.Email,
		PasswordHash: hashed,
		Phone:        input.Phone,
		Address:      input.Address,
		Address2:     input.Address2,
		City:         input.City,
		IsActive:     true,
		LastLoginAt:  &now,
	}
	if err := s.repo.Create(customer); err != nil {
		return nil, "", time.Time{}, err
	}

	token, expiresAt, err := s.GenerateCustomerJWT(customer)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	logger.Infow("customer_registered", "customer_id", customer.ID)
	return customer, token, expiresAt, nil
}

// Login 客户登录
func (s *CustomerAuthService) Login(email, password string, captcha CaptchaVerifyPayload) (*models.Customer, string, time.Time, error) {
	if err := s.captcha.Verify(captcha); err != nil {
		return nil, "", time.Time{}, err
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	customer, err := s.repo.GetByEmail(email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if customer == nil || !passwordMatches(customer.PasswordHash, password) {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if !customer.IsActive {
		return nil, "", time.Time{}, ErrAccountDisabled
	}

	token, expiresAt, err := s.GenerateCustomerJWT(customer)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	now := time.Now()
	customer.LastLoginAt = &now
	if err := s.repo.Update(customer); err != nil {
		return nil, "", time.Time{}, err
	}
	_ = cache.SetCustomerAuthState(context.Background(), cache.BuildCustomerAuthState(customer))
	return customer, token, expiresAt, nil
}

// Me 当前客户资料
func (s *CustomerAuthService) Me(customerID uint) (*models.Customer, error) {
	customer, err := s.repo.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}
	return customer, nil
}

// UpdateProfile 更新当前客户资料，邮箱不可修改
func (s *CustomerAuthService) UpdateProfile(customerID uint, input ProfileInput) (*models.Customer, error) {
	input.FullName = strings.TrimSpace(input.FullName)
	input.Phone = strings.TrimSpace(input.Phone)
	input.Address = strings.TrimSpace(input.Address)
	input.Address2 = strings.TrimSpace(input.Address2)
	input.City = strings.TrimSpace(input.City)
	if err := input.Validate(); err != nil {
		return nil, invalidInput(err)
	}
	customer, err := s.Me(customerID)
	if err != nil {
		return nil, err
	}
	customer.FullName = input.FullName
	customer.Phone = input.Phone
	customer.Address = input.Address
	customer.Address2 = input.Address2
	customer.City = input.City
	if err := s.repo.Update(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// ChangePassword 修改客户密码
func (s *CustomerAuthService) ChangePassword(customerID uint, oldPassword, newPassword string) error {
	customer, err := s.Me(customerID)
	if err != nil {
		return err
	}
	if !passwordMatches(customer.PasswordHash, oldPassword) {
		return ErrInvalidPassword
	}
	if err := validation.Validate(newPassword, validation.Required, validation.Length(6, 72)); err != nil {
		return invalidInput(err)
	}
	hashed, err := hashPassword(newPassword)
	if err != nil {
		return err
	}
	now := time.Now()
	customer.PasswordHash = hashed
	customer.TokenVersion++
	customer.TokenInvalidBefore = &now
	if err := s.repo.Update(customer); err != nil {
		return err
	}
	_ = cache.SetCustomerAuthState(context.Background(), cache.BuildCustomerAuthState(customer))
	return nil
}

// ResolveCustomerAuthState 读取客户鉴权状态，缓存未命中时回源数据库
func (s *CustomerAuthService) ResolveCustomerAuthState(ctx context.Context, customerID uint) (*cache.CustomerAuthState, error) {
	if cached, hit, err := cache.GetCustomerAuthState(ctx, customerID); err == nil && hit && cached != nil {
		return cached, nil
	}
	customer, err := s.repo.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrTokenInvalid
	}
	state := cache.BuildCustomerAuthState(customer)
	_ = cache.SetCustomerAuthState(ctx, state)
	return state, nil
}
