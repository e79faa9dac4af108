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
)

// CustomerService 后台客户管理服务
type CustomerService struct {
	repo            repository.CustomerRepository
	orderRepo       repository.OrderRepository
	defaultPassword string
}

// NewCustomerService 创建客户管理服务
func NewCustomerService(cfg *config.Config, repo repository.CustomerRepository, orderRepo repository.OrderRepository) *CustomerService {
	svc := &CustomerService{repo: repo, orderRepo: orderRepo, defaultPassword: "123456"}
	if cfg != nil && strings.TrimSpace(cfg.DefaultUser.Password) != "" {
		svc.defaultPassword = cfg.DefaultUser.Password
	}
	return svc
}

// CustomerInput 后台创建/更新客户输入，Password 为空时创建使用默认密码、更新保持不变
type CustomerInput struct {
	FullName string
	Email    string
	Password string
	Phone    string
	Address  string
	Address2 string
	City     string
	IsActive *bool
}

// Validate 校验客户输入
func (in CustomerInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.FullName, validation.Required, validation.Length(1, 100)),
		validation.Field(&in.Email, validation.Required, is.EmailFormat, validation.Length(1, 256)),
		validation.Field(&in.Phone, validation.Length(0, 20)),
		validation.Field(&in.Address, validation.Length(0, 255)),
		validation.Field(&in.Address2, validation.Length(0, 255)),
		validation.Field(&in.City, validation.Length(0, 100)),
	)
}

func normalizeCustomerInput(in CustomerInput) CustomerInput {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
	in.Address = strings.TrimSpace(in.Address)
	in.Address2 = strings.TrimSpace(in.Address2)
	in.City = strings.TrimSpace(in.City)
	return in
}

// List 客户列表
func (s *CustomerService) List(filter repository.CustomerListFilter) ([]models.Customer, int64, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	return s.repo.List(filter)
}

// Get 客户详情
func (s *CustomerService) Get(id uint) (*models.Customer, error) {
	customer, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}
	return customer, nil
}

// Create 后台创建客户
func (s *CustomerService) Create(input CustomerInput) (*models.Customer, error) {
	input = normalizeCustomerInput(input)
	if err := input.Validate(); err != nil {
		return nil, invalidInput(err)
	}
	if err := s.ensureEmailAvailable(input.Email, 0); err != nil {
		return nil, err
	}
	password := input.Password
	if strings.TrimSpace(password) == "" {
		password = s.defaultPassword
	}
	hashed, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	customer := &models.Customer{
		FullName:     input.FullName,
		Email:        input.Email,
		PasswordHash: hashed,
		Phone:        input.Phone,
		Address:      input.Address,
		Address2:     input.Address2,
		City:         input.City,
		IsActive:     boolValue(input.IsActive, true),
	}
	if err := s.repo.Create(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// Update 后台更新客户资料，提供密码时同时重置密码并使旧 Token 失效
func (s *CustomerService) Update(id uint, input CustomerInput) (*models.Customer, error) {
	input = normalizeCustomerInput(input)
	if err := input.Validate(); err != nil {
		return nil, invalidInput(err)
	}
	customer, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureEmailAvailable(input.Email, id); err != nil {
		return nil, err
	}

	customer.FullName = input.FullName
	customer.Email = input.Email
	customer.Phone = input.Phone
	customer.Address = input.Address
	customer.Address2 = input.Address2
	customer.City = input.City
	if strings.TrimSpace(input.Password) != "" {
		hashed, err := hashPassword(input.Password)
		if err != nil {
			return nil, err
		}
		now := time.Now()
		customer.PasswordHash = hashed
		customer.TokenVersion++
		customer.TokenInvalidBefore = &now
	}
	if err := s.repo.Update(customer); err != nil {
		return nil, err
	}
	_ = cache.DelCustomerAuthState(context.Background(), customer.ID)
	return customer, nil
}

// Delete 删除客户，已有订单时拒绝
func (s *CustomerService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.ensureNoOrders(id); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	_ = cache.DelCustomerAuthState(context.Background(), id)
	return nil
}

// ToggleStatus 切换客户状态，停用已有订单的客户时拒绝
func (s *CustomerService) ToggleStatus(id uint) (*StatusToggleResult, error) {
	customer, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	next := !customer.IsActive
	if !next {
		if err := s.ensureNoOrders(id); err != nil {
			return nil, err
		}
	}
	if err := s.repo.UpdateStatus(id, next); err != nil {
		return nil, err
	}
	_ = cache.DelCustomerAuthState(context.Background(), id)
	logger.Infow("customer_status_toggled", "customer_id", id, "is_active", next)
	return &StatusToggleResult{ID: id, IsActive: next}, nil
}

func (s *CustomerService) ensureNoOrders(id uint) error {
	count, err := s.orderRepo.CountByCustomer(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCustomerHasOrders
	}
	return nil
}

func (s *CustomerService) ensureEmailAvailable(email string, selfID uint) error {
	existing, err := s.repo.GetByEmail(email)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return ErrEmailExists
	}
	return nil
}
