package service

import (
	"strings"

	"github.com/webbangiay/internal/models"
	"github.com/webbangiay/internal/repository"
)

// GuestService 游客信息管理
type GuestService struct {
	repo repository.GuestRepository
}

// NewGuestService 创建游客服务
func NewGuestService(repo repository.GuestRepository) *GuestService {
	return &GuestService{repo: repo}
}

// List 游客列表
func (s *GuestService) List(filter repository.GuestListFilter) ([]models.Guest, int64, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	return s.repo.List(filter)
}

// Get 游客详情
func (s *GuestService) Get(id uint) (*models.Guest, error) {
	guest, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if guest == nil {
		return nil, ErrGuestNotFound
	}
	return guest, nil
}

// Create 创建游客
func (s *GuestService) Create(input GuestInput) (*models.Guest, error) {
	input = normalizeGuestInput(input)
	if err := input.Validate(); err != nil {
		return nil, invalidInput(err)
	}
	guest := &models.Guest{
		FullName: input.FullName,
		Email:    input.Email,
		Phone:    input.Phone,
		Address:  input.Address,
		Address2: input.Address2,
		City:     input.City,
	}
	if err := s.repo.Create(guest); err != nil {
		return nil, err
	}
	return guest, nil
}

// Update 更新游客联系信息
func (s *GuestService) Update(id uint, input GuestInput) (*models.Guest, error) {
	input = normalizeGuestInput(input)
	if err := input.Validate(); err != nil {
		return nil, invalidInput(err)
	}
	guest, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	guest.FullName = input.FullName
	guest.Email = input.Email
	guest.Phone = input.Phone
	guest.Address = input.Address
	guest.Address2 = input.Address2
	guest.City = input.City
	if err := s.repo.Update(guest); err != nil {
		return nil, err
	}
	return guest, nil
}

// Delete 删除游客，已关联订单时拒绝
func (s *GuestService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	count, err := s.repo.CountOrders(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrGuestHasOrders
	}
	return s.repo.Delete(id)
}
