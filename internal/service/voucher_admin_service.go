package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/webbangiay/internal/constants"
	"github.com/webbangiay/internal/models"
	"github.com/webbangiay/internal/repository"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

const voucherDateLayout = "2006-01-02"

// VoucherAdminService 优惠券后台管理
type VoucherAdminService struct {
	repo      repository.VoucherRepository
	usageRepo repository.VoucherUsageRepository
	loc       *time.Location
}

// NewVoucherAdminService 创建优惠券管理服务
func NewVoucherAdminService(voucherSvc *VoucherService, repo repository.VoucherRepository, usageRepo repository.VoucherUsageRepository) *VoucherAdminService {
	loc := time.Local
	if voucherSvc != nil && voucherSvc.loc != nil {
		loc = voucherSvc.loc
	}
	return &VoucherAdminService{repo: repo, usageRepo: usageRepo, loc: loc}
}

// VoucherInput 创建/更新优惠券输入
type VoucherInput struct {
	Code           string
	Name           string
	Description    string
	DiscountType   string
	DiscountValue  models.Money
	MaxDiscount    models.Money
	MinOrderValue  models.Money
	ConditionType  string
	ConditionValue models.Money
	StartDate      string
	EndDate        string
	UsageLimit     int
	IsActive       *bool
}

// Validate 校验输入
func (in VoucherInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Code,
			validation.Required.Error("code is required"),
			validation.Length(3, 50).Error("code must be 3-50 characters"),
		),
		validation.Field(&in.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&in.Description, validation.Length(0, 500)),
		validation.Field(&in.DiscountType, validation.Required, validation.In(constants.DiscountTypes()...)),
		validation.Field(&in.DiscountValue, validation.By(positiveMoney), validation.By(in.validatePercentage)),
		validation.Field(&in.MaxDiscount, validation.By(nonNegativeMoney)),
		validation.Field(&in.MinOrderValue, validation.By(nonNegativeMoney)),
		validation.Field(&in.ConditionType, validation.Required, validation.In(constants.ConditionTypes()...)),
		validation.Field(&in.ConditionValue, validation.By(nonNegativeMoney)),
		validation.Field(&in.StartDate, validation.Required, validation.Date(voucherDateLayout)),
		validation.Field(&in.EndDate, validation.Required, validation.Date(voucherDateLayout)),
		validation.Field(&in.UsageLimit, validation.Min(0)),
	)
}

func (in VoucherInput) validatePercentage(value interface{}) error {
	if in.DiscountType != constants.DiscountTypePercentage {
		return nil
	}
	money, _ := value.(models.Money)
	if money.Decimal.GreaterThan(decimal.NewFromInt(100)) {
		return errors.New("percentage must not exceed 100")
	}
	return nil
}

func positiveMoney(value interface{}) error {
	money, _ := value.(models.Money)
	if money.Decimal.LessThanOrEqual(decimal.Zero) {
		return errors.New("must be greater than 0")
	}
	return nil
}

func nonNegativeMoney(value interface{}) error {
	money, _ := value.(models.Money)
	if money.Decimal.LessThan(decimal.Zero) {
		return errors.New("must be no less than 0")
	}
	return nil
}

func (s *VoucherAdminService) normalizeInput(input VoucherInput) (VoucherInput, time.Time, time.Time, error) {
	input.Code = strings.ToUpper(strings.TrimSpace(input.Code))
	input.Name = strings.TrimSpace(input.Name)
	input.Description = strings.TrimSpace(input.Description)
	input.DiscountType = strings.ToUpper(strings.TrimSpace(input.DiscountType))
	input.ConditionType = strings.ToUpper(strings.TrimSpace(input.ConditionType))
	input.StartDate = strings.TrimSpace(input.StartDate)
	input.EndDate = strings.TrimSpace(input.EndDate)
	if err := input.Validate(); err != nil {
		return input, time.Time{}, time.Time{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	start, err := time.ParseInLocation(voucherDateLayout, input.StartDate, s.loc)
	if err != nil {
		return input, time.Time{}, time.Time{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	end, err := time.ParseInLocation(voucherDateLayout, input.EndDate, s.loc)
	if err != nil {
		return input, time.Time{}, time.Time{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if end.Before(start) {
		return input, time.Time{}, time.Time{}, ErrVoucherDateRange
	}
	return input, start, end, nil
}

// List 优惠券列表
func (s *VoucherAdminService) List(filter repository.VoucherListFilter) ([]models.Voucher, int64, error) {
	return s.repo.List(filter)
}

// Get 获取优惠券
func (s *VoucherAdminService) Get(id uint) (*models.Voucher, error) {
	voucher, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if voucher == nil {
		return nil, ErrVoucherNotFound
	}
	return voucher, nil
}

// Create 创建优惠券
func (s *VoucherAdminService) Create(input VoucherInput) (*models.Voucher, error) {
	input, start, end, err := s.normalizeInput(input)
	if err != nil {
		return nil, err
	}
	exist, err := s.repo.GetByCode(input.Code)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrVoucherCodeExists
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}
	voucher := &models.Voucher{
		Code:           input.Code,
		Name:           input.Name,
		Description:    input.Description,
		DiscountType:   input.DiscountType,
		DiscountValue:  input.DiscountValue,
		MaxDiscount:    input.MaxDiscount,
		MinOrderValue:  input.MinOrderValue,
		ConditionType:  input.ConditionType,
		ConditionValue: input.ConditionValue,
		StartDate:      start,
		EndDate:        end,
		UsageLimit:     input.UsageLimit,
		IsActive:       isActive,
	}
	if err := s.repo.Create(voucher); err != nil {
		return nil, err
	}
	return voucher, nil
}

// Update 更新优惠券（已使用次数保持不变）
func (s *VoucherAdminService) Update(id uint, input VoucherInput) (*models.Voucher, error) {
	voucher, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	input, start, end, err := s.normalizeInput(input)
	if err != nil {
		return nil, err
	}
	if input.Code != voucher.Code {
		exist, err := s.repo.GetByCode(input.Code)
		if err != nil {
			return nil, err
		}
		if exist != nil && exist.ID != voucher.ID {
			return nil, ErrVoucherCodeExists
		}
	}

	voucher.Code = input.Code
	voucher.Name = input.Name
	voucher.Description = input.Description
	voucher.DiscountType = input.DiscountType
	voucher.DiscountValue = input.DiscountValue
	voucher.MaxDiscount = input.MaxDiscount
	voucher.MinOrderValue = input.MinOrderValue
	voucher.ConditionType = input.ConditionType
	voucher.ConditionValue = input.ConditionValue
	voucher.StartDate = start
	voucher.EndDate = end
	voucher.UsageLimit = input.UsageLimit
	if input.IsActive != nil {
		voucher.IsActive = *input.IsActive
	}
	if err := s.repo.Update(voucher); err != nil {
		return nil, err
	}
	return s.Get(id)
}

// Delete 删除优惠券，已有使用记录时拒绝
func (s *VoucherAdminService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	_, total, err := s.usageRepo.List(repository.VoucherUsageListFilter{VoucherID: id, Page: 1, PageSize: 1})
	if err != nil {
		return err
	}
	if total > 0 {
		return ErrVoucherInUse
	}
	return s.repo.Delete(id)
}

// ToggleStatus 切换启用状态
func (s *VoucherAdminService) ToggleStatus(id uint) (*models.Voucher, error) {
	voucher, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	next := !voucher.IsActive
	if err := s.repo.UpdateStatus(id, next); err != nil {
		return nil, err
	}
	voucher.IsActive = next
	return voucher, nil
}

// UsageHistory 优惠券使用记录（按优惠券或客户过滤）
func (s *VoucherAdminService) UsageHistory(filter repository.VoucherUsageListFilter) ([]models.VoucherUsage, int64, error) {
	if filter.VoucherID != 0 {
		if _, err := s.Get(filter.VoucherID); err != nil {
			return nil, 0, err
		}
	}
	return s.usageRepo.List(filter)
}
