package service

import (
	"github.com/webbangiay/internal/models"
	"github.com/webbangiay/internal/repository"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ProductSizeService 尺码业务服务
type ProductSizeService struct {
	repo      repository.ProductSizeRepository
	colorRepo repository.ProductColorRepository
}

// NewProductSizeService 创建尺码服务
func NewProductSizeService(repo repository.ProductSizeRepository, colorRepo repository.ProductColorRepository) *ProductSizeService {
	return &ProductSizeService{repo: repo, colorRepo: colorRepo}
}

// ProductSizeInput 创建/更新尺码输入
type ProductSizeInput struct {
	ProductColorID uint
	SizeValue      int
	StockQuantity  int
	IsActive       *bool
}

// Validate 校验尺码输入
func (in ProductSizeInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.ProductColorID, validation.By(positiveID)),
		validation.Field(&in.SizeValue, validation.Required, validation.Min(1), validation.Max(60)),
		validation.Field(&in.StockQuantity, validation.Min(0)),
	)
}

// List 全部尺码
func (s *ProductSizeService) List() ([]models.ProductSize, error) {
	return s.repo.List()
}

// ListByColor 颜色款下的尺码
func (s *ProductSizeService) ListByColor(colorID uint, onlyActive bool) ([]models.ProductSize, error) {
	return s.repo.ListByColor(colorID, onlyActive)
}

// Get 尺码详情
func (s *ProductSizeService) Get(id uint) (*models.ProductSize, error) {
	size, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if size == nil {
		return nil, ErrProductSizeNotFound
	}
	return size, nil
}

// Create 创建尺码
func (s *ProductSizeService) Create(input ProductSizeInput) (*models.ProductSize, error) {
	if err := input.Validate(); err != nil {
		return nil, invalidInput(err)
	}
	color, err := s.loadColor(input.ProductColorID)
	if err != nil {
		return nil, err
	}
	size := &models.ProductSize{
		SizeValue:      input.SizeValue,
		StockQuantity:  input.StockQuantity,
		ProductColorID: input.ProductColorID,
		IsActive:       boolValue(input.IsActive, true) && color.IsActive,
	}
	if err := s.repo.Create(size); err != nil {
		return nil, err
	}
	return size, nil
}

// Update 更新尺码与库存
func (s *ProductSizeService) Update(id uint, input ProductSizeInput) (*models.ProductSize, error) {
	if err := input.Validate(); err != nil {
		return nil, invalidInput(err)
	}
	size, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if _, err := s.loadColor(input.ProductColorID); err != nil {
		return nil, err
	}
	size.SizeValue = input.SizeValue
	size.StockQuantity = input.StockQuantity
	size.ProductColorID = input.ProductColorID
	size.ProductColor = nil
	if err := s.repo.Update(size); err != nil {
		return nil, err
	}
	return size, nil
}

// Delete 删除尺码，已被订单引用时拒绝
func (s *ProductSizeService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	ordered, err := s.repo.CountOrdered(id)
	if err != nil {
		return err
	}
	if ordered > 0 {
		return ErrProductSizeInUse
	}
	return s.repo.Delete(id)
}

// ToggleStatus 切换尺码状态，启用时要求所属颜色款已启用
func (s *ProductSizeService) ToggleStatus(id uint) (*StatusToggleResult, error) {
	size, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	next := !size.IsActive
	if next {
		color, err := s.loadColor(size.ProductColorID)
		if err != nil {
			return nil, err
		}
		if !color.IsActive {
			return nil, ErrProductColorInactive
		}
	}
	if err := s.repo.UpdateStatus(id, next); err != nil {
		return nil, err
	}
	return &StatusToggleResult{ID: id, IsActive: next}, nil
}

func (s *ProductSizeService) loadColor(colorID uint) (*models.ProductColor, error) {
	color, err := s.colorRepo.GetByID(colorID)
	if err != nil {
		return nil, err
	}
	if color == nil {
		return nil, ErrProductColorNotFound
	}
	return color, nil
}
