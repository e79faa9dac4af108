package service

import (
	"strings"

	"github.com/webbangiay/internal/constants"
	"github.com/webbangiay/internal/logger"
	"github.com/webbangiay/internal/models"
	"github.com/webbangiay/internal/repository"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// SubCategoryService 子分类业务服务
type SubCategoryService struct {
	repo         repository.SubCategoryRepository
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
}

// NewSubCategoryService 创建子分类服务
func NewSubCategoryService(
	repo repository.SubCategoryRepository,
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
) *SubCategoryService {
	return &SubCategoryService{repo: repo, categoryRepo: categoryRepo, productRepo: productRepo}
}

// SubCategoryInput 创建/更新子分类输入
type SubCategoryInput struct {
	SubCategoryName string
	Gender          string
	CategoryID      uint
	IsActive        *bool
}

// Validate 校验子分类输入
func (in SubCategoryInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.SubCategoryName, validation.Required, validation.Length(1, 50)),
		validation.Field(&in.Gender, validation.Required, validation.In(constants.Genders()...)),
		validation.Field(&in.CategoryID, validation.By(positiveID)),
	)
}

func normalizeSubCategoryInput(in SubCategoryInput) SubCategoryInput {
	in.SubCategoryName = strings.TrimSpace(in.SubCategoryName)
	in.Gender = strings.ToUpper(strings.TrimSpace(in.Gender))
	return in
}

// List 子分类列表
func (s *SubCategoryService) List(filter repository.SubCategoryListFilter) ([]models.SubCategory, int64, error) {
	filter.Gender = strings.ToUpper(strings.TrimSpace(filter.Gender))
	return s.repo.List(filter)
}

// Get 子分类详情
func (s *SubCategoryService) Get(id uint) (*models.SubCategory, error) {
	subCategory, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if subCategory == nil {
		return nil, ErrSubCategoryNotFound
	}
	return subCategory, nil
}

// Create 创建子分类
func (s *SubCategoryService) Create(input SubCategoryInput) (*models.SubCategory, error) {
	input = normalizeSubCategoryInput(input)
	if err := input.Validate(); err != nil {
		return nil, invalidInput(err)
	}
	if err := s.ensureCategory(input.CategoryID); err != nil {
		return nil, err
	}

	subCategory := &models.SubCategory{
		SubCategoryName: input.SubCategoryName,
		Gender:          input.Gender,
		CategoryID:      input.CategoryID,
		IsActive:        boolValue(input.IsActive, true),
	}
	if err := s.repo.Create(subCategory); err != nil {
		return nil, err
	}
	return subCategory, nil
}

// Update 更新子分类
func (s *SubCategoryService) Update(id uint, input SubCategoryInput) (*models.SubCategory, error) {
	input = normalizeSubCategoryInput(input)
	if err := input.Validate(); err != nil {
		return nil, invalidInput(err)
	}
	subCategory, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureCategory(input.CategoryID); err != nil {
		return nil, err
	}

	subCategory.SubCategoryName = input.SubCategoryName
	subCategory.Gender = input.Gender
	subCategory.CategoryID = input.CategoryID
	subCategory.Category = nil
	if err := s.repo.Update(subCategory); err != nil {
		return nil, err
	}
	return subCategory, nil
}

// Delete 删除子分类，仍有商品时拒绝
func (s *SubCategoryService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	count, err := s.productRepo.CountBySubCategory(id, false)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrSubCategoryInUse
	}
	return s.repo.Delete(id)
}

// ToggleStatus 切换子分类状态，停用时不允许存在上架商品
func (s *SubCategoryService) ToggleStatus(id uint) (*StatusToggleResult, error) {
	subCategory, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	next := !subCategory.IsActive
	if !next {
		count, err := s.productRepo.CountBySubCategory(id, true)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrSubCategoryHasActive
		}
	}
	if err := s.repo.UpdateStatus(id, next); err != nil {
		return nil, err
	}
	logger.Infow("sub_category_status_toggled", "sub_category_id", id, "is_active", next)
	return &StatusToggleResult{ID: id, IsActive: next}, nil
}

func (s *SubCategoryService) ensureCategory(categoryID uint) error {
	category, err := s.categoryRepo.GetByID(categoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}
	return nil
}
