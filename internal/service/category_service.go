package service

import (
	"strings"

	"github.com/webbangiay/internal/logger"
	"github.com/webbangiay/internal/models"
	"github.com/webbangiay/internal/repository"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CategoryService 分类业务服务
type CategoryService struct {
	repo    repository.CategoryRepository
	subRepo repository.SubCategoryRepository
}

// NewCategoryService 创建分类服务
func NewCategoryService(repo repository.CategoryRepository, subRepo repository.SubCategoryRepository) *CategoryService {
	return &CategoryService{repo: repo, subRepo: subRepo}
}

// CategoryInput 创建/更新分类输入
type CategoryInput struct {
	CategoryName string
	IsActive     *bool
}

// Validate 校验分类输入
func (in CategoryInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.CategoryName, validation.Required, validation.Length(1, 50)),
	)
}

// List 获取分类列表
func (s *CategoryService) List(filter repository.CategoryListFilter) ([]models.Category, int64, error) {
	return s.repo.List(filter)
}

// Get 获取分类
func (s *CategoryService) Get(id uint) (*models.Category, error) {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

// Create 创建分类
func (s *CategoryService) Create(input CategoryInput) (*models.Category, error) {
	input.CategoryName = strings.TrimSpace(input.CategoryName)
	if err := input.Validate(); err != nil {
		return nil, invalidInput(err)
	}
	if err := s.ensureNameAvailable(input.CategoryName, 0); err != nil {
		return nil, err
	}

	category := models.Category{
		CategoryName: input.CategoryName,
		IsActive:     boolValue(input.IsActive, true),
	}
	if err := s.repo.Create(&category); err != nil {
		return nil, err
	}
	return &category, nil
}

// Update 更新分类名称
func (s *CategoryService) Update(id uint, input CategoryInput) (*models.Category, error) {
	input.CategoryName = strings.TrimSpace(input.CategoryName)
	if err := input.Validate(); err != nil {
		return nil, invalidInput(err)
	}
	category, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureNameAvailable(input.CategoryName, id); err != nil {
		return nil, err
	}

	category.CategoryName = input.CategoryName
	if err := s.repo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete 删除分类
func (s *CategoryService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	count, err := s.subRepo.CountByCategory(id, false)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}
	return s.repo.Delete(id)
}

// ToggleStatus 切换分类状态，停用时不允许存在启用的子分类
func (s *CategoryService) ToggleStatus(id uint) (*StatusToggleResult, error) {
	category, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	next := !category.IsActive
	if !next {
		count, err := s.subRepo.CountByCategory(id, true)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrCategoryHasActiveChildren
		}
	}
	if err := s.repo.UpdateStatus(id, next); err != nil {
		return nil, err
	}
	logger.Infow("category_status_toggled", "category_id", id, "is_active", next)
	return &StatusToggleResult{ID: id, IsActive: next}, nil
}

func (s *CategoryService) ensureNameAvailable(name string, selfID uint) error {
	existing, err := s.repo.GetByName(name)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return ErrCategoryNameExists
	}
	return nil
}
