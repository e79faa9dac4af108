package service

import (
	"mime/multipart"
	"strings"

	"github.com/webbangiay/internal/constants"
	"github.com/webbangiay/internal/logger"
	"github.com/webbangiay/internal/models"
	"github.com/webbangiay/internal/repository"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gorm.io/gorm"
)

// BrandService 品牌业务服务
type BrandService struct {
	repo        repository.BrandRepository
	productRepo repository.ProductRepository
	storage     FileStorage
}

// NewBrandService 创建品牌服务
func NewBrandService(repo repository.BrandRepository, productRepo repository.ProductRepository, storage FileStorage) *BrandService {
	return &BrandService{repo: repo, productRepo: productRepo, storage: storage}
}

// BrandInput 创建/更新品牌输入
type BrandInput struct {
	BrandName string
	Image     *multipart.FileHeader
	IsActive  *bool
}

// Validate 校验品牌输入
func (in BrandInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.BrandName, validation.Required, validation.Length(1, 100)),
	)
}

// List 品牌列表
func (s *BrandService) List(filter repository.BrandListFilter) ([]models.Brand, int64, error) {
	brands, total, err := s.repo.List(filter)
	if err != nil {
		return nil, 0, err
	}
	for i := range brands {
		brands[i].ImageURL = resolveImageURL(s.storage, brands[i].ImageURL)
	}
	return brands, total, nil
}

// Get 品牌详情
func (s *BrandService) Get(id uint) (*models.Brand, error) {
	brand, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, ErrBrandNotFound
	}
	brand.ImageURL = resolveImageURL(s.storage, brand.ImageURL)
	return brand, nil
}

// Create 创建品牌
func (s *BrandService) Create(input BrandInput) (*models.Brand, error) {
	input.BrandName = strings.TrimSpace(input.BrandName)
	if err := input.Validate(); err != nil {
		return nil, invalidInput(err)
	}
	if err := s.ensureNameAvailable(input.BrandName, 0); err != nil {
		return nil, err
	}

	imageURL, err := s.storeBrandImage(input.Image)
	if err != nil {
		return nil, err
	}
	brand := &models.Brand{
		BrandName: input.BrandName,
		ImageURL:  imageURL,
		IsActive:  boolValue(input.IsActive, true),
	}
	if err := s.repo.Create(brand); err != nil {
		rollbackImage(s.storage, imageURL)
		return nil, err
	}
	brand.ImageURL = resolveImageURL(s.storage, brand.ImageURL)
	return brand, nil
}

// Update 更新品牌，上传新图片时替换旧图
func (s *BrandService) Update(id uint, input BrandInput) (*models.Brand, error) {
	input.BrandName = strings.TrimSpace(input.BrandName)
	if err := input.Validate(); err != nil {
		return nil, invalidInput(err)
	}
	brand, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, ErrBrandNotFound
	}
	if err := s.ensureNameAvailable(input.BrandName, id); err != nil {
		return nil, err
	}

	imageURL, err := s.storeBrandImage(input.Image)
	if err != nil {
		return nil, err
	}
	oldImage := ""
	if imageURL != "" {
		oldImage = brand.ImageURL
		brand.ImageURL = imageURL
	}
	brand.BrandName = input.BrandName
	if err := s.repo.Update(brand); err != nil {
		rollbackImage(s.storage, imageURL)
		return nil, err
	}
	discardImages(s.storage, oldImage)
	brand.ImageURL = resolveImageURL(s.storage, brand.ImageURL)
	return brand, nil
}

// Delete 删除品牌，品牌下仍有商品时拒绝
func (s *BrandService) Delete(id uint) error {
	brand, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if brand == nil {
		return ErrBrandNotFound
	}
	count, err := s.productRepo.CountByBrand(id, false)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrBrandInUse
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	discardImages(s.storage, brand.ImageURL)
	return nil
}

// ToggleStatus 切换品牌状态
// 停用时若仍有上架商品则拒绝，并在同一事务中下架该品牌的商品。
func (s *BrandService) ToggleStatus(id uint) (*StatusToggleResult, error) {
	brand, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, ErrBrandNotFound
	}

	next := !brand.IsActive
	if !next {
		activeProducts, err := s.productRepo.CountByBrand(id, true)
		if err != nil {
			return nil, err
		}
		if activeProducts > 0 {
			return nil, ErrBrandHasActiveProducts
		}
	}

	err = s.productRepo.Transaction(func(tx *gorm.DB) error {
		if !next {
			if _, err := s.productRepo.WithTx(tx).DeactivateByBrand(id); err != nil {
				return err
			}
		}
		return s.repo.WithTx(tx).UpdateStatus(id, next)
	})
	if err != nil {
		return nil, err
	}
	logger.Infow("brand_status_toggled", "brand_id", id, "is_active", next)
	return &StatusToggleResult{ID: id, IsActive: next}, nil
}

func (s *BrandService) ensureNameAvailable(name string, selfID uint) error {
	existing, err := s.repo.GetByName(name)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return ErrBrandNameExists
	}
	return nil
}

func (s *BrandService) storeBrandImage(file *multipart.FileHeader) (string, error) {
	if file == nil {
		return "", nil
	}
	return storeImage(s.storage, file, constants.UploadFolderBrand, UUIDOriginalFileName(file.Filename))
}
