package service

import (
	"mime/multipart"
	"strings"

	"github.com/webbangiay/internal/logger"
	"github.com/webbangiay/internal/models"
	"github.com/webbangiay/internal/repository"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gorm.io/gorm"
)

// ProductColorService 颜色款业务服务
type ProductColorService struct {
	repo        repository.ProductColorRepository
	productRepo repository.ProductRepository
	sizeRepo    repository.ProductSizeRepository
	imageRepo   repository.ProductColorImageRepository
	storage     FileStorage
}

// NewProductColorService 创建颜色款服务
func NewProductColorService(
	repo repository.ProductColorRepository,
	productRepo repository.ProductRepository,
	sizeRepo repository.ProductSizeRepository,
	imageRepo repository.ProductColorImageRepository,
	storage FileStorage,
) *ProductColorService {
	return &ProductColorService{
		repo:        repo,
		productRepo: productRepo,
		sizeRepo:    sizeRepo,
		imageRepo:   imageRepo,
		storage:     storage,
	}
}

// ProductColorInput 创建/更新颜色款输入
type ProductColorInput struct {
	ProductID uint
	ColorName string
	Image     *multipart.FileHeader
	IsActive  *bool
}

// Validate 校验颜色款输入
func (in ProductColorInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.ProductID, validation.By(positiveID)),
		validation.Field(&in.ColorName, validation.Required, validation.Length(1, 50)),
	)
}

// List 全部颜色款
func (s *ProductColorService) List() ([]models.ProductColor, error) {
	colors, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	for i := range colors {
		resolveColorImages(s.storage, &colors[i])
	}
	return colors, nil
}

// ListByProduct 商品下的颜色款
func (s *ProductColorService) ListByProduct(productID uint, onlyActive bool) ([]models.ProductColor, error) {
	colors, err := s.repo.ListByProduct(productID, onlyActive)
	if err != nil {
		return nil, err
	}
	for i := range colors {
		resolveColorImages(s.storage, &colors[i])
	}
	return colors, nil
}

// Get 颜色款详情
func (s *ProductColorService) Get(id uint) (*models.ProductColor, error) {
	color, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if color == nil {
		return nil, ErrProductColorNotFound
	}
	resolveColorImages(s.storage, color)
	return color, nil
}

// Create 创建颜色款，主图存放在 product_color/p<商品ID>
func (s *ProductColorService) Create(input ProductColorInput) (*models.ProductColor, error) {
	input.ColorName = strings.TrimSpace(input.ColorName)
	if err := input.Validate(); err != nil {
		return nil, invalidInput(err)
	}
	if err := s.ensureProduct(input.ProductID); err != nil {
		return nil, err
	}

	imageURL, err := storeImage(s.storage, input.Image, ProductColorFolder(input.ProductID), UUIDFileName())
	if err != nil {
		return nil, err
	}
	color := &models.ProductColor{
		ColorName: input.ColorName,
		ImageURL:  imageURL,
		ProductID: input.ProductID,
		IsActive:  boolValue(input.IsActive, true),
	}
	if err := s.repo.Create(color); err != nil {
		rollbackImage(s.storage, imageURL)
		return nil, err
	}
	resolveColorImages(s.storage, color)
	return color, nil
}

// Update 更新颜色款
func (s *ProductColorService) Update(id uint, input ProductColorInput) (*models.ProductColor, error) {
	input.ColorName = strings.TrimSpace(input.ColorName)
	if err := input.Validate(); err != nil {
		return nil, invalidInput(err)
	}
	color, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if color == nil {
		return nil, ErrProductColorNotFound
	}
	if err := s.ensureProduct(input.ProductID); err != nil {
		return nil, err
	}

	imageURL, err := storeImage(s.storage, input.Image, ProductColorFolder(input.ProductID), UUIDFileName())
	if err != nil {
		return nil, err
	}
	oldImage := ""
	if imageURL != "" {
		oldImage = color.ImageURL
		color.ImageURL = imageURL
	}
	color.ColorName = input.ColorName
	color.ProductID = input.ProductID
	color.Product = nil
	if err := s.repo.Update(color); err != nil {
		rollbackImage(s.storage, imageURL)
		return nil, err
	}
	discardImages(s.storage, oldImage)
	resolveColorImages(s.storage, color)
	return color, nil
}

// Delete 删除颜色款及其尺码、附图，已被订单引用时拒绝
func (s *ProductColorService) Delete(id uint) error {
	color, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if color == nil {
		return ErrProductColorNotFound
	}
	colorIDs := []uint{id}
	ordered, err := s.sizeRepo.CountOrderedByColorIDs(colorIDs)
	if err != nil {
		return err
	}
	if ordered > 0 {
		return ErrProductColorInUse
	}
	images, err := s.imageRepo.ListByColorIDs(colorIDs)
	if err != nil {
		return err
	}

	err = s.productRepo.Transaction(func(tx *gorm.DB) error {
		if err := s.imageRepo.WithTx(tx).DeleteByColorIDs(colorIDs); err != nil {
			return err
		}
		if err := s.sizeRepo.WithTx(tx).DeleteByColorIDs(colorIDs); err != nil {
			return err
		}
		return s.repo.WithTx(tx).Delete(id)
	})
	if err != nil {
		return err
	}

	paths := []string{color.ImageURL}
	for _, image := range images {
		paths = append(paths, image.ImageURL)
	}
	discardImages(s.storage, paths...)
	return nil
}

// ToggleStatus 切换颜色款状态，停用时级联停用其全部尺码
func (s *ProductColorService) ToggleStatus(id uint) (*StatusToggleResult, error) {
	color, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if color == nil {
		return nil, ErrProductColorNotFound
	}
	next := !color.IsActive
	var deactivated int64
	err = s.productRepo.Transaction(func(tx *gorm.DB) error {
		if !next {
			affected, err := s.sizeRepo.WithTx(tx).DeactivateByColor(id)
			if err != nil {
				return err
			}
			deactivated = affected
		}
		return s.repo.WithTx(tx).UpdateStatus(id, next)
	})
	if err != nil {
		return nil, err
	}
	logger.Infow("product_color_status_toggled",
		"product_color_id", id,
		"is_active", next,
		"sizes_deactivated", deactivated,
	)
	return &StatusToggleResult{ID: id, IsActive: next}, nil
}

func (s *ProductColorService) ensureProduct(productID uint) error {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	return nil
}
