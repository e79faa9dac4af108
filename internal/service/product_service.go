package service

import (
	"strings"

	"github.com/webbangiay/internal/logger"
	"github.com/webbangiay/internal/models"
	"github.com/webbangiay/internal/repository"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gorm.io/gorm"
)

// ProductService 商品业务服务
type ProductService struct {
	repo            repository.ProductRepository
	brandRepo       repository.BrandRepository
	subCategoryRepo repository.SubCategoryRepository
	categoryRepo    repository.CategoryRepository
	colorRepo       repository.ProductColorRepository
	sizeRepo        repository.ProductSizeRepository
	imageRepo       repository.ProductColorImageRepository
	storage         FileStorage
}

// NewProductService 创建商品服务
func NewProductService(
	repo repository.ProductRepository,
	brandRepo repository.BrandRepository,
	subCategoryRepo repository.SubCategoryRepository,
	categoryRepo repository.CategoryRepository,
	colorRepo repository.ProductColorRepository,
	sizeRepo repository.ProductSizeRepository,
	imageRepo repository.ProductColorImageRepository,
	storage FileStorage,
) *ProductService {
	return &ProductService{
		repo:            repo,
		brandRepo:       brandRepo,
		subCategoryRepo: subCategoryRepo,
		categoryRepo:    categoryRepo,
		colorRepo:       colorRepo,
		sizeRepo:        sizeRepo,
		imageRepo:       imageRepo,
		storage:         storage,
	}
}

// ProductInput 创建/更新商品输入
type ProductInput struct {
	ProductName   string
	OriginalPrice models.Money
	UnitPrice     models.Money
	BrandID       uint
	SubCategoryID uint
	IsActive      *bool
}

// Validate 校验商品输入
func (in ProductInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.ProductName, validation.Required, validation.Length(1, 200)),
		validation.Field(&in.OriginalPrice, validation.By(nonNegativeMoney)),
		validation.Field(&in.UnitPrice, validation.By(positiveMoney)),
		validation.Field(&in.BrandID, validation.By(positiveID)),
		validation.Field(&in.SubCategoryID, validation.By(positiveID)),
	)
}

// ProductSummary 商品列表项（带首个颜色款主图）
type ProductSummary struct {
	models.Product
	ImageURL string `json:"image_url"`
}

// ListPublic 首页商品列表，仅返回上架商品
func (s *ProductService) ListPublic(filter repository.ProductListFilter) ([]ProductSummary, int64, error) {
	filter.OnlyActive = true
	filter.IsActive = nil
	return s.list(filter, true)
}

// ListAdmin 后台商品列表
func (s *ProductService) ListAdmin(filter repository.ProductListFilter) ([]ProductSummary, int64, error) {
	filter.OnlyActive = false
	return s.list(filter, false)
}

func (s *ProductService) list(filter repository.ProductListFilter, onlyActiveColors bool) ([]ProductSummary, int64, error) {
	filter.Gender = strings.ToUpper(strings.TrimSpace(filter.Gender))
	filter.Search = strings.TrimSpace(filter.Search)
	products, total, err := s.repo.List(filter)
	if err != nil {
		return nil, 0, err
	}
	items := make([]ProductSummary, 0, len(products))
	for _, product := range products {
		colors, err := s.colorRepo.ListByProduct(product.ID, onlyActiveColors)
		if err != nil {
			return nil, 0, err
		}
		summary := ProductSummary{Product: product}
		for _, color := range colors {
			if color.ImageURL != "" {
				summary.ImageURL = resolveImageURL(s.storage, color.ImageURL)
				break
			}
		}
		if summary.Brand != nil {
			summary.Brand.ImageURL = resolveImageURL(s.storage, summary.Brand.ImageURL)
		}
		items = append(items, summary)
	}
	return items, total, nil
}

// GetDetail 商品详情（颜色款、尺码、附图），前台仅返回启用数据
func (s *ProductService) GetDetail(id uint, onlyActive bool) (*models.Product, error) {
	product, err := s.repo.GetDetail(id, onlyActive)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	resolveProductImages(s.storage, product)
	return product, nil
}

// Create 创建商品
func (s *ProductService) Create(input ProductInput) (*models.Product, error) {
	input.ProductName = strings.TrimSpace(input.ProductName)
	if err := input.Validate(); err != nil {
		return nil, invalidInput(err)
	}
	product := &models.Product{
		ProductName:   input.ProductName,
		OriginalPrice: input.OriginalPrice,
		UnitPrice:     input.UnitPrice,
		BrandID:       input.BrandID,
		SubCategoryID: input.SubCategoryID,
		IsActive:      boolValue(input.IsActive, true),
	}
	if err := s.ensureParents(product, product.IsActive); err != nil {
		return nil, err
	}
	if err := s.repo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Update 更新商品基础信息，状态通过 ToggleStatus 修改
func (s *ProductService) Update(id uint, input ProductInput) (*models.Product, error) {
	input.ProductName = strings.TrimSpace(input.ProductName)
	if err := input.Validate(); err != nil {
		return nil, invalidInput(err)
	}
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	product.ProductName = input.ProductName
	product.OriginalPrice = input.OriginalPrice
	product.UnitPrice = input.UnitPrice
	product.BrandID = input.BrandID
	product.SubCategoryID = input.SubCategoryID
	if err := s.ensureParents(product, product.IsActive); err != nil {
		return nil, err
	}
	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete 删除商品及其颜色款、尺码、附图，已被订单引用时拒绝
func (s *ProductService) Delete(id uint) error {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	colors, err := s.colorRepo.ListByProduct(id, false)
	if err != nil {
		return err
	}
	colorIDs := make([]uint, 0, len(colors))
	for _, color := range colors {
		colorIDs = append(colorIDs, color.ID)
	}
	if len(colorIDs) > 0 {
		ordered, err := s.sizeRepo.CountOrderedByColorIDs(colorIDs)
		if err != nil {
			return err
		}
		if ordered > 0 {
			return ErrProductInUse
		}
	}
	images, err := s.imageRepo.ListByColorIDs(colorIDs)
	if err != nil {
		return err
	}

	err = s.repo.Transaction(func(tx *gorm.DB) error {
		if len(colorIDs) > 0 {
			if err := s.imageRepo.WithTx(tx).DeleteByColorIDs(colorIDs); err != nil {
				return err
			}
			if err := s.sizeRepo.WithTx(tx).DeleteByColorIDs(colorIDs); err != nil {
				return err
			}
			if err := s.colorRepo.WithTx(tx).DeleteByProduct(id); err != nil {
				return err
			}
		}
		return s.repo.WithTx(tx).Delete(id)
	})
	if err != nil {
		return err
	}

	paths := make([]string, 0, len(colors)+len(images))
	for _, color := range colors {
		paths = append(paths, color.ImageURL)
	}
	for _, image := range images {
		paths = append(paths, image.ImageURL)
	}
	discardImages(s.storage, paths...)
	logger.Infow("product_deleted", "product_id", id, "colors", len(colorIDs))
	return nil
}

// ToggleStatus 切换商品上下架，上架要求品牌、子分类及其父分类均已启用
func (s *ProductService) ToggleStatus(id uint) (*StatusToggleResult, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	next := !product.IsActive
	if next {
		if err := s.ensureParents(product, true); err != nil {
			return nil, err
		}
	}
	if err := s.repo.UpdateStatus(id, next); err != nil {
		return nil, err
	}
	logger.Infow("product_status_toggled", "product_id", id, "is_active", next)
	return &StatusToggleResult{ID: id, IsActive: next}, nil
}

// ensureParents 校验品牌与子分类存在；requireActive 时要求三级均已启用
func (s *ProductService) ensureParents(product *models.Product, requireActive bool) error {
	brand, err := s.brandRepo.GetByID(product.BrandID)
	if err != nil {
		return err
	}
	if brand == nil {
		return ErrBrandNotFound
	}
	subCategory, err := s.subCategoryRepo.GetByID(product.SubCategoryID)
	if err != nil {
		return err
	}
	if subCategory == nil {
		return ErrSubCategoryNotFound
	}
	if !requireActive {
		return nil
	}
	if !brand.IsActive {
		return ErrProductBrandInactive
	}
	if !subCategory.IsActive {
		return ErrProductSubCategoryOff
	}
	category := subCategory.Category
	if category == nil {
		category, err = s.categoryRepo.GetByID(subCategory.CategoryID)
		if err != nil {
			return err
		}
	}
	if category == nil || !category.IsActive {
		return ErrProductCategoryInactive
	}
	return nil
}
