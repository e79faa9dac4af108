package repository

import (
	"errors"
	"strings"

	"github.com/webbangiay/internal/models"

	"gorm.io/gorm"
)

// ProductRepository 商品数据访问接口
type ProductRepository interface {
	List(filter ProductListFilter) ([]models.Product, int64, error)
	GetByID(id uint) (*models.Product, error)
	GetDetail(id uint, onlyActive bool) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) error
	UpdateStatus(id uint, active bool) error
	CountByBrand(brandID uint, onlyActive bool) (int64, error)
	CountBySubCategory(subCategoryID uint, onlyActive bool) (int64, error)
	DeactivateByBrand(brandID uint) (int64, error)
	Count() (int64, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) ProductRepository
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductRepository) WithTx(tx *gorm.DB) ProductRepository {
	if tx == nil {
		return r
	}
	return &GormProductRepository{db: tx}
}

// Transaction 执行事务
func (r *GormProductRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// List 商品列表
func (r *GormProductRepository) List(filter ProductListFilter) ([]models.Product, int64, error) {
	var products []models.Product
	query := r.db.Model(&models.Product{})

	if filter.OnlyActive {
		query = query.Where("products.is_active = ?", true)
	} else if filter.IsActive != nil {
		query = query.Where("products.is_active = ?", *filter.IsActive)
	}
	if filter.BrandID > 0 {
		query = query.Where("products.brand_id = ?", filter.BrandID)
	}
	if filter.SubCategoryID > 0 {
		query = query.Where("products.sub_category_id = ?", filter.SubCategoryID)
	}
	gender := strings.ToUpper(strings.TrimSpace(filter.Gender))
	if gender != "" || filter.CategoryID > 0 {
		query = query.Joins("JOIN sub_categories sc ON sc.id = products.sub_category_id")
		if gender != "" {
			query = query.Where("sc.gender = ?", gender)
		}
		if filter.CategoryID > 0 {
			query = query.Where("sc.category_id = ?", filter.CategoryID)
		}
	}
	if filter.MinPrice != nil {
		query = query.Where("products.unit_price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("products.unit_price <= ?", *filter.MaxPrice)
	}
	query = applyKeyword(query, filter.Search, "products.product_name")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	orderBy := filter.OrderBy
	if orderBy == "" {
		orderBy = "products.id DESC"
	}
	err := query.
		Preload("Brand").
		Preload("SubCategory.Category").
		Preload("Colors", func(db *gorm.DB) *gorm.DB {
			if filter.OnlyActive {
				db = db.Where("is_active = ?", true)
			}
			return db.Order("id ASC")
		}).
		Order(orderBy).
		Find(&products).Error
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// GetByID 根据 ID 获取商品（带品牌、子分类、分类）
func (r *GormProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.Preload("Brand").Preload("SubCategory.Category").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// GetDetail 获取商品详情（颜色款、尺码、附图）
func (r *GormProductRepository) GetDetail(id uint, onlyActive bool) (*models.Product, error) {
	activeScope := func(orderBy string) func(db *gorm.DB) *gorm.DB {
		return func(db *gorm.DB) *gorm.DB {
			if onlyActive {
				db = db.Where("is_active = ?", true)
			}
			return db.Order(orderBy)
		}
	}
	query := r.db.
		Preload("Brand").
		Preload("SubCategory.Category").
		Preload("Colors", activeScope("id ASC")).
		Preload("Colors.Sizes", activeScope("size_value ASC")).
		Preload("Colors.Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		})
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}

	var product models.Product
	if err := query.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// Create 创建商品
func (r *GormProductRepository) Create(product *models.Product) error {
	return r.db.Omit("Brand", "SubCategory", "Colors").Create(product).Error
}

// Update 更新商品
func (r *GormProductRepository) Update(product *models.Product) error {
	return r.db.Omit("Brand", "SubCategory", "Colors").Save(product).Error
}

// Delete 删除商品
func (r *GormProductRepository) Delete(id uint) error {
	return r.db.Delete(&models.Product{}, id).Error
}

// UpdateStatus 更新上架状态
func (r *GormProductRepository) UpdateStatus(id uint, active bool) error {
	return r.db.Model(&models.Product{}).Where("id = ?", id).Update("is_active", active).Error
}

// CountByBrand 统计品牌下的商品数量
func (r *GormProductRepository) CountByBrand(brandID uint, onlyActive bool) (int64, error) {
	var total int64
	query := r.db.Model(&models.Product{}).Where("brand_id = ?", brandID)
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}
	err := query.Count(&total).Error
	return total, err
}

// CountBySubCategory 统计子分类下的商品数量
func (r *GormProductRepository) CountBySubCategory(subCategoryID uint, onlyActive bool) (int64, error) {
	var total int64
	query := r.db.Model(&models.Product{}).Where("sub_category_id = ?", subCategoryID)
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}
	err := query.Count(&total).Error
	return total, err
}

// DeactivateByBrand 下架品牌下全部商品
func (r *GormProductRepository) DeactivateByBrand(brandID uint) (int64, error) {
	result := r.db.Model(&models.Product{}).
		Where("brand_id = ? AND is_active = ?", brandID, true).
		Update("is_active", false)
	return result.RowsAffected, result.Error
}

// Count 商品总数
func (r *GormProductRepository) Count() (int64, error) {
	var total int64
	err := r.db.Model(&models.Product{}).Count(&total).Error
	return total, err
}
