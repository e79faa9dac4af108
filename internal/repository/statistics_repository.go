package repository

import (
	"time"

	"github.com/webbangiay/internal/models"

	"gorm.io/gorm"
)

// StatisticsRepository 销售统计聚合查询接口
// 说明：仅负责取数，营收分桶等计算在 service 层完成。
type StatisticsRepository interface {
	ListOrdersWithItems(startAt, endAt time.Time) ([]models.Order, error)
	GetEntityCounts() (StatisticsCountsRow, error)
	GetBestSellers(startAt, endAt time.Time, limit int) ([]BestSellerRow, error)
	GetQuantityByCategory(startAt, endAt time.Time) ([]CategoryQuantityRow, error)
}

// StatisticsCountsRow 各实体总数
type StatisticsCountsRow struct {
	Banners    int64
	Brands     int64
	Categories int64
	Customers  int64
	Products   int64
}

// BestSellerRow 畅销商品原始行
type BestSellerRow struct {
	ProductID         uint
	ProductName       string
	TotalQuantitySold int64
}

// CategoryQuantityRow 分类销量原始行
type CategoryQuantityRow struct {
	CategoryID    uint
	CategoryName  string
	TotalQuantity int64
}

// GormStatisticsRepository GORM 实现
type GormStatisticsRepository struct {
	db *gorm.DB
}

// NewStatisticsRepository 创建统计仓库
func NewStatisticsRepository(db *gorm.DB) *GormStatisticsRepository {
	return &GormStatisticsRepository{db: db}
}

// ListOrdersWithItems 获取时间区间 [startAt, endAt) 内的订单及订单项
// created_at 以 UTC 存储，区间边界同样转为 UTC 比较
func (r *GormStatisticsRepository) ListOrdersWithItems(startAt, endAt time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").
		Where("created_at >= ? AND created_at < ?", startAt.UTC(), endAt.UTC()).
		Order("created_at ASC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// GetEntityCounts 获取各实体总数
func (r *GormStatisticsRepository) GetEntityCounts() (StatisticsCountsRow, error) {
	var result StatisticsCountsRow
	counters := []struct {
		model  interface{}
		target *int64
	}{
		{&models.Banner{}, &result.Banners},
		{&models.Brand{}, &result.Brands},
		{&models.Category{}, &result.Categories},
		{&models.Customer{}, &result.Customers},
		{&models.Product{}, &result.Products},
	}
	for _, counter := range counters {
		if err := r.db.Model(counter.model).Count(counter.target).Error; err != nil {
			return result, err
		}
	}
	return result, nil
}

// GetBestSellers 获取时间区间内的畅销商品
func (r *GormStatisticsRepository) GetBestSellers(startAt, endAt time.Time, limit int) ([]BestSellerRow, error) {
	if limit <= 0 {
		limit = 5
	}
	rows := make([]BestSellerRow, 0)
	if err := r.db.Model(&models.OrderItem{}).
		Select(`
			products.id as product_id,
			products.product_name as product_name,
			COALESCE(SUM(order_items.quantity), 0) as total_quantity_sold
		`).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN product_sizes ON product_sizes.id = order_items.product_size_id").
		Joins("JOIN product_colors ON product_colors.id = product_sizes.product_color_id").
		Joins("JOIN products ON products.id = product_colors.product_id").
		Where("orders.created_at >= ? AND orders.created_at < ?", startAt.UTC(), endAt.UTC()).
		Group("products.id, products.product_name").
		Order("total_quantity_sold DESC, products.id ASC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetQuantityByCategory 获取时间区间内各分类销量
func (r *GormStatisticsRepository) GetQuantityByCategory(startAt, endAt time.Time) ([]CategoryQuantityRow, error) {
	rows := make([]CategoryQuantityRow, 0)
	if err := r.db.Model(&models.OrderItem{}).
		Select(`
			categories.id as category_id,
			categories.category_name as category_name,
			COALESCE(SUM(order_items.quantity), 0) as total_quantity
		`).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN product_sizes ON product_sizes.id = order_items.product_size_id").
		Joins("JOIN product_colors ON product_colors.id = product_sizes.product_color_id").
		Joins("JOIN products ON products.id = product_colors.product_id").
		Joins("JOIN sub_categories ON sub_categories.id = products.sub_category_id").
		Joins("JOIN categories ON categories.id = sub_categories.category_id").
		Where("orders.created_at >= ? AND orders.created_at < ?", startAt.UTC(), endAt.UTC()).
		Group("categories.id, categories.category_name").
		Order("total_quantity DESC, categories.id ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
