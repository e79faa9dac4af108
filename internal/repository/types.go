package repository

import "time"

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page          int
	PageSize      int
	BrandID       uint
	SubCategoryID uint
	CategoryID    uint
	Gender        string
	Search        string
	MinPrice      *float64
	MaxPrice      *float64
	IsActive      *bool
	OnlyActive    bool
	OrderBy       string
}

// BannerListFilter 查询 Banner 列表的过滤条件
type BannerListFilter struct {
	Page     int
	PageSize int
	Search   string
	IsActive *bool
}

// BrandListFilter 查询品牌列表的过滤条件
type BrandListFilter struct {
	Page     int
	PageSize int
	Search   string
	IsActive *bool
}

// CategoryListFilter 查询分类列表的过滤条件
type CategoryListFilter struct {
	Page     int
	PageSize int
	Search   string
	IsActive *bool
}

// SubCategoryListFilter 查询子分类列表的过滤条件
type SubCategoryListFilter struct {
	Page       int
	PageSize   int
	CategoryID uint
	Gender     string
	Search     string
	IsActive   *bool
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page        int
	PageSize    int
	CustomerID  uint
	Status      string
	IsPaid      *bool
	Keyword     string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// CustomerListFilter 查询客户列表的过滤条件
type CustomerListFilter struct {
	Page     int
	PageSize int
	Search   string
	IsActive *bool
}

// GuestListFilter 查询游客列表的过滤条件
type GuestListFilter struct {
	Page     int
	PageSize int
	Search   string
}

// AdminUserListFilter 查询后台用户列表的过滤条件
type AdminUserListFilter struct {
	Page     int
	PageSize int
	Search   string
	Role     string
	IsActive *bool
}

// VoucherListFilter 查询优惠券列表的过滤条件
type VoucherListFilter struct {
	Page     int
	PageSize int
	Search   string
	IsActive *bool
}

// VoucherUsageListFilter 查询优惠券使用记录的过滤条件
type VoucherUsageListFilter struct {
	Page       int
	PageSize   int
	VoucherID  uint
	CustomerID uint
}
