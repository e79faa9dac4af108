package router

import (
	"fmt"
	"sort"
	"strings"

	"github.com/webbangiay/internal/authz"
	"github.com/webbangiay/internal/cache"
	"github.com/webbangiay/internal/config"
	adminhandlers "github.com/webbangiay/internal/http/handlers/admin"
	publichandlers "github.com/webbangiay/internal/http/handlers/public"
	"github.com/webbangiay/internal/http/response"
	"github.com/webbangiay/internal/logger"
	"github.com/webbangiay/internal/provider"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "shoe"
	}
	redisClient := cache.Client()
	customerAuthRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:customer_auth", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		MessageKey:    "error.login_too_many",
	}
	adminLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		MessageKey:    "error.login_too_many",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))
	if cfg.Metrics.Enabled {
		r.Use(MetricsMiddleware())
	}

	// 上传文件静态访问
	uploadDir := strings.TrimSpace(cfg.Upload.Dir)
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	r.Static("/uploads", uploadDir)

	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/banners", publicHandler.GetPublicBanners)
			public.GET("/categories", publicHandler.GetCategories)
			public.GET("/subcategories", publicHandler.GetSubCategories)
			public.GET("/products", publicHandler.GetProducts)
			public.GET("/products/:id", publicHandler.GetProduct)
			public.GET("/products/:id/colors", publicHandler.GetProductColors)
			public.GET("/product-colors/:id/sizes", publicHandler.GetColorSizes)
			public.GET("/product-colors/:id/images", publicHandler.GetColorImages)
			public.GET("/captcha/image", publicHandler.GetImageCaptcha)
		}

		// 客户认证
		auth := apiV1.Group("/auth")
		auth.Use(RateLimitMiddleware(redisClient, customerAuthRule, KeyByIPAndJSONField("email")))
		{
			auth.POST("/register", publicHandler.CustomerRegister)
			auth.POST("/login", publicHandler.CustomerLogin)
		}

		// 客户接口（需登录）
		customer := apiV1.Group("")
		customer.Use(CustomerJWTAuthMiddleware(c.CustomerAuthService))
		{
			customer.GET("/me", publicHandler.GetMe)
			customer.PUT("/me", publicHandler.UpdateMe)
			customer.PUT("/me/password", publicHandler.ChangeMyPassword)
			customer.GET("/me/orders", publicHandler.GetMyOrders)
			customer.GET("/vouchers/available", publicHandler.GetAvailableVouchers)
			customer.POST("/vouchers/validate", publicHandler.ValidateVoucher)
			customer.POST("/vouchers/apply", publicHandler.ApplyVoucher)
			customer.GET("/vouchers/history", publicHandler.GetMyVoucherHistory)
		}

		// 下单与支付（登录可选）
		checkout := apiV1.Group("")
		checkout.Use(OptionalCustomerJWTMiddleware(c.CustomerAuthService))
		{
			checkout.POST("/orders", publicHandler.CreateOrder)
			checkout.GET("/orders/:id", publicHandler.GetOrder)
			checkout.GET("/orders/:id/items", publicHandler.GetOrderItems)
			checkout.POST("/payments/vnpay", publicHandler.CreateVNPayPayment)
			checkout.GET("/payments/vnpay/return", publicHandler.VNPayReturn)
		}

		// 后台接口
		admin := apiV1.Group("/admin")
		{
			admin.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIPAndJSONField("email")), adminHandler.AdminLogin)

			authorized := admin.Group("")
			authorized.Use(AdminJWTAuthMiddleware(cfg.JWT.SecretKey, c.AuthService), AdminRBACMiddleware(c.AuthzService))
			{
				// 当前账号
				authorized.GET("/users/profile", adminHandler.GetAdminProfile)
				authorized.PUT("/users/profile", adminHandler.UpdateAdminProfile)
				authorized.PUT("/users/change-password", adminHandler.UpdateAdminPassword)
				authorized.POST("/users/avatar", adminHandler.UploadAdminAvatar)

				// 后台用户
				authorized.GET("/users", adminHandler.ListAdminUsers)
				authorized.POST("/users", adminHandler.CreateAdminUser)
				authorized.GET("/users/:id", adminHandler.GetAdminUser)
				authorized.PUT("/users/:id", adminHandler.UpdateAdminUser)
				authorized.DELETE("/users/:id", adminHandler.DeleteAdminUser)

				// 权限
				authorized.GET("/authz/me", adminHandler.GetAuthzMe)
				authorized.GET("/authz/roles", adminHandler.ListAuthzRoles)
				authorized.POST("/authz/roles", adminHandler.CreateAuthzRole)
				authorized.GET("/authz/roles/:role/policies", adminHandler.GetAuthzRolePolicies)
				authorized.POST("/authz/policies", adminHandler.GrantAuthzPolicy)
				authorized.DELETE("/authz/policies", adminHandler.RevokeAuthzPolicy)
				authorized.GET("/authz/permissions/catalog", func(ctx *gin.Context) {
					response.Success(ctx, buildAdminPermissionCatalog(r))
				})

				// 品牌
				authorized.GET("/brands", adminHandler.ListBrands)
				authorized.POST("/brands", adminHandler.CreateBrand)
				authorized.GET("/brands/:id", adminHandler.GetBrand)
				authorized.PUT("/brands/:id", adminHandler.UpdateBrand)
				authorized.DELETE("/brands/:id", adminHandler.DeleteBrand)
				authorized.PATCH("/brands/:id/toggle-status", adminHandler.ToggleBrandStatus)

				// 分类
				authorized.GET("/categories", adminHandler.ListCategories)
				authorized.POST("/categories", adminHandler.CreateCategory)
				authorized.GET("/categories/:id", adminHandler.GetCategory)
				authorized.PUT("/categories/:id", adminHandler.UpdateCategory)
				authorized.DELETE("/categories/:id", adminHandler.DeleteCategory)
				authorized.PATCH("/categories/:id/toggle-status", adminHandler.ToggleCategoryStatus)

				authorized.GET("/subcategories", adminHandler.ListSubCategories)
				authorized.POST("/subcategories", adminHandler.CreateSubCategory)
				authorized.GET("/subcategories/:id", adminHandler.GetSubCategory)
				authorized.PUT("/subcategories/:id", adminHandler.UpdateSubCategory)
				authorized.DELETE("/subcategories/:id", adminHandler.DeleteSubCategory)
				authorized.PATCH("/subcategories/:id/toggle-status", adminHandler.ToggleSubCategoryStatus)

				// 商品
				authorized.GET("/products", adminHandler.ListProducts)
				authorized.POST("/products", adminHandler.CreateProduct)
				authorized.GET("/products/:id", adminHandler.GetProduct)
				authorized.PUT("/products/:id", adminHandler.UpdateProduct)
				authorized.DELETE("/products/:id", adminHandler.DeleteProduct)
				authorized.PATCH("/products/:id/toggle-status", adminHandler.ToggleProductStatus)
				authorized.GET("/products/:id/colors", adminHandler.ListProductColorsOfProduct)

				authorized.GET("/product-colors", adminHandler.ListProductColors)
				authorized.POST("/product-colors", adminHandler.CreateProductColor)
				authorized.GET("/product-colors/:id", adminHandler.GetProductColor)
				authorized.PUT("/product-colors/:id", adminHandler.UpdateProductColor)
				authorized.DELETE("/product-colors/:id", adminHandler.DeleteProductColor)
				authorized.PATCH("/product-colors/:id/toggle-status", adminHandler.ToggleProductColorStatus)
				authorized.GET("/product-colors/:id/sizes", adminHandler.ListSizesOfColor)
				authorized.GET("/product-colors/:id/images", adminHandler.ListImagesOfColor)

				authorized.GET("/product-sizes", adminHandler.ListProductSizes)
				authorized.POST("/product-sizes", adminHandler.CreateProductSize)
				authorized.GET("/product-sizes/:id", adminHandler.GetProductSize)
				authorized.PUT("/product-sizes/:id", adminHandler.UpdateProductSize)
				authorized.DELETE("/product-sizes/:id", adminHandler.DeleteProductSize)
				authorized.PATCH("/product-sizes/:id/toggle-status", adminHandler.ToggleProductSizeStatus)

				authorized.POST("/product-color-images", adminHandler.CreateProductColorImages)
				authorized.GET("/product-color-images/:id", adminHandler.GetProductColorImage)
				authorized.PUT("/product-color-images/:id", adminHandler.ReplaceProductColorImage)
				authorized.DELETE("/product-color-images/:id", adminHandler.DeleteProductColorImage)

				// Banner
				authorized.GET("/banners", adminHandler.GetAdminBanners)
				authorized.POST("/banners", adminHandler.CreateBanner)
				authorized.GET("/banners/:id", adminHandler.GetAdminBanner)
				authorized.PUT("/banners/:id", adminHandler.UpdateBanner)
				authorized.DELETE("/banners/:id", adminHandler.DeleteBanner)
				authorized.PATCH("/banners/:id/toggle-status", adminHandler.ToggleBannerStatus)

				// 客户与游客
				authorized.GET("/customers", adminHandler.ListCustomers)
				authorized.POST("/customers", adminHandler.CreateCustomer)
				authorized.GET("/customers/:id", adminHandler.GetCustomer)
				authorized.PUT("/customers/:id", adminHandler.UpdateCustomer)
				authorized.DELETE("/customers/:id", adminHandler.DeleteCustomer)
				authorized.PATCH("/customers/:id/toggle-status", adminHandler.ToggleCustomerStatus)

				authorized.GET("/guests", adminHandler.ListGuests)
				authorized.POST("/guests", adminHandler.CreateGuest)
				authorized.GET("/guests/:id", adminHandler.GetGuest)
				authorized.PUT("/guests/:id", adminHandler.UpdateGuest)
				authorized.DELETE("/guests/:id", adminHandler.DeleteGuest)

				// 订单
				authorized.GET("/orders", adminHandler.GetAdminOrders)
				authorized.GET("/orders/:id", adminHandler.GetAdminOrder)
				authorized.GET("/orders/:id/items", adminHandler.GetAdminOrderItems)
				authorized.PUT("/orders/:id", adminHandler.UpdateAdminOrder)
				authorized.DELETE("/orders/:id", adminHandler.DeleteAdminOrder)

				// 优惠券
				authorized.GET("/vouchers", adminHandler.ListVouchers)
				authorized.POST("/vouchers", adminHandler.CreateVoucher)
				authorized.GET("/vouchers/available", adminHandler.GetAvailableVouchersForCustomer)
				authorized.POST("/vouchers/validate", adminHandler.ValidateVoucher)
				authorized.POST("/vouchers/apply", adminHandler.ApplyVoucher)
				authorized.GET("/vouchers/history/customer/:id", adminHandler.GetCustomerVoucherHistory)
				authorized.GET("/vouchers/:id", adminHandler.GetVoucher)
				authorized.PUT("/vouchers/:id", adminHandler.UpdateVoucher)
				authorized.DELETE("/vouchers/:id", adminHandler.DeleteVoucher)
				authorized.PATCH("/vouchers/:id/toggle-status", adminHandler.ToggleVoucherStatus)
				authorized.GET("/vouchers/:id/usage-history", adminHandler.GetVoucherUsageHistory)

				// 统计
				authorized.GET("/statistics/summary", adminHandler.GetStatisticsSummary)
				authorized.GET("/statistics/category-quantity", adminHandler.GetStatisticsCategoryQuantity)
				authorized.GET("/statistics/monthly", adminHandler.GetStatisticsMonthly)
				authorized.GET("/statistics/daily", adminHandler.GetStatisticsDaily)
				authorized.GET("/statistics/by-day", adminHandler.GetStatisticsByDay)
				authorized.GET("/statistics/revenue/daily", adminHandler.GetDailyRevenue)
				authorized.GET("/statistics/revenue/monthly", adminHandler.GetMonthlyRevenue)
				authorized.GET("/statistics/revenue/range", adminHandler.GetRevenueByRange)
				authorized.GET("/statistics/revenue/range/export", adminHandler.ExportRevenueByRange)

				// 上传
				authorized.POST("/upload", adminHandler.UploadFile)
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	if cfg.Metrics.Enabled {
		metricsPath := strings.TrimSpace(cfg.Metrics.Path)
		if metricsPath == "" {
			metricsPath = "/metrics"
		}
		r.GET(metricsPath, gin.WrapH(promhttp.Handler()))
	}

	return r
}

type adminPermissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

func buildAdminPermissionCatalog(engine *gin.Engine) []adminPermissionCatalogItem {
	if engine == nil {
		return []adminPermissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]adminPermissionCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !strings.HasPrefix(item.Path, "/api/v1/admin/") {
			continue
		}
		if item.Path == "/api/v1/admin/login" {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, adminPermissionCatalogItem{
			Module:     deriveAdminPermissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module == items[j].Module {
			if items[i].Object == items[j].Object {
				return items[i].Method < items[j].Method
			}
			return items[i].Object < items[j].Object
		}
		return items[i].Module < items[j].Module
	})

	return items
}

func deriveAdminPermissionModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), "/")
	if normalized == "" {
		return "system"
	}
	segments := strings.Split(normalized, "/")
	if len(segments) <= 1 {
		return segments[0]
	}
	if segments[0] != "admin" {
		return segments[0]
	}
	if segments[1] == "authz" {
		return "authz"
	}
	return segments[1]
}
