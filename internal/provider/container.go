package provider

import (
	"github.com/webbangiay/internal/authz"
	"github.com/webbangiay/internal/cache"
	"github.com/webbangiay/internal/config"
	"github.com/webbangiay/internal/logger"
	"github.com/webbangiay/internal/models"
	"github.com/webbangiay/internal/queue"
	"github.com/webbangiay/internal/repository"
	"github.com/webbangiay/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminUserRepo         repository.AdminUserRepository
	BannerRepo            repository.BannerRepository
	BrandRepo             repository.BrandRepository
	CategoryRepo          repository.CategoryRepository
	SubCategoryRepo       repository.SubCategoryRepository
	ProductRepo           repository.ProductRepository
	ProductColorRepo      repository.ProductColorRepository
	ProductSizeRepo       repository.ProductSizeRepository
	ProductColorImageRepo repository.ProductColorImageRepository
	CustomerRepo          repository.CustomerRepository
	GuestRepo             repository.GuestRepository
	OrderRepo             repository.OrderRepository
	VoucherRepo           repository.VoucherRepository
	VoucherUsageRepo      repository.VoucherUsageRepository
	StatisticsRepo        repository.StatisticsRepository

	// Services
	AuthzService             *authz.Service
	AuthService              *service.AuthService
	AdminUserService         *service.AdminUserService
	CustomerAuthService      *service.CustomerAuthService
	CaptchaService           *service.CaptchaService
	UploadService            *service.UploadService
	BrandService             *service.BrandService
	CategoryService          *service.CategoryService
	SubCategoryService       *service.SubCategoryService
	ProductService           *service.ProductService
	ProductColorService      *service.ProductColorService
	ProductSizeService       *service.ProductSizeService
	ProductColorImageService *service.ProductColorImageService
	BannerService            *service.BannerService
	CustomerService          *service.CustomerService
	GuestService             *service.GuestService
	OrderService             *service.OrderService
	PaymentService           *service.PaymentService
	VoucherService           *service.VoucherService
	VoucherAdminService      *service.VoucherAdminService
	StatisticsService        *service.StatisticsService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminUserRepo = repository.NewAdminUserRepository(db)
	c.BannerRepo = repository.NewBannerRepository(db)
	c.BrandRepo = repository.NewBrandRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.SubCategoryRepo = repository.NewSubCategoryRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.ProductColorRepo = repository.NewProductColorRepository(db)
	c.ProductSizeRepo = repository.NewProductSizeRepository(db)
	c.ProductColorImageRepo = repository.NewProductColorImageRepository(db)
	c.CustomerRepo = repository.NewCustomerRepository(db)
	c.GuestRepo = repository.NewGuestRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.VoucherRepo = repository.NewVoucherRepository(db)
	c.VoucherUsageRepo = repository.NewVoucherUsageRepository(db)
	c.StatisticsRepo = repository.NewStatisticsRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	cfg := c.Config
	c.UploadService = service.NewUploadService(cfg, c.QueueClient)
	storage := c.UploadService

	c.CaptchaService = service.NewCaptchaService(cfg.Captcha)
	c.AuthService = service.NewAuthService(cfg, c.AdminUserRepo)
	c.AdminUserService = service.NewAdminUserService(cfg, c.AdminUserRepo, storage)
	c.CustomerAuthService = service.NewCustomerAuthService(cfg, c.CustomerRepo, c.CaptchaService)

	// 商品目录
	c.BrandService = service.NewBrandService(c.BrandRepo, c.ProductRepo, storage)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo, c.SubCategoryRepo)
	c.SubCategoryService = service.NewSubCategoryService(c.SubCategoryRepo, c.CategoryRepo, c.ProductRepo)
	c.ProductService = service.NewProductService(
		c.ProductRepo,
		c.BrandRepo,
		c.SubCategoryRepo,
		c.CategoryRepo,
		c.ProductColorRepo,
		c.ProductSizeRepo,
		c.ProductColorImageRepo,
		storage,
	)
	c.ProductColorService = service.NewProductColorService(c.ProductColorRepo, c.ProductRepo, c.ProductSizeRepo, c.ProductColorImageRepo, storage)
	c.ProductSizeService = service.NewProductSizeService(c.ProductSizeRepo, c.ProductColorRepo)
	c.ProductColorImageService = service.NewProductColorImageService(c.ProductColorImageRepo, c.ProductColorRepo, storage)
	c.BannerService = service.NewBannerService(c.BannerRepo, storage)

	// 客户与订单
	c.CustomerService = service.NewCustomerService(cfg, c.CustomerRepo, c.OrderRepo)
	c.GuestService = service.NewGuestService(c.GuestRepo)
	c.OrderService = service.NewOrderService(
		cfg,
		c.OrderRepo,
		c.GuestRepo,
		c.CustomerRepo,
		c.ProductSizeRepo,
		c.VoucherRepo,
		c.VoucherUsageRepo,
		c.QueueClient,
	)
	c.PaymentService = service.NewPaymentService(cfg, c.OrderService)

	// 优惠券
	c.VoucherService = service.NewVoucherService(cfg, c.VoucherRepo, c.VoucherUsageRepo, c.OrderRepo, c.CustomerRepo)
	c.VoucherAdminService = service.NewVoucherAdminService(c.VoucherService, c.VoucherRepo, c.VoucherUsageRepo)

	c.StatisticsService = service.NewStatisticsService(cfg, c.StatisticsRepo)
}
