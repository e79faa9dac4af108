package app

import (
	"errors"
	"fmt"

	"github.com/webbangiay/internal/config"
	"github.com/webbangiay/internal/models"
	"github.com/webbangiay/internal/provider"
	"github.com/webbangiay/internal/router"
	"github.com/webbangiay/internal/worker"

	"go.uber.org/zap"
)

// PrepareDatabase 连接数据库、迁移表结构并初始化默认管理员
func PrepareDatabase(cfg *config.Config, log *zap.SugaredLogger) error {
	if cfg == nil {
		return errors.New("config is nil")
	}
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, cfg.Database.LogSQL, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	if err := models.AutoMigrate(); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	adminPassword := cfg.DefaultUser.AdminPassword
	if cfg.Server.Mode == "release" && adminPassword == "" {
		log.Warnw("default_admin_skipped", "reason", "default_user.admin_password is empty in release mode")
		return nil
	}
	if err := models.InitDefaultAdmin(cfg.DefaultUser.AdminEmail, adminPassword); err != nil {
		log.Warnw("default_admin_init_failed", "error", err)
	}
	return nil
}

// BuildRunner 按启动模式组装 HTTP 与 Worker 服务
func BuildRunner(cfg *config.Config, mode string) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	mode, err := ParseMode(mode)
	if err != nil {
		return nil, err
	}

	container := provider.NewContainer(cfg)

	var services []Service
	if mode == ModeAll || mode == ModeAPI {
		engine := router.SetupRouter(cfg, container)
		services = append(services, NewHTTPService(listenAddr(cfg), engine))
	}

	if mode == ModeAll || mode == ModeWorker {
		if !cfg.Queue.Enabled && mode == ModeWorker {
			return nil, errors.New("worker mode requires queue.enabled=true")
		}
		if cfg.Queue.Enabled {
			workerService, err := worker.NewService(&cfg.Queue, worker.NewConsumer(container))
			if err != nil {
				return nil, err
			}
			services = append(services, workerService)
		}
	}

	if len(services) == 0 {
		return nil, errors.New("no services initialized (check mode and config)")
	}
	return NewRunner(services...), nil
}

// Run 应用启动入口
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}
	if err := PrepareDatabase(opts.Config, opts.Logger); err != nil {
		return err
	}

	runner, err := BuildRunner(opts.Config, opts.Mode)
	if err != nil {
		return err
	}

	opts.Logger.Infow("app_start",
		"addr", listenAddr(opts.Config),
		"mode", opts.Mode,
		"timezone", opts.Config.Server.Timezone,
		"queue_enabled", opts.Config.Queue.Enabled,
	)
	return RunWithOptions(runner, opts)
}

func listenAddr(cfg *config.Config) string {
	return cfg.Server.Host + ":" + cfg.Server.Port
}
