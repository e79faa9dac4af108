package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/webbangiay/internal/app"
	"github.com/webbangiay/internal/config"
	"github.com/webbangiay/internal/logger"

	"github.com/gin-gonic/gin"
)

const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiDim   = "\033[2m"
	ansiCyan  = "\033[36m"
)

func main() {
	var mode string
	flag.StringVar(&mode, "mode", app.ModeAll, "启动模式: all (默认), api, worker")
	flag.Parse()

	printStartupBanner(mode)

	// 加载配置
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	defer logger.Sync()
	stdLog := logger.StdLogger()

	checkSecret(cfg.Server.Mode, "jwt.secret", cfg.JWT.SecretKey)
	checkSecret(cfg.Server.Mode, "customer_jwt.secret", cfg.CustomerJWT.SecretKey)
	if cfg.JWT.SecretKey != "" && cfg.JWT.SecretKey == cfg.CustomerJWT.SecretKey {
		stdLog.Printf("警告: 后台与客户 JWT 使用同一密钥，建议分开配置")
	}

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := app.Run(app.Options{
		Config:  cfg,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		Mode:    mode,
	}); err != nil {
		stdLog.Fatalf("服务运行失败: %v", err)
	}
}

func checkSecret(mode, name, secret string) {
	if !isWeakSecret(secret) {
		return
	}
	stdLog := logger.StdLogger()
	if mode == "release" {
		stdLog.Fatalf("%s 过弱或仍为默认值，请在生产环境中配置强随机密钥", name)
	}
	stdLog.Printf("警告: %s 过弱或仍为默认值，建议在生产环境中更换", name)
}

func printStartupBanner(mode string) {
	fmt.Println(ansiCyan + ansiBold + "webbangiay shoe store API" + ansiReset)
	fmt.Println(ansiDim + "mode: " + mode + ansiReset)
	fmt.Println(ansiDim + strings.Repeat("-", 40) + ansiReset)
}

func isWeakSecret(secret string) bool {
	if len(secret) < 32 {
		return true
	}
	normalized := strings.ToLower(secret)
	if strings.Contains(normalized, "change-me") ||
		strings.Contains(normalized, "change-in-production") ||
		strings.Contains(normalized, "your-secret-key") {
		return true
	}
	return false
}
