package router

import (
	"errors"
	"strings"
	"time"

	"github.com/webbangiay/internal/authz"
	"github.com/webbangiay/internal/config"
	"github.com/webbangiay/internal/http/response"
	"github.com/webbangiay/internal/i18n"
	"github.com/webbangiay/internal/logger"
	"github.com/webbangiay/internal/metrics"
	"github.com/webbangiay/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDKey = "request_id"
const requestIDHeader = "X-Request-ID"

const (
	adminIDContextKey    = "admin_id"
	adminRoleContextKey  = "admin_role"
	customerIDContextKey = "customer_id"
)

// CORSMiddleware 跨域中间件
func CORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:     cfg.AllowedMethods,
		AllowHeaders:     cfg.AllowedHeaders,
		AllowCredentials: cfg.AllowCredentials,
		ExposeHeaders:    []string{requestIDHeader, "Content-Disposition"},
	}
	if len(corsCfg.AllowMethods) == 0 {
		corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	}
	if len(corsCfg.AllowHeaders) == 0 {
		corsCfg.AllowHeaders = []string{
			"Origin",
			"Content-Type",
			"Content-Length",
			"Accept-Encoding",
			"Accept-Language",
			"Authorization",
			"Cache-Control",
			"X-Requested-With",
			requestIDHeader,
		}
	}
	if cfg.MaxAge > 0 {
		corsCfg.MaxAge = time.Duration(cfg.MaxAge) * time.Second
	}

	origins := normalizeOrigins(cfg.AllowedOrigins)
	switch {
	case len(origins) == 0 || containsWildcard(origins):
		if cfg.AllowCredentials {
			// 携带凭证时不能回写 "*"，改为回显请求来源
			corsCfg.AllowOriginFunc = func(string) bool { return true }
		} else {
			corsCfg.AllowAllOrigins = true
		}
	default:
		corsCfg.AllowOrigins = origins
	}
	return cors.New(corsCfg)
}

func normalizeOrigins(origins []string) []string {
	result := make([]string, 0, len(origins))
	for _, origin := range origins {
		origin = strings.TrimRight(strings.TrimSpace(origin), "/")
		if origin != "" {
			result = append(result, origin)
		}
	}
	return result
}

func containsWildcard(origins []string) bool {
	for _, origin := range origins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// RequestIDMiddleware 请求 ID 中间件
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Next()
	}
}

// LoggerMiddleware 结构化请求日志中间件
func LoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.L()
	}
	sugar := logger.Sugar()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log := sugar.With(
			"request_id", getRequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
		if len(c.Errors) > 0 {
			log.Errorw("request", "errors", c.Errors.String())
			return
		}
		log.Infow("request")
	}
}

// MetricsMiddleware 记录请求量与耗时，按路由模板聚合
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.ObserveHTTP(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}

func getRequestID(c *gin.Context) string {
	value, ok := c.Get(requestIDKey)
	if !ok {
		return ""
	}
	if requestID, ok := value.(string); ok {
		return requestID
	}
	return ""
}

func abortUnauthorized(c *gin.Context, key string) {
	response.Unauthorized(c, i18n.T(i18n.ResolveLocale(c), key))
	c.Abort()
}

// bearerToken 解析 Authorization 头，返回 token 与失败时的文案 key
func bearerToken(c *gin.Context) (string, string) {
	authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
	if authHeader == "" {
		return "", "error.auth_header_missing"
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", "error.auth_header_invalid"
	}
	return strings.TrimSpace(parts[1]), ""
}

func tokenErrorKey(err error) string {
	switch {
	case errors.Is(err, service.ErrAccountDisabled):
		return "error.user_disabled"
	case errors.Is(err, service.ErrTokenRevoked):
		return "error.token_revoked"
	default:
		return "error.token_invalid"
	}
}

// AdminJWTAuthMiddleware 后台 JWT 鉴权中间件，写入 admin_id 与 admin_role
func AdminJWTAuthMiddleware(secretKey string, authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.TrimSpace(secretKey) == "" {
			abortUnauthorized(c, "error.jwt_secret_missing")
			return
		}
		if authService == nil {
			abortUnauthorized(c, "error.token_invalid")
			return
		}
		tokenString, failKey := bearerToken(c)
		if failKey != "" {
			abortUnauthorized(c, failKey)
			return
		}
		claims, err := service.ParseAdminJWT(secretKey, tokenString)
		if err != nil || claims.AdminID == "" {
			abortUnauthorized(c, "error.token_invalid")
			return
		}
		state, err := authService.ResolveAdminAuthState(c.Request.Context(), claims.AdminID)
		if err != nil || state == nil {
			abortUnauthorized(c, "error.token_invalid")
			return
		}
		if err := service.CheckTokenState(claims.TokenVersion, claims.IssuedAt, state.TokenVersion, state.TokenInvalidBefore, state.IsActive); err != nil {
			abortUnauthorized(c, tokenErrorKey(err))
			return
		}

		c.Set(adminIDContextKey, claims.AdminID)
		c.Set(adminRoleContextKey, state.Role)
		c.Next()
	}
}

// AdminRBACMiddleware 管理端 RBAC 鉴权中间件，按角色与路由模板判定
func AdminRBACMiddleware(authzService *authz.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authzService == nil {
			logger.Errorw("admin_rbac_service_unavailable")
			abortUnauthorized(c, "error.unauthorized")
			return
		}
		role := strings.TrimSpace(c.GetString(adminRoleContextKey))
		if role == "" {
			abortUnauthorized(c, "error.unauthorized")
			return
		}

		resource := c.FullPath()
		if strings.TrimSpace(resource) == "" {
			resource = c.Request.URL.Path
		}

		allowed, err := authzService.EnforceRole(role, resource, c.Request.Method)
		if err != nil {
			logger.Errorw("admin_rbac_enforce_failed",
				"admin_id", c.GetString(adminIDContextKey),
				"role", role,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"error", err,
			)
			abortUnauthorized(c, "error.unauthorized")
			return
		}
		if !allowed {
			logger.Warnw("admin_rbac_permission_denied",
				"admin_id", c.GetString(adminIDContextKey),
				"role", role,
				"method", c.Request.Method,
				"resource", authz.NormalizeObject(resource),
			)
			response.Forbidden(c, i18n.T(i18n.ResolveLocale(c), "error.forbidden"))
			c.Abort()
			return
		}

		c.Next()
	}
}

// CustomerJWTAuthMiddleware 客户 JWT 鉴权中间件
func CustomerJWTAuthMiddleware(authService *service.CustomerAuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authService == nil {
			abortUnauthorized(c, "error.token_invalid")
			return
		}
		tokenString, failKey := bearerToken(c)
		if failKey != "" {
			abortUnauthorized(c, failKey)
			return
		}
		customerID, err := resolveCustomer(c, authService, tokenString)
		if err != nil {
			abortUnauthorized(c, tokenErrorKey(err))
			return
		}
		c.Set(customerIDContextKey, customerID)
		c.Next()
	}
}

// OptionalCustomerJWTMiddleware 可选客户鉴权：携带有效 token 时写入 customer_id，否则按游客处理
func OptionalCustomerJWTMiddleware(authService *service.CustomerAuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authService == nil || strings.TrimSpace(c.GetHeader("Authorization")) == "" {
			c.Next()
			return
		}
		tokenString, failKey := bearerToken(c)
		if failKey != "" {
			abortUnauthorized(c, failKey)
			return
		}
		customerID, err := resolveCustomer(c, authService, tokenString)
		if err != nil {
			abortUnauthorized(c, tokenErrorKey(err))
			return
		}
		c.Set(customerIDContextKey, customerID)
		c.Next()
	}
}

func resolveCustomer(c *gin.Context, authService *service.CustomerAuthService, tokenString string) (uint, error) {
	claims, err := authService.ParseCustomerJWT(tokenString)
	if err != nil || claims.CustomerID == 0 {
		return 0, service.ErrTokenInvalid
	}
	state, err := authService.ResolveCustomerAuthState(c.Request.Context(), claims.CustomerID)
	if err != nil || state == nil {
		return 0, service.ErrTokenInvalid
	}
	if err := service.CheckTokenState(claims.TokenVersion, claims.IssuedAt, state.TokenVersion, state.TokenInvalidBefore, state.IsActive); err != nil {
		return 0, err
	}
	return claims.CustomerID, nil
}
