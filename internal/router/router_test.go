package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/webbangiay/internal/config"
	"github.com/webbangiay/internal/provider"

	"github.com/gin-gonic/gin"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		Server:  config.ServerConfig{Mode: "debug"},
		JWT:     config.JWTConfig{SecretKey: "router-test-secret-0123456789abcdef"},
		Upload:  config.UploadConfig{Dir: t.TempDir()},
		CORS:    config.CORSConfig{AllowedOrigins: []string{"*"}},
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
	return SetupRouter(cfg, &provider.Container{Config: cfg})
}

func TestSetupRouterHealthAndMetrics(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"ok"`) {
		t.Fatalf("health check failed: code=%d body=%s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("metrics endpoint code=%d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "shoe_store_http_requests_total") {
		t.Fatalf("metrics output missing http counter")
	}
}

func TestSetupRouterProtectedGroupsRequireToken(t *testing.T) {
	r := newTestRouter(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/admin/products"},
		{http.MethodGet, "/api/v1/admin/statistics/summary"},
		{http.MethodGet, "/api/v1/me"},
		{http.MethodGet, "/api/v1/vouchers/available"},
	}
	for _, item := range paths {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(item.method, item.path, nil))
		if code := decodeStatusCode(t, w); code != 401 {
			t.Fatalf("%s %s status_code want 401 got %d", item.method, item.path, code)
		}
	}
}

func TestBuildAdminPermissionCatalog(t *testing.T) {
	r := newTestRouter(t)
	items := buildAdminPermissionCatalog(r)
	if len(items) == 0 {
		t.Fatalf("permission catalog should not be empty")
	}

	seen := map[string]string{}
	for _, item := range items {
		if item.Object == "/admin/login" {
			t.Fatalf("login route must not be listed")
		}
		seen[item.Permission] = item.Module
	}
	if module, ok := seen["GET:/admin/statistics/summary"]; !ok || module != "statistics" {
		t.Fatalf("statistics summary permission missing or misgrouped: %q", module)
	}
	if module, ok := seen["POST:/admin/authz/policies"]; !ok || module != "authz" {
		t.Fatalf("authz policy permission missing or misgrouped: %q", module)
	}
	if buildAdminPermissionCatalog(nil) == nil {
		t.Fatalf("nil engine should yield empty catalog")
	}
}

func TestDeriveAdminPermissionModule(t *testing.T) {
	cases := map[string]string{
		"":                              "system",
		"/admin":                        "admin",
		"/admin/product-colors/:id":     "product-colors",
		"/admin/authz/roles/:role":      "authz",
		"/admin/vouchers/:id/usage-log": "vouchers",
	}
	for object, want := range cases {
		if got := deriveAdminPermissionModule(object); got != want {
			t.Fatalf("derive module %q want=%q got=%q", object, want, got)
		}
	}
}
