package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/webbangiay/internal/config"
	"github.com/webbangiay/internal/service"

	"github.com/gin-gonic/gin"
)

func TestCORSMiddlewareOrigins(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name    string
		cfg     config.CORSConfig
		origin  string
		allowed string
	}{
		{name: "wildcard", cfg: config.CORSConfig{AllowedOrigins: []string{"*"}}, origin: "https://shop.example.com", allowed: "*"},
		{name: "wildcard_with_credentials", cfg: config.CORSConfig{AllowedOrigins: []string{"*"}, AllowCredentials: true}, origin: "https://shop.example.com", allowed: "https://shop.example.com"},
		{name: "allow_list", cfg: config.CORSConfig{AllowedOrigins: []string{"https://a.example.com/", "https://b.example.com"}}, origin: "https://a.example.com", allowed: "https://a.example.com"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.Use(CORSMiddleware(tc.cfg))
			r.GET("/ping", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"ok": true})
			})
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			req.Header.Set("Origin", tc.origin)
			r.ServeHTTP(w, req)
			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tc.allowed {
				t.Fatalf("allow origin want %s got %s", tc.allowed, got)
			}
		})
	}

	r := gin.New()
	r.Use(CORSMiddleware(config.CORSConfig{AllowedOrigins: []string{"https://a.example.com"}}))
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://x.example.com")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("unmatched origin should be rejected, got %d", w.Code)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": getRequestID(c)})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "req-123")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if w.Header().Get(requestIDHeader) != "req-123" {
		t.Fatalf("response request id want req-123 got %s", w.Header().Get(requestIDHeader))
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp["request_id"] != "req-123" {
		t.Fatalf("context request id want req-123 got %s", resp["request_id"])
	}

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w2, req2)
	generated := w2.Header().Get(requestIDHeader)
	if generated == "" {
		t.Fatalf("generated request id should not be empty")
	}
	if resp := strings.TrimSpace(generated); resp == "" {
		t.Fatalf("generated request id should not be blank")
	}
}

func decodeStatusCode(t *testing.T, w *httptest.ResponseRecorder) int {
	t.Helper()
	var resp struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	return resp.StatusCode
}

func TestAdminJWTAuthMiddlewareMissingSecret(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(AdminJWTAuthMiddleware("", nil))
	r.GET("/admin/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if code := decodeStatusCode(t, w); code != 401 {
		t.Fatalf("status_code want 401 got %d", code)
	}
}

func TestBearerToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		header  string
		token   string
		failKey string
	}{
		{header: "", failKey: "error.auth_header_missing"},
		{header: "Token abc", failKey: "error.auth_header_invalid"},
		{header: "Bearer ", failKey: "error.auth_header_invalid"},
		{header: "bearer abc.def", token: "abc.def"},
	}
	for _, tc := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		if tc.header != "" {
			c.Request.Header.Set("Authorization", tc.header)
		}
		token, failKey := bearerToken(c)
		if token != tc.token || failKey != tc.failKey {
			t.Fatalf("header %q: want (%q,%q) got (%q,%q)", tc.header, tc.token, tc.failKey, token, failKey)
		}
	}
}

func TestOptionalCustomerJWTMiddlewareGuest(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(OptionalCustomerJWTMiddleware(nil))
	r.GET("/orders", func(c *gin.Context) {
		_, exists := c.Get(customerIDContextKey)
		c.JSON(http.StatusOK, gin.H{"status_code": 0, "logged_in": exists})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders", nil))
	if !strings.Contains(w.Body.String(), `"logged_in":false`) {
		t.Fatalf("guest request should pass without customer id, got %s", w.Body.String())
	}
}

func TestCustomerJWTAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(CustomerJWTAuthMiddleware(service.NewCustomerAuthService(&config.Config{
		CustomerJWT: config.JWTConfig{SecretKey: "customer-secret", ExpireHours: 1},
	}, nil, nil)))
	r.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	if code := decodeStatusCode(t, w); code != 401 {
		t.Fatalf("status_code want 401 got %d", code)
	}

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	r.ServeHTTP(w, req)
	if code := decodeStatusCode(t, w); code != 401 {
		t.Fatalf("invalid token status_code want 401 got %d", code)
	}
}

func TestAdminRBACMiddlewareWithoutRole(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(AdminRBACMiddleware(nil))
	r.GET("/admin/brands", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/brands", nil))
	if code := decodeStatusCode(t, w); code != 401 {
		t.Fatalf("status_code want 401 got %d", code)
	}
}
