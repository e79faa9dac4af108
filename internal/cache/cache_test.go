package cache

import (
	"context"
	"testing"
	"time"

	"github.com/webbangiay/internal/config"
	"github.com/webbangiay/internal/models"
)

func TestDisabledCacheIsNoop(t *testing.T) {
	if err := InitRedis(&config.RedisConfig{Enabled: false}); err != nil {
		t.Fatalf("init disabled redis failed: %v", err)
	}
	if Enabled() {
		t.Fatalf("cache should be disabled")
	}
	ctx := context.Background()
	var dest map[string]int
	hit, err := GetJSON(ctx, "any", &dest)
	if err != nil || hit {
		t.Fatalf("disabled cache must miss without error, hit=%v err=%v", hit, err)
	}
	if err := SetStatistics(ctx, StatisticsKey("summary"), map[string]int{"a": 1}, time.Minute); err != nil {
		t.Fatalf("set on disabled cache failed: %v", err)
	}
	if removed, err := InvalidateStatistics(ctx); err != nil || removed != 0 {
		t.Fatalf("invalidate on disabled cache: removed=%d err=%v", removed, err)
	}
}

func TestStatisticsKey(t *testing.T) {
	got := StatisticsKey("revenue-range", "2026-01-01", "2026-01-31", "day")
	if got != "stats:revenue-range:2026-01-01:2026-01-31:day" {
		t.Fatalf("unexpected key %s", got)
	}
	if StatisticsKey("summary") != "stats:summary" {
		t.Fatalf("unexpected key without parts")
	}
}

func TestBuildAuthStates(t *testing.T) {
	invalidBefore := time.Unix(1700000000, 0)
	customer := &models.Customer{ID: 7, IsActive: true, TokenVersion: 3, TokenInvalidBefore: &invalidBefore}
	state := BuildCustomerAuthState(customer)
	if state.CustomerID != 7 || !state.IsActive || state.TokenVersion != 3 || state.TokenInvalidBefore != 1700000000 {
		t.Fatalf("unexpected customer state: %+v", state)
	}

	admin := &models.AdminUser{ID: "a-1", Email: "admin@example.com", Role: "ADMIN", IsActive: true, TokenVersion: 1}
	adminState := BuildAdminAuthState(admin)
	if adminState.AdminID != "a-1" || adminState.Role != "ADMIN" || adminState.TokenInvalidBefore != 0 {
		t.Fatalf("unexpected admin state: %+v", adminState)
	}
	if BuildAdminAuthState(nil) != nil || BuildCustomerAuthState(nil) != nil {
		t.Fatalf("nil models should produce nil states")
	}
}
