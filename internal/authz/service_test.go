package authz

import (
	"fmt"
	"strings"
	"testing"

	"github.com/webbangiay/internal/constants"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthzServiceTest(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	svc, err := NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	return svc
}

func TestEnforceRoleWithGrantedPolicy(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.GrantRolePolicy("auditor", "/admin/products/:id", "GET"); err != nil {
		t.Fatalf("grant role policy failed: %v", err)
	}

	allow, err := svc.EnforceRole("auditor", "/api/v1/admin/products/42", "get")
	if err != nil {
		t.Fatalf("enforce allow failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected allow=true")
	}

	allow, err = svc.EnforceRole("AUDITOR", "/api/v1/admin/products/42", "POST")
	if err != nil {
		t.Fatalf("enforce deny failed: %v", err)
	}
	if allow {
		t.Fatalf("expected allow=false")
	}

	if err := svc.RevokeRolePolicy("auditor", "/admin/products/:id", "GET"); err != nil {
		t.Fatalf("revoke role policy failed: %v", err)
	}
	allow, err = svc.EnforceRole("auditor", "/admin/products/42", "GET")
	if err != nil {
		t.Fatalf("enforce after revoke failed: %v", err)
	}
	if allow {
		t.Fatalf("expected revoked permission denied")
	}
}

func TestNormalizeRole(t *testing.T) {
	got, err := NormalizeRole(" employee ")
	if err != nil || got != "role:EMPLOYEE" {
		t.Fatalf("normalize role want role:EMPLOYEE, got=%q err=%v", got, err)
	}
	got, err = NormalizeRole("role:ADMIN")
	if err != nil || got != "role:ADMIN" {
		t.Fatalf("normalize prefixed role failed, got=%q err=%v", got, err)
	}
	if _, err := NormalizeRole("  "); err == nil {
		t.Fatalf("expected empty role rejected")
	}
}

func TestNormalizeObject(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "/api/v1/admin/orders/:id", want: "/admin/orders/:id"},
		{in: "/admin/orders/:id", want: "/admin/orders/:id"},
		{in: "admin/orders", want: "/admin/orders"},
		{in: "/api/v1", want: "/"},
		{in: "", want: "/"},
	}
	for _, item := range cases {
		got := NormalizeObject(item.in)
		if got != item.want {
			t.Fatalf("normalize object failed, in=%q want=%q got=%q", item.in, item.want, got)
		}
	}
}

func TestBootstrapBuiltinRoles(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap builtin roles failed: %v", err)
	}
	// 重复执行保持幂等
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap builtin roles again failed: %v", err)
	}

	roles, err := svc.ListRoles()
	if err != nil {
		t.Fatalf("list roles failed: %v", err)
	}
	if len(roles) != 2 || roles[0] != "role:ADMIN" || roles[1] != "role:EMPLOYEE" {
		t.Fatalf("roles want [role:ADMIN role:EMPLOYEE], got=%v", roles)
	}

	cases := []struct {
		role   string
		object string
		action string
		want   bool
	}{
		{constants.RoleEmployee, "/api/v1/admin/products/7", "PUT", true},
		{constants.RoleEmployee, "/api/v1/admin/brands/3/toggle-status", "PATCH", true},
		{constants.RoleEmployee, "/api/v1/admin/orders/0102202612000001/items", "GET", true},
		{constants.RoleEmployee, "/api/v1/admin/vouchers", "GET", true},
		{constants.RoleEmployee, "/api/v1/admin/vouchers", "POST", false},
		{constants.RoleEmployee, "/api/v1/admin/vouchers/5/toggle-status", "PATCH", false},
		{constants.RoleEmployee, "/api/v1/admin/statistics/summary", "GET", false},
		{constants.RoleEmployee, "/api/v1/admin/users", "GET", false},
		{constants.RoleEmployee, "/api/v1/admin/users/profile", "PUT", true},
		{constants.RoleAdmin, "/api/v1/admin/statistics/summary", "GET", true},
		{constants.RoleAdmin, "/api/v1/admin/users/abc", "DELETE", true},
		{constants.RoleAdmin, "/api/v1/admin/vouchers", "POST", true},
	}
	for _, item := range cases {
		allow, err := svc.EnforceRole(item.role, item.object, item.action)
		if err != nil {
			t.Fatalf("enforce %s %s %s failed: %v", item.role, item.action, item.object, err)
		}
		if allow != item.want {
			t.Fatalf("enforce %s %s %s want=%v got=%v", item.role, item.action, item.object, item.want, allow)
		}
	}

	policies, err := svc.GetRolePolicies(constants.RoleAdmin)
	if err != nil {
		t.Fatalf("get admin policies failed: %v", err)
	}
	if len(policies) != 1 || policies[0].Object != "/admin/*" || policies[0].Action != "*" {
		t.Fatalf("unexpected admin policies: %+v", policies)
	}
}
