package authz

import (
	"fmt"

	"github.com/webbangiay/internal/constants"
)

// RoleSeed 预置角色定义
type RoleSeed struct {
	Role     string
	Inherits []string
	Policies []Policy
}

// BuiltinRoleSeeds 系统预置角色矩阵
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: constants.RoleEmployee,
			Policies: []Policy{
				{Object: "/admin/brands", Action: "*"},
				{Object: "/admin/brands/:id", Action: "*"},
				{Object: "/admin/brands/:id/toggle-status", Action: "PATCH"},
				{Object: "/admin/categories", Action: "*"},
				{Object: "/admin/categories/:id", Action: "*"},
				{Object: "/admin/categories/:id/toggle-status", Action: "PATCH"},
				{Object: "/admin/subcategories", Action: "*"},
				{Object: "/admin/subcategories/:id", Action: "*"},
				{Object: "/admin/subcategories/:id/toggle-status", Action: "PATCH"},
				{Object: "/admin/products", Action: "*"},
				{Object: "/admin/products/:id", Action: "*"},
				{Object: "/admin/products/:id/toggle-status", Action: "PATCH"},
				{Object: "/admin/products/:id/colors", Action: "GET"},
				{Object: "/admin/product-colors", Action: "*"},
				{Object: "/admin/product-colors/:id", Action: "*"},
				{Object: "/admin/product-colors/:id/toggle-status", Action: "PATCH"},
				{Object: "/admin/product-colors/:id/sizes", Action: "GET"},
				{Object: "/admin/product-colors/:id/images", Action: "*"},
				{Object: "/admin/product-sizes", Action: "*"},
				{Object: "/admin/product-sizes/:id", Action: "*"},
				{Object: "/admin/product-sizes/:id/toggle-status", Action: "PATCH"},
				{Object: "/admin/product-color-images", Action: "POST"},
				{Object: "/admin/product-color-images/:id", Action: "*"},
				{Object: "/admin/banners", Action: "*"},
				{Object: "/admin/banners/:id", Action: "*"},
				{Object: "/admin/banners/:id/toggle-status", Action: "PATCH"},
				{Object: "/admin/customers", Action: "*"},
				{Object: "/admin/customers/:id", Action: "*"},
				{Object: "/admin/customers/:id/toggle-status", Action: "PATCH"},
				{Object: "/admin/guests", Action: "*"},
				{Object: "/admin/guests/:id", Action: "*"},
				{Object: "/admin/orders", Action: "*"},
				{Object: "/admin/orders/:id", Action: "*"},
				{Object: "/admin/orders/:id/items", Action: "GET"},
				{Object: "/admin/vouchers", Action: "GET"},
				{Object: "/admin/vouchers/:id", Action: "GET"},
				{Object: "/admin/vouchers/:id/usage-history", Action: "GET"},
				{Object: "/admin/users/profile", Action: "*"},
				{Object: "/admin/users/change-password", Action: "PUT"},
				{Object: "/admin/users/avatar", Action: "POST"},
				{Object: "/admin/upload", Action: "POST"},
			},
		},
		{
			Role:     constants.RoleAdmin,
			Inherits: []string{constants.RoleEmployee},
			Policies: []Policy{
				{Object: "/admin/*", Action: "*"},
			},
		},
	}
}

// BootstrapBuiltinRoles 初始化预置角色与默认策略
func (s *Service) BootstrapBuiltinRoles() error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}

	changed := false
	for _, seed := range BuiltinRoleSeeds() {
		role, err := NormalizeRole(seed.Role)
		if err != nil {
			return err
		}

		exists, err := s.enforcer.HasNamedGroupingPolicy("g", role, roleAnchor)
		if err != nil {
			return fmt.Errorf("check builtin role failed: %w", err)
		}
		if !exists {
			added, err := s.enforcer.AddNamedGroupingPolicy("g", role, roleAnchor)
			if err != nil {
				return fmt.Errorf("create builtin role failed: %w", err)
			}
			changed = changed || added
		}

		for _, parent := range seed.Inherits {
			parentRole, err := NormalizeRole(parent)
			if err != nil {
				return err
			}
			added, err := s.enforcer.AddNamedGroupingPolicy("g", role, parentRole)
			if err != nil {
				return fmt.Errorf("link role inheritance failed: %w", err)
			}
			changed = changed || added
		}

		for _, policy := range seed.Policies {
			action := NormalizeAction(policy.Action)
			if action == "" {
				return fmt.Errorf("builtin policy action is required")
			}
			added, err := s.enforcer.AddPolicy(role, NormalizeObject(policy.Object), action)
			if err != nil {
				return fmt.Errorf("add builtin policy failed: %w", err)
			}
			changed = changed || added
		}
	}

	if changed {
		return s.saveAndReload()
	}
	return nil
}
