package service

import (
	"errors"
	"testing"
	"time"

	"github.com/webbangiay/internal/config"
	"github.com/webbangiay/internal/constants"
	"github.com/webbangiay/internal/models"
	"github.com/webbangiay/internal/repository"

	"gorm.io/gorm"
)

func newAuthTestConfig() *config.Config {
	cfg := newTestConfig()
	cfg.JWT = config.JWTConfig{SecretKey: "admin-secret", ExpireHours: 2}
	cfg.CustomerJWT = config.JWTConfig{SecretKey: "customer-secret", ExpireHours: 2}
	cfg.Security.PasswordPolicy = config.PasswordPolicyConfig{MinLength: 8, MaxLength: 16}
	return cfg
}

func createTestAdminUser(t *testing.T, db *gorm.DB, id, email, role, password string) *models.AdminUser {
	t.Helper()
	hashed, err := hashPassword(password)
	if err != nil {
		t.Fatalf("hash password failed: %v", err)
	}
	user := &models.AdminUser{
		ID:           id,
		FullName:     "Admin " + id,
		Email:        email,
		PasswordHash: hashed,
		Role:         role,
		IsActive:     true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create admin user failed: %v", err)
	}
	return user
}

func TestAdminLoginIssuesRoleToken(t *testing.T) {
	db := setupServiceTestDB(t)
	cfg := newAuthTestConfig()
	createTestAdminUser(t, db, "admin-1", "admin@shop.vn", constants.RoleAdmin, "Secret123")
	svc := NewAuthService(cfg, repository.NewAdminUserRepository(db))

	if _, _, _, err := svc.Login("admin@shop.vn", "wrong-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}

	admin, token, expiresAt, err := svc.Login(" ADMIN@shop.vn ", "Secret123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if admin.LastLoginAt == nil {
		t.Fatalf("last login should be recorded")
	}
	if time.Until(expiresAt) <= time.Hour {
		t.Fatalf("unexpected expiry %v", expiresAt)
	}
	claims, err := svc.ParseJWT(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.AdminID != "admin-1" || claims.Role != constants.RoleAdmin || claims.Email != "admin@shop.vn" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if _, err := ParseAdminJWT("other-secret", token); err == nil {
		t.Fatalf("token signed with another secret must be rejected")
	}
}

func TestAdminLoginRejectsDisabledAccount(t *testing.T) {
	db := setupServiceTestDB(t)
	user := createTestAdminUser(t, db, "emp-1", "emp@shop.vn", constants.RoleEmployee, "Secret123")
	if err := db.Model(user).Update("is_active", false).Error; err != nil {
		t.Fatalf("disable user failed: %v", err)
	}
	svc := NewAuthService(newAuthTestConfig(), repository.NewAdminUserRepository(db))
	if _, _, _, err := svc.Login("emp@shop.vn", "Secret123"); !errors.Is(err, ErrAccountDisabled) {
		t.Fatalf("expected account disabled, got %v", err)
	}
}

func TestAdminChangePasswordRevokesTokens(t *testing.T) {
	db := setupServiceTestDB(t)
	createTestAdminUser(t, db, "admin-1", "admin@shop.vn", constants.RoleAdmin, "Secret123")
	svc := NewAuthService(newAuthTestConfig(), repository.NewAdminUserRepository(db))

	if err := svc.ChangePassword("admin-1", "bad-old", "NewSecret1"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected invalid old password, got %v", err)
	}
	if err := svc.ChangePassword("admin-1", "Secret123", "short"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected weak password, got %v", err)
	}
	if err := svc.ChangePassword("admin-1", "Secret123", "NewSecret1"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}
	admin, err := svc.GetAdminByID("admin-1")
	if err != nil {
		t.Fatalf("reload admin failed: %v", err)
	}
	if admin.TokenVersion != 1 || admin.TokenInvalidBefore == nil {
		t.Fatalf("token version should be bumped, got %d", admin.TokenVersion)
	}
	if err := CheckTokenState(0, nil, admin.TokenVersion, admin.TokenInvalidBefore.Unix(), true); !errors.Is(err, ErrTokenRevoked) {
		t.Fatalf("old token should be revoked, got %v", err)
	}
	if _, _, _, err := svc.Login("admin@shop.vn", "NewSecret1"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
}

func TestCustomerRegisterAndLogin(t *testing.T) {
	db := setupServiceTestDB(t)
	cfg := newAuthTestConfig()
	svc := NewCustomerAuthService(cfg, repository.NewCustomerRepository(db), nil)

	customer, token, _, err := svc.Register(RegisterInput{
		FullName: "Trần Thị B",
		Email:    "B@Mail.com",
		Password: "matkhau1",
		City:     "Hà Nội",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if customer.Email != "b@mail.com" || !customer.IsActive {
		t.Fatalf("unexpected customer: %+v", customer)
	}
	claims, err := svc.ParseCustomerJWT(token)
	if err != nil {
		t.Fatalf("parse customer token failed: %v", err)
	}
	if claims.CustomerID != customer.ID || claims.Role != CustomerRole {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if _, _, _, err := svc.Register(RegisterInput{FullName: "X", Email: "b@mail.com", Password: "matkhau1"}); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected duplicate email, got %v", err)
	}
	if _, _, _, err := svc.Register(RegisterInput{FullName: "X", Email: "not-an-email", Password: "matkhau1"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}

	if _, _, _, err := svc.Login("b@mail.com", "sai-mat-khau", CaptchaVerifyPayload{}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if _, _, _, err := svc.Login("b@mail.com", "matkhau1", CaptchaVerifyPayload{}); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := db.Model(&models.Customer{}).Where("id = ?", customer.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("disable customer failed: %v", err)
	}
	if _, _, _, err := svc.Login("b@mail.com", "matkhau1", CaptchaVerifyPayload{}); !errors.Is(err, ErrAccountDisabled) {
		t.Fatalf("expected disabled account, got %v", err)
	}
}

func TestCustomerProfileAndPassword(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewCustomerAuthService(newAuthTestConfig(), repository.NewCustomerRepository(db), nil)
	customer, _, _, err := svc.Register(RegisterInput{FullName: "Lê C", Email: "c@mail.com", Password: "matkhau1"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	updated, err := svc.UpdateProfile(customer.ID, ProfileInput{FullName: "Lê Văn C", Phone: "0901234567", City: "Đà Nẵng"})
	if err != nil {
		t.Fatalf("update profile failed: %v", err)
	}
	if updated.FullName != "Lê Văn C" || updated.Email != "c@mail.com" {
		t.Fatalf("unexpected profile: %+v", updated)
	}

	if err := svc.ChangePassword(customer.ID, "wrong", "matkhau2"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected invalid old password, got %v", err)
	}
	if err := svc.ChangePassword(customer.ID, "matkhau1", "matkhau2"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}
	me, err := svc.Me(customer.ID)
	if err != nil {
		t.Fatalf("me failed: %v", err)
	}
	if me.TokenVersion != 1 {
		t.Fatalf("token version should be bumped")
	}
	if _, err := svc.Me(9999); !errors.Is(err, ErrCustomerNotFound) {
		t.Fatalf("expected customer not found, got %v", err)
	}
}

func TestAdminUserManagementRules(t *testing.T) {
	db := setupServiceTestDB(t)
	cfg := newAuthTestConfig()
	createTestAdminUser(t, db, "admin-1", "admin@shop.vn", constants.RoleAdmin, "Secret123")
	svc := NewAdminUserService(cfg, repository.NewAdminUserRepository(db), nil)

	employee, err := svc.Create(AdminUserInput{FullName: "Phạm D", Email: "d@shop.vn", Role: "employee"})
	if err != nil {
		t.Fatalf("create employee failed: %v", err)
	}
	if employee.Role != constants.RoleEmployee || !employee.IsActive || employee.ID == "" {
		t.Fatalf("unexpected employee: %+v", employee)
	}
	if !passwordMatches(employee.PasswordHash, "123456") {
		t.Fatalf("default password should be applied")
	}
	if _, err := svc.Create(AdminUserInput{FullName: "Dup", Email: "d@shop.vn", Role: constants.RoleEmployee}); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected duplicate email, got %v", err)
	}
	if _, err := svc.Create(AdminUserInput{FullName: "Bad", Email: "e@shop.vn", Role: "ROOT"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid role, got %v", err)
	}
	if _, err := svc.Create(AdminUserInput{FullName: "Weak", Email: "f@shop.vn", Role: constants.RoleEmployee, Password: "abc"}); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected weak password, got %v", err)
	}

	if err := svc.Delete("admin-1", "admin-1"); !errors.Is(err, ErrAdminDeleteSelfForbidden) {
		t.Fatalf("expected self delete forbidden, got %v", err)
	}
	if err := svc.Delete("admin-1", employee.ID); !errors.Is(err, ErrAdminDeleteLastForbidden) {
		t.Fatalf("expected last admin delete forbidden, got %v", err)
	}
	if _, err := svc.Update("admin-1", AdminUserInput{FullName: "Admin", Email: "admin@shop.vn", Role: constants.RoleEmployee}); !errors.Is(err, ErrAdminDeleteLastForbidden) {
		t.Fatalf("expected last admin demotion forbidden, got %v", err)
	}

	promoted, err := svc.Update(employee.ID, AdminUserInput{FullName: "Phạm D", Email: "d@shop.vn", Role: constants.RoleAdmin})
	if err != nil {
		t.Fatalf("promote employee failed: %v", err)
	}
	if promoted.TokenVersion != 1 {
		t.Fatalf("role change should revoke tokens")
	}
	if err := svc.Delete("admin-1", employee.ID); err != nil {
		t.Fatalf("delete admin with another admin present failed: %v", err)
	}
	if _, err := svc.Get("admin-1"); !errors.Is(err, ErrAdminUserNotFound) {
		t.Fatalf("expected deleted admin not found, got %v", err)
	}

	profile, err := svc.UpdateProfile(employee.ID, "  Phạm Văn D ")
	if err != nil {
		t.Fatalf("update profile failed: %v", err)
	}
	if profile.FullName != "Phạm Văn D" {
		t.Fatalf("unexpected full name %q", profile.FullName)
	}
	if _, err := svc.UploadAvatar(employee.ID, nil); !errors.Is(err, ErrFileMissing) {
		t.Fatalf("expected file missing, got %v", err)
	}
}
