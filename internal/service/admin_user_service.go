package service

import (
	"context"
	"mime/multipart"
	"strings"
	"time"

	"github.com/webbangiay/internal/cache"
	"github.com/webbangiay/internal/config"
	"github.com/webbangiay/internal/constants"
	"github.com/webbangiay/internal/logger"
	"github.com/webbangiay/internal/models"
	"github.com/webbangiay/internal/repository"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

// AdminUserService 后台用户管理服务
type AdminUserService struct {
	cfg             *config.Config
	repo            repository.AdminUserRepository
	storage         FileStorage
	defaultPassword string
}

// NewAdminUserService 创建后台用户服务
func NewAdminUserService(cfg *config.Config, repo repository.AdminUserRepository, storage FileStorage) *AdminUserService {
	svc := &AdminUserService{cfg: cfg, repo: repo, storage: storage, defaultPassword: "123456"}
	if cfg != nil && strings.TrimSpace(cfg.DefaultUser.Password) != "" {
		svc.defaultPassword = cfg.DefaultUser.Password
	}
	return svc
}

// AdminUserInput 创建/更新后台用户输入
// 创建时 Password 为空使用默认密码；更新时为空则保持原密码
type AdminUserInput struct {
	FullName string
	Email    string
	Password string
	Role     string
	IsActive *bool
}

// Validate 校验后台用户输入
func (in AdminUserInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.FullName, validation.Required, validation.Length(1, 50)),
		validation.Field(&in.Email, validation.Required, is.EmailFormat, validation.Length(1, 256)),
		validation.Field(&in.Role, validation.Required, validation.In(constants.AdminRoles()...)),
	)
}

func normalizeAdminUserInput(in AdminUserInput) AdminUserInput {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Role = strings.ToUpper(strings.TrimSpace(in.Role))
	return in
}

// List 后台用户列表
func (s *AdminUserService) List(filter repository.AdminUserListFilter) ([]models.AdminUser, int64, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	users, total, err := s.repo.List(filter)
	if err != nil {
		return nil, 0, err
	}
	for i := range users {
		users[i].AvatarURL = resolveImageURL(s.storage, users[i].AvatarURL)
	}
	return users, total, nil
}

// Get 后台用户详情
func (s *AdminUserService) Get(id string) (*models.AdminUser, error) {
	user, err := s.load(id)
	if err != nil {
		return nil, err
	}
	user.AvatarURL = resolveImageURL(s.storage, user.AvatarURL)
	return user, nil
}

// Create 创建后台用户
func (s *AdminUserService) Create(input AdminUserInput) (*models.AdminUser, error) {
	input = normalizeAdminUserInput(input)
	if err := input.Validate(); err != nil {
		return nil, invalidInput(err)
	}
	if err := s.ensureEmailAvailable(input.Email, ""); err != nil {
		return nil, err
	}

	password := input.Password
	if strings.TrimSpace(password) == "" {
		password = s.defaultPassword
	} else if err := s.validatePassword(password); err != nil {
		return nil, err
	}
	hashed, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.AdminUser{
		ID:           uuid.NewString(),
		FullName:     input.FullName,
		Email:        input.Email,
		PasswordHash: hashed,
		Role:         input.Role,
		IsActive:     boolValue(input.IsActive, true),
	}
	if err := s.repo.Create(user); err != nil {
		return nil, err
	}
	logger.Infow("admin_user_created", "admin_id", user.ID, "role", user.Role)
	return user, nil
}

// Update 更新后台用户，不允许降级或停用最后一个管理员
func (s *AdminUserService) Update(id string, input AdminUserInput) (*models.AdminUser, error) {
	input = normalizeAdminUserInput(input)
	if err := input.Validate(); err != nil {
		return nil, invalidInput(err)
	}
	user, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureEmailAvailable(input.Email, id); err != nil {
		return nil, err
	}
	nextActive := boolValue(input.IsActive, user.IsActive)
	losesAdmin := user.Role == constants.RoleAdmin && user.IsActive &&
		(input.Role != constants.RoleAdmin || !nextActive)
	if losesAdmin {
		if err := s.ensureOtherAdmin(); err != nil {
			return nil, err
		}
	}

	revoke := user.Role != input.Role || user.IsActive != nextActive
	user.FullName = input.FullName
	user.Email = input.Email
	user.Role = input.Role
	user.IsActive = nextActive
	if strings.TrimSpace(input.Password) != "" {
		if err := s.validatePassword(input.Password); err != nil {
			return nil, err
		}
		hashed, err := hashPassword(input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hashed
		revoke = true
	}
	if revoke {
		now := time.Now()
		user.TokenVersion++
		user.TokenInvalidBefore = &now
	}
	if err := s.repo.Update(user); err != nil {
		return nil, err
	}
	_ = cache.DelAdminAuthState(context.Background(), user.ID)
	user.AvatarURL = resolveImageURL(s.storage, user.AvatarURL)
	return user, nil
}

// Delete 删除后台用户
func (s *AdminUserService) Delete(id, actorID string) error {
	if strings.TrimSpace(id) == strings.TrimSpace(actorID) {
		return ErrAdminDeleteSelfForbidden
	}
	user, err := s.load(id)
	if err != nil {
		return err
	}
	if user.Role == constants.RoleAdmin && user.IsActive {
		if err := s.ensureOtherAdmin(); err != nil {
			return err
		}
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	_ = cache.DelAdminAuthState(context.Background(), id)
	discardImages(s.storage, user.AvatarURL)
	logger.Infow("admin_user_deleted", "admin_id", id, "actor_id", actorID)
	return nil
}

// UpdateProfile 当前用户修改自己的姓名
func (s *AdminUserService) UpdateProfile(id, fullName string) (*models.AdminUser, error) {
	fullName = strings.TrimSpace(fullName)
	if err := validation.Validate(fullName, validation.Required, validation.Length(1, 50)); err != nil {
		return nil, invalidInput(err)
	}
	user, err := s.load(id)
	if err != nil {
		return nil, err
	}
	user.FullName = fullName
	if err := s.repo.Update(user); err != nil {
		return nil, err
	}
	user.AvatarURL = resolveImageURL(s.storage, user.AvatarURL)
	return user, nil
}

// UploadAvatar 上传头像并替换旧文件
func (s *AdminUserService) UploadAvatar(id string, file *multipart.FileHeader) (*models.AdminUser, error) {
	if file == nil {
		return nil, ErrFileMissing
	}
	user, err := s.load(id)
	if err != nil {
		return nil, err
	}
	path, err := storeImage(s.storage, file, constants.UploadFolderAvatar, UUIDFileName())
	if err != nil {
		return nil, err
	}
	previous := user.AvatarURL
	user.AvatarURL = path
	if err := s.repo.Update(user); err != nil {
		rollbackImage(s.storage, path)
		return nil, err
	}
	if previous != "" && previous != path {
		discardImages(s.storage, previous)
	}
	user.AvatarURL = resolveImageURL(s.storage, user.AvatarURL)
	return user, nil
}

func (s *AdminUserService) load(id string) (*models.AdminUser, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrAdminUserNotFound
	}
	user, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrAdminUserNotFound
	}
	return user, nil
}

func (s *AdminUserService) validatePassword(password string) error {
	if s.cfg == nil {
		return nil
	}
	return validatePassword(s.cfg.Security.PasswordPolicy, password)
}

// ensureOtherAdmin 当前启用中的管理员不止一个
func (s *AdminUserService) ensureOtherAdmin() error {
	count, err := s.repo.CountByRole(constants.RoleAdmin)
	if err != nil {
		return err
	}
	if count <= 1 {
		return ErrAdminDeleteLastForbidden
	}
	return nil
}

func (s *AdminUserService) ensureEmailAvailable(email, selfID string) error {
	existing, err := s.repo.GetByEmail(email)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return ErrEmailExists
	}
	return nil
}
