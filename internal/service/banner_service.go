package service

import (
	"mime/multipart"
	"strings"

	"github.com/webbangiay/internal/constants"
	"github.com/webbangiay/internal/models"
	"github.com/webbangiay/internal/repository"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// BannerService Banner 业务服务
type BannerService struct {
	repo    repository.BannerRepository
	storage FileStorage
}

// NewBannerService 创建 Banner 服务
func NewBannerService(repo repository.BannerRepository, storage FileStorage) *BannerService {
	return &BannerService{repo: repo, storage: storage}
}

// BannerInput 创建/更新 Banner 输入
type BannerInput struct {
	Title    string
	Link     string
	Image    *multipart.FileHeader
	IsActive *bool
}

// Validate 校验 Banner 输入
func (in BannerInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&in.Link, validation.Length(0, 1000), is.RequestURI),
	)
}

// ListAdmin 获取后台 Banner 列表
func (s *BannerService) ListAdmin(filter repository.BannerListFilter) ([]models.Banner, int64, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	banners, total, err := s.repo.List(filter)
	if err != nil {
		return nil, 0, err
	}
	s.resolve(banners)
	return banners, total, nil
}

// ListPublic 获取前台启用的 Banner
func (s *BannerService) ListPublic() ([]models.Banner, error) {
	active := true
	banners, _, err := s.repo.List(repository.BannerListFilter{IsActive: &active})
	if err != nil {
		return nil, err
	}
	s.resolve(banners)
	return banners, nil
}

// GetByID 根据 ID 获取 Banner
func (s *BannerService) GetByID(id uint) (*models.Banner, error) {
	banner, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if banner == nil {
		return nil, ErrBannerNotFound
	}
	banner.ImageURL = resolveImageURL(s.storage, banner.ImageURL)
	return banner, nil
}

// Create 创建 Banner，图片必填
func (s *BannerService) Create(input BannerInput) (*models.Banner, error) {
	input = normalizeBannerInput(input)
	if err := input.Validate(); err != nil {
		return nil, invalidInput(err)
	}
	if input.Image == nil {
		return nil, ErrFileMissing
	}
	imageURL, err := storeImage(s.storage, input.Image, constants.UploadFolderBanner, BannerFileName(input.Title))
	if err != nil {
		return nil, err
	}
	banner := &models.Banner{
		Title:    input.Title,
		ImageURL: imageURL,
		Link:     input.Link,
		IsActive: boolValue(input.IsActive, true),
	}
	if err := s.repo.Create(banner); err != nil {
		rollbackImage(s.storage, imageURL)
		return nil, err
	}
	banner.ImageURL = resolveImageURL(s.storage, banner.ImageURL)
	return banner, nil
}

// Update 更新 Banner
func (s *BannerService) Update(id uint, input BannerInput) (*models.Banner, error) {
	input = normalizeBannerInput(input)
	if err := input.Validate(); err != nil {
		return nil, invalidInput(err)
	}
	banner, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if banner == nil {
		return nil, ErrBannerNotFound
	}

	imageURL, err := storeImage(s.storage, input.Image, constants.UploadFolderBanner, BannerFileName(input.Title))
	if err != nil {
		return nil, err
	}
	oldImage := ""
	if imageURL != "" && imageURL != banner.ImageURL {
		oldImage = banner.ImageURL
		banner.ImageURL = imageURL
	}
	banner.Title = input.Title
	banner.Link = input.Link
	if input.IsActive != nil {
		banner.IsActive = *input.IsActive
	}
	if err := s.repo.Update(banner); err != nil {
		if oldImage != "" {
			rollbackImage(s.storage, imageURL)
		}
		return nil, err
	}
	discardImages(s.storage, oldImage)
	banner.ImageURL = resolveImageURL(s.storage, banner.ImageURL)
	return banner, nil
}

// Delete 删除 Banner
func (s *BannerService) Delete(id uint) error {
	banner, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if banner == nil {
		return ErrBannerNotFound
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	discardImages(s.storage, banner.ImageURL)
	return nil
}

// ToggleStatus 切换 Banner 状态
func (s *BannerService) ToggleStatus(id uint) (*StatusToggleResult, error) {
	banner, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if banner == nil {
		return nil, ErrBannerNotFound
	}
	next := !banner.IsActive
	if err := s.repo.UpdateStatus(id, next); err != nil {
		return nil, err
	}
	return &StatusToggleResult{ID: id, IsActive: next}, nil
}

func (s *BannerService) resolve(banners []models.Banner) {
	for i := range banners {
		banners[i].ImageURL = resolveImageURL(s.storage, banners[i].ImageURL)
	}
}

func normalizeBannerInput(in BannerInput) BannerInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Link = strings.TrimSpace(in.Link)
	return in
}
