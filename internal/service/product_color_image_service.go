package service

import (
	"mime/multipart"

	"github.com/webbangiay/internal/models"
	"github.com/webbangiay/internal/repository"
)

// ProductColorImageService 颜色款附图服务
type ProductColorImageService struct {
	repo      repository.ProductColorImageRepository
	colorRepo repository.ProductColorRepository
	storage   FileStorage
}

// NewProductColorImageService 创建附图服务
func NewProductColorImageService(
	repo repository.ProductColorImageRepository,
	colorRepo repository.ProductColorRepository,
	storage FileStorage,
) *ProductColorImageService {
	return &ProductColorImageService{repo: repo, colorRepo: colorRepo, storage: storage}
}

// ListByColor 颜色款附图
func (s *ProductColorImageService) ListByColor(colorID uint) ([]models.ProductColorImage, error) {
	images, err := s.repo.ListByColorIDs([]uint{colorID})
	if err != nil {
		return nil, err
	}
	for i := range images {
		images[i].ImageURL = resolveImageURL(s.storage, images[i].ImageURL)
	}
	return images, nil
}

// Get 附图详情
func (s *ProductColorImageService) Get(id uint) (*models.ProductColorImage, error) {
	image, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if image == nil {
		return nil, ErrProductImageNotFound
	}
	image.ImageURL = resolveImageURL(s.storage, image.ImageURL)
	return image, nil
}

// Create 批量上传附图，存放在 product_color/<颜色款ID>
func (s *ProductColorImageService) Create(colorID uint, files []*multipart.FileHeader) ([]models.ProductColorImage, error) {
	if len(files) == 0 {
		return nil, ErrFileMissing
	}
	color, err := s.colorRepo.GetByID(colorID)
	if err != nil {
		return nil, err
	}
	if color == nil {
		return nil, ErrProductColorNotFound
	}

	created := make([]models.ProductColorImage, 0, len(files))
	for _, file := range files {
		if file == nil {
			continue
		}
		relative, err := storeImage(s.storage, file, ProductColorImageFolder(colorID), UUIDOriginalFileName(file.Filename))
		if err != nil {
			return nil, err
		}
		image := models.ProductColorImage{ProductColorID: colorID, ImageURL: relative}
		if err := s.repo.Create(&image); err != nil {
			rollbackImage(s.storage, relative)
			return nil, err
		}
		image.ImageURL = resolveImageURL(s.storage, image.ImageURL)
		created = append(created, image)
	}
	return created, nil
}

// Replace 替换附图文件
func (s *ProductColorImageService) Replace(id uint, file *multipart.FileHeader) (*models.ProductColorImage, error) {
	if file == nil {
		return nil, ErrFileMissing
	}
	image, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if image == nil {
		return nil, ErrProductImageNotFound
	}
	relative, err := storeImage(s.storage, file, ProductColorImageFolder(image.ProductColorID), UUIDOriginalFileName(file.Filename))
	if err != nil {
		return nil, err
	}
	oldImage := image.ImageURL
	image.ImageURL = relative
	if err := s.repo.Update(image); err != nil {
		rollbackImage(s.storage, relative)
		return nil, err
	}
	discardImages(s.storage, oldImage)
	image.ImageURL = resolveImageURL(s.storage, image.ImageURL)
	return image, nil
}

// Delete 删除附图
func (s *ProductColorImageService) Delete(id uint) error {
	image, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if image == nil {
		return ErrProductImageNotFound
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	discardImages(s.storage, image.ImageURL)
	return nil
}
