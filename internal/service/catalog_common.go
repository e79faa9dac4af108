package service

import (
	"fmt"
	"mime/multipart"

	"github.com/webbangiay/internal/logger"
	"github.com/webbangiay/internal/models"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// StatusToggleResult 状态切换结果
type StatusToggleResult struct {
	ID       uint `json:"id"`
	IsActive bool `json:"is_active"`
}

// storeImage 保存上传图片，未提供文件时返回空路径
func storeImage(storage FileStorage, file *multipart.FileHeader, folder string, namer FileNamer) (string, error) {
	if file == nil {
		return "", nil
	}
	if storage == nil {
		return "", ErrFileMissing
	}
	return storage.Save(file, folder, namer)
}

// discardImages 异步清理不再引用的图片
func discardImages(storage FileStorage, relativeURLs ...string) {
	if storage == nil {
		return
	}
	storage.RemoveLater(relativeURLs...)
}

// rollbackImage 写库失败时立即删除刚保存的图片
func rollbackImage(storage FileStorage, relativeURL string) {
	if storage == nil || relativeURL == "" {
		return
	}
	if err := storage.Delete(relativeURL); err != nil {
		logger.Warnw("upload_rollback_failed", "path", relativeURL, "error", err)
	}
}

func resolveImageURL(storage FileStorage, relativeURL string) string {
	if storage == nil {
		return relativeURL
	}
	return storage.ResolveURL(relativeURL)
}

// resolveProductImages 商品详情中的颜色主图与附图拼接完整地址
func resolveProductImages(storage FileStorage, product *models.Product) {
	if product == nil {
		return
	}
	if product.Brand != nil {
		product.Brand.ImageURL = resolveImageURL(storage, product.Brand.ImageURL)
	}
	for i := range product.Colors {
		resolveColorImages(storage, &product.Colors[i])
	}
}

func resolveColorImages(storage FileStorage, color *models.ProductColor) {
	color.ImageURL = resolveImageURL(storage, color.ImageURL)
	for j := range color.Images {
		color.Images[j].ImageURL = resolveImageURL(storage, color.Images[j].ImageURL)
	}
}

func invalidInput(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrInvalidInput, err)
}

// positiveID 外键必须为正整数
func positiveID(value interface{}) error {
	id, _ := value.(uint)
	if id == 0 {
		return validation.NewError("validation_required", "cannot be blank")
	}
	return nil
}

func boolValue(ptr *bool, fallback bool) bool {
	if ptr == nil {
		return fallback
	}
	return *ptr
}
