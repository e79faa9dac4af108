package admin

import (
	handlershared "github.com/webbangiay/internal/http/handlers/shared"
	"github.com/webbangiay/internal/http/response"
	"github.com/webbangiay/internal/repository"
	"github.com/webbangiay/internal/service"

	"github.com/gin-gonic/gin"
)

// bannerInputFromForm Banner 表单：title, link, is_active, image(文件)
func bannerInputFromForm(c *gin.Context) service.BannerInput {
	input := service.BannerInput{
		Title:    c.PostForm("title"),
		Link:     c.PostForm("link"),
		IsActive: formBool(c, "is_active"),
	}
	if file, err := c.FormFile("image"); err == nil {
		input.Image = file
	}
	return input
}

// GetAdminBanners 获取后台 Banner 列表
func (h *Handler) GetAdminBanners(c *gin.Context) {
	page, pageSize := pageQuery(c)
	isActive, ok := handlershared.OptionalBoolQuery(c, "is_active")
	if !ok {
		return
	}

	banners, total, err := h.BannerService.ListAdmin(repository.BannerListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   c.Query("search"),
		IsActive: isActive,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondPage(c, banners, page, pageSize, total)
}

// GetAdminBanner 获取后台 Banner 详情
func (h *Handler) GetAdminBanner(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	banner, err := h.BannerService.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, banner)
}

// CreateBanner 创建 Banner
func (h *Handler) CreateBanner(c *gin.Context) {
	banner, err := h.BannerService.Create(bannerInputFromForm(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, banner)
}

// UpdateBanner 更新 Banner，未上传图片时保留原图
func (h *Handler) UpdateBanner(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	banner, err := h.BannerService.Update(id, bannerInputFromForm(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, banner)
}

// DeleteBanner 删除 Banner
func (h *Handler) DeleteBanner(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.BannerService.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, nil)
}

// ToggleBannerStatus 切换 Banner 状态
func (h *Handler) ToggleBannerStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	result, err := h.BannerService.ToggleStatus(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, result)
}
