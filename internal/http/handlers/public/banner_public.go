package public

import (
	"github.com/webbangiay/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetPublicBanners 获取前台 Banner 列表（仅启用）
func (h *Handler) GetPublicBanners(c *gin.Context) {
	banners, err := h.BannerService.ListPublic()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, banners)
}
