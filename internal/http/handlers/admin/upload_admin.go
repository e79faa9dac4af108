package admin

import (
	"github.com/webbangiay/internal/http/response"
	"github.com/webbangiay/internal/service"

	"github.com/gin-gonic/gin"
)

// UploadFile 通用图片上传，folder 为空时存入 common 目录
func (h *Handler) UploadFile(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.file_missing", nil)
		return
	}
	folder := c.DefaultPostForm("folder", "common")
	path, err := h.UploadService.Save(file, folder, service.UUIDOriginalFileName(file.Filename))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{
		"path": path,
		"url":  h.UploadService.ResolveURL(path),
	})
}
