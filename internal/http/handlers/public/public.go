package public

import (
	handlershared "github.com/webbangiay/internal/http/handlers/shared"
	"github.com/webbangiay/internal/http/response"
	"github.com/webbangiay/internal/repository"

	"github.com/gin-gonic/gin"
)

// GetCategories 前台分类列表（仅启用）
func (h *Handler) GetCategories(c *gin.Context) {
	page, pageSize := handlershared.PageQuery(c)
	active := true
	categories, total, err := h.CategoryService.List(repository.CategoryListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   c.Query("search"),
		IsActive: &active,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, categories, handlershared.BuildPagination(page, pageSize, total))
}

// GetSubCategories 前台子分类列表，支持 category_id 与 gender 过滤
func (h *Handler) GetSubCategories(c *gin.Context) {
	page, pageSize := handlershared.PageQuery(c)
	categoryID, ok := handlershared.OptionalUintQuery(c, "category_id")
	if !ok {
		return
	}
	active := true
	subs, total, err := h.SubCategoryService.List(repository.SubCategoryListFilter{
		Page:       page,
		PageSize:   pageSize,
		CategoryID: categoryID,
		Gender:     c.Query("gender"),
		IsActive:   &active,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, subs, handlershared.BuildPagination(page, pageSize, total))
}

// GetProducts 首页商品列表（仅上架）
func (h *Handler) GetProducts(c *gin.Context) {
	filter, ok := handlershared.ProductFilterFromQuery(c)
	if !ok {
		return
	}
	products, total, err := h.ProductService.ListPublic(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, products, handlershared.BuildPagination(filter.Page, filter.PageSize, total))
}

// GetProduct 商品详情（仅启用的颜色款与尺码）
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	product, err := h.ProductService.GetDetail(id, true)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, product)
}

// GetProductColors 商品的启用颜色款
func (h *Handler) GetProductColors(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	colors, err := h.ProductColorService.ListByProduct(id, true)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, colors)
}

// GetColorSizes 颜色款的启用尺码
func (h *Handler) GetColorSizes(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	sizes, err := h.ProductSizeService.ListByColor(id, true)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, sizes)
}

// GetColorImages 颜色款附图
func (h *Handler) GetColorImages(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	images, err := h.ProductColorImageService.ListByColor(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, images)
}
