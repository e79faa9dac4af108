package admin

import (
	handlershared "github.com/webbangiay/internal/http/handlers/shared"
	"github.com/webbangiay/internal/http/response"
	"github.com/webbangiay/internal/repository"
	"github.com/webbangiay/internal/service"

	"github.com/gin-gonic/gin"
)

// ====================  品牌  ====================

// ListBrands 品牌列表
func (h *Handler) ListBrands(c *gin.Context) {
	page, pageSize := pageQuery(c)
	isActive, ok := handlershared.OptionalBoolQuery(c, "is_active")
	if !ok {
		return
	}
	brands, total, err := h.BrandService.List(repository.BrandListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   c.Query("search"),
		IsActive: isActive,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondPage(c, brands, page, pageSize, total)
}

// GetBrand 品牌详情
func (h *Handler) GetBrand(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	brand, err := h.BrandService.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, brand)
}

// brandInputFromForm 品牌表单：brand_name, is_active, image(文件)
func brandInputFromForm(c *gin.Context) service.BrandInput {
	input := service.BrandInput{
		BrandName: c.PostForm("brand_name"),
		IsActive:  formBool(c, "is_active"),
	}
	if file, err := c.FormFile("image"); err == nil {
		input.Image = file
	}
	return input
}

// CreateBrand 创建品牌
func (h *Handler) CreateBrand(c *gin.Context) {
	brand, err := h.BrandService.Create(brandInputFromForm(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, brand)
}

// UpdateBrand 更新品牌，未上传图片时保留原图
func (h *Handler) UpdateBrand(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	brand, err := h.BrandService.Update(id, brandInputFromForm(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, brand)
}

// DeleteBrand 删除品牌
func (h *Handler) DeleteBrand(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.BrandService.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, nil)
}

// ToggleBrandStatus 切换品牌状态
func (h *Handler) ToggleBrandStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	result, err := h.BrandService.ToggleStatus(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, result)
}

// ====================  分类  ====================

// CategoryRequest 分类请求
type CategoryRequest struct {
	CategoryName string `json:"category_name" binding:"required"`
	IsActive     *bool  `json:"is_active"`
}

// ListCategories 分类列表
func (h *Handler) ListCategories(c *gin.Context) {
	page, pageSize := pageQuery(c)
	isActive, ok := handlershared.OptionalBoolQuery(c, "is_active")
	if !ok {
		return
	}
	categories, total, err := h.CategoryService.List(repository.CategoryListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   c.Query("search"),
		IsActive: isActive,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondPage(c, categories, page, pageSize, total)
}

// GetCategory 分类详情
func (h *Handler) GetCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	category, err := h.CategoryService.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, category)
}

// CreateCategory 创建分类
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	category, err := h.CategoryService.Create(service.CategoryInput{CategoryName: req.CategoryName, IsActive: req.IsActive})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, category)
}

// UpdateCategory 更新分类
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	category, err := h.CategoryService.Update(id, service.CategoryInput{CategoryName: req.CategoryName, IsActive: req.IsActive})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, category)
}

// DeleteCategory 删除分类
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.CategoryService.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, nil)
}

// ToggleCategoryStatus 切换分类状态
func (h *Handler) ToggleCategoryStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	result, err := h.CategoryService.ToggleStatus(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, result)
}

// ====================  子分类  ====================

// SubCategoryRequest 子分类请求
type SubCategoryRequest struct {
	SubCategoryName string `json:"sub_category_name" binding:"required"`
	Gender          string `json:"gender" binding:"required"`
	CategoryID      uint   `json:"category_id" binding:"required"`
	IsActive        *bool  `json:"is_active"`
}

func (r SubCategoryRequest) toInput() service.SubCategoryInput {
	return service.SubCategoryInput{
		SubCategoryName: r.SubCategoryName,
		Gender:          r.Gender,
		CategoryID:      r.CategoryID,
		IsActive:        r.IsActive,
	}
}

// ListSubCategories 子分类列表
func (h *Handler) ListSubCategories(c *gin.Context) {
	page, pageSize := pageQuery(c)
	isActive, ok := handlershared.OptionalBoolQuery(c, "is_active")
	if !ok {
		return
	}
	categoryID, ok := handlershared.OptionalUintQuery(c, "category_id")
	if !ok {
		return
	}
	subs, total, err := h.SubCategoryService.List(repository.SubCategoryListFilter{
		Page:       page,
		PageSize:   pageSize,
		CategoryID: categoryID,
		Gender:     c.Query("gender"),
		Search:     c.Query("search"),
		IsActive:   isActive,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondPage(c, subs, page, pageSize, total)
}

// GetSubCategory 子分类详情
func (h *Handler) GetSubCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	sub, err := h.SubCategoryService.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, sub)
}

// CreateSubCategory 创建子分类
func (h *Handler) CreateSubCategory(c *gin.Context) {
	var req SubCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	sub, err := h.SubCategoryService.Create(req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, sub)
}

// UpdateSubCategory 更新子分类
func (h *Handler) UpdateSubCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req SubCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	sub, err := h.SubCategoryService.Update(id, req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, sub)
}

// DeleteSubCategory 删除子分类
func (h *Handler) DeleteSubCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.SubCategoryService.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, nil)
}

// ToggleSubCategoryStatus 切换子分类状态
func (h *Handler) ToggleSubCategoryStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	result, err := h.SubCategoryService.ToggleStatus(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, result)
}
