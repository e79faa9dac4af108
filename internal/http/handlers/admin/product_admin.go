package admin

import (
	handlershared "github.com/webbangiay/internal/http/handlers/shared"
	"github.com/webbangiay/internal/http/response"
	"github.com/webbangiay/internal/models"
	"github.com/webbangiay/internal/service"

	"github.com/gin-gonic/gin"
)

// ====================  商品  ====================

// ProductRequest 商品创建/更新请求
type ProductRequest struct {
	ProductName   string       `json:"product_name" binding:"required"`
	OriginalPrice models.Money `json:"original_price"`
	UnitPrice     models.Money `json:"unit_price"`
	BrandID       uint         `json:"brand_id" binding:"required"`
	SubCategoryID uint         `json:"sub_category_id" binding:"required"`
	IsActive      *bool        `json:"is_active"`
}

func (r ProductRequest) toInput() service.ProductInput {
	return service.ProductInput{
		ProductName:   r.ProductName,
		OriginalPrice: r.OriginalPrice,
		UnitPrice:     r.UnitPrice,
		BrandID:       r.BrandID,
		SubCategoryID: r.SubCategoryID,
		IsActive:      r.IsActive,
	}
}

// ListProducts 后台商品列表
func (h *Handler) ListProducts(c *gin.Context) {
	filter, ok := handlershared.ProductFilterFromQuery(c)
	if !ok {
		return
	}
	isActive, ok := handlershared.OptionalBoolQuery(c, "is_active")
	if !ok {
		return
	}
	filter.IsActive = isActive
	products, total, err := h.ProductService.ListAdmin(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondPage(c, products, filter.Page, filter.PageSize, total)
}

// GetProduct 后台商品详情（含停用的颜色款与尺码）
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	product, err := h.ProductService.GetDetail(id, false)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, product)
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	product, err := h.ProductService.Create(req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, product)
}

// UpdateProduct 更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	product, err := h.ProductService.Update(id, req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, product)
}

// DeleteProduct 删除商品及其颜色款、尺码、附图
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.ProductService.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, nil)
}

// ToggleProductStatus 切换商品状态
func (h *Handler) ToggleProductStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	result, err := h.ProductService.ToggleStatus(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, result)
}

// ListProductColorsOfProduct 商品下的颜色款
func (h *Handler) ListProductColorsOfProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	colors, err := h.ProductColorService.ListByProduct(id, false)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, colors)
}

// ====================  颜色款  ====================

// productColorInputFromForm 颜色款表单：product_id, color_name, is_active, image(文件)
func productColorInputFromForm(c *gin.Context) (service.ProductColorInput, bool) {
	input := service.ProductColorInput{
		ColorName: c.PostForm("color_name"),
		IsActive:  formBool(c, "is_active"),
	}
	if raw := c.PostForm("product_id"); raw != "" {
		productID, err := parseFormUint(raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return input, false
		}
		input.ProductID = productID
	}
	if file, err := c.FormFile("image"); err == nil {
		input.Image = file
	}
	return input, true
}

// ListProductColors 全部颜色款
func (h *Handler) ListProductColors(c *gin.Context) {
	colors, err := h.ProductColorService.List()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, colors)
}

// GetProductColor 颜色款详情
func (h *Handler) GetProductColor(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	color, err := h.ProductColorService.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, color)
}

// CreateProductColor 创建颜色款
func (h *Handler) CreateProductColor(c *gin.Context) {
	input, ok := productColorInputFromForm(c)
	if !ok {
		return
	}
	color, err := h.ProductColorService.Create(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, color)
}

// UpdateProductColor 更新颜色款
func (h *Handler) UpdateProductColor(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	input, ok := productColorInputFromForm(c)
	if !ok {
		return
	}
	color, err := h.ProductColorService.Update(id, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, color)
}

// DeleteProductColor 删除颜色款
func (h *Handler) DeleteProductColor(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.ProductColorService.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, nil)
}

// ToggleProductColorStatus 切换颜色款状态，停用时联动停用尺码
func (h *Handler) ToggleProductColorStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	result, err := h.ProductColorService.ToggleStatus(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, result)
}

// ListSizesOfColor 颜色款下的尺码
func (h *Handler) ListSizesOfColor(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	sizes, err := h.ProductSizeService.ListByColor(id, false)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, sizes)
}

// ListImagesOfColor 颜色款附图
func (h *Handler) ListImagesOfColor(c *gin.Context) {
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

// ====================  尺码  ====================

// ProductSizeRequest 尺码请求
type ProductSizeRequest struct {
	ProductColorID uint  `json:"product_color_id" binding:"required"`
	SizeValue      int   `json:"size_value" binding:"required"`
	StockQuantity  int   `json:"stock_quantity"`
	IsActive       *bool `json:"is_active"`
}

func (r ProductSizeRequest) toInput() service.ProductSizeInput {
	return service.ProductSizeInput{
		ProductColorID: r.ProductColorID,
		SizeValue:      r.SizeValue,
		StockQuantity:  r.StockQuantity,
		IsActive:       r.IsActive,
	}
}

// ListProductSizes 全部尺码
func (h *Handler) ListProductSizes(c *gin.Context) {
	sizes, err := h.ProductSizeService.List()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, sizes)
}

// GetProductSize 尺码详情
func (h *Handler) GetProductSize(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	size, err := h.ProductSizeService.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, size)
}

// CreateProductSize 创建尺码
func (h *Handler) CreateProductSize(c *gin.Context) {
	var req ProductSizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	size, err := h.ProductSizeService.Create(req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, size)
}

// UpdateProductSize 更新尺码
func (h *Handler) UpdateProductSize(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req ProductSizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	size, err := h.ProductSizeService.Update(id, req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, size)
}

// DeleteProductSize 删除尺码
func (h *Handler) DeleteProductSize(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.ProductSizeService.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, nil)
}

// ToggleProductSizeStatus 切换尺码状态
func (h *Handler) ToggleProductSizeStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	result, err := h.ProductSizeService.ToggleStatus(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, result)
}

// ====================  颜色款附图  ====================

// GetProductColorImage 附图详情
func (h *Handler) GetProductColorImage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	image, err := h.ProductColorImageService.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, image)
}

// CreateProductColorImages 批量上传附图：product_color_id + images(多文件)
func (h *Handler) CreateProductColorImages(c *gin.Context) {
	colorID, err := parseFormUint(c.PostForm("product_color_id"))
	if err != nil || colorID == 0 {
		respondError(c, response.CodeBadRequest, "error.id_invalid", nil)
		return
	}
	form, err := c.MultipartForm()
	if err != nil || form == nil || len(form.File["images"]) == 0 {
		respondError(c, response.CodeBadRequest, "error.file_missing", nil)
		return
	}
	images, err := h.ProductColorImageService.Create(colorID, form.File["images"])
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, images)
}

// ReplaceProductColorImage 替换附图文件
func (h *Handler) ReplaceProductColorImage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	file, err := c.FormFile("image")
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.file_missing", nil)
		return
	}
	image, err := h.ProductColorImageService.Replace(id, file)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, image)
}

// DeleteProductColorImage 删除附图
func (h *Handler) DeleteProductColorImage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.ProductColorImageService.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, nil)
}
