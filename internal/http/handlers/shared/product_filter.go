package shared

import (
	"strconv"
	"strings"

	"github.com/webbangiay/internal/http/response"
	"github.com/webbangiay/internal/repository"

	"github.com/gin-gonic/gin"
)

// ProductFilterFromQuery 解析商品列表查询参数。
// 支持 brand_id, sub_category_id, category_id, gender, keyword/search, min_price, max_price, order_by。
func ProductFilterFromQuery(c *gin.Context) (repository.ProductListFilter, bool) {
	page, pageSize := PageQuery(c)
	filter := repository.ProductListFilter{
		Page:     page,
		PageSize: pageSize,
		Gender:   c.Query("gender"),
		OrderBy:  c.Query("order_by"),
	}
	filter.Search = c.Query("keyword")
	if filter.Search == "" {
		filter.Search = c.Query("search")
	}

	var ok bool
	if filter.BrandID, ok = OptionalUintQuery(c, "brand_id"); !ok {
		return filter, false
	}
	if filter.SubCategoryID, ok = OptionalUintQuery(c, "sub_category_id"); !ok {
		return filter, false
	}
	if filter.CategoryID, ok = OptionalUintQuery(c, "category_id"); !ok {
		return filter, false
	}
	if filter.MinPrice, ok = optionalFloatQuery(c, "min_price"); !ok {
		return filter, false
	}
	if filter.MaxPrice, ok = optionalFloatQuery(c, "max_price"); !ok {
		return filter, false
	}
	return filter, true
}

func optionalFloatQuery(c *gin.Context, key string) (*float64, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, true
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || value < 0 {
		RespondError(c, response.CodeBadRequest, "error.bad_request", err)
		return nil, false
	}
	return &value, true
}
