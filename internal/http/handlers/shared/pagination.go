package shared

import (
	"strconv"
	"strings"

	"github.com/webbangiay/internal/http/response"
	"github.com/webbangiay/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// NormalizePagination 归一化分页参数。
func NormalizePagination(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}

// PageQuery 读取 page/page_size 查询参数并归一化。
func PageQuery(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	return NormalizePagination(page, pageSize)
}

// BuildPagination 计算分页信息。
func BuildPagination(page, pageSize int, total int64) response.Pagination {
	return response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
}

// OptionalBoolQuery 解析可选布尔查询参数，格式错误时返回 false。
func OptionalBoolQuery(c *gin.Context, key string) (*bool, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, true
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		RespondError(c, response.CodeBadRequest, "error.bad_request", err)
		return nil, false
	}
	return &parsed, true
}

// OptionalUintQuery 解析可选正整数查询参数，缺失返回 0。
func OptionalUintQuery(c *gin.Context, key string) (uint, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, true
	}
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		RespondError(c, response.CodeBadRequest, "error.bad_request", err)
		return 0, false
	}
	return uint(parsed), true
}

// MoneyQuery 解析金额查询参数，缺失时为 0。
func MoneyQuery(c *gin.Context, key string) (models.Money, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return models.Money{}, true
	}
	value, err := decimal.NewFromString(raw)
	if err != nil || value.IsNegative() {
		RespondError(c, response.CodeBadRequest, "error.bad_request", err)
		return models.Money{}, false
	}
	return models.NewMoneyFromDecimal(value), true
}
