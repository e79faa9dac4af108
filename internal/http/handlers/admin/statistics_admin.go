package admin

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/webbangiay/internal/http/response"
	"github.com/webbangiay/internal/service"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// forceRefresh force=true 时跳过统计缓存
func forceRefresh(c *gin.Context) bool {
	force, _ := strconv.ParseBool(c.Query("force"))
	return force
}

// intQuery 解析必填整数查询参数
func intQuery(c *gin.Context, key string) (int, bool) {
	value, err := strconv.Atoi(strings.TrimSpace(c.Query(key)))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.statistics_range_invalid", nil)
		return 0, false
	}
	return value, true
}

func revenueRangeInput(c *gin.Context) service.RevenueRangeInput {
	return service.RevenueRangeInput{
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
		ViewType:  c.DefaultQuery("view_type", "day"),
	}
}

// GetStatisticsSummary 看板汇总 period=today|month|year
func (h *Handler) GetStatisticsSummary(c *gin.Context) {
	period := c.DefaultQuery("period", service.StatisticsPeriodToday)
	summary, err := h.StatisticsService.Summary(c.Request.Context(), period, forceRefresh(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, summary)
}

// GetStatisticsCategoryQuantity 本年各分类销量
func (h *Handler) GetStatisticsCategoryQuantity(c *gin.Context) {
	items, err := h.StatisticsService.QuantityByCategory(c.Request.Context(), forceRefresh(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, items)
}

// GetStatisticsMonthly 本年逐月统计
func (h *Handler) GetStatisticsMonthly(c *gin.Context) {
	items, err := h.StatisticsService.MonthlyStatistics(c.Request.Context(), forceRefresh(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, items)
}

// GetStatisticsDaily 指定年月逐日统计
func (h *Handler) GetStatisticsDaily(c *gin.Context) {
	year, ok := intQuery(c, "year")
	if !ok {
		return
	}
	month, ok := intQuery(c, "month")
	if !ok {
		return
	}
	items, err := h.StatisticsService.DailyStatistics(c.Request.Context(), year, month, forceRefresh(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, items)
}

// GetStatisticsByDay 指定日期统计
func (h *Handler) GetStatisticsByDay(c *gin.Context) {
	year, ok := intQuery(c, "year")
	if !ok {
		return
	}
	month, ok := intQuery(c, "month")
	if !ok {
		return
	}
	day, ok := intQuery(c, "day")
	if !ok {
		return
	}
	item, err := h.StatisticsService.StatisticsByDay(c.Request.Context(), year, month, day, forceRefresh(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, item)
}

// GetDailyRevenue 指定年月逐日营收
func (h *Handler) GetDailyRevenue(c *gin.Context) {
	year, ok := intQuery(c, "year")
	if !ok {
		return
	}
	month, ok := intQuery(c, "month")
	if !ok {
		return
	}
	items, err := h.StatisticsService.DailyRevenue(c.Request.Context(), year, month, forceRefresh(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, items)
}

// GetMonthlyRevenue 指定年份逐月营收
func (h *Handler) GetMonthlyRevenue(c *gin.Context) {
	year, ok := intQuery(c, "year")
	if !ok {
		return
	}
	items, err := h.StatisticsService.MonthlyRevenue(c.Request.Context(), year, forceRefresh(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, items)
}

// GetRevenueByRange 日期区间营收 view_type=day|month|year
func (h *Handler) GetRevenueByRange(c *gin.Context) {
	result, err := h.StatisticsService.RevenueByRange(c.Request.Context(), revenueRangeInput(c), forceRefresh(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, result)
}

// ExportRevenueByRange 导出日期区间营收 XLSX
func (h *Handler) ExportRevenueByRange(c *gin.Context) {
	export, err := h.StatisticsService.ExportRevenueRange(c.Request.Context(), revenueRangeInput(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=\""+export.FileName+"\"; filename*=UTF-8''"+url.PathEscape(export.FileName))
	c.Data(http.StatusOK, xlsxContentType, export.Content)
}
