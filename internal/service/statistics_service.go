package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/webbangiay/internal/cache"
	"github.com/webbangiay/internal/config"
	"github.com/webbangiay/internal/constants"
	"github.com/webbangiay/internal/logger"
	"github.com/webbangiay/internal/metrics"
	"github.com/webbangiay/internal/models"
	"github.com/webbangiay/internal/repository"

	"github.com/shopspring/decimal"
)

const (
	statisticsDateLayout  = "2006-01-02"
	statisticsMonthLayout = "2006-01"

	StatisticsPeriodToday = "today"
	StatisticsPeriodMonth = "month"
	StatisticsPeriodYear  = "year"
)

// StatisticsService 销售统计服务
// 说明：按时间窗口取出订单与订单项后在内存中分桶，结果短暂缓存在 Redis。
type StatisticsService struct {
	repo  repository.StatisticsRepository
	cfg   config.StatisticsConfig
	loc   *time.Location
	nowFn func() time.Time
}

// NewStatisticsService 创建统计服务
func NewStatisticsService(cfg *config.Config, repo repository.StatisticsRepository) *StatisticsService {
	svc := &StatisticsService{repo: repo, loc: time.Local, nowFn: time.Now}
	if cfg != nil {
		svc.cfg = cfg.Statistics
		svc.loc = resolveLocation(cfg.Server.Timezone)
	}
	if svc.cfg.BestSellerLimit <= 0 {
		svc.cfg.BestSellerLimit = 5
	}
	if svc.cfg.MaxRangeDays <= 0 {
		svc.cfg.MaxRangeDays = 366
	}
	return svc
}

// StatisticsSummary 今日/本月/本年汇总
type StatisticsSummary struct {
	Period              string               `json:"period"`
	From                string               `json:"from"`
	To                  string               `json:"to"`
	TotalRevenue        models.Money         `json:"total_revenue"`
	TotalQuantity       int64                `json:"total_quantity"`
	TotalOrders         int64                `json:"total_orders"`
	TotalBanners        int64                `json:"total_banners"`
	TotalBrands         int64                `json:"total_brands"`
	TotalCategories     int64                `json:"total_categories"`
	TotalCustomers      int64                `json:"total_customers"`
	TotalProducts       int64                `json:"total_products"`
	BestSellingProducts []BestSellingProduct `json:"best_selling_products"`
}

// BestSellingProduct 畅销商品
type BestSellingProduct struct {
	ProductID         uint   `json:"product_id"`
	ProductName       string `json:"product_name"`
	TotalQuantitySold int64  `json:"total_quantity_sold"`
}

// CategoryQuantity 分类销量
type CategoryQuantity struct {
	CategoryID    uint   `json:"category_id"`
	CategoryName  string `json:"category_name"`
	TotalQuantity int64  `json:"total_quantity"`
}

// PeriodStatistics 单个月/日的营收与销量
type PeriodStatistics struct {
	Year          int          `json:"year"`
	Month         int          `json:"month"`
	Day           int          `json:"day,omitempty"`
	TotalRevenue  models.Money `json:"total_revenue"`
	TotalQuantity int64        `json:"total_quantity"`
	TotalOrders   int64        `json:"total_orders"`
}

// RevenueBucket 营收分桶
type RevenueBucket struct {
	Date       string       `json:"date"`
	Revenue    models.Money `json:"revenue"`
	OrderCount int64        `json:"order_count"`
}

// RevenueRangeInput 按日期区间查询营收
type RevenueRangeInput struct {
	StartDate string
	EndDate   string
	ViewType  string
}

// RevenueRangeResult 日期区间营收结果
type RevenueRangeResult struct {
	StartDate    string          `json:"start_date"`
	EndDate      string          `json:"end_date"`
	ViewType     string          `json:"view_type"`
	Data         []RevenueBucket `json:"data"`
	TotalRevenue models.Money    `json:"total_revenue"`
}

// orderTotals 一组订单的营收、销量与订单数
type orderTotals struct {
	revenue  decimal.Decimal
	quantity int64
	orders   int64
}

func (t *orderTotals) add(order models.Order) {
	t.orders++
	for _, item := range order.Items {
		t.revenue = t.revenue.Add(item.UnitPrice.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity))))
		t.quantity += int64(item.Quantity)
	}
}

// Summary 今日/本月/本年汇总
func (s *StatisticsService) Summary(ctx context.Context, period string, force bool) (*StatisticsSummary, error) {
	period = strings.ToLower(strings.TrimSpace(period))
	now := s.now()
	var startAt, endAt time.Time
	switch period {
	case StatisticsPeriodToday:
		startAt = dateOnly(now, s.loc)
		endAt = startAt.AddDate(0, 0, 1)
	case StatisticsPeriodMonth:
		startAt = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, s.loc)
		endAt = startAt.AddDate(0, 1, 0)
	case StatisticsPeriodYear:
		startAt = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, s.loc)
		endAt = startAt.AddDate(1, 0, 0)
	default:
		return nil, ErrStatisticsViewInvalid
	}

	key := cache.StatisticsKey("summary", period, startAt.Format(statisticsDateLayout))
	return loadStatistics(ctx, s, key, force, func() (*StatisticsSummary, error) {
		orders, err := s.repo.ListOrdersWithItems(startAt, endAt)
		if err != nil {
			return nil, err
		}
		var totals orderTotals
		for _, order := range orders {
			totals.add(order)
		}
		counts, err := s.repo.GetEntityCounts()
		if err != nil {
			return nil, err
		}
		rows, err := s.repo.GetBestSellers(startAt, endAt, s.cfg.BestSellerLimit)
		if err != nil {
			return nil, err
		}
		bestSellers := make([]BestSellingProduct, 0, len(rows))
		for _, row := range rows {
			bestSellers = append(bestSellers, BestSellingProduct{
				ProductID:         row.ProductID,
				ProductName:       row.ProductName,
				TotalQuantitySold: row.TotalQuantitySold,
			})
		}
		return &StatisticsSummary{
			Period:              period,
			From:                startAt.Format(statisticsDateLayout),
			To:                  endAt.AddDate(0, 0, -1).Format(statisticsDateLayout),
			TotalRevenue:        models.NewMoneyFromDecimal(totals.revenue),
			TotalQuantity:       totals.quantity,
			TotalOrders:         totals.orders,
			TotalBanners:        counts.Banners,
			TotalBrands:         counts.Brands,
			TotalCategories:     counts.Categories,
			TotalCustomers:      counts.Customers,
			TotalProducts:       counts.Products,
			BestSellingProducts: bestSellers,
		}, nil
	})
}

// QuantityByCategory 本年度各分类销量
func (s *StatisticsService) QuantityByCategory(ctx context.Context, force bool) ([]CategoryQuantity, error) {
	year := s.now().Year()
	startAt := time.Date(year, 1, 1, 0, 0, 0, 0, s.loc)
	endAt := startAt.AddDate(1, 0, 0)
	key := cache.StatisticsKey("category-quantity", year)
	return loadStatistics(ctx, s, key, force, func() ([]CategoryQuantity, error) {
		rows, err := s.repo.GetQuantityByCategory(startAt, endAt)
		if err != nil {
			return nil, err
		}
		result := make([]CategoryQuantity, 0, len(rows))
		for _, row := range rows {
			result = append(result, CategoryQuantity{
				CategoryID:    row.CategoryID,
				CategoryName:  row.CategoryName,
				TotalQuantity: row.TotalQuantity,
			})
		}
		return result, nil
	})
}

// MonthlyStatistics 本年度 12 个月的营收与销量
func (s *StatisticsService) MonthlyStatistics(ctx context.Context, force bool) ([]PeriodStatistics, error) {
	year := s.now().Year()
	key := cache.StatisticsKey("monthly", year)
	return loadStatistics(ctx, s, key, force, func() ([]PeriodStatistics, error) {
		startAt := time.Date(year, 1, 1, 0, 0, 0, 0, s.loc)
		orders, err := s.repo.ListOrdersWithItems(startAt, startAt.AddDate(1, 0, 0))
		if err != nil {
			return nil, err
		}
		totals := make([]orderTotals, 12)
		for _, order := range orders {
			totals[int(order.CreatedAt.In(s.loc).Month())-1].add(order)
		}
		result := make([]PeriodStatistics, 0, 12)
		for i, item := range totals {
			result = append(result, PeriodStatistics{
				Year:          year,
				Month:         i + 1,
				TotalRevenue:  models.NewMoneyFromDecimal(item.revenue),
				TotalQuantity: item.quantity,
				TotalOrders:   item.orders,
			})
		}
		return result, nil
	})
}

// DailyStatistics 指定年月每日的营收与销量
func (s *StatisticsService) DailyStatistics(ctx context.Context, year, month int, force bool) ([]PeriodStatistics, error) {
	if err := validateYearMonth(year, month); err != nil {
		return nil, err
	}
	key := cache.StatisticsKey("daily", year, month)
	return loadStatistics(ctx, s, key, force, func() ([]PeriodStatistics, error) {
		totals, err := s.dailyTotals(year, month)
		if err != nil {
			return nil, err
		}
		result := make([]PeriodStatistics, 0, len(totals))
		for i, item := range totals {
			result = append(result, PeriodStatistics{
				Year:          year,
				Month:         month,
				Day:           i + 1,
				TotalRevenue:  models.NewMoneyFromDecimal(item.revenue),
				TotalQuantity: item.quantity,
				TotalOrders:   item.orders,
			})
		}
		return result, nil
	})
}

// StatisticsByDay 指定日期的营收与销量
func (s *StatisticsService) StatisticsByDay(ctx context.Context, year, month, day int, force bool) (*PeriodStatistics, error) {
	if err := validateYearMonth(year, month); err != nil {
		return nil, err
	}
	startAt := time.Date(year, time.Month(month), day, 0, 0, 0, 0, s.loc)
	if day < 1 || startAt.Month() != time.Month(month) {
		return nil, ErrStatisticsRangeInvalid
	}
	key := cache.StatisticsKey("day", startAt.Format(statisticsDateLayout))
	return loadStatistics(ctx, s, key, force, func() (*PeriodStatistics, error) {
		orders, err := s.repo.ListOrdersWithItems(startAt, startAt.AddDate(0, 0, 1))
		if err != nil {
			return nil, err
		}
		var totals orderTotals
		for _, order := range orders {
			totals.add(order)
		}
		return &PeriodStatistics{
			Year:          year,
			Month:         month,
			Day:           day,
			TotalRevenue:  models.NewMoneyFromDecimal(totals.revenue),
			TotalQuantity: totals.quantity,
			TotalOrders:   totals.orders,
		}, nil
	})
}

// DailyRevenue 指定年月每日营收
func (s *StatisticsService) DailyRevenue(ctx context.Context, year, month int, force bool) ([]RevenueBucket, error) {
	if err := validateYearMonth(year, month); err != nil {
		return nil, err
	}
	key := cache.StatisticsKey("daily-revenue", year, month)
	return loadStatistics(ctx, s, key, force, func() ([]RevenueBucket, error) {
		totals, err := s.dailyTotals(year, month)
		if err != nil {
			return nil, err
		}
		result := make([]RevenueBucket, 0, len(totals))
		for i, item := range totals {
			result = append(result, revenueBucket(fmt.Sprintf("%04d-%02d-%02d", year, month, i+1), item))
		}
		return result, nil
	})
}

// MonthlyRevenue 指定年份每月营收
func (s *StatisticsService) MonthlyRevenue(ctx context.Context, year int, force bool) ([]RevenueBucket, error) {
	if err := validateYearMonth(year, 1); err != nil {
		return nil, err
	}
	key := cache.StatisticsKey("monthly-revenue", year)
	return loadStatistics(ctx, s, key, force, func() ([]RevenueBucket, error) {
		startAt := time.Date(year, 1, 1, 0, 0, 0, 0, s.loc)
		orders, err := s.repo.ListOrdersWithItems(startAt, startAt.AddDate(1, 0, 0))
		if err != nil {
			return nil, err
		}
		totals := make([]orderTotals, 12)
		for _, order := range orders {
			totals[int(order.CreatedAt.In(s.loc).Month())-1].add(order)
		}
		result := make([]RevenueBucket, 0, 12)
		for i, item := range totals {
			result = append(result, revenueBucket(fmt.Sprintf("%04d-%02d", year, i+1), item))
		}
		return result, nil
	})
}

// RevenueByRange 日期区间营收，按日/月/年分桶
// 月、年粒度覆盖起止日期所在的完整自然月/年
func (s *StatisticsService) RevenueByRange(ctx context.Context, input RevenueRangeInput, force bool) (*RevenueRangeResult, error) {
	start, end, viewType, err := s.parseRevenueRange(input)
	if err != nil {
		return nil, err
	}
	key := cache.StatisticsKey("revenue-range", start.Format(statisticsDateLayout), end.Format(statisticsDateLayout), viewType)
	return loadStatistics(ctx, s, key, force, func() (*RevenueRangeResult, error) {
		return s.buildRevenueRange(start, end, viewType)
	})
}

func (s *StatisticsService) buildRevenueRange(start, end time.Time, viewType string) (*RevenueRangeResult, error) {
	var (
		windowStart time.Time
		windowEnd   time.Time
		next        func(time.Time) time.Time
		label       func(time.Time) string
	)
	switch viewType {
	case constants.StatisticsViewDay:
		windowStart = start
		windowEnd = end.AddDate(0, 0, 1)
		next = func(t time.Time) time.Time { return t.AddDate(0, 0, 1) }
		label = func(t time.Time) string { return t.Format(statisticsDateLayout) }
	case constants.StatisticsViewMonth:
		windowStart = time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, s.loc)
		windowEnd = time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, s.loc).AddDate(0, 1, 0)
		next = func(t time.Time) time.Time { return t.AddDate(0, 1, 0) }
		label = func(t time.Time) string { return t.Format(statisticsMonthLayout) }
	default:
		windowStart = time.Date(start.Year(), 1, 1, 0, 0, 0, 0, s.loc)
		windowEnd = time.Date(end.Year()+1, 1, 1, 0, 0, 0, 0, s.loc)
		next = func(t time.Time) time.Time { return t.AddDate(1, 0, 0) }
		label = func(t time.Time) string { return fmt.Sprintf("%04d", t.Year()) }
	}

	orders, err := s.repo.ListOrdersWithItems(windowStart, windowEnd)
	if err != nil {
		return nil, err
	}
	index := make(map[string]*orderTotals)
	keys := make([]string, 0)
	for cursor := windowStart; cursor.Before(windowEnd); cursor = next(cursor) {
		k := label(cursor)
		index[k] = &orderTotals{}
		keys = append(keys, k)
	}
	for _, order := range orders {
		if bucket, ok := index[label(order.CreatedAt.In(s.loc))]; ok {
			bucket.add(order)
		}
	}

	total := decimal.Zero
	data := make([]RevenueBucket, 0, len(keys))
	for _, k := range keys {
		bucket := index[k]
		data = append(data, revenueBucket(k, *bucket))
		total = total.Add(bucket.revenue)
	}
	return &RevenueRangeResult{
		StartDate:    start.Format(statisticsDateLayout),
		EndDate:      end.Format(statisticsDateLayout),
		ViewType:     viewType,
		Data:         data,
		TotalRevenue: models.NewMoneyFromDecimal(total),
	}, nil
}

func (s *StatisticsService) parseRevenueRange(input RevenueRangeInput) (time.Time, time.Time, string, error) {
	viewType := strings.ToLower(strings.TrimSpace(input.ViewType))
	if viewType == "" {
		viewType = constants.StatisticsViewDay
	}
	switch viewType {
	case constants.StatisticsViewDay, constants.StatisticsViewMonth, constants.StatisticsViewYear:
	default:
		return time.Time{}, time.Time{}, "", ErrStatisticsViewInvalid
	}
	start, err := time.ParseInLocation(statisticsDateLayout, strings.TrimSpace(input.StartDate), s.loc)
	if err != nil {
		return time.Time{}, time.Time{}, "", ErrStatisticsRangeInvalid
	}
	end, err := time.ParseInLocation(statisticsDateLayout, strings.TrimSpace(input.EndDate), s.loc)
	if err != nil {
		return time.Time{}, time.Time{}, "", ErrStatisticsRangeInvalid
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, "", ErrStatisticsRangeInvalid
	}
	if days := int(end.Sub(start).Hours()/24) + 1; viewType == constants.StatisticsViewDay && days > s.cfg.MaxRangeDays {
		return time.Time{}, time.Time{}, "", ErrStatisticsRangeInvalid
	}
	return start, end, viewType, nil
}

// dailyTotals 指定年月逐日汇总
func (s *StatisticsService) dailyTotals(year, month int) ([]orderTotals, error) {
	startAt := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, s.loc)
	endAt := startAt.AddDate(0, 1, 0)
	orders, err := s.repo.ListOrdersWithItems(startAt, endAt)
	if err != nil {
		return nil, err
	}
	days := endAt.AddDate(0, 0, -1).Day()
	totals := make([]orderTotals, days)
	for _, order := range orders {
		totals[order.CreatedAt.In(s.loc).Day()-1].add(order)
	}
	return totals, nil
}

// Warm 预热看板常用统计
func (s *StatisticsService) Warm(ctx context.Context) error {
	for _, period := range []string{StatisticsPeriodToday, StatisticsPeriodMonth, StatisticsPeriodYear} {
		if _, err := s.Summary(ctx, period, true); err != nil {
			return err
		}
	}
	if _, err := s.MonthlyStatistics(ctx, true); err != nil {
		return err
	}
	_, err := s.QuantityByCategory(ctx, true)
	return err
}

// Invalidate 清空统计缓存
func (s *StatisticsService) Invalidate(ctx context.Context) error {
	removed, err := cache.InvalidateStatistics(ctx)
	if err != nil {
		return err
	}
	if removed > 0 {
		logger.Debugw("statistics_cache_invalidated", "removed", removed)
	}
	return nil
}

func (s *StatisticsService) now() time.Time {
	return s.nowFn().In(s.loc)
}

func (s *StatisticsService) cacheTTL() time.Duration {
	return time.Duration(s.cfg.CacheTTLSeconds) * time.Second
}

// loadStatistics 先读缓存，未命中或强制刷新时重新计算并回写
func loadStatistics[T any](ctx context.Context, s *StatisticsService, key string, force bool, load func() (T, error)) (T, error) {
	if !force {
		var cached T
		hit, err := cache.GetStatistics(ctx, key, &cached)
		if err == nil && hit {
			metrics.RecordCacheLookup("statistics", true)
			return cached, nil
		}
		metrics.RecordCacheLookup("statistics", false)
	}
	result, err := load()
	if err != nil {
		var zero T
		return zero, err
	}
	if err := cache.SetStatistics(ctx, key, result, s.cacheTTL()); err != nil {
		logger.Warnw("statistics_cache_set_failed", "key", key, "error", err)
	}
	return result, nil
}

func revenueBucket(date string, totals orderTotals) RevenueBucket {
	return RevenueBucket{
		Date:       date,
		Revenue:    models.NewMoneyFromDecimal(totals.revenue),
		OrderCount: totals.orders,
	}
}

func validateYearMonth(year, month int) error {
	if year < 2000 || year > 9999 || month < 1 || month > 12 {
		return ErrStatisticsRangeInvalid
	}
	return nil
}
