package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/webbangiay/internal/constants"
	"github.com/webbangiay/internal/models"
	"github.com/webbangiay/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type statisticsFixture struct {
	svc *StatisticsService
	loc *time.Location
}

func setupStatisticsFixture(t *testing.T) (*gorm.DB, statisticsFixture) {
	t.Helper()
	db := setupServiceTestDB(t)
	cfg := newTestConfig()
	svc := NewStatisticsService(cfg, repository.NewStatisticsRepository(db))
	loc := svc.loc
	svc.nowFn = func() time.Time {
		return time.Date(2026, 3, 15, 10, 0, 0, 0, loc)
	}
	return db, statisticsFixture{svc: svc, loc: loc}
}

func createStatisticsOrder(t *testing.T, db *gorm.DB, id string, createdAt time.Time, sizeID uint, quantity int, unitPrice int64) {
	t.Helper()
	order := &models.Order{
		ID:            id,
		TotalPrice:    models.NewMoneyFromInt(unitPrice * int64(quantity)),
		PaymentMethod: constants.PaymentMethodCashOnDelivery,
		OrderStatus:   constants.OrderStatusProcessing,
		CreatedAt:     createdAt,
	}
	require.NoError(t, db.Create(order).Error)
	item := &models.OrderItem{
		OrderID:       id,
		ProductSizeID: sizeID,
		Quantity:      quantity,
		UnitPrice:     models.NewMoneyFromInt(unitPrice),
	}
	require.NoError(t, db.Create(item).Error)
}

func TestStatisticsSummaryPeriods(t *testing.T) {
	db, fx := setupStatisticsFixture(t)
	catalog := createTestCatalog(t, db, "Ultraboost")
	createStatisticsOrder(t, db, "15032026090000", time.Date(2026, 3, 15, 9, 0, 0, 0, fx.loc), catalog.Size.ID, 2, 300000)
	createStatisticsOrder(t, db, "02032026120000", time.Date(2026, 3, 2, 12, 0, 0, 0, fx.loc), catalog.Size.ID, 1, 250000)
	createStatisticsOrder(t, db, "20012026080000", time.Date(2026, 1, 20, 8, 0, 0, 0, fx.loc), catalog.Size.ID, 3, 200000)
	createStatisticsOrder(t, db, "31122025230000", time.Date(2025, 12, 31, 23, 0, 0, 0, fx.loc), catalog.Size.ID, 5, 100000)

	ctx := context.Background()
	today, err := fx.svc.Summary(ctx, StatisticsPeriodToday, false)
	require.NoError(t, err)
	assert.True(t, today.TotalRevenue.Equal(models.NewMoneyFromInt(600000).Decimal))
	assert.Equal(t, int64(2), today.TotalQuantity)
	assert.Equal(t, int64(1), today.TotalOrders)
	assert.Equal(t, int64(1), today.TotalProducts)
	assert.Equal(t, int64(1), today.TotalBrands)

	month, err := fx.svc.Summary(ctx, StatisticsPeriodMonth, false)
	require.NoError(t, err)
	assert.True(t, month.TotalRevenue.Equal(models.NewMoneyFromInt(850000).Decimal))
	assert.Equal(t, int64(2), month.TotalOrders)
	assert.Equal(t, "2026-03-01", month.From)
	assert.Equal(t, "2026-03-31", month.To)

	year, err := fx.svc.Summary(ctx, StatisticsPeriodYear, false)
	require.NoError(t, err)
	assert.True(t, year.TotalRevenue.Equal(models.NewMoneyFromInt(1450000).Decimal))
	assert.Equal(t, int64(6), year.TotalQuantity)
	require.Len(t, year.BestSellingProducts, 1)
	assert.Equal(t, "Ultraboost", year.BestSellingProducts[0].ProductName)
	assert.Equal(t, int64(6), year.BestSellingProducts[0].TotalQuantitySold)

	_, err = fx.svc.Summary(ctx, "week", false)
	assert.True(t, errors.Is(err, ErrStatisticsViewInvalid))
}

func TestStatisticsMonthlyAndDaily(t *testing.T) {
	db, fx := setupStatisticsFixture(t)
	catalog := createTestCatalog(t, db, "Stan Smith")
	createStatisticsOrder(t, db, "02032026120000", time.Date(2026, 3, 2, 12, 0, 0, 0, fx.loc), catalog.Size.ID, 1, 250000)
	createStatisticsOrder(t, db, "02032026130000", time.Date(2026, 3, 2, 13, 0, 0, 0, fx.loc), catalog.Size.ID, 2, 100000)
	createStatisticsOrder(t, db, "20012026080000", time.Date(2026, 1, 20, 8, 0, 0, 0, fx.loc), catalog.Size.ID, 3, 200000)
	ctx := context.Background()

	monthly, err := fx.svc.MonthlyStatistics(ctx, false)
	require.NoError(t, err)
	require.Len(t, monthly, 12)
	assert.Equal(t, 1, monthly[0].Month)
	assert.True(t, monthly[0].TotalRevenue.Equal(models.NewMoneyFromInt(600000).Decimal))
	assert.Equal(t, int64(3), monthly[2].TotalQuantity)
	assert.Equal(t, int64(0), monthly[5].TotalOrders)

	daily, err := fx.svc.DailyStatistics(ctx, 2026, 2, false)
	require.NoError(t, err)
	assert.Len(t, daily, 28)

	march, err := fx.svc.DailyRevenue(ctx, 2026, 3, false)
	require.NoError(t, err)
	require.Len(t, march, 31)
	assert.Equal(t, "2026-03-02", march[1].Date)
	assert.Equal(t, int64(2), march[1].OrderCount)
	assert.True(t, march[1].Revenue.Equal(models.NewMoneyFromInt(450000).Decimal))

	day, err := fx.svc.StatisticsByDay(ctx, 2026, 3, 2, false)
	require.NoError(t, err)
	assert.Equal(t, int64(3), day.TotalQuantity)

	_, err = fx.svc.StatisticsByDay(ctx, 2026, 2, 30, false)
	assert.True(t, errors.Is(err, ErrStatisticsRangeInvalid))
	_, err = fx.svc.DailyStatistics(ctx, 2026, 13, false)
	assert.True(t, errors.Is(err, ErrStatisticsRangeInvalid))

	yearly, err := fx.svc.MonthlyRevenue(ctx, 2026, false)
	require.NoError(t, err)
	require.Len(t, yearly, 12)
	assert.Equal(t, "2026-01", yearly[0].Date)

	categories, err := fx.svc.QuantityByCategory(ctx, false)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, int64(6), categories[0].TotalQuantity)
}

func TestStatisticsRevenueByRange(t *testing.T) {
	db, fx := setupStatisticsFixture(t)
	catalog := createTestCatalog(t, db, "Chuck 70")
	createStatisticsOrder(t, db, "28022026100000", time.Date(2026, 2, 28, 10, 0, 0, 0, fx.loc), catalog.Size.ID, 1, 500000)
	createStatisticsOrder(t, db, "01032026100000", time.Date(2026, 3, 1, 10, 0, 0, 0, fx.loc), catalog.Size.ID, 1, 300000)
	createStatisticsOrder(t, db, "05012025100000", time.Date(2025, 1, 5, 10, 0, 0, 0, fx.loc), catalog.Size.ID, 1, 100000)
	ctx := context.Background()

	byDay, err := fx.svc.RevenueByRange(ctx, RevenueRangeInput{StartDate: "2026-02-27", EndDate: "2026-03-01", ViewType: "day"}, false)
	require.NoError(t, err)
	require.Len(t, byDay.Data, 3)
	assert.Equal(t, "2026-02-28", byDay.Data[1].Date)
	assert.True(t, byDay.TotalRevenue.Equal(models.NewMoneyFromInt(800000).Decimal))

	byMonth, err := fx.svc.RevenueByRange(ctx, RevenueRangeInput{StartDate: "2026-02-15", EndDate: "2026-03-10", ViewType: "month"}, false)
	require.NoError(t, err)
	require.Len(t, byMonth.Data, 2)
	assert.Equal(t, "2026-02", byMonth.Data[0].Date)
	assert.Equal(t, int64(1), byMonth.Data[1].OrderCount)

	byYear, err := fx.svc.RevenueByRange(ctx, RevenueRangeInput{StartDate: "2025-06-01", EndDate: "2026-01-01", ViewType: "YEAR"}, false)
	require.NoError(t, err)
	require.Len(t, byYear.Data, 2)
	assert.Equal(t, "2025", byYear.Data[0].Date)
	assert.True(t, byYear.TotalRevenue.Equal(models.NewMoneyFromInt(900000).Decimal))

	_, err = fx.svc.RevenueByRange(ctx, RevenueRangeInput{StartDate: "2026-03-10", EndDate: "2026-03-01"}, false)
	assert.True(t, errors.Is(err, ErrStatisticsRangeInvalid))
	_, err = fx.svc.RevenueByRange(ctx, RevenueRangeInput{StartDate: "2026-03-01", EndDate: "2026-03-10", ViewType: "week"}, false)
	assert.True(t, errors.Is(err, ErrStatisticsViewInvalid))
	_, err = fx.svc.RevenueByRange(ctx, RevenueRangeInput{StartDate: "2024-01-01", EndDate: "2026-03-10", ViewType: "day"}, false)
	assert.True(t, errors.Is(err, ErrStatisticsRangeInvalid))
}

func TestStatisticsExportRevenueRange(t *testing.T) {
	db, fx := setupStatisticsFixture(t)
	catalog := createTestCatalog(t, db, "Gazelle")
	createStatisticsOrder(t, db, "01032026100000", time.Date(2026, 3, 1, 10, 0, 0, 0, fx.loc), catalog.Size.ID, 2, 300000)

	export, err := fx.svc.ExportRevenueRange(context.Background(), RevenueRangeInput{StartDate: "2026-03-01", EndDate: "2026-03-02", ViewType: "day"})
	require.NoError(t, err)
	assert.Equal(t, "doanh-thu_2026-03-01_2026-03-02_day.xlsx", export.FileName)

	f, err := excelize.OpenReader(bytes.NewReader(export.Content))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	header, err := f.GetCellValue(revenueSheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Thời gian", header)
	date, err := f.GetCellValue(revenueSheetName, "A2")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-01", date)
	count, err := f.GetCellValue(revenueSheetName, "C2")
	require.NoError(t, err)
	assert.Equal(t, "1", count)
	total, err := f.GetCellValue(revenueSheetName, "A4")
	require.NoError(t, err)
	assert.Equal(t, "Tổng cộng", total)
}

func TestStatisticsBucketsGormStampedOrdersInBusinessTimezone(t *testing.T) {
	db, fx := setupStatisticsFixture(t)
	catalog := createTestCatalog(t, db, "Samba")

	// 2026-04-01 01:30 越南时间，即 UTC 2026-03-31 18:30
	placedAt := time.Date(2026, 3, 31, 18, 30, 0, 0, time.UTC)
	db.Config.NowFunc = func() time.Time { return placedAt.In(fx.loc) }

	order := &models.Order{
		ID:            "01042026013000",
		TotalPrice:    models.NewMoneyFromInt(100000),
		PaymentMethod: constants.PaymentMethodCashOnDelivery,
		OrderStatus:   constants.OrderStatusProcessing,
	}
	require.NoError(t, db.Create(order).Error)
	require.NoError(t, db.Create(&models.OrderItem{
		OrderID:       order.ID,
		ProductSizeID: catalog.Size.ID,
		Quantity:      1,
		UnitPrice:     models.NewMoneyFromInt(100000),
	}).Error)

	var stored models.Order
	require.NoError(t, db.First(&stored, "id = ?", order.ID).Error)
	assert.True(t, stored.CreatedAt.Equal(placedAt))

	ctx := context.Background()
	april, err := fx.svc.DailyStatistics(ctx, 2026, 4, true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), april[0].TotalOrders)
	assert.True(t, april[0].TotalRevenue.Equal(models.NewMoneyFromInt(100000).Decimal))

	march, err := fx.svc.DailyStatistics(ctx, 2026, 3, true)
	require.NoError(t, err)
	assert.Equal(t, int64(0), march[30].TotalOrders)

	byDay, err := fx.svc.RevenueByRange(ctx, RevenueRangeInput{StartDate: "2026-03-31", EndDate: "2026-04-01", ViewType: "day"}, true)
	require.NoError(t, err)
	require.Len(t, byDay.Data, 2)
	assert.Equal(t, int64(0), byDay.Data[0].OrderCount)
	assert.Equal(t, int64(1), byDay.Data[1].OrderCount)
}
