package service

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const revenueSheetName = "DoanhThu"

// RevenueExport 营收导出文件
type RevenueExport struct {
	FileName string
	Content  []byte
}

// ExportRevenueRange 导出日期区间营收为 XLSX
func (s *StatisticsService) ExportRevenueRange(ctx context.Context, input RevenueRangeInput) (*RevenueExport, error) {
	result, err := s.RevenueByRange(ctx, input, false)
	if err != nil {
		return nil, err
	}
	f, err := buildRevenueWorkbook(result)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return &RevenueExport{
		FileName: fmt.Sprintf("doanh-thu_%s_%s_%s.xlsx", result.StartDate, result.EndDate, result.ViewType),
		Content:  buf.Bytes(),
	}, nil
}

func buildRevenueWorkbook(result *RevenueRangeResult) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", revenueSheetName); err != nil {
		return nil, err
	}

	headers := []string{"Thời gian", "Doanh thu (VND)", "Số đơn hàng"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(revenueSheetName, cell, header); err != nil {
			return nil, err
		}
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	if err == nil {
		_ = f.SetCellStyle(revenueSheetName, "A1", "C1", headerStyle)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 3})
	if err != nil {
		return nil, err
	}

	row := 2
	for _, bucket := range result.Data {
		_ = f.SetCellValue(revenueSheetName, fmt.Sprintf("A%d", row), bucket.Date)
		_ = f.SetCellValue(revenueSheetName, fmt.Sprintf("B%d", row), bucket.Revenue.InexactFloat64())
		_ = f.SetCellValue(revenueSheetName, fmt.Sprintf("C%d", row), bucket.OrderCount)
		row++
	}
	_ = f.SetCellValue(revenueSheetName, fmt.Sprintf("A%d", row), "Tổng cộng")
	_ = f.SetCellValue(revenueSheetName, fmt.Sprintf("B%d", row), result.TotalRevenue.InexactFloat64())
	_ = f.SetCellStyle(revenueSheetName, "B2", fmt.Sprintf("B%d", row), moneyStyle)
	_ = f.SetColWidth(revenueSheetName, "A", "A", 16)
	_ = f.SetColWidth(revenueSheetName, "B", "C", 20)
	return f, nil
}
