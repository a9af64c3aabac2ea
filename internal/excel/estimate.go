package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/hanseo-dev/siteoffice/internal/model"
)

// EstimateGenerator renders an estimate as the fixed-layout "견적내역서"
// workbook.
type EstimateGenerator struct{}

func NewEstimateGenerator() *EstimateGenerator {
	return &EstimateGenerator{}
}

func (g *EstimateGenerator) Generate(estimate model.Estimate, items []model.EstimateItem) ([]byte, error) {
	file := excelize.NewFile()

	sheet := "견적서"
	file.SetSheetName("Sheet1", sheet)

	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	widths := []float64{22, 16, 7, 7, 10, 14, 10, 14, 10, 14, 10, 15, 15}
	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		_ = file.SetColWidth(sheet, col, col, w)
	}

	_ = file.MergeCell(sheet, "A1", "M1")
	set("A1", "견    적    내    역    서")

	set("A3", "공사명 :")
	_ = file.MergeCell(sheet, "B3", "M3")
	set("B3", estimate.Title)

	set("A4", "발주처 :")
	_ = file.MergeCell(sheet, "B4", "M4")
	set("B4", estimate.ClientName)

	set("A5", "견적번호 :")
	_ = file.MergeCell(sheet, "B5", "M5")
	set("B5", estimate.EstimateNo)

	// Two-tier header: per-category 단가/금액 pairs under merged group cells.
	headerTop := 7
	groups := []struct {
		label      string
		start, end string
	}{
		{"재료비", "E", "F"},
		{"노무비", "G", "H"},
		{"경비", "I", "J"},
		{"합계", "K", "L"},
	}
	singles := map[string]string{"A": "품명", "B": "규격", "C": "단위", "D": "수량", "M": "비고"}
	for col, label := range singles {
		_ = file.MergeCell(sheet, fmt.Sprintf("%s%d", col, headerTop), fmt.Sprintf("%s%d", col, headerTop+1))
		set(fmt.Sprintf("%s%d", col, headerTop), label)
	}
	for _, grp := range groups {
		_ = file.MergeCell(sheet, fmt.Sprintf("%s%d", grp.start, headerTop), fmt.Sprintf("%s%d", grp.end, headerTop))
		set(fmt.Sprintf("%s%d", grp.start, headerTop), grp.label)
		set(fmt.Sprintf("%s%d", grp.start, headerTop+1), "단가")
		set(fmt.Sprintf("%s%d", grp.end, headerTop+1), "금액")
	}

	dataTop := headerTop + 2
	for i, item := range items {
		row := dataTop + i
		set(fmt.Sprintf("A%d", row), item.ItemName)
		set(fmt.Sprintf("B%d", row), item.Spec)
		set(fmt.Sprintf("C%d", row), item.Unit)
		if item.Qty != 0 {
			set(fmt.Sprintf("D%d", row), item.Qty)
		}
		setAmount(file, sheet, fmt.Sprintf("E%d", row), item.MaterialUnit)
		setAmount(file, sheet, fmt.Sprintf("F%d", row), item.MaterialAmount)
		setAmount(file, sheet, fmt.Sprintf("G%d", row), item.LaborUnit)
		setAmount(file, sheet, fmt.Sprintf("H%d", row), item.LaborAmount)
		setAmount(file, sheet, fmt.Sprintf("I%d", row), item.ExpenseUnit)
		setAmount(file, sheet, fmt.Sprintf("J%d", row), item.ExpenseAmount)
		setAmount(file, sheet, fmt.Sprintf("K%d", row), item.TotalUnit)
		setAmount(file, sheet, fmt.Sprintf("L%d", row), item.TotalAmount)
		set(fmt.Sprintf("M%d", row), item.Note)
	}

	totalRow := dataTop + len(items)
	_ = file.MergeCell(sheet, fmt.Sprintf("A%d", totalRow), fmt.Sprintf("K%d", totalRow))
	set(fmt.Sprintf("A%d", totalRow), "합    계")
	set(fmt.Sprintf("L%d", totalRow), estimate.TotalAmount)

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func setAmount(file *excelize.File, sheet, cell string, value int64) {
	if value == 0 {
		return
	}
	_ = file.SetCellValue(sheet, cell, value)
}
