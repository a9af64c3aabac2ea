package excel

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/hanseo-dev/siteoffice/internal/model"
)

var clientColumns = []struct {
	header string
	width  float64
}{
	{"거래처명", 24},
	{"사업자번호", 16},
	{"대표자", 12},
	{"전화번호", 16},
	{"이메일", 24},
	{"주소", 36},
	{"메모", 30},
}

// ClientGenerator renders the client roster as a flat one-sheet workbook and
// parses the same layout back for bulk import.
type ClientGenerator struct{}

func NewClientGenerator() *ClientGenerator {
	return &ClientGenerator{}
}

func (g *ClientGenerator) Generate(clients []model.Client) ([]byte, error) {
	file := excelize.NewFile()

	sheet := "거래처"
	file.SetSheetName("Sheet1", sheet)

	for i, col := range clientColumns {
		name, _ := excelize.ColumnNumberToName(i + 1)
		_ = file.SetColWidth(sheet, name, name, col.width)
		_ = file.SetCellValue(sheet, fmt.Sprintf("%s1", name), col.header)
	}

	for i, client := range clients {
		row := i + 2
		values := []string{
			client.Name, client.BizNo, client.CeoName,
			client.Phone, client.Email, client.Address, client.Memo,
		}
		for j, v := range values {
			name, _ := excelize.ColumnNumberToName(j + 1)
			_ = file.SetCellValue(sheet, fmt.Sprintf("%s%d", name, row), v)
		}
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ParseClients reads an uploaded roster workbook. The first row is treated as
// the header and skipped. Rows with an empty first column are ignored.
func (g *ClientGenerator) ParseClients(content []byte) ([]model.Client, error) {
	file, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer file.Close()

	sheet := file.GetSheetName(0)
	rows, err := file.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	var clients []model.Client
	for i, row := range rows {
		if i == 0 {
			continue
		}
		cell := func(idx int) string {
			if idx < len(row) {
				return strings.TrimSpace(row[idx])
			}
			return ""
		}
		name := cell(0)
		if name == "" {
			continue
		}
		clients = append(clients, model.Client{
			Name:    name,
			BizNo:   cell(1),
			CeoName: cell(2),
			Phone:   cell(3),
			Email:   cell(4),
			Address: cell(5),
			Memo:    cell(6),
		})
	}
	return clients, nil
}
