package pdf

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/hanseo-dev/siteoffice/internal/model"
)

// ContractGenerator renders a contract as a printable A4 document using a
// UTF-8 font loaded from disk so Korean text survives.
type ContractGenerator struct {
	fontName string
	fontData []byte
}

func NewContractGenerator(fontPath, fontName string) (*ContractGenerator, error) {
	data, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("read pdf font %q: %w", fontPath, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("pdf font %q is empty", fontPath)
	}
	return &ContractGenerator{fontName: fontName, fontData: data}, nil
}

func (g *ContractGenerator) Generate(detail model.ContractDetail) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pdf.AddUTF8FontFromBytes(g.fontName, "", g.fontData)
	pdf.AddUTF8FontFromBytes(g.fontName, "B", g.fontData)

	pdf.SetFont(g.fontName, "B", 18)
	pdf.CellFormat(0, 12, "공 사 계 약 서", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont(g.fontName, "", 11)
	infoRow(pdf, g.fontName, "계약번호", detail.ContractNo)
	infoRow(pdf, g.fontName, "공 사 명", detail.Title)
	infoRow(pdf, g.fontName, "발 주 처", detail.ClientName)
	infoRow(pdf, g.fontName, "계약금액", formatWon(detail.TotalAmount))
	infoRow(pdf, g.fontName, "공사기간", formatPeriod(detail.StartDate, detail.EndDate))
	pdf.Ln(6)

	if body := strings.TrimSpace(detail.BodyText); body != "" {
		pdf.SetFont(g.fontName, "B", 12)
		pdf.CellFormat(0, 8, "계약 내용", "", 1, "L", false, 0, "")
		pdf.SetFont(g.fontName, "", 10)
		pdf.MultiCell(0, 5.5, body, "", "L", false)
		pdf.Ln(4)
	}

	if len(detail.ProgressHistory) > 0 {
		pdf.SetFont(g.fontName, "B", 12)
		pdf.CellFormat(0, 8, "기성 청구 내역", "", 1, "L", false, 0, "")

		widths := []float64{35, 30, 40, 30, 35}
		drawRow(pdf, g.fontName, []string{"기성번호", "귀속월", "청구금액", "누적기성율", "비고"}, widths, true)
		for _, p := range detail.ProgressHistory {
			drawRow(pdf, g.fontName, []string{
				p.ProgressNo,
				p.ProgressMonth,
				formatWon(p.ProgressAmount),
				formatRate(p.ProgressRate),
				p.Note,
			}, widths, false)
		}

		pdf.Ln(2)
		pdf.SetFont(g.fontName, "", 10)
		pdf.CellFormat(0, 6, fmt.Sprintf("누적 청구액: %s / 잔액: %s", formatWon(detail.Summary.SumPaid), formatWon(detail.Summary.Balance)), "", 1, "R", false, 0, "")
	}

	pdf.Ln(10)
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, "위 계약 내용을 확인하고 상호 서명 날인합니다.", "", 1, "L", false, 0, "")
	pdf.Ln(8)
	signatureLine(pdf, g.fontName, "발주자", detail.ClientName)
	signatureLine(pdf, g.fontName, "수급자", "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func infoRow(pdf *gofpdf.Fpdf, fontName, label, value string) {
	pdf.SetFont(fontName, "B", 11)
	pdf.CellFormat(35, 8, label, "1", 0, "C", false, 0, "")
	pdf.SetFont(fontName, "", 11)
	pdf.CellFormat(135, 8, " "+value, "1", 1, "L", false, 0, "")
}

func drawRow(pdf *gofpdf.Fpdf, fontName string, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(fontName, style, 9)
	for i, col := range cols {
		align := "L"
		if header || i == 1 || i == 3 {
			align = "C"
		} else if i == 2 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 7, col, "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func signatureLine(pdf *gofpdf.Fpdf, fontName, role, name string) {
	pdf.SetFont(fontName, "", 11)
	pdf.CellFormat(0, 8, fmt.Sprintf("%s : %s                         (인)", role, name), "", 1, "R", false, 0, "")
}

func formatWon(amount int64) string {
	return "₩ " + groupDigits(amount)
}

func groupDigits(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	var out strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(r)
	}
	if neg {
		return "-" + out.String()
	}
	return out.String()
}

func formatRate(rate *float64) string {
	if rate == nil {
		return "-"
	}
	return strconv.FormatFloat(*rate, 'f', 2, 64) + "%"
}

func formatPeriod(start, end string) string {
	switch {
	case start == "" && end == "":
		return "-"
	case end == "":
		return start + " ~"
	case start == "":
		return "~ " + end
	}
	return start + " ~ " + end
}
