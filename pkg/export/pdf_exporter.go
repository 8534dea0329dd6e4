package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// PDFExporter renders enrollment outcome tables. The first column is
// treated as the rank column and kept narrow; the remaining columns share
// the rest of the page width.
type PDFExporter struct{}

func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

const (
	pdfTableWidth = 190.0
	pdfRankWidth  = 25.0
)

// Render produces an A4 document with a title, a summary line and the
// ranked table. Alternate rows are shaded for readability.
func (e *PDFExporter) Render(data Dataset, title string) ([]byte, error) {
	if len(data.Columns) == 0 {
		return nil, fmt.Errorf("pdf requires at least one column")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	if title == "" {
		title = "Enrollment Outcome"
	}
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "I", 9)
	summary := fmt.Sprintf("%d enrolled - generated %s", len(data.Rows), time.Now().UTC().Format("2006-01-02 15:04 UTC"))
	pdf.CellFormat(0, 6, summary, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	widths := columnWidths(len(data.Columns))
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, col := range data.Columns {
		pdf.CellFormat(widths[i], 8, col, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	pdf.SetFillColor(245, 245, 245)
	for rowIdx, row := range data.Rows {
		shaded := rowIdx%2 == 1
		for i := range data.Columns {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			align := "L"
			if i == 0 {
				align = "C"
			}
			pdf.CellFormat(widths[i], 7, cell, "1", 0, align, shaded, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func columnWidths(n int) []float64 {
	widths := make([]float64, n)
	if n == 1 {
		widths[0] = pdfTableWidth
		return widths
	}
	widths[0] = pdfRankWidth
	rest := (pdfTableWidth - pdfRankWidth) / float64(n-1)
	for i := 1; i < n; i++ {
		widths[i] = rest
	}
	return widths
}
