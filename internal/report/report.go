// Package report renders the order report as a paginated PDF table.
package report

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"github.com/sarmatov/shopadmin/internal/repo"
)

const currencySuffix = " USD"

var (
	colWidths = [6]float64{15, 50, 55, 25, 15, 30}
	colTitles = [6]string{"ID", "User", "Product", "Unit Price", "Quantity", "Line Total"}
	// Text columns left-aligned, numeric columns right-aligned.
	colAligns = [6]string{"R", "L", "L", "R", "R", "R"}
)

type Generator struct {
	// FontPath optionally points at a UTF-8 TTF font. Empty uses the
	// built-in core font. A configured but unreadable font fails
	// generation before any output is produced.
	FontPath string
}

// LineTotal computes unit price times quantity in minor-unit-exact
// decimal arithmetic.
func LineTotal(row repo.ReportRow) decimal.Decimal {
	unit := decimal.NewFromFloat(row.UnitPrice).Round(2)
	return unit.Mul(decimal.NewFromInt(int64(row.Quantity)))
}

// GrandTotal sums all line totals to the cent.
func GrandTotal(rows []repo.ReportRow) decimal.Decimal {
	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(LineTotal(row))
	}
	return total
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2) + currencySuffix
}

// Build renders the rows into a complete PDF document. An empty row set
// still yields headers and a zero grand total.
func (g *Generator) Build(rows []repo.ReportRow, generatedAt time.Time) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")

	family := "Helvetica"
	if g.FontPath != "" {
		if _, err := os.Stat(g.FontPath); err != nil {
			return nil, fmt.Errorf("report font: %w", err)
		}
		family = "report"
		pdf.AddUTF8Font(family, "", g.FontPath)
		pdf.AddUTF8Font(family, "B", g.FontPath)
	}

	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pdf.SetFont(family, "B", 14)
	pdf.CellFormat(190, 10, "Orders Report", "", 1, "C", false, 0, "")
	pdf.SetFont(family, "", 9)
	pdf.CellFormat(190, 6, "Generated at "+generatedAt.UTC().Format("2006-01-02 15:04:05 MST"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	header := func() {
		pdf.SetFont(family, "B", 10)
		for i, title := range colTitles {
			pdf.CellFormat(colWidths[i], 8, title, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont(family, "", 10)
	}
	header()

	_, pageH := pdf.GetPageSize()
	bottom := pageH - 20

	for _, row := range rows {
		if pdf.GetY()+8 > bottom {
			pdf.AddPage()
			header()
		}

		unit := decimal.NewFromFloat(row.UnitPrice).Round(2)
		cells := [6]string{
			fmt.Sprintf("%d", row.OrderID),
			row.UserName,
			row.ProductName,
			money(unit),
			fmt.Sprintf("%d", row.Quantity),
			money(LineTotal(row)),
		}
		for i, cell := range cells {
			pdf.CellFormat(colWidths[i], 8, cell, "1", 0, colAligns[i], false, 0, "")
		}
		pdf.Ln(-1)
	}

	if pdf.GetY()+8 > bottom {
		pdf.AddPage()
		header()
	}
	pdf.SetFont(family, "B", 10)
	pdf.CellFormat(colWidths[0]+colWidths[1]+colWidths[2]+colWidths[3]+colWidths[4], 8, "Grand Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(colWidths[5], 8, money(GrandTotal(rows)), "1", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return buf.Bytes(), nil
}
