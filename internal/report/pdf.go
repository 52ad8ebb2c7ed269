package report

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"

	"cashflow/internal/currency"
)

// RenderMonthPDF renders a monthly statement directly to PDF bytes,
// with the same content and ordering as the CSV and HTML exports.
func RenderMonthPDF(st MonthStatement, format currency.Formatter, code string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(st.Label, false)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, tr(st.Label))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(60, 7, "Income")
	pdf.Cell(0, 7, tr(format(st.Summary.Income, code)))
	pdf.Ln(7)
	pdf.Cell(60, 7, "Total spent")
	pdf.Cell(0, 7, tr(format(st.Summary.Spent, code)))
	pdf.Ln(7)
	pdf.Cell(60, 7, "Remaining")
	pdf.Cell(0, 7, tr(format(st.Summary.Remaining, code)))
	pdf.Ln(12)

	if len(st.Categories) > 0 {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.Cell(0, 8, "By category")
		pdf.Ln(9)

		pdf.SetFont("Helvetica", "B", 11)
		pdf.Cell(90, 7, "Category")
		pdf.Cell(40, 7, "Spent")
		pdf.Ln(7)

		pdf.SetFont("Helvetica", "", 11)
		for _, cat := range st.Categories {
			pdf.Cell(90, 7, tr(cat.Name))
			pdf.Cell(40, 7, tr(format(cat.Spent, code)))
			pdf.Ln(7)
		}
		pdf.Ln(5)
	}

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Transactions")
	pdf.Ln(9)

	if len(st.Lines) == 0 {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.Cell(0, 7, "No transactions recorded.")
		pdf.Ln(7)
	} else {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.Cell(28, 7, "Date")
		pdf.Cell(45, 7, "Category")
		pdf.Cell(32, 7, "Amount")
		pdf.Cell(0, 7, "Note")
		pdf.Ln(7)

		pdf.SetFont("Helvetica", "", 11)
		for _, line := range st.Lines {
			pdf.Cell(28, 7, line.DateISO)
			pdf.Cell(45, 7, tr(line.Category))
			pdf.Cell(32, 7, tr(format(line.Amount, code)))
			pdf.Cell(0, 7, tr(line.Note))
			pdf.Ln(7)
		}
	}

	return pdfBytes(pdf)
}

// RenderYearPDF renders the yearly roll-up to PDF bytes.
func RenderYearPDF(st YearStatement, format currency.Formatter, code string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("%d", st.Year), false)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, fmt.Sprintf("%d", st.Year))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(45, 7, "Month")
	pdf.Cell(40, 7, "Income")
	pdf.Cell(40, 7, "Spent")
	pdf.Cell(0, 7, "Remaining")
	pdf.Ln(7)

	pdf.SetFont("Helvetica", "", 11)
	for _, row := range st.Rows {
		pdf.Cell(45, 7, tr(row.Label))
		pdf.Cell(40, 7, tr(format(row.Income, code)))
		pdf.Cell(40, 7, tr(format(row.Spent, code)))
		pdf.Cell(0, 7, tr(format(row.Remaining, code)))
		pdf.Ln(7)
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(45, 7, "Total")
	pdf.Cell(40, 7, tr(format(st.TotalIncome, code)))
	pdf.Cell(40, 7, tr(format(st.TotalSpent, code)))
	pdf.Cell(0, 7, tr(format(st.TotalRemaining, code)))
	pdf.Ln(7)

	return pdfBytes(pdf)
}

func pdfBytes(pdf *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
