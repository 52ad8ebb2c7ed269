package report

import (
	"encoding/csv"
	"fmt"
	"strings"

	"cashflow/internal/currency"
)

// MonthCSVHeader is the header row of a monthly export.
const MonthCSVHeader = "date,category,amount,note"

// YearCSVHeader is the header row of a yearly export.
const YearCSVHeader = "month,income,spent,remaining"

// RenderMonthCSV renders a monthly statement: header, one row per
// expense, then a summary section. An empty month still produces a
// well-formed document with a zeroed summary.
func RenderMonthCSV(st MonthStatement, format currency.Formatter, code string) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	if err := w.Write(strings.Split(MonthCSVHeader, ",")); err != nil {
		return "", fmt.Errorf("writing header: %w", err)
	}
	for i, line := range st.Lines {
		row := []string{line.DateISO, line.Category, format(line.Amount, code), line.Note}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	summary := [][]string{
		{},
		{"income", format(st.Summary.Income, code)},
		{"total spent", format(st.Summary.Spent, code)},
		{"remaining", format(st.Summary.Remaining, code)},
	}
	for _, row := range summary {
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("writing summary: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flushing csv: %w", err)
	}
	return sb.String(), nil
}

// RenderYearCSV renders the yearly roll-up: header, one row per month
// present in storage, then a grand-total row.
func RenderYearCSV(st YearStatement, format currency.Formatter, code string) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	if err := w.Write(strings.Split(YearCSVHeader, ",")); err != nil {
		return "", fmt.Errorf("writing header: %w", err)
	}
	for _, row := range st.Rows {
		rec := []string{row.Key, format(row.Income, code), format(row.Spent, code), format(row.Remaining, code)}
		if err := w.Write(rec); err != nil {
			return "", fmt.Errorf("writing row %s: %w", row.Key, err)
		}
	}
	total := []string{"total", format(st.TotalIncome, code), format(st.TotalSpent, code), format(st.TotalRemaining, code)}
	if err := w.Write(total); err != nil {
		return "", fmt.Errorf("writing total row: %w", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flushing csv: %w", err)
	}
	return sb.String(), nil
}
