// Package report renders ledger snapshots into portable exports: CSV
// text, an HTML document suitable for PDF conversion, and PDF bytes.
// Renderers are pure; callers own file I/O and sharing. Amount
// formatting is always delegated to the caller-supplied currency
// formatter, never hardcoded here.
package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"cashflow/internal/budget"
	"cashflow/internal/core"
	"cashflow/internal/dates"
)

// UnknownCategory labels expense lines whose category id no longer
// resolves. Such expenses still appear in the transaction list but are
// excluded from the category breakdown.
const UnknownCategory = "Unknown"

type (
	// Line is one expense in a monthly statement.
	Line struct {
		DateISO  string
		Category string
		Amount   float64
		Note     string
	}

	// CategoryRow is one row of the category breakdown.
	CategoryRow struct {
		Name  string
		Spent float64
	}

	// MonthStatement is the render-ready view of one month. Lines are
	// chronological ascending; the CSV and PDF renderers share this
	// ordering so the two formats stay consistent.
	MonthStatement struct {
		Key        string
		Label      string
		Summary    budget.Summary
		Categories []CategoryRow
		Lines      []Line
	}

	// YearRow is one month's roll-up in a yearly statement.
	YearRow struct {
		Key       string
		Label     string
		Income    float64
		Spent     float64
		Remaining float64
	}

	// YearStatement covers exactly the months present in storage for a
	// year; months never created have no row.
	YearStatement struct {
		Year           int
		Rows           []YearRow
		TotalIncome    float64
		TotalSpent     float64
		TotalRemaining float64
	}
)

// BuildMonthStatement derives the statement for one month record.
// Works on any month, including an empty one.
func BuildMonthStatement(key string, month core.MonthRecord) MonthStatement {
	names := make(map[string]string, len(month.Categories))
	for _, cat := range month.Categories {
		names[cat.ID] = cat.Name
	}

	// Chronological ascending by calendar date, creation time on ties.
	ordered := append([]core.Expense(nil), month.Expenses...)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].DateISO != ordered[j].DateISO {
			return ordered[i].DateISO < ordered[j].DateISO
		}
		return ordered[i].CreatedAt < ordered[j].CreatedAt
	})

	lines := make([]Line, 0, len(ordered))
	for _, e := range ordered {
		name, ok := names[e.CategoryID]
		if !ok {
			name = UnknownCategory
		}
		lines = append(lines, Line{
			DateISO:  e.DateISO,
			Category: name,
			Amount:   e.Amount,
			Note:     e.Note,
		})
	}

	var cats []CategoryRow
	for _, cs := range budget.CategoriesWithSpent(month) {
		if cs.Spent > 0 {
			cats = append(cats, CategoryRow{Name: cs.Name, Spent: cs.Spent})
		}
	}
	sort.SliceStable(cats, func(i, j int) bool {
		if cats[i].Spent != cats[j].Spent {
			return cats[i].Spent > cats[j].Spent
		}
		return cats[i].Name < cats[j].Name
	})

	return MonthStatement{
		Key:        key,
		Label:      dates.MonthLabel(key),
		Summary:    budget.Summarize(month),
		Categories: cats,
		Lines:      lines,
	}
}

// BuildYearStatement derives the yearly roll-up from the sparse month
// map, in calendar order.
func BuildYearStatement(year int, months map[string]core.MonthRecord) YearStatement {
	st := YearStatement{Year: year}
	income, spent := decimal.Zero, decimal.Zero
	for _, key := range dates.MonthKeysOfYear(year) {
		month, ok := months[key]
		if !ok {
			continue
		}
		sum := budget.Summarize(month)
		st.Rows = append(st.Rows, YearRow{
			Key:       key,
			Label:     dates.MonthLabel(key),
			Income:    sum.Income,
			Spent:     sum.Spent,
			Remaining: sum.Remaining,
		})
		income = income.Add(decimal.NewFromFloat(sum.Income))
		spent = spent.Add(decimal.NewFromFloat(sum.Spent))
	}
	st.TotalIncome, _ = income.Round(2).Float64()
	st.TotalSpent, _ = spent.Round(2).Float64()
	st.TotalRemaining, _ = income.Sub(spent).Round(2).Float64()
	return st
}
