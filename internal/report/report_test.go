package report

import (
	"bytes"
	"strings"
	"testing"

	"cashflow/internal/core"
	"cashflow/internal/currency"
)

func limitOf(v float64) *float64 { return &v }

func sampleMonth() core.MonthRecord {
	return core.MonthRecord{
		Income: 2000,
		Categories: []core.Category{
			{ID: "food", Name: "Food", Limit: limitOf(300)},
			{ID: "transport", Name: "Transport"},
		},
		Expenses: []core.Expense{
			{ID: "e2", Amount: 30, CategoryID: "food", DateISO: "2024-03-10", CreatedAt: "2024-03-10T12:00:00Z", Note: "lunch, with friends"},
			{ID: "e1", Amount: 50, CategoryID: "food", DateISO: "2024-03-05", CreatedAt: "2024-03-05T09:00:00Z"},
			{ID: "e3", Amount: 20, CategoryID: "transport", DateISO: "2024-03-05", CreatedAt: "2024-03-05T18:00:00Z"},
			{ID: "e4", Amount: 99, CategoryID: "gone", DateISO: "2024-03-20", CreatedAt: "2024-03-20T08:00:00Z"},
		},
	}
}

func TestBuildMonthStatement(t *testing.T) {
	st := BuildMonthStatement("2024-03", sampleMonth())

	if st.Label != "March 2024" {
		t.Fatalf("label = %q", st.Label)
	}
	if st.Summary.Income != 2000 || st.Summary.Spent != 199 || st.Summary.Remaining != 1801 {
		t.Fatalf("summary = %+v", st.Summary)
	}

	// Chronological ascending, earlier CreatedAt first on same-day ties.
	var order []string
	for _, l := range st.Lines {
		order = append(order, l.DateISO)
	}
	want := []string{"2024-03-05", "2024-03-05", "2024-03-10", "2024-03-20"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("line order = %v, want %v", order, want)
		}
	}
	if st.Lines[0].Amount != 50 || st.Lines[1].Amount != 20 {
		t.Fatalf("same-day tie broken wrong: %+v", st.Lines[:2])
	}

	// Dangling category ids label as Unknown in the transaction list
	// but stay out of the breakdown.
	if st.Lines[3].Category != UnknownCategory {
		t.Fatalf("dangling line category = %q", st.Lines[3].Category)
	}
	if len(st.Categories) != 2 {
		t.Fatalf("breakdown rows = %+v", st.Categories)
	}
	if st.Categories[0].Name != "Food" || st.Categories[0].Spent != 80 {
		t.Fatalf("breakdown not sorted by descending spend: %+v", st.Categories)
	}
}

func TestBuildMonthStatementEmpty(t *testing.T) {
	st := BuildMonthStatement("2024-01", core.MonthRecord{})
	if len(st.Lines) != 0 || len(st.Categories) != 0 {
		t.Fatalf("empty month statement not empty: %+v", st)
	}
	if st.Summary.Income != 0 || st.Summary.Spent != 0 || st.Summary.Remaining != 0 {
		t.Fatalf("summary = %+v", st.Summary)
	}
}

func TestBuildYearStatement(t *testing.T) {
	months := map[string]core.MonthRecord{
		"2024-03": {Income: 2000, Expenses: []core.Expense{{Amount: 500}}},
		"2024-01": {Income: 1000, Expenses: []core.Expense{{Amount: 250}}},
	}
	st := BuildYearStatement(2024, months)

	if len(st.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(st.Rows))
	}
	// Calendar order, not map order; absent months have no row.
	if st.Rows[0].Key != "2024-01" || st.Rows[1].Key != "2024-03" {
		t.Fatalf("row order = %+v", st.Rows)
	}
	if st.TotalIncome != 3000 || st.TotalSpent != 750 || st.TotalRemaining != 2250 {
		t.Fatalf("totals = %+v", st)
	}
}

func TestRenderMonthCSV(t *testing.T) {
	st := BuildMonthStatement("2024-03", sampleMonth())
	out, err := RenderMonthCSV(st, currency.Format, "USD")
	if err != nil {
		t.Fatalf("RenderMonthCSV: %v", err)
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if lines[0] != "date,category,amount,note" {
		t.Fatalf("header = %q", lines[0])
	}
	if lines[1] != "2024-03-05,Food,$50.00," {
		t.Fatalf("first row = %q", lines[1])
	}
	// Notes with embedded commas get quoted, nothing else does.
	if !strings.Contains(out, `"lunch, with friends"`) {
		t.Fatalf("comma note not quoted:\n%s", out)
	}
	if lines[len(lines)-1] != "remaining,$1801.00" {
		t.Fatalf("last row = %q", lines[len(lines)-1])
	}
	if !strings.Contains(out, "income,$2000.00") || !strings.Contains(out, "total spent,$199.00") {
		t.Fatalf("summary section missing:\n%s", out)
	}
}

func TestRenderMonthCSVEmpty(t *testing.T) {
	st := BuildMonthStatement("2024-01", core.MonthRecord{})
	out, err := RenderMonthCSV(st, currency.Format, "USD")
	if err != nil {
		t.Fatalf("RenderMonthCSV: %v", err)
	}
	if !strings.HasPrefix(out, "date,category,amount,note\n") {
		t.Fatalf("missing header:\n%s", out)
	}
	for _, want := range []string{"income,$0.00", "total spent,$0.00", "remaining,$0.00"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q:\n%s", want, out)
		}
	}
}

func TestRenderYearCSV(t *testing.T) {
	st := BuildYearStatement(2024, map[string]core.MonthRecord{
		"2024-02": {Income: 1000, Expenses: []core.Expense{{Amount: 400}}},
	})
	out, err := RenderYearCSV(st, currency.Format, "EUR")
	if err != nil {
		t.Fatalf("RenderYearCSV: %v", err)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if lines[0] != "month,income,spent,remaining" {
		t.Fatalf("header = %q", lines[0])
	}
	if lines[1] != "2024-02,€1000.00,€400.00,€600.00" {
		t.Fatalf("month row = %q", lines[1])
	}
	if lines[2] != "total,€1000.00,€400.00,€600.00" {
		t.Fatalf("total row = %q", lines[2])
	}
	if len(lines) != 3 {
		t.Fatalf("unwritten months must not produce rows:\n%s", out)
	}
}

func TestRenderMonthHTML(t *testing.T) {
	st := BuildMonthStatement("2024-03", sampleMonth())
	out, err := RenderMonthHTML(st, currency.Format, "USD")
	if err != nil {
		t.Fatalf("RenderMonthHTML: %v", err)
	}
	for _, want := range []string{"<h1>March 2024</h1>", "$2000.00", "$199.00", "$1801.00", "Unknown", "Food"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in html", want)
		}
	}

	// CSV and HTML must present transactions in the same order.
	foodIdx := strings.Index(out, "2024-03-05")
	lastIdx := strings.Index(out, "2024-03-20")
	if foodIdx == -1 || lastIdx == -1 || foodIdx > lastIdx {
		t.Fatal("transaction order diverges from csv")
	}
}

func TestRenderMonthHTMLEmpty(t *testing.T) {
	st := BuildMonthStatement("2024-01", core.MonthRecord{})
	out, err := RenderMonthHTML(st, currency.Format, "USD")
	if err != nil {
		t.Fatalf("RenderMonthHTML: %v", err)
	}
	if !strings.Contains(out, "No transactions recorded.") {
		t.Fatal("empty month should render placeholder")
	}
}

func TestRenderYearHTML(t *testing.T) {
	st := BuildYearStatement(2024, map[string]core.MonthRecord{
		"2024-05": {Income: 100},
	})
	out, err := RenderYearHTML(st, currency.Format, "GBP")
	if err != nil {
		t.Fatalf("RenderYearHTML: %v", err)
	}
	if !strings.Contains(out, "May 2024") || !strings.Contains(out, "£100.00") {
		t.Fatalf("year html missing content:\n%s", out)
	}
}

func TestRenderPDF(t *testing.T) {
	st := BuildMonthStatement("2024-03", sampleMonth())
	b, err := RenderMonthPDF(st, currency.Format, "USD")
	if err != nil {
		t.Fatalf("RenderMonthPDF: %v", err)
	}
	if !bytes.HasPrefix(b, []byte("%PDF")) {
		t.Fatalf("not a pdf: %q", b[:8])
	}

	empty, err := RenderMonthPDF(BuildMonthStatement("2024-01", core.MonthRecord{}), currency.Format, "USD")
	if err != nil {
		t.Fatalf("empty month pdf: %v", err)
	}
	if len(empty) == 0 {
		t.Fatal("empty month produced no pdf")
	}

	yb, err := RenderYearPDF(BuildYearStatement(2024, nil), currency.Format, "USD")
	if err != nil {
		t.Fatalf("RenderYearPDF: %v", err)
	}
	if !bytes.HasPrefix(yb, []byte("%PDF")) {
		t.Fatal("year export is not a pdf")
	}
}
