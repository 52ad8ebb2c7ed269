// Package budget derives spend totals, per-category breakdowns and
// subscription costs from ledger snapshots. Everything here is pure:
// no I/O, no mutation of inputs, deterministic output.
//
// Sums run through decimal arithmetic and round half-up to two places
// so derived totals always match their displayed form. Non-finite
// amounts are coerced to zero at this boundary and never propagate.
package budget

import (
	"math"

	"github.com/shopspring/decimal"

	"cashflow/internal/core"
)

type (
	// CategorySpent is a category augmented with its derived spend.
	// Remaining is nil when the category has no limit set; a limit of
	// zero would mean something different.
	CategorySpent struct {
		core.Category
		Spent      float64
		Remaining  *float64
		OverBudget bool
	}

	// Summary is the home-level view of one month. Never persisted,
	// always recomputed.
	Summary struct {
		Income    float64
		Spent     float64
		Remaining float64
	}
)

// SumExpenses totals expense amounts, treating non-finite amounts as 0.
// A nil or empty slice sums to 0.
func SumExpenses(expenses []core.Expense) float64 {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(dec(e.Amount))
	}
	return round2(total)
}

// CategorySpend sums expenses per category id. Expenses whose category
// id matches no key still contribute to their own id's bucket; callers
// joining against the category list decide what to do with danglers.
func CategorySpend(expenses []core.Expense) map[string]float64 {
	totals := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		totals[e.CategoryID] = totals[e.CategoryID].Add(dec(e.Amount))
	}
	out := make(map[string]float64, len(totals))
	for id, d := range totals {
		out[id] = round2(d)
	}
	return out
}

// CategoriesWithSpent joins the month's categories with their derived
// spend. Expenses referencing no known category are excluded from the
// breakdown entirely rather than bucketed into a fallback category.
func CategoriesWithSpent(month core.MonthRecord) []CategorySpent {
	spend := CategorySpend(month.Expenses)
	out := make([]CategorySpent, 0, len(month.Categories))
	for _, cat := range month.Categories {
		cs := CategorySpent{Category: cat, Spent: spend[cat.ID]}
		if cat.Limit != nil {
			remaining := round2(dec(*cat.Limit).Sub(dec(cs.Spent)))
			cs.Remaining = &remaining
			cs.OverBudget = cs.Spent > *cat.Limit
		}
		out = append(out, cs)
	}
	return out
}

// MonthlySubscriptionTotal normalizes every subscription to its average
// monthly cost and sums them, regardless of billing cycle.
func MonthlySubscriptionTotal(subs []core.Subscription) float64 {
	total := decimal.Zero
	for _, sub := range subs {
		monthly := dec(sub.Amount).Mul(dec(sub.BillingCycle.MonthlyFactor()))
		total = total.Add(monthly)
	}
	return round2(total)
}

// MonthlyCost is one subscription's average monthly equivalent.
func MonthlyCost(sub core.Subscription) float64 {
	return round2(dec(sub.Amount).Mul(dec(sub.BillingCycle.MonthlyFactor())))
}

// Summarize computes the income / spent / remaining triple for a month.
func Summarize(month core.MonthRecord) Summary {
	income := dec(month.Income)
	spent := dec(SumExpenses(month.Expenses))
	return Summary{
		Income:    round2(income),
		Spent:     round2(spent),
		Remaining: round2(income.Sub(spent)),
	}
}

// dec converts a float to decimal, coercing NaN and infinities to zero.
func dec(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

func round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}
