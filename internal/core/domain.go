package core

import (
	"errors"
	"math"
	"strings"
	"time"
)

const (
	Weekly  Cycle = "weekly"
	Monthly Cycle = "monthly"
	Yearly  Cycle = "yearly"
)

// WeeksPerMonth normalizes a weekly amount to its monthly equivalent.
const WeeksPerMonth = 52.0 / 12.0

type (
	// Cycle is a subscription billing cycle.
	Cycle string

	// Category is a spending bucket within one month. Limit is the
	// optional budget ceiling; nil means no limit is set, which is not
	// the same as a limit of zero.
	Category struct {
		ID    string   `json:"id"`
		Name  string   `json:"name"`
		Limit *float64 `json:"limit,omitempty"`
	}

	// Expense is a single recorded transaction. CategoryID references a
	// category in the same month but is not enforced; dangling
	// references resolve to "Unknown" at read time.
	Expense struct {
		ID         string  `json:"id"`
		Amount     float64 `json:"amount"`
		CategoryID string  `json:"categoryId"`
		Note       string  `json:"note,omitempty"`
		DateISO    string  `json:"dateIso"`
		CreatedAt  string  `json:"createdAt"`
	}

	// Subscription is a recurring charge tracked at ledger level, not
	// scoped to any month.
	Subscription struct {
		ID              string  `json:"id"`
		Name            string  `json:"name"`
		Amount          float64 `json:"amount"`
		BillingCycle    Cycle   `json:"billingCycle"`
		NextBillingDate string  `json:"nextBillingDate,omitempty"`
		CreatedAt       string  `json:"createdAt"`
	}

	// MonthRecord holds one calendar month of the ledger.
	MonthRecord struct {
		Income     float64    `json:"income"`
		Categories []Category `json:"categories"`
		Expenses   []Expense  `json:"expenses"`
	}

	// Document is the full per-user ledger, persisted as one blob.
	Document struct {
		Months        map[string]MonthRecord `json:"months"`
		Subscriptions []Subscription         `json:"subscriptions"`
	}
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrMissingCategory = errors.New("missing category")
	ErrEmptyName       = errors.New("empty name")
	ErrInvalidCycle    = errors.New("invalid billing cycle")
	ErrInvalidDate     = errors.New("invalid date")
)

// Validate checks that the cycle is one of the known values.
func (c Cycle) Validate() error {
	switch c {
	case Weekly, Monthly, Yearly:
		return nil
	default:
		return ErrInvalidCycle
	}
}

// MonthlyFactor converts an amount billed on this cycle to its average
// monthly equivalent.
func (c Cycle) MonthlyFactor() float64 {
	switch c {
	case Weekly:
		return WeeksPerMonth
	case Yearly:
		return 1.0 / 12.0
	default:
		return 1
	}
}

// ValidateAmount rejects non-finite and non-positive amounts before
// they can reach storage.
func ValidateAmount(a float64) error {
	if math.IsNaN(a) || math.IsInf(a, 0) || a <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (s Subscription) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrEmptyName
	}
	if err := ValidateAmount(s.Amount); err != nil {
		return err
	}
	if err := s.BillingCycle.Validate(); err != nil {
		return err
	}
	if s.NextBillingDate != "" {
		if _, err := time.Parse("2006-01-02", s.NextBillingDate); err != nil {
			return ErrInvalidDate
		}
	}
	return nil
}
