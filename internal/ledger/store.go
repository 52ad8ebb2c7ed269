// Package ledger is the single source of truth for a user's financial
// document. Every operation is a read-modify-write of the whole
// document against the blob store; when two mutations for the same user
// race, the later write wins. That is the accepted consistency model
// for a single-device writer and is deliberately not papered over with
// locking here.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"cashflow/internal/blob"
	"cashflow/internal/budget"
	"cashflow/internal/core"
	"cashflow/internal/dates"
)

// ErrStorage marks blob store failures surfaced to callers. Reads
// recover from corrupt or missing documents by substituting defaults;
// transport failures and write failures do not recover.
var ErrStorage = errors.New("ledger storage failure")

// DataKeyPrefix prefixes the per-user document key in the blob store.
const DataKeyPrefix = "data:"

// DataKey returns the blob key holding userID's ledger document.
func DataKey(userID string) string {
	return DataKeyPrefix + userID
}

type (
	Store struct {
		blobs blob.Store

		// Now and NewID are injectable for tests; New fills in
		// time.Now and uuid.NewString.
		Now   func() time.Time
		NewID func() string
	}

	// ExpenseInput carries caller-supplied fields for a new expense.
	ExpenseInput struct {
		Amount     float64
		CategoryID string
		Note       string
		DateISO    string
	}

	// SubscriptionInput carries caller-supplied fields for a new subscription.
	SubscriptionInput struct {
		Name            string
		Amount          float64
		BillingCycle    core.Cycle
		NextBillingDate string
	}
)

func New(blobs blob.Store) *Store {
	return &Store{
		blobs: blobs,
		Now:   time.Now,
		NewID: uuid.NewString,
	}
}

// CurrentMonthKey returns the month bucket mutations file into.
func (s *Store) CurrentMonthKey() string {
	return dates.MonthKey(s.Now())
}

// GetMonth returns the record for monthKey, or a freshly seeded empty
// month when none exists. An empty monthKey means the current month.
// Reading never mutates persisted state.
func (s *Store) GetMonth(ctx context.Context, userID, monthKey string) (core.MonthRecord, error) {
	if monthKey == "" {
		monthKey = s.CurrentMonthKey()
	}
	doc, err := s.load(ctx, userID)
	if err != nil {
		return core.MonthRecord{}, err
	}
	return doc.Month(monthKey), nil
}

// GetYear returns the months of year that exist in storage, keyed by
// month key. Months never written are absent, not zero-filled.
func (s *Store) GetYear(ctx context.Context, userID string, year int) (map[string]core.MonthRecord, error) {
	doc, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	months := make(map[string]core.MonthRecord)
	for _, key := range dates.MonthKeysOfYear(year) {
		if m, ok := doc.Months[key]; ok {
			months[key] = m.Seeded()
		}
	}
	return months, nil
}

// AddExpense validates, assigns an id and creation timestamp, appends
// and persists. The expense always files into the current month's
// bucket even when DateISO names another month; the calendar date and
// the bucket are allowed to disagree.
func (s *Store) AddExpense(ctx context.Context, userID string, in ExpenseInput) (core.Expense, error) {
	if err := core.ValidateAmount(in.Amount); err != nil {
		return core.Expense{}, err
	}
	if strings.TrimSpace(in.CategoryID) == "" {
		return core.Expense{}, core.ErrMissingCategory
	}
	now := s.Now()
	dateISO := in.DateISO
	if dateISO == "" {
		dateISO = dates.ISODate(now)
	} else if _, err := dates.ParseISODate(dateISO); err != nil {
		return core.Expense{}, core.ErrInvalidDate
	}

	doc, err := s.load(ctx, userID)
	if err != nil {
		return core.Expense{}, err
	}

	expense := core.Expense{
		ID:         s.NewID(),
		Amount:     in.Amount,
		CategoryID: in.CategoryID,
		Note:       strings.TrimSpace(in.Note),
		DateISO:    dateISO,
		CreatedAt:  now.UTC().Format(time.RFC3339),
	}

	key := dates.MonthKey(now)
	month := doc.Month(key)
	month.Expenses = append(month.Expenses, expense)
	doc.Months[key] = month

	if err := s.save(ctx, userID, doc); err != nil {
		return core.Expense{}, err
	}

	slog.InfoContext(ctx, "Expense added",
		"user_id", userID,
		"expense_id", expense.ID,
		"month_key", key,
		"category_id", expense.CategoryID,
		"amount", expense.Amount)
	return expense, nil
}

// UpdateIncome replaces the current month's income. Not additive.
func (s *Store) UpdateIncome(ctx context.Context, userID string, income float64) error {
	if err := core.ValidateAmount(income); err != nil && income != 0 {
		return err
	}

	doc, err := s.load(ctx, userID)
	if err != nil {
		return err
	}

	key := s.CurrentMonthKey()
	month := doc.Month(key)
	month.Income = income
	doc.Months[key] = month

	if err := s.save(ctx, userID, doc); err != nil {
		return err
	}

	slog.InfoContext(ctx, "Income updated", "user_id", userID, "month_key", key, "amount", income)
	return nil
}

// DeleteExpense removes an expense by id from the given month (current
// month when monthKey is empty). Deleting an id that does not exist is
// a no-op, not an error.
func (s *Store) DeleteExpense(ctx context.Context, userID, expenseID, monthKey string) error {
	if monthKey == "" {
		monthKey = s.CurrentMonthKey()
	}

	doc, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	month, ok := doc.Months[monthKey]
	if !ok {
		return nil
	}

	kept := month.Expenses[:0:0]
	for _, e := range month.Expenses {
		if e.ID != expenseID {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(month.Expenses) {
		return nil
	}
	month.Expenses = kept
	doc.Months[monthKey] = month

	if err := s.save(ctx, userID, doc); err != nil {
		return err
	}

	slog.InfoContext(ctx, "Expense deleted", "user_id", userID, "expense_id", expenseID, "month_key", monthKey)
	return nil
}

// GetCategories returns the current month's categories, seeding the
// default set when the month has none.
func (s *Store) GetCategories(ctx context.Context, userID string) ([]core.Category, error) {
	month, err := s.GetMonth(ctx, userID, "")
	if err != nil {
		return nil, err
	}
	return month.Categories, nil
}

// GetCategoriesWithSpent returns the current month's categories
// augmented with derived spend.
func (s *Store) GetCategoriesWithSpent(ctx context.Context, userID string) ([]budget.CategorySpent, error) {
	month, err := s.GetMonth(ctx, userID, "")
	if err != nil {
		return nil, err
	}
	return budget.CategoriesWithSpent(month), nil
}

// SaveBudgetLimit sets a category's limit for the current month only.
// Unknown category ids are a silent no-op.
func (s *Store) SaveBudgetLimit(ctx context.Context, userID, categoryID string, limit float64) error {
	if err := core.ValidateAmount(limit); err != nil {
		return err
	}
	return s.setLimit(ctx, userID, categoryID, &limit)
}

// ClearBudgetLimit unsets a category's limit for the current month.
// Unset means no limit, not a limit of zero.
func (s *Store) ClearBudgetLimit(ctx context.Context, userID, categoryID string) error {
	return s.setLimit(ctx, userID, categoryID, nil)
}

func (s *Store) setLimit(ctx context.Context, userID, categoryID string, limit *float64) error {
	doc, err := s.load(ctx, userID)
	if err != nil {
		return err
	}

	key := s.CurrentMonthKey()
	month := doc.Month(key)
	found := false
	for i := range month.Categories {
		if month.Categories[i].ID == categoryID {
			month.Categories[i].Limit = limit
			found = true
			break
		}
	}
	if !found {
		return nil
	}
	doc.Months[key] = month

	if err := s.save(ctx, userID, doc); err != nil {
		return err
	}

	slog.InfoContext(ctx, "Budget limit changed",
		"user_id", userID, "month_key", key, "category_id", categoryID, "set", limit != nil)
	return nil
}

// AddSubscription appends to the ledger-level subscription list.
func (s *Store) AddSubscription(ctx context.Context, userID string, in SubscriptionInput) (core.Subscription, error) {
	sub := core.Subscription{
		ID:              s.NewID(),
		Name:            strings.TrimSpace(in.Name),
		Amount:          in.Amount,
		BillingCycle:    in.BillingCycle,
		NextBillingDate: in.NextBillingDate,
		CreatedAt:       s.Now().UTC().Format(time.RFC3339),
	}
	if err := sub.Validate(); err != nil {
		return core.Subscription{}, err
	}

	doc, err := s.load(ctx, userID)
	if err != nil {
		return core.Subscription{}, err
	}
	doc.Subscriptions = append(doc.Subscriptions, sub)

	if err := s.save(ctx, userID, doc); err != nil {
		return core.Subscription{}, err
	}

	slog.InfoContext(ctx, "Subscription added",
		"user_id", userID,
		"subscription_id", sub.ID,
		"billing_cycle", string(sub.BillingCycle),
		"amount", sub.Amount)
	return sub, nil
}

// GetSubscriptions lists the ledger's subscriptions in insertion order.
// Each NextBillingDate is rolled forward to the first due date on or
// after today; the stored date is left untouched.
func (s *Store) GetSubscriptions(ctx context.Context, userID string) ([]core.Subscription, error) {
	doc, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	subs := append([]core.Subscription(nil), doc.Subscriptions...)
	now := s.Now()
	for i, sub := range subs {
		if next, err := core.NextBilling(sub, now); err == nil {
			subs[i].NextBillingDate = next
		}
	}
	return subs, nil
}

// DeleteSubscription removes a subscription by id; idempotent.
func (s *Store) DeleteSubscription(ctx context.Context, userID, subscriptionID string) error {
	doc, err := s.load(ctx, userID)
	if err != nil {
		return err
	}

	kept := doc.Subscriptions[:0:0]
	for _, sub := range doc.Subscriptions {
		if sub.ID != subscriptionID {
			kept = append(kept, sub)
		}
	}
	if len(kept) == len(doc.Subscriptions) {
		return nil
	}
	doc.Subscriptions = kept

	if err := s.save(ctx, userID, doc); err != nil {
		return err
	}

	slog.InfoContext(ctx, "Subscription deleted", "user_id", userID, "subscription_id", subscriptionID)
	return nil
}

func (s *Store) load(ctx context.Context, userID string) (core.Document, error) {
	raw, ok, err := s.blobs.Get(ctx, DataKey(userID))
	if err != nil {
		return core.Document{}, fmt.Errorf("load ledger for %s: %w (%w)", userID, err, ErrStorage)
	}
	if !ok {
		return core.EmptyDocument(), nil
	}
	// Malformed blobs decode to an empty document; a corrupt ledger is
	// recovered from, not propagated.
	return core.DecodeDocument(raw), nil
}

func (s *Store) save(ctx context.Context, userID string, doc core.Document) error {
	raw, err := core.EncodeDocument(doc)
	if err != nil {
		return fmt.Errorf("encode ledger for %s: %w (%w)", userID, err, ErrStorage)
	}
	if err := s.blobs.Set(ctx, DataKey(userID), raw); err != nil {
		return fmt.Errorf("save ledger for %s: %w (%w)", userID, err, ErrStorage)
	}
	return nil
}
