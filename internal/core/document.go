package core

import (
	"encoding/json"
)

// defaultCategories is the fixed set every month starts with. IDs are
// stable slugs; they survive renames and are what expenses reference.
var defaultCategories = []Category{
	{ID: "food", Name: "Food"},
	{ID: "transport", Name: "Transport"},
	{ID: "entertainment", Name: "Entertainment"},
	{ID: "shopping", Name: "Shopping"},
	{ID: "utilities", Name: "Utilities"},
	{ID: "health", Name: "Health"},
	{ID: "other", Name: "Other"},
}

// DefaultCategories returns a fresh copy of the default category set.
func DefaultCategories() []Category {
	cats := make([]Category, len(defaultCategories))
	copy(cats, defaultCategories)
	return cats
}

// EmptyDocument returns a ledger with no months and no subscriptions.
func EmptyDocument() Document {
	return Document{Months: make(map[string]MonthRecord)}
}

// EmptyMonth returns a month with zero income and no categories yet;
// Seeded fills in the defaults at access time.
func EmptyMonth() MonthRecord {
	return MonthRecord{}
}

// Seeded returns the month with the default categories filled in when
// none exist. The receiver is not modified.
func (m MonthRecord) Seeded() MonthRecord {
	if len(m.Categories) > 0 {
		return m
	}
	m.Categories = DefaultCategories()
	return m
}

// Month returns the record under key, seeded, falling back to an empty
// seeded month when the key is absent.
func (d Document) Month(key string) MonthRecord {
	if m, ok := d.Months[key]; ok {
		return m.Seeded()
	}
	return EmptyMonth().Seeded()
}

// DecodeDocument parses a persisted ledger blob. Malformed JSON yields
// an empty document rather than an error; a corrupt blob must never
// lock a user out of their ledger.
func DecodeDocument(raw string) Document {
	var doc Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return EmptyDocument()
	}
	if doc.Months == nil {
		doc.Months = make(map[string]MonthRecord)
	}
	return doc
}

// EncodeDocument serializes the ledger for the blob store.
func EncodeDocument(doc Document) (string, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
