package core

import (
	"strings"
	"testing"
)

func TestDecodeDocument(t *testing.T) {
	t.Run("malformed yields empty document", func(t *testing.T) {
		for _, raw := range []string{"", "{not json", `"just a string"`, "[]"} {
			doc := DecodeDocument(raw)
			if doc.Months == nil || len(doc.Months) != 0 || len(doc.Subscriptions) != 0 {
				t.Fatalf("raw %q: expected empty document, got %+v", raw, doc)
			}
		}
	})

	t.Run("valid blob", func(t *testing.T) {
		raw := `{"months":{"2024-03":{"income":3000,"categories":[],"expenses":[]}},` +
			`"subscriptions":[{"id":"s1","name":"Netflix","amount":15.49,"billingCycle":"monthly"}]}`
		doc := DecodeDocument(raw)
		if m, ok := doc.Months["2024-03"]; !ok || m.Income != 3000 {
			t.Fatalf("month not decoded: %+v", doc.Months)
		}
		if len(doc.Subscriptions) != 1 || doc.Subscriptions[0].Name != "Netflix" {
			t.Fatalf("subscriptions not decoded: %+v", doc.Subscriptions)
		}
	})

	t.Run("missing months map is initialized", func(t *testing.T) {
		doc := DecodeDocument(`{"subscriptions":[]}`)
		if doc.Months == nil {
			t.Fatal("months map is nil")
		}
	})
}

func TestSeeded(t *testing.T) {
	m := EmptyMonth().Seeded()
	if len(m.Categories) != 7 {
		t.Fatalf("expected 7 default categories, got %d", len(m.Categories))
	}
	if m.Categories[0].ID != "food" || m.Categories[6].ID != "other" {
		t.Fatalf("unexpected default order: %+v", m.Categories)
	}
	if m.Income != 0 || len(m.Expenses) != 0 {
		t.Fatalf("seeded month should be otherwise empty: %+v", m)
	}

	// Seeding never overwrites existing categories.
	custom := MonthRecord{Categories: []Category{{ID: "rent", Name: "Rent"}}}
	if got := custom.Seeded(); len(got.Categories) != 1 || got.Categories[0].ID != "rent" {
		t.Fatalf("existing categories replaced: %+v", got.Categories)
	}
}

func TestDefaultCategoriesIsolated(t *testing.T) {
	a := DefaultCategories()
	a[0].Name = "mutated"
	if b := DefaultCategories(); b[0].Name != "Food" {
		t.Fatalf("default set aliased between calls: %+v", b[0])
	}
}

func TestEncodeDocument(t *testing.T) {
	limit := 100.0
	doc := EmptyDocument()
	doc.Months["2024-03"] = MonthRecord{
		Income:     3000,
		Categories: []Category{{ID: "food", Name: "Food", Limit: &limit}, {ID: "transport", Name: "Transport"}},
		Expenses:   []Expense{{ID: "e1", Amount: 50, CategoryID: "food", DateISO: "2024-03-05", CreatedAt: "2024-03-05T10:00:00Z"}},
	}

	raw, err := EncodeDocument(doc)
	if err != nil {
		t.Fatalf("EncodeDocument: %v", err)
	}
	// Unset limits stay out of the persisted shape entirely.
	if strings.Contains(raw, `"transport","limit"`) {
		t.Fatalf("unset limit serialized: %s", raw)
	}
	if !strings.Contains(raw, `"limit":100`) {
		t.Fatalf("set limit missing: %s", raw)
	}

	back := DecodeDocument(raw)
	m := back.Months["2024-03"]
	if m.Income != 3000 || len(m.Expenses) != 1 || m.Categories[0].Limit == nil || *m.Categories[0].Limit != 100 {
		t.Fatalf("round trip mismatch: %+v", m)
	}
	if m.Categories[1].Limit != nil {
		t.Fatal("unset limit decoded as non-nil")
	}
}
