package core

import (
	"testing"
	"time"
)

func tx(id string, txType TransactionType, cents int64, currency Currency, date time.Time, desc string) Transaction {
	return Transaction{ID: id, Type: txType, Amount: Money{Cents: cents}, Currency: currency, Date: date, Description: desc}
}

func sampleSet() []Transaction {
	return []Transaction{
		tx("tx0001-aa", Deposit, 10000, EUR, time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), "Salary payment"),
		tx("tx0002-bb", Withdraw, 4000, EUR, time.Date(2024, 1, 1, 14, 0, 0, 0, time.UTC), "Grocery store"),
		tx("tx0003-cc", Deposit, 1000, USD, time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC), "Card refund"),
		tx("tx0004-dd", Transfer, 2500, GBP, time.Date(2024, 2, 10, 12, 0, 0, 0, time.UTC), "Internal move"),
	}
}

func TestEmptyFilterMatchesEverything(t *testing.T) {
	set := sampleSet()
	got := ApplyFilter(set, Filter{})
	if len(got) != len(set) {
		t.Fatalf("empty filter returned %d of %d", len(got), len(set))
	}
	for i := range set {
		if got[i].ID != set[i].ID {
			t.Fatalf("order changed at %d: %s != %s", i, got[i].ID, set[i].ID)
		}
	}
}

func TestFilterIsSubsetAndIdempotent(t *testing.T) {
	set := sampleSet()
	filters := []Filter{
		{Type: Deposit},
		{Currency: EUR},
		{MinAmount: Money{Cents: 2000}},
		{Search: "payment"},
		{DateFrom: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
	}
	for _, f := range filters {
		once := ApplyFilter(set, f)
		if len(once) > len(set) {
			t.Fatalf("filter %v grew the set", f)
		}
		members := make(map[string]bool, len(set))
		for _, tx := range set {
			members[tx.ID] = true
		}
		for _, tx := range once {
			if !members[tx.ID] {
				t.Fatalf("filter %v invented transaction %s", f, tx.ID)
			}
		}
		twice := ApplyFilter(once, f)
		if len(twice) != len(once) {
			t.Fatalf("filter %v not idempotent: %d then %d", f, len(once), len(twice))
		}
	}
}

func TestFilterFields(t *testing.T) {
	set := sampleSet()

	cases := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"by type", Filter{Type: Deposit}, []string{"tx0001-aa", "tx0003-cc"}},
		{"by currency", Filter{Currency: EUR}, []string{"tx0001-aa", "tx0002-bb"}},
		{"min amount", Filter{MinAmount: Money{Cents: 2600}}, []string{"tx0001-aa", "tx0002-bb"}},
		{"date from", Filter{DateFrom: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)}, []string{"tx0003-cc", "tx0004-dd"}},
		{"date to inclusive", Filter{DateTo: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}, []string{"tx0001-aa", "tx0002-bb"}},
		{"date range", Filter{
			DateFrom: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
			DateTo:   time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		}, []string{"tx0003-cc"}},
		{"combined AND", Filter{Type: Deposit, Currency: EUR}, []string{"tx0001-aa"}},
		{"no match", Filter{Type: Withdraw, Currency: JPY}, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ApplyFilter(set, tc.filter)
			if len(got) != len(tc.want) {
				t.Fatalf("got %d transactions, want %d", len(got), len(tc.want))
			}
			for i, id := range tc.want {
				if got[i].ID != id {
					t.Fatalf("position %d: got %s, want %s", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestSearchIsCaseInsensitiveOverDescriptionAndID(t *testing.T) {
	set := sampleSet()

	got := ApplyFilter(set, Filter{Search: "SALARY"})
	if len(got) != 1 || got[0].ID != "tx0001-aa" {
		t.Fatalf("description search failed: %v", got)
	}

	// Matches an id prefix, case-insensitively.
	got = ApplyFilter(set, Filter{Search: "TX000"})
	if len(got) != len(set) {
		t.Fatalf("id prefix search returned %d of %d", len(got), len(set))
	}

	got = ApplyFilter(set, Filter{Search: "tx0003"})
	if len(got) != 1 || got[0].ID != "tx0003-cc" {
		t.Fatalf("id search failed: %v", got)
	}
}

func TestMinAmountZeroOrNegativeIsAbsent(t *testing.T) {
	set := sampleSet()
	for _, cents := range []int64{0, -5} {
		got := ApplyFilter(set, Filter{MinAmount: Money{Cents: cents}})
		if len(got) != len(set) {
			t.Fatalf("min amount %d should be a no-op, returned %d of %d", cents, len(got), len(set))
		}
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	set := sampleSet()
	before := make([]string, len(set))
	for i, tx := range set {
		before[i] = tx.ID
	}
	_ = ApplyFilter(set, Filter{Type: Deposit})
	for i, tx := range set {
		if tx.ID != before[i] {
			t.Fatalf("input mutated at %d", i)
		}
	}
}
