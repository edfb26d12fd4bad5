package source

import (
	"context"
	"testing"
	"time"
)

func TestGeneratorCountAndValidity(t *testing.T) {
	gen := NewGenerator(42)

	txs, err := gen.FetchTransactions(context.Background(), 500)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(txs) != 500 {
		t.Fatalf("got %d transactions, want 500", len(txs))
	}

	seen := make(map[string]bool, len(txs))
	now := time.Now().UTC().Add(time.Minute)
	for i, tx := range txs {
		if err := tx.Validate(); err != nil {
			t.Fatalf("transaction %d invalid: %v", i, err)
		}
		if seen[tx.ID] {
			t.Fatalf("duplicate id %s", tx.ID)
		}
		seen[tx.ID] = true
		if tx.Amount.Cents < 0 {
			t.Fatalf("negative amount on %s", tx.ID)
		}
		if tx.Date.After(now) {
			t.Fatalf("future date on %s: %v", tx.ID, tx.Date)
		}
	}
}

func TestGeneratorZeroCount(t *testing.T) {
	gen := NewGenerator(1)
	txs, err := gen.FetchTransactions(context.Background(), 0)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(txs) != 0 {
		t.Fatalf("got %d transactions, want 0", len(txs))
	}
}

func TestGeneratorNegativeCount(t *testing.T) {
	gen := NewGenerator(1)
	if _, err := gen.FetchTransactions(context.Background(), -1); err == nil {
		t.Fatalf("expected error for negative count")
	}
}

func TestGeneratorIDsAreSearchablePrefixes(t *testing.T) {
	gen := NewGenerator(7)
	txs, err := gen.FetchTransactions(context.Background(), 3)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	want := []string{"tx0001-", "tx0002-", "tx0003-"}
	for i, prefix := range want {
		if len(txs[i].ID) < len(prefix) || txs[i].ID[:len(prefix)] != prefix {
			t.Fatalf("id %d = %s, want prefix %s", i, txs[i].ID, prefix)
		}
	}
}
