package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"ledgerview/internal/core"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepository(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestRepositoryRoundTrip(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	txs := []core.Transaction{
		{
			ID:          "tx0001-aa",
			Type:        core.Deposit,
			Amount:      core.Money{Cents: 10000},
			Currency:    core.EUR,
			Date:        time.Date(2024, 1, 1, 9, 30, 15, 0, time.UTC),
			Description: "Salary payment",
		},
		{
			ID:       "tx0002-bb",
			Type:     core.Withdraw,
			Amount:   core.Money{Cents: 4000},
			Currency: core.USD,
			Date:     time.Date(2024, 1, 1, 15, 0, 0, 0, time.UTC),
		},
	}

	if err := repo.ReplaceAll(ctx, txs); err != nil {
		t.Fatalf("replace: %v", err)
	}

	got, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d transactions, want 2", len(got))
	}
	for i := range txs {
		if got[i].ID != txs[i].ID || got[i].Type != txs[i].Type ||
			got[i].Amount != txs[i].Amount || got[i].Currency != txs[i].Currency ||
			!got[i].Date.Equal(txs[i].Date) || got[i].Description != txs[i].Description {
			t.Fatalf("transaction %d mismatch:\n got %+v\nwant %+v", i, got[i], txs[i])
		}
	}

	n, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 2 {
		t.Fatalf("count = %d, want 2", n)
	}
}

func TestRepositoryReplaceSwapsSnapshot(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	first := []core.Transaction{{
		ID: "old-1", Type: core.Deposit, Amount: core.Money{Cents: 100},
		Currency: core.EUR, Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}}
	if err := repo.ReplaceAll(ctx, first); err != nil {
		t.Fatalf("first replace: %v", err)
	}

	second := []core.Transaction{{
		ID: "new-1", Type: core.Withdraw, Amount: core.Money{Cents: 200},
		Currency: core.GBP, Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	}}
	if err := repo.ReplaceAll(ctx, second); err != nil {
		t.Fatalf("second replace: %v", err)
	}

	got, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].ID != "new-1" {
		t.Fatalf("old snapshot survived: %+v", got)
	}
}

func TestRepositoryEmptyList(t *testing.T) {
	repo := newTestRepository(t)

	got, err := repo.ListAll(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty cache, got %d", len(got))
	}
}
