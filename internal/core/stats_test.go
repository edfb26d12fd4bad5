package core

import (
	"testing"
	"time"
)

// The worked example from the dashboard: two transactions on day one,
// one on day two.
func historySet() []Transaction {
	return []Transaction{
		tx("d1", Deposit, 10000, EUR, time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), ""),
		tx("w1", Withdraw, 4000, EUR, time.Date(2024, 1, 1, 15, 0, 0, 0, time.UTC), ""),
		tx("d2", Deposit, 1000, EUR, time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC), ""),
	}
}

func TestAggregateRunningBalanceAndHistory(t *testing.T) {
	stats := Aggregate(historySet())

	if stats.TotalTransactions != 3 {
		t.Fatalf("total transactions = %d, want 3", stats.TotalTransactions)
	}
	if stats.CurrentBalance.Cents != 7000 {
		t.Fatalf("current balance = %d, want 7000", stats.CurrentBalance.Cents)
	}
	if len(stats.BalanceHistory) != 2 {
		t.Fatalf("history length = %d, want 2", len(stats.BalanceHistory))
	}

	day1 := stats.BalanceHistory[0]
	if !day1.Day.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) ||
		day1.Balance.Cents != 6000 || day1.Transactions != 2 {
		t.Fatalf("day 1 point = %+v", day1)
	}

	day2 := stats.BalanceHistory[1]
	if !day2.Day.Equal(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)) ||
		day2.Balance.Cents != 7000 || day2.Transactions != 1 {
		t.Fatalf("day 2 point = %+v", day2)
	}
}

func TestAggregateTypeTotals(t *testing.T) {
	filtered := ApplyFilter(historySet(), Filter{Type: Deposit})
	stats := Aggregate(filtered)

	if stats.CurrentBalance.Cents != 11000 {
		t.Fatalf("deposit-only balance = %d, want 11000", stats.CurrentBalance.Cents)
	}
	if stats.TotalDeposits.Cents != 11000 || stats.TotalWithdraws.Cents != 0 || stats.TotalTransfers.Cents != 0 {
		t.Fatalf("unexpected totals: %+v", stats)
	}
}

func TestAggregateTransfersAreBalanceNeutral(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	set := []Transaction{
		tx("d", Deposit, 5000, EUR, day, ""),
		tx("t", Transfer, 99999, EUR, day.Add(time.Hour), ""),
		tx("w", Withdraw, 2000, EUR, day.Add(2*time.Hour), ""),
	}
	stats := Aggregate(set)

	if stats.CurrentBalance.Cents != 3000 {
		t.Fatalf("balance = %d, want 3000 (transfer must not net)", stats.CurrentBalance.Cents)
	}
	if stats.TotalTransfers.Cents != 99999 {
		t.Fatalf("transfer total = %d, want 99999", stats.TotalTransfers.Cents)
	}
}

func TestAggregateIsDisplayOrderIndependent(t *testing.T) {
	set := sampleSet()

	base := Aggregate(set)
	for _, spec := range []Sort{
		{Field: SortByAmount, Direction: Ascending},
		{Field: SortByAmount, Direction: Descending},
		{Field: SortByDate, Direction: Descending},
		{Field: SortByType, Direction: Ascending},
	} {
		got := Aggregate(SortTransactions(set, spec))
		if got.CurrentBalance != base.CurrentBalance {
			t.Fatalf("sort %v changed balance: %d != %d", spec, got.CurrentBalance.Cents, base.CurrentBalance.Cents)
		}
		if len(got.BalanceHistory) != len(base.BalanceHistory) {
			t.Fatalf("sort %v changed history length", spec)
		}
		for i := range base.BalanceHistory {
			if got.BalanceHistory[i] != base.BalanceHistory[i] {
				t.Fatalf("sort %v changed history point %d: %+v != %+v",
					spec, i, got.BalanceHistory[i], base.BalanceHistory[i])
			}
		}
	}
}

func TestAggregateBalanceIdentity(t *testing.T) {
	set := sampleSet()
	stats := Aggregate(set)

	var deposits, withdraws int64
	for _, tx := range set {
		switch tx.Type {
		case Deposit:
			deposits += tx.Amount.Cents
		case Withdraw:
			withdraws += tx.Amount.Cents
		}
	}
	if stats.CurrentBalance.Cents != deposits-withdraws {
		t.Fatalf("balance identity broken: %d != %d", stats.CurrentBalance.Cents, deposits-withdraws)
	}
}

func TestAggregateHistoryCountsSumToTotal(t *testing.T) {
	stats := Aggregate(sampleSet())

	sum := 0
	for _, p := range stats.BalanceHistory {
		sum += p.Transactions
	}
	if sum != stats.TotalTransactions {
		t.Fatalf("history counts sum to %d, want %d", sum, stats.TotalTransactions)
	}

	for i := 1; i < len(stats.BalanceHistory); i++ {
		if !stats.BalanceHistory[i-1].Day.Before(stats.BalanceHistory[i].Day) {
			t.Fatalf("history not strictly ascending at %d", i)
		}
	}
}

func TestAggregateEmptyInput(t *testing.T) {
	stats := Aggregate(nil)

	if stats.TotalTransactions != 0 || stats.CurrentBalance.Cents != 0 {
		t.Fatalf("unexpected stats for empty input: %+v", stats)
	}
	if len(stats.BalanceHistory) != 0 {
		t.Fatalf("expected empty history, got %d points", len(stats.BalanceHistory))
	}
	if stats.TotalDeposits.Cents != 0 || stats.TotalWithdraws.Cents != 0 || stats.TotalTransfers.Cents != 0 {
		t.Fatalf("expected zero totals: %+v", stats)
	}
}

func TestAggregateSameTimestampKeepsSequenceOrder(t *testing.T) {
	ts := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	set := []Transaction{
		tx("a", Deposit, 1000, EUR, ts, ""),
		tx("b", Withdraw, 1000, EUR, ts, ""),
	}
	stats := Aggregate(set)

	// Deposit then withdraw by sequence order: day closes at zero.
	if stats.CurrentBalance.Cents != 0 {
		t.Fatalf("balance = %d, want 0", stats.CurrentBalance.Cents)
	}
	if len(stats.BalanceHistory) != 1 || stats.BalanceHistory[0].Transactions != 2 {
		t.Fatalf("unexpected history: %+v", stats.BalanceHistory)
	}
}
