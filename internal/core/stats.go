package core

import (
	"sort"
	"time"
)

type (
	// BalancePoint is one calendar day in the balance history: the
	// running balance as of the end of that day plus the day's
	// transaction count. Points are strictly ascending by day.
	BalancePoint struct {
		Day          time.Time `json:"day"`
		Balance      Money     `json:"balance"`
		Transactions int       `json:"transactions"`
	}

	// Statistics are derived from a filtered transaction sequence.
	// Per-type totals are magnitudes; they are never netted against
	// each other except through the running balance.
	Statistics struct {
		TotalTransactions int            `json:"total_transactions"`
		TotalDeposits     Money          `json:"total_deposits"`
		TotalWithdraws    Money          `json:"total_withdraws"`
		TotalTransfers    Money          `json:"total_transfers"`
		CurrentBalance    Money          `json:"current_balance"`
		BalanceHistory    []BalancePoint `json:"balance_history"`
	}
)

// Aggregate computes statistics for the given transaction sequence.
//
// The input is re-sorted chronologically on a private copy before the
// walk, so the result is identical no matter which display ordering the
// caller currently holds. The chronological sort is stable, which fixes
// the outcome for transactions sharing a timestamp: they are processed
// in original sequence order.
//
// Transfers are balance-neutral on purpose: they move funds between
// sub-accounts the engine does not distinguish, so they accumulate in
// TotalTransfers without touching the running balance.
func Aggregate(txs []Transaction) Statistics {
	stats := Statistics{TotalTransactions: len(txs)}
	if len(txs) == 0 {
		return stats
	}

	ordered := append([]Transaction(nil), txs...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})

	var running int64
	history := make([]BalancePoint, 0, len(ordered))
	dayIndex := make(map[time.Time]int, len(ordered))

	for _, tx := range ordered {
		amount := tx.Amount.Cents
		switch tx.Type {
		case Deposit:
			stats.TotalDeposits.Cents += amount
			running += amount
		case Withdraw:
			stats.TotalWithdraws.Cents += amount
			running -= amount
		case Transfer:
			stats.TotalTransfers.Cents += amount
		}

		// One point per calendar day. The walk is chronological, so a
		// day's recorded balance ends up being the balance after its
		// last transaction, and appends happen in ascending day order.
		day := DayOf(tx.Date)
		if i, ok := dayIndex[day]; ok {
			history[i].Balance.Cents = running
			history[i].Transactions++
		} else {
			dayIndex[day] = len(history)
			history = append(history, BalancePoint{
				Day:          day,
				Balance:      Money{Cents: running},
				Transactions: 1,
			})
		}
	}

	stats.CurrentBalance = Money{Cents: running}
	stats.BalanceHistory = history
	return stats
}
