// Package core holds the transaction domain model and the pure engine
// helpers: filter evaluation, view sorting and statistics aggregation.
package core

import (
	"fmt"
	"strings"
	"time"
)

// Filter selects transactions for the display view. Every field is
// optional; a zero value means the field places no constraint. Active
// fields combine with AND semantics, so the zero Filter matches all.
type Filter struct {
	DateFrom  time.Time       `json:"date_from,omitempty"`
	DateTo    time.Time       `json:"date_to,omitempty"`
	Type      TransactionType `json:"type,omitempty"`
	Currency  Currency        `json:"currency,omitempty"`
	MinAmount Money           `json:"min_amount,omitempty"`
	Search    string          `json:"search,omitempty"`
}

// IsZero reports whether the filter places no constraint at all.
func (f Filter) IsZero() bool {
	return f.DateFrom.IsZero() && f.DateTo.IsZero() &&
		f.Type == "" && f.Currency == "" &&
		f.MinAmount.Cents <= 0 && strings.TrimSpace(f.Search) == ""
}

// Matches reports whether tx passes every active constraint.
//
// Date bounds are calendar-inclusive: DateFrom matches from the start of
// its day, DateTo through the end of its day. A MinAmount of zero or less
// is treated as absent; callers must not rely on a literal zero threshold.
// Search is a case-insensitive substring match over description and id.
func (f Filter) Matches(tx Transaction) bool {
	if !f.DateFrom.IsZero() && tx.Date.Before(DayOf(f.DateFrom)) {
		return false
	}
	if !f.DateTo.IsZero() && !tx.Date.Before(DayOf(f.DateTo).AddDate(0, 0, 1)) {
		return false
	}
	if f.Type != "" && tx.Type != f.Type {
		return false
	}
	if f.Currency != "" && tx.Currency != f.Currency {
		return false
	}
	if f.MinAmount.Cents > 0 && tx.Amount.Cents < f.MinAmount.Cents {
		return false
	}
	if needle := strings.ToLower(strings.TrimSpace(f.Search)); needle != "" {
		if !strings.Contains(strings.ToLower(tx.Description), needle) &&
			!strings.Contains(strings.ToLower(tx.ID), needle) {
			return false
		}
	}
	return true
}

// ApplyFilter returns the transactions matching f, preserving input order.
// The result is always a fresh slice; the input is never mutated.
func ApplyFilter(txs []Transaction, f Filter) []Transaction {
	out := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		if f.Matches(tx) {
			out = append(out, tx)
		}
	}
	return out
}

// Key returns a stable string identity for the filter, used to key
// memoized derivations.
func (f Filter) Key() string {
	return fmt.Sprintf("%d,%d,%s,%s,%d,%s",
		f.DateFrom.UnixNano(), f.DateTo.UnixNano(),
		f.Type, f.Currency, f.MinAmount.Cents,
		strings.ToLower(strings.TrimSpace(f.Search)))
}
