package core

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const (
	SortByDate   SortField = "date"
	SortByAmount SortField = "amount"
	SortByType   SortField = "type"
)

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

type (
	SortField     string
	SortDirection string

	// Sort describes the display ordering of the view. Exactly one
	// field is active at a time; there is no secondary key beyond the
	// input order preserved by stable sorting.
	Sort struct {
		Field     SortField     `json:"field"`
		Direction SortDirection `json:"direction"`
	}
)

func (f SortField) IsValid() bool {
	switch f {
	case SortByDate, SortByAmount, SortByType:
		return true
	default:
		return false
	}
}

func (d SortDirection) IsValid() bool {
	return d == Ascending || d == Descending
}

// DefaultSort is the ordering applied before any user choice: newest first.
func DefaultSort() Sort {
	return Sort{Field: SortByDate, Direction: Descending}
}

// Normalize replaces invalid field or direction values with the defaults.
// The engine is permissive about malformed specs from the presentation
// layer; they degrade to the default ordering rather than erroring.
func (s Sort) Normalize() Sort {
	if !s.Field.IsValid() {
		s.Field = SortByDate
	}
	if !s.Direction.IsValid() {
		s.Direction = Ascending
	}
	return s
}

// Key returns a stable string identity for the spec, used to key
// memoized derivations.
func (s Sort) Key() string {
	return string(s.Field) + "," + string(s.Direction)
}

// SortTransactions returns a sorted copy of txs ordered by spec.
//
// The sort is stable: transactions comparing equal keep their relative
// input order. The view is re-derived from the canonical set on every
// recomputation, so stability is what prevents ties from jittering
// across successive filter changes. Type labels compare with
// locale-aware collation rather than raw byte order.
func SortTransactions(txs []Transaction, spec Sort) []Transaction {
	out := append([]Transaction(nil), txs...)
	spec = spec.Normalize()

	var cmp func(a, b Transaction) int
	switch spec.Field {
	case SortByAmount:
		cmp = func(a, b Transaction) int {
			return compareInt64(a.Amount.Cents, b.Amount.Cents)
		}
	case SortByType:
		// A collator keeps internal buffers, so build one per call
		// instead of sharing it between goroutines.
		col := collate.New(language.English)
		cmp = func(a, b Transaction) int {
			return col.CompareString(string(a.Type), string(b.Type))
		}
	default:
		cmp = func(a, b Transaction) int {
			return a.Date.Compare(b.Date)
		}
	}

	desc := spec.Direction == Descending
	sort.SliceStable(out, func(i, j int) bool {
		c := cmp(out[i], out[j])
		if desc {
			return c > 0
		}
		return c < 0
	})
	return out
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
