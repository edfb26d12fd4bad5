// Package ledger implements the transaction view store: it owns the
// canonical transaction snapshot, the active filter and sort
// specifications, and the derived display view and statistics.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"ledgerview/internal/cache"
	"ledgerview/internal/core"
)

const (
	StateIdle    LoadState = "idle"
	StateLoading LoadState = "loading"
	StateSuccess LoadState = "success"
	StateError   LoadState = "error"
)

// LoadState tracks the lifecycle of the canonical set: idle until the
// first load, loading while a fetch is in flight, then success or error.
type LoadState string

// Source supplies raw transaction records. The store treats it as a
// black box returning up to count records.
type Source interface {
	FetchTransactions(ctx context.Context, count int) ([]core.Transaction, error)
}

// Store holds the canonical set and recomputes the filtered/sorted view
// and statistics whenever any input changes. All mutation entry points
// run the pipeline to completion before returning, and derived state is
// swapped atomically under the store lock: readers never observe a
// partially recomputed view.
type Store struct {
	mu     sync.Mutex
	source Source

	canonical []core.Transaction
	version   uint64 // bumped on every canonical replacement

	filter core.Filter
	sort   core.Sort

	view  []core.Transaction
	stats core.Statistics

	state   LoadState
	lastErr string

	// Derivations are memoized by (set version, filter, sort). The
	// stats key omits the sort component: aggregation re-sorts
	// chronologically on its own and is provably display-order
	// independent.
	viewCache  *cache.LRU[[]core.Transaction]
	statsCache *cache.LRU[core.Statistics]

	subMu   sync.Mutex
	subs    map[int]func()
	nextSub int
}

// FilterPatch is a shallow merge into the active filter. A nil field
// leaves the current value unchanged; a pointer to the zero value
// clears that constraint.
type FilterPatch struct {
	DateFrom  *time.Time
	DateTo    *time.Time
	Type      *core.TransactionType
	Currency  *core.Currency
	MinAmount *core.Money
	Search    *string
}

func NewStore(source Source) *Store {
	return &Store{
		source:     source,
		sort:       core.DefaultSort(),
		state:      StateIdle,
		viewCache:  cache.NewLRU[[]core.Transaction](64, 5*time.Minute),
		statsCache: cache.NewLRU[core.Statistics](64, 5*time.Minute),
	}
}

// Caches exposes the memoization caches for registration with a cleanup
// manager.
func (s *Store) Caches() []cache.Cleaner {
	return []cache.Cleaner{s.viewCache, s.statsCache}
}

// Load replaces the canonical set with up to count records from the
// source and runs the full recompute pipeline.
//
// On failure the previously loaded canonical set and its derived state
// are retained: a failed reload leaves the last good snapshot visible
// and is retryable by calling Load again.
func (s *Store) Load(ctx context.Context, count int) error {
	s.mu.Lock()
	s.state = StateLoading
	s.lastErr = ""
	s.mu.Unlock()
	s.notify()

	txs, err := s.source.FetchTransactions(ctx, count)
	if err != nil {
		s.mu.Lock()
		s.state = StateError
		s.lastErr = err.Error()
		s.mu.Unlock()
		s.notify()
		return fmt.Errorf("fetch transactions: %w", err)
	}

	s.mu.Lock()
	s.replaceLocked(txs)
	s.mu.Unlock()

	slog.InfoContext(ctx, "Canonical set replaced",
		"component", "ledger",
		"transactions", len(txs))
	s.notify()
	return nil
}

// Bootstrap installs an already-fetched snapshot, bypassing the source.
// Used at startup to warm the store from the persistence cache.
func (s *Store) Bootstrap(txs []core.Transaction) {
	s.mu.Lock()
	s.replaceLocked(txs)
	s.mu.Unlock()
	s.notify()
}

func (s *Store) replaceLocked(txs []core.Transaction) {
	s.canonical = append([]core.Transaction(nil), txs...)
	s.version++
	s.state = StateSuccess
	s.lastErr = ""
	s.recomputeLocked()
}

// SetFilters merges patch into the active filter specification and
// recomputes view and statistics synchronously. The load state is not
// touched.
func (s *Store) SetFilters(patch FilterPatch) {
	s.mu.Lock()
	patch.apply(&s.filter)
	s.recomputeLocked()
	s.mu.Unlock()
	s.notify()
}

// ClearFilters resets the filter specification to match everything.
func (s *Store) ClearFilters() {
	s.mu.Lock()
	s.filter = core.Filter{}
	s.recomputeLocked()
	s.mu.Unlock()
	s.notify()
}

// SetSort replaces the sort specification wholesale and re-sorts the
// already-filtered view. Statistics are left as they are: aggregation
// does not depend on display order.
func (s *Store) SetSort(spec core.Sort) {
	s.mu.Lock()
	s.sort = spec.Normalize()

	viewKey := s.derivationKey() + "|" + s.sort.Key()
	if view, ok := s.viewCache.Get(viewKey); ok {
		s.view = view
	} else {
		filtered := core.ApplyFilter(s.canonical, s.filter)
		s.view = core.SortTransactions(filtered, s.sort)
		s.viewCache.Set(viewKey, s.view)
	}
	s.mu.Unlock()
	s.notify()
}

// recomputeLocked runs filter -> sort -> aggregate and swaps the derived
// state in one step. Statistics are computed from the filtered but
// unsorted set.
func (s *Store) recomputeLocked() {
	key := s.derivationKey()

	var filtered []core.Transaction
	stats, ok := s.statsCache.Get(key)
	if !ok {
		filtered = core.ApplyFilter(s.canonical, s.filter)
		stats = core.Aggregate(filtered)
		s.statsCache.Set(key, stats)
	}

	viewKey := key + "|" + s.sort.Key()
	view, ok := s.viewCache.Get(viewKey)
	if !ok {
		if filtered == nil {
			filtered = core.ApplyFilter(s.canonical, s.filter)
		}
		view = core.SortTransactions(filtered, s.sort)
		s.viewCache.Set(viewKey, view)
	}

	s.stats = stats
	s.view = view
}

func (s *Store) derivationKey() string {
	return strconv.FormatUint(s.version, 10) + "|" + s.filter.Key()
}

// View returns the current filtered, sorted view as a copy.
func (s *Store) View() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.view...)
}

// Stats returns the current derived statistics as a copy.
func (s *Store) Stats() core.Statistics {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats := s.stats
	stats.BalanceHistory = append([]core.BalancePoint(nil), s.stats.BalanceHistory...)
	return stats
}

// State returns the load state and, when in error, its message.
func (s *Store) State() (LoadState, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, s.lastErr
}

// Filters returns the active filter specification.
func (s *Store) Filters() core.Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// Sorting returns the active sort specification.
func (s *Store) Sorting() core.Sort {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sort
}

// Version identifies the current canonical set; it increments on every
// replacement. Subscribers use it to tell set replacements apart from
// filter or sort changes.
func (s *Store) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Len returns the size of the canonical set, ignoring filters.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.canonical)
}

// Subscribe registers a listener invoked after every settled state
// change. The returned func removes the listener. Listeners run outside
// the store lock and may read snapshots freely.
func (s *Store) Subscribe(fn func()) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	if s.subs == nil {
		s.subs = make(map[int]func())
	}
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) notify() {
	s.subMu.Lock()
	listeners := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		listeners = append(listeners, fn)
	}
	s.subMu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

func (p FilterPatch) apply(f *core.Filter) {
	if p.DateFrom != nil {
		f.DateFrom = *p.DateFrom
	}
	if p.DateTo != nil {
		f.DateTo = *p.DateTo
	}
	if p.Type != nil {
		f.Type = *p.Type
	}
	if p.Currency != nil {
		f.Currency = *p.Currency
	}
	if p.MinAmount != nil {
		f.MinAmount = *p.MinAmount
	}
	if p.Search != nil {
		f.Search = *p.Search
	}
}
