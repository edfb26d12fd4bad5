// Package worker contains the export worker: it reacts to ledger
// refresh notifications by aggregating the cached transaction set and
// appending the resulting balance history to a spreadsheet.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"ledgerview/internal/amqp"
	"ledgerview/internal/core"
	"ledgerview/internal/sheets"
	"ledgerview/internal/storage"
)

type ExportWorker struct {
	repo   *storage.Repository
	writer sheets.HistoryWriter

	mu           sync.Mutex
	lastExported time.Time
}

func NewExportWorker(repo *storage.Repository, writer sheets.HistoryWriter) *ExportWorker {
	return &ExportWorker{repo: repo, writer: writer}
}

// HandleRefreshMessage exports a fresh snapshot in response to a
// refresh notification from the serving process.
func (w *ExportWorker) HandleRefreshMessage(msg *amqp.RefreshMessage) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	slog.InfoContext(ctx, "Handling ledger refresh",
		"component", "worker",
		"transactions", msg.Transactions,
		"balance_cents", msg.BalanceCents)

	return w.Export(ctx)
}

// Export aggregates the cached transaction set and appends its balance
// history to the configured writer.
func (w *ExportWorker) Export(ctx context.Context) error {
	txs, err := w.repo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("load cached transactions: %w", err)
	}
	if len(txs) == 0 {
		slog.InfoContext(ctx, "Nothing to export, cache is empty", "component", "worker")
		return nil
	}

	stats := core.Aggregate(txs)
	if err := w.writer.AppendBalanceHistory(ctx, stats.BalanceHistory, stats.CurrentBalance); err != nil {
		return fmt.Errorf("append balance history: %w", err)
	}

	w.mu.Lock()
	w.lastExported = time.Now().UTC()
	w.mu.Unlock()
	return nil
}

// ExportIfStale exports only when no export happened within maxAge.
// Used by the periodic catch-up ticker so missed messages still end up
// in the sheet without duplicating fresh exports.
func (w *ExportWorker) ExportIfStale(ctx context.Context, maxAge time.Duration) error {
	w.mu.Lock()
	last := w.lastExported
	w.mu.Unlock()

	if !last.IsZero() && time.Since(last) < maxAge {
		return nil
	}
	return w.Export(ctx)
}

// LastExported returns the time of the most recent successful export.
func (w *ExportWorker) LastExported() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastExported
}
