package source

import (
	"context"
	"fmt"
	"log/slog"

	"ledgerview/internal/core"
	"ledgerview/internal/storage"
)

// Source supplies raw transaction records, up to count per call.
type Source interface {
	FetchTransactions(ctx context.Context, count int) ([]core.Transaction, error)
}

// CachingSource wraps a Source and writes every fetched batch through
// to the SQLite warm cache. Cache failures never fail a fetch; the
// cache is best-effort only.
type CachingSource struct {
	inner Source
	repo  *storage.Repository
}

func NewCachingSource(inner Source, repo *storage.Repository) *CachingSource {
	return &CachingSource{inner: inner, repo: repo}
}

func (c *CachingSource) FetchTransactions(ctx context.Context, count int) ([]core.Transaction, error) {
	txs, err := c.inner.FetchTransactions(ctx, count)
	if err != nil {
		return nil, err
	}

	if c.repo != nil {
		if err := c.repo.ReplaceAll(ctx, txs); err != nil {
			slog.WarnContext(ctx, "Failed to persist transactions to warm cache",
				"component", "source", "error", err)
		}
	}
	return txs, nil
}

// WarmStart returns the previously cached snapshot, or nil when the
// cache is empty or absent.
func (c *CachingSource) WarmStart(ctx context.Context) ([]core.Transaction, error) {
	if c.repo == nil {
		return nil, nil
	}
	txs, err := c.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("warm start: %w", err)
	}
	return txs, nil
}
