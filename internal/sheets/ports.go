// Package sheets defines the outbound port for exporting derived
// balance history, plus its Google Sheets implementation.
package sheets

import (
	"context"

	"ledgerview/internal/core"
)

// HistoryWriter exports a balance history snapshot to an external
// spreadsheet or similar destination.
type HistoryWriter interface {
	// AppendBalanceHistory appends one row per balance point, tagged
	// with the snapshot's current balance.
	AppendBalanceHistory(ctx context.Context, points []core.BalancePoint, current core.Money) error
}
