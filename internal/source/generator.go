// Package source supplies transaction records to the view store. The
// engine is agnostic to their origin; this package provides a synthetic
// generator plus a decorator that persists batches to the warm cache.
package source

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"ledgerview/internal/core"
)

const maxBatch = 100000

var descriptions = []string{
	"Salary payment",
	"Grocery store",
	"Online purchase",
	"Utility bill",
	"Rent payment",
	"Savings top-up",
	"Card refund",
	"Subscription renewal",
	"Restaurant",
	"Internal move between accounts",
	"ATM cash",
	"Insurance premium",
}

// Generator produces synthetic transactions spread over the past year.
// A non-zero seed makes the output reproducible across runs.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
	seq int
}

func NewGenerator(seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// FetchTransactions returns up to count synthetic records. IDs carry a
// searchable zero-padded sequence prefix (tx0001-...) plus a uuid
// segment for uniqueness.
func (g *Generator) FetchTransactions(_ context.Context, count int) ([]core.Transaction, error) {
	if count < 0 {
		return nil, fmt.Errorf("invalid count %d", count)
	}
	if count > maxBatch {
		count = maxBatch
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	currencies := core.Currencies()
	now := time.Now().UTC()
	txs := make([]core.Transaction, 0, count)

	for i := 0; i < count; i++ {
		g.seq++

		age := time.Duration(g.rng.Int63n(int64(365 * 24 * time.Hour)))
		date := now.Add(-age)

		tx := core.Transaction{
			ID:          fmt.Sprintf("tx%04d-%s", g.seq, strings.Split(uuid.NewString(), "-")[0]),
			Type:        g.randomType(),
			Amount:      core.Money{Cents: 100 + g.rng.Int63n(499901)},
			Currency:    currencies[g.rng.Intn(len(currencies))],
			Date:        date,
			Description: descriptions[g.rng.Intn(len(descriptions))],
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// randomType weights deposits and withdrawals evenly, with transfers as
// the less common case.
func (g *Generator) randomType() core.TransactionType {
	switch n := g.rng.Intn(10); {
	case n < 4:
		return core.Deposit
	case n < 8:
		return core.Withdraw
	default:
		return core.Transfer
	}
}
