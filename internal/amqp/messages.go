package amqp

import (
	"encoding/json"
	"time"
)

// RefreshMessage announces that the ledger's canonical set was replaced.
// It carries only the headline numbers; consumers that need detail read
// the warm cache themselves.
type RefreshMessage struct {
	Transactions int       `json:"transactions"`
	BalanceCents int64     `json:"balance_cents"`
	Timestamp    time.Time `json:"timestamp"`
}

func NewRefreshMessage(transactions int, balanceCents int64) *RefreshMessage {
	return &RefreshMessage{
		Transactions: transactions,
		BalanceCents: balanceCents,
		Timestamp:    time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *RefreshMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// RefreshMessageFromJSON creates a message from JSON bytes.
func RefreshMessageFromJSON(data []byte) (*RefreshMessage, error) {
	var msg RefreshMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
