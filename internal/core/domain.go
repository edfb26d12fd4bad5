package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Deposit  TransactionType = "deposit"
	Withdraw TransactionType = "withdraw"
	Transfer TransactionType = "transfer"
)

const (
	EUR Currency = "EUR"
	USD Currency = "USD"
	GBP Currency = "GBP"
	JPY Currency = "JPY"
)

type (
	TransactionType string

	Currency string

	Money struct {
		Cents int64 `json:"cents"`
	}

	// Transaction is an immutable ledger record. Amount is a magnitude;
	// the sign is implied by Type, never stored.
	Transaction struct {
		ID          string          `json:"id"`
		Type        TransactionType `json:"type"`
		Amount      Money           `json:"amount"`
		Currency    Currency        `json:"currency"`
		Date        time.Time       `json:"date"`
		Description string          `json:"description,omitempty"`
	}
)

var (
	ErrEmptyID         = errors.New("empty transaction id")
	ErrInvalidType     = errors.New("invalid transaction type")
	ErrInvalidCurrency = errors.New("invalid currency")
	ErrNegativeAmount  = errors.New("negative amount")
	ErrZeroDate        = errors.New("date cannot be zero")
)

// Currencies returns the fixed set of supported currency codes.
func Currencies() []Currency {
	return []Currency{EUR, USD, GBP, JPY}
}

func (t TransactionType) IsValid() bool {
	switch t {
	case Deposit, Withdraw, Transfer:
		return true
	default:
		return false
	}
}

func (c Currency) IsValid() bool {
	switch c {
	case EUR, USD, GBP, JPY:
		return true
	default:
		return false
	}
}

func (m Money) Validate() error {
	if m.Cents < 0 {
		return ErrNegativeAmount
	}
	return nil
}

func (t Transaction) Validate() error {
	if len(strings.TrimSpace(t.ID)) == 0 {
		return ErrEmptyID
	}
	if !t.Type.IsValid() {
		return ErrInvalidType
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if !t.Currency.IsValid() {
		return ErrInvalidCurrency
	}
	if t.Date.IsZero() {
		return ErrZeroDate
	}
	return nil
}

// DayOf truncates a timestamp to its calendar day in UTC.
func DayOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
