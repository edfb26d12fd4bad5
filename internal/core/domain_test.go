package core

import (
	"errors"
	"testing"
	"time"
)

func validTransaction() Transaction {
	return Transaction{
		ID:          "tx0001-abc",
		Type:        Deposit,
		Amount:      Money{Cents: 10000},
		Currency:    EUR,
		Date:        time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC),
		Description: "Salary payment",
	}
}

func TestTransactionValidate(t *testing.T) {
	if err := validTransaction().Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		name    string
		mutate  func(*Transaction)
		wantErr error
	}{
		{"empty id", func(tx *Transaction) { tx.ID = "  " }, ErrEmptyID},
		{"bad type", func(tx *Transaction) { tx.Type = "refund" }, ErrInvalidType},
		{"negative amount", func(tx *Transaction) { tx.Amount.Cents = -1 }, ErrNegativeAmount},
		{"bad currency", func(tx *Transaction) { tx.Currency = "XXX" }, ErrInvalidCurrency},
		{"zero date", func(tx *Transaction) { tx.Date = time.Time{} }, ErrZeroDate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tx := validTransaction()
			tc.mutate(&tx)
			if err := tx.Validate(); !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestZeroAmountIsValid(t *testing.T) {
	tx := validTransaction()
	tx.Amount.Cents = 0
	if err := tx.Validate(); err != nil {
		t.Fatalf("zero amount should be valid, got %v", err)
	}
}

func TestDayOf(t *testing.T) {
	ts := time.Date(2024, 3, 15, 23, 59, 59, 123, time.UTC)
	day := DayOf(ts)
	want := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	if !day.Equal(want) {
		t.Fatalf("DayOf = %v, want %v", day, want)
	}
}
