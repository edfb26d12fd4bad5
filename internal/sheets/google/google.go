// Package google implements the balance-history export against the
// Google Sheets API using service-account credentials.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"ledgerview/internal/core"
	ports "ledgerview/internal/sheets"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	historySheet  string
}

var _ ports.HistoryWriter = (*Client)(nil)

// NewFromEnv creates a Sheets client from environment variables.
// Required: GOOGLE_SPREADSHEET_ID plus service-account credentials via
// GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS. Optional: GOOGLE_HISTORY_SHEET_NAME
// (default "BalanceHistory").
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	historySheet := strings.TrimSpace(os.Getenv("GOOGLE_HISTORY_SHEET_NAME"))
	if historySheet == "" {
		historySheet = "BalanceHistory"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		historySheet:  historySheet,
	}, nil
}

func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		data, err := os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		credentialsJSON = data
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// AppendBalanceHistory appends one row per balance point: export
// timestamp, day, end-of-day balance, day transaction count and the
// snapshot's current balance.
func (c *Client) AppendBalanceHistory(ctx context.Context, points []core.BalancePoint, current core.Money) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}
	if len(points) == 0 {
		return nil
	}

	exportedAt := time.Now().UTC().Format(time.RFC3339)
	currentUnits := float64(current.Cents) / 100.0

	values := make([][]any, 0, len(points))
	for _, p := range points {
		values = append(values, []any{
			exportedAt,
			p.Day.Format("2006-01-02"),
			float64(p.Balance.Cents) / 100.0,
			p.Transactions,
			currentUnits,
		})
	}

	rng := fmt.Sprintf("%s!A:E", c.historySheet)
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rng, &gsheet.ValueRange{Values: values}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append to sheet %s: %w", c.historySheet, err)
	}

	slog.InfoContext(ctx, "Exported balance history",
		"component", "sheets",
		"rows", len(values),
		"sheet", c.historySheet)
	return nil
}
