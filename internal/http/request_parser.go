package http

// Request parsing for the mutation endpoints. The engine is deliberately
// permissive: malformed filter values are normalized to "no constraint"
// instead of being rejected, matching the non-critical nature of a
// display filter.

import (
	"encoding/json"
	"io"
	"net/url"
	"strconv"
	"strings"
	"time"

	"ledgerview/internal/core"
	"ledgerview/internal/ledger"
)

// parseFilterPatch builds a FilterPatch from a JSON body. Keys absent
// from the body leave the corresponding filter field unchanged; keys
// present with null, empty, or unparseable values clear it.
func parseFilterPatch(body io.Reader) (ledger.FilterPatch, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		return ledger.FilterPatch{}, err
	}

	var patch ledger.FilterPatch
	for key, value := range raw {
		switch key {
		case "date_from":
			t := parseDateValue(value)
			patch.DateFrom = &t
		case "date_to":
			t := parseDateValue(value)
			patch.DateTo = &t
		case "type":
			txType := core.TransactionType(parseStringValue(value))
			if !txType.IsValid() {
				txType = ""
			}
			patch.Type = &txType
		case "currency":
			currency := core.Currency(strings.ToUpper(parseStringValue(value)))
			if !currency.IsValid() {
				currency = ""
			}
			patch.Currency = &currency
		case "min_amount_cents":
			m := core.Money{Cents: parseAmountValue(value)}
			patch.MinAmount = &m
		case "search":
			s := parseStringValue(value)
			patch.Search = &s
		}
	}
	return patch, nil
}

// parseSortSpec reads a sort specification from a JSON body. Invalid
// values degrade to the defaults via Normalize.
func parseSortSpec(body io.Reader) (core.Sort, error) {
	var spec core.Sort
	if err := json.NewDecoder(body).Decode(&spec); err != nil {
		return core.Sort{}, err
	}
	return spec.Normalize(), nil
}

// parsePagination extracts page/page_size query parameters with
// defaults, clamping page_size to a sane ceiling.
func parsePagination(query url.Values) (page, pageSize int) {
	page, pageSize = 1, 50

	if v := strings.TrimSpace(query.Get("page")); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			page = p
		}
	}
	if v := strings.TrimSpace(query.Get("page_size")); v != "" {
		if ps, err := strconv.Atoi(v); err == nil && ps > 0 {
			pageSize = ps
		}
	}
	if pageSize > 500 {
		pageSize = 500
	}
	return page, pageSize
}

// parseDateValue accepts "2006-01-02" or RFC3339; anything else,
// including null, yields the zero time (constraint cleared).
func parseDateValue(raw json.RawMessage) time.Time {
	s := parseStringValue(raw)
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Time{}
}

// parseAmountValue accepts a JSON number or numeric string of cents.
// Unparseable input yields zero, which the filter treats as absent.
func parseAmountValue(raw json.RawMessage) int64 {
	var n int64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	s := parseStringValue(raw)
	if s == "" {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func parseStringValue(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}
