package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"ledgerview/internal/core"
	"ledgerview/internal/ledger"
)

// viewResponse is the paginated transaction view plus the load state the
// presentation layer binds against.
type viewResponse struct {
	Transactions []core.Transaction `json:"transactions"`
	Total        int                `json:"total"`
	Page         int                `json:"page"`
	PageSize     int                `json:"page_size"`
	State        ledger.LoadState   `json:"state"`
	Error        string             `json:"error,omitempty"`
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	view := s.store.View()
	state, errMsg := s.store.State()
	page, pageSize := parsePagination(r.URL.Query())

	start := (page - 1) * pageSize
	if start > len(view) {
		start = len(view)
	}
	end := start + pageSize
	if end > len(view) {
		end = len(view)
	}

	writeJSON(w, http.StatusOK, viewResponse{
		Transactions: view[start:end],
		Total:        len(view),
		Page:         page,
		PageSize:     pageSize,
		State:        state,
		Error:        errMsg,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, s.store.Stats())
}

func (s *Server) handleFilters(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, s.store.Filters())
	case http.MethodPatch, http.MethodPost:
		patch, err := parseFilterPatch(r.Body)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid filter payload")
			return
		}
		s.store.SetFilters(patch)
		writeJSON(w, http.StatusOK, s.store.Filters())
	case http.MethodDelete:
		s.store.ClearFilters()
		writeJSON(w, http.StatusOK, s.store.Filters())
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleSort(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, s.store.Sorting())
	case http.MethodPut, http.MethodPost:
		spec, err := parseSortSpec(r.Body)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid sort payload")
			return
		}
		s.store.SetSort(spec)
		writeJSON(w, http.StatusOK, s.store.Sorting())
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleRefresh replaces the canonical set with a fresh batch from the
// data source. A failed load keeps the previous snapshot visible and is
// retryable.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	count := s.defaultCount
	if v := strings.TrimSpace(r.URL.Query().Get("count")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			count = n
		}
	}

	if err := s.store.Load(r.Context(), count); err != nil {
		state, errMsg := s.store.State()
		writeJSON(w, http.StatusBadGateway, map[string]any{
			"state": state,
			"error": errMsg,
		})
		return
	}

	state, _ := s.store.State()
	writeJSON(w, http.StatusOK, map[string]any{
		"state":        state,
		"transactions": s.store.Len(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.started).String(),
	})
}

// handleReady reports not-ready until the store has loaded a canonical
// set, or when the last load failed with nothing retained.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	state, errMsg := s.store.State()

	ready := state == ledger.StateSuccess || s.store.Len() > 0
	status := http.StatusOK
	if !ready {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, map[string]any{
		"status":       string(state),
		"error":        errMsg,
		"transactions": s.store.Len(),
	})
}
