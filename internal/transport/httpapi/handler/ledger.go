package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jkeats/budgetbuddy/internal/balance"
	"github.com/jkeats/budgetbuddy/internal/ledger"
)

// LedgerHandler serves the row CRUD of all three ledger sections
type LedgerHandler struct {
	ledgers  map[ledger.Section]*ledger.Service
	balances *balance.Service
}

// NewLedgerHandler creates a ledger handler
func NewLedgerHandler(ledgers map[ledger.Section]*ledger.Service, balances *balance.Service) *LedgerHandler {
	return &LedgerHandler{
		ledgers:  ledgers,
		balances: balances,
	}
}

// CreateRowRequest represents the row insertion request
type CreateRowRequest struct {
	AfterID string `json:"after_id"`
}

// UpdateRowRequest represents the partial row update request
type UpdateRowRequest struct {
	Date     *string      `json:"date"`
	Account  *string      `json:"account"`
	Category *string      `json:"category"`
	Payee    *string      `json:"payee"`
	Amount   *looseNumber `json:"amount"`
}

// RowsResponse represents a section's rows plus the derived running balances
// for expense sections.
type RowsResponse struct {
	Rows            []ledger.Row `json:"rows"`
	RunningBalances []float64    `json:"running_balances,omitempty"`
}

func (h *LedgerHandler) section(w http.ResponseWriter, r *http.Request) (*ledger.Service, bool) {
	section, err := ledger.ParseSection(chi.URLParam(r, "section"))
	if err != nil {
		respondWithError(w, http.StatusNotFound, "unknown ledger section")
		return nil, false
	}
	svc, ok := h.ledgers[section]
	if !ok {
		respondWithError(w, http.StatusNotFound, "unknown ledger section")
		return nil, false
	}
	return svc, true
}

// GetRows handles GET /ledgers/{section}/rows
func (h *LedgerHandler) GetRows(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.section(w, r)
	if !ok {
		return
	}

	respondWithJSON(w, http.StatusOK, h.rowsResponse(r, svc))
}

// CreateRow handles POST /ledgers/{section}/rows
func (h *LedgerHandler) CreateRow(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.section(w, r)
	if !ok {
		return
	}

	// An absent or malformed body means append at the end
	var req CreateRowRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	row := svc.AddRow(r.Context(), req.AfterID)
	respondWithJSON(w, http.StatusCreated, row)
}

// UpdateRow handles PATCH /ledgers/{section}/rows/{id}
func (h *LedgerHandler) UpdateRow(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.section(w, r)
	if !ok {
		return
	}

	var req UpdateRowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	patch := ledger.Patch{
		Date:     req.Date,
		Account:  req.Account,
		Category: req.Category,
		Payee:    req.Payee,
	}
	if req.Amount != nil {
		amount := float64(*req.Amount)
		patch.Amount = &amount
	}

	row, err := svc.UpdateRow(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		if errors.Is(err, ledger.ErrRowNotFound) {
			respondWithError(w, http.StatusNotFound, "row not found")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "failed to update row")
		return
	}

	respondWithJSON(w, http.StatusOK, row)
}

// DeleteRow handles DELETE /ledgers/{section}/rows/{id}. Removing the last
// row of a floored section is silently refused: the unchanged collection
// comes back with 200, mirroring the table's behavior of keeping one row.
func (h *LedgerHandler) DeleteRow(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.section(w, r)
	if !ok {
		return
	}

	err := svc.RemoveRow(r.Context(), chi.URLParam(r, "id"))
	if err != nil && !errors.Is(err, ledger.ErrMinimumRows) {
		if errors.Is(err, ledger.ErrRowNotFound) {
			respondWithError(w, http.StatusNotFound, "row not found")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "failed to delete row")
		return
	}

	respondWithJSON(w, http.StatusOK, h.rowsResponse(r, svc))
}

// GetPayees handles GET /ledgers/{section}/payees
func (h *LedgerHandler) GetPayees(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.section(w, r)
	if !ok {
		return
	}

	payees := svc.PayeeSuggestions(r.Context())
	respondWithJSON(w, http.StatusOK, map[string][]string{"payees": payees})
}

func (h *LedgerHandler) rowsResponse(r *http.Request, svc *ledger.Service) RowsResponse {
	rows := svc.Rows(r.Context())

	resp := RowsResponse{Rows: rows}
	if svc.Type() == ledger.TypeExpense {
		resp.RunningBalances = h.balances.RunningBalances(r.Context(), rows)
	}
	return resp
}
