package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jkeats/budgetbuddy/internal/balance"
)

// BalanceHandler serves the derived per-account balances
type BalanceHandler struct {
	balances *balance.Service
}

// NewBalanceHandler creates a balance handler
func NewBalanceHandler(balances *balance.Service) *BalanceHandler {
	return &BalanceHandler{balances: balances}
}

// SetBalanceRequest represents the starting-balance update request
type SetBalanceRequest struct {
	Amount looseNumber `json:"amount"`
}

// BalancesResponse represents the derived balance map
type BalancesResponse struct {
	Balances map[string]float64 `json:"balances"`
}

// GetBalances handles GET /balances
func (h *BalanceHandler) GetBalances(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, BalancesResponse{
		Balances: h.balances.Balances(r.Context()),
	})
}

// SetBalance handles PUT /balances/{account}. The amount is the account's
// explicit starting balance; the displayed balance is re-derived from it.
func (h *BalanceHandler) SetBalance(w http.ResponseWriter, r *http.Request) {
	account := chi.URLParam(r, "account")
	if account == "" {
		respondWithError(w, http.StatusBadRequest, "account name required")
		return
	}

	var req SetBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.balances.SetAccountBalance(r.Context(), account, float64(req.Amount))
	respondWithJSON(w, http.StatusOK, BalancesResponse{
		Balances: h.balances.Balances(r.Context()),
	})
}

// Reconcile handles GET /balances/reconcile. Drift between the materialized
// snapshot and a fresh derivation is reported, never corrected.
func (h *BalanceHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	if err := h.balances.Reconcile(r.Context()); err != nil {
		if errors.Is(err, balance.ErrBalanceDrift) {
			respondWithErrorCode(w, http.StatusConflict, "BALANCE_DRIFT", err.Error())
			return
		}
		respondWithError(w, http.StatusInternalServerError, "failed to reconcile balances")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "consistent"})
}
