package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jkeats/budgetbuddy/internal/balance"
	"github.com/jkeats/budgetbuddy/internal/goals"
)

// AccountLister supplies the account list for defaulting the return account
// when a goal is deleted.
type AccountLister interface {
	Accounts(ctx context.Context) []string
}

// GoalsHandler serves the savings goal CRUD and transfers
type GoalsHandler struct {
	goals    *goals.Service
	accounts AccountLister
}

// NewGoalsHandler creates a goals handler
func NewGoalsHandler(svc *goals.Service, accounts AccountLister) *GoalsHandler {
	return &GoalsHandler{
		goals:    svc,
		accounts: accounts,
	}
}

// CreateGoalRequest represents the goal creation request
type CreateGoalRequest struct {
	Name    string      `json:"name"`
	Target  looseNumber `json:"target"`
	Current looseNumber `json:"current"`
	Date    string      `json:"date"`
}

// UpdateGoalRequest represents the partial goal update request
type UpdateGoalRequest struct {
	Name    *string      `json:"name"`
	Target  *looseNumber `json:"target"`
	Current *looseNumber `json:"current"`
	Date    *string      `json:"date"`
}

// TransferRequest represents the earmark-to-goal request
type TransferRequest struct {
	FromAccount string      `json:"from_account"`
	Amount      looseNumber `json:"amount"`
}

// GoalResponse is a goal with its derived progress percentage
type GoalResponse struct {
	goals.Goal
	Progress float64 `json:"progress"`
}

func toGoalResponse(g goals.Goal) GoalResponse {
	return GoalResponse{Goal: g, Progress: g.Progress()}
}

// GetGoals handles GET /goals
func (h *GoalsHandler) GetGoals(w http.ResponseWriter, r *http.Request) {
	list := h.goals.List(r.Context())

	responses := make([]GoalResponse, 0, len(list))
	for _, g := range list {
		responses = append(responses, toGoalResponse(g))
	}
	respondWithJSON(w, http.StatusOK, responses)
}

// CreateGoal handles POST /goals
func (h *GoalsHandler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	var req CreateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	g := h.goals.Add(r.Context(), goals.Goal{
		Name:    req.Name,
		Target:  float64(req.Target),
		Current: float64(req.Current),
		Date:    req.Date,
	})
	respondWithJSON(w, http.StatusCreated, toGoalResponse(g))
}

// UpdateGoal handles PATCH /goals/{id}
func (h *GoalsHandler) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	var req UpdateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	patch := goals.Patch{
		Name: req.Name,
		Date: req.Date,
	}
	if req.Target != nil {
		target := float64(*req.Target)
		patch.Target = &target
	}
	if req.Current != nil {
		current := float64(*req.Current)
		patch.Current = &current
	}

	g, err := h.goals.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		h.respondGoalError(w, err, "failed to update goal")
		return
	}

	respondWithJSON(w, http.StatusOK, toGoalResponse(g))
}

// Transfer handles POST /goals/{id}/transfer: earmarks money from a real
// account into the goal's pseudo-account.
func (h *GoalsHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	g, err := h.goals.Transfer(r.Context(), chi.URLParam(r, "id"), req.FromAccount, float64(req.Amount))
	if err != nil {
		h.respondGoalError(w, err, "failed to transfer to goal")
		return
	}

	respondWithJSON(w, http.StatusOK, toGoalResponse(g))
}

// DeleteGoal handles DELETE /goals/{id}?return_to=. Earmarked money flows
// back to the named account, defaulting to the first configured account.
func (h *GoalsHandler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	returnTo := r.URL.Query().Get("return_to")
	if returnTo == "" {
		if accounts := h.accounts.Accounts(r.Context()); len(accounts) > 0 {
			returnTo = accounts[0]
		}
	}

	if err := h.goals.Delete(r.Context(), chi.URLParam(r, "id"), returnTo); err != nil {
		h.respondGoalError(w, err, "failed to delete goal")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *GoalsHandler) respondGoalError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, goals.ErrGoalNotFound):
		respondWithError(w, http.StatusNotFound, "goal not found")
	case errors.Is(err, goals.ErrMissingName):
		respondWithError(w, http.StatusBadRequest, "goal name is required")
	case errors.Is(err, balance.ErrInvalidAmount):
		respondWithError(w, http.StatusBadRequest, "transfer amount must be positive")
	case errors.Is(err, balance.ErrInsufficientFunds):
		respondWithErrorCode(w, http.StatusConflict, "INSUFFICIENT_BALANCE", err.Error())
	default:
		respondWithError(w, http.StatusInternalServerError, fallback)
	}
}
