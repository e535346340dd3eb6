package handler

import (
	"context"
	"net/http"

	"github.com/jkeats/budgetbuddy/internal/balance"
	"github.com/jkeats/budgetbuddy/internal/ledger"
)

// ReportsHandler serves the derived spending breakdowns
type ReportsHandler struct {
	income   balance.RowSource
	expenses []balance.RowSource
}

// NewReportsHandler creates a reports handler
func NewReportsHandler(income balance.RowSource, expenses []balance.RowSource) *ReportsHandler {
	return &ReportsHandler{
		income:   income,
		expenses: expenses,
	}
}

// CategoryReportResponse pairs each category total with its share of the
// chosen denominator.
type CategoryReportResponse struct {
	Totals []balance.CategoryTotal `json:"totals"`
	Shares []float64               `json:"shares"`
}

// OverviewResponse summarizes the month: totals and spending as a percent of
// income, capped at 100 for the budget bar.
type OverviewResponse struct {
	IncomeTotal     float64 `json:"income_total"`
	ExpenseTotal    float64 `json:"expense_total"`
	PercentOfBudget float64 `json:"percent_of_budget"`
}

// GetCategories handles GET /reports/categories. With ?denominator=income the
// shares are percentages of total income; otherwise of total spending.
func (h *ReportsHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	totals := balance.CategoryTotals(h.expenseRows(ctx))

	var denominator float64
	if r.URL.Query().Get("denominator") == "income" {
		denominator = balance.Total(h.income.Rows(ctx))
	}

	respondWithJSON(w, http.StatusOK, CategoryReportResponse{
		Totals: totals,
		Shares: balance.Shares(totals, denominator),
	})
}

// GetOverview handles GET /reports/overview
func (h *ReportsHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	incomeTotal := balance.Total(h.income.Rows(ctx))
	expenseTotal := balance.Total(h.expenseRows(ctx))

	var percent float64
	if incomeTotal > 0 {
		percent = expenseTotal / incomeTotal * 100
		if percent > 100 {
			percent = 100
		}
	}

	respondWithJSON(w, http.StatusOK, OverviewResponse{
		IncomeTotal:     incomeTotal,
		ExpenseTotal:    expenseTotal,
		PercentOfBudget: percent,
	})
}

func (h *ReportsHandler) expenseRows(ctx context.Context) []ledger.Row {
	var rows []ledger.Row
	for _, src := range h.expenses {
		rows = append(rows, src.Rows(ctx)...)
	}
	return rows
}
