package balance

import (
	"strings"

	"github.com/jkeats/budgetbuddy/internal/ledger"
)

// OtherCategory is the synthetic bucket for rows with a blank category
const OtherCategory = "Other"

// CategoryTotal is one slice of the spending-by-category breakdown
type CategoryTotal struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// StartingBalances derives the per-account balance before any expense rows
// are applied: the explicit user adjustment plus all income posted to the
// account. It recomputes from the full income log on every call — income is
// never accumulated into a stored total, so it can never be double-counted
// however often the income-changed signal fires.
func StartingBalances(adjustments map[string]float64, income []ledger.Row) map[string]float64 {
	starting := make(map[string]float64, len(adjustments))
	for account, amount := range adjustments {
		starting[account] = amount
	}

	for _, r := range income {
		if r.Account == "" {
			continue
		}
		starting[r.Account] += r.Amount
	}

	return starting
}

// RunningBalances folds expense rows in stored order against each account's
// starting balance. The i-th result is the post-row balance of rows[i]'s
// account; rows on different accounts advance independent running totals
// within the same pass.
func RunningBalances(rows []ledger.Row, starting map[string]float64) []float64 {
	running := make(map[string]float64, len(starting))
	for account, amount := range starting {
		running[account] = amount
	}

	balances := make([]float64, len(rows))
	for i, r := range rows {
		next := running[r.Account] - r.Amount
		running[r.Account] = next
		balances[i] = next
	}

	return balances
}

// CategoryTotals groups rows by category in first-appearance order, summing
// non-negative amounts only. A blank or whitespace-only category lands in the
// Other bucket. The clamp applies to aggregation, not to ledger display.
func CategoryTotals(rows []ledger.Row) []CategoryTotal {
	index := make(map[string]int)
	var totals []CategoryTotal

	for _, r := range rows {
		category := strings.TrimSpace(r.Category)
		if category == "" {
			category = OtherCategory
		}

		amount := r.Amount
		if amount < 0 {
			amount = 0
		}

		if i, ok := index[category]; ok {
			totals[i].Amount += amount
			continue
		}
		index[category] = len(totals)
		totals = append(totals, CategoryTotal{Category: category, Amount: amount})
	}

	return totals
}

// Shares computes each slice's percentage of the denominator, typically total
// income. A non-positive denominator falls back to the sum of the slices.
// Values are not clamped: shares may exceed 100 when spending outruns income.
func Shares(totals []CategoryTotal, denominator float64) []float64 {
	if denominator <= 0 {
		denominator = 0
		for _, t := range totals {
			denominator += t.Amount
		}
	}

	shares := make([]float64, len(totals))
	if denominator <= 0 {
		return shares
	}

	for i, t := range totals {
		shares[i] = t.Amount / denominator * 100
	}
	return shares
}

// Total sums the amounts of a row set
func Total(rows []ledger.Row) float64 {
	var total float64
	for _, r := range rows {
		total += r.Amount
	}
	return total
}
