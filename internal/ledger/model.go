package ledger

import "strings"

// Type discriminates how a row moves money: income rows increase the account
// balance, expense rows reduce it. The sign is implied by the type; Amount
// stays a magnitude.
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// Section identifies one of the three independently-persisted ledgers
type Section string

const (
	SectionIncome        Section = "income"
	SectionFixed         Section = "fixed"
	SectionDiscretionary Section = "discretionary"
)

// ParseSection maps a section name to its Section
func ParseSection(s string) (Section, error) {
	switch Section(s) {
	case SectionIncome, SectionFixed, SectionDiscretionary:
		return Section(s), nil
	}
	return "", ErrUnknownSection
}

// Row is one ledger entry. Account and Category are soft references by name:
// a dangling reference is treated as unassigned, never as corruption.
type Row struct {
	ID       string  `json:"id"`
	Date     string  `json:"date"` // YYYY-MM-DD
	Account  string  `json:"account"`
	Category string  `json:"category"`
	Payee    string  `json:"payee"`
	Amount   float64 `json:"amount"`
	Type     Type    `json:"type"`
}

// Patch is a partial row update; nil fields are left unchanged
type Patch struct {
	Date     *string
	Account  *string
	Category *string
	Payee    *string
	Amount   *float64
}

func (p Patch) apply(r Row) Row {
	if p.Date != nil {
		r.Date = *p.Date
	}
	if p.Account != nil {
		r.Account = *p.Account
	}
	if p.Category != nil {
		r.Category = *p.Category
	}
	if p.Payee != nil {
		r.Payee = *p.Payee
	}
	if p.Amount != nil {
		r.Amount = *p.Amount
	}
	return r
}

// PayeeSuggestions returns the distinct non-blank payees of rows in
// first-appearance order, bounded to the most recent limit entries. Input
// suggestions only, not authoritative data.
func PayeeSuggestions(rows []Row, limit int) []string {
	seen := make(map[string]struct{})
	var payees []string
	for _, r := range rows {
		p := strings.TrimSpace(r.Payee)
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		payees = append(payees, p)
	}

	if limit > 0 && len(payees) > limit {
		payees = payees[len(payees)-limit:]
	}
	return payees
}
