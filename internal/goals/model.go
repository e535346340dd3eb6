package goals

import "fmt"

// Goal is one savings target. Current only moves through transfers or a
// direct edit.
type Goal struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Target  float64 `json:"target"`
	Current float64 `json:"current"`
	Date    string  `json:"date"` // target completion date, YYYY-MM-DD
}

// Progress returns the percentage toward the target, capped at 100
func (g Goal) Progress() float64 {
	if g.Target <= 0 {
		return 0
	}
	progress := g.Current / g.Target * 100
	if progress > 100 {
		return 100
	}
	return progress
}

// PseudoAccount names the account-balance-map entry holding the goal's
// earmarked money.
func (g Goal) PseudoAccount() string {
	return PseudoAccount(g.Name)
}

// PseudoAccount derives the pseudo-account name for a goal name
func PseudoAccount(name string) string {
	return fmt.Sprintf("%s Account", name)
}

// Patch is a partial goal update; nil fields are left unchanged
type Patch struct {
	Name    *string
	Target  *float64
	Current *float64
	Date    *string
}

func (p Patch) apply(g Goal) Goal {
	if p.Name != nil {
		g.Name = *p.Name
	}
	if p.Target != nil {
		g.Target = *p.Target
	}
	if p.Current != nil {
		g.Current = *p.Current
	}
	if p.Date != nil {
		g.Date = *p.Date
	}
	return g
}
