package balance

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/jkeats/budgetbuddy/internal/events"
	"github.com/jkeats/budgetbuddy/internal/ledger"
	"github.com/jkeats/budgetbuddy/internal/store"
	"github.com/jkeats/budgetbuddy/pkg/logger"
)

// driftTolerance absorbs IEEE double noise when comparing a materialized
// snapshot against freshly derived balances.
const driftTolerance = 1e-9

// RowSource yields the current rows of one ledger section
type RowSource interface {
	Rows(ctx context.Context) []ledger.Row
}

// ListProvider supplies the current account list so every known account
// appears in the derived map even with no activity.
type ListProvider interface {
	Accounts(ctx context.Context) []string
}

// Service owns the explicit per-account adjustments (the user-entered
// starting balances, including goal pseudo-accounts) and derives displayed
// balances from them plus the transaction log on every read. Nothing here
// accumulates: the stored adjustment map is the only authoritative scalar
// state, everything else is recomputed from the rows.
type Service struct {
	store    *store.Store
	lists    ListProvider
	income   RowSource
	expenses []RowSource
	bus      *events.Bus
	log      *logger.Logger
}

// NewService creates the balance service
func NewService(st *store.Store, lists ListProvider, income RowSource, expenses []RowSource, bus *events.Bus, log *logger.Logger) *Service {
	return &Service{
		store:    st,
		lists:    lists,
		income:   income,
		expenses: expenses,
		bus:      bus,
		log:      log.WithField("component", "balance"),
	}
}

// Start subscribes to ledger mutations and rebroadcasts derived balances so
// sibling sections can refresh. It deliberately does not subscribe to
// BalancesChanged: reacting to the signal it emits would loop.
func (s *Service) Start(ctx context.Context) {
	rebroadcast := func(events.Event) {
		s.broadcast(ctx)
	}
	s.bus.Subscribe(events.IncomeChangedName, rebroadcast)
	s.bus.Subscribe(events.TransactionsChangedName, rebroadcast)
}

// Adjustments returns the persisted explicit starting-balance map
func (s *Service) Adjustments(ctx context.Context) map[string]float64 {
	adjustments := make(map[string]float64)
	s.store.GetJSON(ctx, store.KeyAccountBalances, &adjustments)
	return adjustments
}

// SetAccountBalance records the user-entered starting balance for an account
// and rebroadcasts.
func (s *Service) SetAccountBalance(ctx context.Context, account string, amount float64) {
	adjustments := s.Adjustments(ctx)
	adjustments[account] = amount
	s.saveAdjustments(ctx, adjustments)
	s.broadcast(ctx)
}

// StartingBalances derives each account's balance before expenses
func (s *Service) StartingBalances(ctx context.Context) map[string]float64 {
	starting := StartingBalances(s.Adjustments(ctx), s.income.Rows(ctx))

	// Accounts with no adjustment and no activity still show a zero balance
	for _, account := range s.lists.Accounts(ctx) {
		if _, ok := starting[account]; !ok {
			starting[account] = 0
		}
	}
	return starting
}

// Balances derives the displayed per-account balance: starting balance minus
// all expense rows posted to the account across every expense ledger.
func (s *Service) Balances(ctx context.Context) map[string]float64 {
	balances := s.StartingBalances(ctx)

	for _, src := range s.expenses {
		for _, r := range src.Rows(ctx) {
			balances[r.Account] -= r.Amount
		}
	}

	return balances
}

// RunningBalances computes post-row balances for an expense ledger's rows
func (s *Service) RunningBalances(ctx context.Context, rows []ledger.Row) []float64 {
	return RunningBalances(rows, s.StartingBalances(ctx))
}

// Transfer moves amount between two adjustment entries after checking the
// source's derived balance. Used for earmarking money to goal
// pseudo-accounts and between real accounts.
func (s *Service) Transfer(ctx context.Context, from, to string, amount float64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	available := s.Balances(ctx)[from]
	if available < amount {
		return fmt.Errorf("%w: %q holds %.2f, need %.2f", ErrInsufficientFunds, from, available, amount)
	}

	adjustments := s.Adjustments(ctx)
	adjustments[from] -= amount
	adjustments[to] += amount
	s.saveAdjustments(ctx, adjustments)
	s.broadcast(ctx)
	return nil
}

// ReleaseAccount folds an account's whole adjustment into another account and
// removes the entry. Used when a goal is deleted and its earmarked money
// returns to a real account.
func (s *Service) ReleaseAccount(ctx context.Context, account, returnTo string) error {
	adjustments := s.Adjustments(ctx)
	amount, ok := adjustments[account]
	if !ok {
		return ErrAccountNotFound
	}

	delete(adjustments, account)
	adjustments[returnTo] += amount
	s.saveAdjustments(ctx, adjustments)
	s.broadcast(ctx)
	return nil
}

// Reconcile compares the last materialized snapshot against a fresh
// derivation. Divergence is a defect, never silently corrected here.
func (s *Service) Reconcile(ctx context.Context) error {
	snapshot := make(map[string]float64)
	if !s.store.GetJSON(ctx, store.KeyBalancesSnapshot, &snapshot) {
		// Nothing materialized yet, nothing to drift from
		return nil
	}

	derived := s.Balances(ctx)

	var drifted []string
	for account, want := range derived {
		if math.Abs(snapshot[account]-want) > driftTolerance {
			drifted = append(drifted, account)
		}
	}
	for account := range snapshot {
		if _, ok := derived[account]; !ok {
			drifted = append(drifted, account)
		}
	}

	if len(drifted) > 0 {
		sort.Strings(drifted)
		return fmt.Errorf("%w: %v", ErrBalanceDrift, drifted)
	}
	return nil
}

func (s *Service) saveAdjustments(ctx context.Context, adjustments map[string]float64) {
	s.store.SetJSON(ctx, store.KeyAccountBalances, adjustments)
}

// broadcast materializes the derived map for quick display and notifies
// listeners with the same payload.
func (s *Service) broadcast(ctx context.Context) {
	balances := s.Balances(ctx)
	s.store.SetJSON(ctx, store.KeyBalancesSnapshot, balances)
	s.bus.Publish(events.BalancesChanged{Balances: balances})
}
