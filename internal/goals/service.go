package goals

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/jkeats/budgetbuddy/internal/balance"
	"github.com/jkeats/budgetbuddy/internal/store"
	"github.com/jkeats/budgetbuddy/pkg/logger"
)

// BalanceKeeper moves earmarked money in and out of goal pseudo-accounts.
// Implemented by the balance service.
type BalanceKeeper interface {
	Transfer(ctx context.Context, from, to string, amount float64) error
	ReleaseAccount(ctx context.Context, account, returnTo string) error
}

// Service owns the persisted goal collection
type Service struct {
	store    *store.Store
	balances BalanceKeeper
	log      *logger.Logger

	newID func() string
}

// NewService creates the goals service
func NewService(st *store.Store, balances BalanceKeeper, log *logger.Logger) *Service {
	return &Service{
		store:    st,
		balances: balances,
		log:      log.WithField("component", "goals"),
		newID:    uuid.NewString,
	}
}

// List returns all goals. Goals support an empty state; nothing is seeded.
func (s *Service) List(ctx context.Context) []Goal {
	var goals []Goal
	s.store.GetJSON(ctx, store.KeyGoals, &goals)
	return goals
}

// Add appends a goal. Blank templates are allowed for the inline-add flow;
// a name is only required once money moves.
func (s *Service) Add(ctx context.Context, g Goal) Goal {
	g.ID = s.newID()
	g.Name = strings.TrimSpace(g.Name)

	goals := append(s.List(ctx), g)
	s.save(ctx, goals)
	return g
}

// Update applies a partial field update. Renaming a goal carries its
// earmarked balance over to the new pseudo-account.
func (s *Service) Update(ctx context.Context, id string, patch Patch) (Goal, error) {
	goals := s.List(ctx)

	for i := range goals {
		if goals[i].ID != id {
			continue
		}

		before := goals[i]
		goals[i] = patch.apply(before)
		goals[i].Name = strings.TrimSpace(goals[i].Name)

		if before.Name != "" && goals[i].Name != before.Name {
			err := s.balances.ReleaseAccount(ctx, before.PseudoAccount(), goals[i].PseudoAccount())
			if err != nil && !errors.Is(err, balance.ErrAccountNotFound) {
				return Goal{}, err
			}
		}

		s.save(ctx, goals)
		return goals[i], nil
	}

	return Goal{}, ErrGoalNotFound
}

// Transfer earmarks money from a real account to the goal: the source
// adjustment is debited, the pseudo-account credited, and Current advanced —
// all or nothing. Total money across accounts and goals is unchanged.
func (s *Service) Transfer(ctx context.Context, id, fromAccount string, amount float64) (Goal, error) {
	goals := s.List(ctx)

	for i := range goals {
		if goals[i].ID != id {
			continue
		}
		if goals[i].Name == "" {
			return Goal{}, ErrMissingName
		}

		if err := s.balances.Transfer(ctx, fromAccount, goals[i].PseudoAccount(), amount); err != nil {
			return Goal{}, err
		}

		goals[i].Current += amount
		s.save(ctx, goals)
		return goals[i], nil
	}

	return Goal{}, ErrGoalNotFound
}

// Delete removes the goal, returning its earmarked balance to the designated
// account first.
func (s *Service) Delete(ctx context.Context, id, returnTo string) error {
	goals := s.List(ctx)

	for i := range goals {
		if goals[i].ID != id {
			continue
		}

		if goals[i].Name != "" {
			err := s.balances.ReleaseAccount(ctx, goals[i].PseudoAccount(), returnTo)
			if err != nil && !errors.Is(err, balance.ErrAccountNotFound) {
				return err
			}
		}

		s.save(ctx, append(goals[:i], goals[i+1:]...))
		return nil
	}

	return ErrGoalNotFound
}

func (s *Service) save(ctx context.Context, goals []Goal) {
	s.store.SetJSON(ctx, store.KeyGoals, goals)
}
