package settings

import (
	"context"
	"strings"

	"github.com/jkeats/budgetbuddy/internal/ledger"
	"github.com/jkeats/budgetbuddy/internal/store"
	"github.com/jkeats/budgetbuddy/pkg/logger"
)

// Seed lists used on first load.
var (
	DefaultCategories = []string{
		"Housing",
		"Utilities",
		"Transportation",
		"Food & Dining",
		"Healthcare",
		"Insurance",
		"Debt Payments",
		"Entertainment",
		"Shopping",
		"Education",
		"Gifts & Donations",
		"Personal Care",
		"Subscriptions",
		"Other",
	}

	DefaultAccounts = []string{
		"Checking",
		"Savings",
		"Credit Card",
		"Investment Account",
		"Emergency Fund",
		"Business Account",
	}
)

// RowSource yields the current rows of one ledger section. Used for the
// deletion guard: names in active use cannot be removed.
type RowSource interface {
	Rows(ctx context.Context) []ledger.Row
}

// Service owns the category and account lists
type Service struct {
	categories *ListSetting
	accounts   *ListSetting
	sources    []RowSource
	log        *logger.Logger
}

// NewService creates the settings service. sources should cover every ledger
// section so the deletion guard sees all references; it is set after
// construction to break the wiring cycle with the ledgers.
func NewService(st *store.Store, log *logger.Logger) *Service {
	return &Service{
		categories: NewListSetting(st, store.KeyCategories, DefaultCategories),
		accounts:   NewListSetting(st, store.KeyAccounts, DefaultAccounts),
		log:        log.WithField("component", "settings"),
	}
}

// BindRowSources registers the ledgers consulted by the deletion guard
func (s *Service) BindRowSources(sources ...RowSource) {
	s.sources = sources
}

// Categories returns the current category list
func (s *Service) Categories(ctx context.Context) []string {
	return s.categories.Get(ctx)
}

// Accounts returns the current account list
func (s *Service) Accounts(ctx context.Context) []string {
	return s.accounts.Get(ctx)
}

// AddCategory appends a new category name
func (s *Service) AddCategory(ctx context.Context, name string) ([]string, error) {
	return s.add(ctx, s.categories, name)
}

// RemoveCategory deletes a category that is not in use by any row
func (s *Service) RemoveCategory(ctx context.Context, name string) ([]string, error) {
	return s.remove(ctx, s.categories, name, func(r ledger.Row) string { return r.Category })
}

// AddAccount appends a new account name
func (s *Service) AddAccount(ctx context.Context, name string) ([]string, error) {
	return s.add(ctx, s.accounts, name)
}

// RemoveAccount deletes an account that is not in use by any row
func (s *Service) RemoveAccount(ctx context.Context, name string) ([]string, error) {
	return s.remove(ctx, s.accounts, name, func(r ledger.Row) string { return r.Account })
}

// add enforces the no-duplicates contract on behalf of callers
func (s *Service) add(ctx context.Context, list *ListSetting, name string) ([]string, error) {
	name = strings.TrimSpace(name)
	current := list.Get(ctx)

	if name == "" {
		return current, ErrEmptyName
	}
	if contains(current, name) {
		return current, ErrDuplicateEntry
	}

	return list.Update(ctx, func(prev []string) []string {
		if contains(prev, name) {
			return prev
		}
		return append(prev, name)
	}), nil
}

// remove refuses when the name is still referenced or is the last entry;
// the list is returned unchanged in those cases.
func (s *Service) remove(ctx context.Context, list *ListSetting, name string, field func(ledger.Row) string) ([]string, error) {
	name = strings.TrimSpace(name)
	current := list.Get(ctx)

	if !contains(current, name) {
		return current, ErrEntryNotFound
	}
	if len(current) <= 1 {
		return current, ErrMinimumEntries
	}
	if s.inUse(ctx, name, field) {
		return current, ErrEntryInUse
	}

	return list.Update(ctx, func(prev []string) []string {
		out := prev[:0]
		for _, v := range prev {
			if v != name {
				out = append(out, v)
			}
		}
		return out
	}), nil
}

func (s *Service) inUse(ctx context.Context, name string, field func(ledger.Row) string) bool {
	for _, src := range s.sources {
		for _, row := range src.Rows(ctx) {
			if field(row) == name {
				return true
			}
		}
	}
	return false
}

func contains(values []string, name string) bool {
	for _, v := range values {
		if v == name {
			return true
		}
	}
	return false
}
