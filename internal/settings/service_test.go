package settings_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jkeats/budgetbuddy/internal/ledger"
	"github.com/jkeats/budgetbuddy/internal/settings"
	"github.com/jkeats/budgetbuddy/internal/store"
	"github.com/jkeats/budgetbuddy/pkg/logger"
)

type stubRows struct {
	rows []ledger.Row
}

func (s *stubRows) Rows(context.Context) []ledger.Row { return s.rows }

func newService(t *testing.T) (*settings.Service, *store.Store) {
	t.Helper()

	st := store.New(store.NewMemory(), logger.Discard())
	return settings.NewService(st, logger.Discard()), st
}

func TestDefaultsSeededOnce(t *testing.T) {
	ctx := context.Background()
	svc, st := newService(t)

	categories := svc.Categories(ctx)
	assert.Equal(t, settings.DefaultCategories, categories)
	assert.Equal(t, settings.DefaultAccounts, svc.Accounts(ctx))

	// The seed is persisted on first access
	var stored []string
	require.True(t, st.GetJSON(ctx, store.KeyCategories, &stored))
	assert.Equal(t, settings.DefaultCategories, stored)

	// Seeding is idempotent: user edits survive subsequent reads
	_, err := svc.AddCategory(ctx, "Pets")
	require.NoError(t, err)
	assert.Contains(t, svc.Categories(ctx), "Pets")
	assert.Len(t, svc.Categories(ctx), len(settings.DefaultCategories)+1)
}

func TestDefaultsSeededOverStoredNull(t *testing.T) {
	ctx := context.Background()
	svc, st := newService(t)

	// A stored JSON null decodes cleanly into a nil list; it must behave
	// like an absent value, not an empty one.
	st.SetJSON(ctx, store.KeyAccounts, nil)

	assert.Equal(t, settings.DefaultAccounts, svc.Accounts(ctx))

	var stored []string
	require.True(t, st.GetJSON(ctx, store.KeyAccounts, &stored))
	assert.Equal(t, settings.DefaultAccounts, stored)
}

func TestDefaultsNotReseededOverEdits(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	_, err := svc.RemoveAccount(ctx, "Business Account")
	require.NoError(t, err)

	accounts := svc.Accounts(ctx)
	assert.NotContains(t, accounts, "Business Account")
	assert.Len(t, accounts, len(settings.DefaultAccounts)-1)
}

func TestAddCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("appends and trims", func(t *testing.T) {
		svc, _ := newService(t)

		got, err := svc.AddCategory(ctx, "  Pets  ")
		require.NoError(t, err)
		assert.Equal(t, "Pets", got[len(got)-1])
	})

	t.Run("rejects empty names", func(t *testing.T) {
		svc, _ := newService(t)

		got, err := svc.AddCategory(ctx, "   ")
		assert.ErrorIs(t, err, settings.ErrEmptyName)
		assert.Equal(t, settings.DefaultCategories, got)
	})

	t.Run("rejects duplicates", func(t *testing.T) {
		svc, _ := newService(t)

		got, err := svc.AddCategory(ctx, "Housing")
		assert.ErrorIs(t, err, settings.ErrDuplicateEntry)
		assert.Equal(t, settings.DefaultCategories, got)
	})
}

func TestRemoveCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("removes an unused entry", func(t *testing.T) {
		svc, _ := newService(t)
		svc.BindRowSources(&stubRows{})

		got, err := svc.RemoveCategory(ctx, "Shopping")
		require.NoError(t, err)
		assert.NotContains(t, got, "Shopping")
	})

	t.Run("refuses an entry in use", func(t *testing.T) {
		svc, _ := newService(t)
		svc.BindRowSources(&stubRows{rows: []ledger.Row{
			{Category: "Shopping", Account: "Checking"},
		}})

		got, err := svc.RemoveCategory(ctx, "Shopping")
		assert.ErrorIs(t, err, settings.ErrEntryInUse)
		assert.Contains(t, got, "Shopping")
	})

	t.Run("checks every bound source", func(t *testing.T) {
		svc, _ := newService(t)
		svc.BindRowSources(
			&stubRows{},
			&stubRows{rows: []ledger.Row{{Category: "Education"}}},
		)

		_, err := svc.RemoveCategory(ctx, "Education")
		assert.ErrorIs(t, err, settings.ErrEntryInUse)
	})

	t.Run("unknown entry", func(t *testing.T) {
		svc, _ := newService(t)

		_, err := svc.RemoveCategory(ctx, "Nonexistent")
		assert.ErrorIs(t, err, settings.ErrEntryNotFound)
	})
}

func TestRemoveAccountGuards(t *testing.T) {
	ctx := context.Background()

	t.Run("refuses an account referenced by rows", func(t *testing.T) {
		svc, _ := newService(t)
		svc.BindRowSources(&stubRows{rows: []ledger.Row{
			{Category: "Housing", Account: "Savings"},
		}})

		got, err := svc.RemoveAccount(ctx, "Savings")
		assert.ErrorIs(t, err, settings.ErrEntryInUse)
		assert.Contains(t, got, "Savings")
	})

	t.Run("refuses to empty the list", func(t *testing.T) {
		svc, _ := newService(t)
		svc.BindRowSources(&stubRows{})

		var err error
		for _, name := range settings.DefaultAccounts[1:] {
			_, err = svc.RemoveAccount(ctx, name)
			require.NoError(t, err)
		}

		got, err := svc.RemoveAccount(ctx, settings.DefaultAccounts[0])
		assert.ErrorIs(t, err, settings.ErrMinimumEntries)
		assert.Equal(t, []string{settings.DefaultAccounts[0]}, got)
	})
}
