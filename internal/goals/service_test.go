package goals_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jkeats/budgetbuddy/internal/balance"
	"github.com/jkeats/budgetbuddy/internal/events"
	"github.com/jkeats/budgetbuddy/internal/goals"
	"github.com/jkeats/budgetbuddy/internal/ledger"
	"github.com/jkeats/budgetbuddy/internal/store"
	"github.com/jkeats/budgetbuddy/pkg/logger"
)

// MockBalanceKeeper is a mock implementation of BalanceKeeper
type MockBalanceKeeper struct {
	mock.Mock
}

func (m *MockBalanceKeeper) Transfer(ctx context.Context, from, to string, amount float64) error {
	args := m.Called(ctx, from, to, amount)
	return args.Error(0)
}

func (m *MockBalanceKeeper) ReleaseAccount(ctx context.Context, account, returnTo string) error {
	args := m.Called(ctx, account, returnTo)
	return args.Error(0)
}

type stubRows struct {
	rows []ledger.Row
}

func (s *stubRows) Rows(context.Context) []ledger.Row { return s.rows }

type stubLists struct{}

func (stubLists) Accounts(context.Context) []string { return []string{"Checking"} }

// realFixture wires the goals service to a live balance service over one
// in-memory store, the way main does.
type realFixture struct {
	goals    *goals.Service
	balances *balance.Service
}

func newRealFixture(t *testing.T) *realFixture {
	t.Helper()

	st := store.New(store.NewMemory(), logger.Discard())
	bus := events.NewBus(logger.Discard())
	balances := balance.NewService(st, stubLists{}, &stubRows{}, nil, bus, logger.Discard())

	return &realFixture{
		goals:    goals.NewService(st, balances, logger.Discard()),
		balances: balances,
	}
}

func TestAddAndList(t *testing.T) {
	ctx := context.Background()
	f := newRealFixture(t)

	assert.Empty(t, f.goals.List(ctx), "goals support an empty state")

	g := f.goals.Add(ctx, goals.Goal{Name: "Vacation", Target: 1000, Date: "2026-12-31"})
	assert.NotEmpty(t, g.ID)
	assert.Equal(t, "Vacation", g.Name)

	list := f.goals.List(ctx)
	require.Len(t, list, 1)
	assert.Equal(t, g, list[0])
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("applies only the provided fields", func(t *testing.T) {
		f := newRealFixture(t)
		g := f.goals.Add(ctx, goals.Goal{Name: "Vacation", Target: 1000})

		target := 2000.0
		updated, err := f.goals.Update(ctx, g.ID, goals.Patch{Target: &target})
		require.NoError(t, err)
		assert.Equal(t, 2000.0, updated.Target)
		assert.Equal(t, "Vacation", updated.Name)
	})

	t.Run("rename carries the earmarked balance", func(t *testing.T) {
		f := newRealFixture(t)
		f.balances.SetAccountBalance(ctx, "Checking", 500)
		g := f.goals.Add(ctx, goals.Goal{Name: "Vacation", Target: 1000})

		_, err := f.goals.Transfer(ctx, g.ID, "Checking", 200)
		require.NoError(t, err)

		name := "Honeymoon"
		_, err = f.goals.Update(ctx, g.ID, goals.Patch{Name: &name})
		require.NoError(t, err)

		balances := f.balances.Balances(ctx)
		assert.Equal(t, 200.0, balances["Honeymoon Account"])
		assert.NotContains(t, f.balances.Adjustments(ctx), "Vacation Account")
	})

	t.Run("unknown goal", func(t *testing.T) {
		f := newRealFixture(t)
		_, err := f.goals.Update(ctx, "missing", goals.Patch{})
		assert.ErrorIs(t, err, goals.ErrGoalNotFound)
	})
}

func TestTransfer(t *testing.T) {
	ctx := context.Background()

	t.Run("earmarks and conserves the total", func(t *testing.T) {
		f := newRealFixture(t)
		f.balances.SetAccountBalance(ctx, "Checking", 500)
		g := f.goals.Add(ctx, goals.Goal{Name: "Vacation", Target: 1000})

		updated, err := f.goals.Transfer(ctx, g.ID, "Checking", 150)
		require.NoError(t, err)
		assert.Equal(t, 150.0, updated.Current)

		balances := f.balances.Balances(ctx)
		assert.Equal(t, 350.0, balances["Checking"])
		assert.Equal(t, 150.0, balances["Vacation Account"])

		var total float64
		for _, v := range balances {
			total += v
		}
		assert.Equal(t, 500.0, total, "money moves, it is never created or destroyed")
	})

	t.Run("insufficient funds leaves everything untouched", func(t *testing.T) {
		f := newRealFixture(t)
		f.balances.SetAccountBalance(ctx, "Checking", 100)
		g := f.goals.Add(ctx, goals.Goal{Name: "Vacation", Target: 1000})

		_, err := f.goals.Transfer(ctx, g.ID, "Checking", 150)
		require.ErrorIs(t, err, balance.ErrInsufficientFunds)

		assert.Zero(t, f.goals.List(ctx)[0].Current)
		assert.Equal(t, 100.0, f.balances.Balances(ctx)["Checking"])
	})

	t.Run("unnamed goal cannot receive transfers", func(t *testing.T) {
		f := newRealFixture(t)
		f.balances.SetAccountBalance(ctx, "Checking", 100)
		g := f.goals.Add(ctx, goals.Goal{})

		_, err := f.goals.Transfer(ctx, g.ID, "Checking", 10)
		assert.ErrorIs(t, err, goals.ErrMissingName)
	})

	t.Run("unknown goal", func(t *testing.T) {
		f := newRealFixture(t)
		_, err := f.goals.Transfer(ctx, "missing", "Checking", 10)
		assert.ErrorIs(t, err, goals.ErrGoalNotFound)
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("returns earmarked money before removal", func(t *testing.T) {
		f := newRealFixture(t)
		f.balances.SetAccountBalance(ctx, "Checking", 500)
		g := f.goals.Add(ctx, goals.Goal{Name: "Vacation", Target: 1000})

		_, err := f.goals.Transfer(ctx, g.ID, "Checking", 200)
		require.NoError(t, err)

		require.NoError(t, f.goals.Delete(ctx, g.ID, "Checking"))

		assert.Empty(t, f.goals.List(ctx))
		assert.Equal(t, 500.0, f.balances.Balances(ctx)["Checking"])
		assert.NotContains(t, f.balances.Adjustments(ctx), "Vacation Account")
	})

	t.Run("goal without earmarked money deletes cleanly", func(t *testing.T) {
		f := newRealFixture(t)
		g := f.goals.Add(ctx, goals.Goal{Name: "Vacation", Target: 1000})

		require.NoError(t, f.goals.Delete(ctx, g.ID, "Checking"))
		assert.Empty(t, f.goals.List(ctx))
	})

	t.Run("unknown goal", func(t *testing.T) {
		f := newRealFixture(t)
		assert.ErrorIs(t, f.goals.Delete(ctx, "missing", "Checking"), goals.ErrGoalNotFound)
	})
}

func TestTransferUsesPseudoAccountName(t *testing.T) {
	ctx := context.Background()

	st := store.New(store.NewMemory(), logger.Discard())
	keeper := new(MockBalanceKeeper)
	svc := goals.NewService(st, keeper, logger.Discard())

	g := svc.Add(ctx, goals.Goal{Name: "Emergency", Target: 3000})

	keeper.On("Transfer", ctx, "Savings", "Emergency Account", 75.0).Return(nil)

	_, err := svc.Transfer(ctx, g.ID, "Savings", 75)
	require.NoError(t, err)
	keeper.AssertExpectations(t)
}

func TestProgress(t *testing.T) {
	assert.Equal(t, 50.0, goals.Goal{Target: 200, Current: 100}.Progress())
	assert.Equal(t, 100.0, goals.Goal{Target: 200, Current: 500}.Progress(), "progress caps at 100")
	assert.Zero(t, goals.Goal{Target: 0, Current: 100}.Progress(), "zero target never divides")
}
