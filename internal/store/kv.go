package store

import (
	"context"
	"sync"
)

// Storage keys. Key names are kept stable so an export of the browser build's
// data imports cleanly.
const (
	KeyIncomeRows        = "bb_tx_income"
	KeyFixedRows         = "bb_tx_fixed"
	KeyDiscretionaryRows = "bb_tx_discretionary"
	KeyCategories        = "bb_expense_categories"
	KeyAccounts          = "bb_accounts"
	KeyAccountBalances   = "bb_account_balances"
	KeyBalancesSnapshot  = "bb_account_balances_snapshot"
	KeyGoals             = "bb_goals"
	KeyProfileName       = "bb_profile_name"
	KeyProfileImage      = "bb_profile_image"
	KeyDebugVisible      = "bb_debug_visible"
)

// KV is the raw key-value persistence contract. Writes are last-writer-wins;
// there is no locking or cross-process coordination.
type KV interface {
	// Get returns the stored value and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores the value, immediately visible to subsequent Gets.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// Ping checks backend connectivity for readiness probes.
	Ping(ctx context.Context) error
}

// Memory is an in-process KV used as the default backend and by tests.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory creates an empty in-memory KV
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}

	cp := make([]byte, len(value))
	copy(cp, value)
	return cp, true, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := make([]byte, len(value))
	copy(cp, value)
	m.data[key] = cp
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key)
	return nil
}

func (m *Memory) Ping(context.Context) error {
	return nil
}
