package settings

import (
	"context"

	"github.com/jkeats/budgetbuddy/internal/store"
)

// ListSetting binds a named ordered list of strings to the store with a
// default seed. On first access with no persisted value the defaults are
// returned and immediately persisted, so they become durable.
type ListSetting struct {
	store    *store.Store
	key      string
	defaults []string
}

// NewListSetting creates a list setting for one storage key
func NewListSetting(st *store.Store, key string, defaults []string) *ListSetting {
	return &ListSetting{
		store:    st,
		key:      key,
		defaults: defaults,
	}
}

// Get returns the current list, seeding and persisting the defaults when
// nothing usable is stored.
func (l *ListSetting) Get(ctx context.Context) []string {
	// A stored JSON null decodes into a nil slice; treat it as absent
	var values []string
	if l.store.GetJSON(ctx, l.key, &values) && values != nil {
		return values
	}

	seeded := make([]string, len(l.defaults))
	copy(seeded, l.defaults)
	l.store.SetJSON(ctx, l.key, seeded)
	return seeded
}

// Set replaces the list and persists synchronously
func (l *ListSetting) Set(ctx context.Context, values []string) {
	l.store.SetJSON(ctx, l.key, values)
}

// Update applies a transform over the previous list, persists the result and
// returns it.
func (l *ListSetting) Update(ctx context.Context, fn func([]string) []string) []string {
	values := fn(l.Get(ctx))
	l.store.SetJSON(ctx, l.key, values)
	return values
}
