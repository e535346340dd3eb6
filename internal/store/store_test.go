package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jkeats/budgetbuddy/internal/store"
	"github.com/jkeats/budgetbuddy/pkg/logger"
)

func TestMemoryKV(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()

	t.Run("get missing key", func(t *testing.T) {
		_, ok, err := kv.Get(ctx, "absent")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, kv.Set(ctx, "k", []byte(`"v"`)))

		raw, ok, err := kv.Get(ctx, "k")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, `"v"`, string(raw))
	})

	t.Run("returned bytes are a copy", func(t *testing.T) {
		require.NoError(t, kv.Set(ctx, "copy", []byte("abc")))

		raw, _, err := kv.Get(ctx, "copy")
		require.NoError(t, err)
		raw[0] = 'x'

		again, _, err := kv.Get(ctx, "copy")
		require.NoError(t, err)
		assert.Equal(t, "abc", string(again))
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		require.NoError(t, kv.Set(ctx, "gone", []byte("1")))
		require.NoError(t, kv.Delete(ctx, "gone"))
		require.NoError(t, kv.Delete(ctx, "gone"))

		_, ok, err := kv.Get(ctx, "gone")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestStoreGetJSON(t *testing.T) {
	ctx := context.Background()

	t.Run("missing key leaves default", func(t *testing.T) {
		st := store.New(store.NewMemory(), logger.Discard())

		value := "default"
		ok := st.GetJSON(ctx, "absent", &value)
		assert.False(t, ok)
		assert.Equal(t, "default", value)
	})

	t.Run("malformed value leaves default", func(t *testing.T) {
		kv := store.NewMemory()
		require.NoError(t, kv.Set(ctx, "bad", []byte("{not json")))
		st := store.New(kv, logger.Discard())

		value := 42
		ok := st.GetJSON(ctx, "bad", &value)
		assert.False(t, ok)
		assert.Equal(t, 42, value)
	})

	t.Run("wrong shape leaves default", func(t *testing.T) {
		kv := store.NewMemory()
		require.NoError(t, kv.Set(ctx, "shape", []byte(`"a string"`)))
		st := store.New(kv, logger.Discard())

		var value []float64
		ok := st.GetJSON(ctx, "shape", &value)
		assert.False(t, ok)
		assert.Nil(t, value)
	})

	t.Run("set then get round-trips", func(t *testing.T) {
		st := store.New(store.NewMemory(), logger.Discard())

		st.SetJSON(ctx, "balances", map[string]float64{"Checking": 100.5})

		got := make(map[string]float64)
		ok := st.GetJSON(ctx, "balances", &got)
		require.True(t, ok)
		assert.Equal(t, map[string]float64{"Checking": 100.5}, got)
	})

	t.Run("last write wins", func(t *testing.T) {
		st := store.New(store.NewMemory(), logger.Discard())

		st.SetJSON(ctx, "k", "first")
		st.SetJSON(ctx, "k", "second")

		var got string
		require.True(t, st.GetJSON(ctx, "k", &got))
		assert.Equal(t, "second", got)
	})

	t.Run("remove", func(t *testing.T) {
		st := store.New(store.NewMemory(), logger.Discard())

		st.SetJSON(ctx, "k", 1)
		st.Remove(ctx, "k")

		var got int
		assert.False(t, st.GetJSON(ctx, "k", &got))
	})
}
