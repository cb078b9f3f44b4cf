package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_Expiry(t *testing.T) {
	m := NewMemory()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, m.Set(ctx, "b", []byte("2"), 0))

	v, ok, err := m.Get(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("1"), v)

	now = now.Add(2 * time.Minute)
	_, ok, _ = m.Get(ctx, "a")
	assert.False(t, ok)
	_, ok, _ = m.Get(ctx, "b")
	assert.True(t, ok)

	require.NoError(t, m.Delete(ctx, "b"))
	_, ok, _ = m.Get(ctx, "b")
	assert.False(t, ok)
}

func TestGetOrLoad(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	loads := 0
	load := func() ([]string, error) {
		loads++
		return []string{"x", "y"}, nil
	}

	first, err := GetOrLoad(ctx, m, "list", time.Minute, load)
	require.NoError(t, err)
	second, err := GetOrLoad(ctx, m, "list", time.Minute, load)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, loads)
}

func TestGetOrLoad_ErrorIsNotCached(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	boom := errors.New("boom")

	_, err := GetOrLoad(ctx, m, "k", time.Minute, func() (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)

	v, err := GetOrLoad(ctx, m, "k", time.Minute, func() (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestGetOrLoad_MalformedEntryReloads(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	require.NoError(t, m.Set(ctx, "k", []byte("{not json"), 0))

	v, err := GetOrLoad(ctx, m, "k", 0, func() (int, error) { return 3, nil })
	require.NoError(t, err)
	assert.Equal(t, 3, v)
}
