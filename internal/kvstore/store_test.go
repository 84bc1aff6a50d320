package kvstore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// plainStore forwards to a MemoryStore without exposing Batch, so Apply
// takes the sequential path.
type plainStore struct {
	m      *MemoryStore
	failOn string
}

func (p plainStore) Get(ctx context.Context, key string) (string, bool, error) {
	return p.m.Get(ctx, key)
}

func (p plainStore) Set(ctx context.Context, key, value string) error {
	if key == p.failOn {
		return errors.New("boom")
	}
	return p.m.Set(ctx, key, value)
}

func (p plainStore) Remove(ctx context.Context, key string) error {
	return p.m.Remove(ctx, key)
}

func (p plainStore) Close() error { return nil }

func TestMemoryStore_GetSetRemove(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	_, ok, err := m.Get(ctx, "absent")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Set(ctx, "k", "v1"))
	require.NoError(t, m.Set(ctx, "k", "v2"))
	v, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v2", v)

	require.NoError(t, m.Remove(ctx, "k"))
	require.NoError(t, m.Remove(ctx, "k"))
	_, ok, _ = m.Get(ctx, "k")
	assert.False(t, ok)
	require.NoError(t, m.Close())
}

func TestApply_UsesBatchWhenAvailable(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	require.NoError(t, m.Set(ctx, "gone", "x"))

	require.NoError(t, Apply(ctx, m, SetOp("a", "1"), SetOp("b", "2"), DeleteOp("gone")))
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, m.Snapshot())
}

func TestApply_SequentialFallbackStopsOnError(t *testing.T) {
	ctx := context.Background()
	p := plainStore{m: NewMemoryStore(), failOn: "b"}

	var s Store = p
	_, isBatcher := s.(Batcher)
	require.False(t, isBatcher)

	err := Apply(ctx, s, SetOp("a", "1"), SetOp("b", "2"), SetOp("c", "3"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "apply b")
	assert.Equal(t, map[string]string{"a": "1"}, p.m.Snapshot())
}
