package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tronghn/taskhub/internal/model"
)

func TestSessionRepository_PutGet(t *testing.T) {
	ctx := context.Background()
	_, rdb := newTestClient(t)
	repo := NewSessionRepository(rdb)

	err := repo.Put(ctx, "alice", model.TokenClassAccess, "token-a", time.Hour)
	require.NoError(t, err)

	got, err := repo.Get(ctx, "alice", model.TokenClassAccess)
	require.NoError(t, err)
	assert.Equal(t, "token-a", got)

	_, err = repo.Get(ctx, "alice", model.TokenClassRefresh)
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestSessionRepository_OverwriteSupersedes(t *testing.T) {
	ctx := context.Background()
	_, rdb := newTestClient(t)
	repo := NewSessionRepository(rdb)

	require.NoError(t, repo.Put(ctx, "alice", model.TokenClassAccess, "first", time.Hour))
	require.NoError(t, repo.Put(ctx, "alice", model.TokenClassAccess, "second", time.Hour))

	ok, err := repo.IsCurrent(ctx, "alice", model.TokenClassAccess, "first")
	require.NoError(t, err)
	assert.False(t, ok, "superseded token must be rejected")

	ok, err = repo.IsCurrent(ctx, "alice", model.TokenClassAccess, "second")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSessionRepository_IsCurrent_EmptySlot(t *testing.T) {
	ctx := context.Background()
	_, rdb := newTestClient(t)
	repo := NewSessionRepository(rdb)

	ok, err := repo.IsCurrent(ctx, "alice", model.TokenClassAccess, "anything")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSessionRepository_RevokeAll_Idempotent(t *testing.T) {
	ctx := context.Background()
	_, rdb := newTestClient(t)
	repo := NewSessionRepository(rdb)

	require.NoError(t, repo.Put(ctx, "alice", model.TokenClassAccess, "a", time.Hour))
	require.NoError(t, repo.Put(ctx, "alice", model.TokenClassRefresh, "r", time.Hour))

	require.NoError(t, repo.RevokeAll(ctx, "alice"))

	_, err := repo.Get(ctx, "alice", model.TokenClassAccess)
	require.ErrorIs(t, err, model.ErrNotFound)
	_, err = repo.Get(ctx, "alice", model.TokenClassRefresh)
	require.ErrorIs(t, err, model.ErrNotFound)

	// Second revoke is a no-op, not an error.
	require.NoError(t, repo.RevokeAll(ctx, "alice"))
}

func TestSessionRepository_TTLExpiry(t *testing.T) {
	ctx := context.Background()
	mr, rdb := newTestClient(t)
	repo := NewSessionRepository(rdb)

	require.NoError(t, repo.Put(ctx, "alice", model.TokenClassAccess, "a", time.Minute))

	mr.FastForward(2 * time.Minute)

	_, err := repo.Get(ctx, "alice", model.TokenClassAccess)
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestSessionRepository_UsersAreIsolated(t *testing.T) {
	ctx := context.Background()
	_, rdb := newTestClient(t)
	repo := NewSessionRepository(rdb)

	require.NoError(t, repo.Put(ctx, "alice", model.TokenClassAccess, "a", time.Hour))
	require.NoError(t, repo.Put(ctx, "bob", model.TokenClassAccess, "b", time.Hour))

	require.NoError(t, repo.RevokeAll(ctx, "alice"))

	got, err := repo.Get(ctx, "bob", model.TokenClassAccess)
	require.NoError(t, err)
	assert.Equal(t, "b", got)
}
