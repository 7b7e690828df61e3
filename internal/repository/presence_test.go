package repository

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPresenceRepo(t *testing.T) PresenceRepository {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	require.NoError(t, rdb.Ping(context.Background()).Err())

	return NewPresenceRepository(rdb)
}

func TestPresenceJoinAndLeave(t *testing.T) {
	ctx := context.Background()
	repo := newTestPresenceRepo(t)

	require.NoError(t, repo.MarkJoined(ctx, 1, 10))
	require.NoError(t, repo.MarkJoined(ctx, 1, 20))

	// joining twice is idempotent: redis sets
	require.NoError(t, repo.MarkJoined(ctx, 1, 10))

	users, err := repo.ActiveUsers(ctx, 1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{10, 20}, users)

	active, err := repo.IsActive(ctx, 1, 10)
	require.NoError(t, err)
	assert.True(t, active)

	remaining, err := repo.MarkLeft(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), remaining)

	active, err = repo.IsActive(ctx, 1, 10)
	require.NoError(t, err)
	assert.False(t, active)

	remaining, err = repo.MarkLeft(ctx, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(0), remaining)
}

func TestPresenceLeaveUnknownUserIsNoop(t *testing.T) {
	ctx := context.Background()
	repo := newTestPresenceRepo(t)

	remaining, err := repo.MarkLeft(ctx, 5, 99)
	require.NoError(t, err)
	assert.Equal(t, int64(0), remaining)
}

func TestPresenceChannelsAreIsolated(t *testing.T) {
	ctx := context.Background()
	repo := newTestPresenceRepo(t)

	require.NoError(t, repo.MarkJoined(ctx, 1, 10))
	require.NoError(t, repo.MarkJoined(ctx, 2, 20))

	users, err := repo.ActiveUsers(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []uint{10}, users)

	active, err := repo.IsActive(ctx, 1, 20)
	require.NoError(t, err)
	assert.False(t, active)
}
