package repositories_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smart-upi.backend/internal/domain/entities"
	"smart-upi.backend/internal/infrastructure/repositories"
)

func newRedisStore(t *testing.T) *repositories.RedisStateStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return repositories.NewRedisStateStore(client)
}

func TestRedisStateStore_LoadEmpty(t *testing.T) {
	store := newRedisStore(t)

	state, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, state.Orders)
	assert.Empty(t, state.Attempts)
	assert.Empty(t, state.OfflineQueue)
	assert.True(t, state.Online)
}

func TestRedisStateStore_SaveLoadRoundTrip(t *testing.T) {
	store := newRedisStore(t)
	ctx := context.Background()

	state := sampleState()
	require.NoError(t, store.Save(ctx, state))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)

	require.Len(t, loaded.Orders, 1)
	assert.Equal(t, state.Orders[0].ID, loaded.Orders[0].ID)
	require.Len(t, loaded.Attempts, 1)
	assert.Equal(t, entities.AttemptStatusOffline, loaded.Attempts[0].Status)
	assert.Equal(t, state.OfflineQueue, loaded.OfflineQueue)
	assert.False(t, loaded.Online)
}

func TestRedisStateStore_Purge(t *testing.T) {
	store := newRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleState()))
	require.NoError(t, store.Purge(ctx))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded.Orders)
	assert.True(t, loaded.Online)
}
