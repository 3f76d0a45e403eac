package cache

import (
	"context"
	"testing"
	"time"

	"chessduel/internal/model"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestGameCache_SetGet(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestRedis(t)
	c := NewGameCache(client, time.Minute)

	game := &model.Game{
		ID:          "g1",
		WhitePlayer: model.SeatFor("p1"),
		Status:      model.GamePending,
		FEN:         model.StartingFEN,
		MoveHistory: []string{},
		Version:     3,
	}
	require.NoError(t, c.Set(ctx, game))
	assert.True(t, mr.Exists("game:g1"))

	got, err := c.Get(ctx, "g1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "g1", got.ID)
	assert.True(t, got.WhitePlayer.Holds("p1"))
	assert.False(t, got.BlackPlayer.Bound())
	assert.Equal(t, int64(3), got.Version)

	mr.FastForward(2 * time.Minute)
	expired, err := c.Get(ctx, "g1")
	require.NoError(t, err)
	assert.Nil(t, expired)
}

func TestGameCache_IgnoresOlderVersion(t *testing.T) {
	ctx := context.Background()
	_, client := newTestRedis(t)
	c := NewGameCache(client, time.Minute)

	newer := &model.Game{ID: "g1", Status: model.GameActive, FEN: model.StartingFEN, Version: 5}
	older := &model.Game{ID: "g1", Status: model.GamePending, FEN: model.StartingFEN, Version: 4}

	require.NoError(t, c.Set(ctx, newer))
	require.NoError(t, c.Set(ctx, older))

	got, err := c.Get(ctx, "g1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(5), got.Version)
	assert.Equal(t, model.GameActive, got.Status)
}

func TestGameCache_Delete(t *testing.T) {
	ctx := context.Background()
	_, client := newTestRedis(t)
	c := NewGameCache(client, time.Minute)

	require.NoError(t, c.Set(ctx, &model.Game{ID: "g1", FEN: model.StartingFEN}))
	require.NoError(t, c.Delete(ctx, "g1"))

	got, err := c.Get(ctx, "g1")
	require.NoError(t, err)
	assert.Nil(t, got)
}
