package repository

import (
	"context"
	"testing"
	"time"

	"chessduel/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGame(id string, status model.GameStatus, lastAction time.Time) *model.Game {
	return &model.Game{
		ID:           id,
		WhitePlayer:  model.SeatFor("p1"),
		Status:       status,
		FEN:          model.StartingFEN,
		MoveHistory:  []string{},
		LastActionAt: lastAction,
		CreatedAt:    lastAction,
	}
}

func TestMemoryGameRepo_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryGameRepo()

	game := newGame("g1", model.GamePending, time.Now())
	require.NoError(t, repo.Create(ctx, game))
	assert.ErrorIs(t, repo.Create(ctx, game), ErrDuplicateGame)

	got, err := repo.GetByID(ctx, "g1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "g1", got.ID)
	assert.True(t, got.WhitePlayer.Holds("p1"))

	missing, err := repo.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMemoryGameRepo_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryGameRepo()
	require.NoError(t, repo.Create(ctx, newGame("g1", model.GameActive, time.Now())))

	got, err := repo.GetByID(ctx, "g1")
	require.NoError(t, err)
	got.MoveHistory = append(got.MoveHistory, "e4")
	got.Status = model.GameCompleted

	again, err := repo.GetByID(ctx, "g1")
	require.NoError(t, err)
	assert.Empty(t, again.MoveHistory)
	assert.Equal(t, model.GameActive, again.Status)
}

func TestMemoryGameRepo_SaveComparesVersion(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryGameRepo()
	require.NoError(t, repo.Create(ctx, newGame("g1", model.GamePending, time.Now())))

	first, err := repo.GetByID(ctx, "g1")
	require.NoError(t, err)
	second, err := repo.GetByID(ctx, "g1")
	require.NoError(t, err)

	first.Status = model.GameActive
	require.NoError(t, repo.Save(ctx, first))
	assert.Equal(t, int64(1), first.Version)

	second.Status = model.GameAbandoned
	assert.ErrorIs(t, repo.Save(ctx, second), ErrVersionConflict)

	stored, err := repo.GetByID(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, model.GameActive, stored.Status)
	assert.Equal(t, int64(1), stored.Version)
}

func TestMemoryGameRepo_ListIdle(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryGameRepo()
	now := time.Now()

	require.NoError(t, repo.Create(ctx, newGame("old", model.GameActive, now.Add(-2*time.Hour))))
	require.NoError(t, repo.Create(ctx, newGame("older", model.GameActive, now.Add(-3*time.Hour))))
	require.NoError(t, repo.Create(ctx, newGame("fresh", model.GameActive, now)))
	require.NoError(t, repo.Create(ctx, newGame("pending", model.GamePending, now.Add(-5*time.Hour))))

	ids, err := repo.ListIdle(ctx, model.GameActive, now.Add(-time.Hour), 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"older", "old"}, ids)

	ids, err = repo.ListIdle(ctx, model.GameActive, now.Add(-time.Hour), 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"older"}, ids)
}

func TestMemoryPlayerRepo_RecordResultOncePerGame(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryPlayerRepo()

	require.NoError(t, repo.RecordResult(ctx, "p1", "g1", OutcomeWin))
	require.NoError(t, repo.RecordResult(ctx, "p1", "g1", OutcomeWin))
	require.NoError(t, repo.RecordResult(ctx, "p1", "g2", OutcomeDraw))

	stats, err := repo.GetStats(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, stats)
	assert.Equal(t, 2, stats.GamesPlayed)
	assert.Equal(t, 1, stats.GamesWon)
	assert.Equal(t, 1, stats.GamesDraw)
	assert.Equal(t, 0, stats.GamesLost)
	assert.Equal(t, []string{"g1", "g2"}, stats.Games)

	none, err := repo.GetStats(ctx, "p2")
	require.NoError(t, err)
	assert.Nil(t, none)
}
