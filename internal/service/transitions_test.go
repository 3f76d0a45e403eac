package service

import (
	"chessduel/internal/apperr"
	"chessduel/internal/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activeGame() *model.Game {
	return &model.Game{
		ID:           "g1",
		WhitePlayer:  model.SeatFor("p1"),
		BlackPlayer:  model.SeatFor("p2"),
		Status:       model.GameActive,
		FEN:          model.StartingFEN,
		MoveHistory:  []string{},
		LastActionAt: time.Unix(100, 0),
	}
}

func TestCheckInvariants(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(g *model.Game)
		ok     bool
	}{
		{"unchanged", func(g *model.Game) {}, true},
		{"seat rebound", func(g *model.Game) { g.BlackPlayer = model.SeatFor("p3") }, false},
		{"seat cleared", func(g *model.Game) { g.WhitePlayer = model.Seat{} }, false},
		{"result without completion", func(g *model.Game) { g.Result = model.ResultDraw }, false},
		{"completion without result", func(g *model.Game) { g.Status = model.GameCompleted }, false},
		{"offer on terminal", func(g *model.Game) {
			g.Status = model.GameAbandoned
			g.DrawOffer = &model.DrawOffer{OfferedBy: "p1"}
		}, false},
		{"history ahead of position", func(g *model.Game) { g.MoveHistory = append(g.MoveHistory, "e4") }, false},
		{"clock backwards", func(g *model.Game) { g.LastActionAt = time.Unix(50, 0) }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev := activeGame()
			next := prev.Clone()
			tt.mutate(next)

			err := checkInvariants(prev, next)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, apperr.CodeInvariant, apperr.CodeOf(err))
		})
	}
}

func TestCheckInvariants_Pending(t *testing.T) {
	g := activeGame()
	g.Status = model.GamePending
	assert.Error(t, checkInvariants(nil, g), "pending with both seats")

	g.BlackPlayer = model.Seat{}
	assert.NoError(t, checkInvariants(nil, g))
}

func TestApplyAbandon(t *testing.T) {
	g := activeGame()
	cutoff := time.Unix(200, 0)

	require.NoError(t, applyAbandon(g, cutoff, time.Unix(300, 0)))
	assert.Equal(t, model.GameAbandoned, g.Status)
	assert.Equal(t, time.Unix(300, 0), g.LastActionAt)

	assert.ErrorIs(t, applyAbandon(g, cutoff, time.Unix(400, 0)), apperr.ErrGameNotActive)

	recent := activeGame()
	recent.LastActionAt = time.Unix(250, 0)
	assert.ErrorIs(t, applyAbandon(recent, cutoff, time.Unix(300, 0)), apperr.ErrGameNotIdle)
}
