package service

import (
	"chessduel/internal/apperr"
	"chessduel/internal/model"
	"context"
	"time"
)

const sweepBatch = 100

// AbandonIdle marks active games with no action for idleFor as abandoned
// and returns how many it closed. Each game goes through the same guarded
// commit path as a player action.
func (s *GameService) AbandonIdle(ctx context.Context, idleFor time.Duration) (int, error) {
	cutoff := s.now().Add(-idleFor)

	ids, err := s.gameRepo.ListIdle(ctx, model.GameActive, cutoff, sweepBatch)
	if err != nil {
		return 0, apperr.Unexpected("failed to list idle games", err)
	}

	closed := 0
	for _, id := range ids {
		_, err := s.withSession(ctx, id, func(g *model.Game) (*mutation, error) {
			if err := applyAbandon(g, cutoff, s.now()); err != nil {
				return nil, err
			}
			return &mutation{
				event: model.EventGameAbandoned,
				payload: func(g *model.Game, _ *model.BoardView) interface{} {
					return model.GameAbandonedEvent{Game: g}
				},
			}, nil
		})
		switch {
		case err == nil:
			closed++
		case apperr.KindOf(err) == apperr.KindInvalidState:
			// a player acted after the listing
		default:
			s.logger.Warn("failed to abandon game", "game_id", id, "error", err)
		}
	}
	return closed, nil
}

// RunAbandonSweeper calls AbandonIdle every interval until ctx is done.
func (s *GameService) RunAbandonSweeper(ctx context.Context, idleFor, interval time.Duration) {
	if idleFor <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Info("abandon sweeper started", "idle_for", idleFor, "interval", interval)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.AbandonIdle(ctx, idleFor)
			if err != nil {
				s.logger.Error("abandon sweep failed", "error", err)
				continue
			}
			if n > 0 {
				s.logger.Info("abandoned idle games", "count", n)
			}
		}
	}
}
