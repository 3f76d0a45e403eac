package repository

import (
	"chessduel/internal/model"
	"context"
	"slices"
	"sync"
	"time"
)

// MemoryPlayerRepo is a PlayerRepo held in process memory.
type MemoryPlayerRepo struct {
	mu    sync.Mutex
	stats map[string]*model.PlayerStats
}

func NewMemoryPlayerRepo() *MemoryPlayerRepo {
	return &MemoryPlayerRepo{
		stats: make(map[string]*model.PlayerStats),
	}
}

func (r *MemoryPlayerRepo) RecordResult(ctx context.Context, playerID, gameID string, outcome PlayerOutcome) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.stats[playerID]
	if !ok {
		s = &model.PlayerStats{PlayerID: playerID}
		r.stats[playerID] = s
	}
	if slices.Contains(s.Games, gameID) {
		return nil
	}
	s.GamesPlayed++
	switch outcome {
	case OutcomeWin:
		s.GamesWon++
	case OutcomeLoss:
		s.GamesLost++
	case OutcomeDraw:
		s.GamesDraw++
	}
	s.Games = append(s.Games, gameID)
	s.UpdatedAt = time.Now()
	return nil
}

func (r *MemoryPlayerRepo) GetStats(ctx context.Context, playerID string) (*model.PlayerStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.stats[playerID]
	if !ok {
		return nil, nil
	}
	c := *s
	c.Games = slices.Clone(s.Games)
	return &c, nil
}
