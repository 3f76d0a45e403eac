package repository

import (
	"chessduel/internal/model"
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryGameRepo is a GameRepo held in process memory. Used by tests and by
// the server when no MongoDB is configured.
type MemoryGameRepo struct {
	mu    sync.RWMutex
	games map[string]*model.Game
}

func NewMemoryGameRepo() *MemoryGameRepo {
	return &MemoryGameRepo{
		games: make(map[string]*model.Game),
	}
}

func (r *MemoryGameRepo) Create(ctx context.Context, game *model.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.games[game.ID]; exists {
		return ErrDuplicateGame
	}
	r.games[game.ID] = game.Clone()
	return nil
}

func (r *MemoryGameRepo) GetByID(ctx context.Context, id string) (*model.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	game, ok := r.games[id]
	if !ok {
		return nil, nil
	}
	return game.Clone(), nil
}

func (r *MemoryGameRepo) Save(ctx context.Context, game *model.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.games[game.ID]
	if !ok || stored.Version != game.Version {
		return ErrVersionConflict
	}
	next := game.Clone()
	next.Version++
	r.games[game.ID] = next
	game.Version = next.Version
	return nil
}

func (r *MemoryGameRepo) ListIdle(ctx context.Context, status model.GameStatus, cutoff time.Time, limit int) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var idle []*model.Game
	for _, game := range r.games {
		if game.Status == status && game.LastActionAt.Before(cutoff) {
			idle = append(idle, game)
		}
	}
	sort.Slice(idle, func(i, j int) bool {
		return idle[i].LastActionAt.Before(idle[j].LastActionAt)
	})
	if limit > 0 && len(idle) > limit {
		idle = idle[:limit]
	}
	ids := make([]string, 0, len(idle))
	for _, game := range idle {
		ids = append(ids, game.ID)
	}
	return ids, nil
}
