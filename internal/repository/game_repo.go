package repository

import (
	"chessduel/internal/model"
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrVersionConflict is returned by Save when the stored version moved on.
	ErrVersionConflict = errors.New("game version conflict")
	// ErrDuplicateGame is returned by Create for an id already in use.
	ErrDuplicateGame = errors.New("game already exists")
)

// GameRepo is the durable store of games.
type GameRepo interface {
	Create(ctx context.Context, game *model.Game) error
	// GetByID returns nil, nil when no game has that id.
	GetByID(ctx context.Context, id string) (*model.Game, error)
	// Save replaces the stored game if its version still equals game.Version,
	// and bumps game.Version on success.
	Save(ctx context.Context, game *model.Game) error
	// ListIdle returns ids of games in status whose last action is before cutoff.
	ListIdle(ctx context.Context, status model.GameStatus, cutoff time.Time, limit int) ([]string, error)
}

type gameRepo struct {
	collection *mongo.Collection
}

func NewGameRepo(db *mongo.Database) GameRepo {
	return &gameRepo{
		collection: db.Collection("games"),
	}
}

// EnsureGameIndexes creates the index the idle sweep queries on.
func EnsureGameIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("games").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "status", Value: 1}, {Key: "lastMovedAt", Value: 1}},
	})
	return err
}

func (r *gameRepo) Create(ctx context.Context, game *model.Game) error {
	_, err := r.collection.InsertOne(ctx, game)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateGame
	}
	return err
}

func (r *gameRepo) GetByID(ctx context.Context, id string) (*model.Game, error) {
	var game model.Game
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&game)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &game, nil
}

func (r *gameRepo) Save(ctx context.Context, game *model.Game) error {
	expected := game.Version
	next := game.Clone()
	next.Version = expected + 1

	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": game.ID, "version": expected}, next)
	if err != nil {
		return fmt.Errorf("replace game %s: %w", game.ID, err)
	}
	if res.MatchedCount == 0 {
		return ErrVersionConflict
	}
	game.Version = next.Version
	return nil
}

func (r *gameRepo) ListIdle(ctx context.Context, status model.GameStatus, cutoff time.Time, limit int) ([]string, error) {
	opts := options.Find().
		SetProjection(bson.M{"_id": 1}).
		SetSort(bson.D{{Key: "lastMovedAt", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cursor, err := r.collection.Find(ctx, bson.M{
		"status":      status,
		"lastMovedAt": bson.M{"$lt": cutoff},
	}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		ID string `bson:"_id"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	return ids, nil
}
