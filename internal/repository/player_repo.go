package repository

import (
	"chessduel/internal/model"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PlayerOutcome is how a finished game ended for one player.
type PlayerOutcome string

const (
	OutcomeWin  PlayerOutcome = "win"
	OutcomeLoss PlayerOutcome = "loss"
	OutcomeDraw PlayerOutcome = "draw"
)

// PlayerRepo keeps per-player game statistics.
type PlayerRepo interface {
	// RecordResult counts gameID once for playerID with the given outcome.
	RecordResult(ctx context.Context, playerID, gameID string, outcome PlayerOutcome) error
	// GetStats returns nil, nil for a player with no finished games.
	GetStats(ctx context.Context, playerID string) (*model.PlayerStats, error)
}

type playerRepo struct {
	collection *mongo.Collection
}

func NewPlayerRepo(db *mongo.Database) PlayerRepo {
	return &playerRepo{
		collection: db.Collection("players"),
	}
}

func (r *playerRepo) RecordResult(ctx context.Context, playerID, gameID string, outcome PlayerOutcome) error {
	inc := bson.M{"gamesPlayed": 1}
	switch outcome {
	case OutcomeWin:
		inc["gamesWon"] = 1
	case OutcomeLoss:
		inc["gamesLost"] = 1
	case OutcomeDraw:
		inc["gamesDraw"] = 1
	}

	// The games filter makes a replayed call for the same game a no-op.
	filter := bson.M{"_id": playerID, "games": bson.M{"$ne": gameID}}
	update := bson.M{
		"$inc":  inc,
		"$push": bson.M{"games": gameID},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if mongo.IsDuplicateKeyError(err) {
		// the document exists and already counts gameID
		return nil
	}
	return err
}

func (r *playerRepo) GetStats(ctx context.Context, playerID string) (*model.PlayerStats, error) {
	var stats model.PlayerStats
	err := r.collection.FindOne(ctx, bson.M{"_id": playerID}).Decode(&stats)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &stats, nil
}
