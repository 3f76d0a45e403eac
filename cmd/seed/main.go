package main

import (
	"chessduel/internal/config"
	"chessduel/internal/repository"
	"chessduel/internal/rules"
	"chessduel/internal/service"
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// seed plays a short demo game through the engine so a fresh database has
// a completed game and player stats to look at.
func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var gameRepo repository.GameRepo = repository.NewMemoryGameRepo()
	var playerRepo repository.PlayerRepo = repository.NewMemoryPlayerRepo()
	if cfg.MongoURI != "" {
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			logger.Error("connect mongodb", "error", err)
			os.Exit(1)
		}
		defer client.Disconnect(context.Background())

		db := client.Database(cfg.MongoDatabase)
		if err := repository.EnsureGameIndexes(ctx, db); err != nil {
			logger.Error("ensure indexes", "error", err)
			os.Exit(1)
		}
		gameRepo = repository.NewGameRepo(db)
		playerRepo = repository.NewPlayerRepo(db)
	} else {
		logger.Warn("MONGO_URI not set, seeding into memory only")
	}

	svc := service.NewGameService(gameRepo, playerRepo, nil, rules.NewChessOracle(), cfg.ClientURL)
	svc.SetLogger(logger)
	// alice always opens as white
	svc.SetCoinFlip(func() bool { return true })

	gameID, err := playScholarsMate(ctx, svc, "alice", "bob")
	if err != nil {
		logger.Error("seed game", "error", err)
		os.Exit(1)
	}

	view, err := svc.GetGame(ctx, gameID)
	if err != nil {
		logger.Error("load seeded game", "error", err)
		os.Exit(1)
	}
	fmt.Printf("Seeded game %s: %s, result %s\n", gameID, view.Game.Status, view.Game.Result)
	fmt.Printf("Moves: %v\n", view.Game.MoveHistory)

	if cfg.JWTSecret != "" {
		auth := service.NewAuthService(cfg.JWTSecret, 0)
		for _, player := range []string{"alice", "bob"} {
			token, err := auth.GeneratePlayerToken(player)
			if err != nil {
				logger.Error("issue token", "player_id", player, "error", err)
				os.Exit(1)
			}
			fmt.Printf("Token for %s: %s\n", player, token)
		}
	}
}

func playScholarsMate(ctx context.Context, svc *service.GameService, white, black string) (string, error) {
	created, err := svc.CreateGame(ctx, white)
	if err != nil {
		return "", fmt.Errorf("create: %w", err)
	}
	gameID := created.Game.ID

	if _, err := svc.JoinGame(ctx, gameID, black); err != nil {
		return "", fmt.Errorf("join: %w", err)
	}

	moves := []rules.Move{
		{From: "e2", To: "e4"}, {From: "e7", To: "e5"},
		{From: "f1", To: "c4"}, {From: "b8", To: "c6"},
		{From: "d1", To: "h5"}, {From: "g8", To: "f6"},
		{From: "h5", To: "f7"},
	}
	for i, mv := range moves {
		player := white
		if i%2 == 1 {
			player = black
		}
		if _, err := svc.MakeMove(ctx, gameID, player, mv); err != nil {
			return "", fmt.Errorf("move %d (%s): %w", i+1, mv.UCI(), err)
		}
	}
	return gameID, nil
}
