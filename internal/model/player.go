package model

import "time"

// PlayerStats is the running record of a player's finished games.
type PlayerStats struct {
	PlayerID    string    `json:"playerId" bson:"_id"`
	GamesPlayed int       `json:"gamesPlayed" bson:"gamesPlayed"`
	GamesWon    int       `json:"gamesWon" bson:"gamesWon"`
	GamesLost   int       `json:"gamesLost" bson:"gamesLost"`
	GamesDraw   int       `json:"gamesDraw" bson:"gamesDraw"`
	Games       []string  `json:"games" bson:"games"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}
