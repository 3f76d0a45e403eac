package model

import "github.com/golang-jwt/jwt/v5"

// PlayerClaims are JWT claims identifying the acting player
type PlayerClaims struct {
	PlayerID string `json:"playerId"`
	jwt.RegisteredClaims
}
