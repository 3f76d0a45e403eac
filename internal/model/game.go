package model

import (
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// StartingFEN is the standard initial chess position.
const StartingFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

type GameStatus string

const (
	GamePending   GameStatus = "pending"
	GameActive    GameStatus = "active"
	GameCompleted GameStatus = "completed"
	GameAbandoned GameStatus = "abandoned"
)

// Terminal reports whether no further transition is allowed.
func (s GameStatus) Terminal() bool {
	return s == GameCompleted || s == GameAbandoned
}

// Side is a player colour.
type Side string

const (
	White Side = "white"
	Black Side = "black"
)

// Opponent returns the other colour.
func (s Side) Opponent() Side {
	if s == White {
		return Black
	}
	return White
}

// Result is the outcome of a completed game.
type Result string

const (
	ResultNone  Result = ""
	ResultWhite Result = "white"
	ResultBlack Result = "black"
	ResultDraw  Result = "draw"
)

// WinFor returns the result of side winning.
func WinFor(side Side) Result {
	if side == White {
		return ResultWhite
	}
	return ResultBlack
}

// Seat is a player slot. The zero value is an unbound seat; an unbound seat
// never matches any player id.
type Seat struct {
	playerID string
}

// SeatFor binds a seat to playerID. An empty id yields an unbound seat.
func SeatFor(playerID string) Seat {
	return Seat{playerID: playerID}
}

// PlayerID returns the bound player and whether the seat is bound.
func (s Seat) PlayerID() (string, bool) {
	return s.playerID, s.playerID != ""
}

func (s Seat) Bound() bool {
	return s.playerID != ""
}

// Holds reports whether the seat is bound to playerID.
func (s Seat) Holds(playerID string) bool {
	return s.playerID != "" && s.playerID == playerID
}

func (s Seat) MarshalJSON() ([]byte, error) {
	if s.playerID == "" {
		return []byte("null"), nil
	}
	return json.Marshal(s.playerID)
}

func (s *Seat) UnmarshalJSON(data []byte) error {
	var id *string
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	s.playerID = ""
	if id != nil {
		s.playerID = *id
	}
	return nil
}

func (s Seat) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if s.playerID == "" {
		return bson.MarshalValue(nil)
	}
	return bson.MarshalValue(s.playerID)
}

func (s *Seat) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	s.playerID = ""
	if t == bsontype.Null || t == bsontype.Undefined {
		return nil
	}
	id, ok := bson.RawValue{Type: t, Value: data}.StringValueOK()
	if !ok {
		return fmt.Errorf("seat: cannot decode %s as player id", t)
	}
	s.playerID = id
	return nil
}

// DrawOffer is an outstanding draw proposal.
type DrawOffer struct {
	OfferedBy string    `json:"offeredBy" bson:"offeredBy"`
	OfferedAt time.Time `json:"offeredAt" bson:"offeredAt"`
}

// Game is one chess match and all of its mutable state.
type Game struct {
	ID           string     `json:"gameId" bson:"_id"`
	WhitePlayer  Seat       `json:"whitePlayer" bson:"whitePlayer"`
	BlackPlayer  Seat       `json:"blackPlayer" bson:"blackPlayer"`
	Status       GameStatus `json:"status" bson:"status"`
	FEN          string     `json:"fen" bson:"fen"`
	InviteLink   string     `json:"inviteLink" bson:"inviteLink"`
	Result       Result     `json:"result,omitempty" bson:"result,omitempty"`
	MoveHistory  []string   `json:"moveHistory" bson:"moveHistory"`
	DrawOffer    *DrawOffer `json:"drawOffer,omitempty" bson:"drawOffer,omitempty"`
	LastActionAt time.Time  `json:"lastMovedAt" bson:"lastMovedAt"`
	CreatedAt    time.Time  `json:"createdAt" bson:"createdAt"`
	Version      int64      `json:"version" bson:"version"`
}

// Seat returns the seat of side.
func (g *Game) Seat(side Side) Seat {
	if side == White {
		return g.WhitePlayer
	}
	return g.BlackPlayer
}

// SideOf returns the colour playerID is seated on.
func (g *Game) SideOf(playerID string) (Side, bool) {
	switch {
	case g.WhitePlayer.Holds(playerID):
		return White, true
	case g.BlackPlayer.Holds(playerID):
		return Black, true
	}
	return "", false
}

// Clone returns a deep copy.
func (g *Game) Clone() *Game {
	c := *g
	if g.MoveHistory != nil {
		c.MoveHistory = append([]string(nil), g.MoveHistory...)
	}
	if g.DrawOffer != nil {
		offer := *g.DrawOffer
		c.DrawOffer = &offer
	}
	return &c
}
