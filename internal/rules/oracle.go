// Package rules is the chess rules oracle consumed by the game engine.
//
// The engine never inspects a position itself: legality, resulting
// position, terminal flags and side to move all come from an Oracle.
package rules

import (
	"chessduel/internal/model"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidPosition is returned when a FEN cannot be parsed.
var ErrInvalidPosition = errors.New("invalid position")

// Move is a candidate move given by its endpoints.
type Move struct {
	From      string // e.g. "e2"
	To        string // e.g. "e4"
	Promotion string // "", q, r, b or n
}

// UCI returns the move in long algebraic notation.
func (m Move) UCI() string {
	return strings.ToLower(m.From + m.To + m.Promotion)
}

// Outcome is the oracle's verdict on a candidate move.
type Outcome struct {
	Accepted        bool
	NewPosition     string
	SAN             string
	IsCheckmate     bool
	IsStalemate     bool
	IsDraw          bool
	SideToMoveAfter model.Side
}

// Oracle knows the legal-move and terminal-condition rules. Implementations
// must be safe for concurrent use.
type Oracle interface {
	// Apply evaluates mv against position. An illegal move yields an
	// Outcome with Accepted false and a nil error; errors are reserved for
	// unreadable positions.
	Apply(position string, mv Move) (*Outcome, error)
	SideToMove(position string) (model.Side, error)
	Board(position string) (*model.BoardView, error)
	StartingPosition() string
}

// Plies returns the number of half-moves played from the standard start to
// reach position, using the side-to-move and full-move fields of the FEN.
func Plies(position string) (int, error) {
	fields := strings.Fields(position)
	if len(fields) != 6 {
		return 0, fmt.Errorf("%w: expected 6 fields, got %d", ErrInvalidPosition, len(fields))
	}
	fullmove, err := strconv.Atoi(fields[5])
	if err != nil || fullmove < 1 {
		return 0, fmt.Errorf("%w: bad full-move number %q", ErrInvalidPosition, fields[5])
	}
	plies := (fullmove - 1) * 2
	switch fields[1] {
	case "w":
	case "b":
		plies++
	default:
		return 0, fmt.Errorf("%w: bad side to move %q", ErrInvalidPosition, fields[1])
	}
	return plies, nil
}

func halfmoveClock(position string) int {
	fields := strings.Fields(position)
	if len(fields) != 6 {
		return 0
	}
	n, _ := strconv.Atoi(fields[4])
	return n
}
