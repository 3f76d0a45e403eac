package rules

import (
	"chessduel/internal/model"
	"fmt"

	"github.com/corentings/chess/v2"
)

// fiftyMovePlies is the half-move clock value at which the fifty-move rule
// makes the game a draw.
const fiftyMovePlies = 100

// ChessOracle implements Oracle with github.com/corentings/chess. It holds no
// state; every call rebuilds a game from the FEN it is given.
type ChessOracle struct{}

// NewChessOracle creates the standard chess oracle.
func NewChessOracle() *ChessOracle {
	return &ChessOracle{}
}

func (o *ChessOracle) StartingPosition() string {
	return model.StartingFEN
}

func (o *ChessOracle) load(position string) (*chess.Game, error) {
	opt, err := chess.FEN(position)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPosition, err)
	}
	return chess.NewGame(opt), nil
}

// Apply plays mv on position.
func (o *ChessOracle) Apply(position string, mv Move) (*Outcome, error) {
	game, err := o.load(position)
	if err != nil {
		return nil, err
	}
	before := game.Position()

	played := findLegal(game, mv)
	if played == nil {
		return &Outcome{Accepted: false}, nil
	}
	if err := game.Move(played, nil); err != nil {
		return &Outcome{Accepted: false}, nil
	}

	newPosition := game.FEN()
	out := &Outcome{
		Accepted:        true,
		NewPosition:     newPosition,
		SAN:             chess.AlgebraicNotation{}.Encode(before, played),
		SideToMoveAfter: sideOf(game.Position().Turn()),
	}

	switch game.Outcome() {
	case chess.WhiteWon, chess.BlackWon:
		out.IsCheckmate = game.Method() == chess.Checkmate
	case chess.Draw:
		out.IsStalemate = game.Method() == chess.Stalemate
		out.IsDraw = true
	}
	if !out.IsCheckmate && halfmoveClock(newPosition) >= fiftyMovePlies {
		out.IsDraw = true
	}
	return out, nil
}

// findLegal returns the legal move of game matching mv, or nil. Game.Move
// does not check legality itself.
func findLegal(game *chess.Game, mv Move) *chess.Move {
	for _, candidate := range game.ValidMoves() {
		if candidate.S1().String() == mv.From &&
			candidate.S2().String() == mv.To &&
			candidate.Promo().String() == mv.Promotion {
			legal := candidate
			return &legal
		}
	}
	return nil
}

// SideToMove reads whose turn it is from position.
func (o *ChessOracle) SideToMove(position string) (model.Side, error) {
	game, err := o.load(position)
	if err != nil {
		return "", err
	}
	return sideOf(game.Position().Turn()), nil
}

// Board resolves position into a square grid, rank 8 first.
func (o *ChessOracle) Board(position string) (*model.BoardView, error) {
	game, err := o.load(position)
	if err != nil {
		return nil, err
	}
	var view model.BoardView
	for sq, piece := range game.Position().Board().SquareMap() {
		if piece == chess.NoPiece {
			continue
		}
		row := 7 - int(sq.Rank())
		col := int(sq.File())
		if row < 0 || row > 7 || col < 0 || col > 7 {
			continue
		}
		view[row][col] = &model.BoardSquare{
			Square: sq.String(),
			Type:   piece.Type().String(),
			Color:  piece.Color().String(),
		}
	}
	return &view, nil
}

func sideOf(c chess.Color) model.Side {
	if c == chess.Black {
		return model.Black
	}
	return model.White
}
