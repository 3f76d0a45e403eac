package service

import (
	"chessduel/internal/apperr"
	"chessduel/internal/model"
	"chessduel/internal/rules"
	"fmt"
	"strings"
	"time"
)

// The apply* functions are the game state machine. Each one mutates g in
// place or returns an error and leaves the caller to discard g.

func touch(g *model.Game, now time.Time) {
	if now.After(g.LastActionAt) {
		g.LastActionAt = now
	}
}

func requireActive(g *model.Game) error {
	if g.Status != model.GameActive {
		return apperr.ErrGameNotActive
	}
	return nil
}

func seatOf(g *model.Game, playerID string) (model.Side, error) {
	side, ok := g.SideOf(playerID)
	if !ok {
		return "", apperr.ErrPlayerNotInGame
	}
	return side, nil
}

func applyJoin(g *model.Game, playerID string, now time.Time) (model.Side, error) {
	if g.Status != model.GamePending {
		return "", apperr.ErrGameNotPending
	}
	if g.WhitePlayer.Holds(playerID) || g.BlackPlayer.Holds(playerID) {
		return "", apperr.ErrCannotJoinOwnGame
	}

	var side model.Side
	switch {
	case !g.WhitePlayer.Bound():
		g.WhitePlayer = model.SeatFor(playerID)
		side = model.White
	case !g.BlackPlayer.Bound():
		g.BlackPlayer = model.SeatFor(playerID)
		side = model.Black
	default:
		return "", apperr.ErrGameFull
	}

	g.Status = model.GameActive
	touch(g, now)
	return side, nil
}

func applyMove(g *model.Game, playerID string, mv rules.Move, oracle rules.Oracle, now time.Time) (*rules.Outcome, model.Side, error) {
	if err := requireActive(g); err != nil {
		return nil, "", err
	}
	side, err := seatOf(g, playerID)
	if err != nil {
		return nil, "", err
	}

	toMove, err := oracle.SideToMove(g.FEN)
	if err != nil {
		return nil, "", apperr.Unexpected("read side to move", err)
	}
	if side != toMove {
		return nil, "", apperr.ErrNotYourTurn
	}

	out, err := oracle.Apply(g.FEN, mv)
	if err != nil {
		return nil, "", apperr.Unexpected("apply move", err)
	}
	if !out.Accepted {
		return nil, "", apperr.ErrIllegalMove
	}

	g.FEN = out.NewPosition
	g.MoveHistory = append(g.MoveHistory, out.SAN)
	// any move implicitly declines a pending offer
	g.DrawOffer = nil
	touch(g, now)

	switch {
	case out.IsCheckmate:
		g.Status = model.GameCompleted
		g.Result = model.WinFor(side)
	case out.IsStalemate, out.IsDraw:
		g.Status = model.GameCompleted
		g.Result = model.ResultDraw
	}
	return out, side, nil
}

func applyResign(g *model.Game, playerID string, now time.Time) (model.Side, error) {
	if err := requireActive(g); err != nil {
		return "", err
	}
	side, err := seatOf(g, playerID)
	if err != nil {
		return "", err
	}

	winner := side.Opponent()
	g.Status = model.GameCompleted
	g.Result = model.WinFor(winner)
	g.DrawOffer = nil
	touch(g, now)
	return winner, nil
}

func applyOfferDraw(g *model.Game, playerID string, now time.Time) error {
	if err := requireActive(g); err != nil {
		return err
	}
	if _, err := seatOf(g, playerID); err != nil {
		return err
	}
	if g.DrawOffer != nil {
		return apperr.ErrDrawAlreadyOffered
	}

	g.DrawOffer = &model.DrawOffer{OfferedBy: playerID, OfferedAt: now}
	touch(g, now)
	return nil
}

func applyRespondDraw(g *model.Game, playerID string, accept bool, now time.Time) error {
	if err := requireActive(g); err != nil {
		return err
	}
	if _, err := seatOf(g, playerID); err != nil {
		return err
	}
	if g.DrawOffer == nil {
		return apperr.ErrNoDrawOffer
	}
	if g.DrawOffer.OfferedBy == playerID {
		return apperr.ErrOwnDrawOffer
	}

	if accept {
		g.Status = model.GameCompleted
		g.Result = model.ResultDraw
	}
	g.DrawOffer = nil
	touch(g, now)
	return nil
}

// applyAbandon closes an active game whose last action predates cutoff.
func applyAbandon(g *model.Game, cutoff, now time.Time) error {
	if err := requireActive(g); err != nil {
		return err
	}
	if !g.LastActionAt.Before(cutoff) {
		return apperr.ErrGameNotIdle
	}

	g.Status = model.GameAbandoned
	g.DrawOffer = nil
	touch(g, now)
	return nil
}

// checkInvariants validates next as the successor of prev. prev is nil for
// a freshly created game.
func checkInvariants(prev, next *model.Game) error {
	var problems []string
	fail := func(format string, args ...interface{}) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	plies, err := rules.Plies(next.FEN)
	if err != nil {
		fail("unreadable position: %v", err)
	} else if plies != len(next.MoveHistory) {
		fail("position is %d plies in but history has %d moves", plies, len(next.MoveHistory))
	}

	if next.Status.Terminal() && next.DrawOffer != nil {
		fail("draw offer pending on %s game", next.Status)
	}
	if (next.Result != model.ResultNone) != (next.Status == model.GameCompleted) {
		fail("result %q with status %s", next.Result, next.Status)
	}

	white, black := next.WhitePlayer.Bound(), next.BlackPlayer.Bound()
	switch next.Status {
	case model.GamePending:
		if white == black {
			fail("pending game must have exactly one seat bound")
		}
	default:
		if !white || !black {
			fail("%s game must have both seats bound", next.Status)
		}
	}
	if white && black && next.WhitePlayer == next.BlackPlayer {
		fail("same player holds both seats")
	}

	if prev != nil {
		for _, side := range []model.Side{model.White, model.Black} {
			before := prev.Seat(side)
			if before.Bound() && before != next.Seat(side) {
				fail("%s seat was rebound", side)
			}
		}
		if prev.Status.Terminal() {
			fail("transition out of terminal status %s", prev.Status)
		}
		if next.LastActionAt.Before(prev.LastActionAt) {
			fail("last action time went backwards")
		}
		if len(next.MoveHistory) < len(prev.MoveHistory) {
			fail("move history shrank")
		} else {
			for i, san := range prev.MoveHistory {
				if next.MoveHistory[i] != san {
					fail("move history rewritten at ply %d", i+1)
					break
				}
			}
		}
	}

	if len(problems) > 0 {
		return apperr.New(apperr.KindUnexpected, apperr.CodeInvariant, "invariant violation: "+strings.Join(problems, "; "))
	}
	return nil
}
