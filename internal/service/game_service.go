package service

import (
	"chessduel/internal/apperr"
	"chessduel/internal/cache"
	"chessduel/internal/model"
	"chessduel/internal/repository"
	"chessduel/internal/rules"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
)

// defaultMaxAttempts bounds how often a mutation is retried after losing a
// version race in the store.
const defaultMaxAttempts = 3

// CreateGameResult is returned by CreateGame
type CreateGameResult struct {
	Game       *model.Game
	InviteLink string
}

// JoinGameResult is returned by JoinGame
type JoinGameResult struct {
	Game         *model.Game
	AssignedSide model.Side
	Board        *model.BoardView
}

// GameView is a game snapshot plus its rendered board
type GameView struct {
	Game  *model.Game
	Board *model.BoardView
}

// MoveResult is returned by MakeMove
type MoveResult struct {
	Game  *model.Game
	Board *model.BoardView
	Move  model.MoveRecord
}

// GameService runs every game transition: it serializes actions per game,
// validates them against the rules oracle, persists with a version check
// and broadcasts the accepted result.
type GameService struct {
	gameRepo    repository.GameRepo
	playerRepo  repository.PlayerRepo
	gameCache   cache.GameCache
	oracle      rules.Oracle
	guard       *SessionGuard
	broadcaster Broadcaster
	logger      *slog.Logger

	clientURL   string
	maxAttempts int
	now         func() time.Time
	coinFlip    func() bool
	newID       func() string
}

// NewGameService creates a new game service. playerRepo and gameCache may be nil.
func NewGameService(
	gameRepo repository.GameRepo,
	playerRepo repository.PlayerRepo,
	gameCache cache.GameCache,
	oracle rules.Oracle,
	clientURL string,
) *GameService {
	return &GameService{
		gameRepo:    gameRepo,
		playerRepo:  playerRepo,
		gameCache:   gameCache,
		oracle:      oracle,
		guard:       NewSessionGuard(),
		broadcaster: noopBroadcaster{},
		logger:      slog.Default(),
		clientURL:   strings.TrimRight(clientURL, "/"),
		maxAttempts: defaultMaxAttempts,
		now:         time.Now,
		coinFlip:    func() bool { return rand.IntN(2) == 0 },
		newID:       uuid.NewString,
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *GameService) SetBroadcaster(b Broadcaster) {
	if b == nil {
		b = noopBroadcaster{}
	}
	s.broadcaster = b
}

func (s *GameService) SetLogger(l *slog.Logger) {
	if l != nil {
		s.logger = l
	}
}

// SetClock replaces the time source.
func (s *GameService) SetClock(now func() time.Time) {
	s.now = now
}

// SetCoinFlip replaces the colour draw used by CreateGame. A true result
// seats the creator as white.
func (s *GameService) SetCoinFlip(flip func() bool) {
	s.coinFlip = flip
}

// Guard exposes the per-game serializer.
func (s *GameService) Guard() *SessionGuard {
	return s.guard
}

// InviteLink returns the join URL handed to the creator of gameID.
func (s *GameService) InviteLink(gameID string) string {
	return fmt.Sprintf("%s/game/join/%s", s.clientURL, gameID)
}

// CreateGame opens a pending game with the creator on a random side.
func (s *GameService) CreateGame(ctx context.Context, playerID string) (*CreateGameResult, error) {
	if strings.TrimSpace(playerID) == "" {
		return nil, apperr.ErrPlayerIDRequired
	}
	ctx = context.WithoutCancel(ctx)

	now := s.now()
	id := s.newID()
	game := &model.Game{
		ID:           id,
		Status:       model.GamePending,
		FEN:          s.oracle.StartingPosition(),
		InviteLink:   s.InviteLink(id),
		MoveHistory:  []string{},
		LastActionAt: now,
		CreatedAt:    now,
	}
	if s.coinFlip() {
		game.WhitePlayer = model.SeatFor(playerID)
	} else {
		game.BlackPlayer = model.SeatFor(playerID)
	}

	if err := checkInvariants(nil, game); err != nil {
		return nil, err
	}
	if err := s.gameRepo.Create(ctx, game); err != nil {
		return nil, apperr.Unexpected("failed to create game", err)
	}
	s.cacheGame(ctx, game)

	side, _ := game.SideOf(playerID)
	s.logger.Info("game created", "game_id", id, "player_id", playerID, "side", side)

	return &CreateGameResult{Game: game, InviteLink: game.InviteLink}, nil
}

// JoinGame seats playerID on the free side and starts the game.
func (s *GameService) JoinGame(ctx context.Context, gameID, playerID string) (*JoinGameResult, error) {
	if strings.TrimSpace(playerID) == "" {
		return nil, apperr.ErrPlayerIDRequired
	}

	var side model.Side
	game, err := s.withSession(ctx, gameID, func(g *model.Game) (*mutation, error) {
		var err error
		side, err = applyJoin(g, playerID, s.now())
		if err != nil {
			return nil, err
		}
		return &mutation{
			event: model.EventGameStarted,
			payload: func(g *model.Game, board *model.BoardView) interface{} {
				return model.GameStartedEvent{
					Game:         model.SeatedGame{Game: g, AssignedColor: side},
					BoardState:   board,
					JoinedPlayer: model.JoinedPlayer{ID: playerID, Color: side},
				}
			},
		}, nil
	})
	if err != nil {
		return nil, err
	}

	return &JoinGameResult{Game: game, AssignedSide: side, Board: s.board(game)}, nil
}

// GetGame returns the latest committed snapshot of a game.
func (s *GameService) GetGame(ctx context.Context, gameID string) (*GameView, error) {
	if s.gameCache != nil {
		cached, err := s.gameCache.Get(ctx, gameID)
		if err != nil {
			s.logger.Warn("game cache read failed", "game_id", gameID, "error", err)
		} else if cached != nil {
			return &GameView{Game: cached, Board: s.board(cached)}, nil
		}
	}

	game, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, apperr.Unexpected("failed to load game", err)
	}
	if game == nil {
		return nil, apperr.ErrGameNotFound
	}
	s.cacheGame(ctx, game)

	return &GameView{Game: game, Board: s.board(game)}, nil
}

// MakeMove applies mv for playerID if it is their turn and the move is legal.
func (s *GameService) MakeMove(ctx context.Context, gameID, playerID string, mv rules.Move) (*MoveResult, error) {
	if strings.TrimSpace(playerID) == "" {
		return nil, apperr.ErrPlayerIDRequired
	}
	mv, err := normalizeMove(mv)
	if err != nil {
		return nil, err
	}

	var record model.MoveRecord
	game, err := s.withSession(ctx, gameID, func(g *model.Game) (*mutation, error) {
		out, side, err := applyMove(g, playerID, mv, s.oracle, s.now())
		if err != nil {
			return nil, err
		}
		record = model.MoveRecord{
			SAN:       out.SAN,
			From:      mv.From,
			To:        mv.To,
			Promotion: mv.Promotion,
			By:        playerID,
			Color:     side,
		}
		return &mutation{
			event: model.EventMoveMade,
			payload: func(g *model.Game, board *model.BoardView) interface{} {
				return model.MoveMadeEvent{
					Message:    "Move made successfully",
					Game:       g,
					BoardState: board,
					Move:       record,
				}
			},
		}, nil
	})
	if err != nil {
		return nil, err
	}

	return &MoveResult{Game: game, Board: s.board(game), Move: record}, nil
}

// ResignGame ends the game in favour of playerID's opponent.
func (s *GameService) ResignGame(ctx context.Context, gameID, playerID string) (*model.Game, error) {
	if strings.TrimSpace(playerID) == "" {
		return nil, apperr.ErrPlayerIDRequired
	}

	return s.withSession(ctx, gameID, func(g *model.Game) (*mutation, error) {
		winner, err := applyResign(g, playerID, s.now())
		if err != nil {
			return nil, err
		}
		return &mutation{
			event: model.EventGameResigned,
			payload: func(g *model.Game, _ *model.BoardView) interface{} {
				return model.GameResignedEvent{Game: g, ResignedBy: playerID, Winner: winner}
			},
		}, nil
	})
}

// OfferDraw records a draw offer from playerID.
func (s *GameService) OfferDraw(ctx context.Context, gameID, playerID string) (*model.Game, error) {
	if strings.TrimSpace(playerID) == "" {
		return nil, apperr.ErrPlayerIDRequired
	}

	return s.withSession(ctx, gameID, func(g *model.Game) (*mutation, error) {
		if err := applyOfferDraw(g, playerID, s.now()); err != nil {
			return nil, err
		}
		return &mutation{
			event: model.EventDrawOffered,
			payload: func(g *model.Game, _ *model.BoardView) interface{} {
				return model.DrawOfferedEvent{Game: g, OfferedBy: playerID}
			},
		}, nil
	})
}

// RespondToDraw accepts or declines the opponent's pending offer.
func (s *GameService) RespondToDraw(ctx context.Context, gameID, playerID string, accept bool) (*model.Game, error) {
	if strings.TrimSpace(playerID) == "" {
		return nil, apperr.ErrPlayerIDRequired
	}

	return s.withSession(ctx, gameID, func(g *model.Game) (*mutation, error) {
		if err := applyRespondDraw(g, playerID, accept, s.now()); err != nil {
			return nil, err
		}
		return &mutation{
			event: model.EventDrawResponse,
			payload: func(g *model.Game, _ *model.BoardView) interface{} {
				return model.DrawResponseEvent{Game: g, RespondedBy: playerID, Accepted: accept}
			},
		}, nil
	})
}

// PlayerStats returns the finished-game tally of playerID. Players with no
// finished games get zeroed stats.
func (s *GameService) PlayerStats(ctx context.Context, playerID string) (*model.PlayerStats, error) {
	if strings.TrimSpace(playerID) == "" {
		return nil, apperr.ErrPlayerIDRequired
	}
	empty := &model.PlayerStats{PlayerID: playerID, Games: []string{}}
	if s.playerRepo == nil {
		return empty, nil
	}

	stats, err := s.playerRepo.GetStats(ctx, playerID)
	if err != nil {
		return nil, apperr.Unexpected("failed to load player stats", err)
	}
	if stats == nil {
		return empty, nil
	}
	return stats, nil
}

// mutation describes what to broadcast once a transition is committed.
type mutation struct {
	event   string
	payload func(g *model.Game, board *model.BoardView) interface{}
}

// withSession runs fn against a fresh copy of the game while holding the
// game's guard, then commits the result with a version check. A lost
// version race reloads and reruns fn. Once admitted, the action runs to
// completion even if ctx is cancelled.
func (s *GameService) withSession(ctx context.Context, gameID string, fn func(g *model.Game) (*mutation, error)) (*model.Game, error) {
	ctx = context.WithoutCancel(ctx)

	unlock := s.guard.Lock(gameID)
	defer unlock()

	for attempt := 1; ; attempt++ {
		current, err := s.gameRepo.GetByID(ctx, gameID)
		if err != nil {
			return nil, apperr.Unexpected("failed to load game", err)
		}
		if current == nil {
			return nil, apperr.ErrGameNotFound
		}

		next := current.Clone()
		m, err := fn(next)
		if err != nil {
			s.logger.Debug("action rejected", "game_id", gameID, "code", apperr.CodeOf(err), "error", err)
			return nil, err
		}
		if err := checkInvariants(current, next); err != nil {
			s.logger.Error("rejected transition", "game_id", gameID, "error", err)
			return nil, err
		}

		err = s.gameRepo.Save(ctx, next)
		if errors.Is(err, repository.ErrVersionConflict) {
			if attempt < s.maxAttempts {
				s.logger.Debug("version conflict, retrying", "game_id", gameID, "attempt", attempt)
				continue
			}
			return nil, apperr.ErrVersionConflict.WithCause(err)
		}
		if err != nil {
			return nil, apperr.Unexpected("failed to save game", err)
		}

		s.commit(ctx, current, next, m)
		return next, nil
	}
}

// commit runs the post-save side effects. It is called with the guard held
// so broadcasts for one game leave in commit order.
func (s *GameService) commit(ctx context.Context, prev, next *model.Game, m *mutation) {
	s.cacheGame(ctx, next)

	if m != nil {
		snapshot := next.Clone()
		s.broadcaster.Publish(next.ID, m.event, m.payload(snapshot, s.board(snapshot)))
		s.logger.Info("game updated", "game_id", next.ID, "event", m.event,
			"status", next.Status, "version", next.Version)
	}

	if next.Status.Terminal() && !prev.Status.Terminal() {
		s.recordResult(ctx, next)
	}
}

func (s *GameService) recordResult(ctx context.Context, game *model.Game) {
	if s.playerRepo == nil || game.Status != model.GameCompleted {
		return
	}

	for _, side := range []model.Side{model.White, model.Black} {
		playerID, ok := game.Seat(side).PlayerID()
		if !ok {
			continue
		}
		outcome := repository.OutcomeLoss
		switch game.Result {
		case model.ResultDraw:
			outcome = repository.OutcomeDraw
		case model.WinFor(side):
			outcome = repository.OutcomeWin
		}
		if err := s.playerRepo.RecordResult(ctx, playerID, game.ID, outcome); err != nil {
			s.logger.Error("failed to record result", "game_id", game.ID, "player_id", playerID, "error", err)
		}
	}
}

func (s *GameService) cacheGame(ctx context.Context, game *model.Game) {
	if s.gameCache == nil {
		return
	}
	if err := s.gameCache.Set(ctx, game); err != nil {
		s.logger.Warn("game cache write failed", "game_id", game.ID, "error", err)
	}
}

func (s *GameService) board(game *model.Game) *model.BoardView {
	board, err := s.oracle.Board(game.FEN)
	if err != nil {
		s.logger.Error("failed to render board", "game_id", game.ID, "error", err)
		return nil
	}
	return board
}

// normalizeMove lower-cases mv and checks its squares and promotion piece.
func normalizeMove(mv rules.Move) (rules.Move, error) {
	mv.From = strings.ToLower(strings.TrimSpace(mv.From))
	mv.To = strings.ToLower(strings.TrimSpace(mv.To))
	mv.Promotion = strings.ToLower(strings.TrimSpace(mv.Promotion))

	for _, sq := range []string{mv.From, mv.To} {
		if !validSquare(sq) {
			return mv, apperr.New(apperr.KindValidationFailed, apperr.CodeInvalidSquare,
				fmt.Sprintf("invalid square %q", sq))
		}
	}
	switch mv.Promotion {
	case "", "q", "r", "b", "n":
	default:
		return mv, apperr.New(apperr.KindValidationFailed, apperr.CodeInvalidPromotion,
			fmt.Sprintf("invalid promotion piece %q", mv.Promotion))
	}
	return mv, nil
}

func validSquare(sq string) bool {
	return len(sq) == 2 && sq[0] >= 'a' && sq[0] <= 'h' && sq[1] >= '1' && sq[1] <= '8'
}
