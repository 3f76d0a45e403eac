package handler

import (
	"chessduel/internal/model"
	"chessduel/internal/rules"
	"chessduel/internal/service"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
)

// GameHandler handles game session endpoints
type GameHandler struct {
	gameSvc *service.GameService
	logger  *slog.Logger
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameSvc *service.GameService, logger *slog.Logger) *GameHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &GameHandler{gameSvc: gameSvc, logger: logger}
}

// PlayerRequest is the body of actions that only name the actor
type PlayerRequest struct {
	PlayerID string `json:"playerId"`
}

// MoveRequest is the request body for making a move
type MoveRequest struct {
	PlayerID  string `json:"playerId"`
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion,omitempty"`
}

// RespondDrawRequest is the request body for answering a draw offer
type RespondDrawRequest struct {
	PlayerID string `json:"playerId"`
	Accept   bool   `json:"accept"`
}

// GameResponse carries a message and the updated game
type GameResponse struct {
	Message string      `json:"message"`
	Game    *model.Game `json:"game"`
}

// CreateGameResponse is returned by Create
type CreateGameResponse struct {
	Message    string      `json:"message"`
	Game       *model.Game `json:"game"`
	InviteLink string      `json:"inviteLink"`
}

// JoinGameResponse is returned by Join
type JoinGameResponse struct {
	Message    string           `json:"message"`
	Game       model.SeatedGame `json:"game"`
	BoardState *model.BoardView `json:"boardState"`
}

// GameStateResponse is returned by Get
type GameStateResponse struct {
	Game       *model.Game      `json:"game"`
	BoardState *model.BoardView `json:"boardState"`
}

// MoveResponse is returned by Move
type MoveResponse struct {
	Message    string           `json:"message"`
	Game       *model.Game      `json:"game"`
	BoardState *model.BoardView `json:"boardState"`
	Move       model.MoveRecord `json:"move"`
}

// Create handles POST /v1/games/create
//
//	@Summary	Create a game
//	@Tags		games
//	@Accept		json
//	@Produce	json
//	@Param		body	body		PlayerRequest	true	"creator"
//	@Success	201		{object}	CreateGameResponse
//	@Failure	400		{object}	ErrorResponse
//	@Router		/games/create [post]
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req PlayerRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	playerID, err := actingPlayer(r, req.PlayerID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	res, err := h.gameSvc.CreateGame(r.Context(), playerID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, CreateGameResponse{
		Message:    "Game created successfully",
		Game:       res.Game,
		InviteLink: res.InviteLink,
	})
}

// Join handles POST /v1/games/join/{gameId}
//
//	@Summary	Join a pending game
//	@Tags		games
//	@Accept		json
//	@Produce	json
//	@Param		gameId	path		string			true	"game id"
//	@Param		body	body		PlayerRequest	true	"joiner"
//	@Success	200		{object}	JoinGameResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	403		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/games/join/{gameId} [post]
func (h *GameHandler) Join(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["gameId"]

	var req PlayerRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	playerID, err := actingPlayer(r, req.PlayerID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	res, err := h.gameSvc.JoinGame(r.Context(), gameID, playerID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, JoinGameResponse{
		Message:    "Joined game successfully",
		Game:       model.SeatedGame{Game: res.Game, AssignedColor: res.AssignedSide},
		BoardState: res.Board,
	})
}

// Get handles GET /v1/games/{gameId}
//
//	@Summary	Get the current game state
//	@Tags		games
//	@Produce	json
//	@Param		gameId	path		string	true	"game id"
//	@Success	200		{object}	GameStateResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/games/{gameId} [get]
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["gameId"]

	view, err := h.gameSvc.GetGame(r.Context(), gameID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, GameStateResponse{Game: view.Game, BoardState: view.Board})
}

// Move handles POST /v1/games/{gameId}/move
//
//	@Summary	Make a move
//	@Tags		games
//	@Accept		json
//	@Produce	json
//	@Param		gameId	path		string		true	"game id"
//	@Param		body	body		MoveRequest	true	"move"
//	@Success	200		{object}	MoveResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	403		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Failure	409		{object}	ErrorResponse
//	@Router		/games/{gameId}/move [post]
func (h *GameHandler) Move(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["gameId"]

	var req MoveRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	playerID, err := actingPlayer(r, req.PlayerID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	res, err := h.gameSvc.MakeMove(r.Context(), gameID, playerID, rules.Move{
		From:      req.From,
		To:        req.To,
		Promotion: req.Promotion,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, MoveResponse{
		Message:    "Move made successfully",
		Game:       res.Game,
		BoardState: res.Board,
		Move:       res.Move,
	})
}

// Resign handles POST /v1/games/{gameId}/resign
//
//	@Summary	Resign a game
//	@Tags		games
//	@Accept		json
//	@Produce	json
//	@Param		gameId	path		string			true	"game id"
//	@Param		body	body		PlayerRequest	true	"resigning player"
//	@Success	200		{object}	GameResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	403		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/games/{gameId}/resign [post]
func (h *GameHandler) Resign(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["gameId"]

	var req PlayerRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	playerID, err := actingPlayer(r, req.PlayerID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	game, err := h.gameSvc.ResignGame(r.Context(), gameID, playerID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, GameResponse{Message: "Game resigned", Game: game})
}

// OfferDraw handles POST /v1/games/{gameId}/offer-draw
//
//	@Summary	Offer a draw
//	@Tags		games
//	@Accept		json
//	@Produce	json
//	@Param		gameId	path		string			true	"game id"
//	@Param		body	body		PlayerRequest	true	"offering player"
//	@Success	200		{object}	GameResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	403		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/games/{gameId}/offer-draw [post]
func (h *GameHandler) OfferDraw(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["gameId"]

	var req PlayerRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	playerID, err := actingPlayer(r, req.PlayerID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	game, err := h.gameSvc.OfferDraw(r.Context(), gameID, playerID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, GameResponse{Message: "Draw offered", Game: game})
}

// RespondDraw handles POST /v1/games/{gameId}/respond-draw
//
//	@Summary	Accept or decline a draw offer
//	@Tags		games
//	@Accept		json
//	@Produce	json
//	@Param		gameId	path		string				true	"game id"
//	@Param		body	body		RespondDrawRequest	true	"response"
//	@Success	200		{object}	GameResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	403		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/games/{gameId}/respond-draw [post]
func (h *GameHandler) RespondDraw(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["gameId"]

	var req RespondDrawRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	playerID, err := actingPlayer(r, req.PlayerID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	game, err := h.gameSvc.RespondToDraw(r.Context(), gameID, playerID, req.Accept)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	msg := "Draw declined"
	if req.Accept {
		msg = "Draw accepted"
	}
	writeJSON(w, http.StatusOK, GameResponse{Message: msg, Game: game})
}
