package handler

import (
	"chessduel/internal/service"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
)

// PlayerHandler handles player endpoints
type PlayerHandler struct {
	gameSvc *service.GameService
	logger  *slog.Logger
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(gameSvc *service.GameService, logger *slog.Logger) *PlayerHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlayerHandler{gameSvc: gameSvc, logger: logger}
}

// Stats handles GET /v1/players/{playerId}/stats
//
//	@Summary	Finished-game statistics of a player
//	@Tags		players
//	@Produce	json
//	@Param		playerId	path		string	true	"player id"
//	@Success	200			{object}	model.PlayerStats
//	@Router		/players/{playerId}/stats [get]
func (h *PlayerHandler) Stats(w http.ResponseWriter, r *http.Request) {
	playerID := mux.Vars(r)["playerId"]

	stats, err := h.gameSvc.PlayerStats(r.Context(), playerID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
