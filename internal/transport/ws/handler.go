package ws

import (
	"chessduel/internal/apperr"
	"chessduel/internal/service"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for dev
	},
}

// Handler handles WebSocket connections
type Handler struct {
	hub     *Hub
	gameSvc *service.GameService
	authSvc *service.AuthService
	logger  *slog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, gameSvc *service.GameService, authSvc *service.AuthService, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		hub:     hub,
		gameSvc: gameSvc,
		authSvc: authSvc,
		logger:  logger,
	}
}

// GameWS handles GET /v1/ws/games/{gameId}
//
// The subscriber may name itself with ?playerId= or, when tokens are
// configured, with ?token=; a valid token wins over the query id.
func (h *Handler) GameWS(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["gameId"]

	playerID := r.URL.Query().Get("playerId")
	if token := r.URL.Query().Get("token"); token != "" && h.authSvc != nil && h.authSvc.Enabled() {
		claims, err := h.authSvc.ValidatePlayerToken(token)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		playerID = claims.PlayerID
	}

	if _, err := h.gameSvc.GetGame(r.Context(), gameID); err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			http.Error(w, "game not found", http.StatusNotFound)
			return
		}
		h.logger.Error("websocket game lookup failed", "game_id", gameID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "game_id", gameID, "error", err)
		return
	}

	conn := &Connection{
		GameID:   gameID,
		PlayerID: playerID,
		Send:     make(chan []byte, sendBuffer),
		Hub:      h.hub,
	}

	h.hub.Register(conn)

	h.logger.Info("websocket connected", "game_id", gameID, "player_id", playerID)

	go h.writePump(wsConn, conn)
	go h.readPump(wsConn, conn)
}

func (h *Handler) readPump(wsConn *websocket.Conn, conn *Connection) {
	defer func() {
		h.hub.Unregister(conn)
		wsConn.Close()
	}()

	wsConn.SetReadLimit(maxMessageSize)
	wsConn.SetReadDeadline(time.Now().Add(pongWait))
	wsConn.SetPongHandler(func(string) error {
		wsConn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		// subscribers are receive-only; reads just service control frames
		if _, _, err := wsConn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Warn("websocket read failed", "game_id", conn.GameID, "error", err)
			}
			break
		}
	}
}

func (h *Handler) writePump(wsConn *websocket.Conn, conn *Connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		wsConn.Close()
	}()

	for {
		select {
		case message, ok := <-conn.Send:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				wsConn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := wsConn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := wsConn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
