package ws

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// Connection notices sent by the hub itself
const (
	MsgPlayerJoined       = "playerJoined"
	MsgPlayerDisconnected = "playerDisconnected"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    string          `json:"type"`
	GameID  string          `json:"gameId"`
	Payload json.RawMessage `json:"payload"`
}

// Connection represents a WebSocket subscriber of one game
type Connection struct {
	GameID   string
	PlayerID string // empty for anonymous subscribers
	Send     chan []byte
	Hub      *Hub
}

// BroadcastMessage is a message to broadcast
type BroadcastMessage struct {
	GameID string
	Skip   *Connection // not delivered to this connection
	Data   []byte
}

// Hub fans game events out to the WebSocket subscribers of each game. A
// subscriber whose buffer is full misses the message.
type Hub struct {
	// game -> connections
	games map[string]map[*Connection]struct{}
	mu    sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
	quit       chan struct{}
	stopOnce   sync.Once

	logger *slog.Logger
}

// NewHub creates a new WebSocket hub
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Hub{
		games:      make(map[string]map[*Connection]struct{}),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *BroadcastMessage, 256),
		quit:       make(chan struct{}),
		logger:     logger,
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case <-h.quit:
			h.mu.Lock()
			for _, conns := range h.games {
				for conn := range conns {
					close(conn.Send)
				}
			}
			h.games = make(map[string]map[*Connection]struct{})
			h.mu.Unlock()
			return

		case conn := <-h.register:
			h.mu.Lock()
			if h.games[conn.GameID] == nil {
				h.games[conn.GameID] = make(map[*Connection]struct{})
			}
			h.games[conn.GameID][conn] = struct{}{}
			h.mu.Unlock()
			h.logger.Debug("subscriber connected", "game_id", conn.GameID, "player_id", conn.PlayerID)

			if conn.PlayerID != "" {
				h.deliver(&BroadcastMessage{
					GameID: conn.GameID,
					Skip:   conn,
					Data:   envelope(MsgPlayerJoined, conn.GameID, map[string]string{"playerId": conn.PlayerID}),
				})
			}

		case conn := <-h.unregister:
			h.mu.Lock()
			conns, ok := h.games[conn.GameID]
			if ok {
				if _, ok = conns[conn]; ok {
					delete(conns, conn)
					close(conn.Send)
					if len(conns) == 0 {
						delete(h.games, conn.GameID)
					}
				}
			}
			h.mu.Unlock()
			if !ok {
				continue
			}
			h.logger.Debug("subscriber disconnected", "game_id", conn.GameID, "player_id", conn.PlayerID)

			if conn.PlayerID != "" {
				h.deliver(&BroadcastMessage{
					GameID: conn.GameID,
					Data:   envelope(MsgPlayerDisconnected, conn.GameID, map[string]string{"playerId": conn.PlayerID}),
				})
			}

		case msg := <-h.broadcast:
			h.deliver(msg)
		}
	}
}

func (h *Hub) deliver(msg *BroadcastMessage) {
	if msg.Data == nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()

	for conn := range h.games[msg.GameID] {
		if conn == msg.Skip {
			continue
		}
		select {
		case conn.Send <- msg.Data:
		default:
			// Drop message if buffer full
			h.logger.Warn("dropping event for slow subscriber", "game_id", msg.GameID, "player_id", conn.PlayerID)
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	select {
	case h.register <- conn:
	case <-h.quit:
		close(conn.Send)
	}
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	select {
	case h.unregister <- conn:
	case <-h.quit:
	}
}

// Close disconnects every subscriber and stops the hub.
func (h *Hub) Close() {
	h.stopOnce.Do(func() { close(h.quit) })
}

// Publish sends an event to every subscriber of gameID (implements service.Broadcaster)
func (h *Hub) Publish(gameID, event string, payload interface{}) {
	data := envelope(event, gameID, payload)
	if data == nil {
		h.logger.Error("dropping unencodable event", "game_id", gameID, "event", event)
		return
	}
	select {
	case h.broadcast <- &BroadcastMessage{GameID: gameID, Data: data}:
	case <-h.quit:
	}
}

// Subscribers returns the number of connections watching gameID.
func (h *Hub) Subscribers(gameID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.games[gameID])
}

func envelope(event, gameID string, payload interface{}) []byte {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil
	}
	data, err := json.Marshal(&Message{Type: event, GameID: gameID, Payload: raw})
	if err != nil {
		return nil
	}
	return data
}
