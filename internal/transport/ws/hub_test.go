package ws

import (
	"chessduel/internal/model"
	"chessduel/internal/repository"
	"chessduel/internal/rules"
	"chessduel/internal/service"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type wsFixture struct {
	hub *Hub
	svc *service.GameService
	srv *httptest.Server
}

func newWSFixture(t *testing.T) *wsFixture {
	t.Helper()
	hub := NewHub(nil)
	t.Cleanup(hub.Close)

	svc := service.NewGameService(repository.NewMemoryGameRepo(), nil, nil, rules.NewChessOracle(), "")
	svc.SetBroadcaster(hub)
	svc.SetCoinFlip(func() bool { return true })

	router := mux.NewRouter()
	h := NewHandler(hub, svc, service.NewAuthService("", 0), nil)
	router.HandleFunc("/v1/ws/games/{gameId}", h.GameWS)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return &wsFixture{hub: hub, svc: svc, srv: srv}
}

func (f *wsFixture) dial(t *testing.T, gameID, playerID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(f.srv.URL, "http") + "/v1/ws/games/" + gameID + "?playerId=" + playerID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg Message
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func TestHub_DeliversGameEvents(t *testing.T) {
	f := newWSFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreateGame(ctx, "p1")
	require.NoError(t, err)
	id := created.Game.ID

	conn := f.dial(t, id, "p1")
	require.Eventually(t, func() bool { return f.hub.Subscribers(id) == 1 }, time.Second, 10*time.Millisecond)

	_, err = f.svc.JoinGame(ctx, id, "p2")
	require.NoError(t, err)
	_, err = f.svc.MakeMove(ctx, id, "p1", rules.Move{From: "e2", To: "e4"})
	require.NoError(t, err)

	started := readMessage(t, conn)
	assert.Equal(t, model.EventGameStarted, started.Type)
	assert.Equal(t, id, started.GameID)

	var payload struct {
		Game struct {
			Status        string `json:"status"`
			AssignedColor string `json:"assignedColor"`
		} `json:"game"`
		JoinedPlayer model.JoinedPlayer `json:"joinedPlayer"`
	}
	require.NoError(t, json.Unmarshal(started.Payload, &payload))
	assert.Equal(t, "active", payload.Game.Status)
	assert.Equal(t, "black", payload.Game.AssignedColor)
	assert.Equal(t, "p2", payload.JoinedPlayer.ID)

	moved := readMessage(t, conn)
	assert.Equal(t, model.EventMoveMade, moved.Type)
	var move model.MoveMadeEvent
	require.NoError(t, json.Unmarshal(moved.Payload, &move))
	assert.Equal(t, "e4", move.Move.SAN)
	assert.Equal(t, []string{"e4"}, move.Game.MoveHistory)
}

func TestHub_PresenceNotices(t *testing.T) {
	f := newWSFixture(t)

	created, err := f.svc.CreateGame(context.Background(), "p1")
	require.NoError(t, err)
	id := created.Game.ID

	first := f.dial(t, id, "p1")
	require.Eventually(t, func() bool { return f.hub.Subscribers(id) == 1 }, time.Second, 10*time.Millisecond)

	second := f.dial(t, id, "p2")
	msg := readMessage(t, first)
	assert.Equal(t, "playerJoined", msg.Type)
	assert.JSONEq(t, `{"playerId":"p2"}`, string(msg.Payload))

	second.Close()
	msg = readMessage(t, first)
	assert.Equal(t, MsgPlayerDisconnected, msg.Type)
	assert.JSONEq(t, `{"playerId":"p2"}`, string(msg.Payload))
	assert.Eventually(t, func() bool { return f.hub.Subscribers(id) == 1 }, time.Second, 10*time.Millisecond)
}

func TestHub_UnknownGame(t *testing.T) {
	f := newWSFixture(t)

	url := "ws" + strings.TrimPrefix(f.srv.URL, "http") + "/v1/ws/games/missing"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHub_IsolatesGames(t *testing.T) {
	hub := NewHub(nil)
	defer hub.Close()

	a := &Connection{GameID: "a", Send: make(chan []byte, 4), Hub: hub}
	b := &Connection{GameID: "b", Send: make(chan []byte, 4), Hub: hub}
	hub.Register(a)
	hub.Register(b)

	hub.Publish("a", model.EventDrawOffered, map[string]string{"offeredBy": "p1"})

	select {
	case data := <-a.Send:
		var msg Message
		require.NoError(t, json.Unmarshal(data, &msg))
		assert.Equal(t, model.EventDrawOffered, msg.Type)
		assert.Equal(t, "a", msg.GameID)
	case <-time.After(time.Second):
		t.Fatal("subscriber of a got nothing")
	}

	select {
	case <-b.Send:
		t.Fatal("subscriber of b got an event for a")
	case <-time.After(50 * time.Millisecond):
	}

	hub.Unregister(a)
	assert.Eventually(t, func() bool { return hub.Subscribers("a") == 0 }, time.Second, 10*time.Millisecond)
}
