package cache

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type relayed struct {
	gameID  string
	event   string
	payload json.RawMessage
}

type recordingSink struct {
	mu     sync.Mutex
	events []relayed
}

func (s *recordingSink) Publish(gameID, event string, payload interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, _ := payload.(json.RawMessage)
	s.events = append(s.events, relayed{gameID: gameID, event: event, payload: raw})
}

func (s *recordingSink) snapshot() []relayed {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]relayed(nil), s.events...)
}

func TestEventBus_RelaysInOrder(t *testing.T) {
	_, client := newTestRedis(t)
	bus := NewEventBus(client, nil)
	sink := &recordingSink{}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- bus.Run(ctx, sink) }()

	// wait for the subscription before publishing
	require.Eventually(t, func() bool {
		n, err := client.PubSubNumPat(context.Background()).Result()
		return err == nil && n > 0
	}, 2*time.Second, 10*time.Millisecond)

	bus.Publish("g1", "moveMade", map[string]string{"san": "e4"})
	bus.Publish("g1", "moveMade", map[string]string{"san": "e5"})
	bus.Publish("g2", "drawOffered", map[string]string{"offeredBy": "p1"})

	require.Eventually(t, func() bool { return len(sink.snapshot()) == 3 }, 2*time.Second, 10*time.Millisecond)

	got := sink.snapshot()
	assert.Equal(t, "g1", got[0].gameID)
	assert.Equal(t, "moveMade", got[0].event)
	assert.JSONEq(t, `{"san":"e4"}`, string(got[0].payload))
	assert.JSONEq(t, `{"san":"e5"}`, string(got[1].payload))
	assert.Equal(t, "g2", got[2].gameID)
	assert.Equal(t, "drawOffered", got[2].event)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("relay did not stop")
	}
}
