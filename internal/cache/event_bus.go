package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	eventChannelPrefix  = "game:"
	eventChannelSuffix  = ":events"
	eventChannelPattern = eventChannelPrefix + "*" + eventChannelSuffix
	publishTimeout      = 5 * time.Second
)

// EventSink receives relayed events, normally the local WebSocket hub.
type EventSink interface {
	Publish(gameID, event string, payload interface{})
}

// busMessage is the pub/sub wire format.
type busMessage struct {
	GameID  string          `json:"gameId"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// EventBus fans game events out to every server instance through Redis
// pub/sub. Publish sends to Redis; Run delivers what any instance published
// to the local sink.
type EventBus struct {
	client *redis.Client
	logger *slog.Logger
}

func NewEventBus(client *redis.Client, logger *slog.Logger) *EventBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventBus{client: client, logger: logger}
}

func eventChannel(gameID string) string {
	return eventChannelPrefix + gameID + eventChannelSuffix
}

// Publish is fire-and-forget: failures are logged, not returned.
func (b *EventBus) Publish(gameID, event string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		b.logger.Error("marshal event payload", "game_id", gameID, "event", event, "error", err)
		return
	}
	msg, err := json.Marshal(busMessage{GameID: gameID, Type: event, Payload: data})
	if err != nil {
		b.logger.Error("marshal event", "game_id", gameID, "event", event, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := b.client.Publish(ctx, eventChannel(gameID), msg).Err(); err != nil {
		b.logger.Error("publish event", "game_id", gameID, "event", event, "error", err)
	}
}

// Run relays events to sink until ctx is done.
func (b *EventBus) Run(ctx context.Context, sink EventSink) error {
	pubsub := b.client.PSubscribe(ctx, eventChannelPattern)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe %s: %w", eventChannelPattern, err)
	}
	b.logger.Info("event relay subscribed", "pattern", eventChannelPattern)

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case m, ok := <-ch:
			if !ok {
				return nil
			}
			b.deliver(sink, m)
		}
	}
}

func (b *EventBus) deliver(sink EventSink, m *redis.Message) {
	var msg busMessage
	if err := json.Unmarshal([]byte(m.Payload), &msg); err != nil {
		b.logger.Warn("drop malformed event", "channel", m.Channel, "error", err)
		return
	}
	if msg.GameID == "" {
		msg.GameID = strings.TrimSuffix(strings.TrimPrefix(m.Channel, eventChannelPrefix), eventChannelSuffix)
	}
	sink.Publish(msg.GameID, msg.Type, msg.Payload)
}
