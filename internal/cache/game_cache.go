package cache

import (
	"chessduel/internal/model"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// GameCache holds recent game snapshots for read queries. Writes never read
// from it; the store stays the source of truth.
type GameCache interface {
	Set(ctx context.Context, game *model.Game) error
	// Get returns nil, nil on a miss.
	Get(ctx context.Context, id string) (*model.Game, error)
	Delete(ctx context.Context, id string) error
}

type gameCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewGameCache(client *redis.Client, ttl time.Duration) GameCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &gameCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *gameCache) key(id string) string {
	return fmt.Sprintf("game:%s", id)
}

// setIfNewer only overwrites a snapshot with an equal or higher version, so a
// slow writer cannot roll the cache back.
var setIfNewer = redis.NewScript(`
local cur = redis.call("GET", KEYS[1])
if cur then
	local ok, doc = pcall(cjson.decode, cur)
	if ok and tonumber(doc["version"]) and tonumber(doc["version"]) > tonumber(ARGV[2]) then
		return 0
	end
end
redis.call("SET", KEYS[1], ARGV[1], "PX", ARGV[3])
return 1
`)

func (c *gameCache) Set(ctx context.Context, game *model.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}
	return setIfNewer.Run(ctx, c.client, []string{c.key(game.ID)}, data, game.Version, c.ttl.Milliseconds()).Err()
}

func (c *gameCache) Get(ctx context.Context, id string) (*model.Game, error) {
	data, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var game model.Game
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

func (c *gameCache) Delete(ctx context.Context, id string) error {
	return c.client.Del(ctx, c.key(id)).Err()
}
