package chat

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"presencehub/internal/rooms"
)

// relayChannel carries chat payloads between instances.
const relayChannel = "presencehub:chat:events"

// RedisRelay shares one chat stream across instances: outbound messages
// go to a Redis channel instead of the local room, and a subscriber loop
// feeds every channel payload (our own included) back into the local
// chat room. Fire-and-forget, nothing is stored or replayed.
type RedisRelay struct {
	rdb *redis.Client
	reg *rooms.Registry
}

func NewRedisRelay(rdb *redis.Client, reg *rooms.Registry) *RedisRelay {
	return &RedisRelay{rdb: rdb, reg: reg}
}

func (r *RedisRelay) PublishChat(msg Message) {
	payload, err := json.Marshal(msg)
	if err != nil {
		zap.L().Warn("chat.marshal", zap.Error(err))
		return
	}
	if err := r.rdb.Publish(context.Background(), relayChannel, payload).Err(); err != nil {
		zap.L().Warn("chat.relay_publish", zap.Error(err))
	}
}

// Run subscribes to the relay channel and republishes inbound payloads
// into the local chat room until ctx is cancelled.
func (r *RedisRelay) Run(ctx context.Context) {
	pubsub := r.rdb.Subscribe(ctx, relayChannel)
	defer pubsub.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case m, ok := <-pubsub.Channel():
			if !ok {
				return
			}
			r.reg.Publish(rooms.Chat, []byte(m.Payload))
		}
	}
}
