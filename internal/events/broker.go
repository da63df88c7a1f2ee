package events

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/scanmap/server-go/internal/model"
	redisclient "github.com/scanmap/server-go/internal/redis"
)

type EventType string

const (
	SessionStarted     EventType = "session_started"
	SessionStopped     EventType = "session_stopped"
	SessionPreempted   EventType = "session_preempted"
	SessionAutoStopped EventType = "session_auto_stopped"
)

// Event is a scan session lifecycle notification published to redis for
// external consumers. Publishing is best-effort; a failed publish never
// affects the session state already committed to the database.
type Event struct {
	Type    EventType         `json:"type"`
	Session model.ScanSession `json:"session"`
}

type Broker struct {
	redis *redisclient.Client
}

func NewBroker(redisClient *redisclient.Client) *Broker {
	return &Broker{redis: redisClient}
}

func (b *Broker) Publish(ctx context.Context, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("type", string(event.Type)).Msg("failed to marshal session event")
		return
	}

	if err := b.redis.Publish(ctx, redisclient.SessionEventChannel, data).Err(); err != nil {
		log.Warn().Err(err).Str("type", string(event.Type)).Msg("failed to publish session event")
	}
}
