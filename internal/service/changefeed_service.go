package service

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/salon-pos-service/internal/events"
)

// ChangefeedService relays domain events to a Redis pub/sub channel. UI
// clients subscribe to the channel and reload the named collection when a
// message arrives; there is no custom sync protocol beyond that.
type ChangefeedService struct {
	client  *redis.Client
	channel string
	logger  *zap.Logger
}

// NewChangefeedService creates the service.
func NewChangefeedService(client *redis.Client, channel string, logger *zap.Logger) *ChangefeedService {
	return &ChangefeedService{client: client, channel: channel, logger: logger}
}

// ChangeMessage is the wire format published to subscribers.
type ChangeMessage struct {
	Collection string       `json:"collection"`
	Event      events.Event `json:"event"`
}

// RegisterHandlers subscribes to every event type the UI cares about.
func (s *ChangefeedService) RegisterHandlers(dispatcher events.Dispatcher) {
	if dispatcher == nil {
		return
	}
	dispatcher.Subscribe(events.EventTransactionRecorded, s.relay("transactions"))
	dispatcher.Subscribe(events.EventAttendanceToggled, s.relay("attendance"))
	dispatcher.Subscribe(events.EventStaffChanged, s.relay("staff"))
	dispatcher.Subscribe(events.EventCatalogChanged, s.relay("catalog"))
	dispatcher.Subscribe(events.EventStockLow, s.relay("catalog"))
}

func (s *ChangefeedService) relay(collection string) events.EventHandler {
	return func(ctx context.Context, event events.Event) error {
		payload, err := json.Marshal(ChangeMessage{Collection: collection, Event: event})
		if err != nil {
			return err
		}
		if err := s.client.Publish(ctx, s.channel, payload).Err(); err != nil {
			// A missed reload is tolerable; the UI also polls.
			s.logger.Warn("failed to publish change message",
				zap.String("collection", collection), zap.Error(err))
		}
		return nil
	}
}
