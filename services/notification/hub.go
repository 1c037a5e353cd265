package notification

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"clinicore/models"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// eventChannelPrefix namespaces the per-user Redis pub/sub channels.
const eventChannelPrefix = "notify:user:"

// streamBuffer is the per-subscriber channel capacity. A subscriber that
// falls this far behind loses pushes; the rows stay queryable through the
// pull endpoint, so delivery remains at-least-once overall.
const streamBuffer = 16

// Hub fans notification events out to connected per-user streams. Streams
// are torn down deterministically: the cancel func returned by Subscribe
// removes the registration and closes the channel.
type Hub struct {
	mu      sync.RWMutex
	streams map[uuid.UUID]map[chan models.AppointmentNotification]struct{}
	logger  *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		streams: make(map[uuid.UUID]map[chan models.AppointmentNotification]struct{}),
		logger:  logger,
	}
}

// Subscribe registers a stream for the user and returns the receive channel
// plus a cancel func. Cancel is idempotent and closes the channel.
func (h *Hub) Subscribe(userID uuid.UUID) (<-chan models.AppointmentNotification, func()) {
	ch := make(chan models.AppointmentNotification, streamBuffer)

	h.mu.Lock()
	set, ok := h.streams[userID]
	if !ok {
		set = make(map[chan models.AppointmentNotification]struct{})
		h.streams[userID] = set
	}
	set[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			if set, ok := h.streams[userID]; ok {
				delete(set, ch)
				if len(set) == 0 {
					delete(h.streams, userID)
				}
			}
			h.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Publish delivers the event to every connected stream of the user. Sends
// never block: a full stream drops the push.
func (h *Hub) Publish(userID uuid.UUID, n models.AppointmentNotification) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.streams[userID] {
		select {
		case ch <- n:
		default:
			h.logger.Warn("notification stream full, dropping push",
				zap.String("userID", userID.String()),
				zap.String("notificationID", n.ID.String()))
		}
	}
}

// RunRedisFanIn subscribes to the per-user event channels on Redis and
// routes incoming events into local streams. It blocks until ctx is
// canceled; run it in its own goroutine per instance.
func (h *Hub) RunRedisFanIn(ctx context.Context, rdb *redis.Client) {
	sub := rdb.PSubscribe(ctx, eventChannelPrefix+"*")
	defer sub.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-sub.Channel():
			if !ok {
				return
			}
			userID, err := uuid.Parse(strings.TrimPrefix(msg.Channel, eventChannelPrefix))
			if err != nil {
				h.logger.Warn("event on malformed channel", zap.String("channel", msg.Channel))
				continue
			}
			var n models.AppointmentNotification
			if err := json.Unmarshal([]byte(msg.Payload), &n); err != nil {
				h.logger.Warn("failed to decode notification event", zap.Error(err))
				continue
			}
			h.Publish(userID, n)
		}
	}
}

// publishRedis pushes the event onto the user's Redis channel so every
// instance's hub (this one included) can fan it into connected streams.
func publishRedis(ctx context.Context, rdb *redis.Client, userID uuid.UUID, n models.AppointmentNotification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return err
	}
	return rdb.Publish(ctx, eventChannelPrefix+userID.String(), payload).Err()
}
