package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/AnthoniusHendriyanto/access-gate/internal/auth/domain"
	"github.com/AnthoniusHendriyanto/access-gate/internal/logging"
)

// Event is the payload published for ban and device lifecycle changes.
type Event struct {
	Type       string     `json:"type"`
	UserID     string     `json:"user_id"`
	Reason     *string    `json:"reason,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	DeviceID   string     `json:"device_id,omitempty"`
	OccurredAt time.Time  `json:"occurred_at"`
}

// Emit publishes ev keyed by its user id. Failures are logged and dropped;
// a nil publisher is a no-op.
func Emit(ctx context.Context, pub domain.EventPublisher, log logging.Logger, ev Event) {
	if pub == nil {
		return
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		log.Error(ctx, "failed to encode event", "event_type", ev.Type, "err", err)
		return
	}
	if err := pub.Publish(ctx, ev.Type, ev.UserID, payload); err != nil {
		log.Warn(ctx, "failed to publish event", "event_type", ev.Type, "user_id", ev.UserID, "err", err)
	}
}
