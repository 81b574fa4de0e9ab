package domain

//go:generate mockgen -destination=../../mocks/mock_profile_repository.go -package=mocks github.com/AnthoniusHendriyanto/access-gate/internal/auth/domain ProfileRepository,EventPublisher

import (
	"context"
	"time"
)

type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (*Profile, error)
	GetByUsername(ctx context.Context, username string) (*Profile, error)
	Create(ctx context.Context, profile *Profile) error
	UpdatePasswordHash(ctx context.Context, id, hash string) error
	SetDeviceID(ctx context.Context, id, deviceID string) (bool, error)
	SetBan(ctx context.Context, id, reason string, expiresAt *time.Time) error
	ClearBan(ctx context.Context, id string) error
	ListBannedByDevice(ctx context.Context, deviceID string) ([]Profile, error)
	List(ctx context.Context) ([]Profile, error)
}

// EventPublisher emits ban lifecycle events keyed by account id. Delivery is
// best-effort.
type EventPublisher interface {
	Publish(ctx context.Context, eventType, key string, payload []byte) error
}
