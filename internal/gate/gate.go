// Package gate decides whether a signed-in account may see protected views.
//
// An evaluation reads the account's profile, records its device fingerprint
// the first time one is seen, lifts timed bans that have run out, and blocks
// when the account or any banned account on the same device is suspended.
// The gate fails open: any store error yields Allowed and a log line.
package gate

import (
	"context"
	"time"

	"github.com/AnthoniusHendriyanto/access-gate/internal/auth/domain"
	"github.com/AnthoniusHendriyanto/access-gate/internal/auth/dto"
	autherror "github.com/AnthoniusHendriyanto/access-gate/internal/errors"
	"github.com/AnthoniusHendriyanto/access-gate/internal/events"
	"github.com/AnthoniusHendriyanto/access-gate/internal/fingerprint"
	"github.com/AnthoniusHendriyanto/access-gate/internal/logging"
	"github.com/AnthoniusHendriyanto/access-gate/pkg/constant"
)

// ProfileStore is the part of the profile repository the gate touches.
type ProfileStore interface {
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
	SetDeviceID(ctx context.Context, id, deviceID string) (bool, error)
	ClearBan(ctx context.Context, id string) error
	ListBannedByDevice(ctx context.Context, deviceID string) ([]domain.Profile, error)
}

type Gate struct {
	profiles ProfileStore
	events   domain.EventPublisher
	log      logging.Logger
	now      func() time.Time
}

type Option func(*Gate)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(g *Gate) { g.now = now }
}

func New(profiles ProfileStore, pub domain.EventPublisher, log logging.Logger, opts ...Option) *Gate {
	g := &Gate{
		profiles: profiles,
		events:   pub,
		log:      log.With("component", "gate"),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Evaluate runs the gate for one navigation. Calls are sequential; writes
// are idempotent, so overlapping evaluations for one account are harmless.
func (g *Gate) Evaluate(ctx context.Context, sess *domain.Session, signals fingerprint.Signals) Decision {
	if !sess.Valid() {
		return Decision{State: Allowed}
	}
	userID := sess.User.ID
	log := g.log.With("user_id", userID)

	profile, err := g.profiles.GetByID(ctx, userID)
	if err != nil {
		log.Error(ctx, "profile lookup failed, allowing", "err", err)
		return Decision{State: Allowed}
	}
	if profile == nil {
		log.Warn(ctx, "no profile for session, allowing")
		return Decision{State: Allowed}
	}

	deviceID := fingerprint.Compute(signals)
	now := g.now()
	self, effects := EvaluateSelf(profile.BanState, now)

	if effects.BackfillDevice {
		written, err := g.profiles.SetDeviceID(ctx, userID, deviceID)
		if err != nil {
			log.Warn(ctx, "device id backfill failed", "err", err)
		} else if written {
			events.Emit(ctx, g.events, log, events.Event{
				Type:       constant.EventDeviceBound,
				UserID:     userID,
				DeviceID:   deviceID,
				OccurredAt: now,
			})
		}
	}

	if effects.AutoUnban {
		// The ban has run out either way; a failed write is retried on the
		// next evaluation.
		if err := g.profiles.ClearBan(ctx, userID); err != nil {
			log.Error(ctx, "auto-unban failed", "err", err)
		} else {
			log.Info(ctx, "timed ban expired, account unbanned")
			events.Emit(ctx, g.events, log, events.Event{
				Type:       constant.EventBanExpired,
				UserID:     userID,
				Reason:     profile.BanReason,
				ExpiresAt:  profile.BanExpiresAt,
				OccurredAt: now,
			})
		}
	}

	if self != Allowed {
		log.Info(ctx, "account blocked", "state", self.String())
		return Decide(self, 0)
	}

	banned, err := g.profiles.ListBannedByDevice(ctx, deviceID)
	if err != nil {
		log.Error(ctx, "device ban lookup failed, allowing", "err", err)
		return Decision{State: Allowed}
	}

	d := Decide(self, len(banned))
	if d.Blocked() {
		log.Info(ctx, "device linked to banned account", "device_id", deviceID, "matches", len(banned))
	}
	return d
}

// Suspension re-reads the account's own ban fields for the suspended page.
func (g *Gate) Suspension(ctx context.Context, sess *domain.Session) (*dto.SuspensionOutput, error) {
	if !sess.Valid() {
		return nil, autherror.ErrNotAuthenticated
	}

	profile, err := g.profiles.GetByID(ctx, sess.User.ID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, autherror.ErrProfileNotFound
	}

	return &dto.SuspensionOutput{
		Banned:        profile.Banned,
		Reason:        profile.BanReason,
		ExpiresAt:     profile.BanExpiresAt,
		TimeRemaining: FormatRemaining(profile.BanExpiresAt, g.now()),
	}, nil
}
