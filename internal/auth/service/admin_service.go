package service

import (
	"context"
	"strings"
	"time"

	"github.com/AnthoniusHendriyanto/access-gate/internal/auth/domain"
	"github.com/AnthoniusHendriyanto/access-gate/internal/auth/dto"
	autherror "github.com/AnthoniusHendriyanto/access-gate/internal/errors"
	"github.com/AnthoniusHendriyanto/access-gate/internal/events"
	"github.com/AnthoniusHendriyanto/access-gate/internal/logging"
	"github.com/AnthoniusHendriyanto/access-gate/pkg/constant"
)

// AdminService applies and lifts bans on behalf of an administrator.
type AdminService struct {
	repo   domain.ProfileRepository
	events domain.EventPublisher
	log    logging.Logger
	now    func() time.Time
}

func NewAdminService(repo domain.ProfileRepository, pub domain.EventPublisher, log logging.Logger) *AdminService {
	return &AdminService{
		repo:   repo,
		events: pub,
		log:    log.With("component", "admin_service"),
		now:    time.Now,
	}
}

// ListUsers returns every profile, newest first.
func (s *AdminService) ListUsers(ctx context.Context) ([]domain.Profile, error) {
	return s.repo.List(ctx)
}

// IsAdmin is false for unknown accounts and on lookup errors.
func (s *AdminService) IsAdmin(ctx context.Context, id string) bool {
	profile, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.log.Warn(ctx, "admin lookup failed", "user_id", id, "err", err)
		return false
	}
	return profile != nil && profile.IsAdmin
}

// BanUser bans an account. Without a duration the ban is permanent.
func (s *AdminService) BanUser(ctx context.Context, id string, input dto.BanInput) error {
	reason := strings.TrimSpace(input.Reason)
	if reason == "" {
		return autherror.ErrBanReasonRequired
	}

	now := s.now()
	var expiresAt *time.Time
	if input.DurationDays != nil {
		days := *input.DurationDays
		if days <= 0 || days > constant.MaxBanDurationDays {
			return autherror.ErrInvalidBanDuration
		}
		t := now.AddDate(0, 0, days)
		expiresAt = &t
	}

	if err := s.repo.SetBan(ctx, id, reason, expiresAt); err != nil {
		return err
	}

	s.log.Info(ctx, "account banned", "user_id", id, "permanent", expiresAt == nil)
	events.Emit(ctx, s.events, s.log, events.Event{
		Type:       constant.EventBanApplied,
		UserID:     id,
		Reason:     &reason,
		ExpiresAt:  expiresAt,
		OccurredAt: now,
	})
	return nil
}

// UnbanUser clears the ban flag together with its reason and expiry.
func (s *AdminService) UnbanUser(ctx context.Context, id string) error {
	if err := s.repo.ClearBan(ctx, id); err != nil {
		return err
	}

	s.log.Info(ctx, "account unbanned", "user_id", id)
	events.Emit(ctx, s.events, s.log, events.Event{
		Type:       constant.EventBanLifted,
		UserID:     id,
		OccurredAt: s.now(),
	})
	return nil
}
