package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/AnthoniusHendriyanto/access-gate/internal/auth/domain"
	"github.com/AnthoniusHendriyanto/access-gate/internal/auth/dto"
	"github.com/AnthoniusHendriyanto/access-gate/internal/auth/service"
	autherror "github.com/AnthoniusHendriyanto/access-gate/internal/errors"
	"github.com/AnthoniusHendriyanto/access-gate/internal/events"
	"github.com/AnthoniusHendriyanto/access-gate/internal/logging"
	"github.com/AnthoniusHendriyanto/access-gate/internal/mocks"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdminService(t *testing.T) (*service.AdminService, *mocks.MockProfileRepository, *mocks.MockEventPublisher) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockRepo := mocks.NewMockProfileRepository(ctrl)
	mockPub := mocks.NewMockEventPublisher(ctrl)
	return service.NewAdminService(mockRepo, mockPub, logging.NewNop()), mockRepo, mockPub
}

func intPtr(n int) *int { return &n }

func TestAdminService_BanUser_Timed(t *testing.T) {
	s, mockRepo, mockPub := newAdminService(t)
	before := time.Now()

	mockRepo.EXPECT().SetBan(gomock.Any(), "user-1", "spam", gomock.Any()).DoAndReturn(
		func(_ context.Context, _, _ string, expiresAt *time.Time) error {
			require.NotNil(t, expiresAt)
			assert.WithinDuration(t, before.Add(3*24*time.Hour), *expiresAt, time.Minute)
			return nil
		})
	mockPub.EXPECT().Publish(gomock.Any(), "ban.applied", "user-1", gomock.Any()).DoAndReturn(
		func(_ context.Context, _, _ string, payload []byte) error {
			var ev events.Event
			require.NoError(t, json.Unmarshal(payload, &ev))
			assert.Equal(t, "spam", *ev.Reason)
			assert.NotNil(t, ev.ExpiresAt)
			return nil
		})

	err := s.BanUser(context.Background(), "user-1", dto.BanInput{Reason: " spam ", DurationDays: intPtr(3)})
	assert.NoError(t, err)
}

func TestAdminService_BanUser_LongestTimedBan(t *testing.T) {
	s, mockRepo, mockPub := newAdminService(t)
	before := time.Now()

	mockRepo.EXPECT().SetBan(gomock.Any(), "user-1", "spam", gomock.Any()).DoAndReturn(
		func(_ context.Context, _, _ string, expiresAt *time.Time) error {
			require.NotNil(t, expiresAt)
			assert.True(t, expiresAt.After(before.AddDate(99, 0, 0)))
			assert.WithinDuration(t, before.AddDate(0, 0, 36500), *expiresAt, time.Minute)
			return nil
		})
	mockPub.EXPECT().Publish(gomock.Any(), "ban.applied", "user-1", gomock.Any()).Return(nil)

	err := s.BanUser(context.Background(), "user-1", dto.BanInput{Reason: "spam", DurationDays: intPtr(36500)})
	assert.NoError(t, err)
}

func TestAdminService_BanUser_Permanent(t *testing.T) {
	s, mockRepo, mockPub := newAdminService(t)

	mockRepo.EXPECT().SetBan(gomock.Any(), "user-1", "abuse", (*time.Time)(nil)).Return(nil)
	mockPub.EXPECT().Publish(gomock.Any(), "ban.applied", "user-1", gomock.Any()).Return(nil)

	assert.NoError(t, s.BanUser(context.Background(), "user-1", dto.BanInput{Reason: "abuse"}))
}

func TestAdminService_BanUser_Validation(t *testing.T) {
	tests := []struct {
		name     string
		input    dto.BanInput
		expected error
	}{
		{"missing reason", dto.BanInput{Reason: "  "}, autherror.ErrBanReasonRequired},
		{"zero days", dto.BanInput{Reason: "spam", DurationDays: intPtr(0)}, autherror.ErrInvalidBanDuration},
		{"negative days", dto.BanInput{Reason: "spam", DurationDays: intPtr(-2)}, autherror.ErrInvalidBanDuration},
		{"beyond a century", dto.BanInput{Reason: "spam", DurationDays: intPtr(200000)}, autherror.ErrInvalidBanDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, _ := newAdminService(t)
			assert.ErrorIs(t, s.BanUser(context.Background(), "user-1", tt.input), tt.expected)
		})
	}
}

func TestAdminService_BanUser_NotFound(t *testing.T) {
	s, mockRepo, _ := newAdminService(t)
	mockRepo.EXPECT().SetBan(gomock.Any(), "ghost", "spam", gomock.Any()).Return(autherror.ErrProfileNotFound)

	err := s.BanUser(context.Background(), "ghost", dto.BanInput{Reason: "spam"})
	assert.ErrorIs(t, err, autherror.ErrProfileNotFound)
}

func TestAdminService_UnbanUser(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		s, mockRepo, mockPub := newAdminService(t)
		mockRepo.EXPECT().ClearBan(gomock.Any(), "user-1").Return(nil)
		mockPub.EXPECT().Publish(gomock.Any(), "ban.lifted", "user-1", gomock.Any()).Return(nil)

		assert.NoError(t, s.UnbanUser(context.Background(), "user-1"))
	})

	t.Run("publish failure is not an error", func(t *testing.T) {
		s, mockRepo, mockPub := newAdminService(t)
		mockRepo.EXPECT().ClearBan(gomock.Any(), "user-1").Return(nil)
		mockPub.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

		assert.NoError(t, s.UnbanUser(context.Background(), "user-1"))
	})

	t.Run("repository error", func(t *testing.T) {
		s, mockRepo, _ := newAdminService(t)
		mockRepo.EXPECT().ClearBan(gomock.Any(), "user-1").Return(errors.New("db down"))

		assert.Error(t, s.UnbanUser(context.Background(), "user-1"))
	})
}

func TestAdminService_IsAdmin(t *testing.T) {
	s, mockRepo, _ := newAdminService(t)

	mockRepo.EXPECT().GetByID(gomock.Any(), "admin").Return(&domain.Profile{ID: "admin", IsAdmin: true}, nil)
	mockRepo.EXPECT().GetByID(gomock.Any(), "user").Return(&domain.Profile{ID: "user"}, nil)
	mockRepo.EXPECT().GetByID(gomock.Any(), "ghost").Return(nil, nil)
	mockRepo.EXPECT().GetByID(gomock.Any(), "broken").Return(nil, errors.New("db down"))

	ctx := context.Background()
	assert.True(t, s.IsAdmin(ctx, "admin"))
	assert.False(t, s.IsAdmin(ctx, "user"))
	assert.False(t, s.IsAdmin(ctx, "ghost"))
	assert.False(t, s.IsAdmin(ctx, "broken"))
}

func TestAdminService_ListUsers(t *testing.T) {
	s, mockRepo, _ := newAdminService(t)
	profiles := []domain.Profile{{ID: "b"}, {ID: "a"}}
	mockRepo.EXPECT().List(gomock.Any()).Return(profiles, nil)

	got, err := s.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, profiles, got)
}
