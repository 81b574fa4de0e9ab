package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/AnthoniusHendriyanto/access-gate/internal/auth/domain"
	"github.com/AnthoniusHendriyanto/access-gate/internal/auth/dto"
	autherror "github.com/AnthoniusHendriyanto/access-gate/internal/errors"
	"github.com/AnthoniusHendriyanto/access-gate/internal/logging"
	"github.com/AnthoniusHendriyanto/access-gate/pkg/constant"
	"github.com/google/uuid"
)

var usernamePattern = regexp.MustCompile(`^[a-z0-9_]+$`)

type UserService struct {
	repo   domain.ProfileRepository
	hasher *PasswordHasher
	log    logging.Logger
	now    func() time.Time
}

func NewUserService(repo domain.ProfileRepository, hasher *PasswordHasher, log logging.Logger) *UserService {
	if hasher == nil {
		hasher = NewPasswordHasher(0)
	}
	return &UserService{
		repo:   repo,
		hasher: hasher,
		log:    log.With("component", "user_service"),
		now:    time.Now,
	}
}

// NormalizeUsername trims and lowercases a username and validates it.
func NormalizeUsername(raw string) (string, error) {
	username := strings.ToLower(strings.TrimSpace(raw))
	if len(username) < constant.MinUsernameLength || len(username) > constant.MaxUsernameLength {
		return "", autherror.ErrInvalidUsername
	}
	if !usernamePattern.MatchString(username) {
		return "", autherror.ErrInvalidUsername
	}
	return username, nil
}

func validatePassword(password string) error {
	if password == "" {
		return autherror.ErrPasswordRequired
	}
	if len(password) < constant.MinPasswordLength {
		return autherror.ErrPasswordTooShort
	}
	if len(password) > constant.MaxPasswordBytes {
		return autherror.ErrPasswordTooLong
	}
	return nil
}

func (s *UserService) Register(ctx context.Context, input dto.RegisterInput) (*domain.Profile, error) {
	username, err := NormalizeUsername(input.Username)
	if err != nil {
		return nil, err
	}
	if err := validatePassword(input.Password); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, autherror.ErrUsernameTaken
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	now := s.now()
	profile := &domain.Profile{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// A concurrent sign-up may have taken the name since the check above;
	// Create reports that as ErrUsernameTaken.
	if err := s.repo.Create(ctx, profile); err != nil {
		return nil, err
	}

	s.log.Info(ctx, "account registered", "user_id", profile.ID)
	return profile, nil
}

func (s *UserService) Login(ctx context.Context, input dto.LoginInput) (*domain.Profile, error) {
	username, err := NormalizeUsername(input.Username)
	if err != nil {
		return nil, autherror.ErrInvalidCredentials
	}
	if input.Password == "" {
		return nil, autherror.ErrPasswordRequired
	}

	profile, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, autherror.ErrInvalidCredentials
	}

	ok, needsRehash := s.hasher.Verify(profile.PasswordHash, input.Password)
	if !ok {
		return nil, autherror.ErrInvalidCredentials
	}

	if needsRehash {
		s.upgradeHash(ctx, profile, input.Password)
	}

	return profile, nil
}

func (s *UserService) upgradeHash(ctx context.Context, profile *domain.Profile, password string) {
	hash, err := s.hasher.Hash(password)
	if err == nil {
		err = s.repo.UpdatePasswordHash(ctx, profile.ID, hash)
	}
	if err != nil {
		s.log.Warn(ctx, "password rehash failed", "user_id", profile.ID, "err", err)
		return
	}
	profile.PasswordHash = hash
	s.log.Info(ctx, "legacy password hash upgraded", "user_id", profile.ID)
}
