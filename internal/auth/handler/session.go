package handler

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/AnthoniusHendriyanto/access-gate/config"
	"github.com/AnthoniusHendriyanto/access-gate/internal/auth/domain"
	"github.com/AnthoniusHendriyanto/access-gate/internal/logging"
	"github.com/AnthoniusHendriyanto/access-gate/internal/session"
	"github.com/AnthoniusHendriyanto/access-gate/pkg/constant"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CookieSlot keeps the session slot in the user_session cookie. Values are
// base64url encoded so JSON survives cookie transport.
type CookieSlot struct {
	c      *fiber.Ctx
	ttl    time.Duration
	secure bool
}

func NewCookieSlot(c *fiber.Ctx, ttl time.Duration, secure bool) *CookieSlot {
	return &CookieSlot{c: c, ttl: ttl, secure: secure}
}

func (s *CookieSlot) Get(context.Context) (string, bool, error) {
	v := s.c.Cookies(constant.SessionSlotKey)
	if v == "" {
		return "", false, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(v)
	if err != nil {
		return "", false, fmt.Errorf("decode session cookie: %w", err)
	}
	return string(raw), true, nil
}

func (s *CookieSlot) Set(_ context.Context, value string) error {
	s.c.Cookie(&fiber.Cookie{
		Name:     constant.SessionSlotKey,
		Value:    base64.RawURLEncoding.EncodeToString([]byte(value)),
		Path:     "/",
		Expires:  time.Now().Add(s.ttl),
		Secure:   s.secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return nil
}

func (s *CookieSlot) Delete(context.Context) error {
	s.c.Cookie(&fiber.Cookie{
		Name:     constant.SessionSlotKey,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		Secure:   s.secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return nil
}

// Sessions builds the per-request session.Store over the configured slot.
type Sessions struct {
	slot   string
	redis  redis.Cmdable
	prefix string
	ttl    time.Duration
	secure bool
	codec  session.Codec
	log    logging.Logger
}

type SessionsOption func(*Sessions)

// WithRedis stores slots in Redis, one key per browser instance.
func WithRedis(client redis.Cmdable, prefix string) SessionsOption {
	return func(s *Sessions) {
		s.slot = config.SlotRedis
		s.redis = client
		s.prefix = prefix
	}
}

// WithCodec replaces the plain JSON codec.
func WithCodec(codec session.Codec) SessionsOption {
	return func(s *Sessions) { s.codec = codec }
}

func NewSessions(ttl time.Duration, secure bool, log logging.Logger, opts ...SessionsOption) *Sessions {
	s := &Sessions{
		slot:   config.SlotCookie,
		prefix: config.DefaultRedisKeyPrefix,
		ttl:    ttl,
		secure: secure,
		log:    log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store returns the request's session store, creating it on first use.
func (s *Sessions) Store(c *fiber.Ctx) *session.Store {
	if st, ok := c.Locals(localsStore).(*session.Store); ok {
		return st
	}
	st := session.NewStore(s.slotFor(c), s.codec, s.log)
	c.Locals(localsStore, st)
	return st
}

// Restore reads the signed-in identity for this request, or nil. The slot
// is read once; later calls see the store's current session.
func (s *Sessions) Restore(c *fiber.Ctx) *domain.Session {
	st := s.Store(c)
	if restored, _ := c.Locals(localsRestored).(bool); restored {
		return st.Current()
	}
	c.Locals(localsRestored, true)
	return st.Restore(c.UserContext())
}

func (s *Sessions) slotFor(c *fiber.Ctx) session.Slot {
	if s.slot == config.SlotRedis && s.redis != nil {
		return session.NewRedisSlot(s.redis, s.prefix, s.instanceID(c), s.ttl)
	}
	return NewCookieSlot(c, s.ttl, s.secure)
}

// instanceID identifies the browser; a fresh one is issued when absent.
func (s *Sessions) instanceID(c *fiber.Ctx) string {
	if id := c.Cookies(constant.InstanceCookie); id != "" {
		if _, err := uuid.Parse(id); err == nil {
			return id
		}
	}
	id := uuid.NewString()
	c.Cookie(&fiber.Cookie{
		Name:     constant.InstanceCookie,
		Value:    id,
		Path:     "/",
		Expires:  time.Now().Add(365 * 24 * time.Hour),
		Secure:   s.secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return id
}

const (
	localsStore    = "session_store"
	localsRestored = "session_restored"
)
