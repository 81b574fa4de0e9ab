// Package session keeps the signed-in identity in memory and mirrors it
// into a single durable slot.
//
// The stored value is a bare assertion of identity: with the default
// JSONCodec nothing binds the slot content to the account, so whoever can
// write the slot can claim any user. Configure a signing Codec to harden it.
package session

import (
	"context"
	"sync"

	"github.com/AnthoniusHendriyanto/access-gate/internal/auth/domain"
	"github.com/AnthoniusHendriyanto/access-gate/internal/logging"
)

// Slot is a single read/write/delete key-value capability scoped to one
// browser instance.
type Slot interface {
	// Get returns the stored value and whether one was present.
	Get(ctx context.Context) (string, bool, error)
	Set(ctx context.Context, value string) error
	Delete(ctx context.Context) error
}

type Store struct {
	slot  Slot
	codec Codec
	log   logging.Logger

	mu      sync.RWMutex
	current *domain.Session
}

func NewStore(slot Slot, codec Codec, log logging.Logger) *Store {
	if codec == nil {
		codec = JSONCodec{}
	}
	return &Store{slot: slot, codec: codec, log: log}
}

// Restore loads the session from the slot. Absent, unreadable or malformed
// content all yield nil; the caller proceeds unauthenticated.
func (s *Store) Restore(ctx context.Context) *domain.Session {
	raw, ok, err := s.slot.Get(ctx)
	if err != nil {
		s.log.Warn(ctx, "session slot read failed", "err", err)
		return s.set(nil)
	}
	if !ok || raw == "" {
		return s.set(nil)
	}

	sess, err := s.codec.Decode(raw)
	if err != nil {
		s.log.Debug(ctx, "discarding undecodable session", "err", err)
		return s.set(nil)
	}
	if !sess.Valid() {
		return s.set(nil)
	}
	return s.set(&sess)
}

// Establish builds a session for a verified identity, keeps it in memory and
// writes it to the slot.
func (s *Store) Establish(ctx context.Context, user domain.SessionUser) (*domain.Session, error) {
	sess := domain.Session{User: user}
	raw, err := s.codec.Encode(sess)
	if err != nil {
		return nil, err
	}
	if err := s.slot.Set(ctx, raw); err != nil {
		return nil, err
	}
	return s.set(&sess), nil
}

// Clear removes the session from memory and from the slot.
func (s *Store) Clear(ctx context.Context) error {
	s.set(nil)
	return s.slot.Delete(ctx)
}

func (s *Store) Current() *domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *Store) set(sess *domain.Session) *domain.Session {
	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()
	return sess
}
