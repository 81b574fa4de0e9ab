package service

import (
	"testing"
	"time"

	"github.com/AnthoniusHendriyanto/access-gate/internal/auth/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenService(t *testing.T) {
	tests := []struct {
		name    string
		secret  string
		minutes int
	}{
		{name: "one week", secret: "session-secret", minutes: 10080},
		{name: "empty secret", secret: "", minutes: 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := NewTokenService(tt.secret, tt.minutes)

			assert.NotNil(t, ts)
			assert.Equal(t, tt.secret, ts.Secret)
			assert.Equal(t, time.Duration(tt.minutes)*time.Minute, ts.Expiry)
		})
	}
}

func TestTokenService_RoundTrip(t *testing.T) {
	ts := NewTokenService("test-session-secret", 60)
	sess := domain.Session{User: domain.SessionUser{ID: "user-123", Username: "alice"}}

	raw, err := ts.Encode(sess)
	require.NoError(t, err)
	assert.NotContains(t, raw, "{")

	decoded, err := ts.Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, sess, decoded)

	claims := &SessionClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(raw, claims)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, "alice", claims.User.Username)
}

func TestTokenService_Decode(t *testing.T) {
	sess := domain.Session{User: domain.SessionUser{ID: "user-123", Username: "alice"}}

	t.Run("wrong secret", func(t *testing.T) {
		raw, err := NewTokenService("secret-a", 60).Encode(sess)
		require.NoError(t, err)

		_, err = NewTokenService("secret-b", 60).Decode(raw)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		ts := NewTokenService("secret", 60)
		issued := time.Now().Add(-2 * time.Hour)
		ts.now = func() time.Time { return issued }
		raw, err := ts.Encode(sess)
		require.NoError(t, err)

		ts.now = time.Now
		_, err = ts.Decode(raw)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("plain json is rejected", func(t *testing.T) {
		_, err := NewTokenService("secret", 60).Decode(`{"user":{"id":"user-123","username":"alice"}}`)
		assert.Error(t, err)
	})

	t.Run("unexpected signing method", func(t *testing.T) {
		claims := SessionClaims{
			User:             sess.User,
			RegisteredClaims: jwt.RegisteredClaims{Subject: sess.User.ID},
		}
		raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = NewTokenService("secret", 60).Decode(raw)
		assert.Error(t, err)
	})

	t.Run("subject mismatch", func(t *testing.T) {
		claims := SessionClaims{
			User: sess.User,
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "someone-else",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
		require.NoError(t, err)

		_, err = NewTokenService("secret", 60).Decode(raw)
		assert.Error(t, err)
	})
}
