package service

import (
	"fmt"
	"time"

	"github.com/AnthoniusHendriyanto/access-gate/internal/auth/domain"
	"github.com/golang-jwt/jwt/v5"
)

// TokenService is a session codec that signs the session with HS256 and
// gives it an expiry. Tampered or expired values fail to decode.
type TokenService struct {
	Secret string
	Expiry time.Duration

	now func() time.Time
}

type SessionClaims struct {
	jwt.RegisteredClaims
	User domain.SessionUser `json:"user"`
}

func NewTokenService(secret string, expiryMinutes int) *TokenService {
	return &TokenService{
		Secret: secret,
		Expiry: time.Duration(expiryMinutes) * time.Minute,
		now:    time.Now,
	}
}

func (ts *TokenService) Encode(sess domain.Session) (string, error) {
	now := ts.now()
	claims := SessionClaims{
		User: sess.User,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sess.User.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.Expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(ts.Secret))
}

// Decode parses and validates a signed session.
func (ts *TokenService) Decode(raw string) (domain.Session, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(ts.Secret), nil
	}, jwt.WithTimeFunc(ts.now))
	if err != nil {
		return domain.Session{}, err
	}
	if !token.Valid {
		return domain.Session{}, fmt.Errorf("invalid token")
	}
	if claims.Subject != claims.User.ID {
		return domain.Session{}, fmt.Errorf("subject does not match session user")
	}

	return domain.Session{User: claims.User}, nil
}
