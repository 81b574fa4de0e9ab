package service

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher hashes new passwords with bcrypt and still accepts hashes
// written by the previous scheme: unsalted SHA-256, lowercase hex.
type PasswordHasher struct {
	cost int
}

func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

func (h *PasswordHasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether password matches hash and whether the stored hash
// should be replaced with a bcrypt one.
func (h *PasswordHasher) Verify(hash, password string) (ok bool, needsRehash bool) {
	if isLegacyHash(hash) {
		sum := LegacyHash(password)
		return subtle.ConstantTimeCompare([]byte(sum), []byte(hash)) == 1, true
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil, false
}

// LegacyHash is the old digest format. Equal passwords give equal digests.
func LegacyHash(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

func isLegacyHash(hash string) bool {
	if len(hash) != sha256.Size*2 || strings.HasPrefix(hash, "$2") {
		return false
	}
	_, err := hex.DecodeString(hash)
	return err == nil && strings.ToLower(hash) == hash
}
