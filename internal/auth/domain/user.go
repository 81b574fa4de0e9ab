package domain

import "time"

// Profile is the account record: identity, admin flag, ban state and the
// device fingerprint first observed for the account.
type Profile struct {
	ID           string
	Username     string
	PasswordHash string
	IsAdmin      bool
	BanState
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BanState mirrors the ban columns of a profile. When Banned is false both
// BanReason and BanExpiresAt are nil.
type BanState struct {
	Banned       bool
	BanReason    *string
	BanExpiresAt *time.Time
	DeviceID     *string
}

// Permanent reports whether the ban has no expiry.
func (b BanState) Permanent() bool {
	return b.Banned && b.BanExpiresAt == nil
}

// Expired reports whether a timed ban has elapsed at now.
func (b BanState) Expired(now time.Time) bool {
	return b.Banned && b.BanExpiresAt != nil && now.After(*b.BanExpiresAt)
}

// Identity is the verified subset of a profile a session is built from.
func (p *Profile) Identity() SessionUser {
	return SessionUser{ID: p.ID, Username: p.Username}
}
