package dto

import (
	"time"

	"github.com/AnthoniusHendriyanto/access-gate/internal/auth/domain"
)

type UserOutput struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	IsAdmin      bool       `json:"is_admin"`
	Banned       bool       `json:"banned"`
	BanReason    *string    `json:"ban_reason"`
	BanExpiresAt *time.Time `json:"ban_expires_at"`
	CreatedAt    time.Time  `json:"created_at"`
}

func NewUserOutput(p domain.Profile) UserOutput {
	return UserOutput{
		ID:           p.ID,
		Username:     p.Username,
		IsAdmin:      p.IsAdmin,
		Banned:       p.Banned,
		BanReason:    p.BanReason,
		BanExpiresAt: p.BanExpiresAt,
		CreatedAt:    p.CreatedAt,
	}
}

// BanInput bans an account. A nil or absent DurationDays means permanent.
type BanInput struct {
	Reason       string `json:"reason"`
	DurationDays *int   `json:"duration_days"`
}
