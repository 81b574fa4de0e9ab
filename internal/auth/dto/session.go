package dto

import "github.com/AnthoniusHendriyanto/access-gate/internal/auth/domain"

type SessionOutput struct {
	Session *domain.Session `json:"session"`
}
