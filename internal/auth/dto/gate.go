package dto

import "time"

type GateOutput struct {
	Decision string `json:"decision"`
	State    string `json:"state"`
	Redirect string `json:"redirect,omitempty"`
}

// SuspensionOutput feeds the suspended-account page.
type SuspensionOutput struct {
	Banned        bool       `json:"banned"`
	Reason        *string    `json:"reason"`
	ExpiresAt     *time.Time `json:"expires_at"`
	TimeRemaining string     `json:"time_remaining"`
}
