package errors

import (
	"errors"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidUsername    = errors.New("username must be 3-32 characters of a-z, 0-9 or _")
	ErrPasswordRequired   = errors.New("username and password are required")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrPasswordTooLong    = errors.New("password must be at most 72 bytes")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrBanReasonRequired  = errors.New("ban reason is required")
	ErrInvalidBanDuration = errors.New("ban duration must be between 1 and 36500 days")
	ErrNotAuthenticated   = errors.New("not authenticated")
)
