package domain

import "errors"

// Sentinel errors. The central HTTP error handler maps each of these to a
// deterministic status code and client-safe message.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already in use")
	ErrUserNotFound       = errors.New("user not found")
	ErrAccountNotFound    = errors.New("account not found")
	ErrContactNotFound    = errors.New("contact not found")
	ErrDealNotFound       = errors.New("deal not found")
	ErrActivityNotFound   = errors.New("activity not found")
	// ErrInvalidReference is returned when a create/update points a foreign
	// key at a row that does not exist.
	ErrInvalidReference = errors.New("invalid reference")
	// ErrRateLimited is returned when the login throttle rejects an attempt.
	ErrRateLimited = errors.New("too many login attempts")
)
