package auth

import "errors"

// Client-facing failures collapse into these classes so responses never
// reveal which step failed. Only the operational errors map to 5xx.
var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrAccountInactive     = errors.New("account is inactive")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrRateLimited         = errors.New("too many attempts")
	ErrServerMisconfigured = errors.New("server misconfigured")
	ErrStoreUnavailable    = errors.New("store unavailable")
)
