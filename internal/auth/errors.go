package auth

import "errors"

var (
	// ErrInvalidCredentials covers both "no such user" and "wrong
	// password". The two cases must stay indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrDirectoryUnavailable reports that the user directory could not
	// be reached. Never folded into ErrInvalidCredentials.
	ErrDirectoryUnavailable = errors.New("user directory unavailable")

	// ErrLookup reports a failed identity lookup during session
	// deserialization. Callers treat the session as unauthenticated.
	ErrLookup = errors.New("identity lookup failed")
)
