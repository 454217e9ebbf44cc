package strategy

import (
	"context"

	"auth-gateway/internal/directory"
)

// Strategy defines the contract every credential-verification strategy
// must implement. Implementations return identity facts only and must
// not perform session management.
type Strategy interface {
	// Name returns the strategy identifier (e.g. "local").
	Name() string

	// Authenticate verifies the supplied credentials and returns the
	// verified user record. No session decisions are made here.
	Authenticate(
		ctx context.Context,
		email string,
		password string,
	) (*directory.User, error)
}
