package credentials

import (
	"context"
	"fmt"

	"auth-gateway/internal/auth"
	"auth-gateway/internal/directory"
)

// Service verifies email/password pairs against the user directory.
type Service struct {
	dir *directory.Client
}

func NewService(dir *directory.Client) *Service {
	return &Service{dir: dir}
}

// Verify checks the supplied credentials and returns the matching user
// record. It issues exactly one directory call per attempt.
func (s *Service) Verify(
	ctx context.Context,
	email string,
	password string,
) (*directory.User, error) {

	// 1. Find candidate records for the email
	users, err := s.dir.LookupByEmail(ctx, email)
	if err != nil {
		// Infrastructure failure, not an auth decision.
		return nil, fmt.Errorf("%w: %v", auth.ErrDirectoryUnavailable, err)
	}

	// The directory does not enforce email uniqueness; only the first
	// match is considered. Uniqueness is the directory's responsibility.
	if len(users) == 0 {
		// hide whether the user exists or not
		return nil, auth.ErrInvalidCredentials
	}

	user := users[0]

	// 2. Verify password
	if err := VerifyPassword(user.PasswordHash, password); err != nil {
		return nil, auth.ErrInvalidCredentials
	}

	return &user, nil
}
