package local

import (
	"context"

	"auth-gateway/internal/auth/credentials"
	"auth-gateway/internal/directory"
)

const strategyName = "local"

// Strategy authenticates with an email/password pair checked against
// the user directory.
type Strategy struct {
	service *credentials.Service
}

func New(service *credentials.Service) *Strategy {
	return &Strategy{service: service}
}

func (s *Strategy) Name() string {
	return strategyName
}

func (s *Strategy) Authenticate(
	ctx context.Context,
	email string,
	password string,
) (*directory.User, error) {
	return s.service.Verify(ctx, email, password)
}
