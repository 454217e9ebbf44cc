package session

import (
	"github.com/google/uuid"
)

// NewID generates a session identifier. UUIDv4 drawn from crypto/rand;
// two concurrent logins can never be issued the same id.
func NewID() string {
	return uuid.NewString()
}
