package auth

import (
	"context"
	"fmt"

	"auth-gateway/internal/directory"
)

// Codec converts a verified identity to the token bound into a session
// and back. Only the user id is stored; the full record is re-fetched
// from the directory on every deserialize, so profile changes show up
// on the next request at the cost of one lookup.
type Codec struct {
	dir *directory.Client
}

func NewCodec(dir *directory.Client) *Codec {
	return &Codec{dir: dir}
}

// Serialize returns the session token for an identity. Pure; the token
// never contains the password or its hash.
func (c *Codec) Serialize(user *directory.User) string {
	return user.ID
}

// Deserialize recovers the full user record for a token. Any failure,
// not-found included, comes back wrapping ErrLookup; the caller must
// treat the session as unauthenticated rather than failing the request.
func (c *Codec) Deserialize(ctx context.Context, token string) (*directory.User, error) {
	user, err := c.dir.LookupByID(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLookup, err)
	}
	return user, nil
}
