package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// ErrNotFound reports that no user record exists for the given id.
var ErrNotFound = errors.New("directory: user not found")

// User is a record owned by the external directory service.
// The gateway only ever reads these.
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"password"` // bcrypt hash, exposed as "password" by the directory
	Name         string `json:"name,omitempty"`
}

// Client talks to the user-directory service over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: timeout,
		},
	}
}

// LookupByEmail returns every record the directory holds for the email.
// The directory does not guarantee uniqueness; callers decide what to do
// with multiple matches.
func (c *Client) LookupByEmail(ctx context.Context, email string) ([]User, error) {
	u := fmt.Sprintf("%s/users?email=%s", c.baseURL, url.QueryEscape(email))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("directory: build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("directory: lookup by email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("directory: lookup by email: unexpected status %d", resp.StatusCode)
	}

	var users []User
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		return nil, fmt.Errorf("directory: decode response: %w", err)
	}

	return users, nil
}

// LookupByID returns the record for the given user id, or ErrNotFound.
func (c *Client) LookupByID(ctx context.Context, id string) (*User, error) {
	u := fmt.Sprintf("%s/users/%s", c.baseURL, url.PathEscape(id))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("directory: build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("directory: lookup by id: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("directory: lookup by id: unexpected status %d", resp.StatusCode)
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("directory: decode response: %w", err)
	}

	return &user, nil
}
