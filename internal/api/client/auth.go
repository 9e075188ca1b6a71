package client

import (
	"context"
	"errors"

	"github.com/donaldgifford/auction-browser/internal/metrics"
	domain "github.com/donaldgifford/auction-browser/pkg/types"
)

// ErrMissingToken is returned when a successful auth response carries no access token.
var ErrMissingToken = errors.New("auth response has no access_token")

// Login authenticates and, on success, activates the returned token on c.
func (c *Client) Login(
	ctx context.Context,
	creds domain.LoginCredentials,
) (*domain.AuthResponse, error) {
	return c.authenticate(ctx, "/auth/login", creds, "login")
}

// Register creates an account and, on success, activates the returned token on c.
func (c *Client) Register(
	ctx context.Context,
	data domain.RegisterData,
) (*domain.AuthResponse, error) {
	return c.authenticate(ctx, "/auth/register", data, "register")
}

// Logout clears the bearer token. The backend is not contacted.
func (c *Client) Logout() {
	c.SetAuthToken("")
	metrics.SessionChangesTotal.WithLabelValues("logout").Inc()
}

func (c *Client) authenticate(
	ctx context.Context,
	path string,
	body any,
	action string,
) (*domain.AuthResponse, error) {
	var resp domain.AuthResponse
	if err := c.post(ctx, path, path, body, &resp); err != nil {
		return nil, err
	}
	if resp.AccessToken == "" {
		return nil, ErrMissingToken
	}
	c.SetAuthToken(resp.AccessToken)
	metrics.SessionChangesTotal.WithLabelValues(action).Inc()
	return &resp, nil
}
