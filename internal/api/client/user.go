package client

import (
	"context"

	domain "github.com/donaldgifford/auction-browser/pkg/types"
)

// GetProfile returns the profile of the logged-in user.
func (c *Client) GetProfile(ctx context.Context) (*domain.User, error) {
	var u domain.User
	if err := c.get(ctx, "/user/profile", "/user/profile", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ListUserAuctions returns the auctions the logged-in user is registered for.
func (c *Client) ListUserAuctions(ctx context.Context) ([]domain.Auction, error) {
	var auctions []domain.Auction
	if err := c.get(ctx, "/user/auctions", "/user/auctions", nil, &auctions); err != nil {
		return nil, err
	}
	return auctions, nil
}
