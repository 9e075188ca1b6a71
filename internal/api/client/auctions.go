package client

import (
	"context"
	"net/url"
	"strconv"

	domain "github.com/donaldgifford/auction-browser/pkg/types"
)

// SearchParams defines the optional query parameters for auction search.
// Unset fields are not sent, leaving their default to the backend.
type SearchParams struct {
	Category string
	State    string
	Status   domain.AuctionStatus
	// MinPrice and MaxPrice are passed through untouched; which amount
	// they bound is decided by the backend.
	MinPrice *float64
	MaxPrice *float64
}

// Values encodes the set fields as query parameters.
func (p *SearchParams) Values() url.Values {
	q := url.Values{}
	if p == nil {
		return q
	}
	if p.Category != "" {
		q.Set("category", p.Category)
	}
	if p.State != "" {
		q.Set("state", p.State)
	}
	if p.Status != "" {
		q.Set("status", string(p.Status))
	}
	if p.MinPrice != nil {
		q.Set("min_price", strconv.FormatFloat(*p.MinPrice, 'f', -1, 64))
	}
	if p.MaxPrice != nil {
		q.Set("max_price", strconv.FormatFloat(*p.MaxPrice, 'f', -1, 64))
	}
	return q
}

// ListAuctions returns all auctions in backend order.
func (c *Client) ListAuctions(ctx context.Context) ([]domain.Auction, error) {
	var auctions []domain.Auction
	if err := c.get(ctx, "/auctions", "/auctions", nil, &auctions); err != nil {
		return nil, err
	}
	return auctions, nil
}

// GetAuction returns a single auction by ID.
func (c *Client) GetAuction(ctx context.Context, id string) (*domain.Auction, error) {
	seg, err := pathID(id)
	if err != nil {
		return nil, err
	}
	var a domain.Auction
	if err := c.get(ctx, "/auctions/{id}", "/auctions/"+seg, nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// ListAuctionItems returns the items of one auction.
func (c *Client) ListAuctionItems(ctx context.Context, auctionID string) ([]domain.AuctionItem, error) {
	seg, err := pathID(auctionID)
	if err != nil {
		return nil, err
	}
	var items []domain.AuctionItem
	if err := c.get(ctx, "/auctions/{id}/items", "/auctions/"+seg+"/items", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetItem returns a single auction item by ID.
func (c *Client) GetItem(ctx context.Context, itemID string) (*domain.AuctionItem, error) {
	seg, err := pathID(itemID)
	if err != nil {
		return nil, err
	}
	var it domain.AuctionItem
	if err := c.get(ctx, "/items/{id}", "/items/"+seg, nil, &it); err != nil {
		return nil, err
	}
	return &it, nil
}

// SearchAuctions returns auctions matching params. A nil params sends no filters.
func (c *Client) SearchAuctions(
	ctx context.Context,
	params *SearchParams,
) ([]domain.Auction, error) {
	var auctions []domain.Auction
	if err := c.get(ctx, "/search/auctions", "/search/auctions", params.Values(), &auctions); err != nil {
		return nil, err
	}
	return auctions, nil
}
