package view

import (
	"context"
	"log/slog"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/donaldgifford/auction-browser/internal/api/client"
	domain "github.com/donaldgifford/auction-browser/pkg/types"
)

// AuctionDetailSnapshot is a copy of the auction detail screen.
type AuctionDetailSnapshot struct {
	State   State
	Err     error
	ID      string
	Auction *domain.Auction
	Items   []domain.AuctionItem
	// Stale is set when the last reload of the same auction failed and
	// Auction and Items predate it.
	Stale   bool
}

// ItemCountLabel renders the number of items actually loaded.
func (s *AuctionDetailSnapshot) ItemCountLabel() string {
	return domain.ItemCountLabel(len(s.Items))
}

// AuctionDetail drives the auction detail screen: the auction and its
// items, fetched together.
type AuctionDetail struct {
	loader

	src AuctionSource

	id      string
	auction *domain.Auction
	items   []domain.AuctionItem
	stale   bool
}

// NewAuctionDetail returns an idle AuctionDetail.
func NewAuctionDetail(src AuctionSource, log *slog.Logger) *AuctionDetail {
	return &AuctionDetail{loader: newLoader("auction_detail", log), src: src}
}

// Load fetches the auction and its items concurrently. Both must succeed;
// the first failure cancels the other request. A 404 from either puts
// the screen in StateNotFound. Any other failure while reloading the same
// auction keeps the previous data and marks it stale.
func (d *AuctionDetail) Load(ctx context.Context, id string) error {
	gen := d.begin()

	var (
		auction *domain.Auction
		items   []domain.AuctionItem
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		auction, err = d.src.GetAuction(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		items, err = d.src.ListAuctionItems(gctx, id)
		return err
	})

	if err := g.Wait(); err != nil {
		if client.IsNotFound(err) {
			d.commit(gen, outcomeNotFound, func() {
				d.id = id
				d.auction, d.items = nil, nil
				d.state = StateNotFound
				d.err = err
				d.stale = false
			})
			return err
		}
		d.log.Warn("loading auction detail failed", "auction_id", id, "error", err)
		d.commit(gen, outcomeError, func() {
			if d.id != id {
				d.id = id
				d.auction, d.items = nil, nil
			}
			d.state = StateError
			d.err = err
			d.stale = d.auction != nil
		})
		return err
	}

	d.commit(gen, outcomeOK, func() {
		d.id = id
		d.auction = auction
		d.items = items
		d.state = StateReady
		d.err = nil
		d.stale = false
	})
	return nil
}

// Snapshot returns a copy of the current screen.
func (d *AuctionDetail) Snapshot() AuctionDetailSnapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	snap := AuctionDetailSnapshot{
		State: d.state,
		Err:   d.err,
		ID:    d.id,
		Items: slices.Clone(d.items),
		Stale: d.stale,
	}
	if d.auction != nil {
		a := *d.auction
		snap.Auction = &a
	}
	return snap
}
