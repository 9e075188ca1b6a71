package view

import (
	"context"
	"log/slog"

	"github.com/donaldgifford/auction-browser/internal/api/client"
	domain "github.com/donaldgifford/auction-browser/pkg/types"
)

// ItemDetailSnapshot is a copy of the item detail screen.
type ItemDetailSnapshot struct {
	State State
	Err   error
	ID    string
	Item  *domain.AuctionItem
	// Stale is set when the last reload of the same item failed.
	Stale bool
}

// ItemDetail drives the item detail screen.
type ItemDetail struct {
	loader

	src AuctionSource

	id    string
	item  *domain.AuctionItem
	stale bool
}

// NewItemDetail returns an idle ItemDetail.
func NewItemDetail(src AuctionSource, log *slog.Logger) *ItemDetail {
	return &ItemDetail{loader: newLoader("item_detail", log), src: src}
}

// Load fetches the item. A 404 puts the screen in StateNotFound; other
// failures while reloading the same item keep it and mark it stale.
func (d *ItemDetail) Load(ctx context.Context, id string) error {
	gen := d.begin()
	item, err := d.src.GetItem(ctx, id)
	switch {
	case client.IsNotFound(err):
		d.commit(gen, outcomeNotFound, func() {
			d.id, d.item = id, nil
			d.state = StateNotFound
			d.err = err
			d.stale = false
		})
		return err
	case err != nil:
		d.log.Warn("loading item failed", "item_id", id, "error", err)
		d.commit(gen, outcomeError, func() {
			if d.id != id {
				d.id, d.item = id, nil
			}
			d.state = StateError
			d.err = err
			d.stale = d.item != nil
		})
		return err
	}
	d.commit(gen, outcomeOK, func() {
		d.id, d.item = id, item
		d.state = StateReady
		d.err = nil
		d.stale = false
	})
	return nil
}

// Snapshot returns a copy of the current screen. Item is a shallow copy.
func (d *ItemDetail) Snapshot() ItemDetailSnapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	snap := ItemDetailSnapshot{State: d.state, Err: d.err, ID: d.id, Stale: d.stale}
	if d.item != nil {
		it := *d.item
		snap.Item = &it
	}
	return snap
}
