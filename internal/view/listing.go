package view

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"time"

	"github.com/donaldgifford/auction-browser/pkg/filter"
	domain "github.com/donaldgifford/auction-browser/pkg/types"
)

// ListingSnapshot is a copy of the home screen.
type ListingSnapshot struct {
	State State
	Err   error
	Tag   filter.Tag
	// Auctions is the list visible under Tag.
	Auctions []domain.Auction
	// Counts holds the badge count per tab.
	Counts map[filter.Tag]int
	// Stale is set when the last refresh failed and Auctions predates it.
	Stale    bool
	LoadedAt time.Time
}

// Listing drives the home screen: the full auction list filtered by tab.
type Listing struct {
	loader

	src    AuctionSource
	filter *filter.Filter
	now    func() time.Time

	tag      filter.Tag
	all      []domain.Auction
	visible  []domain.Auction
	counts   map[filter.Tag]int
	stale    bool
	loadedAt time.Time
}

// NewListing returns an idle Listing showing TagAll.
func NewListing(src AuctionSource, log *slog.Logger) *Listing {
	l := &Listing{
		loader: newLoader("listing", log),
		src:    src,
		now:    time.Now,
		tag:    filter.TagAll,
	}
	l.filter = filter.New(l.log)
	return l
}

// Load fetches every auction and replaces the list. On failure the
// previous list stays visible, marked stale. The fetch error is returned
// even when the result was discarded.
func (l *Listing) Load(ctx context.Context) error {
	gen := l.begin()
	auctions, err := l.src.ListAuctions(ctx)
	if err != nil {
		l.log.Warn("loading auctions failed", "error", err)
		l.commit(gen, outcomeError, func() {
			l.state = StateError
			l.err = err
			l.stale = l.all != nil
		})
		return err
	}
	l.commit(gen, outcomeOK, func() {
		// Count logs fuzzy reason matches once per load; tab switches
		// re-filter quietly.
		l.all = auctions
		l.counts = l.filter.Count(auctions)
		l.visible = filter.Apply(auctions, l.tag)
		l.state = StateReady
		l.err = nil
		l.stale = false
		l.loadedAt = l.now()
	})
	return nil
}

// SetTag switches the visible tab and returns the new snapshot. No
// network call is made.
func (l *Listing) SetTag(tag filter.Tag) ListingSnapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tag = tag
	l.visible = filter.Apply(l.all, tag)
	return l.snapshotLocked()
}

// Snapshot returns a copy of the current screen.
func (l *Listing) Snapshot() ListingSnapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshotLocked()
}

func (l *Listing) snapshotLocked() ListingSnapshot {
	return ListingSnapshot{
		State:    l.state,
		Err:      l.err,
		Tag:      l.tag,
		Auctions: slices.Clone(l.visible),
		Counts:   maps.Clone(l.counts),
		Stale:    l.stale,
		LoadedAt: l.loadedAt,
	}
}
