package view

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/donaldgifford/auction-browser/pkg/logger"
)

// Refresher reloads a Listing on a fixed interval and reports each
// resulting snapshot.
type Refresher struct {
	cron     *cron.Cron
	listing  *Listing
	onUpdate func(ListingSnapshot)
	timeout  time.Duration
	log      *slog.Logger
}

// NewRefresher schedules listing.Load every interval. Each run is bounded
// by interval so runs never pile up.
func NewRefresher(
	listing *Listing,
	interval time.Duration,
	onUpdate func(ListingSnapshot),
	log *slog.Logger,
) (*Refresher, error) {
	if interval < time.Second {
		return nil, errors.New("refresh interval must be at least 1s")
	}
	if onUpdate == nil {
		onUpdate = func(ListingSnapshot) {}
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	r := &Refresher{
		cron:     c,
		listing:  listing,
		onUpdate: onUpdate,
		timeout:  interval,
		log:      logger.OrDiscard(log),
	}

	if _, err := c.AddFunc("@every "+interval.String(), r.run); err != nil {
		return nil, err
	}
	return r, nil
}

// Start begins running scheduled refreshes.
func (r *Refresher) Start() {
	r.log.Info("refresher started")
	r.cron.Start()
}

// Stop halts the schedule. The returned context is done once a running
// refresh finishes.
func (r *Refresher) Stop() context.Context {
	r.log.Info("refresher stopping")
	return r.cron.Stop()
}

// Entries returns the registered cron entries for inspection.
func (r *Refresher) Entries() []cron.Entry {
	return r.cron.Entries()
}

// RunNow performs one refresh immediately and reports the snapshot.
func (r *Refresher) RunNow(ctx context.Context) ListingSnapshot {
	if err := r.listing.Load(ctx); err != nil {
		r.log.Error("scheduled refresh failed", "error", err)
	}
	snap := r.listing.Snapshot()
	r.onUpdate(snap)
	return snap
}

func (r *Refresher) run() {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	r.RunNow(ctx)
}
