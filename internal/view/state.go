// Package view holds the screen controllers: each one loads data through
// the API client, tracks a display State and hands out value snapshots.
// Results that arrive after a newer load started, or after Close, are
// dropped without touching state.
package view

import (
	"context"
	"log/slog"
	"sync"

	"github.com/donaldgifford/auction-browser/internal/api/client"
	"github.com/donaldgifford/auction-browser/internal/metrics"
	"github.com/donaldgifford/auction-browser/pkg/logger"
	domain "github.com/donaldgifford/auction-browser/pkg/types"
)

// State is what a screen is currently showing.
type State int

// State constants.
const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateError
	StateNotFound
	StateLoggedOut
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	case StateNotFound:
		return "not_found"
	case StateLoggedOut:
		return "logged_out"
	default:
		return "unknown"
	}
}

// AuctionSource is the read side of the auction API used by the public screens.
type AuctionSource interface {
	ListAuctions(ctx context.Context) ([]domain.Auction, error)
	GetAuction(ctx context.Context, id string) (*domain.Auction, error)
	ListAuctionItems(ctx context.Context, auctionID string) ([]domain.AuctionItem, error)
	GetItem(ctx context.Context, itemID string) (*domain.AuctionItem, error)
	SearchAuctions(ctx context.Context, params *client.SearchParams) ([]domain.Auction, error)
}

// UserSource is the session-scoped part of the API.
type UserSource interface {
	Authenticated() bool
	GetProfile(ctx context.Context) (*domain.User, error)
	ListUserAuctions(ctx context.Context) ([]domain.Auction, error)
}

var (
	_ AuctionSource = (*client.Client)(nil)
	_ UserSource    = (*client.Client)(nil)
)

// Outcome labels for the view_loads_total metric.
const (
	outcomeOK        = "ok"
	outcomeError     = "error"
	outcomeNotFound  = "not_found"
	outcomeLoggedOut = "logged_out"
)

// loader is embedded by every controller. It owns the mutex, the state and
// the generation counter that decides whether a finished load may commit.
type loader struct {
	name string
	log  *slog.Logger

	mu     sync.Mutex
	gen    uint64
	closed bool
	state  State
	err    error
}

func newLoader(name string, log *slog.Logger) loader {
	return loader{name: name, log: logger.OrDiscard(log).With("view", name)}
}

// begin marks a new load in flight and returns its generation.
func (l *loader) begin() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.gen++
	if !l.closed {
		l.state = StateLoading
	}
	return l.gen
}

// commit runs apply under the lock if gen is still the latest load and the
// controller is open. It reports whether apply ran.
func (l *loader) commit(gen uint64, outcome string, apply func()) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed || gen != l.gen {
		metrics.ViewStaleResultsDropped.WithLabelValues(l.name).Inc()
		l.log.Debug("dropping stale load result", "generation", gen, "latest", l.gen, "closed", l.closed)
		return false
	}
	apply()
	metrics.ViewLoadsTotal.WithLabelValues(l.name, outcome).Inc()
	return true
}

// Close detaches the controller. Loads still in flight finish but their
// results are discarded.
func (l *loader) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
}

// Closed reports whether Close was called.
func (l *loader) Closed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closed
}
