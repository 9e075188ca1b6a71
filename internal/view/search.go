package view

import (
	"context"
	"log/slog"
	"slices"

	"github.com/donaldgifford/auction-browser/internal/api/client"
	domain "github.com/donaldgifford/auction-browser/pkg/types"
)

// SearchSnapshot is a copy of the search screen.
type SearchSnapshot struct {
	State   State
	Err     error
	Params  client.SearchParams
	Results []domain.Auction
	// CountLabel is e.g. "3 resultados"; empty until a search succeeds.
	CountLabel string
}

// Search drives the search screen.
type Search struct {
	loader

	src AuctionSource

	params  client.SearchParams
	results []domain.Auction
}

// NewSearch returns an idle Search.
func NewSearch(src AuctionSource, log *slog.Logger) *Search {
	return &Search{loader: newLoader("search", log), src: src}
}

// Run executes a search and replaces the results. A nil params searches
// with no filters.
func (s *Search) Run(ctx context.Context, params *client.SearchParams) error {
	gen := s.begin()

	var p client.SearchParams
	if params != nil {
		p = *params
	}

	results, err := s.src.SearchAuctions(ctx, &p)
	if err != nil {
		s.log.Warn("search failed", "error", err)
		s.commit(gen, outcomeError, func() {
			s.params = p
			s.results = nil
			s.state = StateError
			s.err = err
		})
		return err
	}
	s.commit(gen, outcomeOK, func() {
		s.params = p
		s.results = results
		s.state = StateReady
		s.err = nil
	})
	return nil
}

// Snapshot returns a copy of the current screen.
func (s *Search) Snapshot() SearchSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := SearchSnapshot{
		State:   s.state,
		Err:     s.err,
		Params:  s.params,
		Results: slices.Clone(s.results),
	}
	if s.state == StateReady {
		snap.CountLabel = domain.ResultCountLabel(len(s.results))
	}
	return snap
}
