package view

import (
	"context"
	"log/slog"
	"slices"

	"github.com/donaldgifford/auction-browser/internal/api/client"
	domain "github.com/donaldgifford/auction-browser/pkg/types"
)

// ProfileSnapshot is a copy of the profile screen.
type ProfileSnapshot struct {
	State State
	Err   error
	User  *domain.User
}

// Profile drives the profile screen. Being logged out is a state, not an
// error: no token, 401 and 403 all land in StateLoggedOut with Err nil.
type Profile struct {
	loader

	src  UserSource
	user *domain.User
}

// NewProfile returns an idle Profile.
func NewProfile(src UserSource, log *slog.Logger) *Profile {
	return &Profile{loader: newLoader("profile", log), src: src}
}

// Load fetches the profile. Errors that only mean "not logged in" are
// normalized and not returned.
func (p *Profile) Load(ctx context.Context) error {
	gen := p.begin()
	if !p.src.Authenticated() {
		p.commit(gen, outcomeLoggedOut, func() {
			p.user = nil
			p.state = StateLoggedOut
			p.err = nil
		})
		return nil
	}

	user, err := p.src.GetProfile(ctx)
	switch {
	case client.IsUnauthorized(err):
		p.log.Debug("profile rejected session", "status", client.StatusCode(err))
		p.commit(gen, outcomeLoggedOut, func() {
			p.user = nil
			p.state = StateLoggedOut
			p.err = nil
		})
		return nil
	case err != nil:
		p.log.Warn("loading profile failed", "error", err)
		p.commit(gen, outcomeError, func() {
			p.user = nil
			p.state = StateError
			p.err = err
		})
		return err
	}
	p.commit(gen, outcomeOK, func() {
		p.user = user
		p.state = StateReady
		p.err = nil
	})
	return nil
}

// Snapshot returns a copy of the current screen.
func (p *Profile) Snapshot() ProfileSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	snap := ProfileSnapshot{State: p.state, Err: p.err}
	if p.user != nil {
		u := *p.user
		u.RegisteredAuctions = slices.Clone(p.user.RegisteredAuctions)
		snap.User = &u
	}
	return snap
}

// MyAuctionsSnapshot is a copy of the "my auctions" screen.
type MyAuctionsSnapshot struct {
	State    State
	Err      error
	Auctions []domain.Auction
}

// MyAuctions lists the auctions the user is registered for. It applies
// the same logged-out normalization as Profile.
type MyAuctions struct {
	loader

	src      UserSource
	auctions []domain.Auction
}

// NewMyAuctions returns an idle MyAuctions.
func NewMyAuctions(src UserSource, log *slog.Logger) *MyAuctions {
	return &MyAuctions{loader: newLoader("my_auctions", log), src: src}
}

// Load fetches the user's auctions.
func (m *MyAuctions) Load(ctx context.Context) error {
	gen := m.begin()
	if !m.src.Authenticated() {
		m.commit(gen, outcomeLoggedOut, m.loggedOut)
		return nil
	}

	auctions, err := m.src.ListUserAuctions(ctx)
	switch {
	case client.IsUnauthorized(err):
		m.commit(gen, outcomeLoggedOut, m.loggedOut)
		return nil
	case err != nil:
		m.log.Warn("loading user auctions failed", "error", err)
		m.commit(gen, outcomeError, func() {
			m.auctions = nil
			m.state = StateError
			m.err = err
		})
		return err
	}
	m.commit(gen, outcomeOK, func() {
		m.auctions = auctions
		m.state = StateReady
		m.err = nil
	})
	return nil
}

func (m *MyAuctions) loggedOut() {
	m.auctions = nil
	m.state = StateLoggedOut
	m.err = nil
}

// Snapshot returns a copy of the current screen.
func (m *MyAuctions) Snapshot() MyAuctionsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return MyAuctionsSnapshot{
		State:    m.state,
		Err:      m.err,
		Auctions: slices.Clone(m.auctions),
	}
}
