package main

import (
	"encoding/json"
	"fmt"
	"os"

	domain "github.com/donaldgifford/auction-browser/pkg/types"
)

// fixtureUser is a seeded account. Passwords are stored in plain text in
// the fixture file and hashed when the server starts.
type fixtureUser struct {
	Password string      `json:"password"`
	User     domain.User `json:"user"`
}

// fixtures is the on-disk seed data for the mock backend.
type fixtures struct {
	Auctions []domain.Auction     `json:"auctions"`
	Items    []domain.AuctionItem `json:"items"`
	Users    []fixtureUser        `json:"users"`
}

func loadFixtures(path string) (*fixtures, error) {
	data, err := os.ReadFile(path) //nolint:gosec // fixture path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	var fx fixtures
	if err := json.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	return &fx, nil
}
