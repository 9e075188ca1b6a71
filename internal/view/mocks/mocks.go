// Package mocks provides testify mocks for the view package's API interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/donaldgifford/auction-browser/internal/api/client"
	domain "github.com/donaldgifford/auction-browser/pkg/types"
)

// MockAuctionSource is a mock of view.AuctionSource.
type MockAuctionSource struct {
	mock.Mock
}

// NewMockAuctionSource creates a mock and asserts its expectations on cleanup.
func NewMockAuctionSource(t interface {
	mock.TestingT
	Cleanup(func())
},
) *MockAuctionSource {
	m := &MockAuctionSource{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// ListAuctions mocks the method.
func (m *MockAuctionSource) ListAuctions(ctx context.Context) ([]domain.Auction, error) {
	args := m.Called(ctx)
	auctions, _ := args.Get(0).([]domain.Auction)
	return auctions, args.Error(1)
}

// GetAuction mocks the method.
func (m *MockAuctionSource) GetAuction(ctx context.Context, id string) (*domain.Auction, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*domain.Auction)
	return a, args.Error(1)
}

// ListAuctionItems mocks the method.
func (m *MockAuctionSource) ListAuctionItems(ctx context.Context, auctionID string) ([]domain.AuctionItem, error) {
	args := m.Called(ctx, auctionID)
	items, _ := args.Get(0).([]domain.AuctionItem)
	return items, args.Error(1)
}

// GetItem mocks the method.
func (m *MockAuctionSource) GetItem(ctx context.Context, itemID string) (*domain.AuctionItem, error) {
	args := m.Called(ctx, itemID)
	it, _ := args.Get(0).(*domain.AuctionItem)
	return it, args.Error(1)
}

// SearchAuctions mocks the method.
func (m *MockAuctionSource) SearchAuctions(
	ctx context.Context,
	params *client.SearchParams,
) ([]domain.Auction, error) {
	args := m.Called(ctx, params)
	auctions, _ := args.Get(0).([]domain.Auction)
	return auctions, args.Error(1)
}

// MockUserSource is a mock of view.UserSource.
type MockUserSource struct {
	mock.Mock
}

// NewMockUserSource creates a mock and asserts its expectations on cleanup.
func NewMockUserSource(t interface {
	mock.TestingT
	Cleanup(func())
},
) *MockUserSource {
	m := &MockUserSource{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Authenticated mocks the method.
func (m *MockUserSource) Authenticated() bool {
	return m.Called().Bool(0)
}

// GetProfile mocks the method.
func (m *MockUserSource) GetProfile(ctx context.Context) (*domain.User, error) {
	args := m.Called(ctx)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

// ListUserAuctions mocks the method.
func (m *MockUserSource) ListUserAuctions(ctx context.Context) ([]domain.Auction, error) {
	args := m.Called(ctx)
	auctions, _ := args.Get(0).([]domain.Auction)
	return auctions, args.Error(1)
}
