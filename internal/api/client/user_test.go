package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/donaldgifford/auction-browser/pkg/types"
)

// bearerServer answers user endpoints only when the expected token is presented.
func bearerServer(t *testing.T, token string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+token {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"Invalid authentication credentials"}`))
			return
		}
		switch r.URL.Path {
		case "/api/user/profile":
			_ = json.NewEncoder(w).Encode(domain.User{
				ID:                 "u1",
				Email:              "a@b.com",
				FullName:           "Ana",
				IsActive:           true,
				RegisteredAuctions: []string{"a1"},
			})
		case "/api/user/auctions":
			_ = json.NewEncoder(w).Encode([]domain.Auction{{ID: "a1"}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestClient_GetProfile(t *testing.T) {
	t.Parallel()

	srv := bearerServer(t, "tok")
	defer srv.Close()

	c := newTestClient(t, srv)
	_, err := c.GetProfile(context.Background())
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))

	c.SetAuthToken("tok")
	u, err := c.GetProfile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
	assert.True(t, u.IsActive)
	assert.True(t, u.IsRegistered("a1"))
}

func TestClient_ListUserAuctions(t *testing.T) {
	t.Parallel()

	srv := bearerServer(t, "tok")
	defer srv.Close()

	c := newTestClient(t, srv)
	c.SetAuthToken("tok")
	auctions, err := c.ListUserAuctions(context.Background())
	require.NoError(t, err)
	require.Len(t, auctions, 1)
	assert.Equal(t, "a1", auctions[0].ID)

	c.Logout()
	_, err = c.ListUserAuctions(context.Background())
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
}
