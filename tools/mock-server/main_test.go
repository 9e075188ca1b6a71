package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/donaldgifford/auction-browser/internal/api/client"
	"github.com/donaldgifford/auction-browser/pkg/logger"
	domain "github.com/donaldgifford/auction-browser/pkg/types"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	fx, err := loadFixtures(filepath.Join("testdata", "fixtures.json"))
	require.NoError(t, err)

	srv, err := newServer(fx, logger.Discard(), bcrypt.MinCost)
	require.NoError(t, err)

	ts := httptest.NewServer(srv.routes())
	t.Cleanup(ts.Close)
	return ts
}

func newTestClient(t *testing.T, ts *httptest.Server) *client.Client {
	t.Helper()
	c, err := client.New(ts.URL)
	require.NoError(t, err)
	return c
}

func doJSON(t *testing.T, method, url, token, body string) (int, map[string]any) {
	t.Helper()

	var rdr io.Reader = http.NoBody
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req, err := http.NewRequestWithContext(context.Background(), method, url, rdr)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(data) > 0 && data[0] == '{' {
		require.NoError(t, json.Unmarshal(data, &out))
	}
	return resp.StatusCode, out
}

func auctionIDs(auctions []domain.Auction) []string {
	ids := make([]string, 0, len(auctions))
	for i := range auctions {
		ids = append(ids, auctions[i].ID)
	}
	return ids
}

func TestLoadFixtures(t *testing.T) {
	t.Parallel()

	fx, err := loadFixtures(filepath.Join("testdata", "fixtures.json"))
	require.NoError(t, err)
	assert.Len(t, fx.Auctions, 5)
	assert.Len(t, fx.Items, 6)
	require.Len(t, fx.Users, 1)
	assert.Equal(t, "demo@subastas.mx", fx.Users[0].User.Email)

	for i := range fx.Items {
		assert.NoError(t, fx.Items[i].Validate(), fx.Items[i].ID)
	}
}

func TestLoadFixtures_Errors(t *testing.T) {
	t.Parallel()

	_, err := loadFixtures(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading fixture")
}

func TestListAuctions_SortedByStartDate(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, newTestServer(t))

	auctions, err := c.ListAuctions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"a-bajio-especial",
		"a-pacifico-negociada",
		"a-transportes-norte",
		"a-monterrey-flota",
		"a-hospital-cdmx",
	}, auctionIDs(auctions))
}

func TestAuctionAndItemLookups(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	c := newTestClient(t, ts)
	ctx := context.Background()

	a, err := c.GetAuction(ctx, "a-monterrey-flota")
	require.NoError(t, err)
	assert.Equal(t, domain.ReasonFleetRenewal, a.Reason)

	items, err := c.ListAuctionItems(ctx, "a-monterrey-flota")
	require.NoError(t, err)
	assert.Len(t, items, a.TotalItems)

	items, err = c.ListAuctionItems(ctx, "does-not-exist")
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)

	it, err := c.GetItem(ctx, "i-siemens-mri")
	require.NoError(t, err)
	assert.Equal(t, "a-hospital-cdmx", it.AuctionID)

	_, err = c.GetAuction(ctx, "zzz")
	require.Error(t, err)
	assert.True(t, client.IsNotFound(err))
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Auction not found", apiErr.Detail)

	_, err = c.GetItem(ctx, "zzz")
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Item not found", apiErr.Detail)
}

func TestSearchAuctions(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, newTestServer(t))

	price := func(v float64) *float64 { return &v }

	tests := []struct {
		name    string
		params  *client.SearchParams
		wantIDs []string
	}{
		{
			name:   "no filters returns fixture order",
			params: nil,
			wantIDs: []string{
				"a-monterrey-flota",
				"a-hospital-cdmx",
				"a-transportes-norte",
				"a-pacifico-negociada",
				"a-bajio-especial",
			},
		},
		{
			name:    "category matches through items",
			params:  &client.SearchParams{Category: "vehiculos"},
			wantIDs: []string{"a-monterrey-flota", "a-transportes-norte"},
		},
		{
			name:    "price bounds apply to item starting price",
			params:  &client.SearchParams{Category: "vehiculos", MinPrice: price(200000)},
			wantIDs: []string{"a-monterrey-flota"},
		},
		{
			name:    "max price",
			params:  &client.SearchParams{Category: "vehiculos", MaxPrice: price(150000)},
			wantIDs: []string{"a-transportes-norte"},
		},
		{
			name:   "price without category is ignored",
			params: &client.SearchParams{MinPrice: price(1e9)},
			wantIDs: []string{
				"a-monterrey-flota",
				"a-hospital-cdmx",
				"a-transportes-norte",
				"a-pacifico-negociada",
				"a-bajio-especial",
			},
		},
		{
			name:    "state exact match",
			params:  &client.SearchParams{State: "Colima"},
			wantIDs: []string{"a-pacifico-negociada"},
		},
		{
			name:    "status exact match",
			params:  &client.SearchParams{Status: domain.StatusEnded},
			wantIDs: []string{"a-pacifico-negociada", "a-bajio-especial"},
		},
		{
			name:    "combined filters with no match",
			params:  &client.SearchParams{Category: "equipo_medico", Status: domain.StatusActive},
			wantIDs: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := c.SearchAuctions(context.Background(), tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.wantIDs, auctionIDs(got))
		})
	}
}

func TestSearchAuctions_InvalidPrice(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	status, body := doJSON(t, http.MethodGet, ts.URL+"/api/search/auctions?min_price=abc", "", "")
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.IsType(t, []any{}, body["detail"])
}

func TestAuthFlow_EndToEnd(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, newTestServer(t))
	ctx := context.Background()

	_, err := c.GetProfile(ctx)
	require.Error(t, err)
	assert.True(t, client.IsUnauthorized(err))
	assert.Equal(t, http.StatusForbidden, client.StatusCode(err))

	_, err = c.Login(ctx, domain.LoginCredentials{Email: "demo@subastas.mx", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, client.StatusCode(err))
	assert.False(t, c.Authenticated())

	resp, err := c.Login(ctx, domain.LoginCredentials{Email: "demo@subastas.mx", Password: "demo1234"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.True(t, c.Authenticated())

	u, err := c.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u-demo", u.ID)

	mine, err := c.ListUserAuctions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a-monterrey-flota", "a-transportes-norte"}, auctionIDs(mine))

	c.Logout()
	_, err = c.GetProfile(ctx)
	assert.True(t, client.IsUnauthorized(err))
}

func TestRegister(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	c := newTestClient(t, ts)
	ctx := context.Background()

	_, err := c.Register(ctx, domain.RegisterData{
		Email:    "nuevo@subastas.mx",
		FullName: "Luis Pérez",
		Phone:    "5512345678",
		Password: "secreto",
	})
	require.NoError(t, err)

	u, err := c.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "nuevo@subastas.mx", u.Email)
	assert.True(t, u.IsActive)
	assert.NotEmpty(t, u.ID)
	assert.Empty(t, u.RegisteredAuctions)

	_, err = c.Register(ctx, domain.RegisterData{
		Email:    "demo@subastas.mx",
		FullName: "Otra",
		Phone:    "1",
		Password: "x",
	})
	require.Error(t, err)
	assert.True(t, client.IsBadRequest(err))
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Email already registered", apiErr.Detail)

	other := newTestClient(t, ts)
	_, err = other.Login(ctx, domain.LoginCredentials{Email: "nuevo@subastas.mx", Password: "secreto"})
	require.NoError(t, err)
}

func TestRegister_MissingFields(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	status, body := doJSON(t, http.MethodPost, ts.URL+"/api/auth/register", "", `{"email":"x@y.mx"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	issues, ok := body["detail"].([]any)
	require.True(t, ok)
	assert.Len(t, issues, 3)
}

func TestRequireUser(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)

	tests := []struct {
		name       string
		token      string
		wantStatus int
		wantDetail string
	}{
		{"missing header", "", http.StatusForbidden, "Not authenticated"},
		{"unknown token", "not-a-token", http.StatusUnauthorized, "Invalid authentication credentials"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			status, body := doJSON(t, http.MethodGet, ts.URL+"/api/user/auctions", tt.token, "")
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantDetail, body["detail"])
		})
	}
}

func TestOperationalEndpoints(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)

	status, body := doJSON(t, http.MethodGet, ts.URL+"/healthz", "", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])

	status, body = doJSON(t, http.MethodGet, ts.URL+"/api/unknown", "", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Not Found", body["detail"])

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), "auction_browser_mock_backend_http_requests_total")
}
