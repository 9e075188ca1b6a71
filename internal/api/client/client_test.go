package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	domain "github.com/donaldgifford/auction-browser/pkg/types"
)

func newTestClient(t *testing.T, srv *httptest.Server, opts ...Option) *Client {
	t.Helper()
	c, err := New(srv.URL, opts...)
	require.NoError(t, err)
	return c
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		origin  string
		wantURL string
		wantErr error
	}{
		{name: "plain origin", origin: "http://localhost:8001", wantURL: "http://localhost:8001/api"},
		{name: "trailing slash", origin: "https://subastas.example.com/", wantURL: "https://subastas.example.com/api"},
		{name: "surrounding space", origin: "  http://10.0.0.2:8001 ", wantURL: "http://10.0.0.2:8001/api"},
		{name: "empty", origin: "", wantErr: ErrNoBackendURL},
		{name: "blank", origin: "   ", wantErr: ErrNoBackendURL},
		{name: "no scheme", origin: "localhost:8001", wantErr: ErrInvalidBackendURL},
		{name: "relative", origin: "/api", wantErr: ErrInvalidBackendURL},
		{name: "ftp", origin: "ftp://example.com", wantErr: ErrInvalidBackendURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c, err := New(tt.origin)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, c)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantURL, c.BaseURL())
			assert.Equal(t, DefaultTimeout, c.httpClient.Timeout)
		})
	}
}

func TestWithHTTPClient(t *testing.T) {
	t.Parallel()

	custom := &http.Client{}
	c, err := New("http://example.com", WithHTTPClient(custom), WithTimeout(time.Second))
	require.NoError(t, err)
	assert.Same(t, custom, c.httpClient)
	assert.Zero(t, custom.Timeout)
}

func TestWithTimeout(t *testing.T) {
	t.Parallel()

	c, err := New("http://example.com", WithTimeout(3*time.Second))
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, c.httpClient.Timeout)
}

func TestClient_ConnectionRefused(t *testing.T) {
	t.Parallel()

	c, err := New("http://127.0.0.1:1") // nothing listening
	require.NoError(t, err)
	_, err = c.ListAuctions(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API server not running")
}

func TestClient_HTTPError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`internal failure`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	_, err := c.ListAuctions(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API error (HTTP 500)")
	assert.Equal(t, http.StatusInternalServerError, StatusCode(err))
	assert.False(t, IsNotFound(err))
	assert.False(t, IsUnauthorized(err))
}

func TestClient_Timeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	c := newTestClient(t, srv, WithTimeout(50*time.Millisecond))
	_, err := c.ListAuctions(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sending request")
	assert.Zero(t, StatusCode(err))
}

func TestClient_ContextCanceled(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := newTestClient(t, srv)
	_, err := c.ListAuctions(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestClient_DecodeError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	_, err := c.ListAuctions(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding response")
}

func TestClient_DefaultHeaders(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/auctions", func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Content-Type"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		assert.Equal(t, "subastas-test/1.0", r.Header.Get("User-Agent"))
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[]`))
	})
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_, _ = w.Write([]byte(`{"access_token":"tok","token_type":"bearer"}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newTestClient(t, srv, WithUserAgent("subastas-test/1.0"))
	auctions, err := c.ListAuctions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, auctions)

	_, err = c.Login(context.Background(), domain.LoginCredentials{Email: "a@b.com", Password: "x"})
	require.NoError(t, err)
}

func TestClient_SetAuthToken(t *testing.T) {
	t.Parallel()

	var (
		mu      sync.Mutex
		headers []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		headers = append(headers, r.Header.Get("Authorization"))
		mu.Unlock()
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	ctx := context.Background()

	c.SetAuthToken("abc")
	assert.True(t, c.Authenticated())
	_, err := c.ListAuctions(ctx)
	require.NoError(t, err)

	c.SetAuthToken("")
	assert.False(t, c.Authenticated())
	_, err = c.ListAuctions(ctx)
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"Bearer abc", ""}, headers)
}

func TestClient_IndependentSessions(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(domain.User{ID: r.Header.Get("Authorization")})
	}))
	defer srv.Close()

	a := newTestClient(t, srv)
	b := newTestClient(t, srv)
	a.SetAuthToken("token-a")

	ua, err := a.GetProfile(context.Background())
	require.NoError(t, err)
	ub, err := b.GetProfile(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer token-a", ua.ID)
	assert.Empty(t, ub.ID)
}

func TestClient_TokenSnapshotPerRequest(t *testing.T) {
	t.Parallel()

	arrived := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		arrived <- r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	c.SetAuthToken("before")

	req, _, err := c.newRequest(context.Background(), http.MethodGet, "/auctions", nil, nil)
	require.NoError(t, err)

	// Logout lands after the request was built but before it is sent.
	c.SetAuthToken("")
	resp, err := c.httpClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "Bearer before", <-arrived)

	req, _, err = c.newRequest(context.Background(), http.MethodGet, "/auctions", nil, nil)
	require.NoError(t, err)
	assert.Empty(t, req.Header.Get("Authorization"))
}

func TestClient_RateLimit(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv, WithRateLimit(1, 1))
	require.NotNil(t, c.limiter)

	_, err := c.ListAuctions(context.Background())
	require.NoError(t, err)

	// The bucket is empty now; a short deadline cannot wait a full second.
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = c.ListAuctions(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limiter")

	disabled := newTestClient(t, srv, WithRateLimit(0, 5))
	assert.Nil(t, disabled.limiter)
}

func TestClient_Tracing(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/items/missing" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"detail":"Item not found"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(domain.Auction{ID: "a1"})
	}))
	defer srv.Close()

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	c := newTestClient(t, srv, WithTracerProvider(tp))

	_, err := c.GetAuction(context.Background(), "a1")
	require.NoError(t, err)
	_, err = c.GetItem(context.Background(), "missing")
	require.Error(t, err)

	spans := sr.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "GET /auctions/{id}", spans[0].Name())
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
	assert.Equal(t, "GET /items/{id}", spans[1].Name())
	assert.Equal(t, codes.Error, spans[1].Status().Code)
}

func TestAPIError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		status         int
		body           string
		wantMsg        string
		wantDetail     string
		wantUnauth     bool
		wantNotFound   bool
		wantBadRequest bool
	}{
		{
			name:       "401 with detail",
			status:     http.StatusUnauthorized,
			body:       `{"detail":"Invalid authentication credentials"}`,
			wantMsg:    "API error (HTTP 401): Invalid authentication credentials",
			wantDetail: "Invalid authentication credentials",
			wantUnauth: true,
		},
		{
			name:       "403",
			status:     http.StatusForbidden,
			body:       `{"detail":"Not authenticated"}`,
			wantMsg:    "API error (HTTP 403): Not authenticated",
			wantDetail: "Not authenticated",
			wantUnauth: true,
		},
		{
			name:         "404",
			status:       http.StatusNotFound,
			body:         `{"detail":"Auction not found"}`,
			wantMsg:      "API error (HTTP 404): Auction not found",
			wantDetail:   "Auction not found",
			wantNotFound: true,
		},
		{
			name:           "422 list detail falls back to body",
			status:         http.StatusUnprocessableEntity,
			body:           `{"detail":[{"loc":["body","email"],"msg":"field required"}]}`,
			wantMsg:        `API error (HTTP 422): {"detail":[{"loc":["body","email"],"msg":"field required"}]}`,
			wantBadRequest: true,
		},
		{
			name:    "plain text body",
			status:  http.StatusBadGateway,
			body:    "upstream down\n",
			wantMsg: "API error (HTTP 502): upstream down",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var err error = newAPIError(http.MethodGet, "/x", tt.status, []byte(tt.body))
			wrapped := errors.Join(errors.New("loading"), err)

			assert.Equal(t, tt.wantMsg, err.Error())
			assert.Equal(t, tt.status, StatusCode(wrapped))
			assert.Equal(t, tt.wantUnauth, IsUnauthorized(wrapped))
			assert.Equal(t, tt.wantNotFound, IsNotFound(wrapped))
			assert.Equal(t, tt.wantBadRequest, IsBadRequest(wrapped))

			var apiErr *APIError
			require.ErrorAs(t, wrapped, &apiErr)
			assert.Equal(t, tt.wantDetail, apiErr.Detail)
		})
	}
}

func TestStatusCode_NonAPIError(t *testing.T) {
	t.Parallel()

	assert.Zero(t, StatusCode(errors.New("boom")))
	assert.Zero(t, StatusCode(nil))
}
