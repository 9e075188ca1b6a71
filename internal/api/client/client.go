// Package client provides a thin HTTP client for the auction backend REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/donaldgifford/auction-browser/internal/metrics"
	"github.com/donaldgifford/auction-browser/pkg/logger"
)

const (
	// DefaultTimeout bounds every request issued by the default HTTP client.
	DefaultTimeout = 10 * time.Second

	apiPath         = "/api"
	requestIDHeader = "X-Request-ID"
	tracerName      = "github.com/donaldgifford/auction-browser/internal/api/client"
)

var (
	// ErrNoBackendURL is returned by New when no backend origin is configured.
	ErrNoBackendURL = errors.New("backend URL is not configured")
	// ErrInvalidBackendURL is returned by New when the origin is not an absolute http(s) URL.
	ErrInvalidBackendURL = errors.New("invalid backend URL")
	// ErrEmptyID is returned before any network call when a path id is empty.
	ErrEmptyID = errors.New("id must not be empty")
)

// Client talks to the auction backend. The bearer token is held per
// Client, so independent clients carry independent sessions.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	limiter    *rate.Limiter
	log        *slog.Logger
	tracer     trace.Tracer
	userAgent  string

	mu    sync.RWMutex
	token string
}

// New creates a client for the backend at origin. The API base URL is
// origin + "/api".
func New(origin string, opts ...Option) (*Client, error) {
	origin = strings.TrimSpace(origin)
	if origin == "" {
		return nil, ErrNoBackendURL
	}
	u, err := url.Parse(origin)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBackendURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q must be an absolute http(s) URL", ErrInvalidBackendURL, origin)
	}

	c := &Client{
		baseURL: strings.TrimRight(origin, "/") + apiPath,
		timeout: DefaultTimeout,
		log:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
	}
	if c.tracer == nil {
		c.tracer = otel.GetTracerProvider().Tracer(tracerName)
	}
	return c, nil
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client. Its own Timeout applies;
// WithTimeout is ignored.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout overrides DefaultTimeout for the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithRateLimit caps outgoing requests with a token bucket. A
// non-positive perSecond disables limiting.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// WithLogger sets the logger used for per-request debug records.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.log = logger.OrDiscard(l)
	}
}

// WithTracerProvider sets the OpenTelemetry provider used for request spans.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Client) {
		if tp != nil {
			c.tracer = tp.Tracer(tracerName)
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// BaseURL returns the API base URL including the /api suffix.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetAuthToken sets the bearer token attached to subsequent requests.
// An empty token clears it.
func (c *Client) SetAuthToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// AuthToken returns the current bearer token, or "" when logged out.
func (c *Client) AuthToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Authenticated reports whether a bearer token is set.
func (c *Client) Authenticated() bool {
	return c.AuthToken() != ""
}

// get performs a GET request and decodes the JSON response into dst.
func (c *Client) get(ctx context.Context, endpoint, path string, query url.Values, dst any) error {
	return c.do(ctx, http.MethodGet, endpoint, path, query, nil, dst)
}

// post performs a POST request with a JSON body and decodes the response into dst.
func (c *Client) post(ctx context.Context, endpoint, path string, body, dst any) error {
	return c.do(ctx, http.MethodPost, endpoint, path, nil, body, dst)
}

func (c *Client) do(
	ctx context.Context,
	method, endpoint, path string,
	query url.Values,
	body, dst any,
) (err error) {
	ctx, span := c.tracer.Start(ctx, method+" "+endpoint,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.template", endpoint),
		),
	)
	status := "error"
	start := time.Now()
	defer func() {
		metrics.ClientRequestDuration.WithLabelValues(method, endpoint, status).
			Observe(time.Since(start).Seconds())
		metrics.ClientRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("waiting for rate limiter: %w", err)
		}
	}

	req, reqID, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isConnectionRefused(err) {
			return fmt.Errorf("API server not running at %s: %w", c.baseURL, err)
		}
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	status = strconv.Itoa(resp.StatusCode)
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	c.log.DebugContext(ctx, "api request",
		"method", method,
		"endpoint", endpoint,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
		"request_id", reqID,
	)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(method, path, resp.StatusCode, respBody)
	}

	if dst != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, dst); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}

// newRequest builds the outgoing request. The bearer token is read here,
// once, so a request built before a logout never picks up a later token
// and a request built after it never carries the old one.
func (c *Client) newRequest(
	ctx context.Context,
	method, path string,
	query url.Values,
	body any,
) (*http.Request, string, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, "", fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return nil, "", fmt.Errorf("creating request: %w", err)
	}

	reqID := uuid.NewString()
	if bodyReader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, reqID)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if token := c.AuthToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req, reqID, nil
}

// pathID escapes a single path segment and rejects empty ids.
func pathID(id string) (string, error) {
	if strings.TrimSpace(id) == "" {
		return "", ErrEmptyID
	}
	return url.PathEscape(id), nil
}

func isConnectionRefused(err error) bool {
	return errors.Is(err, syscall.ECONNREFUSED) ||
		strings.Contains(err.Error(), "connection refused")
}
