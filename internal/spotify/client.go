package spotify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/ayomide-o/sportify/internal/session"
	"github.com/ayomide-o/sportify/internal/shared"
	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://api.spotify.com/v1"

// Client wraps every outbound catalog call with the session validity gate.
//
// Exactly one network call per invocation, no retry, no backoff, no token
// refresh. An expired session or a 401 response tears the session down
// before the failure is surfaced.
type Client struct {
	baseURL    string
	httpClient *http.Client
	sessions   *session.Manager
	limiter    *rate.Limiter
	logger     *log.Logger
	market     string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithBaseURL overrides the catalog API base URL.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithMarket sets the market code used by market-scoped endpoints.
func WithMarket(market string) Option {
	return func(c *Client) { c.market = market }
}

// NewClient creates a catalog client bound to the given session manager.
func NewClient(sessions *session.Manager, logger *log.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: http.DefaultClient,
		sessions:   sessions,
		limiter:    rate.NewLimiter(rate.Limit(10), 10),
		logger:     logger,
		market:     "NG",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do performs one authenticated request against the catalog API.
//
// The validity gate runs before anything touches the network: an expired
// session forces logout and returns ErrSessionExpired with zero network
// calls. A token that vanished between the gate and the read returns
// ErrNoCredential. The bearer header is set after merging caller headers so
// callers cannot override it. A 401 forces logout and returns
// ErrUnauthorized; every other response is returned raw for the caller to
// interpret.
func (c *Client) Do(ctx context.Context, method, endpoint string, body io.Reader, header http.Header) (*http.Response, error) {
	if !c.sessions.Valid() {
		if err := c.sessions.Logout(); err != nil {
			c.logger.Warnf("logout on expiry failed %v", err)
		}
		return nil, shared.ErrSessionExpired
	}

	token, ok := c.sessions.ValidToken()
	if !ok {
		return nil, shared.ErrNoCredential
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := shared.GenerateID()
	c.logger.Debug("dispatching catalog request", "id", requestID, "method", method, "endpoint", endpoint)

	for key, values := range header {
		req.Header[key] = values
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("catalog request failed", "id", requestID, "error", err)
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		if err := c.sessions.Logout(); err != nil {
			c.logger.Warnf("logout on 401 failed %v", err)
		}
		return nil, shared.ErrUnauthorized
	}

	return resp, nil
}

// getJSON performs an authenticated GET and decodes a 2xx JSON body into out.
func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	resp, err := c.Do(ctx, http.MethodGet, endpoint, nil, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// sendJSON performs an authenticated request with a JSON body and discards
// any 2xx response payload the caller does not want.
func (c *Client) sendJSON(ctx context.Context, method, endpoint string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	header := http.Header{"Content-Type": []string{"application/json"}}
	resp, err := c.Do(ctx, method, endpoint, body, header)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		text, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: status %d: %s", shared.ErrAPIRequest, resp.StatusCode, string(text))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
