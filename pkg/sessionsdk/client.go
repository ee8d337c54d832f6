package sessionsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/lanternware/lantern-go/pkg/idx"
	"github.com/lanternware/lantern-go/pkg/slogx"
	"github.com/lanternware/lantern-go/pkg/tokenstore"

	"golang.org/x/time/rate"
)

// Client talks to the Lantern API. It provides the unauthenticated surface
// (login, register, password reset, email verification) and creates
// authenticated Sessions.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      tokenstore.Store
	logger     *slog.Logger

	// loginLimiter throttles interactive credential submissions client-side
	loginLimiter *rate.Limiter

	// authFailureHook is invoked after a terminal authentication failure has
	// cleared stored credentials. Navigation to a login screen belongs to the
	// caller, not to the SDK.
	authFailureHook func()
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client. The default has a 10 second
// timeout, which bounds how long a queued request can wait on a refresh.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithStore sets the durable credential store used by remembered sessions.
// The default is an in-memory store that does not survive restarts.
func WithStore(store tokenstore.Store) Option {
	return func(c *Client) { c.store = store }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithLoginLimit applies a client-side rate limit to login and MFA
// submissions. A denied attempt fails locally with a NetworkError before any
// request is sent.
func WithLoginLimit(limit rate.Limit, burst int) Option {
	return func(c *Client) { c.loginLimiter = rate.NewLimiter(limit, burst) }
}

// WithAuthFailureHook registers a callback fired after stored credentials
// have been cleared by a terminal authentication failure or an expired
// retry. Safe to leave unset.
func WithAuthFailureHook(hook func()) Option {
	return func(c *Client) { c.authFailureHook = hook }
}

// New creates a client for the Lantern API at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		store:  tokenstore.NewMemory(),
		logger: slogx.Discard(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// url builds a complete URL by appending the path to the base URL.
func (c *Client) url(path string) string {
	return c.baseURL + path
}

// reserveLogin enforces the optional client-side login rate limit.
func (c *Client) reserveLogin() error {
	if c.loginLimiter == nil || c.loginLimiter.Allow() {
		return nil
	}
	return &NetworkError{
		Op:  "login",
		Err: errors.New("client-side rate limit exceeded"),
	}
}

// roundTrip performs one HTTP request against the API. Every request gets a
// ULID X-Request-Id; token is attached as a bearer credential when present.
// The response body is fully read and returned so a request can be replayed
// from its payload after a refresh.
func (c *Client) roundTrip(
	ctx context.Context,
	method, path string,
	payload []byte,
	token string,
) (*http.Response, []byte, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-Id", idx.New().String())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, &NetworkError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, &NetworkError{Op: method + " " + path, Err: err}
	}

	return resp, respBody, nil
}

// postJSON issues an unauthenticated POST and decodes the response.
func (c *Client) postJSON(ctx context.Context, path string, in, out any, expected int) error {
	payload, err := marshalBody(in)
	if err != nil {
		return err
	}

	resp, body, err := c.roundTrip(ctx, http.MethodPost, path, payload, "")
	if err != nil {
		return err
	}

	return decodeJSON(resp, body, out, expected)
}

// marshalBody encodes a request body, returning nil bytes for a nil body.
func marshalBody(in any) ([]byte, error) {
	if in == nil {
		return nil, nil
	}

	payload, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}

	return payload, nil
}

// decodeJSON decodes a response body into target when the status matches
// expected, and returns a typed error otherwise. A nil target skips decoding.
func decodeJSON(resp *http.Response, body []byte, target any, expected int) error {
	if resp.StatusCode != expected {
		return parseErrorResponse(resp, body)
	}

	if target == nil {
		return nil
	}

	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
