package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/compozy/hellopr/internal/domain"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// DefaultBaseURL is the GitHub REST API root.
const DefaultBaseURL = "https://api.github.com"

var errRateLimited = errors.New("rate limited")

// Response is a raw API response. Status classification is left to callers.
type Response struct {
	StatusCode int
	Body       string
}

// Transport issues authenticated JSON requests and waits out 429 responses.
type Transport struct {
	baseURL    string
	httpClient *http.Client
	policy     *RateLimitPolicy
	out        io.Writer
	delayUnit  time.Duration
	onDelay    func(seconds int)
	logger     *zap.Logger
}

// TransportOption configures a Transport.
type TransportOption func(*Transport)

// WithBaseURL points the transport at another API root.
func WithBaseURL(baseURL string) TransportOption {
	return func(t *Transport) {
		t.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithOutput sets where rate-limit notices are written.
func WithOutput(w io.Writer) TransportOption {
	return func(t *Transport) {
		t.out = w
	}
}

// WithDelayUnit sets the duration of one policy second.
func WithDelayUnit(unit time.Duration) TransportOption {
	return func(t *Transport) {
		t.delayUnit = unit
	}
}

// WithDelayHook registers a callback invoked with every requested delay.
func WithDelayHook(fn func(seconds int)) TransportOption {
	return func(t *Transport) {
		t.onDelay = fn
	}
}

// WithLogger sets the debug logger.
func WithLogger(logger *zap.Logger) TransportOption {
	return func(t *Transport) {
		t.logger = logger
	}
}

// WithHTTPClient sets the client whose transport is wrapped with the token
// source.
func WithHTTPClient(client *http.Client) TransportOption {
	return func(t *Transport) {
		t.httpClient = client
	}
}

// NewTransport creates a Transport authenticating with token.
func NewTransport(token string, opts ...TransportOption) *Transport {
	t := &Transport{
		baseURL:   DefaultBaseURL,
		policy:    NewRateLimitPolicy(),
		out:       os.Stdout,
		delayUnit: time.Second,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	// GitHub accepts "token <credential>"; oauth2 uses TokenType verbatim as the scheme.
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: strings.TrimSpace(token), TokenType: "token"},
	)
	ctx := context.Background()
	if t.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, t.httpClient)
	}
	t.httpClient = oauth2.NewClient(ctx, ts)
	return t
}

// Policy exposes the rate-limit policy state.
func (t *Transport) Policy() *RateLimitPolicy {
	return t.policy
}

// Get issues a GET request for path, which may include a query string.
func (t *Transport) Get(ctx context.Context, path string) (*Response, error) {
	return t.do(ctx, http.MethodGet, path, nil)
}

// Post issues a POST request with payload encoded as JSON.
func (t *Transport) Post(ctx context.Context, path string, payload any) (*Response, error) {
	return t.do(ctx, http.MethodPost, path, payload)
}

// Put issues a PUT request with payload encoded as JSON.
func (t *Transport) Put(ctx context.Context, path string, payload any) (*Response, error) {
	return t.do(ctx, http.MethodPut, path, payload)
}

func (t *Transport) do(ctx context.Context, method, path string, payload any) (*Response, error) {
	var body []byte
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s %s body: %w", method, path, err)
		}
		body = encoded
	}
	var (
		resp    *Response
		attempt int
	)
	backoff := retry.BackoffFunc(func() (time.Duration, bool) {
		seconds := t.policy.NextDelay(resp.Body)
		if t.onDelay != nil {
			t.onDelay(seconds)
		}
		fmt.Fprintf(t.out, "Rate limited for %d seconds.\n", seconds)
		return time.Duration(seconds) * t.delayUnit, false
	})
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if attempt > 0 {
			fmt.Fprintln(t.out, "Retrying.")
		}
		attempt++
		r, err := t.send(ctx, method, path, body)
		if err != nil {
			return err
		}
		t.logger.Debug("github api response",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", r.StatusCode),
			zap.Int("attempt", attempt),
		)
		resp = r
		if r.StatusCode == http.StatusTooManyRequests {
			return retry.RetryableError(errRateLimited)
		}
		t.policy.Reset()
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrTransport) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s %s interrupted: %w", domain.ErrTransport, method, path, err)
	}
	return resp, nil
}

func (t *Transport) send(ctx context.Context, method, path string, body []byte) (*Response, error) {
	var reader io.Reader = http.NoBody
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, t.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to build %s %s: %w", domain.ErrTransport, method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	res, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", domain.ErrTransport, method, path, err)
	}
	defer func() { //nolint:errcheck // response body close errors are non-actionable after reading
		_ = res.Body.Close()
	}()
	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s %s response: %w", domain.ErrTransport, method, path, err)
	}
	return &Response{StatusCode: res.StatusCode, Body: string(data)}, nil
}
