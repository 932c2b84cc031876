// Package spotify implements the audio feature ports against the Spotify Web API.
package spotify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"

	"github.com/ewilliams-labs/lineup/internal/core/domain"
	"github.com/ewilliams-labs/lineup/internal/core/ports"
	"github.com/ewilliams-labs/lineup/internal/logging"
	"github.com/ewilliams-labs/lineup/internal/metrics"
)

// Options tunes lookups and resilience. Zero values fall back to defaults.
type Options struct {
	Market             string
	TracksPerArtist    int
	PlaylistTrackLimit int
	MaxRetries         int
	RetryBackoff       time.Duration
	RequestsPerSecond  float64
	LookupConcurrency  int
	BreakerFailures    uint32
	BreakerTimeout     time.Duration
}

func (o Options) withDefaults() Options {
	if o.Market == "" {
		o.Market = "US"
	}
	if o.TracksPerArtist <= 0 {
		o.TracksPerArtist = 2
	}
	if o.PlaylistTrackLimit <= 0 {
		o.PlaylistTrackLimit = 5
	}
	if o.MaxRetries <= 0 {
		o.MaxRetries = defaultMaxRetries
	}
	if o.RetryBackoff <= 0 {
		o.RetryBackoff = defaultBackoff
	}
	if o.LookupConcurrency <= 0 {
		o.LookupConcurrency = 4
	}
	if o.BreakerFailures == 0 {
		o.BreakerFailures = 5
	}
	if o.BreakerTimeout <= 0 {
		o.BreakerTimeout = 30 * time.Second
	}
	return o
}

// Client is an HTTP client for the Spotify adapter.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	opts        Options
	maxRetries  int
	baseBackoff time.Duration
	limiter     *rate.Limiter
	breaker     *gobreaker.CircuitBreaker[*http.Response]
}

// compile-time interface assertions
var (
	_ ports.BatchAudioFeatureProvider = (*Client)(nil)
	_ ports.PlaylistFeatureProvider   = (*Client)(nil)
)

// NewClient constructs a new Spotify client. The http client is expected to
// authenticate its requests.
func NewClient(httpClient *http.Client, baseURL string, opts Options) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	opts = opts.withDefaults()

	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}

	return &Client{
		httpClient:  httpClient,
		baseURL:     strings.TrimRight(baseURL, "/"),
		opts:        opts,
		maxRetries:  opts.MaxRetries,
		baseBackoff: opts.RetryBackoff,
		limiter:     rate.NewLimiter(limit, 1),
		breaker:     newBreaker(opts.BreakerFailures, opts.BreakerTimeout),
	}
}

// NewCredentialsHTTPClient returns an http client that authenticates with the
// client credentials flow. Tokens are fetched and refreshed on demand.
func NewCredentialsHTTPClient(ctx context.Context, clientID, clientSecret, tokenURL string, timeout time.Duration) *http.Client {
	cc := clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
	}
	hc := cc.Client(ctx)
	hc.Timeout = timeout
	return hc
}

func newBreaker(failures uint32, timeout time.Duration) *gobreaker.CircuitBreaker[*http.Response] {
	logger := logging.WithComponent("spotify")
	return gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:        "spotify",
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if to == gobreaker.StateOpen {
				metrics.CatalogBreakerOpen.Set(1)
			} else {
				metrics.CatalogBreakerOpen.Set(0)
			}
			logger.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
		},
	})
}

// do sends the request through the circuit breaker and the retry loop.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.breaker.Execute(func() (*http.Response, error) {
		return c.doRequestWithRetry(req)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("spotify adapter: catalog unavailable: %w", err)
	}
	return resp, err
}

// getJSON issues a GET request and decodes a 200 response into out.
// A 404 is reported as domain.ErrNotFound.
func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("spotify adapter: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("spotify adapter: %s: %w", req.URL.Path, domain.ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("spotify adapter: status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("spotify adapter: decode: %w", err)
	}
	return nil
}
