package fpl

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/atsilverman/fpl-research/internal/platform/logging"
	"github.com/atsilverman/fpl-research/internal/platform/resilience"
	"github.com/atsilverman/fpl-research/internal/usecase"
)

const defaultBaseURL = "https://fantasy.premierleague.com/api"

var errFeedTransient = crerr.New("feed transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	RateLimitDelay time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.BreakerConfig
}

// Client is the read-only upstream feed client. All fetches share one
// breaker and singleflight group, and every successful call is followed by a
// fixed pacing delay so bursts stay bounded by the entity counts being
// synced.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	maxRetries     int
	rateLimitDelay time.Duration
	logger         *logging.Logger
	breaker        *resilience.Breaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

var _ usecase.FeedProvider = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 30 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeBreakerConfig(cfg.CircuitBreaker)

	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		maxRetries:     maxRetries,
		rateLimitDelay: cfg.RateLimitDelay,
		logger:         logger,
		breaker:        resilience.NewBreaker(breakerCfg),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// Ping probes the smallest feed document to verify connectivity.
func (c *Client) Ping(ctx context.Context) error {
	var probe eventStatusEnvelope
	if err := c.doJSON(ctx, "/event-status/", &probe); err != nil {
		return fmt.Errorf("ping feed: %w", err)
	}
	return nil
}

func (c *Client) FetchBootstrap(ctx context.Context) (usecase.UpstreamBootstrap, error) {
	var envelope bootstrapEnvelope
	if err := c.doJSON(ctx, "/bootstrap-static/", &envelope); err != nil {
		return usecase.UpstreamBootstrap{}, fmt.Errorf("fetch bootstrap: %w", err)
	}

	return mapBootstrap(envelope), nil
}

func (c *Client) FetchFixtures(ctx context.Context) ([]usecase.UpstreamFixture, error) {
	var items []wireFixture
	if err := c.doJSON(ctx, "/fixtures/", &items); err != nil {
		return nil, fmt.Errorf("fetch fixtures: %w", err)
	}

	out := make([]usecase.UpstreamFixture, 0, len(items))
	for _, item := range items {
		out = append(out, mapWireFixture(item))
	}

	return out, nil
}

func (c *Client) FetchLive(ctx context.Context, gameweekID int64) (usecase.UpstreamLive, error) {
	if gameweekID <= 0 {
		return usecase.UpstreamLive{}, fmt.Errorf("%w: gameweek id must be greater than zero", usecase.ErrInvalidInput)
	}

	var envelope liveEnvelope
	path := fmt.Sprintf("/event/%d/live/", gameweekID)
	if err := c.doJSON(ctx, path, &envelope); err != nil {
		return usecase.UpstreamLive{}, fmt.Errorf("fetch live gameweek=%d: %w", gameweekID, err)
	}

	return mapLive(gameweekID, envelope), nil
}

func (c *Client) FetchEntry(ctx context.Context, entryID int64) (usecase.UpstreamEntry, error) {
	if entryID <= 0 {
		return usecase.UpstreamEntry{}, fmt.Errorf("%w: entry id must be greater than zero", usecase.ErrInvalidInput)
	}

	var envelope entryEnvelope
	path := fmt.Sprintf("/entry/%d/", entryID)
	if err := c.doJSON(ctx, path, &envelope); err != nil {
		return usecase.UpstreamEntry{}, fmt.Errorf("fetch entry=%d: %w", entryID, err)
	}

	return mapEntry(envelope), nil
}

func (c *Client) FetchEntryPicks(ctx context.Context, entryID, gameweekID int64) (usecase.UpstreamEntryPicks, error) {
	if entryID <= 0 || gameweekID <= 0 {
		return usecase.UpstreamEntryPicks{}, fmt.Errorf("%w: entry and gameweek ids must be greater than zero", usecase.ErrInvalidInput)
	}

	var envelope picksEnvelope
	path := fmt.Sprintf("/entry/%d/event/%d/picks/", entryID, gameweekID)
	if err := c.doJSON(ctx, path, &envelope); err != nil {
		return usecase.UpstreamEntryPicks{}, fmt.Errorf("fetch picks entry=%d gameweek=%d: %w", entryID, gameweekID, err)
	}

	return mapEntryPicks(entryID, gameweekID, envelope), nil
}

func (c *Client) doJSON(ctx context.Context, path string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "feed circuit breaker rejected request", "state", c.breaker.State().String())
			return fmt.Errorf("%w: feed is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	fullURL := c.baseURL + path

	out, err, shared := c.flight.Do(path, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errFeedTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		if reqErr == nil {
			c.pause(ctx)
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}
	if shared {
		c.logger.DebugContext(ctx, "feed request deduplicated", "path", path)
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode feed payload: %w", err)
	}

	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")
		req.Header.Set("user-agent", "fpl-research/1.0")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errFeedTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errFeedTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: feed status=%d", errFeedTransient, resp.StatusCode)
			default:
				err := fmt.Errorf("feed status=%d", resp.StatusCode)
				c.logger.WarnContext(ctx, "feed request failed", "url", fullURL, "error", err)
				return nil, err
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("feed request failed")
	}
	c.logger.WarnContext(ctx, "feed request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

// pause applies the fixed post-call delay, giving up early on cancellation.
func (c *Client) pause(ctx context.Context) {
	if c.rateLimitDelay <= 0 {
		return
	}
	timer := time.NewTimer(c.rateLimitDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}
