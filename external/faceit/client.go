// Package faceit implements the Faceit open data API client used by the
// resolver and the stats aggregator.
package faceit

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/riskibarqy/faceit-scope/internal/platform/logging"
	"github.com/riskibarqy/faceit-scope/internal/platform/resilience"
	"github.com/riskibarqy/faceit-scope/internal/usecase"
)

const (
	defaultBaseURL          = "https://open.faceit.com/data/v4"
	defaultGameID           = "cs2"
	defaultFallbackGameID   = "csgo"
	defaultTimeout          = 15 * time.Second
	defaultMaxRetries       = 3
	defaultMaxRateLimitWait = 60 * time.Second
	networkRetryDelay       = time.Second
	maxResponseBytes        = 6 << 20
)

// ErrInvalidAPIKey reports an upstream 401. The key is process
// configuration, so this aborts immediately instead of retrying, and it
// chains into the dependency-unavailable class so the resolver stops the
// ladder instead of advancing past a misconfigured credential.
var ErrInvalidAPIKey = crerr.Wrap(usecase.ErrDependencyUnavailable, "faceit api key rejected")

var errFaceitTransient = crerr.New("faceit transient failure")

// ClientConfig is assembled once at wiring time; the client copies what
// it needs and never mutates shared state afterwards.
type ClientConfig struct {
	HTTPClient       *http.Client
	BaseURL          string
	APIKey           string
	GameID           string
	FallbackGameID   string
	Timeout          time.Duration
	MaxRetries       int
	MaxRateLimitWait time.Duration
	Logger           *logging.Logger
	CircuitBreaker   resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient       *http.Client
	baseURL          string
	apiKey           string
	gameID           string
	fallbackGameID   string
	maxRetries       int
	maxRateLimitWait time.Duration
	logger           *logging.Logger
	breaker          *resilience.CircuitBreaker
	circuitEnabled   bool
	flight           resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = timeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	maxWait := cfg.MaxRateLimitWait
	if maxWait <= 0 {
		maxWait = defaultMaxRateLimitWait
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:       httpClient,
		baseURL:          baseURL,
		apiKey:           strings.TrimSpace(cfg.APIKey),
		gameID:           firstNonEmptyStr(cfg.GameID, defaultGameID),
		fallbackGameID:   firstNonEmptyStr(cfg.FallbackGameID, defaultFallbackGameID),
		maxRetries:       maxRetries,
		maxRateLimitWait: maxWait,
		logger:           logger,
		breaker:          resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled:   breakerCfg.Enabled,
	}
}

// getJSON performs one GET and decodes the payload into target. The
// boolean reports presence: (false, nil) covers 404 and every absorbed
// non-retryable upstream failure, per the null-not-exception contract.
func (c *Client) getJSON(ctx context.Context, path string, query map[string]string, target any) (bool, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "faceit circuit breaker rejected request", "state", c.breaker.State())
			return false, fmt.Errorf("%w: faceit api is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	key := path + "?" + values.Encode()
	out, err, _ := c.flight.Do(key, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && stderrors.Is(reqErr, errFaceitTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return false, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return false, fmt.Errorf("unexpected response payload type %T", out)
	}
	if raw == nil {
		return false, nil
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		// A garbled 200 body is an upstream fault like any other; absorb
		// it so the caller falls through to its next lookup.
		c.logger.WarnContext(ctx, "faceit payload decode failed",
			"path", path,
			"error", err,
		)
		return false, nil
	}

	return true, nil
}

// executeRequest runs the bounded retry loop. Dispatch on status:
// 200 returns the body, 401 aborts with ErrInvalidAPIKey, 404 resolves
// to nil, 429 backs off exponentially within the wait cap, any other
// non-2xx is logged and resolves to nil, and network failures retry
// after a short fixed delay. Only 429 and network failures consume
// retry attempts.
func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	if c.logger != nil {
		c.logger.DebugContext(ctx, "faceit request", "curl", c.buildCurlPreview(fullURL))
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errFaceitTransient, c.sanitize(err.Error()))
			if attempt == c.maxRetries {
				break
			}
			if waitErr := sleepCtx(ctx, networkRetryDelay); waitErr != nil {
				return nil, waitErr
			}
			continue
		}

		raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		_ = resp.Body.Close()
		if readErr != nil {
			lastErr = fmt.Errorf("%w: read response body: %v", errFaceitTransient, readErr)
			if attempt == c.maxRetries {
				break
			}
			if waitErr := sleepCtx(ctx, networkRetryDelay); waitErr != nil {
				return nil, waitErr
			}
			continue
		}

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			return raw, nil
		case resp.StatusCode == http.StatusUnauthorized:
			return nil, fmt.Errorf("%w: status=401", ErrInvalidAPIKey)
		case resp.StatusCode == http.StatusNotFound:
			return nil, nil
		case resp.StatusCode == http.StatusTooManyRequests:
			lastErr = fmt.Errorf("%w: rate limited status=429", errFaceitTransient)
			if attempt == c.maxRetries {
				break
			}
			wait := rateLimitBackoff(attempt, c.maxRateLimitWait)
			c.logger.WarnContext(ctx, "faceit rate limited, backing off",
				"url", fullURL,
				"attempt", attempt+1,
				"wait", wait.String(),
			)
			if waitErr := sleepCtx(ctx, wait); waitErr != nil {
				return nil, waitErr
			}
			continue
		default:
			// Non-429 upstream errors are not assumed retryable; a
			// retry storm during an outage only amplifies load.
			c.logger.WarnContext(ctx, "faceit request failed",
				"url", fullURL,
				"status_code", resp.StatusCode,
				"body", abbreviateBody(raw),
			)
			return nil, nil
		}

		if attempt == c.maxRetries {
			break
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("faceit request failed")
	}
	c.logger.WarnContext(ctx, "faceit request exhausted retries", "url", fullURL, "error", c.sanitize(lastErr.Error()))
	return nil, nil
}

// rateLimitBackoff doubles per attempt, capped.
func rateLimitBackoff(attempt int, maxWait time.Duration) time.Duration {
	if attempt > 6 {
		return maxWait
	}
	wait := time.Duration(1<<uint(attempt)) * time.Second
	if wait > maxWait {
		return maxWait
	}
	return wait
}

func sleepCtx(ctx context.Context, wait time.Duration) error {
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (c *Client) sanitize(text string) string {
	if c.apiKey == "" {
		return text
	}
	return strings.ReplaceAll(text, c.apiKey, "REDACTED")
}

func (c *Client) buildCurlPreview(fullURL string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString("curl -H 'Authorization: Bearer ***' -H 'Accept: application/json' '")
	_, _ = buf.WriteString(fullURL)
	_ = buf.WriteByte('\'')

	return buf.String()
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func firstNonEmptyStr(values ...string) string {
	for _, item := range values {
		if strings.TrimSpace(item) != "" {
			return strings.TrimSpace(item)
		}
	}
	return ""
}

func limitParam(limit int) string {
	if limit <= 0 {
		limit = 5
	}
	return strconv.Itoa(limit)
}
