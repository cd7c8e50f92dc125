// Package fortniteapi is the HTTP client for the public cosmetics API.
package fortniteapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"

	"github.com/ghuser/fnbrowser/services/cosmetic/domain"
	"github.com/ghuser/fnbrowser/services/cosmetic/domain/models"
)

const (
	DefaultBaseURL  = "https://fortnite-api.com"
	DefaultLanguage = "en"

	allPath    = "/v2/cosmetics/br"
	searchPath = "/v2/cosmetics/br/search/all"
)

// Config configures a Client. Zero values fall back to the public API defaults.
type Config struct {
	BaseURL        string
	Language       string
	RatePerSecond  float64
	RequestTimeout time.Duration
	// Transport overrides the base round tripper; it is still wrapped with otelhttp.
	Transport http.RoundTripper
}

// Client implements repositories.CosmeticSource against the cosmetics API.
type Client struct {
	http     *http.Client
	baseURL  string
	language string
	limiter  *rate.Limiter
}

// envelope is the API's response wrapper. Data is a raw message so a missing
// field can be told apart from an empty list.
type envelope struct {
	Status int             `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  string          `json:"error,omitempty"`
}

// New returns a Client with an otelhttp-instrumented transport and a token
// bucket limiter on outbound requests.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Language == "" {
		cfg.Language = DefaultLanguage
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 60 * time.Second
	}
	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}
	base := cfg.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	return &Client{
		http: &http.Client{
			Timeout:   cfg.RequestTimeout,
			Transport: otelhttp.NewTransport(base),
		},
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		language: cfg.Language,
		limiter:  rate.NewLimiter(limit, 1),
	}
}

// FetchAll returns the whole catalog. A non-2xx status or a body without a
// data array is reported as domain.ErrUpstream.
func (c *Client) FetchAll(ctx context.Context) ([]models.Cosmetic, error) {
	q := url.Values{}
	q.Set("language", c.language)
	return c.get(ctx, allPath, q)
}

// FetchSet returns the members of the named set.
func (c *Client) FetchSet(ctx context.Context, name string) ([]models.Cosmetic, error) {
	q := url.Values{}
	q.Set("set", name)
	return c.get(ctx, searchPath, q)
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]models.Cosmetic, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("fortniteapi: rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("fortniteapi: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fortniteapi: GET %s: %w", path, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: http status %d", domain.ErrUpstream, resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: decode body: %w", domain.ErrUpstream, err)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil, fmt.Errorf("%w: no data received", domain.ErrUpstream)
	}

	var items []models.Cosmetic
	if err := json.Unmarshal(env.Data, &items); err != nil {
		return nil, fmt.Errorf("%w: decode data: %w", domain.ErrUpstream, err)
	}
	return items, nil
}
