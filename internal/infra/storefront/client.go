// Package storefront provides access to the iTunes lookup API, which
// partitions application metadata by country/region. It contains a low-level
// Client for single-region lookups and a Resolver that falls back across an
// ordered region list.
package storefront

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"appwatch/internal/domain/entity"
	"appwatch/internal/resilience/circuitbreaker"

	"golang.org/x/time/rate"
)

// ErrAppNotFound indicates that the lookup succeeded but the storefront
// returned zero results for the queried region. It is a per-region miss,
// not a transport failure.
var ErrAppNotFound = errors.New("app not found in region")

// Config contains configuration for the storefront lookup client.
type Config struct {
	// LookupURL is the base lookup endpoint (query parameters are appended)
	LookupURL string

	// Timeout is the HTTP request timeout for a single lookup call
	Timeout time.Duration

	// RequestsPerSecond bounds the sustained lookup rate; the iTunes API
	// throttles aggressive clients by IP
	RequestsPerSecond float64

	// Burst is the token bucket burst size
	Burst int
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() Config {
	return Config{
		LookupURL:         "https://itunes.apple.com/lookup",
		Timeout:           10 * time.Second,
		RequestsPerSecond: 2.0,
		Burst:             4,
	}
}

// Client performs single-region lookups against the storefront API.
// Calls pass through a token-bucket rate limiter and a circuit breaker;
// an open breaker surfaces as a transport error to the caller.
type Client struct {
	config     Config
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *circuitbreaker.CircuitBreaker
}

// NewClient creates a storefront Client from the given configuration.
func NewClient(config Config) *Client {
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(config.RequestsPerSecond), config.Burst),
		breaker: circuitbreaker.New(circuitbreaker.StorefrontConfig()),
	}
}

// lookupResponse mirrors the storefront lookup JSON envelope.
// Only the first result element is consumed when resultCount > 0.
type lookupResponse struct {
	ResultCount int            `json:"resultCount"`
	Results     []lookupResult `json:"results"`
}

type lookupResult struct {
	TrackName                 string `json:"trackName"`
	Version                   string `json:"version"`
	ReleaseNotes              string `json:"releaseNotes"`
	TrackViewURL              string `json:"trackViewUrl"`
	ArtworkURL100             string `json:"artworkUrl100"`
	CurrentVersionReleaseDate string `json:"currentVersionReleaseDate"`
}

// Lookup queries the storefront for one application in one region.
//
// Returns:
//   - (*entity.AppRelease, nil) when the region has a published record
//   - (nil, ErrAppNotFound) when the region returned zero results
//   - (nil, error) on transport failure (timeout, non-200, malformed JSON,
//     open circuit breaker)
func (c *Client) Lookup(ctx context.Context, appID, region string) (*entity.AppRelease, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	outcome, err := c.breaker.Execute(func() (interface{}, error) {
		return c.doLookup(ctx, appID, region)
	})
	if err != nil {
		return nil, err
	}

	resp := outcome.(*lookupResponse)
	if resp.ResultCount == 0 || len(resp.Results) == 0 {
		return nil, ErrAppNotFound
	}

	r := resp.Results[0]
	release := &entity.AppRelease{
		AppID:        appID,
		Name:         r.TrackName,
		Version:      r.Version,
		ReleaseNotes: r.ReleaseNotes,
		StoreURL:     r.TrackViewURL,
		IconURL:      r.ArtworkURL100,
		ReleasedAt:   r.CurrentVersionReleaseDate,
		Region:       region,
	}

	// A record without a version string cannot be classified; treat it like
	// any other malformed response so the resolver moves on to the next
	// region.
	if err := release.Validate(); err != nil {
		return nil, fmt.Errorf("invalid lookup result: %w", err)
	}
	return release, nil
}

// doLookup issues the HTTP request and decodes the envelope. A zero-result
// response is a successful call from the breaker's point of view, so it is
// returned without error here and mapped to ErrAppNotFound by Lookup.
func (c *Client) doLookup(ctx context.Context, appID, region string) (*lookupResponse, error) {
	endpoint := fmt.Sprintf("%s?id=%s&country=%s",
		c.config.LookupURL, url.QueryEscape(appID), url.QueryEscape(region))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create lookup request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute lookup request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("lookup returned status %d: %s", resp.StatusCode, string(body))
	}

	var decoded lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode lookup response: %w", err)
	}

	return &decoded, nil
}
