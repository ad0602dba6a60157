/* external.go
 * Contains the logic used to fetch entity lists from the OctoFit REST API, and return the normalised payload to the
 * higher level functions
 */

package external

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"octofit-tracker/observability"

	"golang.org/x/time/rate"
)

// Client fetches entity lists from a single API deployment
type Client struct {
	BaseURL     string
	HTTPClient  *http.Client
	Limiter     *rate.Limiter
	LogPayloads bool
}

// ClientConfig holds the tunables for NewClient
type ClientConfig struct {
	BaseURL           string
	RequestsPerSecond float64
	Burst             int
	Timeout           time.Duration
	LogPayloads       bool
}

// NewClient creates a Client for the given configuration. A zero RequestsPerSecond disables the limiter,
// a zero Timeout leaves requests unbounded
func NewClient(cfg ClientConfig) *Client {
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	return &Client{
		BaseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		HTTPClient:  &http.Client{Timeout: cfg.Timeout},
		Limiter:     rate.NewLimiter(limit, burst),
		LogPayloads: cfg.LogPayloads,
	}
}

// BaseURLFromHost builds the deployment base URL from the runtime host identifier, e.g. https://<host>-8000.app.github.dev
// An empty host produces a malformed URL, which fails when a request is made rather than here
func BaseURLFromHost(host string, suffix string) string {
	return fmt.Sprintf("https://%s-8000.%s", strings.TrimSpace(host), strings.Trim(suffix, ". "))
}

// EndpointURL returns the list endpoint for an entity, e.g. <base>/api/users/
func (c *Client) EndpointURL(entity string) string {
	return fmt.Sprintf("%s/api/%s/", c.BaseURL, entity)
}

// FetchEntities issues one GET against the entity's list endpoint and normalises the response.
// Preconditions: Receives a context and the entity path segment (users, activities, teams, leaderboard or workouts)
// Postconditions: Returns the normalised JSON payload, or an *HTTPStatusError, *TransportError or *ParseError
func (c *Client) FetchEntities(ctx context.Context, entity string) (json.RawMessage, error) {
	start := time.Now()
	payload, err := c.fetch(ctx, entity)
	observability.RecordFetch(entity, Outcome(err), time.Since(start))
	return payload, err
}

func (c *Client) fetch(ctx context.Context, entity string) (json.RawMessage, error) {
	url := c.EndpointURL(entity)
	log.Printf("[%s] fetching from: %s", entity, url)

	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return nil, &TransportError{URL: url, Err: err}
		}
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	response, err := client.Do(request)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		// Drain so the connection can be reused
		io.Copy(io.Discard, response.Body)
		return nil, &HTTPStatusError{Status: response.StatusCode, URL: url}
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}

	var raw json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &ParseError{Err: err}
	}
	if c.LogPayloads {
		log.Printf("[%s] data received: %s", entity, raw)
	}

	normalized := Normalize(raw)
	if c.LogPayloads {
		log.Printf("[%s] processed: %s", entity, normalized)
	}
	return normalized, nil
}
