/* test_mocks.go
 * Contains mock structures and interfaces for testing the API package and its consumers
 */

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"octofit-tracker/api/external"
)

// MockFetcher implements view.Fetcher with canned payloads per entity
type MockFetcher struct {
	// Raw response bodies keyed by entity, normalised the same way the real client does
	Payloads map[string]string

	// Error injection for testing error paths
	Errors map[string]error

	// Delay before answering, honouring context cancellation
	Delay time.Duration

	mu    sync.Mutex
	calls map[string]int
}

// NewMockFetcher creates a new MockFetcher with no payloads
func NewMockFetcher() *MockFetcher {
	return &MockFetcher{
		Payloads: make(map[string]string),
		Errors:   make(map[string]error),
		calls:    make(map[string]int),
	}
}

// SetPayload sets the raw body returned for an entity
func (m *MockFetcher) SetPayload(entity string, body string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Payloads[entity] = body
}

// SetError makes fetches for an entity fail with err
func (m *MockFetcher) SetError(entity string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors[entity] = err
}

// Calls returns how many times an entity was fetched
func (m *MockFetcher) Calls(entity string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[entity]
}

// FetchEntities mock implementation. Unknown entities answer 404 like the backend router
func (m *MockFetcher) FetchEntities(ctx context.Context, entity string) (json.RawMessage, error) {
	m.mu.Lock()
	m.calls[entity]++
	body, hasBody := m.Payloads[entity]
	err := m.Errors[entity]
	delay := m.Delay
	m.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, &external.TransportError{URL: entity, Err: ctx.Err()}
		}
	}

	if err != nil {
		return nil, err
	}
	if !hasBody {
		return nil, &external.HTTPStatusError{Status: http.StatusNotFound, URL: entity}
	}

	var raw json.RawMessage
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		return nil, &external.ParseError{Err: err}
	}
	return external.Normalize(raw), nil
}
