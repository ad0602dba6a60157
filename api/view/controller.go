/* controller.go
 * Contains the generic view controller. A controller owns the state of one screen (items, loading flag, error message)
 * and runs exactly one fetch per mount. Results that arrive for an older mount, or after unmount, are dropped
 */

package view

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"sync"

	"octofit-tracker/api/external"
	"octofit-tracker/observability"

	"github.com/google/uuid"
)

// State is the lifecycle state of a controller
type State int

const (
	Loading State = iota
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Fetcher returns the normalised list payload for an entity. *external.Client implements it
type Fetcher interface {
	FetchEntities(ctx context.Context, entity string) (json.RawMessage, error)
}

var _ Fetcher = (*external.Client)(nil)

// Snapshot is a copy of a controller's state at one point in time
type Snapshot[T any] struct {
	State      State
	Items      []T
	Error      string
	Generation uint64
}

// Controller holds the fetch state for one entity list
type Controller[T any] struct {
	fetcher Fetcher
	entity  string

	mu         sync.Mutex
	generation uint64
	mounted    bool
	cancel     context.CancelFunc
	state      State
	items      []T
	errMsg     string
	settled    chan struct{}
	pending    bool
}

// NewController creates a controller in the Loading state. Nothing is fetched until Mount is called
func NewController[T any](fetcher Fetcher, entity string) *Controller[T] {
	settled := make(chan struct{})
	close(settled)
	return &Controller[T]{
		fetcher: fetcher,
		entity:  entity,
		state:   Loading,
		settled: settled,
	}
}

// Entity returns the entity path this controller fetches
func (c *Controller[T]) Entity() string {
	return c.entity
}

// Mount starts a new load and returns its generation. It does not block.
// Any load still in flight from an earlier mount is cancelled and its result will be ignored
func (c *Controller[T]) Mount(ctx context.Context) uint64 {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.releaseLocked()

	c.generation++
	generation := c.generation
	loadCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.mounted = true
	c.state = Loading
	c.items = nil
	c.errMsg = ""
	c.settled = make(chan struct{})
	c.pending = true
	c.mu.Unlock()

	go c.load(loadCtx, generation)
	return generation
}

// Unmount cancels the in-flight load, if any, and releases anyone waiting on it.
// The controller stays in whatever state it was in, late results are discarded
func (c *Controller[T]) Unmount() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.mounted = false
	c.generation++
	c.releaseLocked()
}

// Snapshot returns the current state
func (c *Controller[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Wait blocks until the current load settles, the controller is unmounted, or ctx is done.
// It returns immediately when no load is pending
// Preconditions: Receives a context bounding the wait
// Postconditions: Returns the snapshot at the time the wait ended, and ctx.Err() if the context ended first
func (c *Controller[T]) Wait(ctx context.Context) (Snapshot[T], error) {
	if err := ctx.Err(); err != nil {
		return c.Snapshot(), err
	}

	c.mu.Lock()
	settled := c.settled
	c.mu.Unlock()

	select {
	case <-settled:
		return c.Snapshot(), nil
	case <-ctx.Done():
		return c.Snapshot(), ctx.Err()
	}
}

func (c *Controller[T]) load(ctx context.Context, generation uint64) {
	loadID := uuid.NewString()
	log.Printf("[%s] load %s started (generation %d)", c.entity, loadID, generation)

	items, err := c.fetchItems(ctx)
	if !c.commit(generation, items, err) {
		log.Printf("[%s] load %s discarded: generation %d is no longer current", c.entity, loadID, generation)
		observability.RecordStaleDiscard(c.entity)
		return
	}

	if err != nil {
		log.Printf("[%s] load %s failed: %v", c.entity, loadID, err)
		return
	}
	log.Printf("[%s] load %s ready with %d records", c.entity, loadID, len(items))
}

func (c *Controller[T]) fetchItems(ctx context.Context) ([]T, error) {
	payload, err := c.fetcher.FetchEntities(ctx, c.entity)
	if err != nil {
		return nil, err
	}
	return decodeItems[T](payload)
}

// commit stores the result of a load if it is still current
func (c *Controller[T]) commit(generation uint64, items []T, err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.mounted || generation != c.generation {
		return false
	}

	if err != nil {
		c.state = Failed
		c.errMsg = err.Error()
		c.items = nil
	} else {
		c.state = Ready
		c.items = items
		c.errMsg = ""
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.releaseLocked()
	return true
}

// releaseLocked wakes waiters on the current load. Callers hold c.mu
func (c *Controller[T]) releaseLocked() {
	if c.pending {
		close(c.settled)
		c.pending = false
	}
}

func (c *Controller[T]) snapshotLocked() Snapshot[T] {
	items := make([]T, len(c.items))
	copy(items, c.items)
	return Snapshot[T]{
		State:      c.state,
		Items:      items,
		Error:      c.errMsg,
		Generation: c.generation,
	}
}

// decodeItems decodes a normalised payload into records. null or an empty body is an empty list
func decodeItems[T any](payload json.RawMessage) ([]T, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, &external.ParseError{Err: err}
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}
