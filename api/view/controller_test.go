/* controller_test.go
 * Contains unit tests for the view controller lifecycle, including the stale response guard
 */

package view

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"octofit-tracker/api/external"
	"octofit-tracker/observability"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// staticFetcher answers every call with the same payload or error
type staticFetcher struct {
	payload string
	err     error
	calls   int
	mu      sync.Mutex
}

func (f *staticFetcher) FetchEntities(ctx context.Context, entity string) (json.RawMessage, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(f.payload), nil
}

// gatedFetcher blocks each call until the test releases it, so resolution order can be controlled
type gatedFetcher struct {
	mu    sync.Mutex
	gates []chan string
	ready chan struct{}
}

func newGatedFetcher() *gatedFetcher {
	return &gatedFetcher{ready: make(chan struct{}, 16)}
}

func (f *gatedFetcher) FetchEntities(ctx context.Context, entity string) (json.RawMessage, error) {
	gate := make(chan string, 1)
	f.mu.Lock()
	f.gates = append(f.gates, gate)
	f.mu.Unlock()
	f.ready <- struct{}{}

	// Ignores ctx on purpose so a late response can be delivered after cancellation
	payload := <-gate
	return json.RawMessage(payload), nil
}

func (f *gatedFetcher) waitCalls(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-f.ready:
		case <-time.After(2 * time.Second):
			t.Fatalf("fetch %d was never issued", i+1)
		}
	}
}

func (f *gatedFetcher) release(i int, payload string) {
	f.mu.Lock()
	gate := f.gates[i]
	f.mu.Unlock()
	gate <- payload
}

func waitCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// region state machine tests

func TestController_InitialStateIsLoading(t *testing.T) {
	c := NewController[record](&staticFetcher{payload: `[]`}, "users")

	snap := c.Snapshot()

	assert.Equal(t, Loading, snap.State)
	assert.Empty(t, snap.Items)
	assert.Empty(t, snap.Error)
}

func TestController_MountToReady(t *testing.T) {
	fetcher := &staticFetcher{payload: `[{"id":1,"name":"Ana"},{"id":2,"name":"Ben"}]`}
	c := NewController[record](fetcher, "users")

	c.Mount(context.Background())
	snap, err := c.Wait(waitCtx(t))

	require.NoError(t, err)
	assert.Equal(t, Ready, snap.State)
	assert.Equal(t, []record{{ID: 1, Name: "Ana"}, {ID: 2, Name: "Ben"}}, snap.Items)
	assert.Empty(t, snap.Error)
	assert.Equal(t, 1, fetcher.calls)
}

func TestController_MountToFailed(t *testing.T) {
	fetcher := &staticFetcher{err: &external.HTTPStatusError{Status: 500}}
	c := NewController[record](fetcher, "teams")

	c.Mount(context.Background())
	snap, err := c.Wait(waitCtx(t))

	require.NoError(t, err)
	assert.Equal(t, Failed, snap.State)
	assert.Equal(t, "HTTP error! status: 500", snap.Error)
	assert.Empty(t, snap.Items)
}

func TestController_EmptyAndNullPayloads(t *testing.T) {
	for _, payload := range []string{`[]`, `null`, ``} {
		c := NewController[record](&staticFetcher{payload: payload}, "activities")

		c.Mount(context.Background())
		snap, err := c.Wait(waitCtx(t))

		require.NoError(t, err)
		assert.Equal(t, Ready, snap.State, "payload %q", payload)
		assert.NotNil(t, snap.Items)
		assert.Len(t, snap.Items, 0)
	}
}

func TestController_NonArrayPayloadIsParseError(t *testing.T) {
	c := NewController[record](&staticFetcher{payload: `{"detail":"not a list"}`}, "workouts")

	c.Mount(context.Background())
	snap, err := c.Wait(waitCtx(t))

	require.NoError(t, err)
	assert.Equal(t, Failed, snap.State)
	assert.Contains(t, snap.Error, "invalid JSON response")
}

func TestController_SnapshotIsACopy(t *testing.T) {
	c := NewController[record](&staticFetcher{payload: `[{"id":1,"name":"Ana"}]`}, "users")
	c.Mount(context.Background())
	snap, err := c.Wait(waitCtx(t))
	require.NoError(t, err)

	snap.Items[0].Name = "changed"

	assert.Equal(t, "Ana", c.Snapshot().Items[0].Name)
}

func TestController_WaitHonoursContext(t *testing.T) {
	fetcher := newGatedFetcher()
	c := NewController[record](fetcher, "users")
	c.Mount(context.Background())
	fetcher.waitCalls(t, 1)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	snap, err := c.Wait(ctx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, Loading, snap.State)

	fetcher.release(0, `[]`)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "loading", Loading.String())
	assert.Equal(t, "ready", Ready.String())
	assert.Equal(t, "failed", Failed.String())
	assert.Equal(t, "unknown", State(9).String())
}

// endregion

// region stale response tests

func TestController_LateResponseAfterUnmountIsDiscarded(t *testing.T) {
	fetcher := newGatedFetcher()
	c := NewController[record](fetcher, "stale_unmount")
	before := testutil.ToFloat64(observability.StaleCounter("stale_unmount"))

	c.Mount(context.Background())
	fetcher.waitCalls(t, 1)
	c.Unmount()

	// Waiters are released by unmount
	snap, err := c.Wait(waitCtx(t))
	require.NoError(t, err)
	assert.Equal(t, Loading, snap.State)

	fetcher.release(0, `[{"id":1,"name":"late"}]`)

	assert.Eventually(t, func() bool {
		return testutil.ToFloat64(observability.StaleCounter("stale_unmount")) == before+1
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, Loading, c.Snapshot().State)
	assert.Empty(t, c.Snapshot().Items)
}

func TestController_RemountIgnoresOlderResponse(t *testing.T) {
	fetcher := newGatedFetcher()
	c := NewController[record](fetcher, "stale_remount")
	before := testutil.ToFloat64(observability.StaleCounter("stale_remount"))

	first := c.Mount(context.Background())
	fetcher.waitCalls(t, 1)
	second := c.Mount(context.Background())
	fetcher.waitCalls(t, 1)
	assert.Greater(t, second, first)

	// The newer request resolves first, then the older one arrives last
	fetcher.release(1, `[{"id":2,"name":"new"}]`)
	snap, err := c.Wait(waitCtx(t))
	require.NoError(t, err)
	require.Equal(t, Ready, snap.State)

	fetcher.release(0, `[{"id":1,"name":"old"}]`)

	assert.Eventually(t, func() bool {
		return testutil.ToFloat64(observability.StaleCounter("stale_remount")) == before+1
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, []record{{ID: 2, Name: "new"}}, c.Snapshot().Items)
}

func TestController_UnmountCancelsFetchContext(t *testing.T) {
	canceled := make(chan struct{})
	fetcher := fetcherFunc(func(ctx context.Context, entity string) (json.RawMessage, error) {
		<-ctx.Done()
		close(canceled)
		return nil, ctx.Err()
	})
	c := NewController[record](fetcher, "users")

	c.Mount(context.Background())
	c.Unmount()

	select {
	case <-canceled:
	case <-time.After(2 * time.Second):
		t.Fatal("fetch context was not cancelled on unmount")
	}
}

type fetcherFunc func(ctx context.Context, entity string) (json.RawMessage, error)

func (f fetcherFunc) FetchEntities(ctx context.Context, entity string) (json.RawMessage, error) {
	return f(ctx, entity)
}

func TestController_UnmountBeforeMountIsSafe(t *testing.T) {
	c := NewController[record](&staticFetcher{err: errors.New("unused")}, "users")

	assert.NotPanics(t, func() {
		c.Unmount()
		c.Unmount()
	})
}

// endregion
