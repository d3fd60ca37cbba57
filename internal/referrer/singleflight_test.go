package referrer

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingClient counts Fetch calls and can fail with disconnects before
// succeeding.
type countingClient struct {
	calls       atomic.Int32
	disconnects int32
	payload     *Payload
	err         error
}

func (c *countingClient) Fetch(ctx context.Context) (*Payload, error) {
	n := c.calls.Add(1)
	if n <= c.disconnects {
		return nil, &DisconnectError{}
	}
	return c.payload, c.err
}

func TestCachedFetchesOnce(t *testing.T) {
	client := &countingClient{payload: &Payload{InstallReferrer: "utm_source=ad"}}
	cached := NewCached(client)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := cached.Fetch(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, "utm_source=ad", p.InstallReferrer)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), client.calls.Load(), "underlying client fetched more than once")

	// Later callers get the memoized result.
	p, err := cached.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "utm_source=ad", p.InstallReferrer)
	assert.Equal(t, int32(1), client.calls.Load())
}

func TestCachedMemoizesError(t *testing.T) {
	client := &countingClient{err: &Error{Code: CodeServiceUnavailable}}
	cached := NewCached(client)

	_, err := cached.Fetch(context.Background())
	assert.Equal(t, CodeServiceUnavailable, CodeOf(err))

	_, err = cached.Fetch(context.Background())
	assert.Equal(t, CodeServiceUnavailable, CodeOf(err))
	assert.Equal(t, int32(1), client.calls.Load())
}

func TestCachedRetriesDisconnectOnce(t *testing.T) {
	client := &countingClient{disconnects: 1, payload: &Payload{InstallReferrer: "a=1"}}
	cached := NewCached(client)

	p, err := cached.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "a=1", p.InstallReferrer)
	assert.Equal(t, int32(2), client.calls.Load())
}

func TestCachedDisconnectedAfterRetry(t *testing.T) {
	client := &countingClient{disconnects: 2}
	cached := NewCached(client)

	_, err := cached.Fetch(context.Background())
	assert.Equal(t, CodeDisconnected, CodeOf(err))
	assert.Equal(t, int32(2), client.calls.Load())
}

// blockingClient blocks until released.
type blockingClient struct {
	release chan struct{}
}

func (c *blockingClient) Fetch(ctx context.Context) (*Payload, error) {
	<-c.release
	return &Payload{InstallReferrer: "late=1"}, nil
}

func TestCachedCallerTimeoutDoesNotPoisonCache(t *testing.T) {
	client := &blockingClient{release: make(chan struct{})}
	cached := NewCached(client)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := cached.Fetch(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(client.release)

	p, err := cached.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "late=1", p.InstallReferrer)
}
