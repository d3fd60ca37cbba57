package referrer

import (
	"context"
	"errors"
	"sync"
)

// DisconnectError marks a transient service disconnect. Cached retries the
// fetch once when it sees one; a second disconnect surfaces as
// CodeDisconnected.
type DisconnectError struct {
	Detail string
}

func (e *DisconnectError) Error() string {
	if e.Detail == "" {
		return "service disconnected"
	}
	return "service disconnected: " + e.Detail
}

// Cached wraps a Client with process-lifetime single-flight memoization:
// the underlying Fetch runs at most once, concurrent callers block until it
// completes, and every caller (present and future) receives the same
// payload or error.
type Cached struct {
	client Client

	mu      sync.Mutex
	done    chan struct{}
	payload *Payload
	err     error
}

func NewCached(client Client) *Cached {
	return &Cached{client: client}
}

// Fetch returns the memoized result, starting the underlying fetch on first
// call. ctx only bounds this caller's wait; the fetch itself keeps running
// so that a caller timing out does not poison the cache for others.
func (c *Cached) Fetch(ctx context.Context) (*Payload, error) {
	c.mu.Lock()
	if c.done == nil {
		c.done = make(chan struct{})
		go c.fetchOnce()
	}
	done := c.done
	c.mu.Unlock()

	select {
	case <-done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.payload, c.err
}

func (c *Cached) fetchOnce() {
	payload, err := c.client.Fetch(context.Background())
	if isDisconnect(err) {
		payload, err = c.client.Fetch(context.Background())
		if isDisconnect(err) {
			err = &Error{Code: CodeDisconnected}
		}
	}

	c.mu.Lock()
	c.payload, c.err = payload, err
	done := c.done
	c.mu.Unlock()

	close(done)
}

func isDisconnect(err error) bool {
	var de *DisconnectError
	return errors.As(err, &de)
}
