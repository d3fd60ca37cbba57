package store

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linktrace/linktrace/internal/referrer"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	Close()
	Configure(filepath.Join(t.TempDir(), "referrer.db"))
	t.Cleanup(Close)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	setupTestDB(t)

	_, ok, err := Load()
	require.NoError(t, err)
	assert.False(t, ok)

	p := &referrer.Payload{
		InstallReferrer: "utm_source=ad&uid=42",
		ClickAt:         1700000000,
		InstallBeganAt:  1700000060,
	}
	require.NoError(t, Save(p, 1700000120))

	got, ok, err := Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, p.InstallReferrer, got.InstallReferrer)
	assert.Equal(t, p.ClickAt, got.ClickAt)
	assert.Equal(t, p.InstallBeganAt, got.InstallBeganAt)
}

func TestSaveReplaces(t *testing.T) {
	setupTestDB(t)

	require.NoError(t, Save(&referrer.Payload{InstallReferrer: "a=1"}, 1))
	require.NoError(t, Save(&referrer.Payload{InstallReferrer: "a=2"}, 2))

	got, ok, err := Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "a=2", got.InstallReferrer)
}

type countingClient struct {
	calls atomic.Int32
}

func (c *countingClient) Fetch(ctx context.Context) (*referrer.Payload, error) {
	c.calls.Add(1)
	return &referrer.Payload{InstallReferrer: "utm_source=ad"}, nil
}

func TestPersistentFetchesThenServesFromDisk(t *testing.T) {
	setupTestDB(t)

	client := &countingClient{}
	s := &Persistent{Client: client}

	p, err := s.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "utm_source=ad", p.InstallReferrer)
	assert.Equal(t, int32(1), client.calls.Load())

	p, err = s.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "utm_source=ad", p.InstallReferrer)
	assert.Equal(t, int32(1), client.calls.Load(), "second fetch should come from disk")
}

func TestPersistentPropagatesClientError(t *testing.T) {
	setupTestDB(t)

	s := &Persistent{Client: &referrer.StaticClient{Err: &referrer.Error{Code: referrer.CodeServiceUnavailable}}}
	_, err := s.Fetch(context.Background())
	assert.Equal(t, referrer.CodeServiceUnavailable, referrer.CodeOf(err))
}
