package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_AllowsUpToLimit(t *testing.T) {
	m := NewMemory(3, time.Hour)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := m.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, ok, "request %d", i)
	}

	ok, _ := m.Allow(ctx, "10.0.0.1")
	assert.False(t, ok)

	// other clients have their own bucket
	ok, _ = m.Allow(ctx, "10.0.0.2")
	assert.True(t, ok)
}

func TestMemory_Refills(t *testing.T) {
	now := time.Now()
	m := NewMemory(2, time.Minute)
	m.now = func() time.Time { return now }

	ctx := context.Background()
	m.Allow(ctx, "ip")
	m.Allow(ctx, "ip")
	ok, _ := m.Allow(ctx, "ip")
	require.False(t, ok)

	now = now.Add(30 * time.Second)
	ok, _ = m.Allow(ctx, "ip")
	assert.True(t, ok)
}

func TestMemory_Cleanup(t *testing.T) {
	now := time.Now()
	m := NewMemory(10, time.Hour)
	m.now = func() time.Time { return now }

	ctx := context.Background()
	m.Allow(ctx, "old")
	now = now.Add(2 * time.Hour)
	m.Allow(ctx, "fresh")

	assert.Equal(t, 1, m.Cleanup(time.Hour))
	assert.Equal(t, 1, m.Len())
}

func TestMemory_Concurrent(t *testing.T) {
	m := NewMemory(100, time.Hour)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 150; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := m.Allow(context.Background(), "ip"); ok {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, allowed)
}

type fakeEvaler struct {
	counts map[string]int64
	keys   []string
	err    error
}

func (f *fakeEvaler) Eval(ctx context.Context, script string, keys []string, args ...any) *redis.Cmd {
	if f.err != nil {
		return redis.NewCmdResult(nil, f.err)
	}
	f.keys = append(f.keys, keys[0])
	f.counts[keys[0]]++
	return redis.NewCmdResult(f.counts[keys[0]], nil)
}

func TestRedis_FixedWindow(t *testing.T) {
	client := &fakeEvaler{counts: map[string]int64{}}
	r := newRedis(client, 2, time.Hour)

	now := time.Date(2026, 1, 1, 10, 15, 0, 0, time.UTC)
	r.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := r.Allow(ctx, "ip")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, err := r.Allow(ctx, "ip")
	require.NoError(t, err)
	assert.False(t, ok)

	// next window starts a new counter
	now = now.Add(time.Hour)
	ok, _ = r.Allow(ctx, "ip")
	assert.True(t, ok)

	hour := now.UnixMilli() / time.Hour.Milliseconds()
	assert.Equal(t, fmt.Sprintf("ratelimit:ip:%d", hour), client.keys[len(client.keys)-1])
}

func TestRedis_FailsOpen(t *testing.T) {
	r := newRedis(&fakeEvaler{err: errors.New("connection refused")}, 1, time.Hour)

	ok, err := r.Allow(context.Background(), "ip")
	assert.True(t, ok)
	assert.Error(t, err)
}
