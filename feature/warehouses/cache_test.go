package warehouses

import (
	"context"
	"errors"
	"testing"
	"time"

	"stock-reconciler/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingLoader struct {
	calls int
	err   error
}

func (l *countingLoader) load(context.Context) (reconcile.StoreMapping, error) {
	l.calls++
	if l.err != nil {
		return nil, l.err
	}
	return reconcile.StoreMapping{"3": "34"}, nil
}

func TestCache_Get(t *testing.T) {
	ctx := context.Background()
	loader := &countingLoader{}
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	cache := NewCache(time.Minute, loader.load)
	cache.now = func() time.Time { return now }

	m, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "34", m["3"])

	_, _ = cache.Get(ctx)
	assert.Equal(t, 1, loader.calls, "fresh value is served from cache")

	now = now.Add(2 * time.Minute)
	_, _ = cache.Get(ctx)
	assert.Equal(t, 2, loader.calls, "expired value is reloaded")

	cache.Invalidate()
	_, _ = cache.Get(ctx)
	assert.Equal(t, 3, loader.calls)
}

func TestCache_Disabled(t *testing.T) {
	loader := &countingLoader{}
	cache := NewCache(0, loader.load)

	_, _ = cache.Get(context.Background())
	_, _ = cache.Get(context.Background())
	assert.Equal(t, 2, loader.calls)
}

func TestCache_Error(t *testing.T) {
	loader := &countingLoader{err: errors.New("down")}
	cache := NewCache(time.Minute, loader.load)

	_, err := cache.Get(context.Background())
	assert.Error(t, err)

	loader.err = nil
	m, err := cache.Get(context.Background())
	require.NoError(t, err, "errors are not cached")
	assert.Len(t, m, 1)
}

func TestCache_InvalidateDuringLoad(t *testing.T) {
	ctx := context.Background()
	started := make(chan struct{})
	release := make(chan struct{})
	calls := 0
	cache := NewCache(time.Minute, func(context.Context) (reconcile.StoreMapping, error) {
		calls++
		if calls == 1 {
			close(started)
			<-release
			return reconcile.StoreMapping{"3": "OLD"}, nil
		}
		return reconcile.StoreMapping{"3": "NEW"}, nil
	})

	done := make(chan reconcile.StoreMapping)
	go func() {
		m, _ := cache.Get(ctx)
		done <- m
	}()

	<-started
	cache.Invalidate()
	close(release)
	assert.Equal(t, "OLD", (<-done)["3"], "the in-flight caller still gets its result")

	m, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "NEW", m["3"], "a load overtaken by Invalidate is not cached")
	assert.Equal(t, 2, calls)
}
