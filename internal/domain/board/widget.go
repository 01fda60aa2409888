package board

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/pitchlucy/lucy/internal/common"
	"github.com/pitchlucy/lucy/pkg/xcontext"
	"github.com/pitchlucy/lucy/pkg/xredis"
)

// Widget keeps the last good response of one endpoint. It is loading until the first response
// arrives. A failed fetch is logged and the previous value is kept; nothing is retried.
type Widget[T any] struct {
	name  string
	fetch func(ctx context.Context) (T, error)

	cache    xredis.Client
	cacheTTL time.Duration
	cacheKey func() string

	mutex  sync.RWMutex
	value  T
	err    error
	loaded bool
	synced bool
	flag   bool
}

func NewWidget[T any](name string, fetch func(ctx context.Context) (T, error)) *Widget[T] {
	return &Widget[T]{
		name:     name,
		fetch:    fetch,
		cacheKey: func() string { return common.RedisKeyWidget(name) },
	}
}

// WithCache reads through redis. A refresh caused by a new flag skips the cached value.
func (w *Widget[T]) WithCache(cache xredis.Client, ttl time.Duration) *Widget[T] {
	w.cache = cache
	w.cacheTTL = ttl
	return w
}

func (w *Widget[T]) withCacheKey(key func() string) *Widget[T] {
	w.cacheKey = key
	return w
}

func (w *Widget[T]) Name() string {
	return w.name
}

// Sync fetches on the first call and whenever flag differs from the one of the previous call.
// It reports whether a fetch happened and the error of that fetch.
func (w *Widget[T]) Sync(ctx context.Context, flag bool) (bool, error) {
	w.mutex.Lock()
	if w.synced && w.flag == flag {
		w.mutex.Unlock()
		return false, nil
	}

	fresh := w.synced
	w.synced = true
	w.flag = flag
	w.mutex.Unlock()

	return true, w.refresh(ctx, fresh)
}

// Refresh fetches now, ignoring the cache.
func (w *Widget[T]) Refresh(ctx context.Context) error {
	return w.refresh(ctx, true)
}

func (w *Widget[T]) Loading() bool {
	w.mutex.RLock()
	defer w.mutex.RUnlock()

	return !w.loaded
}

func (w *Widget[T]) Value() T {
	w.mutex.RLock()
	defer w.mutex.RUnlock()

	return w.value
}

// Err is the error of the last fetch, nil once a fetch succeeds again.
func (w *Widget[T]) Err() error {
	w.mutex.RLock()
	defer w.mutex.RUnlock()

	return w.err
}

func (w *Widget[T]) refresh(ctx context.Context, fresh bool) error {
	key := w.cacheKey()
	if w.cache != nil && !fresh {
		var cached T
		err := w.cache.GetObj(ctx, key, &cached)
		if err == nil {
			w.set(cached)
			return nil
		}

		if !errors.Is(err, xredis.ErrMiss) {
			xcontext.Logger(ctx).Warnf("Cannot read cache of widget %s: %v", w.name, err)
		}
	}

	value, err := w.fetch(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Error fetching %s: %v", w.name, err)

		// The first failure ends the loading state with an empty value.
		w.mutex.Lock()
		w.loaded = true
		w.err = err
		w.mutex.Unlock()
		return err
	}

	w.set(value)

	if w.cache != nil {
		if err := w.cache.SetObj(ctx, key, value, w.cacheTTL); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot cache widget %s: %v", w.name, err)
		}
	}

	return nil
}

func (w *Widget[T]) set(value T) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	w.value = value
	w.err = nil
	w.loaded = true
}
