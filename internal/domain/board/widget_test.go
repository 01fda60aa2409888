package board

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pitchlucy/lucy/internal/common"
	"github.com/pitchlucy/lucy/pkg/testutil"
	"github.com/stretchr/testify/require"
)

type countingFetch struct {
	calls  int
	values []int
	err    error
}

func (f *countingFetch) fetch(ctx context.Context) (int, error) {
	f.calls++
	if f.err != nil {
		return 0, f.err
	}

	return f.values[f.calls-1], nil
}

func requireSync[T any](t *testing.T, ctx context.Context, w *Widget[T], flag, fetched bool) {
	t.Helper()

	ok, err := w.Sync(ctx, flag)
	require.NoError(t, err)
	require.Equal(t, fetched, ok)
}

func Test_Widget_Sync(t *testing.T) {
	ctx := testutil.MockContext()
	f := &countingFetch{values: []int{1, 2, 3}}
	w := NewWidget("numbers", f.fetch)

	require.True(t, w.Loading())

	requireSync(t, ctx, w, false, true)
	require.False(t, w.Loading())
	require.Equal(t, 1, w.Value())

	// Same flag, nothing to do.
	requireSync(t, ctx, w, false, false)
	require.Equal(t, 1, f.calls)

	requireSync(t, ctx, w, true, true)
	require.Equal(t, 2, w.Value())

	requireSync(t, ctx, w, true, false)
	requireSync(t, ctx, w, false, true)
	require.Equal(t, 3, w.Value())
	require.Equal(t, 3, f.calls)
}

func Test_Widget_FailureKeepsPreviousValue(t *testing.T) {
	ctx := testutil.MockContext()
	f := &countingFetch{values: []int{7}}
	w := NewWidget("numbers", f.fetch)

	require.NoError(t, w.Refresh(ctx))
	require.Equal(t, 7, w.Value())

	f.err = errors.New("backend down")
	require.Error(t, w.Refresh(ctx))
	require.Equal(t, 7, w.Value())
	require.False(t, w.Loading())
	require.ErrorIs(t, w.Err(), f.err)

	f.err = nil
	f.values = append(f.values, 0, 8)
	require.NoError(t, w.Refresh(ctx))
	require.Equal(t, 8, w.Value())
	require.NoError(t, w.Err())
}

func Test_Widget_FirstFailureEndsLoading(t *testing.T) {
	ctx := testutil.MockContext()
	w := NewWidget("numbers", (&countingFetch{err: errors.New("boom")}).fetch)

	ok, err := w.Sync(ctx, false)
	require.True(t, ok)
	require.EqualError(t, err, "boom")
	require.EqualError(t, w.Err(), "boom")

	ok, err = w.Sync(ctx, false)
	require.False(t, ok)
	require.NoError(t, err)
	require.False(t, w.Loading())
	require.Equal(t, 0, w.Value())
}

func Test_Widget_Cache(t *testing.T) {
	ctx := testutil.MockContext()
	cache := testutil.NewMockRedisClient()
	require.NoError(t, cache.SetObj(ctx, common.RedisKeyWidget("numbers"), 42, time.Minute))

	f := &countingFetch{values: []int{1, 2}}
	w := NewWidget("numbers", f.fetch).WithCache(cache, time.Minute)

	// The first sync is served from the cache.
	requireSync(t, ctx, w, false, true)
	require.Equal(t, 42, w.Value())
	require.Equal(t, 0, f.calls)

	// A new flag means fresh data, which is written back.
	requireSync(t, ctx, w, true, true)
	require.Equal(t, 1, w.Value())
	require.Equal(t, 1, f.calls)

	var cached int
	require.NoError(t, cache.GetObj(ctx, common.RedisKeyWidget("numbers"), &cached))
	require.Equal(t, 1, cached)
}

func Test_Widget_CacheMissFetches(t *testing.T) {
	ctx := testutil.MockContext()
	cache := testutil.NewMockRedisClient()
	f := &countingFetch{values: []int{5}}
	w := NewWidget("numbers", f.fetch).WithCache(cache, time.Minute)

	requireSync(t, ctx, w, false, true)
	require.Equal(t, 5, w.Value())
	require.Equal(t, 1, f.calls)

	ok, err := cache.Exist(ctx, common.RedisKeyWidget("numbers"))
	require.NoError(t, err)
	require.True(t, ok)
}
