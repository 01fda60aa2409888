package cron

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pitchlucy/lucy/pkg/testutil"
	"github.com/stretchr/testify/require"
)

type countingJob struct {
	runNow   bool
	interval time.Duration
	count    atomic.Int32
	onDo     func(ctx context.Context, n int32)
}

func (job *countingJob) Do(ctx context.Context) {
	n := job.count.Add(1)
	if job.onDo != nil {
		job.onDo(ctx, n)
	}
}

func (job *countingJob) RunNow() bool {
	return job.runNow
}

func (job *countingJob) Next() time.Time {
	return time.Now().Add(job.interval)
}

func TestCronJobManager_RunsRepeatedly(t *testing.T) {
	m := NewCronJobManager(testutil.MockContext())
	defer m.Cancel()

	job := &countingJob{runNow: true, interval: time.Millisecond}
	m.Register(job)

	require.Eventually(t, func() bool { return job.count.Load() >= 3 }, time.Second, time.Millisecond)
	require.True(t, m.Running(job))
}

func TestCronJobManager_DelayedStart(t *testing.T) {
	m := NewCronJobManager(testutil.MockContext())
	defer m.Cancel()

	job := &countingJob{interval: 50 * time.Millisecond}
	m.Register(job)

	require.Equal(t, int32(0), job.count.Load())
	require.Eventually(t, func() bool { return job.count.Load() >= 1 }, time.Second, time.Millisecond)
}

func TestCronJobManager_RemoveFromDo(t *testing.T) {
	m := NewCronJobManager(testutil.MockContext())
	defer m.Cancel()

	job := &countingJob{runNow: true, interval: time.Millisecond}
	job.onDo = func(_ context.Context, n int32) {
		if n == 2 {
			m.Remove(job)
		}
	}
	m.Register(job)

	require.Eventually(t, func() bool { return !m.Running(job) }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	require.Equal(t, int32(2), job.count.Load())
}

func TestCronJobManager_CancelStopsEverything(t *testing.T) {
	m := NewCronJobManager(testutil.MockContext())

	job := &countingJob{runNow: true, interval: time.Millisecond}
	job.onDo = func(ctx context.Context, _ int32) {
		select {
		case <-ctx.Done():
		case <-time.After(5 * time.Millisecond):
		}
	}
	m.Register(job)

	require.Eventually(t, func() bool { return job.count.Load() >= 1 }, time.Second, time.Millisecond)
	m.Cancel()

	after := job.count.Load()
	time.Sleep(20 * time.Millisecond)
	require.Equal(t, after, job.count.Load())
	require.False(t, m.Running(job))

	// Registering on a cancelled manager is a no-op.
	other := &countingJob{runNow: true, interval: time.Millisecond}
	m.Register(other)
	time.Sleep(10 * time.Millisecond)
	require.Equal(t, int32(0), other.count.Load())
}

func TestCronJobManager_WaitReturnsOnParentCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(testutil.MockContext())
	m := NewCronJobManager(ctx)
	m.Register(&countingJob{runNow: true, interval: time.Millisecond})

	done := make(chan struct{})
	go func() {
		m.Wait()
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after cancel")
	}
}
