package cron

import (
	"context"
	"sync"
	"time"

	"github.com/pitchlucy/lucy/pkg/xcontext"
)

type CronJob interface {
	Do(context.Context)
	RunNow() bool
	Next() time.Time
}

// CronJobManager runs each registered job at the time the job asks for, until the job is removed
// or the manager is cancelled. Jobs may be registered while others are running.
type CronJobManager struct {
	ctx    context.Context
	cancel context.CancelFunc

	mutex    sync.Mutex
	inflight sync.WaitGroup
	jobs     map[CronJob]*time.Timer
}

func NewCronJobManager(ctx context.Context) *CronJobManager {
	ctx, cancel := context.WithCancel(ctx)
	return &CronJobManager{ctx: ctx, cancel: cancel, jobs: make(map[CronJob]*time.Timer)}
}

func (m *CronJobManager) Register(job CronJob) {
	m.mutex.Lock()
	if m.ctx.Err() != nil {
		m.mutex.Unlock()
		xcontext.Logger(m.ctx).Warnf("Register %T on a cancelled manager", job)
		return
	}

	m.jobs[job] = nil
	m.mutex.Unlock()

	if job.RunNow() {
		go m.run(job)
	} else {
		m.schedule(job)
	}
}

// Remove stops future runs of job. A run already in progress is not interrupted, so a job may
// remove itself from Do.
func (m *CronJobManager) Remove(job CronJob) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if timer := m.jobs[job]; timer != nil {
		timer.Stop()
	}
	delete(m.jobs, job)
}

func (m *CronJobManager) Running(job CronJob) bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	_, ok := m.jobs[job]
	return ok
}

// Cancel stops every job and waits for the runs in progress, whose context is cancelled, to
// return. No job runs after Cancel returns.
func (m *CronJobManager) Cancel() {
	m.mutex.Lock()
	m.cancel()
	for _, timer := range m.jobs {
		if timer != nil {
			timer.Stop()
		}
	}

	// Clear all jobs to not schedule them again.
	m.jobs = make(map[CronJob]*time.Timer)
	m.mutex.Unlock()

	m.inflight.Wait()
}

// Wait blocks until the manager is cancelled or its parent context is done.
func (m *CronJobManager) Wait() {
	<-m.ctx.Done()
	m.Cancel()
	xcontext.Logger(m.ctx).Infof("Cron job manager stopped")
}

func (m *CronJobManager) run(job CronJob) {
	m.mutex.Lock()
	if _, ok := m.jobs[job]; !ok || m.ctx.Err() != nil {
		m.mutex.Unlock()
		return
	}
	m.inflight.Add(1)
	m.mutex.Unlock()
	defer m.inflight.Done()

	xcontext.Logger(m.ctx).Debugf("%T is running...", job)
	job.Do(m.ctx)
	xcontext.Logger(m.ctx).Debugf("%T ok", job)

	m.schedule(job)
}

func (m *CronJobManager) schedule(job CronJob) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	// Only schedule jobs which existed in job list.
	if _, ok := m.jobs[job]; ok && m.ctx.Err() == nil {
		m.jobs[job] = time.AfterFunc(time.Until(job.Next()), func() { m.run(job) })
	}
}
