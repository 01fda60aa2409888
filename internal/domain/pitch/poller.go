package pitch

import (
	"context"
	"sync"
	"time"

	"github.com/pitchlucy/lucy/internal/domain/blockchain"
	"github.com/pitchlucy/lucy/internal/domain/cron"
	"github.com/pitchlucy/lucy/pkg/xcontext"
)

// WhitelistPollJob reads the home chain entitlement of the wallet on every tick. The first
// positive read closes Entitled and removes the job from its manager.
type WhitelistPollJob struct {
	chain    blockchain.ChainClient
	manager  *cron.CronJobManager
	interval time.Duration

	once     sync.Once
	entitled chan struct{}
}

func NewWhitelistPollJob(
	chain blockchain.ChainClient, manager *cron.CronJobManager, interval time.Duration,
) *WhitelistPollJob {
	return &WhitelistPollJob{
		chain:    chain,
		manager:  manager,
		interval: interval,
		entitled: make(chan struct{}),
	}
}

func (job *WhitelistPollJob) Do(ctx context.Context) {
	xcontext.Logger(ctx).Debugf("Reading whitelist again...")

	count, err := job.chain.Whitelist(ctx)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot read whitelist of %s: %v", job.chain.Address(), err)
		return
	}

	if count != nil && count.Sign() > 0 {
		xcontext.Logger(ctx).Infof("Wallet %s is whitelisted", job.chain.Address())
		job.manager.Remove(job)
		job.once.Do(func() { close(job.entitled) })
	}
}

func (job *WhitelistPollJob) RunNow() bool {
	return false
}

func (job *WhitelistPollJob) Next() time.Time {
	return time.Now().Add(job.interval)
}

func (job *WhitelistPollJob) Entitled() <-chan struct{} {
	return job.entitled
}

func (job *WhitelistPollJob) Stop() {
	job.manager.Remove(job)
}
