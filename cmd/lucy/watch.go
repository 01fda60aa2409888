package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pitchlucy/lucy/internal/domain/board"
	"github.com/pitchlucy/lucy/internal/domain/cron"
	"github.com/pitchlucy/lucy/internal/model"
	"github.com/urfave/cli/v2"
)

const defaultWatchInterval = 15 * time.Second

// dashboardJob redraws the board on every run. Each run flips the refresh flag, so every widget
// reads fresh data except on the first run, which may be served by the cache.
type dashboardJob struct {
	out      io.Writer
	interval time.Duration
	flag     bool

	bounty      *board.Widget[string]
	leaderboard *board.Widget[[]model.LeaderboardEntry]
	metrics     *board.Widget[model.Stats]
	treasury    *board.Widget[board.Treasury]
	lastPitches *board.Widget[[]board.LastPitch]
}

func (s *srv) newDashboardJob(interval time.Duration) *dashboardJob {
	return &dashboardJob{
		out:         s.out,
		interval:    interval,
		bounty:      cached(s, board.NewBountyWidget(s.backend)),
		leaderboard: cached(s, board.NewLeaderboardWidget(s.backend)),
		metrics:     cached(s, board.NewMetricsWidget(s.backend)),
		treasury:    cached(s, board.NewTreasuryWidget(s.backend)),
		lastPitches: cached(s, board.NewLastPitchesWidget(s.backend)),
	}
}

type syncer interface {
	Sync(ctx context.Context, flag bool) (bool, error)
}

func (j *dashboardJob) Do(ctx context.Context) {
	j.flag = !j.flag
	// A failed widget keeps its last value on screen; the failure is logged by the widget.
	for _, w := range []syncer{j.bounty, j.leaderboard, j.metrics, j.treasury, j.lastPitches} {
		_, _ = w.Sync(ctx, j.flag)
	}

	if ctx.Err() != nil {
		return
	}

	j.render()
}

func (j *dashboardJob) RunNow() bool {
	return true
}

func (j *dashboardJob) Next() time.Time {
	return time.Now().Add(j.interval)
}

func (j *dashboardJob) render() {
	fmt.Fprintf(j.out, "\n==== Pitch Lucy, %s ====\n", time.Now().Format("15:04:05"))
	renderBounty(j.out, j.bounty.Value())

	fmt.Fprintln(j.out, "\nWinners")
	renderWinners(j.out, board.Winners(j.leaderboard.Value()))

	fmt.Fprintln(j.out, "\nMetrics")
	renderStats(j.out, j.metrics.Value())

	fmt.Fprintln(j.out)
	renderTreasury(j.out, j.treasury.Value())

	fmt.Fprintln(j.out, "\nLast pitches")
	renderLastPitches(j.out, j.lastPitches.Value())
}

func (s *srv) startWatch(c *cli.Context) error {
	interval := c.Duration("interval")
	if interval <= 0 {
		interval = defaultWatchInterval
	}

	cronManager := cron.NewCronJobManager(s.ctx)
	cronManager.Register(s.newDashboardJob(interval))
	cronManager.Wait()
	return nil
}
