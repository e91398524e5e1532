// Package jobs runs background work on a cron schedule.
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Warmer refreshes cached rankings.
type Warmer interface {
	Warm(ctx context.Context) error
}

type Scheduler struct {
	c   *cron.Cron
	log *zap.Logger
}

func NewScheduler(l *zap.Logger) *Scheduler {
	if l == nil {
		l = zap.NewNop()
	}
	cl := cronLogger{l.Named("cron").Sugar()}
	return &Scheduler{
		c: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		log: l,
	}
}

// AddStatsWarmer schedules w on spec. Each run gets its own timeout.
func (s *Scheduler) AddStatsWarmer(spec string, w Warmer, timeout time.Duration) error {
	_, err := s.c.AddJob(spec, warmJob(w, timeout, s.log))
	if err != nil {
		return err
	}
	s.log.Info("stats warmer scheduled", zap.String("spec", spec))
	return nil
}

func (s *Scheduler) Start() { s.c.Start() }

// Stop waits for running jobs or until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.c.Stop().Done():
	case <-ctx.Done():
		s.log.Warn("cron stop timed out")
	}
}

func warmJob(w Warmer, timeout time.Duration, l *zap.Logger) cron.FuncJob {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		start := time.Now()
		if err := w.Warm(ctx); err != nil {
			l.Warn("stats warm failed", zap.Error(err))
			return
		}
		l.Debug("stats warmed", zap.Duration("took", time.Since(start)))
	}
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct{ s *zap.SugaredLogger }

func (c cronLogger) Info(msg string, kv ...interface{}) { c.s.Debugw(msg, kv...) }

func (c cronLogger) Error(err error, msg string, kv ...interface{}) {
	c.s.Errorw(msg, append(kv, "error", err)...)
}
