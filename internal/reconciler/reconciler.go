package reconciler

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/GlebRadaev/duelhub/internal/domain"
)

//go:generate mockgen -source=reconciler.go -destination=mock_reconciler.go -package=reconciler

type SessionRepo interface {
	FindByStatus(ctx context.Context, statuses ...domain.SessionStatus) ([]domain.LiveSession, error)
}

type ScoreSyncer interface {
	Reconcile(ctx context.Context, session domain.LiveSession) (bool, error)
}

const concurrency = 10

// Service periodically copies cached duel scores into the durable session
// rows of running duels, closing gaps left by failed durable syncs.
type Service struct {
	sessions       SessionRepo
	scores         ScoreSyncer
	updateInterval time.Duration
	synced         atomic.Int64
}

func New(sessions SessionRepo, scores ScoreSyncer, interval time.Duration) *Service {
	if interval <= 0 {
		interval = time.Second * 30
	}
	return &Service{
		sessions:       sessions,
		scores:         scores,
		updateInterval: interval,
	}
}

// Start schedules passes every interval until ctx is done. A pass still
// running when the next one is due makes the scheduler skip that tick.
func (s *Service) Start(ctx context.Context) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cronLogger{})))
	c.Schedule(cron.Every(s.updateInterval), cron.FuncJob(func() {
		s.ReconcileOnce(ctx)
	}))
	c.Start()
	zap.L().Info("Score reconciler started", zap.Duration("interval", s.updateInterval))

	<-ctx.Done()
	<-c.Stop().Done()
	zap.L().Info("Context canceled, reconciler stopped")
}

// ReconcileOnce runs a single pass and returns how many sessions were rewritten.
func (s *Service) ReconcileOnce(ctx context.Context) int {
	sessions, err := s.sessions.FindByStatus(ctx, domain.StatusActive, domain.StatusPaused)
	if err != nil {
		zap.L().Error("Failed to fetch running sessions", zap.Error(err))
		return 0
	}

	var written atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, session := range sessions {
		session := session
		g.Go(func() error {
			changed, err := s.scores.Reconcile(gctx, session)
			if err != nil {
				zap.L().Warn("Score reconciliation failed", zap.Int("sessionID", session.ID), zap.Error(err))
				return nil
			}
			if changed {
				written.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	n := written.Load()
	s.synced.Add(n)
	return int(n)
}

func (s *Service) Synced() int64 {
	return s.synced.Load()
}

// cronLogger routes scheduler messages into the global zap logger.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	zap.S().Debugw(msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	zap.S().Errorw(msg, append(keysAndValues, "error", err)...)
}
