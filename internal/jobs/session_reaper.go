package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"peerprep/interview/internal/engine"
	"peerprep/interview/internal/events"
	"peerprep/interview/internal/metrics"
	"peerprep/interview/internal/repositories"
)

// SessionReaperJob abandons in-progress sessions that have gone stale, so
// candidates who walked away do not leave sessions open forever.
type SessionReaperJob struct {
	store     repositories.SessionStore
	engine    *engine.Engine
	publisher *events.Publisher
	config    *ReaperConfig
	logger    *zap.Logger
	cron      *cron.Cron
	clock     engine.Clock
}

// ReaperConfig contains configuration for the reaper job
type ReaperConfig struct {
	Schedule string        // Cron schedule (e.g., "@every 15m")
	MaxAge   time.Duration // how long an untouched in-progress session may live
}

func NewSessionReaperJob(store repositories.SessionStore, eng *engine.Engine, publisher *events.Publisher, config *ReaperConfig, logger *zap.Logger) *SessionReaperJob {
	return &SessionReaperJob{
		store:     store,
		engine:    eng,
		publisher: publisher,
		config:    config,
		logger:    logger,
		cron:      cron.New(),
		clock:     engine.SystemClock(),
	}
}

// Start begins the scheduled reaper job
func (srj *SessionReaperJob) Start() error {
	srj.logger.Info("starting session reaper", zap.String("schedule", srj.config.Schedule))

	_, err := srj.cron.AddFunc(srj.config.Schedule, func() {
		if err := srj.RunOnce(context.Background()); err != nil {
			srj.logger.Error("session reaper run failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule reaper job: %w", err)
	}

	srj.cron.Start()
	return nil
}

// Stop stops the scheduled reaper job
func (srj *SessionReaperJob) Stop() {
	if srj.cron != nil {
		srj.cron.Stop()
		srj.logger.Info("session reaper stopped")
	}
}

// RunOnce performs a single sweep, abandoning every stale session.
func (srj *SessionReaperJob) RunOnce(ctx context.Context) error {
	cutoff := srj.clock.Now().Add(-srj.config.MaxAge)
	stale, err := srj.store.ListInProgressBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to list stale sessions: %w", err)
	}
	if len(stale) == 0 {
		return nil
	}

	srj.logger.Info("reaping stale sessions", zap.Int("count", len(stale)))
	for i := range stale {
		session := &stale[i]
		if err := srj.engine.Abandon(session); err != nil {
			srj.logger.Warn("failed to abandon stale session",
				zap.String("sessionId", session.SessionID), zap.Error(err))
			continue
		}
		if err := srj.store.Save(ctx, session); err != nil {
			// a concurrent write means the session is alive again, skip it
			srj.logger.Warn("failed to save reaped session",
				zap.String("sessionId", session.SessionID), zap.Error(err))
			continue
		}
		metrics.RecordTransition("abandoned")
		srj.publisher.PublishSessionEnded(ctx, session)
	}
	return nil
}
