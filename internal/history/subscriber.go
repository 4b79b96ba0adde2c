package history

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"peerprep/interview/internal/events"
)

// Subscriber consumes session ended events from Redis and materializes them
// into the history table.
type Subscriber struct {
	rdb    *redis.Client
	repo   *Repository
	logger *zap.Logger
}

func NewSubscriber(redisAddr string, repo *Repository, logger *zap.Logger) *Subscriber {
	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})
	return &Subscriber{rdb: rdb, repo: repo, logger: logger}
}

// Run blocks consuming events until the context is cancelled.
func (s *Subscriber) Run(ctx context.Context) {
	subscriber := s.rdb.Subscribe(ctx, events.SessionEndedChannel)
	defer subscriber.Close()
	ch := subscriber.Channel()

	s.logger.Info("history subscriber started", zap.String("channel", events.SessionEndedChannel))

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			s.handle(msg.Payload)
		}
	}
}

func (s *Subscriber) handle(payload string) {
	var event events.SessionEndedEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		s.logger.Error("failed to unmarshal session ended event", zap.Error(err))
		return
	}

	startedAt, err := time.Parse(time.RFC3339, event.StartedAt)
	if err != nil {
		startedAt = time.Now().UTC()
	}
	endedAt, err := time.Parse(time.RFC3339, event.EndedAt)
	if err != nil {
		endedAt = time.Now().UTC()
	}

	record := &InterviewHistory{
		SessionID:            event.SessionID,
		UserID:               event.UserID,
		JobRole:              event.JobRole,
		InterviewType:        event.InterviewType,
		Difficulty:           event.Difficulty,
		Status:               event.Status,
		QuestionCount:        event.QuestionCount,
		AverageScore:         event.AverageScore,
		CompletionPercentage: event.CompletionPercentage,
		DurationSec:          event.DurationSec,
		StartedAt:            startedAt,
		EndedAt:              endedAt,
	}

	if err := s.repo.Create(record); err != nil {
		s.logger.Error("failed to save interview history",
			zap.String("sessionId", event.SessionID), zap.Error(err))
		return
	}
	s.logger.Info("saved interview history", zap.String("sessionId", event.SessionID))
}

// Close releases the Redis connection.
func (s *Subscriber) Close() error {
	if s == nil || s.rdb == nil {
		return nil
	}
	return s.rdb.Close()
}
