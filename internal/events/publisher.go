package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"peerprep/interview/internal/models"
)

// SessionEndedChannel carries one event per completed or abandoned session.
const SessionEndedChannel = "interview_session_ended"

// SessionEndedEvent is the payload published when a session reaches a
// terminal state.
type SessionEndedEvent struct {
	SessionID            string  `json:"sessionId"`
	UserID               string  `json:"userId"`
	JobRole              string  `json:"jobRole"`
	InterviewType        string  `json:"interviewType"`
	Difficulty           string  `json:"difficulty"`
	Status               string  `json:"status"`
	QuestionCount        int     `json:"questionCount"`
	AverageScore         float64 `json:"averageScore"`
	CompletionPercentage float64 `json:"completionPercentage"`
	DurationSec          int     `json:"durationSeconds"`
	StartedAt            string  `json:"startedAt,omitempty"`
	EndedAt              string  `json:"endedAt,omitempty"`
}

// Publisher pushes session lifecycle events to Redis. A nil Publisher is
// valid and publishes nothing, so callers need no branching when eventing
// is disabled.
type Publisher struct {
	rdb    *redis.Client
	logger *zap.Logger
}

func NewPublisher(redisAddr string, logger *zap.Logger) *Publisher {
	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})
	return &Publisher{rdb: rdb, logger: logger}
}

// PublishSessionEnded emits the terminal-state event for a session.
func (p *Publisher) PublishSessionEnded(ctx context.Context, session *models.InterviewSession) {
	if p == nil || p.rdb == nil {
		return
	}

	meta := session.SessionMetadata
	event := SessionEndedEvent{
		SessionID:     session.SessionID,
		UserID:        session.UserID,
		JobRole:       meta.JobRole,
		InterviewType: string(meta.InterviewType),
		Difficulty:    meta.Difficulty,
		Status:        string(session.Status),
		QuestionCount: meta.QuestionCount,
		DurationSec:   meta.TotalTimeTaken,
	}
	if session.OverallResults != nil {
		event.AverageScore = session.OverallResults.AverageScore
		event.CompletionPercentage = session.OverallResults.CompletionPercentage
	}
	if meta.StartTime != nil {
		event.StartedAt = meta.StartTime.Format(time.RFC3339)
	}
	if meta.EndTime != nil {
		event.EndedAt = meta.EndTime.Format(time.RFC3339)
	}

	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("failed to marshal session ended event", zap.Error(err))
		return
	}
	if err := p.rdb.Publish(ctx, SessionEndedChannel, payload).Err(); err != nil {
		p.logger.Error("failed to publish session ended event",
			zap.String("sessionId", session.SessionID), zap.Error(err))
	}
}

// Close releases the Redis connection.
func (p *Publisher) Close() error {
	if p == nil || p.rdb == nil {
		return nil
	}
	return p.rdb.Close()
}
