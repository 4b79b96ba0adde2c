package repositories

import (
	"context"
	"errors"
	"time"

	"peerprep/interview/internal/models"
)

var (
	// ErrNotFound means no session exists for the given id.
	ErrNotFound = errors.New("session not found")
	// ErrConflict means the session changed since it was loaded.
	ErrConflict = errors.New("session version conflict")
)

// SessionStore persists interview sessions. Save uses optimistic concurrency:
// it only writes when the stored version matches the session's version, then
// bumps the version.
type SessionStore interface {
	Insert(ctx context.Context, session *models.InterviewSession) error
	Get(ctx context.Context, sessionID string) (*models.InterviewSession, error)
	Save(ctx context.Context, session *models.InterviewSession) error
	ListByUser(ctx context.Context, userID string) ([]models.InterviewSession, error)
	ListInProgressBefore(ctx context.Context, cutoff time.Time) ([]models.InterviewSession, error)
}
