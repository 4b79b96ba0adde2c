package repositories

import (
	"context"
	"sync"
	"time"

	"peerprep/interview/internal/models"
)

// MemoryStore is an in-memory SessionStore used for tests and local runs
// without a database.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*models.InterviewSession
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*models.InterviewSession)}
}

func (s *MemoryStore) Insert(_ context.Context, session *models.InterviewSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.SessionID] = cloneSession(session)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) (*models.InterviewSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneSession(stored), nil
}

func (s *MemoryStore) Save(_ context.Context, session *models.InterviewSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.sessions[session.SessionID]
	if !ok {
		return ErrNotFound
	}
	if stored.Version != session.Version {
		return ErrConflict
	}
	session.Version++
	s.sessions[session.SessionID] = cloneSession(session)
	return nil
}

func (s *MemoryStore) ListByUser(_ context.Context, userID string) ([]models.InterviewSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.InterviewSession
	for _, stored := range s.sessions {
		if stored.UserID == userID {
			out = append(out, *cloneSession(stored))
		}
	}
	return out, nil
}

func (s *MemoryStore) ListInProgressBefore(_ context.Context, cutoff time.Time) ([]models.InterviewSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.InterviewSession
	for _, stored := range s.sessions {
		if stored.Status == models.StatusInProgress && stored.UpdatedAt.Before(cutoff) {
			out = append(out, *cloneSession(stored))
		}
	}
	return out, nil
}

// cloneSession copies a session so callers never alias stored state.
func cloneSession(s *models.InterviewSession) *models.InterviewSession {
	c := *s
	c.Questions = make([]models.Question, len(s.Questions))
	copy(c.Questions, s.Questions)
	for i := range c.Questions {
		if a := c.Questions[i].Answer; a != nil {
			answer := *a
			c.Questions[i].Answer = &answer
		}
		if e := c.Questions[i].Evaluation; e != nil {
			evaluation := *e
			c.Questions[i].Evaluation = &evaluation
		}
	}
	c.SessionMetadata.StartTime = cloneTime(s.SessionMetadata.StartTime)
	c.SessionMetadata.EndTime = cloneTime(s.SessionMetadata.EndTime)
	c.SessionMetadata.PausedAt = cloneTime(s.SessionMetadata.PausedAt)
	c.SessionMetadata.ResumedAt = cloneTime(s.SessionMetadata.ResumedAt)
	if s.OverallResults != nil {
		results := *s.OverallResults
		c.OverallResults = &results
	}
	return &c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
