package engine

import (
	"math"
	"time"

	"github.com/google/uuid"

	"peerprep/interview/internal/models"
)

// Engine owns the lifecycle of one interview session: question sequencing,
// pause/resume timing, answer and evaluation recording, and completion.
// Every operation works on an in-memory session the caller loaded; persistence
// is the caller's job afterwards.
type Engine struct {
	clock Clock
}

func NewEngine(clock Clock) *Engine {
	if clock == nil {
		clock = realClock{}
	}
	return &Engine{clock: clock}
}

// Create builds a new session in the created state from a validated setup and
// the generated question set.
func (e *Engine) Create(userID string, setup models.InterviewSetup, questions []models.Question) (*models.InterviewSession, error) {
	if violations := models.ValidateSetup(setup); len(violations) > 0 {
		return nil, &SetupError{Violations: violations}
	}
	if len(questions) == 0 {
		return nil, &SetupError{Violations: []string{"at least one question is required"}}
	}

	now := e.clock.Now()
	for i := range questions {
		questions[i].OrderIndex = i
		if questions[i].QuestionID == "" {
			questions[i].QuestionID = uuid.New().String()
		}
	}

	session := &models.InterviewSession{
		SessionID:   uuid.New().String(),
		UserID:      userID,
		InterviewID: uuid.New().String(),
		Questions:   questions,
		SessionMetadata: models.SessionMetadata{
			JobRole:         setup.JobRole,
			CustomJobRole:   setup.CustomJobRole,
			ExperienceLevel: setup.ExperienceLevel,
			SelectedSkills:  setup.Skills,
			InterviewType:   setup.InterviewType,
			Difficulty:      setup.Difficulty,
			Duration:        setup.Duration,
			QuestionCount:   len(questions),
		},
		Status:    models.StatusCreated,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return session, nil
}

// Start transitions created -> in_progress and records the session start time.
func (e *Engine) Start(s *models.InterviewSession) error {
	if s.Status != models.StatusCreated {
		return ErrInvalidState
	}
	now := e.clock.Now()
	s.Status = models.StatusInProgress
	s.SessionMetadata.StartTime = &now
	s.UpdatedAt = now
	return nil
}

// CurrentQuestion returns the question at the current index, or nil when the
// index has run past the question list.
func (e *Engine) CurrentQuestion(s *models.InterviewSession) *models.Question {
	idx := s.SessionMetadata.CurrentQuestionIndex
	if idx < 0 || idx >= len(s.Questions) {
		return nil
	}
	return &s.Questions[idx]
}

// RecordAnswer attaches an answer to the question at index. Resubmission
// overwrites the previous answer and clears its evaluation, so a replaced
// answer always gets re-evaluated.
func (e *Engine) RecordAnswer(s *models.InterviewSession, index int, answer models.Answer) error {
	if index < 0 || index >= len(s.Questions) {
		return ErrQuestionNotFound
	}
	if answer.EndTime.Before(answer.StartTime) {
		return ErrInvalidAnswer
	}

	q := &s.Questions[index]
	q.Answer = &answer
	q.TimeTaken = int(math.Round(answer.EndTime.Sub(answer.StartTime).Seconds()))
	q.IsCompleted = true
	q.Evaluation = nil
	q.IsEvaluated = false
	s.UpdatedAt = e.clock.Now()
	return nil
}

// RecordEvaluation attaches (or overwrites) the evaluation for an answered
// question. Evaluating a question that has no answer is rejected.
func (e *Engine) RecordEvaluation(s *models.InterviewSession, index int, eval models.Evaluation) error {
	if index < 0 || index >= len(s.Questions) {
		return ErrQuestionNotFound
	}
	q := &s.Questions[index]
	if q.Answer == nil {
		return ErrNoAnswer
	}

	now := e.clock.Now()
	if eval.EvaluatedAt.IsZero() {
		eval.EvaluatedAt = now
	}
	q.Evaluation = &eval
	q.IsEvaluated = true
	s.UpdatedAt = now
	return nil
}

// Advance moves to the next question and reports whether it moved. At the
// last question it returns false and leaves the index untouched; completing
// the session is a separate, explicit call.
func (e *Engine) Advance(s *models.InterviewSession) bool {
	if s.SessionMetadata.CurrentQuestionIndex < len(s.Questions)-1 {
		s.SessionMetadata.CurrentQuestionIndex++
		s.UpdatedAt = e.clock.Now()
		return true
	}
	return false
}

// Pause marks the session paused. Pausing an already-paused session is a
// no-op so a retry cannot double-count pause time.
func (e *Engine) Pause(s *models.InterviewSession) {
	if s.SessionMetadata.IsPaused {
		return
	}
	now := e.clock.Now()
	s.SessionMetadata.IsPaused = true
	s.SessionMetadata.PausedAt = &now
	s.UpdatedAt = now
}

// Resume accrues the elapsed pause time (floored to whole seconds) exactly
// once and clears the paused marker. No-op when the session is not paused.
func (e *Engine) Resume(s *models.InterviewSession) {
	meta := &s.SessionMetadata
	if !meta.IsPaused || meta.PausedAt == nil {
		return
	}
	now := e.clock.Now()
	meta.PauseDuration += int(now.Sub(*meta.PausedAt) / time.Second)
	meta.IsPaused = false
	meta.ResumedAt = &now
	meta.PausedAt = nil
	s.UpdatedAt = now
}

// Complete transitions in_progress -> completed, stamps the end time and
// computes the overall results.
func (e *Engine) Complete(s *models.InterviewSession) error {
	if s.Status != models.StatusInProgress {
		return ErrInvalidState
	}
	now := e.clock.Now()
	s.Status = models.StatusCompleted
	s.SessionMetadata.EndTime = &now
	if start := s.SessionMetadata.StartTime; start != nil {
		elapsed := int(now.Sub(*start).Seconds()) - s.SessionMetadata.PauseDuration
		if elapsed < 0 {
			elapsed = 0
		}
		s.SessionMetadata.TotalTimeTaken = elapsed
	}
	s.OverallResults = ComputeOverallResults(s)
	s.UpdatedAt = now
	return nil
}

// Abandon moves any non-terminal session to abandoned.
func (e *Engine) Abandon(s *models.InterviewSession) error {
	if s.Status.Terminal() {
		return ErrInvalidState
	}
	now := e.clock.Now()
	s.Status = models.StatusAbandoned
	s.SessionMetadata.EndTime = &now
	s.UpdatedAt = now
	return nil
}
