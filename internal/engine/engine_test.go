package engine

import (
	"errors"
	"testing"
	"time"

	"peerprep/interview/internal/models"
)

// fakeClock returns a fixed instant that tests can move forward.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func validSetup() models.InterviewSetup {
	return models.InterviewSetup{
		JobRole:         "Backend Developer",
		Skills:          []string{"Go", "PostgreSQL"},
		ExperienceLevel: "Mid Level (2-5 years)",
		InterviewType:   models.InterviewTechnical,
		Difficulty:      "medium",
		Duration:        30,
	}
}

func makeQuestions(n int) []models.Question {
	questions := make([]models.Question, n)
	for i := range questions {
		questions[i] = models.Question{
			Text:       "question",
			Difficulty: models.Medium,
			Skills:     []string{"Go"},
			TimeLimit:  300,
		}
	}
	return questions
}

func newTestSession(t *testing.T, e *Engine, n int) *models.InterviewSession {
	t.Helper()
	session, err := e.Create("user-1", validSetup(), makeQuestions(n))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	return session
}

func TestCreate(t *testing.T) {
	e := NewEngine(newFakeClock())
	session := newTestSession(t, e, 3)

	if session.Status != models.StatusCreated {
		t.Fatalf("expected status created, got %s", session.Status)
	}
	if session.SessionMetadata.CurrentQuestionIndex != 0 {
		t.Fatalf("expected index 0, got %d", session.SessionMetadata.CurrentQuestionIndex)
	}
	if session.SessionMetadata.IsPaused {
		t.Fatal("new session must not be paused")
	}
	if session.SessionMetadata.QuestionCount != 3 {
		t.Fatalf("expected question count 3, got %d", session.SessionMetadata.QuestionCount)
	}
	for i, q := range session.Questions {
		if q.OrderIndex != i {
			t.Fatalf("question %d has order index %d", i, q.OrderIndex)
		}
		if q.QuestionID == "" {
			t.Fatalf("question %d has empty id", i)
		}
		if q.Answer != nil || q.Evaluation != nil {
			t.Fatalf("question %d should start without answer or evaluation", i)
		}
	}
}

func TestCreate_EmptyQuestions(t *testing.T) {
	e := NewEngine(newFakeClock())
	_, err := e.Create("user-1", validSetup(), nil)
	var setupErr *SetupError
	if !errors.As(err, &setupErr) {
		t.Fatalf("expected SetupError, got %v", err)
	}
}

func TestCreate_InvalidSetup(t *testing.T) {
	e := NewEngine(newFakeClock())
	setup := validSetup()
	setup.JobRole = ""
	setup.Skills = nil

	_, err := e.Create("user-1", setup, makeQuestions(1))
	var setupErr *SetupError
	if !errors.As(err, &setupErr) {
		t.Fatalf("expected SetupError, got %v", err)
	}
	if len(setupErr.Violations) != 2 {
		t.Fatalf("expected 2 violations, got %v", setupErr.Violations)
	}
}

func TestStart(t *testing.T) {
	clock := newFakeClock()
	e := NewEngine(clock)
	session := newTestSession(t, e, 2)

	if err := e.Start(session); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	if session.Status != models.StatusInProgress {
		t.Fatalf("expected in_progress, got %s", session.Status)
	}
	if session.SessionMetadata.StartTime == nil || !session.SessionMetadata.StartTime.Equal(clock.now) {
		t.Fatal("start time not recorded")
	}

	// starting twice is an illegal transition
	if err := e.Start(session); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestCurrentQuestion(t *testing.T) {
	e := NewEngine(newFakeClock())
	session := newTestSession(t, e, 2)

	q := e.CurrentQuestion(session)
	if q == nil || q.OrderIndex != 0 {
		t.Fatalf("expected question 0, got %+v", q)
	}

	session.SessionMetadata.CurrentQuestionIndex = 5
	if e.CurrentQuestion(session) != nil {
		t.Fatal("expected nil for out-of-range index")
	}
}

func TestRecordAnswer(t *testing.T) {
	clock := newFakeClock()
	e := NewEngine(clock)
	session := newTestSession(t, e, 2)

	start := clock.now
	end := start.Add(90 * time.Second)
	err := e.RecordAnswer(session, 0, models.Answer{Text: "my answer", Type: models.AnswerText, StartTime: start, EndTime: end})
	if err != nil {
		t.Fatalf("RecordAnswer returned error: %v", err)
	}

	q := session.Questions[0]
	if q.Answer == nil || q.Answer.Text != "my answer" {
		t.Fatal("answer not recorded")
	}
	if q.TimeTaken != 90 {
		t.Fatalf("expected timeTaken 90, got %d", q.TimeTaken)
	}
	if !q.IsCompleted {
		t.Fatal("question not marked completed")
	}
}

func TestRecordAnswer_BadIndex(t *testing.T) {
	e := NewEngine(newFakeClock())
	session := newTestSession(t, e, 1)

	err := e.RecordAnswer(session, 3, models.Answer{StartTime: time.Now(), EndTime: time.Now()})
	if !errors.Is(err, ErrQuestionNotFound) {
		t.Fatalf("expected ErrQuestionNotFound, got %v", err)
	}
}

func TestRecordAnswer_EndBeforeStart(t *testing.T) {
	clock := newFakeClock()
	e := NewEngine(clock)
	session := newTestSession(t, e, 1)

	err := e.RecordAnswer(session, 0, models.Answer{
		Text:      "x",
		StartTime: clock.now,
		EndTime:   clock.now.Add(-time.Second),
	})
	if !errors.Is(err, ErrInvalidAnswer) {
		t.Fatalf("expected ErrInvalidAnswer, got %v", err)
	}
	if session.Questions[0].Answer != nil {
		t.Fatal("rejected answer must not be recorded")
	}
}

func TestRecordAnswer_ResubmitClearsEvaluation(t *testing.T) {
	clock := newFakeClock()
	e := NewEngine(clock)
	session := newTestSession(t, e, 1)

	start := clock.now
	if err := e.RecordAnswer(session, 0, models.Answer{Text: "first", StartTime: start, EndTime: start.Add(30 * time.Second)}); err != nil {
		t.Fatal(err)
	}
	if err := e.RecordEvaluation(session, 0, models.Evaluation{Score: 80}); err != nil {
		t.Fatal(err)
	}

	// resubmission overwrites and forces re-evaluation
	if err := e.RecordAnswer(session, 0, models.Answer{Text: "second", StartTime: start, EndTime: start.Add(45 * time.Second)}); err != nil {
		t.Fatal(err)
	}
	q := session.Questions[0]
	if q.Answer.Text != "second" {
		t.Fatalf("expected overwritten answer, got %q", q.Answer.Text)
	}
	if q.TimeTaken != 45 {
		t.Fatalf("expected recomputed timeTaken 45, got %d", q.TimeTaken)
	}
	if q.IsEvaluated || q.Evaluation != nil {
		t.Fatal("resubmission must clear the previous evaluation")
	}
}

func TestRecordEvaluation(t *testing.T) {
	clock := newFakeClock()
	e := NewEngine(clock)
	session := newTestSession(t, e, 1)

	start := clock.now
	if err := e.RecordAnswer(session, 0, models.Answer{Text: "a", StartTime: start, EndTime: start.Add(time.Minute)}); err != nil {
		t.Fatal(err)
	}
	if err := e.RecordEvaluation(session, 0, models.Evaluation{Score: 75, Feedback: "solid"}); err != nil {
		t.Fatalf("RecordEvaluation returned error: %v", err)
	}

	q := session.Questions[0]
	if !q.IsEvaluated {
		t.Fatal("question not marked evaluated")
	}
	if q.Evaluation.EvaluatedAt.IsZero() {
		t.Fatal("evaluatedAt not stamped")
	}
}

func TestRecordEvaluation_NoAnswer(t *testing.T) {
	e := NewEngine(newFakeClock())
	session := newTestSession(t, e, 2)

	err := e.RecordEvaluation(session, 1, models.Evaluation{Score: 50})
	if !errors.Is(err, ErrNoAnswer) {
		t.Fatalf("expected ErrNoAnswer, got %v", err)
	}
	q := session.Questions[1]
	if q.IsEvaluated || q.Evaluation != nil {
		t.Fatal("question state must be unchanged after rejected evaluation")
	}
}

func TestAdvance(t *testing.T) {
	e := NewEngine(newFakeClock())
	session := newTestSession(t, e, 3)

	if !e.Advance(session) || session.SessionMetadata.CurrentQuestionIndex != 1 {
		t.Fatal("first advance should move to index 1")
	}
	if !e.Advance(session) || session.SessionMetadata.CurrentQuestionIndex != 2 {
		t.Fatal("second advance should move to index 2")
	}

	// at the last question: no move, and idempotent on repeat
	if e.Advance(session) {
		t.Fatal("advance at last index must return false")
	}
	if session.SessionMetadata.CurrentQuestionIndex != 2 {
		t.Fatal("index must be unchanged at last question")
	}
	if e.Advance(session) || session.SessionMetadata.CurrentQuestionIndex != 2 {
		t.Fatal("repeated advance at last index must stay put")
	}
}

func TestPauseResume(t *testing.T) {
	clock := newFakeClock()
	e := NewEngine(clock)
	session := newTestSession(t, e, 1)
	if err := e.Start(session); err != nil {
		t.Fatal(err)
	}

	e.Pause(session)
	if !session.SessionMetadata.IsPaused || session.SessionMetadata.PausedAt == nil {
		t.Fatal("pause must set isPaused and pausedAt together")
	}

	pausedAt := *session.SessionMetadata.PausedAt

	// pausing again must not reset the pause point
	clock.advance(3 * time.Second)
	e.Pause(session)
	if !session.SessionMetadata.PausedAt.Equal(pausedAt) {
		t.Fatal("second pause must be a no-op")
	}

	clock.advance(7 * time.Second) // 10s total since pause
	e.Resume(session)

	meta := session.SessionMetadata
	if meta.IsPaused || meta.PausedAt != nil {
		t.Fatal("resume must clear the paused marker")
	}
	if meta.PauseDuration != 10 {
		t.Fatalf("expected pauseDuration 10, got %d", meta.PauseDuration)
	}
	if meta.ResumedAt == nil || !meta.ResumedAt.Equal(clock.now) {
		t.Fatal("resumedAt not recorded")
	}

	// resuming when not paused is a no-op
	e.Resume(session)
	if meta := session.SessionMetadata; meta.PauseDuration != 10 {
		t.Fatalf("resume without pause must not accrue time, got %d", meta.PauseDuration)
	}
}

func TestPauseResume_Accumulates(t *testing.T) {
	clock := newFakeClock()
	e := NewEngine(clock)
	session := newTestSession(t, e, 1)

	e.Pause(session)
	clock.advance(4 * time.Second)
	e.Resume(session)

	e.Pause(session)
	clock.advance(6 * time.Second)
	e.Resume(session)

	if got := session.SessionMetadata.PauseDuration; got != 10 {
		t.Fatalf("expected accumulated pauseDuration 10, got %d", got)
	}
}

func TestComplete(t *testing.T) {
	clock := newFakeClock()
	e := NewEngine(clock)
	session := newTestSession(t, e, 1)
	if err := e.Start(session); err != nil {
		t.Fatal(err)
	}

	start := clock.now
	if err := e.RecordAnswer(session, 0, models.Answer{Text: "a", StartTime: start, EndTime: start.Add(time.Minute)}); err != nil {
		t.Fatal(err)
	}
	if err := e.RecordEvaluation(session, 0, models.Evaluation{Score: 90}); err != nil {
		t.Fatal(err)
	}

	clock.advance(5 * time.Minute)
	if err := e.Complete(session); err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if session.Status != models.StatusCompleted {
		t.Fatalf("expected completed, got %s", session.Status)
	}
	if session.SessionMetadata.EndTime == nil {
		t.Fatal("end time not recorded")
	}
	if session.SessionMetadata.TotalTimeTaken != 300 {
		t.Fatalf("expected totalTimeTaken 300, got %d", session.SessionMetadata.TotalTimeTaken)
	}
	if session.OverallResults == nil || session.OverallResults.AverageScore != 90 {
		t.Fatal("overall results not computed on completion")
	}

	if err := e.Complete(session); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("completing a terminal session must fail, got %v", err)
	}
}

func TestComplete_FromCreated(t *testing.T) {
	e := NewEngine(newFakeClock())
	session := newTestSession(t, e, 1)

	if err := e.Complete(session); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("completing a created session must fail, got %v", err)
	}
}

func TestAbandon(t *testing.T) {
	e := NewEngine(newFakeClock())
	session := newTestSession(t, e, 1)
	if err := e.Start(session); err != nil {
		t.Fatal(err)
	}

	if err := e.Abandon(session); err != nil {
		t.Fatalf("Abandon returned error: %v", err)
	}
	if session.Status != models.StatusAbandoned {
		t.Fatalf("expected abandoned, got %s", session.Status)
	}

	// terminal state is final: no complete afterwards
	if err := e.Complete(session); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState after abandon, got %v", err)
	}
	if err := e.Abandon(session); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("abandoning twice must fail, got %v", err)
	}
}

func TestAbandon_FromCreated(t *testing.T) {
	e := NewEngine(newFakeClock())
	session := newTestSession(t, e, 1)

	if err := e.Abandon(session); err != nil {
		t.Fatalf("abandon from created must succeed, got %v", err)
	}
}
