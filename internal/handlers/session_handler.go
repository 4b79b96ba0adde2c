package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"peerprep/interview/internal/engine"
	"peerprep/interview/internal/events"
	"peerprep/interview/internal/llm"
	"peerprep/interview/internal/metrics"
	"peerprep/interview/internal/middleware"
	"peerprep/interview/internal/models"
	"peerprep/interview/internal/repositories"
	"peerprep/interview/internal/utils"
)

type SessionHandler struct {
	store     repositories.SessionStore
	engine    *engine.Engine
	provider  llm.Provider
	publisher *events.Publisher
	logger    *zap.Logger
}

func NewSessionHandler(store repositories.SessionStore, eng *engine.Engine, provider llm.Provider, publisher *events.Publisher, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		store:     store,
		engine:    eng,
		provider:  provider,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateHandler generates questions for the requested setup and stores a new
// session in the created state. Generation failure degrades to the fallback
// question set instead of failing the request.
func (h *SessionHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.CreateSessionRequest](r)
	setup := req.Setup()
	userID := middleware.UserID(r)

	count := engine.QuestionCount(setup.Duration, setup.InterviewType)
	questions, err := h.provider.GenerateQuestions(r.Context(), setup, count)
	if err != nil {
		h.logger.Warn("question generation failed, using fallback",
			zap.String("provider", h.provider.GetProviderName()), zap.Error(err))
		metrics.RecordFallback("questions")
		questions = llm.FallbackQuestions()
	}

	session, err := h.engine.Create(userID, setup, questions)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}

	if err := h.store.Insert(r.Context(), session); err != nil {
		h.logger.Error("failed to store session", zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "storage_error",
			Message: "Failed to store session",
		})
		return
	}

	h.logger.Info("session created",
		zap.String("sessionId", session.SessionID),
		zap.String("userId", userID),
		zap.Int("questionCount", len(session.Questions)))
	utils.JSON(w, http.StatusCreated, session)
}

// StartHandler moves a created session to in_progress.
func (h *SessionHandler) StartHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := h.loadOwned(w, r)
	if !ok {
		return
	}

	if err := h.engine.Start(session); err != nil {
		h.writeEngineError(w, err)
		return
	}
	if !h.save(w, r, session) {
		return
	}

	metrics.RecordTransition("started")
	utils.JSON(w, http.StatusOK, session)
}

// GetHandler returns the full session document.
func (h *SessionHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := h.loadOwned(w, r)
	if !ok {
		return
	}
	utils.JSON(w, http.StatusOK, session)
}

// CurrentHandler returns the question at the session's current index.
func (h *SessionHandler) CurrentHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := h.loadOwned(w, r)
	if !ok {
		return
	}

	question := h.engine.CurrentQuestion(session)
	if question == nil {
		utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
			Code:    "no_current_question",
			Message: "No question at the current index",
		})
		return
	}
	utils.JSON(w, http.StatusOK, question)
}

// AnswerHandler records an answer for one question and evaluates it.
// Evaluation failure degrades to a neutral fallback so the answer is never
// left unscored. With ?advance=true the session moves to the next question
// after a successful evaluation.
func (h *SessionHandler) AnswerHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := h.loadOwned(w, r)
	if !ok {
		return
	}

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
			Code:    "invalid_index",
			Message: "Question index must be an integer",
		})
		return
	}

	req := middleware.GetValidatedRequest[*models.AnswerRequest](r)
	if err := h.engine.RecordAnswer(session, index, req.Answer()); err != nil {
		h.writeEngineError(w, err)
		return
	}

	question := session.Questions[index]
	evaluation, err := h.provider.EvaluateAnswer(r.Context(), question, *question.Answer)
	if err != nil {
		h.logger.Warn("answer evaluation failed, using fallback",
			zap.String("sessionId", session.SessionID),
			zap.Int("questionIndex", index), zap.Error(err))
		metrics.RecordFallback("evaluation")
		evaluation = llm.FallbackEvaluation()
	}
	if err := h.engine.RecordEvaluation(session, index, *evaluation); err != nil {
		h.writeEngineError(w, err)
		return
	}

	advanced := false
	if r.URL.Query().Get("advance") == "true" {
		advanced = h.engine.Advance(session)
	}
	if !h.save(w, r, session) {
		return
	}

	utils.JSON(w, http.StatusOK, models.AnswerResult{
		QuestionIndex: index,
		TimeTaken:     session.Questions[index].TimeTaken,
		Evaluation:    session.Questions[index].Evaluation,
		Advanced:      advanced,
		CurrentIndex:  session.SessionMetadata.CurrentQuestionIndex,
	})
}

// FollowUpHandler asks the provider for one follow-up question. Provider
// failure is not an error: the response just carries no follow-up.
func (h *SessionHandler) FollowUpHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.loadOwned(w, r); !ok {
		return
	}

	req := middleware.GetValidatedRequest[*models.FollowUpRequest](r)
	question, err := h.provider.GenerateFollowUp(r.Context(), req.OriginalQuestion, req.PreviousAnswer)
	if err != nil || question == "" {
		if err != nil {
			h.logger.Warn("follow-up generation failed", zap.Error(err))
			metrics.RecordFallback("followup")
		}
		utils.JSON(w, http.StatusOK, models.FollowUpResponse{HasFollowUp: false})
		return
	}

	utils.JSON(w, http.StatusOK, models.FollowUpResponse{
		HasFollowUp: true,
		Question:    question,
	})
}

// AdvanceHandler moves the session to the next question if one exists.
func (h *SessionHandler) AdvanceHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := h.loadOwned(w, r)
	if !ok {
		return
	}

	advanced := h.engine.Advance(session)
	if advanced && !h.save(w, r, session) {
		return
	}

	utils.JSON(w, http.StatusOK, models.AdvanceResult{
		Advanced:     advanced,
		CurrentIndex: session.SessionMetadata.CurrentQuestionIndex,
	})
}

// PauseHandler stops the session clock.
func (h *SessionHandler) PauseHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := h.loadOwned(w, r)
	if !ok {
		return
	}

	h.engine.Pause(session)
	if !h.save(w, r, session) {
		return
	}

	metrics.RecordTransition("paused")
	utils.JSON(w, http.StatusOK, session.SessionMetadata)
}

// ResumeHandler restarts the session clock, accruing the paused time.
func (h *SessionHandler) ResumeHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := h.loadOwned(w, r)
	if !ok {
		return
	}

	h.engine.Resume(session)
	if !h.save(w, r, session) {
		return
	}

	metrics.RecordTransition("resumed")
	utils.JSON(w, http.StatusOK, session.SessionMetadata)
}

// CompleteHandler finishes an in-progress session and computes results.
func (h *SessionHandler) CompleteHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := h.loadOwned(w, r)
	if !ok {
		return
	}

	if err := h.engine.Complete(session); err != nil {
		h.writeEngineError(w, err)
		return
	}
	if !h.save(w, r, session) {
		return
	}

	metrics.RecordTransition("completed")
	h.publisher.PublishSessionEnded(r.Context(), session)
	h.logger.Info("session completed",
		zap.String("sessionId", session.SessionID),
		zap.Float64("averageScore", session.OverallResults.AverageScore))
	utils.JSON(w, http.StatusOK, session)
}

// AbandonHandler terminates a session without computing results.
func (h *SessionHandler) AbandonHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := h.loadOwned(w, r)
	if !ok {
		return
	}

	if err := h.engine.Abandon(session); err != nil {
		h.writeEngineError(w, err)
		return
	}
	if !h.save(w, r, session) {
		return
	}

	metrics.RecordTransition("abandoned")
	h.publisher.PublishSessionEnded(r.Context(), session)
	utils.JSON(w, http.StatusOK, session)
}

// SummaryHandler returns the derived score summary for a session.
func (h *SessionHandler) SummaryHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := h.loadOwned(w, r)
	if !ok {
		return
	}

	answered, evaluated := 0, 0
	for _, q := range session.Questions {
		if q.Answer != nil {
			answered++
		}
		if q.IsEvaluated {
			evaluated++
		}
	}

	results := session.OverallResults
	if results == nil {
		results = engine.ComputeOverallResults(session)
	}

	utils.JSON(w, http.StatusOK, models.SessionSummary{
		SessionID:      session.SessionID,
		Status:         session.Status,
		TotalQuestions: len(session.Questions),
		AnsweredCount:  answered,
		EvaluatedCount: evaluated,
		Results:        results,
	})
}

// ListHandler returns all sessions belonging to the caller.
func (h *SessionHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.store.ListByUser(r.Context(), middleware.UserID(r))
	if err != nil {
		h.logger.Error("failed to list sessions", zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "storage_error",
			Message: "Failed to list sessions",
		})
		return
	}
	if sessions == nil {
		sessions = []models.InterviewSession{}
	}
	utils.JSON(w, http.StatusOK, sessions)
}

// loadOwned fetches the session in the URL and enforces ownership.
func (h *SessionHandler) loadOwned(w http.ResponseWriter, r *http.Request) (*models.InterviewSession, bool) {
	sessionID := chi.URLParam(r, "id")
	session, err := h.store.Get(r.Context(), sessionID)
	if errors.Is(err, repositories.ErrNotFound) {
		utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
			Code:    "not_found",
			Message: "Session not found",
		})
		return nil, false
	}
	if err != nil {
		h.logger.Error("failed to load session", zap.String("sessionId", sessionID), zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "storage_error",
			Message: "Failed to load session",
		})
		return nil, false
	}

	if session.UserID != middleware.UserID(r) {
		utils.JSON(w, http.StatusForbidden, models.ErrorResponse{
			Code:    "forbidden",
			Message: "Session belongs to another user",
		})
		return nil, false
	}
	return session, true
}

// save persists the session, translating a version conflict to 409.
func (h *SessionHandler) save(w http.ResponseWriter, r *http.Request, session *models.InterviewSession) bool {
	err := h.store.Save(r.Context(), session)
	if errors.Is(err, repositories.ErrConflict) {
		utils.JSON(w, http.StatusConflict, models.ErrorResponse{
			Code:    "version_conflict",
			Message: "Session was modified concurrently, retry the request",
		})
		return false
	}
	if err != nil {
		h.logger.Error("failed to save session", zap.String("sessionId", session.SessionID), zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "storage_error",
			Message: "Failed to save session",
		})
		return false
	}
	return true
}

func (h *SessionHandler) writeEngineError(w http.ResponseWriter, err error) {
	var setupErr *engine.SetupError
	switch {
	case errors.As(err, &setupErr):
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
			Code:    "invalid_setup",
			Message: "Interview setup is invalid",
			Details: setupErr.Violations,
		})
	case errors.Is(err, engine.ErrInvalidState):
		utils.JSON(w, http.StatusConflict, models.ErrorResponse{
			Code:    "invalid_state",
			Message: "Operation not allowed in the session's current state",
		})
	case errors.Is(err, engine.ErrQuestionNotFound):
		utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
			Code:    "question_not_found",
			Message: "No question at the given index",
		})
	case errors.Is(err, engine.ErrInvalidAnswer):
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
			Code:    "invalid_answer",
			Message: "Answer timestamps are invalid",
		})
	case errors.Is(err, engine.ErrNoAnswer):
		utils.JSON(w, http.StatusConflict, models.ErrorResponse{
			Code:    "no_answer",
			Message: "Question has no recorded answer",
		})
	default:
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "internal_error",
			Message: "Unexpected error",
		})
	}
}
