package routers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"peerprep/interview/internal/config"
	"peerprep/interview/internal/engine"
	"peerprep/interview/internal/handlers"
	"peerprep/interview/internal/llm"
	"peerprep/interview/internal/models"
	"peerprep/interview/internal/repositories"
)

type stubProvider struct{}

func (stubProvider) GenerateQuestions(context.Context, models.InterviewSetup, int) ([]models.Question, error) {
	return []models.Question{{Text: "q"}}, nil
}
func (stubProvider) EvaluateAnswer(context.Context, models.Question, models.Answer) (*models.Evaluation, error) {
	return &models.Evaluation{Score: 70}, nil
}
func (stubProvider) GenerateFollowUp(context.Context, string, string) (string, error) {
	return "", nil
}
func (stubProvider) GetProviderName() string { return "stub" }

var _ llm.Provider = (*stubProvider)(nil)

func TestHealthRoutes(t *testing.T) {
	router := chi.NewRouter()
	handler := handlers.NewHealthHandler(stubProvider{}, repositories.NewMemoryStore(), &config.Config{Provider: "gemini"})

	HealthRoutes(router, handler)

	req, _ := http.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("/healthz route not registered correctly, got status %d", rec.Code)
	}
}

func TestInterviewRoutesRegistersEndpoints(t *testing.T) {
	router := chi.NewRouter()
	logger := zap.NewNop()
	sessionHandler := handlers.NewSessionHandler(repositories.NewMemoryStore(), engine.NewEngine(nil), stubProvider{}, nil, logger)

	InterviewRoutes(router, sessionHandler, nil, "secret")

	paths := map[string]bool{}
	if err := chi.Walk(router, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		paths[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("failed walking routes: %v", err)
	}

	expected := []string{
		"POST /api/v1/interviews/sessions",
		"GET /api/v1/interviews/sessions",
		"GET /api/v1/interviews/sessions/{id}/",
		"POST /api/v1/interviews/sessions/{id}/start",
		"GET /api/v1/interviews/sessions/{id}/current",
		"POST /api/v1/interviews/sessions/{id}/questions/{index}/answer",
		"POST /api/v1/interviews/sessions/{id}/followup",
		"POST /api/v1/interviews/sessions/{id}/advance",
		"POST /api/v1/interviews/sessions/{id}/pause",
		"POST /api/v1/interviews/sessions/{id}/resume",
		"POST /api/v1/interviews/sessions/{id}/complete",
		"POST /api/v1/interviews/sessions/{id}/abandon",
		"GET /api/v1/interviews/sessions/{id}/summary",
	}

	for _, route := range expected {
		if !paths[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}
