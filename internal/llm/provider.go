package llm

import (
	"context"

	"peerprep/interview/internal/models"
)

// defines the interface for LLM-backed interview providers
type Provider interface {
	GenerateQuestions(ctx context.Context, setup models.InterviewSetup, count int) ([]models.Question, error)
	EvaluateAnswer(ctx context.Context, question models.Question, answer models.Answer) (*models.Evaluation, error)
	GenerateFollowUp(ctx context.Context, originalQuestion string, previousAnswer string) (string, error)
	GetProviderName() string
}

// represents an error from an LLM provider
type ProviderError struct {
	Provider string
	Code     string
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return e.Provider + " error: " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Provider + " error: " + e.Message
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Common error codes
// For current and future use across different providers
const (
	ErrCodeAPIKey       = "invalid_api_key"
	ErrCodeRateLimit    = "rate_limit_exceeded"
	ErrCodeServiceDown  = "service_unavailable"
	ErrCodeInvalidInput = "invalid_input"
	ErrCodeTimeout      = "timeout"
	ErrCodeBadResponse  = "malformed_response"
)
