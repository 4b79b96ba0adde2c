package models

import (
	"strings"
	"time"
)

// CreateSessionRequest carries the interview setup for a new session.
type CreateSessionRequest struct {
	JobRole         string   `json:"jobRole"`
	CustomJobRole   string   `json:"customJobRole,omitempty"`
	Skills          []string `json:"skills"`
	ExperienceLevel string   `json:"experienceLevel"`
	InterviewType   string   `json:"interviewType"`
	Difficulty      string   `json:"difficulty,omitempty"`
	Duration        int      `json:"duration,omitempty"` // minutes
}

// Setup converts the request into the setup value the engine consumes,
// applying the same defaults the original setup flow applied.
func (r *CreateSessionRequest) Setup() InterviewSetup {
	setup := InterviewSetup{
		JobRole:         r.JobRole,
		CustomJobRole:   r.CustomJobRole,
		Skills:          r.Skills,
		ExperienceLevel: r.ExperienceLevel,
		InterviewType:   InterviewType(r.InterviewType),
		Difficulty:      r.Difficulty,
		Duration:        r.Duration,
	}
	if setup.Difficulty == "" {
		setup.Difficulty = "medium"
	}
	if setup.Duration == 0 {
		setup.Duration = 30
	}
	return setup
}

// implements the Validator interface
func (r *CreateSessionRequest) Validate() error {
	violations := ValidateSetup(InterviewSetup{
		JobRole:         r.JobRole,
		CustomJobRole:   r.CustomJobRole,
		Skills:          r.Skills,
		ExperienceLevel: r.ExperienceLevel,
		InterviewType:   InterviewType(r.InterviewType),
		Difficulty:      r.Difficulty,
		Duration:        r.Duration,
	})
	if len(violations) > 0 {
		return &ErrorResponse{
			Code:    "invalid_setup",
			Message: "Interview setup is invalid",
			Details: violations,
		}
	}
	return nil
}

// AnswerRequest is the payload for submitting an answer to one question.
type AnswerRequest struct {
	Text      string    `json:"text,omitempty"`
	AudioURL  string    `json:"audioUrl,omitempty"`
	VideoURL  string    `json:"videoUrl,omitempty"`
	Type      string    `json:"type,omitempty"`
	StartedAt time.Time `json:"startedAt"`
	EndedAt   time.Time `json:"endedAt"`
}

func (r *AnswerRequest) Validate() error {
	if strings.TrimSpace(r.Text) == "" && r.AudioURL == "" && r.VideoURL == "" {
		return &ErrorResponse{Code: "missing_answer", Message: "Answer must contain text or a media reference"}
	}
	if r.Type == "" {
		r.Type = string(AnswerText)
	}
	switch AnswerType(r.Type) {
	case AnswerText, AnswerVoice, AnswerVideo:
	default:
		return &ErrorResponse{Code: "invalid_answer_type", Message: "Answer type must be one of text, voice, video"}
	}
	if r.StartedAt.IsZero() || r.EndedAt.IsZero() {
		return &ErrorResponse{Code: "missing_timestamps", Message: "startedAt and endedAt are required"}
	}
	if r.EndedAt.Before(r.StartedAt) {
		return &ErrorResponse{Code: "invalid_timestamps", Message: "endedAt must not precede startedAt"}
	}
	return nil
}

// Answer converts the request into the model value.
func (r *AnswerRequest) Answer() Answer {
	return Answer{
		Text:      r.Text,
		AudioURL:  r.AudioURL,
		VideoURL:  r.VideoURL,
		Type:      AnswerType(r.Type),
		StartTime: r.StartedAt,
		EndTime:   r.EndedAt,
	}
}

// FollowUpRequest asks for a follow-up question to a previous answer.
type FollowUpRequest struct {
	OriginalQuestion string `json:"originalQuestion"`
	PreviousAnswer   string `json:"previousAnswer"`
}

func (r *FollowUpRequest) Validate() error {
	if strings.TrimSpace(r.OriginalQuestion) == "" {
		return &ErrorResponse{Code: "missing_question", Message: "originalQuestion is required"}
	}
	if strings.TrimSpace(r.PreviousAnswer) == "" {
		return &ErrorResponse{Code: "missing_answer", Message: "previousAnswer is required"}
	}
	return nil
}
