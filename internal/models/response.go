package models

// ErrorResponse is the JSON error body every endpoint returns. It doubles as
// an error value so request validation can produce it directly.
type ErrorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

func (e *ErrorResponse) Error() string {
	return e.Code + ": " + e.Message
}

// AnswerResult is returned after an answer submission: the evaluation the
// answer received (possibly fallback content) plus the session's position.
type AnswerResult struct {
	QuestionIndex int         `json:"questionIndex"`
	TimeTaken     int         `json:"timeTaken"` // seconds
	Evaluation    *Evaluation `json:"evaluation"`
	Advanced      bool        `json:"advanced"`
	CurrentIndex  int         `json:"currentIndex"`
}

// AdvanceResult reports whether the session moved to the next question.
type AdvanceResult struct {
	Advanced     bool `json:"advanced"`
	CurrentIndex int  `json:"currentIndex"`
}

// FollowUpResponse wraps an optional follow-up question.
type FollowUpResponse struct {
	HasFollowUp bool   `json:"hasFollowUp"`
	Question    string `json:"question,omitempty"`
}

// SessionSummary is the derived view returned by the summary endpoint.
type SessionSummary struct {
	SessionID      string          `json:"sessionId"`
	Status         Status          `json:"status"`
	TotalQuestions int             `json:"totalQuestions"`
	AnsweredCount  int             `json:"answeredCount"`
	EvaluatedCount int             `json:"evaluatedCount"`
	Results        *OverallResults `json:"results"`
}
