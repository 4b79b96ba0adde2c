package history

import (
	"time"

	"gorm.io/gorm"
)

// InterviewHistory is the relational record of one finished interview
// session, kept for listing past attempts without hitting the session store.
type InterviewHistory struct {
	gorm.Model
	SessionID            string    `gorm:"not null;uniqueIndex" json:"sessionId"`
	UserID               string    `gorm:"not null;index" json:"userId"`
	JobRole              string    `json:"jobRole"`
	InterviewType        string    `json:"interviewType"`
	Difficulty           string    `json:"difficulty"`
	Status               string    `json:"status"`
	QuestionCount        int       `json:"questionCount"`
	AverageScore         float64   `json:"averageScore"`
	CompletionPercentage float64   `json:"completionPercentage"`
	DurationSec          int       `json:"durationSeconds"`
	StartedAt            time.Time `json:"startedAt"`
	EndedAt              time.Time `json:"endedAt"`
}
