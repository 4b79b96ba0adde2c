package models

import "time"

// session lifecycle states
type Status string

const (
	StatusCreated    Status = "created"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusAbandoned  Status = "abandoned"
)

// Terminal reports whether no further transition is allowed out of s.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusAbandoned
}

type Difficulty string

const (
	Easy   Difficulty = "Easy"
	Medium Difficulty = "Medium"
	Hard   Difficulty = "Hard"
)

type AnswerType string

const (
	AnswerText  AnswerType = "text"
	AnswerVoice AnswerType = "voice"
	AnswerVideo AnswerType = "video"
)

// Question is one generated interview question inside a session.
// The answer/evaluation slots are embedded so a question can carry at most
// one of each without separate lookups.
type Question struct {
	QuestionID         string      `bson:"question_id" json:"questionId"`
	OrderIndex         int         `bson:"order_index" json:"orderIndex"`
	Text               string      `bson:"question_text" json:"questionText"`
	Category           string      `bson:"category,omitempty" json:"category,omitempty"`
	Skills             []string    `bson:"skills,omitempty" json:"skills,omitempty"`
	Difficulty         Difficulty  `bson:"difficulty" json:"difficulty"`
	TimeLimit          int         `bson:"time_limit" json:"timeLimit"` // seconds
	Hints              []string    `bson:"hints,omitempty" json:"hints,omitempty"`
	EvaluationCriteria []string    `bson:"evaluation_criteria,omitempty" json:"evaluationCriteria,omitempty"`
	Answer             *Answer     `bson:"answer,omitempty" json:"answer,omitempty"`
	Evaluation         *Evaluation `bson:"evaluation,omitempty" json:"evaluation,omitempty"`
	TimeTaken          int         `bson:"time_taken,omitempty" json:"timeTaken,omitempty"` // seconds
	IsCompleted        bool        `bson:"is_completed" json:"isCompleted"`
	IsEvaluated        bool        `bson:"is_evaluated" json:"isEvaluated"`
}

// Answer holds what the candidate submitted for one question.
type Answer struct {
	Text      string     `bson:"text,omitempty" json:"text,omitempty"`
	AudioURL  string     `bson:"audio_url,omitempty" json:"audioUrl,omitempty"`
	VideoURL  string     `bson:"video_url,omitempty" json:"videoUrl,omitempty"`
	Type      AnswerType `bson:"type" json:"type"`
	StartTime time.Time  `bson:"start_time" json:"startTime"`
	EndTime   time.Time  `bson:"end_time" json:"endTime"`
}

// HasContent reports whether the answer carries any text or media.
func (a *Answer) HasContent() bool {
	return a.Text != "" || a.AudioURL != "" || a.VideoURL != ""
}

// Evaluation is the structured scoring a question's answer received.
// Sub-scores are pointers: nil means the dimension was not assessed.
type Evaluation struct {
	Score             float64   `bson:"score" json:"score"` // 0-100
	Feedback          string    `bson:"feedback,omitempty" json:"feedback,omitempty"`
	Strengths         []string  `bson:"strengths,omitempty" json:"strengths,omitempty"`
	Improvements      []string  `bson:"improvements,omitempty" json:"improvements,omitempty"`
	TechnicalAccuracy *float64  `bson:"technical_accuracy,omitempty" json:"technicalAccuracy,omitempty"` // 0-10
	Communication     *float64  `bson:"communication,omitempty" json:"communication,omitempty"`          // 0-10
	Completeness      *float64  `bson:"completeness,omitempty" json:"completeness,omitempty"`            // 0-10
	EvaluatedAt       time.Time `bson:"evaluated_at" json:"evaluatedAt"`
}

// EffectiveScore returns the 0-100 score used for aggregation.
// When all three sub-scores are present the weighted formula wins
// (40% technical, 30% communication, 30% completeness, scaled x10);
// otherwise the raw score is used as-is.
func (e *Evaluation) EffectiveScore() float64 {
	if e == nil {
		return 0
	}
	if e.TechnicalAccuracy != nil && e.Communication != nil && e.Completeness != nil {
		return (*e.TechnicalAccuracy*0.4 + *e.Communication*0.3 + *e.Completeness*0.3) * 10
	}
	return e.Score
}

// SessionMetadata carries the denormalized setup plus progression state.
type SessionMetadata struct {
	JobRole              string        `bson:"job_role" json:"jobRole"`
	CustomJobRole        string        `bson:"custom_job_role,omitempty" json:"customJobRole,omitempty"`
	ExperienceLevel      string        `bson:"experience_level" json:"experienceLevel"`
	SelectedSkills       []string      `bson:"selected_skills" json:"selectedSkills"`
	InterviewType        InterviewType `bson:"interview_type" json:"interviewType"`
	Difficulty           string        `bson:"difficulty,omitempty" json:"difficulty,omitempty"`
	Duration             int           `bson:"duration" json:"duration"` // minutes
	QuestionCount        int           `bson:"question_count" json:"questionCount"`
	StartTime            *time.Time    `bson:"start_time,omitempty" json:"startTime,omitempty"`
	EndTime              *time.Time    `bson:"end_time,omitempty" json:"endTime,omitempty"`
	TotalTimeTaken       int           `bson:"total_time_taken,omitempty" json:"totalTimeTaken,omitempty"` // seconds
	CurrentQuestionIndex int           `bson:"current_question_index" json:"currentQuestionIndex"`
	IsPaused             bool          `bson:"is_paused" json:"isPaused"`
	PausedAt             *time.Time    `bson:"paused_at,omitempty" json:"pausedAt,omitempty"`
	ResumedAt            *time.Time    `bson:"resumed_at,omitempty" json:"resumedAt,omitempty"`
	PauseDuration        int           `bson:"pause_duration" json:"pauseDuration"` // seconds
}

// ScoreByDifficulty holds the per-bucket averages; nil means no evaluated
// question fell into that bucket.
type ScoreByDifficulty struct {
	Easy   *float64 `bson:"easy" json:"easy"`
	Medium *float64 `bson:"medium" json:"medium"`
	Hard   *float64 `bson:"hard" json:"hard"`
}

// OverallResults is derived from the session on demand, never persisted as
// authoritative state.
type OverallResults struct {
	TotalScore             float64             `bson:"total_score,omitempty" json:"totalScore,omitempty"`
	AverageScore           float64             `bson:"average_score,omitempty" json:"averageScore,omitempty"`
	ScoreByDifficulty      *ScoreByDifficulty  `bson:"score_by_difficulty,omitempty" json:"scoreByDifficulty,omitempty"`
	ScoreBySkill           map[string]*float64 `bson:"score_by_skill,omitempty" json:"scoreBySkill,omitempty"`
	CompletionPercentage   float64             `bson:"completion_percentage" json:"completionPercentage"`
	TotalTimeTaken         int                 `bson:"total_time_taken,omitempty" json:"totalTimeTaken,omitempty"`
	AverageTimePerQuestion float64             `bson:"average_time_per_question,omitempty" json:"averageTimePerQuestion,omitempty"`
	Strengths              []string            `bson:"strengths,omitempty" json:"strengths,omitempty"`
	Improvements           []string            `bson:"improvements,omitempty" json:"improvements,omitempty"`
}

// InterviewSession is the aggregate root for one interview attempt.
// Version backs the optimistic compare-and-set in the repository.
type InterviewSession struct {
	SessionID       string          `bson:"session_id" json:"sessionId"`
	UserID          string          `bson:"user_id" json:"userId"`
	InterviewID     string          `bson:"interview_id" json:"interviewId"`
	Questions       []Question      `bson:"questions" json:"questions"`
	SessionMetadata SessionMetadata `bson:"session_metadata" json:"sessionMetadata"`
	Status          Status          `bson:"status" json:"status"`
	OverallResults  *OverallResults `bson:"overall_results,omitempty" json:"overallResults,omitempty"`
	Version         int64           `bson:"version" json:"-"`
	CreatedAt       time.Time       `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time       `bson:"updated_at" json:"updatedAt"`
}
