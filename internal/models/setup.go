package models

import "fmt"

type InterviewType string

const (
	InterviewTechnical  InterviewType = "technical"
	InterviewBehavioral InterviewType = "behavioral"
	InterviewMixed      InterviewType = "mixed"
)

// ExperienceLevels mirrors the options the setup form offers.
var ExperienceLevels = []string{
	"Entry Level (0-2 years)",
	"Mid Level (2-5 years)",
	"Senior Level (5-10 years)",
	"Lead Level (10+ years)",
}

// JobRoleOther marks a free-text role supplied via CustomJobRole.
const JobRoleOther = "Other"

const (
	MinDuration = 5   // minutes
	MaxDuration = 120 // minutes
)

// InterviewSetup is the immutable configuration a session is created from.
type InterviewSetup struct {
	JobRole         string        `bson:"job_role" json:"jobRole"`
	CustomJobRole   string        `bson:"custom_job_role,omitempty" json:"customJobRole,omitempty"`
	Skills          []string      `bson:"skills" json:"skills"`
	ExperienceLevel string        `bson:"experience_level" json:"experienceLevel"`
	InterviewType   InterviewType `bson:"interview_type" json:"interviewType"`
	// Difficulty uses the lowercase setup scale (easy|medium|hard), distinct
	// from the capitalized per-question Difficulty enum.
	Difficulty string `bson:"difficulty,omitempty" json:"difficulty,omitempty"`
	Duration   int    `bson:"duration,omitempty" json:"duration,omitempty"` // minutes
}

// EffectiveJobRole resolves "Other" to the free-text role.
func (s InterviewSetup) EffectiveJobRole() string {
	if s.JobRole == JobRoleOther && s.CustomJobRole != "" {
		return s.CustomJobRole
	}
	return s.JobRole
}

// ValidateSetup checks a setup and returns every violation found, in field
// order, so the caller can surface the complete list at once.
func ValidateSetup(s InterviewSetup) []string {
	var violations []string

	if s.JobRole == "" {
		violations = append(violations, "jobRole is required")
	} else if s.JobRole == JobRoleOther && s.CustomJobRole == "" {
		violations = append(violations, "customJobRole is required when jobRole is Other")
	}

	if len(s.Skills) == 0 {
		violations = append(violations, "skills must be a non-empty list")
	}

	if s.ExperienceLevel == "" {
		violations = append(violations, "experienceLevel is required")
	}

	switch s.InterviewType {
	case InterviewTechnical, InterviewBehavioral, InterviewMixed:
	case "":
		violations = append(violations, "interviewType is required")
	default:
		violations = append(violations, fmt.Sprintf("interviewType %q must be one of technical, behavioral, mixed", s.InterviewType))
	}

	switch s.Difficulty {
	case "", "easy", "medium", "hard":
	default:
		violations = append(violations, fmt.Sprintf("difficulty %q must be one of easy, medium, hard", s.Difficulty))
	}

	if s.Duration != 0 && (s.Duration < MinDuration || s.Duration > MaxDuration) {
		violations = append(violations, fmt.Sprintf("duration must be between %d and %d minutes", MinDuration, MaxDuration))
	}

	return violations
}
