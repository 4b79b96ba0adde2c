package engine

import "peerprep/interview/internal/models"

// QuestionCount derives how many questions a session should get from the
// requested duration and interview type. Deterministic step function: longer
// interviews get more questions, and mixed interviews keep a higher floor so
// both technical and behavioral questions fit.
func QuestionCount(durationMinutes int, interviewType models.InterviewType) int {
	var base int
	switch {
	case durationMinutes <= 15:
		base = 5
	case durationMinutes <= 30:
		base = 8
	case durationMinutes <= 60:
		base = 12
	default:
		base = 18
	}

	floor := 3
	if interviewType == models.InterviewMixed {
		floor = 6
	}
	if base < floor {
		return floor
	}
	return base
}
