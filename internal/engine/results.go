package engine

import "peerprep/interview/internal/models"

// ComputeOverallResults derives the aggregate scoring view from the session.
// It is a pure read: callable at any point, not just at completion.
func ComputeOverallResults(s *models.InterviewSession) *models.OverallResults {
	var evaluated []*models.Question
	for i := range s.Questions {
		if s.Questions[i].IsEvaluated {
			evaluated = append(evaluated, &s.Questions[i])
		}
	}

	if len(evaluated) == 0 {
		return &models.OverallResults{CompletionPercentage: 0}
	}

	var totalScore float64
	var totalTime int
	for _, q := range evaluated {
		totalScore += q.Evaluation.EffectiveScore()
		totalTime += q.TimeTaken
	}
	count := float64(len(evaluated))

	results := &models.OverallResults{
		TotalScore:   totalScore,
		AverageScore: totalScore / count,
		ScoreByDifficulty: &models.ScoreByDifficulty{
			Easy:   averageByDifficulty(evaluated, models.Easy),
			Medium: averageByDifficulty(evaluated, models.Medium),
			Hard:   averageByDifficulty(evaluated, models.Hard),
		},
		ScoreBySkill:           scoreBySkill(evaluated, s.SessionMetadata.SelectedSkills),
		CompletionPercentage:   100 * count / float64(len(s.Questions)),
		TotalTimeTaken:         totalTime,
		AverageTimePerQuestion: float64(totalTime) / count,
		Strengths:              collectUnique(evaluated, func(ev *models.Evaluation) []string { return ev.Strengths }),
		Improvements:           collectUnique(evaluated, func(ev *models.Evaluation) []string { return ev.Improvements }),
	}
	return results
}

func averageByDifficulty(evaluated []*models.Question, difficulty models.Difficulty) *float64 {
	var sum float64
	var n int
	for _, q := range evaluated {
		if q.Difficulty == difficulty {
			sum += q.Evaluation.EffectiveScore()
			n++
		}
	}
	if n == 0 {
		return nil
	}
	avg := sum / float64(n)
	return &avg
}

func scoreBySkill(evaluated []*models.Question, skills []string) map[string]*float64 {
	out := make(map[string]*float64, len(skills))
	for _, skill := range skills {
		var sum float64
		var n int
		for _, q := range evaluated {
			if containsString(q.Skills, skill) {
				sum += q.Evaluation.EffectiveScore()
				n++
			}
		}
		if n == 0 {
			out[skill] = nil
			continue
		}
		avg := sum / float64(n)
		out[skill] = &avg
	}
	return out
}

// collectUnique unions the per-question lists, dropping duplicates while
// keeping first-seen order.
func collectUnique(evaluated []*models.Question, pick func(*models.Evaluation) []string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, q := range evaluated {
		for _, item := range pick(q.Evaluation) {
			if _, ok := seen[item]; ok {
				continue
			}
			seen[item] = struct{}{}
			out = append(out, item)
		}
	}
	return out
}

func containsString(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}
