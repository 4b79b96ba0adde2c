package llm

import "peerprep/interview/internal/models"

// FallbackQuestions returns a fixed question set for when generation fails.
// The session still proceeds; the questions are generic but answerable for any
// role and skill set.
func FallbackQuestions() []models.Question {
	return []models.Question{
		{
			Category:           "Introduction",
			Text:               "Tell me about yourself and your experience in software development.",
			Difficulty:         models.Easy,
			TimeLimit:          240,
			Hints:              []string{"Focus on relevant experience", "Highlight key achievements"},
			EvaluationCriteria: []string{"Communication skills", "Relevant experience"},
		},
		{
			Category:           "Problem Solving",
			Text:               "Describe a challenging technical problem you solved recently.",
			Difficulty:         models.Medium,
			TimeLimit:          300,
			Hints:              []string{"Explain your approach", "Mention tools and technologies used"},
			EvaluationCriteria: []string{"Problem-solving approach", "Technical depth"},
		},
		{
			Category:           "Teamwork",
			Text:               "How do you handle disagreements with team members?",
			Difficulty:         models.Medium,
			TimeLimit:          240,
			Hints:              []string{"Give specific examples", "Focus on resolution strategies"},
			EvaluationCriteria: []string{"Communication skills", "Conflict resolution"},
		},
	}
}

// FallbackEvaluation returns a neutral evaluation for when scoring fails, so
// an answer is never left unscored.
func FallbackEvaluation() *models.Evaluation {
	return &models.Evaluation{
		Score:        60,
		Feedback:     "Thank you for your response. Continue practicing to improve your interview skills.",
		Strengths:    []string{"Attempted to answer the question"},
		Improvements: []string{"Could provide more specific examples", "Consider technical details"},
	}
}
