package gemini

import (
	"encoding/json"
	"errors"
	"strings"

	"peerprep/interview/internal/models"
)

const defaultTimeLimit = 300 // seconds

type questionDTO struct {
	Type               string   `json:"type"`
	Category           string   `json:"category"`
	Question           string   `json:"question"`
	Difficulty         string   `json:"difficulty"`
	TimeLimitSeconds   int      `json:"timeLimitSeconds"`
	Hints              []string `json:"hints"`
	EvaluationCriteria []string `json:"evaluationCriteria"`
}

type questionsDTO struct {
	Questions []questionDTO `json:"questions"`
}

type evaluationDTO struct {
	Score             float64  `json:"score"`
	TechnicalAccuracy *float64 `json:"technicalAccuracy"`
	Communication     *float64 `json:"communication"`
	Completeness      *float64 `json:"completeness"`
	Strengths         []string `json:"strengths"`
	Improvements      []string `json:"improvements"`
	Feedback          string   `json:"feedback"`
}

// extractJSON pulls the outermost JSON object out of a response that may be
// wrapped in markdown fences or prose.
func extractJSON(text string) (string, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", errors.New("no JSON object found in response")
	}
	return text[start : end+1], nil
}

func parseQuestions(text string, expectedCount int) ([]models.Question, error) {
	raw, err := extractJSON(text)
	if err != nil {
		return nil, err
	}

	var parsed questionsDTO
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, err
	}
	if len(parsed.Questions) == 0 {
		return nil, errors.New("response contained no questions")
	}
	if len(parsed.Questions) > expectedCount {
		parsed.Questions = parsed.Questions[:expectedCount]
	}

	questions := make([]models.Question, 0, len(parsed.Questions))
	for _, dto := range parsed.Questions {
		if strings.TrimSpace(dto.Question) == "" {
			continue
		}
		timeLimit := dto.TimeLimitSeconds
		if timeLimit <= 0 {
			timeLimit = defaultTimeLimit
		}
		questions = append(questions, models.Question{
			Category:           dto.Category,
			Text:               strings.TrimSpace(dto.Question),
			Difficulty:         mapDifficulty(dto.Difficulty),
			TimeLimit:          timeLimit,
			Hints:              dto.Hints,
			EvaluationCriteria: dto.EvaluationCriteria,
		})
	}
	if len(questions) == 0 {
		return nil, errors.New("response contained no usable questions")
	}
	return questions, nil
}

func parseEvaluation(text string) (*models.Evaluation, error) {
	raw, err := extractJSON(text)
	if err != nil {
		return nil, err
	}

	var parsed evaluationDTO
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, err
	}
	if parsed.Score < 0 {
		parsed.Score = 0
	}
	if parsed.Score > 100 {
		parsed.Score = 100
	}

	return &models.Evaluation{
		Score:             parsed.Score,
		Feedback:          parsed.Feedback,
		Strengths:         parsed.Strengths,
		Improvements:      parsed.Improvements,
		TechnicalAccuracy: parsed.TechnicalAccuracy,
		Communication:     parsed.Communication,
		Completeness:      parsed.Completeness,
	}, nil
}

// mapDifficulty converts the model's lowercase scale to the question enum.
func mapDifficulty(s string) models.Difficulty {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return models.Easy
	case "hard":
		return models.Hard
	default:
		return models.Medium
	}
}
