package gemini

import (
	"testing"

	"peerprep/interview/internal/models"
)

func TestParseQuestions(t *testing.T) {
	text := "Here are your questions:\n```json\n" + `{
  "questions": [
    {
      "id": 1,
      "type": "technical",
      "category": "Go",
      "question": "What is a goroutine?",
      "difficulty": "easy",
      "timeLimitSeconds": 180,
      "hints": ["Think about concurrency"],
      "evaluationCriteria": ["Technical knowledge"]
    },
    {
      "id": 2,
      "type": "technical",
      "category": "Databases",
      "question": "Explain an index.",
      "difficulty": "hard"
    }
  ]
}` + "\n```"

	questions, err := parseQuestions(text, 5)
	if err != nil {
		t.Fatalf("parseQuestions returned error: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}

	first := questions[0]
	if first.Text != "What is a goroutine?" || first.Difficulty != models.Easy || first.TimeLimit != 180 {
		t.Fatalf("unexpected first question: %+v", first)
	}

	second := questions[1]
	if second.Difficulty != models.Hard {
		t.Fatalf("expected hard difficulty, got %s", second.Difficulty)
	}
	if second.TimeLimit != defaultTimeLimit {
		t.Fatalf("missing time limit must default, got %d", second.TimeLimit)
	}
}

func TestParseQuestions_Truncates(t *testing.T) {
	text := `{"questions": [
		{"question": "q1", "difficulty": "medium"},
		{"question": "q2", "difficulty": "medium"},
		{"question": "q3", "difficulty": "medium"}
	]}`

	questions, err := parseQuestions(text, 2)
	if err != nil {
		t.Fatalf("parseQuestions returned error: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("expected truncation to 2, got %d", len(questions))
	}
}

func TestParseQuestions_NoJSON(t *testing.T) {
	if _, err := parseQuestions("no structure here", 3); err == nil {
		t.Fatal("expected error for response without JSON")
	}
}

func TestParseQuestions_Empty(t *testing.T) {
	if _, err := parseQuestions(`{"questions": []}`, 3); err == nil {
		t.Fatal("expected error for empty question list")
	}
	if _, err := parseQuestions(`{"questions": [{"question": "   "}]}`, 3); err == nil {
		t.Fatal("expected error when all questions are blank")
	}
}

func TestParseEvaluation(t *testing.T) {
	text := "```json\n" + `{
  "score": 72,
  "technicalAccuracy": 8,
  "communication": 6,
  "completeness": 7,
  "strengths": ["clear"],
  "improvements": ["more depth"],
  "feedback": "Good answer overall."
}` + "\n```"

	evaluation, err := parseEvaluation(text)
	if err != nil {
		t.Fatalf("parseEvaluation returned error: %v", err)
	}
	if evaluation.Score != 72 {
		t.Fatalf("expected score 72, got %v", evaluation.Score)
	}
	if evaluation.TechnicalAccuracy == nil || *evaluation.TechnicalAccuracy != 8 {
		t.Fatalf("unexpected technical accuracy: %v", evaluation.TechnicalAccuracy)
	}
	if evaluation.Feedback != "Good answer overall." {
		t.Fatalf("unexpected feedback: %q", evaluation.Feedback)
	}
}

func TestParseEvaluation_ClampsScore(t *testing.T) {
	evaluation, err := parseEvaluation(`{"score": 140}`)
	if err != nil {
		t.Fatalf("parseEvaluation returned error: %v", err)
	}
	if evaluation.Score != 100 {
		t.Fatalf("expected clamped score 100, got %v", evaluation.Score)
	}

	evaluation, err = parseEvaluation(`{"score": -5}`)
	if err != nil {
		t.Fatalf("parseEvaluation returned error: %v", err)
	}
	if evaluation.Score != 0 {
		t.Fatalf("expected clamped score 0, got %v", evaluation.Score)
	}
}

func TestParseEvaluation_MissingSubScores(t *testing.T) {
	evaluation, err := parseEvaluation(`{"score": 55, "feedback": "ok"}`)
	if err != nil {
		t.Fatalf("parseEvaluation returned error: %v", err)
	}
	if evaluation.TechnicalAccuracy != nil || evaluation.Communication != nil || evaluation.Completeness != nil {
		t.Fatal("absent sub-scores must stay nil")
	}
	if evaluation.EffectiveScore() != 55 {
		t.Fatalf("expected raw score fallback, got %v", evaluation.EffectiveScore())
	}
}
