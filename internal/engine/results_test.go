package engine

import (
	"math"
	"testing"

	"peerprep/interview/internal/models"
)

func evaluated(score float64, difficulty models.Difficulty, skills ...string) models.Question {
	return models.Question{
		Difficulty:  difficulty,
		Skills:      skills,
		Answer:      &models.Answer{Text: "a", Type: models.AnswerText},
		Evaluation:  &models.Evaluation{Score: score},
		IsCompleted: true,
		IsEvaluated: true,
		TimeTaken:   60,
	}
}

func sessionWith(questions ...models.Question) *models.InterviewSession {
	return &models.InterviewSession{
		Questions: questions,
		SessionMetadata: models.SessionMetadata{
			SelectedSkills: []string{"Go", "SQL"},
			QuestionCount:  len(questions),
		},
	}
}

func TestComputeOverallResults_NoneEvaluated(t *testing.T) {
	session := sessionWith(
		models.Question{Difficulty: models.Easy},
		models.Question{Difficulty: models.Hard},
	)

	results := ComputeOverallResults(session)
	if results.CompletionPercentage != 0 {
		t.Fatalf("expected completion 0, got %v", results.CompletionPercentage)
	}
	if results.TotalScore != 0 || results.AverageScore != 0 {
		t.Fatal("scores must be zero with no evaluated questions")
	}
	if results.ScoreByDifficulty != nil || results.ScoreBySkill != nil {
		t.Fatal("no score breakdowns with no evaluated questions")
	}
}

func TestComputeOverallResults_PartialEvaluation(t *testing.T) {
	session := sessionWith(
		evaluated(80, models.Easy),
		models.Question{Difficulty: models.Medium},
		models.Question{Difficulty: models.Hard},
	)

	results := ComputeOverallResults(session)
	want := 100.0 / 3.0
	if math.Abs(results.CompletionPercentage-want) > 1e-9 {
		t.Fatalf("expected completion %v, got %v", want, results.CompletionPercentage)
	}
	if results.AverageScore != 80 {
		t.Fatalf("expected average 80, got %v", results.AverageScore)
	}
}

func TestComputeOverallResults_WeightedSubScores(t *testing.T) {
	tech, comm, compl := 8.0, 6.0, 7.0
	session := sessionWith(models.Question{
		Difficulty: models.Medium,
		Answer:     &models.Answer{Text: "a"},
		Evaluation: &models.Evaluation{
			Score:             50, // ignored when all sub-scores present
			TechnicalAccuracy: &tech,
			Communication:     &comm,
			Completeness:      &compl,
		},
		IsCompleted: true,
		IsEvaluated: true,
	})

	results := ComputeOverallResults(session)
	// 8*0.4 + 6*0.3 + 7*0.3 = 7.1, scaled to 71.0
	if math.Abs(results.AverageScore-71.0) > 1e-9 {
		t.Fatalf("expected weighted score 71.0, got %v", results.AverageScore)
	}
}

func TestComputeOverallResults_FullSession(t *testing.T) {
	scores := []float64{80, 70, 90, 60, 85, 75, 95, 65}
	questions := make([]models.Question, 0, len(scores))
	difficulties := []models.Difficulty{
		models.Easy, models.Easy, models.Medium, models.Medium,
		models.Medium, models.Hard, models.Hard, models.Hard,
	}
	for i, s := range scores {
		questions = append(questions, evaluated(s, difficulties[i], "Go"))
	}
	session := sessionWith(questions...)

	results := ComputeOverallResults(session)
	if results.CompletionPercentage != 100 {
		t.Fatalf("expected completion 100, got %v", results.CompletionPercentage)
	}
	if results.AverageScore != 77.5 {
		t.Fatalf("expected average 77.5, got %v", results.AverageScore)
	}
	if results.TotalScore != 620 {
		t.Fatalf("expected total 620, got %v", results.TotalScore)
	}
	if results.TotalTimeTaken != 8*60 {
		t.Fatalf("expected total time 480, got %d", results.TotalTimeTaken)
	}
	if results.AverageTimePerQuestion != 60 {
		t.Fatalf("expected average time 60, got %v", results.AverageTimePerQuestion)
	}

	byDiff := results.ScoreByDifficulty
	if byDiff == nil {
		t.Fatal("expected difficulty breakdown")
	}
	if byDiff.Easy == nil || *byDiff.Easy != 75 {
		t.Fatalf("expected easy average 75, got %v", byDiff.Easy)
	}
	if byDiff.Medium == nil || math.Abs(*byDiff.Medium-(90+60+85)/3.0) > 1e-9 {
		t.Fatalf("unexpected medium average %v", byDiff.Medium)
	}
	if byDiff.Hard == nil || math.Abs(*byDiff.Hard-(75+95+65)/3.0) > 1e-9 {
		t.Fatalf("unexpected hard average %v", byDiff.Hard)
	}
}

func TestComputeOverallResults_EmptyDifficultyBucket(t *testing.T) {
	session := sessionWith(
		evaluated(80, models.Easy),
		evaluated(90, models.Easy),
	)

	results := ComputeOverallResults(session)
	byDiff := results.ScoreByDifficulty
	if byDiff.Easy == nil || *byDiff.Easy != 85 {
		t.Fatalf("expected easy average 85, got %v", byDiff.Easy)
	}
	if byDiff.Medium != nil || byDiff.Hard != nil {
		t.Fatal("empty buckets must stay nil")
	}
}

func TestComputeOverallResults_ScoreBySkill(t *testing.T) {
	session := sessionWith(
		evaluated(80, models.Easy, "Go"),
		evaluated(60, models.Medium, "Go", "SQL"),
	)

	results := ComputeOverallResults(session)
	goScore := results.ScoreBySkill["Go"]
	if goScore == nil || *goScore != 70 {
		t.Fatalf("expected Go average 70, got %v", goScore)
	}
	sqlScore := results.ScoreBySkill["SQL"]
	if sqlScore == nil || *sqlScore != 60 {
		t.Fatalf("expected SQL average 60, got %v", sqlScore)
	}
}

func TestComputeOverallResults_SkillWithoutQuestions(t *testing.T) {
	session := sessionWith(evaluated(80, models.Easy, "Go"))

	results := ComputeOverallResults(session)
	score, present := results.ScoreBySkill["SQL"]
	if !present {
		t.Fatal("selected skill must appear in the breakdown")
	}
	if score != nil {
		t.Fatalf("skill with no tagged questions must be nil, got %v", *score)
	}
}

func TestComputeOverallResults_DedupStrengths(t *testing.T) {
	first := evaluated(80, models.Easy, "Go")
	first.Evaluation.Strengths = []string{"clear structure", "good depth"}
	first.Evaluation.Improvements = []string{"more examples"}
	second := evaluated(70, models.Medium, "Go")
	second.Evaluation.Strengths = []string{"good depth", "concise"}
	second.Evaluation.Improvements = []string{"more examples", "slower pace"}

	results := ComputeOverallResults(sessionWith(first, second))

	wantStrengths := []string{"clear structure", "good depth", "concise"}
	if len(results.Strengths) != len(wantStrengths) {
		t.Fatalf("expected %v, got %v", wantStrengths, results.Strengths)
	}
	for i, s := range wantStrengths {
		if results.Strengths[i] != s {
			t.Fatalf("expected %v, got %v", wantStrengths, results.Strengths)
		}
	}
	if len(results.Improvements) != 2 {
		t.Fatalf("expected deduped improvements, got %v", results.Improvements)
	}
}
