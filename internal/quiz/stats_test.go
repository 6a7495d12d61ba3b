package quiz

import (
	"math"
	"testing"
)

func TestComputeStatsEmpty(t *testing.T) {
	s := ComputeStats(nil)
	if s.Answered != 0 || s.Correct != 0 {
		t.Fatalf("got answered=%d correct=%d, want zeros", s.Answered, s.Correct)
	}
	if s.AvgDifficultyCorrect != nil {
		t.Fatalf("avgDifficultyCorrect = %v, want nil", *s.AvgDifficultyCorrect)
	}
}

func TestComputeStatsWeightsDifficulty(t *testing.T) {
	answers := []Answer{
		{QuestionID: 1, IsCorrect: true, Likely: 0.8},
		{QuestionID: 2, IsCorrect: true, Likely: 0.2},
		{QuestionID: 3, IsCorrect: false, Likely: 0.5},
	}
	s := ComputeStats(answers)
	if s.Answered != 3 || s.Correct != 2 {
		t.Fatalf("got answered=%d correct=%d, want 3/2", s.Answered, s.Correct)
	}
	if s.AvgDifficultyCorrect == nil {
		t.Fatal("avgDifficultyCorrect is nil")
	}
	// ((1-0.8)+(1-0.2))/2 = 0.5
	if math.Abs(*s.AvgDifficultyCorrect-0.5) > 1e-9 {
		t.Fatalf("avgDifficultyCorrect = %v, want 0.5", *s.AvgDifficultyCorrect)
	}
}

func TestComputeStatsNoCorrectAnswers(t *testing.T) {
	s := ComputeStats([]Answer{{QuestionID: 1, IsCorrect: false, Likely: 0.3}})
	if s.Answered != 1 || s.Correct != 0 {
		t.Fatalf("got answered=%d correct=%d, want 1/0", s.Answered, s.Correct)
	}
	if s.AvgDifficultyCorrect != nil {
		t.Fatal("avgDifficultyCorrect should be nil with no correct answers")
	}
}

func TestComputeStatsOrderIndependent(t *testing.T) {
	a := []Answer{
		{QuestionID: 1, IsCorrect: true, Likely: 0.1},
		{QuestionID: 2, IsCorrect: false, Likely: 0.9},
		{QuestionID: 3, IsCorrect: true, Likely: 0.7},
	}
	b := []Answer{a[2], a[0], a[1]}
	sa, sb := ComputeStats(a), ComputeStats(b)
	if sa.Answered != sb.Answered || sa.Correct != sb.Correct {
		t.Fatal("counts depend on answer order")
	}
	if math.Abs(*sa.AvgDifficultyCorrect-*sb.AvgDifficultyCorrect) > 1e-9 {
		t.Fatal("average depends on answer order")
	}
}
