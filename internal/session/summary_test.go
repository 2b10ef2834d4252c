package session

import (
	"testing"

	"github.com/abhisek/medborger/internal/history"
)

func TestTierFor(t *testing.T) {
	tests := []struct {
		percent int
		want    Tier
	}{
		{100, TierExpert},
		{90, TierExpert},
		{89, TierAdvanced},
		{75, TierAdvanced},
		{74, TierIntermediate},
		{60, TierIntermediate},
		{59, TierBeginner},
		{0, TierBeginner},
	}
	for _, tt := range tests {
		if got := TierFor(tt.percent); got != tt.want {
			t.Errorf("TierFor(%d) = %v, want %v", tt.percent, got, tt.want)
		}
	}
	if TierAdvanced.MessageID() != "results.feedback.advanced" {
		t.Errorf("MessageID = %q", TierAdvanced.MessageID())
	}
}

func TestBandFor(t *testing.T) {
	if BandFor(92) != BandExcellent || BandFor(80) != BandGood || BandFor(60) != BandFair || BandFor(10) != BandPoor {
		t.Error("unexpected band boundaries")
	}
}

func TestSummarize(t *testing.T) {
	a := history.Attempt{
		ID:             "a1",
		ExamID:         "2022-winter",
		TotalQuestions: 4,
		TimeExpired:    true,
		Answers: []history.AnsweredQuestion{
			history.NewAnsweredQuestion("q1", "a", "a"),
			history.NewAnsweredQuestion("q2", "b", "a"),
			history.NewAnsweredQuestion("q3", "a", "a"),
			history.NewAnsweredQuestion("q4", "a", "a"),
		},
	}

	s := Summarize(a)
	if s.Percent != 75 || s.Correct != 3 || s.Total != 4 {
		t.Errorf("summary = %+v", s)
	}
	if s.Tier != TierAdvanced {
		t.Errorf("Tier = %v, want advanced", s.Tier)
	}
	if len(s.Incorrect) != 1 || s.Incorrect[0].Question != "q2" {
		t.Errorf("Incorrect = %+v", s.Incorrect)
	}
	if !s.TimeExpired || s.ExamID != "2022-winter" {
		t.Error("attempt metadata not carried over")
	}
}

func TestSummarizeAnswers_Empty(t *testing.T) {
	s := SummarizeAnswers(nil, 0)
	if s.Percent != 0 || s.Tier != TierBeginner || len(s.Incorrect) != 0 {
		t.Errorf("summary = %+v", s)
	}
}
