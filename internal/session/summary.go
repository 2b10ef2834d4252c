package session

import (
	"time"

	"github.com/abhisek/medborger/internal/history"
)

// Tier is the qualitative feedback band of a score.
type Tier int

const (
	TierBeginner Tier = iota
	TierIntermediate
	TierAdvanced
	TierExpert
)

// TierFor maps a percentage to its feedback tier.
func TierFor(percent int) Tier {
	switch {
	case percent >= 90:
		return TierExpert
	case percent >= 75:
		return TierAdvanced
	case percent >= 60:
		return TierIntermediate
	default:
		return TierBeginner
	}
}

func (t Tier) String() string {
	switch t {
	case TierExpert:
		return "expert"
	case TierAdvanced:
		return "advanced"
	case TierIntermediate:
		return "intermediate"
	}
	return "beginner"
}

// MessageID is the translation id of the tier's feedback sentence.
func (t Tier) MessageID() string {
	return "results.feedback." + t.String()
}

// Band groups scores for colouring: history lists use three bands, the
// results badge also separates excellent scores.
type Band int

const (
	BandPoor Band = iota
	BandFair
	BandGood
	BandExcellent
)

// BandFor returns the colour band of percent.
func BandFor(percent int) Band {
	switch {
	case percent >= 90:
		return BandExcellent
	case percent >= 75:
		return BandGood
	case percent >= 60:
		return BandFair
	default:
		return BandPoor
	}
}

// Summary is everything the results view shows for one attempt.
type Summary struct {
	AttemptID   string
	ExamID      string
	Date        time.Time
	Percent     int
	Correct     int
	Total       int
	Tier        Tier
	TimeExpired bool
	Incorrect   []history.AnsweredQuestion
}

// Summarize derives the results of a finalized attempt.
func Summarize(a history.Attempt) Summary {
	s := SummarizeAnswers(a.Answers, a.TotalQuestions)
	s.AttemptID = a.ID
	s.ExamID = a.ExamID
	s.Date = a.Date
	s.TimeExpired = a.TimeExpired
	return s
}

// SummarizeAnswers derives results from answers against a total, which lets
// an unfinished run be shown the same way.
func SummarizeAnswers(answers []history.AnsweredQuestion, total int) Summary {
	s := Summary{Total: total}
	for _, ans := range answers {
		if ans.IsCorrect {
			s.Correct++
			continue
		}
		s.Incorrect = append(s.Incorrect, ans)
	}
	s.Percent = Score(s.Correct, total)
	s.Tier = TierFor(s.Percent)
	return s
}
