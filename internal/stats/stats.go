// Package stats aggregates the attempt history into summary figures and
// exports them as Prometheus metrics.
package stats

import (
	"sort"
	"time"

	"github.com/abhisek/medborger/internal/exam"
	"github.com/abhisek/medborger/internal/history"
)

// ExamStats summarizes the attempts at one exam.
type ExamStats struct {
	ExamID   string
	Attempts int
	Best     int
	Last     int
	Average  float64
}

// Stats summarizes the whole history.
type Stats struct {
	Attempts  int
	TimedOut  int
	Answered  int
	Correct   int
	Average   float64
	Best      int
	Wrong     int // distinct questions in the wrong-answer set
	Latest    time.Time
	PerExam   []ExamStats
	ScoreList []int // every attempt score, newest first
}

// Accuracy is the share of answered questions that were correct.
func (s Stats) Accuracy() float64 {
	if s.Answered == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Answered)
}

// Compute derives Stats from log.
func Compute(log history.Log) Stats {
	s := Stats{Wrong: len(history.WrongAnswers(log))}
	per := map[string]*ExamStats{}
	sum := 0

	for _, a := range log {
		s.Attempts++
		if a.TimeExpired {
			s.TimedOut++
		}
		s.Answered += len(a.Answers)
		s.Correct += a.CorrectAnswers
		sum += a.Score
		s.ScoreList = append(s.ScoreList, a.Score)
		if a.Score > s.Best {
			s.Best = a.Score
		}
		if a.Date.After(s.Latest) {
			s.Latest = a.Date
		}

		e, ok := per[a.ExamID]
		if !ok {
			// Log is newest first, so the first attempt seen is the last taken.
			e = &ExamStats{ExamID: a.ExamID, Last: a.Score}
			per[a.ExamID] = e
		}
		e.Attempts++
		e.Average += float64(a.Score)
		if a.Score > e.Best {
			e.Best = a.Score
		}
	}
	if s.Attempts > 0 {
		s.Average = float64(sum) / float64(s.Attempts)
	}

	for _, e := range per {
		e.Average /= float64(e.Attempts)
		s.PerExam = append(s.PerExam, *e)
	}
	sort.Slice(s.PerExam, func(i, j int) bool {
		return examLess(s.PerExam[i].ExamID, s.PerExam[j].ExamID)
	})
	return s
}

// examLess orders the synthetic exams first, then official ids newest first.
// Official ids ("2024-winter") sort descending as strings in selector order.
func examLess(a, b string) bool {
	ra, rb := rank(a), rank(b)
	if ra != rb {
		return ra < rb
	}
	return a > b
}

func rank(id string) int {
	switch id {
	case exam.RandomID:
		return 0
	case exam.WrongAnswersID:
		return 1
	case history.UnknownExamID:
		return 3
	}
	return 2
}
