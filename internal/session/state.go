package session

import (
	"time"

	"github.com/abhisek/medborger/internal/exam"
	"github.com/abhisek/medborger/internal/history"
)

// Phase represents where the quiz machine is in a run.
type Phase int

const (
	PhaseSelecting  Phase = iota // Choosing an exam; the resting state between runs
	PhaseInProgress              // Serving questions with the countdown running
	PhaseCompleted               // Attempt finalized, showing results
)

func (p Phase) String() string {
	switch p {
	case PhaseSelecting:
		return "selecting"
	case PhaseInProgress:
		return "in-progress"
	case PhaseCompleted:
		return "completed"
	}
	return "unknown"
}

// State is the transient state of one quiz run. It is discarded on cancel,
// restart, or after being folded into an attempt.
type State struct {
	// ExamID is the exam being taken, or exam.WrongAnswersID in practice mode.
	ExamID string

	// Questions is the ordered question list for this run.
	Questions []exam.Question

	// CurrentIndex points at the question being shown.
	CurrentIndex int

	// Answers holds committed answers in question order.
	Answers []history.AnsweredQuestion

	// Completed is set once the attempt has been finalized.
	Completed bool

	// TimeRemaining is the countdown value in seconds.
	TimeRemaining int

	// TimerRunning is true while the countdown is ticking.
	TimerRunning bool

	// PracticeMode is true when practicing previously missed questions.
	PracticeMode bool

	// StartedAt is when the run began.
	StartedAt time.Time
}

// CurrentQuestion returns the question at CurrentIndex.
func (s *State) CurrentQuestion() (exam.Question, bool) {
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Questions) {
		return exam.Question{}, false
	}
	return s.Questions[s.CurrentIndex], true
}

// CorrectCount returns how many committed answers are correct.
func (s *State) CorrectCount() int {
	n := 0
	for _, a := range s.Answers {
		if a.IsCorrect {
			n++
		}
	}
	return n
}
