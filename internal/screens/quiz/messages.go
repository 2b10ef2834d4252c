package quiz

import (
	sess "github.com/abhisek/medborger/internal/session"
)

// loadedMsg carries the finished question load.
type loadedMsg struct {
	Result sess.LoadResult
}

// timerTickMsg is one elapsed second of the countdown generation Gen.
type timerTickMsg struct {
	Gen uint64
}

// feedbackDoneMsg ends the pause after an answer.
type feedbackDoneMsg struct{}
