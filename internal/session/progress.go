package session

import "fmt"

// SecondsPerQuestion keeps the official ratio of 30 minutes for 25 questions.
const SecondsPerQuestion = 30 * 60 / 25

// LowTimeThreshold is the remaining time, in seconds, below which the clock
// is shown as urgent.
const LowTimeThreshold = 5 * 60

// DurationFor returns the countdown length for a run of n questions.
func DurationFor(n int) int {
	if n <= 0 {
		return 0
	}
	return n * SecondsPerQuestion
}

// FormatClock renders seconds as MM:SS.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// ProgressPercent returns how far through the run the question at index is,
// counting the current question as started.
func ProgressPercent(index, total int) int {
	if total <= 0 {
		return 0
	}
	if index >= total {
		return 100
	}
	return (index + 1) * 100 / total
}

// Score returns round(100 * correct / total), rounding halves up. A total of
// zero scores zero.
func Score(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return (200*correct + total) / (2 * total)
}
