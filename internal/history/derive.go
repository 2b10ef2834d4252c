package history

// WrongAnswers returns the distinct questions answered incorrectly across the
// log. The log is walked newest first and the first occurrence of a question
// text wins, so the most recent correct answer is kept.
func WrongAnswers(log Log) []WrongAnswer {
	seen := make(map[string]bool)
	var out []WrongAnswer
	for _, a := range log {
		for _, ans := range a.Answers {
			if ans.IsCorrect || seen[ans.Question] {
				continue
			}
			seen[ans.Question] = true
			out = append(out, WrongAnswer{Question: ans.Question, Answer: ans.CorrectAnswer})
		}
	}
	return out
}

// AttemptsFor returns the attempts for examID, newest first.
func AttemptsFor(log Log, examID string) Log {
	var out Log
	for _, a := range log {
		if a.ExamID == examID {
			out = append(out, a)
		}
	}
	return out
}

// HasAttempted reports whether examID appears in the log.
func HasAttempted(log Log, examID string) bool {
	for _, a := range log {
		if a.ExamID == examID {
			return true
		}
	}
	return false
}

// BestScore returns the highest score recorded for examID.
func BestScore(log Log, examID string) (int, bool) {
	best, found := 0, false
	for _, a := range log {
		if a.ExamID != examID {
			continue
		}
		if !found || a.Score > best {
			best = a.Score
			found = true
		}
	}
	return best, found
}
