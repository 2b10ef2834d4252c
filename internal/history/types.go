package history

import "time"

// UnknownExamID is assigned to attempts recorded before exam ids existed.
const UnknownExamID = "unknown"

// AnsweredQuestion is one committed answer within an attempt.
type AnsweredQuestion struct {
	Question      string `json:"question"`
	UserAnswer    string `json:"userAnswer"`
	CorrectAnswer string `json:"correctAnswer"`
	IsCorrect     bool   `json:"isCorrect"`
}

// NewAnsweredQuestion records chosen against correct. Comparison is exact.
func NewAnsweredQuestion(question, chosen, correct string) AnsweredQuestion {
	return AnsweredQuestion{
		Question:      question,
		UserAnswer:    chosen,
		CorrectAnswer: correct,
		IsCorrect:     chosen == correct,
	}
}

// Attempt is a finalized quiz run. Attempts are never modified after creation,
// except for the one-time legacy migration of ExamID.
type Attempt struct {
	ID             string             `json:"id,omitempty"`
	ExamID         string             `json:"examId"`
	Date           time.Time          `json:"date"`
	Score          int                `json:"score"`
	CorrectAnswers int                `json:"correctAnswers"`
	TotalQuestions int                `json:"totalQuestions"`
	Answers        []AnsweredQuestion `json:"answers"`
	TimeExpired    bool               `json:"timeExpired,omitempty"`
}

// IncorrectCount returns how many recorded answers were wrong.
func (a Attempt) IncorrectCount() int {
	n := 0
	for _, ans := range a.Answers {
		if !ans.IsCorrect {
			n++
		}
	}
	return n
}

// Log is the attempt history, newest first.
type Log []Attempt

// WrongAnswer is a distinct previously missed question with its correct answer.
type WrongAnswer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
