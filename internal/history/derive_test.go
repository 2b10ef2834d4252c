package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrongAnswers(t *testing.T) {
	log := Log{
		attempt("random", 50,
			NewAnsweredQuestion("Q1", "x", "new answer"),
			NewAnsweredQuestion("Q2", "ok", "ok"),
		),
		attempt("2024-summer", 0,
			NewAnsweredQuestion("Q1", "y", "old answer"),
			NewAnsweredQuestion("Q3", "z", "c3"),
		),
	}

	got := WrongAnswers(log)
	assert.Equal(t, []WrongAnswer{
		{Question: "Q1", Answer: "new answer"},
		{Question: "Q3", Answer: "c3"},
	}, got)
}

func TestWrongAnswersEmpty(t *testing.T) {
	assert.Empty(t, WrongAnswers(nil))
	perfect := Log{attempt("2024-summer", 100, NewAnsweredQuestion("Q", "a", "a"))}
	assert.Empty(t, WrongAnswers(perfect))
}

func TestBestScoreAndAttempts(t *testing.T) {
	log := Log{
		attempt("2024-summer", 40),
		attempt("random", 90),
		attempt("2024-summer", 72),
	}

	best, ok := BestScore(log, "2024-summer")
	assert.True(t, ok)
	assert.Equal(t, 72, best)

	_, ok = BestScore(log, "2016-winter")
	assert.False(t, ok)

	assert.True(t, HasAttempted(log, "random"))
	assert.False(t, HasAttempted(log, "2017-summer"))
	assert.Len(t, AttemptsFor(log, "2024-summer"), 2)
}

func TestNewAnsweredQuestionExactMatch(t *testing.T) {
	assert.True(t, NewAnsweredQuestion("q", "Ja", "Ja").IsCorrect)
	assert.False(t, NewAnsweredQuestion("q", "ja", "Ja").IsCorrect)
	assert.False(t, NewAnsweredQuestion("q", "Ja ", "Ja").IsCorrect)
}

func TestIncorrectCount(t *testing.T) {
	a := attempt("x", 33,
		NewAnsweredQuestion("1", "a", "a"),
		NewAnsweredQuestion("2", "a", "b"),
		NewAnsweredQuestion("3", "c", "b"),
	)
	assert.Equal(t, 2, a.IncorrectCount())
}
