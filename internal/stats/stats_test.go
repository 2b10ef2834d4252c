package stats

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/medborger/internal/history"
)

func attempt(examID string, day, score, correct, total int, expired bool, wrong ...string) history.Attempt {
	a := history.Attempt{
		ExamID:         examID,
		Date:           time.Date(2025, 3, day, 12, 0, 0, 0, time.UTC),
		Score:          score,
		CorrectAnswers: correct,
		TotalQuestions: total,
		TimeExpired:    expired,
	}
	for i := 0; i < correct; i++ {
		a.Answers = append(a.Answers, history.NewAnsweredQuestion("right", "a", "a"))
	}
	for _, q := range wrong {
		a.Answers = append(a.Answers, history.NewAnsweredQuestion(q, "x", "y"))
	}
	return a
}

func sampleLog() history.Log {
	return history.Log{
		attempt("2024-summer", 5, 75, 3, 4, false, "Q1"),
		attempt("random", 4, 50, 1, 2, true, "Q2"),
		attempt("2024-summer", 3, 50, 1, 2, false, "Q1"),
		attempt("2024-winter", 2, 100, 2, 2, false),
	}
}

func TestCompute(t *testing.T) {
	s := Compute(sampleLog())

	assert.Equal(t, 4, s.Attempts)
	assert.Equal(t, 1, s.TimedOut)
	assert.Equal(t, 10, s.Answered)
	assert.Equal(t, 7, s.Correct)
	assert.InDelta(t, 68.75, s.Average, 0.001)
	assert.Equal(t, 100, s.Best)
	assert.Equal(t, 2, s.Wrong)
	assert.Equal(t, 5, s.Latest.Day())
	assert.InDelta(t, 0.7, s.Accuracy(), 0.001)

	require.Len(t, s.PerExam, 3)
	assert.Equal(t, []string{"random", "2024-winter", "2024-summer"},
		[]string{s.PerExam[0].ExamID, s.PerExam[1].ExamID, s.PerExam[2].ExamID})

	summer := s.PerExam[2]
	assert.Equal(t, 2, summer.Attempts)
	assert.Equal(t, 75, summer.Best)
	assert.Equal(t, 75, summer.Last)
	assert.InDelta(t, 62.5, summer.Average, 0.001)
}

func TestCompute_Empty(t *testing.T) {
	s := Compute(nil)
	assert.Zero(t, s.Attempts)
	assert.Zero(t, s.Average)
	assert.Zero(t, s.Accuracy())
	assert.Empty(t, s.PerExam)
}

func TestExamOrder(t *testing.T) {
	ids := []string{"unknown", "2016-winter", "wrong-answers", "2024-summer", "random", "2024-winter"}
	log := history.Log{}
	for _, id := range ids {
		log = append(log, attempt(id, 1, 50, 1, 2, false))
	}
	var got []string
	for _, e := range Compute(log).PerExam {
		got = append(got, e.ExamID)
	}
	assert.Equal(t, []string{"random", "wrong-answers", "2024-winter", "2024-summer", "2016-winter", "unknown"}, got)
}

func TestRegistry(t *testing.T) {
	reg := Registry(sampleLog())

	expected := `
# HELP medborger_attempts Quiz attempts in the history, by how they ended.
# TYPE medborger_attempts gauge
medborger_attempts{result="completed"} 3
medborger_attempts{result="timed_out"} 1
# HELP medborger_best_score_percent Best score per exam.
# TYPE medborger_best_score_percent gauge
medborger_best_score_percent{exam="2024-summer"} 75
medborger_best_score_percent{exam="2024-winter"} 100
medborger_best_score_percent{exam="random"} 50
# HELP medborger_wrong_answer_questions Distinct questions in the wrong-answer practice set.
# TYPE medborger_wrong_answer_questions gauge
medborger_wrong_answer_questions 2
`
	err := testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"medborger_attempts", "medborger_best_score_percent", "medborger_wrong_answer_questions")
	require.NoError(t, err)

	n, err := testutil.GatherAndCount(reg, "medborger_attempt_score_percent")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRegistry_EmptyLogOmitsTimestamp(t *testing.T) {
	n, err := testutil.GatherAndCount(Registry(nil), "medborger_last_attempt_timestamp_seconds")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestWriteTextfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "medborger.prom")
	require.NoError(t, WriteTextfile(path, sampleLog()))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `medborger_answers{outcome="correct"} 7`)
	assert.Contains(t, string(raw), "medborger_attempt_score_percent_count 4")
}

func TestWriteTextfile_BadPath(t *testing.T) {
	err := WriteTextfile(filepath.Join(t.TempDir(), "missing", "x.prom"), nil)
	assert.Error(t, err)
}
