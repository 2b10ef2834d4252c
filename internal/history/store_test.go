package history

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/medborger/internal/store"
)

func attempt(examID string, score int, answers ...AnsweredQuestion) Attempt {
	correct := 0
	for _, a := range answers {
		if a.IsCorrect {
			correct++
		}
	}
	return Attempt{
		ExamID:         examID,
		Date:           time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Score:          score,
		CorrectAnswers: correct,
		TotalQuestions: len(answers),
		Answers:        answers,
	}
}

func TestLoadMissingIsEmpty(t *testing.T) {
	s := NewStore(store.NewMemoryKV(), nil)
	log := s.Load(context.Background())
	assert.NotNil(t, log)
	assert.Empty(t, log)
}

func TestLoadCorruptIsEmpty(t *testing.T) {
	kv := store.NewMemoryKV()
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, Key, "{not json"))

	s := NewStore(kv, nil)
	assert.Empty(t, s.Load(ctx))

	raw, ok, _ := kv.Get(ctx, Key)
	assert.True(t, ok)
	assert.Equal(t, "{not json", raw, "corrupt data must not be overwritten by a load")
}

func TestLoadSkipsUnreadableAttempt(t *testing.T) {
	kv := store.NewMemoryKV()
	ctx := context.Background()
	raw := `[{"examId":"2024-summer","date":"2024-05-01T12:00:00.000Z","score":80,"correctAnswers":4,"totalQuestions":5,"answers":[]},{"examId":"x","date":"yesterday"}]`
	require.NoError(t, kv.Set(ctx, Key, raw))

	log := NewStore(kv, nil).Load(ctx)
	require.Len(t, log, 1)
	assert.Equal(t, "2024-summer", log[0].ExamID)
}

func TestAppendKeepsUnreadableAttempt(t *testing.T) {
	kv := store.NewMemoryKV()
	ctx := context.Background()
	unreadable := `{"examId":"2019-winter","date":"2019-11-30 10:00","score":40}`
	raw := `[{"examId":"2024-summer","date":"2024-05-01T12:00:00.000Z","score":80,"correctAnswers":4,"totalQuestions":5,"answers":[]},` + unreadable + `]`
	require.NoError(t, kv.Set(ctx, Key, raw))

	s := NewStore(kv, nil)
	log, err := s.Append(ctx, attempt("random", 100))
	require.NoError(t, err)
	require.Len(t, log, 2)

	stored, _, _ := kv.Get(ctx, Key)
	var items []json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(stored), &items))
	require.Len(t, items, 3)
	assert.JSONEq(t, unreadable, string(items[2]))
	assert.Contains(t, stored, `"date":"2019-11-30 10:00"`)
}

func TestLoadReadError(t *testing.T) {
	kv := store.NewMemoryKV()
	kv.Err = errors.New("locked")
	assert.Empty(t, NewStore(kv, nil).Load(context.Background()))
}

func TestLoadMigratesLegacyAttempts(t *testing.T) {
	kv := store.NewMemoryKV()
	ctx := context.Background()
	legacy := `[{"date":"2023-01-02T10:00:00.000Z","score":60,"correctAnswers":3,"totalQuestions":5,"answers":[]},{"examId":"2022-winter","date":"2022-12-01T10:00:00.000Z","score":40,"correctAnswers":2,"totalQuestions":5,"answers":[]}]`
	require.NoError(t, kv.Set(ctx, Key, legacy))

	s := NewStore(kv, nil)
	log := s.Load(ctx)
	require.Len(t, log, 2)
	assert.Equal(t, UnknownExamID, log[0].ExamID)
	assert.Equal(t, "2022-winter", log[1].ExamID)

	raw, _, _ := kv.Get(ctx, Key)
	assert.NotEqual(t, legacy, raw, "migrated log should be written back")

	again := s.Load(ctx)
	assert.Equal(t, log, again)
	raw2, _, _ := kv.Get(ctx, Key)
	assert.Equal(t, raw, raw2, "second load must not rewrite")
}

func TestSaveKeepsStoredDates(t *testing.T) {
	kv := store.NewMemoryKV()
	ctx := context.Background()
	legacy := `[{"date":"2023-01-02T10:00:00.000Z","score":60,"correctAnswers":3,"totalQuestions":5,"answers":[]},{"examId":"2022-winter","date":"2022-12-01T10:00:00.000Z","score":40,"correctAnswers":2,"totalQuestions":5,"answers":[]}]`
	require.NoError(t, kv.Set(ctx, Key, legacy))

	s := NewStore(kv, nil)
	require.Len(t, s.Load(ctx), 2)
	migrated, _, _ := kv.Get(ctx, Key)
	assert.Contains(t, migrated, `"examId":"`+UnknownExamID+`"`)
	assert.Contains(t, migrated, `"date":"2023-01-02T10:00:00.000Z"`)
	assert.Contains(t, migrated, `"date":"2022-12-01T10:00:00.000Z"`)

	_, err := s.Append(ctx, attempt("random", 100))
	require.NoError(t, err)
	appended, _, _ := kv.Get(ctx, Key)
	assert.Contains(t, appended, `"date":"2023-01-02T10:00:00.000Z"`)
	assert.Contains(t, appended, `"date":"2022-12-01T10:00:00.000Z"`)
}

func TestAppendPrependsAndPersists(t *testing.T) {
	kv := store.NewMemoryKV()
	ctx := context.Background()
	s := NewStore(kv, nil)

	first := attempt("2024-summer", 100, NewAnsweredQuestion("q1", "a", "a"))
	second := attempt("random", 0, NewAnsweredQuestion("q2", "b", "a"))

	_, err := s.Append(ctx, first)
	require.NoError(t, err)
	log, err := s.Append(ctx, second)
	require.NoError(t, err)

	require.Len(t, log, 2)
	assert.Equal(t, "random", log[0].ExamID)
	assert.Equal(t, "2024-summer", log[1].ExamID)

	reloaded := NewStore(kv, nil).Load(ctx)
	assert.Equal(t, log, reloaded)
}

func TestAppendWriteFailure(t *testing.T) {
	kv := store.NewMemoryKV()
	ctx := context.Background()
	s := NewStore(kv, nil)
	_, err := s.Append(ctx, attempt("2024-summer", 100))
	require.NoError(t, err)

	kv.Err = errors.New("quota exceeded")
	_, err = s.Append(ctx, attempt("2023-winter", 50))
	assert.Error(t, err)

	kv.Err = nil
	assert.Len(t, s.Load(ctx), 1)
}

func TestClear(t *testing.T) {
	kv := store.NewMemoryKV()
	ctx := context.Background()
	s := NewStore(kv, nil)
	_, err := s.Append(ctx, attempt("2024-summer", 100))
	require.NoError(t, err)

	require.NoError(t, s.Clear(ctx))
	assert.Empty(t, s.Load(ctx))
}

func TestMigrateIdempotent(t *testing.T) {
	log := Log{{ExamID: ""}, {ExamID: "2019-summer"}}
	once := Migrate(log)
	twice := Migrate(once)
	assert.Equal(t, once, twice)
	assert.Equal(t, "", log[0].ExamID, "input must not be mutated")
}

func TestPersistenceParseErrorUnwraps(t *testing.T) {
	inner := errors.New("bad")
	var err error = &PersistenceParseError{Key: Key, Err: inner}
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), Key)
}
