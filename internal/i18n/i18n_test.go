package i18n

import (
	"context"
	"errors"
	"testing"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/medborger/internal/store"
)

func TestMatch(t *testing.T) {
	tests := map[string]string{
		"en":    "en",
		"en-US": "en",
		"zh":    "zh",
		"zh-CN": "zh",
		"vi":    "vi",
		"vi-VN": "vi",
		"da":    "en",
		"":      "en",
		"%%":    "en",
	}
	for pref, want := range tests {
		assert.Equal(t, want, Match(pref), "Match(%q)", pref)
	}
}

func TestTranslate_AllLanguages(t *testing.T) {
	en := MustNew("en")
	zh := MustNew("zh")
	vi := MustNew("vi")

	assert.Equal(t, "Danish Citizenship Test", en.T("app.title"))
	assert.Equal(t, "丹麦入籍考试", zh.T("app.title"))
	assert.Equal(t, "Bài thi quốc tịch Đan Mạch", vi.T("app.title"))

	assert.Equal(t, "Excellent! You are well prepared for the citizenship test.", en.T("results.feedback.expert"))
	assert.Equal(t, "zh", zh.Lang())
}

func TestTranslate_TemplatesAndPlurals(t *testing.T) {
	en := MustNew("en")

	assert.Equal(t, "Question 3 of 25", en.Td("quiz.question", map[string]any{"Current": 3, "Total": 25}))
	assert.Equal(t, "1 question", en.Tp("examSelector.wrongAnswersCount", 1))
	assert.Equal(t, "7 questions", en.Tp("examSelector.wrongAnswersCount", 7))
	assert.Equal(t, "7 道题", MustNew("zh").Tp("examSelector.wrongAnswersCount", 7))
}

func TestTranslate_MissingFallsBack(t *testing.T) {
	tr := MustNew("en")
	assert.Equal(t, "no.such.message", tr.T("no.such.message"))
}

func TestTranslate_EveryEnglishKeyExistsInOtherLanguages(t *testing.T) {
	bundle, err := loadBundle()
	require.NoError(t, err)

	ids := []string{
		"app.title", "app.selectExam", "app.reviewHistory",
		"examSelector.randomQuestions", "examSelector.practiceWrongAnswers",
		"quiz.practiceMode", "quiz.confirmCancel", "quiz.incorrect",
		"results.apiKeyMissing", "results.aiExplanationError", "results.timeExpired",
		"results.feedback.expert", "results.feedback.advanced",
		"results.feedback.intermediate", "results.feedback.beginner",
	}
	for _, code := range []string{"zh", "vi"} {
		loc := goi18n.NewLocalizer(bundle, code)
		for _, id := range ids {
			_, err := loc.Localize(&goi18n.LocalizeConfig{MessageID: id})
			assert.NoError(t, err, "%s missing %s", code, id)
		}
	}
}

func TestPreference(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()

	assert.Equal(t, "", LoadPreference(ctx, kv))
	assert.Equal(t, "en", Resolve(ctx, kv, ""))

	require.NoError(t, SavePreference(ctx, kv, "vi"))
	raw, ok, _ := kv.Get(ctx, PreferenceKey)
	require.True(t, ok)
	assert.Equal(t, "vi", raw)
	assert.Equal(t, "vi", Resolve(ctx, kv, ""))
	assert.Equal(t, "zh", Resolve(ctx, kv, "zh-CN"))

	err := SavePreference(ctx, kv, "da")
	assert.True(t, errors.Is(err, ErrUnsupported))
}

func TestPreference_BrowserStyleValue(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	require.NoError(t, kv.Set(ctx, PreferenceKey, "zh-CN"))

	assert.Equal(t, "zh", LoadPreference(ctx, kv))
}

func TestPreference_ReadError(t *testing.T) {
	kv := store.NewMemoryKV()
	kv.Err = errors.New("locked")

	assert.Equal(t, "en", Resolve(context.Background(), kv, ""))
}

func TestLanguages(t *testing.T) {
	langs := Languages()
	require.Len(t, langs, 3)
	assert.Equal(t, "en", langs[0].Code)
	assert.Equal(t, "Vietnamese", langs[2].English)
	assert.NotEmpty(t, langs[1].Name)
}
