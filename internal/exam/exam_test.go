package exam

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math/rand/v2"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/medborger/internal/history"
)

func bank(t *testing.T, qs ...Question) *fstest.MapFile {
	t.Helper()
	data, err := json.Marshal(qs)
	require.NoError(t, err)
	return &fstest.MapFile{Data: data}
}

func q(text, answer string, others ...string) Question {
	return Question{Text: text, Options: append([]string{answer}, others...), Answer: answer}
}

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog([]Descriptor{
		{ID: RandomID},
		official(2024, Summer, "a.json"),
		official(2023, Winter, "b.json"),
	})
	require.NoError(t, err)
	return c
}

func newTestLoader(t *testing.T, banks fs.FS) *Loader {
	return NewLoader(testCatalog(t), banks, WithRand(rand.New(rand.NewPCG(1, 2))))
}

func TestCatalogLookup(t *testing.T) {
	c := DefaultCatalog()

	d, err := c.ByID("2024-summer")
	require.NoError(t, err)
	assert.Equal(t, 2024, d.Year)
	assert.Equal(t, Summer, d.Season)
	assert.Equal(t, "2024/summer/medborgerskabsproeven_2024_05_full.json", d.Source)

	_, err = c.ByID("1999-summer")
	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)

	r, err := c.ByID(RandomID)
	require.NoError(t, err)
	assert.True(t, r.IsRandom())
	assert.Len(t, c.Official(), len(c.List())-1)
}

func TestNewCatalogRejectsBadRegistry(t *testing.T) {
	_, err := NewCatalog([]Descriptor{official(2020, Summer, "x.json"), official(2020, Summer, "y.json")})
	assert.Error(t, err)

	_, err = NewCatalog([]Descriptor{{ID: "2020-summer"}})
	assert.Error(t, err)
}

func TestSortForSelector(t *testing.T) {
	in := []Descriptor{
		official(2019, Summer, "s"),
		official(2024, Summer, "s"),
		{ID: RandomID},
		official(2024, Winter, "w"),
	}
	got := SortForSelector(in)
	ids := make([]string, len(got))
	for i, d := range got {
		ids[i] = d.ID
	}
	assert.Equal(t, []string{"random", "2024-winter", "2024-summer", "2019-summer"}, ids)
}

func TestQuestionValidate(t *testing.T) {
	assert.NoError(t, q("Hvad?", "Ja", "Nej").Validate())
	assert.Error(t, Question{Options: []string{"a"}, Answer: "a"}.Validate())
	assert.Error(t, Question{Text: "x", Answer: "a"}.Validate())
	assert.Error(t, Question{Text: "x", Options: []string{"a", "b"}, Answer: "c"}.Validate())
}

func TestLoadOfficialKeepsFileOrder(t *testing.T) {
	banks := fstest.MapFS{
		"2024/summer/a.json": bank(t, q("one", "1", "x"), q("two", "2", "y"), Question{Text: "broken", Options: []string{"a"}, Answer: "z"}),
	}
	l := newTestLoader(t, banks)
	d, _ := l.catalog.ByID("2024-summer")

	got, err := l.Load(context.Background(), d)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "one", got[0].Text)
	assert.Equal(t, "two", got[1].Text)
}

func TestLoadMissingBank(t *testing.T) {
	l := newTestLoader(t, fstest.MapFS{})
	d, _ := l.catalog.ByID("2023-winter")

	got, err := l.Load(context.Background(), d)
	assert.Empty(t, got)
	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "2023-winter", le.ExamID)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestLoadMalformedBank(t *testing.T) {
	banks := fstest.MapFS{"2024/summer/a.json": {Data: []byte(`{"question":`)}}
	l := newTestLoader(t, banks)
	d, _ := l.catalog.ByID("2024-summer")

	_, err := l.Load(context.Background(), d)
	var le *LoadError
	assert.ErrorAs(t, err, &le)
}

func TestLoadRandomDedupesAndTruncates(t *testing.T) {
	var a, b []Question
	for i := 0; i < 20; i++ {
		a = append(a, q(fmt.Sprintf("Q%d", i), "old", "x"))
	}
	for i := 10; i < 30; i++ {
		b = append(b, q(fmt.Sprintf("Q%d", i), "new", "y"))
	}
	banks := fstest.MapFS{
		"2024/summer/a.json": bank(t, a...),
		"2023/winter/b.json": bank(t, b...),
	}
	l := newTestLoader(t, banks)

	got, err := l.Load(context.Background(), Descriptor{ID: RandomID})
	require.NoError(t, err)
	assert.Len(t, got, RandomQuestionCount)

	seen := map[string]bool{}
	for _, qq := range got {
		assert.False(t, seen[qq.Text], "duplicate %q", qq.Text)
		seen[qq.Text] = true
		assert.NotEmpty(t, qq.Source)
	}
}

func TestLoadRandomLastSeenWins(t *testing.T) {
	banks := fstest.MapFS{
		"2024/summer/a.json": bank(t, q("shared", "from 2024", "x")),
		"2023/winter/b.json": bank(t, q("shared", "from 2023", "x"), q("only", "o", "p")),
	}
	l := newTestLoader(t, banks)

	got, err := l.Load(context.Background(), Descriptor{ID: RandomID})
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, qq := range got {
		if qq.Text == "shared" {
			assert.Equal(t, "from 2023", qq.Answer)
			assert.Equal(t, "2023 winter", qq.Source)
		}
	}
}

func TestLoadRandomSmallPool(t *testing.T) {
	banks := fstest.MapFS{
		"2024/summer/a.json": bank(t, q("a", "1", "2"), q("b", "1", "2")),
	}
	l := newTestLoader(t, banks)

	got, err := l.Load(context.Background(), Descriptor{ID: RandomID})
	require.NoError(t, err, "a missing bank is skipped when others load")
	assert.Len(t, got, 2)
}

func TestLoadRandomAllBanksMissing(t *testing.T) {
	l := newTestLoader(t, fstest.MapFS{})
	got, err := l.Load(context.Background(), Descriptor{ID: RandomID})
	assert.Empty(t, got)
	var le *LoadError
	assert.ErrorAs(t, err, &le)
}

func TestLoadCancelledContext(t *testing.T) {
	l := newTestLoader(t, fstest.MapFS{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := l.Load(ctx, Descriptor{ID: RandomID})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadPractice(t *testing.T) {
	banks := fstest.MapFS{
		"2024/summer/a.json": bank(t, q("known", "ja", "nej", "måske")),
		"2023/winter/b.json": bank(t, q("known", "other", "x")),
	}
	l := newTestLoader(t, banks)

	wrong := []history.WrongAnswer{
		{Question: "known", Answer: "ja"},
		{Question: "retired", Answer: "1864"},
	}
	got, err := l.LoadPractice(context.Background(), wrong)
	require.NoError(t, err)
	require.Len(t, got, 2)

	byText := map[string]Question{}
	for _, qq := range got {
		byText[qq.Text] = qq
	}
	assert.Equal(t, []string{"ja", "nej", "måske"}, byText["known"].Options, "first matching bank wins")
	assert.Equal(t, []string{"1864"}, byText["retired"].Options)
	assert.Equal(t, "1864", byText["retired"].Answer)
}

func TestLoadPracticeMatchIsExact(t *testing.T) {
	banks := fstest.MapFS{
		"2024/summer/a.json": bank(t, q("Hvem er statsminister?", "A", "B")),
	}
	l := newTestLoader(t, banks)

	got, err := l.LoadPractice(context.Background(), []history.WrongAnswer{{Question: "hvem er statsminister? ", Answer: "A"}})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"A"}, got[0].Options)
}
