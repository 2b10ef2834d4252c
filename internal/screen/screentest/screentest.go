// Package screentest builds screen dependencies over in-memory storage for
// screen tests.
package screentest

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"testing"
	"testing/fstest"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/medborger/internal/exam"
	"github.com/abhisek/medborger/internal/explain"
	"github.com/abhisek/medborger/internal/history"
	"github.com/abhisek/medborger/internal/i18n"
	"github.com/abhisek/medborger/internal/llm"
	"github.com/abhisek/medborger/internal/screen"
	"github.com/abhisek/medborger/internal/session"
	"github.com/abhisek/medborger/internal/store"
)

// SummerID and WinterID are the official exams of the test catalog.
const (
	SummerID = "2024-summer"
	WinterID = "2023-winter"
)

// Questions returns n questions whose answer is always "right".
func Questions(prefix string, n int) []exam.Question {
	qs := make([]exam.Question, n)
	for i := range qs {
		qs[i] = exam.Question{
			Text:    fmt.Sprintf("%s %d?", prefix, i+1),
			Options: []string{"right", "wrong"},
			Answer:  "right",
		}
	}
	return qs
}

// Banks serves summer and winter as the two official bank files.
func Banks(t *testing.T, summer, winter []exam.Question) fstest.MapFS {
	t.Helper()
	fs := fstest.MapFS{}
	for path, qs := range map[string][]exam.Question{
		"2024/summer/a.json": summer,
		"2023/winter/b.json": winter,
	} {
		if qs == nil {
			continue
		}
		data, err := json.Marshal(qs)
		if err != nil {
			t.Fatalf("marshal bank: %v", err)
		}
		fs[path] = &fstest.MapFile{Data: data}
	}
	return fs
}

// NewDeps wires real components over banks and an in-memory kv. A nil
// provider leaves explanations unconfigured.
func NewDeps(t *testing.T, banks fstest.MapFS, provider llm.Provider) *screen.Deps {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)

	catalog, err := exam.NewCatalog([]exam.Descriptor{
		{ID: exam.RandomID},
		{ID: SummerID, Year: 2024, Season: exam.Summer, Source: "2024/summer/a.json"},
		{ID: WinterID, Year: 2023, Season: exam.Winter, Source: "2023/winter/b.json"},
	})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}

	kv := store.NewMemoryKV()
	hist := history.NewStore(kv, logger)
	countdown := session.NewCountdown()
	loader := exam.NewLoader(catalog, banks,
		exam.WithRand(rand.New(rand.NewPCG(1, 2))),
		exam.WithLogger(logger))

	svc := explain.NewService(provider, explain.NewCache(kv, logger), explain.DefaultConfig(), logger)

	return &screen.Deps{
		Catalog:   catalog,
		Loader:    loader,
		History:   hist,
		Machine:   session.NewMachine(catalog, hist, countdown, session.WithLogger(logger)),
		Countdown: countdown,
		Explain:   svc,
		KV:        kv,
		T:         i18n.MustNew("en"),
		Logger:    logger,
	}
}

// Key builds a key press for a printable key or a named special key.
func Key(k string) tea.KeyPressMsg {
	switch k {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "left":
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}
	}
	r := []rune(k)[0]
	return tea.KeyPressMsg{Code: r, Text: k}
}

// Run executes cmd and returns its messages, flattening batches. Commands
// that block on a timer are skipped.
func Run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, Run(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}
