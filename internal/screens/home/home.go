// Package home is the exam selector, the screen every run starts from and
// returns to.
package home

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/medborger/internal/exam"
	"github.com/abhisek/medborger/internal/history"
	"github.com/abhisek/medborger/internal/i18n"
	"github.com/abhisek/medborger/internal/router"
	"github.com/abhisek/medborger/internal/screen"
	historyscreen "github.com/abhisek/medborger/internal/screens/history"
	"github.com/abhisek/medborger/internal/screens/quiz"
	"github.com/abhisek/medborger/internal/ui/components"
	"github.com/abhisek/medborger/internal/ui/layout"
)

// UpdateCheck reports a newer release version, or "" when there is none.
type UpdateCheck func(ctx context.Context) string

type updateCheckedMsg struct {
	Latest string
}

// HomeScreen lists the exams with their best scores.
type HomeScreen struct {
	deps        *screen.Deps
	menu        components.Menu
	log         history.Log
	wrongCount  int
	notice      string
	noticeErr   bool
	latest      string
	checkUpdate UpdateCheck
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates the exam selector. checkUpdate may be nil.
func New(deps *screen.Deps, checkUpdate UpdateCheck) *HomeScreen {
	h := &HomeScreen{deps: deps, checkUpdate: checkUpdate}
	h.refresh()
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	if h.checkUpdate == nil {
		return nil
	}
	check := h.checkUpdate
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return updateCheckedMsg{Latest: check(ctx)}
	}
}

func (h *HomeScreen) Title() string {
	return h.deps.T.T("app.title")
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Description: h.deps.T.T("examSelector.help")}}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case router.ResumedMsg:
		h.refresh()
		return h, nil

	case updateCheckedMsg:
		h.latest = msg.Latest
		return h, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "q":
			return h, tea.Quit
		case "h":
			return h, h.openHistory()
		case "l":
			h.nextLanguage()
			return h, nil
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

// refresh reloads the history and rebuilds the menu, keeping the selection.
func (h *HomeScreen) refresh() {
	h.log = h.deps.History.Load(context.Background())
	h.wrongCount = len(history.WrongAnswers(h.log))

	selected := h.menu.Selected
	h.menu = components.NewMenu(h.items())
	if selected > 0 && selected < len(h.menu.Items) {
		h.menu.Selected = selected
	}
}

func (h *HomeScreen) items() []components.MenuItem {
	t := h.deps.T
	var items []components.MenuItem

	for _, d := range exam.SortForSelector(h.deps.Catalog.List()) {
		id := d.ID
		label := h.deps.ExamName(id)
		if d.IsRandom() {
			label = t.Td("examSelector.randomQuestions", map[string]any{"Count": exam.RandomQuestionCount})
		}
		items = append(items, components.MenuItem{
			Label:  label,
			Detail: h.detail(id),
			Action: func() tea.Cmd { return h.start(id) },
		})
	}

	if h.wrongCount > 0 {
		items = append(items, components.MenuItem{
			Label:  t.T("examSelector.practiceWrongAnswers"),
			Detail: t.Tp("examSelector.wrongAnswersCount", h.wrongCount),
			Action: func() tea.Cmd { return h.start(exam.WrongAnswersID) },
		})
	}

	items = append(items,
		components.MenuItem{Label: t.T("app.reviewHistory"), Action: h.openHistory},
		components.MenuItem{Label: t.T("app.quit"), Action: func() tea.Cmd { return tea.Quit }},
	)
	return items
}

// detail shows the best score of an attempted exam.
func (h *HomeScreen) detail(id string) string {
	if !history.HasAttempted(h.log, id) {
		return ""
	}
	best, _ := history.BestScore(h.log, id)
	return "✓ " + h.deps.T.T("examSelector.attempted") + " · " +
		h.deps.T.Td("examSelector.bestScore", map[string]any{"Score": best})
}

// start issues the load for id and opens the quiz screen to run it.
func (h *HomeScreen) start(id string) tea.Cmd {
	req, err := h.deps.Machine.Begin(context.Background(), id)
	if err != nil {
		h.deps.Logger.Warn("cannot start exam", "exam", id, "err", err)
		return nil
	}
	h.notice = ""
	qs := quiz.New(h.deps, req)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: qs}
	}
}

func (h *HomeScreen) openHistory() tea.Cmd {
	hs := historyscreen.New(h.deps)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: hs}
	}
}

// nextLanguage switches to the next shipped language and remembers it.
func (h *HomeScreen) nextLanguage() {
	langs := i18n.Languages()
	next := langs[0]
	for i, l := range langs {
		if l.Code == h.deps.T.Lang() {
			next = langs[(i+1)%len(langs)]
			break
		}
	}

	t, err := i18n.New(next.Code)
	if err != nil {
		h.deps.Logger.Error("load translations", "lang", next.Code, "err", err)
		return
	}
	if err := i18n.SavePreference(context.Background(), h.deps.KV, next.Code); err != nil {
		h.deps.Logger.Warn("save language preference", "lang", next.Code, "err", err)
	}
	h.deps.T = t
	h.notice = t.Td("lang.changed", map[string]any{"Name": next.Name})
	h.noticeErr = false

	selected := h.menu.Selected
	h.menu = components.NewMenu(h.items())
	h.menu.Selected = selected
}
