// Package history lists past attempts, newest first, with their incorrect
// answers on demand.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	hist "github.com/abhisek/medborger/internal/history"
	"github.com/abhisek/medborger/internal/router"
	"github.com/abhisek/medborger/internal/screen"
	"github.com/abhisek/medborger/internal/ui/components"
	"github.com/abhisek/medborger/internal/ui/layout"
	"github.com/abhisek/medborger/internal/ui/theme"
)

type historyLoadedMsg struct {
	Log hist.Log
}

// HistoryScreen displays past attempts.
type HistoryScreen struct {
	deps     *screen.Deps
	attempts hist.Log
	selected int
	expanded map[string]bool
	loaded   bool
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(deps *screen.Deps) *HistoryScreen {
	return &HistoryScreen{
		deps:     deps,
		expanded: make(map[string]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	store := s.deps.History
	return func() tea.Msg {
		return historyLoadedMsg{Log: store.Load(context.Background())}
	}
}

func (s *HistoryScreen) Title() string {
	return s.deps.T.T("results.historyTitle")
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Description: s.deps.T.T("results.historyHelp")}}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		// The log is stored newest first.
		s.attempts = msg.Log
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.attempts)-1 {
				s.selected++
			}
		case "enter":
			if s.selected < len(s.attempts) {
				id := s.attempts[s.selected].ID
				s.expanded[id] = !s.expanded[id]
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	t := s.deps.T
	cw := min(max(width-8, 20), 80)

	if !s.loaded {
		return ""
	}
	if len(s.attempts) == 0 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(t.T("results.noHistory")))
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render(t.T("results.historyReviewTitle")))
	b.WriteString("\n\n")

	for i, a := range s.attempts {
		b.WriteString(s.renderRow(i, a))
		b.WriteString("\n")
		if s.expanded[a.ID] {
			b.WriteString(s.renderIncorrect(a, cw))
		}
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top,
		lipgloss.NewStyle().Width(cw).Render(b.String()))
}

func (s *HistoryScreen) renderRow(i int, a hist.Attempt) string {
	t := s.deps.T

	prefix := "  "
	nameStyle := lipgloss.NewStyle().Foreground(theme.Text)
	if i == s.selected {
		prefix = "▸ "
		nameStyle = nameStyle.Foreground(theme.Primary).Bold(true)
	}

	score := lipgloss.NewStyle().Foreground(components.HistoryColor(a.Score)).Bold(true).
		Render(fmt.Sprintf("%3d%%", a.Score))
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	line := prefix +
		dim.Render(a.Date.Local().Format("2006-01-02 15:04")) + "  " +
		nameStyle.Render(s.deps.ExamName(a.ExamID)) + "  " +
		score + "  " +
		dim.Render(fmt.Sprintf("%d/%d", a.CorrectAnswers, a.TotalQuestions))

	if n := a.IncorrectCount(); n > 0 {
		line += "  " + lipgloss.NewStyle().Foreground(theme.Error).Render(t.Tp("results.incorrectCount", n))
	}
	if a.TimeExpired {
		line += "  " + theme.Badge.Background(theme.Warning).Render(t.T("results.timeExpired"))
	}
	return line
}

func (s *HistoryScreen) renderIncorrect(a hist.Attempt, cw int) string {
	t := s.deps.T
	indent := lipgloss.NewStyle().PaddingLeft(4).Width(cw)

	var wrong []hist.AnsweredQuestion
	for _, ans := range a.Answers {
		if !ans.IsCorrect {
			wrong = append(wrong, ans)
		}
	}
	if len(wrong) == 0 {
		return indent.Inherit(theme.Correct).Render(t.T("results.allCorrect")) + "\n"
	}

	var b strings.Builder
	for _, ans := range wrong {
		b.WriteString(indent.Foreground(theme.Text).Render(ans.Question))
		b.WriteString("\n")
		b.WriteString(indent.PaddingLeft(6).Render(
			t.T("results.userAnswer") + ": " + theme.Incorrect.Render(ans.UserAnswer) + "   " +
				t.T("results.correctAnswer") + ": " + theme.Correct.Render(ans.CorrectAnswer)))
		b.WriteString("\n")
	}
	return b.String()
}
