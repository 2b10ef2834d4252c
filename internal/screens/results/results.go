// Package results shows a finished attempt: the score and its feedback, the
// answers that went wrong, and AI explanations for them on request.
package results

import (
	"context"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/medborger/internal/explain"
	"github.com/abhisek/medborger/internal/history"
	"github.com/abhisek/medborger/internal/router"
	"github.com/abhisek/medborger/internal/screen"
	"github.com/abhisek/medborger/internal/session"
	"github.com/abhisek/medborger/internal/ui/layout"
	"github.com/abhisek/medborger/internal/ui/theme"
)

// explanation is what is known about one question's explanation.
type explanation struct {
	text  string
	msgID string // set when the request failed
}

// ResultsScreen displays the outcome of one attempt.
type ResultsScreen struct {
	deps    *screen.Deps
	attempt history.Attempt
	summary session.Summary
	spinner spinner.Model

	showAll      bool
	selected     int
	explanations map[string]explanation
	polling      bool
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates the results screen for a finalized attempt.
func New(deps *screen.Deps, attempt history.Attempt) *ResultsScreen {
	return &ResultsScreen{
		deps:         deps,
		attempt:      attempt,
		summary:      session.Summarize(attempt),
		explanations: make(map[string]explanation),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Accent)),
		),
	}
}

func (s *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultsScreen) Title() string {
	return s.deps.T.T("results.title")
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Description: s.deps.T.T("results.help")}}
}

// rows are the answers listed below the score.
func (s *ResultsScreen) rows() []history.AnsweredQuestion {
	if s.showAll {
		return s.attempt.Answers
	}
	return s.summary.Incorrect
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		s.collect()
		if !s.deps.Explain.Pending() {
			s.polling = false
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		rows := s.rows()
		switch msg.String() {
		case "enter", "esc", "q":
			s.deps.Machine.Restart()
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(rows)-1 {
				s.selected++
			}
		case "r":
			s.showAll = !s.showAll
			s.selected = 0
		case "e":
			if s.selected < len(rows) {
				return s, s.explain(rows[s.selected])
			}
		}
	}
	return s, nil
}

// explain requests an explanation for ans. Cached ones show at once; others
// load in the background while the spinner polls for them.
func (s *ResultsScreen) explain(ans history.AnsweredQuestion) tea.Cmd {
	if e, ok := s.explanations[ans.Question]; ok && e.msgID == "" {
		return nil
	}
	ctx := context.Background()
	if text, ok := s.deps.Explain.Cached(ctx, ans.Question); ok {
		s.explanations[ans.Question] = explanation{text: text}
		return nil
	}

	delete(s.explanations, ans.Question)
	s.deps.Explain.Request(ctx, explain.Request{
		Question:      ans.Question,
		CorrectAnswer: ans.CorrectAnswer,
		Language:      s.deps.T.Lang(),
	})
	if s.polling {
		return nil
	}
	s.polling = true
	return s.spinner.Tick
}

// collect stores finished explanation requests.
func (s *ResultsScreen) collect() {
	for _, r := range s.deps.Explain.Consume() {
		if r.Err != nil {
			s.explanations[r.Question] = explanation{msgID: explain.MessageID(r.Err)}
			continue
		}
		s.explanations[r.Question] = explanation{text: r.Text}
	}
}
