// Package quiz runs one exam: it waits for the questions, shows them one at
// a time against the countdown, and hands the finished attempt to the
// results screen.
package quiz

import (
	"context"
	"errors"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/medborger/internal/history"
	"github.com/abhisek/medborger/internal/router"
	"github.com/abhisek/medborger/internal/screen"
	"github.com/abhisek/medborger/internal/screens/results"
	sess "github.com/abhisek/medborger/internal/session"
	"github.com/abhisek/medborger/internal/ui/components"
	"github.com/abhisek/medborger/internal/ui/layout"
	"github.com/abhisek/medborger/internal/ui/theme"
)

// FeedbackDelay is how long the verdict on an answer stays up.
var FeedbackDelay = time.Second

// QuizScreen implements screen.Screen for a running exam.
type QuizScreen struct {
	deps    *screen.Deps
	req     sess.LoadRequest
	spinner spinner.Model

	loading bool
	errMsg  string
	mc      components.MultiChoice

	feedback   *history.AnsweredQuestion
	confirming bool
	confirmYes bool
	done       bool
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a quiz screen for a load issued by Machine.Begin.
func New(deps *screen.Deps, req sess.LoadRequest) *QuizScreen {
	return &QuizScreen{
		deps:    deps,
		req:     req,
		loading: true,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Primary)),
		),
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	req, loader := s.req, s.deps.Loader
	return tea.Batch(
		s.spinner.Tick,
		func() tea.Msg {
			return loadedMsg{Result: req.Run(context.Background(), loader)}
		},
	)
}

func (s *QuizScreen) Title() string {
	if s.req.Practice {
		return s.deps.T.T("quiz.practiceMode")
	}
	return s.deps.T.T("quiz.title")
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.confirming:
		return []layout.KeyHint{
			{Key: "Y", Description: s.deps.T.T("quiz.cancel")},
			{Key: "N", Description: "←"},
		}
	case s.loading, s.errMsg != "", s.feedback != nil:
		return nil
	}
	return []layout.KeyHint{{Description: s.deps.T.T("quiz.help")}}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		return s.handleLoaded(msg)

	case spinner.TickMsg:
		if !s.loading {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case timerTickMsg:
		return s.handleTimerTick(msg)

	case feedbackDoneMsg:
		return s.handleFeedbackDone()

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleLoaded(msg loadedMsg) (screen.Screen, tea.Cmd) {
	err := s.deps.Machine.Start(msg.Result)
	if errors.Is(err, sess.ErrStaleLoad) {
		return s, nil
	}
	s.loading = false
	if err != nil {
		s.errMsg = s.deps.T.T("examSelector.noQuestions")
		return s, nil
	}
	s.setQuestion()
	return s, tickCmd(s.deps.Countdown.Generation())
}

// handleTimerTick advances the countdown. The machine finalizes the run
// itself when it reaches zero.
func (s *QuizScreen) handleTimerTick(msg timerTickMsg) (screen.Screen, tea.Cmd) {
	if s.deps.Countdown.Advance(msg.Gen) {
		return s, tickCmd(msg.Gen)
	}
	if s.deps.Machine.Phase() == sess.PhaseCompleted {
		return s, s.finish()
	}
	return s, nil
}

func (s *QuizScreen) handleFeedbackDone() (screen.Screen, tea.Cmd) {
	s.feedback = nil
	if s.deps.Machine.Phase() == sess.PhaseCompleted {
		return s, s.finish()
	}
	s.setQuestion()
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.loading {
		if key == "esc" {
			s.deps.Machine.Cancel()
			return s, popCmd()
		}
		return s, nil
	}
	if s.errMsg != "" {
		return s, popCmd()
	}
	if s.done || s.feedback != nil {
		return s, nil
	}

	if s.confirming {
		switch key {
		case "y", "Y":
			return s, s.cancel()
		case "n", "N", "esc":
			s.confirming = false
		case "left", "right", "tab", "h", "l":
			s.confirmYes = !s.confirmYes
		case "enter":
			if s.confirmYes {
				return s, s.cancel()
			}
			s.confirming = false
		}
		return s, nil
	}

	if key == "esc" {
		s.confirming = true
		s.confirmYes = false
		return s, nil
	}

	var cmd tea.Cmd
	s.mc, cmd = s.mc.Update(msg)
	if chosen, ok := s.mc.Chosen(); ok {
		return s, s.submit(chosen)
	}
	return s, cmd
}

func (s *QuizScreen) submit(option string) tea.Cmd {
	ans, err := s.deps.Machine.SubmitAnswer(context.Background(), option)
	if err != nil {
		s.deps.Logger.Warn("submit answer", "err", err)
		return nil
	}
	s.feedback = &ans
	return tea.Tick(FeedbackDelay, func(time.Time) tea.Msg {
		return feedbackDoneMsg{}
	})
}

func (s *QuizScreen) cancel() tea.Cmd {
	s.confirming = false
	s.done = true
	s.deps.Machine.Cancel()
	return popCmd()
}

// setQuestion shows the machine's current question.
func (s *QuizScreen) setQuestion() {
	st := s.deps.Machine.State()
	q, ok := st.CurrentQuestion()
	if !ok {
		return
	}
	s.mc = components.NewMultiChoice(q.Text, q.Options, q.Answer)
}

// finish replaces the quiz with the results of the finalized attempt. It
// runs at most once, whether the last answer or the countdown got there
// first.
func (s *QuizScreen) finish() tea.Cmd {
	if s.done {
		return nil
	}
	attempt, ok := s.deps.Machine.LastAttempt()
	if !ok {
		return nil
	}
	s.done = true
	rs := results.New(s.deps, attempt)
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: rs}
	}
}

func tickCmd(gen uint64) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return timerTickMsg{Gen: gen}
	})
}

func popCmd() tea.Cmd {
	return func() tea.Msg { return router.PopScreenMsg{} }
}
