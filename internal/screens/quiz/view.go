package quiz

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/medborger/internal/exam"
	"github.com/abhisek/medborger/internal/ui/components"
	"github.com/abhisek/medborger/internal/ui/theme"
)

func contentWidth(width int) int {
	return min(max(width-8, 20), 76)
}

func (s *QuizScreen) View(width, height int) string {
	switch {
	case s.loading:
		return s.renderCentered(width, height,
			s.spinner.View()+" "+s.deps.T.T("examSelector.loading"), theme.TextDim)
	case s.errMsg != "":
		return s.renderCentered(width, height, s.errMsg, theme.Error)
	}

	body := s.renderQuestion(contentWidth(width))
	if s.confirming {
		body += "\n\n" + s.renderConfirm(contentWidth(width))
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func (s *QuizScreen) renderCentered(width, height int, text string, fg color.Color) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Foreground(fg).Render(text))
}

func (s *QuizScreen) renderQuestion(cw int) string {
	st := s.deps.Machine.State()
	t := s.deps.T
	var b strings.Builder

	// Info line: position or practice badge on the left, clock on the right.
	var left string
	if st.PracticeMode {
		left = theme.PracticeBadge.Render(t.T("quiz.practiceMode")) + "  "
	}
	left += lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(
		t.Td("quiz.question", map[string]any{
			"Current": min(st.CurrentIndex+1, len(st.Questions)),
			"Total":   len(st.Questions),
		}))
	right := components.Clock(st.TimeRemaining)
	pad := max(cw-lipgloss.Width(left)-lipgloss.Width(right), 1)
	b.WriteString(left + strings.Repeat(" ", pad) + right)
	b.WriteString("\n")

	b.WriteString(components.NewProgressBar(len(st.Answers), len(st.Questions), cw).View())
	b.WriteString("\n\n")

	b.WriteString(s.mc.View(cw))

	// Mixed question sets name the sitting each question comes from.
	mixed := st.PracticeMode || st.ExamID == exam.RandomID
	if q, ok := st.CurrentQuestion(); ok && mixed && q.Source != "" && s.feedback == nil {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render(q.Source))
	}

	if s.feedback != nil {
		b.WriteString("\n")
		if s.feedback.IsCorrect {
			b.WriteString(theme.Correct.Render(t.T("quiz.correct")))
		} else {
			b.WriteString(theme.Incorrect.Width(cw).Render(
				t.Td("quiz.incorrect", map[string]any{"Answer": s.feedback.CorrectAnswer})))
		}
	}
	return b.String()
}

func (s *QuizScreen) renderConfirm(cw int) string {
	t := s.deps.T
	text := theme.Prompt.Width(cw - 4).
		Align(lipgloss.Center).Render(t.T("quiz.confirmCancel"))
	buttons := components.ButtonRow(
		components.NewButton(t.T("quiz.cancel"), s.confirmYes),
		components.NewButton("←", !s.confirmYes),
	)
	return theme.Card.Width(cw).Render(
		lipgloss.JoinVertical(lipgloss.Center, text, "", buttons))
}
