package results

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/medborger/internal/session"
	"github.com/abhisek/medborger/internal/ui/components"
	"github.com/abhisek/medborger/internal/ui/theme"
)

func (s *ResultsScreen) View(width, height int) string {
	t := s.deps.T
	sum := s.summary
	cw := min(max(width-8, 20), 76)
	center := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center)

	var b strings.Builder

	b.WriteString(center.Inherit(theme.Title).Render(s.deps.ExamName(sum.ExamID)))
	b.WriteString("\n\n")
	b.WriteString(center.Render(components.ScoreBadge(sum.Percent)))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.Text).Render(
		t.Td("results.correctCount", map[string]any{"Correct": sum.Correct, "Total": sum.Total})))
	b.WriteString("\n")
	b.WriteString(center.Foreground(components.BandColor(session.BandFor(sum.Percent))).Render(
		t.T(sum.Tier.MessageID())))
	b.WriteString("\n")

	if sum.TimeExpired {
		b.WriteString(center.Foreground(theme.Warning).Bold(true).Render("⏱ " + t.T("results.timeExpired")))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	heading := t.T("results.reviewIncorrect")
	if s.showAll {
		heading = t.T("results.review")
	}
	b.WriteString(theme.Subtitle.Render(heading))
	b.WriteString("\n")
	b.WriteString(theme.Rule.Render(strings.Repeat("─", cw)))
	b.WriteString("\n")

	rows := s.rows()
	if len(rows) == 0 {
		b.WriteString(theme.Correct.Render(t.T("results.allCorrect")))
		b.WriteString("\n")
	}
	for i := range rows {
		b.WriteString(s.renderAnswer(i, cw))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, b.String())
}

func (s *ResultsScreen) renderAnswer(i, cw int) string {
	t := s.deps.T
	ans := s.rows()[i]
	selected := i == s.selected

	prefix := "  "
	qStyle := lipgloss.NewStyle().Foreground(theme.Text).Width(cw - 2)
	if selected {
		prefix = "▸ "
		qStyle = qStyle.Foreground(theme.Primary).Bold(true)
	}

	var b strings.Builder
	b.WriteString(prefix + qStyle.Render(fmt.Sprintf("%d. %s", i+1, ans.Question)))
	b.WriteString("\n")

	indent := lipgloss.NewStyle().PaddingLeft(4).Width(cw)
	answerStyle := theme.Correct
	if !ans.IsCorrect {
		answerStyle = theme.Incorrect
	}
	b.WriteString(indent.Render(t.T("results.userAnswer") + ": " + answerStyle.Render(ans.UserAnswer)))
	b.WriteString("\n")
	if !ans.IsCorrect {
		b.WriteString(indent.Render(t.T("results.correctAnswer") + ": " + theme.Correct.Render(ans.CorrectAnswer)))
		b.WriteString("\n")
	}

	if !selected {
		return b.String()
	}
	if s.deps.Explain.Loading(ans.Question) {
		b.WriteString(indent.Render(s.spinner.View() + " " + t.T("results.explaining")))
		b.WriteString("\n")
	} else if e, ok := s.explanations[ans.Question]; ok {
		if e.msgID != "" {
			b.WriteString(indent.Foreground(theme.Error).Render(t.T(e.msgID)))
		} else {
			b.WriteString(theme.Explanation.Width(cw - 4).Render(e.text))
		}
		b.WriteString("\n")
	} else {
		b.WriteString(indent.Inherit(theme.Hint).Render("e  " + t.T("results.explain")))
		b.WriteString("\n")
	}
	return b.String()
}
