package home

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/medborger/internal/ui/theme"
)

// contentWidth returns the uniform inner width used for all sections.
func contentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 72)
}

func (h *HomeScreen) View(width, height int) string {
	cw := contentWidth(width)

	sections := []string{
		theme.Title.Width(cw).Render(h.deps.T.T("app.selectExam")),
		"",
		lipgloss.NewStyle().Width(cw).Render(h.menu.View()),
	}

	if h.notice != "" {
		color := theme.Secondary
		if h.noticeErr {
			color = theme.Error
		}
		sections = append(sections, lipgloss.NewStyle().
			Foreground(color).
			Width(cw).
			Align(lipgloss.Center).
			Render(h.notice))
	}

	if h.latest != "" {
		sections = append(sections, renderUpdateNote(h.latest, cw))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}

// renderUpdateNote renders a dim one-line update notification.
func renderUpdateNote(latestVersion string, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Width(cw).
		Align(lipgloss.Center).
		Render("New version " + latestVersion + " available (medborger update)")
}
