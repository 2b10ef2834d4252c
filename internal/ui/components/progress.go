package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/medborger/internal/session"
	"github.com/abhisek/medborger/internal/ui/theme"
)

// ProgressBar shows how far a run has come: a bar followed by "n/total".
type ProgressBar struct {
	Index int // zero-based index of the question on screen
	Total int
	Width int
}

// NewProgressBar creates a bar for the question at index out of total.
func NewProgressBar(index, total, width int) ProgressBar {
	return ProgressBar{Index: max(index, 0), Total: total, Width: width}
}

// Percent counts the question on screen as started.
func (p ProgressBar) Percent() int {
	return session.ProgressPercent(p.Index, p.Total)
}

func (p ProgressBar) View() string {
	count := fmt.Sprintf("  %d/%d", min(p.Index+1, p.Total), p.Total)
	barWidth := max(p.Width-lipgloss.Width(count), 4)
	filled := barWidth * p.Percent() / 100

	return theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled)) +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(count)
}
