// Package layout draws the frame around every screen: a header bar with the
// app name, the screen title and a status, and a footer of key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/medborger/internal/ui/theme"
)

// The smallest terminal the frame is drawn in.
const (
	MinWidth  = 80
	MinHeight = 24
)

// KeyHint is one footer entry. Screens with a localized help line use
// Description alone.
type KeyHint struct {
	Key         string
	Description string
}

func (h KeyHint) render() string {
	desc := lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description)
	if h.Key == "" {
		return desc
	}
	return lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(h.Key) + " " + desc
}

// Frame is the chrome around the active screen.
type Frame struct {
	Title  string
	Status string
	Hints  []KeyHint
	Width  int
	Height int
}

// IsTooSmall reports whether the terminal is below the minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the user to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Align(lipgloss.Center).Render(fmt.Sprintf(
			"Terminal too small!\n\nPlease resize to at least %d x %d\n\nCurrent: %d x %d",
			MinWidth, MinHeight, width, height)))
}

var bar = lipgloss.NewStyle().
	Background(theme.BgCard).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(theme.Border)

// Header renders the top bar: app name on the left, the title centred and
// the status on the right.
func (f Frame) Header() string {
	inner := max(f.Width-4, 0)
	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  Medborger")
	right := lipgloss.NewStyle().Foreground(theme.Accent).Render(f.Status)
	mid := lipgloss.NewStyle().
		Foreground(theme.Text).
		Width(max(inner-lipgloss.Width(left)-lipgloss.Width(right), 0)).
		Align(lipgloss.Center).
		Render(f.Title)
	return bar.Width(f.Width).Render(lipgloss.JoinHorizontal(lipgloss.Top, left, mid, right))
}

// Footer renders the key hints.
func (f Frame) Footer() string {
	parts := make([]string, len(f.Hints))
	for i, h := range f.Hints {
		parts[i] = h.render()
	}
	return bar.Width(f.Width).Render("  " + strings.Join(parts, "   "))
}

// ContentHeight is the height left for the screen between header and footer.
func (f Frame) ContentHeight() int {
	return max(f.Height-lipgloss.Height(f.Header())-lipgloss.Height(f.Footer()), 0)
}

// Render wraps content, which should be ContentHeight lines tall, in the
// header and footer.
func (f Frame) Render(content string) string {
	body := lipgloss.NewStyle().Width(f.Width).Height(f.ContentHeight()).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, f.Header(), body, f.Footer())
}
