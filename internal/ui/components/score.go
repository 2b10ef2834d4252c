package components

import (
	"fmt"
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/medborger/internal/session"
	"github.com/abhisek/medborger/internal/ui/theme"
)

// BandColor returns the colour of a score band.
func BandColor(b session.Band) color.Color {
	switch b {
	case session.BandExcellent:
		return theme.Success
	case session.BandGood:
		return theme.Secondary
	case session.BandFair:
		return theme.Warning
	}
	return theme.Error
}

// HistoryColor is BandColor with excellent and good merged, as history
// lists show three bands.
func HistoryColor(percent int) color.Color {
	b := session.BandFor(percent)
	if b == session.BandExcellent {
		b = session.BandGood
	}
	if b == session.BandGood {
		return theme.Success
	}
	return BandColor(b)
}

// ScoreBadge renders percent on a background of its band colour.
func ScoreBadge(percent int) string {
	return theme.Badge.
		Background(BandColor(session.BandFor(percent))).
		Render(fmt.Sprintf("%d%%", percent))
}

// Clock renders the countdown, red when time is running low.
func Clock(seconds int) string {
	style := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	if seconds < session.LowTimeThreshold {
		style = style.Foreground(theme.Error)
	}
	return style.Render("⏱ " + session.FormatClock(seconds))
}
