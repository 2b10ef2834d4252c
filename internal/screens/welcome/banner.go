package welcome

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/medborger/internal/ui/theme"
)

const bannerArt = `
 ███╗   ███╗███████╗██████╗ ██████╗  ██████╗ ██████╗  ██████╗ ███████╗██████╗
 ████╗ ████║██╔════╝██╔══██╗██╔══██╗██╔═══██╗██╔══██╗██╔════╝ ██╔════╝██╔══██╗
 ██╔████╔██║█████╗  ██║  ██║██████╔╝██║   ██║██████╔╝██║  ███╗█████╗  ██████╔╝
 ██║╚██╔╝██║██╔══╝  ██║  ██║██╔══██╗██║   ██║██╔══██╗██║   ██║██╔══╝  ██╔══██╗
 ██║ ╚═╝ ██║███████╗██████╔╝██████╔╝╚██████╔╝██║  ██║╚██████╔╝███████╗██║  ██║
 ╚═╝     ╚═╝╚══════╝╚═════╝ ╚═════╝  ╚═════╝ ╚═╝  ╚═╝ ╚═════╝ ╚══════╝╚═╝  ╚═╝`

const bannerCompact = "M E D B O R G E R"

// RenderBanner returns the MEDBORGER banner styled in the primary color.
// Uses a compact fallback for terminals narrower than the art.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < lipgloss.Width(bannerArt)+2 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}

// flagRows is the Dannebrog, a white Nordic cross on red. 'w' cells are
// white, anything else red.
var flagRows = []string{
	"rrrrrrwwrrrrrrrrrrrr",
	"rrrrrrwwrrrrrrrrrrrr",
	"rrrrrrwwrrrrrrrrrrrr",
	"wwwwwwwwwwwwwwwwwwww",
	"rrrrrrwwrrrrrrrrrrrr",
	"rrrrrrwwrrrrrrrrrrrr",
	"rrrrrrwwrrrrrrrrrrrr",
}

// renderFlag draws the first n columns of the flag, so it can unfurl.
func renderFlag(n int) string {
	red := lipgloss.NewStyle().Background(theme.Primary)
	white := lipgloss.NewStyle().Background(theme.Text)

	lines := make([]string, len(flagRows))
	for i, row := range flagRows {
		var b strings.Builder
		for j, c := range row {
			if j >= n {
				b.WriteString("  ")
				continue
			}
			if c == 'w' {
				b.WriteString(white.Render("  "))
			} else {
				b.WriteString(red.Render("  "))
			}
		}
		lines[i] = b.String()
	}
	return strings.Join(lines, "\n")
}
