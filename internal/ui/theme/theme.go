// Package theme holds the colours and shared styles of the terminal UI.
package theme

import (
	"charm.land/lipgloss/v2"
)

// Palette. Primary and Text double as the red and white of the Dannebrog
// in the welcome banner.
var (
	Primary   = lipgloss.Color("#C8102E")
	Secondary = lipgloss.Color("#3B82F6")
	Accent    = lipgloss.Color("#EAB308")
	Success   = lipgloss.Color("#22C55E")
	Error     = lipgloss.Color("#EF4444")
	Warning   = lipgloss.Color("#F59E0B")
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	BgDark    = lipgloss.Color("#0F172A")
	BgCard    = lipgloss.Color("#1E293B")
	Border    = lipgloss.Color("#334155")
)

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	// Rule is a horizontal separator line.
	Rule = lipgloss.NewStyle().Foreground(Border)

	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	// Explanation frames an AI explanation under a reviewed answer.
	Explanation = Card.
			BorderForeground(Secondary).
			Foreground(Text).
			MarginLeft(4)

	// Prompt is the text of a yes/no confirmation.
	Prompt = lipgloss.NewStyle().
		Foreground(Warning).
		Bold(true)
)

// Answer feedback.
var (
	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

var (
	ProgressFilled = lipgloss.NewStyle().Background(Secondary)
	ProgressEmpty  = lipgloss.NewStyle().Background(Border)

	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(Text).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Background(BgCard).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)

	// Badge is the base of the score and mode badges; callers set the
	// background.
	Badge = lipgloss.NewStyle().
		Foreground(BgDark).
		Bold(true).
		Padding(0, 1)

	PracticeBadge = Badge.Background(Secondary)
)
