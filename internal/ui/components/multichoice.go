package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/medborger/internal/ui/theme"
)

// MultiChoice is a lettered multiple-choice selector. Options are chosen
// with the arrows and Enter, or directly by letter or number.
type MultiChoice struct {
	Question    string
	Options     []string
	Correct     string
	Selected    int
	Submitted   bool
	ChosenIndex int
}

// NewMultiChoice creates a new multiple-choice component.
func NewMultiChoice(question string, options []string, correct string) MultiChoice {
	return MultiChoice{
		Question:    question,
		Options:     options,
		Correct:     correct,
		ChosenIndex: -1,
	}
}

// Letter returns the label of option i: A, B, C, ...
func Letter(i int) string {
	return string(rune('A' + i))
}

// Init returns nil.
func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation and selection.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
		return m, nil
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
		return m, nil
	case "enter", "space":
		m.choose(m.Selected)
		return m, nil
	}

	if len(key) == 1 {
		c := key[0]
		switch {
		case c >= 'a' && c <= 'z':
			m.choose(int(c - 'a'))
		case c >= 'A' && c <= 'Z':
			m.choose(int(c - 'A'))
		case c >= '1' && c <= '9':
			m.choose(int(c - '1'))
		}
	}
	return m, nil
}

func (m *MultiChoice) choose(i int) {
	if i < 0 || i >= len(m.Options) {
		return
	}
	m.Selected = i
	m.ChosenIndex = i
	m.Submitted = true
}

// Chosen returns the submitted option.
func (m MultiChoice) Chosen() (string, bool) {
	if !m.Submitted || m.ChosenIndex < 0 {
		return "", false
	}
	return m.Options[m.ChosenIndex], true
}

// IsCorrect returns true if the user chose the correct answer.
func (m MultiChoice) IsCorrect() bool {
	chosen, ok := m.Chosen()
	return ok && chosen == m.Correct
}

// View renders the question and its options. After submission the correct
// option is green and a wrong choice red.
func (m MultiChoice) View(width int) string {
	questionStyle := lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Width(width)

	var b strings.Builder
	b.WriteString(questionStyle.Render(m.Question))
	b.WriteString("\n\n")

	optStyle := lipgloss.NewStyle().Width(width)
	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && !m.Submitted {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, Letter(i), opt)

		style := optStyle.Foreground(theme.Text)
		switch {
		case m.Submitted && opt == m.Correct:
			style = optStyle.Foreground(theme.Success).Bold(true)
		case m.Submitted && i == m.ChosenIndex:
			style = optStyle.Foreground(theme.Error).Bold(true)
		case m.Submitted:
			style = optStyle.Foreground(theme.TextDim)
		case i == m.Selected:
			style = optStyle.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	return b.String()
}
