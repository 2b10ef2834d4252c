// Package app is the root Bubble Tea model: it owns the screen router and
// draws the header and footer around the active screen.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/medborger/internal/i18n"
	"github.com/abhisek/medborger/internal/router"
	"github.com/abhisek/medborger/internal/screen"
	"github.com/abhisek/medborger/internal/screens/home"
	"github.com/abhisek/medborger/internal/screens/welcome"
	"github.com/abhisek/medborger/internal/ui/layout"
)

// Options tune the TUI.
type Options struct {
	// SkipWelcome starts on the exam selector.
	SkipWelcome bool
	// CheckUpdate, when set, runs once in the background on the exam selector.
	CheckUpdate home.UpdateCheck
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	deps   *screen.Deps
	router *router.Router
	width  int
	height int
}

// newAppModel creates a new AppModel starting on the welcome screen.
func newAppModel(deps *screen.Deps, opts Options) AppModel {
	homeFactory := func() screen.Screen {
		return home.New(deps, opts.CheckUpdate)
	}
	var first screen.Screen
	if opts.SkipWelcome {
		first = homeFactory()
	} else {
		first = welcome.New(deps.T, homeFactory)
	}
	return AppModel{
		deps:   deps,
		router: router.New(first),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			// Leaving mid-quiz records nothing, like a cancel.
			m.deps.Machine.Cancel()
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.frame())
	return v
}

// frame renders the header, the active screen and the footer.
func (m AppModel) frame() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	f := layout.Frame{
		Status: m.languageStatus(),
		Width:  m.width,
		Height: m.height,
	}
	if active != nil {
		f.Title = active.Title()
	}
	if p, ok := active.(screen.KeyHintProvider); ok {
		f.Hints = p.KeyHints()
	}
	f.Hints = append(f.Hints, layout.KeyHint{Key: "ctrl+c", Description: "quit"})

	return f.Render(m.router.View(m.width, f.ContentHeight()))
}

// languageStatus names the active language in itself, e.g. "Tiếng Việt".
func (m AppModel) languageStatus() string {
	code := m.deps.T.Lang()
	for _, l := range i18n.Languages() {
		if l.Code == code {
			return m.deps.T.Td("app.language", map[string]any{"Name": l.Name}) + "  "
		}
	}
	return ""
}

// Run starts the Bubble Tea program.
func Run(deps *screen.Deps, opts Options) error {
	p := tea.NewProgram(newAppModel(deps, opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
