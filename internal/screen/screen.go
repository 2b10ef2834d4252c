package screen

import (
	"fmt"
	"log/slog"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/medborger/internal/exam"
	"github.com/abhisek/medborger/internal/explain"
	"github.com/abhisek/medborger/internal/history"
	"github.com/abhisek/medborger/internal/i18n"
	"github.com/abhisek/medborger/internal/session"
	"github.com/abhisek/medborger/internal/store"
	"github.com/abhisek/medborger/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Deps is shared by every screen. It is passed by pointer so a language
// switch on one screen is seen by all of them.
type Deps struct {
	Catalog   *exam.Catalog
	Loader    *exam.Loader
	History   *history.Store
	Machine   *session.Machine
	Countdown *session.Countdown
	Explain   *explain.Service
	KV        store.KV
	T         *i18n.Translator
	Logger    *slog.Logger
}

// ExamName is the display name of an exam id in the current language.
func (d *Deps) ExamName(id string) string {
	switch id {
	case exam.RandomID:
		return d.T.T("examSelector.random")
	case exam.WrongAnswersID:
		return d.T.T("quiz.practiceMode")
	}
	desc, err := d.Catalog.ByID(id)
	if err != nil {
		return id
	}
	return fmt.Sprintf("%d %s", desc.Year, d.SeasonName(desc.Season))
}

// SeasonName translates a sitting.
func (d *Deps) SeasonName(s exam.Season) string {
	if s == exam.Winter {
		return d.T.T("examSelector.winter")
	}
	return d.T.T("examSelector.summer")
}
