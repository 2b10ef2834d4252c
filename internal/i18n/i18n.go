package i18n

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/abhisek/medborger/internal/store"
)

//go:embed locales/*.json
var localeFS embed.FS

// PreferenceKey is the kv key holding the chosen language code.
const PreferenceKey = "i18nextLng"

// Fallback is used when no supported language matches.
const Fallback = "en"

// codes lists the supported languages in matcher order; the first entry is
// the fallback.
var codes = []string{"en", "zh", "vi"}

var matcher = language.NewMatcher([]language.Tag{
	language.English,
	language.Chinese,
	language.Vietnamese,
})

var loadBundle = sync.OnceValues(func() (*i18n.Bundle, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("read locales dir: %w", err)
	}
	for _, e := range entries {
		data, err := localeFS.ReadFile("locales/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("read locale file %s: %w", e.Name(), err)
		}
		if _, err := bundle.ParseMessageFileBytes(data, e.Name()); err != nil {
			return nil, fmt.Errorf("parse locale file %s: %w", e.Name(), err)
		}
	}
	return bundle, nil
})

// Match maps any language preference ("zh-CN", "vi", "da") to a supported
// code, falling back to English.
func Match(pref string) string {
	tag, err := language.Parse(pref)
	if err != nil {
		return Fallback
	}
	_, i, conf := matcher.Match(tag)
	if conf == language.No {
		return Fallback
	}
	return codes[i]
}

// Supported reports whether code is one of the shipped languages.
func Supported(code string) bool {
	for _, c := range codes {
		if c == code {
			return true
		}
	}
	return false
}

// Language describes a shipped language.
type Language struct {
	Code string
	// Name is the language's own name for itself, e.g. "Tiếng Việt".
	Name string
	// English is the English name, e.g. "Vietnamese".
	English string
}

// Languages lists the shipped languages.
func Languages() []Language {
	out := make([]Language, len(codes))
	for i, c := range codes {
		tag := language.Make(c)
		out[i] = Language{
			Code:    c,
			Name:    display.Self.Name(tag),
			English: display.English.Languages().Name(tag),
		}
	}
	return out
}

// Translator localizes message ids for one language.
type Translator struct {
	lang   string
	loc    *i18n.Localizer
	logger *slog.Logger
}

// New returns a translator for the best supported match of lang.
func New(lang string) (*Translator, error) {
	bundle, err := loadBundle()
	if err != nil {
		return nil, err
	}
	code := Match(lang)
	return &Translator{
		lang:   code,
		loc:    i18n.NewLocalizer(bundle, code, Fallback),
		logger: slog.Default(),
	}, nil
}

// MustNew is New for callers that cannot continue without translations.
func MustNew(lang string) *Translator {
	t, err := New(lang)
	if err != nil {
		panic(err)
	}
	return t
}

// Lang returns the language code in use.
func (t *Translator) Lang() string {
	return t.lang
}

// T translates a message by id.
func (t *Translator) T(id string) string {
	return t.localize(&i18n.LocalizeConfig{MessageID: id})
}

// Td translates a message by id with template data.
func (t *Translator) Td(id string, data map[string]any) string {
	return t.localize(&i18n.LocalizeConfig{MessageID: id, TemplateData: data})
}

// Tp translates a pluralized message. Count is available to the template.
func (t *Translator) Tp(id string, count int) string {
	return t.localize(&i18n.LocalizeConfig{
		MessageID:    id,
		PluralCount:  count,
		TemplateData: map[string]any{"Count": count},
	})
}

// localize returns the best available text. A message missing in the
// chosen language falls back to English; a message missing everywhere
// renders as its id.
func (t *Translator) localize(cfg *i18n.LocalizeConfig) string {
	s, err := t.loc.Localize(cfg)
	if err != nil {
		t.logger.Debug("missing translation", "id", cfg.MessageID, "lang", t.lang, "err", err)
		if s == "" {
			return cfg.MessageID
		}
	}
	return s
}

// LoadPreference returns the stored language preference matched to a
// supported code, or "" when none is stored.
func LoadPreference(ctx context.Context, kv store.KV) string {
	v, ok, err := kv.Get(ctx, PreferenceKey)
	if err != nil {
		slog.Warn("read language preference", "err", err)
		return ""
	}
	if !ok || v == "" {
		return ""
	}
	return Match(v)
}

// ErrUnsupported is returned when saving a language that is not shipped.
var ErrUnsupported = errors.New("unsupported language")

// SavePreference stores code as the language preference.
func SavePreference(ctx context.Context, kv store.KV, code string) error {
	if !Supported(code) {
		return fmt.Errorf("%w: %q (supported: en, zh, vi)", ErrUnsupported, code)
	}
	return kv.Set(ctx, PreferenceKey, code)
}

// Resolve picks the UI language: an explicit override first, then the stored
// preference, then the fallback.
func Resolve(ctx context.Context, kv store.KV, override string) string {
	if override != "" {
		return Match(override)
	}
	if pref := LoadPreference(ctx, kv); pref != "" {
		return pref
	}
	return Fallback
}
