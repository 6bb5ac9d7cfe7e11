// Package prefs holds the visitor's theme and language preferences.
package prefs

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

// Theme is the color scheme of the site.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// Language is the display language of the site.
type Language string

const (
	LangES Language = "es"
	LangEN Language = "en"
)

// Storage keys used to persist preferences.
const (
	ThemeKey    = "theme"
	LanguageKey = "language"
)

const (
	DefaultTheme    = ThemeDark
	DefaultLanguage = LangES
)

// Storage is a string key/value store that survives reloads.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

// Store is the shared theme/language state. Safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	storage  Storage
	theme    Theme
	language Language
}

// New creates a store initialized from storage. Missing or unknown stored
// values fall back to the defaults.
func New(storage Storage) *Store {
	s := &Store{storage: storage, theme: DefaultTheme, language: DefaultLanguage}
	s.initialize()
	return s
}

func (s *Store) initialize() {
	if s.storage == nil {
		return
	}
	if v, ok := s.storage.Get(ThemeKey); ok {
		if t := Theme(v); t == ThemeDark || t == ThemeLight {
			s.theme = t
		}
	}
	if v, ok := s.storage.Get(LanguageKey); ok {
		if l := Language(v); l == LangES || l == LangEN {
			s.language = l
		}
	}
}

func (s *Store) Theme() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

func (s *Store) Language() Language {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.language
}

// IsDark reports whether the dark theme is active.
func (s *Store) IsDark() bool {
	return s.Theme() == ThemeDark
}

// ToggleTheme flips dark/light and persists the result.
func (s *Store) ToggleTheme() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.theme == ThemeDark {
		s.theme = ThemeLight
	} else {
		s.theme = ThemeDark
	}
	s.persist(ThemeKey, string(s.theme))
	return s.theme
}

// ToggleLanguage flips es/en and persists the result.
func (s *Store) ToggleLanguage() Language {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.language == LangES {
		s.language = LangEN
	} else {
		s.language = LangES
	}
	s.persist(LanguageKey, string(s.language))
	return s.language
}

func (s *Store) persist(key, value string) {
	if s.storage != nil {
		s.storage.Set(key, value)
	}
}

// Translate resolves a dot separated key such as "nav.home" for the current
// language. When any segment is missing the key itself is returned.
func (s *Store) Translate(key string) string {
	return Text(s.Language(), key)
}

// Text resolves key in the translation table for lang.
func Text(lang Language, key string) string {
	var node any = translations[lang]
	for _, part := range strings.Split(key, ".") {
		m, ok := node.(map[string]any)
		if !ok {
			return key
		}
		if node, ok = m[part]; !ok {
			return key
		}
	}
	if v, ok := node.(string); ok && v != "" {
		return v
	}
	return key
}

// Locale returns the BCP 47 tag matching the current language.
func (s *Store) Locale() language.Tag {
	return LocaleFor(s.Language())
}

// LocaleFor maps a site language to a regional tag.
func LocaleFor(lang Language) language.Tag {
	if lang == LangEN {
		return language.AmericanEnglish
	}
	return language.EuropeanSpanish
}

type storeKey struct{}

// WithStore returns a context carrying s.
func WithStore(ctx context.Context, s *Store) context.Context {
	return context.WithValue(ctx, storeKey{}, s)
}

// FromContext returns the store attached to ctx. It panics when there is
// none: reaching for preferences outside their scope is a wiring bug.
func FromContext(ctx context.Context) *Store {
	if s, ok := Lookup(ctx); ok {
		return s
	}
	panic("prefs: store must be used within a preferences scope")
}

// Lookup returns the store attached to ctx, if any.
func Lookup(ctx context.Context) (*Store, bool) {
	s, ok := ctx.Value(storeKey{}).(*Store)
	return s, ok && s != nil
}
