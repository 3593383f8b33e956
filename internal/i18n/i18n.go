// Package i18n serves the calendar and summary labels from JSON catalogs
// compiled into the binary.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"maps"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/language"
)

const (
	LangRU = "ru"
	LangEN = "en"
)

//go:embed locales/*.json
var embeddedLocales embed.FS

// catalog maps message keys to a format string.
type catalog map[string]string

func (messages catalog) lookup(key string) (string, bool) {
	value, ok := messages[key]
	if !ok || strings.TrimSpace(value) == "" {
		return "", false
	}
	return value, true
}

type Manager struct {
	defaultLanguage string
	catalogs        map[string]catalog
	matcher         language.Matcher
	tags            []language.Tag
}

// NewManager loads the locales compiled into the binary.
func NewManager(defaultLanguage string) (*Manager, error) {
	locales, err := fs.Sub(embeddedLocales, "locales")
	if err != nil {
		return nil, fmt.Errorf("open embedded locales: %w", err)
	}
	return NewManagerFromFS(defaultLanguage, locales)
}

// NewManagerFromFS reads every <lang>.json at the root of source. English is
// mandatory because it backs every missing translation.
func NewManagerFromFS(defaultLanguage string, source fs.FS) (*Manager, error) {
	catalogs, err := loadCatalogs(source)
	if err != nil {
		return nil, err
	}
	if _, ok := catalogs[LangEN]; !ok {
		return nil, fmt.Errorf("required locale %q missing", LangEN)
	}

	manager := &Manager{catalogs: catalogs, defaultLanguage: LangEN}
	for _, code := range manager.SupportedLanguages() {
		manager.tags = append(manager.tags, language.Make(code))
	}
	manager.matcher = language.NewMatcher(manager.tags)
	manager.defaultLanguage = manager.NormalizeLanguage(defaultLanguage)
	return manager, nil
}

func loadCatalogs(source fs.FS) (map[string]catalog, error) {
	names, err := fs.Glob(source, "*.json")
	if err != nil {
		return nil, fmt.Errorf("list locales: %w", err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no locales found")
	}

	catalogs := make(map[string]catalog, len(names))
	for _, name := range names {
		code := strings.ToLower(strings.TrimSuffix(name, ".json"))
		content, err := fs.ReadFile(source, name)
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", code, err)
		}
		messages := catalog{}
		if err := json.Unmarshal(content, &messages); err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", code, err)
		}
		if len(messages) == 0 {
			return nil, fmt.Errorf("locale %s is empty", code)
		}
		catalogs[code] = messages
	}
	return catalogs, nil
}

func (manager *Manager) DefaultLanguage() string {
	return manager.defaultLanguage
}

// SupportedLanguages lists the loaded language codes in sorted order.
func (manager *Manager) SupportedLanguages() []string {
	return slices.Sorted(maps.Keys(manager.catalogs))
}

// NormalizeLanguage reduces a tag such as "ru_RU" or "EN-gb" to a supported
// base language, or returns the default language.
func (manager *Manager) NormalizeLanguage(raw string) string {
	code := baseLanguage(raw)
	if _, ok := manager.catalogs[code]; ok {
		return code
	}
	return manager.defaultLanguage
}

// DetectFromAcceptLanguage honours q-values; a header with no supported
// language yields the default language.
func (manager *Manager) DetectFromAcceptLanguage(header string) string {
	preferred, _, err := language.ParseAcceptLanguage(strings.ReplaceAll(header, "_", "-"))
	if err != nil || len(preferred) == 0 {
		return manager.defaultLanguage
	}
	_, index, confidence := manager.matcher.Match(preferred...)
	if confidence == language.No {
		return manager.defaultLanguage
	}
	return manager.NormalizeLanguage(manager.tags[index].String())
}

// Translate falls back to the default language, then to the key itself.
func (manager *Manager) Translate(lang string, key string) string {
	if value, ok := manager.catalogs[manager.NormalizeLanguage(lang)].lookup(key); ok {
		return value
	}
	if value, ok := manager.catalogs[manager.defaultLanguage].lookup(key); ok {
		return value
	}
	return key
}

func (manager *Manager) Translatef(lang string, key string, args ...any) string {
	return fmt.Sprintf(manager.Translate(lang, key), args...)
}

func (manager *Manager) MonthName(lang string, month time.Month) string {
	return manager.Translate(lang, fmt.Sprintf("calendar.month.%d", int(month)))
}

// WeekdayNames returns Sunday-first short weekday labels.
func (manager *Manager) WeekdayNames(lang string) []string {
	names := make([]string, 7)
	for day := range names {
		names[day] = manager.Translate(lang, fmt.Sprintf("calendar.weekday.%d", day))
	}
	return names
}

// MonthTitle renders the calendar header, e.g. "March 2026".
func (manager *Manager) MonthTitle(lang string, year int, month time.Month) string {
	return manager.Translatef(lang, "calendar.title", manager.MonthName(lang, month), year)
}

func baseLanguage(raw string) string {
	code := strings.ToLower(strings.TrimSpace(raw))
	code, _, _ = strings.Cut(strings.ReplaceAll(code, "_", "-"), "-")
	return code
}
