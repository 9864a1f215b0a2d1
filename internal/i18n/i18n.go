// Package i18n provides the message catalog for user-facing text.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
)

//go:embed locales/*.json
var localeFS embed.FS

const fallbackLang = "en"

// Bundle resolves message keys for a selected language, falling back to
// English and finally to the key itself.
type Bundle struct {
	lang     string
	messages map[string]string
	fallback map[string]string
}

// Languages lists the locales shipped with the binary.
func Languages() []string {
	return []string{"en", "es"}
}

// Supported reports whether lang has a shipped locale file.
func Supported(lang string) bool {
	for _, l := range Languages() {
		if l == lang {
			return true
		}
	}
	return false
}

// NewBundle loads the catalog for lang. Unknown languages resolve
// entirely through the English catalog.
func NewBundle(lang string) (*Bundle, error) {
	fallback, err := loadLocale(fallbackLang)
	if err != nil {
		return nil, err
	}
	b := &Bundle{lang: lang, fallback: fallback, messages: fallback}
	if lang != "" && lang != fallbackLang && Supported(lang) {
		msgs, err := loadLocale(lang)
		if err != nil {
			return nil, err
		}
		b.messages = msgs
	}
	return b, nil
}

func loadLocale(lang string) (map[string]string, error) {
	raw, err := localeFS.ReadFile("locales/" + lang + ".json")
	if err != nil {
		return nil, fmt.Errorf("load locale %s: %w", lang, err)
	}
	var msgs map[string]string
	if err := json.Unmarshal(raw, &msgs); err != nil {
		return nil, fmt.Errorf("parse locale %s: %w", lang, err)
	}
	return msgs, nil
}

// Lang returns the language this bundle was built for.
func (b *Bundle) Lang() string { return b.lang }

// T resolves key, applying fmt verbs from args when present.
func (b *Bundle) T(key string, args ...any) string {
	msg, ok := b.messages[key]
	if !ok {
		msg, ok = b.fallback[key]
	}
	if !ok {
		msg = key
	}
	if len(args) == 0 || !strings.Contains(msg, "%") {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}
