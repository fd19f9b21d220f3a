// Package lang defines the closed set of language codes the service accepts.
package lang

import (
	"fmt"
	"strings"

	"github.com/realmeta/artlens/internal/domain"
)

// Code is a supported BCP-47 primary language subtag.
type Code string

// Supported language codes. Localized artwork descriptions are keyed by
// these; anything else is rejected at the boundary.
const (
	English Code = "en"
	Spanish Code = "es"
	French  Code = "fr"
	German  Code = "de"
	Italian Code = "it"
	Chinese Code = "zh"
	Hindi   Code = "hi"
)

// Default is the language used when a request carries no preference.
const Default = English

var supported = map[Code]bool{
	English: true,
	Spanish: true,
	French:  true,
	German:  true,
	Italian: true,
	Chinese: true,
	Hindi:   true,
}

// Parse validates a raw language tag. Empty input maps to Default.
func Parse(raw string) (Code, error) {
	if raw == "" {
		return Default, nil
	}
	c := Code(strings.ToLower(raw))
	if !supported[c] {
		return "", fmt.Errorf("language %q: %w", raw, domain.ErrInvalidLanguage)
	}
	return c, nil
}

// All returns the supported codes in a stable order.
func All() []Code {
	return []Code{English, Spanish, French, German, Italian, Chinese, Hindi}
}
