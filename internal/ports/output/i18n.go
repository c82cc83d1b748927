package output

import (
	"github.com/greentic-ai-org/component-templates/internal/domain/entities"
)

// Arg is one named interpolation argument. Order matters (later replacements
// may act on text introduced by earlier ones), so arguments travel as a slice
// rather than a map.
type Arg struct {
	Name  string
	Value string
}

// Translator exposes the component catalog: locale selection plus message
// lookup with the exact → base-language → "en" → key fallback chain.
type Translator interface {
	// SelectLocale picks the best supported locale from the configuration
	// document and the envelope metadata.
	SelectLocale(config entities.Document, msg *entities.Envelope) string
	// T resolves key in locale. It never fails, echoing the key on a full miss.
	T(locale, key string) string
	// TF is T plus ordered literal {name} substitution.
	TF(locale, key string, args []Arg) string
	// Keys returns the sorted key set of a locale's catalog, used for
	// completeness auditing over the default locale.
	Keys(locale string) []string
}
