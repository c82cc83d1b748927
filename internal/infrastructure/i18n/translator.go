package i18n

import (
	"sort"
	"strings"

	"github.com/greentic-ai-org/component-templates/internal/domain/entities"
	"github.com/greentic-ai-org/component-templates/internal/ports/output"
)

// Ensure Translator implements the output.Translator port.
var _ output.Translator = (*Translator)(nil)

// Translator serves the embedded component catalog.
type Translator struct{}

func NewTranslator() *Translator {
	return &Translator{}
}

// SelectLocale walks the candidate chain in order of authority: the
// configuration's top-level locale, the templates block's locale, then the
// envelope metadata locale and lang hints. The first candidate that resolves
// against a shipped catalog wins; with none, the default "en".
func (t *Translator) SelectLocale(config entities.Document, msg *entities.Envelope) string {
	candidates := make([]string, 0, 4)
	if v, ok := config["locale"].(string); ok {
		candidates = append(candidates, v)
	}
	if templates, ok := config["templates"].(map[string]any); ok {
		if v, ok := templates["locale"].(string); ok {
			candidates = append(candidates, v)
		}
	}
	if msg != nil {
		if v, ok := msg.Metadata["locale"]; ok {
			candidates = append(candidates, v)
		}
		if v, ok := msg.Metadata["lang"]; ok {
			candidates = append(candidates, v)
		}
	}

	for _, candidate := range candidates {
		if resolved, ok := resolveSupported(candidate); ok {
			return resolved
		}
	}
	return defaultLocale
}

func lookup(locale, key string) (string, bool) {
	c, ok := catalogFor(locale)
	if !ok {
		return "", false
	}
	v, ok := c[key]
	return v, ok
}

// T never returns blank: exact locale, then base language, then "en", then
// the key itself.
func (t *Translator) T(locale, key string) string {
	if v, ok := lookup(locale, key); ok {
		return v
	}
	if v, ok := lookup(baseLanguage(locale), key); ok {
		return v
	}
	if v, ok := lookup(defaultLocale, key); ok {
		return v
	}
	return key
}

// TF applies ordered literal {name} substitution on top of T. Values are not
// escaped: a value containing {other}-shaped text is rewritten by any later
// argument of that name.
func (t *Translator) TF(locale, key string, args []output.Arg) string {
	text := t.T(locale, key)
	for _, arg := range args {
		text = strings.ReplaceAll(text, "{"+arg.Name+"}", arg.Value)
	}
	return text
}

// Keys returns the sorted key set of a locale's catalog, empty when the
// locale is not shipped.
func (t *Translator) Keys(locale string) []string {
	c, ok := catalogFor(locale)
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
