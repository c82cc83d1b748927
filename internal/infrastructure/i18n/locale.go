package i18n

import "strings"

// defaultLocale is the ultimate fallback and must ship a complete catalog.
const defaultLocale = "en"

// normalizeTag reduces an arbitrary raw locale string to lang or lang-REGION
// form: encoding (".UTF-8") and variant ("@euro") suffixes are stripped,
// underscores become hyphens, the language subtag is lowercased and every
// following subtag uppercased. Unusable input normalizes to "".
func normalizeTag(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if i := strings.IndexByte(cleaned, '.'); i >= 0 {
		cleaned = cleaned[:i]
	}
	if i := strings.IndexByte(cleaned, '@'); i >= 0 {
		cleaned = cleaned[:i]
	}
	cleaned = strings.ReplaceAll(cleaned, "_", "-")

	var parts []string
	for _, part := range strings.Split(cleaned, "-") {
		if part == "" {
			continue
		}
		if len(parts) == 0 {
			parts = append(parts, strings.ToLower(part))
		} else {
			parts = append(parts, strings.ToUpper(part))
		}
	}
	return strings.Join(parts, "-")
}

// baseLanguage returns the language subtag only, dropping any region.
func baseLanguage(tag string) string {
	if i := strings.IndexByte(tag, '-'); i >= 0 {
		return strings.ToLower(tag[:i])
	}
	return strings.ToLower(tag)
}

// resolveSupported maps a raw candidate onto a shipped catalog tag: exact
// match first, then case-insensitive, then the bare base language.
func resolveSupported(candidate string) (string, bool) {
	normalized := normalizeTag(candidate)
	if normalized == "" {
		return "", false
	}
	if _, ok := catalogFor(normalized); ok {
		return normalized, true
	}
	lower := strings.ToLower(normalized)
	for _, tag := range supportedLocales() {
		if strings.ToLower(tag) == lower {
			return tag, true
		}
	}
	base := baseLanguage(normalized)
	if _, ok := catalogFor(base); ok {
		return base, true
	}
	return "", false
}
