package discord

import (
	"embed"
	"log"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

//go:embed active.*.toml
var messageFS embed.FS

// hostMessages localizes the adapter's own notices. The component's error
// messages arrive already localized and are relayed untouched; only text the
// host itself authors goes through this bundle.
type hostMessages struct {
	bundle          *i18n.Bundle
	defaultLanguage language.Tag
}

// newHostMessages builds the bundle from the embedded active.*.toml files
// using the given default locale (e.g. "en").
func newHostMessages(defaultLocale string) *hostMessages {
	tag, err := language.Parse(defaultLocale)
	if err != nil {
		tag = language.English
	}
	bundle := i18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, file := range []string{"active.en.toml", "active.fr.toml"} {
		if _, err := bundle.LoadMessageFileFS(messageFS, file); err != nil {
			log.Printf("discord: failed to load %s: %v", file, err)
		}
	}

	return &hostMessages{
		bundle:          bundle,
		defaultLanguage: tag,
	}
}

// T renders the message identified by key for the given locale, falling back
// to the default locale, then to the key itself.
func (m *hostMessages) T(locale, key string, data map[string]any) string {
	if key == "" {
		return ""
	}

	languages := []string{}
	if locale != "" {
		languages = append(languages, locale)
	}
	languages = append(languages, m.defaultLanguage.String())

	localizer := i18n.NewLocalizer(m.bundle, languages...)
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil {
		log.Printf("discord: localize failed (key=%s, locales=%v): %v", key, languages, err)
		return key
	}
	return msg
}
