package i18n

import (
	"embed"
	"encoding/json"
	"io/fs"
	"log"
	"path"
	"sort"
	"strings"
	"sync"
)

//go:embed locales/*.json
var localeFS embed.FS

// catalog is one locale's flat mapping from dotted key to translated string.
type catalog map[string]string

var (
	loadOnce  sync.Once
	catalogs  map[string]catalog
	supported []string // sorted locale tags, declared by the embedded file names
)

// load parses every embedded locale file exactly once for the process
// lifetime. A malformed file degrades to an empty catalog for that locale
// instead of poisoning the rest of the store. Reads after load are lock-free.
func load() {
	loadOnce.Do(func() {
		catalogs = make(map[string]catalog)
		entries, err := fs.ReadDir(localeFS, "locales")
		if err != nil {
			log.Printf("i18n: reading embedded locales: %v", err)
			return
		}
		for _, entry := range entries {
			name := entry.Name()
			tag := strings.TrimSuffix(name, path.Ext(name))
			parsed := catalog{}
			raw, err := fs.ReadFile(localeFS, "locales/"+name)
			if err != nil {
				log.Printf("i18n: reading locale %s: %v", tag, err)
			} else if err := json.Unmarshal(raw, &parsed); err != nil {
				log.Printf("i18n: parsing locale %s: %v", tag, err)
				parsed = catalog{}
			}
			catalogs[tag] = parsed
		}
		supported = make([]string, 0, len(catalogs))
		for tag := range catalogs {
			supported = append(supported, tag)
		}
		sort.Strings(supported)
	})
}

// catalogFor returns the catalog shipped under an exact locale tag.
func catalogFor(locale string) (catalog, bool) {
	load()
	c, ok := catalogs[locale]
	return c, ok
}

// supportedLocales returns the sorted set of shipped locale tags.
func supportedLocales() []string {
	load()
	return supported
}
