// Package i18n holds the notification and e-mail text catalogue, loaded from
// embedded YAML per locale.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

const DefaultLocale = "en"

type Translations map[string]string

//go:embed locales
var localeFS embed.FS

var (
	locales = make(map[string]Translations)
	mu      sync.RWMutex
	once    sync.Once
	loadErr error
)

// Load parses every locales/<locale>/notifications.yaml. Safe to call repeatedly.
func Load() error {
	once.Do(func() {
		loadErr = loadFrom(localeFS, "locales")
	})
	return loadErr
}

func loadFrom(fsys fs.FS, root string) error {
	mu.Lock()
	defer mu.Unlock()

	entries, err := fs.ReadDir(fsys, root)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		locale := entry.Name()
		filePath := path.Join(root, locale, "notifications.yaml")

		data, err := fs.ReadFile(fsys, filePath)
		if err != nil {
			continue
		}

		var catalogue struct {
			Notifications Translations `yaml:"NOTIFICATIONS"`
		}
		if err := yaml.Unmarshal(data, &catalogue); err != nil {
			return fmt.Errorf("failed to parse %s: %w", filePath, err)
		}

		locales[locale] = catalogue.Notifications
	}

	return nil
}

// Translate returns the entry for key, falling back to the default locale and
// then to the key itself.
func Translate(locale, key string) string {
	_ = Load()

	mu.RLock()
	defer mu.RUnlock()

	if trans, ok := locales[locale]; ok {
		if val, ok := trans[key]; ok {
			return val
		}
	}

	if locale != DefaultLocale {
		if trans, ok := locales[DefaultLocale]; ok {
			if val, ok := trans[key]; ok {
				return val
			}
		}
	}

	return key
}

// Vars fills {name} placeholders.
type Vars map[string]interface{}

func Format(locale, key string, vars Vars) string {
	text := Translate(locale, key)
	if len(vars) == 0 {
		return text
	}

	pairs := make([]string, 0, len(vars)*2)
	for name, value := range vars {
		pairs = append(pairs, "{"+name+"}", fmt.Sprint(value))
	}
	return strings.NewReplacer(pairs...).Replace(text)
}
