// Package i18n loads per-locale translation catalogs and resolves message ids.
package i18n

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v2"

	"github.com/coreh/linkshare/logging"
)

// DefaultLocale is the source language of message ids; it never needs a catalog.
const DefaultLocale = "en"

// ContextSeparator joins a message context and id in catalog keys, as gettext does.
const ContextSeparator = "\x04"

// Catalog maps message ids (optionally context-qualified) to translations.
type Catalog map[string]string

type Catalogs struct {
	byLocale map[string]Catalog
}

// Empty returns catalogs that translate nothing.
func Empty() *Catalogs {
	return &Catalogs{byLocale: map[string]Catalog{}}
}

// Load reads every <locale>.json, <locale>.yaml and <locale>.yml in dir. A
// missing directory yields empty catalogs; unreadable or malformed files are
// skipped with a warning.
func Load(dir string, log logging.Logger) (*Catalogs, error) {
	log = log.WithComponent("i18n")
	catalogs := Empty()

	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return catalogs, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "listing locales in %s", dir)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".json" && ext != ".yaml" && ext != ".yml" {
			continue
		}

		file := filepath.Join(dir, name)
		catalog, err := readCatalog(file, ext)
		if err != nil {
			log.Warn(context.Background(), err, "skipping locale catalog", "file", file)
			continue
		}

		locale := canonical(strings.TrimSuffix(name, filepath.Ext(name)))
		if existing, ok := catalogs.byLocale[locale]; ok {
			for k, v := range catalog {
				existing[k] = v
			}
			continue
		}
		catalogs.byLocale[locale] = catalog
	}

	return catalogs, nil
}

func readCatalog(file, ext string) (Catalog, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	var catalog Catalog
	if ext == ".json" {
		err = json.Unmarshal(data, &catalog)
	} else {
		err = yaml.Unmarshal(data, &catalog)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", file)
	}
	if catalog == nil {
		catalog = Catalog{}
	}
	return catalog, nil
}

// Locales lists the locales that have a catalog.
func (c *Catalogs) Locales() []string {
	out := make([]string, 0, len(c.byLocale))
	for l := range c.byLocale {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// Translator returns a lookup bound to locale. Without an exact catalog the
// base language's catalog is tried (pt-BR falls back to pt). Every variant of
// the default language returns ids untranslated.
func (c *Catalogs) Translator(locale string) Translator {
	tag := canonical(locale)
	if tag == "" || tag == DefaultLocale {
		return Translator{locale: DefaultLocale}
	}
	if baseLanguage(tag) == DefaultLocale {
		return Translator{locale: tag}
	}
	if catalog, ok := c.byLocale[tag]; ok {
		return Translator{locale: tag, catalog: catalog}
	}
	if base := baseLanguage(tag); base != tag {
		if catalog, ok := c.byLocale[base]; ok {
			return Translator{locale: tag, catalog: catalog}
		}
	}
	return Translator{locale: tag}
}

// Translator resolves message ids for one locale. Misses return the id.
type Translator struct {
	locale  string
	catalog Catalog
}

func (t Translator) Locale() string { return t.locale }

// T translates id.
func (t Translator) T(id string) string {
	if text, ok := t.catalog[id]; ok && text != "" {
		return text
	}
	return id
}

// TC translates id within a message context.
func (t Translator) TC(msgctxt, id string) string {
	if text, ok := t.catalog[msgctxt+ContextSeparator+id]; ok && text != "" {
		return text
	}
	return id
}

func canonical(locale string) string {
	locale = strings.TrimSpace(strings.ReplaceAll(locale, "_", "-"))
	if locale == "" {
		return ""
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return locale
	}
	return tag.String()
}

func baseLanguage(locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		return locale
	}
	base, _ := tag.Base()
	return base.String()
}
