// Package i18n holds the display strings for every supported language.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

type catalogFile struct {
	Lang     string            `yaml:"lang"`
	Messages map[string]string `yaml:"messages"`
}

// Catalog maps message keys to strings for every loaded language.
type Catalog struct {
	messages map[Lang]map[string]string
}

var defaultCatalog = mustLoadEmbedded()

// Default returns the catalog built from the embedded locale files.
func Default() *Catalog {
	return defaultCatalog
}

func mustLoadEmbedded() *Catalog {
	c, err := LoadFS(localeFS)
	if err != nil {
		panic(fmt.Sprintf("load embedded locales: %v", err))
	}
	return c
}

// LoadFS reads every locales/*.yaml file in fsys.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locales: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no locale files found")
	}

	c := &Catalog{messages: make(map[Lang]map[string]string, len(paths))}
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		var f catalogFile
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse %s: %w", p, err)
		}
		lang := Lang(strings.TrimSpace(f.Lang))
		if want := strings.TrimSuffix(path.Base(p), ".yaml"); string(lang) != want {
			return nil, fmt.Errorf("%s: lang %q must match file name %q", p, lang, want)
		}
		if _, dup := c.messages[lang]; dup {
			return nil, fmt.Errorf("%s: language %q defined twice", p, lang)
		}
		c.messages[lang] = f.Messages
	}
	return c, nil
}

// Text returns the message for key in lang, or the key itself.
func (c *Catalog) Text(lang Lang, key Key) string {
	return c.Lookup(lang, string(key))
}

// Lookup is Text for keys built at runtime.
func (c *Catalog) Lookup(lang Lang, key string) string {
	if c == nil {
		return key
	}
	if msg, ok := c.messages[lang][key]; ok && msg != "" {
		return msg
	}
	return key
}

// Missing returns the keys from AllKeys that lang does not define.
func (c *Catalog) Missing(lang Lang) []Key {
	var out []Key
	for _, k := range AllKeys {
		if _, ok := c.messages[lang][string(k)]; !ok {
			out = append(out, k)
		}
	}
	return out
}

// T looks up key in the default catalog.
func T(lang Lang, key Key) string {
	return defaultCatalog.Text(lang, key)
}

// Lookup looks up a runtime key in the default catalog.
func Lookup(lang Lang, key string) string {
	return defaultCatalog.Lookup(lang, key)
}
