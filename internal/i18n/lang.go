package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// Lang is one of the supported display languages.
type Lang string

const (
	English Lang = "en"
	Spanish Lang = "es"
	French  Lang = "fr"
	German  Lang = "de"
	Chinese Lang = "zh"
)

// DefaultLang is used when nothing else is configured.
const DefaultLang = English

var supported = []Lang{English, Spanish, French, German, Chinese}

var supportedTags = []language.Tag{
	language.English,
	language.Spanish,
	language.French,
	language.German,
	language.Chinese,
}

var tagMatcher = language.NewMatcher(supportedTags)

// Supported returns the supported languages in display order.
func Supported() []Lang {
	out := make([]Lang, len(supported))
	copy(out, supported)
	return out
}

// Valid reports whether l is a supported language.
func (l Lang) Valid() bool {
	for _, s := range supported {
		if s == l {
			return true
		}
	}
	return false
}

// Name returns the language's own name for itself.
func (l Lang) Name() string {
	switch l {
	case English:
		return "English"
	case Spanish:
		return "Español"
	case French:
		return "Français"
	case German:
		return "Deutsch"
	case Chinese:
		return "中文"
	}
	return string(l)
}

// Parse maps a language code such as "fr" or "de-AT" to a supported Lang.
func Parse(value string) (Lang, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	if l := Lang(strings.ToLower(value)); l.Valid() {
		return l, true
	}
	tag, err := language.Parse(value)
	if err != nil {
		return "", false
	}
	base, conf := tag.Base()
	if conf == language.No {
		return "", false
	}
	l := Lang(base.String())
	return l, l.Valid()
}

// Detect picks the closest supported language for a POSIX locale string
// such as "es_MX.UTF-8". Unknown or empty input yields DefaultLang.
func Detect(posixLocale string) Lang {
	v := posixLocale
	if i := strings.IndexAny(v, ".@"); i >= 0 {
		v = v[:i]
	}
	v = strings.ReplaceAll(v, "_", "-")
	if v == "" || v == "C" || v == "POSIX" {
		return DefaultLang
	}
	tag, err := language.Parse(v)
	if err != nil {
		return DefaultLang
	}
	_, idx, conf := tagMatcher.Match(tag)
	if conf == language.No {
		return DefaultLang
	}
	return supported[idx]
}
