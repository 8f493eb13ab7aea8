package languages

import (
	"strings"

	"golang.org/x/text/language"
)

// Catalog is an immutable snapshot of the supported languages. A catalog
// built by Service.Load always holds at least one entry.
type Catalog struct {
	entries     []Language
	index       map[string]int
	defaultCode string
}

// NewCatalog builds a snapshot from langs. Codes are normalized and the
// first occurrence of a duplicate code wins. defaultCode is used when present
// in langs; otherwise the row flagged IsDefault, then the first row.
func NewCatalog(langs []Language, defaultCode string) Catalog {
	catalog := Catalog{
		entries: make([]Language, 0, len(langs)),
		index:   make(map[string]int, len(langs)),
	}
	flagged := ""
	for _, lang := range langs {
		code := NormalizeCode(lang.Code)
		if code == "" {
			continue
		}
		if _, exists := catalog.index[code]; exists {
			continue
		}
		lang.Code = code
		catalog.index[code] = len(catalog.entries)
		catalog.entries = append(catalog.entries, lang)
		if lang.IsDefault && flagged == "" {
			flagged = code
		}
	}

	switch normalized := NormalizeCode(defaultCode); {
	case catalog.Contains(normalized):
		catalog.defaultCode = normalized
	case flagged != "":
		catalog.defaultCode = flagged
	case len(catalog.entries) > 0:
		catalog.defaultCode = catalog.entries[0].Code
	}
	return catalog
}

// FallbackCatalog is the single-entry catalog used when the language store
// cannot be read.
func FallbackCatalog(defaultCode, name string) Catalog {
	code := NormalizeCode(defaultCode)
	if code == "" {
		code = "en"
	}
	if strings.TrimSpace(name) == "" {
		name = "English (Error Fallback)"
	}
	return NewCatalog([]Language{{Code: code, Name: name, IsDefault: true}}, code)
}

// NormalizeCode canonicalizes a locale code through BCP 47 parsing. Values
// that do not parse are lower-cased and trimmed.
func NormalizeCode(code string) string {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return ""
	}
	tag, err := language.Parse(trimmed)
	if err != nil {
		return strings.ToLower(trimmed)
	}
	return tag.String()
}

func (c Catalog) Len() int {
	return len(c.entries)
}

func (c Catalog) IsEmpty() bool {
	return len(c.entries) == 0
}

// Contains reports whether code names a catalog entry.
func (c Catalog) Contains(code string) bool {
	_, ok := c.index[NormalizeCode(code)]
	return ok
}

func (c Catalog) Lookup(code string) (Language, bool) {
	idx, ok := c.index[NormalizeCode(code)]
	if !ok {
		return Language{}, false
	}
	return c.entries[idx], true
}

// Default returns the system default code, or "" for an empty catalog.
func (c Catalog) Default() string {
	return c.defaultCode
}

// Codes returns the normalized codes in catalog order.
func (c Catalog) Codes() []string {
	out := make([]string, len(c.entries))
	for i, entry := range c.entries {
		out[i] = entry.Code
	}
	return out
}

// Languages returns a copy of the entries.
func (c Catalog) Languages() []Language {
	out := make([]Language, len(c.entries))
	copy(out, c.entries)
	return out
}

// Match picks the catalog code that best serves an Accept-Language header.
// It reports false and the default code when nothing matches.
func (c Catalog) Match(acceptLanguage string) (string, bool) {
	if c.IsEmpty() {
		return "", false
	}
	desired, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(desired) == 0 {
		return c.defaultCode, false
	}

	supported := make([]language.Tag, len(c.entries))
	for i, entry := range c.entries {
		supported[i] = language.Make(entry.Code)
	}
	_, idx, confidence := language.NewMatcher(supported).Match(desired...)
	if confidence == language.No || idx < 0 || idx >= len(c.entries) {
		return c.defaultCode, false
	}
	return c.entries[idx].Code, true
}
