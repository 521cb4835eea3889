// Package i18n renders error codes as user-facing messages.
//
// Each locale's templates come from the "errors" namespace of the embedded
// catalog bundle and are parsed once, the first time the locale is asked for.
package i18n

import (
	"maps"
	"strings"
	"sync"
	"text/template"

	i18ncatalog "github.com/louisbranch/rollexpr/internal/platform/i18n/catalog"
)

// Code is a machine-readable error code (aliased to string to avoid an import cycle with errors).
type Code = string

const errorsNamespace = "errors"

// Catalog holds the error message templates of one locale.
type Catalog struct {
	locale string
	// raw keeps the source text so broken templates still render something.
	raw    map[Code]string
	parsed map[Code]*template.Template
}

// catalogs caches one Catalog per resolved or registered locale.
var catalogs sync.Map

// GetCatalog returns the catalog for locale. The locale is negotiated against
// the embedded bundle ("pt" resolves to pt-BR) and falls back to en-US.
func GetCatalog(locale string) *Catalog {
	requested := strings.TrimSpace(locale)
	if requested == "" {
		requested = i18ncatalog.BaseLocale
	}
	if cached, ok := catalogs.Load(requested); ok {
		return cached.(*Catalog)
	}

	bundle := i18ncatalog.Default()
	resolved, messages := bundle.NamespaceMessagesWithFallback(bundle.Match(requested), errorsNamespace)
	cached, _ := catalogs.LoadOrStore(resolved, NewCatalog(resolved, messages))
	return cached.(*Catalog)
}

// RegisterCatalog installs cat for locale, replacing any cached catalog.
func RegisterCatalog(locale string, cat *Catalog) {
	catalogs.Store(locale, cat)
}

// NewCatalog parses messages into a catalog for locale. Templates that fail
// to parse are kept and rendered verbatim.
func NewCatalog(locale string, messages map[Code]string) *Catalog {
	cat := &Catalog{
		locale: locale,
		raw:    maps.Clone(messages),
		parsed: make(map[Code]*template.Template, len(messages)),
	}
	if cat.raw == nil {
		cat.raw = map[Code]string{}
	}
	for code, text := range cat.raw {
		if t, err := template.New(code).Parse(text); err == nil {
			cat.parsed[code] = t
		}
	}
	return cat
}

// Locale returns the locale of this catalog.
func (c *Catalog) Locale() string {
	return c.locale
}

// Format renders the template for code with metadata. Unknown codes render
// as the code itself. Missing metadata keys render as "<no value>".
func (c *Catalog) Format(code Code, metadata map[string]string) string {
	text, ok := c.raw[code]
	if !ok {
		return code
	}
	t, ok := c.parsed[code]
	if !ok {
		return text
	}
	if metadata == nil {
		metadata = map[string]string{}
	}
	var out strings.Builder
	if err := t.Execute(&out, metadata); err != nil {
		return text
	}
	return out.String()
}
