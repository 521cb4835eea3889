// Package catalog loads the localized message bundle shipped with the binary.
//
// Catalog files live under locales/<locale>/<namespace>.yaml and are embedded
// at build time. The "core" namespace holds front-end labels and the "errors"
// namespace holds one template per error code.
package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"maps"
	"path"
	"slices"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// BaseLocale is the locale every other locale falls back to. It must be
// present in any loaded bundle.
const BaseLocale = "en-US"

const corePrefix = "core."

//go:embed locales/*/*.yaml
var embeddedFS embed.FS

var defaultBundle = mustLoadEmbedded()

// file is the on-disk shape of one catalog file.
type file struct {
	Locale    string            `yaml:"locale"`
	Namespace string            `yaml:"namespace"`
	Messages  map[string]string `yaml:"messages"`
}

// localeMessages is every message of one locale, flat and by namespace.
type localeMessages struct {
	all        map[string]string
	namespaces map[string]map[string]string
}

// Bundle holds the messages of every loaded locale and negotiates requested
// locales against them.
type Bundle struct {
	locales map[string]*localeMessages
	tags    []language.Tag
	matcher language.Matcher
}

// Default returns the embedded bundle. Its messages are registered with
// x/text/message at startup.
func Default() *Bundle {
	return defaultBundle
}

// LoadEmbedded loads the catalog files compiled into the binary.
func LoadEmbedded() (*Bundle, error) {
	return LoadFromFS(embeddedFS)
}

// LoadFromFS loads every locales/*/*.yaml file from fsys.
func LoadFromFS(fsys fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(fsys, "locales/*/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	slices.Sort(paths)

	b := &Bundle{locales: map[string]*localeMessages{}}
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", p, err)
		}
		var f file
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", p, err)
		}
		if err := b.add(p, f); err != nil {
			return nil, fmt.Errorf("catalog %s: %w", p, err)
		}
	}

	if !b.HasLocale(BaseLocale) {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}
	if err := b.buildMatcher(); err != nil {
		return nil, err
	}
	return b, nil
}

// add merges one file into the bundle. The locale and namespace declared in
// the file must match its path, and keys are unique across a locale.
func (b *Bundle) add(p string, f file) error {
	locale := strings.TrimSpace(f.Locale)
	namespace := strings.TrimSpace(f.Namespace)
	switch wantLocale, wantNamespace := path.Base(path.Dir(p)), strings.TrimSuffix(path.Base(p), path.Ext(p)); {
	case locale == "":
		return fmt.Errorf("locale is required")
	case locale != wantLocale:
		return fmt.Errorf("locale %q must match path locale %q", locale, wantLocale)
	case namespace == "":
		return fmt.Errorf("namespace is required")
	case namespace != wantNamespace:
		return fmt.Errorf("namespace %q must match filename namespace %q", namespace, wantNamespace)
	case len(f.Messages) == 0:
		return fmt.Errorf("messages map is required")
	}

	lm := b.locales[locale]
	if lm == nil {
		lm = &localeMessages{all: map[string]string{}, namespaces: map[string]map[string]string{}}
		b.locales[locale] = lm
	}
	if _, dup := lm.namespaces[namespace]; dup {
		return fmt.Errorf("namespace %q already defined for locale %q", namespace, locale)
	}

	ns := make(map[string]string, len(f.Messages))
	for key, value := range f.Messages {
		key = strings.TrimSpace(key)
		switch {
		case key == "":
			return fmt.Errorf("message key cannot be blank")
		case strings.HasPrefix(key, corePrefix) && namespace != "core":
			return fmt.Errorf("key %q must be defined in core namespace", key)
		}
		if _, dup := lm.all[key]; dup {
			return fmt.Errorf("duplicate key %q in locale %q", key, locale)
		}
		lm.all[key] = value
		ns[key] = value
	}
	lm.namespaces[namespace] = ns
	return nil
}

// buildMatcher orders the base locale first so it wins ties and serves as
// the matcher's default.
func (b *Bundle) buildMatcher() error {
	order := append([]string{BaseLocale}, slices.DeleteFunc(b.Locales(), func(l string) bool {
		return l == BaseLocale
	})...)
	b.tags = make([]language.Tag, 0, len(order))
	for _, locale := range order {
		tag, err := language.Parse(locale)
		if err != nil {
			return fmt.Errorf("parse locale tag %q: %w", locale, err)
		}
		b.tags = append(b.tags, tag)
	}
	b.matcher = language.NewMatcher(b.tags)
	return nil
}

// Register installs every message with x/text/message under its locale tag
// and under the bare language tag ("pt" for pt-BR).
func (b *Bundle) Register() error {
	if b == nil {
		return nil
	}
	for _, locale := range b.Locales() {
		tag, err := language.Parse(locale)
		if err != nil {
			return fmt.Errorf("parse locale tag %q: %w", locale, err)
		}
		tags := []language.Tag{tag}
		if base, conf := tag.Base(); conf != language.No {
			if baseTag, err := language.Parse(base.String()); err == nil && baseTag != tag {
				tags = append(tags, baseTag)
			}
		}
		messages := b.locales[locale].all
		for _, key := range slices.Sorted(maps.Keys(messages)) {
			for _, t := range tags {
				if err := message.SetString(t, key, messages[key]); err != nil {
					return fmt.Errorf("register %s/%s: %w", locale, key, err)
				}
			}
		}
	}
	return nil
}

// Match resolves a locale tag or an Accept-Language list to the closest
// bundle locale, falling back to BaseLocale.
func (b *Bundle) Match(requested string) string {
	requested = strings.TrimSpace(requested)
	if b == nil || b.matcher == nil || requested == "" {
		return BaseLocale
	}
	if b.HasLocale(requested) {
		return requested
	}
	desired, _, err := language.ParseAcceptLanguage(requested)
	if err != nil || len(desired) == 0 {
		return BaseLocale
	}
	_, index, confidence := b.matcher.Match(desired...)
	if confidence == language.No {
		return BaseLocale
	}
	return b.tags[index].String()
}

// Printer returns an x/text printer for the matched locale.
func (b *Bundle) Printer(requested string) *message.Printer {
	return message.NewPrinter(language.MustParse(b.Match(requested)))
}

// HasLocale reports whether locale was loaded.
func (b *Bundle) HasLocale(locale string) bool {
	return b.lookup(locale) != nil
}

// Locales returns the loaded locales, sorted.
func (b *Bundle) Locales() []string {
	if b == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(b.locales))
}

// LocaleMessages returns a copy of every message of locale.
func (b *Bundle) LocaleMessages(locale string) map[string]string {
	if lm := b.lookup(locale); lm != nil {
		return maps.Clone(lm.all)
	}
	return map[string]string{}
}

// NamespaceMessages returns a copy of one namespace of locale.
func (b *Bundle) NamespaceMessages(locale, namespace string) map[string]string {
	if lm := b.lookup(locale); lm != nil {
		if ns, ok := lm.namespaces[strings.TrimSpace(namespace)]; ok {
			return maps.Clone(ns)
		}
	}
	return map[string]string{}
}

// NamespaceMessagesWithFallback returns the namespace for locale, or for
// BaseLocale when locale has none, together with the locale that served it.
func (b *Bundle) NamespaceMessagesWithFallback(locale, namespace string) (string, map[string]string) {
	locale = strings.TrimSpace(locale)
	if messages := b.NamespaceMessages(locale, namespace); len(messages) > 0 {
		return locale, messages
	}
	return BaseLocale, b.NamespaceMessages(BaseLocale, namespace)
}

// Message returns one message, falling back to BaseLocale.
func (b *Bundle) Message(locale, key string) (string, bool) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", false
	}
	for _, l := range []string{locale, BaseLocale} {
		if lm := b.lookup(l); lm != nil {
			if value, ok := lm.all[key]; ok {
				return value, true
			}
		}
	}
	return "", false
}

func (b *Bundle) lookup(locale string) *localeMessages {
	if b == nil {
		return nil
	}
	return b.locales[strings.TrimSpace(locale)]
}

func mustLoadEmbedded() *Bundle {
	b, err := LoadEmbedded()
	if err != nil {
		panic(err)
	}
	if err := b.Register(); err != nil {
		panic(err)
	}
	return b
}
