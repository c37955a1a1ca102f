// Package i18n loads the storefront message catalogs and resolves
// translated, parameterised messages per locale.
package i18n

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/de"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/fr"
	ut "github.com/go-playground/universal-translator"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed messages/*.yaml
var messagesFS embed.FS

var localeFactories = map[string]func() locales.Translator{
	"en": en.New,
	"de": de.New,
	"fr": fr.New,
}

var pluralCategories = map[string]locales.PluralRule{
	"zero":  locales.PluralRuleZero,
	"one":   locales.PluralRuleOne,
	"two":   locales.PluralRuleTwo,
	"few":   locales.PluralRuleFew,
	"many":  locales.PluralRuleMany,
	"other": locales.PluralRuleOther,
}

// TranslateFunc resolves a key relative to a namespace. Positional args
// fill {0}, {1}, ... placeholders; for plural messages the first arg
// selects the plural form.
type TranslateFunc func(key string, args ...any) string

// Catalog holds every loaded locale.
type Catalog struct {
	uni       *ut.UniversalTranslator
	matcher   language.Matcher
	supported []string
	fallback  string

	// locale -> key -> number of positional placeholders
	params map[string]map[string]int
	// locale -> keys stored as plural messages
	plurals map[string]map[string]bool
}

// NewCatalog loads the embedded catalogs. defaultLocale is used when a
// request matches none of them and for keys missing from a locale.
func NewCatalog(defaultLocale string) (*Catalog, error) {
	if _, ok := localeFactories[defaultLocale]; !ok {
		return nil, fmt.Errorf("unsupported default locale %q", defaultLocale)
	}

	entries, err := messagesFS.ReadDir("messages")
	if err != nil {
		return nil, fmt.Errorf("failed to read message catalogs: %w", err)
	}

	var loaded []string
	for _, e := range entries {
		locale := strings.TrimSuffix(e.Name(), path.Ext(e.Name()))
		if _, ok := localeFactories[locale]; !ok {
			return nil, fmt.Errorf("no plural rules for catalog %q", e.Name())
		}
		loaded = append(loaded, locale)
	}
	sort.Strings(loaded)

	// The default locale goes first: the matcher falls back to its first tag.
	supported := []string{defaultLocale}
	for _, l := range loaded {
		if l != defaultLocale {
			supported = append(supported, l)
		}
	}

	translators := make([]locales.Translator, 0, len(supported))
	tags := make([]language.Tag, 0, len(supported))
	for _, l := range supported {
		translators = append(translators, localeFactories[l]())
		tags = append(tags, language.MustParse(l))
	}

	c := &Catalog{
		uni:       ut.New(translators[0], translators...),
		matcher:   language.NewMatcher(tags),
		supported: supported,
		fallback:  defaultLocale,
		params:    make(map[string]map[string]int),
		plurals:   make(map[string]map[string]bool),
	}

	for _, l := range loaded {
		data, err := messagesFS.ReadFile("messages/" + l + ".yaml")
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog %s: %w", l, err)
		}
		if err := c.load(l, data); err != nil {
			return nil, fmt.Errorf("failed to load catalog %s: %w", l, err)
		}
	}
	return c, nil
}

func (c *Catalog) load(locale string, data []byte) error {
	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return err
	}

	trans, ok := c.uni.GetTranslator(locale)
	if !ok {
		return fmt.Errorf("translator %s not registered", locale)
	}

	c.params[locale] = make(map[string]int)
	c.plurals[locale] = make(map[string]bool)

	msgs := make(map[string]any)
	flatten("", tree, msgs)

	for key, v := range msgs {
		switch text := v.(type) {
		case string:
			if err := trans.Add(key, text, false); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			c.params[locale][key] = countParams(text)
		case map[string]string:
			// Every plural rule of the locale needs a text or lookups panic;
			// missing forms borrow "other".
			for _, rule := range trans.PluralsCardinal() {
				form, ok := text[ruleName(rule)]
				if !ok {
					form = text["other"]
				}
				if err := trans.AddCardinal(key, form, rule, false); err != nil {
					return fmt.Errorf("%s: %w", key, err)
				}
			}
			c.plurals[locale][key] = true
		}
	}
	return nil
}

// flatten turns nested maps into dotted keys. A map whose keys are all
// plural categories becomes a map[string]string leaf.
func flatten(prefix string, node map[string]any, out map[string]any) {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			if forms, ok := pluralForms(val); ok {
				out[key] = forms
				continue
			}
			flatten(key, val, out)
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}

func pluralForms(m map[string]any) (map[string]string, bool) {
	if _, ok := m["other"]; !ok {
		return nil, false
	}
	forms := make(map[string]string, len(m))
	for k, v := range m {
		if _, ok := pluralCategories[k]; !ok {
			return nil, false
		}
		s, ok := v.(string)
		if !ok {
			return nil, false
		}
		forms[k] = s
	}
	return forms, true
}

func ruleName(rule locales.PluralRule) string {
	for name, r := range pluralCategories {
		if r == rule {
			return name
		}
	}
	return "other"
}

func countParams(text string) int {
	n := 0
	for strings.Contains(text, "{"+strconv.Itoa(n)+"}") {
		n++
	}
	return n
}

// Locales returns the supported locales, default first.
func (c *Catalog) Locales() []string {
	return append([]string(nil), c.supported...)
}

// DefaultLocale returns the fallback locale.
func (c *Catalog) DefaultLocale() string {
	return c.fallback
}

// Negotiate picks the best supported locale. An explicit, supported locale
// wins over the Accept-Language header.
func (c *Catalog) Negotiate(explicit, acceptLanguage string) string {
	if explicit != "" {
		for _, l := range c.supported {
			if strings.EqualFold(l, explicit) {
				return l
			}
		}
	}
	if acceptLanguage == "" {
		return c.fallback
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return c.fallback
	}
	_, idx, conf := c.matcher.Match(tags...)
	if conf == language.No || idx < 0 || idx >= len(c.supported) {
		return c.fallback
	}
	return c.supported[idx]
}

// Translator returns the translator for locale, or the default one.
func (c *Catalog) Translator(locale string) *Translator {
	trans, ok := c.uni.GetTranslator(locale)
	if !ok {
		locale = c.fallback
		trans = c.uni.GetFallback()
	}
	t := &Translator{locale: locale, trans: trans, catalog: c}
	if locale != c.fallback {
		t.fallback = c.Translator(c.fallback)
	}
	return t
}

// Translator resolves messages for one locale.
type Translator struct {
	locale   string
	trans    ut.Translator
	catalog  *Catalog
	fallback *Translator
}

func (t *Translator) Locale() string {
	return t.locale
}

// T resolves a fully qualified key. Keys missing from both the locale and
// the default locale resolve to the key itself.
func (t *Translator) T(key string, args ...any) string {
	if t.catalog.plurals[t.locale][key] && len(args) > 0 {
		if n, ok := toFloat(args[0]); ok {
			if s, err := t.trans.C(key, n, 0, fmt.Sprint(args[0])); err == nil {
				return s
			}
		}
	}

	if _, ok := t.catalog.params[t.locale][key]; ok {
		params := make([]string, max(len(args), t.catalog.params[t.locale][key]))
		for i, a := range args {
			params[i] = fmt.Sprint(a)
		}
		if s, err := t.trans.T(key, params...); err == nil {
			return s
		}
	}

	if t.fallback != nil {
		return t.fallback.T(key, args...)
	}
	return key
}

// Namespace scopes T to keys under ns.
func (t *Translator) Namespace(ns string) TranslateFunc {
	return func(key string, args ...any) string {
		return t.T(ns+"."+key, args...)
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
