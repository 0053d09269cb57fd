// Package content loads the translated page bundles and blog posts and
// selects the bundle to render for a request locale.
package content

import (
	"errors"
	"sort"
)

// FallbackLocale is the bundle every page must provide and the one served
// when a locale has no translation.
const FallbackLocale = "en"

// ErrMissingFallback is returned when a bundle set lacks the fallback locale.
var ErrMissingFallback = errors.New("content: missing " + FallbackLocale + " bundle")

// Localized maps locale codes to one page's bundle in that locale.
type Localized[T any] map[string]T

// Resolve returns the bundle stored under locale, or the fallback bundle when
// locale has none. The bundle is returned as stored, never merged.
func (l Localized[T]) Resolve(locale string) T {
	return Resolve(l, locale)
}

// Has reports whether locale has its own translation.
func (l Localized[T]) Has(locale string) bool {
	_, ok := l[locale]
	return ok
}

// Locales lists the translated locales, sorted.
func (l Localized[T]) Locales() []string {
	out := make([]string, 0, len(l))
	for k := range l {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Validate enforces the authoring rule that the fallback bundle exists.
func (l Localized[T]) Validate() error {
	if _, ok := l[FallbackLocale]; !ok {
		return ErrMissingFallback
	}
	return nil
}

// Resolve selects m[locale] on an exact key match and m["en"] otherwise.
func Resolve[T any](m map[string]T, locale string) T {
	if v, ok := m[locale]; ok {
		return v
	}
	return m[FallbackLocale]
}

// Meta is the per-locale title and description of a page.
type Meta struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// FAQ is one question/answer pair, rendered on the page and in FAQPage data.
type FAQ struct {
	Question string `yaml:"q"`
	Answer   string `yaml:"a"`
}
