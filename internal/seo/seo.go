package seo

import (
	"html/template"
	"strings"

	"github.com/MarvinNL046/zerotovpn-sub002/internal/content"
	"golang.org/x/text/language"
)

// XDefault is the hreflang value pointing crawlers at the default-locale URL.
const XDefault = "x-default"

type OpenGraph struct {
	Title            string
	Description      string
	Image            string
	Type             string
	URL              string
	SiteName         string
	Locale           string
	AlternateLocales []string
}

type Twitter struct {
	Card        string
	Title       string
	Description string
	Image       string
}

// Alternate is one <link rel="alternate" hreflang> entry.
type Alternate struct {
	Hreflang string
	Href     string
}

type Meta struct {
	Lang        string
	Title       string
	Description string
	Canonical   string
	Robots      string
	OG          OpenGraph
	Twitter     Twitter
	Alternates  []Alternate
	JSONLD      []template.JS
}

// AddJSONLD appends a structured-data block. Payloads that fail to marshal
// are dropped.
func (m *Meta) AddJSONLD(v any) {
	if s := JSON(v); s != "" {
		m.JSONLD = append(m.JSONLD, template.JS(s))
	}
}

// Builder derives canonical URLs, hreflang alternates and page metadata from
// the site-wide base URL and locale routing table.
type Builder struct {
	baseURL       string
	siteName      string
	defaultLocale string
	locales       []string
	supported     map[string]struct{}
}

// NewBuilder returns a Builder. baseURL must be an absolute origin; a
// trailing slash is trimmed.
func NewBuilder(baseURL, siteName, defaultLocale string, locales []string) *Builder {
	b := &Builder{
		baseURL:       strings.TrimRight(baseURL, "/"),
		siteName:      siteName,
		defaultLocale: defaultLocale,
		locales:       append([]string(nil), locales...),
		supported:     make(map[string]struct{}, len(locales)),
	}
	for _, l := range locales {
		b.supported[l] = struct{}{}
	}
	return b
}

func (b *Builder) SiteName() string      { return b.siteName }
func (b *Builder) DefaultLocale() string { return b.defaultLocale }

// Locales returns the supported locales in configured order.
func (b *Builder) Locales() []string { return append([]string(nil), b.locales...) }

// Supported reports whether locale is routable.
func (b *Builder) Supported(locale string) bool {
	_, ok := b.supported[locale]
	return ok
}

// Locale maps an unsupported locale to the default one.
func (b *Builder) Locale(locale string) string {
	if b.Supported(locale) {
		return locale
	}
	return b.defaultLocale
}

// LocalePrefix is "" for the default locale and for unsupported locales,
// "/xx" otherwise.
func (b *Builder) LocalePrefix(locale string) string {
	locale = b.Locale(locale)
	if locale == b.defaultLocale {
		return ""
	}
	return "/" + locale
}

// Path returns the site-relative path of p under locale's prefix.
func (b *Builder) Path(locale, p string) string {
	p = cleanPath(p)
	prefix := b.LocalePrefix(locale)
	if prefix != "" && p == "/" {
		return prefix
	}
	return prefix + p
}

// CanonicalURL is BaseURL + locale prefix + path.
func (b *Builder) CanonicalURL(locale, p string) string {
	return b.baseURL + b.Path(locale, p)
}

// URL returns an absolute URL for a site path without locale handling, for
// assets and images.
func (b *Builder) URL(p string) string {
	if p == "" || strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
		return p
	}
	return b.baseURL + cleanPath(p)
}

// Alternates lists the canonical URL of p in every supported locale, in
// configured order, followed by x-default. Translation availability does not
// matter: an untranslated locale still gets its own URL.
func (b *Builder) Alternates(p string) []Alternate {
	out := make([]Alternate, 0, len(b.locales)+1)
	for _, l := range b.locales {
		out = append(out, Alternate{Hreflang: l, Href: b.CanonicalURL(l, p)})
	}
	out = append(out, Alternate{Hreflang: XDefault, Href: b.CanonicalURL(b.defaultLocale, p)})
	return out
}

// Build assembles page metadata for locale. Title and description come from
// table with the same exact-then-English rule as page copy. An unsupported
// locale gets English text, whatever table holds for it.
func (b *Builder) Build(locale, p string, table content.Localized[content.Meta]) Meta {
	if !b.Supported(locale) {
		locale = content.FallbackLocale
	}
	lang := b.Locale(locale)
	text := table.Resolve(locale)
	canonical := b.CanonicalURL(lang, p)
	m := Meta{
		Lang:        lang,
		Title:       text.Title,
		Description: text.Description,
		Canonical:   canonical,
		Alternates:  b.Alternates(p),
		OG: OpenGraph{
			Title:       text.Title,
			Description: text.Description,
			Type:        "website",
			URL:         canonical,
			SiteName:    b.siteName,
			Locale:      OGLocale(lang),
		},
		Twitter: Twitter{
			Card:        "summary_large_image",
			Title:       text.Title,
			Description: text.Description,
		},
	}
	for _, l := range b.locales {
		if l != lang {
			m.OG.AlternateLocales = append(m.OG.AlternateLocales, OGLocale(l))
		}
	}
	return m
}

// WithImage sets the Open Graph and Twitter image to an absolute URL.
func (b *Builder) WithImage(m *Meta, image string) {
	abs := b.URL(image)
	m.OG.Image = abs
	m.Twitter.Image = abs
}

// OGLocale converts a locale code to Open Graph's language_TERRITORY form,
// using the most likely region for bare language codes ("ja" -> "ja_JP").
func OGLocale(locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		return locale
	}
	base, _ := tag.Base()
	region, conf := tag.Region()
	if conf == language.No {
		return base.String()
	}
	return base.String() + "_" + region.String()
}

// Param is one prerenderable (locale, path) pair.
type Param struct {
	Locale string
	Path   string
	URL    string
}

// StaticParams returns every supported locale crossed with paths, in path
// order then locale order.
func (b *Builder) StaticParams(paths []string) []Param {
	out := make([]Param, 0, len(paths)*len(b.locales))
	for _, p := range paths {
		for _, l := range b.locales {
			out = append(out, Param{Locale: l, Path: b.Path(l, p), URL: b.CanonicalURL(l, p)})
		}
	}
	return out
}

func cleanPath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
		if p == "" {
			p = "/"
		}
	}
	return p
}
