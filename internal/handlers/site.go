package handlers

import (
	"strings"

	"github.com/MarvinNL046/zerotovpn-sub002/internal/catalog"
	"github.com/MarvinNL046/zerotovpn-sub002/internal/content"
	"github.com/MarvinNL046/zerotovpn-sub002/internal/i18n"
	"github.com/MarvinNL046/zerotovpn-sub002/internal/nav"
	"github.com/MarvinNL046/zerotovpn-sub002/internal/seo"
)

// Site bundles the read-only data every page is built from. All fields are
// loaded once at startup and never mutated.
type Site struct {
	Catalog *catalog.Catalog
	Content *content.Store
	SEO     *seo.Builder
	I18n    *i18n.Bundle
}

// LocaleLink is one entry of the language switcher.
type LocaleLink struct {
	Code   string
	Label  string
	Href   string
	Active bool
}

// CountryLink is a country guide entry for navigation.
type CountryLink struct {
	Href  string
	Title string
}

// PageData is the view model shared by every page template. Exactly one of
// the payload pointers is set.
type PageData struct {
	Lang     string
	SiteName string
	SEO      seo.Meta

	// Path is the unprefixed route path, e.g. "/best/vpn-japan".
	Path        string
	Nav         []nav.RenderedItem
	Breadcrumbs []nav.Crumb
	Switcher    []LocaleLink
	Countries   []CountryLink

	Home     *HomeView
	Ranking  *RankingView
	Country  *CountryView
	Review   *ReviewView
	Blog     *BlogView
	Post     *PostView
	NotFound bool
}

// T translates a UI key in the page language.
func (s *Site) T(lang, key string) string { return s.I18n.T(lang, key) }

// Href returns the locale-prefixed site path for p.
func (s *Site) Href(lang, p string) string { return s.SEO.Path(lang, p) }

func (s *Site) localizer(lang string) nav.Localizer {
	return func(p string) string { return s.SEO.Path(lang, p) }
}

// base fills the layout fields. leaf labels the last breadcrumb.
func (s *Site) base(lang, path, leaf string, meta seo.Meta) PageData {
	lang = s.SEO.Locale(lang)
	d := PageData{
		Lang:        lang,
		SiteName:    s.SEO.SiteName(),
		SEO:         meta,
		Path:        path,
		Nav:         nav.Build(path, s.localizer(lang)),
		Breadcrumbs: nav.Breadcrumbs(path, leaf, s.localizer(lang)),
	}
	for _, code := range s.SEO.Locales() {
		d.Switcher = append(d.Switcher, LocaleLink{
			Code:   code,
			Label:  s.I18n.T(code, "lang.name"),
			Href:   s.SEO.Path(code, path),
			Active: code == lang,
		})
	}
	for _, g := range s.Content.Countries() {
		d.Countries = append(d.Countries, CountryLink{
			Href:  s.SEO.Path(lang, g.Path),
			Title: g.Content.Resolve(lang).Title,
		})
	}
	return d
}

// breadcrumbLD turns rendered crumbs into BreadcrumbList JSON-LD with
// absolute URLs. Single-crumb trails (home) carry no structured data.
func (s *Site) breadcrumbLD(d *PageData) {
	if len(d.Breadcrumbs) < 2 {
		return
	}
	items := make([]seo.BreadcrumbItem, 0, len(d.Breadcrumbs))
	for _, c := range d.Breadcrumbs {
		name := c.Label
		if c.LabelKey != "" {
			name = s.I18n.T(d.Lang, c.LabelKey)
		}
		items = append(items, seo.BreadcrumbItem{Name: name, Item: s.SEO.URL(c.Href)})
	}
	d.SEO.AddJSONLD(seo.BreadcrumbList(items))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
