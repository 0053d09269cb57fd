package handlers

import (
	"time"

	"github.com/MarvinNL046/zerotovpn-sub002/internal/seo"
)

// SitemapEntries lists every routable page once, unprefixed, with its last
// modification date when the content records one. Reviews exist for every
// catalog provider.
func (s *Site) SitemapEntries() []seo.SitemapEntry {
	lastmod := map[string]time.Time{}
	for _, g := range s.Content.Countries() {
		lastmod[g.Path] = g.Updated
	}
	for _, p := range s.Content.Posts("en") {
		lastmod[p.Path] = p.UpdatedAt
		if p.UpdatedAt.IsZero() {
			lastmod[p.Path] = p.PublishedAt
		}
	}
	var out []seo.SitemapEntry
	for _, p := range s.Content.Paths() {
		out = append(out, seo.SitemapEntry{Path: p, LastMod: lastmod[p]})
	}
	for _, slug := range s.Catalog.Slugs() {
		e := seo.SitemapEntry{Path: "/reviews/" + slug}
		if r, ok := s.Content.Review(slug); ok {
			e.LastMod = r.Updated
		}
		out = append(out, e)
	}
	return out
}

// Paths lists every routable unprefixed page path, the input of static params.
func (s *Site) Paths() []string {
	entries := s.SitemapEntries()
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Path)
	}
	return out
}
