package seo

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"time"
)

// SitemapEntry is one logical page; it expands to one <url> per locale.
type SitemapEntry struct {
	Path    string
	LastMod time.Time
}

type urlset struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	XHTML   string       `xml:"xmlns:xhtml,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string      `xml:"loc"`
	LastMod string      `xml:"lastmod,omitempty"`
	Links   []xhtmlLink `xml:"xhtml:link"`
}

type xhtmlLink struct {
	Rel      string `xml:"rel,attr"`
	Hreflang string `xml:"hreflang,attr"`
	Href     string `xml:"href,attr"`
}

// Sitemap renders an XML sitemap listing every entry in every supported
// locale, each with the full hreflang alternate set.
func (b *Builder) Sitemap(entries []SitemapEntry) ([]byte, error) {
	set := urlset{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		XHTML: "http://www.w3.org/1999/xhtml",
	}
	for _, e := range entries {
		alts := b.Alternates(e.Path)
		links := make([]xhtmlLink, 0, len(alts))
		for _, a := range alts {
			links = append(links, xhtmlLink{Rel: "alternate", Hreflang: a.Hreflang, Href: a.Href})
		}
		var lastmod string
		if !e.LastMod.IsZero() {
			lastmod = e.LastMod.UTC().Format("2006-01-02")
		}
		for _, l := range b.locales {
			set.URLs = append(set.URLs, sitemapURL{
				Loc:     b.CanonicalURL(l, e.Path),
				LastMod: lastmod,
				Links:   links,
			})
		}
	}
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return nil, fmt.Errorf("seo: encode sitemap: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Robots returns a robots.txt body that allows everything and points at the
// sitemap.
func (b *Builder) Robots() string {
	return "User-agent: *\nAllow: /\n\nSitemap: " + b.baseURL + "/sitemap.xml\n"
}
