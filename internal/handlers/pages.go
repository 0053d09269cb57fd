package handlers

import (
	"sort"

	"github.com/MarvinNL046/zerotovpn-sub002/internal/catalog"
	"github.com/MarvinNL046/zerotovpn-sub002/internal/content"
	"github.com/MarvinNL046/zerotovpn-sub002/internal/format"
	"github.com/MarvinNL046/zerotovpn-sub002/internal/seo"
)

// ProviderCard is a provider with its display strings pre-formatted for the
// page language.
type ProviderCard struct {
	catalog.Provider
	Rank       int
	ReviewHref string
	Rating     string
	Monthly    string
	Yearly     string
	TwoYear    string
	ServerNum  string
	CountryNum string
}

type HomeView struct {
	Copy     content.PageCopy
	Featured []ProviderCard
	// RankingHref is the localized link behind the call to action.
	RankingHref string
}

type RankingView struct {
	Copy      content.PageCopy
	Providers []ProviderCard
}

type CountryView struct {
	Guide content.CountryGuide
	Copy  content.CountryCopy
	// Translated is false when the English guide stands in for lang.
	Translated  bool
	Recommended []ProviderCard
	Updated     string
}

type ReviewView struct {
	Provider ProviderCard
	// HasCopy is false for catalog providers without editorial text; the page
	// then renders catalog data only.
	HasCopy bool
	// Translated reports whether the editorial text is written in the page
	// language rather than served from English.
	Translated bool
	Copy       content.ReviewCopy
	Author     string
	Updated    string
}

type BlogView struct {
	Posts []PostSummary
}

type PostSummary struct {
	Title       string
	Description string
	Href        string
	Date        string
	Minutes     int
}

type PostView struct {
	Post      content.Post
	Published string
	Updated   string
	// Translated is false when the English post is served in place of a
	// missing translation.
	Translated bool
	// Translations links the locales the post is written in.
	Translations []LocaleLink
}

func (s *Site) card(lang string, p catalog.Provider, rank int) ProviderCard {
	return ProviderCard{
		Provider:   p,
		Rank:       rank,
		ReviewHref: s.SEO.Path(lang, "/reviews/"+p.Slug),
		Rating:     format.FmtRating(p.OverallRating, lang),
		Monthly:    priceOrEmpty(p.PriceMonthly, lang),
		Yearly:     priceOrEmpty(p.PriceYearly, lang),
		TwoYear:    priceOrEmpty(p.PriceTwoYear, lang),
		ServerNum:  format.FmtNumber(p.Servers, lang),
		CountryNum: format.FmtNumber(p.Countries, lang),
	}
}

func priceOrEmpty(m catalog.Money, lang string) string {
	if m <= 0 {
		return ""
	}
	return format.FmtUSD(int64(m), lang)
}

func (s *Site) cards(lang string, providers []catalog.Provider) []ProviderCard {
	out := make([]ProviderCard, 0, len(providers))
	for i, p := range providers {
		out = append(out, s.card(lang, p, i+1))
	}
	return out
}

func (s *Site) itemList(name string, cards []ProviderCard) map[string]any {
	items := make([]seo.ListItem, 0, len(cards))
	for _, c := range cards {
		items = append(items, seo.ListItem{Name: c.Name, URL: s.SEO.URL(c.ReviewHref)})
	}
	return seo.ItemList(name, items)
}

// Home builds "/". ok is false when the home bundle is missing.
func (s *Site) Home(lang string) (PageData, bool) {
	page, ok := s.Content.Page("home")
	if !ok {
		return PageData{}, false
	}
	lang = s.SEO.Locale(lang)
	meta := s.SEO.Build(lang, page.Path, page.Meta)
	text := page.Content.Resolve(lang)
	featured := s.cards(lang, s.Catalog.Pick(page.Featured...))

	meta.AddJSONLD(seo.WebSite(s.SEO.SiteName(), meta.Canonical, lang))
	meta.AddJSONLD(seo.Organization(s.SEO.SiteName(), s.SEO.URL("/"), ""))
	if len(featured) > 0 {
		meta.AddJSONLD(s.itemList(text.Heading, featured))
	}
	if ld := seo.FAQPage(text.FAQ); ld != nil {
		meta.AddJSONLD(ld)
	}

	d := s.base(lang, page.Path, "", meta)
	d.Home = &HomeView{Copy: text, Featured: featured, RankingHref: s.SEO.Path(lang, "/best-vpn")}
	return d, true
}

// Ranking builds "/best-vpn": every catalog provider by descending score,
// ties in catalog order.
func (s *Site) Ranking(lang string) (PageData, bool) {
	page, ok := s.Content.Page("best-vpn")
	if !ok {
		return PageData{}, false
	}
	lang = s.SEO.Locale(lang)
	providers := s.Catalog.All()
	sort.SliceStable(providers, func(i, j int) bool {
		return providers[i].OverallRating > providers[j].OverallRating
	})
	text := page.Content.Resolve(lang)
	cards := s.cards(lang, providers)

	meta := s.SEO.Build(lang, page.Path, page.Meta)
	meta.AddJSONLD(s.itemList(firstNonEmpty(text.Heading, meta.Title), cards))
	if ld := seo.FAQPage(text.FAQ); ld != nil {
		meta.AddJSONLD(ld)
	}

	d := s.base(lang, page.Path, "", meta)
	s.breadcrumbLD(&d)
	d.Ranking = &RankingView{Copy: text, Providers: cards}
	return d, true
}

// Country builds "/best/{slug}". Recommended slugs missing from the catalog
// are skipped.
func (s *Site) Country(lang, slug string) (PageData, bool) {
	g, ok := s.Content.Country(slug)
	if !ok {
		return PageData{}, false
	}
	lang = s.SEO.Locale(lang)
	text := g.Content.Resolve(lang)
	recommended := s.cards(lang, s.Catalog.Pick(g.Recommended...))

	meta := s.SEO.Build(lang, g.Path, g.Meta)
	meta.OG.Type = "article"
	if ld := seo.FAQPage(text.FAQ); ld != nil {
		meta.AddJSONLD(ld)
	}
	if len(recommended) > 0 {
		meta.AddJSONLD(s.itemList(text.Title, recommended))
	}

	d := s.base(lang, g.Path, text.Title, meta)
	s.breadcrumbLD(&d)
	v := &CountryView{Guide: g, Copy: text, Translated: g.Content.Has(lang), Recommended: recommended}
	if !g.Updated.IsZero() {
		v.Updated = format.FmtDate(g.Updated, lang)
	}
	d.Country = v
	return d, true
}

// Review builds "/reviews/{slug}" for any catalog provider. Editorial text is
// optional.
func (s *Site) Review(lang, slug string) (PageData, bool) {
	p, ok := s.Catalog.BySlug(slug)
	if !ok {
		return PageData{}, false
	}
	lang = s.SEO.Locale(lang)
	path := "/reviews/" + p.Slug
	v := &ReviewView{Provider: s.card(lang, p, 0)}

	table := content.Localized[content.Meta]{
		content.FallbackLocale: {Title: p.Name + " Review", Description: p.Name + ": " + s.I18n.T(lang, "review.no_copy")},
	}
	in := seo.ReviewInput{URL: s.SEO.CanonicalURL(lang, path), Lang: lang}
	r, hasReview := s.Content.Review(p.Slug)
	if hasReview {
		table = r.Meta
		v.HasCopy = true
		v.Translated = r.Content.Has(lang)
		v.Copy = r.Content.Resolve(lang)
		v.Author = r.Author
		if !r.Updated.IsZero() {
			v.Updated = format.FmtDate(r.Updated, lang)
		}
		in.Author = r.Author
		in.Body = firstNonEmpty(v.Copy.Verdict, v.Copy.Summary)
		in.Published = r.Updated
	}

	meta := s.SEO.Build(lang, path, table)
	meta.OG.Type = "article"
	if p.Logo != "" {
		s.SEO.WithImage(&meta, p.Logo)
	}
	meta.AddJSONLD(seo.ProductReview(p, in))
	if ld := seo.FAQPage(v.Copy.FAQ); ld != nil {
		meta.AddJSONLD(ld)
	}

	d := s.base(lang, path, p.Name, meta)
	s.breadcrumbLD(&d)
	d.Review = v
	return d, true
}

// Blog builds the "/blog" index in lang, listing English posts where no
// translation exists.
func (s *Site) Blog(lang string) PageData {
	lang = s.SEO.Locale(lang)
	title := s.I18n.T(lang, "blog.title")
	meta := s.SEO.Build(lang, "/blog", content.Localized[content.Meta]{
		content.FallbackLocale: {Title: title + " | " + s.SEO.SiteName(), Description: s.I18n.T(lang, "site.tagline")},
	})
	v := &BlogView{}
	items := make([]seo.ListItem, 0)
	for _, p := range s.Content.Posts(lang) {
		href := s.SEO.Path(lang, p.Path)
		v.Posts = append(v.Posts, PostSummary{
			Title:       p.Title,
			Description: p.Description,
			Href:        href,
			Date:        format.FmtDate(p.PublishedAt, lang),
			Minutes:     p.ReadingMinutes,
		})
		items = append(items, seo.ListItem{Name: p.Title, URL: s.SEO.URL(href)})
	}
	if len(items) > 0 {
		meta.AddJSONLD(seo.ItemList(title, items))
	}
	d := s.base(lang, "/blog", "", meta)
	s.breadcrumbLD(&d)
	d.Blog = v
	return d
}

// Post builds "/blog/{slug}", falling back to the English post.
func (s *Site) Post(lang, slug string) (PageData, bool) {
	lang = s.SEO.Locale(lang)
	p, ok := s.Content.Post(slug, lang)
	if !ok {
		return PageData{}, false
	}
	meta := s.SEO.Build(lang, p.Path, content.Localized[content.Meta]{
		content.FallbackLocale: {Title: p.Title, Description: p.Description},
	})
	meta.OG.Type = "article"
	if p.Image != "" {
		s.SEO.WithImage(&meta, p.Image)
	}
	meta.AddJSONLD(seo.Article(seo.ArticleInput{
		Headline:    p.Title,
		Description: p.Description,
		URL:         meta.Canonical,
		Image:       meta.OG.Image,
		Author:      p.Author,
		Publisher:   s.SEO.SiteName(),
		Lang:        p.Lang,
		Published:   p.PublishedAt,
		Modified:    p.UpdatedAt,
	}))

	d := s.base(lang, p.Path, p.Title, meta)
	s.breadcrumbLD(&d)
	v := &PostView{Post: p, Translated: p.Lang == lang}
	for _, l := range s.Content.PostLocales(slug) {
		if !s.SEO.Supported(l) {
			continue
		}
		v.Translations = append(v.Translations, LocaleLink{
			Code:   l,
			Label:  s.I18n.T(l, "lang.name"),
			Href:   s.SEO.Path(l, p.Path),
			Active: l == p.Lang,
		})
	}
	if !p.PublishedAt.IsZero() {
		v.Published = format.FmtDate(p.PublishedAt, lang)
	}
	if !p.UpdatedAt.IsZero() && !p.UpdatedAt.Equal(p.PublishedAt) {
		v.Updated = format.FmtDate(p.UpdatedAt, lang)
	}
	d.Post = v
	return d, true
}

// NotFound builds the localized 404 page for path.
func (s *Site) NotFound(lang, path string) PageData {
	lang = s.SEO.Locale(lang)
	meta := s.SEO.Build(lang, path, content.Localized[content.Meta]{
		content.FallbackLocale: {Title: s.I18n.T(lang, "notfound.title"), Description: s.I18n.T(lang, "notfound.body")},
	})
	meta.Robots = "noindex"
	meta.Alternates = nil
	d := s.base(lang, path, "", meta)
	d.Breadcrumbs = nil
	d.NotFound = true
	return d
}
