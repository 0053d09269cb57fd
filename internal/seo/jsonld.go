package seo

import (
	"encoding/json"
	"time"

	"github.com/MarvinNL046/zerotovpn-sub002/internal/catalog"
	"github.com/MarvinNL046/zerotovpn-sub002/internal/content"
)

// JSON marshals v to a compact JSON string. It returns an empty string on error.
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// Organization returns a minimal Organization schema.
func Organization(name, url, logoURL string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Organization",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	if logoURL != "" {
		m["logo"] = logoURL
	}
	return m
}

// WebSite returns a WebSite schema in the page language.
func WebSite(name, url, lang string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	if lang != "" {
		m["inLanguage"] = lang
	}
	return m
}

// BreadcrumbItem maps name and absolute item URL.
type BreadcrumbItem struct {
	Name string
	Item string
}

// BreadcrumbList builds schema.org BreadcrumbList.
func BreadcrumbList(items []BreadcrumbItem) map[string]any {
	el := make([]map[string]any, 0, len(items))
	for i, it := range items {
		el = append(el, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     it.Name,
			"item":     it.Item,
		})
	}
	return map[string]any{
		"@context":        "https://schema.org",
		"@type":           "BreadcrumbList",
		"itemListElement": el,
	}
}

// ArticleInput carries the fields of an Article schema.
type ArticleInput struct {
	Headline    string
	Description string
	URL         string
	Image       string
	Author      string
	Publisher   string
	Lang        string
	Published   time.Time
	Modified    time.Time
}

// Article returns an Article schema payload.
func Article(in ArticleInput) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Article",
		"headline": in.Headline,
	}
	if in.Description != "" {
		m["description"] = in.Description
	}
	if in.URL != "" {
		m["url"] = in.URL
		m["mainEntityOfPage"] = in.URL
	}
	if in.Image != "" {
		m["image"] = in.Image
	}
	if in.Author != "" {
		m["author"] = map[string]any{"@type": "Person", "name": in.Author}
	}
	if in.Publisher != "" {
		m["publisher"] = map[string]any{"@type": "Organization", "name": in.Publisher}
	}
	if in.Lang != "" {
		m["inLanguage"] = in.Lang
	}
	if !in.Published.IsZero() {
		m["datePublished"] = in.Published.Format("2006-01-02")
	}
	if !in.Modified.IsZero() {
		m["dateModified"] = in.Modified.Format("2006-01-02")
	}
	return m
}

// ListItem is one ranked entry of an ItemList.
type ListItem struct {
	Name string
	URL  string
}

// ItemList returns an ordered ItemList schema.
func ItemList(name string, items []ListItem) map[string]any {
	el := make([]map[string]any, 0, len(items))
	for i, it := range items {
		el = append(el, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     it.Name,
			"url":      it.URL,
		})
	}
	m := map[string]any{
		"@context":        "https://schema.org",
		"@type":           "ItemList",
		"itemListOrder":   "https://schema.org/ItemListOrderDescending",
		"numberOfItems":   len(items),
		"itemListElement": el,
	}
	if name != "" {
		m["name"] = name
	}
	return m
}

// FAQPage returns a FAQPage schema, or nil when there are no questions.
func FAQPage(faq []content.FAQ) map[string]any {
	if len(faq) == 0 {
		return nil
	}
	el := make([]map[string]any, 0, len(faq))
	for _, f := range faq {
		el = append(el, map[string]any{
			"@type": "Question",
			"name":  f.Question,
			"acceptedAnswer": map[string]any{
				"@type": "Answer",
				"text":  f.Answer,
			},
		})
	}
	return map[string]any{
		"@context":   "https://schema.org",
		"@type":      "FAQPage",
		"mainEntity": el,
	}
}

// ReviewInput carries the editorial side of a provider review.
type ReviewInput struct {
	URL       string
	Author    string
	Body      string
	Lang      string
	Published time.Time
}

// ProductReview returns a Product schema for provider with its editorial
// Review, Rating and an AggregateOffer spanning the plan prices.
func ProductReview(p catalog.Provider, in ReviewInput) map[string]any {
	review := map[string]any{
		"@type": "Review",
		"reviewRating": map[string]any{
			"@type":       "Rating",
			"ratingValue": p.OverallRating,
			"bestRating":  5,
			"worstRating": 0,
		},
	}
	if in.Author != "" {
		review["author"] = map[string]any{"@type": "Person", "name": in.Author}
	}
	if in.Body != "" {
		review["reviewBody"] = in.Body
	}
	if in.Lang != "" {
		review["inLanguage"] = in.Lang
	}
	if !in.Published.IsZero() {
		review["datePublished"] = in.Published.Format("2006-01-02")
	}
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Product",
		"name":     p.Name,
		"sku":      p.ID,
		"brand":    map[string]any{"@type": "Brand", "name": p.Name},
		"review":   review,
	}
	if in.URL != "" {
		m["url"] = in.URL
	}
	if offer := aggregateOffer(p); offer != nil {
		m["offers"] = offer
	}
	return m
}

// aggregateOffer spans the per-month rates of the plans a provider sells.
func aggregateOffer(p catalog.Provider) map[string]any {
	var low, high catalog.Money
	for _, price := range []catalog.Money{p.PriceMonthly, p.PriceYearly, p.PriceTwoYear} {
		if price <= 0 {
			continue
		}
		if low == 0 || price < low {
			low = price
		}
		if price > high {
			high = price
		}
	}
	if high == 0 {
		return nil
	}
	m := map[string]any{
		"@type":         "AggregateOffer",
		"priceCurrency": "USD",
		"lowPrice":      low.Dollars(),
		"highPrice":     high.Dollars(),
	}
	if p.AffiliateURL != "" {
		m["url"] = p.AffiliateURL
	}
	return m
}
