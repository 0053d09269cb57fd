package nav

import (
	"path"
	"strings"
)

// Item represents a top-level navigation item.
type Item struct {
	Path     string // unprefixed, e.g. "/best-vpn"
	LabelKey string // i18n key, e.g. "nav.ranking"
}

// RenderedItem is a view model for templates.
type RenderedItem struct {
	Href     string
	LabelKey string
	Active   bool
}

// Crumb represents a breadcrumb entry. If LabelKey is empty, use Label.
type Crumb struct {
	Href     string
	LabelKey string
	Label    string
	Active   bool
}

// Main is the primary navigation definition.
var Main = []Item{
	{Path: "/", LabelKey: "nav.home"},
	{Path: "/best-vpn", LabelKey: "nav.ranking"},
	{Path: "/blog", LabelKey: "nav.blog"},
}

// sections maps a first path segment to the crumb that stands for it. Country
// guides and reviews have no index of their own and point at the ranking.
var sections = map[string]Item{
	"best-vpn": {Path: "/best-vpn", LabelKey: "nav.ranking"},
	"best":     {Path: "/best-vpn", LabelKey: "crumb.best"},
	"reviews":  {Path: "/best-vpn", LabelKey: "crumb.reviews"},
	"blog":     {Path: "/blog", LabelKey: "nav.blog"},
}

// Localizer maps an unprefixed site path to the href for the current locale.
type Localizer func(p string) string

// Build renders navigation items with active state given the current
// unprefixed path. Hrefs go through loc; a nil loc leaves them as is.
func Build(currentPath string, loc Localizer) []RenderedItem {
	if currentPath == "" {
		currentPath = "/"
	}
	items := make([]RenderedItem, 0, len(Main))
	for _, it := range Main {
		items = append(items, RenderedItem{
			Href:     localize(loc, it.Path),
			LabelKey: it.LabelKey,
			Active:   isActive(it.Path, currentPath),
		})
	}
	return items
}

func isActive(itemPath, currentPath string) bool {
	if itemPath == "/" {
		return currentPath == "/"
	}
	// match exact or prefix boundary: "/blog" or "/blog/..."
	return currentPath == itemPath || strings.HasPrefix(currentPath, itemPath+"/")
}

// Breadcrumbs builds breadcrumb entries from the current unprefixed path.
// Home comes first, known sections use their label keys, and the last
// segment uses leaf when given, a prettified slug otherwise.
func Breadcrumbs(currentPath, leaf string, loc Localizer) []Crumb {
	if currentPath == "" {
		currentPath = "/"
	}
	crumbs := []Crumb{{Href: localize(loc, "/"), LabelKey: "nav.home", Active: currentPath == "/"}}
	if currentPath == "/" {
		return crumbs
	}

	clean := path.Clean("/" + strings.TrimPrefix(currentPath, "/"))
	parts := strings.Split(strings.TrimPrefix(clean, "/"), "/")

	sec, known := sections[parts[0]]
	switch {
	case known && len(parts) == 1:
		crumbs = append(crumbs, Crumb{Href: localize(loc, sec.Path), LabelKey: sec.LabelKey, Active: true})
		return crumbs
	case known:
		crumbs = append(crumbs, Crumb{Href: localize(loc, sec.Path), LabelKey: sec.LabelKey})
	default:
		crumbs = append(crumbs, Crumb{Href: localize(loc, "/"+parts[0]), Label: titleFromSegment(parts[0]), Active: len(parts) == 1})
	}

	href := "/" + parts[0]
	for i := 1; i < len(parts); i++ {
		href += "/" + parts[i]
		label := titleFromSegment(parts[i])
		last := i == len(parts)-1
		if last && leaf != "" {
			label = leaf
		}
		crumbs = append(crumbs, Crumb{Href: localize(loc, href), Label: label, Active: last})
	}
	if len(parts) == 1 && leaf != "" && !known {
		crumbs[len(crumbs)-1].Label = leaf
	}
	return crumbs
}

func localize(loc Localizer, p string) string {
	if loc == nil {
		return p
	}
	return loc(p)
}

func titleFromSegment(seg string) string {
	if seg == "" {
		return seg
	}
	s := strings.ReplaceAll(seg, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")
	r := []rune(s)
	r[0] = toUpper(r[0])
	return string(r)
}

func toUpper(r rune) rune {
	// ASCII only is sufficient for slugs here
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
