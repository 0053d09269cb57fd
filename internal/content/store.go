package content

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// StaticPage is a fixed page such as the home page or the ranking page.
type StaticPage struct {
	Key      string              `yaml:"-"`
	Path     string              `yaml:"path"`
	Featured []string            `yaml:"featured"`
	Meta     Localized[Meta]     `yaml:"meta"`
	Content  Localized[PageCopy] `yaml:"content"`
}

// PageCopy is the translated copy of a static page.
type PageCopy struct {
	Heading    string    `yaml:"heading"`
	Subheading string    `yaml:"subheading"`
	Intro      string    `yaml:"intro"`
	CTA        string    `yaml:"cta"`
	Sections   []Section `yaml:"sections"`
	FAQ        []FAQ     `yaml:"faq"`
}

// Section is a heading with a paragraph of body text.
type Section struct {
	Heading string `yaml:"heading"`
	Body    string `yaml:"body"`
}

// CountryGuide is a "best VPN for <country>" page.
type CountryGuide struct {
	Slug        string                 `yaml:"-"`
	Path        string                 `yaml:"-"`
	Country     string                 `yaml:"country"`
	Recommended []string               `yaml:"recommended"`
	UpdatedRaw  string                 `yaml:"updated"`
	Updated     time.Time              `yaml:"-"`
	Meta        Localized[Meta]        `yaml:"meta"`
	Content     Localized[CountryCopy] `yaml:"content"`
}

// CountryCopy is the translated copy of a country guide.
type CountryCopy struct {
	Title     string   `yaml:"title"`
	Subtitle  string   `yaml:"subtitle"`
	Intro     string   `yaml:"intro"`
	Tips      []string `yaml:"tips"`
	FAQ       []FAQ    `yaml:"faq"`
	LegalNote string   `yaml:"legal_note"`
}

// Review holds the editorial copy for one provider's review page. The
// provider's data itself lives in the catalog.
type Review struct {
	Slug       string                `yaml:"-"`
	Path       string                `yaml:"-"`
	Author     string                `yaml:"author"`
	UpdatedRaw string                `yaml:"updated"`
	Updated    time.Time             `yaml:"-"`
	Meta       Localized[Meta]       `yaml:"meta"`
	Content    Localized[ReviewCopy] `yaml:"content"`
}

// ReviewCopy is the translated verdict of a review.
type ReviewCopy struct {
	Verdict string   `yaml:"verdict"`
	Summary string   `yaml:"summary"`
	Pros    []string `yaml:"pros"`
	Cons    []string `yaml:"cons"`
	FAQ     []FAQ    `yaml:"faq"`
}

// Store is the immutable content tree loaded at startup.
type Store struct {
	pages     map[string]StaticPage
	countries map[string]CountryGuide
	reviews   map[string]Review
	posts     map[string]Localized[Post]
}

// LoadStore reads and validates every bundle under fsys. A bundle set without
// the fallback locale fails the load.
func LoadStore(fsys fs.FS) (*Store, error) {
	s := &Store{
		pages:     map[string]StaticPage{},
		countries: map[string]CountryGuide{},
		reviews:   map[string]Review{},
		posts:     map[string]Localized[Post]{},
	}
	if err := eachYAML(fsys, "pages", func(key string, raw []byte) error {
		var p StaticPage
		if err := yaml.Unmarshal(raw, &p); err != nil {
			return err
		}
		p.Key = key
		if p.Path == "" {
			p.Path = "/" + key
		}
		if err := validateBundles(p.Meta, p.Content); err != nil {
			return err
		}
		s.pages[key] = p
		return nil
	}); err != nil {
		return nil, err
	}
	if err := eachYAML(fsys, "countries", func(slug string, raw []byte) error {
		var g CountryGuide
		if err := yaml.Unmarshal(raw, &g); err != nil {
			return err
		}
		g.Slug = slug
		g.Path = "/best/" + slug
		g.Updated = parseContentDate(g.UpdatedRaw)
		if err := validateBundles(g.Meta, g.Content); err != nil {
			return err
		}
		s.countries[slug] = g
		return nil
	}); err != nil {
		return nil, err
	}
	if err := eachYAML(fsys, "reviews", func(slug string, raw []byte) error {
		var r Review
		if err := yaml.Unmarshal(raw, &r); err != nil {
			return err
		}
		r.Slug = slug
		r.Path = "/reviews/" + slug
		r.Updated = parseContentDate(r.UpdatedRaw)
		if err := validateBundles(r.Meta, r.Content); err != nil {
			return err
		}
		s.reviews[slug] = r
		return nil
	}); err != nil {
		return nil, err
	}
	if err := s.loadPosts(fsys); err != nil {
		return nil, err
	}
	return s, nil
}

type validator interface{ Validate() error }

func validateBundles(sets ...validator) error {
	for _, set := range sets {
		if err := set.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func eachYAML(fsys fs.FS, dir string, fn func(key string, raw []byte) error) error {
	files, err := fs.Glob(fsys, dir+"/*.yaml")
	if err != nil {
		return fmt.Errorf("content: glob %s: %w", dir, err)
	}
	sort.Strings(files)
	for _, file := range files {
		key := strings.TrimSuffix(path.Base(file), ".yaml")
		if sanitizeSlug(key) != key {
			return fmt.Errorf("content: %s: invalid slug %q", file, key)
		}
		raw, err := fs.ReadFile(fsys, file)
		if err != nil {
			return fmt.Errorf("content: read %s: %w", file, err)
		}
		if err := fn(key, raw); err != nil {
			return fmt.Errorf("content: %s: %w", file, err)
		}
	}
	return nil
}

// Page returns the static page registered under key.
func (s *Store) Page(key string) (StaticPage, bool) {
	p, ok := s.pages[key]
	return p, ok
}

// Pages lists static pages ordered by path.
func (s *Store) Pages() []StaticPage {
	out := make([]StaticPage, 0, len(s.pages))
	for _, p := range s.pages {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// Country returns the guide for slug, e.g. "vpn-japan".
func (s *Store) Country(slug string) (CountryGuide, bool) {
	g, ok := s.countries[slug]
	return g, ok
}

// Countries lists country guides ordered by slug.
func (s *Store) Countries() []CountryGuide {
	out := make([]CountryGuide, 0, len(s.countries))
	for _, g := range s.countries {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out
}

// Review returns the editorial copy for a provider slug.
func (s *Store) Review(slug string) (Review, bool) {
	r, ok := s.reviews[slug]
	return r, ok
}

// Paths lists the routable content paths: static pages, country guides, the
// blog index and blog posts. Review paths follow the catalog, not the store.
func (s *Store) Paths() []string {
	var out []string
	for _, p := range s.Pages() {
		out = append(out, p.Path)
	}
	for _, g := range s.Countries() {
		out = append(out, g.Path)
	}
	out = append(out, "/blog")
	for _, p := range s.Posts(FallbackLocale) {
		out = append(out, p.Path)
	}
	return out
}
