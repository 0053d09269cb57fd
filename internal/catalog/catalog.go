// Package catalog holds the VPN provider reference table every page renders
// provider cards from. The table is loaded once per deploy and never mutated.
package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"
)

// Provider is one VPN service as shown on review, ranking and country pages.
// All three prices are effective per-month rates for their billing term, not
// term totals: PriceYearly and PriceTwoYear are the monthly cost on the annual
// and two-year plans.
type Provider struct {
	ID            string      `yaml:"id"`
	Slug          string      `yaml:"slug"`
	Name          string      `yaml:"name"`
	OverallRating float64     `yaml:"overall_rating"`
	PriceMonthly  Money       `yaml:"price_monthly"`
	PriceYearly   Money       `yaml:"price_yearly"`
	PriceTwoYear  Money       `yaml:"price_two_year"`
	Countries     int         `yaml:"countries"`
	Servers       int         `yaml:"servers"`
	MaxDevices    DeviceLimit `yaml:"max_devices"`
	AffiliateURL  string      `yaml:"affiliate_url"`
	Features      []string    `yaml:"features"`
	Logo          string      `yaml:"logo"`
	Founded       int         `yaml:"founded"`
	Headquarters  string      `yaml:"headquarters"`
}

// Catalog is an ordered, slug-indexed set of providers.
type Catalog struct {
	items  []Provider
	bySlug map[string]int
}

type catalogFile struct {
	Providers []Provider `yaml:"providers"`
}

// Load reads a YAML catalog file from fsys.
func Load(fsys fs.FS, name string) (*Catalog, error) {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", name, err)
	}
	var f catalogFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("catalog: parse %s: %w", name, err)
	}
	c, err := New(f.Providers)
	if err != nil {
		return nil, fmt.Errorf("catalog: %s: %w", name, err)
	}
	return c, nil
}

// New builds a catalog from providers, keeping their order.
func New(providers []Provider) (*Catalog, error) {
	c := &Catalog{
		items:  make([]Provider, 0, len(providers)),
		bySlug: make(map[string]int, len(providers)),
	}
	ids := make(map[string]struct{}, len(providers))
	for i, p := range providers {
		if err := validate(p); err != nil {
			return nil, fmt.Errorf("provider %d: %w", i, err)
		}
		if _, dup := c.bySlug[p.Slug]; dup {
			return nil, fmt.Errorf("duplicate slug %q", p.Slug)
		}
		if _, dup := ids[p.ID]; dup {
			return nil, fmt.Errorf("duplicate id %q", p.ID)
		}
		ids[p.ID] = struct{}{}
		c.bySlug[p.Slug] = len(c.items)
		c.items = append(c.items, cloneProvider(p))
	}
	return c, nil
}

func validate(p Provider) error {
	if p.ID == "" {
		return errors.New("missing id")
	}
	if p.Slug == "" {
		return errors.New("missing slug")
	}
	if !urlSafe(p.Slug) {
		return fmt.Errorf("slug %q is not url-safe", p.Slug)
	}
	if p.OverallRating < 0 || p.OverallRating > 5 {
		return fmt.Errorf("%s: rating %.1f outside 0..5", p.Slug, p.OverallRating)
	}
	return nil
}

// urlSafe accepts lowercase ascii letters, digits and inner hyphens.
func urlSafe(slug string) bool {
	if strings.HasPrefix(slug, "-") || strings.HasSuffix(slug, "-") {
		return false
	}
	for _, r := range slug {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
		default:
			return false
		}
	}
	return true
}

// BySlug returns the provider whose slug equals slug exactly. The match is
// case-sensitive; a miss reports false and a zero Provider.
func (c *Catalog) BySlug(slug string) (Provider, bool) {
	if c == nil {
		return Provider{}, false
	}
	i, ok := c.bySlug[slug]
	if !ok {
		return Provider{}, false
	}
	return cloneProvider(c.items[i]), true
}

// All returns every provider in catalog order.
func (c *Catalog) All() []Provider {
	if c == nil {
		return []Provider{}
	}
	out := make([]Provider, len(c.items))
	for i, p := range c.items {
		out[i] = cloneProvider(p)
	}
	return out
}

// Pick returns the providers for slugs in argument order, skipping unknown slugs.
func (c *Catalog) Pick(slugs ...string) []Provider {
	out := make([]Provider, 0, len(slugs))
	for _, s := range slugs {
		if p, ok := c.BySlug(s); ok {
			out = append(out, p)
		}
	}
	return out
}

// Slugs lists provider slugs in catalog order.
func (c *Catalog) Slugs() []string {
	if c == nil {
		return nil
	}
	out := make([]string, len(c.items))
	for i, p := range c.items {
		out[i] = p.Slug
	}
	return out
}

// Len reports the number of providers.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}

func cloneProvider(p Provider) Provider {
	cp := p
	if p.Features != nil {
		cp.Features = append([]string(nil), p.Features...)
	}
	return cp
}
