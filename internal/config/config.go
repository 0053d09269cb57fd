// Package config loads site configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"golang.org/x/text/language"
)

// Config holds the values shared by every page: the canonical origin, the
// locale routing table and the filesystem roots for templates and content.
type Config struct {
	BaseURL       string   `env:"ZEROTOVPN_BASE_URL" envDefault:"https://zerotovpn.com"`
	SiteName      string   `env:"ZEROTOVPN_SITE_NAME" envDefault:"ZeroToVPN"`
	DefaultLocale string   `env:"ZEROTOVPN_DEFAULT_LOCALE" envDefault:"en"`
	Locales       []string `env:"ZEROTOVPN_LOCALES" envSeparator:"," envDefault:"en,nl,de,es,fr,zh,ja,ko,th"`

	Port string `env:"ZEROTOVPN_PORT"`
	Dev  bool   `env:"ZEROTOVPN_DEV"`

	TemplatesDir string `env:"ZEROTOVPN_TEMPLATES" envDefault:"templates"`
	PublicDir    string `env:"ZEROTOVPN_PUBLIC" envDefault:"public"`
	ContentDir   string `env:"ZEROTOVPN_CONTENT" envDefault:"content"`
	LocalesDir   string `env:"ZEROTOVPN_LOCALES_DIR" envDefault:"locales"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	// Port resolution: prefer ZEROTOVPN_PORT, then Cloud Run's PORT, else 8080
	if cfg.Port == "" {
		cfg.Port = os.Getenv("PORT")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if !cfg.Dev && os.Getenv("DEV") != "" {
		cfg.Dev = true
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	c.DefaultLocale = strings.ToLower(strings.TrimSpace(c.DefaultLocale))
	locales := make([]string, 0, len(c.Locales))
	for _, l := range c.Locales {
		l = strings.ToLower(strings.TrimSpace(l))
		if l != "" {
			locales = append(locales, l)
		}
	}
	c.Locales = locales
}

// Validate reports configuration that would produce broken canonical URLs
// or hreflang sets.
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("config: base url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("config: base url %q must be an absolute http(s) url", c.BaseURL)
	}
	if len(c.Locales) == 0 {
		return errors.New("config: no locales configured")
	}
	seen := map[string]struct{}{}
	for _, l := range c.Locales {
		if _, err := language.Parse(l); err != nil {
			return fmt.Errorf("config: locale %q: %w", l, err)
		}
		if _, dup := seen[l]; dup {
			return fmt.Errorf("config: locale %q listed twice", l)
		}
		seen[l] = struct{}{}
	}
	if _, ok := seen[c.DefaultLocale]; !ok {
		return fmt.Errorf("config: default locale %q is not in the supported list", c.DefaultLocale)
	}
	return nil
}

// Addr returns the HTTP listen address.
func (c Config) Addr() string { return ":" + c.Port }
