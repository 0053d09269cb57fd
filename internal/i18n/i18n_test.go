package i18n

import (
	"testing"
	"testing/fstest"
)

var siteLocales = []string{"en", "nl", "de", "es", "fr", "zh", "ja", "ko", "th"}

func TestResolveHonorsQValues(t *testing.T) {
	b, err := Load("../../locales", "en", siteLocales)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cases := map[string]string{
		"ja;q=0.8, en;q=0.9": "en",
		"ja, en;q=0.5":       "ja",
		"de-DE,de;q=0.9":     "de",
		"nl-BE":              "nl",
		"pt-BR":              "en",
		"":                   "en",
	}
	for header, want := range cases {
		if got := b.Resolve(header); got != want {
			t.Fatalf("Resolve(%q) = %s, want %s", header, got, want)
		}
	}
}

func TestTFallsBackToDefaultThenKey(t *testing.T) {
	fsys := fstest.MapFS{
		"en.json": {Data: []byte(`{"nav.reviews":"Reviews","nav.blog":"Blog"}`)},
		"nl.json": {Data: []byte(`{"nav.reviews":"Reviews NL"}`)},
	}
	b, err := LoadFS(fsys, "en", []string{"en", "nl", "ja"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := b.T("nl", "nav.reviews"); got != "Reviews NL" {
		t.Fatalf("expected nl string, got %q", got)
	}
	if got := b.T("nl", "nav.blog"); got != "Blog" {
		t.Fatalf("expected en fallback, got %q", got)
	}
	if got := b.T("ja", "nav.blog"); got != "Blog" {
		t.Fatalf("missing ja file should fall back to en, got %q", got)
	}
	if got := b.T("en", "nav.unknown"); got != "nav.unknown" {
		t.Fatalf("expected key echo, got %q", got)
	}
}

func TestLoadRequiresFallbackFile(t *testing.T) {
	fsys := fstest.MapFS{"nl.json": {Data: []byte(`{}`)}}
	if _, err := LoadFS(fsys, "en", []string{"en", "nl"}); err == nil {
		t.Fatalf("expected error when en.json is missing")
	}
}

func TestSiteLocalesCoverFallbackKeys(t *testing.T) {
	b, err := Load("../../locales", "en", siteLocales)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	for key := range b.dict["en"] {
		for _, l := range siteLocales {
			if m, ok := b.dict[l]; ok {
				if _, ok := m[key]; !ok {
					t.Errorf("locale %s is missing key %s", l, key)
				}
			}
		}
	}
}
