package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/MarvinNL046/zerotovpn-sub002/internal/config"
	"github.com/MarvinNL046/zerotovpn-sub002/internal/handlers"
)

func testConfig() config.Config {
	return config.Config{
		BaseURL:       "https://zerotovpn.com",
		SiteName:      "ZeroToVPN",
		DefaultLocale: "en",
		Locales:       []string{"en", "nl", "de", "es", "fr", "zh", "ja", "ko", "th"},
		Port:          "8080",
		TemplatesDir:  "../../templates",
		PublicDir:     "../../public",
		ContentDir:    "../../content",
		LocalesDir:    "../../locales",
	}
}

// newTestRouter builds the same router as main().
func newTestRouter(t *testing.T) (http.Handler, *handlers.Site) {
	t.Helper()
	cfg := testConfig()
	site, err := loadSite(cfg)
	if err != nil {
		t.Fatalf("loadSite failed: %v", err)
	}
	srv, err := newServer(cfg, site)
	if err != nil {
		t.Fatalf("parseTemplates failed: %v", err)
	}
	return srv.routes(), site
}

func get(t *testing.T, h http.Handler, path string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

var ldScript = regexp.MustCompile(`(?s)<script type="application/ld\+json">(.*?)</script>`)

func TestHealthzOK(t *testing.T) {
	h, _ := newTestRouter(t)
	rec := get(t, h, "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "ok" {
		t.Fatalf("expected body 'ok', got %q", got)
	}
}

func TestHomeHeadTags(t *testing.T) {
	h, _ := newTestRouter(t)
	rec := get(t, h, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	for _, want := range []string{
		`<html lang="en">`,
		`<link rel="canonical" href="https://zerotovpn.com/">`,
		`<link rel="alternate" hreflang="ja" href="https://zerotovpn.com/ja">`,
		`<link rel="alternate" hreflang="x-default" href="https://zerotovpn.com/">`,
		`<meta property="og:locale" content="en_US">`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %s in body; body=%s", want, body)
		}
	}
	if got := strings.Count(body, `rel="alternate" hreflang=`); got != 10 {
		t.Fatalf("expected 10 hreflang links, got %d", got)
	}
	scripts := ldScript.FindAllStringSubmatch(body, -1)
	if len(scripts) == 0 {
		t.Fatalf("no JSON-LD in page")
	}
	for _, s := range scripts {
		var v map[string]any
		if err := json.Unmarshal([]byte(s[1]), &v); err != nil {
			t.Fatalf("JSON-LD is not valid JSON: %v\n%s", err, s[1])
		}
		if v["@context"] != "https://schema.org" {
			t.Fatalf("unexpected JSON-LD %v", v)
		}
	}
}

func TestLocalizedCountryGuide(t *testing.T) {
	h, _ := newTestRouter(t)
	rec := get(t, h, "/ja/best/vpn-japan")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Language"); got != "ja" {
		t.Fatalf("expected Content-Language ja, got %q", got)
	}
	body := rec.Body.String()
	for _, want := range []string{
		`<html lang="ja">`,
		`<link rel="canonical" href="https://zerotovpn.com/ja/best/vpn-japan">`,
		`"@type":"FAQPage"`,
		`"@type":"BreadcrumbList"`,
		`href="/ja/reviews/nordvpn"`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %s in body", want)
		}
	}
}

func TestUntranslatedLocaleServesEnglish(t *testing.T) {
	h, site := newTestRouter(t)
	rec := get(t, h, "/th/best/vpn-japan")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	g, _ := site.Content.Country("vpn-japan")
	body := rec.Body.String()
	if !strings.Contains(body, g.Content["en"].Intro) {
		t.Fatalf("expected English intro in th page")
	}
	if !strings.Contains(body, `<link rel="canonical" href="https://zerotovpn.com/th/best/vpn-japan">`) {
		t.Fatalf("th page must keep its own canonical")
	}
	if !strings.Contains(body, `<html lang="th">`) || !strings.Contains(body, `<article class="guide" lang="en">`) {
		t.Fatalf("fallback copy must be marked English inside the th page")
	}
}

func TestDefaultLocalePrefixRedirects(t *testing.T) {
	h, _ := newTestRouter(t)
	rec := get(t, h, "/en/best-vpn")
	if rec.Code != http.StatusPermanentRedirect {
		t.Fatalf("expected 308, got %d", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "/best-vpn" {
		t.Fatalf("unexpected Location %q", got)
	}
}

func TestUnknownSlugsAre404(t *testing.T) {
	h, _ := newTestRouter(t)
	for _, p := range []string{"/best/vpn-atlantis", "/reviews/not-a-vpn", "/blog/missing", "/nowhere", "/ja/reviews/not-a-vpn"} {
		rec := get(t, h, p)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d", p, rec.Code)
		}
		body := rec.Body.String()
		if !strings.Contains(body, `<meta name="robots" content="noindex">`) {
			t.Fatalf("%s: not-found page must be noindex", p)
		}
	}
	if body := get(t, h, "/ja/best/vpn-atlantis").Body.String(); !strings.Contains(body, "ページが見つかりません") {
		t.Fatalf("expected localized not-found copy")
	}
}

func TestReviewWithoutCopyRenders(t *testing.T) {
	h, _ := newTestRouter(t)
	rec := get(t, h, "/reviews/mullvad")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Full review coming soon.") || !strings.Contains(body, `"@type":"Product"`) {
		t.Fatalf("expected catalog-only review with Product JSON-LD")
	}
}

func TestBlogPostFallback(t *testing.T) {
	h, _ := newTestRouter(t)
	rec := get(t, h, "/ja/blog/vpn-black-friday-2026")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `<article class="post" lang="en">`) {
		t.Fatalf("fallback post should be marked as English")
	}
	if !strings.Contains(body, `"@type":"Article"`) {
		t.Fatalf("missing Article JSON-LD")
	}
}

func TestRootSuggestsLocale(t *testing.T) {
	h, _ := newTestRouter(t)
	rec := get(t, h, "/", "Accept-Language", "ko-KR,ko;q=0.9,en;q=0.4")
	if rec.Code != http.StatusOK {
		t.Fatalf("suggestion must not redirect, got %d", rec.Code)
	}
	if got := rec.Header().Get("Link"); !strings.Contains(got, "<https://zerotovpn.com/ko>") {
		t.Fatalf("expected ko suggestion, got %q", got)
	}
}

func TestSitemapAndRobots(t *testing.T) {
	h, site := newTestRouter(t)
	rec := get(t, h, "/sitemap.xml")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if got, want := strings.Count(body, "<loc>"), len(site.Paths())*len(testConfig().Locales); got != want {
		t.Fatalf("expected %d urls, got %d", want, got)
	}
	for _, want := range []string{
		"<loc>https://zerotovpn.com/ja/best/vpn-japan</loc>",
		"<loc>https://zerotovpn.com/reviews/mullvad</loc>",
		`hreflang="x-default"`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %s in sitemap", want)
		}
	}
	rec = get(t, h, "/robots.txt")
	if !strings.Contains(rec.Body.String(), "Sitemap: https://zerotovpn.com/sitemap.xml") {
		t.Fatalf("unexpected robots.txt %q", rec.Body.String())
	}
}

func TestAssetsServed(t *testing.T) {
	h, _ := newTestRouter(t)
	rec := get(t, h, "/assets/css/site.css")
	if rec.Code != http.StatusOK || rec.Header().Get("ETag") == "" {
		t.Fatalf("expected stylesheet with ETag, got %d %v", rec.Code, rec.Header())
	}
}

var assetRef = regexp.MustCompile(`(?:src|href|content)="(?:https://zerotovpn\.com)?(/assets/[^"]+)"`)

func TestReferencedAssetsExist(t *testing.T) {
	h, site := newTestRouter(t)
	seen := map[string]bool{}
	for _, p := range site.SEO.StaticParams(site.Paths()) {
		rec := get(t, h, p.Path)
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %s: expected 200, got %d", p.Path, rec.Code)
		}
		for _, m := range assetRef.FindAllStringSubmatch(rec.Body.String(), -1) {
			if seen[m[1]] {
				continue
			}
			seen[m[1]] = true
			if res := get(t, h, m[1]); res.Code != http.StatusOK {
				t.Fatalf("%s references %s, which returned %d", p.Path, m[1], res.Code)
			}
		}
	}
	for _, want := range []string{
		"/assets/css/site.css",
		"/assets/img/vpn/nordvpn.svg",
		"/assets/img/blog/black-friday-2026.png",
	} {
		if !seen[want] {
			t.Fatalf("expected %s to be referenced by some page; saw %v", want, seen)
		}
	}
}

func TestExportWritesEveryPage(t *testing.T) {
	h, site := newTestRouter(t)
	dir := t.TempDir()
	n, err := exportSite(h, site, testConfig().PublicDir, dir)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	pages := len(site.SEO.StaticParams(site.Paths()))
	if n < pages+2 {
		t.Fatalf("expected at least %d files, got %d", pages+2, n)
	}
	for _, rel := range []string{
		"index.html",
		"ja/index.html",
		"ja/best/vpn-japan/index.html",
		"best-vpn/index.html",
		"nl/blog/vpn-black-friday-2026/index.html",
		"reviews/mullvad/index.html",
		"sitemap.xml",
		"robots.txt",
		"assets/css/site.css",
	} {
		if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(rel))); err != nil {
			t.Fatalf("missing %s: %v", rel, err)
		}
	}
}

func TestPageFile(t *testing.T) {
	cases := map[string]string{
		"/":               "index.html",
		"/ja":             "ja/index.html",
		"/best/vpn-japan": "best/vpn-japan/index.html",
	}
	for in, want := range cases {
		if got := pageFile(in); got != want {
			t.Fatalf("pageFile(%s) = %s, want %s", in, got, want)
		}
	}
}
