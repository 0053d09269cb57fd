package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/go-chi/chi/v5"
	chiMid "github.com/go-chi/chi/v5/middleware"

	"github.com/MarvinNL046/zerotovpn-sub002/internal/i18n"
)

type stubLocales struct{}

func (stubLocales) DefaultLocale() string { return "en" }
func (stubLocales) Supported(l string) bool {
	switch l {
	case "en", "ja", "nl":
		return true
	}
	return false
}

func newLocaleRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(LocalePrefix(stubLocales{}))
	echo := func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(LocaleFrom(r.Context()) + " " + r.URL.Path + " " + chi.URLParam(r, "slug")))
	}
	r.Get("/", echo)
	r.Get("/best/{slug}", echo)
	return r
}

func TestLocalePrefixRouting(t *testing.T) {
	h := newLocaleRouter()
	cases := []struct {
		path, body, lang string
		status           int
	}{
		{"/", "en / ", "en", http.StatusOK},
		{"/ja", "ja / ", "ja", http.StatusOK},
		{"/ja/", "ja / ", "ja", http.StatusOK},
		{"/ja/best/vpn-japan", "ja /best/vpn-japan vpn-japan", "ja", http.StatusOK},
		{"/best/vpn-japan", "en /best/vpn-japan vpn-japan", "en", http.StatusOK},
		{"/xx/best/vpn-japan", "", "en", http.StatusNotFound},
	}
	for _, tc := range cases {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tc.path, nil))
		if rr.Code != tc.status {
			t.Fatalf("%s: status %d, want %d", tc.path, rr.Code, tc.status)
		}
		if tc.status == http.StatusOK && rr.Body.String() != tc.body {
			t.Fatalf("%s: body %q, want %q", tc.path, rr.Body.String(), tc.body)
		}
		if got := rr.Header().Get("Content-Language"); got != tc.lang {
			t.Fatalf("%s: Content-Language %q, want %q", tc.path, got, tc.lang)
		}
	}
}

func TestDefaultLocalePrefixRedirects(t *testing.T) {
	h := newLocaleRouter()
	cases := map[string]string{
		"/en":                  "/",
		"/en/best/vpn-japan":   "/best/vpn-japan",
		"/en/best/x?utm=promo": "/best/x?utm=promo",
	}
	for in, want := range cases {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, in, nil))
		if rr.Code != http.StatusPermanentRedirect {
			t.Fatalf("%s: expected 308, got %d", in, rr.Code)
		}
		if got := rr.Header().Get("Location"); got != want {
			t.Fatalf("%s: Location %q, want %q", in, got, want)
		}
	}
}

func TestSuggestLocale(t *testing.T) {
	bundle, err := i18n.LoadFS(fstest.MapFS{
		"en.json": {Data: []byte(`{}`)},
		"ja.json": {Data: []byte(`{}`)},
	}, "en", []string{"en", "ja", "nl"})
	if err != nil {
		t.Fatalf("bundle: %v", err)
	}
	r := chi.NewRouter()
	r.Use(LocalePrefix(stubLocales{}))
	r.Use(SuggestLocale(bundle, func(l, p string) string { return "https://example.test/" + l }))
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "ja-JP,ja;q=0.9,en;q=0.5")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("suggestion must not redirect, got %d", rr.Code)
	}
	if got := rr.Header().Get("Link"); got != `<https://example.test/ja>; rel="alternate"; hreflang="ja"` {
		t.Fatalf("unexpected Link %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/ja", nil)
	req.Header.Set("Accept-Language", "ja")
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Header().Get("Link") != "" {
		t.Fatalf("prefixed pages carry no suggestion")
	}
}

func TestLoggerEmitsJSON(t *testing.T) {
	var buf bytes.Buffer
	r := chi.NewRouter()
	r.Use(chiMid.RequestID)
	r.Use(chiMid.RealIP)
	r.Use(LoggerTo(&buf))
	r.Use(LocalePrefix(stubLocales{}))
	r.Get("/best/{slug}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	req := httptest.NewRequest(http.MethodGet, "/nl/best/nowhere", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	r.ServeHTTP(httptest.NewRecorder(), req)

	var e logEntry
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &e); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}
	if e.Status != http.StatusNotFound || e.Level != "warn" || e.Locale != "nl" {
		t.Fatalf("unexpected entry %+v", e)
	}
	if e.Path != "/nl/best/nowhere" || e.RemoteIP != "203.0.113.9" || e.RequestID == "" {
		t.Fatalf("unexpected entry %+v", e)
	}
}

func TestClientIP(t *testing.T) {
	cases := map[string]string{
		"192.0.2.1:1234": "192.0.2.1",
		"[::1]:8080":     "::1",
		"203.0.113.9":    "203.0.113.9",
	}
	for addr, want := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		req.Header.Set("X-Forwarded-For", "198.51.100.7")
		if got := clientIP(req); got != want {
			t.Fatalf("clientIP(%q) = %q, want %q", addr, got, want)
		}
	}
}

func TestAssetsCacheHeaders(t *testing.T) {
	fsys := fstest.MapFS{"css/site.css": {Data: []byte("body{}")}}
	h := http.StripPrefix("/assets", AssetsFS(fsys))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/assets/css/site.css", nil))
	if rr.Code != http.StatusOK || rr.Body.String() != "body{}" {
		t.Fatalf("unexpected response %d %q", rr.Code, rr.Body.String())
	}
	et := rr.Header().Get("ETag")
	if !strings.HasPrefix(et, `W/"`) {
		t.Fatalf("missing weak ETag, got %q", et)
	}
	if !strings.Contains(rr.Header().Get("Cache-Control"), "max-age=") {
		t.Fatalf("missing Cache-Control")
	}

	req := httptest.NewRequest(http.MethodGet, "/assets/css/site.css", nil)
	req.Header.Set("If-None-Match", et)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotModified {
		t.Fatalf("expected 304, got %d", rr.Code)
	}
}
