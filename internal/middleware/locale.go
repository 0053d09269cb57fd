package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MarvinNL046/zerotovpn-sub002/internal/i18n"
)

// LocaleRouter is the part of the site locale table the prefix middleware
// needs. *seo.Builder satisfies it.
type LocaleRouter interface {
	DefaultLocale() string
	Supported(locale string) bool
}

// LocalePrefix routes /xx/... to locale xx with the prefix stripped, so the
// router only ever sees unprefixed paths. /<default>/... is redirected to the
// unprefixed path. Anything else is served in the default locale.
func LocalePrefix(lr LocaleRouter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			def := lr.DefaultLocale()
			locale := def
			seg, rest := splitLocale(r.URL.Path)
			switch {
			case seg == def:
				target := rest
				if r.URL.RawQuery != "" {
					target += "?" + r.URL.RawQuery
				}
				http.Redirect(w, r, target, http.StatusPermanentRedirect)
				return
			case seg != "" && lr.Supported(seg):
				locale = seg
				u := *r.URL
				u.Path = rest
				u.RawPath = ""
				r = r.WithContext(r.Context())
				r.URL = &u
				if rctx := chi.RouteContext(r.Context()); rctx != nil {
					rctx.RoutePath = rest
				}
			}
			w.Header().Set("Content-Language", locale)
			next.ServeHTTP(w, r.WithContext(WithLocale(r.Context(), locale)))
		})
	}
}

// splitLocale returns the first path segment and the remainder, which is
// always rooted: "/ja/best/x" -> ("ja", "/best/x"), "/ja" -> ("ja", "/").
func splitLocale(p string) (string, string) {
	seg, rest, _ := strings.Cut(strings.TrimPrefix(p, "/"), "/")
	return seg, "/" + rest
}

// SuggestLocale advertises the visitor's preferred translation of the
// unprefixed home page with a Link header. It never redirects.
func SuggestLocale(bundle *i18n.Bundle, href func(locale, path string) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/" && LocaleFrom(r.Context()) == bundle.Fallback() {
				w.Header().Add("Vary", "Accept-Language")
				if al := r.Header.Get("Accept-Language"); al != "" {
					if want := bundle.Resolve(al); want != bundle.Fallback() {
						w.Header().Add("Link", "<"+href(want, "/")+`>; rel="alternate"; hreflang="`+want+`"`)
					}
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
