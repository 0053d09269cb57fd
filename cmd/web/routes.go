package main

import (
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	mw "github.com/MarvinNL046/zerotovpn-sub002/internal/middleware"
)

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	// If deployed behind a trusted reverse proxy/load balancer, RealIP will use
	// X-Forwarded-For to determine the client IP. Ensure only trusted proxies
	// can set these headers in production environments.
	r.Use(middleware.RealIP)
	r.Use(mw.Logger)
	r.Use(middleware.Recoverer)
	// must run before routing: it rewrites /xx/... to the unprefixed path
	r.Use(mw.LocalePrefix(s.site.SEO))
	r.Use(middleware.Compress(5))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(mw.SuggestLocale(s.site.I18n, s.site.SEO.CanonicalURL))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, "ok")
	})
	r.Handle("/assets/*", http.StripPrefix("/assets", mw.AssetsWithCache(filepath.Join(s.publicDir, "assets"))))
	r.Get("/sitemap.xml", s.sitemap)
	r.Get("/robots.txt", s.robots)

	r.Get("/", s.home)
	r.Get("/best-vpn", s.ranking)
	r.Get("/best/{slug}", s.country)
	r.Get("/reviews/{slug}", s.review)
	r.Get("/blog", s.blog)
	r.Get("/blog/{slug}", s.post)
	r.NotFound(s.notFound)
	return r
}

func lang(r *http.Request) string { return mw.LocaleFrom(r.Context()) }

func (s *server) home(w http.ResponseWriter, r *http.Request) {
	d, ok := s.site.Home(lang(r))
	if !ok {
		s.notFound(w, r)
		return
	}
	s.render(w, r, http.StatusOK, "home", d)
}

func (s *server) ranking(w http.ResponseWriter, r *http.Request) {
	d, ok := s.site.Ranking(lang(r))
	if !ok {
		s.notFound(w, r)
		return
	}
	s.render(w, r, http.StatusOK, "ranking", d)
}

func (s *server) country(w http.ResponseWriter, r *http.Request) {
	d, ok := s.site.Country(lang(r), chi.URLParam(r, "slug"))
	if !ok {
		s.notFound(w, r)
		return
	}
	s.render(w, r, http.StatusOK, "country", d)
}

func (s *server) review(w http.ResponseWriter, r *http.Request) {
	d, ok := s.site.Review(lang(r), chi.URLParam(r, "slug"))
	if !ok {
		s.notFound(w, r)
		return
	}
	s.render(w, r, http.StatusOK, "review", d)
}

func (s *server) blog(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "blog", s.site.Blog(lang(r)))
}

func (s *server) post(w http.ResponseWriter, r *http.Request) {
	d, ok := s.site.Post(lang(r), chi.URLParam(r, "slug"))
	if !ok {
		s.notFound(w, r)
		return
	}
	s.render(w, r, http.StatusOK, "post", d)
}

func (s *server) notFound(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusNotFound, "notfound", s.site.NotFound(lang(r), r.URL.Path))
}

func (s *server) sitemap(w http.ResponseWriter, r *http.Request) {
	body, err := s.site.SEO.Sitemap(s.site.SitemapEntries())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write(body)
}

func (s *server) robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, s.site.SEO.Robots())
}
