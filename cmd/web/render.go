package main

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/MarvinNL046/zerotovpn-sub002/internal/config"
	"github.com/MarvinNL046/zerotovpn-sub002/internal/content"
	"github.com/MarvinNL046/zerotovpn-sub002/internal/handlers"
)

type server struct {
	site         *handlers.Site
	templatesDir string
	publicDir    string
	devMode      bool
	tmplCache    map[string]*template.Template
}

func newServer(cfg config.Config, site *handlers.Site) (*server, error) {
	s := &server{
		site:         site,
		templatesDir: cfg.TemplatesDir,
		publicDir:    cfg.PublicDir,
		devMode:      cfg.Dev,
	}
	// parse once up front even in dev mode so broken templates fail fast
	tc, err := s.parseTemplates()
	if err != nil {
		return nil, err
	}
	s.tmplCache = tc
	return s, nil
}

func (s *server) funcMap() template.FuncMap {
	return template.FuncMap{
		"now":  time.Now,
		"t":    s.site.T,
		"href": s.site.Href,
		"asset": func(p string) string {
			return "/assets/" + strings.TrimPrefix(p, "/")
		},
		// partials take the page language alongside their payload
		"cardCtx": func(lang string, c handlers.ProviderCard) map[string]any {
			return map[string]any{"Lang": lang, "Card": c}
		},
		"faqCtx": func(lang string, faq []content.FAQ) map[string]any {
			return map[string]any{"Lang": lang, "FAQ": faq}
		},
	}
}

// parseTemplates pairs every page under pages/ with the shared layouts and
// partials, keyed by page name ("home", "country", ...).
func (s *server) parseTemplates() (map[string]*template.Template, error) {
	var shared, pages []string
	// ParseGlob doesn't support **, so walk.
	if err := filepath.WalkDir(s.templatesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".tmpl") {
			return nil
		}
		if filepath.Base(filepath.Dir(path)) == "pages" {
			pages = append(pages, path)
		} else {
			shared = append(shared, path)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("no page templates found under %s", s.templatesDir)
	}
	root, err := template.New("_root").Funcs(s.funcMap()).ParseFiles(shared...)
	if err != nil {
		return nil, err
	}
	out := make(map[string]*template.Template, len(pages))
	for _, p := range pages {
		t, err := root.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.ParseFiles(p); err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		out[strings.TrimSuffix(filepath.Base(p), ".tmpl")] = t
	}
	return out, nil
}

// render executes the base layout with the named page. In dev mode,
// templates are reparsed on each request. Output is buffered so a failing
// template yields a clean 500.
func (s *server) render(w http.ResponseWriter, r *http.Request, status int, page string, data handlers.PageData) {
	set := s.tmplCache
	if s.devMode {
		tc, err := s.parseTemplates()
		if err != nil {
			http.Error(w, fmt.Sprintf("template parse error: %v", err), http.StatusInternalServerError)
			return
		}
		set = tc
	}
	t, ok := set[page]
	if !ok {
		http.Error(w, "template not found: "+page, http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", data); err != nil {
		log.Printf("render %s %s: %v", page, r.URL.Path, err)
		http.Error(w, "template exec error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
