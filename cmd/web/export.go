package main

import (
	"fmt"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"

	"github.com/MarvinNL046/zerotovpn-sub002/internal/handlers"
)

// exportSite renders every (locale, path) pair through h into dir, one
// index.html per page, then adds the sitemap, robots.txt and the public
// assets. It returns the number of files written.
func exportSite(h http.Handler, site *handlers.Site, publicDir, dir string) (int, error) {
	written := 0
	for _, p := range site.SEO.StaticParams(site.Paths()) {
		body, err := fetch(h, p.Path)
		if err != nil {
			return written, err
		}
		if err := writeFile(dir, pageFile(p.Path), body); err != nil {
			return written, err
		}
		written++
	}
	for _, p := range []string{"/sitemap.xml", "/robots.txt"} {
		body, err := fetch(h, p)
		if err != nil {
			return written, err
		}
		if err := writeFile(dir, strings.TrimPrefix(p, "/"), body); err != nil {
			return written, err
		}
		written++
	}
	assets := os.DirFS(publicDir)
	err := fs.WalkDir(assets, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		b, err := fs.ReadFile(assets, p)
		if err != nil {
			return err
		}
		if err := writeFile(dir, p, b); err != nil {
			return err
		}
		written++
		return nil
	})
	if err != nil {
		return written, fmt.Errorf("copy assets: %w", err)
	}
	return written, nil
}

func fetch(h http.Handler, p string) ([]byte, error) {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, p, nil))
	if rec.Code != http.StatusOK {
		return nil, fmt.Errorf("GET %s: status %d", p, rec.Code)
	}
	return rec.Body.Bytes(), nil
}

// pageFile maps a site path to its file: "/" -> "index.html",
// "/ja/best/vpn-japan" -> "ja/best/vpn-japan/index.html".
func pageFile(p string) string {
	p = strings.Trim(p, "/")
	if p == "" {
		return "index.html"
	}
	return p + "/index.html"
}

func writeFile(root, rel string, body []byte) error {
	target := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(target, body, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", rel, err)
	}
	return nil
}
