package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/MarvinNL046/zerotovpn-sub002/internal/catalog"
	"github.com/MarvinNL046/zerotovpn-sub002/internal/config"
	"github.com/MarvinNL046/zerotovpn-sub002/internal/content"
	"github.com/MarvinNL046/zerotovpn-sub002/internal/handlers"
	"github.com/MarvinNL046/zerotovpn-sub002/internal/i18n"
	"github.com/MarvinNL046/zerotovpn-sub002/internal/seo"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	var (
		addr      string
		exportDir string
	)
	flag.StringVar(&addr, "addr", cfg.Addr(), "HTTP listen address")
	flag.StringVar(&cfg.TemplatesDir, "templates", cfg.TemplatesDir, "templates directory")
	flag.StringVar(&cfg.PublicDir, "public", cfg.PublicDir, "public assets directory")
	flag.StringVar(&cfg.ContentDir, "content", cfg.ContentDir, "content directory")
	flag.StringVar(&cfg.LocalesDir, "locales", cfg.LocalesDir, "UI translations directory")
	flag.StringVar(&exportDir, "export", "", "render every page into this directory and exit")
	flag.Parse()

	site, err := loadSite(cfg)
	if err != nil {
		log.Fatalf("load site: %v", err)
	}
	srv, err := newServer(cfg, site)
	if err != nil {
		log.Fatalf("parse templates: %v", err)
	}
	h := srv.routes()

	if exportDir != "" {
		n, err := exportSite(h, site, cfg.PublicDir, exportDir)
		if err != nil {
			log.Fatalf("export: %v", err)
		}
		log.Printf("exported %d files to %s", n, exportDir)
		return
	}

	hs := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("web listening on %s (devMode=%v, locales=%v)", addr, cfg.Dev, cfg.Locales)
	if err := hs.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("listen: %v", err)
	}
}

// loadSite reads the catalog, the content tree and the UI translations. Any
// authoring error (duplicate slug, bundle without English) aborts startup.
func loadSite(cfg config.Config) (*handlers.Site, error) {
	fsys := os.DirFS(cfg.ContentDir)
	cat, err := catalog.Load(fsys, "vpns.yaml")
	if err != nil {
		return nil, err
	}
	store, err := content.LoadStore(fsys)
	if err != nil {
		return nil, err
	}
	bundle, err := i18n.Load(cfg.LocalesDir, cfg.DefaultLocale, cfg.Locales)
	if err != nil {
		return nil, fmt.Errorf("i18n: %w", err)
	}
	log.Printf("loaded %d providers, %d content paths", cat.Len(), len(store.Paths()))
	return &handlers.Site{
		Catalog: cat,
		Content: store,
		SEO:     seo.NewBuilder(cfg.BaseURL, cfg.SiteName, cfg.DefaultLocale, cfg.Locales),
		I18n:    bundle,
	}, nil
}
