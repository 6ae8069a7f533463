// Package handlers wires the HTTP surface of the site server: page routes
// per locale, the sitemap and robots endpoints, and health probes.
package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/floranaubry/dev2-interweb-site/internal/platform/config"
	"github.com/floranaubry/dev2-interweb-site/internal/platform/httpx"
)

type routerConfig struct {
	middlewares []func(http.Handler) http.Handler
	pages       *PageHandlers
	sitemap     *SitemapHandlers
	health      *HealthHandlers
}

// Option customises the router configuration before construction.
type Option func(*routerConfig)

const defaultTimeout = 30 * time.Second

// NewRouter constructs the chi router. Page routes are mounted once at the
// root for the default locale and once per additional configured locale under
// its prefix, so locale never needs wildcard disambiguation at request time.
func NewRouter(site config.SiteConfig, opts ...Option) chi.Router {
	cfg := routerConfig{
		middlewares: []func(http.Handler) http.Handler{
			middleware.RequestID,
			middleware.RealIP,
			middleware.Timeout(defaultTimeout),
		},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	r := chi.NewRouter()

	for _, mw := range cfg.middlewares {
		if mw != nil {
			r.Use(mw)
		}
	}

	if cfg.health == nil {
		cfg.health = NewHealthHandlers(nil)
	}

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		httpx.WritePage(req.Context(), w,
			httpx.NewError("route_not_found", fmt.Sprintf("No page at %s.", req.URL.Path), http.StatusNotFound), false)
	})

	r.Get("/healthz", cfg.health.Healthz)
	r.Get("/readyz", cfg.health.Readyz)

	if cfg.sitemap != nil {
		r.Get("/sitemap.xml", cfg.sitemap.Sitemap)
		r.Get("/robots.txt", cfg.sitemap.Robots)
	}

	if cfg.pages != nil {
		cfg.pages.Mount(r, site.DefaultLocale)
		r.Handle("/"+site.DefaultLocale, redirectWithoutPrefix(site.DefaultLocale))
		r.Handle("/"+site.DefaultLocale+"/*", redirectWithoutPrefix(site.DefaultLocale))
		for _, locale := range site.Locales {
			if locale == site.DefaultLocale {
				continue
			}
			locale := locale
			r.Route("/"+locale, func(group chi.Router) {
				cfg.pages.Mount(group, locale)
			})
		}
	}

	return r
}

// redirectWithoutPrefix sends explicit default-locale URLs to their bare
// canonical form, keeping one URL per page for crawlers.
func redirectWithoutPrefix(locale string) http.HandlerFunc {
	prefix := "/" + locale
	return func(w http.ResponseWriter, req *http.Request) {
		target := strings.TrimPrefix(req.URL.Path, prefix)
		if target == "" {
			target = "/"
		}
		if req.URL.RawQuery != "" {
			target += "?" + req.URL.RawQuery
		}
		http.Redirect(w, req, target, http.StatusMovedPermanently)
	}
}

// WithMiddlewares appends additional global middleware to the router.
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(cfg *routerConfig) {
		cfg.middlewares = append(cfg.middlewares, mw...)
	}
}

// WithPageHandlers configures the page-serving handlers.
func WithPageHandlers(h *PageHandlers) Option {
	return func(cfg *routerConfig) {
		cfg.pages = h
	}
}

// WithSitemapHandlers configures the sitemap and robots endpoints.
func WithSitemapHandlers(h *SitemapHandlers) Option {
	return func(cfg *routerConfig) {
		cfg.sitemap = h
	}
}

// WithHealthHandlers overrides the handlers used for the health probes.
func WithHealthHandlers(h *HealthHandlers) Option {
	return func(cfg *routerConfig) {
		cfg.health = h
	}
}
