// Package di assembles the runtime dependency graph: configuration, content
// store, block registries, loader, renderer, and collaborators.
package di

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/floranaubry/dev2-interweb-site/internal/blocks"
	"github.com/floranaubry/dev2-interweb-site/internal/compose"
	"github.com/floranaubry/dev2-interweb-site/internal/loader"
	"github.com/floranaubry/dev2-interweb-site/internal/page"
	"github.com/floranaubry/dev2-interweb-site/internal/platform/config"
	"github.com/floranaubry/dev2-interweb-site/internal/registry"
	"github.com/floranaubry/dev2-interweb-site/internal/seo"
	"github.com/floranaubry/dev2-interweb-site/internal/sitemap"
	storefirestore "github.com/floranaubry/dev2-interweb-site/internal/store/firestore"
	"github.com/floranaubry/dev2-interweb-site/internal/store/memory"
)

// Container holds every long-lived dependency of the site server.
type Container struct {
	Config   config.Config
	Sections *registry.Sections
	Shells   *registry.Shells
	Packs    *registry.Packs
	Store    loader.Store
	Loader   *loader.Loader
	Renderer *compose.Renderer
	SEO      *seo.Builder
	Sitemap  *sitemap.Generator

	firestoreProvider *storefirestore.Provider
}

// NewContainer wires the dependency graph. The content store is Firestore
// when a project id is configured, otherwise the on-disk YAML store, so local
// development needs no cloud credentials.
func NewContainer(ctx context.Context, cfg config.Config, logger *zap.Logger, execCtx compose.ExecutionContext) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Container{Config: cfg}

	c.Sections = registry.NewSections(logger)
	c.Shells = registry.NewShells(logger)
	blocks.RegisterAll(c.Sections, c.Shells)
	c.Packs = registry.NewPacks(blocks.DefaultPacks(), logger)

	switch {
	case cfg.Firestore.ProjectID != "" || cfg.Firestore.EmulatorHost != "":
		c.firestoreProvider = storefirestore.NewProvider(cfg.Firestore)
		c.Store = storefirestore.NewStore(c.firestoreProvider, cfg.Firestore.Collection)
	case cfg.Content.Dir != "":
		store, err := memory.NewFromDir(cfg.Content.Dir)
		if err != nil {
			return nil, fmt.Errorf("load content dir: %w", err)
		}
		c.Store = store
	default:
		return nil, fmt.Errorf("no content source configured: set SITE_FIRESTORE_PROJECT_ID or SITE_CONTENT_DIR")
	}

	if cfg.Site.Environment.IsDevelopment() {
		checkLocaleDrift(ctx, c.Store, cfg.Site, logger)
	}

	validator := page.NewValidator(c.Packs.Keys())
	c.Loader = loader.New(c.Store, validator, cfg.Site.DefaultLocale, cfg.Features.StrictPrivateShells)

	action := compose.PolicyFor(cfg.Site.Environment, execCtx)
	c.Renderer = compose.NewRenderer(c.Sections, c.Shells, c.Packs, action)

	c.SEO = seo.NewBuilder(cfg.Site)
	c.Sitemap = sitemap.New(c.Store, c.SEO, cfg.Cache.SitemapTTL)

	return c, nil
}

// localesDocPath is the content store location of the document declaring the
// locales the authored content covers.
const localesDocPath = "meta/locales"

// checkLocaleDrift compares the configured locale list against the locales
// document kept alongside the content. A mismatch means one of the two lists
// was updated without the other; it warns and never fails startup, and the
// check only runs in development.
func checkLocaleDrift(ctx context.Context, store loader.Store, site config.SiteConfig, logger *zap.Logger) {
	doc, err := store.FetchByPath(ctx, localesDocPath)
	if err != nil {
		if !errors.Is(err, loader.ErrNotFound) {
			logger.Warn("locales document unreadable", zap.Error(err))
		}
		return
	}

	raw, _ := doc["locales"].([]any)
	declared := make([]string, 0, len(raw))
	for _, item := range raw {
		if locale, isString := item.(string); isString {
			declared = append(declared, locale)
		}
	}
	if len(declared) == 0 {
		return
	}

	configured := append([]string(nil), site.Locales...)
	sort.Strings(configured)
	sort.Strings(declared)
	if len(configured) == len(declared) {
		same := true
		for i := range configured {
			if configured[i] != declared[i] {
				same = false
				break
			}
		}
		if same {
			return
		}
	}
	logger.Warn("configured locales differ from the content locales document",
		zap.Strings("configured", configured),
		zap.Strings("declared", declared),
	)
}

// Close releases held resources such as the Firestore client.
func (c *Container) Close() error {
	if c == nil || c.firestoreProvider == nil {
		return nil
	}
	return c.firestoreProvider.Close()
}
