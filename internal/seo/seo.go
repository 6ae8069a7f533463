// Package seo derives the head metadata for a rendered page: canonical URL,
// robots directives, and hreflang alternates verified against the content
// store so no alternate is advertised for a missing translation.
package seo

import (
	"context"
	"strings"

	"github.com/floranaubry/dev2-interweb-site/internal/page"
	"github.com/floranaubry/dev2-interweb-site/internal/platform/config"
)

// Alternate is one hreflang link entry.
type Alternate struct {
	Locale string
	Href   string
}

// Meta is everything the layout needs to fill the document head.
type Meta struct {
	Title       string
	Description string
	Canonical   string
	Noindex     bool
	Alternates  []Alternate
}

// ExistsFunc answers whether an exact translation of a page is stored.
type ExistsFunc func(ctx context.Context, kind page.Kind, slug, locale string) (bool, error)

// Builder constructs Meta from site configuration.
type Builder struct {
	baseURL       string
	defaultLocale string
	locales       []string
}

// NewBuilder reads the site configuration once at construction.
func NewBuilder(site config.SiteConfig) *Builder {
	return &Builder{
		baseURL:       strings.TrimRight(site.BaseURL, "/"),
		defaultLocale: site.DefaultLocale,
		locales:       site.Locales,
	}
}

// PagePath returns the URL path serving the page. The default locale lives at
// the bare path; every other locale is prefixed with its code.
func (b *Builder) PagePath(kind page.Kind, slug, locale string) string {
	var base string
	switch kind {
	case page.KindSite:
		if slug == "" || slug == "index" {
			base = "/"
		} else {
			base = "/" + slug
		}
	default:
		base = "/" + string(kind) + "/" + slug
	}

	if locale == b.defaultLocale {
		return base
	}
	if base == "/" {
		return "/" + locale
	}
	return "/" + locale + base
}

// AbsoluteURL joins the configured base URL with a path.
func (b *Builder) AbsoluteURL(path string) string {
	return b.baseURL + path
}

// Build assembles the Meta for a loaded page. Alternates are only emitted for
// translations that exist verbatim in the store, and never for noindexed
// pages, which must not advertise themselves at all.
func (b *Builder) Build(ctx context.Context, exists ExistsFunc, def *page.PageDef, locale string) (Meta, error) {
	meta := Meta{
		Title:       def.SEO.Title,
		Description: def.SEO.Description,
		Canonical:   b.AbsoluteURL(b.PagePath(def.Kind, def.Slug, locale)),
		Noindex:     def.SEO.Noindex,
	}
	if meta.Noindex || exists == nil {
		return meta, nil
	}

	for _, alt := range b.locales {
		present, err := exists(ctx, def.Kind, def.Slug, alt)
		if err != nil {
			return Meta{}, err
		}
		if !present {
			continue
		}
		meta.Alternates = append(meta.Alternates, Alternate{
			Locale: alt,
			Href:   b.AbsoluteURL(b.PagePath(def.Kind, def.Slug, alt)),
		})
	}

	// A single self-referencing alternate carries no information.
	if len(meta.Alternates) == 1 {
		meta.Alternates = nil
	}
	return meta, nil
}
