// Package sitemap generates sitemap.xml and robots.txt from the content
// store. Private page kinds never appear. Output is cached with a short TTL
// because enumeration walks the whole store.
package sitemap

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/floranaubry/dev2-interweb-site/internal/loader"
	"github.com/floranaubry/dev2-interweb-site/internal/page"
	"github.com/floranaubry/dev2-interweb-site/internal/seo"
)

type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	Xmlns   string     `xml:"xmlns,attr"`
	URLs    []urlEntry `xml:"url"`
}

type urlEntry struct {
	Loc string `xml:"loc"`
}

// Generator builds sitemap output on demand and memoizes it.
type Generator struct {
	store   loader.Store
	builder *seo.Builder
	ttl     time.Duration
	now     func() time.Time

	mu        sync.Mutex
	cached    []byte
	cachedErr error
	expires   time.Time
}

// New constructs a Generator with the given cache TTL.
func New(store loader.Store, builder *seo.Builder, ttl time.Duration) *Generator {
	return &Generator{store: store, builder: builder, ttl: ttl, now: time.Now}
}

// XML returns the sitemap document, recomputing it when the cached copy has
// expired. Concurrent refreshes serialize on the lock; the recomputation is a
// pure function of store contents, so a redundant refresh is harmless.
func (g *Generator) XML(ctx context.Context) ([]byte, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.cached != nil && g.now().Before(g.expires) {
		return g.cached, g.cachedErr
	}

	out, err := g.build(ctx)
	g.cached = out
	g.cachedErr = err
	g.expires = g.now().Add(g.ttl)
	return out, err
}

func (g *Generator) build(ctx context.Context) ([]byte, error) {
	set := urlSet{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}

	for _, kind := range page.Kinds() {
		if kind.IsPrivate() {
			continue
		}
		paths, err := g.store.ListPaths(ctx, string(kind)+"/")
		if err != nil {
			return nil, fmt.Errorf("list %s pages: %w", kind, err)
		}
		for _, path := range paths {
			locale, slug, ok := splitPath(kind, path)
			if !ok {
				continue
			}
			set.URLs = append(set.URLs, urlEntry{
				Loc: g.builder.AbsoluteURL(g.builder.PagePath(kind, slug, locale)),
			})
		}
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal sitemap: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}

// splitPath inverts loader.PathFor: "<kind>/<locale>" or
// "<kind>/<locale>/<slug>".
func splitPath(kind page.Kind, path string) (locale, slug string, ok bool) {
	rest, found := strings.CutPrefix(path, string(kind)+"/")
	if !found || rest == "" {
		return "", "", false
	}
	locale, slug, _ = strings.Cut(rest, "/")
	return locale, slug, locale != ""
}

// Robots returns the robots.txt body. Private kinds are disallowed outright,
// matching their forced noindex.
func (g *Generator) Robots() []byte {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	for _, kind := range page.Kinds() {
		if kind.IsPrivate() {
			fmt.Fprintf(&b, "Disallow: /%s/\n", kind)
		}
	}
	b.WriteString("Allow: /\n")
	fmt.Fprintf(&b, "Sitemap: %s\n", g.builder.AbsoluteURL("/sitemap.xml"))
	return []byte(b.String())
}
