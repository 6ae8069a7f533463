// Package loader turns a (kind, slug, locale) triple into a validated
// PageDef by fetching the raw document from the content store, normalizing
// legacy shapes, and running the whole-page schema check plus business rules.
package loader

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/floranaubry/dev2-interweb-site/internal/page"
	"github.com/floranaubry/dev2-interweb-site/internal/platform/requestctx"
	"github.com/floranaubry/dev2-interweb-site/internal/schema"
)

// ErrNotFound signals that no document exists for the requested path, after
// the default-locale fallback was exhausted. Callers map it to a 404.
var ErrNotFound = errors.New("page not found")

// Store is the content storage collaborator, queried by exact path string.
type Store interface {
	// FetchByPath returns the raw document at path, or ErrNotFound.
	FetchByPath(ctx context.Context, path string) (map[string]any, error)
	// ExistsByPath reports whether a document exists without fetching it.
	ExistsByPath(ctx context.Context, path string) (bool, error)
	// ListPaths returns every stored path under the given prefix.
	ListPaths(ctx context.Context, prefix string) ([]string, error)
}

// ValidationError wraps the structured schema issues for a rejected page.
// Handlers decide how much of it to surface based on environment.
type ValidationError struct {
	Path   string
	Issues schema.Issues
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("page %s rejected: %s", e.Path, e.Issues.Flat())
}

// PathFor derives the storage path for a page. An empty or "index" slug
// resolves to the kind's locale root rather than a path under it.
func PathFor(kind page.Kind, locale, slug string) string {
	base := string(kind) + "/" + locale
	if slug == "" || slug == "index" {
		return base
	}
	return base + "/" + slug
}

// Loader fetches, normalizes, and validates pages.
type Loader struct {
	store               Store
	validator           *page.Validator
	defaultLocale       string
	strictPrivateShells bool
}

// New constructs a loader against the given store and page validator.
func New(store Store, validator *page.Validator, defaultLocale string, strictPrivateShells bool) *Loader {
	return &Loader{
		store:               store,
		validator:           validator,
		defaultLocale:       defaultLocale,
		strictPrivateShells: strictPrivateShells,
	}
}

// Load resolves the triple to a storage path, fetches the document with a
// single default-locale fallback, and returns the validated PageDef. Results
// are memoized per request when a memo is present on the context, so repeated
// loads of the same triple within one request hit storage once.
func (l *Loader) Load(ctx context.Context, kind page.Kind, slug, locale string) (*page.PageDef, error) {
	key := string(kind) + "|" + slug + "|" + locale
	if memo := memoFrom(ctx); memo != nil {
		if def, err, hit := memo.get(key); hit {
			return def, err
		}
		def, err := l.load(ctx, kind, slug, locale)
		memo.put(key, def, err)
		return def, err
	}
	return l.load(ctx, kind, slug, locale)
}

// fetchByPath consults the per-request memo before hitting storage. A
// fallback target that is also requested directly resolves to the same path
// and must not cost a second round trip.
func (l *Loader) fetchByPath(ctx context.Context, path string) (map[string]any, error) {
	memo := memoFrom(ctx)
	if memo == nil {
		return l.store.FetchByPath(ctx, path)
	}
	if doc, err, hit := memo.getFetch(path); hit {
		return doc, err
	}
	doc, err := l.store.FetchByPath(ctx, path)
	memo.putFetch(path, doc, err)
	return doc, err
}

func (l *Loader) load(ctx context.Context, kind page.Kind, slug, locale string) (*page.PageDef, error) {
	logger := requestctx.Logger(ctx)

	path := PathFor(kind, locale, slug)
	doc, err := l.fetchByPath(ctx, path)
	if errors.Is(err, ErrNotFound) && locale != l.defaultLocale {
		// One retry against the default locale, never a chain across
		// every configured locale.
		fallbackPath := PathFor(kind, l.defaultLocale, slug)
		logger.Debug("page missing in requested locale, falling back to default",
			zap.String("path", path),
			zap.String("fallback", fallbackPath),
		)
		path = fallbackPath
		doc, err = l.fetchByPath(ctx, path)
	}
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetch %s: %w", path, err)
	}

	doc = page.NormalizeDocument(doc, logger)

	def, issues := l.validator.Validate(doc)
	if len(issues) > 0 {
		logger.Warn("page rejected by validation",
			zap.String("path", path),
			zap.String("issues", issues.Flat()),
		)
		return nil, &ValidationError{Path: path, Issues: issues}
	}

	if def.Slug == "" {
		def.Slug = slug
	}
	if def.Kind != kind {
		logger.Warn("document kind differs from requested kind",
			zap.String("path", path),
			zap.String("declared", string(def.Kind)),
			zap.String("requested", string(kind)),
		)
	}

	page.ApplyBusinessRules(def, l.strictPrivateShells, logger)

	return def, nil
}

// Exists reports whether a document exists for the triple without fetching
// it. No locale fallback is applied, so it answers "is this exact translation
// present", which is what hreflang advertisement needs.
func (l *Loader) Exists(ctx context.Context, kind page.Kind, slug, locale string) (bool, error) {
	return l.store.ExistsByPath(ctx, PathFor(kind, locale, slug))
}
