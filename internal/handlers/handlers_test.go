package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/floranaubry/dev2-interweb-site/internal/blocks"
	"github.com/floranaubry/dev2-interweb-site/internal/compose"
	"github.com/floranaubry/dev2-interweb-site/internal/loader"
	"github.com/floranaubry/dev2-interweb-site/internal/page"
	"github.com/floranaubry/dev2-interweb-site/internal/platform/config"
	"github.com/floranaubry/dev2-interweb-site/internal/registry"
	"github.com/floranaubry/dev2-interweb-site/internal/seo"
	"github.com/floranaubry/dev2-interweb-site/internal/sitemap"
	"github.com/floranaubry/dev2-interweb-site/internal/store/memory"
)

func siteDoc(title string) map[string]any {
	return map[string]any{
		"kind":    "site",
		"packKey": "interweb",
		"seo":     map[string]any{"title": title, "description": "D"},
		"shell":   map[string]any{"header": map[string]any{"id": "header.main", "props": map[string]any{"siteName": "Interweb"}}},
		"sections": []any{
			map[string]any{"id": "hero.split", "props": map[string]any{"title": title}},
		},
	}
}

func newTestRouter(t *testing.T, env config.Environment, docs map[string]map[string]any) http.Handler {
	t.Helper()

	site := config.SiteConfig{
		Environment:   env,
		BaseURL:       "https://example.com",
		DefaultLocale: "en",
		Locales:       []string{"en", "fr"},
	}

	logger := zap.NewNop()
	sections := registry.NewSections(logger)
	shells := registry.NewShells(logger)
	blocks.RegisterAll(sections, shells)
	packs := registry.NewPacks(blocks.DefaultPacks(), logger)

	store := memory.NewFromMap(docs)
	l := loader.New(store, page.NewValidator(packs.Keys()), site.DefaultLocale, false)
	renderer := compose.NewRenderer(sections, shells, packs, compose.PolicyFor(env, compose.ContextRequest))
	builder := seo.NewBuilder(site)

	return NewRouter(site,
		WithPageHandlers(NewPageHandlers(l, renderer, builder, env)),
		WithSitemapHandlers(NewSitemapHandlers(sitemap.New(store, builder, time.Minute))),
	)
}

func get(t *testing.T, router http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestServePage(t *testing.T) {
	router := newTestRouter(t, config.EnvProduction, map[string]map[string]any{
		"site/en/about": siteDoc("About"),
	})

	rec := get(t, router, "/about")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	for _, want := range []string{
		"<title>About</title>",
		`<link rel="canonical" href="https://example.com/about">`,
		`<link rel="stylesheet" href="/assets/packs/interweb.css">`,
		"<h1>About</h1>",
		`<header class="site-header">`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("response missing %q:\n%s", want, body)
		}
	}
}

func TestServeHomePage(t *testing.T) {
	router := newTestRouter(t, config.EnvProduction, map[string]map[string]any{
		"site/en": siteDoc("Home"),
	})

	rec := get(t, router, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "<title>Home</title>") {
		t.Fatalf("home page not served:\n%s", rec.Body.String())
	}
}

func TestServeLocaleFallback(t *testing.T) {
	router := newTestRouter(t, config.EnvProduction, map[string]map[string]any{
		"site/en/about": siteDoc("About"),
	})

	rec := get(t, router, "/fr/about")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, `<html lang="fr">`) {
		t.Fatalf("lang attribute not localized:\n%s", body)
	}
	if !strings.Contains(body, "<h1>About</h1>") {
		t.Fatalf("fallback content not served:\n%s", body)
	}
}

func TestDefaultLocalePrefixRedirects(t *testing.T) {
	router := newTestRouter(t, config.EnvProduction, map[string]map[string]any{
		"site/en/about": siteDoc("About"),
	})

	rec := get(t, router, "/en/about")
	if rec.Code != http.StatusMovedPermanently {
		t.Fatalf("status %d, want 301", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "/about" {
		t.Fatalf("Location = %q, want /about", got)
	}

	rec = get(t, router, "/en")
	if rec.Code != http.StatusMovedPermanently {
		t.Fatalf("status %d, want 301", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "/" {
		t.Fatalf("Location = %q, want /", got)
	}
}

func TestServePrivateKindNoindex(t *testing.T) {
	doc := siteDoc("Launch")
	doc["kind"] = "p"
	router := newTestRouter(t, config.EnvProduction, map[string]map[string]any{
		"p/en/launch": doc,
	})

	rec := get(t, router, "/p/launch")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `<meta name="robots" content="noindex">`) {
		t.Fatalf("private page not noindexed:\n%s", rec.Body.String())
	}
}

func TestServeMissingPageIs404(t *testing.T) {
	router := newTestRouter(t, config.EnvProduction, nil)

	rec := get(t, router, "/nope")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404", rec.Code)
	}
}

func TestInvalidSectionGenericInProduction(t *testing.T) {
	doc := siteDoc("Broken")
	doc["sections"] = []any{
		map[string]any{"id": "hero.split", "props": map[string]any{}},
	}
	router := newTestRouter(t, config.EnvProduction, map[string]map[string]any{
		"site/en/broken": doc,
	})

	rec := get(t, router, "/broken")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status %d, want 500", rec.Code)
	}
	body := rec.Body.String()
	if strings.Contains(body, "title") && strings.Contains(body, "required") {
		t.Fatalf("schema detail leaked in production:\n%s", body)
	}
}

func TestInvalidSectionDiagnosticInDevelopment(t *testing.T) {
	doc := siteDoc("Broken")
	doc["sections"] = []any{
		map[string]any{"id": "hero.split", "props": map[string]any{}},
		map[string]any{"id": "cta.banner", "props": map[string]any{
			"title": "Still here", "buttonLabel": "Go", "buttonHref": "/p/go",
		}},
	}
	router := newTestRouter(t, config.EnvDevelopment, map[string]map[string]any{
		"site/en/broken": doc,
	})

	rec := get(t, router, "/broken")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, "block-diagnostic") {
		t.Fatalf("diagnostic block missing:\n%s", body)
	}
	if !strings.Contains(body, "Still here") {
		t.Fatalf("valid sibling section not rendered:\n%s", body)
	}
}

func TestSitemapAndRobots(t *testing.T) {
	router := newTestRouter(t, config.EnvProduction, map[string]map[string]any{
		"site/en/about": siteDoc("About"),
		"p/en/launch":   siteDoc("Launch"),
	})

	rec := get(t, router, "/sitemap.xml")
	if rec.Code != http.StatusOK {
		t.Fatalf("sitemap status %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "https://example.com/about") {
		t.Fatalf("sitemap missing public page:\n%s", rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "/p/launch") {
		t.Fatalf("private page leaked into sitemap:\n%s", rec.Body.String())
	}

	rec = get(t, router, "/robots.txt")
	if rec.Code != http.StatusOK {
		t.Fatalf("robots status %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Disallow: /p/") {
		t.Fatalf("robots missing disallow:\n%s", rec.Body.String())
	}
}

func TestHealthEndpoints(t *testing.T) {
	router := newTestRouter(t, config.EnvProduction, nil)

	if rec := get(t, router, "/healthz"); rec.Code != http.StatusOK {
		t.Fatalf("healthz status %d", rec.Code)
	}
	if rec := get(t, router, "/readyz"); rec.Code != http.StatusOK {
		t.Fatalf("readyz status %d", rec.Code)
	}
}
