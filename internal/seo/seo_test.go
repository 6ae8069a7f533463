package seo

import (
	"context"
	"testing"

	"github.com/floranaubry/dev2-interweb-site/internal/page"
	"github.com/floranaubry/dev2-interweb-site/internal/platform/config"
)

func testBuilder() *Builder {
	return NewBuilder(config.SiteConfig{
		BaseURL:       "https://example.com/",
		DefaultLocale: "en",
		Locales:       []string{"en", "fr", "de"},
	})
}

func TestPagePath(t *testing.T) {
	b := testBuilder()
	cases := []struct {
		kind   page.Kind
		slug   string
		locale string
		want   string
	}{
		{page.KindSite, "", "en", "/"},
		{page.KindSite, "index", "en", "/"},
		{page.KindSite, "about", "en", "/about"},
		{page.KindSite, "about", "fr", "/fr/about"},
		{page.KindSite, "", "fr", "/fr"},
		{page.KindPrivate, "launch", "en", "/p/launch"},
		{page.KindDemo, "widget", "de", "/de/demo/widget"},
	}
	for _, tc := range cases {
		if got := b.PagePath(tc.kind, tc.slug, tc.locale); got != tc.want {
			t.Fatalf("PagePath(%s, %q, %s) = %q, want %q", tc.kind, tc.slug, tc.locale, got, tc.want)
		}
	}
}

func existsIn(locales ...string) ExistsFunc {
	set := map[string]bool{}
	for _, l := range locales {
		set[l] = true
	}
	return func(_ context.Context, _ page.Kind, _ string, locale string) (bool, error) {
		return set[locale], nil
	}
}

func TestBuildAlternatesOnlyForStoredTranslations(t *testing.T) {
	b := testBuilder()
	def := &page.PageDef{
		Kind: page.KindSite,
		Slug: "about",
		SEO:  page.SEO{Title: "About", Description: "D"},
	}

	meta, err := b.Build(context.Background(), existsIn("en", "fr"), def, "en")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if meta.Canonical != "https://example.com/about" {
		t.Fatalf("unexpected canonical: %q", meta.Canonical)
	}
	if len(meta.Alternates) != 2 {
		t.Fatalf("expected en+fr alternates, got %v", meta.Alternates)
	}
	if meta.Alternates[1].Href != "https://example.com/fr/about" {
		t.Fatalf("unexpected fr alternate: %v", meta.Alternates[1])
	}
}

func TestBuildSingleAlternateDropped(t *testing.T) {
	b := testBuilder()
	def := &page.PageDef{Kind: page.KindSite, Slug: "solo", SEO: page.SEO{Title: "S", Description: "D"}}

	meta, err := b.Build(context.Background(), existsIn("en"), def, "en")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if meta.Alternates != nil {
		t.Fatalf("self-only alternate should be dropped, got %v", meta.Alternates)
	}
}

func TestBuildNoindexSkipsAlternates(t *testing.T) {
	b := testBuilder()
	def := &page.PageDef{
		Kind: page.KindPrivate,
		Slug: "launch",
		SEO:  page.SEO{Title: "L", Description: "D", Noindex: true},
	}

	meta, err := b.Build(context.Background(), existsIn("en", "fr"), def, "en")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !meta.Noindex {
		t.Fatalf("noindex flag lost")
	}
	if meta.Alternates != nil {
		t.Fatalf("noindexed page must not advertise alternates")
	}
}
