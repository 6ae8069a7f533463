package config

import (
	"errors"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Fatalf("unexpected port %q", cfg.Server.Port)
	}
	if cfg.Site.Environment != EnvDevelopment {
		t.Fatalf("expected development default, got %q", cfg.Site.Environment)
	}
	if cfg.Site.DefaultLocale != "en" {
		t.Fatalf("unexpected default locale %q", cfg.Site.DefaultLocale)
	}
	if len(cfg.Site.Locales) != 1 || cfg.Site.Locales[0] != "en" {
		t.Fatalf("expected locale list to default to [en], got %v", cfg.Site.Locales)
	}
	if cfg.Cache.SitemapTTL != 10*time.Minute {
		t.Fatalf("unexpected sitemap TTL %v", cfg.Cache.SitemapTTL)
	}
}

func TestLoad_EnvMapOverridesAndLocaleCanonicalisation(t *testing.T) {
	cfg, err := Load(WithoutSystemEnv(), WithEnvFile(""), WithEnvMap(map[string]string{
		"SITE_ENVIRONMENT":    "production",
		"SITE_BASE_URL":       "https://interweb.example/",
		"SITE_DEFAULT_LOCALE": "FR",
		"SITE_LOCALES":        "FR, en-US , de",
	}))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Site.Environment != EnvProduction {
		t.Fatalf("expected production, got %q", cfg.Site.Environment)
	}
	if cfg.Site.BaseURL != "https://interweb.example" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.Site.BaseURL)
	}
	if cfg.Site.DefaultLocale != "fr" {
		t.Fatalf("expected canonical fr, got %q", cfg.Site.DefaultLocale)
	}
	want := []string{"fr", "en-us", "de"}
	for i, locale := range want {
		if cfg.Site.Locales[i] != locale {
			t.Fatalf("locale %d: got %q, want %q", i, cfg.Site.Locales[i], locale)
		}
	}
}

func TestLoad_DefaultLocaleMustBeListed(t *testing.T) {
	_, err := Load(WithoutSystemEnv(), WithEnvFile(""), WithEnvMap(map[string]string{
		"SITE_DEFAULT_LOCALE": "fr",
		"SITE_LOCALES":        "en,de",
	}))
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	found := false
	for _, field := range vErr.Fields() {
		if field == "Site.Locales" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected Site.Locales flagged, got %v", vErr.Fields())
	}
}
