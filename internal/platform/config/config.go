// Package config assembles runtime configuration from defaults, an optional
// .env file, and environment variables. It is read once at startup and
// treated as environment data, never as domain data.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/language"
)

const (
	defaultEnvFile      = ".env"
	defaultPort         = "8080"
	defaultReadTimeout  = 15 * time.Second
	defaultWriteTimeout = 30 * time.Second
	defaultIdleTimeout  = 120 * time.Second
	defaultLocale       = "en"
	defaultCollection   = "pages"
	defaultSitemapTTL   = 10 * time.Minute
)

// Environment selects the failure-mode policy: development favours visible
// diagnostics, production favours generic total failure.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
)

// IsDevelopment reports whether the environment is development.
func (e Environment) IsDevelopment() bool { return e == EnvDevelopment }

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server    ServerConfig
	Site      SiteConfig
	Content   ContentConfig
	Firestore FirestoreConfig
	Features  FeatureFlags
	Cache     CacheConfig
}

// ContentConfig selects the content source for local development. When Dir is
// set the server reads YAML page documents from disk instead of Firestore.
type ContentConfig struct {
	Dir string
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// SiteConfig describes the site identity and locale policy.
type SiteConfig struct {
	Environment   Environment
	BaseURL       string
	DefaultLocale string
	Locales       []string
}

// FirestoreConfig stores content store parameters.
type FirestoreConfig struct {
	ProjectID    string
	EmulatorHost string
	Collection   string
}

// FeatureFlags toggle optional behaviour without redeploying.
type FeatureFlags struct {
	StrictPrivateShells bool
}

// CacheConfig controls the long-lived collaborator caches. The loader's own
// memo is per-request and not configured here.
type CacheConfig struct {
	SitemapTTL time.Duration
}

// ValidationError is returned when required configuration fields are missing
// or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile overrides the .env file path used for local overrides.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap injects an explicit key/value map for environment lookups.
// Values in the map take precedence over system environment variables.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv disables reading from os.LookupEnv, relying only on
// provided maps and .env files.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// Load assembles the configuration by combining defaults, .env overrides, and
// environment variables.
func Load(opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	dotEnvValues, err := loadDotEnv(options.envFile)
	if err != nil {
		return Config{}, err
	}

	lookup := func(key string) (string, bool) {
		if options.envMap != nil {
			if value, ok := options.envMap[key]; ok {
				return value, true
			}
		}
		if options.useSystemEnv {
			if value, ok := os.LookupEnv(key); ok {
				return value, true
			}
		}
		if dotEnvValues != nil {
			if value, ok := dotEnvValues[key]; ok {
				return value, true
			}
		}
		return "", false
	}

	cfg := Config{
		Server: ServerConfig{
			Port:         stringWithDefault(lookup, "SITE_SERVER_PORT", defaultPort),
			ReadTimeout:  durationWithDefault(lookup, "SITE_SERVER_READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout: durationWithDefault(lookup, "SITE_SERVER_WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:  durationWithDefault(lookup, "SITE_SERVER_IDLE_TIMEOUT", defaultIdleTimeout),
		},
		Site: SiteConfig{
			Environment:   parseEnvironment(stringWithDefault(lookup, "SITE_ENVIRONMENT", string(EnvDevelopment))),
			BaseURL:       strings.TrimRight(stringWithDefault(lookup, "SITE_BASE_URL", ""), "/"),
			DefaultLocale: stringWithDefault(lookup, "SITE_DEFAULT_LOCALE", defaultLocale),
			Locales:       csvWithDefault(lookup, "SITE_LOCALES"),
		},
		Content: ContentConfig{
			Dir: stringWithDefault(lookup, "SITE_CONTENT_DIR", ""),
		},
		Firestore: FirestoreConfig{
			ProjectID:    stringWithDefault(lookup, "SITE_FIRESTORE_PROJECT_ID", ""),
			EmulatorHost: stringWithDefault(lookup, "SITE_FIRESTORE_EMULATOR_HOST", ""),
			Collection:   stringWithDefault(lookup, "SITE_FIRESTORE_COLLECTION", defaultCollection),
		},
		Features: FeatureFlags{
			StrictPrivateShells: boolWithDefault(lookup, "SITE_FEATURE_STRICT_PRIVATE_SHELLS", false),
		},
		Cache: CacheConfig{
			SitemapTTL: durationWithDefault(lookup, "SITE_SITEMAP_CACHE_TTL", defaultSitemapTTL),
		},
	}

	cfg.Site.DefaultLocale = canonicalLocale(cfg.Site.DefaultLocale)
	if len(cfg.Site.Locales) == 0 {
		cfg.Site.Locales = []string{cfg.Site.DefaultLocale}
	}
	for i, locale := range cfg.Site.Locales {
		cfg.Site.Locales[i] = canonicalLocale(locale)
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// canonicalLocale normalises a locale tag through x/text; malformed tags are
// kept lowercased as-is so the drift check can surface them.
func canonicalLocale(locale string) string {
	trimmed := strings.TrimSpace(locale)
	if trimmed == "" {
		return ""
	}
	tag, err := language.Parse(trimmed)
	if err != nil {
		return strings.ToLower(trimmed)
	}
	return strings.ToLower(tag.String())
}

func parseEnvironment(value string) Environment {
	if strings.EqualFold(strings.TrimSpace(value), string(EnvProduction)) {
		return EnvProduction
	}
	return EnvDevelopment
}

func validateConfig(cfg Config) error {
	var missing []string

	if cfg.Server.Port == "" {
		missing = append(missing, "Server.Port")
	}
	if cfg.Site.DefaultLocale == "" {
		missing = append(missing, "Site.DefaultLocale")
	}
	if !containsLocale(cfg.Site.Locales, cfg.Site.DefaultLocale) {
		missing = append(missing, "Site.Locales")
	}
	if cfg.Firestore.Collection == "" {
		missing = append(missing, "Firestore.Collection")
	}
	if cfg.Cache.SitemapTTL <= 0 {
		missing = append(missing, "Cache.SitemapTTL")
	}

	if len(missing) > 0 {
		return &ValidationError{fields: missing}
	}
	return nil
}

func containsLocale(locales []string, locale string) bool {
	for _, candidate := range locales {
		if candidate == locale {
			return true
		}
	}
	return false
}

func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	file, err := os.Open(absPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", absPath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	values := make(map[string]string)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "export ") {
			line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if key == "" {
			continue
		}
		value = strings.Trim(value, "\"'")
		values[key] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("config: failed parsing %s: %w", absPath, err)
	}
	return values, nil
}

func stringWithDefault(lookup func(string) (string, bool), key, fallback string) string {
	if value, ok := lookup(key); ok && value != "" {
		return value
	}
	return fallback
}

func durationWithDefault(lookup func(string) (string, bool), key string, fallback time.Duration) time.Duration {
	if value, ok := lookup(key); ok && value != "" {
		d, err := time.ParseDuration(value)
		if err == nil {
			return d
		}
	}
	return fallback
}

func boolWithDefault(lookup func(string) (string, bool), key string, fallback bool) bool {
	if value, ok := lookup(key); ok && value != "" {
		switch strings.ToLower(value) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		}
	}
	return fallback
}

func csvWithDefault(lookup func(string) (string, bool), key string) []string {
	raw, ok := lookup(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
