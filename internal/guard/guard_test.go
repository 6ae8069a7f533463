package guard

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/floranaubry/dev2-interweb-site/internal/blocks"
	"github.com/floranaubry/dev2-interweb-site/internal/registry"
	"github.com/floranaubry/dev2-interweb-site/internal/schema"
	"github.com/floranaubry/dev2-interweb-site/internal/store/memory"
)

func builtinRegistries() (*registry.Sections, *registry.Shells, *registry.Packs) {
	sections := registry.NewSections(zap.NewNop())
	shells := registry.NewShells(zap.NewNop())
	blocks.RegisterAll(sections, shells)
	packs := registry.NewPacks(blocks.DefaultPacks(), zap.NewNop())
	return sections, shells, packs
}

func TestBuiltinRegistriesPass(t *testing.T) {
	sections, shells, _ := builtinRegistries()
	if problems := CheckRegistries(sections, shells); len(problems) != 0 {
		t.Fatalf("built-in library does not pass its own guard: %v", problems)
	}
}

func TestCheckRegistriesFlagsIncompleteEntries(t *testing.T) {
	sections := registry.NewSections(zap.NewNop())
	shells := registry.NewShells(zap.NewNop())

	sections.Register("bad.nofixtures", func() registry.Component { return nil },
		schema.Object().Field("title", schema.String()), nil)
	sections.Register("bad.fixture", func() registry.Component { return nil },
		schema.Object().Field("title", schema.String().NonEmpty()),
		[]map[string]any{{"title": ""}})
	shells.Register("sidebar.main", func() registry.Component { return nil },
		schema.Object(), []map[string]any{{}})

	problems := CheckRegistries(sections, shells)

	wantSnippets := []string{
		"no fixtures registered",
		"fixture 0 rejected",
		"component is unresolvable",
		"no header. or footer. prefix",
	}
	for _, snippet := range wantSnippets {
		if !containsProblem(problems, snippet) {
			t.Fatalf("missing problem %q in %v", snippet, problems)
		}
	}
}

func TestCheckContentCleanStore(t *testing.T) {
	sections, shells, packs := builtinRegistries()
	store := memory.NewFromMap(map[string]map[string]any{
		"site/en/about": {
			"kind":    "site",
			"packKey": "interweb",
			"seo":     map[string]any{"title": "About", "description": "D"},
			"shell":   map[string]any{"header": "header.main"},
			"sections": []any{
				map[string]any{"id": "hero.split", "props": map[string]any{"title": "Hi"}},
			},
		},
	})

	problems, err := CheckContent(context.Background(), store, sections, shells, packs)
	if err != nil {
		t.Fatalf("CheckContent: %v", err)
	}
	if len(problems) != 0 {
		t.Fatalf("unexpected problems: %v", problems)
	}
}

func TestCheckContentFlagsDrift(t *testing.T) {
	sections, shells, packs := builtinRegistries()
	store := memory.NewFromMap(map[string]map[string]any{
		"site/en/broken": {
			"kind":           "site",
			"packKey":        "neon",
			"themeOverrides": map[string]any{"accent": "red"},
			"seo":            map[string]any{"title": "B", "description": "D"},
			"shell":          map[string]any{"footer": "header.main"},
			"sections": []any{
				map[string]any{"id": "ghost.section", "pack": "neon"},
			},
		},
		"p/en/internal": {
			"kind": "p",
			"seo":  map[string]any{"title": "I", "description": "D", "noindex": false},
			"sections": []any{
				map[string]any{"id": "hero.split", "props": map[string]any{"title": "Hi"}},
			},
		},
	})

	problems, err := CheckContent(context.Background(), store, sections, shells, packs)
	if err != nil {
		t.Fatalf("CheckContent: %v", err)
	}

	wantSnippets := []string{
		`unknown pack "neon"`,
		`themeOverrides key "accent"`,
		`shell id "header.main" does not belong in slot footer`,
		`section id "ghost.section" not registered`,
		`seo.noindex=false`,
	}
	for _, snippet := range wantSnippets {
		if !containsProblem(problems, snippet) {
			t.Fatalf("missing problem %q in %v", snippet, problems)
		}
	}
}

func containsProblem(problems []Problem, snippet string) bool {
	for _, p := range problems {
		if strings.Contains(p.String(), snippet) {
			return true
		}
	}
	return false
}
