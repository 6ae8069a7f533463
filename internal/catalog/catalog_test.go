package catalog

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"go.uber.org/zap"

	"github.com/floranaubry/dev2-interweb-site/internal/blocks"
	"github.com/floranaubry/dev2-interweb-site/internal/registry"
	"github.com/floranaubry/dev2-interweb-site/internal/schema"
)

func builtinRegistries() (*registry.Sections, *registry.Shells, *registry.Packs) {
	sections := registry.NewSections(zap.NewNop())
	shells := registry.NewShells(zap.NewNop())
	blocks.RegisterAll(sections, shells)
	packs := registry.NewPacks(blocks.DefaultPacks(), zap.NewNop())
	return sections, shells, packs
}

func TestExportHashIsStable(t *testing.T) {
	sections, shells, packs := builtinRegistries()

	first, err := Export(sections, shells, packs)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	second, err := Export(sections, shells, packs)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if first.Hash == "" {
		t.Fatalf("empty hash")
	}
	if first.Hash != second.Hash {
		t.Fatalf("hash not stable across exports: %s vs %s", first.Hash, second.Hash)
	}
}

func TestExportHashTracksContent(t *testing.T) {
	sections := registry.NewSections(zap.NewNop())
	shells := registry.NewShells(zap.NewNop())
	packs := registry.NewPacks(map[string]string{"interweb": "/a.css"}, zap.NewNop())

	sections.Register("a.block", nil, schema.Object().Field("title", schema.String()), []map[string]any{{"title": "x"}})
	before, err := Export(sections, shells, packs)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	sections.Register("b.block", nil, schema.Object(), []map[string]any{{}})
	after, err := Export(sections, shells, packs)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	if before.Hash == after.Hash {
		t.Fatalf("hash did not change after registry change")
	}
}

func TestHashOfRoundTrip(t *testing.T) {
	sections, shells, packs := builtinRegistries()
	doc, err := Export(sections, shells, packs)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	artifact, err := doc.JSON()
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	hash, err := HashOf(artifact)
	if err != nil {
		t.Fatalf("HashOf: %v", err)
	}
	if hash != doc.Hash {
		t.Fatalf("artifact hash %s does not match document hash %s", hash, doc.Hash)
	}
}

func TestBuiltinCatalogSnapshot(t *testing.T) {
	sections, shells, packs := builtinRegistries()
	doc, err := Export(sections, shells, packs)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	// The timestamp changes every run; the rest must not drift silently.
	doc.GeneratedAt = ""
	artifact, err := doc.JSON()
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	snaps.MatchJSON(t, artifact)
}
