package registry

import (
	"context"
	"html/template"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/floranaubry/dev2-interweb-site/internal/page"
	"github.com/floranaubry/dev2-interweb-site/internal/schema"
)

func noopComponent() Component {
	return ComponentFunc(func(context.Context, map[string]any) (template.HTML, error) {
		return "", nil
	})
}

func titleSchema() schema.Schema {
	return schema.Object().Field("title", schema.String().NonEmpty())
}

func titleFixtures() []map[string]any {
	return []map[string]any{{"title": "Example"}}
}

func TestSections_LookupMissNeverPanics(t *testing.T) {
	r := NewSections(nil)
	if r.Has("hero.split") {
		t.Fatal("empty registry reports membership")
	}
	if r.Component("hero.split") != nil {
		t.Fatal("expected nil component on miss")
	}
	if r.Schema("hero.split") != nil {
		t.Fatal("expected nil schema on miss")
	}
	if r.Fixtures("hero.split") != nil {
		t.Fatal("expected nil fixtures on miss")
	}
}

func TestSections_DuplicateRegistrationWarnsLastWriteWins(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	r := NewSections(zap.New(core))

	first := ComponentFunc(func(context.Context, map[string]any) (template.HTML, error) {
		return "first", nil
	})
	second := ComponentFunc(func(context.Context, map[string]any) (template.HTML, error) {
		return "second", nil
	})

	r.Register("hero.split", func() Component { return first }, titleSchema(), titleFixtures())
	r.Register("hero.split", func() Component { return second }, titleSchema(), titleFixtures())

	html, err := r.Component("hero.split").Render(context.Background(), nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if html != "second" {
		t.Fatalf("expected last write to win, got %q", html)
	}
	if logs.FilterMessageSnippet("duplicate section registration").Len() != 1 {
		t.Fatal("expected a duplicate registration warning")
	}
}

func TestSections_ListAllSortedAndComplete(t *testing.T) {
	r := NewSections(nil)
	for _, id := range []string{"hero.split", "cta.banner", "faq.list"} {
		r.Register(id, func() Component { return noopComponent() }, titleSchema(), titleFixtures())
	}
	entries := r.ListAll()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	want := []string{"cta.banner", "faq.list", "hero.split"}
	for i, entry := range entries {
		if entry.ID != want[i] {
			t.Fatalf("entries not sorted: %v", entries)
		}
		if entry.Schema == nil {
			t.Fatalf("entry %s missing schema", entry.ID)
		}
		if len(entry.Fixtures) == 0 {
			t.Fatalf("entry %s missing fixtures", entry.ID)
		}
	}
}

func TestShells_SlotDerivedFromPrefix(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	r := NewShells(zap.New(core))
	r.Register("header.main", func() Component { return noopComponent() }, titleSchema(), titleFixtures())
	r.Register("footer.main", func() Component { return noopComponent() }, titleSchema(), titleFixtures())
	r.Register("sidebar.main", func() Component { return noopComponent() }, titleSchema(), titleFixtures())

	headers := r.ListBySlot(page.SlotHeader)
	if len(headers) != 1 || headers[0].ID != "header.main" {
		t.Fatalf("unexpected header slot entries: %v", headers)
	}
	footers := r.ListBySlot(page.SlotFooter)
	if len(footers) != 1 || footers[0].ID != "footer.main" {
		t.Fatalf("unexpected footer slot entries: %v", footers)
	}
	if logs.FilterMessageSnippet("no slot prefix").Len() != 1 {
		t.Fatal("expected a malformed shell id warning")
	}
}

func TestShells_EmptyFixturesWarns(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	r := NewShells(zap.New(core))
	r.Register("footer.compact", func() Component { return noopComponent() }, titleSchema(), nil)
	if !r.Has("footer.compact") {
		t.Fatal("entry with empty fixtures must still register")
	}
	if logs.FilterMessageSnippet("without fixtures").Len() != 1 {
		t.Fatal("expected empty fixtures warning")
	}
}

func TestPacks_GatesUnknownKeys(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	packs := NewPacks(map[string]string{
		"interweb": "/packs/interweb.css",
		"pizza":    "/packs/pizza.css",
		"broken":   "",
	}, zap.New(core))

	if href, exists := packs.ResolveHref("interweb"); !exists || href != "/packs/interweb.css" {
		t.Fatalf("unexpected href resolution: %q %v", href, exists)
	}
	if _, exists := packs.ResolveHref("mango"); exists {
		t.Fatal("unknown pack resolved")
	}
	if packs.Has("broken") {
		t.Fatal("pack without stylesheet must be dropped")
	}
	keys := packs.Keys()
	if len(keys) != 2 || keys[0] != "interweb" || keys[1] != "pizza" {
		t.Fatalf("unexpected key list: %v", keys)
	}
	if logs.FilterMessageSnippet("without stylesheet").Len() != 1 {
		t.Fatal("expected missing stylesheet warning")
	}
}

func TestRegistryCompleteness(t *testing.T) {
	r := NewSections(nil)
	r.Register("hero.split", func() Component { return noopComponent() }, titleSchema(), titleFixtures())
	r.Register("cta.banner", func() Component { return noopComponent() }, titleSchema(), titleFixtures())
	for _, entry := range r.ListAll() {
		if r.Schema(entry.ID) == nil {
			t.Fatalf("%s: schema missing", entry.ID)
		}
		if len(r.Fixtures(entry.ID)) == 0 {
			t.Fatalf("%s: fixtures missing", entry.ID)
		}
	}
}
