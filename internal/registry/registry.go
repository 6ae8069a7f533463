// Package registry holds the closed, process-lifetime tables that map block
// identifiers to their renderable implementations, props schemas, and example
// fixtures. Registries are populated once at startup and read-only afterwards;
// they are injected explicitly into the loader and renderer rather than kept
// as ambient package state, so tests can substitute fake entries freely.
package registry

import (
	"context"
	"html/template"
	"sort"

	"go.uber.org/zap"

	"github.com/floranaubry/dev2-interweb-site/internal/page"
	"github.com/floranaubry/dev2-interweb-site/internal/schema"
)

// Component is a renderable unit. Props arrive already validated and coerced
// by the gate; implementations may trust declared shapes.
type Component interface {
	Render(ctx context.Context, props map[string]any) (template.HTML, error)
}

// ComponentFunc adapts ordinary functions to Component.
type ComponentFunc func(ctx context.Context, props map[string]any) (template.HTML, error)

// Render implements Component.
func (f ComponentFunc) Render(ctx context.Context, props map[string]any) (template.HTML, error) {
	return f(ctx, props)
}

// Resolver lazily instantiates a component. A resolver that returns nil marks
// the entry as registered-but-unresolvable, which the renderer reports
// distinctly from a missing registration.
type Resolver func() Component

// Entry is one registration record.
type Entry struct {
	ID       string
	Resolve  Resolver
	Schema   schema.Schema
	Fixtures []map[string]any
}

// Sections is the registry of section block implementations.
type Sections struct {
	logger  *zap.Logger
	entries map[string]Entry
}

// NewSections constructs an empty section registry.
func NewSections(logger *zap.Logger) *Sections {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sections{logger: logger, entries: map[string]Entry{}}
}

// Register records an entry. Collisions are last-write-wins with a warning;
// empty fixture lists are flagged but accepted (the CI guard treats both as
// fatal).
func (r *Sections) Register(id string, resolve Resolver, s schema.Schema, fixtures []map[string]any) {
	if _, exists := r.entries[id]; exists {
		r.logger.Warn("duplicate section registration, last write wins", zap.String("id", id))
	}
	if len(fixtures) == 0 {
		r.logger.Warn("section registered without fixtures", zap.String("id", id))
	}
	r.entries[id] = Entry{ID: id, Resolve: resolve, Schema: s, Fixtures: fixtures}
}

// Has reports whether the id is registered.
func (r *Sections) Has(id string) bool {
	_, exists := r.entries[id]
	return exists
}

// Component resolves the implementation for an id; nil on miss or when the
// entry's resolver yields nothing.
func (r *Sections) Component(id string) Component {
	entry, exists := r.entries[id]
	if !exists || entry.Resolve == nil {
		return nil
	}
	return entry.Resolve()
}

// Schema returns the registered props schema, nil on miss.
func (r *Sections) Schema(id string) schema.Schema {
	return r.entries[id].Schema
}

// Fixtures returns the registered example payloads, nil on miss.
func (r *Sections) Fixtures(id string) []map[string]any {
	return r.entries[id].Fixtures
}

// ListAll returns every entry sorted by id, for reproducible tooling output.
func (r *Sections) ListAll() []Entry {
	out := make([]Entry, 0, len(r.entries))
	for _, entry := range r.entries {
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ShellEntry is a shell registration record; the slot is derived from the id
// prefix at registration time.
type ShellEntry struct {
	Entry
	Slot page.Slot
}

// Shells is the registry of header and footer implementations. It shares the
// section registry's contract and additionally records each entry's slot.
type Shells struct {
	logger  *zap.Logger
	entries map[string]ShellEntry
}

// NewShells constructs an empty shell registry.
func NewShells(logger *zap.Logger) *Shells {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Shells{logger: logger, entries: map[string]ShellEntry{}}
}

// Register records a shell entry. Ids that carry neither slot prefix are
// registered with an empty slot and flagged; the guard treats them as fatal.
func (r *Shells) Register(id string, resolve Resolver, s schema.Schema, fixtures []map[string]any) {
	if _, exists := r.entries[id]; exists {
		r.logger.Warn("duplicate shell registration, last write wins", zap.String("id", id))
	}
	if len(fixtures) == 0 {
		r.logger.Warn("shell registered without fixtures", zap.String("id", id))
	}
	slot, matches := page.ExpectedSlot(id)
	if !matches {
		r.logger.Warn("shell id carries no slot prefix", zap.String("id", id))
	}
	r.entries[id] = ShellEntry{
		Entry: Entry{ID: id, Resolve: resolve, Schema: s, Fixtures: fixtures},
		Slot:  slot,
	}
}

// Has reports whether the id is registered.
func (r *Shells) Has(id string) bool {
	_, exists := r.entries[id]
	return exists
}

// Component resolves the implementation for an id; nil on miss or when the
// entry's resolver yields nothing.
func (r *Shells) Component(id string) Component {
	entry, exists := r.entries[id]
	if !exists || entry.Resolve == nil {
		return nil
	}
	return entry.Resolve()
}

// Schema returns the registered props schema, nil on miss.
func (r *Shells) Schema(id string) schema.Schema {
	return r.entries[id].Schema
}

// Fixtures returns the registered example payloads, nil on miss.
func (r *Shells) Fixtures(id string) []map[string]any {
	return r.entries[id].Fixtures
}

// ListAll returns every entry sorted by id.
func (r *Shells) ListAll() []ShellEntry {
	out := make([]ShellEntry, 0, len(r.entries))
	for _, entry := range r.entries {
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ListBySlot returns the entries registered for one slot, sorted by id.
func (r *Shells) ListBySlot(slot page.Slot) []ShellEntry {
	out := make([]ShellEntry, 0, len(r.entries))
	for _, entry := range r.entries {
		if entry.Slot == slot {
			out = append(out, entry)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
