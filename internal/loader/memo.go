package loader

import (
	"context"
	"sync"

	"github.com/floranaubry/dev2-interweb-site/internal/page"
)

type memoContextKey struct{}

// memo is a per-request load cache. It remembers both successes and
// failures at two levels: validated PageDefs keyed by triple, and raw
// fetches keyed by storage path, so a path shared between triples (a
// fallback target that is also requested directly) costs one round trip.
type memo struct {
	mu      sync.Mutex
	entries map[string]memoEntry
	fetches map[string]fetchEntry
}

type memoEntry struct {
	def *page.PageDef
	err error
}

type fetchEntry struct {
	doc map[string]any
	err error
}

// WithMemo attaches a fresh per-request memo to the context. Installed by
// request middleware; the memo dies with the request.
func WithMemo(ctx context.Context) context.Context {
	return context.WithValue(ctx, memoContextKey{}, &memo{
		entries: map[string]memoEntry{},
		fetches: map[string]fetchEntry{},
	})
}

func memoFrom(ctx context.Context) *memo {
	m, _ := ctx.Value(memoContextKey{}).(*memo)
	return m
}

func (m *memo) get(key string) (*page.PageDef, error, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, hit := m.entries[key]
	return entry.def, entry.err, hit
}

func (m *memo) put(key string, def *page.PageDef, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memoEntry{def: def, err: err}
}

func (m *memo) getFetch(path string) (map[string]any, error, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, hit := m.fetches[path]
	return entry.doc, entry.err, hit
}

func (m *memo) putFetch(path string, doc map[string]any, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetches[path] = fetchEntry{doc: doc, err: err}
}
