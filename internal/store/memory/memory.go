// Package memory holds page documents in process memory. It backs local
// development, where content is authored as YAML files on disk, and tests.
package memory

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/floranaubry/dev2-interweb-site/internal/loader"
)

// Store implements loader.Store over a map keyed by storage path.
type Store struct {
	mu   sync.RWMutex
	docs map[string]map[string]any
}

// New constructs an empty store.
func New() *Store {
	return &Store{docs: map[string]map[string]any{}}
}

// NewFromMap seeds a store directly, for tests.
func NewFromMap(docs map[string]map[string]any) *Store {
	s := New()
	for path, doc := range docs {
		s.docs[path] = doc
	}
	return s
}

// NewFromDir loads every .yaml/.yml file under root. The file's path relative
// to root, minus the extension, becomes its storage path, so
// content/site/en/about.yaml serves site/en/about.
func NewFromDir(root string) (*Store, error) {
	s := New()
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := filepath.Ext(path)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		var doc map[string]any
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		storagePath := strings.TrimSuffix(filepath.ToSlash(rel), ext)
		s.docs[storagePath] = doc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Put stores or replaces a document.
func (s *Store) Put(path string, doc map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[path] = doc
}

// FetchByPath implements loader.Store.
func (s *Store) FetchByPath(_ context.Context, path string) (map[string]any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, exists := s.docs[path]
	if !exists {
		return nil, loader.ErrNotFound
	}
	return doc, nil
}

// ExistsByPath implements loader.Store.
func (s *Store) ExistsByPath(_ context.Context, path string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.docs[path]
	return exists, nil
}

// ListPaths implements loader.Store with deterministic ordering.
func (s *Store) ListPaths(_ context.Context, prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var paths []string
	for path := range s.docs {
		if strings.HasPrefix(path, prefix) {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	return paths, nil
}
