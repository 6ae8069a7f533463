package firestore

import (
	"context"
	"net/url"
	"strings"

	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/floranaubry/dev2-interweb-site/internal/loader"
)

const (
	fieldPath = "path"
	fieldData = "data"
)

// Store implements loader.Store on a single Firestore collection. Storage
// paths contain slashes, which Firestore forbids in document ids, so the id
// is the URL-escaped path and the raw path is duplicated into a field for
// prefix queries.
type Store struct {
	provider   *Provider
	collection string
}

// NewStore constructs a Store reading from the given collection.
func NewStore(provider *Provider, collection string) *Store {
	return &Store{provider: provider, collection: collection}
}

func docID(path string) string {
	return url.PathEscape(path)
}

// FetchByPath implements loader.Store.
func (s *Store) FetchByPath(ctx context.Context, path string) (map[string]any, error) {
	client, err := s.provider.Client(ctx)
	if err != nil {
		return nil, err
	}

	snap, err := client.Collection(s.collection).Doc(docID(path)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, loader.ErrNotFound
		}
		return nil, WrapError("fetch page", err)
	}

	data, _ := snap.Data()[fieldData].(map[string]any)
	if data == nil {
		return nil, loader.ErrNotFound
	}
	return data, nil
}

// ExistsByPath implements loader.Store.
func (s *Store) ExistsByPath(ctx context.Context, path string) (bool, error) {
	client, err := s.provider.Client(ctx)
	if err != nil {
		return false, err
	}

	snap, err := client.Collection(s.collection).Doc(docID(path)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return false, nil
		}
		return false, WrapError("check page", err)
	}
	return snap.Exists(), nil
}

// ListPaths implements loader.Store using a lexicographic prefix range on
// the path field.
func (s *Store) ListPaths(ctx context.Context, prefix string) ([]string, error) {
	client, err := s.provider.Client(ctx)
	if err != nil {
		return nil, err
	}

	query := client.Collection(s.collection).
		Where(fieldPath, ">=", prefix).
		Where(fieldPath, "<", prefix+"\uf8ff").
		Select(fieldPath)

	var paths []string
	iter := query.Documents(ctx)
	defer iter.Stop()
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, WrapError("list pages", err)
		}
		if path, _ := snap.Data()[fieldPath].(string); strings.HasPrefix(path, prefix) {
			paths = append(paths, path)
		}
	}
	return paths, nil
}
