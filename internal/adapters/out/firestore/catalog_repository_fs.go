// internal/adapters/out/firestore/catalog_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"sort"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	catalogdom "folio/internal/domain/catalog"
)

var ErrCatalogRepoFSInvalid = errors.New("firestore: catalog repository invalid")

// CatalogRepositoryFS implements catalog.Repository using Firestore.
//
// Collections: blog, works, products. Documents are stored flat; legacy
// documents wrapping their fields in objectData are returned as is and
// flattened by catalog.Normalize.
type CatalogRepositoryFS struct {
	Client *firestore.Client
}

func NewCatalogRepositoryFS(client *firestore.Client) *CatalogRepositoryFS {
	return &CatalogRepositoryFS{Client: client}
}

func (r *CatalogRepositoryFS) col(collection string) (*firestore.CollectionRef, error) {
	if r == nil || r.Client == nil {
		return nil, ErrCatalogRepoFSInvalid
	}
	c := strings.TrimSpace(collection)
	if c == "" {
		return nil, errors.New("catalog_repository_fs: collection is empty")
	}
	return r.Client.Collection(c), nil
}

// List returns up to limit documents ordered by createdAt descending.
func (r *CatalogRepositoryFS) List(ctx context.Context, collection string, limit int) ([]catalogdom.Record, error) {
	col, err := r.col(collection)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = catalogdom.DefaultListLimit
	}

	it := col.OrderBy("createdAt", firestore.Desc).Limit(limit).Documents(ctx)
	defer it.Stop()

	out := []catalogdom.Record{}
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		out = append(out, catalogdom.Record{ID: snap.Ref.ID, Fields: snap.Data()})
	}
	return out, nil
}

// Get returns catalog.ErrNotFound when the document is missing.
func (r *CatalogRepositoryFS) Get(ctx context.Context, collection, id string) (catalogdom.Record, error) {
	col, err := r.col(collection)
	if err != nil {
		return catalogdom.Record{}, err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return catalogdom.Record{}, catalogdom.ErrNotFound
	}

	snap, err := col.Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return catalogdom.Record{}, catalogdom.ErrNotFound
		}
		return catalogdom.Record{}, err
	}
	return catalogdom.Record{ID: snap.Ref.ID, Fields: snap.Data()}, nil
}

func (r *CatalogRepositoryFS) Create(ctx context.Context, collection string, fields map[string]any) (string, error) {
	col, err := r.col(collection)
	if err != nil {
		return "", err
	}
	ref := col.NewDoc()
	if _, err := ref.Set(ctx, withoutID(fields)); err != nil {
		return "", err
	}
	return ref.ID, nil
}

// Update overwrites the given top-level fields of an existing document.
// Nil values are sent as firestore.Delete.
func (r *CatalogRepositoryFS) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	col, err := r.col(collection)
	if err != nil {
		return err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return catalogdom.ErrNotFound
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	ups := make([]firestore.Update, 0, len(keys))
	for _, k := range keys {
		v := fields[k]
		switch {
		case v == nil:
			ups = append(ups, firestore.Update{Path: k, Value: firestore.Delete})
		case k == "id" || k == "objectId":
		default:
			ups = append(ups, firestore.Update{Path: k, Value: v})
		}
	}
	if len(ups) == 0 {
		return nil
	}

	if _, err := col.Doc(id).Update(ctx, ups); err != nil {
		if status.Code(err) == codes.NotFound {
			return catalogdom.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *CatalogRepositoryFS) Delete(ctx context.Context, collection, id string) error {
	col, err := r.col(collection)
	if err != nil {
		return err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return catalogdom.ErrNotFound
	}
	_, err = col.Doc(id).Delete(ctx)
	return err
}

// withoutID drops keys that belong to the document key, never the body.
func withoutID(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if k == "id" || k == "objectId" {
			continue
		}
		out[k] = v
	}
	return out
}
