// internal/adapters/out/firestore/category_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	catalogdom "folio/internal/domain/catalog"
)

// CategoryRepositoryFS implements catalog.CategoryRepository (collection: categories).
type CategoryRepositoryFS struct {
	Client *firestore.Client
}

func NewCategoryRepositoryFS(client *firestore.Client) *CategoryRepositoryFS {
	return &CategoryRepositoryFS{Client: client}
}

func (r *CategoryRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("categories")
}

type categoryDoc struct {
	Name      string    `firestore:"name"`
	Slug      string    `firestore:"slug"`
	CreatedAt time.Time `firestore:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt"`
}

// ListCategories returns categories ordered by name.
func (r *CategoryRepositoryFS) ListCategories(ctx context.Context) ([]catalogdom.Category, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("category_repository_fs: firestore client is nil")
	}

	it := r.col().OrderBy("name", firestore.Asc).Documents(ctx)
	defer it.Stop()

	out := []catalogdom.Category{}
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var d categoryDoc
		if err := snap.DataTo(&d); err != nil {
			return nil, err
		}
		out = append(out, catalogdom.Category{
			ID:        snap.Ref.ID,
			Name:      d.Name,
			Slug:      d.Slug,
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		})
	}
	return out, nil
}

func (r *CategoryRepositoryFS) CreateCategory(ctx context.Context, c catalogdom.Category) (catalogdom.Category, error) {
	if r == nil || r.Client == nil {
		return catalogdom.Category{}, errors.New("category_repository_fs: firestore client is nil")
	}
	if strings.TrimSpace(c.Name) == "" {
		return catalogdom.Category{}, catalogdom.ErrCategoryRequired
	}

	now := time.Now().UTC()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = c.CreatedAt
	}
	if c.Slug == "" {
		c.Slug = catalogdom.Slugify(c.Name)
	}

	ref := r.col().NewDoc()
	if _, err := ref.Set(ctx, categoryDoc{Name: c.Name, Slug: c.Slug, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}); err != nil {
		return catalogdom.Category{}, err
	}
	c.ID = ref.ID
	return c, nil
}
