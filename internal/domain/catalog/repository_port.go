// internal/domain/catalog/repository_port.go
package catalog

import "context"

// DefaultListLimit caps a single collection listing.
const DefaultListLimit = 100

// Repository is the document database port.
//
// Collections: blog, works, products.
// List returns records ordered by createdAt descending.
// Create and Update stamp createdAt / updatedAt on the server side.
// Get returns ErrNotFound when the document is missing.
// Update merges fields into an existing document; a nil value removes the field.
type Repository interface {
	List(ctx context.Context, collection string, limit int) ([]Record, error)
	Get(ctx context.Context, collection, id string) (Record, error)
	Create(ctx context.Context, collection string, fields map[string]any) (string, error)
	Update(ctx context.Context, collection, id string, fields map[string]any) error
	Delete(ctx context.Context, collection, id string) error
}

// CategoryRepository stores the shared category list (collection: categories).
type CategoryRepository interface {
	ListCategories(ctx context.Context) ([]Category, error)
	CreateCategory(ctx context.Context, c Category) (Category, error)
}
