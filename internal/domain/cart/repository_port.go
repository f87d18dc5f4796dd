// internal/domain/cart/repository_port.go
package cart

import "context"

// Repository is a persistence port for session carts.
//
// The default implementation keeps carts in process memory, so a cart lives
// as long as the session cookie and the process. The Firestore implementation
// stores one document per session (collection: carts, docId: session id) and
// relies on a TTL policy on expiresAt.
type Repository interface {
	// GetByID returns (nil, nil) when the session has no cart yet.
	GetByID(ctx context.Context, id string) (*Cart, error)

	// Upsert saves the cart (create or replace).
	Upsert(ctx context.Context, c *Cart) error

	// DeleteByID removes the cart; missing carts are not an error.
	DeleteByID(ctx context.Context, id string) error
}
