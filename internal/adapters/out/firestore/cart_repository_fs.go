// internal/adapters/out/firestore/cart_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	cartdom "folio/internal/domain/cart"
)

// CartRepositoryFS implements cart.Repository using Firestore.
//
// Collection design:
// - collection: carts
// - docId: session id (docId is the source of truth)
// - fields: lines(array), createdAt, updatedAt, expiresAt
//
// TTL:
// - Configure Firestore TTL on "expiresAt".
type CartRepositoryFS struct {
	Client *firestore.Client
}

func NewCartRepositoryFS(client *firestore.Client) *CartRepositoryFS {
	return &CartRepositoryFS{Client: client}
}

func (r *CartRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("carts")
}

// GetByID returns (nil, nil) if not found (nil policy).
func (r *CartRepositoryFS) GetByID(ctx context.Context, id string) (*cartdom.Cart, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("cart_repository_fs: firestore client is nil")
	}

	sid := strings.TrimSpace(id)
	if sid == "" {
		return nil, errors.New("cart_repository_fs: id is empty")
	}

	snap, err := r.col().Doc(sid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}

	c := cartFromData(snap.Data())
	c.ID = sid
	return c, nil
}

// Upsert saves cart by docId=cart.ID.
func (r *CartRepositoryFS) Upsert(ctx context.Context, c *cartdom.Cart) error {
	if r == nil || r.Client == nil {
		return errors.New("cart_repository_fs: firestore client is nil")
	}
	if c == nil {
		return errors.New("cart_repository_fs: cart is nil")
	}

	sid := strings.TrimSpace(c.ID)
	if sid == "" {
		return errors.New("cart_repository_fs: Upsert requires cart.ID as docId")
	}

	// Overwrite full doc (simple & predictable).
	_, err := r.col().Doc(sid).Set(ctx, cartDocFromDomain(c))
	return err
}

func (r *CartRepositoryFS) DeleteByID(ctx context.Context, id string) error {
	if r == nil || r.Client == nil {
		return errors.New("cart_repository_fs: firestore client is nil")
	}

	sid := strings.TrimSpace(id)
	if sid == "" {
		return errors.New("cart_repository_fs: id is empty")
	}

	_, err := r.col().Doc(sid).Delete(ctx)
	return err
}

// -----------------------------------------
// Firestore DTO
// -----------------------------------------

type cartDoc struct {
	Lines []cartLineDoc `firestore:"lines"`

	CreatedAt time.Time `firestore:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt"`
	ExpiresAt time.Time `firestore:"expiresAt"`
}

type cartLineDoc struct {
	ItemID   string `firestore:"itemId"`
	Variant  string `firestore:"variant"`
	Quantity int    `firestore:"quantity"`
	Name     string `firestore:"name"`
	// Price is a decimal string; empty when the item had no usable price.
	Price    string `firestore:"price"`
	ImageURL string `firestore:"imageUrl,omitempty"`
}

func cartDocFromDomain(c *cartdom.Cart) cartDoc {
	lines := make([]cartLineDoc, 0, len(c.Lines))
	for _, l := range c.Lines {
		price := ""
		if l.Price.Valid {
			price = l.Price.Decimal.String()
		}
		lines = append(lines, cartLineDoc{
			ItemID:   l.ItemID,
			Variant:  l.Variant,
			Quantity: l.Quantity,
			Name:     l.Name,
			Price:    price,
			ImageURL: l.ImageURL,
		})
	}
	return cartDoc{
		Lines:     lines,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		ExpiresAt: c.ExpiresAt,
	}
}

// cartFromData parses document data leniently: malformed lines
// (no item id, quantity < 1) are dropped and duplicate keys merged.
func cartFromData(raw map[string]any) *cartdom.Cart {
	c := &cartdom.Cart{Lines: []cartdom.Line{}}
	if raw == nil {
		return c
	}
	if t, ok := asTime(raw["createdAt"]); ok {
		c.CreatedAt = t
	}
	if t, ok := asTime(raw["updatedAt"]); ok {
		c.UpdatedAt = t
	}
	if t, ok := asTime(raw["expiresAt"]); ok {
		c.ExpiresAt = t
	}

	arr, _ := raw["lines"].([]any)
	for _, v := range arr {
		m, ok := v.(map[string]any)
		if !ok {
			continue
		}
		id := strings.TrimSpace(asString(m["itemId"]))
		qty := asInt(m["quantity"])
		if id == "" || qty < 1 {
			continue
		}
		qty = min(qty, cartdom.MaxQuantity)
		variant := strings.TrimSpace(asString(m["variant"]))
		if variant == "" {
			variant = cartdom.DefaultVariant
		}

		merged := false
		for i := range c.Lines {
			if c.Lines[i].ItemID == id && c.Lines[i].Variant == variant {
				c.Lines[i].Quantity = min(c.Lines[i].Quantity+qty, cartdom.MaxQuantity)
				merged = true
				break
			}
		}
		if merged {
			continue
		}
		c.Lines = append(c.Lines, cartdom.Line{
			ItemID:   id,
			Variant:  variant,
			Quantity: qty,
			Name:     asString(m["name"]),
			Price:    asDecimal(m["price"]),
			ImageURL: asString(m["imageUrl"]),
		})
	}
	return c
}
