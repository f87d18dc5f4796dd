// internal/domain/catalog/entity.go
package catalog

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound    = errors.New("catalog: not found")
	ErrMissingID   = errors.New("catalog: record has no id")
	ErrUnknownKind = errors.New("catalog: unknown kind")
)

// Kind is one of the three catalog families shown on the site.
type Kind string

const (
	KindBlog  Kind = "blog"
	KindWorks Kind = "works"
	KindShop  Kind = "shop"
)

// Kinds lists every kind in home page order.
var Kinds = []Kind{KindWorks, KindBlog, KindShop}

// ParseKind accepts the page names used in URLs ("blog", "works", "shop").
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindBlog:
		return KindBlog, nil
	case KindWorks:
		return KindWorks, nil
	case KindShop:
		return KindShop, nil
	}
	return "", ErrUnknownKind
}

// Collection is the document database collection backing the kind.
func (k Kind) Collection() string {
	switch k {
	case KindBlog:
		return "blog"
	case KindWorks:
		return "works"
	case KindShop:
		return "products"
	}
	return ""
}

func (k Kind) Valid() bool {
	return k.Collection() != ""
}

// Item is a product, work or blog post after normalization.
type Item struct {
	ID   string `json:"id"`
	Kind Kind   `json:"kind"`

	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content,omitempty"`
	Excerpt     string `json:"excerpt,omitempty"`
	Details     string `json:"details,omitempty"`

	// Price is only meaningful for shop items. Invalid when absent or non-numeric.
	Price decimal.NullDecimal `json:"price"`

	ImageURL string            `json:"imageUrl,omitempty"`
	ModelURL string            `json:"modelUrl,omitempty"`
	Gallery  []string          `json:"gallery,omitempty"`
	Specs    map[string]string `json:"specs,omitempty"`
	Category string            `json:"category,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HasPrice reports whether the item carries a usable, non-negative price.
func (it Item) HasPrice() bool {
	return it.Price.Valid && !it.Price.Decimal.IsNegative()
}
