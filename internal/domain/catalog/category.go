// internal/domain/catalog/category.go
package catalog

import (
	"errors"
	"strings"
	"time"
)

var ErrCategoryRequired = errors.New("catalog: select or create a category")

// Category is a named grouping used by works and products.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewCategory builds a category with its slug derived from name.
func NewCategory(name string, now time.Time) (Category, error) {
	n := strings.TrimSpace(name)
	if n == "" {
		return Category{}, ErrCategoryRequired
	}
	return Category{
		Name:      n,
		Slug:      Slugify(n),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Slugify lower-cases name and joins its words with "-".
func Slugify(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}

// ResolveCategory implements the select-or-create control of the editors.
// When createNew is set, newName is used and reported as created if it is
// not already in existing; otherwise selected must be non-empty.
func ResolveCategory(existing []string, selected, newName string, createNew bool) (string, bool, error) {
	if !createNew {
		s := strings.TrimSpace(selected)
		if s == "" {
			return "", false, ErrCategoryRequired
		}
		return s, false, nil
	}

	n := strings.TrimSpace(newName)
	if n == "" {
		return "", false, ErrCategoryRequired
	}
	for _, e := range existing {
		if strings.EqualFold(strings.TrimSpace(e), n) {
			return strings.TrimSpace(e), false, nil
		}
	}
	return n, true, nil
}
