// internal/application/usecase/admin_usecase.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	catalogdom "folio/internal/domain/catalog"
)

var (
	ErrValidation           = errors.New("admin_usecase: validation failed")
	ErrAdminNotConfigured   = errors.New("admin_usecase: repository not configured")
	ErrAdminInvalidArgument = errors.New("admin_usecase: invalid argument")
)

// ValidationError names the first field that failed validation.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"error"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// ItemInput is the editor form payload shared by all kinds.
type ItemInput struct {
	Title       string            `json:"title"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Content     string            `json:"content"`
	Excerpt     string            `json:"excerpt"`
	Details     string            `json:"details"`
	Price       string            `json:"price"`
	ImageURL    string            `json:"imageUrl"`
	ModelURL    string            `json:"modelUrl"`
	Gallery     []string          `json:"gallery"`
	Specs       map[string]string `json:"specs"`

	// Category select-or-create control.
	Category       string `json:"category"`
	NewCategory    string `json:"newCategory"`
	CreateCategory bool   `json:"createCategory"`
}

// Invalidator drops cached catalog state after a write.
type Invalidator interface {
	Invalidate(kind catalogdom.Kind)
}

// AdminUsecase validates and writes catalog items and categories.
type AdminUsecase struct {
	repo       catalogdom.Repository
	categories catalogdom.CategoryRepository
	cache      Invalidator
	clock      Clock
	log        *zap.Logger
}

func NewAdminUsecase(repo catalogdom.Repository, categories catalogdom.CategoryRepository, cache Invalidator, log *zap.Logger) *AdminUsecase {
	return NewAdminUsecaseWithClock(repo, categories, cache, log, nil)
}

func NewAdminUsecaseWithClock(repo catalogdom.Repository, categories catalogdom.CategoryRepository, cache Invalidator, log *zap.Logger, clock Clock) *AdminUsecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &AdminUsecase{
		repo:       repo,
		categories: categories,
		cache:      cache,
		clock:      clockOrSystem(clock),
		log:        log.Named("admin_usecase"),
	}
}

// -----------------------
// Items
// -----------------------

// Create validates in and stores a new item of kind.
func (u *AdminUsecase) Create(ctx context.Context, kind catalogdom.Kind, in ItemInput) (catalogdom.Item, error) {
	if u.repo == nil {
		return catalogdom.Item{}, ErrAdminNotConfigured
	}
	it, err := u.build(ctx, kind, in)
	if err != nil {
		return catalogdom.Item{}, err
	}

	now := u.clock.Now()
	it.CreatedAt = now
	it.UpdatedAt = now

	id, err := u.repo.Create(ctx, kind.Collection(), it.Fields())
	if err != nil {
		return catalogdom.Item{}, err
	}
	it.ID = id
	u.invalidate(kind)
	u.log.Info("item created", zap.String("kind", string(kind)), zap.String("id", id))
	return it, nil
}

// Update validates in and overwrites the editable fields of an item.
// Cleared fields and legacy objectData wrappers are removed from the stored
// document. createdAt is preserved.
func (u *AdminUsecase) Update(ctx context.Context, kind catalogdom.Kind, id string, in ItemInput) (catalogdom.Item, error) {
	if u.repo == nil {
		return catalogdom.Item{}, ErrAdminNotConfigured
	}
	if !kind.Valid() {
		return catalogdom.Item{}, catalogdom.ErrUnknownKind
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return catalogdom.Item{}, ErrAdminInvalidArgument
	}
	cur, err := u.repo.Get(ctx, kind.Collection(), id)
	if err != nil {
		return catalogdom.Item{}, err
	}
	it, err := u.build(ctx, kind, in)
	if err != nil {
		return catalogdom.Item{}, err
	}
	it.ID = id
	if prev, err := catalogdom.Decode(kind, cur); err == nil {
		it.CreatedAt = prev.CreatedAt
	}
	it.UpdatedAt = u.clock.Now()

	if err := u.repo.Update(ctx, kind.Collection(), id, it.UpdateFields()); err != nil {
		return catalogdom.Item{}, err
	}
	u.invalidate(kind)
	u.log.Info("item updated", zap.String("kind", string(kind)), zap.String("id", id))
	return it, nil
}

// Delete removes an item.
func (u *AdminUsecase) Delete(ctx context.Context, kind catalogdom.Kind, id string) error {
	if u.repo == nil {
		return ErrAdminNotConfigured
	}
	if !kind.Valid() {
		return catalogdom.ErrUnknownKind
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrAdminInvalidArgument
	}
	if err := u.repo.Delete(ctx, kind.Collection(), id); err != nil {
		return err
	}
	u.invalidate(kind)
	u.log.Info("item deleted", zap.String("kind", string(kind)), zap.String("id", id))
	return nil
}

// -----------------------
// Categories
// -----------------------

func (u *AdminUsecase) ListCategories(ctx context.Context) ([]catalogdom.Category, error) {
	if u.categories == nil {
		return []catalogdom.Category{}, nil
	}
	return u.categories.ListCategories(ctx)
}

// AddCategory stores a new category; an existing name (case-insensitive) is returned as is.
func (u *AdminUsecase) AddCategory(ctx context.Context, name string) (catalogdom.Category, error) {
	if u.categories == nil {
		return catalogdom.Category{}, ErrAdminNotConfigured
	}
	c, err := catalogdom.NewCategory(name, u.clock.Now())
	if err != nil {
		return catalogdom.Category{}, invalid("category", err.Error())
	}
	existing, err := u.categories.ListCategories(ctx)
	if err != nil {
		return catalogdom.Category{}, err
	}
	for _, e := range existing {
		if strings.EqualFold(e.Name, c.Name) {
			return e, nil
		}
	}
	return u.categories.CreateCategory(ctx, c)
}

// -----------------------
// validation
// -----------------------

// build validates in for kind and returns the item to write. Nothing is
// written unless every field is valid; a newly created category is the only
// side effect and happens last.
func (u *AdminUsecase) build(ctx context.Context, kind catalogdom.Kind, in ItemInput) (catalogdom.Item, error) {
	it := catalogdom.Item{
		Kind:        kind,
		Description: strings.TrimSpace(in.Description),
		Content:     strings.TrimSpace(in.Content),
		Excerpt:     strings.TrimSpace(in.Excerpt),
		Details:     strings.TrimSpace(in.Details),
		ImageURL:    strings.TrimSpace(in.ImageURL),
		ModelURL:    strings.TrimSpace(in.ModelURL),
		Gallery:     nonEmpty(in.Gallery),
		Specs:       trimSpecs(in.Specs),
	}

	switch kind {
	case catalogdom.KindBlog:
		it.Title = strings.TrimSpace(in.Title)
		if it.Title == "" {
			return it, invalid("title", "title is required")
		}
		if it.Content == "" {
			return it, invalid("content", "content is required")
		}
		it.Category = strings.TrimSpace(in.Category)
		return it, nil

	case catalogdom.KindShop:
		it.Title = firstNonEmpty(in.Name, in.Title)
		if it.Title == "" {
			return it, invalid("name", "name is required")
		}
		if it.Description == "" {
			return it, invalid("description", "description is required")
		}
		price, err := parsePrice(in.Price)
		if err != nil {
			return it, err
		}
		it.Price = decimal.NewNullDecimal(price)
		it.Category = strings.TrimSpace(in.Category)
		return it, nil

	case catalogdom.KindWorks:
		it.Title = strings.TrimSpace(in.Title)
		if it.Title == "" {
			return it, invalid("title", "title is required")
		}
		if it.Description == "" {
			return it, invalid("description", "description is required")
		}
		if it.Details == "" {
			return it, invalid("details", "details are required")
		}
		cat, err := u.resolveCategory(ctx, in)
		if err != nil {
			return it, err
		}
		it.Category = cat
		return it, nil
	}
	return it, catalogdom.ErrUnknownKind
}

func (u *AdminUsecase) resolveCategory(ctx context.Context, in ItemInput) (string, error) {
	var names []string
	if in.CreateCategory && u.categories != nil {
		existing, err := u.categories.ListCategories(ctx)
		if err != nil {
			return "", err
		}
		for _, c := range existing {
			names = append(names, c.Name)
		}
	}

	cat, created, err := catalogdom.ResolveCategory(names, in.Category, in.NewCategory, in.CreateCategory)
	if err != nil {
		return "", invalid("category", "select or create a category")
	}
	if created && u.categories != nil {
		c, err := catalogdom.NewCategory(cat, u.clock.Now())
		if err != nil {
			return "", invalid("category", err.Error())
		}
		if _, err := u.categories.CreateCategory(ctx, c); err != nil {
			return "", err
		}
		u.log.Info("category created", zap.String("name", c.Name), zap.String("slug", c.Slug))
	}
	return cat, nil
}

func (u *AdminUsecase) invalidate(kind catalogdom.Kind) {
	if u.cache != nil {
		u.cache.Invalidate(kind)
	}
}

func parsePrice(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "$"))
	if s == "" {
		return decimal.Zero, invalid("price", "price is required")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, invalid("price", "price must be a number")
	}
	if d.IsNegative() {
		return decimal.Zero, invalid("price", "price must not be negative")
	}
	return d, nil
}

func nonEmpty(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func trimSpecs(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		out[k] = strings.TrimSpace(v)
	}
	return out
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
