package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	cartdom "folio/internal/domain/cart"
	catalogdom "folio/internal/domain/catalog"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// fakeCatalogRepo serves records per collection. listFn, when set, replaces List.
type fakeCatalogRepo struct {
	mu      sync.Mutex
	records map[string][]catalogdom.Record
	listErr error
	listFn  func(ctx context.Context, collection string) ([]catalogdom.Record, error)
	nextID  int
	writes  int
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{records: map[string][]catalogdom.Record{}}
}

func (r *fakeCatalogRepo) List(ctx context.Context, collection string, limit int) ([]catalogdom.Record, error) {
	if r.listFn != nil {
		return r.listFn(ctx, collection)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	recs := r.records[collection]
	if len(recs) > limit {
		recs = recs[:limit]
	}
	return append([]catalogdom.Record(nil), recs...), nil
}

func (r *fakeCatalogRepo) Get(_ context.Context, collection, id string) (catalogdom.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.records[collection] {
		if catalogdom.Normalize(rec).ID == id {
			return rec, nil
		}
	}
	return catalogdom.Record{}, catalogdom.ErrNotFound
}

func (r *fakeCatalogRepo) Create(_ context.Context, collection string, fields map[string]any) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.writes++
	id := fmt.Sprintf("gen-%d", r.nextID)
	r.records[collection] = append([]catalogdom.Record{{ID: id, Fields: fields}}, r.records[collection]...)
	return id, nil
}

func (r *fakeCatalogRepo) Update(_ context.Context, collection, id string, fields map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, rec := range r.records[collection] {
		if rec.ID == id {
			merged := map[string]any{}
			for k, v := range rec.Fields {
				merged[k] = v
			}
			for k, v := range fields {
				if v == nil {
					delete(merged, k)
					continue
				}
				merged[k] = v
			}
			r.records[collection][i].Fields = merged
			r.writes++
			return nil
		}
	}
	return catalogdom.ErrNotFound
}

func (r *fakeCatalogRepo) Delete(_ context.Context, collection, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	recs := r.records[collection]
	for i, rec := range recs {
		if rec.ID == id {
			r.records[collection] = append(recs[:i:i], recs[i+1:]...)
			r.writes++
			return nil
		}
	}
	return catalogdom.ErrNotFound
}

func (r *fakeCatalogRepo) put(collection string, recs ...catalogdom.Record) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[collection] = append(r.records[collection], recs...)
}

type fakeCategoryRepo struct {
	cats []catalogdom.Category
}

func (r *fakeCategoryRepo) ListCategories(context.Context) ([]catalogdom.Category, error) {
	return append([]catalogdom.Category(nil), r.cats...), nil
}

func (r *fakeCategoryRepo) CreateCategory(_ context.Context, c catalogdom.Category) (catalogdom.Category, error) {
	c.ID = fmt.Sprintf("cat-%d", len(r.cats)+1)
	r.cats = append(r.cats, c)
	return c, nil
}

type fakeCartRepo struct {
	mu    sync.Mutex
	carts map[string]cartdom.Cart
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: map[string]cartdom.Cart{}}
}

func (r *fakeCartRepo) GetByID(_ context.Context, id string) (*cartdom.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.carts[id]
	if !ok {
		return nil, nil
	}
	c.Lines = append([]cartdom.Line(nil), c.Lines...)
	return &c, nil
}

func (r *fakeCartRepo) Upsert(_ context.Context, c *cartdom.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	cp.Lines = append([]cartdom.Line(nil), c.Lines...)
	r.carts[c.ID] = cp
	return nil
}

func (r *fakeCartRepo) DeleteByID(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, id)
	return nil
}

func product(id, name, category string, price any) catalogdom.Record {
	return catalogdom.Record{ID: id, Fields: map[string]any{
		"name":        name,
		"description": name + " description",
		"category":    category,
		"price":       price,
	}}
}
