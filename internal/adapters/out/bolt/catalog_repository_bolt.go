// internal/adapters/out/bolt/catalog_repository_bolt.go
package bolt

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	catalogdom "folio/internal/domain/catalog"
)

const categoriesBucket = "categories"

// CatalogRepository implements catalog.Repository and
// catalog.CategoryRepository on top of a Store.
type CatalogRepository struct {
	store *Store
	now   func() time.Time
}

func NewCatalogRepository(store *Store) *CatalogRepository {
	return &CatalogRepository{store: store, now: func() time.Time { return time.Now().UTC() }}
}

// List returns up to limit documents ordered by createdAt descending.
// Documents without createdAt sort last, by id.
func (r *CatalogRepository) List(ctx context.Context, collection string, limit int) ([]catalogdom.Record, error) {
	if limit <= 0 {
		limit = catalogdom.DefaultListLimit
	}
	out := []catalogdom.Record{}
	err := r.store.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(collection))
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fields, err := decodeFields(v)
			if err != nil {
				return err
			}
			out = append(out, catalogdom.Record{ID: string(k), Fields: fields})
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(out, func(i, j int) bool {
		ti, tj := createdAt(out[i]), createdAt(out[j])
		if ti.Equal(tj) {
			return out[i].ID < out[j].ID
		}
		return ti.After(tj)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *CatalogRepository) Get(_ context.Context, collection, id string) (catalogdom.Record, error) {
	var rec catalogdom.Record
	err := r.store.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(collection))
		if b == nil {
			return catalogdom.ErrNotFound
		}
		v := b.Get([]byte(id))
		if v == nil {
			return catalogdom.ErrNotFound
		}
		fields, err := decodeFields(v)
		if err != nil {
			return err
		}
		rec = catalogdom.Record{ID: id, Fields: fields}
		return nil
	})
	return rec, err
}

// Create stores fields under a new id. createdAt/updatedAt default to now.
func (r *CatalogRepository) Create(_ context.Context, collection string, fields map[string]any) (string, error) {
	id := uuid.NewString()
	f := copyWithoutID(fields)
	now := r.now()
	if _, ok := f["createdAt"]; !ok {
		f["createdAt"] = now
	}
	if _, ok := f["updatedAt"]; !ok {
		f["updatedAt"] = now
	}
	return id, r.put(collection, id, f)
}

// Put writes a document under a caller-chosen id (seeding).
func (r *CatalogRepository) Put(_ context.Context, collection, id string, fields map[string]any) error {
	return r.put(collection, id, copyWithoutID(fields))
}

// Update merges fields into an existing document. Nil values delete the key.
func (r *CatalogRepository) Update(_ context.Context, collection, id string, fields map[string]any) error {
	return r.store.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(collection))
		if b == nil {
			return catalogdom.ErrNotFound
		}
		v := b.Get([]byte(id))
		if v == nil {
			return catalogdom.ErrNotFound
		}
		cur, err := decodeFields(v)
		if err != nil {
			return err
		}
		for k, val := range fields {
			switch {
			case val == nil:
				delete(cur, k)
			case k == "id" || k == "objectId":
			default:
				cur[k] = val
			}
		}
		if _, ok := fields["updatedAt"]; !ok {
			cur["updatedAt"] = r.now()
		}
		data, err := json.Marshal(cur)
		if err != nil {
			return err
		}
		return b.Put([]byte(id), data)
	})
}

func (r *CatalogRepository) Delete(_ context.Context, collection, id string) error {
	return r.store.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(collection))
		if b == nil {
			return nil
		}
		return b.Delete([]byte(id))
	})
}

// ----------------------------
// catalog.CategoryRepository
// ----------------------------

func (r *CatalogRepository) ListCategories(ctx context.Context) ([]catalogdom.Category, error) {
	recs, err := r.List(ctx, categoriesBucket, 1000)
	if err != nil {
		return nil, err
	}
	out := make([]catalogdom.Category, 0, len(recs))
	for _, rec := range recs {
		name, _ := rec.Fields["name"].(string)
		slug, _ := rec.Fields["slug"].(string)
		out = append(out, catalogdom.Category{
			ID:        rec.ID,
			Name:      name,
			Slug:      slug,
			CreatedAt: createdAt(rec),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name) })
	return out, nil
}

func (r *CatalogRepository) CreateCategory(ctx context.Context, c catalogdom.Category) (catalogdom.Category, error) {
	if strings.TrimSpace(c.Name) == "" {
		return catalogdom.Category{}, catalogdom.ErrCategoryRequired
	}
	if c.Slug == "" {
		c.Slug = catalogdom.Slugify(c.Name)
	}
	fields := map[string]any{"name": c.Name, "slug": c.Slug}
	if !c.CreatedAt.IsZero() {
		fields["createdAt"] = c.CreatedAt
		fields["updatedAt"] = c.CreatedAt
	}
	id, err := r.Create(ctx, categoriesBucket, fields)
	if err != nil {
		return catalogdom.Category{}, err
	}
	c.ID = id
	return c, nil
}

// ----------------------------
// helpers
// ----------------------------

func (r *CatalogRepository) put(collection, id string, fields map[string]any) error {
	data, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	return r.store.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(collection))
		if err != nil {
			return err
		}
		return b.Put([]byte(id), data)
	})
}

func decodeFields(v []byte) (map[string]any, error) {
	var m map[string]any
	if err := json.Unmarshal(v, &m); err != nil {
		return nil, err
	}
	if m == nil {
		m = map[string]any{}
	}
	return m, nil
}

func copyWithoutID(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if k == "id" || k == "objectId" {
			continue
		}
		out[k] = v
	}
	return out
}

func createdAt(r catalogdom.Record) time.Time {
	switch v := r.Fields["createdAt"].(type) {
	case string:
		if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
			return t
		}
	case time.Time:
		return v
	}
	return time.Time{}
}
