// internal/domain/catalog/record.go
package catalog

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Field names written by older clients.
const (
	legacyDataKey  = "objectData"
	legacyIDKey    = "objectId"
	legacyImageKey = "image"
	idKey          = "id"
)

// Record is a raw document as returned by the document database.
// Fields may be flat or nested under objectData (legacy shape).
type Record struct {
	ID     string
	Fields map[string]any
}

// Normalize flattens the legacy nested shape into a single canonical record.
//
//   - {objectId, objectData:{...}} becomes {ID: objectId, ...objectData}
//   - id / objectId keys are lifted into Record.ID; the document key wins
//   - "image" is aliased to "imageUrl" when the latter is missing
//
// Normalize(Normalize(r)) equals Normalize(r).
func Normalize(r Record) Record {
	fields := copyFields(r.Fields)
	id := strings.TrimSpace(r.ID)

	for {
		nested, ok := fields[legacyDataKey].(map[string]any)
		if !ok {
			delete(fields, legacyDataKey)
			break
		}
		if id == "" {
			id = stringField(fields, legacyIDKey)
		}
		outer := fields
		fields = copyFields(nested)
		// keep outer timestamps when the nested object lacks them
		for _, k := range []string{"createdAt", "updatedAt"} {
			if _, has := fields[k]; !has {
				if v, ok := outer[k]; ok {
					fields[k] = v
				}
			}
		}
	}

	if id == "" {
		id = stringField(fields, idKey)
	}
	if id == "" {
		id = stringField(fields, legacyIDKey)
	}
	delete(fields, idKey)
	delete(fields, legacyIDKey)

	if _, ok := fields["imageUrl"]; !ok {
		if v, ok := fields[legacyImageKey]; ok {
			fields["imageUrl"] = v
		}
	}
	delete(fields, legacyImageKey)

	return Record{ID: id, Fields: fields}
}

// Decode turns a record into an Item of the given kind. The record is
// normalized first, so callers may pass raw records directly.
func Decode(kind Kind, r Record) (Item, error) {
	if !kind.Valid() {
		return Item{}, ErrUnknownKind
	}
	n := Normalize(r)
	if n.ID == "" {
		return Item{}, ErrMissingID
	}
	f := n.Fields

	it := Item{
		ID:          n.ID,
		Kind:        kind,
		Title:       firstString(f, "title", "name"),
		Description: firstString(f, "description"),
		Content:     firstString(f, "content"),
		Excerpt:     firstString(f, "excerpt"),
		Details:     detailsField(f["details"]),
		ImageURL:    firstString(f, "imageUrl"),
		ModelURL:    firstString(f, "modelUrl"),
		Gallery:     stringSlice(f["gallery"]),
		Specs:       stringMap(f["specs"]),
		Category:    firstString(f, "category"),
		CreatedAt:   timeField(f["createdAt"]),
		UpdatedAt:   timeField(f["updatedAt"]),
	}
	if it.Description == "" && kind == KindBlog {
		it.Description = firstString(f, "excerpt", "content")
	}
	if v, ok := f["price"]; ok {
		it.Price = priceField(v)
	}
	return it, nil
}

// editableKeys are the body fields owned by the admin editor.
var editableKeys = []string{
	"title", "name", "description", "content", "excerpt", "details",
	"imageUrl", "modelUrl", "category", "gallery", "specs", "price",
}

// Fields renders an item back into the flat record shape stored by the
// document database. Empty values are left out.
// Normalize(Record{ID, item.Fields()}) is a no-op.
func (it Item) Fields() map[string]any {
	f := map[string]any{}
	if it.Kind == KindShop {
		f["name"] = it.Title
	} else {
		f["title"] = it.Title
	}
	putString(f, "description", it.Description)
	putString(f, "content", it.Content)
	putString(f, "excerpt", it.Excerpt)
	putString(f, "details", it.Details)
	putString(f, "imageUrl", it.ImageURL)
	putString(f, "modelUrl", it.ModelURL)
	putString(f, "category", it.Category)
	if len(it.Gallery) > 0 {
		g := make([]any, 0, len(it.Gallery))
		for _, u := range it.Gallery {
			g = append(g, u)
		}
		f["gallery"] = g
	}
	if len(it.Specs) > 0 {
		s := make(map[string]any, len(it.Specs))
		for k, v := range it.Specs {
			s[k] = v
		}
		f["specs"] = s
	}
	if it.Price.Valid {
		f["price"] = it.Price.Decimal.InexactFloat64()
	}
	if !it.CreatedAt.IsZero() {
		f["createdAt"] = it.CreatedAt
	}
	if !it.UpdatedAt.IsZero() {
		f["updatedAt"] = it.UpdatedAt
	}
	return f
}

// UpdateFields is Fields plus a nil entry for every editable key the item
// leaves empty and for the legacy keys (objectData, objectId, id, image).
// Repository.Update removes fields whose value is nil, so the stored
// document ends up flat and matching the item.
func (it Item) UpdateFields() map[string]any {
	f := it.Fields()
	for _, k := range editableKeys {
		if _, ok := f[k]; !ok {
			f[k] = nil
		}
	}
	for _, k := range []string{legacyDataKey, legacyIDKey, idKey, legacyImageKey} {
		f[k] = nil
	}
	return f
}

// ----------------------------
// Helpers
// ----------------------------

func copyFields(src map[string]any) map[string]any {
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

func putString(m map[string]any, key, v string) {
	if strings.TrimSpace(v) != "" {
		m[key] = v
	}
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return strings.TrimSpace(s)
}

func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := stringField(m, k); s != "" {
			return s
		}
	}
	return ""
}

func stringSlice(v any) []string {
	var out []string
	switch t := v.(type) {
	case []string:
		for _, s := range t {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	case []any:
		for _, e := range t {
			if s, ok := e.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
	}
	return out
}

func stringMap(v any) map[string]string {
	var out map[string]string
	switch t := v.(type) {
	case map[string]string:
		out = make(map[string]string, len(t))
		for k, s := range t {
			out[k] = s
		}
	case map[string]any:
		out = make(map[string]string, len(t))
		for k, e := range t {
			out[k] = fmt.Sprint(e)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// detailsField accepts the free-text form written by the editor and the
// map form used by seeded works ({dimensions, materials, year}).
func detailsField(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case map[string]any:
		m := stringMap(t)
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+": "+m[k])
		}
		return strings.Join(parts, "\n")
	}
	return ""
}

func timeField(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t.UTC()
	case *time.Time:
		if t != nil {
			return t.UTC()
		}
	case string:
		if tt, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(t)); err == nil {
			return tt.UTC()
		}
	case int64:
		return time.UnixMilli(t).UTC()
	case float64:
		return time.UnixMilli(int64(t)).UTC()
	}
	return time.Time{}
}

func priceField(v any) decimal.NullDecimal {
	switch t := v.(type) {
	case float64:
		return decimal.NewNullDecimal(decimal.NewFromFloat(t))
	case float32:
		return decimal.NewNullDecimal(decimal.NewFromFloat32(t))
	case int:
		return decimal.NewNullDecimal(decimal.NewFromInt(int64(t)))
	case int64:
		return decimal.NewNullDecimal(decimal.NewFromInt(t))
	case json.Number:
		if d, err := decimal.NewFromString(t.String()); err == nil {
			return decimal.NewNullDecimal(d)
		}
	case string:
		s := strings.TrimPrefix(strings.TrimSpace(t), "$")
		if _, err := strconv.ParseFloat(s, 64); err == nil {
			if d, err := decimal.NewFromString(s); err == nil {
				return decimal.NewNullDecimal(d)
			}
		}
	case decimal.Decimal:
		return decimal.NewNullDecimal(t)
	}
	return decimal.NullDecimal{}
}
