package catalog

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_Idempotent(t *testing.T) {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	cases := map[string]Record{
		"flat": {ID: "p1", Fields: map[string]any{
			"name": "Lamp", "description": "Warm light", "price": 12.5, "createdAt": created,
		}},
		"legacy nested": {ID: "", Fields: map[string]any{
			"objectId":   "w7",
			"objectData": map[string]any{"title": "Office", "category": "Office Design"},
			"createdAt":  created,
		}},
		"doubly nested": {ID: "b1", Fields: map[string]any{
			"objectData": map[string]any{
				"objectData": map[string]any{"title": "Deep"},
			},
		}},
		"image alias": {ID: "b2", Fields: map[string]any{"title": "Post", "image": "https://x/y.jpg"}},
		"id in fields": {ID: "", Fields: map[string]any{"id": "k9", "title": "Inline id"}},
		"empty":        {},
	}

	for name, r := range cases {
		t.Run(name, func(t *testing.T) {
			once := Normalize(r)
			twice := Normalize(once)
			if diff := cmp.Diff(once, twice); diff != "" {
				t.Fatalf("Normalize not idempotent (-once +twice):\n%s", diff)
			}
		})
	}
}

func TestNormalize_FlattensLegacyShape(t *testing.T) {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	r := Record{Fields: map[string]any{
		"objectId": "w7",
		"objectData": map[string]any{
			"title":    "Office",
			"id":       "nested-id",
			"category": "Office Design",
		},
		"createdAt": created,
	}}

	got := Normalize(r)

	assert.Equal(t, "w7", got.ID)
	assert.Equal(t, map[string]any{
		"title":     "Office",
		"category":  "Office Design",
		"createdAt": created,
	}, got.Fields)
}

func TestNormalize_DocumentKeyWins(t *testing.T) {
	got := Normalize(Record{ID: "doc", Fields: map[string]any{
		"objectData": map[string]any{"id": "other", "title": "T"},
	}})
	assert.Equal(t, "doc", got.ID)
	assert.NotContains(t, got.Fields, "id")
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	fields := map[string]any{"id": "a", "image": "u"}
	_ = Normalize(Record{Fields: fields})
	assert.Equal(t, map[string]any{"id": "a", "image": "u"}, fields)
}

func TestDecode_Product(t *testing.T) {
	it, err := Decode(KindShop, Record{ID: "p1", Fields: map[string]any{
		"name":        "Lamp",
		"description": "Warm light",
		"price":       12.5,
		"imageUrl":    "https://img/lamp.jpg",
		"category":    "interior",
		"gallery":     []any{"a", "", "b"},
		"specs":       map[string]any{"weight": "15 kg"},
	}})
	require.NoError(t, err)

	assert.Equal(t, "p1", it.ID)
	assert.Equal(t, KindShop, it.Kind)
	assert.Equal(t, "Lamp", it.Title)
	assert.True(t, it.HasPrice())
	assert.Equal(t, "12.5", it.Price.Decimal.String())
	assert.Equal(t, []string{"a", "b"}, it.Gallery)
	assert.Equal(t, map[string]string{"weight": "15 kg"}, it.Specs)
}

func TestDecode_NonNumericPriceIsInvalid(t *testing.T) {
	it, err := Decode(KindShop, Record{ID: "p2", Fields: map[string]any{"name": "X", "price": "call us"}})
	require.NoError(t, err)
	assert.False(t, it.Price.Valid)
	assert.False(t, it.HasPrice())
}

func TestDecode_BlogDescriptionFallsBack(t *testing.T) {
	it, err := Decode(KindBlog, Record{ID: "b", Fields: map[string]any{
		"title": "Hello", "content": "# Body", "excerpt": "Short",
	}})
	require.NoError(t, err)
	assert.Equal(t, "Short", it.Description)
	assert.Equal(t, "# Body", it.Content)
}

func TestDecode_WorkDetailsMap(t *testing.T) {
	it, err := Decode(KindWorks, Record{ID: "w", Fields: map[string]any{
		"title":   "Room",
		"details": map[string]any{"year": "2023", "dimensions": "5m x 4m"},
	}})
	require.NoError(t, err)
	assert.Equal(t, "dimensions: 5m x 4m\nyear: 2023", it.Details)
}

func TestDecode_Errors(t *testing.T) {
	_, err := Decode(KindShop, Record{Fields: map[string]any{"name": "no id"}})
	assert.ErrorIs(t, err, ErrMissingID)

	_, err = Decode(Kind("misc"), Record{ID: "x"})
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestItemFields_RoundTrip(t *testing.T) {
	in, err := Decode(KindShop, Record{ID: "p1", Fields: map[string]any{
		"name": "Lamp", "description": "Warm", "price": 10.0, "category": "interior",
	}})
	require.NoError(t, err)

	rec := Record{ID: in.ID, Fields: in.Fields()}
	assert.Equal(t, rec, Normalize(rec))

	out, err := Decode(KindShop, rec)
	require.NoError(t, err)
	if diff := cmp.Diff(in.Title, out.Title); diff != "" {
		t.Fatal(diff)
	}
	assert.True(t, in.Price.Decimal.Equal(out.Price.Decimal))
}

func TestItemUpdateFields_ClearsEmptyAndLegacyKeys(t *testing.T) {
	it := Item{ID: "w1", Kind: KindWorks, Title: "Chair", Description: "Oak", Details: "2023"}
	f := it.UpdateFields()

	assert.Equal(t, "Chair", f["title"])
	for _, k := range []string{"name", "category", "imageUrl", "modelUrl", "price", "gallery", "objectData", "objectId", "id", "image"} {
		v, ok := f[k]
		assert.True(t, ok, k)
		assert.Nil(t, v, k)
	}
	_, ok := f["createdAt"]
	assert.False(t, ok, "zero createdAt is left alone")
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind(" Shop ")
	require.NoError(t, err)
	assert.Equal(t, KindShop, k)
	assert.Equal(t, "products", k.Collection())

	_, err = ParseKind("admin")
	assert.ErrorIs(t, err, ErrUnknownKind)
}
