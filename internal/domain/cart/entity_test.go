package cart

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folio/internal/domain/catalog"
)

func price(v string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(v))
}

func product(id, p string) Snapshot {
	return Snapshot{ID: id, Name: "Product " + id, Price: price(p), ImageURL: "https://img/" + id}
}

func TestAddToCart_NewLine(t *testing.T) {
	lines, err := AddToCart(nil, product("P", "10"), DefaultVariant, 1)
	require.NoError(t, err)
	require.Len(t, lines, 1)

	l := lines[0]
	assert.Equal(t, "P", l.ItemID)
	assert.Equal(t, DefaultVariant, l.Variant)
	assert.Equal(t, 1, l.Quantity)
	assert.Equal(t, "Product P", l.Name)
	assert.Equal(t, "https://img/P", l.ImageURL)
}

func TestAddToCart_MergesSameVariant(t *testing.T) {
	p := product("P", "10")
	lines, err := AddToCart(nil, p, "default", 1)
	require.NoError(t, err)
	lines, err = AddToCart(lines, p, "default", 2)
	require.NoError(t, err)

	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
}

func TestAddToCart_DistinctVariantsAreDistinctLines(t *testing.T) {
	p := product("P", "10")
	lines, _ := AddToCart(nil, p, "white", 1)
	lines, _ = AddToCart(lines, p, "gray", 1)
	lines, _ = AddToCart(lines, p, "", 1)

	require.Len(t, lines, 3)
	assert.Equal(t, []string{"white", "gray", DefaultVariant}, []string{lines[0].Variant, lines[1].Variant, lines[2].Variant})
}

func TestAddToCart_DoesNotMutateInput(t *testing.T) {
	p := product("P", "10")
	first, _ := AddToCart(nil, p, DefaultVariant, 1)
	second, _ := AddToCart(first, p, DefaultVariant, 4)

	assert.Equal(t, 1, first[0].Quantity)
	assert.Equal(t, 5, second[0].Quantity)
}

func TestAddToCart_RejectsInvalidQuantity(t *testing.T) {
	for _, q := range []int{0, -1} {
		lines, err := AddToCart(nil, product("P", "10"), DefaultVariant, q)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
		assert.Empty(t, lines)
	}
	_, err := AddToCart(nil, Snapshot{Name: "no id"}, DefaultVariant, 1)
	assert.ErrorIs(t, err, ErrInvalidItem)
}

func TestAddToCart_QuantityIsCapped(t *testing.T) {
	p := product("P", "10")

	_, err := AddToCart(nil, p, DefaultVariant, math.MaxInt)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	lines, err := AddToCart(nil, p, DefaultVariant, MaxQuantity)
	require.NoError(t, err)

	got, err := AddToCart(lines, p, DefaultVariant, 1)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.Equal(t, lines, got)
	assert.Equal(t, MaxQuantity, ItemCount(got))

	lines, err = AddToCart(nil, p, DefaultVariant, MaxQuantity-1)
	require.NoError(t, err)
	lines, err = AddToCart(lines, p, DefaultVariant, 1)
	require.NoError(t, err)
	assert.Equal(t, MaxQuantity, lines[0].Quantity)
}

func TestUpdateQuantity_CapsAtMax(t *testing.T) {
	lines, _ := AddToCart(nil, product("A", "10"), DefaultVariant, 2)

	got := UpdateQuantity(lines, "A", DefaultVariant, math.MaxInt)
	assert.Equal(t, MaxQuantity, got[0].Quantity)
}

func TestUpdateQuantity(t *testing.T) {
	lines, _ := AddToCart(nil, product("A", "10"), DefaultVariant, 2)
	lines, _ = AddToCart(lines, product("B", "5"), DefaultVariant, 1)

	updated := UpdateQuantity(lines, "A", DefaultVariant, 7)
	assert.Equal(t, 7, updated[0].Quantity)
	assert.Equal(t, 2, lines[0].Quantity, "input untouched")

	removed := UpdateQuantity(lines, "A", DefaultVariant, 0)
	require.Len(t, removed, 1)
	assert.Equal(t, "B", removed[0].ItemID)

	negative := UpdateQuantity(lines, "B", DefaultVariant, -3)
	require.Len(t, negative, 1)
	assert.Equal(t, "A", negative[0].ItemID)
}

func TestUpdateQuantity_UnknownIsNoOp(t *testing.T) {
	lines, _ := AddToCart(nil, product("A", "10"), DefaultVariant, 2)

	got := UpdateQuantity(lines, "missing", "v", 5)
	assert.Equal(t, lines, got)
	assert.Same(t, &lines[0], &got[0], "same backing array is returned")

	got = UpdateQuantity(lines, "A", "other-variant", 5)
	assert.Equal(t, lines, got)
}

func TestRemoveLine(t *testing.T) {
	lines, _ := AddToCart(nil, product("A", "10"), "white", 1)
	lines, _ = AddToCart(lines, product("A", "10"), DefaultVariant, 1)

	got := RemoveLine(lines, "A", "white")
	require.Len(t, got, 1)
	assert.Equal(t, DefaultVariant, got[0].Variant)
	assert.Len(t, lines, 2)

	assert.Equal(t, lines, RemoveLine(lines, "Z", DefaultVariant))
}

func TestTotal(t *testing.T) {
	total, warnings := Total(nil)
	assert.True(t, total.IsZero())
	assert.Empty(t, warnings)

	lines := []Line{
		{ItemID: "a", Variant: DefaultVariant, Price: price("10"), Quantity: 2},
		{ItemID: "b", Variant: DefaultVariant, Price: price("5"), Quantity: 1},
	}
	total, warnings = Total(lines)
	assert.Equal(t, "25", total.String())
	assert.Empty(t, warnings)
}

func TestTotal_InvalidPriceCountsAsZeroAndWarns(t *testing.T) {
	lines := []Line{
		{ItemID: "a", Variant: DefaultVariant, Price: price("10"), Quantity: 2},
		{ItemID: "b", Variant: DefaultVariant, Quantity: 3},
		{ItemID: "c", Variant: "white", Price: price("-4"), Quantity: 1},
	}
	total, warnings := Total(lines)
	assert.Equal(t, "20", total.String())
	require.Len(t, warnings, 2)
	assert.Equal(t, "b", warnings[0].ItemID)
	assert.Equal(t, "missing price", warnings[0].Reason)
	assert.Equal(t, "c/white: negative price", warnings[1].String())
}

func TestTotal_DecimalPrecision(t *testing.T) {
	lines := []Line{{ItemID: "a", Variant: DefaultVariant, Price: price("0.1"), Quantity: 3}}
	total, _ := Total(lines)
	assert.Equal(t, "0.3", total.String())
}

func TestItemCount(t *testing.T) {
	assert.Equal(t, 0, ItemCount(nil))
	assert.Equal(t, 5, ItemCount([]Line{{Quantity: 2}, {Quantity: 3}}))
}

func TestSnapshotOf(t *testing.T) {
	it := catalog.Item{ID: "p", Title: "Lamp", Price: price("12.5"), ImageURL: "u"}
	s := SnapshotOf(it)
	assert.Equal(t, "p", s.ID)
	assert.Equal(t, "Lamp", s.Name)
	assert.Equal(t, "u", s.ImageURL)
	assert.True(t, s.Price.Decimal.Equal(decimal.RequireFromString("12.5")))
}

func TestCart_Replace(t *testing.T) {
	now := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	c, err := NewCart("sid", now)
	require.NoError(t, err)
	assert.Equal(t, now.Add(DefaultCartTTL), c.ExpiresAt)

	later := now.Add(time.Hour)
	lines, _ := AddToCart(nil, product("A", "1"), DefaultVariant, 1)
	require.NoError(t, c.Replace(lines, later))
	assert.Equal(t, later, c.UpdatedAt)
	assert.Equal(t, later.Add(DefaultCartTTL), c.ExpiresAt)

	bad := []Line{{ItemID: "A", Variant: DefaultVariant, Quantity: 0}}
	assert.ErrorIs(t, c.Replace(bad, later), ErrInvalidCart)

	_, err = NewCart(" ", now)
	assert.ErrorIs(t, err, ErrInvalidCart)
}
