package firestore

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdom "folio/internal/domain/cart"
)

func TestCartFromData_Lenient(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	c := cartFromData(map[string]any{
		"createdAt": now,
		"updatedAt": now,
		"expiresAt": now.Add(cartdom.DefaultCartTTL),
		"lines": []any{
			map[string]any{"itemId": "1", "variant": "", "quantity": int64(1), "name": "Mug", "price": "12.50"},
			map[string]any{"itemId": "1", "variant": "default", "quantity": int64(2), "price": "12.50"},
			map[string]any{"itemId": "", "quantity": int64(4)},
			map[string]any{"itemId": "2", "quantity": int64(0)},
			map[string]any{"itemId": "3", "quantity": int64(1), "price": 4.0},
			"garbage",
		},
	})

	require.Len(t, c.Lines, 2)
	assert.Equal(t, "1", c.Lines[0].ItemID)
	assert.Equal(t, cartdom.DefaultVariant, c.Lines[0].Variant)
	assert.Equal(t, 3, c.Lines[0].Quantity)
	assert.True(t, decimal.RequireFromString("12.5").Equal(c.Lines[0].Price.Decimal))
	assert.True(t, c.Lines[1].Price.Valid)
	assert.Equal(t, now, c.CreatedAt)
}

func TestCartDocFromDomain_PriceAsString(t *testing.T) {
	c := &cartdom.Cart{ID: "s", Lines: []cartdom.Line{
		{ItemID: "1", Variant: "default", Quantity: 1, Price: decimal.NewNullDecimal(decimal.RequireFromString("0.30"))},
		{ItemID: "2", Variant: "default", Quantity: 1},
	}}
	doc := cartDocFromDomain(c)
	assert.Equal(t, "0.3", doc.Lines[0].Price)
	assert.Equal(t, "", doc.Lines[1].Price)

	back := cartFromData(map[string]any{"lines": []any{
		map[string]any{"itemId": doc.Lines[1].ItemID, "quantity": int64(1), "price": doc.Lines[1].Price},
	}})
	assert.False(t, back.Lines[0].Price.Valid)
}
