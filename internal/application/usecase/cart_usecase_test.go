package usecase

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	cartdom "folio/internal/domain/cart"
	catalogdom "folio/internal/domain/catalog"
)

func newCartFixture(t *testing.T) (*CartUsecase, *CatalogUsecase, *fakeCartRepo) {
	t.Helper()
	repo := newFakeCatalogRepo()
	repo.put("products",
		product("1", "Mug", "A", 12.5),
		product("2", "Poster", "A", "8"),
		product("3", "Lamp", "B", 40),
		product("nop", "Sample", "B", "n/a"),
	)
	log := zaptest.NewLogger(t)
	catalog := NewCatalogUsecase(repo, log)
	carts := newFakeCartRepo()
	return NewCartUsecaseWithClock(carts, catalog, log, fixedClock{testNow}), catalog, carts
}

func TestCartScenario_FilterAddMergeRemove(t *testing.T) {
	uc, catalog, _ := newCartFixture(t)
	ctx := context.Background()

	res := catalog.List(ctx, catalogdom.KindShop, catalogdom.FilterState{Category: "A"})
	require.Equal(t, []string{"1", "2"}, itemIDs(res.Items))

	_, err := uc.AddItem(ctx, "s1", "1", "", 1)
	require.NoError(t, err)
	c, err := uc.AddItem(ctx, "s1", "1", "", 2)
	require.NoError(t, err)

	require.Len(t, c.Lines, 1)
	assert.Equal(t, 3, c.Lines[0].Quantity)

	view, err := uc.View(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("37.5").Equal(view.Total), view.Total.String())
	assert.Equal(t, 3, view.Count)

	_, err = uc.RemoveItem(ctx, "s1", "1", "")
	require.NoError(t, err)
	view, err = uc.View(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, view.Lines)
	assert.True(t, view.Total.IsZero())
}

func TestCartAddItem_UsesCatalogSnapshot(t *testing.T) {
	uc, _, _ := newCartFixture(t)
	c, err := uc.AddItem(context.Background(), "s1", "3", "black", 1)
	require.NoError(t, err)

	l := c.Lines[0]
	assert.Equal(t, "Lamp", l.Name)
	assert.Equal(t, "black", l.Variant)
	assert.True(t, l.Price.Valid)
	assert.Equal(t, "40", l.Price.Decimal.String())
	assert.Equal(t, testNow.Add(cartdom.DefaultCartTTL), c.ExpiresAt)
}

func TestCartAddItem_Errors(t *testing.T) {
	uc, _, carts := newCartFixture(t)
	ctx := context.Background()

	_, err := uc.AddItem(ctx, "s1", "missing", "", 1)
	assert.ErrorIs(t, err, ErrCartItemNotFound)

	_, err = uc.AddItem(ctx, "s1", "1", "", 0)
	assert.ErrorIs(t, err, cartdom.ErrInvalidQuantity)

	_, err = uc.AddItem(ctx, "", "1", "", 1)
	assert.ErrorIs(t, err, ErrCartInvalidArgument)

	assert.Empty(t, carts.carts, "nothing persisted on error")
}

func TestCartSetQty(t *testing.T) {
	uc, _, _ := newCartFixture(t)
	ctx := context.Background()

	_, err := uc.AddItem(ctx, "s1", "1", "", 1)
	require.NoError(t, err)

	c, err := uc.SetQty(ctx, "s1", "1", "", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, c.Lines[0].Quantity)

	c, err = uc.SetQty(ctx, "s1", "2", "", 5)
	require.NoError(t, err)
	assert.Len(t, c.Lines, 1, "unknown line is a no-op")

	_, err = uc.SetQty(ctx, "s1", "1", "", cartdom.MaxQuantity+1)
	assert.ErrorIs(t, err, cartdom.ErrInvalidQuantity)
	v, err := uc.View(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 5, v.Count, "rejected quantity leaves the line alone")

	_, err = uc.AddItem(ctx, "s1", "1", "", cartdom.MaxQuantity)
	assert.ErrorIs(t, err, cartdom.ErrInvalidQuantity, "merge past the cap")

	c, err = uc.SetQty(ctx, "s1", "1", "", 0)
	require.NoError(t, err)
	assert.Empty(t, c.Lines)
}

func TestCartView_WarnsOnMissingPrice(t *testing.T) {
	uc, _, _ := newCartFixture(t)
	ctx := context.Background()

	_, err := uc.AddItem(ctx, "s1", "nop", "", 2)
	require.NoError(t, err)
	_, err = uc.AddItem(ctx, "s1", "2", "", 1)
	require.NoError(t, err)

	view, err := uc.View(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "8", view.Total.String())
	require.Len(t, view.Warnings, 1)
	assert.Equal(t, "nop", view.Warnings[0].ItemID)
}

func TestCartSessionsAreIsolatedAndCleared(t *testing.T) {
	uc, _, carts := newCartFixture(t)
	ctx := context.Background()

	_, err := uc.AddItem(ctx, "s1", "1", "", 1)
	require.NoError(t, err)

	other, err := uc.Get(ctx, "s2")
	require.NoError(t, err)
	assert.Empty(t, other.Lines)

	require.NoError(t, uc.Clear(ctx, "s1"))
	_, ok := carts.carts["s1"]
	assert.False(t, ok)
}

func TestCartConcurrentAddsOnOneSession(t *testing.T) {
	uc, _, _ := newCartFixture(t)
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.AddItem(ctx, "shared", "1", "", 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	view, err := uc.View(ctx, "shared")
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, n, view.Lines[0].Quantity)
}
