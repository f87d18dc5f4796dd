// internal/application/usecase/cart_usecase.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	cartdom "folio/internal/domain/cart"
	catalogdom "folio/internal/domain/catalog"
)

var (
	ErrCartInvalidArgument = errors.New("cart_usecase: invalid argument")
	ErrCartItemNotFound    = errors.New("cart_usecase: item not found")
)

// ItemFinder resolves a catalog item by kind and id.
type ItemFinder interface {
	Find(ctx context.Context, kind catalogdom.Kind, id string) (catalogdom.Item, error)
}

// CartView is what the cart page and badge render.
type CartView struct {
	Lines    []cartdom.Line              `json:"lines"`
	Total    decimal.Decimal             `json:"total"`
	Count    int                         `json:"count"`
	Warnings []cartdom.IntegrityWarning `json:"warnings,omitempty"`
}

const cartLockStripes = 64

// CartUsecase coordinates session cart operations. Mutations of one session
// are serialized; different sessions proceed in parallel.
type CartUsecase struct {
	repo    cartdom.Repository
	catalog ItemFinder
	clock   Clock
	log     *zap.Logger

	locks [cartLockStripes]sync.Mutex
}

func NewCartUsecase(repo cartdom.Repository, catalog ItemFinder, log *zap.Logger) *CartUsecase {
	return NewCartUsecaseWithClock(repo, catalog, log, nil)
}

// NewCartUsecaseWithClock is useful for tests.
func NewCartUsecaseWithClock(repo cartdom.Repository, catalog ItemFinder, log *zap.Logger, clock Clock) *CartUsecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &CartUsecase{
		repo:    repo,
		catalog: catalog,
		clock:   clockOrSystem(clock),
		log:     log.Named("cart_usecase"),
	}
}

// Get returns the session's cart, or an unsaved empty cart when none exists.
func (uc *CartUsecase) Get(ctx context.Context, sessionID string) (*cartdom.Cart, error) {
	sid := strings.TrimSpace(sessionID)
	if sid == "" {
		return nil, ErrCartInvalidArgument
	}
	return uc.load(ctx, sid)
}

// View returns lines plus total, count and integrity warnings.
func (uc *CartUsecase) View(ctx context.Context, sessionID string) (CartView, error) {
	c, err := uc.Get(ctx, sessionID)
	if err != nil {
		return CartView{}, err
	}
	return ViewOf(c), nil
}

// ViewOf summarizes a cart.
func ViewOf(c *cartdom.Cart) CartView {
	lines := []cartdom.Line{}
	if c != nil && c.Lines != nil {
		lines = c.Lines
	}
	total, warnings := cartdom.Total(lines)
	return CartView{
		Lines:    lines,
		Total:    total,
		Count:    cartdom.ItemCount(lines),
		Warnings: warnings,
	}
}

// AddItem adds qty units of a shop item. Name, price and image are taken
// from the catalog, not from the caller.
func (uc *CartUsecase) AddItem(ctx context.Context, sessionID, itemID, variant string, qty int) (*cartdom.Cart, error) {
	sid := strings.TrimSpace(sessionID)
	iid := strings.TrimSpace(itemID)
	if sid == "" || iid == "" {
		return nil, ErrCartInvalidArgument
	}
	if qty < 1 || qty > cartdom.MaxQuantity {
		return nil, cartdom.ErrInvalidQuantity
	}

	item, err := uc.catalog.Find(ctx, catalogdom.KindShop, iid)
	if err != nil {
		if errors.Is(err, catalogdom.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrCartItemNotFound, iid)
		}
		return nil, err
	}

	return uc.mutate(ctx, sid, func(lines []cartdom.Line) ([]cartdom.Line, error) {
		return cartdom.AddToCart(lines, cartdom.SnapshotOf(item), variant, qty)
	})
}

// SetQty sets the quantity of a line. qty <= 0 removes it; unknown lines are left alone.
func (uc *CartUsecase) SetQty(ctx context.Context, sessionID, itemID, variant string, qty int) (*cartdom.Cart, error) {
	sid := strings.TrimSpace(sessionID)
	if sid == "" || strings.TrimSpace(itemID) == "" {
		return nil, ErrCartInvalidArgument
	}
	if qty > cartdom.MaxQuantity {
		return nil, cartdom.ErrInvalidQuantity
	}
	return uc.mutate(ctx, sid, func(lines []cartdom.Line) ([]cartdom.Line, error) {
		return cartdom.UpdateQuantity(lines, itemID, variant, qty), nil
	})
}

// RemoveItem drops a line.
func (uc *CartUsecase) RemoveItem(ctx context.Context, sessionID, itemID, variant string) (*cartdom.Cart, error) {
	sid := strings.TrimSpace(sessionID)
	if sid == "" || strings.TrimSpace(itemID) == "" {
		return nil, ErrCartInvalidArgument
	}
	return uc.mutate(ctx, sid, func(lines []cartdom.Line) ([]cartdom.Line, error) {
		return cartdom.RemoveLine(lines, itemID, variant), nil
	})
}

// Clear deletes the session's cart.
func (uc *CartUsecase) Clear(ctx context.Context, sessionID string) error {
	sid := strings.TrimSpace(sessionID)
	if sid == "" {
		return ErrCartInvalidArgument
	}
	unlock := uc.lock(sid)
	defer unlock()
	return uc.repo.DeleteByID(ctx, sid)
}

// ----------------------------
// internal
// ----------------------------

func (uc *CartUsecase) mutate(ctx context.Context, sid string, apply func([]cartdom.Line) ([]cartdom.Line, error)) (*cartdom.Cart, error) {
	unlock := uc.lock(sid)
	defer unlock()

	c, err := uc.load(ctx, sid)
	if err != nil {
		return nil, err
	}
	next, err := apply(c.Lines)
	if err != nil {
		return nil, err
	}
	if err := c.Replace(next, uc.clock.Now()); err != nil {
		return nil, err
	}
	if err := uc.repo.Upsert(ctx, c); err != nil {
		uc.log.Error("upsert failed", zap.String("session", sid), zap.Error(err))
		return nil, err
	}
	return c, nil
}

func (uc *CartUsecase) load(ctx context.Context, sid string) (*cartdom.Cart, error) {
	c, err := uc.repo.GetByID(ctx, sid)
	if err != nil {
		return nil, err
	}
	if c != nil {
		return c, nil
	}
	return cartdom.NewCart(sid, uc.clock.Now())
}

func (uc *CartUsecase) lock(sid string) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sid))
	m := &uc.locks[h.Sum32()%cartLockStripes]
	m.Lock()
	return m.Unlock
}
