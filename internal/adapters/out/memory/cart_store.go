// Package memory holds process-local adapters.
package memory

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	cartdom "folio/internal/domain/cart"
)

// CartStore implements cart.Repository in memory. Carts live as long as the
// process; expired carts are dropped on read and by Sweep.
type CartStore struct {
	mu    sync.RWMutex
	carts map[string]cartdom.Cart
	now   func() time.Time
}

func NewCartStore() *CartStore {
	return &CartStore{carts: map[string]cartdom.Cart{}, now: time.Now}
}

// GetByID returns (nil, nil) if not found or expired.
func (s *CartStore) GetByID(_ context.Context, id string) (*cartdom.Cart, error) {
	sid := strings.TrimSpace(id)
	if sid == "" {
		return nil, errors.New("cart_store: id is empty")
	}

	s.mu.RLock()
	c, ok := s.carts[sid]
	s.mu.RUnlock()
	if !ok || (!c.ExpiresAt.IsZero() && s.now().After(c.ExpiresAt)) {
		return nil, nil
	}
	return cloneCart(c), nil
}

func (s *CartStore) Upsert(_ context.Context, c *cartdom.Cart) error {
	if c == nil || strings.TrimSpace(c.ID) == "" {
		return errors.New("cart_store: cart id is empty")
	}
	s.mu.Lock()
	s.carts[c.ID] = *cloneCart(*c)
	s.mu.Unlock()
	return nil
}

func (s *CartStore) DeleteByID(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.carts, strings.TrimSpace(id))
	s.mu.Unlock()
	return nil
}

// Sweep removes expired carts and reports how many were dropped.
func (s *CartStore) Sweep() int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, c := range s.carts {
		if !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt) {
			delete(s.carts, id)
			n++
		}
	}
	return n
}

// Run sweeps every interval until ctx is done.
func (s *CartStore) Run(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.Sweep()
		}
	}
}

func cloneCart(c cartdom.Cart) *cartdom.Cart {
	c.Lines = append([]cartdom.Line{}, c.Lines...)
	return &c
}
