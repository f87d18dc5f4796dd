// internal/domain/cart/entity.go
package cart

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"folio/internal/domain/catalog"
)

var (
	ErrInvalidCart     = errors.New("cart: invalid")
	ErrInvalidQuantity = errors.New("cart: quantity must be a positive integer")
	ErrInvalidItem     = errors.New("cart: item has no id")
)

// DefaultVariant is used when a product has no selectable variants.
const DefaultVariant = "default"

// MaxQuantity caps the units of a single line.
const MaxQuantity = 9999

// DefaultCartTTL is the inactivity window after which a stored cart may be dropped
// (Firestore TTL is configured on expiresAt).
const DefaultCartTTL = 7 * 24 * time.Hour

// Snapshot holds the display fields copied into a line when it is added,
// so the line survives later catalog edits or removals.
type Snapshot struct {
	ID       string
	Name     string
	Price    decimal.NullDecimal
	ImageURL string
}

// SnapshotOf copies the display fields of a catalog item.
func SnapshotOf(it catalog.Item) Snapshot {
	return Snapshot{
		ID:       it.ID,
		Name:     it.Title,
		Price:    it.Price,
		ImageURL: it.ImageURL,
	}
}

// Line is one cart entry. Uniqueness is defined by (ItemID, Variant).
type Line struct {
	ItemID   string              `json:"itemId"`
	Variant  string              `json:"variant"`
	Quantity int                 `json:"quantity"`
	Name     string              `json:"name"`
	Price    decimal.NullDecimal `json:"price"`
	ImageURL string              `json:"imageUrl,omitempty"`
}

// Subtotal is price * quantity, zero when the price is unusable.
func (l Line) Subtotal() decimal.Decimal {
	if !l.Price.Valid || l.Price.Decimal.IsNegative() {
		return decimal.Zero
	}
	return l.Price.Decimal.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// IntegrityWarning flags a line whose price could not be used in a total.
type IntegrityWarning struct {
	ItemID  string `json:"itemId"`
	Variant string `json:"variant"`
	Reason  string `json:"reason"`
}

func (w IntegrityWarning) String() string {
	return fmt.Sprintf("%s/%s: %s", w.ItemID, w.Variant, w.Reason)
}

// ----------------------------
// Line operations
// ----------------------------
// Every operation returns a new slice and leaves its input untouched.

// AddToCart merges quantity into the (ref.ID, variant) line or appends a new one.
// A line never holds more than MaxQuantity units.
func AddToCart(lines []Line, ref Snapshot, variant string, quantity int) ([]Line, error) {
	if quantity < 1 || quantity > MaxQuantity {
		return lines, ErrInvalidQuantity
	}
	id := strings.TrimSpace(ref.ID)
	if id == "" {
		return lines, ErrInvalidItem
	}
	v := normalizeVariant(variant)

	out := cloneLines(lines)
	if idx := findLine(out, id, v); idx >= 0 {
		if out[idx].Quantity > MaxQuantity-quantity {
			return lines, ErrInvalidQuantity
		}
		out[idx].Quantity += quantity
		return out, nil
	}

	return append(out, Line{
		ItemID:   id,
		Variant:  v,
		Quantity: quantity,
		Name:     ref.Name,
		Price:    ref.Price,
		ImageURL: ref.ImageURL,
	}), nil
}

// UpdateQuantity replaces the quantity of a line; quantity <= 0 removes it
// and quantities above MaxQuantity are capped.
// Unknown (id, variant) pairs return lines unchanged.
func UpdateQuantity(lines []Line, id, variant string, quantity int) []Line {
	idx := findLine(lines, strings.TrimSpace(id), normalizeVariant(variant))
	if idx < 0 {
		return lines
	}
	if quantity <= 0 {
		return removeIndex(lines, idx)
	}
	out := cloneLines(lines)
	out[idx].Quantity = min(quantity, MaxQuantity)
	return out
}

// RemoveLine drops the (id, variant) line if present.
func RemoveLine(lines []Line, id, variant string) []Line {
	idx := findLine(lines, strings.TrimSpace(id), normalizeVariant(variant))
	if idx < 0 {
		return lines
	}
	return removeIndex(lines, idx)
}

// Total sums price * quantity. Lines with a missing or negative price count
// as zero and are reported back as warnings.
func Total(lines []Line) (decimal.Decimal, []IntegrityWarning) {
	total := decimal.Zero
	var warnings []IntegrityWarning
	for _, l := range lines {
		switch {
		case !l.Price.Valid:
			warnings = append(warnings, IntegrityWarning{ItemID: l.ItemID, Variant: l.Variant, Reason: "missing price"})
			continue
		case l.Price.Decimal.IsNegative():
			warnings = append(warnings, IntegrityWarning{ItemID: l.ItemID, Variant: l.Variant, Reason: "negative price"})
			continue
		}
		total = total.Add(l.Subtotal())
	}
	return total, warnings
}

// ItemCount is the number of units in the cart (badge count).
func ItemCount(lines []Line) int {
	n := 0
	for _, l := range lines {
		n += l.Quantity
	}
	return n
}

// ----------------------------
// Session cart
// ----------------------------

// Cart is the set of lines owned by one browser session.
type Cart struct {
	// ID is the session id.
	ID    string `json:"id"`
	Lines []Line `json:"lines"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// NewCart creates an empty cart for the session.
func NewCart(id string, now time.Time) (*Cart, error) {
	c := &Cart{
		ID:        strings.TrimSpace(id),
		Lines:     []Line{},
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(DefaultCartTTL),
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Replace swaps in a new line list and refreshes the TTL.
func (c *Cart) Replace(lines []Line, now time.Time) error {
	if c == nil {
		return ErrInvalidCart
	}
	if lines == nil {
		lines = []Line{}
	}
	next := *c
	next.Lines = lines
	next.touch(now)
	if err := next.validate(); err != nil {
		return err
	}
	*c = next
	return nil
}

func (c *Cart) touch(now time.Time) {
	c.UpdatedAt = now
	c.ExpiresAt = now.Add(DefaultCartTTL)
}

func (c *Cart) validate() error {
	if c == nil || c.ID == "" {
		return ErrInvalidCart
	}
	if c.CreatedAt.IsZero() || c.UpdatedAt.Before(c.CreatedAt) || c.ExpiresAt.Before(c.UpdatedAt) {
		return ErrInvalidCart
	}
	seen := make(map[lineKey]struct{}, len(c.Lines))
	for _, l := range c.Lines {
		if l.ItemID == "" || l.Quantity < 1 || l.Quantity > MaxQuantity {
			return ErrInvalidCart
		}
		k := lineKey{id: l.ItemID, variant: l.Variant}
		if _, dup := seen[k]; dup {
			return ErrInvalidCart
		}
		seen[k] = struct{}{}
	}
	return nil
}

// ----------------------------
// Helpers
// ----------------------------

type lineKey struct {
	id      string
	variant string
}

func normalizeVariant(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return DefaultVariant
	}
	return v
}

func findLine(lines []Line, id, variant string) int {
	for i := range lines {
		if lines[i].ItemID == id && lines[i].Variant == variant {
			return i
		}
	}
	return -1
}

func removeIndex(lines []Line, idx int) []Line {
	out := make([]Line, 0, len(lines)-1)
	out = append(out, lines[:idx]...)
	return append(out, lines[idx+1:]...)
}

func cloneLines(src []Line) []Line {
	out := make([]Line, len(src), len(src)+1)
	copy(out, src)
	return out
}
