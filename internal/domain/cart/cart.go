// Package cart holds session-scoped cart state and the operations that
// change it. A Cart value is never shared between sessions; callers own it
// and pass it explicitly.
package cart

import (
	"slices"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/errors"

	"github.com/google/uuid"
)

// Owner identifies whose cart it is. Exactly one of the fields is set.
type Owner struct {
	SessionID string
	UserID    uuid.UUID
}

// IsAnonymous reports whether the cart belongs to a signed-out session.
func (o Owner) IsAnonymous() bool {
	return o.UserID == uuid.Nil
}

// Cart is an ordered set of line items keyed by product id.
type Cart struct {
	Owner Owner
	items []entity.LineItem
}

// New returns an empty cart for owner.
func New(owner Owner) Cart {
	return Cart{Owner: owner}
}

// Items returns the lines in insertion order.
func (c Cart) Items() []entity.LineItem {
	return slices.Clone(c.items)
}

func (c Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// Find returns the line for productID.
func (c Cart) Find(productID uuid.UUID) (entity.LineItem, bool) {
	if idx := c.index(productID); idx >= 0 {
		return c.items[idx], true
	}

	return entity.LineItem{}, false
}

func (c Cart) index(productID uuid.UUID) int {
	return slices.IndexFunc(c.items, func(item entity.LineItem) bool {
		return item.ProductID == productID
	})
}

// Op is a cart mutation. The set of operations is closed: Add, Remove,
// AdjustQuantity, Clear and LoadMerged.
type Op interface {
	isOp()
}

// Add increments the line for Item.ProductID by Item.Quantity, or inserts
// Item as a new line with its price snapshot.
type Add struct {
	Item entity.LineItem
}

// Remove drops the line for ProductID. Removing an absent product is a no-op.
type Remove struct {
	ProductID uuid.UUID
}

// AdjustQuantity sets the quantity to max(0, Quantity); zero removes the line.
type AdjustQuantity struct {
	ProductID uuid.UUID
	Quantity  int
}

// Clear empties the cart.
type Clear struct{}

// LoadMerged replaces the whole cart with server-confirmed lines.
type LoadMerged struct {
	Items []entity.LineItem
}

func (Add) isOp()            {}
func (Remove) isOp()         {}
func (AdjustQuantity) isOp() {}
func (Clear) isOp()          {}
func (LoadMerged) isOp()     {}

// Apply returns the cart that results from op. c is left untouched.
func (c Cart) Apply(op Op) (Cart, error) {
	next := Cart{Owner: c.Owner, items: slices.Clone(c.items)}

	switch o := op.(type) {
	case Add:
		if o.Item.Quantity <= 0 {
			return c, domainerrors.ErrInvalidQuantity
		}
		if idx := next.index(o.Item.ProductID); idx >= 0 {
			next.items[idx].Quantity += o.Item.Quantity
		} else {
			next.items = append(next.items, o.Item)
		}
	case Remove:
		if idx := next.index(o.ProductID); idx >= 0 {
			next.items = slices.Delete(next.items, idx, idx+1)
		}
	case AdjustQuantity:
		idx := next.index(o.ProductID)
		if idx < 0 {
			break
		}
		if o.Quantity <= 0 {
			next.items = slices.Delete(next.items, idx, idx+1)
		} else {
			next.items[idx].Quantity = o.Quantity
		}
	case Clear:
		next.items = nil
	case LoadMerged:
		next.items = dedupe(o.Items)
	default:
		return c, errors.Errorf("unknown cart operation %T", op)
	}

	return next, nil
}

// dedupe keeps the first line per product so a loaded cart never carries
// duplicate keys.
func dedupe(items []entity.LineItem) []entity.LineItem {
	out := make([]entity.LineItem, 0, len(items))
	seen := make(map[uuid.UUID]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		out = append(out, item)
	}

	return out
}

// Merge combines an authenticated cart with an anonymous one.
// Every product of either side appears exactly once. When both sides hold a
// product, the anonymous quantity wins and the authenticated line keeps its
// price snapshot. Authenticated lines come first, in their order, followed by
// anonymous-only lines in theirs.
func Merge(authenticated, anonymous []entity.LineItem) []entity.LineItem {
	anon := dedupe(anonymous)
	anonByID := make(map[uuid.UUID]entity.LineItem, len(anon))
	for _, item := range anon {
		anonByID[item.ProductID] = item
	}

	merged := make([]entity.LineItem, 0, len(authenticated)+len(anon))
	seen := make(map[uuid.UUID]struct{}, len(authenticated)+len(anon))
	for _, item := range authenticated {
		if _, dup := seen[item.ProductID]; dup {
			continue
		}
		seen[item.ProductID] = struct{}{}
		if override, ok := anonByID[item.ProductID]; ok {
			item.Quantity = override.Quantity
		}
		merged = append(merged, item)
	}
	for _, item := range anon {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		merged = append(merged, item)
	}

	return merged
}
