package cart

import (
	"context"
	"sync"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/errors"

	"github.com/google/uuid"
)

// Catalog resolves the current catalog entry for a product.
type Catalog interface {
	Product(ctx context.Context, productID uuid.UUID) (*entity.Product, error)
}

// Backend persists the cart of a signed-in user.
type Backend interface {
	Fetch(ctx context.Context) ([]entity.LineItem, error)
	Add(ctx context.Context, productID uuid.UUID, quantity int) error
	SetQuantity(ctx context.Context, productID uuid.UUID, quantity int) error
	Remove(ctx context.Context, productID uuid.UUID) error
	Clear(ctx context.Context) error
	// Sync merges items into the persisted cart and returns the result.
	Sync(ctx context.Context, items []entity.LineItem) ([]entity.LineItem, error)
}

// ErrStale is returned once a persisted mutation failed; the local view may
// differ from the server until Refresh succeeds.
var ErrStale = errors.New("cart is out of sync with the server, refresh required")

// Store is the cart of one session. Anonymous stores mutate local state only.
// Authenticated stores apply the change locally first and then persist it;
// a failed write is not rolled back, the store is flagged stale instead.
type Store struct {
	mu      sync.Mutex
	cart    Cart
	catalog Catalog
	backend Backend
	stale   bool
}

// NewAnonymousStore returns an empty cart for a signed-out session.
func NewAnonymousStore(sessionID string, catalog Catalog) *Store {
	return &Store{
		cart:    New(Owner{SessionID: sessionID}),
		catalog: catalog,
	}
}

// NewAuthenticatedStore loads the persisted cart of userID.
func NewAuthenticatedStore(ctx context.Context, userID uuid.UUID, backend Backend, catalog Catalog) (*Store, error) {
	s := &Store{
		cart:    New(Owner{UserID: userID}),
		catalog: catalog,
		backend: backend,
	}
	if err := s.Refresh(ctx); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Store) Owner() Owner {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cart.Owner
}

// List returns the lines in insertion order.
func (s *Store) List() []entity.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cart.Items()
}

// Stale reports whether a persisted mutation failed since the last refresh.
func (s *Store) Stale() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.stale
}

func (s *Store) Add(ctx context.Context, productID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return domainerrors.ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.cart.Find(productID)
	if ok {
		item.Quantity = quantity
	} else {
		product, err := s.catalog.Product(ctx, productID)
		if err != nil {
			return errors.Wrap(err, "failed to look up product")
		}
		item = entity.NewLineItem(product, quantity)
	}

	return s.mutate(ctx, Add{Item: item}, func(b Backend) error {
		return b.Add(ctx, productID, quantity)
	})
}

// Remove is a no-op when the product is not in the cart.
func (s *Store) Remove(ctx context.Context, productID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cart.Find(productID); !ok {
		return nil
	}

	return s.mutate(ctx, Remove{ProductID: productID}, func(b Backend) error {
		return b.Remove(ctx, productID)
	})
}

// AdjustQuantity sets the quantity to max(0, quantity); zero removes the line.
func (s *Store) AdjustQuantity(ctx context.Context, productID uuid.UUID, quantity int) error {
	quantity = max(0, quantity)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cart.Find(productID); !ok {
		return nil
	}

	return s.mutate(ctx, AdjustQuantity{ProductID: productID, Quantity: quantity}, func(b Backend) error {
		if quantity == 0 {
			return b.Remove(ctx, productID)
		}

		return b.SetQuantity(ctx, productID, quantity)
	})
}

func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mutate(ctx, Clear{}, func(b Backend) error {
		return b.Clear(ctx)
	})
}

// Refresh replaces the local view with the persisted cart and clears the
// stale flag. Anonymous stores have nothing to refresh from.
func (s *Store) Refresh(ctx context.Context) error {
	if s.backend == nil {
		return nil
	}

	items, err := s.backend.Fetch(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to fetch cart")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load(items)
}

func (s *Store) load(items []entity.LineItem) error {
	next, err := s.cart.Apply(LoadMerged{Items: items})
	if err != nil {
		return err
	}
	s.cart = next
	s.stale = false

	return nil
}

// mutate must be called with s.mu held.
func (s *Store) mutate(ctx context.Context, op Op, persist func(Backend) error) error {
	next, err := s.cart.Apply(op)
	if err != nil {
		return err
	}
	s.cart = next

	if s.backend == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		s.stale = true

		return errors.Join(ErrStale, err)
	}
	if err := persist(s.backend); err != nil {
		s.stale = true

		return errors.Join(ErrStale, err)
	}

	return nil
}
