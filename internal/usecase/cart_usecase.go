package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItemInput is a product and quantity sent by a client. Prices are
// never taken from the client.
type CartItemInput struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

// CartView is the persisted cart of a user.
type CartView struct {
	Items    []entity.LineItem
	Subtotal decimal.Decimal
}

// CartUsecase manages the server-side cart of signed-in users.
type CartUsecase interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*CartView, error)

	// AddItem increments the line or inserts it with the current catalog price.
	AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*entity.LineItem, error)

	// UpdateQuantity sets the quantity; zero or less removes the line and
	// returns nil.
	UpdateQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) (*entity.LineItem, error)

	RemoveItem(ctx context.Context, userID, productID uuid.UUID) error

	ClearCart(ctx context.Context, userID uuid.UUID) error

	// SyncCart merges an anonymous cart into the persisted one and replaces
	// the stored rows with the result in one transaction.
	SyncCart(ctx context.Context, userID uuid.UUID, items []CartItemInput) (*CartView, error)

	GetProduct(ctx context.Context, productID uuid.UUID) (*entity.Product, error)
}
