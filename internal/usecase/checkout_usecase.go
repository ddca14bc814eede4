package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// PlaceOrderInput is a checkout request of a signed-in user.
type PlaceOrderInput struct {
	UserID         uuid.UUID
	IdempotencyKey string
	// CartItems, when present, must equal the persisted cart.
	CartItems     []CartItemInput
	Address       entity.Address
	Contact       entity.Contact
	Selection     entity.QuoteSelection
	PaymentMethod string
}

// CheckoutUsecase turns carts into orders.
type CheckoutUsecase interface {
	// PlaceOrder validates the quote, then atomically creates the order,
	// decrements stock and empties the cart. Shipment creation happens
	// after commit and never undoes the order.
	PlaceOrder(ctx context.Context, in *PlaceOrderInput) (*entity.Order, error)

	GetOrder(ctx context.Context, actor Actor, orderID uuid.UUID) (*entity.Order, error)

	ListOrders(ctx context.Context, actor Actor, limit, offset int) ([]*entity.Order, error)

	// TrackingQR renders the tracking number of a shipped order as PNG.
	TrackingQR(ctx context.Context, actor Actor, orderID uuid.UUID) ([]byte, error)
}
