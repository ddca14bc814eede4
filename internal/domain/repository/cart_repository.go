package repository

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartRepository stores authenticated carts as one row per (user, product).
type CartRepository interface {
	// ListByUser returns the cart lines joined with their products, oldest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.LineItem, error)

	// AcquireCartMutex serializes cart writers of one user until the
	// surrounding transaction ends.
	AcquireCartMutex(ctx context.Context, userID uuid.UUID) error

	// AddQuantity inserts the line with unitPrice or increments an existing one.
	AddQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int, unitPrice decimal.Decimal) error

	// SetQuantity reports false when the line does not exist.
	SetQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) (bool, error)

	// Delete is a no-op when the line does not exist.
	Delete(ctx context.Context, userID, productID uuid.UUID) error

	DeleteByUser(ctx context.Context, userID uuid.UUID) error

	// InsertAll writes items in order; callers delete existing rows first.
	InsertAll(ctx context.Context, userID uuid.UUID, items []entity.LineItem) error
}
