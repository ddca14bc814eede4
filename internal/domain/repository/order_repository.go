package repository

import (
	"context"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"

	"github.com/google/uuid"
)

var (
	// ErrOrderNotFound is returned when an order does not exist.
	ErrOrderNotFound = errors.New("order not found")
	// ErrDuplicateIdempotencyKey is returned when a user reuses an idempotency key.
	ErrDuplicateIdempotencyKey = errors.New("idempotency key already used")
)

// OrderRepository persists orders with their lines.
type OrderRepository interface {
	// Create inserts the order and all of its lines.
	Create(ctx context.Context, order *entity.Order) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	FindByIdempotencyKey(ctx context.Context, userID uuid.UUID, key string) (*entity.Order, error)

	FindByTrackingNumber(ctx context.Context, trackingNumber string) (*entity.Order, error)

	// ListByUser returns orders newest first.
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Order, error)

	// ClaimShipment moves shipment_status from one of from to pending.
	// It reports false when the order was not in any of those states.
	ClaimShipment(ctx context.Context, id uuid.UUID, from []entity.ShipmentStatus) (bool, error)
	// ReclaimStalledShipment re-claims a pending shipment whose attempt started
	// before attemptedBefore, restarting its attempt clock.
	ReclaimStalledShipment(ctx context.Context, id uuid.UUID, attemptedBefore time.Time) (bool, error)

	MarkShipmentCreated(ctx context.Context, id uuid.UUID, record *entity.ShipmentRecord) error

	MarkShipmentFailed(ctx context.Context, id uuid.UUID, reason string, at time.Time) error

	// AdvanceStatus sets status on the order with trackingNumber only when its
	// current status is one of from. It reports whether a row changed.
	AdvanceStatus(ctx context.Context, trackingNumber string, from []entity.OrderStatus, to entity.OrderStatus) (bool, error)

	// UpdateDeliveryEstimate sets the carrier ETA unless the order is
	// already delivered or cancelled.
	UpdateDeliveryEstimate(ctx context.Context, trackingNumber string, eta time.Time) error
}
