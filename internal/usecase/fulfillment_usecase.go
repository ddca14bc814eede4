package usecase

import (
	"context"
	"time"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// ShipmentStatusUpdate is one carrier webhook delivery.
type ShipmentStatusUpdate struct {
	TrackingNumber        string
	Status                string
	EstimatedDeliveryDate *time.Time
}

// FulfillmentUsecase books shipments for committed orders and applies
// carrier status pushes.
type FulfillmentUsecase interface {
	// ShipOrder requests the shipment of a freshly committed order. An order
	// whose shipment was already requested is returned unchanged.
	ShipOrder(ctx context.Context, orderID uuid.UUID) (*entity.Order, error)

	// RetryShipment requests the shipment of an order whose earlier attempt
	// failed, or that was never dispatched.
	RetryShipment(ctx context.Context, actor Actor, orderID uuid.UUID) (*entity.Order, error)

	// ApplyCarrierStatus reports whether the update changed the order.
	// Duplicate and out-of-order deliveries are accepted without change.
	ApplyCarrierStatus(ctx context.Context, update *ShipmentStatusUpdate) (bool, error)
}
