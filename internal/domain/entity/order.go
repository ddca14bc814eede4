package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is the customer-facing fulfillment state of an order.
type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition is possible.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanAdvanceTo reports whether moving from s to next moves forward.
// Processing < Shipped < Delivered; Cancelled is reachable from any
// non-terminal status. Staying on the same status is not an advance.
func (s OrderStatus) CanAdvanceTo(next OrderStatus) bool {
	if s.IsTerminal() || s == next || !next.IsValid() {
		return false
	}
	if next == OrderStatusCancelled {
		return true
	}

	return statusRank(next) > statusRank(s)
}

// Predecessors lists every status that may advance to s.
func (s OrderStatus) Predecessors() []OrderStatus {
	var from []OrderStatus
	for _, candidate := range []OrderStatus{OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled} {
		if candidate.CanAdvanceTo(s) {
			from = append(from, candidate)
		}
	}

	return from
}

func statusRank(s OrderStatus) int {
	switch s {
	case OrderStatusProcessing:
		return 1
	case OrderStatusShipped:
		return 2
	case OrderStatusDelivered:
		return 3
	default:
		return 0
	}
}

// ShipmentStatus tracks the single carrier shipment request of an order.
type ShipmentStatus string

const (
	ShipmentStatusNone    ShipmentStatus = "none"
	ShipmentStatusPending ShipmentStatus = "pending"
	ShipmentStatusCreated ShipmentStatus = "created"
	ShipmentStatusFailed  ShipmentStatus = "failed"
)

// Order is immutable in its lines and amounts once created.
type Order struct {
	ID                    uuid.UUID
	UserID                uuid.UUID
	Status                OrderStatus
	TotalAmount           decimal.Decimal // sum of lines, shipping excluded
	ShippingCost          decimal.Decimal
	Currency              string
	Lines                 []OrderLine
	ShippingAddress       Address
	Contact               Contact
	CarrierID             string
	ServiceLevelID        string
	PaymentMethod         string
	IdempotencyKey        *string
	TrackingNumber        *string
	LabelURL              string
	EstimatedDeliveryDate *time.Time
	ShipmentStatus        ShipmentStatus
	ShipmentError         string
	ShipmentAttemptedAt   *time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// OrderLine is a purchased product with the price paid per unit.
type OrderLine struct {
	ProductID           uuid.UUID
	Name                string
	Quantity            int
	UnitPriceAtPurchase decimal.Decimal
}

// QuoteSelection returns the carrier and service level the order ships with.
func (o *Order) QuoteSelection() QuoteSelection {
	return QuoteSelection{CarrierID: o.CarrierID, ServiceLevelID: o.ServiceLevelID}
}

// LinesTotal recomputes Σ quantity × unitPriceAtPurchase.
func (o *Order) LinesTotal() decimal.Decimal {
	total := decimal.Zero
	for _, line := range o.Lines {
		total = total.Add(line.UnitPriceAtPurchase.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	return total
}
