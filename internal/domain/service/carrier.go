package service

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// RateRequest is everything a carrier prices a parcel on.
type RateRequest struct {
	Origin        entity.Address
	Destination   entity.Address
	Parcel        entity.Parcel
	DeclaredValue decimal.Decimal
	Currency      string
}

// ShipmentRequest books a shipment for one order.
type ShipmentRequest struct {
	Reference          string // order id, sent as the carrier idempotency key
	Origin             entity.Address
	OriginContact      entity.Contact
	Destination        entity.Address
	DestinationContact entity.Contact
	Parcel             entity.Parcel
	DeclaredValue      decimal.Decimal
	Currency           string
	Selection          entity.QuoteSelection
}

// CarrierClient talks to the shipping carrier API.
type CarrierClient interface {
	// GetRates returns the carrier offers unmodified.
	GetRates(ctx context.Context, req RateRequest) ([]entity.ShippingQuote, error)

	// CreateShipment is not idempotent on the carrier side.
	CreateShipment(ctx context.Context, req ShipmentRequest) (*entity.ShipmentRecord, error)
}
