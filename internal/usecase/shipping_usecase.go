package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/shopspring/decimal"
)

// RateQuote is a carrier answer together with the inputs it is valid for.
type RateQuote struct {
	Destination   entity.Address // geocoded
	Parcel        entity.Parcel
	DeclaredValue decimal.Decimal
	Quotes        []entity.ShippingQuote
}

// RateResolver prices, re-validates and books shipments against the carrier.
type RateResolver interface {
	// GetRates fails with ADDRESS_UNRESOLVABLE when the destination cannot be geocoded.
	GetRates(ctx context.Context, items []entity.LineItem, destination entity.Address) (*RateQuote, error)

	// MatchQuote requests fresh rates and returns the offer identified by
	// sel, or a nil quote when the carrier no longer offers it.
	MatchQuote(ctx context.Context, destination entity.Address, items []entity.LineItem, sel entity.QuoteSelection) (*RateQuote, *entity.ShippingQuote, error)

	ValidateQuote(ctx context.Context, destination entity.Address, items []entity.LineItem, sel entity.QuoteSelection) (bool, error)

	// CreateShipment books the shipment for order. It must run at most once
	// per order; callers guard it.
	CreateShipment(ctx context.Context, order *entity.Order, items []entity.LineItem) (*entity.ShipmentRecord, error)
}

// AddressValidation is the outcome of geocoding a destination.
type AddressValidation struct {
	IsValid    bool
	Location   *orb.Point
	DistanceKm *float64 // great-circle distance from the warehouse
}

// ShippingUsecase serves the rate and address endpoints.
type ShippingUsecase interface {
	// GetRates quotes the persisted cart of userID. For anonymous callers
	// (uuid.Nil) the client items are priced from the catalog instead.
	GetRates(ctx context.Context, userID uuid.UUID, items []CartItemInput, destination entity.Address) (*RateQuote, error)

	ValidateAddress(ctx context.Context, address entity.Address) (*AddressValidation, error)
}
