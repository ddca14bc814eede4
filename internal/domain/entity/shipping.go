package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DeliveryWindow is the carrier's estimate in business days.
type DeliveryWindow struct {
	MinDays int
	MaxDays int
}

// ShippingQuote is one carrier offer. It is only meaningful for the origin,
// destination, parcel and declared value it was computed from.
type ShippingQuote struct {
	CarrierID      string
	CarrierName    string
	ServiceLevelID string
	ServiceName    string
	PriceExclVat   decimal.Decimal
	PriceInclVat   decimal.Decimal
	Currency       string
	Delivery       DeliveryWindow
}

// QuoteSelection identifies the quote a customer picked.
type QuoteSelection struct {
	CarrierID      string
	ServiceLevelID string
}

// Matches reports whether q is the offer identified by sel.
func (q ShippingQuote) Matches(sel QuoteSelection) bool {
	return q.CarrierID == sel.CarrierID && q.ServiceLevelID == sel.ServiceLevelID
}

// ShipmentRecord is what the carrier returns for a created shipment.
type ShipmentRecord struct {
	TrackingNumber        string
	LabelURL              string
	EstimatedDeliveryDate *time.Time
}
