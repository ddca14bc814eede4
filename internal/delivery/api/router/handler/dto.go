package handler

import (
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/shopspring/decimal"
)

// --- Requests ---

// CartItemRequest is one product line sent by a client. Prices are never read from it.
type CartItemRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity" validate:"gt=0"`
}

type AddressRequest struct {
	Street     string `json:"street" validate:"required,max=200"`
	City       string `json:"city" validate:"required,max=100"`
	Region     string `json:"region" validate:"max=100"`
	PostalCode string `json:"postalCode" validate:"required,max=20"`
	Country    string `json:"country" validate:"required,len=2"`
}

type ContactRequest struct {
	Name    string         `json:"name" validate:"required,max=100"`
	Company string         `json:"company" validate:"max=100"`
	Email   string         `json:"email" validate:"required,email"`
	Phone   string         `json:"phone" validate:"required,max=30"`
	Address AddressRequest `json:"address"`
}

type SelectedShippingRequest struct {
	CarrierID      string `json:"carrierId" validate:"required"`
	ServiceLevelID string `json:"serviceLevelId" validate:"required"`
}

func (r AddressRequest) toEntity() entity.Address {
	return entity.Address{
		Street:     r.Street,
		Locality:   r.City,
		Region:     r.Region,
		PostalCode: r.PostalCode,
		Country:    r.Country,
	}
}

func (r ContactRequest) toEntity() entity.Contact {
	return entity.Contact{
		Name:    r.Name,
		Company: r.Company,
		Email:   r.Email,
		Phone:   r.Phone,
	}
}

func (r SelectedShippingRequest) toEntity() entity.QuoteSelection {
	return entity.QuoteSelection{CarrierID: r.CarrierID, ServiceLevelID: r.ServiceLevelID}
}

func toCartItemInputs(items []CartItemRequest) []usecase.CartItemInput {
	inputs := make([]usecase.CartItemInput, 0, len(items))
	for _, item := range items {
		inputs = append(inputs, usecase.CartItemInput{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	return inputs
}

// --- Responses ---

type LineItemResponse struct {
	ProductID      uuid.UUID       `json:"productId"`
	Name           string          `json:"name"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	Quantity       int             `json:"quantity"`
	LineTotal      decimal.Decimal `json:"lineTotal"`
	ImageRef       string          `json:"imageRef,omitempty"`
	AvailableStock int             `json:"availableStock"`
}

type CartResponse struct {
	Items    []LineItemResponse `json:"items"`
	Subtotal decimal.Decimal    `json:"subtotal"`
}

type ProductResponse struct {
	ID       uuid.UUID       `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	ImageRef string          `json:"imageRef,omitempty"`
	Stock    int             `json:"stock"`
}

type GeocodeResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type ParcelResponse struct {
	LengthCm float64 `json:"lengthCm"`
	WidthCm  float64 `json:"widthCm"`
	HeightCm float64 `json:"heightCm"`
	WeightKg float64 `json:"weightKg"`
}

type QuoteResponse struct {
	CarrierID       string          `json:"carrierId"`
	CarrierName     string          `json:"carrierName"`
	ServiceLevelID  string          `json:"serviceLevelId"`
	ServiceName     string          `json:"serviceName"`
	PriceExclVat    decimal.Decimal `json:"priceExclVat"`
	PriceInclVat    decimal.Decimal `json:"priceInclVat"`
	Currency        string          `json:"currency"`
	MinDeliveryDays int             `json:"minDeliveryDays"`
	MaxDeliveryDays int             `json:"maxDeliveryDays"`
}

type RatesResponse struct {
	Quotes        []QuoteResponse  `json:"quotes"`
	Parcel        ParcelResponse   `json:"parcel"`
	DeclaredValue decimal.Decimal  `json:"declaredValue"`
	Geocode       *GeocodeResponse `json:"geocode,omitempty"`
}

type AddressValidationResponse struct {
	IsValid    bool             `json:"isValid"`
	Geocode    *GeocodeResponse `json:"geocode,omitempty"`
	DistanceKm *float64         `json:"distanceKm,omitempty"`
}

type OrderLineResponse struct {
	ProductID           uuid.UUID       `json:"productId"`
	Name                string          `json:"name"`
	Quantity            int             `json:"quantity"`
	UnitPriceAtPurchase decimal.Decimal `json:"unitPriceAtPurchase"`
}

type OrderResponse struct {
	ID                    uuid.UUID             `json:"id"`
	Status                entity.OrderStatus    `json:"status"`
	TotalAmount           decimal.Decimal       `json:"totalAmount"`
	ShippingCost          decimal.Decimal       `json:"shippingCost"`
	Currency              string                `json:"currency"`
	Lines                 []OrderLineResponse   `json:"lines"`
	CarrierID             string                `json:"carrierId"`
	ServiceLevelID        string                `json:"serviceLevelId"`
	PaymentMethod         string                `json:"paymentMethod"`
	ShipmentStatus        entity.ShipmentStatus `json:"shipmentStatus"`
	ShipmentError         string                `json:"shipmentError,omitempty"`
	TrackingReference     *string               `json:"trackingReference,omitempty"`
	LabelURL              string                `json:"labelUrl,omitempty"`
	EstimatedDeliveryDate *time.Time            `json:"estimatedDeliveryDate,omitempty"`
	CreatedAt             time.Time             `json:"createdAt"`
}

// CheckoutResponse keeps the {success, orderId} shape storefront clients check first.
type CheckoutResponse struct {
	Success bool          `json:"success"`
	OrderID uuid.UUID     `json:"orderId"`
	Order   OrderResponse `json:"order"`
}

func newLineItemResponses(items []entity.LineItem) []LineItemResponse {
	out := make([]LineItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, newLineItemResponse(item))
	}

	return out
}

func newLineItemResponse(item entity.LineItem) LineItemResponse {
	return LineItemResponse{
		ProductID:      item.ProductID,
		Name:           item.Name,
		UnitPrice:      item.UnitPrice,
		Quantity:       item.Quantity,
		LineTotal:      item.LineTotal(),
		ImageRef:       item.ImageRef,
		AvailableStock: item.AvailableStock,
	}
}

func newCartResponse(view *usecase.CartView) CartResponse {
	return CartResponse{
		Items:    newLineItemResponses(view.Items),
		Subtotal: view.Subtotal,
	}
}

func newGeocodeResponse(point *orb.Point) *GeocodeResponse {
	if point == nil {
		return nil
	}

	return &GeocodeResponse{Lat: point.Lat(), Lng: point.Lon()}
}

func newRatesResponse(quote *usecase.RateQuote) RatesResponse {
	quotes := make([]QuoteResponse, 0, len(quote.Quotes))
	for _, q := range quote.Quotes {
		quotes = append(quotes, QuoteResponse{
			CarrierID:       q.CarrierID,
			CarrierName:     q.CarrierName,
			ServiceLevelID:  q.ServiceLevelID,
			ServiceName:     q.ServiceName,
			PriceExclVat:    q.PriceExclVat,
			PriceInclVat:    q.PriceInclVat,
			Currency:        q.Currency,
			MinDeliveryDays: q.Delivery.MinDays,
			MaxDeliveryDays: q.Delivery.MaxDays,
		})
	}

	return RatesResponse{
		Quotes: quotes,
		Parcel: ParcelResponse{
			LengthCm: quote.Parcel.LengthCm,
			WidthCm:  quote.Parcel.WidthCm,
			HeightCm: quote.Parcel.HeightCm,
			WeightKg: quote.Parcel.WeightKg,
		},
		DeclaredValue: quote.DeclaredValue,
		Geocode:       newGeocodeResponse(quote.Destination.Location),
	}
}

func newOrderResponse(order *entity.Order) OrderResponse {
	lines := make([]OrderLineResponse, 0, len(order.Lines))
	for _, line := range order.Lines {
		lines = append(lines, OrderLineResponse{
			ProductID:           line.ProductID,
			Name:                line.Name,
			Quantity:            line.Quantity,
			UnitPriceAtPurchase: line.UnitPriceAtPurchase,
		})
	}

	return OrderResponse{
		ID:                    order.ID,
		Status:                order.Status,
		TotalAmount:           order.TotalAmount,
		ShippingCost:          order.ShippingCost,
		Currency:              order.Currency,
		Lines:                 lines,
		CarrierID:             order.CarrierID,
		ServiceLevelID:        order.ServiceLevelID,
		PaymentMethod:         order.PaymentMethod,
		ShipmentStatus:        order.ShipmentStatus,
		ShipmentError:         order.ShipmentError,
		TrackingReference:     order.TrackingNumber,
		LabelURL:              order.LabelURL,
		EstimatedDeliveryDate: order.EstimatedDeliveryDate,
		CreatedAt:             order.CreatedAt,
	}
}
