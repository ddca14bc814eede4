package carrier

import (
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"
	"storefront/internal/errors"

	"github.com/shopspring/decimal"
)

type addressPayload struct {
	Street     string   `json:"street"`
	Locality   string   `json:"locality"`
	Region     string   `json:"region,omitempty"`
	PostalCode string   `json:"postal_code"`
	Country    string   `json:"country"`
	Lat        *float64 `json:"lat,omitempty"`
	Lng        *float64 `json:"lng,omitempty"`
}

type contactPayload struct {
	Name    string `json:"name"`
	Company string `json:"company,omitempty"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
}

type parcelPayload struct {
	LengthCm float64 `json:"length_cm"`
	WidthCm  float64 `json:"width_cm"`
	HeightCm float64 `json:"height_cm"`
	WeightKg float64 `json:"weight_kg"`
}

type ratePayload struct {
	Origin        addressPayload  `json:"origin"`
	Destination   addressPayload  `json:"destination"`
	Parcel        parcelPayload   `json:"parcel"`
	DeclaredValue decimal.Decimal `json:"declared_value"`
	Currency      string          `json:"currency"`
}

type shipmentPayload struct {
	Reference          string          `json:"reference"`
	CarrierID          string          `json:"carrier_id"`
	ServiceLevelID     string          `json:"service_level_id"`
	Origin             addressPayload  `json:"origin"`
	OriginContact      contactPayload  `json:"origin_contact"`
	Destination        addressPayload  `json:"destination"`
	DestinationContact contactPayload  `json:"destination_contact"`
	Parcel             parcelPayload   `json:"parcel"`
	DeclaredValue      decimal.Decimal `json:"declared_value"`
	Currency           string          `json:"currency"`
}

type rateResponse struct {
	Rates []struct {
		CarrierID         string          `json:"carrier_id"`
		CarrierName       string          `json:"carrier_name"`
		ServiceLevelID    string          `json:"service_level_id"`
		ServiceName       string          `json:"service_name"`
		PriceExclVat      decimal.Decimal `json:"price_excl_vat"`
		PriceInclVat      decimal.Decimal `json:"price_incl_vat"`
		Currency          string          `json:"currency"`
		EstimatedDelivery struct {
			MinDays int `json:"min_days"`
			MaxDays int `json:"max_days"`
		} `json:"estimated_delivery"`
	} `json:"rates"`
}

type shipmentResponse struct {
	TrackingNumber        string `json:"tracking_number"`
	LabelURL              string `json:"label_url"`
	EstimatedDeliveryDate string `json:"estimated_delivery_date"`
}

func newAddressPayload(address entity.Address) addressPayload {
	payload := addressPayload{
		Street:     address.Street,
		Locality:   address.Locality,
		Region:     address.Region,
		PostalCode: address.PostalCode,
		Country:    address.Country,
	}
	if address.Location != nil {
		lat, lng := address.Location.Lat(), address.Location.Lon()
		payload.Lat = &lat
		payload.Lng = &lng
	}

	return payload
}

func newContactPayload(contact entity.Contact) contactPayload {
	return contactPayload(contact)
}

func newParcelPayload(parcel entity.Parcel) parcelPayload {
	return parcelPayload(parcel)
}

func newRatePayload(req service.RateRequest) ratePayload {
	return ratePayload{
		Origin:        newAddressPayload(req.Origin),
		Destination:   newAddressPayload(req.Destination),
		Parcel:        newParcelPayload(req.Parcel),
		DeclaredValue: req.DeclaredValue,
		Currency:      req.Currency,
	}
}

func newShipmentPayload(req service.ShipmentRequest) shipmentPayload {
	return shipmentPayload{
		Reference:          req.Reference,
		CarrierID:          req.Selection.CarrierID,
		ServiceLevelID:     req.Selection.ServiceLevelID,
		Origin:             newAddressPayload(req.Origin),
		OriginContact:      newContactPayload(req.OriginContact),
		Destination:        newAddressPayload(req.Destination),
		DestinationContact: newContactPayload(req.DestinationContact),
		Parcel:             newParcelPayload(req.Parcel),
		DeclaredValue:      req.DeclaredValue,
		Currency:           req.Currency,
	}
}

func (r rateResponse) toDomain() []entity.ShippingQuote {
	quotes := make([]entity.ShippingQuote, 0, len(r.Rates))
	for _, rate := range r.Rates {
		quotes = append(quotes, entity.ShippingQuote{
			CarrierID:      rate.CarrierID,
			CarrierName:    rate.CarrierName,
			ServiceLevelID: rate.ServiceLevelID,
			ServiceName:    rate.ServiceName,
			PriceExclVat:   rate.PriceExclVat,
			PriceInclVat:   rate.PriceInclVat,
			Currency:       rate.Currency,
			Delivery: entity.DeliveryWindow{
				MinDays: rate.EstimatedDelivery.MinDays,
				MaxDays: rate.EstimatedDelivery.MaxDays,
			},
		})
	}

	return quotes
}

func (r shipmentResponse) toDomain() (*entity.ShipmentRecord, error) {
	if r.TrackingNumber == "" {
		return nil, errors.New("carrier response has no tracking number")
	}

	record := &entity.ShipmentRecord{
		TrackingNumber: r.TrackingNumber,
		LabelURL:       r.LabelURL,
	}
	if r.EstimatedDeliveryDate != "" {
		eta, err := parseDeliveryDate(r.EstimatedDeliveryDate)
		if err != nil {
			return nil, err
		}
		record.EstimatedDeliveryDate = &eta
	}

	return record, nil
}

// parseDeliveryDate accepts a plain date or a full RFC 3339 timestamp.
func parseDeliveryDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, value); err == nil {
		return t, nil
	}

	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "invalid delivery date %q", value)
	}

	return t, nil
}
