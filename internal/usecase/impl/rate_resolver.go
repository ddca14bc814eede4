package impl

import (
	"context"
	"log/slog"

	"storefront/config"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"github.com/paulmach/orb"
	"go.uber.org/fx"
)

type rateResolver struct {
	logger   *slog.Logger
	geocoder service.Geocoder
	carrier  service.CarrierClient
	origin   entity.Address
	sender   entity.Contact
	currency string
}

// RateResolverParams holds dependencies for RateResolver, injected by Fx.
type RateResolverParams struct {
	fx.In

	Config   *config.Config
	Logger   *slog.Logger
	Geocoder service.Geocoder
	Carrier  service.CarrierClient
}

// NewRateResolver creates a rate resolver shipping from the configured warehouse.
func NewRateResolver(params RateResolverParams) usecase.RateResolver {
	origin, sender := warehouseOrigin(params.Config.Warehouse)

	return &rateResolver{
		logger:   params.Logger,
		geocoder: params.Geocoder,
		carrier:  params.Carrier,
		origin:   origin,
		sender:   sender,
		currency: params.Config.Carrier.Currency,
	}
}

func warehouseOrigin(cfg config.WarehouseConfig) (entity.Address, entity.Contact) {
	origin := entity.Address{
		Street:     cfg.Street,
		Locality:   cfg.Locality,
		Region:     cfg.Region,
		PostalCode: cfg.PostalCode,
		Country:    cfg.Country,
	}
	if cfg.Lat != 0 || cfg.Lng != 0 {
		origin = origin.WithLocation(orb.Point{cfg.Lng, cfg.Lat})
	}

	return origin, entity.Contact{
		Name:    cfg.Name,
		Company: cfg.Company,
		Email:   cfg.Email,
		Phone:   cfg.Phone,
	}
}

func (r *rateResolver) GetRates(ctx context.Context, items []entity.LineItem, destination entity.Address) (*usecase.RateQuote, error) {
	quote, err := r.prepare(ctx, items, destination)
	if err != nil {
		return nil, err
	}

	quotes, err := r.carrier.GetRates(ctx, service.RateRequest{
		Origin:        r.origin,
		Destination:   quote.Destination,
		Parcel:        quote.Parcel,
		DeclaredValue: quote.DeclaredValue,
		Currency:      r.currency,
	})
	if err != nil {
		return nil, err
	}
	quote.Quotes = quotes

	return quote, nil
}

func (r *rateResolver) MatchQuote(ctx context.Context, destination entity.Address, items []entity.LineItem, sel entity.QuoteSelection) (*usecase.RateQuote, *entity.ShippingQuote, error) {
	quote, err := r.GetRates(ctx, items, destination)
	if err != nil {
		return nil, nil, err
	}

	for i := range quote.Quotes {
		if quote.Quotes[i].Matches(sel) {
			return quote, &quote.Quotes[i], nil
		}
	}

	r.logger.InfoContext(ctx, "Selected shipping quote no longer offered",
		slog.String("carrier_id", sel.CarrierID),
		slog.String("service_level_id", sel.ServiceLevelID),
		slog.Int("offered", len(quote.Quotes)),
	)

	return quote, nil, nil
}

func (r *rateResolver) ValidateQuote(ctx context.Context, destination entity.Address, items []entity.LineItem, sel entity.QuoteSelection) (bool, error) {
	_, matched, err := r.MatchQuote(ctx, destination, items, sel)
	if err != nil {
		return false, err
	}

	return matched != nil, nil
}

func (r *rateResolver) CreateShipment(ctx context.Context, order *entity.Order, items []entity.LineItem) (*entity.ShipmentRecord, error) {
	quote, err := r.prepare(ctx, items, order.ShippingAddress)
	if err != nil {
		return nil, err
	}

	return r.carrier.CreateShipment(ctx, service.ShipmentRequest{
		Reference:          order.ID.String(),
		Origin:             r.origin,
		OriginContact:      r.sender,
		Destination:        quote.Destination,
		DestinationContact: order.Contact,
		Parcel:             quote.Parcel,
		DeclaredValue:      quote.DeclaredValue,
		Currency:           r.currency,
		Selection:          order.QuoteSelection(),
	})
}

// prepare geocodes the destination and derives parcel and declared value.
func (r *rateResolver) prepare(ctx context.Context, items []entity.LineItem, destination entity.Address) (*usecase.RateQuote, error) {
	if len(items) == 0 {
		return nil, domainerrors.ErrEmptyCart
	}

	point, err := r.geocoder.Geocode(ctx, destination)
	if err != nil {
		if errors.Is(err, service.ErrGeocodeNotFound) {
			return nil, domainerrors.ErrAddressUnresolvable
		}

		return nil, errors.Wrap(err, "failed to geocode destination")
	}

	return &usecase.RateQuote{
		Destination:   destination.WithLocation(point),
		Parcel:        entity.AggregateParcel(items),
		DeclaredValue: entity.Subtotal(items),
	}, nil
}
