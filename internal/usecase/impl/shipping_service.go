package impl

import (
	"context"
	"log/slog"

	"storefront/config"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"go.uber.org/fx"
)

type shippingService struct {
	logger      *slog.Logger
	resolver    usecase.RateResolver
	geocoder    service.Geocoder
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	warehouse   *orb.Point
}

// ShippingServiceParams holds dependencies for ShippingService, injected by Fx.
type ShippingServiceParams struct {
	fx.In

	Config      *config.Config
	Logger      *slog.Logger
	Resolver    usecase.RateResolver
	Geocoder    service.Geocoder
	CartRepo    repository.CartRepository
	ProductRepo repository.ProductRepository
}

// NewShippingService creates a new shipping service instance
func NewShippingService(params ShippingServiceParams) usecase.ShippingUsecase {
	origin, _ := warehouseOrigin(params.Config.Warehouse)

	return &shippingService{
		logger:      params.Logger,
		resolver:    params.Resolver,
		geocoder:    params.Geocoder,
		cartRepo:    params.CartRepo,
		productRepo: params.ProductRepo,
		warehouse:   origin.Location,
	}
}

func (s *shippingService) GetRates(ctx context.Context, userID uuid.UUID, items []usecase.CartItemInput, destination entity.Address) (*usecase.RateQuote, error) {
	lines, err := s.resolveItems(ctx, userID, items)
	if err != nil {
		return nil, err
	}

	return s.resolver.GetRates(ctx, lines, destination)
}

// resolveItems returns the persisted cart for signed-in callers and the
// catalog-priced client items otherwise.
func (s *shippingService) resolveItems(ctx context.Context, userID uuid.UUID, items []usecase.CartItemInput) ([]entity.LineItem, error) {
	if userID == uuid.Nil {
		for _, item := range items {
			if item.Quantity <= 0 {
				return nil, domainerrors.ErrInvalidQuantity.WithDetails(item.ProductID.String())
			}
		}

		return priceItems(ctx, s.productRepo, items)
	}

	lines, err := s.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list cart")
	}
	if len(items) > 0 && !sameQuantities(lines, items) {
		return nil, domainerrors.ErrCartMismatch
	}

	return lines, nil
}

func (s *shippingService) ValidateAddress(ctx context.Context, address entity.Address) (*usecase.AddressValidation, error) {
	point, err := s.geocoder.Geocode(ctx, address)
	if err != nil {
		if errors.Is(err, service.ErrGeocodeNotFound) {
			return &usecase.AddressValidation{IsValid: false}, nil
		}

		return nil, errors.Wrap(err, "failed to geocode address")
	}

	result := &usecase.AddressValidation{
		IsValid:  true,
		Location: &point,
	}
	if s.warehouse != nil {
		km := geo.Distance(*s.warehouse, point) / 1000
		result.DistanceKm = &km
	}

	return result, nil
}

// sameQuantities reports whether client items describe exactly lines.
func sameQuantities(lines []entity.LineItem, items []usecase.CartItemInput) bool {
	if len(lines) != len(items) {
		return false
	}

	want := make(map[uuid.UUID]int, len(lines))
	for _, line := range lines {
		want[line.ProductID] = line.Quantity
	}
	for _, item := range items {
		quantity, ok := want[item.ProductID]
		if !ok || quantity != item.Quantity {
			return false
		}
		delete(want, item.ProductID)
	}

	return len(want) == 0
}
