package geocoding

import (
	"context"
	"log/slog"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"

	"github.com/paulmach/orb"
)

// Provider is a named link of a Chain.
type Provider struct {
	Name     string
	Geocoder service.Geocoder
}

// Chain tries each provider once, in order, and returns the first hit.
// An error or an empty result from one provider moves on to the next.
type Chain struct {
	providers []Provider
	logger    *slog.Logger
}

func NewChain(logger *slog.Logger, providers ...Provider) *Chain {
	return &Chain{providers: providers, logger: logger}
}

func (c *Chain) Geocode(ctx context.Context, address entity.Address) (orb.Point, error) {
	for _, provider := range c.providers {
		point, err := provider.Geocoder.Geocode(ctx, address)
		if err == nil {
			return point, nil
		}

		c.logger.WarnContext(ctx, "Geocoding provider failed",
			slog.String("provider", provider.Name),
			slog.Any("error", err),
		)

		if ctx.Err() != nil {
			break
		}
	}

	return orb.Point{}, service.ErrGeocodeNotFound
}
