// Package service defines the contracts of the external collaborators the
// use cases depend on: geocoding, the carrier API, event publishing, tokens
// and label rendering.
package service

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"

	"github.com/paulmach/orb"
)

// ErrGeocodeNotFound is returned when no provider could locate an address.
var ErrGeocodeNotFound = errors.New("address could not be geocoded")

// Geocoder resolves an address to a coordinate. The returned point is
// orb order: X is longitude, Y is latitude.
type Geocoder interface {
	Geocode(ctx context.Context, address entity.Address) (orb.Point, error)
}
