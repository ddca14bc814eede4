package geocoding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"
	"storefront/internal/infra/cache"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"
)

const (
	cacheKeyPrefix = "geocode:"

	// sharedLookupTimeout bounds a coalesced lookup once its callers are gone.
	sharedLookupTimeout = 30 * time.Second
)

type cachedPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// cachedGeocoder memoizes successful lookups and coalesces identical
// concurrent ones. Not-found results are never cached.
type cachedGeocoder struct {
	next   service.Geocoder
	store  cache.Store
	ttl    time.Duration
	group  singleflight.Group
	logger *slog.Logger
}

func NewCachedGeocoder(next service.Geocoder, store cache.Store, ttl time.Duration, logger *slog.Logger) service.Geocoder {
	return &cachedGeocoder{
		next:   next,
		store:  store,
		ttl:    ttl,
		logger: logger,
	}
}

func (g *cachedGeocoder) Geocode(ctx context.Context, address entity.Address) (orb.Point, error) {
	key := cacheKey(address)

	if point, ok := g.lookup(ctx, key); ok {
		return point, nil
	}

	// The shared lookup runs detached from any one caller; each caller
	// stops waiting when its own context ends.
	ch := g.group.DoChan(key, func() (any, error) {
		sharedCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedLookupTimeout)
		defer cancel()

		point, err := g.next.Geocode(sharedCtx, address)
		if err != nil {
			return orb.Point{}, err
		}
		g.save(sharedCtx, key, point)

		return point, nil
	})

	select {
	case <-ctx.Done():
		return orb.Point{}, errors.WithStack(ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return orb.Point{}, res.Err
		}

		return res.Val.(orb.Point), nil
	}
}

func (g *cachedGeocoder) lookup(ctx context.Context, key string) (orb.Point, bool) {
	data, err := g.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			g.logger.WarnContext(ctx, "Geocode cache read failed", slog.Any("error", err))
		}

		return orb.Point{}, false
	}

	var cached cachedPoint
	if err := json.Unmarshal(data, &cached); err != nil {
		g.logger.WarnContext(ctx, "Geocode cache entry is corrupt", slog.String("key", key))

		return orb.Point{}, false
	}

	return orb.Point{cached.Lng, cached.Lat}, true
}

func (g *cachedGeocoder) save(ctx context.Context, key string, point orb.Point) {
	data, err := json.Marshal(cachedPoint{Lat: point.Lat(), Lng: point.Lon()})
	if err != nil {
		return
	}
	if err := g.store.Set(ctx, key, data, g.ttl); err != nil {
		g.logger.WarnContext(ctx, "Geocode cache write failed", slog.Any("error", err))
	}
}

func cacheKey(address entity.Address) string {
	normalized := strings.ToLower(strings.Join(strings.Fields(address.SingleLine()), " "))
	sum := sha256.Sum256([]byte(normalized))

	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}
