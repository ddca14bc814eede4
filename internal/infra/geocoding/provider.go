package geocoding

import (
	"log/slog"
	"net/http"

	"storefront/config"
	"storefront/internal/domain/constants"
	"storefront/internal/domain/service"
	"storefront/internal/infra/cache"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type GeocoderParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
	Cache  cache.Store
}

// NewGeocoder builds primary then secondary providers into a chain and
// wraps it with the cache.
func NewGeocoder(params GeocoderParams) (service.Geocoder, error) {
	cfg := params.Config.Geocoding
	httpClient := &http.Client{}

	var providers []Provider
	for _, providerCfg := range []config.GeocodeProviderConfig{cfg.Primary, cfg.Secondary} {
		if providerCfg.Provider == "" {
			continue
		}
		if providerCfg.Provider == constants.GeocodeProviderGoogle && providerCfg.APIKey == "" {
			params.Logger.Warn("Google geocoder has no API key, skipping provider")

			continue
		}

		geocoder, err := newProvider(providerCfg, httpClient)
		if err != nil {
			return nil, err
		}
		providers = append(providers, Provider{Name: providerCfg.Provider, Geocoder: geocoder})
	}
	if len(providers) == 0 {
		return nil, errors.New("at least one geocoding provider must be configured")
	}

	logger := params.Logger.With(slog.String("component", "geocoder"))
	chain := NewChain(logger, providers...)

	return NewCachedGeocoder(chain, params.Cache, cfg.CacheTTL, logger), nil
}

func newProvider(cfg config.GeocodeProviderConfig, httpClient *http.Client) (service.Geocoder, error) {
	switch cfg.Provider {
	case constants.GeocodeProviderNominatim:
		return NewNominatimGeocoder(cfg.BaseURL, cfg.UserAgent, cfg.Timeout, httpClient), nil
	case constants.GeocodeProviderGoogle:
		if cfg.APIKey == "" {
			return nil, errors.New("api key is required for google geocoder")
		}

		return NewGoogleGeocoder(cfg.BaseURL, cfg.APIKey, cfg.Timeout, httpClient), nil
	default:
		return nil, errors.Errorf("unknown geocoding provider: %s", cfg.Provider)
	}
}

// Module provides the geocoding FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewGeocoder),
)
