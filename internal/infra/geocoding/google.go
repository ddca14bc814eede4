package geocoding

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

const (
	googleStatusOK          = "OK"
	googleStatusZeroResults = "ZERO_RESULTS"
)

// googleGeocoder queries the Google Maps Geocoding API.
type googleGeocoder struct {
	baseURL    string
	apiKey     string
	timeout    time.Duration
	httpClient *http.Client
}

type googleResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

func NewGoogleGeocoder(baseURL, apiKey string, timeout time.Duration, httpClient *http.Client) service.Geocoder {
	return &googleGeocoder{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		timeout:    timeout,
		httpClient: httpClient,
	}
}

func (g *googleGeocoder) Geocode(ctx context.Context, address entity.Address) (orb.Point, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	query := url.Values{}
	query.Set("address", address.SingleLine())
	query.Set("key", g.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/maps/api/geocode/json?"+query.Encode(), nil)
	if err != nil {
		return orb.Point{}, errors.WithStack(err)
	}

	var body googleResponse
	if err := doJSON(g.httpClient, req, &body); err != nil {
		return orb.Point{}, err
	}

	switch body.Status {
	case googleStatusOK:
	case googleStatusZeroResults:
		return orb.Point{}, service.ErrGeocodeNotFound
	default:
		return orb.Point{}, errors.Errorf("google geocoder status %s: %s", body.Status, body.ErrorMessage)
	}
	if len(body.Results) == 0 {
		return orb.Point{}, service.ErrGeocodeNotFound
	}

	location := body.Results[0].Geometry.Location

	return orb.Point{location.Lng, location.Lat}, nil
}
