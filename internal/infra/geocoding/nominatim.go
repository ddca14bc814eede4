// Package geocoding resolves shipping addresses to coordinates through an
// ordered chain of HTTP providers.
package geocoding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// nominatimGeocoder queries an OpenStreetMap Nominatim instance.
type nominatimGeocoder struct {
	baseURL    string
	userAgent  string
	timeout    time.Duration
	httpClient *http.Client
}

type nominatimPlace struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func NewNominatimGeocoder(baseURL, userAgent string, timeout time.Duration, httpClient *http.Client) service.Geocoder {
	return &nominatimGeocoder{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
		timeout:    timeout,
		httpClient: httpClient,
	}
}

func (g *nominatimGeocoder) Geocode(ctx context.Context, address entity.Address) (orb.Point, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	query := url.Values{}
	query.Set("q", address.SingleLine())
	query.Set("format", "jsonv2")
	query.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/search?"+query.Encode(), nil)
	if err != nil {
		return orb.Point{}, errors.WithStack(err)
	}
	// Nominatim usage policy rejects requests without an identifying agent.
	req.Header.Set("User-Agent", g.userAgent)
	req.Header.Set("Accept", "application/json")

	var places []nominatimPlace
	if err := doJSON(g.httpClient, req, &places); err != nil {
		return orb.Point{}, err
	}
	if len(places) == 0 {
		return orb.Point{}, service.ErrGeocodeNotFound
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return orb.Point{}, errors.Wrap(err, "invalid latitude in nominatim response")
	}
	lng, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return orb.Point{}, errors.Wrap(err, "invalid longitude in nominatim response")
	}

	return orb.Point{lng, lat}, nil
}

func doJSON(client *http.Client, req *http.Request, out any) error {
	resp, err := client.Do(req)
	if err != nil {
		return errors.WithStack(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "failed to decode geocoder response")
	}

	return nil
}
