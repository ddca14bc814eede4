package carrier

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"storefront/config"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/errors"

	"github.com/paulmach/orb"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(baseURL string) config.CarrierConfig {
	return config.CarrierConfig{
		BaseURL:  baseURL,
		APIKey:   "carrier-key",
		Currency: "EUR",
		Timeout:  time.Second,
		Breaker: config.BreakerConfig{
			ConsecutiveFailures: 2,
			OpenTimeout:         time.Minute,
			HalfOpenRequests:    1,
		},
	}
}

func testRateRequest() service.RateRequest {
	destination := entity.Address{Street: "Rue de Rivoli 1", Locality: "Paris", PostalCode: "75001", Country: "FR"}.
		WithLocation(orb.Point{2.35, 48.86})

	return service.RateRequest{
		Origin:        entity.Address{Street: "Damrak 1", Locality: "Amsterdam", PostalCode: "1012LG", Country: "NL"},
		Destination:   destination,
		Parcel:        entity.Parcel{LengthCm: 30, WidthCm: 20, HeightCm: 15, WeightKg: 2.5},
		DeclaredValue: decimal.RequireFromString("250"),
		Currency:      "EUR",
	}
}

const ratesBody = `{"rates":[
	{"carrier_id":"dhl","carrier_name":"DHL","service_level_id":"express","service_name":"Express",
	 "price_excl_vat":"12.40","price_incl_vat":"15.00","currency":"EUR","estimated_delivery":{"min_days":1,"max_days":2}},
	{"carrier_id":"postnl","carrier_name":"PostNL","service_level_id":"standard","service_name":"Standard",
	 "price_excl_vat":4.13,"price_incl_vat":5,"currency":"EUR","estimated_delivery":{"min_days":2,"max_days":4}}
]}`

func TestHTTPClient_GetRates(t *testing.T) {
	var payload ratePayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rates", r.URL.Path)
		assert.Equal(t, "Bearer carrier-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		_, _ = w.Write([]byte(ratesBody))
	}))
	defer server.Close()

	client := NewHTTPClient(testConfig(server.URL), server.Client(), newDiscardLogger())

	quotes, err := client.GetRates(context.Background(), testRateRequest())
	require.NoError(t, err)
	require.Len(t, quotes, 2)

	assert.Equal(t, "dhl", quotes[0].CarrierID)
	assert.Equal(t, "express", quotes[0].ServiceLevelID)
	assert.True(t, quotes[0].PriceInclVat.Equal(decimal.RequireFromString("15.00")))
	assert.Equal(t, entity.DeliveryWindow{MinDays: 1, MaxDays: 2}, quotes[0].Delivery)
	assert.True(t, quotes[1].PriceExclVat.Equal(decimal.RequireFromString("4.13")))

	assert.True(t, payload.DeclaredValue.Equal(decimal.RequireFromString("250")))
	assert.Equal(t, 2.5, payload.Parcel.WeightKg)
	require.NotNil(t, payload.Destination.Lat)
	assert.Equal(t, 48.86, *payload.Destination.Lat)
	assert.Nil(t, payload.Origin.Lat)
}

func TestHTTPClient_RejectedRequestDoesNotTripBreaker(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":"postal code invalid"}`))
	}))
	defer server.Close()

	client := NewHTTPClient(testConfig(server.URL), server.Client(), newDiscardLogger())

	for range 3 {
		_, err := client.GetRates(context.Background(), testRateRequest())
		assert.ErrorIs(t, err, domainerrors.ErrCarrierRejected)
	}
	assert.Equal(t, int32(3), calls.Load())
}

func TestHTTPClient_RejectionBodyIsNotExposed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":"account 4711 has no contract for zone NL-2"}`))
	}))
	defer server.Close()

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	client := NewHTTPClient(testConfig(server.URL), server.Client(), logger)

	_, err := client.GetRates(context.Background(), testRateRequest())
	require.ErrorIs(t, err, domainerrors.ErrCarrierRejected)

	appErr, ok := errors.AsType[domainerrors.AppError](err)
	require.True(t, ok)
	assert.Equal(t, "carrier answered with status 422", appErr.Details())
	assert.NotContains(t, appErr.Error(), "contract")
	assert.Contains(t, logs.String(), "no contract for zone NL-2")
}

func TestHTTPClient_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewHTTPClient(testConfig(server.URL), server.Client(), newDiscardLogger())

	for range 4 {
		_, err := client.GetRates(context.Background(), testRateRequest())
		assert.ErrorIs(t, err, domainerrors.ErrCarrierUnavailable)
	}
	// Two failures trip the breaker; later calls never reach the server.
	assert.Equal(t, int32(2), calls.Load())
}

func TestHTTPClient_TimeoutIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.Timeout = 20 * time.Millisecond
	client := NewHTTPClient(cfg, server.Client(), newDiscardLogger())

	_, err := client.GetRates(context.Background(), testRateRequest())
	assert.ErrorIs(t, err, domainerrors.ErrCarrierUnavailable)
}

func TestHTTPClient_CreateShipment(t *testing.T) {
	var payload shipmentPayload
	var idempotencyKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/shipments", r.URL.Path)
		idempotencyKey = r.Header.Get("Idempotency-Key")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"tracking_number":"TRK123","label_url":"https://labels/1.pdf","estimated_delivery_date":"2026-10-20"}`))
	}))
	defer server.Close()

	client := NewHTTPClient(testConfig(server.URL), server.Client(), newDiscardLogger())

	rates := testRateRequest()
	record, err := client.CreateShipment(context.Background(), service.ShipmentRequest{
		Reference:          "order-1",
		Origin:             rates.Origin,
		OriginContact:      entity.Contact{Name: "Warehouse", Email: "wh@example.com"},
		Destination:        rates.Destination,
		DestinationContact: entity.Contact{Name: "Jane", Email: "jane@example.com"},
		Parcel:             rates.Parcel,
		DeclaredValue:      rates.DeclaredValue,
		Currency:           "EUR",
		Selection:          entity.QuoteSelection{CarrierID: "dhl", ServiceLevelID: "express"},
	})
	require.NoError(t, err)

	assert.Equal(t, "order-1", idempotencyKey)
	assert.Equal(t, "express", payload.ServiceLevelID)
	assert.Equal(t, "jane@example.com", payload.DestinationContact.Email)
	assert.Equal(t, "TRK123", record.TrackingNumber)
	require.NotNil(t, record.EstimatedDeliveryDate)
	assert.Equal(t, "2026-10-20", record.EstimatedDeliveryDate.Format(time.DateOnly))
}

func TestShipmentResponse_RequiresTrackingNumber(t *testing.T) {
	_, err := shipmentResponse{LabelURL: "x"}.toDomain()
	assert.Error(t, err)
}
