// Package carrier is the HTTP client of the shipping carrier API. Every call
// goes through one circuit breaker so a failing carrier is not hammered by
// checkout traffic.
package carrier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"storefront/config"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/errors"

	"github.com/sony/gobreaker/v2"
)

const maxErrorBody = 2048

// rejectedError is a 4xx answer. The carrier is healthy, the request is not.
type rejectedError struct {
	status int
	body   string
}

func (e *rejectedError) Error() string {
	return fmt.Sprintf("carrier rejected request with status %d: %s", e.status, e.body)
}

type httpClient struct {
	baseURL    string
	apiKey     string
	timeout    time.Duration
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[[]byte]
	logger     *slog.Logger
}

// NewHTTPClient builds a carrier client from cfg.
func NewHTTPClient(cfg config.CarrierConfig, client *http.Client, logger *slog.Logger) service.CarrierClient {
	logger = logger.With(slog.String("component", "carrier"))

	settings := gobreaker.Settings{
		Name:        "carrier",
		MaxRequests: cfg.Breaker.HalfOpenRequests,
		Timeout:     cfg.Breaker.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.Breaker.ConsecutiveFailures
		},
		IsSuccessful: func(err error) bool {
			var rejected *rejectedError

			return err == nil || errors.As(err, &rejected)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	}

	return &httpClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		timeout:    cfg.Timeout,
		httpClient: client,
		breaker:    gobreaker.NewCircuitBreaker[[]byte](settings),
		logger:     logger,
	}
}

func (c *httpClient) GetRates(ctx context.Context, req service.RateRequest) ([]entity.ShippingQuote, error) {
	body, err := c.post(ctx, "/rates", "", newRatePayload(req))
	if err != nil {
		return nil, err
	}

	var resp rateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errors.Join(domainerrors.ErrCarrierUnavailable, errors.Wrap(err, "failed to decode carrier rates"))
	}

	return resp.toDomain(), nil
}

func (c *httpClient) CreateShipment(ctx context.Context, req service.ShipmentRequest) (*entity.ShipmentRecord, error) {
	body, err := c.post(ctx, "/shipments", req.Reference, newShipmentPayload(req))
	if err != nil {
		return nil, err
	}

	var resp shipmentResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errors.Join(domainerrors.ErrCarrierUnavailable, errors.Wrap(err, "failed to decode carrier shipment"))
	}

	return resp.toDomain()
}

// post sends payload and returns the 2xx body. Failures are mapped to
// CARRIER_REJECTED for 4xx answers and CARRIER_UNAVAILABLE otherwise.
func (c *httpClient) post(ctx context.Context, path, idempotencyKey string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode carrier request")
	}

	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.send(ctx, path, idempotencyKey, data)
	})
	if err == nil {
		return body, nil
	}

	var rejected *rejectedError
	switch {
	case errors.As(err, &rejected):
		// The carrier's own message stays in the logs; clients only see the status.
		c.logger.WarnContext(ctx, "Carrier rejected request",
			slog.String("path", path),
			slog.Int("status", rejected.status),
			slog.String("body", rejected.body),
		)

		return nil, domainerrors.ErrCarrierRejected.WithDetails(fmt.Sprintf("carrier answered with status %d", rejected.status))
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		c.logger.WarnContext(ctx, "Carrier call short-circuited", slog.String("path", path))

		return nil, errors.Join(domainerrors.ErrCarrierUnavailable, err)
	default:
		c.logger.ErrorContext(ctx, "Carrier call failed", slog.String("path", path), slog.Any("error", err))

		return nil, errors.Join(domainerrors.ErrCarrierUnavailable, err)
	}
}

func (c *httpClient) send(ctx context.Context, path, idempotencyKey string, data []byte) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "carrier request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read carrier response")
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return body, nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests:
		return nil, &rejectedError{status: resp.StatusCode, body: truncate(string(body))}
	default:
		return nil, errors.Errorf("carrier returned status %d", resp.StatusCode)
	}
}

func truncate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxErrorBody {
		return s[:maxErrorBody]
	}

	return s
}
