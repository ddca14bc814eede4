package handler

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"storefront/config"
	"storefront/internal/delivery/api/middleware"
	"storefront/internal/delivery/api/response"
	"storefront/internal/delivery/api/validator"
	deliverycontext "storefront/internal/delivery/context"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// HeaderWebhookSignature carries hex(HMAC-SHA256(body, shippingWebhook.secret)).
const HeaderWebhookSignature = "X-Webhook-Signature"

// ShippingHandlerParams holds dependencies for ShippingHandler, injected by Fx.
type ShippingHandlerParams struct {
	fx.In

	Config        *config.Config
	ShippingUC    usecase.ShippingUsecase
	FulfillmentUC usecase.FulfillmentUsecase
	Logger        *slog.Logger
}

type ShippingHandler struct {
	webhookSecret []byte
	shippingUC    usecase.ShippingUsecase
	fulfillmentUC usecase.FulfillmentUsecase
	logger        *slog.Logger
}

// NewShippingHandler is the constructor for ShippingHandler
func NewShippingHandler(params ShippingHandlerParams) *ShippingHandler {
	if params.Config.ShippingWebhook.Secret == "" && params.Config.Env.Env != "develop" {
		params.Logger.Warn("Shipping webhook secret is empty, carrier callbacks are accepted unsigned",
			slog.String("env", params.Config.Env.Env),
		)
	}

	return &ShippingHandler{
		webhookSecret: []byte(params.Config.ShippingWebhook.Secret),
		shippingUC:    params.ShippingUC,
		fulfillmentUC: params.FulfillmentUC,
		logger:        params.Logger,
	}
}

type RatesRequest struct {
	CartItems       []CartItemRequest `json:"cartItems" validate:"max=200,dive"`
	DeliveryAddress AddressRequest    `json:"deliveryAddress"`
}

type ValidateAddressRequest struct {
	Address AddressRequest `json:"address"`
}

type CreateShipmentRequest struct {
	OrderID uuid.UUID `json:"orderId" validate:"required"`
}

type ShipmentWebhookRequest struct {
	TrackingReference     string     `json:"trackingReference" validate:"required"`
	Status                string     `json:"status" validate:"required"`
	EstimatedDeliveryDate *time.Time `json:"estimatedDeliveryDate"`
}

// GetRates quotes the cart against the carrier. Signed-in callers are quoted
// from their persisted cart, anonymous callers from the items they send.
func (h *ShippingHandler) GetRates(c echo.Context) error {
	var req RatesRequest
	if valid, err := bindAndValidate(c, &req); !valid {
		return err
	}

	userID, _ := middleware.GetUserID(c)
	if userID == uuid.Nil && len(req.CartItems) == 0 {
		return response.BadRequestWithDetails(c,
			domainerrors.ErrValidationFailed.ErrorCode(),
			domainerrors.ErrValidationFailed.Message(),
			map[string]string{"cartItems": "required"},
		)
	}

	quote, err := h.shippingUC.GetRates(c.Request().Context(), userID, toCartItemInputs(req.CartItems), req.DeliveryAddress.toEntity())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newRatesResponse(quote))
}

func (h *ShippingHandler) ValidateAddress(c echo.Context) error {
	var req ValidateAddressRequest
	if valid, err := bindAndValidate(c, &req); !valid {
		return err
	}

	result, err := h.shippingUC.ValidateAddress(c.Request().Context(), req.Address.toEntity())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, AddressValidationResponse{
		IsValid:    result.IsValid,
		Geocode:    newGeocodeResponse(result.Location),
		DistanceKm: result.DistanceKm,
	})
}

// CreateShipment requests the carrier shipment of an order that has none yet,
// typically after an earlier attempt failed.
func (h *ShippingHandler) CreateShipment(c echo.Context) error {
	actor, ok := actorOf(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req CreateShipmentRequest
	if valid, err := bindAndValidate(c, &req); !valid {
		return err
	}

	order, err := h.fulfillmentUC.RetryShipment(c.Request().Context(), actor, req.OrderID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newOrderResponse(order))
}

// ShipmentWebhook applies a carrier status push. Deliveries are at least once
// and may arrive out of order; replays are acknowledged without change.
func (h *ShippingHandler) ShipmentWebhook(c echo.Context) error {
	logger := deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger)

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Failed to read request body")
	}

	if !h.verifySignature(body, c.Request().Header.Get(HeaderWebhookSignature)) {
		logger.Warn("Rejected shipment webhook with invalid signature")

		return response.HandleAppError(c, domainerrors.ErrInvalidWebhookSignature)
	}

	var req ShipmentWebhookRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Request body is not valid JSON for this endpoint")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequestWithDetails(c,
			domainerrors.ErrValidationFailed.ErrorCode(),
			domainerrors.ErrValidationFailed.Message(),
			validator.FieldErrors(err),
		)
	}

	applied, err := h.fulfillmentUC.ApplyCarrierStatus(c.Request().Context(), &usecase.ShipmentStatusUpdate{
		TrackingNumber:        req.TrackingReference,
		Status:                req.Status,
		EstimatedDeliveryDate: req.EstimatedDeliveryDate,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	logger.Info("Shipment webhook processed",
		slog.String("tracking_number", req.TrackingReference),
		slog.String("status", req.Status),
		slog.Bool("applied", applied),
	)

	return response.Success(c, http.StatusOK, map[string]bool{"applied": applied})
}

// verifySignature accepts everything when no secret is configured.
func (h *ShippingHandler) verifySignature(body []byte, signature string) bool {
	if len(h.webhookSecret) == 0 {
		return true
	}

	got, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(signature), "sha256="))
	if err != nil || len(got) == 0 {
		return false
	}

	mac := hmac.New(sha256.New, h.webhookSecret)
	mac.Write(body)

	return hmac.Equal(got, mac.Sum(nil))
}
