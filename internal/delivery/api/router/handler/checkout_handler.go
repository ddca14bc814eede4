package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"storefront/internal/delivery/api/response"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// HeaderIdempotencyKey lets clients retry a checkout without placing a second order.
const HeaderIdempotencyKey = "Idempotency-Key"

const (
	defaultOrdersLimit = 20
	maxIdempotencyKey  = 128
)

// CheckoutHandlerParams holds dependencies for CheckoutHandler, injected by Fx.
type CheckoutHandlerParams struct {
	fx.In

	CheckoutUC usecase.CheckoutUsecase
	Logger     *slog.Logger
}

type CheckoutHandler struct {
	checkoutUC usecase.CheckoutUsecase
	logger     *slog.Logger
}

// NewCheckoutHandler is the constructor for CheckoutHandler
func NewCheckoutHandler(params CheckoutHandlerParams) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutUC: params.CheckoutUC,
		logger:     params.Logger,
	}
}

type ProcessCheckoutRequest struct {
	UserData         ContactRequest          `json:"userData"`
	CartItems        []CartItemRequest       `json:"cartItems" validate:"max=200,dive"`
	SelectedShipping SelectedShippingRequest `json:"selectedShipping"`
	PaymentMethod    string                  `json:"paymentMethod" validate:"required"`
}

// ProcessCheckout places an order from the persisted cart of the caller.
func (h *CheckoutHandler) ProcessCheckout(c echo.Context) error {
	actor, ok := actorOf(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	idempotencyKey := c.Request().Header.Get(HeaderIdempotencyKey)
	if len(idempotencyKey) > maxIdempotencyKey {
		return response.BadRequest(c, "INVALID_IDEMPOTENCY_KEY", "Idempotency-Key must be at most 128 characters")
	}

	var req ProcessCheckoutRequest
	if valid, err := bindAndValidate(c, &req); !valid {
		return err
	}

	order, err := h.checkoutUC.PlaceOrder(c.Request().Context(), &usecase.PlaceOrderInput{
		UserID:         actor.UserID,
		IdempotencyKey: idempotencyKey,
		CartItems:      toCartItemInputs(req.CartItems),
		Address:        req.UserData.Address.toEntity(),
		Contact:        req.UserData.toEntity(),
		Selection:      req.SelectedShipping.toEntity(),
		PaymentMethod:  req.PaymentMethod,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, CheckoutResponse{
		Success: true,
		OrderID: order.ID,
		Order:   newOrderResponse(order),
	})
}

func (h *CheckoutHandler) ListOrders(c echo.Context) error {
	actor, ok := actorOf(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	limit := defaultOrdersLimit
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			return response.BadRequest(c, "INVALID_LIMIT", "limit must be a positive integer")
		}
		limit = parsed
	}

	offset := 0
	if offsetStr := c.QueryParam("offset"); offsetStr != "" {
		parsed, err := strconv.Atoi(offsetStr)
		if err != nil || parsed < 0 {
			return response.BadRequest(c, "INVALID_OFFSET", "offset must be a non-negative integer")
		}
		offset = parsed
	}

	orders, err := h.checkoutUC.ListOrders(c.Request().Context(), actor, limit, offset)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	out := make([]OrderResponse, 0, len(orders))
	for _, order := range orders {
		out = append(out, newOrderResponse(order))
	}

	return response.Success(c, http.StatusOK, out)
}

func (h *CheckoutHandler) GetOrder(c echo.Context) error {
	actor, ok := actorOf(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	orderID, ok := pathUUID(c, "id")
	if !ok {
		return response.BadRequest(c, "INVALID_ID", "Invalid order ID")
	}

	order, err := h.checkoutUC.GetOrder(c.Request().Context(), actor, orderID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newOrderResponse(order))
}

// TrackingQR returns the tracking reference as a PNG QR code for packing slips.
func (h *CheckoutHandler) TrackingQR(c echo.Context) error {
	actor, ok := actorOf(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	orderID, ok := pathUUID(c, "id")
	if !ok {
		return response.BadRequest(c, "INVALID_ID", "Invalid order ID")
	}

	png, err := h.checkoutUC.TrackingQR(c.Request().Context(), actor, orderID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
