package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/api/middleware"
	"storefront/internal/delivery/api/response"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// CartHandlerParams holds dependencies for CartHandler, injected by Fx.
type CartHandlerParams struct {
	fx.In

	CartUC usecase.CartUsecase
	Logger *slog.Logger
}

// CartHandler serves the persisted cart of signed-in users and the product lookup
// used by anonymous carts.
type CartHandler struct {
	cartUC usecase.CartUsecase
	logger *slog.Logger
}

// NewCartHandler is the constructor for CartHandler
func NewCartHandler(params CartHandlerParams) *CartHandler {
	return &CartHandler{
		cartUC: params.CartUC,
		logger: params.Logger,
	}
}

type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

type SyncCartRequest struct {
	Items []CartItemRequest `json:"items" validate:"max=200,dive"`
}

type removedLineResponse struct {
	ProductID string `json:"productId"`
	Removed   bool   `json:"removed"`
}

func (h *CartHandler) GetCart(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	view, err := h.cartUC.GetCart(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newCartResponse(view))
}

func (h *CartHandler) AddItem(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req CartItemRequest
	if valid, err := bindAndValidate(c, &req); !valid {
		return err
	}

	line, err := h.cartUC.AddItem(c.Request().Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, newLineItemResponse(*line))
}

// UpdateQuantity sets the quantity of a line; zero or less removes it.
func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	productID, ok := pathUUID(c, "productId")
	if !ok {
		return response.BadRequest(c, "INVALID_ID", "Invalid product ID")
	}

	var req UpdateQuantityRequest
	if valid, err := bindAndValidate(c, &req); !valid {
		return err
	}

	line, err := h.cartUC.UpdateQuantity(c.Request().Context(), userID, productID, *req.Quantity)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	if line == nil {
		return response.Success(c, http.StatusOK, removedLineResponse{ProductID: productID.String(), Removed: true})
	}

	return response.Success(c, http.StatusOK, newLineItemResponse(*line))
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	productID, ok := pathUUID(c, "productId")
	if !ok {
		return response.BadRequest(c, "INVALID_ID", "Invalid product ID")
	}

	if err := h.cartUC.RemoveItem(c.Request().Context(), userID, productID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, removedLineResponse{ProductID: productID.String(), Removed: true})
}

func (h *CartHandler) ClearCart(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	if err := h.cartUC.ClearCart(c.Request().Context(), userID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, CartResponse{Items: []LineItemResponse{}})
}

// SyncCart merges the anonymous cart sent after sign-in into the persisted one.
func (h *CartHandler) SyncCart(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req SyncCartRequest
	if valid, err := bindAndValidate(c, &req); !valid {
		return err
	}

	view, err := h.cartUC.SyncCart(c.Request().Context(), userID, toCartItemInputs(req.Items))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	h.logger.Debug("Cart synced", slog.String("user_id", userID.String()), slog.Int("lines", len(view.Items)))

	return response.Success(c, http.StatusOK, newCartResponse(view))
}

func (h *CartHandler) GetProduct(c echo.Context) error {
	productID, ok := pathUUID(c, "id")
	if !ok {
		return response.BadRequest(c, "INVALID_ID", "Invalid product ID")
	}

	product, err := h.cartUC.GetProduct(c.Request().Context(), productID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, ProductResponse{
		ID:       product.ID,
		Name:     product.Name,
		Price:    product.Price,
		ImageRef: product.ImageRef,
		Stock:    product.Stock,
	})
}
