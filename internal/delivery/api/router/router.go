// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"storefront/internal/delivery/api/middleware"
	"storefront/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	CartHandler     *handler.CartHandler
	ShippingHandler *handler.ShippingHandler
	CheckoutHandler *handler.CheckoutHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	cartHandler     *handler.CartHandler
	shippingHandler *handler.ShippingHandler
	checkoutHandler *handler.CheckoutHandler
	authMiddleware  *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		cartHandler:     params.CartHandler,
		shippingHandler: params.ShippingHandler,
		checkoutHandler: params.CheckoutHandler,
		authMiddleware:  params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Catalog lookup used by anonymous carts
	e.GET("/products/:id", r.cartHandler.GetProduct)

	// Persisted cart of signed-in users
	cartGroup := e.Group("/cart")
	cartGroup.Use(r.authMiddleware.Authenticate)
	{
		cartGroup.GET("", r.cartHandler.GetCart)
		cartGroup.POST("/add", r.cartHandler.AddItem)
		cartGroup.POST("/sync", r.cartHandler.SyncCart)
		cartGroup.PUT("/:productId", r.cartHandler.UpdateQuantity)
		cartGroup.DELETE("/:productId", r.cartHandler.RemoveItem)
		cartGroup.DELETE("", r.cartHandler.ClearCart)
	}

	shippingGroup := e.Group("/shipping")
	{
		shippingGroup.POST("/rates", r.shippingHandler.GetRates, r.authMiddleware.OptionalAuthenticate)
		shippingGroup.POST("/validate-address", r.shippingHandler.ValidateAddress)
		shippingGroup.POST("/create-shipment", r.shippingHandler.CreateShipment, r.authMiddleware.Authenticate)
		// Carrier push, authenticated by HMAC signature instead of a bearer token
		shippingGroup.POST("/shipment-webhook", r.shippingHandler.ShipmentWebhook)
	}

	checkoutGroup := e.Group("/checkout")
	checkoutGroup.Use(r.authMiddleware.Authenticate)
	{
		checkoutGroup.POST("/process", r.checkoutHandler.ProcessCheckout)
		checkoutGroup.GET("/orders", r.checkoutHandler.ListOrders)
		checkoutGroup.GET("/orders/:id", r.checkoutHandler.GetOrder)
		checkoutGroup.GET("/orders/:id/tracking-qr", r.checkoutHandler.TrackingQR)
	}
}
