// Package http exposes the coordination core over REST. Handlers translate
// JSON payloads into commands and queries and map domain errors onto status
// codes; no business rules live here.
package http

import (
	"errors"
	"net/http"

	"terabia/internal/core/application/usecases/commands"
	"terabia/internal/core/application/usecases/queries"
	"terabia/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler    commands.CreateOrderCommandHandler
	updateOrderHandler    commands.UpdateOrderCommandHandler
	deleteOrderHandler    commands.DeleteOrderCommandHandler
	createDeliveryHandler commands.CreateDeliveryCommandHandler
	updateDeliveryHandler commands.UpdateDeliveryCommandHandler
	deleteDeliveryHandler commands.DeleteDeliveryCommandHandler
	acceptDeliveryHandler commands.AcceptDeliveryCommandHandler
	createProductHandler  commands.CreateProductCommandHandler

	// Query handlers
	getOrderHandler       queries.GetOrderQueryHandler
	getOrdersHandler      queries.GetOrdersQueryHandler
	getDeliveryHandler    queries.GetDeliveryQueryHandler
	getDeliveriesHandler  queries.GetDeliveriesQueryHandler
	getSellerStatsHandler queries.GetSellerStatsQueryHandler
}

// NewServer creates an HTTP server with the required command and query
// handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	updateOrderHandler commands.UpdateOrderCommandHandler,
	deleteOrderHandler commands.DeleteOrderCommandHandler,
	createDeliveryHandler commands.CreateDeliveryCommandHandler,
	updateDeliveryHandler commands.UpdateDeliveryCommandHandler,
	deleteDeliveryHandler commands.DeleteDeliveryCommandHandler,
	acceptDeliveryHandler commands.AcceptDeliveryCommandHandler,
	createProductHandler commands.CreateProductCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getOrdersHandler queries.GetOrdersQueryHandler,
	getDeliveryHandler queries.GetDeliveryQueryHandler,
	getDeliveriesHandler queries.GetDeliveriesQueryHandler,
	getSellerStatsHandler queries.GetSellerStatsQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:    createOrderHandler,
		updateOrderHandler:    updateOrderHandler,
		deleteOrderHandler:    deleteOrderHandler,
		createDeliveryHandler: createDeliveryHandler,
		updateDeliveryHandler: updateDeliveryHandler,
		deleteDeliveryHandler: deleteDeliveryHandler,
		acceptDeliveryHandler: acceptDeliveryHandler,
		createProductHandler:  createProductHandler,
		getOrderHandler:       getOrderHandler,
		getOrdersHandler:      getOrdersHandler,
		getDeliveryHandler:    getDeliveryHandler,
		getDeliveriesHandler:  getDeliveriesHandler,
		getSellerStatsHandler: getSellerStatsHandler,
	}
}

// NewEcho builds the Echo instance with all routes registered.
func NewEcho(s *Server) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &requestValidator{validate: validator.New()}
	e.Use(middleware.Recover())

	e.GET("/health", s.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.POST("/orders", s.CreateOrder)
	e.GET("/orders", s.GetOrders)
	e.GET("/orders/buyer/:buyer_id", s.GetOrdersByBuyer)
	e.GET("/orders/:id", s.GetOrder)
	e.PUT("/orders/:id", s.UpdateOrder)
	e.DELETE("/orders/:id", s.DeleteOrder)

	// The static delivery routes are registered ahead of /:id so that
	// "available", "mine" and "order" are never parsed as delivery ids.
	e.POST("/deliveries", s.CreateDelivery)
	e.GET("/deliveries", s.GetDeliveries)
	e.GET("/deliveries/available", s.GetAvailableDeliveries)
	e.GET("/deliveries/mine/:agency_id", s.GetAgencyDeliveries)
	e.GET("/deliveries/order/:order_id", s.GetDeliveryByOrder)
	e.GET("/deliveries/:id", s.GetDelivery)
	e.PUT("/deliveries/:id", s.UpdateDelivery)
	e.DELETE("/deliveries/:id", s.DeleteDelivery)
	e.POST("/deliveries/:id/accept", s.AcceptDelivery)

	e.POST("/products", s.CreateProduct)
	e.GET("/users/stats/:seller_id", s.GetSellerStats)

	return e
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// ErrorResponse is the JSON error envelope of every non-2xx reply.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// respondError maps domain errors onto status codes. Unrecognized errors
// become opaque 500s so storage details never leak to clients.
func respondError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return errorJSON(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrConflict):
		return errorJSON(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	case errors.Is(err, errs.ErrSequenceIsExhausted):
		return errorJSON(ctx, http.StatusServiceUnavailable, "order number allocation failed, retry later")
	default:
		return errorJSON(ctx, http.StatusInternalServerError, "internal error")
	}
}

func errorJSON(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, ErrorResponse{Code: code, Message: message})
}
