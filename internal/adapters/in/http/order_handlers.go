package http

import (
	"net/http"
	"strconv"

	"terabia/internal/core/application/usecases/commands"
	"terabia/internal/core/application/usecases/queries"
	"terabia/internal/core/domain/model/kernel"
	"terabia/internal/core/domain/model/order"
	"terabia/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// LineItemRequest is one purchased item of a checkout payload.
type LineItemRequest struct {
	ProductID int64   `json:"product_id" validate:"required,gt=0"`
	Quantity  int     `json:"quantity"   validate:"required,gt=0"`
	Price     float64 `json:"price"      validate:"gte=0"`
}

// CreateOrderRequest is the checkout payload.
type CreateOrderRequest struct {
	BuyerID         string            `json:"buyer_id"         validate:"required,uuid"`
	Items           []LineItemRequest `json:"items"            validate:"required,min=1,dive"`
	DeliveryFee     float64           `json:"delivery_fee"     validate:"gte=0"`
	DeliveryAddress string            `json:"delivery_address" validate:"required"`
	DeliveryCity    string            `json:"delivery_city"    validate:"required"`
	DeliveryLat     *float64          `json:"delivery_lat"`
	DeliveryLon     *float64          `json:"delivery_lon"`
	BuyerNotes      string            `json:"buyer_notes"`
}

// UpdateOrderRequest is a partial order update; absent fields stay untouched.
type UpdateOrderRequest struct {
	Status          *string  `json:"status"`
	PaymentStatus   *string  `json:"payment_status"`
	DeliveryAddress *string  `json:"delivery_address"`
	DeliveryCity    *string  `json:"delivery_city"`
	DeliveryLat     *float64 `json:"delivery_lat"`
	DeliveryLon     *float64 `json:"delivery_lon"`
}

// CreateOrder handles POST /orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	buyerID, err := kernel.UUIDFromString(req.BuyerID)
	if err != nil {
		return respondError(ctx, err)
	}

	items := make([]order.LineItem, 0, len(req.Items))
	for _, itemReq := range req.Items {
		item, itemErr := order.NewLineItem(itemReq.ProductID, itemReq.Quantity, itemReq.Price)
		if itemErr != nil {
			return respondError(ctx, itemErr)
		}
		items = append(items, item)
	}

	coords, err := coordsFromRequest(req.DeliveryLat, req.DeliveryLon)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewCreateOrderCommand(
		buyerID, items, req.DeliveryFee,
		req.DeliveryAddress, req.DeliveryCity, coords, req.BuyerNotes,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return s.respondWithOrder(ctx, http.StatusCreated, created.ID())
}

// GetOrder handles GET /orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := pathID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	return s.respondWithOrder(ctx, http.StatusOK, orderID)
}

// GetOrders handles GET /orders.
func (s *Server) GetOrders(ctx echo.Context) error {
	orders, err := s.getOrdersHandler.Handle(ctx.Request().Context(), queries.NewGetOrdersQuery())
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orders)
}

// GetOrdersByBuyer handles GET /orders/buyer/:buyer_id.
func (s *Server) GetOrdersByBuyer(ctx echo.Context) error {
	buyerID, err := kernel.UUIDFromString(ctx.Param("buyer_id"))
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetOrdersByBuyerQuery(buyerID)
	if err != nil {
		return respondError(ctx, err)
	}

	orders, err := s.getOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orders)
}

// UpdateOrder handles PUT /orders/:id.
func (s *Server) UpdateOrder(ctx echo.Context) error {
	orderID, err := pathID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	var req UpdateOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "invalid request body")
	}

	var status *order.Status
	if req.Status != nil {
		s := order.Status(*req.Status)
		status = &s
	}
	var paymentStatus *order.PaymentStatus
	if req.PaymentStatus != nil {
		p := order.PaymentStatus(*req.PaymentStatus)
		paymentStatus = &p
	}

	coords, err := coordsFromRequest(req.DeliveryLat, req.DeliveryLon)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewUpdateOrderCommand(
		orderID, status, paymentStatus,
		req.DeliveryAddress, req.DeliveryCity, coords,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	if _, err = s.updateOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return s.respondWithOrder(ctx, http.StatusOK, orderID)
}

// DeleteOrder handles DELETE /orders/:id.
func (s *Server) DeleteOrder(ctx echo.Context) error {
	orderID, err := pathID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewDeleteOrderCommand(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.deleteOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]string{"message": "Order deleted successfully"})
}

// respondWithOrder replies with the canonical read model of one order, so
// writes and reads always render the same shape.
func (s *Server) respondWithOrder(ctx echo.Context, code int, orderID int64) error {
	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	resp, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(code, resp)
}

// pathID parses a positive integer path parameter. The returned error maps
// to 400 through respondError.
func pathID(ctx echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errs.NewValueIsInvalidError(name)
	}
	return id, nil
}

func coordsFromRequest(lat, lon *float64) (*kernel.Coords, error) {
	if lat == nil || lon == nil {
		return nil, nil
	}
	coords, err := kernel.NewCoords(*lat, *lon)
	if err != nil {
		return nil, err
	}
	return &coords, nil
}
