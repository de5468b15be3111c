package http

import (
	"net/http"

	"terabia/internal/core/application/usecases/commands"
	"terabia/internal/core/application/usecases/queries"
	"terabia/internal/core/domain/model/delivery"
	"terabia/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// CreateDeliveryRequest opens a delivery job for an order.
type CreateDeliveryRequest struct {
	OrderID int64 `json:"order_id" validate:"required,gt=0"`
}

// UpdateDeliveryRequest moves a claimed job through its lifecycle.
type UpdateDeliveryRequest struct {
	Status string `json:"status" validate:"required"`
}

// AcceptDeliveryRequest identifies the agency racing for a job.
type AcceptDeliveryRequest struct {
	AgencyID string `json:"agency_id" validate:"required,uuid"`
}

// CreateDelivery handles POST /deliveries.
func (s *Server) CreateDelivery(ctx echo.Context) error {
	var req CreateDeliveryRequest
	if err := ctx.Bind(&req); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	cmd, err := commands.NewCreateDeliveryCommand(req.OrderID)
	if err != nil {
		return respondError(ctx, err)
	}

	created, err := s.createDeliveryHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return s.respondWithDelivery(ctx, http.StatusCreated, created.ID())
}

// GetDelivery handles GET /deliveries/:id.
func (s *Server) GetDelivery(ctx echo.Context) error {
	deliveryID, err := pathID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	return s.respondWithDelivery(ctx, http.StatusOK, deliveryID)
}

// GetDeliveries handles GET /deliveries.
func (s *Server) GetDeliveries(ctx echo.Context) error {
	deliveries, err := s.getDeliveriesHandler.Handle(
		ctx.Request().Context(), queries.NewGetDeliveriesQuery())
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, deliveries)
}

// GetAvailableDeliveries handles GET /deliveries/available.
func (s *Server) GetAvailableDeliveries(ctx echo.Context) error {
	deliveries, err := s.getDeliveriesHandler.Handle(
		ctx.Request().Context(), queries.NewGetAvailableDeliveriesQuery())
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, deliveries)
}

// GetAgencyDeliveries handles GET /deliveries/mine/:agency_id.
func (s *Server) GetAgencyDeliveries(ctx echo.Context) error {
	agencyID, err := kernel.UUIDFromString(ctx.Param("agency_id"))
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetAgencyDeliveriesQuery(agencyID)
	if err != nil {
		return respondError(ctx, err)
	}

	deliveries, err := s.getDeliveriesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, deliveries)
}

// GetDeliveryByOrder handles GET /deliveries/order/:order_id.
func (s *Server) GetDeliveryByOrder(ctx echo.Context) error {
	orderID, err := pathID(ctx, "order_id")
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetDeliveryByOrderQuery(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	resp, err := s.getDeliveryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, resp)
}

// UpdateDelivery handles PUT /deliveries/:id.
func (s *Server) UpdateDelivery(ctx echo.Context) error {
	deliveryID, err := pathID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	var req UpdateDeliveryRequest
	if err = ctx.Bind(&req); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err = ctx.Validate(&req); err != nil {
		return err
	}

	cmd, err := commands.NewUpdateDeliveryCommand(deliveryID, delivery.Status(req.Status))
	if err != nil {
		return respondError(ctx, err)
	}

	if _, err = s.updateDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return s.respondWithDelivery(ctx, http.StatusOK, deliveryID)
}

// DeleteDelivery handles DELETE /deliveries/:id.
func (s *Server) DeleteDelivery(ctx echo.Context) error {
	deliveryID, err := pathID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewDeleteDeliveryCommand(deliveryID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.deleteDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]string{"message": "Delivery deleted successfully"})
}

// AcceptDelivery handles POST /deliveries/:id/accept. Exactly one agency wins
// a job; every later attempt gets 409, a missing job 404.
func (s *Server) AcceptDelivery(ctx echo.Context) error {
	deliveryID, err := pathID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	var req AcceptDeliveryRequest
	if err = ctx.Bind(&req); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err = ctx.Validate(&req); err != nil {
		return err
	}

	agencyID, err := kernel.UUIDFromString(req.AgencyID)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewAcceptDeliveryCommand(deliveryID, agencyID)
	if err != nil {
		return respondError(ctx, err)
	}

	if _, err = s.acceptDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return s.respondWithDelivery(ctx, http.StatusOK, deliveryID)
}

// respondWithDelivery replies with the canonical read model of one delivery.
func (s *Server) respondWithDelivery(ctx echo.Context, code int, deliveryID int64) error {
	query, err := queries.NewGetDeliveryQuery(deliveryID)
	if err != nil {
		return respondError(ctx, err)
	}

	resp, err := s.getDeliveryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(code, resp)
}
