package http

import (
	"net/http"

	"terabia/internal/core/application/usecases/commands"
	"terabia/internal/core/application/usecases/queries"
	"terabia/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// CreateProductRequest registers a catalog product for a seller.
type CreateProductRequest struct {
	SellerID string  `json:"seller_id" validate:"required,uuid"`
	Name     string  `json:"name"      validate:"required"`
	Price    float64 `json:"price"     validate:"gte=0"`
}

// ProductResponse is the created product, shaped for JSON transport.
type ProductResponse struct {
	ID       int64   `json:"id"`
	SellerID string  `json:"seller_id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	IsActive bool    `json:"is_active"`
}

// CreateProduct handles POST /products.
func (s *Server) CreateProduct(ctx echo.Context) error {
	var req CreateProductRequest
	if err := ctx.Bind(&req); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	sellerID, err := kernel.UUIDFromString(req.SellerID)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewCreateProductCommand(sellerID, req.Name, req.Price)
	if err != nil {
		return respondError(ctx, err)
	}

	created, err := s.createProductHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, ProductResponse{
		ID:       created.ID(),
		SellerID: created.SellerID().String(),
		Name:     created.Name(),
		Price:    created.Price(),
		IsActive: created.IsActive(),
	})
}

// GetSellerStats handles GET /users/stats/:seller_id.
func (s *Server) GetSellerStats(ctx echo.Context) error {
	sellerID, err := kernel.UUIDFromString(ctx.Param("seller_id"))
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetSellerStatsQuery(sellerID)
	if err != nil {
		return respondError(ctx, err)
	}

	stats, err := s.getSellerStatsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, stats)
}
