package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nearshop/geocore/internal/core/ports"
)

// TrackingHandler serves order tracking polls.
type TrackingHandler struct {
	service ports.TrackingService
}

func NewTrackingHandler(svc ports.TrackingService) *TrackingHandler {
	return &TrackingHandler{service: svc}
}

// Track handles GET /v1/orders/:id/tracking.
//
// @Summary      Refresh delivery tracking for an order
// @Tags         orders
// @Produce      json
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  trackingResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /v1/orders/{id}/tracking [get]
func (h *TrackingHandler) Track(c echo.Context) error {
	res, err := h.service.Refresh(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTrackingResponse(res))
}

// ListOrders handles GET /v1/customers/:id/orders.
//
// @Summary      List a customer's orders
// @Tags         orders
// @Produce      json
// @Param        id       path      string  true   "Customer ID"
// @Param        shop_id  query     string  false  "Restrict to one shop"
// @Success      200      {object}  listOrdersResponse
// @Failure      500      {object}  errorResponse
// @Router       /v1/customers/{id}/orders [get]
func (h *TrackingHandler) ListOrders(c echo.Context) error {
	orders, err := h.service.ListOrders(c.Request().Context(), c.Param("id"), c.QueryParam("shop_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListOrdersResponse(orders))
}
