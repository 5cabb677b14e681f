package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nearshop/geocore/internal/core/domain"
	"github.com/nearshop/geocore/internal/core/ports"
	"github.com/nearshop/geocore/internal/infrastructure/feed"
)

// FixDispatcher is the interface the handler uses to enqueue device
// position fixes.
type FixDispatcher interface {
	Enqueue(fix feed.PositionFix)
}

// ConsentStore records device-reported tracking consent per customer.
type ConsentStore interface {
	SetConsent(customerID string, granted bool)
}

// CustomerHandler handles customer location and address operations.
type CustomerHandler struct {
	trackers   CustomerTrackers
	dispatcher FixDispatcher
	consent    ConsentStore
	customers  ports.CustomerRepository
	directions ports.Directions

	// watchCtx bounds the lifetime of watch goroutines to the server,
	// not to the HTTP request that started them.
	watchCtx context.Context
}

func NewCustomerHandler(
	watchCtx context.Context,
	trackers CustomerTrackers,
	dispatcher FixDispatcher,
	consent ConsentStore,
	customers ports.CustomerRepository,
	directions ports.Directions,
) *CustomerHandler {
	return &CustomerHandler{
		trackers:   trackers,
		dispatcher: dispatcher,
		consent:    consent,
		customers:  customers,
		directions: directions,
		watchCtx:   watchCtx,
	}
}

// ReportLocation handles PUT /v1/customers/:id/location — accepts a
// device GPS fix and enqueues it, returning 202.
//
// @Summary      Report a device position fix
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Customer ID"
// @Param        body  body      coordinateRequest  true  "Position fix"
// @Success      202   {object}  acceptedResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/customers/{id}/location [put]
func (h *CustomerHandler) ReportLocation(c echo.Context) error {
	var req coordinateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	h.dispatcher.Enqueue(feed.PositionFix{
		CustomerID: c.Param("id"),
		Location:   domain.Coordinate{Lat: req.Lat, Lng: req.Lng},
	})
	return c.JSON(http.StatusAccepted, acceptedResponse{Message: "fix accepted"})
}

// GetLocation handles GET /v1/customers/:id/location — returns the
// tracked position, falling back to the persisted record when the
// in-memory tracker has no snapshot yet.
//
// @Summary      Get the customer's last known position
// @Tags         customers
// @Produce      json
// @Param        id   path      string  true  "Customer ID"
// @Success      200  {object}  locationResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/customers/{id}/location [get]
func (h *CustomerHandler) GetLocation(c echo.Context) error {
	customerID := c.Param("id")
	tracker := h.trackers.Tracker(customerID)

	if snap, known := tracker.Snapshot(); known {
		loc := toCoordinate(snap)
		return c.JSON(http.StatusOK, locationResponse{
			Location: &loc,
			State:    tracker.State().String(),
		})
	}

	record, err := h.customers.Find(c.Request().Context(), customerID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, locationResponse{
		Location: toCoordinatePtr(record.Location),
		State:    tracker.State().String(),
	})
}

// UpdateAddress handles PUT /v1/customers/:id/address — geocodes the
// free-text address, overrides the tracked position, and persists the
// address upstream.
//
// @Summary      Set the customer's delivery address
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        id    path      string                true  "Customer ID"
// @Param        body  body      updateAddressRequest  true  "Free-text address"
// @Success      200   {object}  geocodeResponse
// @Failure      400   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /v1/customers/{id}/address [put]
func (h *CustomerHandler) UpdateAddress(c echo.Context) error {
	var req updateAddressRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	customerID := c.Param("id")
	ctx := c.Request().Context()

	resolved, err := h.directions.Geocode(ctx, req.Address)
	if err != nil {
		return err
	}

	// The geocoded point becomes the tracked position; the registry's
	// persistence observer pushes it upstream.
	if err := h.trackers.Tracker(customerID).SetManualLocation(resolved.Coordinate); err != nil {
		return err
	}

	pincode := ports.PostalCode(resolved.Components, "")
	if err := h.customers.UpdateAddress(ctx, customerID, resolved.FormattedAddress, pincode); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toGeocodeResponse(resolved))
}

// StartTracking handles POST /v1/customers/:id/tracking/start.
//
// The optional body reports the device's permission prompt outcome;
// tracking starts only when consent resolves to granted.
//
// @Summary      Start continuous location tracking
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        id    path      string                true   "Customer ID"
// @Param        body  body      startTrackingRequest  false  "Prompt outcome"
// @Success      200   {object}  trackingStateResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/customers/{id}/tracking/start [post]
func (h *CustomerHandler) StartTracking(c echo.Context) error {
	customerID := c.Param("id")

	var req startTrackingRequest
	if err := c.Bind(&req); err == nil && req.Granted != nil {
		h.consent.SetConsent(customerID, *req.Granted)
	}

	tracker := h.trackers.Tracker(customerID)
	granted, err := tracker.RequestPermission(c.Request().Context())
	if err != nil {
		return err
	}
	if !granted {
		return domain.ErrPermissionDenied
	}

	if err := tracker.StartWatch(h.watchCtx); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, trackingStateResponse{
		State:   tracker.State().String(),
		Granted: true,
	})
}

// StopTracking handles POST /v1/customers/:id/tracking/stop.
//
// @Summary      Stop continuous location tracking
// @Tags         customers
// @Produce      json
// @Param        id   path      string  true  "Customer ID"
// @Success      200  {object}  trackingStateResponse
// @Router       /v1/customers/{id}/tracking/stop [post]
func (h *CustomerHandler) StopTracking(c echo.Context) error {
	tracker := h.trackers.Tracker(c.Param("id"))
	tracker.StopWatch()
	return c.JSON(http.StatusOK, trackingStateResponse{
		State: tracker.State().String(),
	})
}
