package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/nearshop/geocore/internal/core/domain"
	"github.com/nearshop/geocore/internal/core/ports"
	"github.com/nearshop/geocore/internal/core/service"
)

// CustomerTrackers hands out per-customer location trackers.
type CustomerTrackers interface {
	Tracker(customerID string) *service.LocationTracker
}

// DiscoveryHandler handles shop discovery requests.
type DiscoveryHandler struct {
	service  ports.DiscoveryService
	trackers CustomerTrackers
}

func NewDiscoveryHandler(svc ports.DiscoveryService, trackers CustomerTrackers) *DiscoveryHandler {
	return &DiscoveryHandler{service: svc, trackers: trackers}
}

// Discover handles GET /v1/shops/discover.
//
// @Summary      Discover shops around the customer
// @Tags         shops
// @Produce      json
// @Param        customer_id    query     string  true   "Customer ID"
// @Param        lat            query     number  false  "Center latitude (defaults to tracked position)"
// @Param        lng            query     number  false  "Center longitude"
// @Param        radius_meters  query     number  false  "Search radius in meters (default 10000)"
// @Success      200            {object}  discoverResponse
// @Failure      400            {object}  errorResponse
// @Failure      500            {object}  errorResponse
// @Router       /v1/shops/discover [get]
func (h *DiscoveryHandler) Discover(c echo.Context) error {
	customerID := c.QueryParam("customer_id")
	if customerID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "customer_id is required")
	}

	center, err := h.resolveCenter(c, customerID)
	if err != nil {
		return err
	}

	var radius float64
	if raw := c.QueryParam("radius_meters"); raw != "" {
		radius, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "radius_meters must be a number")
		}
	}

	res, err := h.service.Discover(c.Request().Context(), ports.DiscoverInput{
		CustomerID:   customerID,
		Center:       center,
		RadiusMeters: radius,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toDiscoverResponse(res))
}

// resolveCenter takes lat/lng from the query when present, otherwise
// falls back to the customer's tracked position.
func (h *DiscoveryHandler) resolveCenter(c echo.Context, customerID string) (domain.Coordinate, error) {
	latRaw, lngRaw := c.QueryParam("lat"), c.QueryParam("lng")
	if latRaw == "" && lngRaw == "" {
		snap, known := h.trackers.Tracker(customerID).Snapshot()
		if !known {
			return domain.Coordinate{}, echo.NewHTTPError(http.StatusBadRequest,
				"no tracked position; pass lat and lng")
		}
		return snap, nil
	}

	lat, err := strconv.ParseFloat(latRaw, 64)
	if err != nil {
		return domain.Coordinate{}, echo.NewHTTPError(http.StatusBadRequest, "lat must be a number")
	}
	lng, err := strconv.ParseFloat(lngRaw, 64)
	if err != nil {
		return domain.Coordinate{}, echo.NewHTTPError(http.StatusBadRequest, "lng must be a number")
	}
	return domain.Coordinate{Lat: lat, Lng: lng}, nil
}
