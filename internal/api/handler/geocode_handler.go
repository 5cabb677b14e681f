package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/nearshop/geocore/internal/core/domain"
	"github.com/nearshop/geocore/internal/core/ports"
)

// GeocodeHandler exposes the directions provider's geocoding endpoints.
type GeocodeHandler struct {
	directions ports.Directions
}

func NewGeocodeHandler(directions ports.Directions) *GeocodeHandler {
	return &GeocodeHandler{directions: directions}
}

// Geocode handles GET /v1/geocode.
//
// @Summary      Resolve a free-text address to a coordinate
// @Tags         geocode
// @Produce      json
// @Param        address  query     string  true  "Free-text address"
// @Success      200      {object}  geocodeResponse
// @Failure      400      {object}  errorResponse
// @Failure      502      {object}  errorResponse
// @Router       /v1/geocode [get]
func (h *GeocodeHandler) Geocode(c echo.Context) error {
	address := c.QueryParam("address")
	if address == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "address is required")
	}

	res, err := h.directions.Geocode(c.Request().Context(), address)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toGeocodeResponse(res))
}

// ReverseGeocode handles GET /v1/geocode/reverse.
//
// @Summary      Resolve a coordinate to its nearest address
// @Tags         geocode
// @Produce      json
// @Param        lat  query     number  true  "Latitude"
// @Param        lng  query     number  true  "Longitude"
// @Success      200  {object}  reverseGeocodeResponse
// @Failure      400  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /v1/geocode/reverse [get]
func (h *GeocodeHandler) ReverseGeocode(c echo.Context) error {
	lat, err := strconv.ParseFloat(c.QueryParam("lat"), 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "lat must be a number")
	}
	lng, err := strconv.ParseFloat(c.QueryParam("lng"), 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "lng must be a number")
	}

	at := domain.Coordinate{Lat: lat, Lng: lng}
	if !at.Valid() {
		return domain.ErrInvalidCoordinate
	}

	res, err := h.directions.ReverseGeocode(c.Request().Context(), at)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toReverseGeocodeResponse(res))
}
