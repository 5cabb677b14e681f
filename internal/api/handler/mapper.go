package handler

import (
	"github.com/nearshop/geocore/internal/core/domain"
	"github.com/nearshop/geocore/internal/core/ports"
)

// --- Domain → HTTP response ---

func toCoordinate(c domain.Coordinate) coordinateResponse {
	return coordinateResponse{Lat: c.Lat, Lng: c.Lng}
}

func toCoordinatePtr(c *domain.Coordinate) *coordinateResponse {
	if c == nil {
		return nil
	}
	out := toCoordinate(*c)
	return &out
}

func toPolyline(path []domain.Coordinate) []coordinateResponse {
	out := make([]coordinateResponse, len(path))
	for i, p := range path {
		out[i] = toCoordinate(p)
	}
	return out
}

func toRouteResponse(r domain.RouteSummary) routeResponse {
	return routeResponse{
		DistanceText: r.DistanceText,
		DurationText: r.DurationText,
		StartAddress: r.StartAddress,
		EndAddress:   r.EndAddress,
		Polyline:     toPolyline(r.Polyline),
	}
}

func toShopResponse(s domain.Shop) shopResponse {
	return shopResponse{
		ID:       s.ID,
		Name:     s.Name,
		Location: s.Location,
		Pincode:  s.PostalCode,
		Inside:   s.Inside,
		Geofence: toPolyline(s.Geofence),
	}
}

func toDiscoverResponse(res *ports.DiscoverResult) discoverResponse {
	shops := make([]shopResponse, len(res.Shops))
	for i, s := range res.Shops {
		shops[i] = toShopResponse(s)
	}
	routes := make(map[string]routeResponse, len(res.Routes))
	for id, r := range res.Routes {
		routes[id] = toRouteResponse(r)
	}
	return discoverResponse{
		Center: toCoordinate(res.Center),
		Shops:  shops,
		Routes: routes,
	}
}

func toOrderResponse(o *domain.DeliveryOrder) orderResponse {
	items := make([]orderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = orderItemResponse{
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.Price,
		}
	}
	return orderResponse{
		ID:                    o.ID,
		ShopID:                o.ShopID,
		Status:                string(o.Status),
		Items:                 items,
		CustomerLocation:      toCoordinatePtr(o.CustomerLocation),
		DeliveryAgentLocation: toCoordinatePtr(o.DeliveryAgentLocation),
		EstimatedDeliveryTime: o.EstimatedDeliveryTime,
		CreatedAt:             o.CreatedAt,
	}
}

func toTrackingResponse(res *ports.TrackingResult) trackingResponse {
	out := trackingResponse{Order: toOrderResponse(res.Order)}
	if res.DeliveryRoute != nil {
		route := toRouteResponse(*res.DeliveryRoute)
		out.DeliveryRoute = &route
	}
	return out
}

func toListOrdersResponse(orders []*domain.DeliveryOrder) listOrdersResponse {
	out := make([]orderResponse, len(orders))
	for i, o := range orders {
		out[i] = toOrderResponse(o)
	}
	return listOrdersResponse{Orders: out}
}

func toGeocodeResponse(res *ports.GeocodeResult) geocodeResponse {
	return geocodeResponse{
		Location:         toCoordinate(res.Coordinate),
		FormattedAddress: res.FormattedAddress,
		Pincode:          ports.PostalCode(res.Components, ""),
	}
}

func toReverseGeocodeResponse(res *ports.ReverseGeocodeResult) reverseGeocodeResponse {
	return reverseGeocodeResponse{
		Address: res.Address,
		Pincode: ports.PostalCode(res.Components, ""),
	}
}
