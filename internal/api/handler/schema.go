package handler

import "time"

// --- Requests ---

type coordinateRequest struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lng float64 `json:"lng" validate:"min=-180,max=180"`
}

type updateAddressRequest struct {
	Address string `json:"address" validate:"required"`
}

type startTrackingRequest struct {
	// Granted carries the device-side permission prompt outcome. Nil
	// means the prompt was not shown again; recorded consent stands.
	Granted *bool `json:"granted"`
}

// --- Responses ---

type coordinateResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type routeResponse struct {
	DistanceText string               `json:"distance_text"`
	DurationText string               `json:"duration_text"`
	StartAddress string               `json:"start_address,omitempty"`
	EndAddress   string               `json:"end_address,omitempty"`
	Polyline     []coordinateResponse `json:"polyline"`
}

type shopResponse struct {
	ID       string               `json:"id"`
	Name     string               `json:"name"`
	Location string               `json:"location,omitempty"`
	Pincode  string               `json:"pincode,omitempty"`
	Inside   bool                 `json:"inside"`
	Geofence []coordinateResponse `json:"geofence"`
}

type discoverResponse struct {
	Center coordinateResponse       `json:"center"`
	Shops  []shopResponse           `json:"shops"`
	Routes map[string]routeResponse `json:"routes"`
}

type orderItemResponse struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type orderResponse struct {
	ID                    string              `json:"id"`
	ShopID                string              `json:"shop_id"`
	Status                string              `json:"status"`
	Items                 []orderItemResponse `json:"items"`
	CustomerLocation      *coordinateResponse `json:"customer_location,omitempty"`
	DeliveryAgentLocation *coordinateResponse `json:"delivery_agent_location,omitempty"`
	EstimatedDeliveryTime *time.Time          `json:"estimated_delivery_time,omitempty"`
	CreatedAt             time.Time           `json:"created_at"`
}

type trackingResponse struct {
	Order         orderResponse  `json:"order"`
	DeliveryRoute *routeResponse `json:"delivery_route,omitempty"`
}

type listOrdersResponse struct {
	Orders []orderResponse `json:"orders"`
}

type locationResponse struct {
	Location *coordinateResponse `json:"location"`
	State    string              `json:"state"`
}

type trackingStateResponse struct {
	State   string `json:"state"`
	Granted bool   `json:"granted"`
}

type geocodeResponse struct {
	Location         coordinateResponse `json:"location"`
	FormattedAddress string             `json:"formatted_address"`
	Pincode          string             `json:"pincode,omitempty"`
}

type reverseGeocodeResponse struct {
	Address string `json:"address"`
	Pincode string `json:"pincode,omitempty"`
}

type acceptedResponse struct {
	Message string `json:"message"`
}
