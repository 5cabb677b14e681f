package domain

import "time"

// OrderStatus is the backend-reported lifecycle stage of a delivery
// order. The backend is authoritative; no transition table is enforced
// here — the core only reacts to whatever status it observes.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusAccepted  OrderStatus = "ACCEPTED"
	StatusInTransit OrderStatus = "IN_TRANSIT"
	StatusDelivered OrderStatus = "DELIVERED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// Terminal reports whether no further status changes are expected.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// OrderItem is a single line item on a delivery order.
type OrderItem struct {
	Name     string  `json:"name" bson:"name"`
	Quantity int     `json:"quantity" bson:"quantity"`
	Price    float64 `json:"price" bson:"price"`
}

// DeliveryOrder is the order detail snapshot returned by each poll.
// DeliveryAgentLocation is nil until an agent has been assigned and has
// reported a position.
type DeliveryOrder struct {
	ID                    string      `json:"id" bson:"_id,omitempty"`
	CustomerID            string      `json:"customer_id" bson:"customer_id"`
	ShopID                string      `json:"shop_id" bson:"shop_id"`
	Status                OrderStatus `json:"status" bson:"status"`
	Items                 []OrderItem `json:"items" bson:"items"`
	CustomerLocation      *Coordinate `json:"customer_location,omitempty" bson:"customer_location,omitempty"`
	DeliveryAgentLocation *Coordinate `json:"delivery_agent_location,omitempty" bson:"delivery_agent_location,omitempty"`
	EstimatedDeliveryTime *time.Time  `json:"estimated_delivery_time,omitempty" bson:"estimated_delivery_time,omitempty"`
	CreatedAt             time.Time   `json:"created_at" bson:"created_at"`
}
