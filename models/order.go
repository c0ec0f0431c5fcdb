package models

import "time"

// Order statuses. The lifecycle is a strict chain with two branch points
// (accept/reject, cancel while in the kitchen).
const (
	OrderStatusPlaced         = "placed"
	OrderStatusAccepted       = "accepted"
	OrderStatusRejected       = "rejected"
	OrderStatusPreparing      = "preparing"
	OrderStatusReady          = "ready"
	OrderStatusOutForDelivery = "out_for_delivery"
	OrderStatusDelivered      = "delivered"
	OrderStatusCancelled      = "cancelled"
)

const (
	DeliveryMethodDelivery = "delivery"
	DeliveryMethodPickup   = "pickup"
)

// transitions is the legal next-status table. Terminal statuses have no entry.
var transitions = map[string][]string{
	OrderStatusPlaced:         {OrderStatusAccepted, OrderStatusRejected},
	OrderStatusAccepted:       {OrderStatusPreparing, OrderStatusCancelled},
	OrderStatusPreparing:      {OrderStatusReady, OrderStatusCancelled},
	OrderStatusReady:          {OrderStatusOutForDelivery},
	OrderStatusOutForDelivery: {OrderStatusDelivered},
}

// ValidTransition reports whether from -> to is a legal status change.
func ValidTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// NextStatuses returns the legal next statuses for a status (nil if terminal).
func NextStatuses(from string) []string {
	next := transitions[from]
	out := make([]string, len(next))
	copy(out, next)
	return out
}

// IsTerminalStatus reports whether a status has no outgoing transitions.
func IsTerminalStatus(s string) bool {
	switch s {
	case OrderStatusDelivered, OrderStatusCancelled, OrderStatusRejected:
		return true
	}
	return false
}

func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPlaced, OrderStatusAccepted, OrderStatusRejected,
		OrderStatusPreparing, OrderStatusReady, OrderStatusOutForDelivery,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// OrderItem is one line of an order.
type OrderItem struct {
	MenuItemID string `json:"menu_item_id"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	PriceCents int64  `json:"price_cents"`
}

// Order is a single customer purchase owned by one seller. Orders are
// created by the checkout flow; only the status ever changes afterwards.
type Order struct {
	ID             int64       `json:"id"`
	Status         string      `json:"status"`
	Date           string      `json:"date"` // menu date the order was placed against
	CustomerName   string      `json:"customer_name"`
	DeliveryMethod string      `json:"delivery_method"`
	Address        string      `json:"address,omitempty"` // required iff delivery
	TotalCents     int64       `json:"total_cents"`
	CreatedAt      time.Time   `json:"created_at"`
	Items          []OrderItem `json:"items"`
}

// IsActive reports whether the order still needs operator attention.
func (o *Order) IsActive() bool {
	return !IsTerminalStatus(o.Status)
}

// CreateOrderInput is the insert payload used by the checkout collaborator.
type CreateOrderInput struct {
	Date           string      `json:"date"`
	CustomerName   string      `json:"customer_name"`
	DeliveryMethod string      `json:"delivery_method"`
	Address        string      `json:"address,omitempty"`
	Items          []OrderItem `json:"items"`
}
