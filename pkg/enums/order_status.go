package enums

import "fmt"

// OrderStatus tracks the lifecycle of a customer order.
type OrderStatus string

const (
	OrderStatusCreated           OrderStatus = "created"
	OrderStatusInventoryReserved OrderStatus = "inventory_reserved"
	OrderStatusPaymentAuthorized OrderStatus = "payment_authorized"
	OrderStatusConfirmed         OrderStatus = "confirmed"
	OrderStatusCancelled         OrderStatus = "cancelled"
	OrderStatusFailed            OrderStatus = "failed"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusCreated,
	OrderStatusInventoryReserved,
	OrderStatusPaymentAuthorized,
	OrderStatusConfirmed,
	OrderStatusCancelled,
	OrderStatusFailed,
}

// String implements fmt.Stringer.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid reports whether the status is recognized.
func (s OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status admits no further transitions.
func (s OrderStatus) IsTerminal() bool {
	switch s {
	case OrderStatusConfirmed, OrderStatusCancelled, OrderStatusFailed:
		return true
	default:
		return false
	}
}

// ParseOrderStatus converts a raw string into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
