package orders

import (
	"fmt"

	"github.com/storefrontlabs/storefront-backend/pkg/enums"
	pkgerrors "github.com/storefrontlabs/storefront-backend/pkg/errors"
)

// legalTransitions is the authoritative map of allowed status moves. Terminal
// statuses have no outgoing edges.
var legalTransitions = map[enums.OrderStatus][]enums.OrderStatus{
	enums.OrderStatusCreated: {
		enums.OrderStatusInventoryReserved,
		enums.OrderStatusCancelled,
		enums.OrderStatusFailed,
	},
	enums.OrderStatusInventoryReserved: {
		enums.OrderStatusPaymentAuthorized,
		enums.OrderStatusCancelled,
		enums.OrderStatusFailed,
	},
	enums.OrderStatusPaymentAuthorized: {
		enums.OrderStatusConfirmed,
		enums.OrderStatusCancelled,
		enums.OrderStatusFailed,
	},
}

// CanTransition reports whether moving from one status to another is legal.
func CanTransition(from, to enums.OrderStatus) bool {
	for _, candidate := range legalTransitions[from] {
		if candidate == to {
			return true
		}
	}
	return false
}

// ValidateTransition returns a typed error when the requested move is illegal.
func ValidateTransition(from, to enums.OrderStatus) error {
	if CanTransition(from, to) {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeIllegalTransition, fmt.Sprintf("cannot transition order from %s to %s", from, to))
}
