package payloads

import (
	"time"

	"github.com/google/uuid"

	"github.com/storefrontlabs/storefront-backend/pkg/enums"
)

// OrderLineSnapshot mirrors a line item inside event payloads.
type OrderLineSnapshot struct {
	VariantID      uuid.UUID `json:"variant_id"`
	SKU            string    `json:"sku"`
	Qty            int       `json:"qty"`
	UnitPriceCents int       `json:"unit_price_cents"`
}

// OrderConfirmedEvent is emitted once payment has been captured and stock committed.
type OrderConfirmedEvent struct {
	OrderID         uuid.UUID           `json:"order_id"`
	CustomerID      uuid.UUID           `json:"customer_id"`
	TotalCents      int                 `json:"total_cents"`
	Currency        enums.Currency      `json:"currency"`
	PaymentIntentID uuid.UUID           `json:"payment_intent_id"`
	Items           []OrderLineSnapshot `json:"items"`
	ConfirmedAt     time.Time           `json:"confirmed_at"`
}

// OrderCancelledEvent is emitted when the customer cancels a pre-confirmation order.
type OrderCancelledEvent struct {
	OrderID     uuid.UUID `json:"order_id"`
	CustomerID  uuid.UUID `json:"customer_id"`
	CancelledAt time.Time `json:"cancelled_at"`
	Reason      string    `json:"reason,omitempty"`
}

// OrderFailedEvent is emitted whenever the placement flow ends in failure.
type OrderFailedEvent struct {
	OrderID     uuid.UUID `json:"order_id"`
	CustomerID  uuid.UUID `json:"customer_id"`
	FailureCode string    `json:"failure_code"`
	FailedAt    time.Time `json:"failed_at"`
}

// OrderExpiredEvent describes the payload when a stale order is unwound.
type OrderExpiredEvent struct {
	OrderID    uuid.UUID         `json:"orderId"`
	CustomerID uuid.UUID         `json:"customerId"`
	LastStatus enums.OrderStatus `json:"lastStatus"`
	ExpiredAt  time.Time         `json:"expiredAt"`
}

// PaymentCapturedEvent reports settled funds for a confirmed order.
type PaymentCapturedEvent struct {
	OrderID          uuid.UUID `json:"order_id"`
	PaymentIntentID  uuid.UUID `json:"payment_intent_id"`
	AmountCents      int       `json:"amount_cents"`
	GatewayPaymentID string    `json:"gateway_payment_id"`
	CapturedAt       time.Time `json:"captured_at"`
}
