package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/storefrontlabs/storefront-backend/pkg/enums"
)

// OrderFilters describe the inputs supported by the customer orders list.
type OrderFilters struct {
	Status   *enums.OrderStatus
	DateFrom *time.Time
	DateTo   *time.Time
}

// OrderSummary exposes the aggregated fields returned in the list endpoint.
type OrderSummary struct {
	ID         uuid.UUID         `json:"id"`
	Status     enums.OrderStatus `json:"status"`
	Currency   enums.Currency    `json:"currency"`
	TotalCents int               `json:"total_cents"`
	TotalItems int               `json:"total_items"`
	CreatedAt  time.Time         `json:"created_at"`
}

// OrderList wraps the paginated orders plus the next page cursor.
type OrderList struct {
	Orders     []OrderSummary `json:"orders"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

// LineItemDetail is the per-line view returned by the detail endpoint.
type LineItemDetail struct {
	ID             uuid.UUID `json:"id"`
	VariantID      uuid.UUID `json:"variant_id"`
	SKU            string    `json:"sku"`
	Title          string    `json:"title"`
	UnitPriceCents int       `json:"unit_price_cents"`
	Qty            int       `json:"qty"`
	TotalCents     int       `json:"total_cents"`
}

// PaymentDetail summarizes the order's payment intent.
type PaymentDetail struct {
	ID          uuid.UUID                 `json:"id"`
	Status      enums.PaymentIntentStatus `json:"status"`
	AmountCents int                       `json:"amount_cents"`
	CapturedAt  *time.Time                `json:"captured_at,omitempty"`
}

// OrderDetail is the full aggregate view returned to the customer.
type OrderDetail struct {
	ID            uuid.UUID         `json:"id"`
	Status        enums.OrderStatus `json:"status"`
	Currency      enums.Currency    `json:"currency"`
	SubtotalCents int               `json:"subtotal_cents"`
	TotalCents    int               `json:"total_cents"`
	FailureCode   *string           `json:"failure_code,omitempty"`
	Items         []LineItemDetail  `json:"items"`
	Payment       *PaymentDetail    `json:"payment,omitempty"`
	ConfirmedAt   *time.Time        `json:"confirmed_at,omitempty"`
	CancelledAt   *time.Time        `json:"cancelled_at,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
}
