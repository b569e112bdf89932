package checkout

import (
	"github.com/google/uuid"

	"github.com/storefrontlabs/storefront-backend/pkg/enums"
)

// PlaceOrderItem is one requested purchase line.
type PlaceOrderItem struct {
	VariantID uuid.UUID `json:"variant_id"`
	Qty       int       `json:"qty"`
}

// PaymentInput carries the tokenized payment source for the order.
type PaymentInput struct {
	SourceID       string `json:"source_id"`
	IdempotencyKey string `json:"-"`
}

// PlaceOrderInput is the validated placement request.
type PlaceOrderInput struct {
	Currency enums.Currency   `json:"currency"`
	Items    []PlaceOrderItem `json:"items"`
	Payment  PaymentInput     `json:"payment"`
}

// Failure codes recorded on orders that did not reach confirmation.
const (
	FailureCodeInsufficientStock  = "INSUFFICIENT_STOCK"
	FailureCodePaymentDeclined    = "PAYMENT_DECLINED"
	FailureCodeGatewayUnavailable = "GATEWAY_UNAVAILABLE"
	FailureCodeCaptureFailed      = "CAPTURE_FAILED"
	FailureCodeExpired            = "ORDER_EXPIRED"
)
