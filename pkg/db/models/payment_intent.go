package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/storefrontlabs/storefront-backend/pkg/enums"
)

// PaymentIntent tracks gateway progress for an order. One intent per order.
type PaymentIntent struct {
	ID               uuid.UUID                 `gorm:"column:id;type:uuid;primaryKey"`
	OrderID          uuid.UUID                 `gorm:"column:order_id;type:uuid;not null;uniqueIndex"`
	Status           enums.PaymentIntentStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	AmountCents      int                       `gorm:"column:amount_cents;not null"`
	Currency         enums.Currency            `gorm:"column:currency;type:text;not null;default:'USD'"`
	GatewayPaymentID *string                   `gorm:"column:gateway_payment_id"`
	AuthorizedAt     *time.Time                `gorm:"column:authorized_at"`
	CapturedAt       *time.Time                `gorm:"column:captured_at"`
	VoidedAt         *time.Time                `gorm:"column:voided_at"`
	FailureReason    *string                   `gorm:"column:failure_reason"`
	CreatedAt        time.Time                 `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time                 `gorm:"column:updated_at;autoUpdateTime"`
}
