package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/storefrontlabs/storefront-backend/pkg/enums"
)

// Order is the customer-facing aggregate driving the placement flow.
type Order struct {
	ID            uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	CustomerID    uuid.UUID         `gorm:"column:customer_id;type:uuid;not null;index"`
	Status        enums.OrderStatus `gorm:"column:status;type:text;not null;default:'created'"`
	Currency      enums.Currency    `gorm:"column:currency;type:text;not null;default:'USD'"`
	SubtotalCents int               `gorm:"column:subtotal_cents;not null"`
	TotalCents    int               `gorm:"column:total_cents;not null"`
	FailureCode   *string           `gorm:"column:failure_code"`
	ConfirmedAt   *time.Time        `gorm:"column:confirmed_at"`
	CancelledAt   *time.Time        `gorm:"column:cancelled_at"`
	Items         []OrderLineItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	PaymentIntent *PaymentIntent    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
