package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderLineItem captures the price snapshot of each variant within an order.
type OrderLineItem struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	OrderID        uuid.UUID `gorm:"column:order_id;type:uuid;not null;index"`
	VariantID      uuid.UUID `gorm:"column:variant_id;type:uuid;not null"`
	SKU            string    `gorm:"column:sku;not null"`
	Title          string    `gorm:"column:title;not null"`
	UnitPriceCents int       `gorm:"column:unit_price_cents;not null"`
	Qty            int       `gorm:"column:qty;not null"`
	TotalCents     int       `gorm:"column:total_cents;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
