package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/storefrontlabs/storefront-backend/pkg/enums"
)

// ProductVariant is the unit of sale and the row the inventory ledger guards.
// AvailableQty and ReservedQty only move together through conditional updates.
type ProductVariant struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	ProductID    uuid.UUID      `gorm:"column:product_id;type:uuid;not null;index"`
	SKU          string         `gorm:"column:sku;not null;uniqueIndex"`
	Title        string         `gorm:"column:title;not null"`
	PriceCents   int            `gorm:"column:price_cents;not null"`
	Currency     enums.Currency `gorm:"column:currency;type:text;not null;default:'USD'"`
	AvailableQty int            `gorm:"column:available_qty;not null;default:0"`
	ReservedQty  int            `gorm:"column:reserved_qty;not null;default:0"`
	IsActive     bool           `gorm:"column:is_active;not null;default:true"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
