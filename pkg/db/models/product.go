package models

import (
	"time"

	"github.com/google/uuid"
)

// Product represents a catalog listing. Sellable stock lives on its variants.
type Product struct {
	ID          uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	SKU         string           `gorm:"column:sku;not null;uniqueIndex"`
	Title       string           `gorm:"column:title;not null"`
	Description *string          `gorm:"column:description"`
	IsActive    bool             `gorm:"column:is_active;not null;default:true"`
	Variants    []ProductVariant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
