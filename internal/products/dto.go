package product

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefrontlabs/storefront-backend/pkg/enums"
)

// VariantDTO is the purchasable unit exposed to the storefront.
type VariantDTO struct {
	ID           uuid.UUID      `json:"id"`
	SKU          string         `json:"sku"`
	Title        string         `json:"title"`
	PriceCents   int            `json:"price_cents"`
	PriceDisplay string         `json:"price_display"`
	Currency     enums.Currency `json:"currency"`
	AvailableQty int            `json:"available_qty"`
	IsActive     bool           `json:"is_active"`
}

// ProductDTO is the catalog read model.
type ProductDTO struct {
	ID          uuid.UUID    `json:"id"`
	SKU         string       `json:"sku"`
	Title       string       `json:"title"`
	Description *string      `json:"description,omitempty"`
	IsActive    bool         `json:"is_active"`
	Variants    []VariantDTO `json:"variants"`
	CreatedAt   time.Time    `json:"created_at"`
}

// ProductListFilters describe the filter knobs for the catalog browse endpoint.
type ProductListFilters struct {
	Query         string `json:"q,omitempty"`
	PriceMinCents *int   `json:"price_min_cents,omitempty"`
	PriceMaxCents *int   `json:"price_max_cents,omitempty"`
	InStockOnly   bool   `json:"in_stock_only,omitempty"`
}

// ProductListResult is one page of catalog results.
type ProductListResult struct {
	Products   []ProductDTO `json:"products"`
	NextCursor string       `json:"next_cursor,omitempty"`
}

// formatPrice renders integer cents as a major-unit display string.
func formatPrice(cents int) string {
	return decimal.NewFromInt(int64(cents)).Shift(-2).StringFixed(2)
}
