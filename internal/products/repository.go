package product

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storefrontlabs/storefront-backend/pkg/db/models"
	"github.com/storefrontlabs/storefront-backend/pkg/pagination"
)

// Repository wires together catalog persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// FindByID loads the product with its variants.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Variants").
		First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindBySKU loads the product with its variants by catalog SKU.
func (r *Repository) FindBySKU(ctx context.Context, sku string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Variants").
		First(&product, "sku = ?", strings.TrimSpace(sku)).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindVariantByID loads a single variant.
func (r *Repository) FindVariantByID(ctx context.Context, id uuid.UUID) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	if err := r.db.WithContext(ctx).First(&variant, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &variant, nil
}

// FindVariantsByIDs loads the given variants in one query. Missing ids are
// simply absent from the result; callers decide whether that is an error.
func (r *Repository) FindVariantsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.ProductVariant, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var variants []models.ProductVariant
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&variants).Error
	if err != nil {
		return nil, err
	}
	return variants, nil
}

// ListActive pages through active products for the browse endpoint.
func (r *Repository) ListActive(ctx context.Context, params pagination.Params, filters ProductListFilters) ([]models.Product, string, error) {
	limit := pagination.NormalizeLimit(params.Limit)
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, "", err
	}

	query := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Preload("Variants").
		Where("is_active = ?", true)

	if trimmed := strings.TrimSpace(filters.Query); trimmed != "" {
		like := "%" + strings.ToLower(trimmed) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(sku) LIKE ?", like, like)
	}
	if filters.PriceMinCents != nil || filters.PriceMaxCents != nil || filters.InStockOnly {
		sub := r.db.Model(&models.ProductVariant{}).
			Select("product_id").
			Where("is_active = ?", true)
		if filters.PriceMinCents != nil {
			sub = sub.Where("price_cents >= ?", *filters.PriceMinCents)
		}
		if filters.PriceMaxCents != nil {
			sub = sub.Where("price_cents <= ?", *filters.PriceMaxCents)
		}
		if filters.InStockOnly {
			sub = sub.Where("available_qty > 0")
		}
		query = query.Where("id IN (?)", sub)
	}
	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var rows []models.Product
	err = query.
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit + 1).
		Find(&rows).Error
	if err != nil {
		return nil, "", err
	}

	nextCursor := ""
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	return rows, nextCursor, nil
}
