package product

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storefrontlabs/storefront-backend/pkg/db/models"
	pkgerrors "github.com/storefrontlabs/storefront-backend/pkg/errors"
	"github.com/storefrontlabs/storefront-backend/pkg/pagination"
)

// Service exposes catalog read operations.
type Service interface {
	GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, error)
	ListProducts(ctx context.Context, params pagination.Params, filters ProductListFilters) (*ProductListResult, error)
	LoadVariantsForPurchase(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.ProductVariant, error)
}

type service struct {
	repo *Repository
}

// NewService builds the catalog service.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	record, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, err
	}
	if !record.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	dto := buildProductDTO(*record)
	return &dto, nil
}

func (s *service) ListProducts(ctx context.Context, params pagination.Params, filters ProductListFilters) (*ProductListResult, error) {
	rows, nextCursor, err := s.repo.ListActive(ctx, params, filters)
	if err != nil {
		return nil, err
	}
	result := &ProductListResult{
		Products:   make([]ProductDTO, 0, len(rows)),
		NextCursor: nextCursor,
	}
	for _, row := range rows {
		result.Products = append(result.Products, buildProductDTO(row))
	}
	return result, nil
}

// LoadVariantsForPurchase resolves variants by id and rejects inactive ones.
// Order placement snapshots price and title from the returned rows.
func (s *service) LoadVariantsForPurchase(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.ProductVariant, error) {
	if len(ids) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one variant required")
	}
	variants, err := s.repo.FindVariantsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]models.ProductVariant, len(variants))
	for _, variant := range variants {
		byID[variant.ID] = variant
	}
	for _, id := range ids {
		variant, ok := byID[id]
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "variant not found").
				WithDetails(map[string]string{"variant_id": id.String()})
		}
		if !variant.IsActive {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "variant is not purchasable").
				WithDetails(map[string]string{"variant_id": id.String()})
		}
	}
	return byID, nil
}

func buildProductDTO(record models.Product) ProductDTO {
	dto := ProductDTO{
		ID:          record.ID,
		SKU:         record.SKU,
		Title:       record.Title,
		Description: record.Description,
		IsActive:    record.IsActive,
		Variants:    make([]VariantDTO, 0, len(record.Variants)),
		CreatedAt:   record.CreatedAt,
	}
	for _, variant := range record.Variants {
		if !variant.IsActive {
			continue
		}
		dto.Variants = append(dto.Variants, VariantDTO{
			ID:           variant.ID,
			SKU:          variant.SKU,
			Title:        variant.Title,
			PriceCents:   variant.PriceCents,
			PriceDisplay: formatPrice(variant.PriceCents),
			Currency:     variant.Currency,
			AvailableQty: variant.AvailableQty,
			IsActive:     variant.IsActive,
		})
	}
	return dto
}
