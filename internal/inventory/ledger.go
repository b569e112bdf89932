package inventory

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgerrors "github.com/storefrontlabs/storefront-backend/pkg/errors"
)

// ReservationRequest asks for qty units of a variant to move from available to reserved.
type ReservationRequest struct {
	LineItemID uuid.UUID
	VariantID  uuid.UUID
	Qty        int
}

// ReservationResult reports the outcome for a single request.
type ReservationResult struct {
	LineItemID uuid.UUID
	VariantID  uuid.UUID
	Qty        int
	Reserved   bool
	Reason     string
}

// Reserve moves qty units from available to reserved for all requests inside tx.
// Requests are applied in ascending variant id order so concurrent placements
// touch rows in the same sequence. Each request succeeds only when the variant
// still has the stock; a failed request leaves its row untouched and is
// reported in the results rather than aborting the batch.
func Reserve(ctx context.Context, tx *gorm.DB, requests []ReservationRequest) ([]ReservationResult, error) {
	if tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "transaction required for inventory reserve")
	}
	for _, req := range requests {
		if req.Qty <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("reservation qty must be positive for variant %s", req.VariantID))
		}
		if req.VariantID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "reservation variant id is required")
		}
	}

	ordered := make([]ReservationRequest, len(requests))
	copy(ordered, requests)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].VariantID.String() < ordered[j].VariantID.String()
	})

	results := make([]ReservationResult, 0, len(ordered))
	for _, req := range ordered {
		res := tx.WithContext(ctx).Exec(`
			UPDATE product_variants
			SET available_qty = available_qty - ?,
				reserved_qty = reserved_qty + ?,
				updated_at = CURRENT_TIMESTAMP
			WHERE id = ? AND available_qty >= ?
		`, req.Qty, req.Qty, req.VariantID, req.Qty)
		if res.Error != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "reserve inventory")
		}
		result := ReservationResult{
			LineItemID: req.LineItemID,
			VariantID:  req.VariantID,
			Qty:        req.Qty,
		}
		if res.RowsAffected == 0 {
			result.Reason = "insufficient stock"
		} else {
			result.Reserved = true
		}
		results = append(results, result)
	}
	return results, nil
}

// Commit burns reserved units after funds settle. The guard on reserved_qty
// rejects commits that were never backed by a reservation.
func Commit(ctx context.Context, tx *gorm.DB, variantID uuid.UUID, qty int) error {
	if qty <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "commit qty must be positive")
	}
	if tx == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "transaction required for inventory commit")
	}

	res := tx.WithContext(ctx).Exec(`
		UPDATE product_variants
		SET reserved_qty = reserved_qty - ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND reserved_qty >= ?
	`, qty, variantID, qty)
	if res.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "commit inventory")
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeInvalidReservation, fmt.Sprintf("no reservation of %d units for variant %s", qty, variantID))
	}
	return nil
}

// Release returns reserved units to the available pool.
func Release(ctx context.Context, tx *gorm.DB, variantID uuid.UUID, qty int) error {
	if qty <= 0 {
		return nil
	}
	if tx == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "transaction required for inventory release")
	}

	res := tx.WithContext(ctx).Exec(`
		UPDATE product_variants
		SET available_qty = available_qty + ?,
			reserved_qty = reserved_qty - ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND reserved_qty >= ?
	`, qty, qty, variantID, qty)
	if res.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "release inventory")
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeInvalidReservation, fmt.Sprintf("no reservation of %d units for variant %s", qty, variantID))
	}
	return nil
}

// Restock adds units straight back to available. Used when stock was already
// committed but the order could not complete.
func Restock(ctx context.Context, tx *gorm.DB, variantID uuid.UUID, qty int) error {
	if qty <= 0 {
		return nil
	}
	if tx == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "transaction required for inventory restock")
	}

	res := tx.WithContext(ctx).Exec(`
		UPDATE product_variants
		SET available_qty = available_qty + ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, qty, variantID)
	if res.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "restock inventory")
	}
	return nil
}

// CommitAll commits every line of a reservation in ascending variant id order.
func CommitAll(ctx context.Context, tx *gorm.DB, requests []ReservationRequest) error {
	for _, req := range sortedByVariant(requests) {
		if err := Commit(ctx, tx, req.VariantID, req.Qty); err != nil {
			return err
		}
	}
	return nil
}

// ReleaseAll releases every line of a reservation in ascending variant id order.
func ReleaseAll(ctx context.Context, tx *gorm.DB, requests []ReservationRequest) error {
	for _, req := range sortedByVariant(requests) {
		if err := Release(ctx, tx, req.VariantID, req.Qty); err != nil {
			return err
		}
	}
	return nil
}

// RestockAll restocks every line after a post-commit failure.
func RestockAll(ctx context.Context, tx *gorm.DB, requests []ReservationRequest) error {
	for _, req := range sortedByVariant(requests) {
		if err := Restock(ctx, tx, req.VariantID, req.Qty); err != nil {
			return err
		}
	}
	return nil
}

func sortedByVariant(requests []ReservationRequest) []ReservationRequest {
	ordered := make([]ReservationRequest, len(requests))
	copy(ordered, requests)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].VariantID.String() < ordered[j].VariantID.String()
	})
	return ordered
}
