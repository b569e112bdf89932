package orders

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

// Service exposes customer-facing order reads.
type Service interface {
	GetOrder(ctx context.Context, customerID, orderID uuid.UUID) (*OrderDetail, error)
	ListOrders(ctx context.Context, customerID uuid.UUID, params pagination.Params, filters OrderFilters) (*OrderList, error)
}

type service struct {
	repo Repository
}

// NewService builds an orders read service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) GetOrder(ctx context.Context, customerID, orderID uuid.UUID) (*OrderDetail, error) {
	order, err := s.repo.FindOrderForCustomer(ctx, orderID, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return buildDetail(order), nil
}

func (s *service) ListOrders(ctx context.Context, customerID uuid.UUID, params pagination.Params, filters OrderFilters) (*OrderList, error) {
	list, err := s.repo.ListCustomerOrders(ctx, customerID, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return list, nil
}

func buildDetail(order *models.Order) *OrderDetail {
	detail := &OrderDetail{
		ID:            order.ID,
		Status:        order.Status,
		Currency:      order.Currency,
		SubtotalCents: order.SubtotalCents,
		TotalCents:    order.TotalCents,
		FailureCode:   order.FailureCode,
		ConfirmedAt:   order.ConfirmedAt,
		CancelledAt:   order.CancelledAt,
		CreatedAt:     order.CreatedAt,
		Items:         make([]LineItemDetail, 0, len(order.Items)),
	}
	for _, item := range order.Items {
		detail.Items = append(detail.Items, LineItemDetail{
			ID:             item.ID,
			VariantID:      item.VariantID,
			SKU:            item.SKU,
			Title:          item.Title,
			UnitPriceCents: item.UnitPriceCents,
			Qty:            item.Qty,
			TotalCents:     item.TotalCents,
		})
	}
	if order.PaymentIntent != nil {
		detail.Payment = &PaymentDetail{
			ID:          order.PaymentIntent.ID,
			Status:      order.PaymentIntent.Status,
			AmountCents: order.PaymentIntent.AmountCents,
			CapturedAt:  order.PaymentIntent.CapturedAt,
		}
	}
	return detail
}
