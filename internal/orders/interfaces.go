package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storefrontlabs/storefront-backend/pkg/db/models"
	"github.com/storefrontlabs/storefront-backend/pkg/enums"
	"github.com/storefrontlabs/storefront-backend/pkg/pagination"
)

// Repository defines persistence operations for order tables.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	CreateOrderLineItems(ctx context.Context, items []models.OrderLineItem) error
	FindOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	FindOrderForCustomer(ctx context.Context, orderID, customerID uuid.UUID) (*models.Order, error)
	FindOrderLineItemsByOrder(ctx context.Context, orderID uuid.UUID) ([]models.OrderLineItem, error)
	ListCustomerOrders(ctx context.Context, customerID uuid.UUID, params pagination.Params, filters OrderFilters) (*OrderList, error)
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, from, to enums.OrderStatus) (bool, error)
	UpdateOrder(ctx context.Context, orderID uuid.UUID, updates map[string]any) error
	FindStuckOrders(ctx context.Context, statuses []enums.OrderStatus, cutoff time.Time) ([]models.Order, error)
}
