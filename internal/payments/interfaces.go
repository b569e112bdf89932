package payments

import (
	"context"

	"github.com/google/uuid"
	sq "github.com/square/square-go-sdk"
	"gorm.io/gorm"

	"github.com/storefrontlabs/storefront-backend/pkg/db/models"
	"github.com/storefrontlabs/storefront-backend/pkg/enums"
	"github.com/storefrontlabs/storefront-backend/pkg/square"
)

// Gateway abstracts the card processor. *square.Client satisfies it.
type Gateway interface {
	AuthorizePayment(ctx context.Context, params square.PaymentAuthorizeParams) (*sq.Payment, error)
	CapturePayment(ctx context.Context, paymentID string) (*sq.Payment, error)
	VoidPayment(ctx context.Context, paymentID string) (*sq.Payment, error)
}

// Repository persists payment intents.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateIntent(ctx context.Context, intent *models.PaymentIntent) (*models.PaymentIntent, error)
	FindIntentByOrder(ctx context.Context, orderID uuid.UUID) (*models.PaymentIntent, error)
	// UpdateIntentStatus transitions the intent only when it still holds the
	// expected status. Returns false when another writer moved it first.
	UpdateIntentStatus(ctx context.Context, intentID uuid.UUID, from, to enums.PaymentIntentStatus, updates map[string]any) (bool, error)
}
