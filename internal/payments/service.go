package payments

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"

	"github.com/storefrontlabs/storefront-backend/pkg/config"
	"github.com/storefrontlabs/storefront-backend/pkg/db/models"
	"github.com/storefrontlabs/storefront-backend/pkg/enums"
	pkgerrors "github.com/storefrontlabs/storefront-backend/pkg/errors"
	"github.com/storefrontlabs/storefront-backend/pkg/logger"
	"github.com/storefrontlabs/storefront-backend/pkg/square"
)

// AuthorizeParams carries the customer-supplied payment inputs for an order.
type AuthorizeParams struct {
	SourceID       string
	IdempotencyKey string
}

// Coordinator drives the intent lifecycle against the gateway. Authorization
// places a hold, Capture settles it, Void releases it. All gateway calls run
// outside DB transactions so declines never hold row locks.
type Coordinator struct {
	repo    Repository
	gateway Gateway
	cfg     config.CheckoutConfig
	log     *logger.Logger
}

// NewCoordinator builds the payment coordinator.
func NewCoordinator(repo Repository, gateway Gateway, cfg config.CheckoutConfig, log *logger.Logger) (*Coordinator, error) {
	if repo == nil {
		return nil, fmt.Errorf("payment repository required")
	}
	if gateway == nil {
		return nil, fmt.Errorf("payment gateway required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if cfg.PaymentRetryAttempts <= 0 {
		cfg.PaymentRetryAttempts = 3
	}
	if cfg.PaymentRetryBase <= 0 {
		cfg.PaymentRetryBase = 250 * time.Millisecond
	}
	if cfg.PaymentRetryCap < cfg.PaymentRetryBase {
		cfg.PaymentRetryCap = cfg.PaymentRetryBase
	}
	return &Coordinator{repo: repo, gateway: gateway, cfg: cfg, log: log}, nil
}

// Authorize places a hold for the intent's full amount. Transient gateway
// outages are retried with backoff; declines are terminal on the first
// response. The intent moves pending->authorized on success and
// pending->failed on a decline.
func (c *Coordinator) Authorize(ctx context.Context, intent *models.PaymentIntent, params AuthorizeParams) (*models.PaymentIntent, error) {
	if intent == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment intent required")
	}
	if strings.TrimSpace(params.SourceID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment source required")
	}
	if intent.Status != enums.PaymentIntentStatusPending {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "payment intent already processed")
	}

	ctx = c.log.WithOrderID(ctx, intent.OrderID.String())

	var gatewayPaymentID string
	backoff := retry.WithCappedDuration(c.cfg.PaymentRetryCap, retry.NewFibonacci(c.cfg.PaymentRetryBase))
	backoff = retry.WithMaxRetries(uint64(c.cfg.PaymentRetryAttempts-1), backoff)

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		payment, err := c.gateway.AuthorizePayment(ctx, square.PaymentAuthorizeParams{
			AmountCents:    int64(intent.AmountCents),
			Currency:       intent.Currency.String(),
			SourceID:       params.SourceID,
			IdempotencyKey: params.IdempotencyKey,
			ReferenceID:    intent.OrderID.String(),
		})
		if err != nil {
			if pkgerrors.Is(err, pkgerrors.CodeGatewayUnavailable) {
				c.log.Warn(ctx, "payment authorization retryable failure")
				return retry.RetryableError(err)
			}
			return err
		}
		gatewayPaymentID = stringValue(payment.GetID())
		return nil
	})
	if err != nil {
		return nil, c.recordAuthorizeFailure(ctx, intent, err)
	}
	if gatewayPaymentID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "gateway returned no payment id")
	}

	now := time.Now()
	ok, err := c.repo.UpdateIntentStatus(ctx, intent.ID,
		enums.PaymentIntentStatusPending, enums.PaymentIntentStatusAuthorized,
		map[string]any{
			"gateway_payment_id": gatewayPaymentID,
			"authorized_at":      now,
		})
	if err != nil {
		return nil, err
	}
	if !ok {
		// Someone else moved the intent while the gateway call was in
		// flight. Release the orphaned hold before reporting the conflict.
		c.voidBestEffort(ctx, gatewayPaymentID)
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "payment intent changed during authorization")
	}

	intent.Status = enums.PaymentIntentStatusAuthorized
	intent.GatewayPaymentID = &gatewayPaymentID
	intent.AuthorizedAt = &now
	c.log.Info(ctx, "payment authorized")
	return intent, nil
}

// Capture settles a previously authorized hold. The intent moves
// authorized->captured. A settle that fails after the hold leaves the intent
// authorized so the saga can void it.
func (c *Coordinator) Capture(ctx context.Context, intent *models.PaymentIntent) (*models.PaymentIntent, error) {
	if intent == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment intent required")
	}
	if intent.Status != enums.PaymentIntentStatusAuthorized || intent.GatewayPaymentID == nil {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "payment intent is not authorized")
	}

	ctx = c.log.WithOrderID(ctx, intent.OrderID.String())

	if _, err := c.gateway.CapturePayment(ctx, *intent.GatewayPaymentID); err != nil {
		c.log.Error(ctx, "payment capture failed", err)
		return nil, err
	}

	now := time.Now()
	ok, err := c.repo.UpdateIntentStatus(ctx, intent.ID,
		enums.PaymentIntentStatusAuthorized, enums.PaymentIntentStatusCaptured,
		map[string]any{"captured_at": now})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "payment intent changed during capture")
	}

	intent.Status = enums.PaymentIntentStatusCaptured
	intent.CapturedAt = &now
	c.log.Info(ctx, "payment captured")
	return intent, nil
}

// Void releases an authorized hold. Safe to call when the hold was already
// released upstream.
func (c *Coordinator) Void(ctx context.Context, intent *models.PaymentIntent) error {
	if intent == nil || intent.Status != enums.PaymentIntentStatusAuthorized || intent.GatewayPaymentID == nil {
		return nil
	}

	ctx = c.log.WithOrderID(ctx, intent.OrderID.String())

	if _, err := c.gateway.VoidPayment(ctx, *intent.GatewayPaymentID); err != nil {
		c.log.Error(ctx, "payment void failed", err)
		return err
	}

	now := time.Now()
	if _, err := c.repo.UpdateIntentStatus(ctx, intent.ID,
		enums.PaymentIntentStatusAuthorized, enums.PaymentIntentStatusVoided,
		map[string]any{"voided_at": now}); err != nil {
		return err
	}

	intent.Status = enums.PaymentIntentStatusVoided
	intent.VoidedAt = &now
	c.log.Info(ctx, "payment voided")
	return nil
}

// MarkFailed records a terminal gateway failure on the intent.
func (c *Coordinator) MarkFailed(ctx context.Context, intentID uuid.UUID, from enums.PaymentIntentStatus, reason string) error {
	updates := map[string]any{}
	if trimmed := strings.TrimSpace(reason); trimmed != "" {
		updates["failure_reason"] = trimmed
	}
	_, err := c.repo.UpdateIntentStatus(ctx, intentID, from, enums.PaymentIntentStatusFailed, updates)
	return err
}

func (c *Coordinator) recordAuthorizeFailure(ctx context.Context, intent *models.PaymentIntent, cause error) error {
	reason := cause.Error()
	if typed := pkgerrors.As(cause); typed != nil {
		reason = string(typed.Code())
	}
	if err := c.MarkFailed(ctx, intent.ID, enums.PaymentIntentStatusPending, reason); err != nil {
		c.log.Error(ctx, "failed to record authorization failure", err)
	}
	c.log.Warn(ctx, "payment authorization failed")
	return cause
}

func (c *Coordinator) voidBestEffort(ctx context.Context, gatewayPaymentID string) {
	if _, err := c.gateway.VoidPayment(ctx, gatewayPaymentID); err != nil {
		c.log.Error(ctx, "failed to void orphaned authorization", err)
	}
}

func stringValue(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
