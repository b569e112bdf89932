package cron

import (
	"context"
	"fmt"

	"github.com/storefrontlabs/storefront-backend/pkg/logger"
)

type orderRecoverer interface {
	RecoverStuckOrders(ctx context.Context) (int, error)
}

// SagaRecoveryJobParams configure the stuck order recovery job.
type SagaRecoveryJobParams struct {
	Logger   *logger.Logger
	Checkout orderRecoverer
}

// NewSagaRecoveryJob builds the job that unwinds orders stalled mid-placement,
// releasing their stock and voiding any payment hold.
func NewSagaRecoveryJob(params SagaRecoveryJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Checkout == nil {
		return nil, fmt.Errorf("checkout service required")
	}
	return &sagaRecoveryJob{logg: params.Logger, checkout: params.Checkout}, nil
}

type sagaRecoveryJob struct {
	logg     *logger.Logger
	checkout orderRecoverer
}

func (j *sagaRecoveryJob) Name() string { return "saga-recovery" }

func (j *sagaRecoveryJob) Run(ctx context.Context) error {
	recovered, err := j.checkout.RecoverStuckOrders(ctx)
	if err != nil {
		return fmt.Errorf("recover stuck orders: %w", err)
	}
	logCtx := j.logg.WithField(ctx, "recovered", recovered)
	j.logg.Info(logCtx, "stuck order recovery complete")
	return nil
}
