package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storefrontlabs/storefront-backend/internal/inventory"
	"github.com/storefrontlabs/storefront-backend/internal/orders"
	"github.com/storefrontlabs/storefront-backend/internal/payments"
	"github.com/storefrontlabs/storefront-backend/pkg/config"
	"github.com/storefrontlabs/storefront-backend/pkg/db/models"
	"github.com/storefrontlabs/storefront-backend/pkg/enums"
	pkgerrors "github.com/storefrontlabs/storefront-backend/pkg/errors"
	"github.com/storefrontlabs/storefront-backend/pkg/logger"
	"github.com/storefrontlabs/storefront-backend/pkg/metrics"
	"github.com/storefrontlabs/storefront-backend/pkg/outbox"
	"github.com/storefrontlabs/storefront-backend/pkg/outbox/payloads"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type variantLoader interface {
	LoadVariantsForPurchase(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.ProductVariant, error)
}

type paymentCoordinator interface {
	Authorize(ctx context.Context, intent *models.PaymentIntent, params payments.AuthorizeParams) (*models.PaymentIntent, error)
	Capture(ctx context.Context, intent *models.PaymentIntent) (*models.PaymentIntent, error)
	Void(ctx context.Context, intent *models.PaymentIntent) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

type stockLedger interface {
	Reserve(ctx context.Context, tx *gorm.DB, requests []inventory.ReservationRequest) ([]inventory.ReservationResult, error)
	CommitAll(ctx context.Context, tx *gorm.DB, requests []inventory.ReservationRequest) error
	ReleaseAll(ctx context.Context, tx *gorm.DB, requests []inventory.ReservationRequest) error
	RestockAll(ctx context.Context, tx *gorm.DB, requests []inventory.ReservationRequest) error
}

type ledgerEngine struct{}

func (ledgerEngine) Reserve(ctx context.Context, tx *gorm.DB, requests []inventory.ReservationRequest) ([]inventory.ReservationResult, error) {
	return inventory.Reserve(ctx, tx, requests)
}

func (ledgerEngine) CommitAll(ctx context.Context, tx *gorm.DB, requests []inventory.ReservationRequest) error {
	return inventory.CommitAll(ctx, tx, requests)
}

func (ledgerEngine) ReleaseAll(ctx context.Context, tx *gorm.DB, requests []inventory.ReservationRequest) error {
	return inventory.ReleaseAll(ctx, tx, requests)
}

func (ledgerEngine) RestockAll(ctx context.Context, tx *gorm.DB, requests []inventory.ReservationRequest) error {
	return inventory.RestockAll(ctx, tx, requests)
}

// Service executes order placement and cancellation.
type Service interface {
	PlaceOrder(ctx context.Context, customerID uuid.UUID, input PlaceOrderInput) (*models.Order, error)
	CancelOrder(ctx context.Context, customerID, orderID uuid.UUID, reason string) (*models.Order, error)
	RecoverStuckOrders(ctx context.Context) (int, error)
}

type service struct {
	tx           txRunner
	ordersRepo   orders.Repository
	paymentsRepo payments.Repository
	coordinator  paymentCoordinator
	variants     variantLoader
	ledger       stockLedger
	outbox       outboxPublisher
	checkoutCfg  config.CheckoutConfig
	stats        *metrics.CheckoutMetrics
	log          *logger.Logger
}

// ServiceParams groups the checkout service dependencies.
type ServiceParams struct {
	Tx           txRunner
	OrdersRepo   orders.Repository
	PaymentsRepo payments.Repository
	Coordinator  paymentCoordinator
	Variants     variantLoader
	Ledger       stockLedger
	Outbox       outboxPublisher
	CheckoutCfg  config.CheckoutConfig
	Metrics      *metrics.CheckoutMetrics
	Logger       *logger.Logger
}

// NewService builds the checkout service.
func NewService(params ServiceParams) (Service, error) {
	if params.Tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if params.OrdersRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if params.PaymentsRepo == nil {
		return nil, fmt.Errorf("payments repository required")
	}
	if params.Coordinator == nil {
		return nil, fmt.Errorf("payment coordinator required")
	}
	if params.Variants == nil {
		return nil, fmt.Errorf("variant loader required")
	}
	if params.Outbox == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Ledger == nil {
		params.Ledger = ledgerEngine{}
	}
	if params.CheckoutCfg.ReservationTTL <= 0 {
		params.CheckoutCfg.ReservationTTL = 30 * time.Minute
	}
	return &service{
		tx:           params.Tx,
		ordersRepo:   params.OrdersRepo,
		paymentsRepo: params.PaymentsRepo,
		coordinator:  params.Coordinator,
		variants:     params.Variants,
		ledger:       params.Ledger,
		outbox:       params.Outbox,
		checkoutCfg:  params.CheckoutCfg,
		stats:        params.Metrics,
		log:          params.Logger,
	}, nil
}

// PlaceOrder runs the placement flow end to end: snapshot the catalog, hold
// stock, authorize the card with no locks held, then commit stock and settle.
// Every failure path unwinds whatever the order was holding at that point and
// records a failure code on the order.
func (s *service) PlaceOrder(ctx context.Context, customerID uuid.UUID, input PlaceOrderInput) (*models.Order, error) {
	started := time.Now()
	order, err := s.placeOrder(ctx, customerID, input)
	if s.stats != nil {
		status := "confirmed"
		if err != nil {
			status = "failed"
			if typed := pkgerrors.As(err); typed != nil {
				s.stats.IncFailure(string(typed.Code()))
			}
		}
		s.stats.ObservePlacement(status, time.Since(started))
	}
	return order, err
}

func (s *service) placeOrder(ctx context.Context, customerID uuid.UUID, input PlaceOrderInput) (*models.Order, error) {
	if customerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}
	if err := validatePlaceOrderInput(input); err != nil {
		return nil, err
	}

	variantIDs := make([]uuid.UUID, 0, len(input.Items))
	for _, item := range input.Items {
		variantIDs = append(variantIDs, item.VariantID)
	}
	variantsByID, err := s.variants.LoadVariantsForPurchase(ctx, variantIDs)
	if err != nil {
		return nil, err
	}

	order, intent, err := s.createOrder(ctx, customerID, input, variantsByID)
	if err != nil {
		return nil, err
	}
	ctx = s.log.WithOrderID(ctx, order.ID.String())
	s.log.Info(ctx, "order created")

	requests := reservationRequests(order.Items)
	if err := s.reserveStock(ctx, order, requests); err != nil {
		return nil, err
	}

	intent, err = s.coordinator.Authorize(ctx, intent, payments.AuthorizeParams{
		SourceID:       input.Payment.SourceID,
		IdempotencyKey: input.Payment.IdempotencyKey,
	})
	if err != nil {
		s.unwindReservation(ctx, order, requests, failureCodeForError(err))
		return nil, err
	}

	if err := s.commitStock(ctx, order, requests); err != nil {
		s.voidBestEffort(ctx, intent)
		return nil, err
	}

	intent, err = s.coordinator.Capture(ctx, intent)
	if err != nil {
		s.unwindCommitted(ctx, order, intent, requests)
		return nil, err
	}

	if err := s.confirmOrder(ctx, order, intent); err != nil {
		return nil, err
	}
	return s.ordersRepo.FindOrder(ctx, order.ID)
}

// createOrder persists the aggregate with a pending payment intent. Prices and
// titles are snapshotted from the variants so later catalog edits cannot
// change what the customer agreed to pay.
func (s *service) createOrder(ctx context.Context, customerID uuid.UUID, input PlaceOrderInput, variantsByID map[uuid.UUID]models.ProductVariant) (*models.Order, *models.PaymentIntent, error) {
	var (
		order  *models.Order
		intent *models.PaymentIntent
	)
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		ordersRepo := s.ordersRepo.WithTx(tx)
		paymentsRepo := s.paymentsRepo.WithTx(tx)

		subtotal := 0
		lineItems := make([]models.OrderLineItem, 0, len(input.Items))
		for _, item := range input.Items {
			variant := variantsByID[item.VariantID]
			if variant.Currency != input.Currency {
				return pkgerrors.New(pkgerrors.CodeValidation, "variant currency does not match order currency").
					WithDetails(map[string]string{"variant_id": variant.ID.String()})
			}
			lineTotal := variant.PriceCents * item.Qty
			subtotal += lineTotal
			lineItems = append(lineItems, models.OrderLineItem{
				ID:             uuid.New(),
				VariantID:      variant.ID,
				SKU:            variant.SKU,
				Title:          variant.Title,
				UnitPriceCents: variant.PriceCents,
				Qty:            item.Qty,
				TotalCents:     lineTotal,
			})
		}

		record := &models.Order{
			ID:            uuid.New(),
			CustomerID:    customerID,
			Status:        enums.OrderStatusCreated,
			Currency:      input.Currency,
			SubtotalCents: subtotal,
			TotalCents:    subtotal,
		}
		created, err := ordersRepo.CreateOrder(ctx, record)
		if err != nil {
			return err
		}
		for i := range lineItems {
			lineItems[i].OrderID = created.ID
		}
		if err := ordersRepo.CreateOrderLineItems(ctx, lineItems); err != nil {
			return err
		}
		created.Items = lineItems

		intent, err = paymentsRepo.CreateIntent(ctx, &models.PaymentIntent{
			ID:          uuid.New(),
			OrderID:     created.ID,
			Status:      enums.PaymentIntentStatusPending,
			AmountCents: created.TotalCents,
			Currency:    created.Currency,
		})
		if err != nil {
			return err
		}
		order = created
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return order, intent, nil
}

// reserveStock holds units for every line inside one transaction. A single
// short line aborts the whole hold: the transaction rolls back and the order
// is marked failed.
func (s *service) reserveStock(ctx context.Context, order *models.Order, requests []inventory.ReservationRequest) error {
	var shortages []inventory.ReservationResult
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		results, err := s.ledger.Reserve(ctx, tx, requests)
		if err != nil {
			return err
		}
		for _, result := range results {
			if !result.Reserved {
				shortages = append(shortages, result)
			}
		}
		if len(shortages) > 0 {
			return pkgerrors.New(pkgerrors.CodeInsufficientStock, "insufficient stock")
		}
		ok, err := s.ordersRepo.WithTx(tx).UpdateOrderStatus(ctx, order.ID,
			enums.OrderStatusCreated, enums.OrderStatusInventoryReserved)
		if err != nil {
			return err
		}
		if !ok {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "order changed during reservation")
		}
		return nil
	})
	if err == nil {
		order.Status = enums.OrderStatusInventoryReserved
		return nil
	}
	if pkgerrors.Is(err, pkgerrors.CodeInsufficientStock) {
		details := make([]map[string]any, 0, len(shortages))
		for _, shortage := range shortages {
			details = append(details, map[string]any{
				"variant_id": shortage.VariantID.String(),
				"qty":        shortage.Qty,
				"reason":     shortage.Reason,
			})
		}
		s.failOrder(ctx, order, enums.OrderStatusCreated, FailureCodeInsufficientStock)
		return pkgerrors.New(pkgerrors.CodeInsufficientStock, "insufficient stock").WithDetails(details)
	}
	return err
}

// commitStock burns the reservation once funds are on hold.
func (s *service) commitStock(ctx context.Context, order *models.Order, requests []inventory.ReservationRequest) error {
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.ledger.CommitAll(ctx, tx, requests); err != nil {
			return err
		}
		ok, err := s.ordersRepo.WithTx(tx).UpdateOrderStatus(ctx, order.ID,
			enums.OrderStatusInventoryReserved, enums.OrderStatusPaymentAuthorized)
		if err != nil {
			return err
		}
		if !ok {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "order changed during stock commit")
		}
		return nil
	})
	if err != nil {
		return err
	}
	order.Status = enums.OrderStatusPaymentAuthorized
	return nil
}

// confirmOrder is the final transition. The outbox rows ride the same
// transaction so the events exist iff the order is confirmed.
func (s *service) confirmOrder(ctx context.Context, order *models.Order, intent *models.PaymentIntent) error {
	now := time.Now()
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		ok, err := s.ordersRepo.WithTx(tx).UpdateOrderStatus(ctx, order.ID,
			enums.OrderStatusPaymentAuthorized, enums.OrderStatusConfirmed)
		if err != nil {
			return err
		}
		if !ok {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "order changed during confirmation")
		}

		items := make([]payloads.OrderLineSnapshot, 0, len(order.Items))
		for _, item := range order.Items {
			items = append(items, payloads.OrderLineSnapshot{
				VariantID:      item.VariantID,
				SKU:            item.SKU,
				Qty:            item.Qty,
				UnitPriceCents: item.UnitPriceCents,
			})
		}
		if err := s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventOrderConfirmed,
			AggregateType: enums.AggregateOrder,
			AggregateID:   order.ID,
			Data: payloads.OrderConfirmedEvent{
				OrderID:         order.ID,
				CustomerID:      order.CustomerID,
				TotalCents:      order.TotalCents,
				Currency:        order.Currency,
				PaymentIntentID: intent.ID,
				Items:           items,
				ConfirmedAt:     now,
			},
			Version: 1,
		}); err != nil {
			return err
		}
		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventPaymentCaptured,
			AggregateType: enums.AggregatePayment,
			AggregateID:   intent.ID,
			Data: payloads.PaymentCapturedEvent{
				OrderID:          order.ID,
				PaymentIntentID:  intent.ID,
				AmountCents:      intent.AmountCents,
				GatewayPaymentID: stringValue(intent.GatewayPaymentID),
				CapturedAt:       now,
			},
			Version: 1,
		})
	})
	if err != nil {
		return err
	}
	order.Status = enums.OrderStatusConfirmed
	s.log.Info(ctx, "order confirmed")
	return nil
}

// CancelOrder unwinds whatever the order currently holds. Cancelling an
// already cancelled order is a no-op; confirmed orders cannot be cancelled.
func (s *service) CancelOrder(ctx context.Context, customerID, orderID uuid.UUID, reason string) (*models.Order, error) {
	order, err := s.ordersRepo.FindOrderForCustomer(ctx, orderID, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, err
	}
	ctx = s.log.WithOrderID(ctx, order.ID.String())

	switch order.Status {
	case enums.OrderStatusCancelled:
		return order, nil
	case enums.OrderStatusConfirmed, enums.OrderStatusFailed:
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "order can no longer be cancelled")
	}

	// A crash between authorize and commit leaves an authorized intent on an
	// inventory_reserved order, so the void keys on the intent, not the order.
	if order.PaymentIntent != nil {
		if err := s.coordinator.Void(ctx, order.PaymentIntent); err != nil {
			return nil, err
		}
	}

	requests := reservationRequests(order.Items)
	from := order.Status
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		switch from {
		case enums.OrderStatusInventoryReserved:
			if err := s.ledger.ReleaseAll(ctx, tx, requests); err != nil {
				return err
			}
		case enums.OrderStatusPaymentAuthorized:
			// Stock was already committed; put it straight back on the shelf.
			if err := s.ledger.RestockAll(ctx, tx, requests); err != nil {
				return err
			}
		}
		ok, err := s.ordersRepo.WithTx(tx).UpdateOrderStatus(ctx, order.ID, from, enums.OrderStatusCancelled)
		if err != nil {
			return err
		}
		if !ok {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "order changed during cancellation")
		}
		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventOrderCancelled,
			AggregateType: enums.AggregateOrder,
			AggregateID:   order.ID,
			Data: payloads.OrderCancelledEvent{
				OrderID:     order.ID,
				CustomerID:  order.CustomerID,
				CancelledAt: time.Now(),
				Reason:      strings.TrimSpace(reason),
			},
			Version: 1,
		})
	})
	if err != nil {
		return nil, err
	}
	s.log.Info(ctx, "order cancelled")
	return s.ordersRepo.FindOrder(ctx, order.ID)
}

// RecoverStuckOrders unwinds orders that stalled mid-flight past the
// reservation TTL, typically after a crash between saga steps. Returns the
// number of orders recovered.
func (s *service) RecoverStuckOrders(ctx context.Context) (int, error) {
	cutoff := time.Now().Add(-s.checkoutCfg.ReservationTTL)
	stuck, err := s.ordersRepo.FindStuckOrders(ctx, []enums.OrderStatus{
		enums.OrderStatusCreated,
		enums.OrderStatusInventoryReserved,
		enums.OrderStatusPaymentAuthorized,
	}, cutoff)
	if err != nil {
		return 0, err
	}

	recovered := 0
	for _, order := range stuck {
		order := order
		if err := s.expireOrder(ctx, &order); err != nil {
			s.log.Error(s.log.WithOrderID(ctx, order.ID.String()), "failed to recover stuck order", err)
			continue
		}
		recovered++
	}
	return recovered, nil
}

func (s *service) expireOrder(ctx context.Context, order *models.Order) error {
	ctx = s.log.WithOrderID(ctx, order.ID.String())

	// Void keys on the intent's own state; the order may still read
	// inventory_reserved when the crash hit between authorize and commit.
	if order.PaymentIntent != nil {
		if err := s.coordinator.Void(ctx, order.PaymentIntent); err != nil {
			return err
		}
	}

	requests := reservationRequests(order.Items)
	from := order.Status
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		switch from {
		case enums.OrderStatusInventoryReserved:
			if err := s.ledger.ReleaseAll(ctx, tx, requests); err != nil {
				return err
			}
		case enums.OrderStatusPaymentAuthorized:
			if err := s.ledger.RestockAll(ctx, tx, requests); err != nil {
				return err
			}
		}
		ok, err := s.ordersRepo.WithTx(tx).UpdateOrderStatus(ctx, order.ID, from, enums.OrderStatusFailed)
		if err != nil {
			return err
		}
		if !ok {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "order changed during recovery")
		}
		failureCode := FailureCodeExpired
		if err := s.ordersRepo.WithTx(tx).UpdateOrder(ctx, order.ID, map[string]any{
			"failure_code": failureCode,
		}); err != nil {
			return err
		}
		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventOrderExpired,
			AggregateType: enums.AggregateOrder,
			AggregateID:   order.ID,
			Data: payloads.OrderExpiredEvent{
				OrderID:    order.ID,
				CustomerID: order.CustomerID,
				LastStatus: from,
				ExpiredAt:  time.Now(),
			},
			Version: 1,
		})
	})
}

// unwindReservation releases held stock after an authorization failure and
// marks the order failed.
func (s *service) unwindReservation(ctx context.Context, order *models.Order, requests []inventory.ReservationRequest, failureCode string) {
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.ledger.ReleaseAll(ctx, tx, requests); err != nil {
			return err
		}
		return s.markFailed(ctx, tx, order, enums.OrderStatusInventoryReserved, failureCode)
	})
	if err != nil {
		s.log.Error(ctx, "failed to unwind reservation", err)
	}
}

// unwindCommitted handles a capture failure: the hold is voided and the
// committed stock goes back on the shelf.
func (s *service) unwindCommitted(ctx context.Context, order *models.Order, intent *models.PaymentIntent, requests []inventory.ReservationRequest) {
	s.voidBestEffort(ctx, intent)
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.ledger.RestockAll(ctx, tx, requests); err != nil {
			return err
		}
		return s.markFailed(ctx, tx, order, enums.OrderStatusPaymentAuthorized, FailureCodeCaptureFailed)
	})
	if err != nil {
		s.log.Error(ctx, "failed to unwind committed stock", err)
	}
}

// failOrder moves the order to failed outside of any caller transaction.
func (s *service) failOrder(ctx context.Context, order *models.Order, from enums.OrderStatus, failureCode string) {
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.markFailed(ctx, tx, order, from, failureCode)
	})
	if err != nil {
		s.log.Error(ctx, "failed to mark order failed", err)
	}
}

func (s *service) markFailed(ctx context.Context, tx *gorm.DB, order *models.Order, from enums.OrderStatus, failureCode string) error {
	repo := s.ordersRepo.WithTx(tx)
	ok, err := repo.UpdateOrderStatus(ctx, order.ID, from, enums.OrderStatusFailed)
	if err != nil {
		return err
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "order changed while recording failure")
	}
	if err := repo.UpdateOrder(ctx, order.ID, map[string]any{"failure_code": failureCode}); err != nil {
		return err
	}
	order.Status = enums.OrderStatusFailed
	s.log.Warn(s.log.WithField(ctx, "failure_code", failureCode), "order failed")
	return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
		EventType:     enums.EventOrderFailed,
		AggregateType: enums.AggregateOrder,
		AggregateID:   order.ID,
		Data: payloads.OrderFailedEvent{
			OrderID:     order.ID,
			CustomerID:  order.CustomerID,
			FailureCode: failureCode,
			FailedAt:    time.Now(),
		},
		Version: 1,
	})
}

func (s *service) voidBestEffort(ctx context.Context, intent *models.PaymentIntent) {
	if intent == nil {
		return
	}
	if err := s.coordinator.Void(ctx, intent); err != nil {
		s.log.Error(ctx, "failed to void payment during unwind", err)
	}
}

func validatePlaceOrderInput(input PlaceOrderInput) error {
	if !input.Currency.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unsupported currency")
	}
	if len(input.Items) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "at least one item required")
	}
	if strings.TrimSpace(input.Payment.SourceID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "payment source required")
	}
	seen := make(map[uuid.UUID]bool, len(input.Items))
	for _, item := range input.Items {
		if item.VariantID == uuid.Nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "variant id required")
		}
		if item.Qty <= 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "qty must be positive")
		}
		if seen[item.VariantID] {
			return pkgerrors.New(pkgerrors.CodeValidation, "duplicate variant in order").
				WithDetails(map[string]string{"variant_id": item.VariantID.String()})
		}
		seen[item.VariantID] = true
	}
	return nil
}

func reservationRequests(items []models.OrderLineItem) []inventory.ReservationRequest {
	requests := make([]inventory.ReservationRequest, 0, len(items))
	for _, item := range items {
		requests = append(requests, inventory.ReservationRequest{
			LineItemID: item.ID,
			VariantID:  item.VariantID,
			Qty:        item.Qty,
		})
	}
	return requests
}

func failureCodeForError(err error) string {
	if typed := pkgerrors.As(err); typed != nil {
		switch typed.Code() {
		case pkgerrors.CodePaymentDeclined:
			return FailureCodePaymentDeclined
		case pkgerrors.CodeGatewayUnavailable:
			return FailureCodeGatewayUnavailable
		case pkgerrors.CodeCaptureFailed:
			return FailureCodeCaptureFailed
		}
	}
	return FailureCodeGatewayUnavailable
}

func stringValue(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
