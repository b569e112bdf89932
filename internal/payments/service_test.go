package payments

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	sq "github.com/square/square-go-sdk"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/storefrontlabs/storefront-backend/pkg/config"
	"github.com/storefrontlabs/storefront-backend/pkg/db/models"
	"github.com/storefrontlabs/storefront-backend/pkg/enums"
	pkgerrors "github.com/storefrontlabs/storefront-backend/pkg/errors"
	"github.com/storefrontlabs/storefront-backend/pkg/logger"
	"github.com/storefrontlabs/storefront-backend/pkg/square"
)

type fakeGateway struct {
	authorizeCalls int
	authorizeErrs  []error
	paymentID      string

	captureErr error
	voidCalls  int
	voidErr    error
}

func (f *fakeGateway) AuthorizePayment(ctx context.Context, params square.PaymentAuthorizeParams) (*sq.Payment, error) {
	call := f.authorizeCalls
	f.authorizeCalls++
	if call < len(f.authorizeErrs) && f.authorizeErrs[call] != nil {
		return nil, f.authorizeErrs[call]
	}
	id := f.paymentID
	if id == "" {
		id = "pay_" + uuid.NewString()
	}
	return &sq.Payment{ID: &id}, nil
}

func (f *fakeGateway) CapturePayment(ctx context.Context, paymentID string) (*sq.Payment, error) {
	if f.captureErr != nil {
		return nil, f.captureErr
	}
	return &sq.Payment{ID: &paymentID}, nil
}

func (f *fakeGateway) VoidPayment(ctx context.Context, paymentID string) (*sq.Payment, error) {
	f.voidCalls++
	if f.voidErr != nil {
		return nil, f.voidErr
	}
	return &sq.Payment{ID: &paymentID}, nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:payments_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.PaymentIntent{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newCoordinator(t *testing.T, db *gorm.DB, gateway Gateway) *Coordinator {
	t.Helper()
	log := logger.New(logger.Options{ServiceName: "payments-test", Output: io.Discard})
	coord, err := NewCoordinator(NewRepository(db), gateway, config.CheckoutConfig{
		PaymentRetryAttempts: 3,
		PaymentRetryBase:     time.Millisecond,
		PaymentRetryCap:      2 * time.Millisecond,
	}, log)
	if err != nil {
		t.Fatalf("new coordinator: %v", err)
	}
	return coord
}

func seedIntent(t *testing.T, db *gorm.DB, status enums.PaymentIntentStatus, gatewayPaymentID string) *models.PaymentIntent {
	t.Helper()
	intent := &models.PaymentIntent{
		ID:          uuid.New(),
		OrderID:     uuid.New(),
		Status:      status,
		AmountCents: 2599,
		Currency:    enums.CurrencyUSD,
	}
	if gatewayPaymentID != "" {
		intent.GatewayPaymentID = &gatewayPaymentID
	}
	if err := db.Create(intent).Error; err != nil {
		t.Fatalf("seed intent: %v", err)
	}
	return intent
}

func loadIntent(t *testing.T, db *gorm.DB, id uuid.UUID) models.PaymentIntent {
	t.Helper()
	var intent models.PaymentIntent
	if err := db.First(&intent, "id = ?", id).Error; err != nil {
		t.Fatalf("load intent: %v", err)
	}
	return intent
}

func TestAuthorize_Success(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	gateway := &fakeGateway{paymentID: "pay_123"}
	coord := newCoordinator(t, db, gateway)
	intent := seedIntent(t, db, enums.PaymentIntentStatusPending, "")

	got, err := coord.Authorize(context.Background(), intent, AuthorizeParams{SourceID: "cnon:ok"})
	if err != nil {
		t.Fatalf("authorize: %v", err)
	}
	if got.Status != enums.PaymentIntentStatusAuthorized {
		t.Fatalf("unexpected status %s", got.Status)
	}

	stored := loadIntent(t, db, intent.ID)
	if stored.Status != enums.PaymentIntentStatusAuthorized {
		t.Fatalf("stored status %s", stored.Status)
	}
	if stored.GatewayPaymentID == nil || *stored.GatewayPaymentID != "pay_123" {
		t.Fatal("expected gateway payment id to be persisted")
	}
	if stored.AuthorizedAt == nil {
		t.Fatal("expected authorized_at to be stamped")
	}
}

func TestAuthorize_DeclineIsTerminal(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	gateway := &fakeGateway{authorizeErrs: []error{
		pkgerrors.New(pkgerrors.CodePaymentDeclined, "card declined"),
	}}
	coord := newCoordinator(t, db, gateway)
	intent := seedIntent(t, db, enums.PaymentIntentStatusPending, "")

	_, err := coord.Authorize(context.Background(), intent, AuthorizeParams{SourceID: "cnon:declined"})
	if !pkgerrors.Is(err, pkgerrors.CodePaymentDeclined) {
		t.Fatalf("expected decline, got %v", err)
	}
	if gateway.authorizeCalls != 1 {
		t.Fatalf("declines must not retry, got %d calls", gateway.authorizeCalls)
	}

	stored := loadIntent(t, db, intent.ID)
	if stored.Status != enums.PaymentIntentStatusFailed {
		t.Fatalf("stored status %s", stored.Status)
	}
	if stored.FailureReason == nil || *stored.FailureReason != string(pkgerrors.CodePaymentDeclined) {
		t.Fatalf("unexpected failure reason %v", stored.FailureReason)
	}
}

func TestAuthorize_RetriesGatewayOutage(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	gateway := &fakeGateway{
		paymentID: "pay_retry",
		authorizeErrs: []error{
			pkgerrors.New(pkgerrors.CodeGatewayUnavailable, "gateway timeout"),
			pkgerrors.New(pkgerrors.CodeGatewayUnavailable, "gateway timeout"),
		},
	}
	coord := newCoordinator(t, db, gateway)
	intent := seedIntent(t, db, enums.PaymentIntentStatusPending, "")

	got, err := coord.Authorize(context.Background(), intent, AuthorizeParams{SourceID: "cnon:flaky"})
	if err != nil {
		t.Fatalf("authorize: %v", err)
	}
	if gateway.authorizeCalls != 3 {
		t.Fatalf("expected 3 attempts, got %d", gateway.authorizeCalls)
	}
	if got.Status != enums.PaymentIntentStatusAuthorized {
		t.Fatalf("unexpected status %s", got.Status)
	}
}

func TestAuthorize_RetriesExhausted(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	gateway := &fakeGateway{authorizeErrs: []error{
		pkgerrors.New(pkgerrors.CodeGatewayUnavailable, "gateway timeout"),
		pkgerrors.New(pkgerrors.CodeGatewayUnavailable, "gateway timeout"),
		pkgerrors.New(pkgerrors.CodeGatewayUnavailable, "gateway timeout"),
	}}
	coord := newCoordinator(t, db, gateway)
	intent := seedIntent(t, db, enums.PaymentIntentStatusPending, "")

	_, err := coord.Authorize(context.Background(), intent, AuthorizeParams{SourceID: "cnon:down"})
	if !pkgerrors.Is(err, pkgerrors.CodeGatewayUnavailable) {
		t.Fatalf("expected gateway unavailable, got %v", err)
	}
	if gateway.authorizeCalls != 3 {
		t.Fatalf("expected 3 attempts, got %d", gateway.authorizeCalls)
	}

	stored := loadIntent(t, db, intent.ID)
	if stored.Status != enums.PaymentIntentStatusFailed {
		t.Fatalf("stored status %s", stored.Status)
	}
}

func TestCapture_Success(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	coord := newCoordinator(t, db, &fakeGateway{})
	intent := seedIntent(t, db, enums.PaymentIntentStatusAuthorized, "pay_abc")

	got, err := coord.Capture(context.Background(), intent)
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	if got.Status != enums.PaymentIntentStatusCaptured {
		t.Fatalf("unexpected status %s", got.Status)
	}

	stored := loadIntent(t, db, intent.ID)
	if stored.Status != enums.PaymentIntentStatusCaptured || stored.CapturedAt == nil {
		t.Fatalf("stored status %s captured_at %v", stored.Status, stored.CapturedAt)
	}
}

func TestCapture_RequiresAuthorizedIntent(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	coord := newCoordinator(t, db, &fakeGateway{})
	intent := seedIntent(t, db, enums.PaymentIntentStatusPending, "")

	_, err := coord.Capture(context.Background(), intent)
	if !pkgerrors.Is(err, pkgerrors.CodeStateConflict) {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestCapture_GatewayFailureLeavesIntentAuthorized(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	gateway := &fakeGateway{captureErr: pkgerrors.New(pkgerrors.CodeCaptureFailed, "settle failed")}
	coord := newCoordinator(t, db, gateway)
	intent := seedIntent(t, db, enums.PaymentIntentStatusAuthorized, "pay_abc")

	_, err := coord.Capture(context.Background(), intent)
	if !pkgerrors.Is(err, pkgerrors.CodeCaptureFailed) {
		t.Fatalf("expected capture failure, got %v", err)
	}

	stored := loadIntent(t, db, intent.ID)
	if stored.Status != enums.PaymentIntentStatusAuthorized {
		t.Fatalf("intent must stay authorized for the void path, got %s", stored.Status)
	}
}

func TestVoid_ReleasesAuthorizedHold(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	gateway := &fakeGateway{}
	coord := newCoordinator(t, db, gateway)
	intent := seedIntent(t, db, enums.PaymentIntentStatusAuthorized, "pay_abc")

	if err := coord.Void(context.Background(), intent); err != nil {
		t.Fatalf("void: %v", err)
	}
	if gateway.voidCalls != 1 {
		t.Fatalf("expected one void call, got %d", gateway.voidCalls)
	}

	stored := loadIntent(t, db, intent.ID)
	if stored.Status != enums.PaymentIntentStatusVoided || stored.VoidedAt == nil {
		t.Fatalf("stored status %s voided_at %v", stored.Status, stored.VoidedAt)
	}
}

func TestVoid_NoopWithoutAuthorization(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	gateway := &fakeGateway{}
	coord := newCoordinator(t, db, gateway)
	intent := seedIntent(t, db, enums.PaymentIntentStatusPending, "")

	if err := coord.Void(context.Background(), intent); err != nil {
		t.Fatalf("void: %v", err)
	}
	if gateway.voidCalls != 0 {
		t.Fatalf("expected no gateway call, got %d", gateway.voidCalls)
	}
}
