package outbox

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/storefrontlabs/storefront-backend/pkg/db/models"
	"github.com/storefrontlabs/storefront-backend/pkg/enums"
	"github.com/storefrontlabs/storefront-backend/pkg/logger"
)

func newOutboxDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:outbox_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.OutboxEvent{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestInsertAssignsEventID(t *testing.T) {
	t.Parallel()

	db := newOutboxDB(t)
	repo := NewRepository(db)

	// IDs come from the client, not a column default; two zero-ID inserts
	// must land as distinct rows.
	for i := 0; i < 2; i++ {
		event := models.OutboxEvent{
			EventType:     enums.EventOrderConfirmed,
			AggregateType: enums.AggregateOrder,
			AggregateID:   uuid.New(),
			Payload:       []byte(`{}`),
		}
		if err := repo.Insert(db, event); err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
	}

	rows, err := repo.FetchUnpublished(10, 0)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 events, got %d", len(rows))
	}
	for _, row := range rows {
		if row.ID == uuid.Nil {
			t.Fatal("event persisted without an id")
		}
	}
	if rows[0].ID == rows[1].ID {
		t.Fatal("events must get distinct ids")
	}
}

func TestEmitStoresEnvelope(t *testing.T) {
	t.Parallel()

	db := newOutboxDB(t)
	log := logger.New(logger.Options{ServiceName: "outbox-test", Output: io.Discard})
	svc := NewService(NewRepository(db), log)
	aggregateID := uuid.New()

	err := svc.Emit(context.Background(), db, DomainEvent{
		EventType:     enums.EventOrderCancelled,
		AggregateType: enums.AggregateOrder,
		AggregateID:   aggregateID,
		Data:          map[string]string{"reason": "test"},
		Version:       1,
	})
	if err != nil {
		t.Fatalf("emit: %v", err)
	}

	var row models.OutboxEvent
	if err := db.First(&row, "aggregate_id = ?", aggregateID).Error; err != nil {
		t.Fatalf("load event: %v", err)
	}
	if row.ID == uuid.Nil {
		t.Fatal("emitted event must carry an id")
	}
	if row.EventType != enums.EventOrderCancelled {
		t.Fatalf("unexpected event type %s", row.EventType)
	}
}
