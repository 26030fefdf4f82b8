package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/glowbook/salon-platform/internal/domain/tenant"
	"github.com/glowbook/salon-platform/internal/events"
	"github.com/glowbook/salon-platform/internal/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_pragma=foreign_keys(1)"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.AuditLog{}))

	t.Cleanup(func() {
		db.Exec("DELETE FROM audit_logs")
	})

	return db
}

func TestLoggerLog(t *testing.T) {
	db := testDB(t)
	logger := New(db)

	staffID := uint(7)
	entityID := uint(42)

	require.NoError(t, logger.Log(1, 2, &staffID, "booking.created", "booking", &entityID, map[string]any{
		"start": "2026-03-10T14:00:00Z",
	}))

	var row models.AuditLog
	require.NoError(t, db.First(&row).Error)

	assert.Equal(t, uint(1), row.TenantID)
	assert.Equal(t, uint(2), row.SalonID)
	assert.Equal(t, "booking.created", row.Action)
	assert.Equal(t, "booking", row.Entity)
	require.NotNil(t, row.EntityID)
	assert.Equal(t, uint(42), *row.EntityID)
	assert.Contains(t, row.Metadata, "2026-03-10T14:00:00Z")
}

func TestDispatcherWritesAsync(t *testing.T) {
	db := testDB(t)
	d := NewDispatcher(New(db), zap.NewNop())

	entityID := uint(9)
	d.Dispatch(Event{
		TenantID: 3,
		Action:   "order.placed",
		Entity:   "order",
		EntityID: &entityID,
	})

	require.Eventually(t, func() bool {
		var count int64
		db.Model(&models.AuditLog{}).Where("action = ?", "order.placed").Count(&count)
		return count == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSubscriberRecordsDomainEvents(t *testing.T) {
	db := testDB(t)

	bus := events.NewBus(zap.NewNop())
	NewSubscriber(NewDispatcher(New(db), zap.NewNop())).Register(bus)

	bus.Publish(context.Background(), tenant.NewRegistered(5, tenant.PlanStarter))

	require.Eventually(t, func() bool {
		var row models.AuditLog
		err := db.Where("action = ?", tenant.EventRegistered).First(&row).Error
		if err != nil {
			return false
		}
		return row.TenantID == 5 && row.Entity == "tenant"
	}, 2*time.Second, 10*time.Millisecond)
}
