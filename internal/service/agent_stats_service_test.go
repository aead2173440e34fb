package service_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voyagedesk/travel-api/internal/datawarehouse"
	"github.com/voyagedesk/travel-api/internal/domain"
	"github.com/voyagedesk/travel-api/internal/repository"
	"github.com/voyagedesk/travel-api/internal/service"
	"github.com/voyagedesk/travel-api/internal/testutil"
	"go.uber.org/zap"
)

func warehouseWithHistory(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE agent_booking_history (agent_id TEXT NOT NULL, status TEXT NOT NULL)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO agent_booking_history (agent_id, status) VALUES
		('agent-1', 'confirmed'), ('agent-1', 'confirmed'), ('agent-1', 'cancelled')`)
	require.NoError(t, err)
	return db
}

func TestAgentStatsProvider_LocalOnly(t *testing.T) {
	db := testutil.SetupTestDB(t)
	stats := service.NewAgentStatsProvider(repository.NewBookingRepository(db), nil, zap.NewNop())
	ctx := context.Background()

	testutil.CreateTestBooking(t, db, "agent-1")
	cancelled := testutil.CreateTestBooking(t, db, "agent-1")
	cancelled.Status = domain.BookingStatusCancelled
	require.NoError(t, db.Save(cancelled).Error)

	count, err := stats.BookingCount(ctx, "agent-1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = stats.BookingCount(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestAgentStatsProvider_WithWarehouse(t *testing.T) {
	db := testutil.SetupTestDB(t)
	dw := datawarehouse.NewClientFromDB(warehouseWithHistory(t), "agent_booking_history", time.Second, zap.NewNop())
	stats := service.NewAgentStatsProvider(repository.NewBookingRepository(db), dw, zap.NewNop())

	testutil.CreateTestBooking(t, db, "agent-1")

	count, err := stats.BookingCount(context.Background(), "agent-1")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestAgentStatsProvider_WarehouseFailureFallsBack(t *testing.T) {
	db := testutil.SetupTestDB(t)
	// the history table is missing, so every warehouse query fails
	dw := datawarehouse.NewClientFromDB(warehouseWithHistory(t), "missing_history", time.Second, zap.NewNop())
	stats := service.NewAgentStatsProvider(repository.NewBookingRepository(db), dw, zap.NewNop())

	testutil.CreateTestBooking(t, db, "agent-1")

	count, err := stats.BookingCount(context.Background(), "agent-1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
