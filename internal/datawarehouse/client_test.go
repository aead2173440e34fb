package datawarehouse_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voyagedesk/travel-api/internal/config"
	"github.com/voyagedesk/travel-api/internal/datawarehouse"
	"go.uber.org/zap"
)

func setupHistoryDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE agent_booking_history (agent_id TEXT NOT NULL, status TEXT NOT NULL)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO agent_booking_history (agent_id, status) VALUES
		('agent-1', 'confirmed'), ('agent-1', 'confirmed'), ('agent-1', 'cancelled'), ('agent-2', 'pending')`)
	require.NoError(t, err)
	return db
}

func TestNewClient_DisabledReturnsNil(t *testing.T) {
	logger := zap.NewNop()

	client, err := datawarehouse.NewClient(&config.DataWarehouseConfig{Enabled: false}, logger)
	assert.NoError(t, err)
	assert.Nil(t, client)
	assert.False(t, client.IsEnabled())

	client, err = datawarehouse.NewClient(&config.DataWarehouseConfig{Enabled: true, URL: "dw:1433/reporting"}, logger)
	assert.NoError(t, err)
	assert.Nil(t, client)
}

func TestNewClient_RejectsBadTableName(t *testing.T) {
	_, err := datawarehouse.NewClient(&config.DataWarehouseConfig{
		Enabled:             true,
		URL:                 "dw:1433/reporting",
		User:                "reader",
		Password:            "secret",
		BookingHistoryTable: "bookings; DROP TABLE x",
	}, zap.NewNop())
	assert.Error(t, err)
}

func TestNilClient_IsSafe(t *testing.T) {
	var client *datawarehouse.Client

	assert.NoError(t, client.Close())
	assert.Equal(t, "disabled", client.HealthCheck(context.Background()).Status)

	_, err := client.AgentBookingCount(context.Background(), "agent-1")
	assert.Error(t, err)
}

func TestClient_AgentBookingCount(t *testing.T) {
	db := setupHistoryDB(t)
	client := datawarehouse.NewClientFromDB(db, "agent_booking_history", time.Second, zap.NewNop())

	count, err := client.AgentBookingCount(context.Background(), "agent-1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = client.AgentBookingCount(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	assert.Equal(t, "healthy", client.HealthCheck(context.Background()).Status)
}
