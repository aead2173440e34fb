package config_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voyagedesk/travel-api/internal/config"
	"go.uber.org/zap"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "local", cfg.Storage.Mode)
	assert.Equal(t, 300, cfg.Storage.ThumbnailWidth)
	assert.Equal(t, "dbo.agent_booking_history", cfg.DataWarehouse.BookingHistoryTable)
	assert.True(t, cfg.Jobs.Enabled)
	assert.Equal(t, 30*time.Minute, cfg.Jobs.PendingImageTTLDuration())
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeoutDuration())
	assert.Contains(t, cfg.RateLimit.WhitelistPaths, "/health")
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ADMIN_API_KEY", "admin-key")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, "test-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, "admin-key", cfg.Auth.APIKey)
}

func TestLoadWithSecrets_DevelopmentUsesEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("APP_ENVIRONMENT", "development")

	cfg, err := config.LoadWithSecrets(context.Background(), zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.App.Environment)
}

func TestLoadWithSecrets_VaultNeedsName(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("APP_ENVIRONMENT", "production")
	t.Setenv("AZURE_KEY_VAULT_NAME", "")

	_, err := config.LoadWithSecrets(context.Background(), zap.NewNop())
	assert.Error(t, err)
}

func TestDatabaseConfig_ConnectionString(t *testing.T) {
	cfg := config.DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "travel", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=travel sslmode=disable", cfg.ConnectionString())
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
