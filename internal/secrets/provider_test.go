package secrets_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voyagedesk/travel-api/internal/secrets"
	"go.uber.org/zap"
)

type mapFetcher map[string]string

func (m mapFetcher) GetSecret(_ context.Context, name string) (string, error) {
	if v, ok := m[name]; ok {
		return v, nil
	}
	return "", secrets.ErrSecretNotFound
}

func TestResolveSource(t *testing.T) {
	assert.Equal(t, secrets.SourceEnvironment, secrets.ResolveSource(secrets.SourceAuto, "development"))
	assert.Equal(t, secrets.SourceEnvironment, secrets.ResolveSource(secrets.SourceAuto, ""))
	assert.Equal(t, secrets.SourceVault, secrets.ResolveSource(secrets.SourceAuto, "production"))
	assert.Equal(t, secrets.SourceVault, secrets.ResolveSource(secrets.SourceVault, "development"))
	assert.Equal(t, secrets.SourceEnvironment, secrets.ResolveSource(secrets.SourceEnvironment, "production"))
}

func TestNewProvider_VaultRequiresName(t *testing.T) {
	_, err := secrets.NewProvider(&secrets.ProviderConfig{Source: secrets.SourceVault}, zap.NewNop())
	assert.Error(t, err)
}

func TestNewProvider_Environment(t *testing.T) {
	t.Setenv("TRAVEL_TEST_SECRET", "from-env")

	p, err := secrets.NewProvider(&secrets.ProviderConfig{Source: secrets.SourceAuto, Environment: "development"}, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, p.IsVaultEnabled())

	v, err := p.GetSecret(context.Background(), "TRAVEL_TEST_SECRET")
	require.NoError(t, err)
	assert.Equal(t, "from-env", v)

	_, err = p.GetSecret(context.Background(), "TRAVEL_TEST_MISSING")
	assert.ErrorIs(t, err, secrets.ErrSecretNotFound)
}

func TestProvider_Apply(t *testing.T) {
	t.Setenv("TRAVEL_TEST_DB_USER", "env-user")

	p := secrets.NewProviderWithFetcher(secrets.SourceVault, mapFetcher{
		"db-user":     "vault-user",
		"db-password": "vault-password",
	}, zap.NewNop())

	user := "default-user"
	password := "default-password"
	apiKey := "configured-key"

	applied := p.Apply(context.Background(), []secrets.Binding{
		{Secret: "db-user", Env: "TRAVEL_TEST_DB_USER", Target: &user},
		{Secret: "db-password", Env: "TRAVEL_TEST_DB_PASSWORD", Target: &password},
		{Secret: "api-key", Target: &apiKey},
	})

	assert.Equal(t, "env-user", user, "environment overrides the vault")
	assert.Equal(t, "vault-password", password)
	assert.Equal(t, "configured-key", apiKey, "missing secrets keep the configured value")
	assert.Equal(t, []string{"db-user", "db-password"}, applied)
}
