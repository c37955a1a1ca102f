package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/storefront-api/pkg/validator"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const minimal = `
commerce:
  endpoint: https://store.example.com/graphql
  storefront_token: secret
`

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, minimal))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "en", cfg.I18n.DefaultLocale)
	assert.Equal(t, 900*time.Second, cfg.Settings.Revalidate)
	assert.Equal(t, "/change-password", cfg.Auth.ResetPasswordPath)
	assert.Equal(t, 5, cfg.Commerce.MaxFailures)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Empty(t, cfg.Redis.URL)
}

func TestLoadConfigFromFile(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, minimal+`
server:
  port: 9090
settings:
  revalidate: 60s
security:
  allowed_origins:
    - https://shop.example.com
`))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, time.Minute, cfg.Settings.Revalidate)
	assert.Equal(t, []string{"https://shop.example.com"}, cfg.Security.AllowedOrigins)
	assert.Equal(t, "secret", cfg.Commerce.StorefrontToken)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("STOREFRONT_SERVER_PORT", "7070")
	t.Setenv("STOREFRONT_COMMERCE_STOREFRONT_TOKEN", "from-env")
	t.Setenv("STOREFRONT_SETTINGS_REVALIDATE", "5m")
	t.Setenv("STOREFRONT_RATE_LIMIT_BURST", "3")

	cfg, err := LoadConfig(writeConfig(t, minimal))
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "from-env", cfg.Commerce.StorefrontToken)
	assert.Equal(t, 5*time.Minute, cfg.Settings.Revalidate)
	assert.Equal(t, 3, cfg.RateLimit.Burst)
}

func TestLoadConfigValidation(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, `
commerce:
  endpoint: not a url
  storefront_token: secret
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")

	var issues validator.Issues
	require.ErrorAs(t, err, &issues)
	require.Len(t, issues, 1)
	assert.Equal(t, "commerce.endpoint", issues[0].Path)
	assert.Equal(t, validator.InvalidString, issues[0].Code)

	_, err = LoadConfig(writeConfig(t, "server:\n  port: 8080\n"))
	require.ErrorAs(t, err, &issues)
	paths := make([]string, 0, len(issues))
	for _, is := range issues {
		paths = append(paths, is.Path)
		assert.Equal(t, validator.InvalidType, is.Code)
	}
	assert.ElementsMatch(t, []string{"commerce.endpoint", "commerce.storefront_token"}, paths)
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
