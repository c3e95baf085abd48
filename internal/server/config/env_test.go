package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapLookup(m map[string]string) lookupFunc {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	err := applyEnv(cfg, mapLookup(map[string]string{
		"CREDVAULT_GRPC_ADDR":            ":6000",
		"CREDVAULT_SECRET_KEY":           "from-env",
		"CREDVAULT_ACCESS_TOKEN_TTL":     "2h",
		"CREDVAULT_EXPOSE_PASSWORD_HINT": "true",
		"CREDVAULT_REDIS_DB":             "3",
		"CREDVAULT_LOG_FORMAT":           "text",
		"UNRELATED":                      "x",
	}))
	require.NoError(t, err)

	assert.Equal(t, ":6000", cfg.EndpointAddrGRPC)
	assert.Equal(t, "from-env", cfg.SecretKey)
	assert.Equal(t, 2*time.Hour, cfg.AccessTokenValidityDuration)
	assert.True(t, cfg.ExposePasswordHint)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, ":8080", cfg.EndpointAddrHTTP)
}

func TestApplyEnv_InvalidValues(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	err := applyEnv(cfg, mapLookup(map[string]string{
		"CREDVAULT_ACCESS_TOKEN_TTL":     "forever",
		"CREDVAULT_REDIS_DB":             "zero",
		"CREDVAULT_EXPOSE_PASSWORD_HINT": "perhaps",
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CREDVAULT_ACCESS_TOKEN_TTL")
	assert.Contains(t, err.Error(), "CREDVAULT_REDIS_DB")
	assert.Contains(t, err.Error(), "CREDVAULT_EXPOSE_PASSWORD_HINT")
	assert.Equal(t, time.Hour, cfg.AccessTokenValidityDuration)
}

func TestParseEnv_DotenvFile(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("CREDVAULT_S3_BUCKET=dotenv-bucket\n"), 0o600))
	t.Setenv("CREDVAULT_S3_BUCKET", "")
	require.NoError(t, os.Unsetenv("CREDVAULT_S3_BUCKET"))

	os.Args = []string{"testbin", "-env", path}

	cfg := &Config{}
	cfg.LoadDefaults()
	require.NoError(t, parseEnv(cfg))
	assert.Equal(t, "dotenv-bucket", cfg.S3Bucket)
}

func TestParseEnv_ProcessEnvWinsOverDotenv(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("CREDVAULT_S3_REGION=from-file\n"), 0o600))
	t.Setenv("CREDVAULT_S3_REGION", "from-process")

	os.Args = []string{"testbin", "-envfile", path}

	cfg := &Config{}
	cfg.LoadDefaults()
	require.NoError(t, parseEnv(cfg))
	assert.Equal(t, "from-process", cfg.S3Region)
}

func TestParseEnv_MissingExplicitFile(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin", "-env", filepath.Join(t.TempDir(), "missing.env")}

	assert.Error(t, parseEnv(&Config{}))
}
