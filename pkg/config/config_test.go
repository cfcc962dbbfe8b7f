package config

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/anonto42/inkpost/backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	logger.SetOutput(io.Discard)
	for _, key := range []string{"PORT", "ENV", "POSTGRES_CONN_STR", "JWT_SECRET", "JWT_TTL", "FIREBASE_CREDENTIALS_PATH", "CORS_ALLOWED_ORIGINS"} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, devJWTSecret, cfg.JWTSecret)
	assert.Equal(t, 72*time.Hour, cfg.JWTTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
}

func TestLoad_FileThenEnvironment(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "9000"
env: production
postgres_conn_str: postgres://blog@localhost/blog
jwt_secret: from-file
jwt_ttl: 30m
cors_allowed_origins:
  - https://blog.example.com
`), 0o600))

	t.Setenv("PORT", "9100")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9100", cfg.Port)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, "postgres://blog@localhost/blog", cfg.PostgresConnStr)
	assert.Equal(t, "from-file", cfg.JWTSecret)
	assert.Equal(t, 30*time.Minute, cfg.JWTTTL)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSAllowedOrigins)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("production without secret", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ENV", "production")
		_, err := Load("")
		assert.Error(t, err)
	})

	t.Run("bad ttl", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("JWT_TTL", "forever")
		_, err := Load("")
		assert.ErrorContains(t, err, "JWT_TTL")
	})

	t.Run("missing file", func(t *testing.T) {
		clearEnv(t)
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}
