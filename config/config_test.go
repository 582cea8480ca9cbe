package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	// pin every asserted key so host environment values cannot leak in
	for _, key := range []string{"APP_NAME", "PORT", "DB_NAME", "JWT_AUTH_TTL", "MIGRATIONS_DIR"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	require.Equal(t, "go-todo-api", cfg.AppName)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "todoapp", cfg.DBName)
	require.Zero(t, cfg.AuthTTL, "auth tokens default to no expiry")
	require.Equal(t, "db/migrations", cfg.MigrationsDir)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("DB_NAME", "todoapptest")
	t.Setenv("JWT_AUTH_SECRET", "from-env")
	t.Setenv("JWT_AUTH_TTL", "2h")
	t.Setenv("DB_MAX_CONNS", "25")

	cfg := Load()
	require.Equal(t, "9999", cfg.Port)
	require.Equal(t, "todoapptest", cfg.DBName)
	require.Equal(t, "from-env", cfg.JWTAuthSecret)
	require.Equal(t, 2*time.Hour, cfg.AuthTTL)
	require.Equal(t, int32(25), cfg.DBMaxConns)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("DB_MAX_CONNS", "lots")
	t.Setenv("JWT_AUTH_TTL", "soon")
	t.Setenv("MAIL_SEND_ENABLED", "sort of")

	cfg := Load()
	require.Equal(t, int32(10), cfg.DBMaxConns)
	require.Zero(t, cfg.AuthTTL)
	require.False(t, cfg.MailSendEnabled)
}

func TestPostgresDSN(t *testing.T) {
	t.Setenv("DB_USER", "u")
	t.Setenv("DB_PASSWORD", "p")
	t.Setenv("DB_HOST", "dbhost")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_NAME", "todos")

	cfg := Load()
	require.Equal(t, "postgres://u:p@dbhost:5433/todos?sslmode=disable", cfg.PostgresDSN())
}

func TestCSVHelpers(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test ,")
	t.Setenv("ELASTICSEARCH_ADDRS", "")

	cfg := Load()
	require.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins())
	require.Empty(t, cfg.ESAddrs())
}
