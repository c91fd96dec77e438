package postgres

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDSN_PrefersURL(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Host = "ignored"
	cfg.URL = "postgres://planner:secret@db:5432/course_planner?sslmode=disable"

	assert.Equal(t, cfg.URL, cfg.DSN())
}

func TestConfigDSN_FromComponents(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Host = "db"
	cfg.Password = "secret"

	dsn := cfg.DSN()
	assert.Contains(t, dsn, "host=db")
	assert.Contains(t, dsn, "port=5432")
	assert.Contains(t, dsn, "dbname=course_planner")
	assert.Contains(t, dsn, "sslmode=disable")
}

func TestPoolConfig_AppliesPoolSettings(t *testing.T) {
	cfg := DefaultConfig()
	cfg.URL = "postgres://planner:secret@db:5432/course_planner"
	cfg.MaxConns = 25
	cfg.MinConns = 5
	cfg.MaxConnLifetime = 5 * time.Minute
	cfg.MaxConnIdleTime = time.Minute

	poolCfg, err := cfg.PoolConfig()
	require.NoError(t, err)

	assert.Equal(t, int32(25), poolCfg.MaxConns)
	assert.Equal(t, int32(5), poolCfg.MinConns)
	assert.Equal(t, 5*time.Minute, poolCfg.MaxConnLifetime)
	assert.Equal(t, time.Minute, poolCfg.MaxConnIdleTime)
}

func TestDefaultConfig_BoundsQueries(t *testing.T) {
	assert.Equal(t, 30*time.Second, DefaultConfig().QueryTimeout)
}

func TestIsUniqueViolation(t *testing.T) {
	wrapped := fmt.Errorf("seed catalog batch: %w", &pgconn.PgError{Code: "23505"})
	assert.True(t, IsUniqueViolation(wrapped))
	assert.False(t, IsUniqueViolation(errors.New("connection reset")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestIsForeignKeyViolation(t *testing.T) {
	wrapped := fmt.Errorf("seed students batch: %w", &pgconn.PgError{Code: "23503"})
	assert.True(t, IsForeignKeyViolation(wrapped))
	assert.False(t, IsForeignKeyViolation(&pgconn.PgError{Code: "23505"}))
}
