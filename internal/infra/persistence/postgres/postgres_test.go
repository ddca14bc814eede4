package postgres

import (
	"bytes"
	"context"
	"database/sql"
	"log/slog"
	"testing"
	"time"

	"storefront/config"

	"github.com/stretchr/testify/assert"
)

func TestPoolMonitor_Sample(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	current := sql.DBStats{MaxOpenConnections: 10}
	m := newPoolMonitor(logger, func() sql.DBStats { return current })

	m.sample(context.Background())
	assert.Empty(t, buf.String(), "no waits, nothing logged")

	current.WaitCount = 2
	current.WaitDuration = 10 * time.Millisecond
	m.sample(context.Background())
	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "waits=2")

	buf.Reset()
	current.WaitCount = 4
	current.WaitDuration = 10*time.Millisecond + time.Second
	m.sample(context.Background())
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "avg_wait=500ms")
}

func TestApplyPoolLimits(t *testing.T) {
	db, err := sql.Open("pgx", "postgres://localhost/none")
	if err != nil {
		t.Skip("pgx driver not registered")
	}
	defer db.Close()

	applyPoolLimits(db, config.PoolConfig{MaxOpenConns: 4, MaxIdleConns: 10})

	assert.Equal(t, 4, db.Stats().MaxOpenConnections)
}
