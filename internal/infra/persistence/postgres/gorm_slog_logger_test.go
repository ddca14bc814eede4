package postgres

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/errors"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func newBufferedGormLogger(debug bool) (*gormSlogLogger, *bytes.Buffer) {
	var buf bytes.Buffer
	cfg := &config.Config{}
	cfg.Env.Debug = debug
	base := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	return newGormSlogLogger(base, cfg).(*gormSlogLogger), &buf
}

func sqlFn(sql string) func() (string, int64) {
	return func() (string, int64) { return sql, 1 }
}

func TestGormSlogLogger_Trace(t *testing.T) {
	t.Run("not found is not an error", func(t *testing.T) {
		l, buf := newBufferedGormLogger(false)

		l.Trace(context.Background(), time.Now(), sqlFn("SELECT 1"), gorm.ErrRecordNotFound)

		assert.Empty(t, buf.String())
	})

	t.Run("failures are logged with the request id", func(t *testing.T) {
		l, buf := newBufferedGormLogger(false)
		ctx := deliverycontext.WithLogger(context.Background(), l.logger.With(slog.String("request_id", "req-7")))

		l.Trace(ctx, time.Now(), sqlFn("UPDATE products SET stock = stock - 1"), errors.New("deadlock detected"))

		out := buf.String()
		assert.Contains(t, out, "GORM query failed")
		assert.Contains(t, out, "request_id=req-7")
		assert.Contains(t, out, "deadlock detected")
	})

	t.Run("slow queries warn", func(t *testing.T) {
		l, buf := newBufferedGormLogger(false)

		l.Trace(context.Background(), time.Now().Add(-time.Second), sqlFn("SELECT pg_sleep(1)"), nil)

		assert.Contains(t, buf.String(), "GORM slow query")
	})

	t.Run("fast queries only in debug", func(t *testing.T) {
		quiet, quietBuf := newBufferedGormLogger(false)
		quiet.Trace(context.Background(), time.Now(), sqlFn("SELECT 1"), nil)
		assert.Empty(t, quietBuf.String())

		verbose, verboseBuf := newBufferedGormLogger(true)
		verbose.Trace(context.Background(), time.Now(), sqlFn("SELECT 1"), nil)
		assert.Contains(t, verboseBuf.String(), "GORM query")
	})

	t.Run("long statements are truncated", func(t *testing.T) {
		l, buf := newBufferedGormLogger(false)

		l.Trace(context.Background(), time.Now().Add(-time.Second), sqlFn(strings.Repeat("x", 5000)), nil)

		assert.Contains(t, buf.String(), "(truncated)")
		assert.Less(t, len(buf.String()), 3000)
	})
}
