package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dsa-study/backend/internal/infrastructure"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open("file:svc_"+name+"?mode=memory&cache=shared&_foreign_keys=on"), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(infrastructure.Models()...))
	return db
}

func testTracer() trace.Tracer {
	return tracenoop.NewTracerProvider().Tracer("test")
}

func testMetrics(t *testing.T) *infrastructure.TelemetryMetrics {
	t.Helper()
	metrics, err := infrastructure.NewTelemetryMetrics(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)
	return metrics
}

// fixedClock returns a clock that advances by step on every call
func fixedClock(start time.Time, step time.Duration) func() time.Time {
	current := start.Add(-step)
	return func() time.Time {
		current = current.Add(step)
		return current
	}
}

var testLogger = zap.NewNop()

func strPtr(s string) *string { return &s }
