package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/scaroll/pgclosets-core/internal/clock"
	quotedomain "github.com/scaroll/pgclosets-core/internal/quote/domain"
)

var testNow = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func testScheduler(t *testing.T, cfg Config) (*Scheduler, *gorm.DB) {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&quotedomain.Quote{}))

	s, err := New(Params{
		DB:     conn,
		Log:    zap.NewNop(),
		Clock:  clock.NewFakeClock(testNow),
		Config: cfg,
	})
	require.NoError(t, err)
	return s, conn
}

func seedQuote(t *testing.T, conn *gorm.DB, node *snowflake.Node, expiresAt time.Time) {
	t.Helper()
	require.NoError(t, conn.Create(&quotedomain.Quote{
		ID:             node.Generate(),
		Reference:      node.Generate().String(),
		SeriesID:       "renin-continental",
		SKU:            "RENIN-CONT-BD-W4800-H8000-MPIN-FMWH",
		Quantity:       1,
		UnitPriceCents: 113890,
		TotalCents:     113890,
		ExpiresAt:      expiresAt,
		CreatedAt:      testNow,
		UpdatedAt:      testNow,
	}).Error)
}

func TestNew_RequiresDependencies(t *testing.T) {
	_, err := New(Params{Log: zap.NewNop(), Clock: clock.NewFakeClock(testNow)})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestPurgeExpiredQuotesJob(t *testing.T) {
	s, conn := testScheduler(t, Config{PurgeGrace: 7 * 24 * time.Hour})
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	// Long expired, expired but inside grace, and still live.
	seedQuote(t, conn, node, testNow.Add(-8*24*time.Hour))
	seedQuote(t, conn, node, testNow.Add(-24*time.Hour))
	seedQuote(t, conn, node, testNow.Add(30*24*time.Hour))

	require.NoError(t, s.RunOnce(context.Background()))

	var remaining []quotedomain.Quote
	require.NoError(t, conn.Find(&remaining).Error)
	require.Len(t, remaining, 2)
	for _, q := range remaining {
		assert.True(t, q.ExpiresAt.After(testNow.Add(-7*24*time.Hour)))
	}
}

func TestPurgeExpiredQuotesJob_DrainsBacklogInBatches(t *testing.T) {
	s, conn := testScheduler(t, Config{PurgeBatchSize: 2, PurgeGrace: 24 * time.Hour})
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		seedQuote(t, conn, node, testNow.Add(-48*time.Hour))
	}

	require.NoError(t, s.RunOnce(context.Background()))

	var count int64
	require.NoError(t, conn.Model(&quotedomain.Quote{}).Count(&count).Error)
	assert.Zero(t, count)
}
