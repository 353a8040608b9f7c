package scheduler

import (
	"context"
	"errors"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/scaroll/pgclosets-core/internal/clock"
	quotedomain "github.com/scaroll/pgclosets-core/internal/quote/domain"
)

var ErrInvalidConfig = errors.New("invalid_scheduler_config")

type Params struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	Clock  clock.Clock
	Config Config `optional:"true"`
}

// Scheduler runs the periodic housekeeping jobs. The only job today is
// purging quotes whose validity window lapsed past the grace period.
type Scheduler struct {
	db    *gorm.DB
	log   *zap.Logger
	cfg   Config
	clock clock.Clock
}

func New(p Params) (*Scheduler, error) {
	if p.DB == nil || p.Log == nil || p.Clock == nil {
		return nil, ErrInvalidConfig
	}
	return &Scheduler{
		db:    p.DB,
		log:   p.Log.Named("scheduler").With(zap.String("component", "scheduler")),
		cfg:   p.Config.withDefaults(),
		clock: p.Clock,
	}, nil
}

func (s *Scheduler) RunForever(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.RunInterval)
	defer ticker.Stop()

	for {
		if err := s.RunOnce(ctx); err != nil {
			s.log.Warn("scheduler run failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *Scheduler) RunOnce(ctx context.Context) error {
	return s.runJob(ctx, "purge_expired_quotes", s.PurgeExpiredQuotesJob)
}

func (s *Scheduler) runJob(parent context.Context, name string, fn func(ctx context.Context) error) error {
	start := s.clock.Now()
	ctx, cancel := context.WithTimeout(parent, s.cfg.JobTimeout)
	defer cancel()

	err := fn(ctx)
	log := s.log.With(
		zap.String("job", name),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
	if err != nil {
		log.Warn("job failed", zap.Error(err))
		return err
	}
	log.Debug("job completed")
	return nil
}

// PurgeExpiredQuotesJob deletes quotes long past expiry, in bounded
// batches so a backlog never holds a transaction open.
func (s *Scheduler) PurgeExpiredQuotesJob(ctx context.Context) error {
	cutoff := s.clock.Now().Add(-s.cfg.PurgeGrace)

	for {
		result := s.db.WithContext(ctx).
			Where("id IN (?)", s.db.
				Model(&quotedomain.Quote{}).
				Select("id").
				Where("expires_at < ?", cutoff).
				Limit(s.cfg.PurgeBatchSize),
			).
			Delete(&quotedomain.Quote{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			s.log.Info("purged expired quotes",
				zap.Int64("count", result.RowsAffected),
				zap.Time("cutoff", cutoff),
			)
		}
		if result.RowsAffected < int64(s.cfg.PurgeBatchSize) {
			return nil
		}
	}
}
