package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	redis "github.com/redis/go-redis/v9"

	"github.com/scaroll/pgclosets-core/internal/config"
)

const keyConfigureIP = "configure:ip:%s"

// ConfigureLimiter throttles the configure and quote endpoints per client
// IP. Disabled unless redis is configured; a broken limiter fails open so
// pricing never goes down with redis.
type ConfigureLimiter struct {
	enabled bool

	bucket *TokenBucket
	rate   float64
	burst  int
}

func NewConfigureLimiter(cfg config.Config) (*ConfigureLimiter, error) {
	if !cfg.RateLimitEnabled {
		return nil, nil
	}

	addr := strings.TrimSpace(cfg.RedisAddr)
	if addr == "" {
		return nil, errors.New("rate limit redis addr is required")
	}
	if cfg.RateLimitRate <= 0 || cfg.RateLimitBurst <= 0 {
		return nil, errors.New("rate limit rate and burst must be positive")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: strings.TrimSpace(cfg.RedisPassword),
		DB:       cfg.RedisDB,
	})

	return &ConfigureLimiter{
		enabled: true,
		bucket:  NewTokenBucket(client),
		rate:    cfg.RateLimitRate,
		burst:   cfg.RateLimitBurst,
	}, nil
}

func (l *ConfigureLimiter) Enabled() bool {
	return l != nil && l.enabled
}

func (l *ConfigureLimiter) Allow(ctx context.Context, clientIP string) (*Result, error) {
	if !l.Enabled() {
		return &Result{Allowed: true}, nil
	}
	return l.bucket.Allow(ctx, fmt.Sprintf(keyConfigureIP, clientIP), l.rate, l.burst)
}
