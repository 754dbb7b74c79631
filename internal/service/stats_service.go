package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/aqarhub/aqar-hub-api/internal/models"
	appErrors "github.com/aqarhub/aqar-hub-api/pkg/errors"
)

const statsCacheKey = "aqar:stats:dashboard"

type statsRepository interface {
	Stats(ctx context.Context) (*models.Stats, error)
}

type cacheMetrics interface {
	RecordCacheLookup(hit bool)
}

// StatsService serves the dashboard snapshot with a Redis cache in front
// of the aggregate queries. The cache is optional; without Redis every
// request hits the database.
type StatsService struct {
	repo    statsRepository
	cache   *redis.Client
	metrics cacheMetrics
	logger  *zap.Logger
	ttl     time.Duration
}

// NewStatsService constructs a StatsService instance.
func NewStatsService(repo statsRepository, cache *redis.Client, metrics cacheMetrics, logger *zap.Logger, ttl time.Duration) *StatsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &StatsService{repo: repo, cache: cache, metrics: metrics, logger: logger, ttl: ttl}
}

// Snapshot returns the dashboard statistics, served from cache when fresh.
func (s *StatsService) Snapshot(ctx context.Context) (*models.Stats, error) {
	if s.cache != nil {
		raw, err := s.cache.Get(ctx, statsCacheKey).Bytes()
		switch {
		case err == nil:
			var cached models.Stats
			if unmarshalErr := json.Unmarshal(raw, &cached); unmarshalErr == nil {
				s.recordLookup(true)
				return &cached, nil
			}
			s.logger.Warn("failed to decode cached stats, refreshing")
		case errors.Is(err, redis.Nil):
			// cache miss, fall through
		default:
			s.logger.Warn("stats cache read failed", zap.Error(err))
		}
		s.recordLookup(false)
	}

	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to aggregate statistics")
	}

	if s.cache != nil {
		if payload, err := json.Marshal(stats); err == nil {
			if err := s.cache.Set(ctx, statsCacheKey, payload, s.ttl).Err(); err != nil {
				s.logger.Warn("stats cache write failed", zap.Error(err))
			}
		}
	}

	return stats, nil
}

// Invalidate drops the cached snapshot. Called after any write to the
// documents table so the dashboard never serves a stale total for long.
func (s *StatsService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, statsCacheKey).Err(); err != nil {
		s.logger.Warn("stats cache invalidation failed", zap.Error(err))
	}
}

func (s *StatsService) recordLookup(hit bool) {
	if s.metrics != nil {
		s.metrics.RecordCacheLookup(hit)
	}
}
