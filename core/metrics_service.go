package core

import (
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// Metric keys kept in Redis.
const (
	metricLoginOK      = "metrics:logins_ok"
	metricLoginFailed  = "metrics:logins_failed"
	metricTokensIssued = "metrics:tokens_issued"
	metricRateLimited  = "metrics:logins_rate_limited"
)

// AuthMetrics is a point-in-time snapshot of the login counters.
type AuthMetrics struct {
	LoginsOK          int64 `json:"logins_ok"`
	LoginsFailed      int64 `json:"logins_failed"`
	TokensIssued      int64 `json:"tokens_issued"`
	LoginsRateLimited int64 `json:"logins_rate_limited"`
}

// MetricsService records and reads authentication counters in Redis.
// Recording is best-effort: a metrics failure never fails the request.
type MetricsService struct {
	redis RedisClientRaw
}

func NewMetricsService(redis RedisClientRaw) *MetricsService {
	return &MetricsService{redis: redis}
}

func (s *MetricsService) LoginSucceeded(ctx context.Context) { s.incr(ctx, metricLoginOK) }
func (s *MetricsService) LoginFailed(ctx context.Context)    { s.incr(ctx, metricLoginFailed) }
func (s *MetricsService) TokenIssued(ctx context.Context)    { s.incr(ctx, metricTokensIssued) }
func (s *MetricsService) LoginRateLimited(ctx context.Context) {
	s.incr(ctx, metricRateLimited)
}

func (s *MetricsService) incr(ctx context.Context, key string) {
	if s == nil || s.redis == nil {
		return
	}
	_ = s.redis.Incr(ctx, key).Err()
}

// Snapshot returns current counter values. Missing keys read as zero.
func (s *MetricsService) Snapshot(ctx context.Context) (AuthMetrics, error) {
	var m AuthMetrics
	var err error
	if m.LoginsOK, err = s.counter(ctx, metricLoginOK); err != nil {
		return AuthMetrics{}, err
	}
	if m.LoginsFailed, err = s.counter(ctx, metricLoginFailed); err != nil {
		return AuthMetrics{}, err
	}
	if m.TokensIssued, err = s.counter(ctx, metricTokensIssued); err != nil {
		return AuthMetrics{}, err
	}
	if m.LoginsRateLimited, err = s.counter(ctx, metricRateLimited); err != nil {
		return AuthMetrics{}, err
	}
	return m, nil
}

func (s *MetricsService) counter(ctx context.Context, key string) (int64, error) {
	val, err := s.redis.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		return 0, err
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, nil
	}
	return n, nil
}
