package engine

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/linkveil/cloakgate/pkg/infra/cache"
)

// rotationCounterTTL bounds how long an idle counter key lives in redis, so
// counters for deleted routes do not accumulate. An active route recreates
// its key on the next click; the round-robin position resets, which is fine.
const rotationCounterTTL = 30 * 24 * time.Hour

//go:generate mockery --name=Rotator --dir=. --output=./mocks --filename=rotator_mock.go --case=underscore --with-expecter
type Rotator interface {
	// Next returns the index of the next destination for the route,
	// monotonically increasing and wrapping modulo length.
	Next(ctx context.Context, routeID string, length int) int
}

type redisRotator struct {
	cache  cache.Client
	logger *logrus.Logger
	local  localCounters
}

// NewRedisRotator keeps rotation counters in redis so round-robin survives
// restarts and is shared across replicas. On redis failure it degrades to an
// in-process counter; approximate fairness is acceptable.
func NewRedisRotator(c cache.Client, logger *logrus.Logger) Rotator {
	return &redisRotator{
		cache:  c,
		logger: logger,
	}
}

func (r *redisRotator) Next(ctx context.Context, routeID string, length int) int {
	if length <= 1 {
		return 0
	}
	key := fmt.Sprintf(cache.RotationKeyPattern, routeID)
	n, err := r.cache.Incr(ctx, key)
	if err != nil {
		r.logger.WithError(err).Debug("redis rotation counter failed, using local counter")
		return r.local.next(routeID, length)
	}
	if n == 1 {
		if err := r.cache.Expire(ctx, key, rotationCounterTTL); err != nil {
			r.logger.WithError(err).Debug("failed to set rotation counter expiry")
		}
	}
	return int((n - 1) % int64(length))
}

type localRotator struct {
	counters localCounters
}

// NewLocalRotator keeps rotation counters in process memory only.
func NewLocalRotator() Rotator {
	return &localRotator{}
}

func (r *localRotator) Next(_ context.Context, routeID string, length int) int {
	if length <= 1 {
		return 0
	}
	return r.counters.next(routeID, length)
}

type localCounters struct {
	m sync.Map
}

func (c *localCounters) next(routeID string, length int) int {
	v, _ := c.m.LoadOrStore(routeID, &atomic.Uint64{})
	counter, ok := v.(*atomic.Uint64)
	if !ok {
		return 0
	}
	return int((counter.Add(1) - 1) % uint64(length))
}
