package blocklist

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/linkveil/cloakgate/pkg/common"
	"github.com/linkveil/cloakgate/pkg/domain/blocklist"
	"github.com/linkveil/cloakgate/pkg/infra/metrics"
)

const refreshTimeout = 10 * time.Second

// Store serves the merged global blocklists with bounded staleness. Refresh
// is triggered lazily by request traffic and never blocks a caller: callers
// always get the last-known-good value (or baseline-only before the first
// successful fetch) while at most one overlay fetch is in flight.
type Store struct {
	repo   blocklist.Repository
	logger *logrus.Logger
	ttl    time.Duration

	sf singleflight.Group

	mu        sync.RWMutex
	current   blocklist.GlobalBlocklists
	fetchedAt time.Time
	populated bool
}

func NewStore(repo blocklist.Repository, ttl time.Duration, logger *logrus.Logger) *Store {
	if ttl <= 0 {
		ttl = common.BlocklistCacheTTL
	}
	return &Store{
		repo:   repo,
		logger: logger,
		ttl:    ttl,
	}
}

// Get returns the merged lists, at most ttl stale. Never blocks on the
// overlay fetch and never fails.
func (s *Store) Get(ctx context.Context) blocklist.GlobalBlocklists {
	s.mu.RLock()
	current := s.current
	populated := s.populated
	fresh := populated && time.Since(s.fetchedAt) < s.ttl
	s.mu.RUnlock()

	if fresh {
		return current
	}

	s.triggerRefresh()

	if populated {
		return current
	}
	return Baseline()
}

// triggerRefresh starts a background overlay fetch unless one is already in
// flight.
func (s *Store) triggerRefresh() {
	go func() {
		_, _, _ = s.sf.Do("overlay", func() (interface{}, error) {
			s.mu.RLock()
			fresh := s.populated && time.Since(s.fetchedAt) < s.ttl
			s.mu.RUnlock()
			if fresh {
				return nil, nil
			}

			ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
			defer cancel()

			overlay, err := s.repo.GetOverlay(ctx)
			if err != nil {
				metrics.BlocklistRefreshTotal.WithLabelValues("error").Inc()
				s.logger.WithError(err).Warn("blocklist overlay fetch failed, serving last-known-good")
				return nil, err
			}

			merged := Baseline().Merge(overlay)

			s.mu.Lock()
			s.current = merged
			s.fetchedAt = time.Now()
			s.populated = true
			s.mu.Unlock()

			metrics.BlocklistRefreshTotal.WithLabelValues("ok").Inc()
			return nil, nil
		})
	}()
}

// Refresh forces a synchronous overlay fetch. Used by the admin API after a
// merge-write so reads observe the change immediately.
func (s *Store) Refresh(ctx context.Context) error {
	_, err, _ := s.sf.Do("overlay", func() (interface{}, error) {
		overlay, err := s.repo.GetOverlay(ctx)
		if err != nil {
			metrics.BlocklistRefreshTotal.WithLabelValues("error").Inc()
			return nil, err
		}

		merged := Baseline().Merge(overlay)

		s.mu.Lock()
		s.current = merged
		s.fetchedAt = time.Now()
		s.populated = true
		s.mu.Unlock()

		metrics.BlocklistRefreshTotal.WithLabelValues("ok").Inc()
		return nil, nil
	})
	return err
}
