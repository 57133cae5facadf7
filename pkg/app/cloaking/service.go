package cloaking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	appblocklist "github.com/linkveil/cloakgate/pkg/app/blocklist"
	"github.com/linkveil/cloakgate/pkg/app/engine"
	approute "github.com/linkveil/cloakgate/pkg/app/route"
	"github.com/linkveil/cloakgate/pkg/domain/accesslog"
	"github.com/linkveil/cloakgate/pkg/infra/fingerprint"
	"github.com/linkveil/cloakgate/pkg/infra/metrics"
	"github.com/linkveil/cloakgate/pkg/infra/repository"
)

var ErrRouteNotFound = repository.ErrRouteNotFound

const logWriteTimeout = 5 * time.Second

// Service ties the redirect hot path together: resolve the route, fetch the
// merged blocklists, run the evaluator and record the outcome. One call per
// incoming click.
type Service struct {
	routes    approute.Finder
	store     *appblocklist.Store
	evaluator *engine.Evaluator
	logs      accesslog.Repository
	logger    *logrus.Logger
}

func NewService(
	routes approute.Finder,
	store *appblocklist.Store,
	evaluator *engine.Evaluator,
	logs accesslog.Repository,
	logger *logrus.Logger,
) *Service {
	return &Service{
		routes:    routes,
		store:     store,
		evaluator: evaluator,
		logs:      logs,
		logger:    logger,
	}
}

// Resolve decides the destination for one visitor on one route. Returns
// ErrRouteNotFound when the slug does not resolve; any other error means the
// route store is unavailable and the caller should fail closed.
func (s *Service) Resolve(ctx context.Context, slug string, visitor *fingerprint.Visitor) (engine.Decision, error) {
	start := time.Now()

	policy, err := s.routes.Find(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrRouteNotFound) {
			return engine.Decision{}, ErrRouteNotFound
		}
		s.logger.WithError(err).WithField("slug", slug).Error("route lookup failed")
		return engine.Decision{}, err
	}

	lists := s.store.Get(ctx)
	decision := s.evaluator.Evaluate(ctx, visitor, policy, lists, visitor.RequestTime)

	metrics.DecisionTotal.WithLabelValues(policy.Slug, string(decision.Destination), decision.Reason).Inc()
	metrics.DecisionLatency.Observe(float64(time.Since(start).Milliseconds()))

	s.recordAccess(policy.TenantID, policy.Slug, visitor, decision)

	return decision, nil
}

// recordAccess writes the access-log entry off the request path. A failed
// write loses one log line, never a redirect.
func (s *Service) recordAccess(tenantID uuid.UUID, slug string, visitor *fingerprint.Visitor, decision engine.Decision) {
	entry := &accesslog.Entry{
		TenantID:  tenantID,
		RouteSlug: slug,
		IP:        visitor.IP,
		Country:   visitor.Country,
		UserAgent: visitor.UserAgent,
		Referer:   visitor.Referer,
		Decision:  string(decision.Destination),
		Reason:    decision.Reason,
		CreatedAt: visitor.RequestTime,
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), logWriteTimeout)
		defer cancel()
		if err := s.logs.Create(ctx, entry); err != nil {
			s.logger.WithError(err).Warn("failed to persist access log entry")
		}
	}()
}
