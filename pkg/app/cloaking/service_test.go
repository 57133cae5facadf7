package cloaking_test

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	appblocklist "github.com/linkveil/cloakgate/pkg/app/blocklist"
	"github.com/linkveil/cloakgate/pkg/app/cloaking"
	"github.com/linkveil/cloakgate/pkg/app/engine"
	"github.com/linkveil/cloakgate/pkg/domain"
	"github.com/linkveil/cloakgate/pkg/domain/accesslog"
	"github.com/linkveil/cloakgate/pkg/domain/blocklist"
	"github.com/linkveil/cloakgate/pkg/domain/route"
	"github.com/linkveil/cloakgate/pkg/infra/fingerprint"
	"github.com/linkveil/cloakgate/pkg/infra/repository"
)

type fakeFinder struct {
	policy *route.Policy
	err    error
}

func (f *fakeFinder) Find(_ context.Context, _ string) (*route.Policy, error) {
	return f.policy, f.err
}

type fakeOverlayRepo struct{}

func (fakeOverlayRepo) GetOverlay(_ context.Context) (blocklist.GlobalBlocklists, error) {
	return blocklist.GlobalBlocklists{}, nil
}

func (fakeOverlayRepo) MergeWrite(_ context.Context, _ blocklist.GlobalBlocklists) error {
	return nil
}

type recordingLogRepo struct {
	mu      sync.Mutex
	entries []accesslog.Entry
	written chan struct{}
}

func newRecordingLogRepo() *recordingLogRepo {
	return &recordingLogRepo{written: make(chan struct{}, 16)}
}

func (r *recordingLogRepo) Create(_ context.Context, entry *accesslog.Entry) error {
	r.mu.Lock()
	r.entries = append(r.entries, *entry)
	r.mu.Unlock()
	r.written <- struct{}{}
	return nil
}

func (r *recordingLogRepo) RecentByTenant(_ context.Context, _ uuid.UUID, _ int) ([]accesslog.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]accesslog.Entry(nil), r.entries...), nil
}

func newService(finder *fakeFinder, logs accesslog.Repository) *cloaking.Service {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	store := appblocklist.NewStore(fakeOverlayRepo{}, time.Minute, logger)
	evaluator := engine.NewEvaluator(nil, engine.NewLocalRotator(), logger)
	return cloaking.NewService(finder, store, evaluator, logs, logger)
}

func testVisitor() *fingerprint.Visitor {
	return &fingerprint.Visitor{
		IP:          "203.0.113.7",
		UserAgent:   "Mozilla/5.0",
		Country:     "us",
		RequestTime: time.Now(),
	}
}

func TestResolve_RouteNotFound(t *testing.T) {
	service := newService(&fakeFinder{err: repository.ErrRouteNotFound}, newRecordingLogRepo())

	_, err := service.Resolve(context.Background(), "missing", testVisitor())
	assert.ErrorIs(t, err, cloaking.ErrRouteNotFound)
}

func TestResolve_StoreLossPropagates(t *testing.T) {
	storeErr := errors.New("connection refused")
	service := newService(&fakeFinder{err: storeErr}, newRecordingLogRepo())

	_, err := service.Resolve(context.Background(), "promo-abc", testVisitor())
	assert.ErrorIs(t, err, storeErr)
}

func TestResolve_RealDecisionRecorded(t *testing.T) {
	logs := newRecordingLogRepo()
	policy := &route.Policy{
		ID:               uuid.New(),
		TenantID:         uuid.New(),
		Slug:             "promo-abc",
		RealDestinations: domain.StringListJSON{"https://offer.example.com"},
	}
	service := newService(&fakeFinder{policy: policy}, logs)

	decision, err := service.Resolve(context.Background(), "promo-abc", testVisitor())
	assert.NoError(t, err)
	assert.Equal(t, engine.DestinationReal, decision.Destination)
	assert.Equal(t, "https://offer.example.com", decision.TargetURL)

	select {
	case <-logs.written:
	case <-time.After(2 * time.Second):
		t.Fatal("access log entry was not written")
	}

	entries, err := logs.RecentByTenant(context.Background(), policy.TenantID, 10)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "promo-abc", entries[0].RouteSlug)
	assert.Equal(t, accesslog.DecisionReal, entries[0].Decision)
	assert.Equal(t, "default", entries[0].Reason)
}

func TestResolve_EmergencyDecisionRecorded(t *testing.T) {
	logs := newRecordingLogRepo()
	policy := &route.Policy{
		ID:               uuid.New(),
		TenantID:         uuid.New(),
		Slug:             "promo-abc",
		RealDestinations: domain.StringListJSON{"https://offer.example.com"},
		FakeDestination:  "https://safe.example.com",
		Emergency:        true,
	}
	service := newService(&fakeFinder{policy: policy}, logs)

	decision, err := service.Resolve(context.Background(), "promo-abc", testVisitor())
	assert.NoError(t, err)
	assert.Equal(t, engine.DestinationFake, decision.Destination)
	assert.Equal(t, "https://safe.example.com", decision.TargetURL)

	select {
	case <-logs.written:
	case <-time.After(2 * time.Second):
		t.Fatal("access log entry was not written")
	}

	entries, err := logs.RecentByTenant(context.Background(), policy.TenantID, 10)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, accesslog.DecisionFake, entries[0].Decision)
	assert.Equal(t, "emergency-mode", entries[0].Reason)
}
