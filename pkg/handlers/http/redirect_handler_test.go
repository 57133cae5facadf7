package http_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	appblocklist "github.com/linkveil/cloakgate/pkg/app/blocklist"
	"github.com/linkveil/cloakgate/pkg/app/cloaking"
	"github.com/linkveil/cloakgate/pkg/app/engine"
	"github.com/linkveil/cloakgate/pkg/common"
	"github.com/linkveil/cloakgate/pkg/domain"
	"github.com/linkveil/cloakgate/pkg/domain/accesslog"
	"github.com/linkveil/cloakgate/pkg/domain/route"
	handlers "github.com/linkveil/cloakgate/pkg/handlers/http"
	"github.com/linkveil/cloakgate/pkg/infra/fingerprint"
	"github.com/linkveil/cloakgate/pkg/infra/repository"
)

type fakeRouteFinder struct {
	policy *route.Policy
	err    error
}

func (f *fakeRouteFinder) Find(_ context.Context, _ string) (*route.Policy, error) {
	return f.policy, f.err
}

type noopLogRepo struct{}

func (noopLogRepo) Create(_ context.Context, _ *accesslog.Entry) error {
	return nil
}

func (noopLogRepo) RecentByTenant(_ context.Context, _ uuid.UUID, _ int) ([]accesslog.Entry, error) {
	return nil, nil
}

func setupRedirectApp(finder *fakeRouteFinder) *fiber.App {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	store := appblocklist.NewStore(&fakeBlocklistRepo{}, time.Minute, logger)
	evaluator := engine.NewEvaluator(nil, engine.NewLocalRotator(), logger)
	service := cloaking.NewService(finder, store, evaluator, noopLogRepo{}, logger)

	app := fiber.New()
	app.Get("/r/:slug", func(c *fiber.Ctx) error {
		visitor := &fingerprint.Visitor{
			IP:          "203.0.113.7",
			UserAgent:   "Mozilla/5.0",
			Country:     "us",
			RequestTime: time.Now(),
		}
		c.SetUserContext(context.WithValue(c.Context(), common.FingerprintContextKey, visitor))
		return c.Next()
	}, handlers.NewRedirectHandler(logger, service).Handle)
	return app
}

func TestRedirectHandler_FoundRedirects(t *testing.T) {
	policy := &route.Policy{
		ID:               uuid.New(),
		TenantID:         uuid.New(),
		Slug:             "promo-abc",
		RealDestinations: domain.StringListJSON{"https://offer.example.com"},
	}
	app := setupRedirectApp(&fakeRouteFinder{policy: policy})

	req := httptest.NewRequest(http.MethodGet, "/r/promo-abc", nil)
	resp, err := app.Test(req)

	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "https://offer.example.com", resp.Header.Get("Location"))
}

func TestRedirectHandler_UnknownSlug404(t *testing.T) {
	app := setupRedirectApp(&fakeRouteFinder{err: repository.ErrRouteNotFound})

	req := httptest.NewRequest(http.MethodGet, "/r/nope", nil)
	resp, err := app.Test(req)

	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestRedirectHandler_DelayPageOnRealBranch(t *testing.T) {
	policy := &route.Policy{
		ID:               uuid.New(),
		TenantID:         uuid.New(),
		Slug:             "promo-abc",
		RealDestinations: domain.StringListJSON{"https://offer.example.com"},
		DelaySeconds:     3,
	}
	app := setupRedirectApp(&fakeRouteFinder{policy: policy})

	req := httptest.NewRequest(http.MethodGet, "/r/promo-abc", nil)
	resp, err := app.Test(req)

	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	assert.Contains(t, string(body), `content="3;url=https://offer.example.com"`)
}

func TestRedirectHandler_FakeBranchNeverDelays(t *testing.T) {
	policy := &route.Policy{
		ID:               uuid.New(),
		TenantID:         uuid.New(),
		Slug:             "promo-abc",
		RealDestinations: domain.StringListJSON{"https://offer.example.com"},
		FakeDestination:  "https://safe.example.com",
		Emergency:        true,
		DelaySeconds:     3,
	}
	app := setupRedirectApp(&fakeRouteFinder{policy: policy})

	req := httptest.NewRequest(http.MethodGet, "/r/promo-abc", nil)
	resp, err := app.Test(req)

	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "https://safe.example.com", resp.Header.Get("Location"))
}
