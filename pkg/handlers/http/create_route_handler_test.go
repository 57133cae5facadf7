package http_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/linkveil/cloakgate/pkg/domain/route"
	handlers "github.com/linkveil/cloakgate/pkg/handlers/http"
	"github.com/linkveil/cloakgate/pkg/infra/repository"
)

type fakeRouteRepo struct {
	created   []*route.Policy
	createErr error
}

func (f *fakeRouteRepo) GetBySlug(_ context.Context, _ uuid.UUID, _ string) (*route.Policy, error) {
	return nil, repository.ErrRouteNotFound
}

func (f *fakeRouteRepo) FindBySlug(_ context.Context, _ string) (*route.Policy, error) {
	return nil, repository.ErrRouteNotFound
}

func (f *fakeRouteRepo) Create(_ context.Context, policy *route.Policy) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, policy)
	return nil
}

func (f *fakeRouteRepo) List(_ context.Context, _ uuid.UUID) ([]route.Policy, error) {
	return nil, nil
}

func (f *fakeRouteRepo) Update(_ context.Context, _ *route.Policy) error {
	return nil
}

func (f *fakeRouteRepo) Delete(_ context.Context, _ uuid.UUID, _ string) error {
	return nil
}

func setupCreateRouteApp(repo *fakeRouteRepo) *fiber.App {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	app := fiber.New()
	app.Post("/api/v1/tenants/:tenant_id/routes", handlers.NewCreateRouteHandler(logger, repo).Handle)
	return app
}

func createRouteRequest(tenantID, body string) *http.Request {
	req := httptest.NewRequest(
		http.MethodPost,
		fmt.Sprintf("/api/v1/tenants/%s/routes", tenantID),
		strings.NewReader(body),
	)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return req
}

func TestCreateRouteHandler_Created(t *testing.T) {
	repo := &fakeRouteRepo{}
	app := setupCreateRouteApp(repo)
	tenantID := uuid.New()

	resp, err := app.Test(createRouteRequest(tenantID.String(),
		`{"slug":"promo-abc","realDestinations":["https://offer.example.com"]}`))

	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	if assert.Len(t, repo.created, 1) {
		assert.Equal(t, "promo-abc", repo.created[0].Slug)
		assert.Equal(t, tenantID, repo.created[0].TenantID)
	}
}

func TestCreateRouteHandler_SlugTakenConflicts(t *testing.T) {
	repo := &fakeRouteRepo{createErr: repository.ErrSlugTaken}
	app := setupCreateRouteApp(repo)

	resp, err := app.Test(createRouteRequest(uuid.New().String(),
		`{"slug":"promo-abc","realDestinations":["https://offer.example.com"]}`))

	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	assert.Contains(t, string(body), "slug already in use")
}

func TestCreateRouteHandler_InvalidPolicyRejected(t *testing.T) {
	repo := &fakeRouteRepo{}
	app := setupCreateRouteApp(repo)

	resp, err := app.Test(createRouteRequest(uuid.New().String(), `{"slug":"promo-abc"}`))

	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, repo.created)
}

func TestCreateRouteHandler_BadTenantID(t *testing.T) {
	repo := &fakeRouteRepo{}
	app := setupCreateRouteApp(repo)

	resp, err := app.Test(createRouteRequest("not-a-uuid",
		`{"slug":"promo-abc","realDestinations":["https://offer.example.com"]}`))

	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
