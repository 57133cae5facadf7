package middleware_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/linkveil/cloakgate/pkg/config"
	"github.com/linkveil/cloakgate/pkg/infra/jwt"
	"github.com/linkveil/cloakgate/pkg/middleware"
)

func setupApp(t *testing.T) (*fiber.App, jwt.Manager) {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	manager := jwt.NewJwtManager(&config.ServerConfig{SecretKey: "test-secret"})
	authMiddleware := middleware.NewAdminAuthMiddleware(logger, manager)

	app := fiber.New()
	app.Use(authMiddleware.Middleware())
	app.Get("/test", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})
	return app, manager
}

func TestAdminAuthMiddleware_NoHeader(t *testing.T) {
	app, _ := setupApp(t)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	resp, err := app.Test(req)

	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAdminAuthMiddleware_MalformedHeader(t *testing.T) {
	app, _ := setupApp(t)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Basic abc123")
	resp, err := app.Test(req)

	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAdminAuthMiddleware_NonAdminToken(t *testing.T) {
	app, manager := setupApp(t)

	token, err := manager.CreateToken("viewer@example.com", false)
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)

	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAdminAuthMiddleware_ValidAdminToken(t *testing.T) {
	app, manager := setupApp(t)

	token, err := manager.CreateToken("ops@example.com", true)
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)

	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
