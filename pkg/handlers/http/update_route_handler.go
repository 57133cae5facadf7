package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/linkveil/cloakgate/pkg/domain/route"
	"github.com/linkveil/cloakgate/pkg/infra/cache"
	"github.com/linkveil/cloakgate/pkg/infra/repository"
	"github.com/linkveil/cloakgate/pkg/types"
)

type updateRouteHandler struct {
	logger *logrus.Logger
	repo   route.Repository
	cache  cache.Client
}

func NewUpdateRouteHandler(
	logger *logrus.Logger,
	repo route.Repository,
	cache cache.Client,
) Handler {
	return &updateRouteHandler{
		logger: logger,
		repo:   repo,
		cache:  cache,
	}
}

// Handle replaces the policy for a slug and drops it from the route caches so
// the change reaches the redirect path without waiting out the TTL.
func (s *updateRouteHandler) Handle(c *fiber.Ctx) error {
	tenantID, err := uuid.Parse(c.Params("tenant_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid tenant_id"})
	}
	slug := c.Params("slug")

	var req types.UpdateRouteRequest
	if err := c.BodyParser(&req); err != nil {
		s.logger.WithError(err).Error("Failed to bind request")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}

	policy, err := s.repo.GetBySlug(c.Context(), tenantID, slug)
	if err != nil {
		if errors.Is(err, repository.ErrRouteNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "route not found"})
		}
		s.logger.WithError(err).Error("Failed to get route")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update route"})
	}

	applyRouteRequest(policy, &req)

	if err := policy.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := s.repo.Update(c.Context(), policy); err != nil {
		s.logger.WithError(err).Error("Failed to update route")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update route"})
	}

	if err := invalidateRouteCaches(c.Context(), s.cache, slug); err != nil {
		s.logger.WithError(err).Warn("failed to invalidate route cache")
	}

	return c.Status(fiber.StatusOK).JSON(routeResponse(policy))
}
