package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/linkveil/cloakgate/pkg/domain/route"
	"github.com/linkveil/cloakgate/pkg/infra/cache"
	"github.com/linkveil/cloakgate/pkg/infra/repository"
)

type deleteRouteHandler struct {
	logger *logrus.Logger
	repo   route.Repository
	cache  cache.Client
}

func NewDeleteRouteHandler(
	logger *logrus.Logger,
	repo route.Repository,
	cache cache.Client,
) Handler {
	return &deleteRouteHandler{
		logger: logger,
		repo:   repo,
		cache:  cache,
	}
}

func (s *deleteRouteHandler) Handle(c *fiber.Ctx) error {
	tenantID, err := uuid.Parse(c.Params("tenant_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid tenant_id"})
	}
	slug := c.Params("slug")

	if err := s.repo.Delete(c.Context(), tenantID, slug); err != nil {
		if errors.Is(err, repository.ErrRouteNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "route not found"})
		}
		s.logger.WithError(err).Error("Failed to delete route")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete route"})
	}

	if err := invalidateRouteCaches(c.Context(), s.cache, slug); err != nil {
		s.logger.WithError(err).Warn("failed to invalidate route cache")
	}

	return c.SendStatus(fiber.StatusNoContent)
}
