package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/linkveil/cloakgate/pkg/domain/route"
	"github.com/linkveil/cloakgate/pkg/infra/repository"
)

type getRouteHandler struct {
	logger *logrus.Logger
	repo   route.Repository
}

func NewGetRouteHandler(
	logger *logrus.Logger,
	repo route.Repository,
) Handler {
	return &getRouteHandler{
		logger: logger,
		repo:   repo,
	}
}

func (s *getRouteHandler) Handle(c *fiber.Ctx) error {
	tenantID, err := uuid.Parse(c.Params("tenant_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid tenant_id"})
	}
	slug := c.Params("slug")

	policy, err := s.repo.GetBySlug(c.Context(), tenantID, slug)
	if err != nil {
		if errors.Is(err, repository.ErrRouteNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "route not found"})
		}
		s.logger.WithError(err).Error("Failed to get route")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to get route"})
	}

	return c.Status(fiber.StatusOK).JSON(routeResponse(policy))
}
