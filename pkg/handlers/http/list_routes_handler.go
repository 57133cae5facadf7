package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/linkveil/cloakgate/pkg/domain/route"
	"github.com/linkveil/cloakgate/pkg/types"
)

type listRoutesHandler struct {
	logger *logrus.Logger
	repo   route.Repository
}

func NewListRoutesHandler(
	logger *logrus.Logger,
	repo route.Repository,
) Handler {
	return &listRoutesHandler{
		logger: logger,
		repo:   repo,
	}
}

func (s *listRoutesHandler) Handle(c *fiber.Ctx) error {
	tenantID, err := uuid.Parse(c.Params("tenant_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid tenant_id"})
	}

	policies, err := s.repo.List(c.Context(), tenantID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list routes")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list routes"})
	}

	responses := make([]types.RouteResponse, 0, len(policies))
	for i := range policies {
		responses = append(responses, routeResponse(&policies[i]))
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"routes": responses})
}
