package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/linkveil/cloakgate/pkg/domain/route"
	"github.com/linkveil/cloakgate/pkg/infra/repository"
	"github.com/linkveil/cloakgate/pkg/types"
)

type createRouteHandler struct {
	logger *logrus.Logger
	repo   route.Repository
}

func NewCreateRouteHandler(
	logger *logrus.Logger,
	repo route.Repository,
) Handler {
	return &createRouteHandler{
		logger: logger,
		repo:   repo,
	}
}

func (s *createRouteHandler) Handle(c *fiber.Ctx) error {
	tenantID, err := uuid.Parse(c.Params("tenant_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid tenant_id"})
	}

	var req types.CreateRouteRequest
	if err := c.BodyParser(&req); err != nil {
		s.logger.WithError(err).Error("Failed to bind request")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}

	policy := &route.Policy{
		ID:       uuid.New(),
		TenantID: tenantID,
		Slug:     req.Slug,
	}
	applyRouteRequest(policy, &req)

	if err := policy.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := s.repo.Create(c.Context(), policy); err != nil {
		if errors.Is(err, repository.ErrSlugTaken) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "slug already in use"})
		}
		s.logger.WithError(err).Error("Failed to create route")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create route"})
	}

	return c.Status(fiber.StatusCreated).JSON(routeResponse(policy))
}
