package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/linkveil/cloakgate/pkg/app/suggestion"
	"github.com/linkveil/cloakgate/pkg/common"
	"github.com/linkveil/cloakgate/pkg/domain/accesslog"
)

type listSuggestionsHandler struct {
	logger *logrus.Logger
	logs   accesslog.Repository
	engine *suggestion.Engine
}

func NewListSuggestionsHandler(
	logger *logrus.Logger,
	logs accesslog.Repository,
	engine *suggestion.Engine,
) Handler {
	return &listSuggestionsHandler{
		logger: logger,
		logs:   logs,
		engine: engine,
	}
}

// Handle mines the tenant's recent access-log window for blocklist
// candidates. threshold is optional and defaults to the compiled-in value.
func (s *listSuggestionsHandler) Handle(c *fiber.Ctx) error {
	tenantID, err := uuid.Parse(c.Params("tenant_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid tenant_id"})
	}

	threshold := common.DefaultSuggestionThreshold
	if raw := c.Query("threshold"); raw != "" {
		threshold, err = strconv.Atoi(raw)
		if err != nil || threshold < 1 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "threshold must be a positive integer"})
		}
	}

	window, err := s.logs.RecentByTenant(c.Context(), tenantID, common.SuggestionWindowSize)
	if err != nil {
		s.logger.WithError(err).Error("failed to load access log window")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load suggestions"})
	}

	suggestions := s.engine.Suggest(window, threshold)
	if suggestions == nil {
		suggestions = []suggestion.Suggestion{}
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"suggestions": suggestions})
}
