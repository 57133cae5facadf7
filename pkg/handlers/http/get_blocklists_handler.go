package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/linkveil/cloakgate/pkg/domain/blocklist"
	"github.com/linkveil/cloakgate/pkg/types"
)

type getBlocklistsHandler struct {
	logger *logrus.Logger
	repo   blocklist.Repository
}

func NewGetBlocklistsHandler(
	logger *logrus.Logger,
	repo blocklist.Repository,
) Handler {
	return &getBlocklistsHandler{
		logger: logger,
		repo:   repo,
	}
}

// Handle returns the admin-managed overlay. The compiled-in baseline is not
// included; it is not editable and listing it would only invite attempts to
// remove entries from it.
func (s *getBlocklistsHandler) Handle(c *fiber.Ctx) error {
	overlay, err := s.repo.GetOverlay(c.Context())
	if err != nil {
		s.logger.WithError(err).Error("failed to load blocklist overlay")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load blocklists"})
	}

	return c.Status(fiber.StatusOK).JSON(types.BlocklistsResponse{
		BlockedIPs:        emptyIfNil(overlay.BlockedIPs),
		BlockedUserAgents: emptyIfNil(overlay.BlockedUserAgents),
		BlockedASNs:       emptyIfNil(overlay.BlockedASNs),
	})
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
