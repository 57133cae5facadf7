package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	appblocklist "github.com/linkveil/cloakgate/pkg/app/blocklist"
	"github.com/linkveil/cloakgate/pkg/domain/blocklist"
	"github.com/linkveil/cloakgate/pkg/types"
)

type updateBlocklistsHandler struct {
	logger *logrus.Logger
	repo   blocklist.Repository
	store  *appblocklist.Store
}

func NewUpdateBlocklistsHandler(
	logger *logrus.Logger,
	repo blocklist.Repository,
	store *appblocklist.Store,
) Handler {
	return &updateBlocklistsHandler{
		logger: logger,
		repo:   repo,
		store:  store,
	}
}

// Handle merges the submitted values into the overlay. Merge-only: entries are
// never removed through this endpoint. All three fields must be present as
// JSON arrays, empty arrays included.
func (s *updateBlocklistsHandler) Handle(c *fiber.Ctx) error {
	var req types.UpdateBlocklistsRequest
	if err := c.BodyParser(&req); err != nil {
		s.logger.WithError(err).Error("Failed to bind request")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}

	if req.BlockedIPs == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "blockedIps must be an array"})
	}
	if req.BlockedUserAgents == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "blockedUserAgents must be an array"})
	}
	if req.BlockedASNs == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "blockedAsns must be an array"})
	}

	incoming := blocklist.GlobalBlocklists{
		BlockedIPs:        *req.BlockedIPs,
		BlockedUserAgents: *req.BlockedUserAgents,
		BlockedASNs:       *req.BlockedASNs,
	}

	if err := s.repo.MergeWrite(c.Context(), incoming); err != nil {
		s.logger.WithError(err).Error("failed to merge blocklist overlay")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update blocklists"})
	}

	if err := s.store.Refresh(c.Context()); err != nil {
		s.logger.WithError(err).Warn("blocklist refresh after write failed")
	}

	overlay, err := s.repo.GetOverlay(c.Context())
	if err != nil {
		s.logger.WithError(err).Error("failed to reload blocklist overlay")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load blocklists"})
	}

	return c.Status(fiber.StatusOK).JSON(types.BlocklistsResponse{
		BlockedIPs:        emptyIfNil(overlay.BlockedIPs),
		BlockedUserAgents: emptyIfNil(overlay.BlockedUserAgents),
		BlockedASNs:       emptyIfNil(overlay.BlockedASNs),
	})
}
