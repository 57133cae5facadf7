package http

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/linkveil/cloakgate/pkg/infra/classifier"
	"github.com/linkveil/cloakgate/pkg/types"
)

type generateDecoyHandler struct {
	logger    *logrus.Logger
	generator classifier.DecoyGenerator
}

func NewGenerateDecoyHandler(
	logger *logrus.Logger,
	generator classifier.DecoyGenerator,
) Handler {
	return &generateDecoyHandler{
		logger:    logger,
		generator: generator,
	}
}

// Handle proxies a decoy-page request to the external generator. Authoring
// time only, never on the redirect path.
func (s *generateDecoyHandler) Handle(c *fiber.Ctx) error {
	var req types.DecoyRequest
	if err := c.BodyParser(&req); err != nil {
		s.logger.WithError(err).Error("Failed to bind request")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}

	parsed, err := url.Parse(req.RealURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "realUrl must be an absolute URL"})
	}

	fakeURL, err := s.generator.Generate(c.Context(), req.RealURL)
	if err != nil {
		s.logger.WithError(err).Error("decoy generation failed")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "decoy generator unavailable"})
	}

	return c.Status(fiber.StatusOK).JSON(types.DecoyResponse{FakeURL: fakeURL})
}
