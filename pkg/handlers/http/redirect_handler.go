package http

import (
	"errors"
	"fmt"
	"html"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/linkveil/cloakgate/pkg/app/cloaking"
	"github.com/linkveil/cloakgate/pkg/app/engine"
	"github.com/linkveil/cloakgate/pkg/infra/fingerprint"
)

type redirectHandler struct {
	logger  *logrus.Logger
	service *cloaking.Service
}

func NewRedirectHandler(
	logger *logrus.Logger,
	service *cloaking.Service,
) Handler {
	return &redirectHandler{
		logger:  logger,
		service: service,
	}
}

// Handle resolves the slug and issues a 302 to the chosen destination. Routes
// with a configured delay serve a meta-refresh page on the real branch
// instead; the fake branch never delays.
func (s *redirectHandler) Handle(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if slug == "" {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}

	visitor := fingerprint.FromContext(c.UserContext())
	if visitor == nil {
		s.logger.Error("visitor fingerprint missing from context")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	decision, err := s.service.Resolve(c.Context(), slug, visitor)
	if err != nil {
		if errors.Is(err, cloaking.ErrRouteNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
		}
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "service unavailable"})
	}

	if decision.TargetURL == "" {
		s.logger.WithField("slug", slug).Error("decision produced empty target url")
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "service unavailable"})
	}

	if decision.Destination == engine.DestinationReal && decision.DelaySeconds > 0 {
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.Status(fiber.StatusOK).SendString(delayPage(decision.DelaySeconds, decision.TargetURL))
	}

	return c.Redirect(decision.TargetURL, fiber.StatusFound)
}

func delayPage(seconds int, target string) string {
	escaped := html.EscapeString(target)
	return fmt.Sprintf(
		`<!DOCTYPE html><html><head><meta http-equiv="refresh" content="%d;url=%s"><title>Redirecting</title></head>`+
			`<body><p>You are being redirected&hellip; <a href="%s">continue</a></p></body></html>`,
		seconds, escaped, escaped,
	)
}
