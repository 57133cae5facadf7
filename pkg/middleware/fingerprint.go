package middleware

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/linkveil/cloakgate/pkg/common"
	"github.com/linkveil/cloakgate/pkg/infra/fingerprint"
	"github.com/linkveil/cloakgate/pkg/infra/geoip"
)

type fingerprintMiddleware struct {
	logger   *logrus.Logger
	resolver geoip.Resolver
}

func NewFingerprintMiddleware(
	logger *logrus.Logger,
	resolver geoip.Resolver,
) Middleware {
	return &fingerprintMiddleware{
		logger:   logger,
		resolver: resolver,
	}
}

func (m *fingerprintMiddleware) Middleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		visitor := fingerprint.NewFromRequest(ctx, m.resolver)
		id := uuid.New().String()
		ctx.Locals(common.TraceIdKey, id)

		c := context.WithValue(ctx.Context(), common.FingerprintContextKey, visitor)
		c = context.WithValue(c, common.TraceIdKey, id)
		ctx.SetUserContext(c)
		return ctx.Next()
	}
}
