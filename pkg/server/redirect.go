package server

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/linkveil/cloakgate/pkg/config"
	handlers "github.com/linkveil/cloakgate/pkg/handlers/http"
	"github.com/linkveil/cloakgate/pkg/middleware"
)

type (
	RedirectServerDI struct {
		MiddlewareTransport middleware.Transport
		HandlerTransport    handlers.HandlerTransport
		Config              *config.Config
		Logger              *logrus.Logger
	}
	RedirectServer struct {
		*BaseServer
		middlewareTransport middleware.Transport
		handlerTransport    handlers.HandlerTransport
	}
)

func NewRedirectServer(di RedirectServerDI) *RedirectServer {
	return &RedirectServer{
		BaseServer:          NewBaseServer(di.Config, di.Logger),
		middlewareTransport: di.MiddlewareTransport,
		handlerTransport:    di.HandlerTransport,
	}
}

func (s *RedirectServer) Run() error {
	s.setupRoutes()
	s.setupHealthCheck()
	s.setupMetricsEndpoint()
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.RedirectPort)
	s.logger.WithField("addr", addr).Info("Starting redirect server")
	return s.router.Listen(addr)
}

func (s *RedirectServer) setupRoutes() {
	s.router.Use(middleware.NewPanicRecoverMiddleware(s.logger).Middleware())

	s.router.Get(
		"/r/:slug",
		s.middlewareTransport.FingerprintMiddleware.Middleware(),
		s.handlerTransport.RedirectHandler.Handle,
	)
}

func (s *RedirectServer) Shutdown() error {
	return s.router.Shutdown()
}
