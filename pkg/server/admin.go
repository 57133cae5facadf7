package server

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/linkveil/cloakgate/pkg/config"
	handlers "github.com/linkveil/cloakgate/pkg/handlers/http"
	"github.com/linkveil/cloakgate/pkg/middleware"
)

type (
	AdminServerDI struct {
		MiddlewareTransport middleware.Transport
		HandlerTransport    handlers.HandlerTransport
		Config              *config.Config
		Logger              *logrus.Logger
	}
	AdminServer struct {
		*BaseServer
		middlewareTransport middleware.Transport
		handlerTransport    handlers.HandlerTransport
	}
)

func NewAdminServer(di AdminServerDI) *AdminServer {
	return &AdminServer{
		BaseServer:          NewBaseServer(di.Config, di.Logger),
		middlewareTransport: di.MiddlewareTransport,
		handlerTransport:    di.HandlerTransport,
	}
}

func (s *AdminServer) Run() error {
	s.setupRoutes()
	s.setupHealthCheck()
	s.setupMetricsEndpoint()
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.AdminPort)
	s.logger.WithField("addr", addr).Info("Starting admin server")
	return s.router.Listen(addr)
}

func (s *AdminServer) setupRoutes() {
	s.router.Use(middleware.NewPanicRecoverMiddleware(s.logger).Middleware())

	v1 := s.router.Group("/api/v1")
	{
		v1.Use(s.middlewareTransport.AdminAuthMiddleware.Middleware())

		blocklists := v1.Group("/blocklists")
		{
			blocklists.Get("", s.handlerTransport.GetBlocklistsHandler.Handle)
			blocklists.Post("", s.handlerTransport.UpdateBlocklistsHandler.Handle)
		}

		tenants := v1.Group("/tenants/:tenant_id")
		{
			tenants.Get("/suggestions", s.handlerTransport.ListSuggestionsHandler.Handle)

			routes := tenants.Group("/routes")
			{
				routes.Post("", s.handlerTransport.CreateRouteHandler.Handle)
				routes.Get("", s.handlerTransport.ListRoutesHandler.Handle)
				routes.Get("/:slug", s.handlerTransport.GetRouteHandler.Handle)
				routes.Put("/:slug", s.handlerTransport.UpdateRouteHandler.Handle)
				routes.Delete("/:slug", s.handlerTransport.DeleteRouteHandler.Handle)
			}
		}

		v1.Post("/decoy", s.handlerTransport.GenerateDecoyHandler.Handle)
	}
}

func (s *AdminServer) Shutdown() error {
	return s.router.Shutdown()
}
