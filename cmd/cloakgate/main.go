package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	appblocklist "github.com/linkveil/cloakgate/pkg/app/blocklist"
	"github.com/linkveil/cloakgate/pkg/app/cloaking"
	"github.com/linkveil/cloakgate/pkg/app/engine"
	approute "github.com/linkveil/cloakgate/pkg/app/route"
	"github.com/linkveil/cloakgate/pkg/app/suggestion"
	"github.com/linkveil/cloakgate/pkg/common"
	"github.com/linkveil/cloakgate/pkg/config"
	handlers "github.com/linkveil/cloakgate/pkg/handlers/http"
	"github.com/linkveil/cloakgate/pkg/infra/cache"
	"github.com/linkveil/cloakgate/pkg/infra/classifier"
	"github.com/linkveil/cloakgate/pkg/infra/database"
	"github.com/linkveil/cloakgate/pkg/infra/geoip"
	"github.com/linkveil/cloakgate/pkg/infra/jwt"
	infraLogger "github.com/linkveil/cloakgate/pkg/infra/logger"
	"github.com/linkveil/cloakgate/pkg/infra/repository"
	"github.com/linkveil/cloakgate/pkg/middleware"
	"github.com/linkveil/cloakgate/pkg/server"
)

func main() {
	serverType := getServerType()
	envFile := os.Getenv("ENV_FILE")

	if envFile == "" {
		envFile = ".env"
	}
	err := godotenv.Load(envFile)
	if err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	logger := infraLogger.NewLogger(serverType)

	if err := config.Load("./config"); err != nil {
		logger.WithError(err).Warn("config file not loaded, relying on environment")
	}
	cfg := config.GetConfig()

	db, err := database.NewDB(logger, &database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	cacheClient, err := cache.NewClient(cache.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize cache: %v", err)
	}
	cacheClient.CreateTTLMap(cache.RouteTTLName, common.RouteCacheTTL)

	// repository
	routeRepository := repository.NewRouteRepository(db.DB, logger)
	accessLogRepository := repository.NewAccessLogRepository(db.DB, logger)
	blocklistRepository := repository.NewBlocklistRepository(db.DB, logger)

	// infra
	resolver := newGeoIPResolver(cfg, logger)
	defer resolver.Close()

	cls := classifier.NewHTTPClassifier(classifier.Config{
		Endpoint: cfg.Classifier.Endpoint,
		APIKey:   cfg.Classifier.APIKey,
		Timeout:  time.Duration(cfg.Classifier.TimeoutMs) * time.Millisecond,
	}, logger)
	decoyGenerator := classifier.NewHTTPDecoyGenerator(cfg.Decoy.Endpoint, cfg.Decoy.APIKey, logger)
	jwtManager := jwt.NewJwtManager(&cfg.Server)

	// application services
	routeFinder := approute.NewFinder(routeRepository, cacheClient, logger)
	blocklistStore := appblocklist.NewStore(
		blocklistRepository,
		time.Duration(cfg.Blocklist.TTLMinutes)*time.Minute,
		logger,
	)
	rotator := engine.NewRedisRotator(cacheClient, logger)
	evaluator := engine.NewEvaluator(cls, rotator, logger)
	cloakingService := cloaking.NewService(routeFinder, blocklistStore, evaluator, accessLogRepository, logger)
	suggestionEngine := suggestion.NewEngine()

	middlewareTransport := middleware.Transport{
		AdminAuthMiddleware:   middleware.NewAdminAuthMiddleware(logger, jwtManager),
		FingerprintMiddleware: middleware.NewFingerprintMiddleware(logger, resolver),
	}

	handlerTransport := handlers.HandlerTransport{
		// Redirect
		RedirectHandler: handlers.NewRedirectHandler(logger, cloakingService),
		// Blocklists
		GetBlocklistsHandler:    handlers.NewGetBlocklistsHandler(logger, blocklistRepository),
		UpdateBlocklistsHandler: handlers.NewUpdateBlocklistsHandler(logger, blocklistRepository, blocklistStore),
		// Suggestions
		ListSuggestionsHandler: handlers.NewListSuggestionsHandler(logger, accessLogRepository, suggestionEngine),
		// Routes
		CreateRouteHandler: handlers.NewCreateRouteHandler(logger, routeRepository),
		ListRoutesHandler:  handlers.NewListRoutesHandler(logger, routeRepository),
		GetRouteHandler:    handlers.NewGetRouteHandler(logger, routeRepository),
		UpdateRouteHandler: handlers.NewUpdateRouteHandler(logger, routeRepository, cacheClient),
		DeleteRouteHandler: handlers.NewDeleteRouteHandler(logger, routeRepository, cacheClient),
		// Decoy
		GenerateDecoyHandler: handlers.NewGenerateDecoyHandler(logger, decoyGenerator),
	}

	var srv server.Server
	switch serverType {
	case "admin":
		srv = server.NewAdminServer(server.AdminServerDI{
			MiddlewareTransport: middlewareTransport,
			HandlerTransport:    handlerTransport,
			Config:              cfg,
			Logger:              logger,
		})
	case "redirect":
		srv = server.NewRedirectServer(server.RedirectServerDI{
			MiddlewareTransport: middlewareTransport,
			HandlerTransport:    handlerTransport,
			Config:              cfg,
			Logger:              logger,
		})
	default:
		logger.Fatalf("unknown server type: %s", serverType)
	}

	go func() {
		if err := srv.Run(); err != nil {
			logger.WithError(err).Fatal("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	if err := srv.Shutdown(); err != nil {
		logger.WithError(err).Error("failed to shut down server")
	}
}

func newGeoIPResolver(cfg *config.Config, logger *logrus.Logger) geoip.Resolver {
	if cfg.GeoIP.DatabasePath == "" {
		logger.Warn("no geoip database configured, country rules will not match")
		return geoip.NewNoopResolver()
	}
	resolver, err := geoip.NewMaxmindResolver(cfg.GeoIP.DatabasePath, logger)
	if err != nil {
		logger.WithError(err).Warn("failed to open geoip database, country rules will not match")
		return geoip.NewNoopResolver()
	}
	return resolver
}

func getServerType() string {
	serverType := "redirect"
	if len(os.Args) > 1 {
		serverType = os.Args[1]
	}
	return serverType
}
