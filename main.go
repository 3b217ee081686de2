package main

import (
	"fmt"
	"net/http"
	"time"

	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	restful "github.com/emicklei/go-restful/v3"
	"github.com/go-openapi/spec"
	"go.uber.org/zap"

	"github.com/Pranesh1009/BNConnect/auth"
	"github.com/Pranesh1009/BNConnect/config"
	"github.com/Pranesh1009/BNConnect/controllers"
	"github.com/Pranesh1009/BNConnect/database"
	"github.com/Pranesh1009/BNConnect/email"
	"github.com/Pranesh1009/BNConnect/repositories"
	"github.com/Pranesh1009/BNConnect/services"
)

// requestLogFilter logs every request with latency after it completes.
func requestLogFilter(logger *zap.Logger) restful.FilterFunction {
	return func(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
		start := time.Now()
		chain.ProcessFilter(req, resp)
		logger.Info("Request",
			zap.String("method", req.Request.Method),
			zap.String("path", req.Request.URL.Path),
			zap.Int("status_code", resp.StatusCode()),
			zap.Duration("latency", time.Since(start)),
			zap.String("user_agent", req.Request.UserAgent()),
		)
	}
}

func main() {
	config.InitConfig()
	cfg := config.AppConfig

	var logger *zap.Logger
	switch cfg.LogLevel {
	case "debug":
		logger, _ = zap.NewDevelopment()
	default:
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	db, err := database.Init(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	if err := database.SeedInitialData(db, cfg.SeedAdminEmail, cfg.SeedAdminPassword); err != nil {
		logger.Fatal("Failed to seed database", zap.Error(err))
	}

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	sessionRepo := repositories.NewSessionRepository(db)
	chapterRepo := repositories.NewChapterRepository(db)
	itemRepo := repositories.NewItemRepository(db)
	profileRepo := repositories.NewProfileRepository(db)
	geoRepo := repositories.NewGeoRepository(db)

	// Auth plumbing
	tokens := auth.NewTokenManager([]byte(cfg.JwtSecret), cfg.JwtTTL)
	authenticator := auth.NewAuthenticator(tokens, sessionRepo, userRepo, logger)
	gate := auth.NewGate(userRepo, logger)

	var mailer email.Mailer = email.NoopMailer{}
	if cfg.SMTPHost != "" {
		mailer = email.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom, logger)
	} else {
		logger.Warn("SMTP not configured, welcome emails are disabled")
	}

	// Services
	authService := services.NewAuthService(userRepo, authenticator, gate, logger)
	userService := services.NewUserService(userRepo, sessionRepo, chapterRepo, gate, mailer, logger)
	chapterService := services.NewChapterService(chapterRepo, userRepo, geoRepo, gate, logger)
	itemService := services.NewItemService(itemRepo, logger)
	profileService := services.NewProfileService(profileRepo, logger)

	// HTTP container
	container := restful.NewContainer()
	container.Filter(requestLogFilter(logger))
	container.Add(controllers.NewAuthController(authService, authenticator).WebService())
	container.Add(controllers.NewUserController(userService, authenticator).WebService())
	container.Add(controllers.NewChapterController(chapterService, authenticator).WebService())
	container.Add(controllers.NewItemController(itemService, authenticator).WebService())
	container.Add(controllers.NewProfileController(profileService, authenticator).WebService())

	// OpenAPI document for the registered services
	apiConfig := restfulspec.Config{
		WebServices: container.RegisteredWebServices(),
		APIPath:     "/apidocs.json",
		PostBuildSwaggerObjectHandler: func(swagger *spec.Swagger) {
			swagger.Info = &spec.Info{
				InfoProps: spec.InfoProps{
					Title:       "BNConnect API",
					Description: "Role-based membership and chapter management service",
					Version:     "1.0.0",
				},
			}
		},
	}
	container.Add(restfulspec.NewOpenAPIService(apiConfig))

	cors := restful.CrossOriginResourceSharing{
		AllowedHeaders: []string{"Content-Type", "Accept", "Authorization"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		CookiesAllowed: false,
		Container:      container,
	}
	container.Filter(cors.Filter)
	container.Filter(container.OPTIONSFilter)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("Starting server",
		zap.String("service", cfg.ServiceName),
		zap.String("addr", addr))
	if err := http.ListenAndServe(addr, container); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}
