package main

import (
	"log"
	"net/http"

	_ "courtflow/docs" // swagger docs

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"courtflow/internal/auth"
	"courtflow/internal/cache"
	"courtflow/internal/config"
	"courtflow/internal/db"
	"courtflow/internal/handler"
	"courtflow/internal/logging"
	"courtflow/internal/model"
	"courtflow/internal/mq"
	"courtflow/internal/repository"
	"courtflow/internal/router"
	"courtflow/internal/search"
	"courtflow/internal/service"
)

// @title CourtFlow API
// @version 1.0
// @description Judiciary case tracking API with case lifecycle, hearings, and JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	e := echo.New()
	e.Use(echomw.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			l := logger.With("request_id", c.Response().Header().Get(echo.HeaderXRequestID))
			c.SetRequest(req.WithContext(logging.IntoContext(req.Context(), l)))
			return next(c)
		}
	})

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Court{},
		&model.CaseType{},
		&model.Case{},
		&model.Hearing{},
		&model.CaseParty{},
		&model.Document{},
		&model.Bookmark{},
		&model.Notification{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	producer := mq.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
	if producer == nil {
		logger.Warn("kafka brokers not configured, event publishing disabled")
	}
	defer producer.Close()

	// Search is optional: without ES_URL the search endpoint returns empty
	// results and filing skips indexing.
	var es *elasticsearch.Client
	if cfg.ESAddr != "" {
		es, err = search.NewClient(cfg.ESAddr, cfg.ESUser, cfg.ESPass)
		if err != nil {
			logger.Warn("elasticsearch unavailable, search disabled", "error", err)
			es = nil
		}
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	courtRepo := repository.NewCourtRepository(gormDB)
	caseTypeRepo := repository.NewCaseTypeRepository(gormDB)
	caseRepo := repository.NewCaseRepository(gormDB)
	hearingRepo := repository.NewHearingRepository(gormDB)
	partyRepo := repository.NewPartyRepository(gormDB)
	documentRepo := repository.NewDocumentRepository(gormDB)
	bookmarkRepo := repository.NewBookmarkRepository(gormDB)
	notificationRepo := repository.NewNotificationRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.AccessSecret, cfg.RefreshSecret, cfg.AccessTTL, cfg.RefreshTTL)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService)
	userService := service.NewUserService(userRepo, cacheClient)
	courtService := service.NewCourtService(courtRepo)
	caseTypeService := service.NewCaseTypeService(caseTypeRepo)
	notificationService := service.NewNotificationService(notificationRepo, producer)
	caseService := service.NewCaseService(caseRepo, courtRepo, caseTypeRepo, partyRepo, notificationService, cacheClient, es, cfg.ESCaseIndex)
	hearingService := service.NewHearingService(hearingRepo, caseRepo, userRepo, notificationService, cacheClient)
	documentService := service.NewDocumentService(documentRepo, caseRepo)
	partyService := service.NewPartyService(partyRepo, caseRepo)
	bookmarkService := service.NewBookmarkService(bookmarkRepo, caseRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, userService)
	userHandler := handler.NewUserHandler(userService)
	courtHandler := handler.NewCourtHandler(courtService, caseTypeService)
	caseHandler := handler.NewCaseHandler(caseService, partyService)
	hearingHandler := handler.NewHearingHandler(hearingService)
	miscHandler := handler.NewMiscHandler(documentService, bookmarkService, notificationService)

	// Register routes
	router.Register(
		e,
		cfg,
		jwtService,
		userRepo,
		authHandler,
		userHandler,
		courtHandler,
		caseHandler,
		hearingHandler,
		miscHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
