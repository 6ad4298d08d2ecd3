package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"courtflow/docs"
	"courtflow/internal/auth"
	"courtflow/internal/config"
	"courtflow/internal/handler"
	"courtflow/internal/middleware"
	"courtflow/internal/model"
	"courtflow/internal/repository"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	jwtService *auth.JWTService,
	users repository.UserRepository,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	courtHandler *handler.CourtHandler,
	caseHandler *handler.CaseHandler,
	hearingHandler *handler.HearingHandler,
	miscHandler *handler.MiscHandler,
) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	// Reference data is readable without a session.
	api.GET("/courts", courtHandler.ListCourts)
	api.GET("/courts/slug/:slug", courtHandler.GetCourtBySlug)
	api.GET("/courts/:id", courtHandler.GetCourt)
	api.GET("/case-types", courtHandler.ListCaseTypes)

	// Secured routes sit behind the session gate: token verification followed
	// by identity resolution.
	secured := api.Group("", middleware.SessionGate(jwtService, users)...)

	secured.GET("/me", authHandler.Me)
	secured.PUT("/auth/password", authHandler.ChangePassword)

	// User administration
	adminOnly := middleware.RequireRoles(model.RoleAdmin)
	secured.GET("/users", userHandler.List, adminOnly)
	secured.GET("/users/:id", userHandler.Get)
	secured.PUT("/users/:id", userHandler.UpdateProfile)
	secured.PUT("/users/:id/role", userHandler.ChangeRole, adminOnly)

	// Reference data writes
	secured.POST("/courts", courtHandler.CreateCourt, adminOnly)
	secured.PUT("/courts/:id", courtHandler.UpdateCourt, adminOnly)
	secured.POST("/case-types", courtHandler.CreateCaseType, adminOnly)
	secured.PUT("/case-types/:id", courtHandler.UpdateCaseType, adminOnly)

	// Case routes
	fileRoles := middleware.RequireRoles(model.RoleAdmin, model.RoleClerk, model.RoleLawyer, model.RoleLitigant)
	staffRoles := middleware.RequireRoles(model.RoleAdmin, model.RoleClerk, model.RoleJudge)
	secured.POST("/cases", caseHandler.File, fileRoles)
	secured.GET("/cases", caseHandler.List)
	secured.GET("/cases/search", caseHandler.Search)
	secured.GET("/cases/number/:number", caseHandler.GetByNumber)
	secured.GET("/cases/:id", caseHandler.Get)
	secured.PUT("/cases/:id", caseHandler.Update)
	secured.PUT("/cases/:id/state", caseHandler.UpdateState, staffRoles)

	// Party routes
	secured.POST("/cases/:id/parties", caseHandler.AddParty)
	secured.GET("/cases/:id/parties", caseHandler.ListParties)
	secured.DELETE("/parties/:partyID", caseHandler.DeactivateParty)

	// Hearing routes
	secured.POST("/cases/:id/hearings", hearingHandler.Schedule, staffRoles)
	secured.GET("/cases/:id/hearings", hearingHandler.ListByCase)
	secured.GET("/hearings/docket", hearingHandler.Docket, middleware.RequireRoles(model.RoleJudge))
	secured.GET("/hearings/:id", hearingHandler.Get)
	secured.PUT("/hearings/:id/status", hearingHandler.UpdateStatus, staffRoles)

	// Document routes
	secured.POST("/cases/:id/documents", miscHandler.AttachDocument)
	secured.GET("/cases/:id/documents", miscHandler.ListDocuments)
	secured.DELETE("/documents/:id", miscHandler.RemoveDocument)

	// Bookmark routes
	secured.POST("/cases/:id/bookmark", miscHandler.AddBookmark)
	secured.GET("/bookmarks", miscHandler.ListBookmarks)
	secured.DELETE("/bookmarks/:id", miscHandler.RemoveBookmark)

	// Notification routes
	secured.GET("/notifications", miscHandler.ListNotifications)
	secured.PUT("/notifications/:id/read", miscHandler.MarkNotificationRead)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
