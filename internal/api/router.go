package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/assetdesk/inventory-system/docs"
	"github.com/assetdesk/inventory-system/internal/api/handler"
	"github.com/assetdesk/inventory-system/internal/api/middleware"
	"github.com/assetdesk/inventory-system/internal/core/domain"
	"github.com/assetdesk/inventory-system/internal/core/ports"
)

// Deps bundles everything the router wires into handlers. Services are
// built in main so the sync scheduler can share the same instances.
type Deps struct {
	DB        *mongo.Database
	Redis     *redis.Client
	JWTSecret string
	Logger    zerolog.Logger

	Assets         ports.AssetService
	Assignments    ports.AssignmentService
	DirectoryUsers ports.DirectoryUserService
	OSOptions      ports.OSOptionService
	Sync           ports.SyncService
	Auth           ports.AuthService
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("inventory"))

	// --- Handlers ---
	assetHandler := handler.NewAssetHandler(deps.Assets)
	assignmentHandler := handler.NewAssignmentHandler(deps.Assignments)
	directoryHandler := handler.NewDirectoryUserHandler(deps.DirectoryUsers)
	osOptionHandler := handler.NewOSOptionHandler(deps.OSOptions)
	syncHandler := handler.NewSyncHandler(deps.Sync)
	authHandler := handler.NewAuthHandler(deps.Auth)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability / docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Authenticated API ---
	auth := middleware.Auth(deps.JWTSecret)
	readers := middleware.RBAC(domain.RoleAdmin, domain.RoleViewer)
	admins := middleware.RBAC(domain.RoleAdmin)

	v1 := e.Group("/v1", auth)

	assets := v1.Group("/assets")
	assets.GET("", assetHandler.List, readers)
	assets.GET("/:id", assetHandler.Get, readers)
	assets.POST("", assetHandler.Create, admins)
	assets.PUT("/:id", assetHandler.Update, admins)
	assets.DELETE("/:id", assetHandler.Delete, admins)

	assignments := v1.Group("/assignments")
	assignments.GET("", assignmentHandler.List, readers)
	assignments.GET("/:id", assignmentHandler.Get, readers)
	assignments.POST("", assignmentHandler.Create, admins)
	assignments.PATCH("/:id", assignmentHandler.Update, admins)

	users := v1.Group("/directory/users")
	users.GET("", directoryHandler.List, readers)
	users.GET("/:principal_name", directoryHandler.Get, readers)
	users.POST("/:principal_name/refresh", directoryHandler.Refresh, admins)
	users.DELETE("/:id", directoryHandler.Delete, admins)

	osOptions := v1.Group("/os-options")
	osOptions.GET("", osOptionHandler.List, readers)
	osOptions.POST("", osOptionHandler.Create, admins)
	osOptions.DELETE("/:id", osOptionHandler.Delete, admins)

	v1.POST("/sync/run", syncHandler.Run, admins)

	return e
}
