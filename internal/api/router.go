package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/campuslink/events-api/internal/api/handler"
	"github.com/campuslink/events-api/internal/api/middleware"
	"github.com/campuslink/events-api/internal/core/domain"
	"github.com/campuslink/events-api/internal/core/ports"
	"github.com/campuslink/events-api/internal/core/service"
	mongodb "github.com/campuslink/events-api/internal/infrastructure/db/mongo"
	redisdb "github.com/campuslink/events-api/internal/infrastructure/db/redis"
	"github.com/campuslink/events-api/internal/infrastructure/http/handlers"
)

// Dependencies carries everything the router needs to assemble the service
// graph. The audit sink is built and started by the caller so its worker
// lifecycle is owned by main.
type Dependencies struct {
	DB        *mongo.Database
	Redis     *redis.Client
	JWTSecret string
	Audit     service.AuditSink
	Log       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("campus_events"))

	// --- Repositories and services ---
	userRepo := mongodb.NewUserRepository(deps.DB)
	eventRepo := mongodb.NewEventRepository(deps.DB)
	registrationRepo := mongodb.NewRegistrationRepository(deps.DB)
	listingCache := redisdb.NewListingCache(deps.Redis, deps.Log)

	authService := service.NewAuthService(userRepo, deps.JWTSecret, 24*time.Hour)
	eventService := service.NewEventService(eventRepo, userRepo, listingCache, deps.Audit, deps.Log)
	registrationService := service.NewRegistrationService(eventRepo, registrationRepo, deps.Audit, deps.Log)

	authHandler := handler.NewAuthHandler(authService)
	eventHandler := handler.NewEventHandler(eventService)
	registrationHandler := handler.NewRegistrationHandler(registrationService)

	auth := middleware.Auth(deps.JWTSecret)
	optionalAuth := middleware.OptionalAuth(deps.JWTSecret)
	organizerOnly := middleware.RBAC(domain.RoleOrganizer)
	participantOnly := middleware.RBAC(domain.RoleParticipant)
	adminOnly := middleware.RBAC()

	// --- Auth ---
	e.POST("/auth/signup", authHandler.Signup)
	e.POST("/auth/login", authHandler.Login)
	e.PATCH("/users/:id/role", authHandler.ChangeRole, auth, adminOnly)

	// --- Events ---
	e.GET("/events", eventHandler.List)
	e.GET("/events/mine", eventHandler.ListMine, auth, organizerOnly)
	e.GET("/events/:id", eventHandler.Get, optionalAuth)
	e.POST("/events", eventHandler.Create, auth, organizerOnly)
	e.PATCH("/events/:id", eventHandler.Update, auth, organizerOnly)

	// Moderation state machine: one route per transition, no status patching.
	e.POST("/events/:id/submit", eventHandler.Transition(ports.ActionSubmit), auth, organizerOnly)
	e.POST("/events/:id/approve", eventHandler.Transition(ports.ActionApprove), auth, adminOnly)
	e.POST("/events/:id/reject", eventHandler.Transition(ports.ActionReject), auth, adminOnly)
	e.POST("/events/:id/archive", eventHandler.Transition(ports.ActionArchive), auth, organizerOnly)

	// --- Registrations ---
	e.POST("/registrations", registrationHandler.Register, auth, participantOnly)
	e.GET("/registrations/mine", registrationHandler.ListMine, auth, participantOnly)
	e.GET("/events/:id/registrations", registrationHandler.ListForEvent, auth, organizerOnly)
	e.POST("/registrations/:id/checkin", registrationHandler.CheckIn, auth, organizerOnly)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
