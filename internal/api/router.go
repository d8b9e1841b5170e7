package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/hospitalhq/records-system/docs"
	"github.com/hospitalhq/records-system/internal/api/handler"
	"github.com/hospitalhq/records-system/internal/api/middleware"
	"github.com/hospitalhq/records-system/internal/auth/password"
	"github.com/hospitalhq/records-system/internal/auth/policy"
	"github.com/hospitalhq/records-system/internal/auth/token"
	"github.com/hospitalhq/records-system/internal/core/ports"
	"github.com/hospitalhq/records-system/internal/core/service"
	mongodb "github.com/hospitalhq/records-system/internal/infrastructure/db/mongo"
)

// RouterOptions carries the auth configuration the router needs beyond its
// storage handles. TokenConfig must already be validated at startup.
type RouterOptions struct {
	TokenConfig token.Config
	TokenHeader string
	Limiter     ports.LoginLimiter
	Logger      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
// Unknown policy names panic here, before the server starts listening.
func NewRouter(db *mongo.Database, rdb *redis.Client, opts RouterOptions) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("hospital"))

	// --- Dependencies ---
	validator := token.NewValidator(opts.TokenConfig)
	issuer := token.NewIssuer(opts.TokenConfig)
	hasher := password.NewHasher(password.DefaultParams())

	userRepo := mongodb.NewUserRepository(db)
	clientRepo := mongodb.NewClientRepository(db)

	authService := service.NewAuthService(userRepo, hasher, issuer, opts.Limiter, opts.Logger)
	recordsService := service.NewRecordsService(clientRepo)

	authHandler := handler.NewAuthHandler(authService)
	clientHandler := handler.NewClientHandler(recordsService)

	// Every request gets identity extraction; requests without a valid token
	// stay anonymous until a policy decides otherwise.
	e.Use(middleware.Auth(validator, opts.TokenHeader))

	policies := policy.NewRegistry()

	// --- Auth routes (anonymous) ---
	authGroup := e.Group("/api/auth")
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/register", authHandler.Register)

	// --- Protected routes: authentication required by default, role policies
	// layered per group ---
	protected := e.Group("/api", middleware.Require(policies.MustGet(policy.Fallback)))

	clients := protected.Group("/clients", middleware.Require(policies.MustGet(policy.ClientsOrAdmins)))
	clients.GET("/me", clientHandler.Me)
	clients.GET("/:id", clientHandler.Get)
	clients.GET("/:id/appointments", clientHandler.Appointments)
	clients.GET("/:id/medical-records", clientHandler.MedicalRecords)
	clients.GET("/:id/bills", clientHandler.Bills)

	// --- Operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
