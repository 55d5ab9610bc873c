package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/clinicore/patients-api/docs"
	"github.com/clinicore/patients-api/internal/api/handler"
	"github.com/clinicore/patients-api/internal/api/middleware"
	"github.com/clinicore/patients-api/internal/core/domain"
	"github.com/clinicore/patients-api/internal/core/ports"
	"github.com/clinicore/patients-api/internal/core/service"
	mongodb "github.com/clinicore/patients-api/internal/infrastructure/db/mongo"
)

// Deps carries the externally constructed collaborators the router wires up.
type Deps struct {
	Mongo    *mongo.Database
	Redis    *redis.Client
	Tokens   *service.TokenService
	Audit    ports.AuditRecorder
	Throttle service.LoginThrottle
	Log      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("patients_api"))

	// --- Dependencies ---
	authRepo := mongodb.NewAuthRepository(d.Mongo)
	patientRepo := mongodb.NewPatientRepository(d.Mongo)
	auditRepo := mongodb.NewAuditRepository(d.Mongo)

	authService := service.NewAuthService(authRepo, d.Tokens, d.Throttle, d.Audit, d.Log)
	patientService := service.NewPatientService(patientRepo, d.Audit, d.Log)

	authHandler := handler.NewAuthHandler(authService)
	patientHandler := handler.NewPatientHandler(patientService)
	auditHandler := handler.NewAuditHandler(auditRepo)

	authRequired := middleware.Auth(d.Tokens)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	// --- Auth routes (public) ---
	e.POST("/auth/signup", authHandler.Signup)
	e.POST("/auth/login", authHandler.Login)

	// --- Patients (authenticated; writes are admin-gated) ---
	patients := e.Group("/patients", authRequired)
	patients.GET("", patientHandler.List)
	patients.GET("/:id", patientHandler.Get)
	patients.POST("", patientHandler.Create, adminOnly)
	patients.PUT("/:id", patientHandler.Update, adminOnly)
	patients.DELETE("/:id", patientHandler.Delete, adminOnly)

	// --- Audit trail (admin only) ---
	e.GET("/audit", auditHandler.List, authRequired, adminOnly)

	// --- Health probes and operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Mongo, d.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
