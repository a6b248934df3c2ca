package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fincount/counting-api/internal/api/handler"
	"github.com/fincount/counting-api/internal/api/middleware"
	"github.com/fincount/counting-api/internal/core/service"
	mongodb "github.com/fincount/counting-api/internal/infrastructure/db/mongo"
	redisdb "github.com/fincount/counting-api/internal/infrastructure/db/redis"
	healthhandlers "github.com/fincount/counting-api/internal/infrastructure/http/handlers"
	"github.com/fincount/counting-api/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS()) // the mobile client calls from any origin
	e.Use(echoprometheus.NewMiddleware("fincount"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	batchRepo := mongodb.NewBatchRepository(db)
	sessionRepo := mongodb.NewSessionRepository(db)
	idemStore := redisdb.NewIdempotencyStore(rdb)

	tokenTTL := time.Duration(cfg.TokenTTLMinutes) * time.Minute
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, tokenTTL)
	batchService := service.NewBatchService(batchRepo, sessionRepo, log)
	sessionService := service.NewSessionService(sessionRepo, batchRepo, userRepo, idemStore, cfg.DefaultOwnerID, log)

	authHandler := handler.NewAuthHandler(authService)
	batchHandler := handler.NewBatchHandler(batchService)
	sessionHandler := handler.NewSessionHandler(sessionService)
	authRequired := middleware.Auth(cfg.JWTSecret)

	// --- Root and observability ---
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"message": "Welcome to Fincount API",
			"version": "1.0.0",
		})
	})
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Health probes (no auth required) ---
	healthHandler := healthhandlers.NewHealthHandler()
	healthDepsHandler := healthhandlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/api/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout, authRequired)

	// --- Batch routes (bearer token required) ---
	batches := e.Group("/api/batches", authRequired)
	batches.GET("", batchHandler.List)
	batches.POST("", batchHandler.Create)
	batches.GET("/:id", batchHandler.Get)
	batches.PUT("/:id", batchHandler.Update)
	batches.DELETE("/:id", batchHandler.Delete)

	// --- Session routes ---
	// Listing and ingestion are deliberately open: the offline-first mobile
	// client syncs without a token. Per-session reads/writes stay scoped.
	sessions := e.Group("/api/sessions")
	sessions.GET("", sessionHandler.List)
	sessions.POST("", sessionHandler.Create)
	sessions.GET("/batch/:batchId", sessionHandler.GetByBatch, authRequired)
	sessions.PUT("/:id", sessionHandler.Update, authRequired)
	sessions.DELETE("/:id", sessionHandler.Delete, authRequired)

	return e
}
