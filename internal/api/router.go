package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"gorm.io/gorm"

	"github.com/clearcrm/crm-api/internal/api/handler"
	"github.com/clearcrm/crm-api/internal/api/middleware"
	"github.com/clearcrm/crm-api/internal/core/service"
	"github.com/clearcrm/crm-api/internal/infrastructure/config"
	"github.com/clearcrm/crm-api/internal/infrastructure/db/postgres"
	redisdb "github.com/clearcrm/crm-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *gorm.DB, rdb *goredis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("crm"))

	// --- Dependencies ---
	userRepo := postgres.NewUserRepository(db)
	accountRepo := postgres.NewAccountRepository(db)
	contactRepo := postgres.NewContactRepository(db)
	dealRepo := postgres.NewDealRepository(db)
	activityRepo := postgres.NewActivityRepository(db)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)

	var limiter handler.LoginLimiter
	if rdb != nil && cfg.RateLimit.MaxAttempts > 0 {
		limiter = redisdb.NewLoginLimiter(rdb, cfg.RateLimit.MaxAttempts, cfg.RateLimit.Window)
	}

	authHandler := handler.NewAuthHandler(authService, limiter)
	userHandler := handler.NewUserHandler(userRepo)
	accountHandler := handler.NewAccountHandler(accountRepo)
	contactHandler := handler.NewContactHandler(contactRepo)
	dealHandler := handler.NewDealHandler(dealRepo)
	activityHandler := handler.NewActivityHandler(activityRepo)
	statusHandler := handler.NewStatusHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	// The identity resolver runs on every request and attaches the caller's
	// user record when the bearer token checks out. It never rejects; the
	// per-route guards below decide whether a missing identity is fatal.
	e.Use(middleware.Authenticate(cfg.JWTSecret, userRepo))

	// --- Probes and operational surfaces (no auth required) ---
	e.GET("/health", statusHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")
	api.GET("/status", statusHandler.Status)

	// --- Auth ---
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", authHandler.Me, middleware.RequireAuth)

	// --- Users ---
	users := api.Group("/users")
	users.GET("", userHandler.List, middleware.RequireAdmin)
	users.GET("/:id", userHandler.Get, middleware.RequireAuth)
	users.PATCH("/:id", userHandler.Update, middleware.RequireAdmin)
	users.DELETE("/:id", userHandler.Delete, middleware.RequireAdmin)

	// --- Accounts (admin-gated; the per-user listing is owner-or-admin) ---
	accounts := api.Group("/accounts")
	accounts.GET("", accountHandler.List, middleware.RequireAdmin)
	accounts.POST("", accountHandler.Create, middleware.RequireAdmin)
	accounts.GET("/user/:userId", accountHandler.ListByOwner,
		middleware.RequireOwnerOrAdmin(func(c echo.Context) (string, error) {
			// The target of this listing is the user in the path.
			return c.Param("userId"), nil
		}))
	accounts.GET("/:id", accountHandler.Get, middleware.RequireAdmin)
	accounts.PATCH("/:id", accountHandler.Update, middleware.RequireAdmin)
	accounts.DELETE("/:id", accountHandler.Delete, middleware.RequireAdmin)

	// --- Contacts ---
	contacts := api.Group("/contacts", middleware.RequireAuth)
	contacts.GET("", contactHandler.List)
	contacts.POST("", contactHandler.Create)
	contacts.GET("/:id", contactHandler.Get)
	contacts.PATCH("/:id", contactHandler.Update)
	contacts.DELETE("/:id", contactHandler.Delete)

	// --- Deals ---
	deals := api.Group("/deals", middleware.RequireAuth)
	deals.GET("", dealHandler.List)
	deals.POST("", dealHandler.Create)
	deals.GET("/:id", dealHandler.Get)
	deals.PATCH("/:id", dealHandler.Update)
	deals.DELETE("/:id", dealHandler.Delete)

	// --- Activities (the full listing is admin-only) ---
	activities := api.Group("/activities")
	activities.GET("", activityHandler.List, middleware.RequireAdmin)
	activities.POST("", activityHandler.Create, middleware.RequireAuth)
	activities.GET("/:id", activityHandler.Get, middleware.RequireAuth)
	activities.PATCH("/:id", activityHandler.Update, middleware.RequireAuth)
	activities.DELETE("/:id", activityHandler.Delete, middleware.RequireAuth)

	return e
}
