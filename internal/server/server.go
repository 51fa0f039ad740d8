package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/williandsn10/asbarberpro/internal/admin"
	"github.com/williandsn10/asbarberpro/internal/appointment"
	"github.com/williandsn10/asbarberpro/internal/auth"
	"github.com/williandsn10/asbarberpro/internal/blocked"
	"github.com/williandsn10/asbarberpro/internal/catalog"
	"github.com/williandsn10/asbarberpro/internal/config"
	"github.com/williandsn10/asbarberpro/internal/settings"
	"github.com/williandsn10/asbarberpro/internal/user"
)

// Services bundles the domain services the HTTP layer exposes.
type Services struct {
	Users        user.Service
	Catalog      catalog.Catalog
	Settings     settings.Service
	Blocked      blocked.Service
	Appointments appointment.Service
	Admin        admin.Service
}

type Server struct {
	router     *gin.Engine
	httpServer *http.Server

	// stop ends the rate limiter sweeper; sweeperDone closes once it has returned.
	stop        chan struct{}
	stopOnce    sync.Once
	sweeperDone chan struct{}
}

func New(cfg *config.Config, database *sqlx.DB, rdb *redis.Client, svc Services) *Server {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	limiter := NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, 3*time.Minute)
	stop, sweeperDone := make(chan struct{}), make(chan struct{})
	go func() {
		defer close(sweeperDone)
		limiter.Run(time.Minute, stop)
	}()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(corsMiddleware())
	router.Use(RateLimitMiddleware(limiter))

	userHandler := user.NewHandler(svc.Users)
	catalogHandler := catalog.NewHandler(svc.Catalog)
	settingsHandler := settings.NewHandler(svc.Settings)
	blockedHandler := blocked.NewHandler(svc.Blocked)
	appointmentHandler := appointment.NewHandler(svc.Appointments)
	adminHandler := admin.NewHandler(svc.Admin)

	var redisCheck RedisPinger
	if rdb != nil {
		redisCheck = redisPing(func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
	}
	router.GET("/health", healthHandler(database, redisCheck))
	router.GET("/metrics", Metrics())
	SetupSwagger(router)

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", userHandler.Register)
		authGroup.POST("/login", userHandler.Login)
		authGroup.POST("/refresh", userHandler.RefreshToken)
	}

	router.GET("/services", catalogHandler.List)
	router.GET("/services/:id", catalogHandler.Get)
	router.GET("/availability", appointmentHandler.GetAvailability)

	scheduleGroup := router.Group("/schedule")
	{
		scheduleGroup.GET("/working-hours", settingsHandler.GetWorkingHours)
		scheduleGroup.GET("/closed-days", settingsHandler.GetClosedDays)
	}

	protected := router.Group("/")
	protected.Use(auth.AuthMiddleware(cfg.JWTSecret))
	{
		protected.GET("/me", userHandler.GetMe)

		protected.GET("/appointments", appointmentHandler.ListMine)
		protected.POST("/appointments", auth.RequireRole(auth.RoleClient), appointmentHandler.Book)
		protected.POST("/appointments/:id/cancel", appointmentHandler.CancelMine)
	}

	adminGroup := router.Group("/admin")
	adminGroup.Use(auth.AuthMiddleware(cfg.JWTSecret), auth.RequireRole(auth.RoleAdmin))
	{
		adminGroup.GET("/users", userHandler.ListUsers)
		adminGroup.PUT("/users/:id/role", userHandler.UpdateRole)

		adminGroup.POST("/clients", userHandler.CreateClient)
		adminGroup.PUT("/clients/:id", userHandler.UpdateClient)
		adminGroup.DELETE("/clients/:id", userHandler.DeleteClient)

		adminGroup.POST("/services", catalogHandler.Create)
		adminGroup.PUT("/services/:id", catalogHandler.Update)
		adminGroup.DELETE("/services/:id", catalogHandler.Delete)
		adminGroup.DELETE("/services", catalogHandler.DeleteAll)

		adminGroup.GET("/settings/working-hours", settingsHandler.GetWorkingHours)
		adminGroup.PUT("/settings/working-hours", settingsHandler.UpdateWorkingHours)
		adminGroup.GET("/settings/closed-days", settingsHandler.GetClosedDays)
		adminGroup.PUT("/settings/closed-days", settingsHandler.UpdateClosedDays)

		adminGroup.GET("/blocked-times", blockedHandler.List)
		adminGroup.POST("/blocked-times", blockedHandler.Create)
		adminGroup.PUT("/blocked-times/:id", blockedHandler.Update)
		adminGroup.DELETE("/blocked-times/:id", blockedHandler.Delete)
		adminGroup.DELETE("/blocked-times", blockedHandler.DeleteAll)

		adminGroup.GET("/appointments", appointmentHandler.ListByDate)
		adminGroup.POST("/appointments", appointmentHandler.AdminBook)
		adminGroup.POST("/appointments/:id/accept", appointmentHandler.Accept)
		adminGroup.POST("/appointments/:id/complete", appointmentHandler.Complete)
		adminGroup.POST("/appointments/:id/reject", appointmentHandler.Reject)
		adminGroup.POST("/appointments/:id/cancel", appointmentHandler.Cancel)
		adminGroup.DELETE("/appointments", appointmentHandler.DeleteAll)

		adminGroup.POST("/reset", adminHandler.Reset)
	}

	return &Server{
		router: router,
		httpServer: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		stop:        stop,
		sweeperDone: sweeperDone,
	}
}

// Handler exposes the router, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown stops background work and drains the HTTP server. It is safe to
// call more than once.
func (s *Server) Shutdown(ctx context.Context) error {
	s.stopOnce.Do(func() { close(s.stop) })
	return s.httpServer.Shutdown(ctx)
}

func corsMiddleware() gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowAllOrigins = true
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	cfg.MaxAge = 12 * time.Hour
	return cors.New(cfg)
}
