package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/williandsn10/asbarberpro/internal/admin"
	"github.com/williandsn10/asbarberpro/internal/appointment"
	"github.com/williandsn10/asbarberpro/internal/blocked"
	"github.com/williandsn10/asbarberpro/internal/catalog"
	"github.com/williandsn10/asbarberpro/internal/config"
	"github.com/williandsn10/asbarberpro/internal/db"
	"github.com/williandsn10/asbarberpro/internal/email"
	"github.com/williandsn10/asbarberpro/internal/events"
	"github.com/williandsn10/asbarberpro/internal/jobs"
	"github.com/williandsn10/asbarberpro/internal/logger"
	"github.com/williandsn10/asbarberpro/internal/obs"
	"github.com/williandsn10/asbarberpro/internal/server"
	"github.com/williandsn10/asbarberpro/internal/settings"
	"github.com/williandsn10/asbarberpro/internal/user"
)

// @title AS Barber Pro API
// @version 1.0
// @description Barbershop booking API: services, working hours, blocked times and appointments.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()
	logger.Info("Starting AS Barber Pro")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		logger.Fatalf("Failed to load time zone: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracer, err := obs.InitTracer(ctx, cfg.OTelEndpoint, cfg.Env)
	if err != nil {
		logger.Fatalf("Failed to init tracing: %v", err)
	}

	logger.Info("Connecting to database...")
	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()
	logger.Info("Database connected")

	if err := db.RunMigrations(database, cfg.MigrationsPath); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Info("Migrations completed")

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("Redis not reachable at startup", "addr", cfg.RedisAddr, "error", err)
	}

	emailService := email.New(rdb, email.Config{
		From:     cfg.EmailFrom,
		FromName: cfg.EmailFromName,
		SMTPHost: cfg.SMTPHost,
		SMTPPort: cfg.SMTPPort,
		SMTPUser: cfg.SMTPUser,
		SMTPPass: cfg.SMTPPass,
	})
	// Closes the Redis client shared with the settings cache.
	defer emailService.Close()
	go emailService.Start(ctx)
	logger.Info("Email worker started")

	var publisher events.Publisher = events.Noop{}
	if cfg.AMQPURL != "" {
		publisher, err = events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			logger.Fatalf("Failed to connect to AMQP: %v", err)
		}
		logger.Info("Event publisher connected", "exchange", cfg.AMQPExchange)
	}
	defer publisher.Close()

	userService := user.NewService(user.NewRepository(database), cfg.JWTSecret)
	catalogService := catalog.NewCatalog(catalog.NewRepository(database))
	settingsService := settings.NewService(
		settings.NewRepository(database),
		settings.NewCache(rdb, cfg.SettingsCacheTTL),
	)
	blockedService := blocked.NewService(blocked.NewRepository(database))

	appointmentRepo := appointment.NewRepository(database)
	availability := appointment.NewAvailability(
		appointment.NewScheduleSource(settingsService, blockedService),
		appointmentRepo,
	)
	notifier := appointment.NewNotifier(emailService, publisher, userService, loc)
	appointmentService := appointment.NewService(
		appointmentRepo,
		availability,
		catalogService,
		userService,
		notifier,
		loc,
	)

	reminders, err := jobs.NewScheduler(cfg.ReminderCron, loc, appointmentService)
	if err != nil {
		logger.Fatalf("Failed to schedule reminders: %v", err)
	}
	reminders.Start()

	srv := server.New(cfg, database, rdb, server.Services{
		Users:        userService,
		Catalog:      catalogService,
		Settings:     settingsService,
		Blocked:      blockedService,
		Appointments: appointmentService,
		Admin:        admin.NewService(admin.NewRepository(database)),
	})

	serverErrChan := make(chan error, 1)
	go func() {
		logger.Infof("Server starting on port %s", cfg.Port)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Infof("Received signal: %v", sig)
	case err := <-serverErrChan:
		logger.Errorf("Server error: %v", err)
	}

	logger.Info("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Error during server shutdown: %v", err)
	}
	reminders.Stop(shutdownCtx)
	cancel()

	if err := shutdownTracer(shutdownCtx); err != nil {
		logger.Errorf("Error flushing traces: %v", err)
	}

	logger.Info("Server stopped")
}
