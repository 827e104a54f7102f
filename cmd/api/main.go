package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jobboard/internal/app"
	"jobboard/internal/config"
	"jobboard/internal/database"
	"jobboard/internal/domain/analytics"
	apphttp "jobboard/internal/http"
	"jobboard/internal/http/handlers"
	"jobboard/internal/http/metrics"
	httpmw "jobboard/internal/http/middleware"
	"jobboard/internal/http/response"
	"jobboard/internal/integration/cloudinary"
	"jobboard/internal/integration/rabbitmq"
	"jobboard/internal/observability"
	"jobboard/internal/repository/sqlstore"
	"jobboard/internal/scheduler"
	"jobboard/internal/security"
)

func main() {
	logger := observability.NewLogger("info", "json")
	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Error("failed to load config")
		os.Exit(1)
	}
	logger = observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	observability.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, database.Config{
		Driver:          cfg.DBDriver,
		DSN:             cfg.DatabaseURL,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxIdle:     cfg.DBConnMaxIdle,
		ConnMaxLifetime: cfg.DBConnMaxLife,
		PingTimeout:     30 * time.Second,
	}, logger)
	if err != nil {
		logger.WithError(err).Error("failed to open database")
		os.Exit(1)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	if cfg.DBAutoMigrate {
		if err := sqlstore.Migrate(ctx, db); err != nil {
			logger.WithError(err).Error("failed to migrate database")
			os.Exit(1)
		}
	}

	userRepo := sqlstore.NewUserRepository(db)
	sessionRepo := sqlstore.NewSessionRepository(db)
	studentRepo := sqlstore.NewStudentProfileRepository(db)
	companyRepo := sqlstore.NewCompanyProfileRepository(db)
	jobOfferRepo := sqlstore.NewJobOfferRepository(db)
	postulationRepo := sqlstore.NewPostulationRepository(db)

	events := analytics.Fanout{sqlstore.NewAnalyticsRepository(db)}
	if cfg.RabbitMQURL != "" {
		publisher, err := rabbitmq.Dial(cfg.RabbitMQURL, cfg.RabbitMQQueue)
		if err != nil {
			logger.WithError(err).Warn("rabbitmq unavailable, events stay in the database only")
		} else {
			defer publisher.Close()
			events = append(events, publisher)
		}
	}

	var limiter httpmw.Limiter = httpmw.NewRateLimiter()
	if cfg.RedisURL != "" {
		client, err := database.NewRedis(ctx, cfg.RedisURL)
		if err != nil {
			logger.WithError(err).Warn("redis unavailable, using in-memory rate limiter")
		} else {
			defer client.Close()
			limiter = httpmw.NewRedisLimiter(client, httpmw.DefaultRateLimitPrefix)
		}
	}

	var uploader app.FileUploader
	if cfg.CloudinaryURL != "" {
		cld, err := cloudinary.New(cfg.CloudinaryURL, cfg.CloudinaryFolder)
		if err != nil {
			logger.WithError(err).Error("failed to init cloudinary")
			os.Exit(1)
		}
		uploader = cld
	}

	jwtProvider := security.NewJWTProvider(cfg.JWTSecret)

	authService := app.NewAuthService(userRepo, sessionRepo, events, jwtProvider, logger)
	userService := app.NewUserService(userRepo, events)
	profileService := app.NewProfileService(studentRepo, companyRepo, uploader, events)
	jobOfferService := app.NewJobOfferService(jobOfferRepo, companyRepo, events)
	postulationService := app.NewPostulationService(postulationRepo, jobOfferRepo, studentRepo, companyRepo, events)

	collector := metrics.NewCollector()
	response.SetErrorCollector(collector)

	router := apphttp.NewRouter(apphttp.RouterDependencies{
		AuthHandler:        handlers.NewAuthHandler(authService),
		UserHandler:        handlers.NewUserHandler(userService),
		ProfileHandler:     handlers.NewProfileHandler(profileService),
		JobOfferHandler:    handlers.NewJobOfferHandler(jobOfferService),
		PostulationHandler: handlers.NewPostulationHandler(postulationService),
		MetricsHandler:     handlers.NewMetricsHandler(collector),
		AuthMiddleware:     httpmw.NewAuthMiddleware(authService),
		Metrics:            collector,
		RequestTimeout:     cfg.RequestTimeout,
		Limiter:            limiter,
		RateLimits: apphttp.RateLimits{
			LoginPerMinute:    cfg.LoginRateLimitPerMin,
			RegisterPerMinute: cfg.RegisterRateLimitPerMin,
		},
	})

	jobs := scheduler.New(authService, logger, cfg.SessionCleanupSpec)
	if err := jobs.Start(ctx); err != nil {
		logger.WithError(err).Error("failed to start scheduler")
		os.Exit(1)
	}
	defer jobs.Stop()

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("API started on :" + cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-serverErr:
		logger.WithError(err).Error("server failed")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("graceful shutdown failed")
	}
	logger.Info("API stopped")
}
