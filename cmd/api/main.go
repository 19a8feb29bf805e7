package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/clinic-directory/internal/cache"
	"github.com/jwalitptl/clinic-directory/internal/config"
	"github.com/jwalitptl/clinic-directory/internal/email"
	"github.com/jwalitptl/clinic-directory/internal/fixtures"
	contactHandler "github.com/jwalitptl/clinic-directory/internal/handler/contact"
	directoryHandler "github.com/jwalitptl/clinic-directory/internal/handler/directory"
	"github.com/jwalitptl/clinic-directory/internal/handler/health"
	prometheusHandler "github.com/jwalitptl/clinic-directory/internal/handler/prometheus"
	"github.com/jwalitptl/clinic-directory/internal/middleware"
	"github.com/jwalitptl/clinic-directory/internal/repository/sqlstore"
	"github.com/jwalitptl/clinic-directory/internal/router"
	contactService "github.com/jwalitptl/clinic-directory/internal/service/contact"
	directoryService "github.com/jwalitptl/clinic-directory/internal/service/directory"
	seedService "github.com/jwalitptl/clinic-directory/internal/service/seed"
	"github.com/jwalitptl/clinic-directory/pkg/logger"
	"github.com/jwalitptl/clinic-directory/pkg/metrics"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(&logger.Config{
		Level:      logger.ParseLevel(cfg.Logging.Level),
		TimeFormat: time.RFC3339,
		JSON:       cfg.Logging.Format == "json",
	})
	logger.SetGlobal(appLogger)
	gin.SetMode(gin.ReleaseMode)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	appMetrics := metrics.New("clinic")
	if err := appMetrics.Register(registry); err != nil {
		log.Fatal().Err(err).Msg("failed to register metrics")
	}

	// Initialize database
	db, err := sqlstore.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Database.Backend).Msg("failed to open database")
	}
	defer db.Close()

	// Tables and fixtures must be in place before the listener starts.
	set, err := fixtures.Load(cfg.Fixtures.Dir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load fixtures")
	}
	seedCtx, cancelSeed := context.WithTimeout(context.Background(), time.Minute)
	result, err := seedService.NewService(sqlstore.NewSchemaRepository(db, appMetrics), appLogger, appMetrics).Run(seedCtx, set)
	cancelSeed()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	log.Info().Bool("created", result.Created()).Msg("database ready")

	lookupCache, err := cache.New(context.Background(), cfg.Cache)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize cache")
	}
	if lookupCache != nil {
		defer lookupCache.Close()
	}

	// Initialize services
	directorySvc := directoryService.NewService(directoryService.Repositories{
		Doctors:   sqlstore.NewDoctorRepository(db, appMetrics),
		Locations: sqlstore.NewLocationRepository(db, appMetrics),
		Services:  sqlstore.NewServiceRepository(db, appMetrics),
		WhoWeAre:  sqlstore.NewWhoWeAreRepository(db, appMetrics),
	}, lookupCache, appLogger, appMetrics)
	contactSvc := contactService.NewService(email.NewSMTPSender(cfg.Mail, appMetrics), cfg.Mail.Timeout, appLogger)

	// Initialize handlers
	metricsHandler, err := prometheusHandler.New(registry, "clinic_http")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to register request metrics")
	}
	directoryH := directoryHandler.NewHandler(directorySvc)
	directoryAPI := directoryHandler.NewAPIHandler(directorySvc)
	contactH := contactHandler.NewHandler(contactSvc)

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins

	r := router.NewRouter(router.RouterConfig{
		RateLimitEnabled: cfg.RateLimit.Enabled,
		RateLimit:        rate.Limit(cfg.RateLimit.RequestsPerSecond),
		RateBurst:        cfg.RateLimit.Burst,
		CORSConfig:       corsConfig,
		RequestTimeout:   cfg.Server.RequestTimeout,
		MaxBodyBytes:     cfg.Server.MaxBodyBytes,
		StaticDir:        cfg.Server.StaticDir,
	}, router.Handlers{
		Health:  health.NewHandler(db),
		Metrics: metricsHandler,
		Root:    []router.Handler{directoryH, contactH},
		V1:      []router.Handler{directoryAPI},
	})
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
