package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/scanmap/server-go/internal/config"
	"github.com/scanmap/server-go/internal/database"
	"github.com/scanmap/server-go/internal/events"
	"github.com/scanmap/server-go/internal/handler"
	"github.com/scanmap/server-go/internal/jobs"
	"github.com/scanmap/server-go/internal/metrics"
	"github.com/scanmap/server-go/internal/middleware"
	"github.com/scanmap/server-go/internal/mqtt"
	"github.com/scanmap/server-go/internal/redis"
	"github.com/scanmap/server-go/internal/repository"
	"github.com/scanmap/server-go/internal/service"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	setLogLevel(cfg.LogLevel)
	metrics.Init()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), config.DBPingTimeout)
	if err := db.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ping database")
	}
	cancel()
	log.Info().Msg("database connected")

	redisClient, err := redis.NewClient(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected")

	buildingRepo := repository.NewBuildingRepository(db.DB)
	roomRepo := repository.NewRoomRepository(db.DB)
	floorPlanRepo := repository.NewFloorPlanRepository(db.DB)
	scanRepo := repository.NewScanRepository(db.DB)
	sessionRepo := repository.NewSessionRepository(db.DB)
	linkRepo := repository.NewRoomScanRepository(db.DB)

	broker := events.NewBroker(redisClient)

	buildingService := service.NewBuildingService(buildingRepo)
	roomService := service.NewRoomService(roomRepo, buildingRepo)
	floorPlanService := service.NewFloorPlanService(floorPlanRepo, buildingRepo)
	scanService := service.NewScanService(scanRepo, roomRepo, buildingRepo)
	sessionService := service.NewSessionService(db, sessionRepo, roomRepo, broker, cfg.DefaultNode)
	ingestService := service.NewIngestService(scanRepo, linkRepo, sessionRepo)
	exportService := service.NewExportService(sessionRepo, linkRepo)

	rateLimitMiddleware := middleware.NewRedisRateLimitMiddleware(redisClient.Client, cfg.IngestRateLimitPerMin)
	bodyLimitMiddleware := middleware.NewBodyLimitMiddleware(0)

	ingestHandler := handler.NewIngestHandler(ingestService)
	scanHandler := handler.NewScanHandler(scanService)
	roomHandler := handler.NewRoomHandler(roomService, sessionService, scanService)
	buildingHandler := handler.NewBuildingHandler(buildingService, scanService, floorPlanService)
	floorPlanHandler := handler.NewFloorPlanHandler(floorPlanService)
	sessionHandler := handler.NewSessionHandler(sessionService, exportService)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(config.ServerRequestTimeout))
	r.Use(bodyLimitMiddleware.Handler)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]any{
			"status":    "ok",
			"timestamp": time.Now().UnixMilli(),
		})
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/ingest", func(r chi.Router) {
		r.Use(rateLimitMiddleware.Handler)
		r.Post("/", ingestHandler.Ingest)
	})

	r.Get("/wifi/recent", scanHandler.Recent)

	r.Route("/rooms", func(r chi.Router) {
		r.Mount("/", roomHandler.Routes())
	})

	r.Route("/buildings", func(r chi.Router) {
		r.Mount("/", buildingHandler.Routes())
	})

	r.Route("/floorplans", func(r chi.Router) {
		r.Mount("/", floorPlanHandler.Routes())
	})

	r.Route("/sessions", func(r chi.Router) {
		r.Mount("/", sessionHandler.Routes())
	})

	if cfg.MQTTBrokerURL != "" {
		bridge, err := mqtt.NewBridge(cfg, ingestService)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to start mqtt bridge")
		}
		if err := bridge.Start(); err != nil {
			log.Fatal().Err(err).Msg("failed to subscribe mqtt bridge")
		}
		defer bridge.Close()
	}

	if cfg.SessionMaxAgeMinutes > 0 {
		staleJob := jobs.NewStaleSessionJob(sessionService, cfg.SessionMaxAge(), config.StaleSessionJobInterval)
		staleJob.Start()
		defer staleJob.Stop()
	}

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: 0,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), config.ServerShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

func setLogLevel(level string) {
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
