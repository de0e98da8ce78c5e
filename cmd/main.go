package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"study_cards/internal/clock"
	"study_cards/internal/config"
	"study_cards/internal/handlers"
	"study_cards/internal/jobs"
	"study_cards/internal/middleware"
	"study_cards/internal/repository"
	"study_cards/internal/service"
)

func configPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return "configs"
}

func main() {
	log.Println("Log Config Loading...")
	if err := config.LoadConfig(configPath()); err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := config.NewLogger(config.Cfg.Log)
	slog.SetDefault(logger)
	slog.Info("Application starting...", slog.String("app", config.AppName), slog.String("version", config.AppVersion))

	// 1. Database
	db, err := repository.NewDB(config.Cfg.Database.URL, repository.DBOptions{
		MaxOpenConns:  config.Cfg.Database.MaxOpenConns,
		MaxIdleConns:  config.Cfg.Database.MaxIdleConns,
		SlowThreshold: config.Cfg.Database.SlowThreshold,
	}, logger)
	if err != nil {
		slog.Error("Error initializing database", slog.Any("error", err))
		os.Exit(1)
	}
	if err := repository.Migrate(db); err != nil {
		slog.Error("Error migrating database", slog.Any("error", err))
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("Error closing database connection", slog.Any("error", err))
		} else {
			slog.Info("Database connection closed.")
		}
	}()

	// 2. Dependency Injection
	clk := clock.Real()
	itemRepo := repository.NewGormItemRepository()
	recordRepo := repository.NewGormReviewRecordRepository()
	categoryRepo := repository.NewGormCategoryRepository()
	sessionRepo := repository.NewGormSessionRepository()
	statsRepo := repository.NewGormCategoryStatsRepository()

	schedulerService := service.NewSchedulerService(db, itemRepo, recordRepo, sessionRepo,
		config.Cfg.Scheduling.SM2Params(), config.Cfg.Scheduling.MasteryThreshold, clk)
	dueSetService := service.NewDueSetService(db, itemRepo, recordRepo, categoryRepo, config.Cfg.App.ReviewLimit, clk)
	recommendationService := service.NewRecommendationService(db, itemRepo, recordRepo,
		config.Cfg.Weights(), config.Cfg.App.RecommendationLimit, clk)
	statsService := service.NewStatsService(db, recordRepo, statsRepo, config.Cfg.Scheduling.MasteryThreshold, clk)
	sessionService := service.NewSessionService(db, sessionRepo, clk)

	studyHandler := handlers.NewStudyHandler(schedulerService, dueSetService, recommendationService,
		sessionService, config.Cfg.App.AnswerRetryLimit, logger)
	statsHandler := handlers.NewStatsHandler(statsService, logger)
	sessionHandler := handlers.NewSessionHandler(sessionService, logger)

	// 3. Background jobs
	sweeper := jobs.NewSessionSweeper(sessionService, config.Cfg.App.SessionIdleTimeout, config.Cfg.App.SessionSweepInterval, logger)
	if err := sweeper.Start(); err != nil {
		slog.Error("Error starting session sweeper", slog.Any("error", err))
		os.Exit(1)
	}
	defer sweeper.Stop()

	// 4. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(logger))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   config.Cfg.CORS.AllowedOrigins,
		AllowedMethods:   config.Cfg.CORS.AllowedMethods,
		AllowedHeaders:   config.Cfg.CORS.AllowedHeaders,
		ExposedHeaders:   config.Cfg.CORS.ExposedHeaders,
		AllowCredentials: config.Cfg.CORS.AllowCredentials,
		MaxAge:           config.Cfg.CORS.MaxAge,
	})
	r.Use(corsHandler.Handler)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	handlers.Mount(r, studyHandler, statsHandler, sessionHandler)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := sqlDB.PingContext(r.Context()); err != nil {
			slog.ErrorContext(r.Context(), "Health check failed: could not ping DB", slog.Any("error", err))
			http.Error(w, "Health check failed", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// 5. Server
	server := &http.Server{
		Addr:         config.Cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Server listening", slog.String("port", config.Cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not listen on port", slog.String("port", config.Cfg.Server.Port), slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", slog.Any("error", err))
	}
	slog.Info("Server exiting")
}
