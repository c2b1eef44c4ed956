package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dan9191/cash-insights/internal/analytics"
	"github.com/Dan9191/cash-insights/internal/config"
	"github.com/Dan9191/cash-insights/internal/handler"
	"github.com/Dan9191/cash-insights/internal/integrations/cbr"
	"github.com/Dan9191/cash-insights/internal/integrations/mlapi"
	"github.com/Dan9191/cash-insights/internal/middleware"
	"github.com/Dan9191/cash-insights/internal/repository"
	"github.com/Dan9191/cash-insights/internal/scheduler"
	"github.com/Dan9191/cash-insights/internal/service"
	"github.com/Dan9191/cash-insights/internal/utils/email"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Analysis strategies
	var localOpts []analytics.Option
	if cfg.AdvancedRules {
		localOpts = append(localOpts, analytics.WithAdvancedRules())
	}
	served := analytics.NewLocal(localOpts...)
	var dashboard analytics.Analyzer = analytics.NewLocal()
	if cfg.AnalysisMode == config.ModeRemote {
		dashboard = mlapi.NewClient(cfg, logger)
	}
	logger.Infof("Dashboard analysis mode: %s", cfg.AnalysisMode)

	// Initialize layers
	repo := repository.NewRepository(db)
	svc := service.NewService(repo, dashboard, served, logger, cfg)
	cbrClient := cbr.NewClient(cfg, logger)
	h := handler.NewHandler(svc, cbrClient, logger)

	// Setup router
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(logger))
	// Public routes
	r.HandleFunc("/health", h.Health).Methods("GET")
	r.HandleFunc("/api/analyze", h.AnalyzeRequest).Methods("POST")
	r.HandleFunc("/key-rate", h.KeyRate).Methods("GET")
	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/dashboard", h.Dashboard).Methods("GET")

	// Insight digest
	var jobs *scheduler.Scheduler
	if cfg.DigestEnabled() {
		jobs = scheduler.NewScheduler(logger, time.Minute)
		digester := service.NewDigester(svc, email.NewSender(cfg, logger), cbrClient, cfg.DigestOwner, cfg.DigestRecipient, logger)
		if err := jobs.Register(cfg.DigestSchedule, "insight-digest", digester.Run); err != nil {
			logger.Fatalf("Failed to schedule digest: %v", err)
		}
		jobs.Start()
	}

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr: addr,
		Handler: cors.New(cors.Options{
			AllowedOrigins: cfg.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", middleware.RequestIDHeader},
			ExposedHeaders: []string{middleware.RequestIDHeader},
		}).Handler(r),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.MLHealthTimeout + cfg.MLAnalyzeTimeout + 10*time.Second,
	}

	go func() {
		logger.Infof("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if jobs != nil {
		select {
		case <-jobs.Stop().Done():
		case <-ctx.Done():
		}
	}
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Shutdown failed: %v", err)
	}
}
