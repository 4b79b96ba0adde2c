package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"peerprep/interview/internal/config"
	"peerprep/interview/internal/engine"
	"peerprep/interview/internal/events"
	"peerprep/interview/internal/handlers"
	"peerprep/interview/internal/history"
	"peerprep/interview/internal/jobs"
	"peerprep/interview/internal/llm"
	_ "peerprep/interview/internal/llm/gemini"
	"peerprep/interview/internal/metrics"
	"peerprep/interview/internal/repositories"
	sessionmongo "peerprep/interview/internal/repositories/mongo"
	"peerprep/interview/internal/routers"
)

func registerRoutes(router *chi.Mux, sessionHandler *handlers.SessionHandler, historyHandler *handlers.HistoryHandler, healthHandler *handlers.HealthHandler, jwtSecret string) {
	routers.HealthRoutes(router, healthHandler)
	routers.InterviewRoutes(router, sessionHandler, historyHandler, jwtSecret)
}

// initHistoryDB connects to the relational history database.
func initHistoryDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&history.InterviewHistory{}); err != nil {
		return nil, err
	}
	return db, nil
}

// newSessionStore prefers Mongo and falls back to the in-memory store when no
// URI is configured, which keeps local development databaseless.
func newSessionStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repositories.SessionStore, *sessionmongo.Client) {
	if cfg.MongoURI == "" {
		logger.Warn("MONGO_URI not set, using in-memory session store")
		return repositories.NewMemoryStore(), nil
	}

	client, err := sessionmongo.NewClient(ctx)
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	repo, err := sessionmongo.NewSessionRepo(client)
	if err != nil {
		logger.Fatal("Failed to initialize session repository", zap.Error(err))
	}
	return repo, client
}

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	logger.Info("Configuration loaded",
		zap.String("provider", cfg.Provider),
		zap.String("port", cfg.Port))

	provider, err := llm.NewProvider(cfg.Provider)
	if err != nil {
		logger.Fatal("Failed to initialize LLM provider", zap.Error(err))
	}

	ctx := context.Background()
	store, mongoClient := newSessionStore(ctx, cfg, logger)

	// eventing and history are optional, gated on their config
	var publisher *events.Publisher
	var subscriber *history.Subscriber
	var historyHandler *handlers.HistoryHandler
	subscriberCtx, stopSubscriber := context.WithCancel(ctx)
	defer stopSubscriber()

	if cfg.RedisAddr != "" {
		publisher = events.NewPublisher(cfg.RedisAddr, logger)

		if cfg.HistoryDSN != "" {
			db, err := initHistoryDB(cfg.HistoryDSN)
			if err != nil {
				logger.Error("Failed to initialize history database, history will be disabled", zap.Error(err))
			} else {
				repo := &history.Repository{DB: db}
				historyHandler = handlers.NewHistoryHandler(repo, logger)
				subscriber = history.NewSubscriber(cfg.RedisAddr, repo, logger)
				go subscriber.Run(subscriberCtx)
				logger.Info("History subscriber started")
			}
		}
	}

	eng := engine.NewEngine(nil)
	sessionHandler := handlers.NewSessionHandler(store, eng, provider, publisher, logger)
	healthHandler := handlers.NewHealthHandler(provider, store, cfg)

	reaper := jobs.NewSessionReaperJob(store, eng, publisher, &jobs.ReaperConfig{
		Schedule: cfg.ReaperSchedule,
		MaxAge:   cfg.SessionMaxAge,
	}, logger)
	if err := reaper.Start(); err != nil {
		logger.Error("Failed to start session reaper", zap.Error(err))
	}

	router := chi.NewRouter()

	// cors middleware
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	router.Use(chimiddleware.RequestID, chimiddleware.RealIP, chimiddleware.Logger, chimiddleware.Recoverer, chimiddleware.Timeout(60*time.Second))
	router.Use(metrics.Middleware("interview"))

	registerRoutes(router, sessionHandler, historyHandler, healthHandler, cfg.JWTSecret)

	serverAddr := ":" + cfg.Port

	// http server with timeouts
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// starting server in a goroutine
	go func() {
		logger.Info("Interview service starting", zap.String("addr", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// wait for interrupt signal to gracefully shutdown the server
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	<-shutdownChan

	logger.Info("Interview service shutting down...")

	reaper.Stop()
	stopSubscriber()
	if subscriber != nil {
		subscriber.Close()
	}
	if publisher != nil {
		publisher.Close()
	}

	// graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}
	if mongoClient != nil {
		_ = mongoClient.Disconnect(shutdownCtx)
	}

	logger.Info("Interview service exited")
}
