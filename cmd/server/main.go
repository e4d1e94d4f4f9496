package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/AnshRaj112/goexplore-backend/internal/config"
	"github.com/AnshRaj112/goexplore-backend/internal/database"
	"github.com/AnshRaj112/goexplore-backend/internal/handlers"
	"github.com/AnshRaj112/goexplore-backend/internal/logging"
	"github.com/AnshRaj112/goexplore-backend/internal/metrics"
	"github.com/AnshRaj112/goexplore-backend/internal/middleware"
	"github.com/AnshRaj112/goexplore-backend/internal/routes"
	"github.com/AnshRaj112/goexplore-backend/internal/services"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func main() {
	envErr := godotenv.Load()

	cfg := config.Load()
	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	if envErr != nil {
		logger.Info("No .env file found")
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// MongoDB is required; everything else degrades when absent.
	logger.Info("Connecting to MongoDB...", "database", cfg.MongoDatabase)
	store, err := database.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		logger.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	logger.Info("✅ Connected to MongoDB", "transactions", store.SupportsTransactions())

	// Purchase, bookmark and payment de-duplication rests on these unique indexes.
	if err := store.EnsureIndexes(ctx); err != nil {
		logger.Error("Failed to ensure MongoDB indexes; remove duplicate documents and restart", "error", err)
		_ = store.Disconnect(context.Background())
		os.Exit(1)
	}
	logger.Info("✅ MongoDB indexes ensured")

	var redisClient *redis.Client
	if cfg.RedisURI != "" {
		logger.Info("Connecting to Redis...")
		redisClient, err = database.ConnectRedis(ctx, cfg.RedisURI)
		if err != nil {
			logger.Warn("⚠️  Redis unavailable; cache, revocation and shared payment feed disabled", "error", err)
			redisClient = nil
		}
	} else {
		logger.Warn("REDIS_URI not set; cache, revocation and shared payment feed disabled")
	}

	var ledgerDB *sql.DB
	if cfg.PostgresURI != "" {
		logger.Info("Connecting to PostgreSQL...")
		ledgerDB, err = database.ConnectPostgres(ctx, cfg.PostgresURI)
		if err == nil {
			err = database.InitPostgresTables(ctx, ledgerDB)
		}
		if err != nil {
			logger.Warn("⚠️  payment ledger disabled", "error", err)
			if ledgerDB != nil {
				_ = ledgerDB.Close()
			}
			ledgerDB = nil
		}
	}

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	var revoked services.RevocationStore
	if redisClient != nil {
		revoked = services.NewRedisRevocationStore(redisClient)
	}
	sessions := services.NewSessionManager(cfg.JWTSecret, cfg.SessionDuration, cfg.IsProduction(), revoked)
	cache := services.NewCacheService(redisClient, cfg.CacheTTL)

	feedCtx, stopFeed := context.WithCancel(context.Background())
	defer stopFeed()
	feed := services.NewPaymentFeed(redisClient)
	go feed.Run(feedCtx)

	users := database.NewUserRepository(store)
	paymentDeps := services.PaymentDeps{
		Users:     users,
		Payments:  database.NewPaymentRepository(store),
		Publisher: feed,
		Metrics:   m,
	}
	if ledgerDB != nil {
		paymentDeps.Ledger = services.NewPaymentLedger(ledgerDB)
	}
	if cfg.StripeSecretKey != "" {
		paymentDeps.Intents = services.NewStripeIntents(cfg.StripeSecretKey)
	} else {
		logger.Warn("STRIPE_SECRET_KEY not set; payment intents disabled")
	}

	deps := handlers.Deps{
		Sessions:        sessions,
		Users:           users,
		Catalog:         services.NewCatalogService(database.NewPackageRepository(store), cache),
		Purchases:       database.NewPurchaseRepository(store),
		Bookmarks:       database.NewBookmarkRepository(store),
		Reviews:         services.NewReviewService(database.NewReviewRepository(store), cache),
		Payments:        services.NewPaymentService(paymentDeps),
		Experiences:     database.NewExperienceRepository(store),
		Feed:            feed,
		FeedConnections: m.FeedConnections,
		AllowedOrigins:  cfg.AllowedOrigins,
	}

	if cfg.CloudinaryName != "" && cfg.CloudinaryAPIKey != "" && cfg.CloudinaryAPISecret != "" {
		uploader, err := services.NewCloudinaryService(cfg.CloudinaryName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err != nil {
			logger.Warn("Failed to initialize Cloudinary; file uploads will not be available", "error", err)
		} else {
			deps.Uploader = uploader
			logger.Info("✅ Cloudinary service initialized")
		}
	} else {
		logger.Warn("Cloudinary credentials not found. File uploads will not be available")
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.ClientIP(cfg.TrustProxy))
	r.Use(chimw.Recoverer)
	r.Use(m.Middleware)
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// Production: in-process limits plus security headers. Elsewhere: the shared Redis window.
	if cfg.IsProduction() {
		for _, mw := range middleware.ProductionSecurity(cfg.AllowedHost) {
			r.Use(mw)
		}
		logger.Info("✅ Production security enabled (security headers, per-IP, session and payment rate limiting)")
	} else if redisClient != nil {
		r.Use(middleware.NewRedisRateLimiter(redisClient, 0, 0).Middleware)
	}

	h := handlers.New(deps)
	r.Get("/health", h.Health)
	r.Handle("/metrics", m.Handler())
	routes.SetupRoutes(r, h, cfg.AdminOnlyCatalog)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("🚀 GoExplore backend running", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Failed to start server", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}
	stopFeed()
	if err := store.Disconnect(shutdownCtx); err != nil {
		logger.Error("MongoDB disconnect failed", "error", err)
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if ledgerDB != nil {
		_ = ledgerDB.Close()
	}
	logger.Info("Server stopped")
}
