package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver for migrations
	"go.uber.org/zap"

	"github.com/waypoint-hq/waypoint-engine/migrations"
	"github.com/waypoint-hq/waypoint-engine/pkg/auth"
	"github.com/waypoint-hq/waypoint-engine/pkg/cache"
	"github.com/waypoint-hq/waypoint-engine/pkg/config"
	"github.com/waypoint-hq/waypoint-engine/pkg/database"
	"github.com/waypoint-hq/waypoint-engine/pkg/handlers"
	"github.com/waypoint-hq/waypoint-engine/pkg/llm"
	"github.com/waypoint-hq/waypoint-engine/pkg/logging"
	"github.com/waypoint-hq/waypoint-engine/pkg/mcp"
	mcpauth "github.com/waypoint-hq/waypoint-engine/pkg/mcp/auth"
	"github.com/waypoint-hq/waypoint-engine/pkg/mcp/tools"
	"github.com/waypoint-hq/waypoint-engine/pkg/middleware"
	"github.com/waypoint-hq/waypoint-engine/pkg/repositories"
	"github.com/waypoint-hq/waypoint-engine/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Configuration loaded",
		zap.String("env", cfg.Env),
		zap.String("version", cfg.Version),
		zap.String("database", logging.SanitizeConnectionString(cfg.Database.ConnectionString())),
		zap.String("counselor_model", cfg.Counselor.Model),
		zap.Bool("strategist_available", cfg.Strategist.IsAvailable()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Migrations run over database/sql; the pgx pool serves the app.
	sqlDB, err := sql.Open("pgx", cfg.Database.ConnectionString())
	if err != nil {
		logger.Fatal("Failed to open migration connection", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, migrations.FS, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	if err := sqlDB.Close(); err != nil {
		logger.Warn("Failed to close migration connection", zap.Error(err))
	}

	db, err := database.NewConnection(ctx, &cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Response cache: Redis when configured, in-memory otherwise.
	var responseCache cache.Cache
	redisClient, err := database.NewRedisClient(ctx, &cfg.Redis)
	if err != nil {
		logger.Warn("Redis unavailable, using in-memory cache", zap.Error(err))
	}
	if redisClient != nil {
		responseCache = cache.NewRedisCache(redisClient, logger)
		defer func() { _ = redisClient.Close() }()
	} else {
		memCache := cache.NewMemoryCache(1000)
		memCache.StartCleanup(ctx, 10*time.Minute)
		responseCache = memCache
	}

	counselorOracle, err := llm.NewClient(&llm.Config{
		BaseURL: cfg.Counselor.BaseURL,
		Model:   cfg.Counselor.Model,
		APIKey:  cfg.Counselor.APIKey,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to create counselor client", zap.Error(err))
	}

	catalogRepo := repositories.NewCatalogRepository(db)
	collegeRepo := repositories.NewCollegeRepository(db)
	essayRepo := repositories.NewEssayRepository(db)
	taskRepo := repositories.NewTaskRepository(db)
	profileRepo := repositories.NewProfileRepository(db)
	conversationRepo := repositories.NewConversationRepository(db)
	ticketRepo := repositories.NewTicketRepository(db)

	researchService := services.NewResearchService(catalogRepo, counselorOracle, logger)
	syncService := services.NewSyncService(researchService, collegeRepo, essayRepo, taskRepo, logger)
	counselorService := services.NewCounselorService(&services.CounselorServiceConfig{
		Oracle:        counselorOracle,
		Sync:          syncService,
		Research:      researchService,
		Colleges:      collegeRepo,
		Essays:        essayRepo,
		Tasks:         taskRepo,
		Profiles:      profileRepo,
		Conversations: conversationRepo,
		Cache:         responseCache,
		ResearchTTL:   cfg.Cache.ResearchTTL(),
		Logger:        logger,
	})
	feedbackService := services.NewFeedbackService(
		ticketRepo,
		services.NewLogNotifier(cfg.Feedback.InboxAddress, logger),
		logger,
	)

	var strategistService services.StrategistService
	if cfg.Strategist.IsAvailable() {
		strategistOracle, err := llm.NewAnthropicClient(&llm.AnthropicConfig{
			APIKey:    cfg.Strategist.APIKey,
			Model:     cfg.Strategist.Model,
			MaxTokens: cfg.Strategist.MaxTokens,
			Timeout:   cfg.Strategist.Timeout(),
		}, logger)
		if err != nil {
			logger.Fatal("Failed to create strategist client", zap.Error(err))
		}
		strategistService = services.NewStrategistService(
			strategistOracle, collegeRepo, essayRepo, profileRepo, conversationRepo, logger)
	} else {
		logger.Info("Strategist oracle not configured; /api/chat/strategist disabled")
	}

	authService := auth.NewAuthService(&cfg.Auth, logger)
	authMiddleware := auth.NewMiddleware(authService, logger)

	mux := http.NewServeMux()

	handlers.NewHealthHandler(cfg, logger).RegisterRoutes(mux)
	handlers.NewChatHandler(counselorService, strategistService, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewCollegeHandler(syncService, researchService, responseCache, cfg.Cache.ResearchTTL(), logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewEssayHandler(syncService, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewFeedbackHandler(feedbackService, logger).RegisterRoutes(mux, authMiddleware)

	mcpServer := mcp.NewServer("waypoint-engine", cfg.Version, logger)
	tools.RegisterHealthTool(mcpServer.MCP(), cfg.Version)
	tools.RegisterCollegeTools(mcpServer.MCP(), &tools.CollegeToolDeps{
		Sync:     syncService,
		Research: researchService,
		Logger:   logger,
	})
	tools.RegisterStatusTool(mcpServer.MCP(), &tools.StatusToolDeps{
		Colleges: collegeRepo,
		Tasks:    taskRepo,
		Essays:   essayRepo,
		Logger:   logger,
	})
	mcpAuthMiddleware := mcpauth.NewMiddleware(authService, logger)
	handlers.NewMCPHandler(mcpServer, logger).RegisterRoutes(mux, mcpAuthMiddleware)

	server := &http.Server{
		Addr:              cfg.BindAddr + ":" + cfg.Port,
		Handler:           middleware.RequestLogger(logger)(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Starting waypoint-engine",
			zap.String("addr", server.Addr),
			zap.String("version", cfg.Version))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown failed", zap.Error(err))
	}
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "local" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
