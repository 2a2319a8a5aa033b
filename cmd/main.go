package main

import (
  "context"
  "fmt"
  "os"
  "strings"
  "time"

  "github.com/openlearn/pulse-backend/internal/clients/lrs"
  "github.com/openlearn/pulse-backend/internal/clients/redis"
  "github.com/openlearn/pulse-backend/internal/db"
  "github.com/openlearn/pulse-backend/internal/handlers"
  "github.com/openlearn/pulse-backend/internal/indicators"
  "github.com/openlearn/pulse-backend/internal/middleware"
  "github.com/openlearn/pulse-backend/internal/observability"
  "github.com/openlearn/pulse-backend/internal/pkg/logger"
  "github.com/openlearn/pulse-backend/internal/repos"
  "github.com/openlearn/pulse-backend/internal/server"
  "github.com/openlearn/pulse-backend/internal/services"
  "github.com/openlearn/pulse-backend/internal/utils"
)

func main() {
  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Tracing (optional)
  shutdownOTel := observability.InitOTel(context.Background(), log, observability.OtelConfig{
    ServiceName: "pulse-backend",
    Environment: logMode,
  })
  if shutdownOTel != nil {
    defer func() {
      ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
      defer cancel()
      _ = shutdownOTel(ctx)
    }()
  }

  // Env
  log.Info("Loading environment variables...")
  jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
  preferredLanguage := utils.GetEnv("STATEMENT_LANGUAGE", "en-US", log)
  cacheTTL := utils.GetEnvAsInt("INDICATOR_CACHE_TTL", 300, log)
  thresholds := indicators.Thresholds{
    SlidingWindowMin: utils.GetEnvAsInt("SLIDING_WINDOW_MIN", 15, log),
    ActiveActionsMin: utils.GetEnvAsInt("ACTIVE_ACTIONS_MIN", 6, log),
    DynamicCohortMin: utils.GetEnvAsInt("DYNAMIC_COHORT_MIN", 3, log),
  }

  // Postgres (experience index)
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Error("Postgres init failed", "error", err)
    os.Exit(1)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Warn("Postgres auto migration failed", "error", err)
  }
  thePG := postgresService.DB()

  // Repos
  log.Info("Setting up repos...")
  experienceRepo := repos.NewExperienceRepo(thePG, log)

  // Clients
  log.Info("Setting up clients...")
  lrsClient, err := lrs.NewClient(log, lrs.Config{
    BaseURL:      utils.GetEnv("LRS_BASE_URL", "http://localhost:8200", log),
    Username:     utils.GetEnv("LRS_AUTH_BASIC_USERNAME", "", log),
    Password:     utils.GetEnv("LRS_AUTH_BASIC_PASSWORD", "", log),
    Timeout:      time.Duration(utils.GetEnvAsInt("LRS_TIMEOUT", 30, log)) * time.Second,
    MaxRetries:   utils.GetEnvAsInt("LRS_MAX_RETRIES", 2, log),
    RetryBackoff: time.Second,
  })
  if err != nil {
    log.Error("Could not init LRS client", "error", err)
    os.Exit(1)
  }

  var indicatorCache redis.IndicatorCache
  if redisAddr := strings.TrimSpace(os.Getenv("REDIS_ADDR")); redisAddr != "" {
    indicatorCache, err = redis.NewIndicatorCache(log, redisAddr)
    if err != nil {
      log.Error("Could not init indicator cache", "error", err)
      os.Exit(1)
    }
    defer indicatorCache.Close()
  } else {
    log.Warn("REDIS_ADDR not set, indicator caching disabled")
  }

  // Services
  log.Info("Setting up services...")
  authService := services.NewAuthService(log, jwtSecretKey)
  indicatorService := services.NewIndicatorService(log, experienceRepo, lrsClient, indicatorCache, services.IndicatorConfig{
    Thresholds:        thresholds,
    PreferredLanguage: preferredLanguage,
    CacheTTL:          time.Duration(cacheTTL) * time.Second,
    FetchConcurrency:  utils.GetEnvAsInt("LRS_FETCH_CONCURRENCY", 4, log),
  })

  // Handlers
  log.Info("Setting up handlers...")
  indicatorHandler := handlers.NewIndicatorHandler(log, indicatorService)

  // Middleware
  authMiddleware := middleware.NewAuthMiddleware(log, authService)

  // Router
  log.Info("Setting up router...")
  allowOrigins := strings.Split(utils.GetEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000", log), ",")
  router := server.NewRouter(server.RouterConfig{
    IndicatorHandler: indicatorHandler,
    AuthMiddleware:   authMiddleware,
    AllowOrigins:     allowOrigins,
  })

  port := utils.GetEnv("PORT", "8080", log)
  log.Info("Server listening", "port", port)
  if err := router.Run(":" + port); err != nil {
    log.Error("Server failed", "error", err)
    os.Exit(1)
  }
}
