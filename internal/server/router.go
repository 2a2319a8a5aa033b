package server

import (
  "github.com/gin-contrib/cors"
  "github.com/gin-gonic/gin"
  "go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

  "github.com/openlearn/pulse-backend/internal/handlers"
  "github.com/openlearn/pulse-backend/internal/middleware"
)

type RouterConfig struct {
  IndicatorHandler *handlers.IndicatorHandler
  AuthMiddleware   *middleware.AuthMiddleware
  AllowOrigins     []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()
  router.Use(otelgin.Middleware("pulse-backend"))

  allowOrigins := cfg.AllowOrigins
  if len(allowOrigins) == 0 {
    allowOrigins = []string{"http://localhost:3000"}
  }
  router.Use(cors.New(cors.Config{
    AllowOrigins:     allowOrigins,
    AllowMethods:     []string{"GET", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

  // Public
  router.GET("/healthcheck", handlers.HealthCheck)

  // Protected
  api := router.Group("/api")
  api.Use(cfg.AuthMiddleware.RequireAuth())
  api.GET("/window", cfg.IndicatorHandler.GetWindow)
  api.GET("/cohort", cfg.IndicatorHandler.GetCohort)
  api.GET("/scores", cfg.IndicatorHandler.GetScores)
  api.GET("/grades", cfg.IndicatorHandler.GetGrades)

  return router
}
