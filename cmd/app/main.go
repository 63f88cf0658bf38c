package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"nusaquest/internal/api"
	"nusaquest/internal/middleware"
	"nusaquest/internal/repository"
	"nusaquest/internal/service"
	"nusaquest/pkg/auth"
	"nusaquest/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	err = logger.Initialize(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	zapLogger := logger.Logger()

	repo, err := repository.New(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to initialize repository", zap.Error(err))
	}
	defer repo.Close()

	progressionService := service.NewProgressionService(repo)
	hintService := service.NewHintService(repo)
	rewardService := service.NewRewardService(repo)
	questService := service.NewQuestService(repo)
	stageService := service.NewStageService(repo)
	userService := service.NewUserService(repo)

	jwtAuth := auth.NewJWTAuth(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authorization := middleware.NewAuthorization(userService)

	router := gin.New()
	router.Use(gin.Recovery())

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{
		http.MethodHead,
		http.MethodGet,
		http.MethodPost,
		http.MethodPut,
		http.MethodPatch,
		http.MethodDelete,
	}
	config.AllowHeaders = []string{"*"}
	config.AllowCredentials = true
	config.MaxAge = 12 * time.Hour

	router.Use(cors.New(config))

	router.Static("/uploads", cfg.Uploads.Dir)

	a := router.Group("/api/v1")
	admin := a.Group("/admin")
	admin.Use(jwtAuth.AuthMiddleware(), authorization.AdminOnly())

	api.NewUserRoutes(a, userService, jwtAuth, cfg.Uploads.Dir)
	api.NewGameplayRoutes(a, progressionService, hintService, jwtAuth)
	api.NewQuestRoutes(a, admin, questService, cfg.Uploads.Dir)
	api.NewStageRoutes(a, admin, stageService)
	api.NewRewardRoutes(a, admin, rewardService, jwtAuth, cfg.Uploads.Dir)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	zapLogger.Info("Starting server", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		zapLogger.Fatal("Failed to start server", zap.Error(err))
	}
}
