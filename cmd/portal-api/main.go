package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/northside-portal/portal-api/api/swagger"
	"github.com/northside-portal/portal-api/internal/handler"
	"github.com/northside-portal/portal-api/internal/middleware"
	"github.com/northside-portal/portal-api/internal/repository"
	"github.com/northside-portal/portal-api/internal/service"
	"github.com/northside-portal/portal-api/pkg/cache"
	"github.com/northside-portal/portal-api/pkg/config"
	"github.com/northside-portal/portal-api/pkg/database"
	"github.com/northside-portal/portal-api/pkg/logger"
	corsmiddleware "github.com/northside-portal/portal-api/pkg/middleware/cors"
	reqidmiddleware "github.com/northside-portal/portal-api/pkg/middleware/requestid"
)

// @title Northside Portal API
// @version 1.0.0
// @description Student portal backend: flex registration, Hoofbeat, events, grades, attendance
// @BasePath /api
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	metricsSvc := service.NewMetricsService()

	var cacheRepo service.CacheRepository
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, running without cache", "error", err)
		} else {
			repo := repository.NewCacheRepository(redisClient, logr)
			defer repo.Close() //nolint:errcheck
			cacheRepo = repo
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.FlexTTL, logr, cacheRepo != nil)

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	flexRepo := repository.NewFlexRepository(db, cfg.Flex.CommitRetries, cfg.Flex.RetryBackoff)
	flexRepo.Instrument(metricsSvc.RecordCommitRetry, metricsSvc.ObserveDBQuery)
	articleRepo := repository.NewArticleRepository(db)
	eventRepo := repository.NewEventRepository(db)
	gradeRepo := repository.NewGradeRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		TokenSecret: cfg.JWT.Secret,
		TokenExpiry: cfg.JWT.Expiration,
		Issuer:      cfg.JWT.Issuer,
	})
	flexSvc := service.NewFlexService(flexRepo, cacheSvc, cfg.Cache.FlexTTL, logr)
	hoofbeatSvc := service.NewHoofbeatService(articleRepo, cacheSvc, cfg.Cache.HoofbeatTTL, logr)
	eventSvc := service.NewEventService(eventRepo, logr)
	gradeSvc := service.NewGradeService(gradeRepo, logr)
	attendanceSvc := service.NewAttendanceService(attendanceRepo, logr)
	profileSvc := service.NewProfileService(userRepo, logr)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.RegisterRoutes(r, cfg.APIPrefix, handler.Handlers{
		Auth:       handler.NewAuthHandler(authSvc),
		Flex:       handler.NewFlexHandler(flexSvc),
		Hoofbeat:   handler.NewHoofbeatHandler(hoofbeatSvc),
		Events:     handler.NewEventHandler(eventSvc),
		Grades:     handler.NewGradeHandler(gradeSvc),
		Attendance: handler.NewAttendanceHandler(attendanceSvc),
		Profile:    handler.NewProfileHandler(profileSvc),
	}, authSvc)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
