package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/orbis-edu/school-bi-api/api/swagger"
	"github.com/orbis-edu/school-bi-api/internal/handler"
	"github.com/orbis-edu/school-bi-api/internal/middleware"
	"github.com/orbis-edu/school-bi-api/internal/repository"
	"github.com/orbis-edu/school-bi-api/internal/service"
	"github.com/orbis-edu/school-bi-api/pkg/cache"
	"github.com/orbis-edu/school-bi-api/pkg/config"
	"github.com/orbis-edu/school-bi-api/pkg/database"
	"github.com/orbis-edu/school-bi-api/pkg/logger"
	corsmiddleware "github.com/orbis-edu/school-bi-api/pkg/middleware/cors"
	reqidmiddleware "github.com/orbis-edu/school-bi-api/pkg/middleware/requestid"
)

// @title School BI API
// @version 1.0.0
// @description Aggregate reporting API for the school management dashboards
// @BasePath /api/v1
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
		logr.Fatal("failed to connect to reporting store", zap.Error(err))
	}
	defer db.Close()

	metricsSvc := service.NewMetricsService()

	// Redis is optional. A missing cache means every request hits the
	// store directly; it is not a startup failure.
	var cacheSvc *service.CacheService
	if cfg.Dashboard.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, dashboards will be uncached", zap.Error(err))
		} else {
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			defer cacheRepo.Close()
			cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Dashboard.CacheTTL, logr, true)
		}
	}

	academicRepo := repository.NewAcademicRepository(db)
	metricRepo := repository.NewMetricRepository(db)
	financeRepo := repository.NewFinanceRepository(db)
	operationsRepo := repository.NewOperationsRepository(db)
	schoolRepo := repository.NewSchoolRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	examRepo := repository.NewExamRepository(db)
	userRepo := repository.NewUserRepository(db)

	academicSvc := service.NewAcademicService(academicRepo, metricRepo, cacheSvc, logr, service.AcademicServiceConfig{
		ApprovalGradeMin:      cfg.Reporting.ApprovalGradeMin,
		ApprovalAttendanceMin: cfg.Reporting.ApprovalAttendanceMin,
		EvolutionMonths:       cfg.Reporting.EvolutionMonths,
		GrowthFallback:        cfg.Reporting.GrowthFallbackDisplay,
		CacheTTL:              cfg.Dashboard.CacheTTL,
	})
	financeSvc := service.NewFinanceService(financeRepo, cacheSvc, logr, service.FinanceServiceConfig{
		RecentTransactions: cfg.Reporting.RecentTransactions,
		CacheTTL:           cfg.Dashboard.CacheTTL,
	})
	operationsSvc := service.NewOperationsService(operationsRepo, metricRepo, cacheSvc, logr, service.OperationsServiceConfig{
		ClassSeatCapacity: cfg.Reporting.ClassSeatCapacity,
		Operational:       cfg.Operational,
		CacheTTL:          cfg.Dashboard.CacheTTL,
	})
	overviewSvc := service.NewOverviewService(academicRepo, financeRepo, studentRepo, operationsRepo, cacheSvc, logr, cfg.Operational.OpenTicketStates)
	schoolMapSvc := service.NewSchoolMapService(schoolRepo, cacheSvc, logr)
	analyticsSvc := service.NewAnalyticsService(studentRepo, metricRepo, cacheSvc, logr, service.AnalyticsServiceConfig{
		HistoryMonths:    cfg.Reporting.EvolutionMonths,
		DropoutTargetPct: cfg.Reporting.DropoutTargetPct,
	})
	examSvc := service.NewExamService(examRepo, cacheSvc, logr)
	reportSvc := service.NewReportService(academicSvc, nil, nil, logr)
	authSvc := service.NewAuthService(userRepo, validator.New(), logr, service.AuthConfig{
		Secret: cfg.JWT.Secret,
		Expiry: cfg.JWT.Expiration,
		Issuer: cfg.JWT.Issuer,
	})

	dashboardHandler := handler.NewDashboardHandler(academicSvc, financeSvc, operationsSvc, overviewSvc, schoolMapSvc)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsSvc)
	examHandler := handler.NewExamHandler(examSvc)
	reportHandler := handler.NewReportHandler(reportSvc)
	authHandler := handler.NewAuthHandler(authSvc)

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
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(middleware.JWT(authSvc))
	{
		protected.GET("/dashboard/academic", dashboardHandler.Academic)
		protected.GET("/dashboard/financial", dashboardHandler.Financial)
		protected.GET("/dashboard/operational", dashboardHandler.Operational)
		protected.GET("/dashboard/overview", dashboardHandler.Overview)
		protected.GET("/dashboard/map", dashboardHandler.Map)
		protected.GET("/dashboard/exams", examHandler.Statistics)
		protected.GET("/dashboard/analytics", analyticsHandler.Metric)
		protected.GET("/reports/academic/export", reportHandler.AcademicExport)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logr.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logr.Error("forced shutdown", zap.Error(err))
	}
}
