package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/ppdb-pengumuman-api/api/swagger"
	"github.com/noah-isme/ppdb-pengumuman-api/internal/handler"
	"github.com/noah-isme/ppdb-pengumuman-api/internal/middleware"
	"github.com/noah-isme/ppdb-pengumuman-api/internal/models"
	"github.com/noah-isme/ppdb-pengumuman-api/internal/repository"
	"github.com/noah-isme/ppdb-pengumuman-api/internal/service"
	"github.com/noah-isme/ppdb-pengumuman-api/pkg/cache"
	"github.com/noah-isme/ppdb-pengumuman-api/pkg/config"
	"github.com/noah-isme/ppdb-pengumuman-api/pkg/database"
	"github.com/noah-isme/ppdb-pengumuman-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/ppdb-pengumuman-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/ppdb-pengumuman-api/pkg/middleware/requestid"
)

// @title PPDB Pengumuman API
// @version 1.0.0
// @description Admission announcement service for zoning-based school placement
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
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close()

	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Dashboard.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Fatal("failed to connect redis", zap.Error(err))
		}
		cacheRepo := repository.NewCacheRepository(redisClient, logr)
		defer cacheRepo.Close() //nolint:errcheck
		cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Dashboard.CacheTTL, logr, true)
	}

	registrationRepo := repository.NewRegistrationRepository(db)
	quotaRepo := repository.NewQuotaRepository(db)
	periodRepo := repository.NewPeriodRepository(db)
	schoolRepo := repository.NewSchoolRepository(db)
	studentRepo := repository.NewStudentRepository(db)

	validate := validator.New()

	authSvc := service.NewAuthService(cfg.JWT.Secret, cfg.JWT.Expiration)
	scheduleSvc := service.NewScheduleService(cfg.Schedule, authSvc, logr)
	admissionSvc := service.NewAdmissionService(registrationRepo, periodRepo, quotaRepo, cacheSvc, metricsSvc, validate, logr)
	announcementSvc := service.NewAnnouncementService(registrationRepo, periodRepo, logr)
	dashboardSvc := service.NewDashboardService(registrationRepo, studentRepo, schoolRepo, quotaRepo, periodRepo, cacheSvc, logr)
	reportSvc := service.NewReportService(registrationRepo, metricsSvc, cfg.Export.SheetName, logr)

	admissionHandler := handler.NewAdmissionHandler(admissionSvc)
	announcementHandler := handler.NewAnnouncementHandler(announcementSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	reportHandler := handler.NewReportHandler(reportSvc, announcementSvc, cfg.Export.Filename)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(middleware.WithResponseMeta())

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
	pengumuman := api.Group("/pengumuman")
	pengumuman.Use(middleware.JWT(authSvc))

	pengumuman.POST("/set-kelulusan",
		middleware.RequireRoles(models.RoleJuniorAdmin, models.RoleDepartmentAdmin),
		middleware.AnnouncementWindow(scheduleSvc),
		admissionHandler.Decide)

	pengumuman.GET("/zonasi/:id",
		middleware.RequireRoles(models.RoleDepartmentAdmin),
		announcementHandler.Zoning)

	pengumuman.GET("/kelulusan/:id",
		middleware.RequireRoles(models.RoleJuniorAdmin, models.RoleDepartmentAdmin),
		announcementHandler.Outcomes)

	pengumuman.GET("/kuota-pendaftar",
		middleware.RequireRoles(models.RoleStudent, models.RoleDepartmentAdmin),
		dashboardHandler.SchoolApplicants)

	pengumuman.GET("/laporan-pendaftaran",
		middleware.RequireRoles(models.RoleJuniorAdmin, models.RoleDepartmentAdmin),
		reportHandler.Download)

	pengumuman.GET("/dashboard-sd/:id",
		middleware.RequireRoles(models.RoleElementaryAdmin, models.RoleDepartmentAdmin),
		dashboardHandler.Elementary)

	pengumuman.GET("/dashboard-smp/:id",
		middleware.RequireRoles(models.RoleJuniorAdmin, models.RoleDepartmentAdmin),
		dashboardHandler.Junior)

	pengumuman.GET("/dashboard-dinas/:id",
		middleware.RequireRoles(models.RoleDepartmentAdmin),
		dashboardHandler.District)

	pengumuman.GET("/pendaftar-per-sekolah/:id",
		middleware.RequireRoles(models.RoleDepartmentAdmin),
		dashboardHandler.TopSchools)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
