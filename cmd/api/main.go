package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/VISWAJIT-PS/photo-lens-connect-sub001/api/swagger"
	"github.com/VISWAJIT-PS/photo-lens-connect-sub001/internal/handler"
	"github.com/VISWAJIT-PS/photo-lens-connect-sub001/internal/middleware"
	"github.com/VISWAJIT-PS/photo-lens-connect-sub001/internal/models"
	"github.com/VISWAJIT-PS/photo-lens-connect-sub001/internal/repository"
	"github.com/VISWAJIT-PS/photo-lens-connect-sub001/internal/service"
	rediscache "github.com/VISWAJIT-PS/photo-lens-connect-sub001/pkg/cache"
	"github.com/VISWAJIT-PS/photo-lens-connect-sub001/pkg/config"
	"github.com/VISWAJIT-PS/photo-lens-connect-sub001/pkg/database"
	"github.com/VISWAJIT-PS/photo-lens-connect-sub001/pkg/logger"
	corsmiddleware "github.com/VISWAJIT-PS/photo-lens-connect-sub001/pkg/middleware/cors"
	reqidmiddleware "github.com/VISWAJIT-PS/photo-lens-connect-sub001/pkg/middleware/requestid"
	"github.com/VISWAJIT-PS/photo-lens-connect-sub001/pkg/storage"
)

// @title Photo Lens Connect API
// @version 1.0.0
// @description Booking and delivery backend for the photography marketplace
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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

	var cacheSvc *service.CacheService
	if cfg.Schedule.CacheEnabled {
		redisClient, err := rediscache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, projection cache disabled", "error", err)
		} else {
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Schedule.CacheTTL, logr, true)
			defer cacheRepo.Close() //nolint:errcheck
		}
	}

	photoStore, err := storage.NewLocalStorage(cfg.Photos.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init photo storage", "error", err)
	}
	signer := storage.NewSignedURLSigner(cfg.Photos.SignedURLSecret, cfg.Photos.SignedURLTTL)

	bookingRepo := repository.NewBookingRepository(db)
	availabilityRepo := repository.NewAvailabilityRepository(db)
	blockedRepo := repository.NewBlockedDateRepository(db)
	photographerRepo := repository.NewPhotographerRepository(db)
	rentalRepo := repository.NewRentalRepository(db)
	photoRepo := repository.NewPhotoRepository(db)
	userRepo := repository.NewUserRepository(db)

	authSvc := service.NewAuthService(userRepo, nil, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             "photo-lens-connect",
	})
	bookingSvc := service.NewBookingService(bookingRepo, cacheSvc, nil, logr, cfg.Booking.ConflictCheck)
	scheduleSvc := service.NewScheduleService(bookingRepo, cacheSvc, cfg.Schedule.CacheTTL, logr)
	availabilitySvc := service.NewAvailabilityService(availabilityRepo, blockedRepo, cacheSvc, nil, logr)
	photographerSvc := service.NewPhotographerService(photographerRepo, nil, logr)
	rentalSvc := service.NewRentalService(rentalRepo, nil, logr)
	photoSvc := service.NewPhotoService(photoRepo, photoStore, signer, nil, logr)
	var exportSvc *service.ExportService
	if cfg.Exports.Enabled {
		exportStore, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
		if err != nil {
			logr.Sugar().Fatalw("failed to init export storage", "error", err)
		}
		exportSvc = service.NewExportService(bookingRepo, exportStore, logr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var statsSvc *service.StatsService
	if cfg.Stats.RefreshEnabled {
		statsSvc = service.NewStatsService(photoRepo, 2, cfg.Stats.WorkerRetries, cfg.Stats.RefreshInterval, logr)
		statsSvc.Start(ctx)
		defer statsSvc.Stop()
	}

	authHandler := handler.NewAuthHandler(authSvc)
	bookingHandler := handler.NewBookingHandler(bookingSvc, exportSvc)
	scheduleHandler := handler.NewScheduleHandler(scheduleSvc)
	availabilityHandler := handler.NewAvailabilityHandler(availabilitySvc)
	photographerHandler := handler.NewPhotographerHandler(photographerSvc)
	rentalHandler := handler.NewRentalHandler(rentalSvc)
	photoHandler := handler.NewPhotoHandler(photoSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/logout", middleware.JWT(authSvc), authHandler.Logout)
		auth.PUT("/password", middleware.JWT(authSvc), authHandler.ChangePassword)
		auth.GET("/me", middleware.JWT(authSvc), authHandler.Me)
	}

	photographers := api.Group("/photographers")
	{
		photographers.GET("", photographerHandler.List)
		photographers.GET("/:id", photographerHandler.Get)
		photographers.POST("", middleware.JWT(authSvc), middleware.RequireRoles(models.RoleAdmin, models.RolePhotographer), photographerHandler.Create)
		photographers.PUT("/:id", middleware.JWT(authSvc), middleware.RequireRoles(models.RoleAdmin, models.RolePhotographer), photographerHandler.Update)

		photographers.POST("/:id/favorite", middleware.JWT(authSvc), photographerHandler.AddFavorite)
		photographers.DELETE("/:id/favorite", middleware.JWT(authSvc), photographerHandler.RemoveFavorite)

		schedule := photographers.Group("/:id/schedule", middleware.JWT(authSvc))
		{
			schedule.GET("/month", scheduleHandler.Month)
			schedule.GET("/week", scheduleHandler.Week)
			schedule.GET("/day", scheduleHandler.Day)
			schedule.GET("/tabs", scheduleHandler.Tabs)
		}

		photographers.GET("/:id/availability", middleware.JWT(authSvc), availabilityHandler.ListSlots)
		photographers.GET("/:id/blocked-dates", middleware.JWT(authSvc), availabilityHandler.ListBlockedDates)
	}

	api.GET("/favorites", middleware.JWT(authSvc), photographerHandler.ListFavorites)

	bookings := api.Group("/bookings", middleware.JWT(authSvc))
	{
		bookings.GET("", bookingHandler.List)
		if cfg.Exports.Enabled {
			bookings.GET("/export", middleware.RequireRoles(models.RoleAdmin, models.RolePhotographer), bookingHandler.Export)
		}
		bookings.GET("/:id", bookingHandler.Get)
		bookings.POST("", bookingHandler.Create)
		bookings.PUT("/:id", bookingHandler.Update)
		bookings.DELETE("/:id", middleware.RequireRoles(models.RoleAdmin, models.RolePhotographer), bookingHandler.Delete)
		bookings.POST("/:id/approve", middleware.RequireRoles(models.RoleAdmin, models.RolePhotographer), bookingHandler.Approve)
		bookings.POST("/:id/reject", middleware.RequireRoles(models.RoleAdmin, models.RolePhotographer), bookingHandler.Reject)
		bookings.POST("/:id/drop", middleware.RequireRoles(models.RoleAdmin, models.RolePhotographer), bookingHandler.Drop)
		bookings.POST("/:id/complete", middleware.RequireRoles(models.RoleAdmin, models.RolePhotographer), bookingHandler.Complete)
	}

	availability := api.Group("/availability", middleware.JWT(authSvc), middleware.RequireRoles(models.RoleAdmin, models.RolePhotographer))
	{
		availability.POST("", availabilityHandler.AddSlot)
		availability.PUT("/:id", availabilityHandler.UpdateSlot)
		availability.POST("/:id/toggle", availabilityHandler.ToggleSlot)
		availability.DELETE("/:id", availabilityHandler.DeleteSlot)
	}

	blockedDates := api.Group("/blocked-dates", middleware.JWT(authSvc), middleware.RequireRoles(models.RoleAdmin, models.RolePhotographer))
	{
		blockedDates.POST("", availabilityHandler.BlockDate)
		blockedDates.DELETE("/:id", availabilityHandler.UnblockDate)
	}

	rentals := api.Group("/rentals", middleware.JWT(authSvc))
	{
		rentals.GET("", rentalHandler.List)
		rentals.GET("/:id", rentalHandler.Get)
		rentals.POST("", rentalHandler.Create)
		rentals.POST("/:id/activate", middleware.RequireRoles(models.RoleAdmin), rentalHandler.Activate)
		rentals.POST("/:id/return", middleware.RequireRoles(models.RoleAdmin), rentalHandler.Return)
		rentals.POST("/:id/cancel", rentalHandler.Cancel)
	}

	events := api.Group("/events", middleware.JWT(authSvc), middleware.RequireRoles(models.RoleAdmin, models.RolePhotographer))
	{
		events.POST("", photoHandler.CreateEvent)
		events.GET("/:id", photoHandler.GetEvent)
		events.GET("/:id/photos", photoHandler.ListPhotos)
		events.POST("/:id/photos", photoHandler.UploadPhoto)
	}

	photos := api.Group("/photos")
	{
		photos.POST("/:id/link", middleware.JWT(authSvc), photoHandler.IssueLink)
		photos.GET("/download", middleware.OptionalJWT(authSvc), photoHandler.Download)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}
