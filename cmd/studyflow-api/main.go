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

	_ "github.com/jgraziolaVU/Rivard1TimeManagement/api/swagger"
	"github.com/jgraziolaVU/Rivard1TimeManagement/internal/handler"
	"github.com/jgraziolaVU/Rivard1TimeManagement/internal/middleware"
	"github.com/jgraziolaVU/Rivard1TimeManagement/internal/repository"
	"github.com/jgraziolaVU/Rivard1TimeManagement/internal/service"
	"github.com/jgraziolaVU/Rivard1TimeManagement/pkg/cache"
	"github.com/jgraziolaVU/Rivard1TimeManagement/pkg/config"
	"github.com/jgraziolaVU/Rivard1TimeManagement/pkg/database"
	"github.com/jgraziolaVU/Rivard1TimeManagement/pkg/jobs"
	"github.com/jgraziolaVU/Rivard1TimeManagement/pkg/logger"
	"github.com/jgraziolaVU/Rivard1TimeManagement/pkg/mailer"
	corsmiddleware "github.com/jgraziolaVU/Rivard1TimeManagement/pkg/middleware/cors"
	reqidmiddleware "github.com/jgraziolaVU/Rivard1TimeManagement/pkg/middleware/requestid"
	"github.com/jgraziolaVU/Rivard1TimeManagement/pkg/storage"
)

// @title StudyFlow API
// @version 1.0.0
// @description Syllabus parsing and study schedule generation
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to redis", "error", err)
	}
	defer redisClient.Close()

	uploadStore, err := storage.NewLocalStorage(cfg.Uploads.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init upload storage", "error", err)
	}

	validate := validator.New()
	metrics := service.NewMetricsService()
	mail := mailer.New(cfg.SMTP)

	deadlineRepo := repository.NewDeadlineRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	userRepo := repository.NewUserRepository(db)

	scheduleService := service.NewScheduleService(scheduleRepo, deadlineRepo, userRepo, redisClient, mail, metrics, logr, nil)

	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	emailQueue := jobs.NewQueue("schedule-email", func(ctx context.Context, job jobs.Job) error {
		if job.Type != service.EmailJobType {
			return fmt.Errorf("unknown job type %q", job.Type)
		}
		payload, ok := job.Payload.(service.EmailJobPayload)
		if !ok {
			return fmt.Errorf("unexpected payload %T for job %s", job.Payload, job.ID)
		}
		return scheduleService.SendScheduleEmail(ctx, payload.Email)
	}, jobs.QueueConfig{Workers: 2, Logger: logr})
	emailQueue.Start(rootCtx)
	defer emailQueue.Stop()

	plannerService := service.NewPlannerService(deadlineRepo, scheduleRepo, userRepo, scheduleService, emailQueue, metrics, validate, logr, nil)
	deadlineService := service.NewDeadlineService(deadlineRepo, plannerService, validate, logr)
	authService := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		TokenSecret: cfg.JWT.Secret,
		TokenExpiry: cfg.JWT.Expiration,
	})

	digest := service.NewDigestService(scheduleRepo, scheduleService, cfg.Digest.CronSpec, cfg.Digest.ReminderCron, logr)
	if cfg.Digest.Enabled {
		if err := digest.Start(rootCtx); err != nil {
			logr.Sugar().Fatalw("failed to start mail jobs", "error", err)
		}
		defer digest.Stop()
	}

	go runMaintenance(rootCtx, uploadStore, scheduleRepo, cfg, logr)

	uploadHandler := handler.NewUploadHandler(plannerService, uploadStore, cfg.Uploads.MaxFileSizeBytes, logr)
	scheduleHandler := handler.NewScheduleHandler(scheduleService)
	deadlineHandler := handler.NewDeadlineHandler(deadlineService)
	authHandler := handler.NewAuthHandler(authService)
	metricsHandler := handler.NewMetricsHandler(metrics, db, redisClient)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/upload", uploadHandler.Upload)

		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		schedules := api.Group("/schedules")
		{
			schedules.GET("/:email", scheduleHandler.Get)
			schedules.GET("/:email/summary", scheduleHandler.Summary)
			schedules.GET("/:email/export.pdf", scheduleHandler.ExportPDF)
			schedules.GET("/:email/export.ics", scheduleHandler.ExportICS)
			schedules.POST("/:email/email", scheduleHandler.SendEmail)
		}

		deadlines := api.Group("/deadlines")
		{
			deadlines.GET("", deadlineHandler.List)
			deadlines.GET("/export.csv", deadlineHandler.ExportCSV)

			// Mutations require an account token.
			protected := deadlines.Group("", middleware.JWT(authService))
			protected.POST("", deadlineHandler.Create)
			protected.PUT("/:id", deadlineHandler.Update)
			protected.DELETE("/:id", deadlineHandler.Delete)
		}
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
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

	logr.Sugar().Infow("shutting down")
	rootCancel()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}

// runMaintenance prunes syllabus files past the retention TTL and schedules
// nobody has refreshed in a month, on a shared timer.
func runMaintenance(ctx context.Context, store *storage.LocalStorage, schedules *repository.ScheduleRepository, cfg *config.Config, logr *zap.Logger) {
	ticker := time.NewTicker(cfg.Uploads.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := store.CleanupOlderThan(cfg.Uploads.RetentionTTL)
			if err != nil {
				logr.Warn("upload cleanup failed", zap.Error(err))
			} else if len(removed) > 0 {
				logr.Info("removed expired uploads", zap.Int("count", len(removed)))
			}

			stale, err := schedules.DeleteStale(ctx, time.Now().UTC().Add(-cfg.Retention.StaleScheduleTTL))
			if err != nil {
				logr.Warn("stale schedule cleanup failed", zap.Error(err))
			} else if stale > 0 {
				logr.Info("removed stale schedules", zap.Int64("count", stale))
			}
		}
	}
}
