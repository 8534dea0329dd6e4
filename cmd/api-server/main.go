package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	_ "github.com/openuni-dev/admission-auction-api/api/swagger"
	"github.com/openuni-dev/admission-auction-api/internal/engine"
	"github.com/openuni-dev/admission-auction-api/internal/handler"
	"github.com/openuni-dev/admission-auction-api/internal/middleware"
	"github.com/openuni-dev/admission-auction-api/internal/models"
	"github.com/openuni-dev/admission-auction-api/internal/repository"
	"github.com/openuni-dev/admission-auction-api/internal/service"
	"github.com/openuni-dev/admission-auction-api/pkg/cache"
	"github.com/openuni-dev/admission-auction-api/pkg/config"
	"github.com/openuni-dev/admission-auction-api/pkg/database"
	"github.com/openuni-dev/admission-auction-api/pkg/logger"
	corsmiddleware "github.com/openuni-dev/admission-auction-api/pkg/middleware/cors"
	reqidmiddleware "github.com/openuni-dev/admission-auction-api/pkg/middleware/requestid"
	"github.com/openuni-dev/admission-auction-api/pkg/storage"
)

// @title Admission Auction API
// @version 1.0.0
// @description Token-based course enrollment auction
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, snapshot cache disabled", "error", err)
		redisClient = nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	eng := engine.New(engine.Options{
		FeesPerUOC:      cfg.Auction.DefaultFeesPerUOC,
		TransferFeeRate: cfg.Auction.TransferFeeRate,
	})

	principalRepo := repository.NewPrincipalRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	metricsSvc := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.TTL, logr, cfg.Cache.Enabled)

	auditSvc := service.NewAuditService(auditRepo, logr, service.AuditConfig{
		Workers:    cfg.Audit.Workers,
		BufferSize: cfg.Audit.BufferSize,
		MaxRetries: cfg.Audit.MaxRetries,
	})
	auditSvc.Start(ctx)
	defer auditSvc.Stop()

	authSvc := service.NewAuthService(principalRepo, nil, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	roleSvc := service.NewRoleService(principalRepo, auditSvc, nil, logr)
	studentSvc := service.NewStudentService(eng, roleSvc, auditSvc, cacheSvc, nil, logr)
	courseSvc := service.NewCourseService(eng, roleSvc, auditSvc, cacheSvc, nil, logr)
	bidSvc := service.NewBidService(eng, auditSvc, cacheSvc, metricsSvc, nil, logr)
	enrollSvc := service.NewEnrollmentService(eng, roleSvc, auditSvc, cacheSvc, metricsSvc, logr)
	treasurySvc := service.NewTreasuryService(eng, roleSvc, auditSvc, cacheSvc, metricsSvc, nil, logr)

	files, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to prepare exports storage", "error", err)
	}
	signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)
	exportSvc := service.NewExportService(eng, roleSvc, files, signer, service.ExportConfig{
		APIPrefix: cfg.APIPrefix,
		ResultTTL: cfg.Exports.SignedURLTTL,
	}, logr)

	if err := bootstrapCOO(ctx, cfg, principalRepo, logr); err != nil {
		logr.Sugar().Fatalw("failed to bootstrap COO principal", "error", err)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(middleware.WithResponseMeta())

	authHandler := handler.NewAuthHandler(authSvc)
	roleHandler := handler.NewRoleHandler(roleSvc)
	studentHandler := handler.NewStudentHandler(studentSvc)
	courseHandler := handler.NewCourseHandler(courseSvc, enrollSvc)
	bidHandler := handler.NewBidHandler(bidSvc)
	treasuryHandler := handler.NewTreasuryHandler(treasurySvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	auditHandler := handler.NewAuditHandler(auditSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/exports/download", exportHandler.Download)

	protected := api.Group("", middleware.JWT(authSvc))
	protected.POST("/roles", roleHandler.Grant)
	protected.POST("/students", studentHandler.Admit)
	protected.GET("/students/:id", studentHandler.Get)
	protected.PUT("/settings/fees-per-uoc", treasuryHandler.SetFeesPerUOC)
	protected.GET("/settings/fees-per-uoc", treasuryHandler.GetFeesPerUOC)
	protected.POST("/fees/payments", treasuryHandler.PayFees)
	protected.POST("/transfers", treasuryHandler.Transfer)
	protected.POST("/withdrawals", treasuryHandler.Withdraw)
	protected.GET("/treasury/balance", treasuryHandler.Balance)
	protected.POST("/courses", courseHandler.Create)
	protected.GET("/courses/:id", courseHandler.Get)
	protected.PUT("/courses/:id", courseHandler.Modify)
	protected.GET("/courses/:id/bids", courseHandler.Bids)
	protected.POST("/courses/:id/bids", bidHandler.Place)
	protected.PUT("/courses/:id/bids", bidHandler.Modify)
	protected.POST("/courses/:id/close", courseHandler.Close)
	protected.GET("/courses/:id/export", exportHandler.Generate)
	protected.GET("/audit/events", auditHandler.List)

	addr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}

// bootstrapCOO seeds the top-authority principal on first start so that role
// grants have a root. A missing password skips bootstrapping entirely.
func bootstrapCOO(ctx context.Context, cfg *config.Config, repo *repository.PrincipalRepository, logr *zap.Logger) error {
	if cfg.Bootstrap.COOEmail == "" || cfg.Bootstrap.COOPassword == "" {
		logr.Sugar().Infow("COO bootstrap skipped, no credentials configured")
		return nil
	}

	_, err := repo.FindByEmail(ctx, cfg.Bootstrap.COOEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Bootstrap.COOPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	principal := &models.Principal{
		Email:        cfg.Bootstrap.COOEmail,
		PasswordHash: string(hash),
		Role:         models.RoleCOO,
	}
	if err := repo.Create(ctx, principal); err != nil {
		return err
	}
	logr.Sugar().Infow("COO principal bootstrapped", "email", cfg.Bootstrap.COOEmail)
	return nil
}
