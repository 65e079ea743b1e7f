package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "backend/api/swagger" // swagger docs
	"backend/internal/config"
	"backend/internal/database"
	"backend/internal/handler"
	"backend/internal/middleware"
	"backend/internal/notifier"
	"backend/internal/repository"
	"backend/internal/service"
	"backend/internal/websocket"
	"backend/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title           Municipal Citizen Services API
// @version         1.0
// @description     Citizen accounts, municipal tax records, and complaint tracking.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	cfg := config.Load()

	zapLogger, err := logger.Init(logger.ConfigFromEnv())
	if err != nil {
		log.Fatalf("Logger initialization failed: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	db, err := database.NewConnection(cfg.Database.DSN())
	if err != nil {
		zapLogger.Fatal("database connection failed", zap.Error(err))
	}
	zapLogger.Info("connected to PostgreSQL")

	// Realtime hub for the admin complaint feed
	wsHub := websocket.NewHub(zapLogger)
	go wsHub.Run()

	// Notification dispatcher (bounded queue, best-effort email)
	dispatcher := notifier.NewEmailDispatcher(
		cfg.Notifier.ResendAPIKey,
		cfg.Notifier.FromAddress,
		cfg.Notifier.AdminEmail,
		cfg.Notifier.QueueSize,
		cfg.Notifier.SendTimeout,
		zapLogger,
	)
	go dispatcher.Run()
	defer dispatcher.Close()

	// Set up dependencies (Repository -> Service -> Handler)
	txMgr := repository.NewTransactionManager(db)
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewUserRoleRepository(db)
	tokenRepo := repository.NewRefreshTokenRepository(db)
	taxRepo := repository.NewTaxRecordRepository(db)
	complaintRepo := repository.NewComplaintRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)

	accessService := service.NewAccessService(roleRepo, zapLogger)
	userService := service.NewUserService(userRepo, tokenRepo, roleRepo, accessService, txMgr)
	taxService := service.NewTaxService(taxRepo, userRepo, auditRepo, txMgr)
	complaintService := service.NewComplaintService(complaintRepo, userRepo, auditRepo, txMgr, dispatcher, wsHub, zapLogger)
	auditService := service.NewAuditService(auditRepo)
	statisticsService := service.NewStatisticsService(db)
	catalogService := service.NewCatalogService()

	// Initialize Handlers
	userHandler := handler.NewUserHandler(userService)
	taxHandler := handler.NewTaxHandler(taxService)
	complaintHandler := handler.NewComplaintHandler(complaintService)
	auditHandler := handler.NewAuditHandler(auditService)
	statisticsHandler := handler.NewStatisticsHandler(statisticsService)
	catalogHandler := handler.NewCatalogHandler(catalogService)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173"} // Frontend URL
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint (admin complaint feed)
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	// Register API Routes
	userHandler.RegisterRoutes(router.Group(""))
	taxHandler.RegisterRoutes(router.Group(""))
	complaintHandler.RegisterRoutes(router.Group(""))
	auditHandler.RegisterRoutes(router.Group(""))
	statisticsHandler.RegisterRoutes(router.Group(""))
	catalogHandler.RegisterRoutes(router.Group(""))

	srv := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Prune expired refresh tokens in the background.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := tokenRepo.DeleteExpired(ctx); err != nil {
					zapLogger.Warn("refresh token cleanup failed", zap.Error(err))
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		zapLogger.Info("server listening", zap.String("port", cfg.HTTP.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zapLogger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
