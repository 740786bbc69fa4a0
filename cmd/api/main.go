package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "backend/api/swagger" // swagger docs
	"backend/internal/database"
	"backend/internal/handler"
	"backend/internal/middleware"
	"backend/internal/realtime"
	"backend/internal/repository"
	"backend/internal/service"
	"backend/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// @title           Construction Project Management API
// @version         1.0
// @description     REST API for construction project, procurement, quality and financial management.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Debug().Msg("no configs/.env file found")
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("GIN_MODE") != "release" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	dsn := "postgres://" + envOr("DB_USER", "postgres") + ":" + envOr("DB_PASSWORD", "postgres") +
		"@" + envOr("DB_HOST", "localhost") + ":" + envOr("DB_PORT", "5432") +
		"/" + envOr("DB_NAME", "postgres") + "?sslmode=" + envOr("DB_SSLMODE", "disable")

	db, err := database.NewConnection(dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	log.Info().Msg("connected to PostgreSQL")

	blobs, err := storage.NewLocalStore(envOr("UPLOAD_DIR", "uploads"), envOr("UPLOAD_BASE_URL", "/uploads"))
	if err != nil {
		log.Fatal().Err(err).Msg("blob store init failed")
	}

	hub := realtime.NewHub()
	go hub.Run()

	// Dependencies: repository -> service -> handler
	txManager := repository.NewTransactionManager(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	financialService := service.NewFinancialService(db, invoiceRepo, paymentRepo, txManager)
	projectService := service.NewProjectService(db)
	taskService := service.NewTaskService(db, hub)
	contractService := service.NewContractService(db)
	rfqService := service.NewRFQService(db)
	milestoneService := service.NewMilestoneService(db)
	riskService := service.NewRiskService(db, txManager)
	resourceService := service.NewResourceService(db)
	jobCostService := service.NewJobCostService(db, txManager)
	procurementService := service.NewProcurementService(db, txManager)
	qualityService := service.NewQualityService(db, txManager)
	designService := service.NewDesignService(db, txManager, blobs)
	userService := service.NewUserService(db, txManager)
	reportService := service.NewReportService(db, financialService)

	handlers := []interface {
		RegisterRoutes(router *gin.RouterGroup)
	}{
		handler.NewUserHandler(userService),
		handler.NewProjectHandler(projectService),
		handler.NewTaskHandler(taskService),
		handler.NewContractHandler(contractService),
		handler.NewRFQHandler(rfqService),
		handler.NewFinancialHandler(financialService),
		handler.NewMilestoneHandler(milestoneService),
		handler.NewRiskHandler(riskService),
		handler.NewResourceHandler(resourceService),
		handler.NewJobCostHandler(jobCostService),
		handler.NewProcurementHandler(procurementService),
		handler.NewQualityHandler(qualityService),
		handler.NewDesignHandler(designService),
		handler.NewReportHandler(reportService),
	}

	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173"}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	router.Static("/uploads", envOr("UPLOAD_DIR", "uploads"))

	router.GET("/ws", func(c *gin.Context) {
		realtime.ServeWs(hub, c, middleware.GetJWTSecret())
	})

	for _, h := range handlers {
		h.RegisterRoutes(router.Group(""))
	}

	srv := &http.Server{
		Addr:    ":" + envOr("PORT", "8080"),
		Handler: router,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	if err := database.Close(db); err != nil {
		log.Error().Err(err).Msg("database close failed")
	}
	log.Info().Msg("server stopped")
}
