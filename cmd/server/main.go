package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dorm-backend/internal/config"
	"dorm-backend/internal/database"
	"dorm-backend/internal/handler"
	"dorm-backend/internal/middleware"
	"dorm-backend/internal/repository"
	"dorm-backend/internal/service"
	"dorm-backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// 1. Load configuration
	cfg := config.LoadConfig()
	log.Println("Configuration loaded successfully")

	// 2. Initialize JWT utilities with config
	utils.InitJWT(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)

	// 3. Initialize database connection and schema
	db := database.Connect(cfg)
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// 4. Initialize repositories
	userRepo := repository.NewUserRepo(db)
	auditRepo := repository.NewAuditRepo(db)
	studentRepo := repository.NewStudentRepo(db)
	roomRepo := repository.NewRoomRepo(db)
	refRepo := repository.NewReferenceRepo(db)
	serviceRepo := repository.NewServiceRepo(db)
	contractTypeRepo := repository.NewContractTypeRepo(db)
	contractRepo := repository.NewContractRepo(db)
	paymentRepo := repository.NewPaymentRepo(db)

	// 5. Initialize services
	authService := service.NewAuthService(userRepo, auditRepo)
	studentService := service.NewStudentService(studentRepo)
	roomService := service.NewRoomService(roomRepo, refRepo, auditRepo)
	catalogService := service.NewCatalogService(serviceRepo, contractTypeRepo)
	contractService := service.NewContractService(db, contractRepo, roomRepo, studentRepo, serviceRepo, contractTypeRepo, paymentRepo, auditRepo)
	billingService := service.NewBillingService(db, paymentRepo, contractRepo, studentRepo, auditRepo)

	// 6. Start billing worker in goroutine
	worker := service.NewBillingWorker(billingService, contractService, cfg.Billing)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go worker.Start(ctx)

	// 7. Setup Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// 8. Setup Gin router
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 9. Register handlers
	paging := utils.PageOptions{
		DefaultLimit: cfg.Paging.DefaultLimit,
		MaxLimit:     cfg.Paging.MaxLimit,
	}
	authHandler := handler.NewAuthHandler(authService)
	studentHandler := handler.NewStudentHandler(studentService, paging)
	roomHandler := handler.NewRoomHandler(roomService, paging)
	catalogHandler := handler.NewCatalogHandler(catalogService, paging)
	contractHandler := handler.NewContractHandler(contractService, paging)
	paymentHandler := handler.NewPaymentHandler(billingService, paging)

	// 10. Define routes
	r.GET("/health", func(c *gin.Context) {
		utils.SuccessResponse(c, gin.H{
			"status":  "healthy",
			"service": "dorm-backend",
		})
	})

	// Auth routes (public)
	auth := r.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/logout", authHandler.Logout)
	}

	// Gateway webhook (public; the gateway cannot carry our JWT)
	r.POST("/payments/callback", paymentHandler.Callback)

	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware())
	{
		students := api.Group("/students")
		{
			students.GET("", studentHandler.List)
			students.GET("/:id", studentHandler.Get)
			students.POST("", middleware.RequireAdmin(), studentHandler.Create)
			students.PUT("/:id", middleware.RequireAdmin(), studentHandler.Update)
		}

		rooms := api.Group("/rooms")
		{
			rooms.GET("", roomHandler.List)
			rooms.GET("/:id", roomHandler.Get)
			rooms.POST("", middleware.RequireAdmin(), roomHandler.Create)
			rooms.PUT("/:id", middleware.RequireAdmin(), roomHandler.Update)
			rooms.DELETE("/:id", middleware.RequireAdmin(), roomHandler.Delete)
		}

		blocks := api.Group("/room-blocks")
		{
			blocks.GET("", roomHandler.ListBlocks)
			blocks.POST("", middleware.RequireAdmin(), roomHandler.CreateBlock)
		}

		types := api.Group("/room-types")
		{
			types.GET("", roomHandler.ListTypes)
			types.POST("", middleware.RequireAdmin(), roomHandler.CreateType)
		}

		services := api.Group("/services")
		{
			services.GET("", catalogHandler.ListServices)
			services.GET("/:id", catalogHandler.GetService)
			services.POST("", middleware.RequireAdmin(), catalogHandler.CreateService)
			services.PUT("/:id", middleware.RequireAdmin(), catalogHandler.UpdateService)
			services.DELETE("/:id", middleware.RequireAdmin(), catalogHandler.DeleteService)
		}

		contractTypes := api.Group("/contract-types")
		{
			contractTypes.GET("", catalogHandler.ListContractTypes)
			contractTypes.GET("/:id", catalogHandler.GetContractType)
			contractTypes.POST("", middleware.RequireAdmin(), catalogHandler.CreateContractType)
		}

		contracts := api.Group("/contracts")
		{
			contracts.GET("", contractHandler.List)
			contracts.GET("/:id", contractHandler.Get)
			contracts.POST("", contractHandler.Create)
			contracts.DELETE("/:id", middleware.RequireAdmin(), contractHandler.Delete)

			contracts.POST("/:id/confirm", middleware.RequireAdmin(), contractHandler.Confirm)
			contracts.POST("/:id/request-cancel", contractHandler.RequestCancel)
			contracts.POST("/:id/undo-cancel", contractHandler.UndoCancelRequest)
			contracts.POST("/:id/cancel", middleware.RequireAdmin(), contractHandler.Cancel)
			contracts.POST("/:id/check-in", contractHandler.CheckIn)
			contracts.POST("/:id/check-out", middleware.RequireAdmin(), contractHandler.CheckOut)

			contracts.POST("/:id/services", contractHandler.AddService)
			contracts.DELETE("/:id/services/:serviceId", contractHandler.RemoveService)
		}

		payments := api.Group("/payments")
		{
			payments.GET("", paymentHandler.List)
			payments.GET("/:id", paymentHandler.Get)
			payments.GET("/by-student/:code", paymentHandler.ListByStudent)
			payments.POST("/generate", middleware.RequireAdmin(), paymentHandler.Generate)
			payments.POST("/:id/transactions", middleware.RequireAdmin(), paymentHandler.Apply)
		}
	}

	// 11. Setup graceful shutdown
	go func() {
		log.Printf("Server starting on port %s", cfg.Server.Port)
		if err := r.Run(":" + cfg.Server.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	cancel()
	log.Println("Server exited")
}
