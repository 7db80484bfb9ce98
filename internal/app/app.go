package app

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"storehouse/internal/cache"
	"storehouse/internal/config"
	"storehouse/internal/handlers"
	"storehouse/internal/middleware"
	"storehouse/internal/pdf"
	"storehouse/internal/repositories"
	"storehouse/internal/routes"
	"storehouse/internal/services"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	_ "storehouse/docs"
)

func Run() {
	cfg := config.LoadConfig()

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("Ошибка подключения к БД: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка закрытия БД: %v", err)
		}
	}()

	// === Redis ===
	store := cache.NewRedisStore(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	defer store.Close()
	{
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			log.Fatal("Ошибка подключения к Redis: ", err)
		}
	}

	middleware.SetJWTKey([]byte(cfg.Auth.JWTSecret))

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	passwordRepo := repositories.NewPasswordRepository(db)
	sessionRepo := repositories.NewSessionRepository(db)
	loginLogRepo := repositories.NewLoginLogRepository(db)
	roleRepo := repositories.NewRoleRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	productRepo := repositories.NewProductRepository(db)
	stockRepo := repositories.NewStockRepository(db)

	// === Services ===
	authService := services.NewAuthService(
		cfg.Auth.BcryptCost,
		time.Duration(cfg.Auth.AccessTTLMinutes)*time.Minute,
	)
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)
	verificationService := services.NewVerificationService(store, emailService, userRepo, cfg.Verification)
	userService := services.NewUserService(userRepo, passwordRepo, authService, verificationService)
	sessionService := services.NewSessionService(
		sessionRepo, loginLogRepo, userRepo, passwordRepo, authService,
		time.Duration(cfg.Auth.SessionTTLDays)*24*time.Hour,
	)
	roleService := services.NewRoleService(roleRepo)
	categoryService := services.NewCategoryService(categoryRepo)
	productService := services.NewProductService(productRepo)
	stockService := services.NewStockService(stockRepo)

	pdfGen := pdf.NewReportGenerator(cfg.Files.RootDir, cfg.Files.FontPath)

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(userService, sessionService)
	verifyHandler := handlers.NewVerifyHandler(verificationService)
	userHandler := handlers.NewUserHandler(userService, sessionService)
	roleHandler := handlers.NewRoleHandler(roleService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	productHandler := handlers.NewProductHandler(productService)
	stockHandler := handlers.NewStockHandler(stockService, pdfGen)

	// === Gin ===
	router := gin.Default()
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(
		router,
		authHandler,
		verifyHandler,
		userHandler,
		roleHandler,
		categoryHandler,
		productHandler,
		stockHandler,
		sessionRepo,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Сервер запущен на %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("Ошибка запуска сервера: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
