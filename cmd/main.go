package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"
	"go.uber.org/zap"

	"cozycomfort/internal/caching"
	"cozycomfort/internal/handlers"
	"cozycomfort/internal/jobs"
	"cozycomfort/internal/middleware"
	"cozycomfort/internal/models"
	"cozycomfort/internal/repositories"
	"cozycomfort/internal/services"
	"cozycomfort/pkg/database"
	"cozycomfort/pkg/validator"
)

const version = "1.0.0"

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		logger.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(ctx, databaseURL)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	if os.Getenv("SEED_DATA") == "true" {
		seedPassword := os.Getenv("SEED_PASSWORD")
		if seedPassword == "" {
			seedPassword = "password123"
		}
		if err := database.Seed(ctx, pool, seedPassword); err != nil {
			logger.Fatal("Failed to seed demo data", zap.Error(err))
		}
		logger.Info("demo data seeded")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = random.String(32) // Generate random secret for development
		logger.Warn("JWT_SECRET not set, using generated secret; sessions will not survive restarts")
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if s := os.Getenv("REDIS_DB"); s != "" {
		if db, err := strconv.Atoi(s); err == nil {
			redisDB = db
		}
	}

	accessTTL := durationEnv("ACCESS_TOKEN_TTL", 15*time.Minute)
	refreshTTL := durationEnv("REFRESH_TOKEN_TTL", 7*24*time.Hour)

	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)
	if err := cacheSvc.Ping(ctx); err != nil {
		logger.Warn("Redis not reachable at startup", zap.Error(err))
	}

	userRepo := repositories.NewUserRepo(pool)
	productRepo := repositories.NewProductRepo(pool)
	inventoryRepo := repositories.NewInventoryRepo(pool)
	dashboardRepo := repositories.NewDashboardRepo(pool)

	authSvc := services.NewAuthService(userRepo, cacheSvc, jwtSecret, accessTTL, refreshTTL)
	productSvc := services.NewProductService(pool)
	ledgerSvc := services.NewLedgerService(pool)
	orderSvc := services.NewOrderService(pool)
	dashboardSvc := services.NewDashboardService(dashboardRepo)

	authHandlers := handlers.NewAuthHandlers(authSvc)
	productHandlers := handlers.NewProductHandlers(productSvc)
	stockHandlers := handlers.NewStockHandlers(ledgerSvc)
	orderHandlers := handlers.NewOrderHandlers(orderSvc)
	dashboardHandlers := handlers.NewDashboardHandlers(dashboardSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc)

	lowStockThreshold := 10
	if s := os.Getenv("LOW_STOCK_THRESHOLD"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			lowStockThreshold = n
		}
	}
	lowStock := jobs.NewLowStockChecker(inventoryRepo, productRepo, logger, lowStockThreshold)
	scheduler, err := jobs.NewScheduler(lowStock, logger)
	if err != nil {
		logger.Fatal("Failed to create job scheduler", zap.Error(err))
	}
	scheduler.Start()
	defer scheduler.Stop()

	e := echo.New()
	e.Validator = validator.New()

	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Pre(echoMiddleware.RemoveTrailingSlash())

	e.GET("/health", healthHandlers.Liveness)
	e.GET("/health/ready", healthHandlers.Readiness)

	v1 := e.Group("/v1")

	auth := v1.Group("/auth")
	auth.POST("/login", authHandlers.Login)
	auth.POST("/refresh", authHandlers.Refresh)
	auth.POST("/logout", authHandlers.Logout)
	auth.GET("/session", authHandlers.Session)

	protected := v1.Group("")
	protected.Use(middleware.JWT(authSvc))

	protected.GET("/dashboard", dashboardHandlers.GetDashboard)
	protected.GET("/products", productHandlers.ListProducts)

	manufacturer := protected.Group("/manufacturer", middleware.RequireRole(models.RoleManufacturer))
	manufacturer.POST("/products", productHandlers.CreateProduct)
	manufacturer.PUT("/inventory", productHandlers.UpdateInventory)

	distributor := protected.Group("/distributor", middleware.RequireRole(models.RoleDistributor))
	distributor.POST("/orders", stockHandlers.OrderFromManufacturer)
	distributor.POST("/sellers", stockHandlers.AssignSeller)

	seller := protected.Group("/seller", middleware.RequireRole(models.RoleSeller))
	seller.POST("/stock-orders", stockHandlers.OrderFromDistributor)
	seller.POST("/orders", orderHandlers.CreateOrder)

	protected.PUT("/orders/:id/status", orderHandlers.UpdateOrderStatus,
		middleware.RequireRole(models.RoleManufacturer, models.RoleDistributor))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logger.Info("server starting", zap.String("version", version), zap.String("port", port))
	e.Logger.Fatal(e.Start(fmt.Sprintf(":%s", port)))
}

func durationEnv(name string, fallback time.Duration) time.Duration {
	if s := os.Getenv(name); s != "" {
		if d, err := time.ParseDuration(s); err == nil {
			return d
		}
	}
	return fallback
}
