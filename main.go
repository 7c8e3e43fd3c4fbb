package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"

	"storefront/config"
	"storefront/controllers"
	_ "storefront/docs"
	"storefront/middleware"
	"storefront/repositories"
	"storefront/routes"
	"storefront/services"
)

// @title Storefront API
// @description Demo storefront: catalog browsing, cart, checkout, and a simulated BTC payment flow.
// @version 1.0
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	config.LoadConfig()

	if config.AppConfig.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	ctx := context.Background()
	storage := connectStorage(ctx)

	catalog, err := services.NewCatalogService()
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	cartSvc := services.NewCartService(storage)
	orderSvc := services.NewOrderService(storage, config.AppConfig.TaxRate)
	paymentSvc := services.NewPaymentService(storage, orderSvc, cartSvc,
		config.AppConfig.BTCWallet, config.AppConfig.BTCRate)
	authSvc := services.NewAuthService(storage)

	router := gin.Default()
	router.Use(middleware.CORSMiddleware())
	routes.SetupRoutes(router, routes.Controllers{
		Auth:    controllers.NewAuthController(authSvc),
		Product: controllers.NewProductController(catalog),
		Cart:    controllers.NewCartController(cartSvc, catalog),
		Order:   controllers.NewOrderController(orderSvc, cartSvc, authSvc),
		Payment: controllers.NewPaymentController(paymentSvc, orderSvc),
	})

	port := ":" + config.AppConfig.Port
	log.Printf("Server starting on port %s", port)
	log.Printf("Swagger UI: http://localhost:%s/swagger/index.html", config.AppConfig.Port)

	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func connectStorage(ctx context.Context) repositories.Storage {
	switch config.AppConfig.StorageDriver {
	case "postgres":
		if err := repositories.RunMigrations(config.PostgresDSN(), config.AppConfig.MigrationsDir); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		pool, err := config.ConnectDB(ctx)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		return repositories.NewPostgresStorage(pool)
	case "redis":
		client, err := config.ConnectRedis(ctx)
		if err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		return repositories.NewRedisStorage(client)
	default:
		log.Println("Using in-memory storage (state is lost on restart)")
		return repositories.NewMemoryStorage()
	}
}
