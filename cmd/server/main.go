package main // Entry point package

import (
	"log" // Logging library
	"os"  // Env lookup for optional broker wiring

	"github.com/joho/godotenv"    // Optional .env loading for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/product-inventory/internal/apperr"
	"github.com/iliyamo/product-inventory/internal/config"
	"github.com/iliyamo/product-inventory/internal/database"
	"github.com/iliyamo/product-inventory/internal/handler"
	"github.com/iliyamo/product-inventory/internal/middleware"
	"github.com/iliyamo/product-inventory/internal/queue"
	"github.com/iliyamo/product-inventory/internal/repository"
	"github.com/iliyamo/product-inventory/internal/router"
	"github.com/iliyamo/product-inventory/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments use the environment
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	// Redis backs rate limiting and the categories cache; nil means both
	// degrade to pass-through.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable: rate limiting and caching disabled")
	}
	rlCfg := config.LoadRateLimitConfig()
	cacheCfg := config.LoadCacheConfig()

	// Services are constructed once and passed by reference; no global
	// mutable state.
	users := repository.NewUserRepo(db)
	products := repository.NewProductRepo(db)
	authSvc := service.NewAuthService(users, cfg.JWTSecret, cfg.TokenTTL, cfg.BcryptCost)
	productSvc := service.NewProductService(products)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = apperr.HTTPErrorHandler(cfg.Env)
	e.Use(middleware.RequestID())
	e.Use(middleware.Timeout(cfg.RequestTimeout))

	router.RegisterHealth(e, handler.NewHealthHandler(db))
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, authSvc), authSvc, rdb, rlCfg)
	router.RegisterProducts(e, handler.NewProductHandler(productSvc), authSvc, rdb, rlCfg, cacheCfg)

	// The audit consumer only makes sense when a broker is configured;
	// without one the reconnect loop would just spin.
	if os.Getenv("RABBITMQ_URL") != "" || os.Getenv("AMQP_URL") != "" {
		go func() {
			if err := queue.StartProductConsumer(); err != nil {
				log.Printf("product-consumer stopped: %v", err)
			}
		}()
	}

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err)
	}
}
