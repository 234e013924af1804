package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	_ "github.com/sweetshop/sweet-shop-api/docs"
	"github.com/sweetshop/sweet-shop-api/internal/application/auth"
	"github.com/sweetshop/sweet-shop-api/internal/application/chat"
	"github.com/sweetshop/sweet-shop-api/internal/application/ledger"
	"github.com/sweetshop/sweet-shop-api/internal/application/usecase"
	"github.com/sweetshop/sweet-shop-api/internal/infrastructure/postgres"
	infraredis "github.com/sweetshop/sweet-shop-api/internal/infrastructure/redis"
	httpRouter "github.com/sweetshop/sweet-shop-api/internal/interfaces/http"
	"github.com/sweetshop/sweet-shop-api/pkg/config"
	"github.com/sweetshop/sweet-shop-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	sweetRepo := postgres.NewSweetRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Catalog cache is optional: without REDIS_ADDR every read goes to the DB.
	var cache *infraredis.CatalogCache
	if cfg.Redis.Addr != "" {
		client, err := infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("Redis connection")
		}
		defer client.Close()
		cache = infraredis.NewCatalogCache(client, time.Duration(cfg.Redis.TTLSeconds)*time.Second)
	}

	var catalogCache usecase.CatalogCache
	var invalidator ledger.CacheInvalidator
	if cache != nil {
		catalogCache = cache
		invalidator = cache
	}

	sweetUC := usecase.NewSweetUseCase(sweetRepo, catalogCache)
	stockLedger := ledger.New(txRunner, sweetRepo, purchaseRepo, invalidator, log)
	responder := chat.NewResponder(sweetRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	if err := authUC.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		log.Fatal().Err(err).Msg("bootstrap admin")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI in local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Sweet Shop API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		SweetUC:   sweetUC,
		Ledger:    stockLedger,
		AuthUC:    authUC,
		Responder: responder,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, closing server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
