package main // Entry point package

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/navidsh/marketplace-api/internal/config"
	"github.com/navidsh/marketplace-api/internal/database"
	"github.com/navidsh/marketplace-api/internal/handler"
	"github.com/navidsh/marketplace-api/internal/queue"
	"github.com/navidsh/marketplace-api/internal/repository"
	"github.com/navidsh/marketplace-api/internal/router"
	"github.com/navidsh/marketplace-api/internal/service"
	"github.com/navidsh/marketplace-api/internal/storage"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	// Redis is optional: a nil client disables caching and rate limiting.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, cache and rate limiting disabled")
	}

	// Object store is optional: without a bucket the presign endpoint
	// reports 503 instead of blocking startup.
	var signer storage.UploadURLSigner
	if cfg.GCSBucket != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		s, err := storage.NewGCSSigner(ctx, cfg.GCSBucket, cfg.GCSCredsFile)
		cancel()
		if err != nil {
			log.Printf("object storage unavailable: %v", err)
		} else {
			signer = s
		}
	}

	users := repository.NewUserRepo(db)
	products := repository.NewProductRepo(db)
	reviews := repository.NewReviewRepo(db)

	userSvc := service.NewUserService(users, products, cfg.BcryptCost)
	productSvc := service.NewProductService(products, users, queue.Publisher{})
	reviewSvc := service.NewReviewService(reviews, products)

	go queue.StartSalesConsumer()

	e := echo.New()
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{cfg.ClientOrigin},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowCredentials: true,
	}))

	router.RegisterRoutes(e)
	router.RegisterAPI(e,
		handler.NewAuthHandler(cfg, userSvc),
		handler.NewUserHandler(userSvc),
		handler.NewProductHandler(productSvc, signer),
		handler.NewReviewHandler(reviewSvc),
		cfg.JWTSecret,
		rdb,
		config.LoadCacheConfig(),
		config.LoadRateLimitConfig(),
	)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
