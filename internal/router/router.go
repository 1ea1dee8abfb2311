package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/navidsh/marketplace-api/internal/config"
	"github.com/navidsh/marketplace-api/internal/handler"
	"github.com/navidsh/marketplace-api/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAPI mounts the marketplace API under /api.  Register and login
// are public (behind the rate limiter); everything else runs the session
// middleware, with per-resource ownership and admin rules enforced in
// the service layer.  The product list and search responses are cached
// in Redis when a client is available.
func RegisterAPI(
	e *echo.Echo,
	a *handler.AuthHandler,
	u *handler.UserHandler,
	p *handler.ProductHandler,
	r *handler.ReviewHandler,
	jwtSecret string,
	rdb *redis.Client,
	cacheCfg config.CacheConfig,
	rlCfg config.RateLimitConfig,
) {
	authed := middleware.JWTAuth(jwtSecret)
	anyRole := middleware.RequireRole("buyer", "seller", "admin")
	limited := middleware.NewTokenBucket(rlCfg, rdb)
	cached := middleware.NewRedisCache(cacheCfg, rdb)

	user := e.Group("/api/user")
	user.POST("/register", a.Register, limited)
	user.POST("/login", a.Login, limited)

	// Protected user routes.  The static paths are registered before the
	// /:id parameter route; echo matches static segments first.
	userAuth := user.Group("", authed, anyRole)
	userAuth.GET("/logout", a.Logout)
	userAuth.GET("/getuser", a.Me)
	userAuth.PUT("/update-profile/:id", u.UpdateProfile)
	userAuth.GET("/get-users-with-products", u.UsersWithProducts)
	userAuth.POST("/products-bought", u.ProductsBought)
	userAuth.POST("/products-created", u.ProductsCreated)
	userAuth.GET("/delete/:id", u.Delete)
	userAuth.GET("/:id", u.GetByID)

	product := e.Group("/api/product", authed, anyRole)
	product.POST("/createProduct", p.Create)
	product.GET("", p.List, cached)
	product.GET("/", p.List, cached)
	product.GET("/search", p.Search, cached)
	product.GET("/get-presigned-url", p.PresignedURL)
	product.POST("/buy-product", p.Buy)
	product.PUT("/:id", p.Update)
	product.GET("/:id", p.GetByID)
	product.DELETE("/:id", p.Delete)

	review := e.Group("/api/review", authed, anyRole)
	review.POST("/:product", r.Create)
	review.GET("/:product", r.List)
}
