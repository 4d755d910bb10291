package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/product-inventory/internal/config"
	"github.com/iliyamo/product-inventory/internal/handler"    // import the handlers that implement business logic
	"github.com/iliyamo/product-inventory/internal/middleware" // import middleware for JWT authentication and rate limiting
	"github.com/iliyamo/product-inventory/internal/validate"
)

// RegisterHealth registers the health probe. It lives outside /api so
// load balancers and monitoring systems can reach it without auth.
func RegisterHealth(e *echo.Echo, h *handler.HealthHandler) {
	e.GET("/health", h.Health)
}

// RegisterAuth registers all authentication-related routes and their
// middleware under /api/auth. Register and login are rate limited per
// IP; the remaining endpoints require a valid bearer token. Each chain
// runs rate limit, then validation, then the authentication gate, so a
// rejected request never reaches its handler.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, gate middleware.Authenticator, rdb *redis.Client, rl config.RateLimitConfig) {
	g := e.Group("/api/auth")

	g.POST("/register",
		a.Register,
		middleware.RateLimit(rdb, rl, "auth_register", rl.RegisterLimit, rl.RegisterWindow),
		validate.Request(validate.Register, nil, nil),
	)
	g.POST("/login",
		a.Login,
		middleware.RateLimit(rdb, rl, "auth_login", rl.LoginLimit, rl.LoginWindow),
		validate.Request(validate.Login, nil, nil),
	)

	g.GET("/profile", a.Profile, middleware.RequireAuth(gate))
	g.POST("/refresh", a.Refresh, middleware.RequireAuth(gate))
	g.POST("/logout", a.Logout, middleware.RequireAuth(gate))
	g.GET("/validate", a.Validate, middleware.RequireAuth(gate))
}

// RegisterProducts registers the product routes under /api/products.
// Reads are public (listing accepts an optional bearer token); every
// mutating route requires authentication, and creation is additionally
// rate limited per IP.
func RegisterProducts(e *echo.Echo, p *handler.ProductHandler, gate middleware.Authenticator, rdb *redis.Client, rl config.RateLimitConfig, cache config.CacheConfig) {
	g := e.Group("/api/products")

	// Listing works for guests; a valid token attaches the identity and a
	// bad one is swallowed rather than surfaced.
	g.GET("",
		p.List,
		validate.Request(nil, nil, validate.ProductList),
		middleware.OptionalAuth(gate),
	)
	// Static paths are registered before /:id so Echo matches them first.
	g.GET("/categories", p.Categories, middleware.Cache(cache, rdb))
	g.GET("/statistics", p.Statistics, middleware.RequireAuth(gate))
	g.GET("/search", p.Search, validate.Request(nil, nil, validate.ProductSearch))
	g.GET("/:id", p.GetByID, validate.Request(nil, validate.IDParam, nil))

	g.POST("",
		p.Create,
		middleware.RateLimit(rdb, rl, "product_create", rl.CreateLimit, rl.CreateWindow),
		validate.Request(validate.ProductCreate, nil, nil),
		middleware.RequireAuth(gate),
		middleware.Authorize(),
	)
	g.PUT("/:id",
		p.Update,
		validate.Request(validate.ProductUpdate, validate.IDParam, nil),
		middleware.RequireAuth(gate),
	)
	g.DELETE("/:id",
		p.Delete,
		validate.Request(nil, validate.IDParam, nil),
		middleware.RequireAuth(gate),
	)
}
