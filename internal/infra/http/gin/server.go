package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"stays/internal/infra/config"
	"stays/internal/infra/obs"
	"stays/internal/infra/view"
)

type PageHTTP interface {
	Home(c *gin.Context)
	Stays(c *gin.Context)
	Property(c *gin.Context)
	Book(c *gin.Context)
	Booking(c *gin.Context)
	Confirm(c *gin.Context)
}

type ListingHTTP interface {
	Catalog(c *gin.Context)
	Featured(c *gin.Context)
	Detail(c *gin.Context)
}

type PricingHTTP interface {
	Quote(c *gin.Context)
}

type BookingHTTP interface {
	Acknowledge(c *gin.Context)
}

type Handlers struct {
	Pages    PageHTTP
	Live     gin.HandlerFunc
	Listing  ListingHTTP
	Pricing  PricingHTTP
	Booking  BookingHTTP
	Renderer *view.Renderer
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           NewRouter(cfg, obsMW, health, h),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// NewRouter builds the gin engine. Pages and assets are served at the root,
// the JSON API under /api/v1 with CORS and rate limiting.
func NewRouter(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *gin.Engine {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	if cfg.AssetsDir != "" {
		router.Static("/assets", cfg.AssetsDir)
	}
	if h.Renderer != nil {
		router.SetHTMLTemplate(h.Renderer.Templates())
	}
	if h.Pages != nil {
		router.GET("/", h.Pages.Home)
		router.GET("/stays", h.Pages.Stays)
		router.GET("/property", h.Pages.Property)
		router.POST("/property/book", h.Pages.Book)
		router.GET("/booking", h.Pages.Booking)
		router.POST("/booking/confirm", h.Pages.Confirm)
	}
	if h.Live != nil {
		router.GET("/stays/live", h.Live)
	}

	api := router.Group("/api/v1")
	api.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Idempotency-Key", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "Content-Type", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))
	api.Use(RateLimit(cfg.RateLimit))
	if h.Listing != nil {
		api.GET("/listings", h.Listing.Catalog)
		api.GET("/listings/featured", h.Listing.Featured)
		api.GET("/listings/:id/detail", h.Listing.Detail)
	}
	if h.Pricing != nil {
		api.GET("/quote", h.Pricing.Quote)
	}
	if h.Booking != nil {
		api.POST("/bookings/acknowledge", h.Booking.Acknowledge)
	}

	return router
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
