package api

import (
	"context"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/nearshop/geocore/internal/api/handler"
	"github.com/nearshop/geocore/internal/core/ports"
	"github.com/nearshop/geocore/internal/core/service"
	"github.com/nearshop/geocore/internal/infrastructure/config"
	mongodb "github.com/nearshop/geocore/internal/infrastructure/db/mongo"
	redisdb "github.com/nearshop/geocore/internal/infrastructure/db/redis"
	"github.com/nearshop/geocore/internal/infrastructure/directions"
	"github.com/nearshop/geocore/internal/infrastructure/feed"
)

// NewRouter builds the Echo instance with all routes registered and the
// fix dispatcher started. ctx bounds the background workers and every
// watch goroutine; the returned registry lets main stop active watches
// during shutdown.
func NewRouter(ctx context.Context, cfg *config.Config, db *mongo.Database, rdb *goredis.Client, log zerolog.Logger) (*echo.Echo, *service.TrackerRegistry) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("geocore"))

	// --- Repositories ---
	shopRepo := mongodb.NewShopRepository(db)
	orderRepo := mongodb.NewOrderRepository(db)
	customerRepo := mongodb.NewCustomerRepository(db)

	// --- Directions provider behind the Redis route cache ---
	google := directions.NewGoogleClient(directions.Config{
		APIKey:  cfg.Google.APIKey,
		BaseURL: cfg.Google.BaseURL,
		Timeout: time.Duration(cfg.Google.TimeoutSeconds) * time.Second,
	}, log)
	cached := directions.NewCachedDirections(google, redisdb.NewRouteCache(rdb), log)

	// --- Device feed pipeline ---
	feeds := feed.NewFeedRegistry()
	dispatcher := feed.NewDispatcher(cfg.Feed.Workers, feeds, log)
	dispatcher.Start(ctx)

	trackers := service.NewTrackerRegistry(func(customerID string) ports.PositionSource {
		return feeds.Feed(customerID)
	}, customerRepo, log)

	// --- Services ---
	discoverySvc := service.NewDiscoveryService(shopRepo, cached, cfg.Discovery.RadiusMeters, log)
	trackingSvc := service.NewTrackingService(orderRepo, cached, log)

	// --- Handlers ---
	discoveryHandler := handler.NewDiscoveryHandler(discoverySvc, trackers)
	trackingHandler := handler.NewTrackingHandler(trackingSvc)
	customerHandler := handler.NewCustomerHandler(ctx, trackers, dispatcher, feeds, customerRepo, cached)
	geocodeHandler := handler.NewGeocodeHandler(cached)

	// --- Routes ---
	e.GET("/v1/shops/discover", discoveryHandler.Discover)
	e.GET("/v1/orders/:id/tracking", trackingHandler.Track)
	e.GET("/v1/customers/:id/orders", trackingHandler.ListOrders)
	e.PUT("/v1/customers/:id/location", customerHandler.ReportLocation)
	e.GET("/v1/customers/:id/location", customerHandler.GetLocation)
	e.PUT("/v1/customers/:id/address", customerHandler.UpdateAddress)
	e.POST("/v1/customers/:id/tracking/start", customerHandler.StartTracking)
	e.POST("/v1/customers/:id/tracking/stop", customerHandler.StopTracking)
	e.GET("/v1/geocode", geocodeHandler.Geocode)
	e.GET("/v1/geocode/reverse", geocodeHandler.ReverseGeocode)

	// --- Health probes and metrics ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e, trackers
}
