package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/voyagedesk/travel-api/internal/auth"
	"github.com/voyagedesk/travel-api/internal/config"
	"github.com/voyagedesk/travel-api/internal/database"
	"github.com/voyagedesk/travel-api/internal/datawarehouse"
	"github.com/voyagedesk/travel-api/internal/http/handler"
	"github.com/voyagedesk/travel-api/internal/http/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/voyagedesk/travel-api/docs" // swagger docs
)

// Handlers groups the HTTP handlers mounted by the router
type Handlers struct {
	Tours     *handler.TourHandler
	Images    *handler.ImageHandler
	Discounts *handler.DiscountHandler
	Bookings  *handler.BookingHandler
	Hotels    *handler.HotelHandler
	Inquiries *handler.InquiryHandler
}

type Router struct {
	cfg            *config.Config
	logger         *zap.Logger
	db             *gorm.DB
	warehouse      *datawarehouse.Client
	authMiddleware *auth.Middleware
	rateLimiter    *middleware.RateLimiter
	handlers       Handlers
}

// NewRouter wires the handlers. warehouse may be nil when the reporting warehouse is disabled.
func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	warehouse *datawarehouse.Client,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	handlers Handlers,
) *Router {
	return &Router{
		cfg:            cfg,
		logger:         logger,
		db:             db,
		warehouse:      warehouse,
		authMiddleware: authMiddleware,
		rateLimiter:    rateLimiter,
		handlers:       handlers,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Get("/health/db", rt.databaseHealth)
	r.Get("/health/ready", rt.readiness)

	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	h := rt.handlers
	authn := rt.authMiddleware

	r.Route("/api/v1", func(r chi.Router) {
		if timeout := rt.cfg.Server.RequestTimeoutDuration(); timeout > 0 {
			r.Use(chimw.Timeout(timeout))
		}

		// Public site: anonymous reads, the caller is attached when credentials are sent
		r.Group(func(r chi.Router) {
			r.Use(authn.OptionalAuthenticate)
			r.Use(middleware.TrackAgent)

			r.Get("/tours", h.Tours.List)
			r.Get("/tours/{id}", h.Tours.GetByID)
			r.Post("/tours/{id}/quote", h.Tours.Quote)
			r.Get("/tours/{id}/images", h.Images.List)

			r.Get("/discounts/applicable", h.Discounts.ListApplicable)

			r.Get("/hotels", h.Hotels.List)
			r.Get("/hotels/{id}", h.Hotels.GetByID)
			r.Get("/hotels/{id}/rooms", h.Hotels.ListRooms)
			r.Get("/rooms/{id}", h.Hotels.GetRoom)

			r.Post("/inquiries", h.Inquiries.Create)
		})

		// Agents
		r.Group(func(r chi.Router) {
			r.Use(authn.Authenticate)
			r.Use(middleware.TrackAgent)
			r.Use(rt.rateLimiter.Limit)

			r.Get("/discounts/{id}/explain", h.Discounts.Explain)

			r.Get("/bookings", h.Bookings.List)
			r.Post("/bookings", h.Bookings.Create)
			r.Get("/bookings/{id}", h.Bookings.GetByID)
			r.Put("/bookings/{id}/status", h.Bookings.UpdateStatus)
		})

		// Admin
		r.Group(func(r chi.Router) {
			r.Use(authn.Authenticate)
			r.Use(middleware.TrackAgent)
			r.Use(authn.RequireAdmin)
			r.Use(rt.rateLimiter.Limit)

			r.Post("/tours", h.Tours.Create)
			r.Put("/tours/{id}", h.Tours.Update)
			r.Delete("/tours/{id}", h.Tours.Delete)
			r.Post("/tours/{id}/nights/confirm", h.Tours.ConfirmNights)
			r.Delete("/tours/{id}/nights/{key}", h.Tours.RemoveNightOption)
			r.Post("/tours/{id}/nights/{key}/options", h.Tours.AddNightsOption)
			r.Put("/tours/{id}/nights/{key}/options", h.Tours.ReplaceNightsOption)
			r.Delete("/tours/{id}/nights/{key}/options/{index}", h.Tours.RemoveNightsOptionAt)
			r.Patch("/tours/{id}/food-categories/{category}", h.Tours.SetFoodCategory)

			r.Post("/tours/{id}/images", h.Images.Upload)
			r.Delete("/tours/{id}/images/{imageId}", h.Images.Delete)
			r.Delete("/tours/{id}/images/{group}/{index}", h.Images.DeleteAt)

			r.Get("/discounts", h.Discounts.List)
			r.Post("/discounts", h.Discounts.Create)
			r.Get("/discounts/{id}", h.Discounts.GetByID)
			r.Put("/discounts/{id}", h.Discounts.Update)
			r.Delete("/discounts/{id}", h.Discounts.Delete)

			r.Post("/hotels", h.Hotels.Create)
			r.Put("/hotels/{id}", h.Hotels.Update)
			r.Delete("/hotels/{id}", h.Hotels.Delete)
			r.Post("/hotels/{id}/rooms", h.Hotels.CreateRoom)
			r.Put("/rooms/{id}", h.Hotels.UpdateRoom)
			r.Delete("/rooms/{id}", h.Hotels.DeleteRoom)

			r.Get("/inquiries", h.Inquiries.List)
			r.Get("/inquiries/{id}", h.Inquiries.GetByID)
			r.Put("/inquiries/{id}", h.Inquiries.Update)
			r.Delete("/inquiries/{id}", h.Inquiries.Delete)
		})
	})

	return r
}

func writeHealth(w http.ResponseWriter, status int, body map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (rt *Router) databaseHealth(w http.ResponseWriter, r *http.Request) {
	stats, err := database.HealthCheckWithStats(rt.db)
	if err != nil {
		rt.logger.Error("Database health check failed", zap.Error(err))
		writeHealth(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":  "unhealthy",
			"error":   err.Error(),
			"service": "database",
		})
		return
	}

	writeHealth(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"service": "database",
		"stats": map[string]interface{}{
			"max_open_connections": stats.MaxOpenConnections,
			"open_connections":     stats.OpenConnections,
			"in_use":               stats.InUse,
			"idle":                 stats.Idle,
			"wait_count":           stats.WaitCount,
			"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
		},
	})
}

// readiness fails only on the database; the warehouse is optional and a failing
// one degrades offer checks to local booking counts
func (rt *Router) readiness(w http.ResponseWriter, r *http.Request) {
	checks := map[string]interface{}{}
	healthy := true

	if err := database.HealthCheck(rt.db); err != nil {
		rt.logger.Error("Database health check failed", zap.Error(err))
		checks["database"] = map[string]interface{}{"status": "unhealthy", "error": err.Error()}
		healthy = false
	} else {
		checks["database"] = map[string]interface{}{"status": "healthy"}
	}

	dw := rt.warehouse.HealthCheck(r.Context())
	checks["datawarehouse"] = dw
	if dw.Status == "unhealthy" {
		rt.logger.Warn("Data warehouse unhealthy, offer checks use local booking counts",
			zap.String("error", dw.Error))
	}

	status, code := "healthy", http.StatusOK
	if !healthy {
		status, code = "unhealthy", http.StatusServiceUnavailable
	}
	writeHealth(w, code, map[string]interface{}{"status": status, "checks": checks})
}
