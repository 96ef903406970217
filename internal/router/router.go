package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/voyagio/voyagio-server/internal/api/recommendation"
	"github.com/voyagio/voyagio-server/internal/api/session"
)

// Config contains dependencies needed for the router setup
type Config struct {
	SessionHandler        session.Handler
	RecommendationHandler recommendation.Handler
}

// SetupRouter initializes and configures the main application router.
// Server-wide middleware (logger, requestID, recoverer) are expected to be
// applied before mounting this router in main.go.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/recommendations", func(r chi.Router) {
			r.Post("/", cfg.RecommendationHandler.Recommend)
			r.Post("/rerank", cfg.RecommendationHandler.Rerank)
		})

		r.Route("/sessions", func(r chi.Router) {
			r.Get("/stats", cfg.SessionHandler.Stats)

			r.Route("/{sessionID}", func(r chi.Router) {
				r.Get("/", cfg.SessionHandler.GetSession)
				r.Delete("/", cfg.SessionHandler.DeleteSession)
				r.Patch("/fields", cfg.SessionHandler.UpdateField)

				r.Post("/messages", cfg.SessionHandler.AppendMessage)
				r.Put("/profile", cfg.SessionHandler.UpdateProfile)
				r.Put("/persona", cfg.SessionHandler.UpdatePersona)
				r.Put("/trip-details", cfg.SessionHandler.UpdateTripDetails)
				r.Put("/pricing", cfg.SessionHandler.UpdatePricing)

				r.Route("/itineraries", func(r chi.Router) {
					r.Get("/", cfg.SessionHandler.GetAllItineraries)
					r.Put("/{itineraryID}", cfg.SessionHandler.AddItinerary)
					r.Get("/{itineraryID}", cfg.SessionHandler.GetItinerary)
				})

				r.Post("/customizations", cfg.SessionHandler.AddCustomization)
				r.Get("/customizations", cfg.SessionHandler.GetCustomizations)
				r.Post("/bookings", cfg.SessionHandler.AddBooking)
				r.Get("/bookings", cfg.SessionHandler.GetBookings)

				r.Put("/context", cfg.SessionHandler.SetContext)
				r.Get("/context/{key}", cfg.SessionHandler.GetContext)
			})
		})
	})

	return r
}
