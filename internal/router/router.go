package router

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/openforum-dev/openforum/internal/setup"
	"github.com/openforum-dev/openforum/shared/middleware/metrics"
)

// New creates and configures the router with all the routes.
func New(deps *setup.Dependencies) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(metrics.Middleware)

	// setup CORS for browser clients
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: deps.Config.Public.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}))

	h := deps.Handler

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/search/threads", h.SearchThreads)

		r.Route("/threads", func(r chi.Router) {
			r.Post("/", h.CreateThread)
			r.Route("/{thread_id}", func(r chi.Router) {
				r.Get("/", h.GetThread)
				r.Put("/", h.UpdateThread)
				r.Delete("/", h.DeleteThread)

				r.Post("/comments", h.CreateComment)

				r.Post("/votes", h.VoteThread)
				r.Delete("/votes", h.UnvoteThread)
				r.Post("/flags", h.FlagThread)
				r.Delete("/flags", h.UnflagThread)
				r.Post("/pin", h.PinThread)
				r.Delete("/pin", h.UnpinThread)
				r.Post("/read", h.MarkThreadRead)
			})
		})

		r.Route("/comments/{comment_id}", func(r chi.Router) {
			r.Put("/", h.UpdateComment)
			r.Delete("/", h.DeleteComment)
			r.Post("/flags", h.FlagComment)
			r.Delete("/flags", h.UnflagComment)
		})
	})

	return r
}
