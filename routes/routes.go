package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/levy-pm/co-moge-zjesc/config"
	"github.com/levy-pm/co-moge-zjesc/controllers"
	"github.com/levy-pm/co-moge-zjesc/session"
)

// SetupRouter wires middleware and routes. Every response carries
// no-store cache headers so back-button navigation never replays a stale
// conversation.
func SetupRouter(cfg *config.Config, sessions *session.Manager, home *controllers.HomeController, generate *controllers.GenerateController) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Use(NoCache)
	r.Use(sessions.Middleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Get("/", home.Handle)
	r.Post("/", home.Handle)
	r.Post("/api/generate", generate.Handle)

	return r
}

// NoCache disables client and proxy caching for every response.
func NoCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")
		next.ServeHTTP(w, r)
	})
}
