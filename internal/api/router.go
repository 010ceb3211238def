package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
	"github.com/techbay/auth-backend/internal/apperr"
	"github.com/techbay/auth-backend/internal/api/handlers"
	"github.com/techbay/auth-backend/internal/auth"
	"github.com/techbay/auth-backend/internal/passport"
	"github.com/techbay/auth-backend/internal/services"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(tokens *auth.JWT, profiles services.ProfileServiceProvider, store *passport.Store) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	// CORS configuration for development
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Framework-level rejections share the error envelope shape
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		apperr.Write(w, apperr.New(apperr.NotFound, "Not Found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		apperr.WriteStatus(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	authHandler := handlers.NewAuthHandler(profiles, tokens, store)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.With(tokens.RequireAuth(false)).Get("/current-user", authHandler.CurrentUser)
		r.With(tokens.RequireAuth(true)).Get("/passport", authHandler.Passport)
	})

	return r
}

// requestLogger logs one line per request through zerolog.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}
