package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/buildforge/buildforge/internal/assistant"
	"github.com/buildforge/buildforge/internal/auth"
	"github.com/buildforge/buildforge/internal/codegen"
	"github.com/buildforge/buildforge/internal/component"
	"github.com/buildforge/buildforge/internal/config"
	"github.com/buildforge/buildforge/internal/deploy"
	"github.com/buildforge/buildforge/internal/httputil"
	"github.com/buildforge/buildforge/internal/logging"
	"github.com/buildforge/buildforge/internal/project"
)

// Handlers groups the per-domain HTTP handlers the router mounts.
type Handlers struct {
	Auth      *auth.Handler
	Project   *project.Handler
	Component *component.Handler
	Codegen   *codegen.Handler
	Deploy    *deploy.Handler
	Assistant *assistant.Handler
}

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, h Handlers, authMiddleware *auth.Middleware, logger *logging.Logger) *chi.Mux {
	r := chi.NewRouter()

	// CORS - must be first
	if len(cfg.Server.TrustedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.Server.TrustedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders:   []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           300, // 5 minutes
		}))
	}

	// Global middleware
	r.Use(SecurityHeaders)               // Security headers on all responses
	r.Use(middleware.Recoverer)          // Recover from panics
	r.Use(middleware.RequestID)          // Add request ID
	r.Use(middleware.RealIP)             // Set RemoteAddr to real IP
	r.Use(logging.RequestLogger(logger)) // Structured logging with request context
	r.Use(middleware.Compress(5))        // Compress responses

	// Public routes
	r.Get("/health", handleHealth)

	// Swagger UI - only in development
	// Production builds will not have this route at all
	if cfg.Server.IsDevelopment() {
		logger.Info("swagger UI enabled at /swagger/*")
		r.Get("/swagger/*", httpSwagger.WrapHandler)
	}

	r.Route("/api", func(r chi.Router) {
		// Auth routes (public)
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", h.Auth.Signup)
			r.Post("/login", h.Auth.Login)
		})

		// Protected routes (require authentication)
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.RequireAuth)

			r.Route("/projects", func(r chi.Router) {
				r.Get("/", h.Project.List)
				r.Post("/", h.Project.Create)

				r.Route("/{projectID}", func(r chi.Router) {
					r.Get("/", h.Project.Get)
					r.Put("/", h.Project.Update)
					r.Delete("/", h.Project.Delete)

					r.Post("/components", h.Component.Add)
					r.Route("/components/{componentID}", func(r chi.Router) {
						r.Put("/", h.Component.Update)
						r.Delete("/", h.Component.Delete)
					})
				})
			})

			r.Post("/generate-code", h.Codegen.Generate)
			r.Post("/deploy", h.Deploy.Deploy)
			r.Post("/ai-assistant", h.Assistant.Respond)
		})
	})

	return r
}

// handleHealth is a simple health check endpoint
// @Summary      Health check
// @Description  Check if the API is running
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       /health [get]
func handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, map[string]string{"status": "api is running"}, http.StatusOK)
}
