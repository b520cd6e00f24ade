package server

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"yorkfacts/internal/facts"
	"yorkfacts/internal/handlers"
	"yorkfacts/internal/handlers/api"
	"yorkfacts/internal/middleware"
)

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(ctx context.Context, service *facts.Service) error {
	// Moderation routes require a bearer token only when an issuer is configured
	guard := func(c fiber.Ctx) error { return c.Next() }
	if s.Cfg.AuthEnabled() {
		auth, err := middleware.NewModeratorAuth(ctx, s.Cfg, s.Logger)
		if err != nil {
			return err
		}
		guard = auth.RequireBearer
	} else {
		s.Logger.Warn("OIDC_ISSUER not set, DELETE /delete is open to everyone")
	}

	s.mount(service, guard)
	return nil
}

// mount attaches handlers to the app with the given moderation guard.
func (s *Server) mount(service *facts.Service, guard fiber.Handler) {
	factHandler := handlers.NewFactHandler(service, s.Logger)
	healthHandler := handlers.NewHealthHandler(service)
	apiFacts := api.NewFactHandler(service)
	apiQuiz := api.NewQuizHandler(service)

	// Text endpoints used by the quiz frontend
	s.App.Post("/submit", factHandler.Submit)
	s.App.Get("/facts", factHandler.List)
	s.App.Delete("/delete", guard, factHandler.Delete)

	// JSON API
	apiGroup := s.App.Group("/api")
	apiGroup.Get("/facts", apiFacts.List)
	apiGroup.Post("/facts/check", apiFacts.Check)
	apiGroup.Get("/options", apiFacts.Options)
	apiGroup.Get("/quiz/random", apiQuiz.Random)
	apiGroup.Post("/quiz/guess", apiQuiz.Guess)

	// Operational
	s.App.Get("/healthz", healthHandler.Healthz)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}
