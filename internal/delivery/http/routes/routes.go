package routes

import (
	"eqwip/internal/delivery/http/handler"
	"eqwip/internal/delivery/http/middleware"
	"eqwip/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	Health                   *handler.HealthHandler
	Auth                     *handler.AuthHandler
	JobRecommendations       *handler.JobRecommendationHandler
	CandidateRecommendations *handler.CandidateRecommendationHandler
	CareerGoals              *handler.CareerGoalHandler
	Users                    *handler.UserHandler
	WS                       *ws.Handler
	AuthMw                   *middleware.AuthMiddleware
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	if r.Health != nil {
		r.Health.RegisterRoutes(app)
	}
	if r.WS != nil {
		app.Get("/ws/recommendations", r.WS.HandleRecommendationsWS)
	}

	api := app.Group("/api")
	v1 := api.Group("/v1")

	if r.Auth != nil {
		r.Auth.RegisterRoutes(v1.Group("/auth"))
	}

	if r.AuthMw == nil {
		return
	}
	protected := v1.Group("", r.AuthMw.Middleware())

	if r.Users != nil {
		r.Users.RegisterRoutes(protected.Group("/users"))
	}

	// Role guards go per route. A group-level Use on a shared prefix would
	// leak one role's guard onto the other role's routes.
	requireCandidate := r.AuthMw.RequireRole("CANDIDATE")
	if r.JobRecommendations != nil {
		r.JobRecommendations.RegisterRoutes(protected, requireCandidate)
	}
	if r.CareerGoals != nil {
		r.CareerGoals.RegisterRoutes(protected, requireCandidate)
	}

	if r.CandidateRecommendations != nil {
		r.CandidateRecommendations.RegisterRoutes(protected, r.AuthMw.RequireRole("EMPLOYER"))
	}
}
