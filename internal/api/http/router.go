package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/exam-service/internal/api/http/handlers"
	"github.com/spec-kit/exam-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Exam           *handlers.ExamHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. Ingestion is teacher-gated; delivery and
// submission are open to any authenticated identity.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)

	exam := app.Group("/exam", cfg.AuthMiddleware.Handle)
	exam.Post("/submit-questions", auth.RequireTeacher(), cfg.Exam.SubmitQuestions)
	exam.Get("/subjects", auth.RequireAuthenticated(), cfg.Exam.Subjects)
	exam.Get("/questions/:subject", auth.RequireAuthenticated(), cfg.Exam.Questions)
	exam.Post("/submit-exam", auth.RequireAuthenticated(), cfg.Exam.SubmitExam)
}
