package handler

import (
	"quiz-forge/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the quiz API on app.
func RegisterRoutes(app fiber.Router, quizHandler *QuizHandler, validator *middleware.ValidationMiddleware) {
	app.Get("/health", quizHandler.Health)

	apiGroup := app.Group("/api")
	apiGroup.Post("/quizzes", validator.ValidateGenerateParams(), quizHandler.GenerateQuiz)
	apiGroup.Get("/quizzes/:id", validator.ValidateQuizID(), quizHandler.GetQuiz)
}
