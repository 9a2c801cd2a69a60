package handler

import (
	"video-quiz/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the API on app.
func RegisterRoutes(app *fiber.App, quiz *QuizHandler, sort *SmartSortHandler, health *HealthHandler) {
	validation := middleware.NewValidationMiddleware()

	app.Get("/health", health.Health)

	api := app.Group("/api")
	api.Post("/processdata", quiz.ProcessData)
	api.Post("/generatequiz", validation.ValidateQuizRequest(), quiz.GenerateQuiz)
	api.Post("/preparequiz", validation.ValidateQuizRequest(), quiz.PrepareQuiz)
	api.Post("/quiz/from-metadata", quiz.FromMetadata)
	api.Post("/smartsort", sort.Sort)
}
