package middleware

import (
	"video-quiz/internal/domain"
	"video-quiz/internal/dto"
	"video-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const (
	QuizRequestKey = "validated_quiz_request"
	QuizParamsKey  = "validated_quiz_params"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateQuizRequest parses a dto.QuizRequest body, checks the url and quiz
// parameters, and stores both in the context for handlers to use.
func (vm *ValidationMiddleware) ValidateQuizRequest() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req dto.QuizRequest
		if err := c.BodyParser(&req); err != nil {
			return domain.NewInvalidInputError("Invalid request body")
		}

		errors := vm.validator.ValidateVideoURL(req.URL)
		params, paramErrs := vm.validator.ParseQuizParameters(req.AmtQuest, req.Difficulty, req.TestType)
		errors = append(errors, paramErrs...)
		if len(errors) > 0 {
			return errors // This will be handled by ErrorHandler middleware
		}

		c.Locals(QuizRequestKey, &req)
		c.Locals(QuizParamsKey, params)
		return c.Next()
	}
}

// ValidatedQuizRequest returns the values stored by ValidateQuizRequest.
func ValidatedQuizRequest(c *fiber.Ctx) (*dto.QuizRequest, domain.QuizParameters, bool) {
	req, ok := c.Locals(QuizRequestKey).(*dto.QuizRequest)
	if !ok {
		return nil, domain.QuizParameters{}, false
	}
	params, ok := c.Locals(QuizParamsKey).(domain.QuizParameters)
	return req, params, ok
}
