package handler

import (
	"video-quiz/internal/domain"
	"video-quiz/internal/dto"
	"video-quiz/internal/logger"
	"video-quiz/internal/middleware"
	"video-quiz/internal/service"
	"video-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	service   service.QuizService
	validator *validation.Validator
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService) *QuizHandler {
	return &QuizHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// ProcessData godoc
// @Summary Resolve video metadata
// @Description Returns title, description and transcript of a video
// @Tags media
// @Accept json
// @Produce json
// @Param request body dto.ProcessDataRequest true "Video reference"
// @Success 200 {object} domain.MediaRecord
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Router /processdata [post]
func (h *QuizHandler) ProcessData(c *fiber.Ctx) error {
	var req dto.ProcessDataRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}
	if errs := h.validator.ValidateVideoURL(req.URL); len(errs) > 0 {
		return errs
	}

	record, err := h.service.ProcessMetadata(c.UserContext(), req.URL, req.Lang)
	if err != nil {
		return err
	}
	return c.JSON(record)
}

// GenerateQuiz godoc
// @Summary Generate a quiz for a video
// @Description Resolves the video, asks the configured model for a quiz and recovers its JSON.
// @Description Without a configured model the prepared instruction is returned instead.
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.QuizRequest true "Quiz request"
// @Success 200 {object} dto.QuizResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Router /generatequiz [post]
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	req, params, ok := middleware.ValidatedQuizRequest(c)
	if !ok {
		return domain.NewInternalError("quiz request was not validated", nil)
	}

	resp, err := h.service.GenerateQuiz(c.UserContext(), req, params)
	if err != nil {
		return err
	}
	if resp.Status == dto.StatusParseFailed {
		logger.Get().Warn("Returning unparsed generator output",
			zap.String("request_id", middleware.RequestID(c)),
			zap.String("quiz_id", resp.ID))
	}
	return c.JSON(resp)
}

// PrepareQuiz godoc
// @Summary Prepare a quiz prompt for a video
// @Description Resolves the video and returns the record with the generation instruction. Never calls a model.
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.QuizRequest true "Quiz request"
// @Success 200 {object} dto.QuizResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Router /preparequiz [post]
func (h *QuizHandler) PrepareQuiz(c *fiber.Ctx) error {
	req, params, ok := middleware.ValidatedQuizRequest(c)
	if !ok {
		return domain.NewInternalError("quiz request was not validated", nil)
	}

	resp, err := h.service.PrepareQuiz(c.UserContext(), req, params)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// FromMetadata godoc
// @Summary Prepare a quiz prompt from provided metadata
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.FromMetadataRequest true "Metadata and quiz parameters"
// @Success 200 {object} dto.QuizResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /quiz/from-metadata [post]
func (h *QuizHandler) FromMetadata(c *fiber.Ctx) error {
	var req dto.FromMetadataRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}

	params, errs := h.validator.ParseQuizParameters(req.AmtQuest, req.Difficulty, req.TestType)
	if len(errs) > 0 {
		return errs
	}

	return c.JSON(h.service.BuildFromProvided(req.Title, req.Description, req.Transcript, params))
}
