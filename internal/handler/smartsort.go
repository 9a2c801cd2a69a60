package handler

import (
	"context"

	"video-quiz/internal/domain"
	"video-quiz/internal/dto"
	"video-quiz/internal/smartsort"

	"github.com/gofiber/fiber/v2"
)

// Sorter orders videos into a course.
type Sorter interface {
	Sort(ctx context.Context, req smartsort.SortRequest) (any, error)
}

// SmartSortHandler forwards course outlines to the sorting service
type SmartSortHandler struct {
	sorter Sorter
}

func NewSmartSortHandler(sorter Sorter) *SmartSortHandler {
	return &SmartSortHandler{sorter: sorter}
}

// Sort godoc
// @Summary Order videos into a course
// @Description Videos may be objects, [title, description, transcription] arrays or media records.
// @Description Upstream failures are returned as an error payload with status 200.
// @Tags smartsort
// @Accept json
// @Produce json
// @Param request body dto.SmartSortRequest true "Course and videos"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /smartsort [post]
func (h *SmartSortHandler) Sort(c *fiber.Ctx) error {
	var req dto.SmartSortRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}

	items, err := smartsort.DecodeItems(req.Videos)
	if err != nil {
		return err
	}

	result, err := h.sorter.Sort(c.UserContext(), smartsort.SortRequest{
		CourseName: req.CourseName,
		Goals:      req.Goals,
		Videos:     smartsort.Canonicalize(items),
	})
	if err != nil {
		return err
	}
	return c.JSON(result)
}
