package handler

import (
	"expert-test/internal/service"

	"github.com/gofiber/fiber/v2"
)

// TestHandler serves the question catalog to test takers.
type TestHandler struct {
	questionService service.QuestionService
}

func NewTestHandler(questionService service.QuestionService) *TestHandler {
	return &TestHandler{questionService: questionService}
}

// GetQuestions godoc
// @Summary Get test questions
// @Description Returns every question with its answer options.
// @Tags test
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.QuestionListResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /test/questions [get]
func (h *TestHandler) GetQuestions(c *fiber.Ctx) error {
	resp, err := h.questionService.GetCatalog(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
