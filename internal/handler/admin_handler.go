package handler

import (
	"expert-test/internal/domain"
	"expert-test/internal/dto"
	"expert-test/internal/logger"
	"expert-test/internal/middleware"
	"expert-test/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AdminHandler serves the admin panel: statistics and question/answer CRUD.
// Access is enforced by the router.
type AdminHandler struct {
	questionService service.QuestionService
}

func NewAdminHandler(questionService service.QuestionService) *AdminHandler {
	return &AdminHandler{questionService: questionService}
}

// Stats godoc
// @Summary Admin statistics
// @Tags admin
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.AdminStatsResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Router /admin/stats [get]
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	resp, err := h.questionService.GetAdminStats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ListQuestions godoc
// @Summary List questions
// @Tags admin
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.QuestionListResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Router /admin/questions [get]
func (h *AdminHandler) ListQuestions(c *fiber.Ctx) error {
	resp, err := h.questionService.ListQuestions(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// CreateQuestion godoc
// @Summary Create a question
// @Description question_type defaults to single_choice.
// @Tags admin
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param body body dto.QuestionRequest true "Question"
// @Success 201 {object} dto.QuestionEnvelope
// @Failure 400 {object} middleware.ErrorResponse
// @Router /admin/questions [post]
func (h *AdminHandler) CreateQuestion(c *fiber.Ctx) error {
	var req dto.QuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}

	resp, err := h.questionService.CreateQuestion(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// UpdateQuestion godoc
// @Summary Update a question
// @Tags admin
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "Question ID"
// @Param body body dto.QuestionRequest true "Question"
// @Success 200 {object} dto.QuestionEnvelope
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /admin/questions/{id} [put]
func (h *AdminHandler) UpdateQuestion(c *fiber.Ctx) error {
	var req dto.QuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}

	resp, err := h.questionService.UpdateQuestion(c.UserContext(), middleware.IDParam(c), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// DeleteQuestion godoc
// @Summary Delete a question
// @Description Deletes the question with its answers and every stored submitted answer referring to it.
// @Tags admin
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "Question ID"
// @Success 200 {object} dto.DeleteQuestionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /admin/questions/{id} [delete]
func (h *AdminHandler) DeleteQuestion(c *fiber.Ctx) error {
	id := middleware.IDParam(c)
	resp, err := h.questionService.DeleteQuestion(c.UserContext(), id)
	if err != nil {
		return err
	}

	logger.Get().Info("Question deleted",
		zap.Int64("questionID", id),
		zap.Int64("deletedAnswers", resp.DeletedAnswers),
		zap.Int64("deletedUserAnswers", resp.DeletedUserAnswers),
		zap.String("requestID", middleware.RequestIDFromCtx(c)),
	)
	return c.JSON(resp)
}

// CheckQuestionUsage godoc
// @Summary Question usage before delete
// @Tags admin
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "Question ID"
// @Success 200 {object} dto.QuestionUsageResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /admin/questions/{id}/check [get]
func (h *AdminHandler) CheckQuestionUsage(c *fiber.Ctx) error {
	resp, err := h.questionService.CheckQuestionUsage(c.UserContext(), middleware.IDParam(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// CreateAnswer godoc
// @Summary Create an answer option
// @Tags admin
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param body body dto.AnswerRequest true "Answer"
// @Success 201 {object} dto.AnswerEnvelope
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse "Question not found"
// @Router /admin/answers [post]
func (h *AdminHandler) CreateAnswer(c *fiber.Ctx) error {
	var req dto.AnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}

	resp, err := h.questionService.CreateAnswer(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// UpdateAnswer godoc
// @Summary Update an answer option
// @Tags admin
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "Answer ID"
// @Param body body dto.AnswerRequest true "Answer"
// @Success 200 {object} dto.AnswerEnvelope
// @Failure 404 {object} middleware.ErrorResponse
// @Router /admin/answers/{id} [put]
func (h *AdminHandler) UpdateAnswer(c *fiber.Ctx) error {
	var req dto.AnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}

	resp, err := h.questionService.UpdateAnswer(c.UserContext(), middleware.IDParam(c), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// DeleteAnswer godoc
// @Summary Delete an answer option
// @Description Fails with 400 while submitted answers still refer to the option.
// @Tags admin
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "Answer ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} middleware.ErrorResponse "Answer is referenced by stored results"
// @Failure 404 {object} middleware.ErrorResponse
// @Router /admin/answers/{id} [delete]
func (h *AdminHandler) DeleteAnswer(c *fiber.Ctx) error {
	resp, err := h.questionService.DeleteAnswer(c.UserContext(), middleware.IDParam(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func invalidBody(c *fiber.Ctx, err error) error {
	logger.Get().Warn("Failed to parse request body",
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	return domain.NewInvalidInputError("Invalid request body")
}
