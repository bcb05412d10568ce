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

// ResultHandler handles test submission and result history requests.
type ResultHandler struct {
	resultService service.ResultService
}

func NewResultHandler(resultService service.ResultService) *ResultHandler {
	return &ResultHandler{resultService: resultService}
}

// Save godoc
// @Summary Submit a test
// @Description Scores the submitted answers and stores the attempt.
// @Tags results
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param body body dto.SaveResultsRequest true "Submitted answers and shown questions"
// @Success 200 {object} dto.SaveResultsResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /results/save [post]
func (h *ResultHandler) Save(c *fiber.Ctx) error {
	userID, err := middleware.UserIDFromCtx(c)
	if err != nil {
		return err
	}

	var req dto.SaveResultsRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Get().Warn("Failed to parse save results body",
			zap.Int64("userID", userID),
			zap.Error(err),
		)
		return domain.NewInvalidInputError("Invalid request body")
	}

	resp, err := h.resultService.SaveResults(c.UserContext(), userID, &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// All godoc
// @Summary List my results
// @Description Returns all attempts of the caller, newest first, with the detail of the latest one.
// @Tags results
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.AllResultsResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /results/all [get]
func (h *ResultHandler) All(c *fiber.Ctx) error {
	userID, err := middleware.UserIDFromCtx(c)
	if err != nil {
		return err
	}

	resp, err := h.resultService.GetAllResults(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Detail godoc
// @Summary Get one result
// @Tags results
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "Test result ID"
// @Success 200 {object} dto.ResultDetailResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse "Not found or owned by another user"
// @Router /results/{id} [get]
func (h *ResultHandler) Detail(c *fiber.Ctx) error {
	userID, err := middleware.UserIDFromCtx(c)
	if err != nil {
		return err
	}

	resp, err := h.resultService.GetResultDetail(c.UserContext(), userID, middleware.IDParam(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
