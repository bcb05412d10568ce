package handler

import (
	"expert-test/internal/middleware"
	"expert-test/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ProfileHandler struct {
	profileService service.ProfileService
}

func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// Profile godoc
// @Summary Get my profile
// @Description Account, aggregate statistics, last 10 attempts and top 3 competences.
// @Tags profile
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.ProfileResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /profile [get]
func (h *ProfileHandler) Profile(c *fiber.Ctx) error {
	userID, err := middleware.UserIDFromCtx(c)
	if err != nil {
		return err
	}

	resp, err := h.profileService.GetProfile(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ProfileTest godoc
// @Summary Get attempt metrics
// @Tags profile
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "Test result ID"
// @Success 200 {object} dto.ProfileTestResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /profile/test/{id} [get]
func (h *ProfileHandler) ProfileTest(c *fiber.Ctx) error {
	userID, err := middleware.UserIDFromCtx(c)
	if err != nil {
		return err
	}

	resp, err := h.profileService.GetProfileTest(c.UserContext(), userID, middleware.IDParam(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
