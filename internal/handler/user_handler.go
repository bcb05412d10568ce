package handler

import (
	"expert-test/internal/logger"
	"expert-test/internal/middleware"
	"expert-test/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Me retrieves the account of the currently authenticated user.
// @Summary Get current user
// @Tags users
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.UserEnvelope
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Failure 404 {object} middleware.ErrorResponse "User not found"
// @Router /me [get]
func (h *UserHandler) Me(c *fiber.Ctx) error {
	userID, err := middleware.UserIDFromCtx(c)
	if err != nil {
		return err
	}

	resp, err := h.userService.GetUser(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ListUsers returns every registered user.
// @Summary List users
// @Tags users
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.UserListResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Router /users [get]
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	resp, err := h.userService.ListUsers(c.UserContext())
	if err != nil {
		return err
	}
	logger.Get().Debug("Users listed", zap.Int("count", resp.Count))
	return c.JSON(resp)
}
