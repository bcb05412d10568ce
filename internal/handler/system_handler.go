package handler

import (
	"time"

	"expert-test/internal/domain"
	"expert-test/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SystemHandler serves diagnostics that need no authentication.
type SystemHandler struct {
	userService service.UserService
	appName     string
}

func NewSystemHandler(userService service.UserService, appName string) *SystemHandler {
	return &SystemHandler{userService: userService, appName: appName}
}

// Root lists the API groups.
func (h *SystemHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"message": h.appName + " API",
		"endpoints": fiber.Map{
			"auth":    "/api/auth",
			"test":    "/api/test/questions",
			"results": "/api/results",
			"profile": "/api/profile",
			"admin":   "/api/admin",
			"docs":    "/swagger/index.html",
		},
	})
}

// Ping godoc
// @Summary Liveness check
// @Tags system
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Router /test [get]
func (h *SystemHandler) Ping(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success":   true,
		"message":   "API is working",
		"timestamp": time.Now().UTC(),
	})
}

// DBTest godoc
// @Summary Database check
// @Description Pings the database and counts registered users.
// @Tags system
// @Produce json
// @Success 200 {object} dto.DBTestResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /db-test [get]
func (h *SystemHandler) DBTest(c *fiber.Ctx) error {
	resp, err := h.userService.CheckDatabase(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// NotFound renders unknown routes in the API envelope.
func (h *SystemHandler) NotFound(c *fiber.Ctx) error {
	return domain.NewNotFoundError("Route not found").WithContext("path", c.Path())
}
