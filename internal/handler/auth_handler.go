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

type AuthHandler struct {
	authService service.AuthService
	userService service.UserService
}

func NewAuthHandler(authService service.AuthService, userService service.UserService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
	}
}

// Register creates a new account with the user role.
// @Summary Register
// @Description Creates a user account and returns an access token.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.RegisterRequest true "Account data"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} middleware.ErrorResponse "Validation error or user already exists"
// @Failure 429 {object} middleware.ErrorResponse "Too many requests"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Get().Warn("Failed to parse register request body", zap.Error(err))
		return domain.NewInvalidInputError("Invalid request body")
	}

	resp, err := h.authService.Register(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Login exchanges email and password for an access token.
// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 401 {object} middleware.ErrorResponse "Invalid credentials"
// @Failure 429 {object} middleware.ErrorResponse "Too many requests"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Get().Warn("Failed to parse login request body", zap.Error(err))
		return domain.NewInvalidInputError("Invalid request body")
	}

	resp, err := h.authService.Login(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Verify echoes the identity resolved from the bearer token.
// @Summary Verify token
// @Tags auth
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.IdentityResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /auth/verify [get]
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	identity, err := middleware.IdentityFromCtx(c)
	if err != nil {
		return err
	}
	return c.JSON(dto.IdentityResponse{Success: true, User: identity})
}

// Profile returns the stored account of the caller.
// @Summary Auth profile
// @Tags auth
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.UserEnvelope
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse "User not found"
// @Router /auth/profile [get]
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
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
