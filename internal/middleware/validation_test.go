package middleware_test

import (
	"net/http/httptest"
	"strconv"
	"testing"

	"expert-test/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateIDParam(t *testing.T) {
	app := newTestApp()
	app.Get("/items/:id", middleware.ValidateIDParam(), func(c *fiber.Ctx) error {
		return c.SendString(strconv.FormatInt(middleware.IDParam(c), 10))
	})

	tests := []struct {
		path   string
		status int
	}{
		{"/items/15", fiber.StatusOK},
		{"/items/0", fiber.StatusBadRequest},
		{"/items/-1", fiber.StatusBadRequest},
		{"/items/abc", fiber.StatusBadRequest},
		{"/items/1234567890123456789", fiber.StatusOK},
		{"/items/9223372036854775808", fiber.StatusBadRequest},
		{"/items/1.5", fiber.StatusBadRequest},
	}

	for _, tc := range tests {
		resp, err := app.Test(httptest.NewRequest("GET", tc.path, nil))
		require.NoError(t, err)
		assert.Equal(t, tc.status, resp.StatusCode, tc.path)
	}
}

func TestRequestID(t *testing.T) {
	app := newTestApp()
	app.Use(middleware.RequestID())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(middleware.RequestIDFromCtx(c))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Len(t, resp.Header.Get(middleware.RequestIDHeader), 26)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(middleware.RequestIDHeader, "client-supplied")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "client-supplied", resp.Header.Get(middleware.RequestIDHeader))
}

func TestRequestLogger_RendersErrorsBeforeLogging(t *testing.T) {
	app := newTestApp()
	app.Use(middleware.RequestLogger())
	app.Get("/", func(c *fiber.Ctx) error {
		return fiber.ErrTeapot
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)
}
