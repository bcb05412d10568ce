package middleware

import (
	"strconv"

	"expert-test/internal/domain"

	"github.com/gofiber/fiber/v2"
)

const validatedIDKey = "validated_id"

// ValidateIDParam rejects a non-numeric or non-positive :id path parameter
// with 400 and stores the parsed value for the handler.
func ValidateIDParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Params("id")
		id, err := parseID(raw)
		if err != nil {
			return domain.ValidationErrors{domain.NewInvalidFormatError("id", raw)}
		}
		c.Locals(validatedIDKey, id)
		return c.Next()
	}
}

// IDParam returns the ID stored by ValidateIDParam.
func IDParam(c *fiber.Ctx) int64 {
	id, _ := c.Locals(validatedIDKey).(int64)
	return id
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewInvalidInputError("id must be a positive integer")
	}
	return id, nil
}
